// Package tool turns Unity Catalog functions into callable agent tools:
// named capabilities with a JSON-schema parameter description and an execute
// closure that validates, marshals and runs the underlying SQL function.
//
// The Toolkit registers functions by full name (including the
// catalog.schema.* listing wildcard), generates each tool's input schema
// from the function's declared parameters, and can enrich schema field
// descriptions from parsed docstrings. The produced Tool values are
// framework-agnostic; adapting them to a specific agent framework's tool
// shape is left to the caller.
package tool
