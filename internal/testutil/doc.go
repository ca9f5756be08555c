// Package testutil contains helper builders and a scripted CatalogClient
// fake used across tests to reduce boilerplate when constructing function
// metadata and statement-execution responses. These helpers are intentionally
// minimal and are not intended for production usage.
package testutil
