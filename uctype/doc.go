// Package uctype models the Unity Catalog column type system on the client
// side. It provides:
//
//   - The closed set of primitive column type tags (TypeName) and the table
//     mapping each tag to the Go value shapes accepted for it (ShapesFor,
//     CheckValue)
//   - Descriptor, the parsed form of a function parameter's type_json
//     document, covering nested array/map/struct types
//   - NativeType, an explicit tagged union (primitive | union | optional |
//     sequence | mapping | record) produced by Compile and consumable by any
//     serialization layer without reflection
//
// Struct descriptors compile to deterministically named record types
// (Struct_<8 hex chars of a content hash>) so that repeated compilations of
// the same descriptor can be cached by callers.
package uctype
