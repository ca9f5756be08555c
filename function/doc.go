// Package function implements the client-side contract for calling Unity
// Catalog SQL functions: resolving function metadata through a caller
// supplied CatalogClient capability, validating caller parameters against
// the declared parameter list, marshaling values into a parameterized SQL
// statement, and decoding the (possibly asynchronous) statement execution
// response into an ExecutionResult.
//
// The package never opens network connections itself; transport and
// authentication live behind the CatalogClient interface. All validation
// failures are raised synchronously before any network call, batched where
// feasible so one round-trip surfaces every problem. Execution-stage
// failures are never raised as errors: they are reported inside the
// returned ExecutionResult so automated callers can inspect and react to
// them without error-handling machinery.
package function
