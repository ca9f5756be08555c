// Package logging provides a minimal logging interface and adapters for the
// Unity Catalog function client.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) used by the client, statement builder and toolkit for
// observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LevelInfo, "json")
//	client := function.New(catalog, func(o *function.Options) { o.Logger = logger })
//
// The interface is intentionally minimal so callers can plug any structured
// logger without vendor lock-in.
package logging
