package tool

import (
	"context"

	"github.com/serena-ruan/unitycatalog-ai/function"
	"github.com/serena-ruan/unitycatalog-ai/logging"
)

// maxToolNameLength is the longest tool name most agent frameworks accept.
const maxToolNameLength = 64

// Tool exposes one Unity Catalog function as a callable agent capability.
//
// A Tool has no internal mutable state after construction and is safe for
// concurrent use by multiple goroutines.
type Tool struct {
	// Tool identifier, derived from the function's full name
	name string
	// Human-readable description shown to models
	description string
	// JSON schema describing accepted arguments
	parameters map[string]any
	// Execution closure bound to the owning client and function
	execute func(ctx context.Context, args map[string]any) (*function.ExecutionResult, error)
}

// Name returns the tool identifier used in function call declarations.
func (t *Tool) Name() string { return t.name }

// Description returns the natural language description exposed to models.
func (t *Tool) Description() string { return t.description }

// Parameters returns the JSON schema describing expected arguments.
func (t *Tool) Parameters() map[string]any { return t.parameters }

// Execute validates the arguments against the function's declared
// parameters and runs it, returning the decoded execution result.
// Validation failures are returned as errors; execution failures are
// reported inside the result.
func (t *Tool) Execute(ctx context.Context, args map[string]any) (*function.ExecutionResult, error) {
	return t.execute(ctx, args)
}

// ToolName derives a tool identifier from a full function name, truncating
// to the trailing 64 characters when necessary (trailing, so the function
// segment survives).
func ToolName(fullName string, logger logging.Logger) string {
	if len(fullName) <= maxToolNameLength {
		return fullName
	}
	name := fullName[len(fullName)-maxToolNameLength:]
	if logger != nil {
		logger.Warn("function name is too long for a tool name, truncating",
			"function", fullName, "tool", name)
	}
	return name
}
