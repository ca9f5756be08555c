package function

import (
	"fmt"
	"sort"
)

// Recognized execution option keys accepted under ReservedExecutionArgName.
const (
	optionWaitTimeout = "wait_timeout"
	optionRowLimit    = "row_limit"
	optionByteLimit   = "byte_limit"
)

// ExecuteOptions controls statement execution. It is an explicit enumerated
// struct rather than an open map: unknown keys in the reserved execution
// argument are rejected, all reported together.
type ExecuteOptions struct {
	// WaitTimeout is how long the call waits for the statement's result set,
	// as "Ns". "0s" requests fully asynchronous execution.
	WaitTimeout string
	// RowLimit caps the statement's result rows; exceeding it marks the
	// response as truncated rather than failing.
	RowLimit int
	// ByteLimit caps the statement's result size in bytes, with the same
	// truncation semantics.
	ByteLimit int
}

// DefaultExecuteOptions returns the baseline execution configuration.
func DefaultExecuteOptions() ExecuteOptions {
	return ExecuteOptions{WaitTimeout: "30s", RowLimit: 100, ByteLimit: 4096}
}

// parseExecuteOptions overlays the reserved-argument map onto the defaults.
// Unknown keys are collected and rejected together with the allowed set
// named in the message.
func parseExecuteOptions(args map[string]any) (ExecuteOptions, error) {
	opts := DefaultExecuteOptions()
	var invalid []string
	for key, value := range args {
		switch key {
		case optionWaitTimeout:
			if s, ok := value.(string); ok {
				opts.WaitTimeout = s
			} else {
				opts.WaitTimeout = fmt.Sprintf("%v", value)
			}
		case optionRowLimit:
			n, err := intOption(key, value)
			if err != nil {
				return opts, err
			}
			opts.RowLimit = n
		case optionByteLimit:
			n, err := intOption(key, value)
			if err != nil {
				return opts, err
			}
			opts.ByteLimit = n
		default:
			invalid = append(invalid, key)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return opts, &Error{
			Code: CodeInvalidExecutionOption,
			Message: fmt.Sprintf("invalid options for executing functions: %v, allowed options are: [%s %s %s]",
				invalid, optionByteLimit, optionRowLimit, optionWaitTimeout),
			Details: invalid,
		}
	}
	return opts, nil
}

func intOption(key string, value any) (int, error) {
	switch n := value.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		// JSON decoding produces float64 for all numbers
		if n == float64(int64(n)) {
			return int(n), nil
		}
	}
	return 0, newError(CodeInvalidExecutionOption,
		"execution option %s must be an integer, got %T", key, value)
}
