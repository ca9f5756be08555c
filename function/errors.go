package function

import (
	"errors"
	"fmt"
)

// Stable error codes for client failures. Codes categorize errors for
// programmatic handling; messages carry the details.
const (
	CodeMalformedFunctionName    = "MALFORMED_FUNCTION_NAME"
	CodeUnsupportedType          = "UNSUPPORTED_TYPE"
	CodeMissingRequiredParameter = "MISSING_REQUIRED_PARAMETER"
	CodeExtraParameters          = "EXTRA_PARAMETERS"
	CodeUnexpectedParameters     = "UNEXPECTED_PARAMETERS"
	CodeInvalidParameterTypes    = "INVALID_PARAMETER_TYPES"
	CodeInvalidTemporalString    = "INVALID_TEMPORAL_STRING"
	CodeUnsupportedIntervalKind  = "UNSUPPORTED_INTERVAL_KIND"
	CodeMalformedIntervalString  = "MALFORMED_INTERVAL_STRING"
	CodeMalformedBinaryString    = "MALFORMED_BINARY_STRING"
	CodeReservedNameConflict     = "RESERVED_NAME_CONFLICT"
	CodeInvalidExecutionOption   = "INVALID_EXECUTION_OPTION"
	CodeRemoteExecutionFailed    = "REMOTE_EXECUTION_FAILED"
)

// Error is a typed client error with a stable code for categorization.
type Error struct {
	Code    string `json:"code"`              // Error code for categorization
	Message string `json:"message"`           // Human-readable error message
	Details any    `json:"details,omitempty"` // Additional error details (e.g. per-parameter messages)
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("function error [%s]: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("function error: %s", e.Message)
}

func newError(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode extracts the stable code from an error, or "" when the error
// does not wrap a client *Error. For joined validation errors the first
// code is returned; use errors.As directly to walk all of them.
func ErrorCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
