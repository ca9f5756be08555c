package function

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
)

// StatementState is the lifecycle state of a remote statement execution.
type StatementState string

const (
	StatePending   StatementState = "PENDING"
	StateRunning   StatementState = "RUNNING"
	StateSucceeded StatementState = "SUCCEEDED"
	StateFailed    StatementState = "FAILED"
	StateCanceled  StatementState = "CANCELED"
	StateClosed    StatementState = "CLOSED"
)

// ServiceError carries the remote error code and message of a failed
// statement.
type ServiceError struct {
	ErrorCode string `json:"error_code,omitempty"`
	Message   string `json:"message,omitempty"`
}

// StatementStatus is the state portion of a statement-execution response.
type StatementStatus struct {
	State StatementState `json:"state"`
	Error *ServiceError  `json:"error,omitempty"`
}

// ColumnInfo describes one column of a statement result schema.
type ColumnInfo struct {
	Name     string `json:"name"`
	TypeText string `json:"type_text,omitempty"`
	Position int    `json:"position"`
}

// ResultSchema is the column layout of a statement result.
type ResultSchema struct {
	Columns []ColumnInfo `json:"columns,omitempty"`
}

// ResultManifest describes the result schema and whether the result was
// truncated by row or byte limits.
type ResultManifest struct {
	Truncated bool          `json:"truncated"`
	Schema    *ResultSchema `json:"schema,omitempty"`
}

// ResultData holds the raw result rows. Cell values are always strings.
type ResultData struct {
	DataArray [][]string `json:"data_array,omitempty"`
}

// StatementResponse is the raw statement-execution response returned by the
// CatalogClient capability.
type StatementResponse struct {
	StatementID string           `json:"statement_id,omitempty"`
	Status      *StatementStatus `json:"status,omitempty"`
	Manifest    *ResultManifest  `json:"manifest,omitempty"`
	Result      *ResultData      `json:"result,omitempty"`
}

// Result formats.
const (
	// FormatScalar marks a single-value result.
	FormatScalar = "SCALAR"
	// FormatCSV marks a tabular result rendered as RFC 4180 CSV text with a
	// header row and no index column.
	FormatCSV = "CSV"
)

// ExecutionResult is the terminal outcome of one function call. Execution
// failures are reported here rather than as Go errors so automated callers
// always receive a result they can inspect. There is no partial-success
// variant: either Error is set, or Format and Value are.
type ExecutionResult struct {
	Format    string  `json:"format,omitempty"`
	Value     *string `json:"value,omitempty"`
	Truncated bool    `json:"truncated,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// OK reports whether the execution succeeded.
func (r *ExecutionResult) OK() bool { return r.Error == "" }

// ScalarValue returns the scalar value and whether one is present.
func (r *ExecutionResult) ScalarValue() (string, bool) {
	if r.Value == nil {
		return "", false
	}
	return *r.Value, true
}

// JSON renders the result for handing to an agent framework.
func (r *ExecutionResult) JSON() string {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, err.Error())
	}
	return string(b)
}

func errorResult(format string, args ...any) *ExecutionResult {
	return &ExecutionResult{Error: fmt.Sprintf(format, args...)}
}

// decodeResponse interprets a terminal statement-execution response. Missing
// status, manifest, result or schema yields a descriptive error result
// rather than a fault: callers of this stage always receive an
// ExecutionResult.
func decodeResponse(resp *StatementResponse, scalar bool) *ExecutionResult {
	if resp == nil || resp.Status == nil {
		return errorResult("statement execution failed: no status was returned")
	}
	if resp.Status.State != StateSucceeded {
		if resp.Status.Error == nil {
			return errorResult("statement execution failed in state %s but no error message was provided",
				resp.Status.State)
		}
		return errorResult("%s: %s", resp.Status.Error.ErrorCode, resp.Status.Error.Message)
	}
	if resp.Manifest == nil {
		return errorResult("statement execution succeeded but no manifest was returned")
	}
	if resp.Result == nil {
		return errorResult("statement execution succeeded but no result was provided")
	}

	truncated := resp.Manifest.Truncated
	rows := resp.Result.DataArray

	if scalar {
		var value *string
		if len(rows) > 0 && len(rows[0]) > 0 {
			// cell values are always strings
			v := rows[0][0]
			value = &v
		}
		return &ExecutionResult{Format: FormatScalar, Value: value, Truncated: truncated}
	}

	if resp.Manifest.Schema == nil || resp.Manifest.Schema.Columns == nil {
		return errorResult("statement execution succeeded but no schema was provided for the table function")
	}
	text, err := renderCSV(resp.Manifest.Schema.Columns, rows)
	if err != nil {
		return errorResult("failed to render tabular result: %v", err)
	}
	return &ExecutionResult{Format: FormatCSV, Value: &text, Truncated: truncated}
}

// renderCSV writes the rows as RFC 4180 CSV text: header row with the column
// names, one record per row, no index column.
func renderCSV(columns []ColumnInfo, rows [][]string) (string, error) {
	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Name
	}
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(header); err != nil {
		return "", err
	}
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	w.Flush()
	return sb.String(), w.Error()
}
