package testutil

import (
	"context"
	"fmt"

	"github.com/serena-ruan/unitycatalog-ai/function"
)

// FakeCatalogClient is a scripted in-memory function.CatalogClient. Tests
// register functions and queue statement responses; the fake records the
// statements and bindings it receives for later assertions.
type FakeCatalogClient struct {
	Functions map[string]*function.FunctionInfo

	// Pages served by ListFunctions in order; the fake returns the page
	// whose index matches the incoming token ("" means 0).
	Pages []function.Page[function.FunctionInfo]

	// Responses are consumed first by ExecuteStatement, then by successive
	// GetStatement polls.
	Responses []*function.StatementResponse

	// Recorded calls.
	ExecutedStatements []string
	ExecutedParams     [][]function.StatementParameter
	ExecutedOptions    []function.ExecuteOptions
	ListMaxResults     []int
	PollCount          int
}

// NewFakeCatalogClient creates an empty scripted client.
func NewFakeCatalogClient() *FakeCatalogClient {
	return &FakeCatalogClient{Functions: map[string]*function.FunctionInfo{}}
}

// Register makes a function resolvable by its full name.
func (f *FakeCatalogClient) Register(fi *function.FunctionInfo) {
	f.Functions[fi.FullName()] = fi
}

// Respond queues statement responses in the order they will be served.
func (f *FakeCatalogClient) Respond(responses ...*function.StatementResponse) {
	f.Responses = append(f.Responses, responses...)
}

// GetFunction implements function.CatalogClient.
func (f *FakeCatalogClient) GetFunction(_ context.Context, name string) (*function.FunctionInfo, error) {
	fi, ok := f.Functions[name]
	if !ok {
		return nil, fmt.Errorf("function %s not found", name)
	}
	return fi, nil
}

// ListFunctions implements function.CatalogClient.
func (f *FakeCatalogClient) ListFunctions(_ context.Context, _, _ string, maxResults int, pageToken string) (*function.Page[function.FunctionInfo], error) {
	f.ListMaxResults = append(f.ListMaxResults, maxResults)
	index := 0
	if pageToken != "" {
		if _, err := fmt.Sscan(pageToken, &index); err != nil {
			return nil, fmt.Errorf("bad page token %q", pageToken)
		}
	}
	if index >= len(f.Pages) {
		return &function.Page[function.FunctionInfo]{}, nil
	}
	page := f.Pages[index]
	return &page, nil
}

// ExecuteStatement implements function.CatalogClient.
func (f *FakeCatalogClient) ExecuteStatement(_ context.Context, statement string, params []function.StatementParameter, opts function.ExecuteOptions) (*function.StatementResponse, error) {
	f.ExecutedStatements = append(f.ExecutedStatements, statement)
	f.ExecutedParams = append(f.ExecutedParams, params)
	f.ExecutedOptions = append(f.ExecutedOptions, opts)
	return f.nextResponse()
}

// GetStatement implements function.CatalogClient.
func (f *FakeCatalogClient) GetStatement(_ context.Context, _ string) (*function.StatementResponse, error) {
	f.PollCount++
	return f.nextResponse()
}

func (f *FakeCatalogClient) nextResponse() (*function.StatementResponse, error) {
	if len(f.Responses) == 0 {
		return nil, fmt.Errorf("no scripted statement response left")
	}
	resp := f.Responses[0]
	if len(f.Responses) > 1 {
		f.Responses = f.Responses[1:]
	}
	return resp, nil
}

// SucceededScalar builds a terminal response holding one scalar cell.
func SucceededScalar(value string, truncated bool) *function.StatementResponse {
	return &function.StatementResponse{
		StatementID: "stmt-1",
		Status:      &function.StatementStatus{State: function.StateSucceeded},
		Manifest:    &function.ResultManifest{Truncated: truncated},
		Result:      &function.ResultData{DataArray: [][]string{{value}}},
	}
}

// SucceededTable builds a terminal response holding tabular rows.
func SucceededTable(columns []string, rows [][]string, truncated bool) *function.StatementResponse {
	cols := make([]function.ColumnInfo, len(columns))
	for i, name := range columns {
		cols[i] = function.ColumnInfo{Name: name, Position: i}
	}
	return &function.StatementResponse{
		StatementID: "stmt-1",
		Status:      &function.StatementStatus{State: function.StateSucceeded},
		Manifest:    &function.ResultManifest{Truncated: truncated, Schema: &function.ResultSchema{Columns: cols}},
		Result:      &function.ResultData{DataArray: rows},
	}
}

// Pending builds a response still waiting on execution.
func Pending(statementID string) *function.StatementResponse {
	return &function.StatementResponse{
		StatementID: statementID,
		Status:      &function.StatementStatus{State: function.StatePending},
	}
}

// Failed builds a terminal failure response.
func Failed(code, message string) *function.StatementResponse {
	return &function.StatementResponse{
		StatementID: "stmt-1",
		Status: &function.StatementStatus{
			State: function.StateFailed,
			Error: &function.ServiceError{ErrorCode: code, Message: message},
		},
	}
}
