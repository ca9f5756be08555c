package function

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serena-ruan/unitycatalog-ai/uctype"
)

// Interface compliance (compile-time assertion)
var _ CatalogClient = (*scriptedCatalog)(nil)

// scriptedCatalog is an inline transport stub for client tests; the shared
// fake lives in internal/testutil but cannot be used here without an import
// cycle.
type scriptedCatalog struct {
	fi        *FunctionInfo
	getErr    error
	execErr   error
	responses []*StatementResponse

	statements []string
	params     [][]StatementParameter
	opts       []ExecuteOptions
	polls      int
}

func (s *scriptedCatalog) GetFunction(context.Context, string) (*FunctionInfo, error) {
	return s.fi, s.getErr
}

func (s *scriptedCatalog) ListFunctions(context.Context, string, string, int, string) (*Page[FunctionInfo], error) {
	return &Page[FunctionInfo]{}, nil
}

func (s *scriptedCatalog) ExecuteStatement(_ context.Context, statement string, params []StatementParameter, opts ExecuteOptions) (*StatementResponse, error) {
	s.statements = append(s.statements, statement)
	s.params = append(s.params, params)
	s.opts = append(s.opts, opts)
	if s.execErr != nil {
		return nil, s.execErr
	}
	return s.next(), nil
}

func (s *scriptedCatalog) GetStatement(context.Context, string) (*StatementResponse, error) {
	s.polls++
	return s.next(), nil
}

func (s *scriptedCatalog) next() *StatementResponse {
	resp := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return resp
}

func addFunction() *FunctionInfo {
	return &FunctionInfo{
		CatalogName: "cat",
		SchemaName:  "sch",
		Name:        "add",
		DataType:    uctype.TypeInt,
		InputParams: []ParameterInfo{
			{Name: "x", TypeName: uctype.TypeInt, TypeText: "int"},
			{Name: "y", TypeName: uctype.TypeInt, TypeText: "int"},
		},
	}
}

func scalarResponse(value string, state StatementState) *StatementResponse {
	resp := &StatementResponse{
		StatementID: "stmt-1",
		Status:      &StatementStatus{State: state},
	}
	if state == StateSucceeded {
		resp.Manifest = &ResultManifest{}
		resp.Result = &ResultData{DataArray: [][]string{{value}}}
	}
	return resp
}

// testClient wires a client over the stub with sleeps recorded instead of
// taken.
func testClient(catalog *scriptedCatalog) (*Client, *[]time.Duration) {
	c := New(catalog)
	var sleeps []time.Duration
	c.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }
	return c, &sleeps
}

func TestClient_ExecuteFunction(t *testing.T) {
	catalog := &scriptedCatalog{
		fi:        addFunction(),
		responses: []*StatementResponse{scalarResponse("3", StateSucceeded)},
	}
	c, _ := testClient(catalog)

	result, err := c.ExecuteFunction(context.Background(), "cat.sch.add", map[string]any{"x": 1, "y": 2})
	require.NoError(t, err)
	assert.True(t, result.OK())
	v, _ := result.ScalarValue()
	assert.Equal(t, "3", v)

	require.Len(t, catalog.statements, 1)
	assert.Equal(t, "SELECT IDENTIFIER(:function_name)(:x,:y)", catalog.statements[0])
	assert.Equal(t, DefaultExecuteOptions(), catalog.opts[0])
}

func TestClient_ExecuteFunction_NameValidation(t *testing.T) {
	c, _ := testClient(&scriptedCatalog{})

	_, err := c.ExecuteFunction(context.Background(), "not_full_name", nil)
	assert.Equal(t, CodeMalformedFunctionName, ErrorCode(err))

	_, err = c.ExecuteFunction(context.Background(), "cat.sch.*", nil)
	assert.Equal(t, CodeMalformedFunctionName, ErrorCode(err))
	assert.Contains(t, err.Error(), "cannot include *")
}

func TestClient_ExecuteFunction_ValidationBeforeTransport(t *testing.T) {
	catalog := &scriptedCatalog{fi: addFunction()}
	c, _ := testClient(catalog)

	_, err := c.ExecuteFunction(context.Background(), "cat.sch.add", map[string]any{"x": 1})
	assert.Equal(t, CodeMissingRequiredParameter, ErrorCode(err))
	// Nothing was submitted.
	assert.Empty(t, catalog.statements)
}

func TestClient_ExecuteFunction_ReservedNameConflict(t *testing.T) {
	fi := addFunction()
	fi.InputParams = append(fi.InputParams, ParameterInfo{
		Name: ReservedExecutionArgName, TypeName: uctype.TypeString, TypeText: "string",
	})
	c, _ := testClient(&scriptedCatalog{fi: fi})

	_, err := c.ExecuteFunctionInfo(context.Background(), fi, map[string]any{"x": 1, "y": 2})
	assert.Equal(t, CodeReservedNameConflict, ErrorCode(err))
}

func TestClient_ExecuteFunction_ExecutionOptions(t *testing.T) {
	catalog := &scriptedCatalog{
		fi:        addFunction(),
		responses: []*StatementResponse{scalarResponse("3", StateSucceeded)},
	}
	c, _ := testClient(catalog)

	_, err := c.ExecuteFunction(context.Background(), "cat.sch.add", map[string]any{
		"x": 1, "y": 2,
		ReservedExecutionArgName: map[string]any{"wait_timeout": "5s", "row_limit": 1},
	})
	require.NoError(t, err)
	assert.Equal(t, ExecuteOptions{WaitTimeout: "5s", RowLimit: 1, ByteLimit: 4096}, catalog.opts[0])

	// The reserved entry must be an options map.
	_, err = c.ExecuteFunction(context.Background(), "cat.sch.add", map[string]any{
		"x": 1, "y": 2,
		ReservedExecutionArgName: "30s",
	})
	assert.Equal(t, CodeInvalidExecutionOption, ErrorCode(err))
}

func TestClient_ExecuteFunction_TransportFailureReported(t *testing.T) {
	catalog := &scriptedCatalog{fi: addFunction(), execErr: errors.New("warehouse unavailable")}
	c, _ := testClient(catalog)

	result, err := c.ExecuteFunction(context.Background(), "cat.sch.add", map[string]any{"x": 1, "y": 2})
	require.NoError(t, err)
	assert.False(t, result.OK())
	assert.Contains(t, result.Error, "statement execution failed")
	assert.Contains(t, result.Error, "warehouse unavailable")
}

func TestClient_ExecuteFunction_PollsPendingWithBackoff(t *testing.T) {
	catalog := &scriptedCatalog{
		fi: addFunction(),
		responses: []*StatementResponse{
			scalarResponse("", StatePending),
			scalarResponse("", StatePending),
			scalarResponse("3", StateSucceeded),
		},
	}
	c, sleeps := testClient(catalog)

	result, err := c.ExecuteFunction(context.Background(), "cat.sch.add", map[string]any{"x": 1, "y": 2})
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, 2, catalog.polls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *sleeps)
}

func TestClient_ExecuteFunction_PendingExhausted(t *testing.T) {
	catalog := &scriptedCatalog{
		fi:        addFunction(),
		responses: []*StatementResponse{scalarResponse("", StatePending)},
	}
	c, sleeps := testClient(catalog)

	result, err := c.ExecuteFunction(context.Background(), "cat.sch.add", map[string]any{"x": 1, "y": 2})
	require.NoError(t, err)
	assert.False(t, result.OK())
	assert.Contains(t, result.Error, "still pending after 6 retries")
	assert.Contains(t, result.Error, "wait_timeout")
	assert.Len(t, *sleeps, 6)
	assert.Equal(t, 64*time.Second, (*sleeps)[5])
}

func TestClient_GetFunction_RejectsWildcard(t *testing.T) {
	c, _ := testClient(&scriptedCatalog{fi: addFunction()})

	_, err := c.GetFunction(context.Background(), "cat.sch.*")
	assert.Equal(t, CodeMalformedFunctionName, ErrorCode(err))

	fi, err := c.GetFunction(context.Background(), "cat.sch.add")
	require.NoError(t, err)
	assert.Equal(t, "cat.sch.add", fi.FullName())
}
