package function

import (
	"context"
	"time"

	"github.com/serena-ruan/unitycatalog-ai/logging"
)

// maxPendingRetries bounds the polling loop for statements still pending
// after the initial wait timeout. The delay doubles per attempt (2^attempt
// seconds), so the loop blocks for at most 2+4+...+64 seconds.
const maxPendingRetries = 6

// CatalogClient is the transport capability the client executes through.
// Implementations own the network connection and authentication to the
// catalog and SQL warehouse; the function package never opens connections
// itself.
type CatalogClient interface {
	// GetFunction resolves the metadata of one function by its full
	// three-level name.
	GetFunction(ctx context.Context, name string) (*FunctionInfo, error)

	// ListFunctions returns one page of functions in a catalog and schema.
	// maxResults <= 0 leaves the page size to the server.
	ListFunctions(ctx context.Context, catalog, schema string, maxResults int, pageToken string) (*Page[FunctionInfo], error)

	// ExecuteStatement submits a parameterized statement for execution and
	// returns the initial response, which may still be pending.
	ExecuteStatement(ctx context.Context, statement string, params []StatementParameter, opts ExecuteOptions) (*StatementResponse, error)

	// GetStatement polls the current response of a submitted statement.
	GetStatement(ctx context.Context, statementID string) (*StatementResponse, error)
}

// Options configures a Client.
type Options struct {
	// Logger receives validation warnings and polling progress. Defaults to
	// the NoOp logger.
	Logger logging.Logger
}

// Client executes Unity Catalog functions through a CatalogClient
// capability. It is stateless apart from its configuration: independent
// calls share no mutable state and may run concurrently.
type Client struct {
	catalog CatalogClient
	logger  logging.Logger

	// sleep is swapped out in tests to avoid real backoff delays.
	sleep func(time.Duration)
}

// New creates a Client over the given transport capability.
func New(catalog CatalogClient, optFns ...func(o *Options)) *Client {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{catalog: catalog, logger: opts.Logger, sleep: time.Sleep}
}

// GetFunction resolves one function's metadata. The name must be a full
// <catalog>.<schema>.<function> name; wildcards are only valid for listing.
func (c *Client) GetFunction(ctx context.Context, name string) (*FunctionInfo, error) {
	full, err := ParseFullFunctionName(name)
	if err != nil {
		return nil, err
	}
	if full.IsWildcard() {
		return nil, newError(CodeMalformedFunctionName,
			"function name cannot include *, to get all functions in a catalog and schema use ListFunctions instead")
	}
	return c.catalog.GetFunction(ctx, name)
}

// ListFunctions returns one page of functions in a catalog and schema.
func (c *Client) ListFunctions(ctx context.Context, catalog, schema string, maxResults int, pageToken string) (*Page[FunctionInfo], error) {
	return c.catalog.ListFunctions(ctx, catalog, schema, maxResults, pageToken)
}

// ExecuteFunction runs a catalog function by full name with the given
// parameter mapping and returns its decoded result.
//
// The mapping may carry execution options under ReservedExecutionArgName;
// that entry is split off before validation. All validation failures
// (malformed name, reserved-name conflict, unknown execution options,
// missing/extra/invalid parameters) are returned as errors before any
// statement is submitted. Once the statement is submitted, failures are
// reported inside the ExecutionResult instead.
func (c *Client) ExecuteFunction(ctx context.Context, name string, parameters map[string]any) (*ExecutionResult, error) {
	full, err := ParseFullFunctionName(name)
	if err != nil {
		return nil, err
	}
	if full.IsWildcard() {
		return nil, newError(CodeMalformedFunctionName,
			"function name cannot include *, execution requires a single function name")
	}

	fi, err := c.catalog.GetFunction(ctx, name)
	if err != nil {
		return nil, err
	}
	return c.ExecuteFunctionInfo(ctx, fi, parameters)
}

// ExecuteFunctionInfo is ExecuteFunction for already-resolved metadata,
// saving the lookup round-trip when the caller cached the FunctionInfo.
func (c *Client) ExecuteFunctionInfo(ctx context.Context, fi *FunctionInfo, parameters map[string]any) (*ExecutionResult, error) {
	for i := range fi.InputParams {
		if fi.InputParams[i].Name == ReservedExecutionArgName {
			return nil, newError(CodeReservedNameConflict,
				"parameter name conflicts with the reserved argument name for executing functions: %s, rename the parameter",
				ReservedExecutionArgName)
		}
	}

	// Split execution options from function arguments without mutating the
	// caller's map.
	args := make(map[string]any, len(parameters))
	var optionArgs map[string]any
	for k, v := range parameters {
		if k == ReservedExecutionArgName {
			m, ok := v.(map[string]any)
			if !ok {
				return nil, newError(CodeInvalidExecutionOption,
					"%s must be a map of execution options, got %T", ReservedExecutionArgName, v)
			}
			optionArgs = m
			continue
		}
		args[k] = v
	}
	opts, err := parseExecuteOptions(optionArgs)
	if err != nil {
		return nil, err
	}

	if err := ValidateInputParams(fi.InputParams, args); err != nil {
		return nil, err
	}

	stmt, err := BuildStatement(fi, args, c.logger)
	if err != nil {
		return nil, err
	}

	resp, err := c.catalog.ExecuteStatement(ctx, stmt.Statement, stmt.Parameters, opts)
	if err != nil {
		// Execution-stage failures are reported, not raised.
		return errorResult("statement execution failed: %v", err), nil
	}

	resp, pending := c.awaitPending(ctx, resp)
	if pending {
		return errorResult("statement execution is still pending after %d retries, "+
			"try increasing the wait_timeout argument for executing the function", maxPendingRetries), nil
	}
	return decodeResponse(resp, fi.IsScalar()), nil
}

// awaitPending polls a pending statement with exponential backoff until it
// leaves the PENDING state or the retry bound is exhausted. It reports
// whether the statement was still pending after the last attempt.
func (c *Client) awaitPending(ctx context.Context, resp *StatementResponse) (*StatementResponse, bool) {
	if resp == nil || resp.Status == nil || resp.Status.State != StatePending || resp.StatementID == "" {
		return resp, false
	}
	statementID := resp.StatementID
	logger := logging.With(c.logger, "statement_id", statementID)
	logger.Info("statement still pending, polling for completion")
	for attempt := 1; attempt <= maxPendingRetries; attempt++ {
		c.sleep(time.Duration(1<<attempt) * time.Second)
		logger.Info("polling statement execution status", "attempt", attempt)
		next, err := c.catalog.GetStatement(ctx, statementID)
		if err != nil {
			logger.Warn("failed to poll statement status", "error", err.Error())
			continue
		}
		resp = next
		if resp.Status == nil || resp.Status.State != StatePending {
			return resp, false
		}
	}
	return resp, resp.Status != nil && resp.Status.State == StatePending
}
