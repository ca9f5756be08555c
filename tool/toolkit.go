package tool

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/serena-ruan/unitycatalog-ai/docstring"
	"github.com/serena-ruan/unitycatalog-ai/function"
	"github.com/serena-ruan/unitycatalog-ai/logging"
)

// DefaultListMaxResults is the page size used when expanding a listing
// wildcard, overridable through the UC_LIST_FUNCTIONS_MAX_RESULTS
// environment variable.
const DefaultListMaxResults = 100

const listMaxResultsEnvVar = "UC_LIST_FUNCTIONS_MAX_RESULTS"

// FunctionClient is the subset of function.Client capabilities the toolkit
// needs; accepting the interface keeps the toolkit testable with fakes.
type FunctionClient interface {
	GetFunction(ctx context.Context, name string) (*function.FunctionInfo, error)
	ListFunctions(ctx context.Context, catalog, schema string, maxResults int, pageToken string) (*function.Page[function.FunctionInfo], error)
	ExecuteFunction(ctx context.Context, name string, parameters map[string]any) (*function.ExecutionResult, error)
}

// ToolkitOptions configures a Toolkit.
type ToolkitOptions struct {
	// Logger receives name-truncation warnings. Defaults to NoOp.
	Logger logging.Logger
	// Docstrings maps full function names to free-form documentation;
	// parsed sections enrich tool and parameter descriptions when function
	// metadata carries none.
	Docstrings map[string]string
}

// Toolkit registers catalog functions and materializes them as agent tools.
// Registration mutates the toolkit and is not safe for concurrent use; the
// produced tools are.
type Toolkit struct {
	client FunctionClient
	opts   ToolkitOptions
	tools  map[string]*Tool
}

// NewToolkit creates an empty toolkit over the given client.
func NewToolkit(client FunctionClient, optFns ...func(o *ToolkitOptions)) *Toolkit {
	opts := ToolkitOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Toolkit{client: client, opts: opts, tools: map[string]*Tool{}}
}

// AddFunctions registers functions by full name. A name whose function
// segment is "*" expands to every function in that catalog and schema,
// following page tokens until exhausted. Already-registered names are
// skipped.
func (k *Toolkit) AddFunctions(ctx context.Context, names ...string) error {
	for _, name := range names {
		if _, ok := k.tools[name]; ok {
			continue
		}
		full, err := function.ParseFullFunctionName(name)
		if err != nil {
			return err
		}
		if full.Function == "*" {
			if err := k.addAll(ctx, full.Catalog, full.Schema); err != nil {
				return err
			}
			continue
		}
		fi, err := k.client.GetFunction(ctx, name)
		if err != nil {
			return err
		}
		if err := k.add(fi); err != nil {
			return err
		}
	}
	return nil
}

func (k *Toolkit) addAll(ctx context.Context, catalog, schema string) error {
	maxResults := listMaxResults()
	token := ""
	for {
		page, err := k.client.ListFunctions(ctx, catalog, schema, maxResults, token)
		if err != nil {
			return err
		}
		for i := range page.Items {
			fi := &page.Items[i]
			if _, ok := k.tools[fi.FullName()]; ok {
				continue
			}
			if err := k.add(fi); err != nil {
				return err
			}
		}
		if page.NextPageToken == "" {
			return nil
		}
		token = page.NextPageToken
	}
}

func (k *Toolkit) add(fi *function.FunctionInfo) error {
	t, err := k.makeTool(fi)
	if err != nil {
		return err
	}
	k.tools[fi.FullName()] = t
	return nil
}

// Tools returns the registered tools sorted by name for deterministic
// iteration.
func (k *Toolkit) Tools() []*Tool {
	tools := make([]*Tool, 0, len(k.tools))
	for _, t := range k.tools {
		tools = append(tools, t)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].name < tools[j].name })
	return tools
}

// Tool returns a registered tool by the function's full name.
func (k *Toolkit) Tool(fullName string) (*Tool, bool) {
	t, ok := k.tools[fullName]
	return t, ok
}

func (k *Toolkit) makeTool(fi *function.FunctionInfo) (*Tool, error) {
	schema, err := function.InputSchema(fi)
	if err != nil {
		return nil, fmt.Errorf("generating input schema for %s: %w", fi.FullName(), err)
	}

	description := fi.Comment
	fullName := fi.FullName()
	if doc, ok := k.opts.Docstrings[fullName]; ok {
		info, err := docstring.Parse(doc)
		if err != nil {
			return nil, fmt.Errorf("parsing docstring for %s: %w", fullName, err)
		}
		if description == "" {
			description = info.Description
		}
		EnrichSchema(&schema, info)
	}

	client := k.client
	return &Tool{
		name:        ToolName(fullName, k.opts.Logger),
		description: description,
		parameters:  JSONSchema(schema),
		execute: func(ctx context.Context, args map[string]any) (*function.ExecutionResult, error) {
			return client.ExecuteFunction(ctx, fullName, args)
		},
	}, nil
}

func listMaxResults() int {
	if v := os.Getenv(listMaxResultsEnvVar); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return DefaultListMaxResults
}
