// Package ucai exposes Unity Catalog SQL functions as callable tools with
// typed parameters, primarily for AI agent frameworks. Most applications
// interact with the module by:
//  1. Implementing (or reusing) a function.CatalogClient transport capability
//  2. Wrapping it in a function.Client for validation + execution
//  3. Building a tool.Toolkit over the client to hand agent frameworks
//     schema-described, executable tools
//
// This package additionally holds the process-wide default client slot: a
// single mutex-guarded reference intended as a convenience for tests and
// small programs. Library code never mutates it implicitly.
package ucai

import (
	"errors"
	"sync"

	"github.com/serena-ruan/unitycatalog-ai/function"
)

var (
	defaultMu     sync.Mutex
	defaultClient *function.Client
)

// SetFunctionClient installs the process-wide default function client.
// Passing nil clears the slot.
func SetFunctionClient(c *function.Client) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultClient = c
}

// FunctionClient returns the process-wide default function client, or nil
// when none is set.
func FunctionClient() *function.Client {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultClient
}

// ClearFunctionClient removes the process-wide default function client.
func ClearFunctionClient() {
	SetFunctionClient(nil)
}

// RequireFunctionClient returns the given client when non-nil, falling back
// to the process-wide default. It errors when neither is available.
func RequireFunctionClient(c *function.Client) (*function.Client, error) {
	if c != nil {
		return c, nil
	}
	if c = FunctionClient(); c != nil {
		return c, nil
	}
	return nil, errors.New(
		"no client provided: pass one explicitly or set the default client with ucai.SetFunctionClient")
}
