package function

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/serena-ruan/unitycatalog-ai/uctype"
)

// ReservedExecutionArgName is the parameter-map key carrying execution
// options (wait timeout, row/byte limits) rather than a function argument.
// A declared function parameter with this name conflicts with the client
// and is rejected before any network call.
const ReservedExecutionArgName = "__execution_args__"

// ParameterInfo describes one declared input parameter of a catalog
// function. Instances are constructed when function metadata is fetched and
// are immutable thereafter.
type ParameterInfo struct {
	// Name is unique within the function.
	Name string `json:"name"`
	// TypeName is the primitive tag driving validation.
	TypeName uctype.TypeName `json:"type_name"`
	// TypeText is the SQL-readable type, passed through opaquely to the
	// remote side in statement bindings.
	TypeText string `json:"type_text"`
	// TypeJSON is the full nested type descriptor document.
	TypeJSON string `json:"type_json,omitempty"`
	// Position is the ordinal of the parameter, informational only.
	Position int `json:"position"`
	// ParameterDefault is the default value as SQL/JSON text, empty when
	// the parameter has no default.
	ParameterDefault string `json:"parameter_default,omitempty"`
	// Comment is the parameter's documentation.
	Comment string `json:"comment,omitempty"`
}

// HasDefault reports whether the parameter may be omitted by the caller.
func (p *ParameterInfo) HasDefault() bool { return p.ParameterDefault != "" }

// FunctionInfo is the metadata of one catalog function, as resolved through
// a CatalogClient.
type FunctionInfo struct {
	CatalogName string          `json:"catalog_name"`
	SchemaName  string          `json:"schema_name"`
	Name        string          `json:"name"`
	Comment     string          `json:"comment,omitempty"`
	InputParams []ParameterInfo `json:"input_params,omitempty"`
	// DataType is the return type tag; TABLE_TYPE marks a table function.
	DataType uctype.TypeName `json:"data_type"`
	// FullDataType is the SQL-readable return type.
	FullDataType string `json:"full_data_type,omitempty"`
	// RoutineDefinition is the function body, when the caller may read it.
	RoutineDefinition string `json:"routine_definition,omitempty"`
}

// FullName returns the three-level <catalog>.<schema>.<function> name.
func (f *FunctionInfo) FullName() string {
	return fmt.Sprintf("%s.%s.%s", f.CatalogName, f.SchemaName, f.Name)
}

// IsScalar reports whether the function returns a single value rather than
// a row set.
func (f *FunctionInfo) IsScalar() bool { return f.DataType != uctype.TypeTable }

// FullFunctionName is a parsed <catalog>.<schema>.<function> triple.
type FullFunctionName struct {
	Catalog  string
	Schema   string
	Function string
}

func (n FullFunctionName) String() string {
	return fmt.Sprintf("%s.%s.%s", n.Catalog, n.Schema, n.Function)
}

// IsWildcard reports whether the function segment is the listing wildcard.
// Wildcards are only valid for listing, never for retrieval or execution.
func (n FullFunctionName) IsWildcard() bool { return strings.Contains(n.Function, "*") }

// ParseFullFunctionName validates that a function name follows the
// <catalog>.<schema>.<function> format and splits it.
func ParseFullFunctionName(name string) (FullFunctionName, error) {
	parts := strings.Split(name, ".")
	if len(parts) != 3 {
		return FullFunctionName{}, newError(CodeMalformedFunctionName,
			"invalid function name %q, expecting format <catalog_name>.<schema_name>.<function_name>", name)
	}
	return FullFunctionName{Catalog: parts[0], Schema: parts[1], Function: parts[2]}, nil
}

// createFunctionPattern matches the head of a CREATE FUNCTION statement and
// captures the (possibly qualified) function name.
var createFunctionPattern = regexp.MustCompile(
	`(?is)CREATE\s+(?:OR\s+REPLACE\s+)?(?:TEMPORARY\s+)?FUNCTION\s+(?:IF\s+NOT\s+EXISTS\s+)?([\w.]+)\s*\(`)

// ExtractFunctionName extracts the function name from a CREATE FUNCTION sql
// body. Useful when a function was created out-of-band and the caller wants
// to resolve what it created.
func ExtractFunctionName(sqlBody string) (string, error) {
	if m := createFunctionPattern.FindStringSubmatch(sqlBody); m != nil {
		return m[1], nil
	}
	return "", fmt.Errorf("could not extract function name from the sql body %q, "+
		"make sure it follows the CREATE FUNCTION statement syntax", sqlBody)
}
