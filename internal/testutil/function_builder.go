package testutil

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/serena-ruan/unitycatalog-ai/function"
	"github.com/serena-ruan/unitycatalog-ai/uctype"
)

// RandomFunctionName returns a short unique function name for fixtures.
func RandomFunctionName() string {
	return fmt.Sprintf("test_%s", uuid.NewString()[:4])
}

// FunctionBuilder constructs FunctionInfo fixtures with fluent chaining.
// Example:
//
//	fi := NewFunctionBuilder("ml", "sch", "add").
//		Param("x", uctype.TypeInt, "int").
//		Param("y", uctype.TypeInt, "int").
//		Returns(uctype.TypeInt).
//		Build()
type FunctionBuilder struct {
	info function.FunctionInfo
}

// NewFunctionBuilder creates a builder for a scalar STRING function with the
// given three-level name.
func NewFunctionBuilder(catalog, schema, name string) *FunctionBuilder {
	return &FunctionBuilder{info: function.FunctionInfo{
		CatalogName: catalog,
		SchemaName:  schema,
		Name:        name,
		DataType:    uctype.TypeString,
	}}
}

// Param appends a declared parameter, assigning the next position. The
// type_json document is synthesized for primitive tags (chainable).
func (b *FunctionBuilder) Param(name string, tag uctype.TypeName, typeText string) *FunctionBuilder {
	return b.ParamInfo(function.ParameterInfo{
		Name:     name,
		TypeName: tag,
		TypeText: typeText,
		TypeJSON: fmt.Sprintf(`{"name":%q,"type":%q,"nullable":false,"metadata":{}}`, name, typeText),
	})
}

// ParamWithDefault appends a declared parameter carrying a default value
// rendered as JSON text (chainable).
func (b *FunctionBuilder) ParamWithDefault(name string, tag uctype.TypeName, typeText, defaultJSON string) *FunctionBuilder {
	return b.ParamInfo(function.ParameterInfo{
		Name:             name,
		TypeName:         tag,
		TypeText:         typeText,
		TypeJSON:         fmt.Sprintf(`{"name":%q,"type":%q,"nullable":false,"metadata":{}}`, name, typeText),
		ParameterDefault: defaultJSON,
	})
}

// ParamInfo appends a fully specified parameter (chainable).
func (b *FunctionBuilder) ParamInfo(p function.ParameterInfo) *FunctionBuilder {
	p.Position = len(b.info.InputParams)
	b.info.InputParams = append(b.info.InputParams, p)
	return b
}

// NoParams marks the function as declaring no input parameters (chainable).
func (b *FunctionBuilder) NoParams() *FunctionBuilder {
	b.info.InputParams = nil
	return b
}

// Returns sets the function return type tag (chainable).
func (b *FunctionBuilder) Returns(tag uctype.TypeName) *FunctionBuilder {
	b.info.DataType = tag
	return b
}

// Comment sets the function documentation (chainable).
func (b *FunctionBuilder) Comment(c string) *FunctionBuilder {
	b.info.Comment = c
	return b
}

// Build returns the assembled FunctionInfo.
func (b *FunctionBuilder) Build() *function.FunctionInfo {
	info := b.info
	return &info
}
