package function

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/serena-ruan/unitycatalog-ai/uctype"
)

// InputSchema compiles a function's declared parameter list into a named
// record type describing the expected caller input. The record is named
// <catalog>__<schema>__<function>__params so schemas for distinct functions
// never collide.
//
// Per parameter: the nested type_json descriptor compiles through
// uctype.Compile; a declared default is parsed from its JSON text and noted
// in the description as "(Default: ...)"; a nullable parameter without a
// default compiles as optional.
func InputSchema(fi *FunctionInfo) (uctype.NativeType, error) {
	name := fmt.Sprintf("%s__%s__%s__params",
		fi.CatalogName, fi.SchemaName, fi.Name)

	fields := make([]uctype.Field, 0, len(fi.InputParams))
	for i := range fi.InputParams {
		field, err := paramField(&fi.InputParams[i])
		if err != nil {
			return uctype.NativeType{}, err
		}
		fields = append(fields, field)
	}
	return uctype.NativeType{Kind: uctype.KindRecord, Name: name, Fields: fields}, nil
}

func paramField(p *ParameterInfo) (uctype.Field, error) {
	pd, err := uctype.ParseParamDescriptor(p.TypeJSON)
	if err != nil {
		return uctype.Field{}, fmt.Errorf("parameter %s: %w", p.Name, err)
	}
	nt, err := uctype.Compile(pd.Type)
	if err != nil {
		return uctype.Field{}, &Error{
			Code:    CodeUnsupportedType,
			Message: fmt.Sprintf("parameter %s: %v", p.Name, err),
		}
	}

	field := uctype.Field{
		Name:        p.Name,
		Type:        nt,
		Description: strings.TrimSpace(p.Comment),
		Required:    true,
	}
	if p.HasDefault() {
		// Defaults are only supported for LANGUAGE SQL functions; the text
		// is JSON for literals and passed through verbatim otherwise.
		var v any
		if err := json.Unmarshal([]byte(p.ParameterDefault), &v); err == nil {
			field.Default = v
		} else {
			field.Default = p.ParameterDefault
		}
		field.HasDefault = true
		field.Required = false
		field.Description = strings.TrimSpace(
			fmt.Sprintf("%s (Default: %s)", field.Description, p.ParameterDefault))
	} else if pd.Nullable {
		field.Type = uctype.Optional(field.Type)
		field.Required = false
	}
	return field, nil
}
