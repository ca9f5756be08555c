package tool

import (
	"github.com/serena-ruan/unitycatalog-ai/docstring"
	"github.com/serena-ruan/unitycatalog-ai/uctype"
)

// JSONSchema renders a compiled NativeType as a minimal JSON-Schema-like
// map, the shape agent frameworks expect for tool parameters. Records become
// objects with properties and a required list; unions of distinct shapes
// become anyOf.
func JSONSchema(t uctype.NativeType) map[string]any {
	switch t.Kind {
	case uctype.KindString, uctype.KindBytes, uctype.KindDuration:
		// bytes travel base64 encoded; durations as interval literals
		return map[string]any{"type": "string"}
	case uctype.KindTime:
		return map[string]any{"type": "string", "format": "date-time"}
	case uctype.KindBool:
		return map[string]any{"type": "boolean"}
	case uctype.KindInteger:
		return map[string]any{"type": "integer"}
	case uctype.KindFloat, uctype.KindDecimal:
		return map[string]any{"type": "number"}
	case uctype.KindNull:
		return map[string]any{"type": "null"}
	case uctype.KindOptional:
		return JSONSchema(*t.Elem)
	case uctype.KindSequence:
		return map[string]any{"type": "array", "items": JSONSchema(*t.Elem)}
	case uctype.KindMapping:
		return map[string]any{"type": "object", "additionalProperties": JSONSchema(*t.Elem)}
	case uctype.KindUnion:
		return unionSchema(t.Alternatives)
	case uctype.KindRecord:
		properties := make(map[string]any, len(t.Fields))
		required := make([]string, 0, len(t.Fields))
		for _, f := range t.Fields {
			fs := JSONSchema(f.Type)
			if f.Description != "" {
				fs["description"] = f.Description
			}
			if f.HasDefault {
				fs["default"] = f.Default
			}
			properties[f.Name] = fs
			if f.Required {
				required = append(required, f.Name)
			}
		}
		schema := map[string]any{
			"type":       "object",
			"title":      t.Name,
			"properties": properties,
		}
		if len(required) > 0 {
			schema["required"] = required
		}
		return schema
	default:
		return map[string]any{}
	}
}

// unionSchema collapses alternatives that render identically (e.g. a
// time/string temporal union) before falling back to anyOf.
func unionSchema(alts []uctype.NativeType) map[string]any {
	var rendered []map[string]any
	for _, alt := range alts {
		s := JSONSchema(alt)
		duplicate := false
		for _, seen := range rendered {
			if schemaEqual(seen, s) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			rendered = append(rendered, s)
		}
	}
	if len(rendered) == 1 {
		return rendered[0]
	}
	anyOf := make([]any, len(rendered))
	for i, s := range rendered {
		anyOf[i] = s
	}
	return map[string]any{"anyOf": anyOf}
}

func schemaEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok {
			return false
		}
		am, aIsMap := av.(map[string]any)
		bm, bIsMap := bv.(map[string]any)
		if aIsMap != bIsMap {
			return false
		}
		if aIsMap {
			if !schemaEqual(am, bm) {
				return false
			}
		} else if av != bv {
			return false
		}
	}
	return true
}

// EnrichSchema fills empty field descriptions of a record type from parsed
// docstring parameter descriptions. Existing descriptions win.
func EnrichSchema(t *uctype.NativeType, info docstring.Info) {
	if t.Kind != uctype.KindRecord || len(info.Params) == 0 {
		return
	}
	for i := range t.Fields {
		if t.Fields[i].Description == "" {
			if desc, ok := info.Params[t.Fields[i].Name]; ok {
				t.Fields[i].Description = desc
			}
		}
	}
}
