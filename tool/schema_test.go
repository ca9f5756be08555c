package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serena-ruan/unitycatalog-ai/docstring"
	"github.com/serena-ruan/unitycatalog-ai/uctype"
)

func TestJSONSchema_Primitives(t *testing.T) {
	cases := []struct {
		in   uctype.NativeType
		want map[string]any
	}{
		{uctype.NativeType{Kind: uctype.KindString}, map[string]any{"type": "string"}},
		{uctype.NativeType{Kind: uctype.KindBytes}, map[string]any{"type": "string"}},
		{uctype.NativeType{Kind: uctype.KindDuration}, map[string]any{"type": "string"}},
		{uctype.NativeType{Kind: uctype.KindTime}, map[string]any{"type": "string", "format": "date-time"}},
		{uctype.NativeType{Kind: uctype.KindBool}, map[string]any{"type": "boolean"}},
		{uctype.NativeType{Kind: uctype.KindInteger}, map[string]any{"type": "integer"}},
		{uctype.NativeType{Kind: uctype.KindFloat}, map[string]any{"type": "number"}},
		{uctype.NativeType{Kind: uctype.KindDecimal}, map[string]any{"type": "number"}},
		{uctype.NativeType{Kind: uctype.KindNull}, map[string]any{"type": "null"}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, JSONSchema(tc.in))
	}
}

func TestJSONSchema_Compound(t *testing.T) {
	intType := uctype.NativeType{Kind: uctype.KindInteger}

	seq := uctype.NativeType{Kind: uctype.KindSequence, Elem: &intType}
	assert.Equal(t, map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "integer"},
	}, JSONSchema(seq))

	mapping := uctype.NativeType{Kind: uctype.KindMapping, Elem: &intType}
	assert.Equal(t, map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "integer"},
	}, JSONSchema(mapping))

	// Optional renders as its element; nullability is expressed through the
	// record's required list instead.
	assert.Equal(t, map[string]any{"type": "integer"}, JSONSchema(uctype.Optional(intType)))
}

func TestJSONSchema_Unions(t *testing.T) {
	// Alternatives that render identically collapse to a single schema.
	duration := uctype.Union(
		uctype.NativeType{Kind: uctype.KindDuration},
		uctype.NativeType{Kind: uctype.KindString},
	)
	assert.Equal(t, map[string]any{"type": "string"}, JSONSchema(duration))

	// Distinct renderings remain an anyOf.
	temporal := uctype.Union(
		uctype.NativeType{Kind: uctype.KindTime},
		uctype.NativeType{Kind: uctype.KindString},
	)
	assert.Equal(t, map[string]any{
		"anyOf": []any{
			map[string]any{"type": "string", "format": "date-time"},
			map[string]any{"type": "string"},
		},
	}, JSONSchema(temporal))
}

func TestJSONSchema_Record(t *testing.T) {
	record := uctype.NativeType{
		Kind: uctype.KindRecord,
		Name: "cat__sch__fn__params",
		Fields: []uctype.Field{
			{Name: "a", Type: uctype.NativeType{Kind: uctype.KindInteger}, Required: true, Description: "first"},
			{Name: "b", Type: uctype.NativeType{Kind: uctype.KindString}, HasDefault: true, Default: "x"},
		},
	}

	schema := JSONSchema(record)
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, "cat__sch__fn__params", schema["title"])
	assert.Equal(t, []string{"a"}, schema["required"])

	props := schema["properties"].(map[string]any)
	require.Contains(t, props, "a")
	require.Contains(t, props, "b")
	a := props["a"].(map[string]any)
	assert.Equal(t, "first", a["description"])
	b := props["b"].(map[string]any)
	assert.Equal(t, "x", b["default"])
}

func TestJSONSchema_RecordWithoutRequiredFields(t *testing.T) {
	record := uctype.NativeType{
		Kind:   uctype.KindRecord,
		Name:   "r",
		Fields: []uctype.Field{{Name: "a", Type: uctype.NativeType{Kind: uctype.KindInteger}}},
	}
	_, present := JSONSchema(record)["required"]
	assert.False(t, present)
}

func TestEnrichSchema(t *testing.T) {
	record := uctype.NativeType{
		Kind: uctype.KindRecord,
		Fields: []uctype.Field{
			{Name: "a", Type: uctype.NativeType{Kind: uctype.KindInteger}},
			{Name: "b", Type: uctype.NativeType{Kind: uctype.KindString}, Description: "already set"},
		},
	}
	EnrichSchema(&record, docstring.Info{Params: map[string]string{
		"a": "from docstring",
		"b": "would overwrite",
	}})

	assert.Equal(t, "from docstring", record.Fields[0].Description)
	// Metadata descriptions win over docstring text.
	assert.Equal(t, "already set", record.Fields[1].Description)
}
