package uctype

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Compound descriptor kinds as they appear in type_json documents.
const (
	kindArray  = "array"
	kindMap    = "map"
	kindStruct = "struct"
)

// Descriptor is a parsed Unity Catalog type node: either a primitive tag or
// a compound array/map/struct descriptor. It unmarshals from the two wire
// encodings used in type_json documents, a bare string ("string") or an
// object ({"type":"array","elementType":...,"containsNull":true}).
type Descriptor struct {
	// Tag is the primitive type tag; empty for compound descriptors.
	Tag string

	// Kind is "array", "map" or "struct" for compound descriptors.
	Kind string

	// Array descriptors.
	Element         *Descriptor
	ElementNullable bool

	// Map descriptors. Keys must be strings.
	KeyType       string
	Value         *Descriptor
	ValueNullable bool

	// Struct descriptors, in declared field order.
	Fields []StructField

	raw json.RawMessage
}

// StructField is one declared field of a struct descriptor.
type StructField struct {
	Name     string
	Type     *Descriptor
	Nullable bool
	Comment  string
}

// IsPrimitive reports whether the descriptor is a bare type tag.
func (d *Descriptor) IsPrimitive() bool { return d.Kind == "" }

// UnmarshalJSON accepts either a primitive tag string or a compound
// descriptor object.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	d.raw = append(json.RawMessage(nil), data...)

	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		d.Tag = tag
		return nil
	}

	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return fmt.Errorf("malformed type descriptor: %w", err)
	}

	switch head.Type {
	case kindArray:
		var node struct {
			ElementType  *Descriptor `json:"elementType"`
			ContainsNull bool        `json:"containsNull"`
		}
		if err := json.Unmarshal(data, &node); err != nil {
			return fmt.Errorf("malformed array descriptor: %w", err)
		}
		d.Kind = kindArray
		d.Element = node.ElementType
		d.ElementNullable = node.ContainsNull
	case kindMap:
		var node struct {
			KeyType           string      `json:"keyType"`
			ValueType         *Descriptor `json:"valueType"`
			ValueContainsNull bool        `json:"valueContainsNull"`
		}
		if err := json.Unmarshal(data, &node); err != nil {
			return fmt.Errorf("malformed map descriptor: %w", err)
		}
		d.Kind = kindMap
		d.KeyType = node.KeyType
		d.Value = node.ValueType
		d.ValueNullable = node.ValueContainsNull
	case kindStruct:
		var node struct {
			Fields []struct {
				Name     string         `json:"name"`
				Type     *Descriptor    `json:"type"`
				Nullable bool           `json:"nullable"`
				Metadata map[string]any `json:"metadata"`
			} `json:"fields"`
		}
		if err := json.Unmarshal(data, &node); err != nil {
			return fmt.Errorf("malformed struct descriptor: %w", err)
		}
		d.Kind = kindStruct
		for _, f := range node.Fields {
			field := StructField{Name: f.Name, Type: f.Type, Nullable: f.Nullable}
			if c, ok := f.Metadata["comment"].(string); ok {
				field.Comment = c
			}
			d.Fields = append(d.Fields, field)
		}
	default:
		return fmt.Errorf("unknown type descriptor kind %q", head.Type)
	}
	return nil
}

// CanonicalJSON returns an order-independent serialization of the descriptor
// suitable for content hashing: object keys are sorted by re-encoding the
// decoded document through Go's map marshaling.
func (d *Descriptor) CanonicalJSON() ([]byte, error) {
	if len(d.raw) == 0 {
		return nil, fmt.Errorf("descriptor was not decoded from JSON")
	}
	var doc any
	if err := json.Unmarshal(d.raw, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// ParamDescriptor is the top-level type_json document attached to a declared
// function parameter.
type ParamDescriptor struct {
	Name     string         `json:"name"`
	Type     *Descriptor    `json:"type"`
	Nullable bool           `json:"nullable"`
	Metadata map[string]any `json:"metadata"`
}

// ParseParamDescriptor decodes a parameter's type_json document.
func ParseParamDescriptor(typeJSON string) (*ParamDescriptor, error) {
	if strings.TrimSpace(typeJSON) == "" {
		return nil, fmt.Errorf("parameter type json is empty")
	}
	var pd ParamDescriptor
	if err := json.Unmarshal([]byte(typeJSON), &pd); err != nil {
		return nil, fmt.Errorf("malformed parameter type json: %w", err)
	}
	if pd.Type == nil {
		return nil, fmt.Errorf("parameter type json has no type node")
	}
	return &pd, nil
}
