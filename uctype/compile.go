package uctype

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Compile converts a parsed type descriptor into a NativeType.
//
// Primitive tags resolve through the type mapping table; a tag accepting
// several value shapes compiles to a union. Unknown tags with a DECIMAL
// prefix (the tag carries precision and scale) compile to a decimal/float
// union; any other unknown tag is an UnsupportedTypeError. Compound
// descriptors recurse: array elements and map values are wrapped as optional
// when the descriptor allows nulls, and struct descriptors produce a
// deterministically named record (see recordName).
func Compile(d *Descriptor) (NativeType, error) {
	if d == nil {
		return NativeType{}, fmt.Errorf("nil type descriptor")
	}
	if d.IsPrimitive() {
		return compilePrimitive(d.Tag)
	}

	switch d.Kind {
	case kindArray:
		elem, err := Compile(d.Element)
		if err != nil {
			return NativeType{}, err
		}
		if d.ElementNullable {
			elem = Optional(elem)
		}
		return NativeType{Kind: KindSequence, Elem: &elem}, nil

	case kindMap:
		if d.KeyType != "string" {
			return NativeType{}, &UnsupportedTypeError{
				Type: fmt.Sprintf("MAP key type %q (only STRING keys are supported)", d.KeyType),
			}
		}
		value, err := Compile(d.Value)
		if err != nil {
			return NativeType{}, err
		}
		if d.ValueNullable {
			value = Optional(value)
		}
		return NativeType{Kind: KindMapping, Elem: &value}, nil

	case kindStruct:
		name, err := recordName(d)
		if err != nil {
			return NativeType{}, err
		}
		fields := make([]Field, 0, len(d.Fields))
		for _, f := range d.Fields {
			ft, err := Compile(f.Type)
			if err != nil {
				return NativeType{}, err
			}
			if f.Nullable {
				ft = Optional(ft)
			}
			fields = append(fields, Field{
				Name:        f.Name,
				Type:        ft,
				Required:    !f.Nullable,
				Description: f.Comment,
			})
		}
		return NativeType{Kind: KindRecord, Name: name, Fields: fields}, nil

	default:
		return NativeType{}, &UnsupportedTypeError{Type: d.Kind}
	}
}

func compilePrimitive(tag string) (NativeType, error) {
	name := TypeName(strings.ToUpper(tag))
	shapes, ok := jsonShapes[name]
	if !ok {
		if strings.HasPrefix(string(name), string(TypeDecimal)) {
			shapes = jsonShapes[TypeDecimal]
		} else {
			return NativeType{}, &UnsupportedTypeError{Type: tag, Supported: supportedTags(jsonShapes)}
		}
	}
	alts := make([]NativeType, len(shapes))
	for i, s := range shapes {
		alts[i] = shapeType(s)
	}
	return Union(alts...), nil
}

func shapeType(s Shape) NativeType {
	switch s {
	case ShapeString:
		return NativeType{Kind: KindString}
	case ShapeBool:
		return NativeType{Kind: KindBool}
	case ShapeInteger:
		return NativeType{Kind: KindInteger}
	case ShapeFloat:
		return NativeType{Kind: KindFloat}
	case ShapeBytes:
		return NativeType{Kind: KindBytes}
	case ShapeDecimal:
		return NativeType{Kind: KindDecimal}
	case ShapeTime:
		return NativeType{Kind: KindTime}
	case ShapeDuration:
		return NativeType{Kind: KindDuration}
	case ShapeSequence:
		elem := NativeType{Kind: KindAny}
		return NativeType{Kind: KindSequence, Elem: &elem}
	case ShapeMapping:
		elem := NativeType{Kind: KindAny}
		return NativeType{Kind: KindMapping, Elem: &elem}
	case ShapeNull:
		return NativeType{Kind: KindNull}
	default:
		return NativeType{Kind: KindAny}
	}
}

// recordName derives a stable name for a compiled struct descriptor:
// "Struct_" plus the first 8 hex characters of an FNV-32a hash over the
// descriptor's canonical JSON form. The same descriptor always compiles to
// the same name so generated record types can be cached by callers, while
// descriptors differing in any field, type or nullability hash apart.
func recordName(d *Descriptor) (string, error) {
	canonical, err := d.CanonicalJSON()
	if err != nil {
		return "", err
	}
	h := fnv.New32a()
	h.Write(canonical)
	return fmt.Sprintf("Struct_%08x", h.Sum32()), nil
}
