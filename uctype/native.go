package uctype

// NativeKind discriminates the variants of a NativeType.
type NativeKind int

const (
	KindString NativeKind = iota
	KindBool
	KindInteger
	KindFloat
	KindBytes
	KindDecimal
	KindTime
	KindDuration
	KindNull
	KindAny
	KindUnion
	KindOptional
	KindSequence
	KindMapping
	KindRecord
)

// String returns the kind name used in messages and tests.
func (k NativeKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBytes:
		return "bytes"
	case KindDecimal:
		return "decimal"
	case KindTime:
		return "time"
	case KindDuration:
		return "duration"
	case KindNull:
		return "null"
	case KindAny:
		return "any"
	case KindUnion:
		return "union"
	case KindOptional:
		return "optional"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindRecord:
		return "record"
	default:
		return "unknown"
	}
}

// NativeType is the tagged-union result of compiling a remote type
// descriptor. Only the fields relevant to Kind are populated:
//
//	KindUnion    -> Alternatives
//	KindOptional -> Elem
//	KindSequence -> Elem (element type)
//	KindMapping  -> Elem (value type; keys are always strings)
//	KindRecord   -> Name, Fields (ordered)
//
// All other kinds are leaf primitives.
type NativeType struct {
	Kind         NativeKind
	Alternatives []NativeType
	Elem         *NativeType
	Name         string
	Fields       []Field
}

// Field is one named member of a record type.
type Field struct {
	Name        string
	Type        NativeType
	Required    bool
	Description string
	Default     any
	HasDefault  bool
}

// Optional wraps a type as nullable. Already-optional types are returned
// unchanged.
func Optional(t NativeType) NativeType {
	if t.Kind == KindOptional {
		return t
	}
	return NativeType{Kind: KindOptional, Elem: &t}
}

// Union collapses a list of alternatives: a single alternative is returned
// as-is rather than wrapped.
func Union(alts ...NativeType) NativeType {
	if len(alts) == 1 {
		return alts[0]
	}
	return NativeType{Kind: KindUnion, Alternatives: alts}
}
