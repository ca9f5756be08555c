package uctype

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TypeName is the primitive classification tag of a Unity Catalog column
// type, as reported in function parameter metadata.
type TypeName string

// The closed set of primitive column type tags.
const (
	TypeArray           TypeName = "ARRAY"
	TypeBinary          TypeName = "BINARY"
	TypeBoolean         TypeName = "BOOLEAN"
	TypeByte            TypeName = "BYTE"
	TypeChar            TypeName = "CHAR"
	TypeDate            TypeName = "DATE"
	TypeDecimal         TypeName = "DECIMAL"
	TypeDouble          TypeName = "DOUBLE"
	TypeFloat           TypeName = "FLOAT"
	TypeInt             TypeName = "INT"
	TypeInterval        TypeName = "INTERVAL"
	TypeLong            TypeName = "LONG"
	TypeMap             TypeName = "MAP"
	TypeNull            TypeName = "NULL"
	TypeShort           TypeName = "SHORT"
	TypeString          TypeName = "STRING"
	TypeStruct          TypeName = "STRUCT"
	TypeTable           TypeName = "TABLE_TYPE"
	TypeTimestamp       TypeName = "TIMESTAMP"
	TypeTimestampNTZ    TypeName = "TIMESTAMP_NTZ"
	TypeUserDefined     TypeName = "USER_DEFINED_TYPE"
	TypeInteger         TypeName = "INTEGER"                // alias used in type_json documents
	TypeIntervalDayTime TypeName = "INTERVAL DAY TO SECOND" // compound tag used in type_json documents
)

// Shape identifies one Go value shape a column type accepts. A column type
// may accept several shapes, e.g. BINARY accepts both raw bytes and a base64
// string.
type Shape int

const (
	ShapeString Shape = iota
	ShapeBool
	ShapeInteger
	ShapeFloat
	ShapeBytes
	ShapeSequence
	ShapeMapping
	ShapeDecimal
	ShapeTime
	ShapeDuration
	ShapeNull
	ShapeAny
)

// String returns the human readable shape name used in validation messages.
func (s Shape) String() string {
	switch s {
	case ShapeString:
		return "string"
	case ShapeBool:
		return "bool"
	case ShapeInteger:
		return "integer"
	case ShapeFloat:
		return "float"
	case ShapeBytes:
		return "bytes"
	case ShapeSequence:
		return "slice"
	case ShapeMapping:
		return "map"
	case ShapeDecimal:
		return "decimal"
	case ShapeTime:
		return "time"
	case ShapeDuration:
		return "duration"
	case ShapeNull:
		return "nil"
	case ShapeAny:
		return "any"
	default:
		return "unknown"
	}
}

// columnShapes maps each primitive column type tag to the value shapes it
// accepts during parameter validation.
var columnShapes = map[TypeName][]Shape{
	TypeArray:   {ShapeSequence},
	TypeBinary:  {ShapeBytes, ShapeString},
	TypeBoolean: {ShapeBool},
	TypeByte:    {ShapeInteger},
	TypeChar:    {ShapeString},
	TypeDate:    {ShapeTime, ShapeString},
	// no precision and scale check, rely on the SQL function to validate
	TypeDecimal:  {ShapeDecimal, ShapeFloat},
	TypeDouble:   {ShapeFloat},
	TypeFloat:    {ShapeFloat},
	TypeInt:      {ShapeInteger},
	TypeInterval: {ShapeDuration, ShapeString},
	TypeLong:     {ShapeInteger},
	TypeMap:      {ShapeMapping},
	// NULL is not supported as a return data type either
	TypeNull:   {ShapeNull},
	TypeShort:  {ShapeInteger},
	TypeString: {ShapeString},
	TypeStruct: {ShapeMapping},
	// not allowed for python udf, callers should only pass a string
	TypeTable:        {ShapeString},
	TypeTimestamp:    {ShapeTime, ShapeString},
	TypeTimestampNTZ: {ShapeTime, ShapeString},
	// defined engine-side, the client cannot force a check here
	TypeUserDefined: {ShapeAny},
}

// jsonShapes extends columnShapes with the extra tags that appear inside
// type_json documents. In that context BINARY values must already be a
// base64 string expression.
var jsonShapes = func() map[TypeName][]Shape {
	m := make(map[TypeName][]Shape, len(columnShapes)+2)
	for k, v := range columnShapes {
		m[k] = v
	}
	m[TypeInteger] = []Shape{ShapeInteger}
	m[TypeBinary] = []Shape{ShapeBytes}
	m[TypeIntervalDayTime] = []Shape{ShapeDuration, ShapeString}
	return m
}()

// ShapesFor returns the accepted value shapes for a column type tag. Type
// text carrying a precision/scale suffix (e.g. DECIMAL(10,2)) resolves to
// the same acceptance as plain DECIMAL.
func ShapesFor(t TypeName) ([]Shape, error) {
	if shapes, ok := columnShapes[t]; ok {
		return shapes, nil
	}
	if strings.HasPrefix(string(t), string(TypeDecimal)) {
		return columnShapes[TypeDecimal], nil
	}
	return nil, &UnsupportedTypeError{Type: string(t), Supported: supportedTags(columnShapes)}
}

// IsTemporal reports whether the column type holds a date or timestamp.
// String values for temporal types must parse as ISO-8601.
func IsTemporal(t TypeName) bool {
	switch t {
	case TypeDate, TypeTimestamp, TypeTimestampNTZ:
		return true
	default:
		return false
	}
}

// CheckValue reports whether the value matches at least one of the accepted
// shapes. A nil value only matches ShapeNull and ShapeAny.
func CheckValue(v any, shapes []Shape) bool {
	for _, s := range shapes {
		if matchesShape(v, s) {
			return true
		}
	}
	return false
}

func matchesShape(v any, s Shape) bool {
	if s == ShapeAny {
		return true
	}
	if v == nil {
		return s == ShapeNull
	}
	switch s {
	case ShapeString:
		_, ok := v.(string)
		return ok
	case ShapeBool:
		_, ok := v.(bool)
		return ok
	case ShapeInteger:
		switch n := v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return true
		case float64:
			// JSON decoding produces float64 for all numbers
			return n == float64(int64(n))
		}
		return false
	case ShapeFloat:
		switch v.(type) {
		case float32, float64, int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64:
			return true
		}
		return false
	case ShapeBytes:
		_, ok := v.([]byte)
		return ok
	case ShapeDecimal:
		_, ok := v.(decimal.Decimal)
		return ok
	case ShapeTime:
		_, ok := v.(time.Time)
		return ok
	case ShapeDuration:
		_, ok := v.(time.Duration)
		return ok
	case ShapeSequence:
		if _, ok := v.([]byte); ok {
			return false
		}
		k := reflect.TypeOf(v).Kind()
		return k == reflect.Slice || k == reflect.Array
	case ShapeMapping:
		return reflect.TypeOf(v).Kind() == reflect.Map
	case ShapeNull:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
			return rv.IsNil()
		}
		return false
	default:
		return false
	}
}

// ShapeNames renders a shape list for validation messages, e.g.
// "time or string".
func ShapeNames(shapes []Shape) string {
	names := make([]string, len(shapes))
	for i, s := range shapes {
		names[i] = s.String()
	}
	return strings.Join(names, " or ")
}

// UnsupportedTypeError is returned for a column type tag outside the
// supported set, or for a map descriptor with a non-string key type. It is a
// configuration error, not a runtime validation error.
type UnsupportedTypeError struct {
	Type      string
	Supported []string
}

func (e *UnsupportedTypeError) Error() string {
	if len(e.Supported) == 0 {
		return fmt.Sprintf("type %s is not supported", e.Type)
	}
	return fmt.Sprintf("type %s is not supported, supported types are: %s",
		e.Type, strings.Join(e.Supported, ", "))
}

func supportedTags(m map[TypeName][]Shape) []string {
	tags := make([]string, 0, len(m))
	for t := range m {
		tags = append(tags, string(t))
	}
	sort.Strings(tags)
	return tags
}
