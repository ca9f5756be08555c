package function

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/serena-ruan/unitycatalog-ai/uctype"
)

func TestValidateInputParams_RequiredAndDefaults(t *testing.T) {
	params := []ParameterInfo{
		{Name: "a", TypeName: uctype.TypeInt, TypeText: "int"},
		{Name: "b", TypeName: uctype.TypeString, TypeText: "string", ParameterDefault: `"x"`},
	}

	// Defaulted parameter may be omitted.
	assert.NoError(t, ValidateInputParams(params, map[string]any{"a": 1}))

	err := ValidateInputParams(params, map[string]any{"b": "y"})
	assert.Error(t, err)
	assert.Equal(t, CodeMissingRequiredParameter, ErrorCode(err))
	assert.Contains(t, err.Error(), "parameter a is required but not provided")
}

func TestValidateInputParams_NoDeclaredParams(t *testing.T) {
	assert.NoError(t, ValidateInputParams(nil, nil))
	assert.NoError(t, ValidateInputParams(nil, map[string]any{}))

	err := ValidateInputParams(nil, map[string]any{"x": 1, "a": 2})
	assert.Equal(t, CodeUnexpectedParameters, ErrorCode(err))
	// Deterministic key order in the message.
	assert.Contains(t, err.Error(), "{a: 2, x: 1}")
}

func TestValidateInputParams_ExtrasAndInvalidJoined(t *testing.T) {
	params := []ParameterInfo{
		{Name: "a", TypeName: uctype.TypeInt, TypeText: "int"},
	}
	err := ValidateInputParams(params, map[string]any{"a": "not an int", "b": true})
	assert.Error(t, err)

	// Both failures surface from a single call.
	assert.Contains(t, err.Error(), CodeExtraParameters)
	assert.Contains(t, err.Error(), CodeInvalidParameterTypes)
	assert.Contains(t, err.Error(), "{b: true}")
	assert.Contains(t, err.Error(), "parameter a should be of type INT")

	var fe *Error
	assert.True(t, errors.As(err, &fe))
}

func TestValidateValue_Shapes(t *testing.T) {
	cases := []struct {
		name  string
		param ParameterInfo
		value any
		code  string
	}{
		{"int ok", ParameterInfo{Name: "p", TypeName: uctype.TypeInt}, 1, ""},
		{"int from json number", ParameterInfo{Name: "p", TypeName: uctype.TypeInt}, float64(2), ""},
		{"int fractional", ParameterInfo{Name: "p", TypeName: uctype.TypeInt}, 2.5, CodeInvalidParameterTypes},
		{"string ok", ParameterInfo{Name: "p", TypeName: uctype.TypeString}, "s", ""},
		{"string wrong", ParameterInfo{Name: "p", TypeName: uctype.TypeString}, 1, CodeInvalidParameterTypes},
		{"bool ok", ParameterInfo{Name: "p", TypeName: uctype.TypeBoolean}, true, ""},
		{"double from int", ParameterInfo{Name: "p", TypeName: uctype.TypeDouble}, 3, ""},
		{"decimal value", ParameterInfo{Name: "p", TypeName: uctype.TypeDecimal}, decimal.NewFromFloat(1.5), ""},
		{"decimal from float", ParameterInfo{Name: "p", TypeName: uctype.TypeDecimal}, 1.5, ""},
		{"decimal wrong", ParameterInfo{Name: "p", TypeName: uctype.TypeDecimal}, "1.5", CodeInvalidParameterTypes},
		{"array ok", ParameterInfo{Name: "p", TypeName: uctype.TypeArray}, []any{1, 2}, ""},
		{"array not bytes", ParameterInfo{Name: "p", TypeName: uctype.TypeArray}, []byte("x"), CodeInvalidParameterTypes},
		{"map ok", ParameterInfo{Name: "p", TypeName: uctype.TypeMap}, map[string]any{"k": 1}, ""},
		{"struct ok", ParameterInfo{Name: "p", TypeName: uctype.TypeStruct}, map[string]any{"k": 1}, ""},
		{"binary bytes", ParameterInfo{Name: "p", TypeName: uctype.TypeBinary}, []byte{1, 2}, ""},
		{"unsupported tag", ParameterInfo{Name: "p", TypeName: "VARCHAR"}, "x", CodeUnsupportedType},
		{"decimal with precision", ParameterInfo{Name: "p", TypeName: "DECIMAL(10,2)"}, 1.25, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateValue(&tc.param, tc.value)
			if tc.code == "" {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tc.code, ErrorCode(err))
			}
		})
	}
}

func TestValidateValue_TemporalStrings(t *testing.T) {
	p := ParameterInfo{Name: "ts", TypeName: uctype.TypeTimestamp, TypeText: "timestamp"}

	assert.NoError(t, ValidateValue(&p, "2024-06-01"))
	assert.NoError(t, ValidateValue(&p, "2024-06-01T12:30:00"))
	assert.NoError(t, ValidateValue(&p, "2024-06-01 12:30:00.123456"))
	assert.NoError(t, ValidateValue(&p, "2024-06-01T12:30:00+02:00"))
	assert.NoError(t, ValidateValue(&p, time.Now()))

	err := ValidateValue(&p, "06/01/2024")
	assert.Equal(t, CodeInvalidTemporalString, ErrorCode(err))
	assert.Contains(t, err.Error(), "expecting ISO format")
}

func TestValidateValue_Intervals(t *testing.T) {
	dayTime := ParameterInfo{Name: "i", TypeName: uctype.TypeInterval, TypeText: "interval day to second"}
	yearMonth := ParameterInfo{Name: "i", TypeName: uctype.TypeInterval, TypeText: "interval year to month"}

	assert.NoError(t, ValidateValue(&dayTime, 90*time.Minute))
	assert.NoError(t, ValidateValue(&dayTime, "INTERVAL '0 1:30:0.0' DAY TO SECOND"))

	err := ValidateValue(&yearMonth, 90*time.Minute)
	assert.Equal(t, CodeUnsupportedIntervalKind, ErrorCode(err))

	err = ValidateValue(&dayTime, "1 day and a bit")
	assert.Equal(t, CodeMalformedIntervalString, ErrorCode(err))
}

func TestValidateValue_BinaryStrings(t *testing.T) {
	p := ParameterInfo{Name: "b", TypeName: uctype.TypeBinary, TypeText: "binary"}

	assert.NoError(t, ValidateValue(&p, "aGVsbG8="))

	err := ValidateValue(&p, "definitely not base64!!")
	assert.Equal(t, CodeMalformedBinaryString, ErrorCode(err))
	assert.Contains(t, err.Error(), "must be base64 encoded")
}

func TestParseISODateTime(t *testing.T) {
	ts, err := ParseISODateTime("2024-06-01T12:30:45.5")
	assert.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, time.Duration(ts.Nanosecond()))

	_, err = ParseISODateTime("next tuesday")
	assert.Error(t, err)
}
