package function

import (
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/serena-ruan/unitycatalog-ai/uctype"
)

// ValidateInputParams checks a caller-supplied value mapping against the
// function's declared parameter list. All checks run before any network
// call:
//
//   - a nil declared list with a non-empty mapping fails with
//     UNEXPECTED_PARAMETERS, enumerating the mapping;
//   - each declared parameter without a default must be present
//     (MISSING_REQUIRED_PARAMETER);
//   - provided keys not declared are collected and reported together
//     (EXTRA_PARAMETERS);
//   - type and structural mismatches across all provided parameters are
//     collected and reported together (INVALID_PARAMETER_TYPES), mapping
//     parameter name to a human message.
//
// When both extras and type mismatches exist the two errors are joined so a
// single round-trip surfaces every problem.
func ValidateInputParams(params []ParameterInfo, provided map[string]any) error {
	if params == nil {
		if len(provided) > 0 {
			return &Error{
				Code:    CodeUnexpectedParameters,
				Message: fmt.Sprintf("function does not have input parameters, but parameters %s were provided", formatParamMap(provided)),
				Details: provided,
			}
		}
		return nil
	}

	declared := make(map[string]*ParameterInfo, len(params))
	for i := range params {
		p := &params[i]
		declared[p.Name] = p
		if !p.HasDefault() {
			if _, ok := provided[p.Name]; !ok {
				return newError(CodeMissingRequiredParameter,
					"parameter %s is required but not provided", p.Name)
			}
		}
	}

	extras := map[string]any{}
	for name, value := range provided {
		if _, ok := declared[name]; !ok {
			extras[name] = value
		}
	}

	invalid := map[string]string{}
	for _, p := range params {
		value, ok := provided[p.Name]
		if !ok {
			continue
		}
		if err := ValidateValue(&p, value); err != nil {
			invalid[p.Name] = err.Error()
		}
	}

	var errs []error
	if len(extras) > 0 {
		errs = append(errs, &Error{
			Code: CodeExtraParameters,
			Message: fmt.Sprintf("extra parameters provided that are not defined in the function's input parameters: %s",
				formatParamMap(extras)),
			Details: extras,
		})
	}
	if len(invalid) > 0 {
		errs = append(errs, &Error{
			Code:    CodeInvalidParameterTypes,
			Message: fmt.Sprintf("invalid parameters provided: %v", invalid),
			Details: invalid,
		})
	}
	return errors.Join(errs...)
}

// ValidateValue checks one value against its declared parameter: first the
// accepted value shapes from the type mapping table, then the per-type
// structural rules (ISO-8601 for temporal strings, interval kind and
// format, base64 for binary strings).
func ValidateValue(p *ParameterInfo, value any) error {
	shapes, err := uctype.ShapesFor(p.TypeName)
	if err != nil {
		return &Error{Code: CodeUnsupportedType, Message: err.Error()}
	}
	if !uctype.CheckValue(value, shapes) {
		return newError(CodeInvalidParameterTypes,
			"parameter %s should be of type %s (accepting %s), but got %T",
			p.Name, p.TypeName, uctype.ShapeNames(shapes), value)
	}

	switch {
	case uctype.IsTemporal(p.TypeName):
		if s, ok := value.(string); ok {
			if _, err := ParseISODateTime(s); err != nil {
				return newError(CodeInvalidTemporalString,
					"invalid datetime string %q, expecting ISO format", s)
			}
		}
	case p.TypeName == uctype.TypeInterval:
		// only day-time intervals are supported, no year-month intervals
		switch v := value.(type) {
		case time.Duration:
			if p.TypeText != "interval day to second" {
				return newError(CodeUnsupportedIntervalKind,
					"invalid interval type text %q, expecting 'interval day to second': "+
						"a duration value can only be used for day-time intervals", p.TypeText)
			}
		case string:
			if !strings.HasPrefix(v, "INTERVAL") || !strings.HasSuffix(v, "DAY TO SECOND") {
				return newError(CodeMalformedIntervalString,
					"invalid interval string %q, expecting format "+
						"`INTERVAL '[+|-] d[...] [h]h:[m]m:[s]s.ms[ms][ms][us][us][us]' DAY TO SECOND`", v)
			}
		}
	case p.TypeName == uctype.TypeBinary:
		if s, ok := value.(string); ok {
			if _, err := base64.StdEncoding.DecodeString(s); err != nil {
				return newError(CodeMalformedBinaryString,
					"the string input for column type BINARY must be base64 encoded, invalid input: %s", s)
			}
		}
	}
	return nil
}

// isoDateTimeLayouts are the ISO-8601 forms accepted for temporal string
// values, most specific first.
var isoDateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseISODateTime parses an ISO-8601 date or datetime string.
func ParseISODateTime(s string) (time.Time, error) {
	for _, layout := range isoDateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO-8601 datetime string: %q", s)
}

// formatParamMap renders a parameter mapping with deterministic key order
// for error messages.
func formatParamMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", k, m[k])
	}
	b.WriteString("}")
	return b.String()
}
