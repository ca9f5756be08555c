package function

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/serena-ruan/unitycatalog-ai/logging"
	"github.com/serena-ruan/unitycatalog-ai/uctype"
)

// StatementParameter is one named literal binding passed out-of-band with a
// parameterized statement. Type carries the remote type text where the
// server needs it to parse the literal.
type StatementParameter struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
	Type  string `json:"type,omitempty"`
}

// ParameterizedStatement couples a SQL call expression with its ordered
// literal bindings. Statements are produced fresh per execution and never
// mutated afterwards.
type ParameterizedStatement struct {
	Statement  string
	Parameters []StatementParameter
}

// BuildStatement emits the SQL call expression and bindings for one
// function invocation. Scalar functions are called through
// SELECT IDENTIFIER(:function_name)(...); table functions through
// SELECT * FROM <full_name>(...).
//
// Arguments are emitted in declared parameter order. Once a parameter is
// omitted (relying on its remote-side default), every subsequent argument
// uses name => value syntax, since positional arguments can no longer line
// up.
//
// Binding strategy per type: complex values (ARRAY/MAP/STRUCT) are JSON
// encoded and restored server-side via from_json with the parameter's type
// text; BINARY values go through unbase64; temporal values are bound as
// ISO-8601 text; durations are rendered as day-to-second interval literals;
// exact-precision decimals are coerced to float with a precision-loss
// warning; everything else is passed through verbatim with its type text.
func BuildStatement(fi *FunctionInfo, provided map[string]any, logger logging.Logger) (*ParameterizedStatement, error) {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}

	var sb strings.Builder
	var bindings []StatementParameter

	if fi.IsScalar() {
		sb.WriteString("SELECT IDENTIFIER(:function_name)(")
		bindings = append(bindings, StatementParameter{Name: "function_name", Value: fi.FullName()})
	} else {
		// IDENTIFIER() cannot be used in the FROM clause
		fmt.Fprintf(&sb, "SELECT * FROM %s(", fi.FullName())
	}

	if len(provided) > 0 {
		var args []string
		useNamedArgs := false
		for i := range fi.InputParams {
			p := &fi.InputParams[i]
			value, ok := provided[p.Name]
			if !ok {
				// Validation guaranteed a default exists; switch to named
				// arguments for the rest of the list.
				useNamedArgs = true
				continue
			}
			clause, extra, err := buildArg(p, value, useNamedArgs, logger)
			if err != nil {
				return nil, err
			}
			args = append(args, clause)
			bindings = append(bindings, extra...)
		}
		sb.WriteString(strings.Join(args, ","))
	}
	sb.WriteString(")")

	return &ParameterizedStatement{Statement: sb.String(), Parameters: bindings}, nil
}

func buildArg(p *ParameterInfo, value any, named bool, logger logging.Logger) (string, []StatementParameter, error) {
	var clause strings.Builder
	if named {
		fmt.Fprintf(&clause, "%s => ", p.Name)
	}

	switch {
	case p.TypeName == uctype.TypeArray || p.TypeName == uctype.TypeMap || p.TypeName == uctype.TypeStruct:
		// from_json restores values of complex types server-side.
		encoded, err := json.Marshal(value)
		if err != nil {
			return "", nil, fmt.Errorf("cannot JSON-encode value for parameter %s: %w", p.Name, err)
		}
		fmt.Fprintf(&clause, "from_json(:%s, :%s_type)", p.Name, p.Name)
		return clause.String(), []StatementParameter{
			{Name: p.Name, Value: string(encoded)},
			{Name: p.Name + "_type", Value: p.TypeText},
		}, nil

	case p.TypeName == uctype.TypeBinary:
		// unbase64 restores binary values server-side.
		fmt.Fprintf(&clause, "unbase64(:%s)", p.Name)
		encoded := value
		if raw, ok := value.([]byte); ok {
			encoded = base64.StdEncoding.EncodeToString(raw)
		}
		return clause.String(), []StatementParameter{{Name: p.Name, Value: encoded}}, nil

	case uctype.IsTemporal(p.TypeName):
		text, ok := value.(string)
		if !ok {
			text = formatTemporal(p.TypeName, value.(time.Time))
		}
		fmt.Fprintf(&clause, ":%s", p.Name)
		return clause.String(), []StatementParameter{{Name: p.Name, Value: text, Type: p.TypeText}}, nil

	case p.TypeName == uctype.TypeInterval:
		text, ok := value.(string)
		if !ok {
			text = FormatDurationInterval(value.(time.Duration))
		}
		fmt.Fprintf(&clause, ":%s", p.Name)
		return clause.String(), []StatementParameter{{Name: p.Name, Value: text, Type: p.TypeText}}, nil

	default:
		if d, ok := value.(decimal.Decimal); ok && p.TypeName == uctype.TypeDecimal {
			logger.Warn("decimal parameter converted to float for execution, the conversion may lose precision",
				"parameter", p.Name, "value", d.String())
			value = d.InexactFloat64()
		}
		fmt.Fprintf(&clause, ":%s", p.Name)
		return clause.String(), []StatementParameter{{Name: p.Name, Value: value, Type: p.TypeText}}, nil
	}
}

func formatTemporal(t uctype.TypeName, v time.Time) string {
	if t == uctype.TypeDate {
		return v.Format("2006-01-02")
	}
	if t == uctype.TypeTimestampNTZ {
		return v.Format("2006-01-02T15:04:05.999999")
	}
	return v.Format("2006-01-02T15:04:05.999999Z07:00")
}

// FormatDurationInterval renders a duration as the day-to-second interval
// literal accepted by the SQL parser, e.g.
// INTERVAL '1 3:16:40.123456' DAY TO SECOND. Fields are rendered as plain
// integers without zero padding.
func FormatDurationInterval(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	micros := d.Microseconds()
	days := micros / microsPerDay
	micros -= days * microsPerDay
	hours := micros / microsPerHour
	micros -= hours * microsPerHour
	minutes := micros / microsPerMinute
	micros -= minutes * microsPerMinute
	seconds := micros / microsPerSecond
	micros -= seconds * microsPerSecond
	return fmt.Sprintf("INTERVAL '%s%d %d:%d:%d.%d' DAY TO SECOND", sign, days, hours, minutes, seconds, micros)
}

const (
	microsPerSecond = int64(1000000)
	microsPerMinute = 60 * microsPerSecond
	microsPerHour   = 60 * microsPerMinute
	microsPerDay    = 24 * microsPerHour
)

var intervalPattern = regexp.MustCompile(
	`^INTERVAL '(-?)(\d+) (\d+):(\d+):(\d+)(?:\.(\d{1,6}))?' DAY TO SECOND$`)

// ParseDurationInterval parses a day-to-second interval literal back into a
// duration; the inverse of FormatDurationInterval. The fractional field is
// read as a plain microsecond count, mirroring how FormatDurationInterval
// renders it.
func ParseDurationInterval(s string) (time.Duration, error) {
	m := intervalPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, newError(CodeMalformedIntervalString,
			"invalid interval string %q, expecting format `INTERVAL 'd h:m:s.us' DAY TO SECOND`", s)
	}
	fields := make([]int64, 5)
	for i, part := range m[2:] {
		if part == "" {
			continue
		}
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return 0, newError(CodeMalformedIntervalString, "invalid interval field %q in %q", part, s)
		}
		fields[i] = n
	}
	total := fields[0]*microsPerDay + fields[1]*microsPerHour + fields[2]*microsPerMinute +
		fields[3]*microsPerSecond + fields[4]
	if m[1] == "-" {
		total = -total
	}
	return time.Duration(total) * time.Microsecond, nil
}
