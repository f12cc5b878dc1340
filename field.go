package semicsv

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// numericLiteral matches digits with an optional fractional part. Signs, exponents and a leading
// decimal point are deliberately not numbers.
var numericLiteral = regexp.MustCompile(`^\d+(\.\d+)?$`)

type fieldKind uint8

const (
	kindNull fieldKind = iota
	kindString
	kindNumber
)

// Field is a single decoded cell: a string, a number, or null (the zero value).
type Field struct {
	kind fieldKind
	str  string
	num  float64
}

// String returns a text Field holding s.
func String(s string) Field {
	return Field{kind: kindString, str: s}
}

// Number returns a numeric Field holding f.
func Number(f float64) Field {
	return Field{kind: kindNumber, num: f}
}

// IsNull reports whether f carries no value.
func (f Field) IsNull() bool { return f.kind == kindNull }

// IsNumber reports whether f holds a number.
func (f Field) IsNumber() bool { return f.kind == kindNumber }

// Str returns the text value and whether f holds text.
func (f Field) Str() (string, bool) {
	return f.str, f.kind == kindString
}

// Float returns the numeric value and whether f holds a number.
func (f Field) Float() (float64, bool) {
	return f.num, f.kind == kindNumber
}

// Value returns the underlying string or float64, or nil for a null Field.
func (f Field) Value() any {
	switch f.kind {
	case kindString:
		return f.str
	case kindNumber:
		return f.num
	}
	return nil
}

// String renders f as text: strings verbatim, numbers in their shortest decimal form, null as "".
func (f Field) String() string {
	switch f.kind {
	case kindString:
		return f.str
	case kindNumber:
		return strconv.FormatFloat(f.num, 'f', -1, 64)
	}
	return ""
}

// MarshalJSON encodes f as a JSON string, number or null.
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value())
}

// IsNumeric reports whether s looks like a number to the decoder: one or more ASCII digits,
// optionally followed by a decimal point and more digits.
func IsNumeric(s string) bool {
	return numericLiteral.MatchString(s)
}

// Decode converts the raw text of one field into a Field.
//
// Text wrapped in double quotes has the outer pair removed and doubled quotes collapsed; it always
// stays a string. Anything else is trimmed, has doubled quotes collapsed, and becomes a number when
// it passes IsNumeric.
func Decode(raw string) Field {
	if n := len(raw); n >= 2 && raw[0] == quote && raw[n-1] == quote {
		return String(unescapeQuotes(raw[1 : n-1]))
	}

	v := unescapeQuotes(strings.TrimSpace(raw))
	if IsNumeric(v) {
		// The pattern admits only valid syntax, so the sole failure is ErrRange, which still yields ±Inf.
		f, _ := strconv.ParseFloat(v, 64)
		return Number(f)
	}
	return String(v)
}

func unescapeQuotes(s string) string {
	if !strings.Contains(s, `""`) {
		return s
	}
	return strings.ReplaceAll(s, `""`, `"`)
}
