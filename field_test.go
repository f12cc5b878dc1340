package semicsv

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want Field
	}{
		{name: "plainText", raw: "alpha", want: String("alpha")},
		{name: "integer", raw: "42", want: Number(42)},
		{name: "decimal", raw: "12.50", want: Number(12.5)},
		{name: "leadingZeros", raw: "007", want: Number(7)},
		{name: "surroundingSpace", raw: "  beta\t", want: String("beta")},
		{name: "spacedNumber", raw: " 3 ", want: Number(3)},
		{name: "carriageReturn", raw: "gamma\r", want: String("gamma")},
		{name: "negativeStaysText", raw: "-1", want: String("-1")},
		{name: "exponentStaysText", raw: "1e5", want: String("1e5")},
		{name: "leadingPointStaysText", raw: ".5", want: String(".5")},
		{name: "trailingPointStaysText", raw: "5.", want: String("5.")},
		{name: "quoted", raw: `"alpha"`, want: String("alpha")},
		{name: "quotedNumberStaysText", raw: `"12"`, want: String("12")},
		{name: "quotedKeepsSpace", raw: `" padded "`, want: String(" padded ")},
		{name: "quotedEscapes", raw: `"he said ""hi"""`, want: String(`he said "hi"`)},
		{name: "quotedSeparator", raw: `"b;c"`, want: String("b;c")},
		{name: "emptyQuoted", raw: `""`, want: String("")},
		{name: "loneQuote", raw: `"`, want: String(`"`)},
		{name: "unquotedEscape", raw: `ab""c`, want: String(`ab"c`)},
		{name: "unbalancedQuote", raw: `"open`, want: String(`"open`)},
		{name: "spaceBeforeQuote", raw: ` "x"`, want: String(`"x"`)},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Decode(tc.raw))
		})
	}
}

func TestDecodeHugeNumber(t *testing.T) {
	t.Parallel()

	raw := "1"
	for len(raw) < 400 {
		raw += "0"
	}
	f, ok := Decode(raw).Float()
	require.True(t, ok)
	assert.True(t, math.IsInf(f, 1))
}

func TestIsNumeric(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"0", "12", "007", "1.5", "10.25"} {
		assert.True(t, IsNumeric(s), s)
	}
	for _, s := range []string{"", "a1", "1a", "+1", "-1", "1.", ".1", "1.2.3", "1e3", " 1", "١٢"} {
		assert.False(t, IsNumeric(s), s)
	}
}

func TestFieldAccessors(t *testing.T) {
	t.Parallel()

	var null Field
	assert.True(t, null.IsNull())
	assert.Nil(t, null.Value())
	assert.Equal(t, "", null.String())

	s := String("text")
	str, ok := s.Str()
	assert.True(t, ok)
	assert.Equal(t, "text", str)
	_, ok = s.Float()
	assert.False(t, ok)
	assert.False(t, s.IsNumber())
	assert.Equal(t, "text", s.Value())

	n := Number(2.5)
	f, ok := n.Float()
	assert.True(t, ok)
	assert.InDelta(t, 2.5, f, 0)
	_, ok = n.Str()
	assert.False(t, ok)
	assert.True(t, n.IsNumber())
	assert.Equal(t, "2.5", n.String())
	assert.Equal(t, "11", Number(11).String())
}

func TestFieldMarshalJSON(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal(Row{String("a"), Number(1.5), {}})
	require.NoError(t, err)
	assert.JSONEq(t, `["a",1.5,null]`, string(out))
}
