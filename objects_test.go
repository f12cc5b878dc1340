package semicsv

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// named builds a NamedRow from alternating names and fields.
func named(pairs ...any) NamedRow {
	var r NamedRow
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i].(string), pairs[i+1].(Field))
	}
	return r
}

func TestReadObjects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		opts []Option
		want []NamedRow
	}{
		{
			name: "headerFromFirstRow",
			raw:  "a;b\n1;2\n11;22",
			want: []NamedRow{
				named("a", Number(1), "b", Number(2)),
				named("a", Number(11), "b", Number(22)),
			},
		},
		{
			name: "explicitColumns",
			raw:  "1;2\n11;22",
			opts: []Option{WithSeparator(';'), WithTerminator("\n"), WithColumns("a", "b")},
			want: []NamedRow{
				named("a", Number(1), "b", Number(2)),
				named("a", Number(11), "b", Number(22)),
			},
		},
		{
			name: "extraFieldsGetSynthesizedNames",
			raw:  "a\n1;2;3",
			want: []NamedRow{
				named("a", Number(1), "col1", Number(2), "col2", Number(3)),
			},
		},
		{
			name: "shortRowOmitsTrailingColumns",
			raw:  "a;b;c\nx",
			want: []NamedRow{
				named("a", String("x")),
			},
		},
		{
			name: "duplicateNamesOverwrite",
			raw:  "a;a\n1;2",
			want: []NamedRow{
				named("a", Number(2)),
			},
		},
		{
			name: "numericHeader",
			raw:  "1;2.5\nx;y",
			want: []NamedRow{
				named("1", String("x"), "2.5", String("y")),
			},
		},
		{
			name: "emptyColumnNameFallsBack",
			raw:  "1;2",
			opts: []Option{WithColumns("a", "")},
			want: []NamedRow{
				named("a", Number(1), "col1", Number(2)),
			},
		},
		{
			name: "blankRowYieldsEmptyObject",
			raw:  "a\n\n1",
			want: []NamedRow{
				{},
				named("a", Number(1)),
			},
		},
		{
			name: "noColumnsUsesHeader",
			raw:  "k\nv",
			opts: []Option{WithColumns()},
			want: []NamedRow{
				named("k", String("v")),
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ReadObjects(tc.raw, tc.opts...))
		})
	}
}

func TestReadObjectsEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ReadObjects(""))
	assert.Empty(t, ReadObjects("a;b"), "a header without data has no objects")
	assert.Empty(t, ReadObjects("", WithColumns("a")))
}

func TestReaderReadObjects(t *testing.T) {
	t.Parallel()

	r := NewReader(strings.NewReader("1;2\n3"))
	rows, err := r.ReadObjects("x", "y")
	require.NoError(t, err)
	assert.Equal(t, []NamedRow{
		named("x", Number(1), "y", Number(2)),
		named("x", Number(3)),
	}, rows)
}

func TestNamedRow(t *testing.T) {
	t.Parallel()

	var r NamedRow
	assert.Zero(t, r.Len())
	_, ok := r.Get("missing")
	assert.False(t, ok)

	r.Set("b", Number(1))
	r.Set("a", String("x"))
	r.Set("b", Number(2))

	assert.Equal(t, []string{"b", "a"}, r.Names())
	assert.Equal(t, 2, r.Len())
	v, ok := r.Get("b")
	require.True(t, ok)
	assert.Equal(t, Number(2), v)
	assert.Equal(t, map[string]Field{"a": String("x"), "b": Number(2)}, r.Map())

	names := r.Names()
	names[0] = "mutated"
	assert.Equal(t, []string{"b", "a"}, r.Names(), "Names must return a copy")
}

func TestNamedRowMarshalJSON(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal([]NamedRow{named("z", Number(1), "a", String("q\"")), {}})
	require.NoError(t, err)
	assert.Equal(t, `[{"z":1,"a":"q\""},{}]`, string(out))
}
