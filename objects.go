package semicsv

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// NamedRow maps column names to fields and remembers the order in which names were first set.
// The zero value is an empty row ready to use.
type NamedRow struct {
	names  []string
	values map[string]Field
}

// Set assigns v to name. A name that is already present keeps its position and takes the new value.
func (r *NamedRow) Set(name string, v Field) {
	if r.values == nil {
		r.values = make(map[string]Field)
	}
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = v
}

// Get returns the field stored under name.
func (r NamedRow) Get(name string) (Field, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Names returns the column names in insertion order.
func (r NamedRow) Names() []string {
	return append([]string(nil), r.names...)
}

// Len returns the number of columns present.
func (r NamedRow) Len() int { return len(r.names) }

// Map returns a copy of the row as a plain map.
func (r NamedRow) Map() map[string]Field {
	m := make(map[string]Field, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

// MarshalJSON encodes the row as a JSON object with keys in insertion order.
func (r NamedRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := r.values[name].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ReadObjects parses raw and returns every data row as a NamedRow.
//
// Column names come from WithColumns or, failing that, from the first row, which is then not
// returned as data. Fields beyond the known names are called col<index> (0-based); rows shorter
// than the names simply lack the trailing columns. Duplicate names are not disambiguated, the
// later field wins.
func ReadObjects(raw string, opts ...Option) []NamedRow {
	cfg := newConfig(string(DefaultReadTerminator), opts)
	return nameRows(parse(raw, cfg.sep, cfg.readTerminator()), cfg.columns)
}

func nameRows(rows []Row, columns []string) []NamedRow {
	if len(columns) == 0 {
		if len(rows) == 0 {
			return nil
		}
		columns = make([]string, len(rows[0]))
		for i, f := range rows[0] {
			columns[i] = f.String()
		}
		rows = rows[1:]
	}

	out := make([]NamedRow, len(rows))
	for i, row := range rows {
		for idx, v := range row {
			out[i].Set(columnName(columns, idx), v)
		}
	}
	return out
}

func columnName(columns []string, idx int) string {
	if idx < len(columns) && columns[idx] != "" {
		return columns[idx]
	}
	return "col" + strconv.Itoa(idx)
}
