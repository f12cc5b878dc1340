package semicsv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

const writeBufferSize = 1 << 10

var (
	errNilWriter      = errors.New("semicsv: writer is nil")
	errWriterNoTarget = errors.New("semicsv: writer destination cannot be nil")

	// ErrUnsupportedShape is returned by Writer.WriteAll for input that is not a slice.
	ErrUnsupportedShape = errors.New("semicsv: rows must be a slice of rows, named rows or scalars")
)

type fieldWriter interface {
	io.StringWriter
	io.ByteWriter
}

// Write encodes rows as text and returns it. rows may be:
//
//   - rows of values: []Row, [][]Field, [][]any, [][]string, [][]float64;
//   - named rows: []NamedRow, []map[string]Field, []map[string]any, preceded by a header line;
//   - a column of scalars: []Field, []string, []float64, []int, or any other slice.
//
// A []any is classified by its first element. Named rows take their columns from the first row
// only; plain maps have no order, so their keys are sorted. Every row, the last included, is
// followed by the terminator, which defaults to DefaultWriteTerminator. Empty or unsupported
// input yields "".
func Write(rows any, opts ...Option) string {
	cfg := newConfig(DefaultWriteTerminator, opts)

	var sb strings.Builder
	w := NewWriter(&sb)
	w.Comma = cfg.sep
	w.Terminator = cfg.term
	if err := w.WriteAll(rows); err != nil {
		return ""
	}
	if err := w.Flush(); err != nil {
		return ""
	}
	return sb.String()
}

// Encode renders a single value as field text.
//
// nil and null Fields are empty. A string is emitted as is when it looks numeric or contains
// neither a quote, sep nor term; otherwise it is quoted with inner quotes doubled. Other values
// are converted to their canonical text and never quoted.
func Encode(v any, sep byte, term string) string {
	var sb strings.Builder
	_ = writeField(&sb, v, sep, term)
	return sb.String()
}

// Writer emits encoded rows to an io.Writer through an internal buffer.
type Writer struct {
	dst *bufio.Writer

	// Comma is the field separator. Default is ';'.
	Comma byte
	// Terminator follows every row. Default is "\r\n".
	Terminator string

	err error
}

// NewWriter creates a Writer targeting w, panicking if w is nil.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		panic(errWriterNoTarget.Error())
	}
	return &Writer{
		dst:        bufio.NewWriterSize(w, writeBufferSize),
		Comma:      DefaultSeparator,
		Terminator: DefaultWriteTerminator,
	}
}

// Reset updates the underlying writer while preserving the configuration.
func (w *Writer) Reset(dst io.Writer) {
	if w == nil {
		panic(errNilWriter.Error())
	}
	if dst == nil {
		panic(errWriterNoTarget.Error())
	}
	if w.dst == nil {
		w.dst = bufio.NewWriterSize(dst, writeBufferSize)
	} else {
		w.dst.Reset(dst)
	}
	w.err = nil
}

// Write emits a single row followed by the terminator.
func (w *Writer) Write(record Row) error {
	return w.writeRecord(len(record), func(i int) any { return record[i] })
}

// WriteAll emits rows in any of the shapes accepted by the package-level Write, including the
// header line for named rows. It stops at the first error.
func (w *Writer) WriteAll(rows any) error {
	if w == nil {
		return errNilWriter
	}

	switch rs := rows.(type) {
	case nil:
		return nil
	case []Row:
		for _, row := range rs {
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	case [][]Field:
		for _, row := range rs {
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	case []NamedRow:
		if len(rs) == 0 {
			return nil
		}
		return w.writeNamed(rs[0].Names(), len(rs), func(i int, name string) any {
			if v, ok := rs[i].Get(name); ok {
				return v
			}
			return nil
		})
	case []map[string]Field:
		if len(rs) == 0 {
			return nil
		}
		return w.writeNamed(sortedKeys(rs[0]), len(rs), func(i int, name string) any {
			if v, ok := rs[i][name]; ok {
				return v
			}
			return nil
		})
	case []map[string]any:
		if len(rs) == 0 {
			return nil
		}
		return w.writeNamed(sortedKeys(rs[0]), len(rs), func(i int, name string) any {
			return rs[i][name]
		})
	case []any:
		return w.writeAny(rs)
	}

	// Remaining shapes ([][]string, []float64, ...) go through reflection into the []any path.
	v := reflect.ValueOf(rows)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return ErrUnsupportedShape
	}
	items := make([]any, v.Len())
	for i := range items {
		items[i] = v.Index(i).Interface()
	}
	return w.writeAny(items)
}

// Flush flushes pending buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	if w == nil {
		return errNilWriter
	}
	return w.err
}

// writeAny dispatches on the first element: slices are rows, named rows and maps are named
// rows, anything else is a column of scalars. Later elements of a different shape are written
// as a single-field row or, for named rows, as a row of empty fields.
func (w *Writer) writeAny(items []any) error {
	if len(items) == 0 {
		return nil
	}

	if names, ok := namedColumns(items[0]); ok {
		return w.writeNamed(names, len(items), func(i int, name string) any {
			return lookup(items[i], name)
		})
	}

	if _, ok := values(items[0]); ok {
		for _, item := range items {
			record, ok := values(item)
			if !ok {
				record = []any{item}
			}
			if err := w.writeRecord(len(record), func(i int) any { return record[i] }); err != nil {
				return err
			}
		}
		return nil
	}

	for _, item := range items {
		if err := w.writeRecord(1, func(int) any { return item }); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeNamed(names []string, n int, field func(i int, name string) any) error {
	if err := w.writeRecord(len(names), func(i int) any { return names[i] }); err != nil {
		return err
	}
	for row := 0; row < n; row++ {
		if err := w.writeRecord(len(names), func(i int) any { return field(row, names[i]) }); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeRecord(n int, field func(i int) any) error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}

	comma, term := w.delimiters()
	for i := 0; i < n; i++ {
		if i > 0 {
			if err := w.dst.WriteByte(comma); err != nil {
				w.err = err
				return err
			}
		}
		if err := writeField(w.dst, field(i), comma, term); err != nil {
			w.err = err
			return err
		}
	}
	if _, err := w.dst.WriteString(term); err != nil {
		w.err = err
		return err
	}
	return nil
}

func (w *Writer) delimiters() (comma byte, term string) {
	comma = w.Comma
	if comma == 0 {
		comma = DefaultSeparator
	}
	term = w.Terminator
	if term == "" {
		term = DefaultWriteTerminator
	}
	return comma, term
}

func writeField(dst fieldWriter, v any, comma byte, term string) error {
	field, needsQuote := fieldText(v, comma, term)
	if !needsQuote {
		_, err := dst.WriteString(field)
		return err
	}
	if err := dst.WriteByte(quote); err != nil {
		return err
	}

	start := 0
	for i := 0; i < len(field); i++ {
		if field[i] == quote {
			if _, err := dst.WriteString(field[start : i+1]); err != nil {
				return err
			}
			if err := dst.WriteByte(quote); err != nil {
				return err
			}
			start = i + 1
		}
	}
	if start < len(field) {
		if _, err := dst.WriteString(field[start:]); err != nil {
			return err
		}
	}
	return dst.WriteByte(quote)
}

// fieldText returns the unquoted text of v and whether it must be quoted.
func fieldText(v any, comma byte, term string) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, fieldNeedsQuote(x, comma, term)
	case Field:
		if s, ok := x.Str(); ok {
			return s, fieldNeedsQuote(s, comma, term)
		}
		return x.String(), false
	case *Field:
		if x == nil {
			return "", false
		}
		return fieldText(*x, comma, term)
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v), false
	}
	return s, false
}

func fieldNeedsQuote(field string, comma byte, term string) bool {
	if IsNumeric(field) {
		return false
	}
	return strings.IndexByte(field, quote) >= 0 ||
		strings.IndexByte(field, comma) >= 0 ||
		strings.Contains(field, term)
}

func namedColumns(item any) ([]string, bool) {
	switch x := item.(type) {
	case NamedRow:
		return x.Names(), true
	case *NamedRow:
		if x == nil {
			return nil, true
		}
		return x.Names(), true
	case map[string]Field:
		return sortedKeys(x), true
	case map[string]any:
		return sortedKeys(x), true
	}
	return nil, false
}

func lookup(item any, name string) any {
	switch x := item.(type) {
	case NamedRow:
		if v, ok := x.Get(name); ok {
			return v
		}
	case *NamedRow:
		if x == nil {
			return nil
		}
		return lookup(*x, name)
	case map[string]Field:
		if v, ok := x[name]; ok {
			return v
		}
	case map[string]any:
		return x[name]
	}
	return nil
}

// values returns item as a row of values when it is a slice, excluding byte slices.
func values(item any) ([]any, bool) {
	switch x := item.(type) {
	case []any:
		return x, true
	case Row:
		return fieldValues(x), true
	case []Field:
		return fieldValues(x), true
	case []byte, nil:
		return nil, false
	}

	v := reflect.ValueOf(item)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, v.Len())
	for i := range out {
		out[i] = v.Index(i).Interface()
	}
	return out, true
}

func fieldValues(fields []Field) []any {
	out := make([]any, len(fields))
	for i, f := range fields {
		out[i] = f
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
