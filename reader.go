package semicsv

import (
	"fmt"
	"io"
)

// Row is one parsed record, fields in document order.
type Row []Field

// Read parses raw into rows. It never fails: unbalanced quotes simply absorb the rest of the
// buffer, and an empty buffer yields no rows.
func Read(raw string, opts ...Option) []Row {
	cfg := newConfig(string(DefaultReadTerminator), opts)
	return parse(raw, cfg.sep, cfg.readTerminator())
}

// Reader parses rows from an io.Reader. The whole source is buffered on the first call, then
// rows are handed out one at a time.
type Reader struct {
	src io.Reader

	// Comma is the field separator. Default is ';'.
	Comma byte
	// Terminator is the row separator. Default is '\n'.
	Terminator byte

	raw    string
	pos    int
	loaded bool
	err    error
}

// NewReader creates a Reader consuming r, panicking if r is nil.
func NewReader(r io.Reader) *Reader {
	if r == nil {
		panic("semicsv: reader source cannot be nil")
	}
	return &Reader{
		src:        r,
		Comma:      DefaultSeparator,
		Terminator: DefaultReadTerminator,
	}
}

// Read returns the next row. io.EOF signals that no rows remain; any other error comes from the
// underlying source and is returned on every later call.
func (r *Reader) Read() (Row, error) {
	if r == nil || r.src == nil {
		return nil, io.EOF
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	if r.pos >= len(r.raw) {
		return nil, io.EOF
	}

	comma, term := r.delimiters()
	rowEnd := indexUnquoted(r.raw, r.pos, len(r.raw), term)
	row := parseRow(r.raw, r.pos, rowEnd, comma)
	r.pos = rowEnd + 1
	return row, nil
}

// ReadAll collects the remaining rows. A nil error means the source was read to the end.
func (r *Reader) ReadAll() (rows []Row, err error) {
	for {
		row, err := r.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// ReadObjects collects the remaining rows as named rows. With no columns the next row supplies
// the names.
func (r *Reader) ReadObjects(columns ...string) ([]NamedRow, error) {
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	return nameRows(rows, columns), nil
}

func (r *Reader) load() error {
	if r.err != nil {
		return r.err
	}
	if r.loaded {
		return nil
	}
	data, err := io.ReadAll(r.src)
	if err != nil {
		r.err = fmt.Errorf("semicsv: reading source: %w", err)
		return r.err
	}
	r.raw = string(data)
	r.loaded = true
	return nil
}

func (r *Reader) delimiters() (comma, term byte) {
	comma = r.Comma
	if comma == 0 {
		comma = DefaultSeparator
	}
	term = r.Terminator
	if term == 0 {
		term = DefaultReadTerminator
	}
	return comma, term
}
