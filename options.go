package semicsv

// Option customises Read, ReadObjects and Write.
type Option func(*config)

type config struct {
	sep     byte
	term    string
	columns []string
}

// WithSeparator sets the field separator. Zero keeps DefaultSeparator.
func WithSeparator(sep byte) Option {
	return func(c *config) {
		if sep != 0 {
			c.sep = sep
		}
	}
}

// WithTerminator sets the row terminator. An empty string keeps the default of the operation.
//
// Reading splits rows on a single byte, so a longer terminator is reduced to its final byte:
// "\r\n" splits on '\n' and the leftover '\r' is trimmed from unquoted fields.
func WithTerminator(term string) Option {
	return func(c *config) {
		if term != "" {
			c.term = term
		}
	}
}

// WithColumns names the columns for ReadObjects. Without it, or with no names, the first row of
// the document supplies them. Write ignores it.
func WithColumns(names ...string) Option {
	return func(c *config) {
		c.columns = names
	}
}

func newConfig(term string, opts []Option) config {
	c := config{sep: DefaultSeparator, term: term}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

func (c config) readTerminator() byte {
	return c.term[len(c.term)-1]
}
