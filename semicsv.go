// # SemiCSV: A Minimal Semicolon-Separated Values Reader and Writer for Go
//
// SemiCSV converts between a raw delimiter-separated text buffer and in-memory rows of fields. The whole
// document is held in memory; parsing is a single quote-aware scan and never fails.
//
// # Features
//
// - Quote-aware tokenizer: separators, terminators and doubled quotes inside "quoted" fields are kept literally.
// - Light typing: unquoted fields that look like `123` or `12.5` decode as numbers, everything else stays text.
// - Object mapping via `ReadObjects`, using the first row or caller-supplied names as column names.
// - `Write` accepts rows of values, rows of named values, or a single column of scalars.
// - `Reader` and `Writer` adapters for io.Reader and io.Writer.
//
// # Defaults
//
// The separator defaults to ';'. Reading splits rows on '\n' (DefaultReadTerminator) while writing terminates
// rows with "\r\n" (DefaultWriteTerminator). The asymmetry is intentional and kept for compatibility; pass
// WithTerminator to pin both sides to the same value.
//
// # Quirks
//
// Zero-length fields are dropped while parsing, so "a;;b" yields two fields. Quoted fields are never coerced to
// numbers, while unquoted numeric text loses formatting ("007" reads as 7). Round-tripping through Read and Write
// is exact only for non-numeric text without quotes, separators or terminators.
package semicsv

const (
	// DefaultSeparator separates fields within a row.
	DefaultSeparator byte = ';'
	// DefaultReadTerminator separates rows when reading.
	DefaultReadTerminator byte = '\n'
	// DefaultWriteTerminator terminates every row when writing.
	DefaultWriteTerminator = "\r\n"

	quote = '"'
)
