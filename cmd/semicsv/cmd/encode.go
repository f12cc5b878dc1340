package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tidwall/jsonc"

	"github.com/oleg578/semicsv"
)

var errNotArray = errors.New("input must be a JSON array")

func newEncodeCommand(root *options) *cobra.Command {
	return &cobra.Command{
		Use:   "encode [file]",
		Short: "Print a JSON array as CSV",
		Long: `Read a JSON (or JSONC) array from a file or stdin and print it as CSV.

The array may hold arrays (one per row), objects (a header row is written
from the keys of the first object, in document order) or scalars (one value
per row). Nested arrays and objects inside a row are written as compact JSON.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, name, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer src.Close()

			data, err := io.ReadAll(src)
			if err != nil {
				return fmt.Errorf("reading %s: %w", name, err)
			}
			rows, err := decodeJSONRows(jsonc.ToJSON(data))
			if err != nil {
				return fmt.Errorf("parsing %s: %w", name, err)
			}
			root.logger.Debug("encoding rows", "source", name, "rows", len(rows))

			_, err = io.WriteString(cmd.OutOrStdout(), semicsv.Write(rows, root.csvOptions()...))
			return err
		},
	}
}

// decodeJSONRows decodes a top-level JSON array into values Write understands: a semicsv.Row
// for every array, a semicsv.NamedRow for every object and a semicsv.Field otherwise.
func decodeJSONRows(data []byte) ([]any, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, errNotArray
		}
		return nil, err
	}
	if items == nil {
		return nil, errNotArray
	}

	rows := make([]any, 0, len(items))
	for _, item := range items {
		switch firstByte(item) {
		case '[':
			var cells []json.RawMessage
			if err := json.Unmarshal(item, &cells); err != nil {
				return nil, err
			}
			row := make(semicsv.Row, 0, len(cells))
			for _, c := range cells {
				f, err := jsonField(c)
				if err != nil {
					return nil, err
				}
				row = append(row, f)
			}
			rows = append(rows, row)
		case '{':
			row, err := jsonObject(item)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		default:
			f, err := jsonField(item)
			if err != nil {
				return nil, err
			}
			rows = append(rows, f)
		}
	}
	return rows, nil
}

// jsonObject decodes an object token by token so the key order survives.
func jsonObject(data []byte) (semicsv.NamedRow, error) {
	var row semicsv.NamedRow
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return row, err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return row, err
		}
		key, ok := tok.(string)
		if !ok {
			return row, fmt.Errorf("unexpected object key %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return row, err
		}
		f, err := jsonField(raw)
		if err != nil {
			return row, err
		}
		row.Set(key, f)
	}
	_, err := dec.Token()
	return row, err
}

func jsonField(raw json.RawMessage) (semicsv.Field, error) {
	switch firstByte(raw) {
	case 'n':
		return semicsv.Field{}, nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return semicsv.Field{}, err
		}
		return semicsv.String(s), nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return semicsv.Field{}, err
		}
		return semicsv.String(strconv.FormatBool(b)), nil
	case '[', '{':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return semicsv.Field{}, err
		}
		return semicsv.String(buf.String()), nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return semicsv.Field{}, err
	}
	f, err := n.Float64()
	if err != nil {
		return semicsv.Field{}, fmt.Errorf("number %s: %w", n, err)
	}
	return semicsv.Number(f), nil
}

func firstByte(raw []byte) byte {
	raw = bytes.TrimLeft(raw, " \t\r\n")
	if len(raw) == 0 {
		return 0
	}
	return raw[0]
}
