package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oleg578/semicsv"
)

var errUnknownFormat = errors.New("unknown output format")

type decodeOptions struct {
	objects bool
	columns []string
	format  string
}

func newDecodeCommand(root *options) *cobra.Command {
	opts := &decodeOptions{}

	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Parse CSV and print the rows as JSON, YAML or TOML",
		Long: `Parse CSV from a file or stdin.

Rows are printed as arrays of values. With --objects the first row names the
columns and every other row is printed as an object; --columns supplies the
names instead and implies --objects.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, root, opts, args)
		},
	}

	cmd.Flags().BoolVarP(&opts.objects, "objects", "o", false, "map rows to objects named by the header row")
	cmd.Flags().StringSliceVarP(&opts.columns, "columns", "c", nil, "column names, comma separated")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "output format: json, yaml or toml")
	return cmd
}

func runDecode(cmd *cobra.Command, root *options, opts *decodeOptions, args []string) error {
	src, name, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer src.Close()

	r := semicsv.NewReader(src)
	r.Comma = root.sep()
	if term := root.term(); term != "" {
		r.Terminator = term[len(term)-1]
	}

	var doc any
	var count int
	if opts.objects || len(opts.columns) > 0 {
		rows, err := r.ReadObjects(opts.columns...)
		if err != nil {
			return err
		}
		doc, count = rows, len(rows)
	} else {
		rows, err := r.ReadAll()
		if err != nil {
			return err
		}
		doc, count = rows, len(rows)
	}
	root.logger.Debug("decoded csv", "source", name, "rows", count, "format", opts.format)

	return render(cmd.OutOrStdout(), opts.format, doc)
}

func render(w io.Writer, format string, doc any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml", "yml":
		node, err := yamlDocument(doc)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(map[string]any{"rows": tomlRows(doc)})
	}
	return fmt.Errorf("%w %q", errUnknownFormat, format)
}

// yamlDocument builds a node tree so object keys keep their column order.
func yamlDocument(doc any) (*yaml.Node, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	switch rows := doc.(type) {
	case []semicsv.Row:
		for _, row := range rows {
			item := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
			for _, f := range row {
				item.Content = append(item.Content, yamlScalar(f))
			}
			seq.Content = append(seq.Content, item)
		}
	case []semicsv.NamedRow:
		for _, row := range rows {
			item := &yaml.Node{Kind: yaml.MappingNode}
			for _, name := range row.Names() {
				v, _ := row.Get(name)
				item.Content = append(item.Content, yamlScalar(semicsv.String(name)), yamlScalar(v))
			}
			seq.Content = append(seq.Content, item)
		}
	default:
		return nil, fmt.Errorf("cannot render %T as yaml", doc)
	}
	return seq, nil
}

func yamlScalar(f semicsv.Field) *yaml.Node {
	switch {
	case f.IsNull():
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case f.IsNumber():
		return &yaml.Node{Kind: yaml.ScalarNode, Value: f.String()}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.String()}
}

// tomlRows converts rows to plain values. TOML has no null, so null fields are left out.
func tomlRows(doc any) []any {
	var out []any
	switch rows := doc.(type) {
	case []semicsv.Row:
		for _, row := range rows {
			vals := make([]any, 0, len(row))
			for _, f := range row {
				if !f.IsNull() {
					vals = append(vals, f.Value())
				}
			}
			out = append(out, vals)
		}
	case []semicsv.NamedRow:
		for _, row := range rows {
			table := make(map[string]any, row.Len())
			for name, f := range row.Map() {
				if !f.IsNull() {
					table[name] = f.Value()
				}
			}
			out = append(out, table)
		}
	}
	return out
}
