package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oleg578/semicsv"
)

// escapes lets separators and terminators be typed on a shell, e.g. -s '\t' or -t '\r\n'.
var escapes = strings.NewReplacer(`\t`, "\t", `\r`, "\r", `\n`, "\n", `\\`, `\`)

type options struct {
	separator  string
	terminator string
	verbose    bool

	logger *slog.Logger
}

// NewRootCommand builds the semicsv command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "semicsv",
		Short: "Convert between semicolon-separated text and JSON, YAML or TOML",
		Long: `semicsv reads and writes delimiter-separated text.

Commands:
  decode  - CSV to JSON, YAML or TOML
  encode  - JSON array to CSV

Rows are split on '\n' when decoding and terminated with '\r\n' when
encoding unless --terminator is given.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.verbose)
			return opts.validate()
		},
	}

	root.PersistentFlags().StringVarP(&opts.separator, "separator", "s", string(semicsv.DefaultSeparator), "field separator, a single character")
	root.PersistentFlags().StringVarP(&opts.terminator, "terminator", "t", "", `row terminator (default "\n" for decode, "\r\n" for encode)`)
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(newDecodeCommand(opts), newEncodeCommand(opts), newVersionCommand())
	return root
}

// Execute runs the root command against the process arguments.
func Execute() error {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		printError(root.ErrOrStderr(), err)
		return err
	}
	return nil
}

func (o *options) validate() error {
	if sep := escapes.Replace(o.separator); len(sep) != 1 {
		return fmt.Errorf("separator must be a single character, got %q", o.separator)
	}
	return nil
}

func (o *options) sep() byte {
	return escapes.Replace(o.separator)[0]
}

func (o *options) term() string {
	return escapes.Replace(o.terminator)
}

func (o *options) csvOptions() []semicsv.Option {
	return []semicsv.Option{
		semicsv.WithSeparator(o.sep()),
		semicsv.WithTerminator(o.term()),
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}

// openInput returns the named file, or stdin when no name or "-" is given.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), "stdin", nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("opening input: %w", err)
	}
	return f, args[0], nil
}
