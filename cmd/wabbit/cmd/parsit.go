package cmd

import (
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"

	"github.com/povilasb/wabbit-go/internal/parser"
	"github.com/povilasb/wabbit-go/internal/printer"
)

var (
	parsitEval   string
	parsitFormat string
)

var parsitCmd = &cobra.Command{
	Use:   "parsit [file]",
	Short: "Parse a Wabbit file and print its canonical form",
	Long: `Parse a Wabbit program and pretty-print the resulting AST as
canonical Wabbit source.

Examples:
  wabbit parsit script.wb
  wabbit parsit -e "print 1 + 2 * 3;"
  wabbit parsit --format=cbor script.wb`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParsit,
}

func init() {
	rootCmd.AddCommand(parsitCmd)

	parsitCmd.Flags().StringVarP(&parsitEval, "eval", "e", "", "parse inline code instead of reading from file")
	parsitCmd.Flags().StringVar(&parsitFormat, "format", "", "output format: text or cbor (default from config)")
}

func runParsit(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(parsitEval, args)
	if err != nil {
		return err
	}

	program, err := parser.Parse(source)
	if err != nil {
		return withSourceContext(err, source, filename)
	}

	format := parsitFormat
	if format == "" {
		format = cfg.Format
	}

	switch format {
	case "cbor":
		data, err := cbor.Marshal(program)
		if err != nil {
			return fmt.Errorf("encoding AST as cbor: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	default:
		fmt.Print(printer.PrintIndent(program, cfg.IndentWidth))
		return nil
	}
}
