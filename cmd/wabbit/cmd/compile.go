package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/povilasb/wabbit-go/internal/fingerprint"
	"github.com/povilasb/wabbit-go/internal/irgen"
	"github.com/povilasb/wabbit-go/internal/parser"
)

var (
	compileEval   string
	compileOut    string
	compileFinger bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a Wabbit file to textual LLVM IR",
	Long: `Parse a Wabbit program and emit its LLVM IR translation.

Examples:
  wabbit compile script.wb
  wabbit compile -o script.ll script.wb
  wabbit compile --fingerprint script.wb`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileEval, "eval", "e", "", "compile inline code instead of reading from file")
	compileCmd.Flags().StringVarP(&compileOut, "output", "o", "", "write IR to this file instead of stdout")
	compileCmd.Flags().BoolVar(&compileFinger, "fingerprint", false, "print a content fingerprint of the emitted IR instead of the IR itself")
}

func runCompile(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(compileEval, args)
	if err != nil {
		return err
	}

	program, err := parser.Parse(source)
	if err != nil {
		return withSourceContext(err, source, filename)
	}

	ir, err := irgen.Emit(program)
	if err != nil {
		return withSourceContext(err, source, filename)
	}

	if compileFinger || cfg.Fingerprint {
		fmt.Println(fingerprint.Of(ir))
		return nil
	}

	if compileOut != "" {
		return os.WriteFile(compileOut, []byte(ir), 0o644)
	}
	fmt.Print(ir)
	return nil
}
