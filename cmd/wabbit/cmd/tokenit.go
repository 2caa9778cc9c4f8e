package cmd

import (
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"

	"github.com/povilasb/wabbit-go/internal/fingerprint"
	"github.com/povilasb/wabbit-go/internal/lexer"
	"github.com/povilasb/wabbit-go/internal/token"
)

var (
	tokenitEval   string
	tokenitFormat string
	tokenitFinger bool
)

var tokenitCmd = &cobra.Command{
	Use:   "tokenit [file]",
	Short: "Tokenize a Wabbit file or expression",
	Long: `Tokenize a Wabbit program and print the resulting tokens.

Examples:
  wabbit tokenit script.wb
  wabbit tokenit -e "print 1 + 2;"
  wabbit tokenit --format=cbor script.wb`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenit,
}

func init() {
	rootCmd.AddCommand(tokenitCmd)

	tokenitCmd.Flags().StringVarP(&tokenitEval, "eval", "e", "", "tokenize inline code instead of reading from file")
	tokenitCmd.Flags().StringVar(&tokenitFormat, "format", "", "output format: text or cbor (default from config)")
	tokenitCmd.Flags().BoolVar(&tokenitFinger, "fingerprint", false, "print a content fingerprint instead of the token list")
}

func runTokenit(_ *cobra.Command, args []string) error {
	source, _, err := readSource(tokenitEval, args)
	if err != nil {
		return err
	}

	toks, err := lexer.Tokenize(source)
	if err != nil {
		return err
	}

	format := tokenitFormat
	if format == "" {
		format = cfg.Format
	}

	if tokenitFinger || cfg.Fingerprint {
		lines := make([]string, len(toks))
		for i, t := range toks {
			lines[i] = t.String()
		}
		fmt.Println(fingerprint.OfTokens(lines))
		return nil
	}

	switch format {
	case "cbor":
		data, err := cbor.Marshal(toks)
		if err != nil {
			return fmt.Errorf("encoding tokens as cbor: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	default:
		for _, t := range toks {
			printToken(t)
		}
		return nil
	}
}

func printToken(t token.Token) {
	fmt.Printf("[%-12s] %q @%s\n", t.Kind, t.Lexeme, t.Pos)
}
