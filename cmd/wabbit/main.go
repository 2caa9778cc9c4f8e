// Command wabbit is the Wabbit toolchain's CLI: tokenit, parsit, runit and
// compile subcommands over a single source file or inline snippet.
package main

import (
	"fmt"
	"os"

	"github.com/povilasb/wabbit-go/cmd/wabbit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
