package cmd

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/povilasb/wabbit-go/internal/interp"
	"github.com/povilasb/wabbit-go/internal/parser"
)

var (
	runitEval  string
	runitWatch bool
	runitDebug bool
)

var runitCmd = &cobra.Command{
	Use:   "runit [file]",
	Short: "Run a Wabbit file or expression",
	Long: `Parse and execute a Wabbit program with the tree-walking interpreter.

Examples:
  wabbit runit script.wb
  wabbit runit -e "print 1 + 2;"
  wabbit runit --watch script.wb`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRunit,
}

func init() {
	rootCmd.AddCommand(runitCmd)

	runitCmd.Flags().StringVarP(&runitEval, "eval", "e", "", "run inline code instead of reading from file")
	runitCmd.Flags().BoolVar(&runitWatch, "watch", false, "re-run the file synchronously on every save")
	runitCmd.Flags().BoolVar(&runitDebug, "debug", false, "skip the error boundary and let a runtime error panic with a trace")
}

func runRunit(_ *cobra.Command, args []string) error {
	watch := runitWatch || cfg.Watch
	if watch {
		if runitEval != "" || len(args) != 1 {
			return fmt.Errorf("--watch requires a single file argument")
		}
		return watchAndRun(args[0])
	}

	source, filename, err := readSource(runitEval, args)
	if err != nil {
		return err
	}
	return executeSource(source, filename)
}

// executeSource runs the top-level error boundary described in spec.md §7:
// by default a runtime error is formatted with source context and returned;
// in --debug mode the boundary is skipped and the error instead panics, so
// the host environment shows a full trace rather than a formatted message.
func executeSource(source, filename string) error {
	program, err := parser.Parse(source)
	if err != nil {
		if runitDebug {
			panic(err)
		}
		return withSourceContext(err, source, filename)
	}

	it := interp.New(os.Stdout)
	if err := it.Run(program); err != nil {
		if runitDebug {
			panic(err)
		}
		return withSourceContext(err, source, filename)
	}
	return nil
}

// watchAndRun runs path once, then re-runs it synchronously every time the
// file is written, until the process is interrupted. Each run is
// independent: a failing run is reported and watching continues.
func watchAndRun(path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	runOnce := func() {
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read file %s: %v\n", path, err)
			return
		}
		if err := executeSource(string(content), path); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	runOnce()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				fmt.Fprintf(os.Stderr, "--- re-running %s ---\n", path)
				runOnce()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}
