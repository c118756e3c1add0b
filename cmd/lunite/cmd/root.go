package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "lunite",
	Short: "Lunite scripting language interpreter",
	Long: `lunite is a Go implementation of the Lunite scripting language.

Lunite is a small, dynamically-typed, C-braced scripting language with:
  - Single-inheritance classes and first-class functions/lambdas
  - Pattern matching (match/other) and structured exceptions
    (attempt/rescue/finally)
  - Labeled non-local jumps (break/advance/leap)
  - A host-language interop hook (import_py) for Go-backed modules

Invoked with no subcommand, it drops into an interactive REPL.`,
	Version: Version,
	RunE:    runRepl,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
