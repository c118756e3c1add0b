package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ingStudiosOfficial/Lunite/internal/errors"
	"github.com/ingStudiosOfficial/Lunite/pkg/lunite"
)

var (
	evalExpr string
	dumpAST  bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lunite script",
	Long: `Execute a Lunite program from a file or inline expression.

Examples:
  # Run a script file
  lunite run script.luna

  # Evaluate inline code
  lunite run -e "out(1 + 2)"

  # Run with an AST dump (for debugging)
  lunite run --dump-ast script.luna`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
}

func runScript(_ *cobra.Command, args []string) error {
	var src, filename string

	switch {
	case evalExpr != "":
		src = evalExpr
		filename = "<eval>"
	case len(args) == 1:
		filename = args[0]
	default:
		cfg, err := loadProjectConfig()
		if err != nil {
			return fmt.Errorf("reading lunite.yaml: %w", err)
		}
		if cfg.Entry == "" {
			return fmt.Errorf("either provide a file path, use -e for inline code, or set `entry` in lunite.yaml")
		}
		filename = cfg.Entry
	}

	if filename != "<eval>" {
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		src = string(content)
	}

	program, perrs := lunite.Parse(src, filename)
	if len(perrs) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatAll(perrs, src, true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("parsing failed with %d error(s)", len(perrs))
	}

	if dumpAST {
		fmt.Println("AST:")
		fmt.Println(program.String())
		fmt.Println()
	}

	interp := lunite.NewStdout()
	if err := interp.RunSource(src, filename); err != nil {
		fmt.Fprintln(os.Stderr, "Runtime error:", err.Error())
		return fmt.Errorf("execution failed")
	}

	return nil
}
