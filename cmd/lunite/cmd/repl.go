package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	lerrors "github.com/ingStudiosOfficial/Lunite/internal/errors"
	"github.com/ingStudiosOfficial/Lunite/pkg/lunite"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Lunite session",
	Long: `Start an interactive read-eval-print loop. Lines that end mid-statement
(an unclosed brace) are buffered and joined until the statement is complete.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = home + "/.lunite_history"
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "lunite> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("starting REPL: %w", err)
	}
	defer rl.Close()

	interp := lunite.NewStdout()
	var pending strings.Builder

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			pending.Reset()
			rl.SetPrompt("lunite> ")
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}

		pending.WriteString(line)
		pending.WriteString("\n")

		if !balanced(pending.String()) {
			rl.SetPrompt("   ...> ")
			continue
		}
		rl.SetPrompt("lunite> ")

		source := pending.String()
		pending.Reset()
		if strings.TrimSpace(source) == "" {
			continue
		}

		result, evalErr := interp.Eval(source)
		if evalErr != nil {
			var perr *lunite.ParseError
			if asParseError(evalErr, &perr) {
				fmt.Fprint(os.Stderr, lerrors.FormatAll(perr.Errors, perr.Source, true))
				fmt.Fprintln(os.Stderr)
			} else {
				fmt.Fprintln(os.Stderr, "error:", evalErr.Error())
			}
			continue
		}
		if result != "" {
			fmt.Println(result)
		}
	}
}

func asParseError(err error, target **lunite.ParseError) bool {
	pe, ok := err.(*lunite.ParseError)
	if ok {
		*target = pe
	}
	return ok
}

// balanced reports whether src has no unclosed `{`/`(`/`[` — a cheap
// brace-counting heuristic, good enough to decide whether the REPL should
// keep buffering lines rather than submit a truncated statement.
func balanced(src string) bool {
	depth := 0
	inString := false
	var stringQuote rune
	escaped := false
	for _, r := range src {
		if inString {
			if escaped {
				escaped = false
				continue
			}
			if r == '\\' {
				escaped = true
				continue
			}
			if r == stringQuote {
				inString = false
			}
			continue
		}
		switch r {
		case '"', '\'':
			inString = true
			stringQuote = r
		case '{', '(', '[':
			depth++
		case '}', ')', ']':
			depth--
		}
	}
	return depth <= 0
}
