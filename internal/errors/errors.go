// Package errors implements Lunite's located error taxonomy (spec.md §7) and
// source-context formatting for the CLI driver.
package errors

import (
	"fmt"
	"strings"

	"github.com/ingStudiosOfficial/Lunite/internal/lexer"
)

// Kind is one of the named error kinds from spec.md §7. It is surfaced
// verbatim in formatted messages.
type Kind string

const (
	Syntax        Kind = "Syntax"
	Runtime       Kind = "Runtime"
	Assignment    Kind = "Assignment"
	Index         Kind = "Index"
	Key           Kind = "Key"
	Member        Kind = "Member"
	Method        Kind = "Method"
	Function      Kind = "Function"
	Class         Kind = "Class"
	Loop          Kind = "Loop"
	Import        Kind = "Import"
	Destructuring Kind = "Destructuring"
	Internal      Kind = "Internal"
)

// LuniteError is a located, kinded error. spec.md §7: "Every error reports
// {kind, message, file, line, column} where the file/line/column are
// attached the first time the error crosses a located node. Already-located
// errors pass through unchanged." Located is exactly that latch.
type LuniteError struct {
	ErrKind Kind
	Message string
	File    string
	Pos     lexer.Position
	located bool
}

// New creates an unlocated error; the first AttachLocation call fixes its
// position permanently.
func New(kind Kind, format string, args ...any) *LuniteError {
	return &LuniteError{ErrKind: kind, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *LuniteError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s error in %s:%d:%d: %s", e.ErrKind, e.File, e.Pos.Line, e.Pos.Column, e.Message)
	}
	return fmt.Sprintf("%s error at %d:%d: %s", e.ErrKind, e.Pos.Line, e.Pos.Column, e.Message)
}

// AttachLocation fixes this error's location the first time it crosses a
// located AST node. Subsequent calls are no-ops, so an error keeps reporting
// where it was *raised*, not every frame it unwinds through.
func (e *LuniteError) AttachLocation(file string, pos lexer.Position) *LuniteError {
	if e.located {
		return e
	}
	e.File = file
	e.Pos = pos
	e.located = true
	return e
}

// Located reports whether this error has already been pinned to a source
// position.
func (e *LuniteError) Located() bool { return e.located }

// Format renders a single error with one line of source context and a caret
// under the offending column, optionally with ANSI color for a TTY.
func Format(e *LuniteError, source string, color bool) string {
	var b strings.Builder

	if e.File != "" {
		fmt.Fprintf(&b, "%s error in %s:%d:%d\n", e.ErrKind, e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&b, "%s error at line %d:%d\n", e.ErrKind, e.Pos.Line, e.Pos.Column)
	}

	if line := sourceLine(source, e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		b.WriteString(prefix)
		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", len(prefix)+maxInt(e.Pos.Column-1, 0)))
		if color {
			b.WriteString("\033[1;31m")
		}
		b.WriteString("^")
		if color {
			b.WriteString("\033[0m")
		}
		b.WriteString("\n")
	}

	if color {
		b.WriteString("\033[1m")
	}
	b.WriteString(e.Message)
	if color {
		b.WriteString("\033[0m")
	}
	return b.String()
}

func sourceLine(source string, line int) string {
	if source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FirstOf returns the first error in errs as a plain error, or nil if errs
// is empty. Used where a caller (e.g. a module import) needs a single error
// value to propagate rather than the full diagnostic list.
func FirstOf(errs []*LuniteError) error {
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}

// FormatAll renders every error in errs, separated by blank lines.
func FormatAll(errs []*LuniteError, source string, color bool) string {
	var b strings.Builder
	for i, e := range errs {
		b.WriteString(Format(e, source, color))
		if i < len(errs)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}
