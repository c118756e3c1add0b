package lunite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunSourceWritesOutputAndPersistsGlobalsAcrossCalls(t *testing.T) {
	var buf strings.Builder
	in := New(&buf)

	if err := in.RunSource(`let x = 1`, "<test>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := in.RunSource(`x += 1
out(x)`, "<test>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != "2\n" {
		t.Errorf("got %q, want 2\\n (globals should persist across RunSource calls)", got)
	}
}

func TestRunSourceReturnsParseErrorForBadSyntax(t *testing.T) {
	var buf strings.Builder
	in := New(&buf)

	err := in.RunSource(`let x = `, "<test>")
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Errorf("got error type %T, want *ParseError", err)
	}
}

func TestRunFileExecutesSourceFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.luna")
	if err := os.WriteFile(path, []byte(`out("from disk")`), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	var buf strings.Builder
	in := New(&buf)
	if err := in.RunFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != "from disk\n" {
		t.Errorf("got %q, want 'from disk\\n'", got)
	}
}

func TestRunFileMissingPathIsError(t *testing.T) {
	var buf strings.Builder
	in := New(&buf)
	if err := in.RunFile(filepath.Join(t.TempDir(), "nope.luna")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestEvalReturnsBareExpressionValue(t *testing.T) {
	var buf strings.Builder
	in := New(&buf)

	if _, err := in.Eval(`let x = 21`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := in.Eval(`x * 2`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "42" {
		t.Errorf("got %q, want 42", got)
	}
}

func TestEvalOfNonExpressionStatementReturnsEmptyResult(t *testing.T) {
	var buf strings.Builder
	in := New(&buf)

	got, err := in.Eval(`let y = 10`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty string for a non-expression statement", got)
	}
}

func TestEvalPersistsGlobalsAcrossCalls(t *testing.T) {
	var buf strings.Builder
	in := New(&buf)

	if _, err := in.Eval(`let total = 0`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := in.Eval(`total += 5`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := in.Eval(`total`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "5" {
		t.Errorf("got %q, want 5", got)
	}
}

func TestParseReturnsProgramAndNoErrorsForValidSource(t *testing.T) {
	program, errs := Parse(`let x = 1 + 2`, "<test>")
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(program.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(program.Statements))
	}
}

func TestParseReturnsErrorsForInvalidSource(t *testing.T) {
	_, errs := Parse(`class {`, "<test>")
	if len(errs) == 0 {
		t.Fatalf("expected parse errors for malformed class syntax")
	}
}

func TestParseErrorFormatsSourceContext(t *testing.T) {
	_, errs := Parse(`let x = `, "<test>")
	pe := &ParseError{Errors: errs, Source: `let x = `}
	if !strings.Contains(pe.Error(), "let x") {
		t.Errorf("ParseError.Error() = %q, want it to quote the offending source line", pe.Error())
	}
}

// TestModuleImportIsIdempotent grounds spec.md's import-idempotence
// property: importing the same module twice must execute its top-level
// code exactly once, with the second import reusing the cached instance.
func TestModuleImportIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	modulePath := filepath.Join(dir, "counter.luna")
	if err := os.WriteFile(modulePath, []byte("count = count + 1\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture module: %v", err)
	}
	mainPath := filepath.Join(dir, "main.luna")

	src := `let count = 0
import counter
import counter
out(count)`

	var buf strings.Builder
	in := New(&buf)
	if err := in.RunSource(src, mainPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != "1\n" {
		t.Errorf("got %q, want 1\\n (module body should run exactly once)", got)
	}
}

func TestModuleMembersAreAccessibleAfterImport(t *testing.T) {
	dir := t.TempDir()
	modulePath := filepath.Join(dir, "shapes.luna")
	if err := os.WriteFile(modulePath, []byte(`func square(n) { return n * n }
const label = "shapes"`), 0o644); err != nil {
		t.Fatalf("failed to write fixture module: %v", err)
	}
	mainPath := filepath.Join(dir, "main.luna")

	src := `import shapes
out(shapes.square(4))
out(shapes.label)`

	var buf strings.Builder
	in := New(&buf)
	if err := in.RunSource(src, mainPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "16\nshapes\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNewStdoutDoesNotPanic(t *testing.T) {
	in := NewStdout()
	if in == nil {
		t.Fatalf("NewStdout() returned nil")
	}
}
