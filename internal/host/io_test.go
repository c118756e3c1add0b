package host

import (
	"path/filepath"
	"testing"

	"github.com/ingStudiosOfficial/Lunite/internal/eval"
)

func TestIOWriteReadExistsRemove(t *testing.T) {
	m := newIOModule()
	path := filepath.Join(t.TempDir(), "note.txt")

	callMember(t, m, "write_file", strVal(path), strVal("hello"))

	if got := callMember(t, m, "exists", strVal(path)); got != eval.True {
		t.Fatalf("exists() = %v, want True after write_file", got)
	}
	if got := callMember(t, m, "read_file", strVal(path)); got.String() != "hello" {
		t.Errorf("read_file() = %q, want hello", got.String())
	}

	callMember(t, m, "append_file", strVal(path), strVal(", world"))
	if got := callMember(t, m, "read_file", strVal(path)); got.String() != "hello, world" {
		t.Errorf("read_file() after append = %q, want 'hello, world'", got.String())
	}

	callMember(t, m, "remove", strVal(path))
	if got := callMember(t, m, "exists", strVal(path)); got != eval.False {
		t.Errorf("exists() = %v, want False after remove", got)
	}
}

func TestIOReadMissingFileIsError(t *testing.T) {
	m := newIOModule()
	fn := m.Members["read_file"].(*eval.HostCallable)
	_, err := fn.Fn([]eval.Value{strVal(filepath.Join(t.TempDir(), "nope.txt"))})
	if err == nil {
		t.Fatalf("expected an error reading a nonexistent file")
	}
}

func TestIOEnvReadsProcessEnvironment(t *testing.T) {
	t.Setenv("LUNITE_IO_TEST_VAR", "present")
	m := newIOModule()
	if got := callMember(t, m, "env", strVal("LUNITE_IO_TEST_VAR")); got.String() != "present" {
		t.Errorf("env() = %q, want present", got.String())
	}
	if got := callMember(t, m, "env", strVal("LUNITE_IO_TEST_VAR_UNSET")); got.String() != "" {
		t.Errorf("env() for an unset variable = %q, want empty string", got.String())
	}
}

func TestIOArgsReturnsList(t *testing.T) {
	m := newIOModule()
	got := callMember(t, m, "args")
	if _, ok := got.(*eval.ListValue); !ok {
		t.Fatalf("args() = %T, want *eval.ListValue", got)
	}
}
