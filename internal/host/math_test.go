package host

import (
	"math/big"
	"testing"

	"github.com/ingStudiosOfficial/Lunite/internal/eval"
)

func callMember(t *testing.T, m *eval.HostModule, name string, args ...eval.Value) eval.Value {
	t.Helper()
	fn, ok := m.Members[name].(*eval.HostCallable)
	if !ok {
		t.Fatalf("module %q has no callable member %q", m.Name, name)
	}
	v, err := fn.Fn(args)
	if err != nil {
		t.Fatalf("%s(): unexpected error: %v", name, err)
	}
	return v
}

func TestMathModule(t *testing.T) {
	m := newMathModule()

	if got := callMember(t, m, "sqrt", &eval.FloatValue{Value: 144}); got.String() != "12" {
		t.Errorf("sqrt(144) = %s, want 12", got.String())
	}
	if got := callMember(t, m, "round", &eval.FloatValue{Value: 3.7}); got.String() != "4" {
		t.Errorf("round(3.7) = %s, want 4", got.String())
	}
	if got := callMember(t, m, "floor", &eval.FloatValue{Value: 3.7}); got.String() != "3" {
		t.Errorf("floor(3.7) = %s, want 3", got.String())
	}
	if got := callMember(t, m, "ceil", &eval.FloatValue{Value: 3.2}); got.String() != "4" {
		t.Errorf("ceil(3.2) = %s, want 4", got.String())
	}
	if got := callMember(t, m, "pow", eval.NewInt(2), eval.NewInt(10)); got.String() != "1024" {
		t.Errorf("pow(2, 10) = %s, want 1024", got.String())
	}
	if got := callMember(t, m, "abs", &eval.FloatValue{Value: -5.5}); got.String() != "5.5" {
		t.Errorf("abs(-5.5) = %s, want 5.5", got.String())
	}
	if pi, ok := m.Members["pi"].(*eval.FloatValue); !ok || pi.Value < 3.14 || pi.Value > 3.15 {
		t.Errorf("pi member missing or wrong: %#v", m.Members["pi"])
	}
}

func TestMathBigIntDoesNotSilentlyTruncate(t *testing.T) {
	m := newMathModule()
	big1 := eval.NewBigInt(new(big.Int).Neg(new(big.Int).Exp(big.NewInt(2), big.NewInt(100), nil)))

	if got := callMember(t, m, "abs", big1); got.String() != new(big.Int).Exp(big.NewInt(2), big.NewInt(100), nil).String() {
		t.Errorf("abs(-2^100) = %s, want 2^100", got.String())
	}

	big2 := eval.NewBigInt(new(big.Int).Exp(big.NewInt(2), big.NewInt(4), nil))
	if got := callMember(t, m, "sqrt", big2); got.String() != "4" {
		t.Errorf("sqrt(2^4 as big.Int) = %s, want 4 (not 0)", got.String())
	}
}

func TestMathMaxMin(t *testing.T) {
	m := newMathModule()
	if got := callMember(t, m, "max", eval.NewInt(3), eval.NewInt(7), eval.NewInt(1)); got.String() != "7" {
		t.Errorf("max(3,7,1) = %s, want 7", got.String())
	}
	if got := callMember(t, m, "min", eval.NewInt(3), eval.NewInt(7), eval.NewInt(1)); got.String() != "1" {
		t.Errorf("min(3,7,1) = %s, want 1", got.String())
	}
}
