package sat

import "testing"

func TestLiteral_opposite(t *testing.T) {
	for v := 1; v <= 10; v++ {
		p := PositiveLiteral(v)
		n := NegativeLiteral(v)

		if p.Opposite() != n {
			t.Errorf("Opposite(%s): want %s, got %s", p, n, p.Opposite())
		}
		if p.Opposite().Opposite() != p {
			t.Errorf("Opposite(Opposite(%s)): want %s, got %s", p, p, p.Opposite().Opposite())
		}
	}
}

func TestLiteral_varID(t *testing.T) {
	for v := 1; v <= 10; v++ {
		if got := PositiveLiteral(v).VarID(); got != v {
			t.Errorf("PositiveLiteral(%d).VarID(): want %d, got %d", v, v, got)
		}
		if got := NegativeLiteral(v).VarID(); got != v {
			t.Errorf("NegativeLiteral(%d).VarID(): want %d, got %d", v, v, got)
		}
	}
}

func TestLiteral_isPositive(t *testing.T) {
	if !PositiveLiteral(3).IsPositive() {
		t.Errorf("PositiveLiteral(3).IsPositive(): want true, got false")
	}
	if NegativeLiteral(3).IsPositive() {
		t.Errorf("NegativeLiteral(3).IsPositive(): want false, got true")
	}
}

func TestLiteral_dimacs(t *testing.T) {
	for _, i := range []int{1, -1, 42, -42} {
		if got := FromDimacs(i).Dimacs(); got != i {
			t.Errorf("FromDimacs(%d).Dimacs(): want %d, got %d", i, i, got)
		}
	}
	if FromDimacs(-3) != NegativeLiteral(3) {
		t.Errorf("FromDimacs(-3): want %s, got %s", NegativeLiteral(3), FromDimacs(-3))
	}
}
