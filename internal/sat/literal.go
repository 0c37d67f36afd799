package sat

import "fmt"

// Literal represents a literal, which either represents a boolean variable or
// its negation. Variables are numbered from 1 to NumVariables; the positive
// literal of variable v is v<<1 and its negation is v<<1|1. The zero literal
// is a sentinel meaning "no literal" and is also used as the unassigned value
// in the solver's status array.
type Literal int

// PositiveLiteral returns the positive literal of variable v.
func PositiveLiteral(v int) Literal {
	return Literal(v << 1)
}

// NegativeLiteral returns the negative literal of variable v.
func NegativeLiteral(v int) Literal {
	return Literal(v<<1 | 1)
}

// FromDimacs converts a signed DIMACS literal into a Literal.
func FromDimacs(i int) Literal {
	if i < 0 {
		return NegativeLiteral(-i)
	}
	return PositiveLiteral(i)
}

// VarID returns the ID of the literal's variable.
func (l Literal) VarID() int {
	return int(l >> 1)
}

// IsPositive returns true if and only if the literal represents the value of
// its boolean variable (i.e. not its negation).
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the opposite literal.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

// Dimacs returns the signed DIMACS representation of the literal.
func (l Literal) Dimacs() int {
	if l.IsPositive() {
		return l.VarID()
	}
	return -l.VarID()
}

func (l Literal) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.VarID())
	}
	return fmt.Sprintf("!%d", l.VarID())
}
