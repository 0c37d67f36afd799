//go:build !clausepool

package sat

func newClause(literals []Literal, index int) *Clause {
	c := &Clause{index: index}
	c.lits = make([]Literal, 0, len(literals))
	c.lits = append(c.lits, literals...)
	return c
}

func freeClause(c *Clause) {}
