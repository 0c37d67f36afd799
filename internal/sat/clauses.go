package sat

import (
	"strings"
)

// Clause represents a disjunction of literals. The first two literals of a
// non-unit clause are its watched literals. When a clause is the reason of
// an implication, lits[0] is the implied literal and lits[1] is the falsified
// watched literal whose assignment triggered the propagation.
//
// Original clauses carry negative indices [-1, -2, ...]; the index of a
// learned clause is its slot in the solver's learned-clause activity array.
type Clause struct {
	index int
	lits  []Literal
}

// newProblemClause builds an original clause from the given literals,
// simplified against the current root assignment: duplicate literals and
// literals already false at the root are dropped, and a clause containing a
// literal and its negation is discarded. Clauses that reduce to a single
// literal are enqueued as root facts and not stored. The second return value
// is false if the clause makes the problem trivially unsatisfiable.
func newProblemClause(s *Solver, literals []Literal) (*Clause, bool) {
	size := len(literals)
	seen := map[Literal]struct{}{}

	for i := size - 1; i >= 0; i-- {
		// If the opposite literal is in the clause, then the clause is
		// always true.
		if _, ok := seen[literals[i].Opposite()]; ok {
			return nil, true
		}

		// Remove the literal if it is already present.
		if _, ok := seen[literals[i]]; ok {
			size--
			literals[i], literals[size] = literals[size], literals[i]
			continue
		}

		seen[literals[i]] = struct{}{}

		switch s.LitValue(literals[i]) {
		case True:
			return nil, true // clause is already satisfied at the root
		case False:
			size--
			literals[i], literals[size] = literals[size], literals[i]
		}
	}

	literals = literals[:size]

	switch size {
	case 0:
		// Empty clauses cannot be valid.
		return nil, false
	case 1:
		// Directly enqueue unit facts.
		return nil, s.enqueue(literals[0], nil)
	default:
		c := newClause(literals, -(len(s.constraints) + 1))
		s.watch(c.lits[0], c)
		s.watch(c.lits[1], c)
		return c, true
	}
}

// addLearnedClause stores the clause left in the analysis buffer. The
// buffer's first literal is the asserting literal; the second watched
// position is filled with a literal falsified at the assertion level so that
// the watching invariant holds after the backjump. Every literal of the
// clause bumps its variable's activity.
func (s *Solver) addLearnedClause(alevel int) *Clause {
	c := newClause(s.learnt, len(s.learnts))

	found := false
	for i, l := range c.lits {
		s.bumpVarActivity(l)
		if !found && s.level[l.VarID()] == alevel {
			c.lits[1], c.lits[i] = c.lits[i], c.lits[1]
			found = true
		}
	}

	s.watch(c.lits[0], c)
	s.watch(c.lits[1], c)

	s.learnts = append(s.learnts, c)
	s.learntScores = append(s.learntScores, 0)
	s.TotalLearnts++
	s.learntSize.Add(float64(len(c.lits)))

	s.bumpClauseActivity(c)
	return c
}

// locked reports whether c is the reason of one of its watched literals.
func (s *Solver) locked(c *Clause) bool {
	if len(c.lits) <= 1 {
		return true
	}
	return s.reason[c.lits[0].VarID()] == c || s.reason[c.lits[1].VarID()] == c
}

// satisfied reports whether some literal of c is true under the current
// assignment. At the root level this means the clause can be removed.
func (s *Solver) satisfied(c *Clause) bool {
	for _, l := range c.lits {
		if s.LitValue(l) == True {
			return true
		}
	}
	return false
}

// removeClause detaches c from the reason array and from both its watched
// lists before releasing it. This is the only valid deletion order: watched
// lists and reasons hold borrowed references.
func (s *Solver) removeClause(c *Clause) {
	if v := c.lits[0].VarID(); s.reason[v] == c {
		s.reason[v] = nil
	} else if v := c.lits[1].VarID(); s.reason[v] == c {
		s.reason[v] = nil
	}

	s.unwatch(c.lits[0], c)
	s.unwatch(c.lits[1], c)

	s.TotalDeleted++
	freeClause(c)
}

func (c *Clause) String() string {
	if len(c.lits) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.lits[0].String())
	for _, l := range c.lits[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
