package sat

import "fmt"

// Consistency checks used by the satdebug build and by the tests. They
// validate the invariants that the search loop relies on between
// propagations.

// checkWatchedLists verifies that every stored non-unit clause appears in
// the watched lists of its first two literals exactly once, and that every
// watched list only contains clauses actually watching that literal.
func (s *Solver) checkWatchedLists() error {
	for _, clauses := range [][]*Clause{s.constraints, s.learnts} {
		for _, c := range clauses {
			if len(c.lits) < 2 {
				return fmt.Errorf("stored clause %s has fewer than two literals", c)
			}
			for _, l := range c.lits[:2] {
				count := 0
				for _, w := range s.watchers[l] {
					if w == c {
						count++
					}
				}
				if count != 1 {
					return fmt.Errorf("clause %s appears %d times in the watched list of %s", c, count, l)
				}
			}
		}
	}

	for l := Literal(2); int(l) < len(s.watchers); l++ {
		for _, c := range s.watchers[l] {
			if c.lits[0] != l && c.lits[1] != l {
				return fmt.Errorf("clause %s in the watched list of %s does not watch it", c, l)
			}
		}
	}
	return nil
}

// checkTrail verifies that the trail is duplicate free and consistent with
// the status, level, and reason arrays, including the reason convention:
// the implied literal in first position and every other literal false at a
// level no greater than the implication's.
func (s *Solver) checkTrail() error {
	onTrail := make(map[int]bool, len(s.trail))
	for _, l := range s.trail {
		v := l.VarID()
		if onTrail[v] {
			return fmt.Errorf("variable %d appears twice on the trail", v)
		}
		onTrail[v] = true

		if s.status[v] != l {
			return fmt.Errorf("trail literal %s does not match status %s", l, s.status[v])
		}
		if s.level[v] < 1 || s.level[v] > s.decisionLevel {
			return fmt.Errorf("trail literal %s has level %d at decision level %d", l, s.level[v], s.decisionLevel)
		}

		c := s.reason[v]
		if c == nil {
			continue
		}
		if c.lits[0] != l {
			return fmt.Errorf("reason %s of %s does not imply it first", c, l)
		}
		for _, q := range c.lits[1:] {
			if s.LitValue(q) != False || s.level[q.VarID()] > s.level[v] {
				return fmt.Errorf("reason %s of %s has non-false antecedent %s", c, l, q)
			}
		}
	}
	return nil
}

// checkOrder verifies that every unassigned variable is present in the
// variable ordering. The heap shape itself is yagh's own invariant.
func (s *Solver) checkOrder() error {
	for v := 1; v <= s.NumVariables(); v++ {
		if s.status[v] == 0 && !s.order.heap.Contains(v) {
			return fmt.Errorf("unassigned variable %d missing from the ordering", v)
		}
	}
	return nil
}
