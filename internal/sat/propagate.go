package sat

// watch registers clause c on the watched list of literal l. Watched lists
// are keyed by the watched literal itself and visited when that literal
// becomes false.
func (s *Solver) watch(l Literal, c *Clause) {
	s.watchers[l] = append(s.watchers[l], c)
}

// unwatch removes clause c from the watched list of literal l, preserving
// the order of the remaining clauses. The list's capacity is halved when it
// falls under a quarter of use.
func (s *Solver) unwatch(l Literal, c *Clause) {
	ws := s.watchers[l]
	j := 0
	for i := 0; i < len(ws); i++ {
		if ws[i] != c {
			ws[j] = ws[i]
			j++
		}
	}
	ws = ws[:j]

	if len(ws) < cap(ws)/4 {
		shrunk := make([]*Clause, len(ws), max(1, cap(ws)/2))
		copy(shrunk, ws)
		ws = shrunk
	}
	s.watchers[l] = ws
}

// Propagate applies unit propagation until either the implication queue is
// empty (nil is returned) or a clause becomes false, in which case the
// conflicting clause is returned and the queue is flushed.
func (s *Solver) Propagate() *Clause {
	for {
		v := s.propQueue.pop()
		if v == 0 {
			return nil
		}
		if confl := s.propagateLit(s.status[v]); confl != nil {
			s.propQueue.clear()
			return confl
		}
	}
}

// propagateLit visits the watched list of the literal falsified by the
// assignment of lit. For each watching clause, either the clause is already
// satisfied by its other watched literal, or a non-false replacement watch
// is found in lits[2:] and the clause migrates to that literal's list, or
// the clause is unit and its remaining literal is enqueued. A unit clause
// whose remaining literal is already false is conflicting: the rest of the
// list is preserved in place and the clause is returned.
func (s *Solver) propagateLit(lit Literal) *Clause {
	negLit := lit.Opposite()
	ws := s.watchers[negLit]
	j := 0

	for i := 0; i < len(ws); i++ {
		c := ws[i]
		lits := c.lits

		// Make sure the falsified literal is lits[1].
		if lits[1] != negLit {
			lits[0], lits[1] = lits[1], lits[0]
		}

		// The clause is already satisfied: keep the watch as is, even though
		// the watched literal is now false.
		if s.LitValue(lits[0]) == True {
			ws[j] = c
			j++
			continue
		}

		// Search lits[2:] for a replacement watch.
		if len(lits) > 2 {
			found := false
			for k := 2; k < len(lits); k++ {
				if s.LitValue(lits[k]) != False {
					lits[1], lits[k] = lits[k], lits[1]
					s.watch(lits[1], c)
					found = true
					break
				}
			}
			if found {
				continue // the clause migrated to another list
			}
		}

		// All of lits[1:] is false: the clause is unit or conflicting.
		first := lits[0]
		if s.LitValue(first) == False {
			ws[j] = c
			j++
			for i++; i < len(ws); i++ {
				ws[j] = ws[i]
				j++
			}
			s.watchers[negLit] = ws[:j]
			return c
		}

		s.enqueue(first, c)
		ws[j] = c
		j++
	}

	s.watchers[negLit] = ws[:j]
	return nil
}
