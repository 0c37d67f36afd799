package sat

// simplifyOriginal removes the original clauses satisfied at the root
// level. It only runs when new root facts have been derived since the last
// call.
func (s *Solver) simplifyOriginal() {
	if !s.simplifyOrig {
		return
	}

	j := 0
	for _, c := range s.constraints {
		if s.satisfied(c) {
			s.removeClause(c)
		} else {
			s.constraints[j] = c
			j++
		}
	}
	s.constraints = s.constraints[:j]

	s.simplifyOrig = false
}

// simplifyLearned removes the learned clauses satisfied at the root level
// and compacts the activity array accordingly.
func (s *Solver) simplifyLearned() {
	if len(s.learnts) == 0 {
		return
	}

	size := len(s.learnts)
	j := 0
	for i, c := range s.learnts {
		if s.satisfied(c) {
			s.removeClause(c)
		} else {
			c.index = j
			s.learntScores[j] = s.learntScores[i]
			s.learnts[j] = c
			j++
		}
	}
	s.learnts = s.learnts[:j]
	s.learntScores = s.learntScores[:j]

	s.Simplifications++
	s.nextSimplify = s.TotalConflicts + s.nextSimplifyInc

	// Adapt the simplification period to how much was removed. The
	// increment starts at 0, which keeps this a no-op.
	removedRatio := float64(size-j) / float64(size)
	if removedRatio < 0.01 {
		s.nextSimplifyInc = int64(float64(s.nextSimplifyInc) * 1.1)
	} else {
		s.nextSimplifyInc = int64(float64(s.nextSimplifyInc) * 0.9)
	}

	s.simplifyLearnt = false
}

// reduceDB removes roughly half of the learned clauses. Clauses are sorted
// by ascending activity; the lower half is deleted except for locked and
// binary clauses, the upper half additionally requires an activity below
// clauseInc/numLearnts to be deleted. The learned clause budget grows after
// each reduction.
func (s *Solver) reduceDB() {
	n := len(s.learnts)
	if n == 0 {
		return
	}

	extraLim := s.clauseInc / float64(n)

	// Sort over a power-of-two array, padding with sentinel activities low
	// enough to sort the padding in front.
	size := nextPow2(n)
	arr := make([]*Clause, size)
	scores := make([]float64, size)
	copy(arr, s.learnts)
	copy(scores, s.learntScores)
	for i := n; i < size; i++ {
		scores[i] = -100
	}

	arr, scores = sortClausesByScores(arr, scores)

	for i, k := size-n, 0; i < size; i, k = i+1, k+1 {
		s.learnts[k] = arr[i]
		s.learntScores[k] = scores[i]
	}

	j := 0
	i := 0
	for ; i < n/2; i++ {
		c := s.learnts[i]
		if !s.locked(c) && len(c.lits) > 2 {
			s.removeClause(c)
		} else {
			c.index = j
			s.learntScores[j] = s.learntScores[i]
			s.learnts[j] = c
			j++
		}
	}
	for ; i < n; i++ {
		c := s.learnts[i]
		if !s.locked(c) && len(c.lits) > 2 && s.learntScores[i] < extraLim {
			s.removeClause(c)
		} else {
			c.index = j
			s.learntScores[j] = s.learntScores[i]
			s.learnts[j] = c
			j++
		}
	}
	s.learnts = s.learnts[:j]
	s.learntScores = s.learntScores[:j]

	s.Reductions++
	s.maxLearnts *= maxLearntsFactor
}

func nextPow2(n int) int {
	size := 1
	for size < n {
		size *= 2
	}
	return size
}

// sortClausesByScores sorts the clauses by ascending score with a bottom-up
// merge sort. len(arr) must be a power of two. Clause indices are kept in
// sync with the positions as the passes proceed. The returned slices may be
// the scratch copies: callers must use the returned values.
func sortClausesByScores(arr []*Clause, scores []float64) ([]*Clause, []float64) {
	size := len(arr)
	target := make([]*Clause, size)
	starget := make([]float64, size)

	for block := 1; block <= size/2; block *= 2 {
		li, ri := 0, block
		l, r := 0, 0

		for j := 0; j < size; j++ {
			if l == block && r == block {
				// Both runs exhausted: move to the next pair of blocks.
				li += block
				ri += block
				l, r = 0, 0
			}

			switch {
			case l == block:
				target[j], starget[j] = arr[ri], scores[ri]
				ri++
				r++
			case r == block:
				target[j], starget[j] = arr[li], scores[li]
				li++
				l++
			case scores[li] < scores[ri]:
				target[j], starget[j] = arr[li], scores[li]
				li++
				l++
			default:
				target[j], starget[j] = arr[ri], scores[ri]
				ri++
				r++
			}

			if target[j] != nil {
				target[j].index = j
			}
		}

		arr, target = target, arr
		scores, starget = starget, scores
	}

	return arr, scores
}
