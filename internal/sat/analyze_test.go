package sat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// The instance below implies 2, 3, 4, 5, and 6 from the decision of 1, and
// then fails on the last clause. Variable 4 dominates the conflict: the
// first unique implication point. The learned clause is the unit !4,
// asserting at the root level.
func TestAnalyze_firstUIP(t *testing.T) {
	s := newTestSolver(t, 6, [][]int{
		{-1, 2},
		{-1, 3},
		{-2, -3, 4},
		{-4, 5},
		{-4, 6},
		{-5, -6},
	})
	if confl := s.Propagate(); confl != nil {
		t.Fatalf("Propagate(): want no conflict, got %s", confl)
	}

	confl := s.setDecision(PositiveLiteral(1))
	if confl == nil {
		t.Fatalf("setDecision(1): want a conflict, got none")
	}

	alevel := s.analyze(confl)

	if alevel != 1 {
		t.Errorf("assertion level: want 1, got %d", alevel)
	}
	want := []Literal{NegativeLiteral(4)}
	if diff := cmp.Diff(want, s.learnt); diff != "" {
		t.Errorf("learned clause mismatch (-want, +got):\n%s", diff)
	}

	s.backtrack(alevel + 1)
	if confl := s.assertLearnt(alevel); confl != nil {
		t.Fatalf("assertLearnt(): want no conflict, got %s", confl)
	}

	if got := s.VarValue(4); got != False {
		t.Errorf("value of 4 after assertion: want %s, got %s", False, got)
	}
	if got := s.level[4]; got != 1 {
		t.Errorf("level of 4 after assertion: want 1 (root), got %d", got)
	}
	if s.reason[4] != nil {
		t.Errorf("reason of 4: want none (unit fact), got %s", s.reason[4])
	}
	checkInvariants(t, s)
}

// Conflicting at the root level must yield assertion level 0, the driver's
// signal for unsatisfiability.
func TestAnalyze_rootConflict(t *testing.T) {
	s := newTestSolver(t, 2, [][]int{{1, 2}, {-1, 2}, {1, -2}, {-1, -2}})

	// Force a root fact: propagation then fails at level 1.
	if !s.enqueue(PositiveLiteral(1), nil) {
		t.Fatalf("enqueue(1): want success, got conflicting assignment")
	}
	confl := s.Propagate()
	if confl == nil {
		t.Fatalf("Propagate(): want a conflict, got none")
	}

	if alevel := s.analyze(confl); alevel != 0 {
		t.Errorf("assertion level: want 0, got %d", alevel)
	}
}

// A learned clause of size two keeps a literal of the assertion level in
// second position so that the clause is unit right after the backjump.
func TestAnalyze_assertionLevelWatch(t *testing.T) {
	s := newTestSolver(t, 4, [][]int{
		{-1, -2, 3},
		{-1, -2, -3},
		{1, 4},
	})
	if confl := s.Propagate(); confl != nil {
		t.Fatalf("Propagate(): want no conflict, got %s", confl)
	}

	if confl := s.setDecision(PositiveLiteral(1)); confl != nil {
		t.Fatalf("setDecision(1): want no conflict, got %s", confl)
	}
	confl := s.setDecision(PositiveLiteral(2))
	if confl == nil {
		t.Fatalf("setDecision(2): want a conflict, got none")
	}

	alevel := s.analyze(confl)
	if alevel != 2 {
		t.Fatalf("assertion level: want 2, got %d", alevel)
	}

	s.backtrack(alevel + 1)
	if confl := s.assertLearnt(alevel); confl != nil {
		t.Fatalf("assertLearnt(): want no conflict, got %s", confl)
	}

	c := s.learnts[len(s.learnts)-1]
	if got := s.level[c.lits[1].VarID()]; got != alevel {
		t.Errorf("level of second watched literal: want %d, got %d", alevel, got)
	}
	if s.reason[c.lits[0].VarID()] != c {
		t.Errorf("learned clause is not the reason of its asserting literal")
	}
	checkInvariants(t, s)
}
