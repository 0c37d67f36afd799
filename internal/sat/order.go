package sat

import (
	"github.com/rhartert/yagh"
)

// VarOrder maintains the activity ordering of the variables (VSIDS). The
// heap contains at least every unassigned variable; assigned variables are
// lazily discarded when popped by Select. Costs are negated activities as
// yagh serves its minimum first.
type VarOrder struct {
	solver *Solver
	heap   *yagh.IntMap[float64]
}

func NewVarOrder(s *Solver, nVars int) *VarOrder {
	vo := &VarOrder{
		solver: s,
		heap:   yagh.New[float64](nVars + 1),
	}
	for v := 1; v <= nVars; v++ {
		vo.Undo(v)
	}
	return vo
}

// Update repositions v after its activity has changed. Variables that are
// not in the heap are left out: they will be reinserted with their new
// activity when backtracking unassigns them.
func (vo *VarOrder) Update(v int) {
	if vo.heap.Contains(v) {
		vo.heap.Put(v, -vo.solver.activities[v])
	}
}

// Undo puts v back in the heap.
func (vo *VarOrder) Undo(v int) {
	vo.heap.Put(v, -vo.solver.activities[v])
}

// Select returns the decision literal for the next decision: the unassigned
// variable with the highest activity, in its saved phase if phase saving is
// currently on, negative otherwise. It returns false if no unassigned
// variable remains, in which case the current assignment is a model.
func (vo *VarOrder) Select() (Literal, bool) {
	s := vo.solver

	if s.randFreq > 0 && s.rng.Float64() < s.randFreq {
		v := s.rng.Intn(s.NumVariables()) + 1
		if s.status[v] == 0 {
			return vo.phase(v), true
		}
	}

	for {
		next, ok := vo.heap.Pop()
		if !ok {
			return 0, false
		}
		if s.status[next.Elem] != 0 {
			continue // already assigned
		}
		return vo.phase(next.Elem), true
	}
}

func (vo *VarOrder) phase(v int) Literal {
	s := vo.solver
	if s.saved[v] == 0 || !s.saveProgress {
		return NegativeLiteral(v)
	}
	return s.saved[v]
}

// impQueue is the queue of pending propagations. Like the variable
// ordering, it serves variables in order of decreasing activity.
type impQueue struct {
	solver *Solver
	heap   *yagh.IntMap[float64]
}

func newImpQueue(s *Solver, nVars int) *impQueue {
	return &impQueue{
		solver: s,
		heap:   yagh.New[float64](nVars + 1),
	}
}

func (q *impQueue) push(v int) {
	q.heap.Put(v, -q.solver.activities[v])
}

// pop returns the next variable to propagate, or 0 if the queue is empty.
func (q *impQueue) pop() int {
	next, ok := q.heap.Pop()
	if !ok {
		return 0
	}
	return next.Elem
}

func (q *impQueue) clear() {
	for {
		if _, ok := q.heap.Pop(); !ok {
			return
		}
	}
}
