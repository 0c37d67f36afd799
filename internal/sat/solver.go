package sat

import (
	"fmt"
	"math/rand"
	"time"
)

// Solver constants. The score increments follow MiniSat: activities are
// bumped by a geometrically growing amount and rescaled when they reach
// their limit so that proportions are preserved.
const (
	scoreIncFactor     = 1 / 0.95
	clauseIncFactor    = 1 / 0.999
	scoreLimit         = 1e100
	scoreDivider       = 1e-100
	clauseScoreLimit   = 1e20
	clauseScoreDivider = 1e-20

	// Multiplier applied to the learned clause budget after each reduction.
	maxLearntsFactor = 1.5

	// Initial phase saving schedule: phase saving starts off and is switched
	// on after initOnTh conflicts; it then stays on for initOffTh conflicts,
	// off for initOnTh conflicts, and so on.
	initOnTh  = 100
	initOffTh = 400

	// Number of variables above which the level table is shrunk back when
	// mostly unused.
	vcThreshold = 100000

	randomSeed = 91648253
)

// Solver is a CDCL SAT solver. Variables are numbered from 1 to
// NumVariables; index 0 of the per-variable slices is unused. Decision
// levels start at 1: level 1 holds the implications of the clause database
// itself (root facts), decisions are made from level 2 up. A level of 0
// means that the variable is unassigned.
type Solver struct {
	// Clause database. Original clauses carry negative indices; the index of
	// a learned clause is its slot in learntScores.
	constraints  []*Clause
	learnts      []*Clause
	learntScores []float64
	clauseInc    float64

	// Variable state.
	status     []Literal // literal currently true for the variable, 0 if free
	level      []int
	reason     []*Clause
	activities []float64
	saved      []Literal // last phase taken on the trail, 0 if none
	varInc     float64

	// Variable ordering and propagation queue.
	order     *VarOrder
	propQueue *impQueue
	randFreq  float64
	rng       *rand.Rand

	// Watcher index: for each literal, the clauses that currently watch it.
	watchers [][]*Clause

	// Trail. levelStart[l] is the offset in trail at which level l begins.
	trail         []Literal
	levelStart    []int
	decisionLevel int

	// Whether the problem has reached a top level conflict.
	unsat bool

	// Conflict analysis scratch buffers, shared between all calls.
	learnt   []Literal
	seen     *ResetSet
	minStack []Literal
	minSaved []int

	// Restart policy.
	nextRestart int64

	// Phase saving schedule.
	saveProgress bool
	onTh         int64
	onThInc      int64
	offTh        int64
	offThInc     int64
	nextSwitch   int64

	// Clause database management.
	simplifyOrig    bool
	simplifyLearnt  bool
	nextSimplify    int64
	nextSimplifyInc int64
	maxLearnts      float64

	initialized bool
	prepared    bool

	// Search statistics.
	TotalDecisions   int64
	TotalConflicts   int64
	TotalRestarts    int64
	TotalLearnts     int64
	TotalDeleted     int64
	Reductions       int64
	Simplifications  int64
	MaxDecisionLevel int
	learntSize       EMA
	startTime        time.Time

	// Stop conditions.
	hasStopCond bool
	maxConflict int64
	timeout     time.Duration

	// Models found so far. Each model is indexed by variable (slot 0 is
	// unused).
	Models [][]bool

	verbose bool
}

type Options struct {
	// Timeout is the wall-clock budget of a Solve call. Negative values mean
	// no timeout.
	Timeout time.Duration

	// MaxConflicts limits the total number of conflicts of the solver,
	// counted across all Solve calls. Negative values mean no limit.
	MaxConflicts int64

	// RandomVarFreq is the probability of picking the decision variable
	// uniformly at random instead of by activity.
	RandomVarFreq float64

	// Verbose enables the progress table.
	Verbose bool
}

var DefaultOptions = Options{
	Timeout:       -1,
	MaxConflicts:  -1,
	RandomVarFreq: 0,
}

// NewDefaultSolver returns a solver configured with default options. This is
// equivalent to calling NewSolver with DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

func NewSolver(ops Options) *Solver {
	s := &Solver{
		clauseInc:     1,
		varInc:        1,
		decisionLevel: 1,
		status:        make([]Literal, 1),
		level:         make([]int, 1),
		reason:        make([]*Clause, 1),
		activities:    make([]float64, 1),
		saved:         make([]Literal, 1),
		watchers:      make([][]*Clause, 2),
		seen:          &ResetSet{},
		nextRestart:   lubyUnit,
		onTh:          initOnTh,
		offTh:         initOffTh,
		nextSwitch:    initOnTh,
		learntSize:    NewEMA(0.999),
		maxConflict:   -1,
		timeout:       -1,
		randFreq:      ops.RandomVarFreq,
		verbose:       ops.Verbose,
	}
	s.seen.Expand() // slot 0

	if ops.RandomVarFreq > 0 {
		s.rng = rand.New(rand.NewSource(randomSeed))
	}
	if ops.MaxConflicts >= 0 {
		s.hasStopCond = true
		s.maxConflict = ops.MaxConflicts
	}
	if ops.Timeout >= 0 {
		s.hasStopCond = true
		s.timeout = ops.Timeout
	}

	return s
}

func (s *Solver) shouldStop() bool {
	if s.maxConflict >= 0 && s.maxConflict <= s.TotalConflicts {
		return true
	}
	if s.timeout >= 0 && s.timeout <= time.Since(s.startTime) {
		return true
	}
	return false
}

func (s *Solver) NumVariables() int {
	return len(s.status) - 1
}

func (s *Solver) NumAssigns() int {
	return len(s.trail)
}

func (s *Solver) NumConstraints() int {
	return len(s.constraints)
}

func (s *Solver) NumLearnts() int {
	return len(s.learnts)
}

// VarValue returns the value currently assigned to variable v.
func (s *Solver) VarValue(v int) LBool {
	switch s.status[v] {
	case 0:
		return Unknown
	case PositiveLiteral(v):
		return True
	default:
		return False
	}
}

// LitValue returns the value of literal l under the current assignment.
func (s *Solver) LitValue(l Literal) LBool {
	switch s.status[l.VarID()] {
	case 0:
		return Unknown
	case l:
		return True
	default:
		return False
	}
}

// AddVariable adds a new variable to the solver and returns its ID. All
// variables must be added before the first clause.
func (s *Solver) AddVariable() int {
	v := len(s.status)
	s.status = append(s.status, 0)
	s.level = append(s.level, 0)
	s.reason = append(s.reason, nil)
	s.activities = append(s.activities, 0)
	s.saved = append(s.saved, 0)
	s.watchers = append(s.watchers, nil, nil)
	s.seen.Expand()
	return v
}

// init allocates the structures that depend on the final number of
// variables. It is called when the first clause is added or, for problems
// without clauses, when Solve is called.
func (s *Solver) init() {
	if s.initialized {
		return
	}
	s.initialized = true
	n := s.NumVariables()
	s.order = NewVarOrder(s, n)
	s.propQueue = newImpQueue(s, n)
	s.levelStart = make([]int, 2)
}

// AddClause adds a clause to the problem. Clauses can only be added at the
// root level. The clause is simplified against the current root assignment:
// duplicate literals are dropped, tautologies are discarded, and clauses
// that reduce to a single literal are enqueued as root facts instead of
// being stored.
func (s *Solver) AddClause(literals []Literal) error {
	if s.decisionLevel != 1 {
		return fmt.Errorf("can only add clauses at the root level")
	}
	for _, l := range literals {
		if v := l.VarID(); v < 1 || v > s.NumVariables() {
			return fmt.Errorf("literal %s out of range: solver has %d variables", l, s.NumVariables())
		}
	}
	s.init()

	c, ok := newProblemClause(s, literals)
	if c != nil {
		s.constraints = append(s.constraints, c)
	}
	if !ok {
		s.unsat = true
	}

	return nil
}

// enqueue records the fact that l is true. It returns false if l is already
// false (conflicting assignment). The literal is appended to the trail at
// the current decision level and queued for propagation.
func (s *Solver) enqueue(l Literal, from *Clause) bool {
	switch s.LitValue(l) {
	case False:
		return false
	case True:
		return true
	default:
		v := l.VarID()
		s.status[v] = l
		s.level[v] = s.decisionLevel
		s.reason[v] = from
		s.trail = append(s.trail, l)
		s.propQueue.push(v)
		return true
	}
}

// setDecision opens a new decision level, sets l to true and propagates.
// It returns the conflicting clause if propagation fails.
func (s *Solver) setDecision(l Literal) *Clause {
	if s.decisionLevel > s.MaxDecisionLevel {
		s.MaxDecisionLevel = s.decisionLevel
	}
	s.decisionLevel++
	s.TotalDecisions++

	for s.decisionLevel >= len(s.levelStart) {
		s.levelStart = append(s.levelStart, 0)
	}
	s.levelStart[s.decisionLevel] = len(s.trail)

	s.enqueue(l, nil)
	return s.Propagate()
}

// backtrack undoes every trail entry at level dest and above. The decision
// level is reset to dest-1 so that the next decision is made at level dest.
func (s *Solver) backtrack(dest int) {
	if s.decisionLevel < dest {
		return
	}
	target := s.levelStart[dest]
	for len(s.trail) > target {
		l := s.trail[len(s.trail)-1]
		s.trail = s.trail[:len(s.trail)-1]
		v := l.VarID()

		if s.saveProgress {
			s.saved[v] = l
		}
		s.reason[v] = nil
		s.level[v] = 0
		s.status[v] = 0
		s.order.Undo(v)
	}
	s.decisionLevel = dest - 1
}

// shrinkLevelStart gives back the memory of the level table when the search
// stays far below its high-water mark.
func (s *Solver) shrinkLevelStart() {
	n := max(s.decisionLevel+1, len(s.levelStart)/2)
	shrunk := make([]int, n)
	copy(shrunk, s.levelStart[:n])
	s.levelStart = shrunk
}

func (s *Solver) bumpVarActivity(l Literal) {
	v := l.VarID()
	s.activities[v] += s.varInc
	if s.activities[v] > scoreLimit {
		s.rescaleVarActivities()
	}
	s.order.Update(v)
}

func (s *Solver) rescaleVarActivities() {
	for v := 1; v < len(s.activities); v++ {
		s.activities[v] *= scoreDivider
	}
	s.varInc *= scoreDivider
}

func (s *Solver) bumpClauseActivity(c *Clause) {
	s.learntScores[c.index] += s.clauseInc
	if s.learntScores[c.index] > clauseScoreLimit {
		for i := range s.learntScores {
			s.learntScores[i] *= clauseScoreDivider
		}
		s.clauseInc *= clauseScoreDivider
	}
}

// Solve searches for a model of the problem. It returns True if a model was
// found (and appended to Models), False if the problem is unsatisfiable, and
// Unknown if a stop condition was reached first. Solve can be called again
// after new clauses have been added at the root level.
func (s *Solver) Solve() LBool {
	s.init()
	s.startTime = time.Now()

	if s.unsat {
		return False
	}
	if confl := s.Propagate(); confl != nil {
		s.unsat = true
		return False
	}
	if !s.prepared {
		s.prepared = true
		if len(s.trail) > 0 {
			s.simplifyOrig = true
			s.simplifyLearnt = true
		}
		s.simplifyOriginal()
		s.maxLearnts = float64(len(s.constraints)) / 3
	}

	s.printSeparator()
	s.printSearchHeader()
	s.printSeparator()

	result := s.search()

	s.printProgress()
	s.printSeparator()

	return result
}

// search is the main CDCL loop. Each iteration starts from a state that is
// closed under unit propagation and conflict free, checks the restart and
// clause database schedules, then makes one decision and resolves any
// resulting conflicts.
func (s *Solver) search() LBool {
	for {
		if s.hasStopCond && s.TotalDecisions%2000 == 0 && s.shouldStop() {
			s.backtrack(2)
			return Unknown
		}

		if s.TotalConflicts >= s.nextRestart {
			s.printProgress()
			s.backtrack(2)
			s.TotalRestarts++
			s.nextRestart = s.TotalConflicts + int64(lubyUnit*luby(uint(s.TotalRestarts)+1))
			s.simplifyOriginal()
		}

		if s.simplifyLearnt && s.decisionLevel == 1 && s.TotalConflicts >= s.nextSimplify {
			s.simplifyLearned()
		}

		if float64(len(s.learnts)) >= s.maxLearnts+float64(len(s.trail)) {
			s.reduceDB()
		}

		s.debugChecks()

		l, ok := s.order.Select()
		if !ok {
			// No free variable left: the current assignment is a model.
			s.saveModel()
			s.backtrack(2)
			return True
		}

		confl := s.setDecision(l)
		for confl != nil {
			alevel := s.analyze(confl)
			if alevel == 0 {
				s.unsat = true
				return False
			}
			s.backtrack(alevel + 1)
			confl = s.assertLearnt(alevel)
		}
	}
}

// assertLearnt adds the learned clause produced by the last analysis to the
// database, enqueues its asserting literal at the assertion level, and
// propagates. The clause must be unit after the backjump; clauses of size
// one become root facts with no reason.
func (s *Solver) assertLearnt(alevel int) *Clause {
	if s.NumVariables() > vcThreshold && s.decisionLevel < len(s.levelStart)/4 {
		s.shrinkLevelStart()
	}

	fuip := s.learnt[0]
	var c *Clause
	if len(s.learnt) > 1 {
		c = s.addLearnedClause(alevel)
	} else {
		s.TotalLearnts++
		s.simplifyOrig = true
		s.simplifyLearnt = true
	}

	s.varInc *= scoreIncFactor
	s.clauseInc *= clauseIncFactor

	s.enqueue(fuip, c)
	return s.Propagate()
}

func (s *Solver) saveModel() {
	model := make([]bool, s.NumVariables()+1)
	for v := 1; v <= s.NumVariables(); v++ {
		lb := s.VarValue(v)
		if lb == Unknown {
			panic("not a model")
		}
		model[v] = lb == True
	}
	if err := s.verifyModel(model); err != nil {
		panic(err)
	}
	s.Models = append(s.Models, model)
}

// verifyModel checks the model against the remaining original clauses.
// Clauses removed by root simplification were satisfied at level 1 and thus
// cannot be violated by any model extending the root assignment.
func (s *Solver) verifyModel(model []bool) error {
	for _, c := range s.constraints {
		ok := false
		for _, l := range c.lits {
			if model[l.VarID()] == l.IsPositive() {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("model does not satisfy %s", c)
		}
	}
	return nil
}

func (s *Solver) printSeparator() {
	if !s.verbose {
		return
	}
	fmt.Println("c ---------------------------------------------------------------------------------------")
}

func (s *Solver) printSearchHeader() {
	if !s.verbose {
		return
	}
	fmt.Println("c            time      decisions      conflicts       restarts        learnts   avg length")
}

func (s *Solver) printProgress() {
	if !s.verbose {
		return
	}
	fmt.Printf(
		"c %13.3fs %14d %14d %14d %14d %12.1f\n",
		time.Since(s.startTime).Seconds(),
		s.TotalDecisions,
		s.TotalConflicts,
		s.TotalRestarts,
		len(s.learnts),
		s.learntSize.Val(),
	)
}
