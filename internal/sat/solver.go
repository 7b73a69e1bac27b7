package sat

import (
	"math/rand/v2"

	"github.com/rs/zerolog"
)

// Options configures a Solver. Grounded on the teacher's CLI-driven flag
// set (main.go), trimmed to what the core engine itself consumes; the
// rest (DIMACS path, profile destination, pprof toggles) belongs to the
// command-line driver, not the solver.
type Options struct {
	// Seed drives the decision-polarity RNG. Two solves with the same
	// seed over the same clause set make the same decisions in the same
	// order, per spec.md §8's determinism requirement.
	Seed uint64
	// Logger receives structured per-decision-level search events. The
	// zero value is zerolog's no-op logger.
	Logger zerolog.Logger
}

// Solver implements the CDCL search engine of spec.md §4: two-watched-
// literal propagation, first-UIP conflict analysis, ERMA branching, and
// reluctant-doubling restarts, fronted by a two-polarity failed-literal
// preprocessing pass. Grounded throughout on the teacher's
// internal/sat/solver.go, generalized from the teacher's VSIDS/ReduceDB
// design to the spec's ERMA heuristic and finite (never-reduced) clause
// arena.
type Solver struct {
	numVars      int
	clauses      []*Clause
	nextClauseID ClauseID
	watchers     [][]*Clause

	m       *model
	pending *Queue[pendingAssertion]
	dl      int

	heuristic Heuristic
	rng       *rand.Rand

	restart        reluctantDoubling
	restartCounter int64

	rootUnsat bool

	stats  Stats
	logger zerolog.Logger
}

// NewSolver returns an empty solver ready to accept variables and clauses.
func NewSolver(opts Options) *Solver {
	seed := opts.Seed
	return &Solver{
		clauses:   make([]*Clause, 0),
		m:         newModel(),
		pending:   NewQueue[pendingAssertion](64),
		heuristic: NewERMA(),
		rng:       rand.New(rand.NewPCG(seed, seed)),
		restart:   newReluctantDoubling(),
		logger:    opts.Logger,
	}
}

// AddVariable registers one more Boolean variable and returns its handle.
// Variables must be added before any clause referencing them.
func (s *Solver) AddVariable() Var {
	s.numVars++
	v := Var(s.numVars)
	s.m.growTo(v)
	s.watchers = append(s.watchers, nil, nil)
	s.heuristic.Grow()
	return v
}

// NumVars reports how many variables have been registered.
func (s *Solver) NumVars() int { return s.numVars }

func (s *Solver) allocClauseID() ClauseID {
	id := s.nextClauseID
	s.nextClauseID++
	return id
}

// AddClause adds a clause given as raw signed DIMACS-style integers (no
// trailing zero). An empty clause marks the formula UNSAT outright. A
// trivial clause (containing some literal and its negation) is dropped, as
// it's always satisfied. A singleton clause is pushed onto the pending-
// assertion stack at level -2 rather than watched, since a one-literal
// clause has nothing to watch it with: it asserts its literal permanently
// and unconditionally, the same as a literal forced by failed-literal
// probing, so it must live at the same never-undone level. Pushing it at
// level 0 instead (spec.md §3's label for this tier, taken literally) would
// have it wiped by the very first preprocessing probe's cleanup undo, which
// undoes everything above level -2 — original_source/src/dpll.py resolves
// this the same way, initializing its own dl to -2 before ever touching
// singleton clauses.
func (s *Solver) AddClause(raw []int) {
	id := s.allocClauseID()
	if len(raw) == 0 {
		s.rootUnsat = true
		return
	}

	c := newClauseFromInts(id, raw, false)
	if c.trivial {
		return
	}

	s.clauses = append(s.clauses, c)
	if c.singleton {
		s.pushAt(c.literals[0], c, -2)
		return
	}
	s.installWatches(c)
}

// freeVars returns every variable with no current assignment, in
// declaration order.
func (s *Solver) freeVars() []Var {
	free := make([]Var, 0, s.numVars)
	for v := Var(1); int(v) <= s.numVars; v++ {
		if !s.m.isAssigned(v) {
			free = append(free, v)
		}
	}
	return free
}

// saveModel captures the current complete assignment as a dense, 0-indexed
// slice of Boolean values, one per variable.
func (s *Solver) saveModel() []bool {
	out := make([]bool, s.numVars)
	for v := Var(1); int(v) <= s.numVars; v++ {
		out[v-1], _ = s.m.varValue(v)
	}
	return out
}

func varsOf(lits []Literal) []Var {
	out := make([]Var, len(lits))
	for i, l := range lits {
		out[i] = l.Var()
	}
	return out
}

// Solve runs the search to completion, per spec.md §4.7. It returns
// whether the formula is satisfiable and, if so, a complete model indexed
// by Var-1.
func (s *Solver) Solve() (bool, []bool) {
	s.stats.begin()
	defer s.stats.finish()

	if s.rootUnsat {
		return false, nil
	}
	if !s.preprocess() {
		return false, nil
	}

	s.dl = 1
	for {
		free := s.freeVars()
		if len(free) == 0 {
			model := s.saveModel()
			s.checkModel(model)
			return true, model
		}

		v := s.heuristic.Pick(free)
		var l Literal
		if s.rng.IntN(2) == 0 {
			l = PosLit(v)
		} else {
			l = NegLit(v)
		}
		s.stats.Decisions++
		s.logger.Debug().Int("var", int(v)).Int("level", s.dl).Msg("decision")
		s.pushCurrent(l, nil)

		conflict := s.Propagate()
		for conflict != nil {
			s.stats.Conflicts++
			s.restartCounter++

			beta, asserting, learned := s.analyze(conflict)
			if beta < 0 {
				return false, nil
			}

			c := s.record(learned, asserting)
			s.stats.LearnedClauses++
			s.logger.Debug().
				Stringer("clause", c).
				Bool("learnt", c.Learnt()).
				Int("backjump", beta).
				Msg("conflict")

			// OnLearned must record this conflict's participation counts
			// before undo/OnUnassign folds them into the freed variables' q;
			// otherwise OnUnassign would use the prior conflict's
			// learnedCount, per spec.md §4.4.
			s.heuristic.OnLearned(varsOf(learned), varsOf(conflict.literals))
			freed := s.m.undo(beta)
			s.heuristic.OnUnassign(freed)

			s.dl = beta
			s.pushCurrent(asserting, c)
			conflict = s.Propagate()
		}

		if s.restartCounter >= s.restart.value()*restartMultiplier {
			freed := s.m.undo(0)
			s.heuristic.OnUnassign(freed)
			s.dl = 1
			s.stats.Restarts++
			s.restart.next()
			s.restartCounter = 0
			s.logger.Debug().Int64("conflicts", s.stats.Conflicts).Msg("restart")
			continue
		}

		s.dl++
	}
}

// Stats returns the accumulated solve statistics. Meaningful only after
// Solve returns.
func (s *Solver) Stats() Stats { return s.stats }

// verifyModel checks that every stored clause is satisfied by model, skipping
// trivial clauses (always satisfied; AddClause does not store them), mirroring original_source/src/dpll.py's modeled_by assertion.
// Used only by debug builds and tests, never by the core search.
func (s *Solver) verifyModel(model []bool) bool {
	value := func(l Literal) bool {
		v := model[l.Var()-1]
		if l.IsPositive() {
			return v
		}
		return !v
	}
	for _, c := range s.clauses {
		if c.trivial {
			continue
		}
		sat := false
		for _, l := range c.literals {
			if value(l) {
				sat = true
				break
			}
		}
		if !sat {
			return false
		}
	}
	return true
}
