package sat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestSolver(numVars int, clauses [][]int, seed uint64) *Solver {
	s := NewSolver(Options{Seed: seed})
	for i := 0; i < numVars; i++ {
		s.AddVariable()
	}
	for _, c := range clauses {
		s.AddClause(c)
	}
	return s
}

func TestSolve_ZeroClausesIsSatisfiable(t *testing.T) {
	s := newTestSolver(3, nil, 1)
	sat, model := s.Solve()
	if !sat {
		t.Fatal("expected sat with no clauses to constrain the search")
	}
	if len(model) != 3 {
		t.Fatalf("got model of length %d, want 3", len(model))
	}
}

func TestSolve_EmptyClauseIsImmediatelyUnsat(t *testing.T) {
	s := newTestSolver(2, [][]int{{1, 2}, {}}, 1)
	sat, _ := s.Solve()
	if sat {
		t.Fatal("expected unsat: an empty clause can never be satisfied")
	}
}

func TestSolve_TrivialClauseIsIgnored(t *testing.T) {
	// {1, -1, 2} is a tautology and should be dropped; the only real
	// constraint is the singleton {-2}, which forces var 2 false.
	s := newTestSolver(2, [][]int{{1, -1, 2}, {-2}}, 1)
	sat, model := s.Solve()
	if !sat {
		t.Fatal("expected sat")
	}
	if model[1] != false {
		t.Errorf("var 2: got %v, want false", model[1])
	}
	if !s.verifyModel(model) {
		t.Errorf("model %v does not satisfy the clause set", model)
	}
}

func TestSolve_SingletonOnlyFormulaDecidedByPropagation(t *testing.T) {
	s := newTestSolver(2, [][]int{{1}, {-2}}, 1)
	sat, model := s.Solve()
	if !sat {
		t.Fatal("expected sat")
	}
	if !model[0] || model[1] {
		t.Errorf("got model %v, want [true false]", model)
	}
	if s.Stats().Decisions != 0 {
		t.Errorf("a fully-propagated formula should need no decisions, got %d", s.Stats().Decisions)
	}
}

func TestSolve_AllSignCombinationsOverTwoVarsIsUnsat(t *testing.T) {
	// (a v b) ^ (a v !b) ^ (!a v b) ^ (!a v !b) rules out every assignment
	// of a and b, so the formula is unsatisfiable however it's resolved
	// (failed-literal preprocessing alone, or the main CDCL loop).
	s := newTestSolver(2, [][]int{
		{1, 2},
		{1, -2},
		{-1, 2},
		{-1, -2},
	}, 1)
	sat, _ := s.Solve()
	if sat {
		t.Fatal("expected unsat")
	}
}

func TestSolve_ChainOfImplicationsIsUnsat(t *testing.T) {
	// 1->2->3->4 (as !1 v 2, !2 v 3, !3 v 4) together with 1 and !4 is
	// unsatisfiable: unit propagation must walk the whole implication
	// chain before the contradiction surfaces.
	s := newTestSolver(4, [][]int{
		{-1, 2},
		{-2, 3},
		{-3, 4},
		{1},
		{-4},
	}, 1)
	sat, _ := s.Solve()
	if sat {
		t.Fatal("expected unsat")
	}
}

func TestSolve_SatisfiableFormulaProducesVerifiableModel(t *testing.T) {
	// (a v b v c) ^ (!a v b) ^ (!b v c) ^ (!c v a)
	s := newTestSolver(3, [][]int{
		{1, 2, 3},
		{-1, 2},
		{-2, 3},
		{-3, 1},
	}, 1)
	sat, model := s.Solve()
	if !sat {
		t.Fatal("expected sat")
	}
	if !s.verifyModel(model) {
		t.Errorf("model %v does not satisfy the clause set", model)
	}
}

func TestSolve_DeterministicGivenSameSeed(t *testing.T) {
	clauses := [][]int{
		{1, 2, 3, 4},
		{-1, 2},
		{-2, 3},
		{-3, 4},
		{-4, -1},
	}

	s1 := newTestSolver(4, clauses, 42)
	sat1, model1 := s1.Solve()

	s2 := newTestSolver(4, clauses, 42)
	sat2, model2 := s2.Solve()

	if sat1 != sat2 {
		t.Fatalf("two solves of the same instance with the same seed disagreed on satisfiability")
	}
	if sat1 {
		if diff := cmp.Diff(model1, model2); diff != "" {
			t.Errorf("two solves of the same instance with the same seed picked different models (-first, +second):\n%s", diff)
		}
	}
}

// The following mirror spec.md §8's end-to-end scenario table verbatim.

func TestSolve_ScenarioA_SingleUnitClause(t *testing.T) {
	s := newTestSolver(1, [][]int{{1}}, 1)
	sat, model := s.Solve()
	if !sat {
		t.Fatal("expected sat")
	}
	if !model[0] {
		t.Errorf("got %v, want {1: true}", model)
	}
}

func TestSolve_ScenarioB_ConflictingUnitClauses(t *testing.T) {
	s := newTestSolver(1, [][]int{{1}, {-1}}, 1)
	sat, _ := s.Solve()
	if sat {
		t.Fatal("expected unsat")
	}
}

func TestSolve_ScenarioC_AnyModelWithX2True(t *testing.T) {
	s := newTestSolver(3, [][]int{{1, 2}, {-1, 2}}, 1)
	sat, model := s.Solve()
	if !sat {
		t.Fatal("expected sat")
	}
	if !model[1] {
		t.Errorf("got %v, want var 2 true", model)
	}
	if !s.verifyModel(model) {
		t.Errorf("model %v does not satisfy the clause set", model)
	}
}

func TestSolve_ScenarioD_ForcedByPropagationAlone(t *testing.T) {
	s := newTestSolver(3, [][]int{{1}, {-1, 2}, {-2, 3}}, 1)
	sat, model := s.Solve()
	if !sat {
		t.Fatal("expected sat")
	}
	want := []bool{true, true, true}
	if diff := cmp.Diff(want, model); diff != "" {
		t.Errorf("model mismatch (-want, +got):\n%s", diff)
	}
	if s.Stats().Decisions != 0 {
		t.Errorf("a fully-propagated formula should need no decisions, got %d", s.Stats().Decisions)
	}
}

func TestSolve_ScenarioE_AllFourSignCombinationsUnsat(t *testing.T) {
	s := newTestSolver(2, [][]int{
		{1, 2},
		{1, -2},
		{-1, 2},
		{-1, -2},
	}, 1)
	sat, _ := s.Solve()
	if sat {
		t.Fatal("expected unsat")
	}
}

// TestSolve_ScenarioF_Pigeonhole32 encodes PHP(3,2): 3 pigeons, 2 holes.
// Variable x_{i,h} (pigeon i in hole h, 1-indexed) is numbered
// (i-1)*2+h. No injective mapping of 3 pigeons into 2 holes exists, so the
// instance is unsatisfiable. Failed-literal preprocessing already refutes
// it: probing x_{1,1} propagates to a conflict in hole 2, and forcing its
// negation propagates to a conflict in hole 1.
func TestSolve_ScenarioF_Pigeonhole32(t *testing.T) {
	x := func(pigeon, hole int) int { return (pigeon-1)*2 + hole }

	var clauses [][]int
	for p := 1; p <= 3; p++ {
		clauses = append(clauses, []int{x(p, 1), x(p, 2)})
	}
	for h := 1; h <= 2; h++ {
		for i := 1; i <= 3; i++ {
			for j := i + 1; j <= 3; j++ {
				clauses = append(clauses, []int{-x(i, h), -x(j, h)})
			}
		}
	}

	s := newTestSolver(6, clauses, 1)
	sat, _ := s.Solve()
	if sat {
		t.Fatal("expected unsat: 3 pigeons cannot fit into 2 holes injectively")
	}
}

func TestSolve_BoundaryEmptyModelIsSatWithAnyAssignment(t *testing.T) {
	s := newTestSolver(0, nil, 1)
	sat, model := s.Solve()
	if !sat {
		t.Fatal("expected sat")
	}
	if len(model) != 0 {
		t.Errorf("got model of length %d, want 0", len(model))
	}
}
