package sat

import "testing"

func TestNewClauseFromInts_DetectsTrivial(t *testing.T) {
	c := newClauseFromInts(0, []int{1, -2, -1}, false)
	if !c.trivial {
		t.Errorf("clause containing a literal and its negation should be trivial")
	}
}

func TestNewClauseFromInts_DetectsSingleton(t *testing.T) {
	c := newClauseFromInts(0, []int{-3}, false)
	if !c.singleton {
		t.Errorf("one-literal clause should be a singleton")
	}
	if c.trivial {
		t.Errorf("singleton clause should not be trivial")
	}
}

func TestNewClauseFromInts_OrdinaryClause(t *testing.T) {
	c := newClauseFromInts(0, []int{1, -2, 3}, false)
	if c.trivial || c.singleton {
		t.Errorf("ordinary 3-literal clause should be neither trivial nor singleton")
	}
	want := []Literal{PosLit(1), NegLit(2), PosLit(3)}
	if len(c.literals) != len(want) {
		t.Fatalf("got %v, want %v", c.literals, want)
	}
	for i := range want {
		if c.literals[i] != want[i] {
			t.Errorf("position %d: got %v, want %v", i, c.literals[i], want[i])
		}
	}
}
