package sat

import "strings"

// ClauseID is a stable, solver-local identity for a clause. IDs are assigned
// by a per-solver monotonic counter — unique within a solve, but not
// meaningful across solver instances.
type ClauseID int32

// Clause is an ordered, mutable sequence of literals with a stable identity.
// Positions 0 and 1 hold the two watched literals for any clause that isn't
// trivial or a singleton. Clauses are appended to the solver's clause arena
// when created and are never removed or relocated: reason pointers on the
// trail are therefore safe to hold onto for the lifetime of a solve.
type Clause struct {
	id        ClauseID
	literals  []Literal
	trivial   bool // contains both a literal and its negation
	singleton bool
	learnt    bool
}

// ID returns the clause's stable identifier.
func (c *Clause) ID() ClauseID { return c.id }

// Literals returns the clause's current literals, in order. The slice is
// owned by the clause; callers must not retain it across further mutation.
func (c *Clause) Literals() []Literal { return c.literals }

// Len returns the number of literals currently in the clause.
func (c *Clause) Len() int { return len(c.literals) }

// Learnt reports whether c was derived by conflict analysis, as opposed to
// being part of the original formula.
func (c *Clause) Learnt() bool { return c.learnt }

// newClauseFromInts builds a clause from raw signed DIMACS-style integers (no
// zero terminator). It detects triviality (a literal and its negation both
// present) but otherwise preserves the input order, per spec.md §3: clauses
// are "an ordered sequence of literals".
func newClauseFromInts(id ClauseID, raw []int, learnt bool) *Clause {
	lits := make([]Literal, len(raw))
	for i, n := range raw {
		if n > 0 {
			lits[i] = PosLit(Var(n))
		} else {
			lits[i] = NegLit(Var(-n))
		}
	}
	return newClause(id, lits, learnt)
}

func newClause(id ClauseID, lits []Literal, learnt bool) *Clause {
	c := &Clause{
		id:       id,
		literals: lits,
		learnt:   learnt,
	}
	c.trivial = hasOppositePair(lits)
	c.singleton = !c.trivial && len(lits) == 1
	return c
}

// hasOppositePair reports whether lits contains some literal and its negation.
func hasOppositePair(lits []Literal) bool {
	seen := make(map[Literal]struct{}, len(lits))
	for _, l := range lits {
		if _, ok := seen[l.Negate()]; ok {
			return true
		}
		seen[l] = struct{}{}
	}
	return false
}

// watchedLiterals returns the two literals currently occupying positions 0
// and 1, which the watch index is keyed on.
func (c *Clause) watchedLiterals() (Literal, Literal) {
	return c.literals[0], c.literals[1]
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
