package sat

import "github.com/rhartert/yagh"

// Heuristic is the narrow capability set the solver drives branching
// through, so that alternative policies (VSIDS, LRB, ...) can be substituted
// without touching the core search loop.
type Heuristic interface {
	// Grow registers one more variable (called once per AddVariable, in
	// order, so the new variable is always numVars).
	Grow()
	// OnAssign is called whenever a variable is committed to the model.
	OnAssign(v Var)
	// OnUnassign is called with the variables an undo just freed.
	OnUnassign(vs []Var)
	// OnLearned is called once per conflict with the variables of the
	// learned clause and of the conflict clause that produced it.
	OnLearned(learnedVars, conflictVars []Var)
	// Pick returns the variable with the best score among free, breaking
	// ties by first occurrence in free.
	Pick(free []Var) Var
}

// erma implements the exponential recency-weighted moving average branching
// heuristic of spec.md §4.4, directly grounded on original_source/branching.py.
type erma struct {
	alpha    float64
	alphaDec float64
	alphaLB  float64

	q            []float64 // moving average, indexed by var-1
	lastAssigned []int64   // learnedCount at the variable's last assignment
	participated []int64   // conflicts touching the var since last assignment

	learnedCount int64

	// order is a min-heap keyed by -q[x], used to avoid an O(n) scan when
	// picking the next decision variable; it mirrors the teacher's VarOrder
	// (internal/sat/ordering.go) but is driven by ERMA's q instead of VSIDS
	// activity. Ties are broken by insertion order (variable declaration
	// order), matching the teacher's documented heap tie-break and spec.md
	// §4.4's "first occurrence" rule for variables enumerated in declaration
	// order.
	order *yagh.IntMap[float64]
}

// NewERMA returns a branching heuristic configured with spec.md §4.4's
// default parameters.
func NewERMA() *erma {
	return &erma{
		alpha:    0.4,
		alphaDec: 1e-6,
		alphaLB:  0.06,
		order:    yagh.New[float64](0),
	}
}

// Grow registers a new variable (0 initial q), called once per AddVariable.
func (h *erma) Grow() {
	h.q = append(h.q, 0)
	h.lastAssigned = append(h.lastAssigned, 0)
	h.participated = append(h.participated, 0)
	h.order.GrowBy(1)
	h.order.Put(len(h.q)-1, 0)
}

func (h *erma) OnAssign(v Var) {
	i := int(v) - 1
	h.lastAssigned[i] = h.learnedCount
	h.participated[i] = 0
}

func (h *erma) OnUnassign(vs []Var) {
	for _, v := range vs {
		i := int(v) - 1
		interval := h.learnedCount - h.lastAssigned[i]
		if interval > 0 {
			r := float64(h.participated[i]) / float64(interval)
			h.q[i] = (1-h.alpha)*h.q[i] + h.alpha*r
		}
		h.order.Put(i, -h.q[i])
	}
}

func (h *erma) OnLearned(learnedVars, conflictVars []Var) {
	h.learnedCount++

	touched := make(map[Var]struct{}, len(learnedVars)+len(conflictVars))
	for _, v := range learnedVars {
		touched[v] = struct{}{}
	}
	for _, v := range conflictVars {
		touched[v] = struct{}{}
	}
	for v := range touched {
		h.participated[int(v)-1]++
	}

	if h.alpha > h.alphaLB {
		h.alpha -= h.alphaDec
		if h.alpha < h.alphaLB {
			h.alpha = h.alphaLB
		}
	}
}

// Pick returns the free variable with maximum q, ties broken by first
// occurrence in free (in practice, declaration order: the solver always
// enumerates free variables in ascending variable-ID order, which is also
// the heap's insertion order).
//
// The heap holds every variable not currently known to be assigned; entries
// for variables that got assigned through propagation (rather than through
// a prior Pick) are stale and are discarded here, exactly as the teacher's
// VarOrder.NextDecision (internal/sat/ordering.go) discards already-assigned
// heap entries. Discarded entries return to the heap once OnUnassign fires
// for them.
func (h *erma) Pick(free []Var) Var {
	inFree := make(map[Var]struct{}, len(free))
	for _, v := range free {
		inFree[v] = struct{}{}
	}

	for {
		item, ok := h.order.Pop()
		if !ok {
			return h.pickLinear(free) // heap exhausted; should not happen
		}
		v := Var(item.Elem + 1)
		if _, isFree := inFree[v]; isFree {
			return v
		}
		// Stale entry for an already-assigned variable: drop it.
	}
}

// pickLinear is the fallback, spec-literal O(len(free)) scan used only if
// the heap is ever found empty while free variables remain.
func (h *erma) pickLinear(free []Var) Var {
	best := free[0]
	bestQ := h.q[int(best)-1]
	for _, v := range free[1:] {
		if q := h.q[int(v)-1]; q > bestQ {
			best, bestQ = v, q
		}
	}
	return best
}
