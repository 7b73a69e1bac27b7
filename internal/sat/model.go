package sat

// model is the trail: a per-variable assignment keyed by decision level,
// together with a per-level index of the variables assigned at that level
// (in assignment order) and the set of variables that are decisions.
//
// reason[v] == nil means v is either unassigned or a decision literal; the
// two cases are distinguished by assigned[v].
type model struct {
	assigned   []bool
	value      []bool // meaningful only where assigned[v] is true
	level      []int
	reason     []*Clause
	isDecision []bool

	// atLevel[l] lists, in assignment order, the variables committed at
	// decision level l. A variable appears in atLevel[l] iff its entry has
	// level l.
	atLevel map[int][]Var
}

func newModel() *model {
	return &model{atLevel: make(map[int][]Var)}
}

// growTo ensures the model has storage for variable v.
func (m *model) growTo(v Var) {
	for Var(len(m.assigned)) < v {
		m.assigned = append(m.assigned, false)
		m.value = append(m.value, false)
		m.level = append(m.level, 0)
		m.reason = append(m.reason, nil)
		m.isDecision = append(m.isDecision, false)
	}
}

// isAssigned reports whether v currently has a value.
func (m *model) isAssigned(v Var) bool { return m.assigned[v-1] }

// varValue reports the current value of variable v. ok is false if v is
// unassigned, in which case value is meaningless.
func (m *model) varValue(v Var) (value bool, ok bool) {
	if !m.assigned[v-1] {
		return false, false
	}
	return m.value[v-1], true
}

// litValue reports the current value of literal l. ok is false if l's
// variable is unassigned.
func (m *model) litValue(l Literal) (value bool, ok bool) {
	v, ok := m.varValue(l.Var())
	if !ok {
		return false, false
	}
	if !l.IsPositive() {
		v = !v
	}
	return v, true
}

// levelOf returns the decision level at which l's variable was assigned.
// The variable must be assigned.
func (m *model) levelOf(l Literal) int { return m.level[l.Var()-1] }

// reasonOf returns the reason clause of l's variable, or nil if it is a
// decision literal. The variable must be assigned.
func (m *model) reasonOf(l Literal) *Clause { return m.reason[l.Var()-1] }

// isDecisionVar reports whether v was assigned as a decision.
func (m *model) isDecisionVar(v Var) bool { return m.isDecision[v-1] }

// commit sets (is_pos, dl, reason) for l's variable and records it in
// atLevel[dl]. reason is nil for a decision literal.
func (m *model) commit(l Literal, dl int, reason *Clause) {
	v := l.Var()
	m.assigned[v-1] = true
	m.value[v-1] = l.IsPositive()
	m.level[v-1] = dl
	m.reason[v-1] = reason
	m.atLevel[dl] = append(m.atLevel[dl], v)
}

// assign commits l as a decision at level dl.
func (m *model) assign(l Literal, dl int) {
	m.commit(l, dl, nil)
	m.isDecision[l.Var()-1] = true
}

// undo removes every variable entry assigned at a level strictly greater
// than beta, dropping decision marks and erasing atLevel for those levels.
// It returns the newly-unassigned variables so the heuristic can update its
// moving average.
func (m *model) undo(beta int) []Var {
	var unassigned []Var
	for lvl, vars := range m.atLevel {
		if lvl <= beta {
			continue
		}
		for _, v := range vars {
			m.assigned[v-1] = false
			m.reason[v-1] = nil
			m.isDecision[v-1] = false
			unassigned = append(unassigned, v)
		}
		delete(m.atLevel, lvl)
	}
	return unassigned
}
