package sat

// pendingAssertion is an entry on the pending-assertion stack: a literal to
// be asserted, its reason (nil for a decision), and the decision level to
// commit it at. useCurrentLevel means "whatever the solver's current level
// is when the assertion is popped", per spec.md §3's
// "level_override_or_current".
type pendingAssertion struct {
	lit             Literal
	reason          *Clause
	level           int
	useCurrentLevel bool
}

// pushCurrent pushes an assertion to be committed at the solver's current
// decision level, whatever that is at the time it's popped.
func (s *Solver) pushCurrent(l Literal, reason *Clause) {
	s.pending.PushFront(pendingAssertion{lit: l, reason: reason, useCurrentLevel: true})
}

// pushAt pushes an assertion to be committed at an explicit decision level,
// used by preprocessing's probes (levels -1 and -2).
func (s *Solver) pushAt(l Literal, reason *Clause, level int) {
	s.pending.PushFront(pendingAssertion{lit: l, reason: reason, level: level})
}

// Watch registers clause c as watching literal watched: c is added to the
// bucket keyed by watched itself, per spec.md §3's watch invariant ("c[0]
// and c[1] are present in the watch index under their own keys").
func (s *Solver) Watch(c *Clause, watched Literal) {
	idx := watched.index()
	s.watchers[idx] = append(s.watchers[idx], c)
}

// installWatches registers both of a freshly-built clause's watched literals.
func (s *Solver) installWatches(c *Clause) {
	l0, l1 := c.watchedLiterals()
	s.Watch(c, l0)
	s.Watch(c, l1)
}

// Propagate drains the pending-assertion stack via two-watched-literal unit
// propagation, per spec.md §4.1. It returns the conflicting reason clause,
// or nil if propagation reached a fixpoint without conflict.
func (s *Solver) Propagate() *Clause {
	for !s.pending.IsEmpty() {
		pa := s.pending.Pop()
		l := pa.lit
		level := pa.level
		if pa.useCurrentLevel {
			level = s.dl
		}

		if s.m.isAssigned(l.Var()) {
			if v, _ := s.m.litValue(l); !v {
				s.pending.Clear()
				return pa.reason
			}
			continue // already true: consistent, nothing to do
		}

		if pa.reason != nil {
			s.m.commit(l, level, pa.reason)
		} else {
			s.m.assign(l, level)
		}
		s.heuristic.OnAssign(l.Var())
		s.stats.Propagations++

		negIdx := l.Negate().index()
		watchList := s.watchers[negIdx]
		if len(watchList) == 0 {
			continue
		}

		kept := watchList[:0:0]
		for _, c := range watchList {
			lits := c.literals

			i := 0
			if lits[0] != l.Negate() {
				i = 1
			}

			j := -1
			for k := 2; k < len(lits); k++ {
				lk := lits[k]
				if v, ok := s.m.litValue(lk); !ok || v {
					j = k
					break
				}
			}

			if j >= 0 {
				lits[i], lits[j] = lits[j], lits[i]
				s.Watch(c, lits[i])
			} else {
				// No substitute: c is unit on its other watched literal.
				kept = append(kept, c)
				other := lits[1-i]
				s.pushCurrent(other, c)
			}
		}
		s.watchers[negIdx] = kept
	}
	return nil
}
