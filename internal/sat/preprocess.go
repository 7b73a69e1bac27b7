package sat

// preprocess runs the two-polarity failed-literal probe of spec.md §4.6,
// grounded on original_source/src/dpll.py's preprocess(). It assumes the
// initial clause set's singleton clauses have already been pushed onto the
// pending-assertion stack at level -2 by AddClause, so they survive every
// probe's cleanup undo alongside literals forced by the probe itself.
//
// It returns false if the formula is found UNSAT (a conflict during the
// initial propagation of the input's singleton clauses, or a conflict on
// both polarities of some variable's probe).
func (s *Solver) preprocess() bool {
	if conflict := s.Propagate(); conflict != nil {
		return false
	}

	// Probing happens at level -1: a throwaway level, undone in full after
	// every probe regardless of outcome. A variable forced by a failed
	// probe is asserted permanently at level -2, alongside the input's
	// singleton-clause facts, never undone by a probe's cleanup (whose
	// domain is levels strictly above -2).
	s.dl = -1

	fixpoint := 2
	for fixpoint > 0 {
		forcedAny := false
		s.stats.PreprocessPasses++

		for v := Var(1); int(v) <= s.numVars; v++ {
			if s.m.isAssigned(v) {
				continue
			}

			forced, ok := s.probe(PosLit(v))
			if !ok {
				return false
			}
			if forced {
				forcedAny = true
				continue
			}

			if s.m.isAssigned(v) {
				// Guard only: a clean probe undoes everything it committed
				// at level -1, v included, so v is normally free here.
				continue
			}

			forced, ok = s.probe(NegLit(v))
			if !ok {
				return false
			}
			if forced {
				forcedAny = true
			}
		}

		// A pass that forced something restarts fixpoint detection: two
		// full, clean passes are required before preprocessing stops.
		if forcedAny {
			fixpoint = 2
		} else {
			fixpoint--
		}
	}

	return true
}

// probe tries asserting l at level -1 and propagating. If that's
// consistent, it undoes the probe and reports (false, true): nothing
// learned, no conflict. If it conflicts, the probe's literal is a failed
// literal, so its negation is forced permanently at level -2; probe
// reports (true, true) on success, or (_, false) if forcing the negation
// itself conflicts, which spec.md §4.6 treats as immediate UNSAT.
func (s *Solver) probe(l Literal) (forced bool, ok bool) {
	s.pushAt(l, nil, -1)
	conflict := s.Propagate()
	freed := s.m.undo(-2)
	s.heuristic.OnUnassign(freed)

	if conflict == nil {
		return false, true
	}

	neg := l.Negate()
	reason := newClause(s.allocClauseID(), []Literal{neg}, false)
	s.pushAt(neg, reason, -2)
	if conflict := s.Propagate(); conflict != nil {
		return false, false
	}
	return true, true
}
