package sat

// sentinelLiteral marks the boundary between BFS "rounds" in the first-UIP
// frontier search below. 0 is never a valid Literal (literals are nonzero),
// so it's safe to use as a sentinel.
const sentinelLiteral Literal = 0

// analyze performs first-UIP conflict analysis, per spec.md §4.3. It
// consumes the conflicting clause returned by Propagate and returns the
// backjump level, the asserting literal, and the learned clause's literals
// (asserting literal not yet placed at position 0 — the caller does that).
//
// Grounded on original_source/src/dpll.py's uip_fast: a BFS over the
// frontier of falsified literals, stopping as soon as exactly one literal
// at the current decision level remains, using a sentinel to detect a round
// with no new literals (which would otherwise loop forever).
func (s *Solver) analyze(conflict *Clause) (beta int, asserting Literal, learned []Literal) {
	frontier := NewQueue[Literal](16)
	inFrontier := make(map[Literal]struct{}, len(conflict.literals)*2)
	levelCount := make(map[int]int)

	for _, l := range conflict.literals {
		frontier.PushBack(l)
		inFrontier[l] = struct{}{}
		levelCount[s.m.levelOf(l)]++
	}

	frontier.PushBack(sentinelLiteral)
	changes := 0

	for levelCount[s.dl] != 1 {
		l := frontier.Pop()

		if l == sentinelLiteral {
			if changes == 0 {
				break // a full round produced nothing new: stuck, bail out
			}
			changes = 0
			frontier.PushBack(sentinelLiteral)
			continue
		}

		reason := s.m.reasonOf(l)
		if reason == nil {
			// Decision literal: cannot be resolved further.
			frontier.PushBack(l)
			continue
		}

		levelCount[s.m.levelOf(l)]--
		neg := l.Negate()
		for _, m := range reason.literals {
			if m == neg {
				continue // the literal whose implication we're tracing
			}
			if _, ok := inFrontier[m]; ok {
				continue
			}
			inFrontier[m] = struct{}{}
			frontier.PushBack(m)
			levelCount[s.m.levelOf(m)]++
			changes++
		}
	}

	learned = make([]Literal, 0, frontier.Size())
	assertingIdx := -1
	for frontier.Size() > 0 {
		l := frontier.Pop()
		if l == sentinelLiteral {
			continue
		}
		if s.m.levelOf(l) == s.dl {
			assertingIdx = len(learned)
		}
		learned = append(learned, l)
	}
	if assertingIdx == -1 {
		// The conflict doesn't depend on the current decision level at all:
		// it follows from level-0 (and probing) facts alone. No backjump
		// can resolve it; the formula is unsatisfiable.
		return -1, 0, learned
	}
	asserting = learned[assertingIdx]

	if len(learned) == 1 {
		beta = s.dl - 1
		return beta, asserting, learned
	}

	beta = 0
	for _, l := range learned {
		if l == asserting {
			continue
		}
		if lvl := s.m.levelOf(l); lvl > beta {
			beta = lvl
		}
	}
	return beta, asserting, learned
}

// record appends the learned clause to the clause arena, places the
// asserting literal at position 0 (so it becomes a watched literal) and a
// second literal at position 1, installs its watches, and returns it.
func (s *Solver) record(learned []Literal, asserting Literal) *Clause {
	for i, l := range learned {
		if l == asserting {
			learned[0], learned[i] = learned[i], learned[0]
			break
		}
	}

	c := newClause(s.allocClauseID(), learned, true)
	s.clauses = append(s.clauses, c)

	if !c.singleton {
		s.installWatches(c)
	}
	return c
}
