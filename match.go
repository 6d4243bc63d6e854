package nfa

// Match returns the length of the longest prefix of input accepted
// starting from s, and true, or (0, false) if no such prefix exists.
//
// In full mode (full == true), the only candidate is input itself: Match
// returns (len(input), true) iff there is a path from s spelling all of
// input (epsilon transitions interleaved freely) ending at an accepting
// state, else (0, false).
//
// In prefix mode (full == false), Match returns the length of the longest
// prefix of input (including the empty prefix) for which such a path
// exists, or (0, false) if not even the empty prefix is accepted.
//
// Match automatically uses the compiled back end if Compile has been
// called on s, and the lazy back end otherwise; the two always agree on
// every input.
func (s *State[S]) Match(input []S, full bool) (int, bool) {
	if s.table != nil {
		return s.matchCompiled(input, full)
	}
	return s.matchLazy(input, 0, full)
}

// matchLazy implements the recursive-descent-with-backtracking matching
// algorithm. Because input is a plain slice (an owned, random-access,
// freely re-readable buffer), every recursive branch reads the same
// shared slice without needing to save and restore a cursor: indexing by
// pos never mutates input, so sibling branches always see the same
// suffix.
func (s *State[S]) matchLazy(input []S, pos int, full bool) (int, bool) {
	closure := s.Closure()
	best := -1
	if !full && anyAccepting(closure) {
		best = pos
	}

	if pos == len(input) {
		if anyAccepting(closure) {
			return pos, true
		}
		if !full && best >= 0 {
			return best, true
		}
		return 0, false
	}

	label := Sym(input[pos])
	for _, c := range closure {
		for _, next := range c.Step(label) {
			if length, ok := next.matchLazy(input, pos+1, full); ok && length > best {
				best = length
			}
		}
	}

	if best >= 0 {
		return best, true
	}
	return 0, false
}

func anyAccepting[S comparable](states []*State[S]) bool {
	for _, s := range states {
		if s.Accepting() {
			return true
		}
	}
	return false
}
