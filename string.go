package nfa

import "strings"

// String renders s as:
//
//	nfa()          empty, default-accepting
//	-nfa()         empty, force-rejected
//	+nfa(...)      force-accepted, with transitions
//	nfa({L: T, ...})
//
// where T is a single rendered successor, or "[s1, s2, ...]" when a label
// has more than one successor. A state already on the current rendering
// path renders as "nfa({...})" the second time it is visited, preventing
// unbounded recursion on cycles.
//
// Unlike the Python original this is derived from, Go's normalized
// successors-are-one-or-many storage does not distinguish a list from a
// tuple, so a multi-successor label always renders with "[...]" rather
// than sometimes "(...)"; see DESIGN.md.
func (s *State[S]) String() string {
	return s.stringAlong(nil)
}

func (s *State[S]) stringAlong(ancestors []*State[S]) string {
	for _, a := range ancestors {
		if a == s {
			return "nfa({...})"
		}
	}
	path := append(append([]*State[S]{}, ancestors...), s)

	accepting := s.Accepting()
	prefix := ""
	switch {
	case accepting && len(s.transitions) > 0:
		prefix = "+"
	case !accepting && len(s.transitions) == 0:
		prefix = "-"
	}

	if len(s.transitions) == 0 {
		return prefix + "nfa()"
	}

	parts := make([]string, len(s.transitions))
	for i, e := range s.transitions {
		var val string
		if len(e.to) == 1 {
			val = e.to[0].stringAlong(path)
		} else {
			items := make([]string, len(e.to))
			for j, t := range e.to {
				items[j] = t.stringAlong(path)
			}
			val = "[" + strings.Join(items, ", ") + "]"
		}
		parts[i] = e.label.String() + ": " + val
	}

	return prefix + "nfa({" + strings.Join(parts, ", ") + "})"
}
