package nfa

import (
	"fmt"
	"sort"
)

// idSetKey returns a canonical string for a set of state ids, used to
// deduplicate DFA states built from equal NFA-state-id sets during subset
// construction. This mirrors the closure.id() technique used by the
// cznic/fsm package's Powerset method (sort the ids, format the sorted
// slice).
func idSetKey(ids map[int]bool) string {
	sorted := make([]int, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Ints(sorted)
	return fmt.Sprint(sorted)
}

// ToDFA converts the automaton rooted at s into an equivalent deterministic
// automaton via subset construction, compiling s first if it has not
// already been compiled. The returned state has no epsilon transitions
// and at most one successor per label; it is explicitly force-accept or
// force-reject rather than relying on the default "no outgoing
// transitions" rule, since a dead DFA state legitimately has no
// transitions yet must still reject.
func (s *State[S]) ToDFA() *State[S] {
	s.Compile()
	t := s.table

	var alphabet []Label[S]
	seenLabel := map[Label[S]]bool{}
	for _, st := range t.states {
		for _, e := range st.transitions {
			if e.label.epsilon {
				continue
			}
			if !seenLabel[e.label] {
				seenLabel[e.label] = true
				alphabet = append(alphabet, e.label)
			}
		}
	}

	start := map[int]bool{t.startID: true}
	startKey := idSetKey(start)

	sets := map[string]map[int]bool{startKey: start}
	order := []string{startKey}

	type dfaTrans struct {
		from  string
		label Label[S]
		to    string
	}
	var transList []dfaTrans

	queue := []string{startKey}
	processed := map[string]bool{}
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		if processed[key] {
			continue
		}
		processed[key] = true
		set := sets[key]

		for _, label := range alphabet {
			union := map[int]bool{}
			for id := range set {
				for wid := range t.trans[tableKey[S]{label: label, id: id}] {
					union[wid] = true
				}
			}
			if len(union) == 0 {
				continue
			}
			unionKey := idSetKey(union)
			if _, ok := sets[unionKey]; !ok {
				sets[unionKey] = union
				order = append(order, unionKey)
				queue = append(queue, unionKey)
			}
			transList = append(transList, dfaTrans{from: key, label: label, to: unionKey})
		}
	}

	nodes := make(map[string]*State[S], len(order))
	for _, key := range order {
		accept := false
		for id := range sets[key] {
			if t.accept[id] {
				accept = true
				break
			}
		}
		node := &State[S]{}
		if accept {
			node.override = acceptForced
		} else {
			node.override = rejectForced
		}
		nodes[key] = node
	}

	for _, tr := range transList {
		from := nodes[tr.from]
		to := nodes[tr.to]
		// ToDFA's transitions are built key-by-key from a set already
		// deduplicated by unionKey, so each (from, label) pair is added
		// exactly once; SetTransition vs. AddTransition makes no
		// difference here, but SetTransition documents the intent that a
		// DFA has at most one successor per label.
		_ = from.SetTransition(tr.label, to)
	}

	return nodes[startKey]
}
