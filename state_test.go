package nfa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_New_emptyIsAccepting(t *testing.T) {
	s := MustNew[string]()
	assert.True(t, s.Accepting())
}

func Test_New_rejectsEmptySuccessorList(t *testing.T) {
	_, err := New(Transition[string]{Label: Sym("a"), To: nil})
	require.ErrorIs(t, err, ErrInvalidValue)
}

func Test_AddTransition_rejectsEmpty(t *testing.T) {
	s := MustNew[string]()
	err := s.AddTransition(Sym("a"))
	require.ErrorIs(t, err, ErrInvalidValue)
}

func Test_Accepting_defaultRule(t *testing.T) {
	testCases := []struct {
		name   string
		build  func() *State[string]
		expect bool
	}{
		{
			name:   "no transitions is accepting",
			build:  func() *State[string] { return MustNew[string]() },
			expect: true,
		},
		{
			name: "with transitions is not accepting",
			build: func() *State[string] {
				return MustNew(Transition[string]{Label: Sym("a"), To: To(MustNew[string]())})
			},
			expect: false,
		},
		{
			name: "force-accept overrides having transitions",
			build: func() *State[string] {
				s := MustNew(Transition[string]{Label: Sym("a"), To: To(MustNew[string]())})
				return s.ForceAccept()
			},
			expect: true,
		},
		{
			name: "force-reject overrides no transitions",
			build: func() *State[string] {
				return MustNew[string]().ForceReject()
			},
			expect: false,
		},
		{
			name: "invert flips the default rule",
			build: func() *State[string] {
				return MustNew[string]().Invert()
			},
			expect: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.build().Accepting())
		})
	}
}

func Test_mutators_doNotMutateOriginal(t *testing.T) {
	orig := MustNew[string]()
	require.True(t, orig.Accepting())

	_ = orig.ForceReject()
	_ = orig.ForceAccept()
	_ = orig.Invert()

	assert.True(t, orig.Accepting(), "original state must be unchanged by the accept mutators")
}

func Test_Step_emptyWhenAbsent(t *testing.T) {
	s := MustNew[string]()
	assert.Empty(t, s.Step(Sym("a")))
}

func Test_Step_returnsStoredSuccessors(t *testing.T) {
	target := MustNew[string]()
	s := MustNew(Transition[string]{Label: Sym("a"), To: To(target)})
	got := s.Step(Sym("a"))
	require.Len(t, got, 1)
	assert.Same(t, target, got[0])
}

func Test_Closure_idempotent(t *testing.T) {
	accept := MustNew[int]()
	y := MustNew(Transition[int]{Label: Sym(2), To: To(accept)})
	z := MustNew(Transition[int]{Label: Sym(3), To: To(accept)})
	start := MustNew(Transition[int]{Label: Eps[int](), To: To(y, z)})

	first := start.Closure()
	assert.ElementsMatch(t, first, closureOfAll(first))
}

// closureOfAll computes the closure of the union of the given states,
// checking the "closure(closure(s)) == closure(s)" idempotence property
// when applied to a closure already containing s.
func closureOfAll[S comparable](states []*State[S]) []*State[S] {
	seen := map[*State[S]]bool{}
	var out []*State[S]
	for _, s := range states {
		for _, c := range s.Closure() {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

func Test_Closure_epsilonSkip(t *testing.T) {
	finalT := MustNew[int]()
	y := MustNew(Transition[int]{Label: Sym(2), To: To(finalT)})
	z := MustNew(Transition[int]{Label: Sym(3), To: To(finalT)})
	start := MustNew(Transition[int]{Label: Eps[int](), To: To(y, z)})

	closure := start.Closure()
	require.Len(t, closure, 3)
	assert.Same(t, start, closure[0])
}

func Test_Reachable_andSymbols(t *testing.T) {
	c := MustNew[string]()
	b := MustNew(Transition[string]{Label: Sym("c"), To: To(c)})
	a := MustNew(Transition[string]{Label: Sym("b"), To: To(b)})

	reach := a.Reachable()
	assert.Len(t, reach, 3)

	syms := a.Symbols()
	assert.ElementsMatch(t, []string{"b", "c"}, syms)
}

func Test_Copy_preservesTopologyAndCycles(t *testing.T) {
	cycle := MustNew[string]().ForceAccept()
	require.NoError(t, cycle.AddTransition(Sym("a"), cycle))

	cp := cycle.Copy()
	assert.Len(t, cp.Reachable(), len(cycle.Reachable()))
	assert.True(t, cp.Accepting())

	// the cycle must be preserved: stepping 'a' from the copy reaches the
	// copy itself, not the original.
	next := cp.Step(Sym("a"))
	require.Len(t, next, 1)
	assert.Same(t, cp, next[0])
}

func Test_Copy_isIndependentOfOriginal(t *testing.T) {
	orig := MustNew[string]()
	cp := orig.Copy()
	require.NoError(t, cp.AddTransition(Sym("x"), MustNew[string]()))
	assert.Empty(t, orig.Step(Sym("x")))
}

func Test_String_formats(t *testing.T) {
	assert.Equal(t, "nfa()", MustNew[string]().String())
	assert.Equal(t, "-nfa()", MustNew[string]().ForceReject().String())

	withTrans := MustNew(Transition[string]{Label: Sym("a"), To: To(MustNew[string]())})
	assert.Equal(t, "+nfa({a: nfa()})", withTrans.ForceAccept().String())

	eps := MustNew(Transition[string]{Label: Eps[string](), To: To(MustNew[string]())})
	assert.Contains(t, eps.String(), "epsilon: nfa()")
}

func Test_String_cycleRendersEllipsis(t *testing.T) {
	cycle := MustNew[string]()
	require.NoError(t, cycle.AddTransition(Sym("a"), cycle))
	assert.Equal(t, "nfa({a: nfa({...})})", cycle.String())
}
