package nfa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ToDFA_hasNoEpsilonAndIsDeterministic(t *testing.T) {
	accept := MustNew[int]()
	y := MustNew(Transition[int]{Label: Sym(2), To: To(accept)})
	z := MustNew(Transition[int]{Label: Sym(3), To: To(accept)})
	start := MustNew(Transition[int]{Label: Eps[int](), To: To(y, z)})

	dfa := start.ToDFA()

	for _, st := range dfa.Reachable() {
		assert.Empty(t, st.Step(Eps[int]()))
		for _, e := range st.transitions {
			assert.LessOrEqual(t, len(e.to), 1)
		}
	}
}

func Test_ToDFA_equivalence(t *testing.T) {
	testCases := []struct {
		name  string
		build func() *State[rune]
		input string
	}{
		{"linear chain exact", buildLinearChain, "abc"},
		{"linear chain short", buildLinearChain, "ab"},
		{"linear chain extra", buildLinearChain, "abcx"},
		{"linear chain empty", buildLinearChain, ""},
	}

	for _, tc := range testCases {
		for _, full := range []bool{true, false} {
			t.Run(tc.name, func(t *testing.T) {
				nfaStart := tc.build()
				dfaStart := tc.build().ToDFA()

				input := []rune(tc.input)
				nfaLen, nfaOK := nfaStart.Match(input, full)
				dfaLen, dfaOK := dfaStart.Match(input, full)

				require.Equal(t, nfaOK, dfaOK)
				if nfaOK {
					assert.Equal(t, nfaLen, dfaLen)
				}
			})
		}
	}
}

func Test_ToDFA_kleeneCycleEquivalence(t *testing.T) {
	build := func() *State[rune] {
		x := MustNew[rune]()
		a := MustNew(Transition[rune]{Label: Sym('c'), To: To(x)})
		_ = a.AddTransition(Sym('b'), a)
		return a
	}

	dfaStart := build().ToDFA()
	for _, input := range []string{"bbbbc", "bbbb", "c", "bbbbcc"} {
		for _, full := range []bool{true, false} {
			nfaStart := build()
			in := []rune(input)
			nfaLen, nfaOK := nfaStart.Match(in, full)
			dfaLen, dfaOK := dfaStart.Match(in, full)

			require.Equal(t, nfaOK, dfaOK)
			if nfaOK {
				assert.Equal(t, nfaLen, dfaLen)
			}
		}
	}
}

func Test_ToDFA_deadStateRejects(t *testing.T) {
	accept := MustNew[rune]()
	start := MustNew(Transition[rune]{Label: Sym('a'), To: To(accept)})
	dfa := start.ToDFA()

	_, ok := dfa.Match([]rune("b"), true)
	assert.False(t, ok)
}
