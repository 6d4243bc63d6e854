package nfa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildLinearChain constructs a simple linear chain: A -a-> B -b-> C
// -c-> D, D default-accepting.
func buildLinearChain() *State[rune] {
	d := MustNew[rune]()
	c := MustNew(Transition[rune]{Label: Sym('c'), To: To(d)})
	b := MustNew(Transition[rune]{Label: Sym('b'), To: To(c)})
	a := MustNew(Transition[rune]{Label: Sym('a'), To: To(b)})
	return a
}

func Test_Match_linearChain(t *testing.T) {
	a := buildLinearChain()

	length, ok := a.Match([]rune("abc"), true)
	require.True(t, ok)
	assert.Equal(t, 3, length)

	_, ok = a.Match([]rune("ab"), true)
	assert.False(t, ok)

	length, ok = a.Match([]rune("abcx"), false)
	require.True(t, ok)
	assert.Equal(t, 3, length)
}

func Test_Match_alternation(t *testing.T) {
	x := MustNew[rune]()
	start := MustNew(
		Transition[rune]{Label: Sym('a'), To: To(x)},
		Transition[rune]{Label: Sym('b'), To: To(x)},
		Transition[rune]{Label: Sym('c'), To: To(x)},
	)

	length, ok := start.Match([]rune("a"), true)
	require.True(t, ok)
	assert.Equal(t, 1, length)

	_, ok = start.Match([]rune("d"), true)
	assert.False(t, ok)
}

func Test_Match_kleeneCycle(t *testing.T) {
	x := MustNew[rune]()
	a := MustNew(Transition[rune]{Label: Sym('c'), To: To(x)})
	require.NoError(t, a.AddTransition(Sym('b'), a))

	length, ok := a.Match([]rune("bbbbc"), true)
	require.True(t, ok)
	assert.Equal(t, 5, length)

	_, ok = a.Match([]rune("bbbb"), true)
	assert.False(t, ok)
}

func Test_Match_epsilonSkip(t *testing.T) {
	accept := MustNew[int]()
	y := MustNew(Transition[int]{Label: Sym(2), To: To(accept)})
	z := MustNew(Transition[int]{Label: Sym(3), To: To(accept)})
	start := MustNew(Transition[int]{Label: Eps[int](), To: To(y, z)})

	length, ok := start.Match([]int{2}, true)
	require.True(t, ok)
	assert.Equal(t, 1, length)

	length, ok = start.Match([]int{3}, true)
	require.True(t, ok)
	assert.Equal(t, 1, length)
}

func Test_Match_forceAcceptMidChain(t *testing.T) {
	c := MustNew[rune]()
	b := MustNew(Transition[rune]{Label: Sym('y'), To: To(c)})
	bAccept := b.ForceAccept()
	a := MustNew(Transition[rune]{Label: Sym('x'), To: To(bAccept)})

	length, ok := a.Match([]rune("x"), true)
	require.True(t, ok)
	assert.Equal(t, 1, length)

	aNoOverride := MustNew(Transition[rune]{Label: Sym('x'), To: To(b)})
	_, ok = aNoOverride.Match([]rune("x"), true)
	assert.False(t, ok)
}

func Test_Match_prefixLongestMatchWithCycle(t *testing.T) {
	accept := MustNew[int]()
	z := MustNew(Transition[int]{Label: Sym(0), To: To(accept)})
	require.NoError(t, z.AddTransition(Sym(0), z))

	length, ok := z.Match([]int{0, 0, 0, 0}, false)
	require.True(t, ok)
	assert.Equal(t, 4, length)
}

func Test_Match_boundaries(t *testing.T) {
	t.Run("empty input on empty accepting start", func(t *testing.T) {
		s := MustNew[rune]()
		length, ok := s.Match(nil, true)
		require.True(t, ok)
		assert.Equal(t, 0, length)
	})

	t.Run("empty input on non-accepting start", func(t *testing.T) {
		s := MustNew(Transition[rune]{Label: Sym('a'), To: To(MustNew[rune]())})
		_, ok := s.Match(nil, true)
		assert.False(t, ok)
	})

	t.Run("cycle without accept state rejects all non-empty input", func(t *testing.T) {
		s := MustNew[rune]().ForceReject()
		require.NoError(t, s.AddTransition(Sym('a'), s))

		_, ok := s.Match([]rune("a"), true)
		assert.False(t, ok)
		_, ok = s.Match([]rune("aaa"), false)
		assert.False(t, ok)
	})

	t.Run("intermediate non-accepting state", func(t *testing.T) {
		a := buildLinearChain()
		_, ok := a.Match([]rune("ab"), true)
		assert.False(t, ok)

		length, ok := a.Match([]rune("ab"), false)
		require.True(t, ok)
		assert.Equal(t, 0, length)
	})
}

// Test_Match_prefixMonotonicity checks that if a full match succeeds with
// length n, a prefix match on the same input is at least n.
func Test_Match_prefixMonotonicity(t *testing.T) {
	automata := []*State[rune]{buildLinearChain()}
	inputs := [][]rune{[]rune("abc"), []rune("ab"), []rune("abcx")}

	for _, a := range automata {
		for _, in := range inputs {
			fullLen, fullOK := a.Match(in, true)
			prefixLen, prefixOK := a.Match(in, false)
			if fullOK {
				require.True(t, prefixOK)
				assert.GreaterOrEqual(t, prefixLen, fullLen)
			}
		}
	}
}
