package server

import (
	"testing"

	"github.com/dekarrin/nfa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Registry_PutGetDelete(t *testing.T) {
	r := NewRegistry()

	start := nfa.MustNew[rune]()
	e, err := r.Put("greeting", start, false)
	require.NoError(t, err)
	assert.Equal(t, "greeting", e.Name)

	got, ok := r.Get(e.ID)
	require.True(t, ok)
	assert.Same(t, e, got)

	assert.True(t, r.Delete(e.ID))
	_, ok = r.Get(e.ID)
	assert.False(t, ok)
	assert.False(t, r.Delete(e.ID))
}

func Test_Registry_RejectsDuplicateName(t *testing.T) {
	r := NewRegistry()

	_, err := r.Put("dup", nfa.MustNew[rune](), false)
	require.NoError(t, err)

	_, err = r.Put("dup", nfa.MustNew[rune](), false)
	assert.Error(t, err)
}

func Test_Registry_AllowsAnonymousEntries(t *testing.T) {
	r := NewRegistry()

	_, err := r.Put("", nfa.MustNew[rune](), false)
	require.NoError(t, err)
	_, err = r.Put("", nfa.MustNew[rune](), false)
	require.NoError(t, err)

	assert.Len(t, r.List(), 2)
}

func Test_Registry_CompileOnPut(t *testing.T) {
	r := NewRegistry()

	start := nfa.MustNew[rune]()
	e, err := r.Put("x", start, true)
	require.NoError(t, err)
	assert.True(t, e.Compiled)
}
