package nfa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Label_epsilonDistinctFromSymbol(t *testing.T) {
	eps := Eps[string]()
	sym := Sym("")

	assert.True(t, eps.IsEpsilon())
	assert.False(t, sym.IsEpsilon())
	assert.NotEqual(t, eps, sym)
	assert.Equal(t, "epsilon", eps.String())
	assert.Equal(t, "", sym.String())
}

func Test_Label_symbolRoundTrip(t *testing.T) {
	l := Sym(42)
	value, ok := l.Symbol()
	assert.True(t, ok)
	assert.Equal(t, 42, value)

	_, ok = Eps[int]().Symbol()
	assert.False(t, ok)
}
