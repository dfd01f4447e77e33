package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTerm_Deterministic(t *testing.T) {
	a := Term([]byte("hello"))
	b := Term([]byte("hello"))
	require.Equal(t, a, b)
}

func TestTerm_DifferentInputsUsuallyDiffer(t *testing.T) {
	require.NotEqual(t, Term([]byte("hello")), Term([]byte("helloeee")))
}
