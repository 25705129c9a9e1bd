package primes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_List(t *testing.T) {
	t.Parallel()
	r := NewDefaultRegistry()
	assert.Equal(t, []string{"better", "brute", "sieve"}, r.List())
}

func TestDefaultRegistry_GetResolvesAliases(t *testing.T) {
	t.Parallel()
	r := NewDefaultRegistry()
	tests := map[string]Strategy{
		"brute":        BruteForce,
		"b":            BruteForce,
		"B":            BetterBruteForce,
		"better":       BetterBruteForce,
		"s":            Sieve,
		"eratosthenes": Sieve,
	}
	for name, want := range tests {
		e, err := r.Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, e.Strategy(), name)
		assert.Equal(t, want.Description(), e.Name())
	}
}

func TestDefaultRegistry_GetUnknown(t *testing.T) {
	t.Parallel()
	_, err := NewDefaultRegistry().Get("fermat")
	require.Error(t, err)
	var unknown UnknownStrategyError
	assert.ErrorAs(t, err, &unknown)
}

func TestRegistry_GetAllReturnsCopy(t *testing.T) {
	t.Parallel()
	r := NewDefaultRegistry()
	all := r.GetAll()
	require.Len(t, all, 3)
	delete(all, "sieve")
	assert.Len(t, r.GetAll(), 3)
}

func TestEnumerator_DelegatesToStrategy(t *testing.T) {
	t.Parallel()
	e := NewEnumerator(Sieve)
	got, err := e.Enumerate(30)
	require.NoError(t, err)
	assert.Equal(t, primesTo30, got)

	_, err = e.Enumerate(1)
	assert.True(t, IsInvalidBound(err))
}
