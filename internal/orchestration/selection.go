package orchestration

import (
	"github.com/agbru/primecalc/internal/primes"
)

// AlgoAll selects every registered enumerator.
const AlgoAll = "all"

// SelectEnumerators determines which enumerators should be executed for the
// given algorithm selection. "all" returns every registered enumerator in the
// registry's sorted order; any other name is resolved through the registry.
//
// Parameters:
//   - algo: The canonical strategy name, an alias, or "all".
//   - registry: The registry to retrieve implementations from.
//
// Returns:
//   - []primes.Enumerator: The enumerators to execute, nil if algo is unknown.
func SelectEnumerators(algo string, registry primes.EnumeratorRegistry) []primes.Enumerator {
	if algo == AlgoAll {
		keys := registry.List()
		enumerators := make([]primes.Enumerator, 0, len(keys))
		for _, k := range keys {
			if e, err := registry.Get(k); err == nil {
				enumerators = append(enumerators, e)
			}
		}
		return enumerators
	}
	if e, err := registry.Get(algo); err == nil {
		return []primes.Enumerator{e}
	}
	return nil
}
