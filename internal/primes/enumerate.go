package primes

// Enumerate returns the primes in [2, n] in ascending order using the
// selected strategy. The bound is validated before any work is done, so an
// invalid bound never yields a partial result.
//
// Parameters:
//   - n: The inclusive upper bound, at least 2.
//   - s: The strategy to run.
//
// Returns:
//   - []int: The primes up to n, freshly allocated for the caller.
//   - error: InvalidBoundError, BoundTooLargeError or UnknownStrategyError.
func Enumerate(n int, s Strategy) ([]int, error) {
	if !s.Valid() {
		return nil, UnknownStrategyError{Name: s.String()}
	}
	if err := ValidateBound(n); err != nil {
		return nil, err
	}
	if limit := MaxBoundFor(s); n > limit {
		return nil, BoundTooLargeError{Value: n, Max: limit, Strategy: s}
	}
	switch s {
	case BruteForce:
		return bruteForce(n), nil
	case BetterBruteForce:
		return betterBruteForce(n), nil
	default:
		return sieve(n), nil
	}
}

// EnumerateBruteForce is Enumerate with the BruteForce strategy.
func EnumerateBruteForce(n int) ([]int, error) { return Enumerate(n, BruteForce) }

// EnumerateBetterBruteForce is Enumerate with the BetterBruteForce strategy.
func EnumerateBetterBruteForce(n int) ([]int, error) { return Enumerate(n, BetterBruteForce) }

// EnumerateSieve is Enumerate with the Sieve strategy.
func EnumerateSieve(n int) ([]int, error) { return Enumerate(n, Sieve) }

// bruteForce tests every candidate against every integer divisor up to its
// square root. O(n^1.5).
func bruteForce(n int) []int {
	result := make([]int, 0, capacityHint(n))
	for i := 2; i <= n; i++ {
		prime := true
		// j <= i/j is j*j <= i without the overflow near MaxInt.
		for j := 2; j <= i/j; j++ {
			if i%j == 0 {
				prime = false
				break
			}
		}
		if prime {
			result = append(result, i)
		}
	}
	return result
}

// betterBruteForce only divides by the primes already found. A composite
// always has a prime factor no larger than its square root, so that set is
// sufficient.
func betterBruteForce(n int) []int {
	result := make([]int, 0, capacityHint(n))
	for i := 2; i <= n; i++ {
		prime := true
		for _, p := range result {
			if p > i/p {
				break
			}
			if i%p == 0 {
				prime = false
				break
			}
		}
		if prime {
			result = append(result, i)
		}
	}
	return result
}

// sieve runs the Sieve of Eratosthenes over a table of n+1 candidacy flags.
// Marking starts at p*p since every smaller multiple of p has a smaller
// prime factor and is already marked. O(n log log n) time, O(n) space.
func sieve(n int) []int {
	candidate := make([]bool, n+1)
	for i := 2; i <= n; i++ {
		candidate[i] = true
	}
	for p := 2; p <= n/p; p++ {
		if !candidate[p] {
			continue
		}
		for m := p * p; m <= n && m > 0; m += p {
			candidate[m] = false
		}
	}

	result := make([]int, 0, capacityHint(n))
	for i, ok := range candidate {
		if ok {
			result = append(result, i)
		}
	}
	return result
}
