// Package primes enumerates the prime numbers up to an inclusive bound.
//
// Three interchangeable strategies are provided behind a single contract
// (bound -> ascending primes): naive trial division, trial division against
// the primes already found, and the Sieve of Eratosthenes. Every strategy
// validates the bound the same way before doing any work and returns a
// freshly allocated slice owned by the caller.
package primes
