package primes_test

import (
	"errors"
	"fmt"

	"github.com/agbru/primecalc/internal/primes"
)

// ExampleEnumerate demonstrates the basic usage of the enumerator.
func ExampleEnumerate() {
	result, err := primes.Enumerate(20, primes.Sieve)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(result)
	// Output: [2 3 5 7 11 13 17 19]
}

// ExampleEnumerate_invalidBound shows how an invalid bound is reported.
func ExampleEnumerate_invalidBound() {
	_, err := primes.Enumerate(1, primes.BruteForce)
	var boundErr primes.InvalidBoundError
	fmt.Println(errors.As(err, &boundErr), err)
	// Output: true 1 is an invalid upper bound.
}

// ExampleNewDefaultRegistry compares every registered strategy.
func ExampleNewDefaultRegistry() {
	registry := primes.NewDefaultRegistry()
	for _, name := range registry.List() {
		e, _ := registry.Get(name)
		result, _ := e.Enumerate(30)
		fmt.Printf("%s: %v\n", e.Name(), result)
	}
	// Output:
	// "better" brute force: [2 3 5 7 11 13 17 19 23 29]
	// brute force: [2 3 5 7 11 13 17 19 23 29]
	// Sieve of Eratosthenes: [2 3 5 7 11 13 17 19 23 29]
}
