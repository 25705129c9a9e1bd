package primes

import (
	"fmt"
	"strings"
)

// Strategy selects one of the prime enumeration algorithms.
type Strategy int

const (
	// BruteForce tests every integer divisor up to the square root.
	BruteForce Strategy = iota + 1
	// BetterBruteForce tests only the primes found so far.
	BetterBruteForce
	// Sieve runs the Sieve of Eratosthenes.
	Sieve
)

// Strategies lists every strategy in declaration order.
var Strategies = []Strategy{BruteForce, BetterBruteForce, Sieve}

// String returns the canonical, flag-friendly name of the strategy.
func (s Strategy) String() string {
	switch s {
	case BruteForce:
		return "brute"
	case BetterBruteForce:
		return "better"
	case Sieve:
		return "sieve"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Description returns the human-readable method name used in output headers.
func (s Strategy) Description() string {
	switch s {
	case BruteForce:
		return "brute force"
	case BetterBruteForce:
		return `"better" brute force`
	case Sieve:
		return "Sieve of Eratosthenes"
	default:
		return s.String()
	}
}

// Valid reports whether s is one of the declared strategies.
func (s Strategy) Valid() bool {
	return s >= BruteForce && s <= Sieve
}

// UnknownStrategyError is returned when a strategy name or value cannot be
// resolved.
type UnknownStrategyError struct {
	Name string
}

func (e UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown strategy %q (accepted values: brute, better, sieve)", e.Name)
}

// strategyAliases maps every accepted spelling to its strategy. The short
// forms mirror the -b, -B and -s selector flags and are case-sensitive.
var strategyAliases = map[string]Strategy{
	"brute":              BruteForce,
	"bruteforce":         BruteForce,
	"brute-force":        BruteForce,
	"b":                  BruteForce,
	"better":             BetterBruteForce,
	"betterbruteforce":   BetterBruteForce,
	"better-brute-force": BetterBruteForce,
	"B":                  BetterBruteForce,
	"sieve":              Sieve,
	"eratosthenes":       Sieve,
	"s":                  Sieve,
}

// ParseStrategy resolves a strategy name or alias.
//
// Parameters:
//   - name: A canonical name ("brute", "better", "sieve") or an alias.
//
// Returns:
//   - Strategy: The resolved strategy.
//   - error: An UnknownStrategyError if name matches nothing.
func ParseStrategy(name string) (Strategy, error) {
	trimmed := strings.TrimSpace(name)
	if s, ok := strategyAliases[trimmed]; ok {
		return s, nil
	}
	if s, ok := strategyAliases[strings.ToLower(trimmed)]; ok && len(trimmed) > 1 {
		return s, nil
	}
	return 0, UnknownStrategyError{Name: name}
}
