package primes

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinBound is the smallest accepted upper bound.
const MinBound = 2

// MaxBound is the largest bound the trial-division strategies accept. The
// candidate loop counts up to n inclusive, so n must leave room for one
// increment.
const MaxBound = math.MaxInt - 1

// MaxSieveBound is the largest bound the sieve accepts: its table holds
// n+1 flags and must stay within what the runtime can allocate.
const MaxSieveBound = min(MaxBound, 1<<40)

// InvalidBoundError is returned when an upper bound is missing, negative,
// zero, one, or not an integer. No strategy does any work once this error
// has been produced.
type InvalidBoundError struct {
	// Value is the offending bound as supplied by the caller.
	Value string
}

// Error returns the error message for an InvalidBoundError.
func (e InvalidBoundError) Error() string {
	if e.Value == "" {
		return "missing upper bound."
	}
	return e.Value + " is an invalid upper bound."
}

// BoundTooLargeError is returned when a bound is valid but beyond what the
// selected strategy can enumerate.
type BoundTooLargeError struct {
	// Value is the requested bound.
	Value int
	// Max is the largest bound the strategy supports.
	Max int
	// Strategy is the strategy that rejected the bound.
	Strategy Strategy
}

// Error returns the error message for a BoundTooLargeError.
func (e BoundTooLargeError) Error() string {
	return fmt.Sprintf("%d exceeds the largest upper bound supported by %s (%d)", e.Value, e.Strategy.Description(), e.Max)
}

// MaxBoundFor returns the largest bound s can enumerate.
func MaxBoundFor(s Strategy) int {
	if s == Sieve {
		return MaxSieveBound
	}
	return MaxBound
}

// IsInvalidBound reports whether err is, or wraps, an InvalidBoundError.
func IsInvalidBound(err error) bool {
	var boundErr InvalidBoundError
	return errors.As(err, &boundErr)
}

// ValidateBound checks that n is a usable upper bound.
//
// Parameters:
//   - n: The inclusive upper bound.
//
// Returns:
//   - error: An InvalidBoundError when n < 2, nil otherwise.
func ValidateBound(n int) error {
	if n < MinBound {
		return InvalidBoundError{Value: strconv.Itoa(n)}
	}
	return nil
}

// ParseBound converts a textual bound into an int and validates it.
// Empty input, fractional values, values with non-digit characters and
// values that overflow int are all reported as InvalidBoundError.
//
// Parameters:
//   - s: The textual bound, optionally surrounded by whitespace.
//
// Returns:
//   - int: The parsed bound.
//   - error: An InvalidBoundError if s is not a valid bound.
func ParseBound(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, InvalidBoundError{}
	}
	if !isIntegerLiteral(s) {
		return 0, InvalidBoundError{Value: s}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, InvalidBoundError{Value: s}
	}
	if err := ValidateBound(n); err != nil {
		return 0, InvalidBoundError{Value: s}
	}
	return n, nil
}

// isIntegerLiteral accepts an optional sign followed by ASCII digits only.
func isIntegerLiteral(s string) bool {
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
