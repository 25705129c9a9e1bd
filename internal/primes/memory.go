package primes

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// intBytes is the size of one element of a result slice.
const intBytes = strconv.IntSize / 8

// estimateCount returns an upper bound on the number of primes <= n, using
// the Rosser-Schoenfeld bound pi(n) < 1.25506 n / ln n. It is only a
// capacity hint; strategies never rely on it for correctness.
func estimateCount(n int) int {
	if n < MinBound {
		return 0
	}
	bound := 1.25506 * float64(n) / math.Log(float64(n))
	if bound >= float64(n) {
		return n
	}
	return int(bound) + 1
}

// maxCapacityHint caps the up-front result allocation. Larger results grow
// through append.
const maxCapacityHint = 1 << 26

// capacityHint is the initial capacity of a result slice for bound n.
func capacityHint(n int) int {
	return min(estimateCount(n), maxCapacityHint)
}

// MemoryEstimate describes the expected memory footprint of one enumeration.
type MemoryEstimate struct {
	// TableBytes is the size of the sieve table (zero for the other strategies).
	TableBytes uint64
	// ResultBytes is an upper bound on the size of the returned slice.
	ResultBytes uint64
	// TotalBytes is TableBytes + ResultBytes.
	TotalBytes uint64
}

// EstimateMemory estimates the memory an enumeration up to n will use.
//
// Parameters:
//   - n: The inclusive upper bound.
//   - s: The strategy that will run.
//
// Returns:
//   - MemoryEstimate: The estimated footprint.
func EstimateMemory(n int, s Strategy) MemoryEstimate {
	var est MemoryEstimate
	if n < MinBound {
		return est
	}
	if s == Sieve {
		est.TableBytes = uint64(n) + 1
	}
	est.ResultBytes = uint64(estimateCount(n)) * intBytes
	est.TotalBytes = est.TableBytes + est.ResultBytes
	return est
}

// ParseMemoryLimit parses a human-readable memory size such as "512M",
// "2G", "64K", "1.5GB" or a raw byte count.
//
// Parameters:
//   - s: The textual limit.
//
// Returns:
//   - uint64: The limit in bytes.
//   - error: An error if s cannot be parsed.
func ParseMemoryLimit(s string) (uint64, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return 0, fmt.Errorf("empty memory limit")
	}
	v = strings.TrimSuffix(v, "B")
	multiplier := uint64(1)
	switch {
	case strings.HasSuffix(v, "K"):
		multiplier = 1 << 10
	case strings.HasSuffix(v, "M"):
		multiplier = 1 << 20
	case strings.HasSuffix(v, "G"):
		multiplier = 1 << 30
	case strings.HasSuffix(v, "T"):
		multiplier = 1 << 40
	}
	if multiplier > 1 {
		v = v[:len(v)-1]
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("invalid memory limit %q", s)
	}
	return uint64(f * float64(multiplier)), nil
}
