package orchestration

import (
	"testing"

	"github.com/agbru/primecalc/internal/primes"
)

func TestSelectEnumerators(t *testing.T) {
	t.Parallel()
	registry := primes.NewDefaultRegistry()

	tests := []struct {
		algo string
		want []string
	}{
		{"all", []string{"better", "brute", "sieve"}},
		{"sieve", []string{"sieve"}},
		{"b", []string{"brute"}},
		{"B", []string{"better"}},
		{"unknown", nil},
	}
	for _, tt := range tests {
		t.Run(tt.algo, func(t *testing.T) {
			t.Parallel()
			got := SelectEnumerators(tt.algo, registry)
			if len(got) != len(tt.want) {
				t.Fatalf("SelectEnumerators(%q) returned %d enumerators, want %d", tt.algo, len(got), len(tt.want))
			}
			for i, e := range got {
				if e.Strategy().String() != tt.want[i] {
					t.Errorf("enumerator %d = %s, want %s", i, e.Strategy(), tt.want[i])
				}
			}
		})
	}
}

func TestSelectEnumerators_EmptyRegistry(t *testing.T) {
	t.Parallel()
	if got := SelectEnumerators("all", primes.NewRegistry()); len(got) != 0 {
		t.Errorf("expected no enumerators, got %d", len(got))
	}
}
