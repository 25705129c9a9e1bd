package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	algos := []string{"better", "brute", "sieve"}
	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"_primecalc_completions()", `algorithms="better brute sieve all"`, "--algo)", "-o|--output)", "complete -F _primecalc_completions primecalc"}},
		{"zsh", []string{"#compdef primecalc", "algorithms=(better brute sieve all)", "'--algo[Strategy to use]:strategy:($algorithms)'", "'-n[Upper limit of the primes to find]:number:'"}},
		{"fish", []string{"complete -c primecalc -f", "complete -c primecalc -l algo -d 'Strategy to use' -xa 'better brute sieve all'", "-s o -l output"}},
		{"powershell", []string{"$primecalcAlgorithms = @('better', 'brute', 'sieve', 'all')", "Register-ArgumentCompleter -CommandName 'primecalc'", "'--format'"}},
		{"ps", []string{"Register-ArgumentCompleter"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, algos); err != nil {
				t.Fatalf("GenerateCompletion(%q): %v", tt.shell, err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script should contain %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := GenerateCompletion(&buf, "tcsh", nil)
	if err == nil || !strings.Contains(err.Error(), "unsupported shell") {
		t.Errorf("expected unsupported shell error, got %v", err)
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written for an unsupported shell")
	}
}

func TestFlagRegistry_Unique(t *testing.T) {
	t.Parallel()
	seen := map[string]bool{}
	for _, f := range flagRegistry {
		for _, name := range flagNames(f) {
			if seen[name] {
				t.Errorf("duplicate flag %s", name)
			}
			seen[name] = true
		}
	}
}
