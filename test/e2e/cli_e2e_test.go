package e2e

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// buildBinary compiles cmd/primecalc into a temporary directory.
func buildBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping end-to-end test in short mode")
	}

	binName := "primecalc"
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	binPath := filepath.Join(t.TempDir(), binName)

	// go test runs with the package directory as working directory.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/primecalc")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build primecalc: %v", err)
	}
	return binPath
}

// TestCLI_E2E verifies the built binary functions correctly
func TestCLI_E2E(t *testing.T) {
	binPath := buildBinary(t)

	tests := []struct {
		name       string
		args       []string
		wantStdout string // exact stdout when non-empty
		wantOut    string // substring of combined output (case-insensitive)
		wantCode   int
	}{
		{
			name:       "Sieve",
			args:       []string{"-n", "10", "-s"},
			wantStdout: "The primes between 1 and 10 using the Sieve of Eratosthenes method are:\n2\n3\n5\n7\n",
		},
		{
			name:       "Brute Force",
			args:       []string{"-n", "13", "-b"},
			wantStdout: "The primes between 1 and 13 using the brute force method are:\n2\n3\n5\n7\n11\n13\n",
		},
		{
			name:       "Better Brute Force",
			args:       []string{"-n", "2", "-B"},
			wantStdout: "The primes between 1 and 2 using the \"better\" brute force method are:\n2\n",
		},
		{
			name:       "Quiet Comparison",
			args:       []string{"-n", "12", "--algo", "all", "--quiet"},
			wantStdout: "2\n3\n5\n7\n11\n",
		},
		{
			name:    "Comparison",
			args:    []string{"-n", "1000", "--algo", "all"},
			wantOut: "Global Status: Success",
		},
		{
			name:     "Invalid Bound",
			args:     []string{"-n", "1", "-s"},
			wantOut:  "1 is an invalid upper bound.",
			wantCode: 1,
		},
		{
			name:       "Invalid Bound Comparison",
			args:       []string{"-n", "1", "--algo", "all"},
			wantStdout: "1 is an invalid upper bound.\n",
			wantCode:   1,
		},
		{
			name:       "Metrics Stay Off Stdout",
			args:       []string{"-n", "5", "-s", "-q", "--metrics"},
			wantStdout: "2\n3\n5\n",
		},
		{
			name:     "Missing Algorithm",
			args:     []string{"-n", "10"},
			wantOut:  "no algorithm arguments specified",
			wantCode: 4,
		},
		{
			name:     "Missing Bound",
			args:     []string{"-s"},
			wantOut:  "usage",
			wantCode: 4,
		},
		{
			name:    "Help",
			args:    []string{"--help"},
			wantOut: "usage",
		},
		{
			name:    "Version Flag",
			args:    []string{"--version"},
			wantOut: "primecalc",
		},
		{
			name:    "Completion",
			args:    []string{"--completion", "zsh"},
			wantOut: "#compdef primecalc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			var stdout, stderr bytes.Buffer
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr
			err := cmd.Run()

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("failed to run binary: %v", err)
			}
			combined := stdout.String() + stderr.String()

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput: %s", code, tt.wantCode, combined)
			}
			if tt.wantStdout != "" && stdout.String() != tt.wantStdout {
				t.Errorf("stdout mismatch.\nExpected: %q\nGot:      %q", tt.wantStdout, stdout.String())
			}
			if tt.wantOut != "" && !strings.Contains(strings.ToLower(combined), strings.ToLower(tt.wantOut)) {
				t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, combined)
			}
		})
	}
}
