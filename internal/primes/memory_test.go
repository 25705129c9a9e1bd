package primes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateMemory(t *testing.T) {
	t.Parallel()

	sieveEst := EstimateMemory(1000, Sieve)
	assert.Equal(t, uint64(1001), sieveEst.TableBytes)
	assert.Equal(t, sieveEst.TableBytes+sieveEst.ResultBytes, sieveEst.TotalBytes)

	bruteEst := EstimateMemory(1000, BruteForce)
	assert.Zero(t, bruteEst.TableBytes)
	assert.Equal(t, sieveEst.ResultBytes, bruteEst.ResultBytes)
	assert.GreaterOrEqual(t, bruteEst.ResultBytes, uint64(168*intBytes))

	assert.Equal(t, MemoryEstimate{}, EstimateMemory(1, Sieve))
}

func TestParseMemoryLimit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input   string
		want    uint64
		wantErr bool
	}{
		{"1024", 1024, false},
		{"64K", 64 << 10, false},
		{"512M", 512 << 20, false},
		{"512mb", 512 << 20, false},
		{"2G", 2 << 30, false},
		{"1.5G", 3 << 29, false},
		{"1T", 1 << 40, false},
		{"", 0, true},
		{"lots", 0, true},
		{"-1G", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseMemoryLimit(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
