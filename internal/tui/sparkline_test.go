package tui

import (
	"testing"
	"unicode/utf8"
)

func TestRingBuffer_PushAndSlice(t *testing.T) {
	rb := NewRingBuffer(3)
	rb.Push(1)
	rb.Push(2)
	rb.Push(3)

	assertSamples(t, rb.Slice(), []float64{1, 2, 3})
}

func TestRingBuffer_Overflow(t *testing.T) {
	rb := NewRingBuffer(3)
	for _, v := range []float64{1, 2, 3, 4} {
		rb.Push(v)
	}

	assertSamples(t, rb.Slice(), []float64{2, 3, 4})
	if rb.Len() != 3 || rb.Cap() != 3 {
		t.Errorf("Len/Cap = %d/%d, want 3/3", rb.Len(), rb.Cap())
	}
}

func TestRingBuffer_Last(t *testing.T) {
	rb := NewRingBuffer(2)
	if rb.Last() != 0 {
		t.Errorf("Last() on empty buffer = %f, want 0", rb.Last())
	}
	rb.Push(5)
	rb.Push(7)
	rb.Push(9)
	if rb.Last() != 9 {
		t.Errorf("Last() = %f, want 9", rb.Last())
	}
}

func TestRingBuffer_Reset(t *testing.T) {
	rb := NewRingBuffer(3)
	rb.Push(1)
	rb.Reset()

	if rb.Len() != 0 || rb.Slice() != nil {
		t.Errorf("expected empty buffer after Reset, got %v", rb.Slice())
	}
	rb.Push(4)
	assertSamples(t, rb.Slice(), []float64{4})
}

func TestRingBuffer_ZeroCapacity(t *testing.T) {
	rb := NewRingBuffer(0)
	if rb.Cap() != 1 {
		t.Fatalf("Cap() = %d, want 1", rb.Cap())
	}
	rb.Push(1)
	rb.Push(2)
	assertSamples(t, rb.Slice(), []float64{2})
}

func TestRenderSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		width  int
		want   string
	}{
		{"empty pads", nil, 3, "   "},
		{"zero width", []float64{50}, 0, ""},
		{"all zero", []float64{0, 0}, 2, "▁▁"},
		{"all max", []float64{100, 100}, 2, "██"},
		{"clamped", []float64{-10, 250}, 2, "▁█"},
		{"right aligned", []float64{100}, 3, "  █"},
		{"keeps most recent", []float64{0, 0, 100, 100}, 2, "██"},
		{"mid value", []float64{50}, 1, "▄"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderSparkline(tt.values, tt.width)
			if got != tt.want {
				t.Errorf("RenderSparkline(%v, %d) = %q, want %q", tt.values, tt.width, got, tt.want)
			}
			if utf8.RuneCountInString(got) != tt.width {
				t.Errorf("width = %d runes, want %d", utf8.RuneCountInString(got), tt.width)
			}
		})
	}
}

func assertSamples(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %f, want %f", i, got[i], want[i])
		}
	}
}
