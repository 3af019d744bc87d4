package render

import "testing"

func TestShadingTableDivisors(t *testing.T) {
	st := NewShadingTable()

	tests := []struct {
		depth int
		want  uint8
	}{
		{0, 1},
		{63, 1},
		{64, 2},
		{127, 2},
		{128, 3},
		{450, 8},
		{999, 16},
		{1000, FogDivisor},
		{50000, FogDivisor},
		{-1, FogDivisor},
	}
	for _, tt := range tests {
		if got := st.Divisor(tt.depth); got != tt.want {
			t.Errorf("Divisor(%d) = %d, want %d", tt.depth, got, tt.want)
		}
	}
}

func TestShadingTableMonotonic(t *testing.T) {
	st := NewShadingTable()
	prev := st.Divisor(0)
	for d := 1; d <= MaxShadeDepth; d++ {
		cur := st.Divisor(d)
		if cur < prev {
			t.Fatalf("divisor decreased at depth %d: %d -> %d", d, prev, cur)
		}
		prev = cur
	}
}

func TestDepthKey(t *testing.T) {
	tests := []struct {
		distance float64
		want     int
	}{
		{0, 0},
		{1, 100},
		{4.5, 450},
		{2.999, 299},
		{0.999, 99},
		{0.6399, 63}, // rounding would cross into the next shade bucket
		{1e300, MaxShadeDepth},
	}
	for _, tt := range tests {
		if got := depthKey(tt.distance); got != tt.want {
			t.Errorf("depthKey(%v) = %d, want %d", tt.distance, got, tt.want)
		}
	}
}
