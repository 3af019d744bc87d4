package render

// Depth keys are perpendicular distances in hundredths of a cell.
const (
	MaxShadeDepth = 1000
	shadeBucket   = 64
	// FogDivisor darkens anything at or beyond MaxShadeDepth to near black.
	FogDivisor = 255
)

// ShadingTable maps a depth key to the integer divisor applied to a
// texel's color channels. The divisor starts at 1 and grows by one every
// shadeBucket keys.
type ShadingTable struct {
	divisors [MaxShadeDepth]uint8
}

// NewShadingTable builds the depth table.
func NewShadingTable() *ShadingTable {
	st := &ShadingTable{}
	for i := range st.divisors {
		st.divisors[i] = uint8(1 + i/shadeBucket)
	}
	return st
}

// Divisor returns the shading divisor for a depth key. Keys outside
// [0, MaxShadeDepth) get FogDivisor.
func (st *ShadingTable) Divisor(depth int) uint8 {
	if depth < 0 || depth >= MaxShadeDepth {
		return FogDivisor
	}
	return st.divisors[depth]
}

// depthKey converts a distance in cells into a table key. The key truncates
// rather than rounds, so 0.999 cells keys as 99, not 100.
func depthKey(distance float64) int {
	key := distance * 100
	if key >= MaxShadeDepth {
		return MaxShadeDepth
	}
	return int(key)
}
