package mathutil

// IntMin returns the smaller of two ints.
func IntMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IntClamp limits v to [lo, hi].
func IntClamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FloorMod returns v modulo m in [0, m) for positive m, also for negative v.
func FloorMod(v, m int) int {
	r := v % m
	if r < 0 {
		r += m
	}
	return r
}
