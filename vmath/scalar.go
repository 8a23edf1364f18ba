package vmath

import "math"

// TwoPi is a full turn in radians
const TwoPi = 2 * math.Pi

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 restricts v to [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Lerp linearly interpolates from a to b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// RoundHalfUp rounds .5 toward positive infinity, matching browser Math.round
func RoundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// IsFinite reports whether v is neither NaN nor infinite
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
