package vmath

import "math"

// Stream tags XORed into the base seed so each consumer draws from an independent sequence
const (
	StreamPoints uint32 = 0x9E3779B9 // control point layout
	StreamBlob   uint32 = 0x85EBCA6B // blob shape randomness
)

// mulberryIncrement is the Weyl sequence step
const mulberryIncrement uint32 = 0x6D2B79F5

// twoPow32 maps a uint32 onto [0,1)
const twoPow32 = 4294967296.0

// --- Randomness ---

// Next advances a Mulberry32 state and returns a float in [0,1) with the new state
// Pure function: identical states always yield identical results
func Next(state uint32) (float64, uint32) {
	state += mulberryIncrement
	t := state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / twoPow32, state
}

// Rand is a Mulberry32 generator: Weyl increment followed by xorshift-multiply mixing
// Zero value is a valid generator seeded with 0
type Rand struct {
	state uint32
}

// NewRand creates a generator initialised with seed
func NewRand(seed uint32) *Rand {
	return &Rand{state: seed}
}

// NewStream derives a generator for a seed domain: base seed XOR stream tag
func NewStream(seed, tag uint32) *Rand {
	return &Rand{state: seed ^ tag}
}

// Float64 returns the next value in [0,1)
func (r *Rand) Float64() float64 {
	v, s := Next(r.state)
	r.state = s
	return v
}

// Range returns the next value in [lo, lo+span)
func (r *Rand) Range(lo, span float64) float64 {
	return lo + r.Float64()*span
}

// State exposes the generator state for snapshotting
func (r *Rand) State() uint32 {
	return r.state
}

// CoerceSeed converts an arbitrary number to a uint32 seed
// NaN and infinities map to 0, fractions truncate toward zero, out of range values wrap modulo 2^32
func CoerceSeed(v float64) uint32 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	t := math.Trunc(v)
	m := math.Mod(t, twoPow32)
	if m < 0 {
		m += twoPow32
	}
	return uint32(m)
}
