package audio

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/lixenwraith/blobscape/parameter"
	"github.com/lixenwraith/blobscape/vmath"
)

// FrameSource yields the newest byte time-domain snapshot without blocking
type FrameSource interface {
	ByteTimeDomain(dst []byte) bool
}

// Extractor turns time-domain snapshots into a smoothed energy value in [0,1]
// Owned by the frame goroutine
type Extractor struct {
	sensitivity float64
	smoothed    float64
	raw         float64

	buf  [parameter.AnalyserBinCount]byte
	norm [parameter.AnalyserBinCount]float64
}

// NewExtractor creates an extractor with the given gain and a zero baseline
func NewExtractor(sensitivity float64) *Extractor {
	x := &Extractor{}
	x.SetSensitivity(sensitivity)
	return x
}

// SetSensitivity updates the RMS gain, clamped to the supported range
func (x *Extractor) SetSensitivity(v float64) {
	if !vmath.IsFinite(v) {
		return
	}
	x.sensitivity = vmath.Clamp(v, parameter.SensitivityMin, parameter.SensitivityMax)
}

// Sensitivity returns the RMS gain
func (x *Extractor) Sensitivity() float64 {
	return x.sensitivity
}

// Energy returns the current smoothed value
func (x *Extractor) Energy() float64 {
	return x.smoothed
}

// Raw returns the last unsmoothed, gain-scaled RMS
func (x *Extractor) Raw() float64 {
	return x.raw
}

// Override seeds the smoothed value directly, later samples continue from it
func (x *Extractor) Override(v float64) {
	if !vmath.IsFinite(v) {
		return
	}
	x.smoothed = vmath.Clamp01(v)
}

// Sample reads one snapshot and folds it into the smoothed value
// Inactive sources and busy snapshots are no-ops that keep the last value
func (x *Extractor) Sample(src FrameSource, active bool) (float64, bool) {
	if !active || src == nil {
		return x.smoothed, false
	}
	if !src.ByteTimeDomain(x.buf[:]) {
		return x.smoothed, false
	}

	mid := float64(parameter.AnalyserMidpoint)
	for i, b := range x.buf {
		x.norm[i] = (float64(b) - mid) / mid
	}

	x.raw = math.Min(1, RMS(x.norm[:])*x.sensitivity)
	x.smoothed = x.smoothed*parameter.EnergyHistoryWeight + x.raw*parameter.EnergyRawWeight
	return x.smoothed, true
}

// RMS returns the root mean square of s, zero for an empty slice
func RMS(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(s, s) / float64(len(s)))
}
