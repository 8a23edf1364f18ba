// Package field generates the control points that drive the procedural backgrounds.
//
// Points are drawn from the point stream of the seed in a fixed order, so a given seed
// always produces the same prefix of points regardless of how many are requested.
package field

import (
	"math"

	"github.com/lixenwraith/blobscape/parameter"
	"github.com/lixenwraith/blobscape/vmath"
)

// ControlPoint is one generated entity of the background layout
// Immutable after generation
type ControlPoint struct {
	// Normalized rest position in [0,1]²
	X, Y float64

	// Drift oscillation
	PhaseX, PhaseY float64 // [0, 2π)
	FreqX, FreqY   float64 // radians per scaled second
	DriftX, DriftY float64 // normalized amplitude

	ColorIndex int
	Radius     float64 // fraction of the viewport diagonal
	Alpha      float64

	// Field-style shape seeds
	Stretch    float64 // [0,1]
	Tilt       float64 // [-0.7,0.7]
	PulsePhase float64 // [0, 2π)
}

// Position returns the animated normalized center at scaled time t
func (p *ControlPoint) Position(t float64) (x, y float64) {
	x = p.X + math.Sin(t*p.FreqX+p.PhaseX)*p.DriftX
	y = p.Y + math.Cos(t*p.FreqY+p.PhaseY)*p.DriftY
	return x, y
}

// Count returns the number of points a background style consumes for a base density
func Count(style string, density int) int {
	if style != parameter.StyleField {
		return density
	}
	n := density + parameter.FieldDensityOffset
	if n < parameter.FieldMinPoints {
		n = parameter.FieldMinPoints
	}
	return n
}

// Generate builds count points from the point stream of seed
// Draw order per point: x, y, phaseX, phaseY, freqX, freqY, driftX, driftY, radius, alpha,
// stretch, tilt, pulsePhase. ColorIndex is index mod paletteSize, not drawn
func Generate(seed uint32, count, paletteSize int) []ControlPoint {
	if count <= 0 {
		return nil
	}
	if paletteSize <= 0 {
		paletteSize = 1
	}

	rng := vmath.NewStream(seed, vmath.StreamPoints)
	points := make([]ControlPoint, count)
	for i := range points {
		p := &points[i]
		p.X = rng.Range(parameter.PointXLo, parameter.PointXSpan)
		p.Y = rng.Range(parameter.PointYLo, parameter.PointYSpan)
		p.PhaseX = rng.Float64() * vmath.TwoPi
		p.PhaseY = rng.Float64() * vmath.TwoPi
		p.FreqX = rng.Range(parameter.PointFreqXLo, parameter.PointFreqXSpan)
		p.FreqY = rng.Range(parameter.PointFreqYLo, parameter.PointFreqYSpan)
		p.DriftX = rng.Range(parameter.PointDriftXLo, parameter.PointDriftXSpan)
		p.DriftY = rng.Range(parameter.PointDriftYLo, parameter.PointDriftYSpan)
		p.Radius = rng.Range(parameter.PointRadiusLo, parameter.PointRadiusSpan)
		p.Alpha = rng.Range(parameter.PointAlphaLo, parameter.PointAlphaSpan)
		p.Stretch = rng.Float64()
		p.Tilt = (rng.Float64()*2 - 1) * parameter.PointTiltMax
		p.PulsePhase = rng.Float64() * vmath.TwoPi
		p.ColorIndex = i % paletteSize
	}
	return points
}
