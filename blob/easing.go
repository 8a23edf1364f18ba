package blob

import (
	"math"

	"github.com/lixenwraith/blobscape/parameter"
)

// Easing maps linear progress in [0,1] onto eased progress
type Easing func(t float64) float64

// CubicBezier returns the CSS cubic-bezier(x1, y1, x2, y2) timing curve
// Control x values are clamped to [0,1] so the curve stays a function of time
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	x1 = math.Max(0, math.Min(1, x1))
	x2 = math.Max(0, math.Min(1, x2))

	// Polynomial coefficients: B(s) = ((a·s + b)·s + c)·s
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(s float64) float64 { return ((ax*s+bx)*s + cx) * s }
	sampleY := func(s float64) float64 { return ((ay*s+by)*s + cy) * s }
	slopeX := func(s float64) float64 { return (3*ax*s+2*bx)*s + cx }

	solve := func(x float64) float64 {
		// Newton first, bisection when the slope flattens
		s := x
		for i := 0; i < 8; i++ {
			dx := sampleX(s) - x
			if math.Abs(dx) < 1e-7 {
				return s
			}
			d := slopeX(s)
			if math.Abs(d) < 1e-6 {
				break
			}
			s -= dx / d
		}

		lo, hi := 0.0, 1.0
		s = x
		for i := 0; i < 64 && lo < hi; i++ {
			v := sampleX(s)
			if math.Abs(v-x) < 1e-7 {
				return s
			}
			if x > v {
				lo = s
			} else {
				hi = s
			}
			s = (lo + hi) / 2
		}
		return s
	}

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return sampleY(solve(t))
	}
}

var easings = map[string]Easing{
	parameter.TimingLinear:    func(t float64) float64 { return math.Max(0, math.Min(1, t)) },
	parameter.TimingEase:      CubicBezier(0.25, 0.1, 0.25, 1),
	parameter.TimingEaseIn:    CubicBezier(0.42, 0, 1, 1),
	parameter.TimingEaseOut:   CubicBezier(0, 0, 0.58, 1),
	parameter.TimingEaseInOut: CubicBezier(0.42, 0, 0.58, 1),
}

// LookupEasing resolves a timing function name, unknown names use ease
func LookupEasing(name string) Easing {
	if e, ok := easings[name]; ok {
		return e
	}
	return easings[parameter.TimingEase]
}

// IsTimingFunction reports whether name is a supported timing function
func IsTimingFunction(name string) bool {
	_, ok := easings[name]
	return ok
}
