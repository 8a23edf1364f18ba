package render

import (
	"math"

	"github.com/lixenwraith/blobscape/vmath"
)

// RGB stores explicit 8-bit color channels
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// Lookup tables array access (no pointers) for speed
var (
	softLightG  [256]float64
	softLightDF [256]float64
)

// init pre-calculates the Perez SoftLight lookup tables to avoid square root and division in pixel loops
func init() {
	for i := 0; i < 256; i++ {
		df := float64(i) / 255.0
		softLightDF[i] = df

		// Perez function 'G' term
		if df <= 0.25 {
			softLightG[i] = ((16.0*df-12.0)*df + 4.0) * df
		} else {
			softLightG[i] = math.Sqrt(df)
		}
	}
}

// clamp converts float to uint8 with saturation, NaN maps to 0
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v > 0.0 {
		return uint8(v)
	}
	return 0
}

// softLightChannel uses the global LUTs directly, designed to be inlined
func softLightChannel(d, s uint8, intensity float64) uint8 {
	df := softLightDF[d]
	sf := softLightDF[s]

	var result float64
	if sf < 0.5 {
		result = df - (1.0-2.0*sf)*df*(1.0-df)
	} else {
		result = df + (2.0*sf-1.0)*(softLightG[d]-df)
	}

	// Lerp toward the blended value by intensity
	result = df + (result-df)*intensity

	return clamp(result*255.0 + 0.5)
}

// SoftLight applies Perez soft light blend
func SoftLight(c, src RGB, intensity float64) RGB {
	if intensity <= 0.0 {
		return c
	}
	return RGB{
		R: softLightChannel(c.R, src.R, intensity),
		G: softLightChannel(c.G, src.G, intensity),
		B: softLightChannel(c.B, src.B, intensity),
	}
}

// Blend is source-over alpha blending
// If alpha is 1.0 or 0.0, return early to save math
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}

	inv := 1.0 - alpha

	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv + 0.5),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv + 0.5),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv + 0.5),
	}
}

// Max returns per-channel maximum with alpha blending
func Max(c, src RGB, alpha float64) RGB {
	if alpha <= 0.0 {
		return c
	}

	maxed := RGB{
		R: max(c.R, src.R),
		G: max(c.G, src.G),
		B: max(c.B, src.B),
	}

	return Blend(c, maxed, alpha)
}

// add is addition with clamping
func add(a, b uint8) uint8 {
	sum := int(a) + int(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

// Add performs additive blend with clamping and alpha blending
func Add(c, src RGB, alpha float64) RGB {
	if alpha <= 0.0 {
		return c
	}

	added := RGB{
		R: add(c.R, src.R),
		G: add(c.G, src.G),
		B: add(c.B, src.B),
	}

	return Blend(c, added, alpha)
}

// fastDiv255 approximates x / 255 using integer math: (x + (x >> 8) + 1) >> 8
func fastDiv255(x int) int {
	return (x + (x >> 8) + 1) >> 8
}

// Screen blend: 1 - (1-Dst)*(1-Src) with alpha blending
func Screen(c, src RGB, alpha float64) RGB {
	if alpha <= 0.0 {
		return c
	}

	screened := RGB{
		R: uint8(255 - fastDiv255((255-int(c.R))*(255-int(src.R)))),
		G: uint8(255 - fastDiv255((255-int(c.G))*(255-int(src.G)))),
		B: uint8(255 - fastDiv255((255-int(c.B))*(255-int(src.B)))),
	}

	return Blend(c, screened, alpha)
}

// overlayChannel uses the destination to pick the mix:
// d < 128 acts like Multiply, d >= 128 acts like Screen
func overlayChannel(d, s uint8) uint8 {
	if d < 128 {
		val := 2 * int(d) * int(s)
		return uint8(fastDiv255(val))
	}
	val := 2 * (255 - int(d)) * (255 - int(s))
	return uint8(255 - fastDiv255(val))
}

// Overlay combines multiply (darks) and screen (lights) with alpha blending
func Overlay(c, src RGB, alpha float64) RGB {
	if alpha <= 0.0 {
		return c
	}

	overlaid := RGB{
		R: overlayChannel(c.R, src.R),
		G: overlayChannel(c.G, src.G),
		B: overlayChannel(c.B, src.B),
	}

	return Blend(c, overlaid, alpha)
}

// Lerp linearly interpolates between two colors with per-channel half-up rounding
// t=0 returns a, t=1 returns b
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return RGB{
		R: uint8(vmath.RoundHalfUp(float64(a.R) + t*float64(int(b.R)-int(a.R)))),
		G: uint8(vmath.RoundHalfUp(float64(a.G) + t*float64(int(b.G)-int(a.G)))),
		B: uint8(vmath.RoundHalfUp(float64(a.B) + t*float64(int(b.B)-int(a.B)))),
	}
}
