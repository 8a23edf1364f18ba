// Package reactivity fans one scalar energy sample out to the blob's visual channels
package reactivity

import (
	"time"

	"github.com/lixenwraith/blobscape/parameter"
	"github.com/lixenwraith/blobscape/render"
	"github.com/lixenwraith/blobscape/vmath"
)

// Config selects which channels respond to energy and how strongly
type Config struct {
	Enabled map[string]bool
	Amount  float64 // 0-100 global intensity
}

// On reports whether the named channel is enabled, missing names are off
func (c *Config) On(channel string) bool {
	return c.Enabled[channel]
}

// Base is the configured, unmodulated blob appearance
type Base struct {
	ExtraPoints   int
	Randomness    int
	Duration      time.Duration
	EdgeBlur      float64 // pixels
	GlowIntensity float64 // 0-100
	Opacity       float64 // 0-100
	Colors        [3]render.RGB
}

// Outputs is every channel result for one frame, derived from a single energy sample
type Outputs struct {
	ScaledEnergy float64

	// morphSpeed
	ExtraPoints int
	Randomness  int
	Duration    time.Duration

	// scale
	Scale float64

	// glow
	GlowIntensity float64 // fraction, may exceed 1; renderers cap opacity
	GlowScale     float64

	// blur
	EdgeBlur float64

	// brightness
	Stops [3]render.Stop
}

// ScaledEnergy multiplies energy by the global amount percentage
func ScaledEnergy(energy, amount float64) float64 {
	return energy * vmath.Clamp(amount, parameter.ReactivityAmountMin, parameter.ReactivityAmountMax) / 100
}

// Distribute computes every channel from one energy value
// Disabled channels take their static fallbacks regardless of energy
func Distribute(energy float64, cfg Config, base Base) Outputs {
	e := ScaledEnergy(energy, cfg.Amount)
	out := Outputs{ScaledEnergy: e}

	me := 0.0
	if cfg.On(parameter.ChannelMorphSpeed) {
		me = e
	}
	out.ExtraPoints, out.Randomness = Morph(base.ExtraPoints, base.Randomness, me)
	out.Duration = Duration(base.Duration, me)

	out.Scale = 1
	if cfg.On(parameter.ChannelScale) {
		out.Scale = BlobScale(e)
	}

	out.GlowIntensity, out.GlowScale = Glow(base.GlowIntensity/100, e, cfg.On(parameter.ChannelGlow))

	out.EdgeBlur = base.EdgeBlur
	if cfg.On(parameter.ChannelBlur) {
		out.EdgeBlur += e * parameter.BlurGain
	}

	shift := 0.0
	if cfg.On(parameter.ChannelBrightness) {
		shift = e * parameter.BrightnessShift
	}
	out.Stops = GradientStops(base.Colors, base.Opacity/100, shift)

	return out
}

// Morph raises shape complexity and irregularity with energy, rounded half-up
func Morph(extraPoints, randomness int, e float64) (int, int) {
	ep := int(vmath.RoundHalfUp(float64(extraPoints) + e*parameter.MorphExtraPointsGain))
	rn := int(vmath.RoundHalfUp(float64(randomness) + e*parameter.MorphRandomnessGain))
	return ep, rn
}

// Duration shortens the morph duration with energy, floored at 200ms
func Duration(base time.Duration, e float64) time.Duration {
	d := time.Duration(float64(base) * (1 - e*parameter.MorphDurationCut))
	return max(d, parameter.MorphDurationFloor)
}

// BlobScale returns the energy-driven uniform scale
func BlobScale(e float64) float64 {
	return 1 + e*parameter.ScaleGain
}

// Glow returns halo intensity and scale for a base intensity fraction
func Glow(base, e float64, enabled bool) (intensity, scale float64) {
	if !enabled {
		return base * parameter.GlowDisabledIntensity, 1
	}
	return base * (parameter.GlowIntensityBase + e*parameter.GlowIntensityGain), 1 + e*parameter.GlowScaleGain
}

// GradientStops builds the blob fill at offsets 0, 0.45, 1
// shift lerps the outer colors toward colors[1] and lifts the end-stop alpha
func GradientStops(colors [3]render.RGB, alpha, shift float64) [3]render.Stop {
	first, last := colors[0], colors[2]
	if shift > 0 {
		first = render.Lerp(colors[0], colors[1], shift)
		last = render.Lerp(colors[2], colors[1], shift)
	}
	return [3]render.Stop{
		{Offset: 0, Color: first, Alpha: alpha},
		{Offset: parameter.BrightnessMidOffset, Color: colors[1], Alpha: alpha},
		{Offset: 1, Color: last, Alpha: alpha * (parameter.BrightnessEndAlpha + shift*parameter.BrightnessEndBoost)},
	}
}
