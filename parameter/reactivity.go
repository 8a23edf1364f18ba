package parameter

import "time"

// Reactivity channel names
const (
	ChannelMorphSpeed = "morphSpeed"
	ChannelScale      = "scale"
	ChannelGlow       = "glow"
	ChannelBlur       = "blur"
	ChannelBrightness = "brightness"
)

// Channels lists every reactivity channel in display order
var Channels = [...]string{
	ChannelMorphSpeed,
	ChannelScale,
	ChannelGlow,
	ChannelBlur,
	ChannelBrightness,
}

// Morph speed channel
const (
	MorphExtraPointsGain = 4.0
	MorphRandomnessGain  = 12.0
	MorphDurationCut     = 0.7
	MorphDurationFloor   = 200 * time.Millisecond
)

// Scale channel
const (
	ScaleGain = 0.2
)

// Glow channel
const (
	GlowIntensityBase     = 0.5
	GlowIntensityGain     = 0.8
	GlowScaleGain         = 0.5
	GlowDisabledIntensity = 0.7
)

// Blur channel: extra edge blur in pixels at full scaled energy
const (
	BlurGain = 25.0
)

// Brightness channel
const (
	BrightnessShift     = 0.6 // max lerp toward the bright color
	BrightnessEndAlpha  = 0.7 // end-stop alpha fraction at rest
	BrightnessEndBoost  = 0.3 // end-stop alpha gain per unit of shift
	BrightnessMidOffset = 0.45
)

// Reactivity amount limits (percent)
const (
	ReactivityAmountMin = 0.0
	ReactivityAmountMax = 100.0
)
