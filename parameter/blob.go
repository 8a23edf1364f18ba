package parameter

import "time"

// Blob geometry limits
const (
	ExtraPointsMin = 0
	ExtraPointsMax = 12
	RandomnessMin  = 0
	RandomnessMax  = 30
	BlobSizeMin    = 50
	BlobSizeMax    = 600
)

// BlobBasePoints is the vertex count before extra points
const BlobBasePoints = 3

// BlobSamples is the fixed angular resolution morphs interpolate over
const BlobSamples = 96

// BlobRandomnessScale maps randomness units to a radius jitter fraction
const BlobRandomnessScale = 0.03

// BlobRadiusFloor keeps jittered vertices away from the center
const BlobRadiusFloor = 0.2

// Blob timing
const (
	RandomizeDuration    = 300 * time.Millisecond
	RandomizeTimingCurve = TimingEase
)

// Blob gradient direction: (0, h*0.3) to (w, h*0.7)
const (
	BlobGradientY0 = 0.3
	BlobGradientY1 = 0.7
)

// Glow gradient stops
const (
	GlowStopInner = 0.4
	GlowStopOuter = 0.7
	// GlowRadiusFactor scales blob size into the glow radius
	GlowRadiusFactor = 0.8
)

// Blend modes
const (
	BlendSourceOver = "source-over"
	BlendScreen     = "screen"
	BlendOverlay    = "overlay"
	BlendSoftLight  = "soft-light"
	BlendLighter    = "lighter"
	BlendLighten    = "lighten"
)

// BlendModes lists blend modes in cycle order
var BlendModes = [...]string{BlendSourceOver, BlendScreen, BlendOverlay, BlendSoftLight, BlendLighter, BlendLighten}

// Timing functions
const (
	TimingLinear    = "linear"
	TimingEase      = "ease"
	TimingEaseIn    = "ease-in"
	TimingEaseOut   = "ease-out"
	TimingEaseInOut = "ease-in-out"
)

// TimingFunctions lists timing functions in cycle order
var TimingFunctions = [...]string{TimingLinear, TimingEase, TimingEaseIn, TimingEaseOut, TimingEaseInOut}
