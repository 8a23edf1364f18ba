package parameter

// Blob defaults
const (
	DefaultExtraPoints    = 5
	DefaultRandomness     = 8
	DefaultBlobSize       = 250.0
	DefaultDurationMs     = 2000.0
	DefaultTimingFunction = TimingEase
	DefaultColor1         = "#5ce1e6"
	DefaultColor2         = "#ffffff"
	DefaultColor3         = "#c4b5fd"
	DefaultOpacity        = 80.0
	DefaultEdgeBlur       = 20.0
	DefaultGlowIntensity  = 60.0
	DefaultBlendMode      = BlendSourceOver
	DefaultXPos           = 50.0
	DefaultYPos           = 50.0
)

// Audio defaults
const (
	DefaultEnergy      = 0.5
	DefaultSensitivity = 3.0
	DefaultSmoothing   = 0.85
)

// Reactivity defaults
const (
	DefaultReactivityAmount = 60.0
)

// DefaultReactivity lists the channels enabled out of the box
var DefaultReactivity = map[string]bool{
	ChannelMorphSpeed: true,
	ChannelScale:      true,
	ChannelGlow:       true,
	ChannelBlur:       false,
	ChannelBrightness: false,
}

// Background defaults
const (
	DefaultSeed       = 1
	DefaultBgStyle    = StyleMesh
	DefaultBgColor1   = "#7b8cde"
	DefaultBgColor2   = "#a5b4f0"
	DefaultBgColor3   = "#c8c0e8"
	DefaultBgAngle    = 160.0
	DefaultBgSpeed    = 30.0
	DefaultBgDensity  = 4
	DefaultBgGrain    = 12.0
	DefaultBgSoftness = 60.0
	DefaultBgEdge     = 40.0
	DefaultBgFlow     = 50.0
)

// Limits for configuration fields not covered elsewhere
const (
	OpacityMax       = 100.0
	EdgeBlurMax      = 60.0
	GlowIntensityMax = 100.0
	PositionMax      = 100.0
	AngleMax         = 360.0
	SpeedMax         = 100.0
	ShapeControlMax  = 100.0 // softness, edge, flow
	DurationMinMs    = 200.0
	DurationMaxMs    = 10000.0
)
