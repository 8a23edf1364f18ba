package parameter

// Background style identifiers
const (
	StyleSolid  = "solid"
	StyleLinear = "linear"
	StyleRadial = "radial"
	StyleMesh   = "mesh"  // screen-blended radial orbs
	StyleField  = "field" // warped weighted-blend field
)

// Styles lists background styles in cycle order
var Styles = [...]string{StyleSolid, StyleLinear, StyleRadial, StyleMesh, StyleField}

// Background palette
const (
	BgPaletteMax = 5
	BgPaletteMin = 2
)

// Point density
const (
	DensityMin = 2
	DensityMax = 8

	// FieldDensityOffset is added to the base density for the field style
	FieldDensityOffset = 4

	// FieldMinPoints avoids degenerate single-color output
	FieldMinPoints = 5
)

// Control point ranges: value = lo + rand*span
const (
	PointXLo, PointXSpan           = 0.15, 0.7
	PointYLo, PointYSpan           = 0.1, 0.8
	PointFreqXLo, PointFreqXSpan   = 0.3, 0.5
	PointFreqYLo, PointFreqYSpan   = 0.2, 0.4
	PointDriftXLo, PointDriftXSpan = 0.04, 0.08
	PointDriftYLo, PointDriftYSpan = 0.03, 0.07
	PointRadiusLo, PointRadiusSpan = 0.25, 0.25
	PointAlphaLo, PointAlphaSpan   = 0.5, 0.4
	PointTiltMax                   = 0.7
)

// Linear style
const (
	LinearRotationRate = 10.0 // degrees per scaled second
)

// Radial style
const (
	RadialDriftX     = 0.1
	RadialDriftY     = 0.1
	RadialFreqX      = 0.4
	RadialFreqY      = 0.3
	RadialCenterY    = 0.45
	RadialRadiusFrac = 0.7
)

// Mesh style gradient stops
const (
	MeshMidStop  = 0.6
	MeshMidAlpha = 0.3
)

// Field style
const (
	// FieldBaseResolution is the long edge of the low-res grid before density scaling
	FieldBaseResolution = 64
	// FieldDensityResolution adds grid cells per control point
	FieldDensityResolution = 4
	FieldMinResolution     = 8

	FieldSigmaBase     = 0.12
	FieldSigmaSoftness = 0.18
	FieldSharpnessBase = 1.0
	FieldSharpnessEdge = 3.0

	FieldWarpFreqBase = 2.0
	FieldWarpFreqEdge = 3.0
	FieldWarpAmpBase  = 0.03
	FieldWarpAmpSoft  = 0.05

	// Dominance relief shade: 1 + (maxWeight/totalWeight - pivot) * (base + edge*edgeGain)
	FieldReliefPivot = 0.46
	FieldReliefBase  = 0.45
	FieldReliefEdge  = 1.0

	FieldStretchRange = 0.6
	FieldPulseRate    = 0.8
	FieldPulseDepth   = 0.12

	// FieldBlurScale converts softness into upsample blur radius in low-res cells
	FieldBlurScale = 1.5

	// FieldOverlayIntensity is the soft-light depth overlay strength
	FieldOverlayIntensity = 0.25
)

// Depth overlay endpoints
var (
	OverlayLight = [3]uint8{245, 245, 245}
	OverlayDark  = [3]uint8{20, 20, 20}
)

// Grain
const (
	GrainMax       = 40.0
	GrainFrequency = 0.9
)
