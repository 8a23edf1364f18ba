package render

import "github.com/lixenwraith/blobscape/parameter"

// BlendFunc composites src over c with coverage alpha
type BlendFunc func(c, src RGB, alpha float64) RGB

// blendModes maps canvas composite operation names onto blend functions
var blendModes = map[string]BlendFunc{
	parameter.BlendSourceOver: Blend,
	parameter.BlendScreen:     Screen,
	parameter.BlendOverlay:    Overlay,
	parameter.BlendSoftLight:  SoftLight,
	parameter.BlendLighter:    Add,
	parameter.BlendLighten:    Max,
}

// blendFunc resolves a mode name, unknown names fall back to source-over
func blendFunc(mode string) BlendFunc {
	if f, ok := blendModes[mode]; ok {
		return f
	}
	return Blend
}

// IsBlendMode reports whether mode names a supported composite operation
func IsBlendMode(mode string) bool {
	_, ok := blendModes[mode]
	return ok
}
