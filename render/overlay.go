package render

import (
	"image"
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/lixenwraith/blobscape/parameter"
)

// applyDepthOverlay soft-lights a near-white to near-black gradient along angle (degrees)
func applyDepthOverlay(dst *image.RGBA, angleDeg, intensity float64) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	if w == 0 || h == 0 || intensity <= 0 {
		return
	}
	light := RGB{parameter.OverlayLight[0], parameter.OverlayLight[1], parameter.OverlayLight[2]}
	dark := RGB{parameter.OverlayDark[0], parameter.OverlayDark[1], parameter.OverlayDark[2]}

	a := angleDeg * math.Pi / 180
	ux, uy := math.Cos(a), math.Sin(a)
	cx, cy := float64(w)/2, float64(h)/2
	// Half extent of the viewport projected on the gradient axis
	half := (math.Abs(ux)*float64(w) + math.Abs(uy)*float64(h)) / 2
	if half <= 0 {
		return
	}

	for y := 0; y < h; y++ {
		py := float64(y) + 0.5 - cy
		for x := 0; x < w; x++ {
			px := float64(x) + 0.5 - cx
			t := ((px*ux+py*uy)/half + 1) / 2
			setPx(dst, x, y, SoftLight(getPx(dst, x, y), Lerp(light, dark, t), intensity))
		}
	}
}

// grainCache holds a static noise field for the current viewport and seed
type grainCache struct {
	w, h  int
	seed  uint32
	valid bool
	gray  []uint8
}

func (g *grainCache) ensure(w, h int, seed uint32) {
	if g.valid && g.w == w && g.h == h && g.seed == seed {
		return
	}
	noise := opensimplex.NewNormalized(int64(seed))
	if cap(g.gray) < w*h {
		g.gray = make([]uint8, w*h)
	}
	g.gray = g.gray[:w*h]
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := noise.Eval2(float64(x)*parameter.GrainFrequency, float64(y)*parameter.GrainFrequency)
			g.gray[y*w+x] = clamp(n*255 + 0.5)
		}
	}
	g.w, g.h, g.seed, g.valid = w, h, seed, true
}

// apply overlays the grain field at the given opacity
func (g *grainCache) apply(dst *image.RGBA, seed uint32, opacity float64) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	if opacity <= 0 || w == 0 || h == 0 {
		return
	}
	g.ensure(w, h, seed)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := g.gray[y*w+x]
			setPx(dst, x, y, Overlay(getPx(dst, x, y), RGB{v, v, v}, opacity))
		}
	}
}
