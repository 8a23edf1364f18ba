package render

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/lixenwraith/blobscape/field"
	"github.com/lixenwraith/blobscape/parameter"
)

// fieldPoint caches per-frame point data for the grid loop
type fieldPoint struct {
	x, y       float64
	r, g, b    float64
	cos, sin   float64
	stretch    float64
	invTwoSig2 float64 // sharpness / (2·sigma²)
}

// FieldResolution returns the low-res grid size for a viewport and point count
// The long edge is the base resolution scaled by density, the short edge follows the aspect
func FieldResolution(w, h, points int) (int, int) {
	base := parameter.FieldBaseResolution + parameter.FieldDensityResolution*points
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if w >= h {
		lh := int(math.Round(float64(base) * float64(h) / float64(w)))
		return base, max(lh, parameter.FieldMinResolution)
	}
	lw := int(math.Round(float64(base) * float64(w) / float64(h)))
	return max(lw, parameter.FieldMinResolution), base
}

// renderField draws the warped weighted-blend field: low-res grid, bilinear upsample,
// softness blur, then the directional soft-light depth overlay
func (c *Compositor) renderField(dst *image.RGBA, p *BackgroundParams, points []field.ControlPoint, t float64) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	low := c.fieldGrid(p, points, t, w, h)

	draw.BiLinear.Scale(dst, dst.Rect, low, low.Rect, draw.Src, nil)

	scale := float64(w) / float64(low.Rect.Dx())
	c.blur.Blur(dst, p.Softness*parameter.FieldBlurScale*scale)

	applyDepthOverlay(dst, p.Angle, parameter.FieldOverlayIntensity)
}

// fieldGrid fills the low-res scratch buffer
// Deterministic: identical inputs produce identical bytes
func (c *Compositor) fieldGrid(p *BackgroundParams, points []field.ControlPoint, t float64, w, h int) *image.RGBA {
	lw, lh := FieldResolution(w, h, len(points))
	c.low = EnsureRGBA(c.low, lw, lh)
	low := c.low

	if len(points) == 0 {
		Fill(low, p.color(0))
		return low
	}

	aspect := float64(w) / float64(h)
	sigma := parameter.FieldSigmaBase + parameter.FieldSigmaSoftness*p.Softness
	sharpness := parameter.FieldSharpnessBase + parameter.FieldSharpnessEdge*p.Edge
	relief := parameter.FieldReliefBase + p.Edge*parameter.FieldReliefEdge

	warpFreq := parameter.FieldWarpFreqBase + parameter.FieldWarpFreqEdge*p.Edge
	warpAmp := p.Flow * (parameter.FieldWarpAmpBase + parameter.FieldWarpAmpSoft*p.Softness)

	if cap(c.weight) < len(points) {
		c.weight = make([]fieldPoint, len(points))
	}
	fps := c.weight[:len(points)]
	for i := range points {
		pt := &points[i]
		x, y := pt.Position(t)
		col := p.color(pt.ColorIndex)
		s := sigma * (0.75 + pt.Radius) * (1 + parameter.FieldPulseDepth*math.Sin(t*parameter.FieldPulseRate+pt.PulsePhase))
		fps[i] = fieldPoint{
			x:          x,
			y:          y,
			r:          float64(col.R),
			g:          float64(col.G),
			b:          float64(col.B),
			cos:        math.Cos(pt.Tilt),
			sin:        math.Sin(pt.Tilt),
			stretch:    1 + (pt.Stretch-0.5)*parameter.FieldStretchRange,
			invTwoSig2: sharpness / (2 * s * s),
		}
	}

	for gy := 0; gy < lh; gy++ {
		v := (float64(gy) + 0.5) / float64(lh)
		for gx := 0; gx < lw; gx++ {
			u := (float64(gx) + 0.5) / float64(lw)

			// Domain warp bends region boundaries into curves
			wu := u + warpAmp*(math.Sin(v*warpFreq*math.Pi+t*0.7)+0.5*math.Cos((u+v)*warpFreq*1.7+t*0.4))
			wv := v + warpAmp*(math.Cos(u*warpFreq*math.Pi-t*0.6)+0.5*math.Sin((u-v)*warpFreq*1.3-t*0.5))

			var sr, sg, sb, total, maxW float64
			nearest, nearestD := 0, math.Inf(1)
			for i := range fps {
				fp := &fps[i]
				dx := (wu - fp.x) * aspect
				dy := wv - fp.y
				rx := (dx*fp.cos + dy*fp.sin) / fp.stretch
				ry := (dy*fp.cos - dx*fp.sin) * fp.stretch
				d2 := rx*rx + ry*ry
				if d2 < nearestD {
					nearest, nearestD = i, d2
				}

				wt := math.Exp(-d2 * fp.invTwoSig2)
				sr += fp.r * wt
				sg += fp.g * wt
				sb += fp.b * wt
				total += wt
				if wt > maxW {
					maxW = wt
				}
			}

			var r, g, b, dominance float64
			if total > 1e-300 {
				r, g, b = sr/total, sg/total, sb/total
				dominance = maxW / total
			} else {
				// All weights underflowed: the nearest point owns the sample
				fp := &fps[nearest]
				r, g, b = fp.r, fp.g, fp.b
				dominance = 1
			}

			shade := 1 + (dominance-parameter.FieldReliefPivot)*relief
			setPx(low, gx, gy, RGB{
				R: clamp(r*shade + 0.5),
				G: clamp(g*shade + 0.5),
				B: clamp(b*shade + 0.5),
			})
		}
	}
	return low
}
