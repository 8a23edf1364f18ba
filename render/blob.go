package render

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/lixenwraith/blobscape/parameter"
)

// Point is a 2D coordinate in pixels
type Point struct {
	X, Y float64
}

// BlobStyle carries the reactivity-modulated appearance of one blob frame
type BlobStyle struct {
	Stops     [3]Stop // gradient stops at 0, 0.45, 1 with opacity folded into alpha
	EdgeBlur  float64 // gaussian sigma in pixels
	BlendMode string
	Scale     float64 // uniform scale around the blob center
	CenterX   float64 // viewport pixel coordinates of the blob center
	CenterY   float64
	Size      float64 // blob box edge in pixels before scale
}

// GlowStyle describes the radial halo drawn beneath the blob
type GlowStyle struct {
	Inner, Mid, Outer RGB // color2, color1, color3
	Opacity           float64
	Scale             float64
	CenterX, CenterY  float64
	Radius            float64 // unscaled radius in pixels
}

// BlobRenderer rasterizes blob outlines into a premultiplied layer and composites it
// Layer, mask and blur scratch are reused across frames
type BlobRenderer struct {
	raster *vector.Rasterizer
	mask   *image.Alpha
	layer  *image.RGBA
	blur   Blurrer
}

// NewBlobRenderer creates a renderer with empty scratch buffers
func NewBlobRenderer() *BlobRenderer {
	return &BlobRenderer{}
}

func (br *BlobRenderer) ensure(w, h int) {
	if br.raster == nil {
		br.raster = vector.NewRasterizer(w, h)
	} else {
		br.raster.Reset(w, h)
	}
	if br.mask == nil || br.mask.Rect.Dx() != w || br.mask.Rect.Dy() != h {
		br.mask = image.NewAlpha(image.Rect(0, 0, w, h))
	} else {
		clear(br.mask.Pix)
	}
	br.layer = EnsureRGBA(br.layer, w, h)
	clear(br.layer.Pix)
}

// Render draws the closed outline (blob-local coordinates in [0,Size]²) onto dst
// Returns false for an empty outline or zero-area target
func (br *BlobRenderer) Render(dst *image.RGBA, outline []Point, s BlobStyle) bool {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	if w == 0 || h == 0 || len(outline) < 3 || s.Size <= 0 {
		return false
	}
	br.ensure(w, h)

	scale := s.Scale
	if scale <= 0 {
		scale = 1
	}
	half := s.Size / 2
	tx := func(p Point) (float32, float32) {
		return float32(s.CenterX + (p.X-half)*scale), float32(s.CenterY + (p.Y-half)*scale)
	}

	z := br.raster
	x0, y0 := tx(outline[0])
	z.MoveTo(x0, y0)
	for _, p := range outline[1:] {
		x, y := tx(p)
		z.LineTo(x, y)
	}
	z.ClosePath()
	z.DrawOp = draw.Src
	z.Draw(br.mask, br.mask.Rect, image.Opaque, image.Point{})

	// Gradient axis spans the scaled blob box diagonally: (left, top+0.3S) to (right, top+0.7S)
	span := s.Size * scale
	left := s.CenterX - span/2
	top := s.CenterY - span/2
	gx0, gy0 := left, top+span*parameter.BlobGradientY0
	vx, vy := span, span*(parameter.BlobGradientY1-parameter.BlobGradientY0)
	inv := 1 / (vx*vx + vy*vy)
	stops := s.Stops[:]

	lp := br.layer.Pix
	for y := 0; y < h; y++ {
		row := y * br.mask.Stride
		py := float64(y) + 0.5 - gy0
		for x := 0; x < w; x++ {
			m := br.mask.Pix[row+x]
			if m == 0 {
				continue
			}
			px := float64(x) + 0.5 - gx0
			col, a := sampleStops(stops, (px*vx+py*vy)*inv)
			a *= float64(m) / 255
			if a <= 0 {
				continue
			}
			i := y*br.layer.Stride + x*4
			lp[i] = clamp(float64(col.R)*a + 0.5)
			lp[i+1] = clamp(float64(col.G)*a + 0.5)
			lp[i+2] = clamp(float64(col.B)*a + 0.5)
			lp[i+3] = clamp(a*255 + 0.5)
		}
	}

	if s.EdgeBlur > 0 {
		br.blur.Blur(br.layer, s.EdgeBlur)
	}

	compositeLayer(dst, br.layer, blendFunc(s.BlendMode))
	return true
}

// compositeLayer blends a premultiplied layer over an opaque destination
func compositeLayer(dst, layer *image.RGBA, blend func(c, src RGB, alpha float64) RGB) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	lp := layer.Pix
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*layer.Stride + x*4
			a := lp[i+3]
			if a == 0 {
				continue
			}
			af := float64(a) / 255
			src := RGB{
				R: clamp(float64(lp[i])/af + 0.5),
				G: clamp(float64(lp[i+1])/af + 0.5),
				B: clamp(float64(lp[i+2])/af + 0.5),
			}
			setPx(dst, x, y, blend(getPx(dst, x, y), src, af))
		}
	}
}

// RenderGlow draws the radial halo: color2 at center, color1 at 40%, color3 at 70%, transparent edge
func RenderGlow(dst *image.RGBA, g GlowStyle) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	opacity := math.Min(1, g.Opacity)
	r := g.Radius * g.Scale
	if w == 0 || h == 0 || opacity <= 0 || r <= 0 {
		return
	}
	stops := []Stop{
		{Offset: 0, Color: g.Inner, Alpha: 1},
		{Offset: parameter.GlowStopInner, Color: g.Mid, Alpha: 1},
		{Offset: parameter.GlowStopOuter, Color: g.Outer, Alpha: 1},
		{Offset: 1, Color: g.Outer, Alpha: 0},
	}

	x0 := max(0, int(math.Floor(g.CenterX-r)))
	x1 := min(w, int(math.Ceil(g.CenterX+r)))
	y0 := max(0, int(math.Floor(g.CenterY-r)))
	y1 := min(h, int(math.Ceil(g.CenterY+r)))
	for y := y0; y < y1; y++ {
		dy := float64(y) + 0.5 - g.CenterY
		for x := x0; x < x1; x++ {
			dx := float64(x) + 0.5 - g.CenterX
			d := math.Sqrt(dx*dx+dy*dy) / r
			if d >= 1 {
				continue
			}
			col, a := sampleStops(stops, d)
			setPx(dst, x, y, Blend(getPx(dst, x, y), col, a*opacity))
		}
	}
}
