package render

import (
	"image"
	"math"

	"github.com/lixenwraith/blobscape/field"
	"github.com/lixenwraith/blobscape/parameter"
)

// BackgroundParams is the per-frame view of the background configuration
type BackgroundParams struct {
	Style   string
	Palette []RGB   // at least one color
	Angle   float64 // degrees
	Speed   float64 // 0-100, scales elapsed time

	// Field style shape controls, normalized to [0,1]
	Softness float64
	Edge     float64
	Flow     float64

	Grain     float64 // 0-40 overlay opacity percent
	GrainSeed uint32
}

// color returns palette entry i, wrapping when the palette is shorter than the style needs
func (p *BackgroundParams) color(i int) RGB {
	if len(p.Palette) == 0 {
		return RGBBlack
	}
	return p.Palette[i%len(p.Palette)]
}

// ScaledTime converts a frame timestamp in milliseconds into style time in seconds
func (p *BackgroundParams) ScaledTime(ms float64) float64 {
	return ms * 0.001 * (p.Speed / 100)
}

// Compositor renders background styles into a full-viewport buffer
// Retains only scratch buffers between frames; output is a pure function of the inputs
type Compositor struct {
	low    *image.RGBA // field style low-res grid
	blur   Blurrer
	grain  grainCache
	weight []fieldPoint
}

// NewCompositor creates a compositor with empty scratch buffers
func NewCompositor() *Compositor {
	return &Compositor{}
}

// Render draws the configured style into dst at frame time ms
// Returns false and leaves dst untouched for a zero-area target
func (c *Compositor) Render(dst *image.RGBA, p BackgroundParams, points []field.ControlPoint, ms float64) bool {
	if dst == nil || dst.Bounds().Empty() {
		return false
	}
	t := p.ScaledTime(ms)

	switch p.Style {
	case parameter.StyleSolid:
		Fill(dst, p.color(0))
	case parameter.StyleLinear:
		renderLinear(dst, &p, t)
	case parameter.StyleRadial:
		renderRadial(dst, &p, t)
	case parameter.StyleField:
		c.renderField(dst, &p, points, t)
	default:
		renderMesh(dst, &p, points, t)
	}

	if p.Grain > 0 {
		c.grain.apply(dst, p.GrainSeed, p.Grain/100)
	}
	return true
}

// renderLinear fills a three-stop gradient along an angle that rotates with time
func renderLinear(dst *image.RGBA, p *BackgroundParams, t float64) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	angle := (p.Angle + t*parameter.LinearRotationRate) * math.Pi / 180
	cx, cy := float64(w)/2, float64(h)/2
	length := math.Max(float64(w), float64(h))
	dx, dy := math.Cos(angle)*length, math.Sin(angle)*length

	// Gradient line runs from (cx-dx, cy-dy) to (cx+dx, cy+dy)
	sx, sy := cx-dx, cy-dy
	vx, vy := 2*dx, 2*dy
	inv := 1 / (vx*vx + vy*vy)

	stops := []Stop{
		{Offset: 0, Color: p.color(0), Alpha: 1},
		{Offset: 0.5, Color: p.color(1), Alpha: 1},
		{Offset: 1, Color: p.color(2), Alpha: 1},
	}
	for y := 0; y < h; y++ {
		py := float64(y) + 0.5 - sy
		for x := 0; x < w; x++ {
			px := float64(x) + 0.5 - sx
			col, _ := sampleStops(stops, (px*vx+py*vy)*inv)
			setPx(dst, x, y, col)
		}
	}
}

// renderRadial fills a radial gradient whose center drifts on sine/cosine paths
// Stop order puts the second palette color at the center
func renderRadial(dst *image.RGBA, p *BackgroundParams, t float64) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	cx := float64(w) * (0.5 + math.Sin(t*parameter.RadialFreqX)*parameter.RadialDriftX)
	cy := float64(h) * (parameter.RadialCenterY + math.Cos(t*parameter.RadialFreqY)*parameter.RadialDriftY)
	r := math.Max(float64(w), float64(h)) * parameter.RadialRadiusFrac

	stops := []Stop{
		{Offset: 0, Color: p.color(1), Alpha: 1},
		{Offset: 0.5, Color: p.color(0), Alpha: 1},
		{Offset: 1, Color: p.color(2), Alpha: 1},
	}
	for y := 0; y < h; y++ {
		dy := float64(y) + 0.5 - cy
		for x := 0; x < w; x++ {
			dx := float64(x) + 0.5 - cx
			col, _ := sampleStops(stops, math.Sqrt(dx*dx+dy*dy)/r)
			setPx(dst, x, y, col)
		}
	}
}

// renderMesh fills the base color then screen-blends a soft radial orb per control point
func renderMesh(dst *image.RGBA, p *BackgroundParams, points []field.ControlPoint, t float64) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	Fill(dst, p.color(0))

	fw, fh := float64(w), float64(h)
	diag := math.Sqrt(fw*fw + fh*fh)

	for i := range points {
		pt := &points[i]
		nx, ny := pt.Position(t)
		ox, oy := nx*fw, ny*fh
		or := pt.Radius * diag
		if or <= 0 {
			continue
		}
		col := p.color(pt.ColorIndex)
		stops := []Stop{
			{Offset: 0, Color: col, Alpha: pt.Alpha},
			{Offset: parameter.MeshMidStop, Color: col, Alpha: pt.Alpha * parameter.MeshMidAlpha},
			{Offset: 1, Color: col, Alpha: 0},
		}

		// Outside the radius the last stop is transparent, so only the bounding box matters
		x0 := max(0, int(math.Floor(ox-or)))
		x1 := min(w, int(math.Ceil(ox+or)))
		y0 := max(0, int(math.Floor(oy-or)))
		y1 := min(h, int(math.Ceil(oy+or)))
		for y := y0; y < y1; y++ {
			dy := float64(y) + 0.5 - oy
			for x := x0; x < x1; x++ {
				dx := float64(x) + 0.5 - ox
				d := math.Sqrt(dx*dx+dy*dy) / or
				if d >= 1 {
					continue
				}
				_, a := sampleStops(stops, d)
				setPx(dst, x, y, Screen(getPx(dst, x, y), col, a))
			}
		}
	}
}
