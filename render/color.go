package render

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHex decodes "#rrggbb" or "#rgb"
func ParseHex(s string) (RGB, bool) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, false
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, true
}

// MustHex parses a hex literal, falling back to black on malformed input
func MustHex(s string) RGB {
	c, _ := ParseHex(s)
	return c
}

// Hex formats the color as lowercase "#rrggbb"
func (c RGB) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}

// Stop is one gradient color stop with non-premultiplied alpha
type Stop struct {
	Offset float64
	Color  RGB
	Alpha  float64
}

// sampleStops evaluates a stop list at t in premultiplied space, returning straight color and alpha
// Stops must be sorted by offset; t outside the range clamps to the end stops
func sampleStops(stops []Stop, t float64) (RGB, float64) {
	n := len(stops)
	if n == 0 {
		return RGBBlack, 0
	}
	if t <= stops[0].Offset {
		return stops[0].Color, stops[0].Alpha
	}
	if t >= stops[n-1].Offset {
		return stops[n-1].Color, stops[n-1].Alpha
	}

	for i := 1; i < n; i++ {
		b := stops[i]
		if t > b.Offset {
			continue
		}
		a := stops[i-1]
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color, b.Alpha
		}
		f := (t - a.Offset) / span
		alpha := a.Alpha + (b.Alpha-a.Alpha)*f
		if alpha <= 0 {
			return b.Color, 0
		}
		// Premultiplied interpolation keeps transparent stops from tinting the result
		mix := func(ca, cb uint8) uint8 {
			pa := float64(ca) * a.Alpha
			pb := float64(cb) * b.Alpha
			return clamp((pa+(pb-pa)*f)/alpha + 0.5)
		}
		return RGB{
			R: mix(a.Color.R, b.Color.R),
			G: mix(a.Color.G, b.Color.G),
			B: mix(a.Color.B, b.Color.B),
		}, alpha
	}
	return stops[n-1].Color, stops[n-1].Alpha
}

// --- Pixel access on *image.RGBA with origin at (0,0) ---

func getPx(img *image.RGBA, x, y int) RGB {
	i := y*img.Stride + x*4
	p := img.Pix[i : i+3 : i+3]
	return RGB{R: p[0], G: p[1], B: p[2]}
}

func setPx(img *image.RGBA, x, y int, c RGB) {
	i := y*img.Stride + x*4
	p := img.Pix[i : i+4 : i+4]
	p[0] = c.R
	p[1] = c.G
	p[2] = c.B
	p[3] = 255
}

// Fill paints every pixel opaque c
func Fill(img *image.RGBA, c RGB) {
	b := img.Bounds()
	if b.Empty() {
		return
	}
	row := img.Pix[:b.Dx()*4]
	for i := 0; i < len(row); i += 4 {
		row[i] = c.R
		row[i+1] = c.G
		row[i+2] = c.B
		row[i+3] = 255
	}
	for y := 1; y < b.Dy(); y++ {
		copy(img.Pix[y*img.Stride:], row)
	}
}

// EnsureRGBA returns img when it already has w×h, otherwise a fresh buffer
// Reuses capacity to keep per-frame allocation flat
func EnsureRGBA(img *image.RGBA, w, h int) *image.RGBA {
	if img != nil && img.Rect.Dx() == w && img.Rect.Dy() == h && img.Rect.Min == (image.Point{}) {
		return img
	}
	size := w * h * 4
	if img != nil && cap(img.Pix) >= size {
		return &image.RGBA{Pix: img.Pix[:size], Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
	}
	return image.NewRGBA(image.Rect(0, 0, w, h))
}
