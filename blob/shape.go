// Package blob generates organic closed shapes and morphs between them on a schedule
package blob

import (
	"math"

	"github.com/lixenwraith/blobscape/parameter"
	"github.com/lixenwraith/blobscape/render"
	"github.com/lixenwraith/blobscape/vmath"
)

// Options are the shape parameters of one morph target
type Options struct {
	ExtraPoints int
	Randomness  int
	Size        float64 // box edge in pixels
}

// Shape is a star-convex outline sampled at fixed angles
// Radii are fractions of Size/2, so shapes of different size interpolate cleanly
type Shape struct {
	Size  float64
	Radii [parameter.BlobSamples]float64
}

// NewShape draws a shape from rng: one rotation, then one radius per vertex
func NewShape(rng *vmath.Rand, opts Options) Shape {
	n := parameter.BlobBasePoints + max(opts.ExtraPoints, 0)
	jitter := math.Min(float64(max(opts.Randomness, 0))*parameter.BlobRandomnessScale, 1-parameter.BlobRadiusFloor)

	rotation := rng.Float64()
	verts := make([]float64, n)
	for i := range verts {
		verts[i] = math.Max(parameter.BlobRadiusFloor, 1-rng.Float64()*jitter)
	}

	s := Shape{Size: opts.Size}
	for k := range s.Radii {
		// Vertex-space coordinate of this sample angle
		u := math.Mod(float64(k)/parameter.BlobSamples-rotation+1, 1) * float64(n)
		i := int(u)
		f := u - float64(i)
		p0 := verts[(i-1+n)%n]
		p1 := verts[i%n]
		p2 := verts[(i+1)%n]
		p3 := verts[(i+2)%n]
		s.Radii[k] = vmath.Clamp(catmullRom(p0, p1, p2, p3, f), parameter.BlobRadiusFloor/2, 1)
	}
	return s
}

// catmullRom evaluates the uniform Catmull-Rom segment between p1 and p2
func catmullRom(p0, p1, p2, p3, f float64) float64 {
	f2 := f * f
	f3 := f2 * f
	return 0.5 * (2*p1 + (p2-p0)*f + (2*p0-5*p1+4*p2-p3)*f2 + (3*p1-p0-3*p2+p3)*f3)
}

// Interpolate blends two shapes sample by sample, t=0 is a and t=1 is b
func Interpolate(a, b *Shape, t float64) Shape {
	out := Shape{Size: vmath.Lerp(a.Size, b.Size, t)}
	for i := range out.Radii {
		out.Radii[i] = vmath.Lerp(a.Radii[i], b.Radii[i], t)
	}
	return out
}

// Outline appends the closed path in box coordinates [0,Size]², centered at Size/2
func (s *Shape) Outline(dst []render.Point) []render.Point {
	half := s.Size / 2
	for i, r := range s.Radii {
		theta := vmath.TwoPi * float64(i) / parameter.BlobSamples
		dst = append(dst, render.Point{
			X: half + math.Cos(theta)*r*half,
			Y: half + math.Sin(theta)*r*half,
		})
	}
	return dst
}
