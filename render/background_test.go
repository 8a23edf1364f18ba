package render

import (
	"bytes"
	"image"
	"testing"

	"github.com/lixenwraith/blobscape/field"
	"github.com/lixenwraith/blobscape/parameter"
)

func testPalette() []RGB {
	return []RGB{MustHex("#7b8cde"), MustHex("#a5b4f0"), MustHex("#c8c0e8")}
}

func testParams(style string) BackgroundParams {
	return BackgroundParams{
		Style:    style,
		Palette:  testPalette(),
		Angle:    160,
		Speed:    30,
		Softness: 0.6,
		Edge:     0.4,
		Flow:     0.5,
	}
}

func TestRenderZeroViewportIsNoop(t *testing.T) {
	c := NewCompositor()
	empty := image.NewRGBA(image.Rect(0, 0, 0, 10))
	if c.Render(empty, testParams(parameter.StyleField), nil, 0) {
		t.Error("Expected Render to report skip for zero-area target")
	}
	if c.Render(nil, testParams(parameter.StyleSolid), nil, 0) {
		t.Error("Expected Render to report skip for nil target")
	}
}

func TestRenderSolid(t *testing.T) {
	c := NewCompositor()
	dst := image.NewRGBA(image.Rect(0, 0, 8, 6))
	if !c.Render(dst, testParams(parameter.StyleSolid), nil, 1234) {
		t.Fatal("Expected frame to render")
	}
	want := testPalette()[0]
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			if got := getPx(dst, x, y); got != want {
				t.Fatalf("Expected %v at (%d,%d), got %v", want, x, y, got)
			}
		}
	}
}

func TestRenderMeshWithoutPointsIsBase(t *testing.T) {
	c := NewCompositor()
	dst := image.NewRGBA(image.Rect(0, 0, 16, 16))
	c.Render(dst, testParams(parameter.StyleMesh), nil, 0)
	if got := getPx(dst, 7, 7); got != testPalette()[0] {
		t.Errorf("Expected base color, got %v", got)
	}
}

func TestRenderMeshBrightensAroundPoints(t *testing.T) {
	c := NewCompositor()
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	points := field.Generate(3, 4, 3)
	c.Render(dst, testParams(parameter.StyleMesh), points, 0)

	base := testPalette()[0]
	brighter := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			p := getPx(dst, x, y)
			if p.R < base.R || p.G < base.G || p.B < base.B {
				t.Fatalf("Screen blending darkened pixel (%d,%d): %v", x, y, p)
			}
			if p != base {
				brighter++
			}
		}
	}
	if brighter == 0 {
		t.Error("Expected orbs to lighten some pixels")
	}
}

func TestRenderLinearAndRadialUsePalette(t *testing.T) {
	for _, style := range []string{parameter.StyleLinear, parameter.StyleRadial} {
		c := NewCompositor()
		dst := image.NewRGBA(image.Rect(0, 0, 30, 50))
		c.Render(dst, testParams(style), nil, 5000)
		for i := 3; i < len(dst.Pix); i += 4 {
			if dst.Pix[i] != 255 {
				t.Fatalf("%s: expected opaque output", style)
			}
		}
		if getPx(dst, 0, 0) == getPx(dst, 29, 49) && style == parameter.StyleLinear {
			t.Errorf("%s: expected gradient to vary across the viewport", style)
		}
	}
}

func TestFieldGridDeterministic(t *testing.T) {
	points := field.Generate(12345, field.Count(parameter.StyleField, 4), 3)
	p := testParams(parameter.StyleField)

	a := NewCompositor()
	b := NewCompositor()
	first := append([]uint8(nil), a.fieldGrid(&p, points, 1.75, 360, 640).Pix...)
	second := a.fieldGrid(&p, points, 1.75, 360, 640).Pix
	third := b.fieldGrid(&p, points, 1.75, 360, 640).Pix

	if !bytes.Equal(first, second) {
		t.Error("Expected repeated invocation to produce identical grid")
	}
	if !bytes.Equal(first, third) {
		t.Error("Expected separate compositors to produce identical grid")
	}

	later := b.fieldGrid(&p, points, 9.0, 360, 640).Pix
	if bytes.Equal(first, later) {
		t.Error("Expected grid to animate with time")
	}
}

func TestFieldGridRespondsToFlowAndEdge(t *testing.T) {
	points := field.Generate(12345, field.Count(parameter.StyleField, 4), 3)
	grid := func(flow, edge float64) []uint8 {
		p := testParams(parameter.StyleField)
		p.Flow, p.Edge = flow, edge
		return append([]uint8(nil), NewCompositor().fieldGrid(&p, points, 1.75, 360, 640).Pix...)
	}

	still := grid(0, 0.4)
	if bytes.Equal(still, grid(0.8, 0.4)) {
		t.Error("Expected domain warp to change the grid when flow is raised")
	}
	if bytes.Equal(still, grid(0, 1)) {
		t.Error("Expected edge sharpness to change the grid")
	}
}

func TestFieldReliefShade(t *testing.T) {
	// A single point dominates every sample, so each cell is its color times the relief shade
	points := field.Generate(9, 1, 1)
	base := RGB{R: 40, G: 60, B: 80}

	for _, edge := range []float64{0, 0.5, 1} {
		p := testParams(parameter.StyleField)
		p.Palette = []RGB{base}
		p.Flow = 0
		p.Edge = edge
		grid := NewCompositor().fieldGrid(&p, points, 0, 64, 64)

		shade := 1 + (1-parameter.FieldReliefPivot)*(parameter.FieldReliefBase+edge*parameter.FieldReliefEdge)
		want := RGB{
			R: clamp(float64(base.R)*shade + 0.5),
			G: clamp(float64(base.G)*shade + 0.5),
			B: clamp(float64(base.B)*shade + 0.5),
		}
		b := grid.Rect
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if got := getPx(grid, x, y); got != want {
					t.Fatalf("edge %v: expected %v at (%d,%d), got %v", edge, want, x, y, got)
				}
			}
		}
	}
}

func TestFieldResolutionAspect(t *testing.T) {
	lw, lh := FieldResolution(360, 640, 8)
	if lh != parameter.FieldBaseResolution+8*parameter.FieldDensityResolution {
		t.Errorf("Expected long edge to be the scaled base, got %d", lh)
	}
	if lw >= lh {
		t.Errorf("Expected portrait grid, got %dx%d", lw, lh)
	}

	lw, lh = FieldResolution(1000, 10, 5)
	if lh != parameter.FieldMinResolution {
		t.Errorf("Expected short edge clamped to %d, got %d", parameter.FieldMinResolution, lh)
	}
	if lw <= lh {
		t.Errorf("Expected landscape grid, got %dx%d", lw, lh)
	}
}

func TestFieldEndToEndOpaque(t *testing.T) {
	points := field.Generate(12345, 4, 3)
	c := NewCompositor()
	dst := image.NewRGBA(image.Rect(0, 0, 90, 160))

	p := testParams(parameter.StyleField)
	p.Grain = 12
	if !c.Render(dst, p, points, 0) {
		t.Fatal("Expected frame to render")
	}
	for i := 3; i < len(dst.Pix); i += 4 {
		if dst.Pix[i] != 255 {
			t.Fatalf("Expected full opacity at byte %d, got %d", i, dst.Pix[i])
		}
	}

	low := c.low
	if low == nil || low.Rect.Empty() {
		t.Fatal("Expected low-res scratch grid to be populated")
	}
	for i := 3; i < len(low.Pix); i += 4 {
		if low.Pix[i] != 255 {
			t.Fatalf("Expected opaque low-res grid at byte %d", i)
		}
	}
}

func TestFieldExtremeSharpnessStaysFinite(t *testing.T) {
	points := field.Generate(77, 5, 3)
	p := testParams(parameter.StyleField)
	p.Edge = 1
	p.Softness = 0
	c := NewCompositor()
	grid := c.fieldGrid(&p, points, 0, 64, 64)
	black := 0
	for i := 0; i < len(grid.Pix); i += 4 {
		if grid.Pix[i] == 0 && grid.Pix[i+1] == 0 && grid.Pix[i+2] == 0 {
			black++
		}
	}
	if black > 0 {
		t.Errorf("Expected every sample to take a palette color, %d black samples", black)
	}
}

func TestBlurKeepsUniformImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 12, 9))
	Fill(img, RGB{40, 80, 120})
	var bl Blurrer
	bl.Blur(img, 4)
	for y := 0; y < 9; y++ {
		for x := 0; x < 12; x++ {
			if got := getPx(img, x, y); got != (RGB{40, 80, 120}) {
				t.Fatalf("Expected uniform color preserved at (%d,%d), got %v", x, y, got)
			}
		}
	}
}

func TestBlurSpreadsPoint(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 21, 21))
	i := img.PixOffset(10, 10)
	copy(img.Pix[i:i+4], []uint8{255, 255, 255, 255})

	var bl Blurrer
	bl.Blur(img, 2)
	if img.Pix[i+3] == 255 {
		t.Error("Expected center alpha to spread out")
	}
	n := img.PixOffset(11, 10)
	if img.Pix[n+3] == 0 {
		t.Error("Expected neighbor to receive coverage")
	}
}
