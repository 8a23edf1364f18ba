package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/blobscape/parameter"
	"github.com/lixenwraith/blobscape/state"
)

func TestRenderIsReproducible(t *testing.T) {
	a, _, err := render(state.Default(), 10, 24, 32, "", -1)
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := render(state.Default(), 10, 24, 32, "", -1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("Expected identical frames for identical inputs")
	}
}

func TestRenderAppliesEnergyAndSource(t *testing.T) {
	_, final, err := render(state.Default(), 30, 16, 16, "sine:330", 0)
	if err != nil {
		t.Fatal(err)
	}
	if final.AudioSource != "sine:330" {
		t.Errorf("Expected source kept in final state, got %q", final.AudioSource)
	}
	if final.Energy < 0.5 {
		t.Errorf("Expected sine to raise energy from 0, got %v", final.Energy)
	}
}

func TestWritePNG(t *testing.T) {
	img, _, err := render(state.Default(), 1, 8, 8, "", parameter.EnergyIdle)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.png")
	if err := writePNG(path, img); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Expected valid PNG, got %v", err)
	}
	if decoded.Bounds().Dx() != 8 || decoded.Bounds().Dy() != 8 {
		t.Errorf("Expected 8x8, got %v", decoded.Bounds())
	}
}

func TestWritePNGReportsCreateError(t *testing.T) {
	img, _, err := render(state.Default(), 1, 4, 4, "", -1)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "missing", "out.png")
	if err := writePNG(path, img); err == nil {
		t.Error("Expected error for a missing directory")
	}
}
