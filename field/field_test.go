package field

import (
	"math"
	"testing"

	"github.com/lixenwraith/blobscape/parameter"
)

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(12345, 8, 3)
	b := Generate(12345, 8, 3)
	if len(a) != 8 || len(b) != 8 {
		t.Fatalf("Expected 8 points, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("Point %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGeneratePrefixStable(t *testing.T) {
	short := Generate(99, 4, 3)
	long := Generate(99, 8, 3)
	for i := range short {
		if short[i] != long[i] {
			t.Errorf("Expected point %d independent of count, got %+v vs %+v", i, short[i], long[i])
		}
	}
}

func TestGenerateSeedChangesLayout(t *testing.T) {
	a := Generate(1, 4, 3)
	b := Generate(2, 4, 3)
	if a[0] == b[0] {
		t.Error("Expected different seeds to produce different points")
	}
}

func TestGenerateDomains(t *testing.T) {
	for _, seed := range []uint32{0, 7, 12345, math.MaxUint32} {
		for i, p := range Generate(seed, 12, 5) {
			checks := []struct {
				name   string
				v      float64
				lo, hi float64
			}{
				{"x", p.X, 0.15, 0.85},
				{"y", p.Y, 0.1, 0.9},
				{"phaseX", p.PhaseX, 0, 2 * math.Pi},
				{"phaseY", p.PhaseY, 0, 2 * math.Pi},
				{"freqX", p.FreqX, 0.3, 0.8},
				{"freqY", p.FreqY, 0.2, 0.6},
				{"driftX", p.DriftX, 0.04, 0.12},
				{"driftY", p.DriftY, 0.03, 0.10},
				{"radius", p.Radius, 0.25, 0.5},
				{"alpha", p.Alpha, 0.5, 0.9},
				{"stretch", p.Stretch, 0, 1},
				{"tilt", p.Tilt, -0.7, 0.7},
				{"pulse", p.PulsePhase, 0, 2 * math.Pi},
			}
			for _, c := range checks {
				if c.v < c.lo || c.v > c.hi {
					t.Errorf("seed %d point %d: %s=%v outside [%v,%v]", seed, i, c.name, c.v, c.lo, c.hi)
				}
			}
			if p.ColorIndex != i%5 {
				t.Errorf("Expected color index %d, got %d", i%5, p.ColorIndex)
			}
		}
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		style   string
		density int
		want    int
	}{
		{parameter.StyleMesh, 4, 4},
		{parameter.StyleSolid, 2, 2},
		{parameter.StyleField, 4, 8},
		{parameter.StyleField, 0, parameter.FieldMinPoints},
	}
	for _, tt := range tests {
		if got := Count(tt.style, tt.density); got != tt.want {
			t.Errorf("Count(%s,%d): expected %d, got %d", tt.style, tt.density, tt.want, got)
		}
	}
}

func TestStoreEnsureSwapsWholeSet(t *testing.T) {
	var s Store
	if s.Load() != nil {
		t.Fatal("Expected empty store before Ensure")
	}

	first := s.Ensure(5, 4, 3)
	if again := s.Ensure(5, 4, 3); again != first {
		t.Error("Expected Ensure with same inputs to reuse the set")
	}
	if s.Generations() != 1 {
		t.Errorf("Expected 1 generation, got %d", s.Generations())
	}

	second := s.Ensure(5, 8, 3)
	if second == first {
		t.Fatal("Expected a new set after count change")
	}
	if len(first.Points) != 4 {
		t.Errorf("Expected old set to stay intact with 4 points, got %d", len(first.Points))
	}
	if len(s.Load().Points) != 8 {
		t.Errorf("Expected 8 points after regeneration, got %d", len(s.Load().Points))
	}

	s.Ensure(6, 8, 3)
	if s.Generations() != 3 {
		t.Errorf("Expected 3 generations, got %d", s.Generations())
	}
}
