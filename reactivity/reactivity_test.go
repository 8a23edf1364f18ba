package reactivity

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/blobscape/parameter"
	"github.com/lixenwraith/blobscape/render"
)

func allChannels(on bool) map[string]bool {
	m := make(map[string]bool, len(parameter.Channels))
	for _, ch := range parameter.Channels {
		m[ch] = on
	}
	return m
}

func testBase() Base {
	return Base{
		ExtraPoints:   5,
		Randomness:    8,
		Duration:      2000 * time.Millisecond,
		EdgeBlur:      20,
		GlowIntensity: 60,
		Opacity:       80,
		Colors: [3]render.RGB{
			render.MustHex("#5ce1e6"),
			render.MustHex("#ffffff"),
			render.MustHex("#c4b5fd"),
		},
	}
}

func TestScaleChannelFullEnergy(t *testing.T) {
	out := Distribute(1.0, Config{Enabled: allChannels(true), Amount: 100}, testBase())
	if math.Abs(out.Scale-1.2) > 1e-12 {
		t.Errorf("Expected scale 1.2, got %v", out.Scale)
	}
}

func TestMorphDurationFullEnergy(t *testing.T) {
	out := Distribute(1.0, Config{Enabled: allChannels(true), Amount: 100}, testBase())
	want := 600 * time.Millisecond
	if diff := out.Duration - want; diff < -time.Microsecond || diff > time.Microsecond {
		t.Errorf("Expected duration %v, got %v", want, out.Duration)
	}
	if out.ExtraPoints != 9 {
		t.Errorf("Expected 9 extra points, got %d", out.ExtraPoints)
	}
	if out.Randomness != 20 {
		t.Errorf("Expected randomness 20, got %d", out.Randomness)
	}
}

func TestDurationFloor(t *testing.T) {
	if got := Duration(250*time.Millisecond, 1); got != parameter.MorphDurationFloor {
		t.Errorf("Expected floor %v, got %v", parameter.MorphDurationFloor, got)
	}
}

func TestMorphRoundsHalfUp(t *testing.T) {
	// 5 + 0.125*4 = 5.5 -> 6, 8 + 0.125*12 = 9.5 -> 10
	ep, rn := Morph(5, 8, 0.125)
	if ep != 6 || rn != 10 {
		t.Errorf("Expected (6,10), got (%d,%d)", ep, rn)
	}
}

func TestAmountScalesEnergy(t *testing.T) {
	tests := []struct {
		energy, amount, want float64
	}{
		{1, 100, 1},
		{0.5, 60, 0.3},
		{1, 0, 0},
		{0.8, 150, 0.8}, // amount clamps to 100
	}
	for _, tt := range tests {
		if got := ScaledEnergy(tt.energy, tt.amount); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("ScaledEnergy(%v,%v): expected %v, got %v", tt.energy, tt.amount, tt.want, got)
		}
	}
}

func TestDisabledFallbacksIgnoreEnergy(t *testing.T) {
	base := testBase()
	cfg := Config{Enabled: allChannels(false), Amount: 100}

	var ref Outputs
	for i, energy := range []float64{0, 0.05, 0.5, 0.95, 1} {
		out := Distribute(energy, cfg, base)

		if out.Scale != 1 {
			t.Errorf("e=%v: expected scale 1, got %v", energy, out.Scale)
		}
		if math.Abs(out.GlowIntensity-0.6*parameter.GlowDisabledIntensity) > 1e-12 || out.GlowScale != 1 {
			t.Errorf("e=%v: expected glow fallback, got %v/%v", energy, out.GlowIntensity, out.GlowScale)
		}
		if out.EdgeBlur != base.EdgeBlur {
			t.Errorf("e=%v: expected blur unchanged, got %v", energy, out.EdgeBlur)
		}
		if out.Duration != base.Duration || out.ExtraPoints != base.ExtraPoints || out.Randomness != base.Randomness {
			t.Errorf("e=%v: expected morph fallback, got %+v", energy, out)
		}
		if out.Stops[0].Color != base.Colors[0] || out.Stops[2].Color != base.Colors[2] {
			t.Errorf("e=%v: expected configured colors, got %+v", energy, out.Stops)
		}

		if i == 0 {
			ref = out
			continue
		}
		ref.ScaledEnergy = out.ScaledEnergy
		if out != ref {
			t.Errorf("e=%v: outputs depend on energy with all channels off", energy)
		}
	}
}

func TestSingleChannelToggle(t *testing.T) {
	base := testBase()
	on := allChannels(true)
	on[parameter.ChannelScale] = false
	out := Distribute(1, Config{Enabled: on, Amount: 100}, base)

	if out.Scale != 1 {
		t.Errorf("Expected scale fallback, got %v", out.Scale)
	}
	if out.EdgeBlur != base.EdgeBlur+parameter.BlurGain {
		t.Errorf("Expected blur %v, got %v", base.EdgeBlur+parameter.BlurGain, out.EdgeBlur)
	}
	if math.Abs(out.GlowScale-1.5) > 1e-12 {
		t.Errorf("Expected glow scale 1.5, got %v", out.GlowScale)
	}
	if math.Abs(out.GlowIntensity-0.6*1.3) > 1e-12 {
		t.Errorf("Expected glow intensity 0.78, got %v", out.GlowIntensity)
	}
}

func TestBrightnessShift(t *testing.T) {
	colors := [3]render.RGB{{R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 255}, {R: 100, G: 100, B: 100}}

	plain := GradientStops(colors, 1, 0)
	if plain[2].Alpha != parameter.BrightnessEndAlpha {
		t.Errorf("Expected end alpha %v, got %v", parameter.BrightnessEndAlpha, plain[2].Alpha)
	}
	if plain[1].Offset != 0.45 {
		t.Errorf("Expected mid stop at 0.45, got %v", plain[1].Offset)
	}

	shifted := GradientStops(colors, 1, 0.6)
	// 0 + 255*0.6 = 153
	if shifted[0].Color != (render.RGB{R: 153, G: 153, B: 153}) {
		t.Errorf("Expected first stop {153 153 153}, got %v", shifted[0].Color)
	}
	// 100 + 155*0.6 = 193
	if shifted[2].Color != (render.RGB{R: 193, G: 193, B: 193}) {
		t.Errorf("Expected last stop {193 193 193}, got %v", shifted[2].Color)
	}
	if math.Abs(shifted[2].Alpha-0.88) > 1e-12 {
		t.Errorf("Expected boosted end alpha 0.88, got %v", shifted[2].Alpha)
	}
	if shifted[1].Color != colors[1] {
		t.Errorf("Expected mid stop unchanged, got %v", shifted[1].Color)
	}
}
