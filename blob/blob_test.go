package blob

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/blobscape/parameter"
	"github.com/lixenwraith/blobscape/vmath"
)

func TestEasingEndpointsAndMonotone(t *testing.T) {
	for _, name := range []string{
		parameter.TimingLinear,
		parameter.TimingEase,
		parameter.TimingEaseIn,
		parameter.TimingEaseOut,
		parameter.TimingEaseInOut,
	} {
		t.Run(name, func(t *testing.T) {
			e := LookupEasing(name)
			if e(0) != 0 || e(1) != 1 {
				t.Fatalf("Expected endpoints 0 and 1, got %v and %v", e(0), e(1))
			}
			prev := 0.0
			for i := 1; i <= 100; i++ {
				v := e(float64(i) / 100)
				if v < prev-1e-9 {
					t.Fatalf("Expected monotone curve, dropped at %d: %v < %v", i, v, prev)
				}
				prev = v
			}
		})
	}
}

func TestEaseInOutSymmetric(t *testing.T) {
	e := LookupEasing(parameter.TimingEaseInOut)
	if got := e(0.5); math.Abs(got-0.5) > 1e-5 {
		t.Errorf("Expected ease-in-out midpoint 0.5, got %v", got)
	}
	in := LookupEasing(parameter.TimingEaseIn)
	if in(0.3) >= 0.3 {
		t.Errorf("Expected ease-in to lag linear, got %v", in(0.3))
	}
}

func TestLookupEasingFallback(t *testing.T) {
	if IsTimingFunction("bounce") {
		t.Error("Expected bounce to be unsupported")
	}
	ease := LookupEasing(parameter.TimingEase)
	fallback := LookupEasing("bounce")
	if ease(0.37) != fallback(0.37) {
		t.Error("Expected unknown timing function to use ease")
	}
}

func TestShapeDeterministic(t *testing.T) {
	opts := Options{ExtraPoints: 5, Randomness: 8, Size: 250}
	a := NewShape(vmath.NewStream(42, vmath.StreamBlob), opts)
	b := NewShape(vmath.NewStream(42, vmath.StreamBlob), opts)
	if a != b {
		t.Error("Expected identical shapes for identical seeds")
	}
	c := NewShape(vmath.NewStream(43, vmath.StreamBlob), opts)
	if a == c {
		t.Error("Expected different seeds to produce different shapes")
	}
}

func TestShapeRadiiBounds(t *testing.T) {
	rng := vmath.NewRand(7)
	for _, opts := range []Options{
		{ExtraPoints: 0, Randomness: 0, Size: 100},
		{ExtraPoints: 16, Randomness: 42, Size: 300},
		{ExtraPoints: -3, Randomness: -1, Size: 50},
	} {
		s := NewShape(rng, opts)
		for i, r := range s.Radii {
			if r < parameter.BlobRadiusFloor/2 || r > 1 {
				t.Fatalf("%+v: radius %d out of bounds: %v", opts, i, r)
			}
		}
	}
}

func TestZeroRandomnessIsCircle(t *testing.T) {
	s := NewShape(vmath.NewRand(1), Options{ExtraPoints: 4, Randomness: 0, Size: 200})
	for i, r := range s.Radii {
		if math.Abs(r-1) > 1e-12 {
			t.Fatalf("Expected unit radius at %d, got %v", i, r)
		}
	}
	out := s.Outline(nil)
	if len(out) != parameter.BlobSamples {
		t.Fatalf("Expected %d outline points, got %d", parameter.BlobSamples, len(out))
	}
	if math.Abs(out[0].X-200) > 1e-9 || math.Abs(out[0].Y-100) > 1e-9 {
		t.Errorf("Expected first point at (200,100), got %+v", out[0])
	}
}

func TestInterpolateEndpoints(t *testing.T) {
	rng := vmath.NewRand(9)
	a := NewShape(rng, Options{ExtraPoints: 2, Randomness: 10, Size: 100})
	b := NewShape(rng, Options{ExtraPoints: 6, Randomness: 20, Size: 300})

	if got := Interpolate(&a, &b, 0); got != a {
		t.Error("Expected t=0 to return the first shape")
	}
	if got := Interpolate(&a, &b, 1); got.Size != b.Size {
		t.Errorf("Expected size %v at t=1, got %v", b.Size, got.Size)
	}
	if got := Interpolate(&a, &b, 0.5); got.Size != 200 {
		t.Errorf("Expected midpoint size 200, got %v", got.Size)
	}
}

func fixedPlan(d time.Duration, calls *int) Planner {
	return func() Target {
		*calls++
		return Target{Options: Options{ExtraPoints: 5, Randomness: 8, Size: 250}, Duration: d, Timing: parameter.TimingLinear}
	}
}

func TestAnimatorClosedLoop(t *testing.T) {
	a := NewAnimator(12345)
	if a.Phase() != PhaseIdle {
		t.Fatalf("Expected idle, got %v", a.Phase())
	}
	if shape := a.Shape(); len(shape.Outline(nil)) != 0 {
		t.Fatalf("Expected empty outline before first advance, got %d points", len(shape.Outline(nil)))
	}

	calls := 0
	plan := fixedPlan(time.Second, &calls)
	t0 := time.Unix(1000, 0)

	a.Advance(t0, plan)
	if a.Phase() != PhaseTransitioning || calls != 1 {
		t.Fatalf("Expected first transition planned, phase=%v calls=%d", a.Phase(), calls)
	}
	if got := a.Deadline(); !got.Equal(t0.Add(time.Second)) {
		t.Errorf("Expected deadline %v, got %v", t0.Add(time.Second), got)
	}

	// Mid-flight frames never consult the planner
	a.Advance(t0.Add(500*time.Millisecond), plan)
	if calls != 1 {
		t.Errorf("Expected no replanning mid-transition, got %d calls", calls)
	}

	a.Advance(t0.Add(time.Second), plan)
	if calls != 2 || a.Transitions() != 2 {
		t.Errorf("Expected completion to plan the next transition, calls=%d transitions=%d", calls, a.Transitions())
	}
	if a.Phase() != PhaseTransitioning {
		t.Errorf("Expected loop to continue, got %v", a.Phase())
	}
}

func TestAnimatorMidpointInterpolates(t *testing.T) {
	a := NewAnimator(5)
	calls := 0
	t0 := time.Unix(0, 0)
	a.Advance(t0, fixedPlan(time.Second, &calls))
	// Second transition has distinct endpoints
	a.Advance(t0.Add(time.Second), fixedPlan(time.Second, &calls))
	from := a.Shape()

	a.Advance(t0.Add(1500*time.Millisecond), fixedPlan(time.Second, &calls))
	mid := a.Shape()
	want := Interpolate(&a.from, &a.to, 0.5)
	if mid != want {
		t.Error("Expected linear timing to land halfway at half duration")
	}
	if mid == from {
		t.Error("Expected the shape to move during the transition")
	}
}

func TestAnimatorInterrupt(t *testing.T) {
	a := NewAnimator(77)
	calls := 0
	t0 := time.Unix(0, 0)
	a.Advance(t0, fixedPlan(10*time.Second, &calls))
	a.Advance(t0.Add(2*time.Second), fixedPlan(10*time.Second, &calls))
	before := a.Shape()

	now := t0.Add(2 * time.Second)
	a.Interrupt(now, Target{
		Options:  Options{ExtraPoints: 3, Randomness: 20, Size: 250},
		Duration: parameter.RandomizeDuration,
		Timing:   parameter.RandomizeTimingCurve,
	})
	if a.from != before {
		t.Error("Expected interrupt to start from the current frame")
	}
	if got := a.Deadline(); !got.Equal(now.Add(parameter.RandomizeDuration)) {
		t.Errorf("Expected deadline %v, got %v", now.Add(parameter.RandomizeDuration), got)
	}

	a.Advance(now.Add(parameter.RandomizeDuration), fixedPlan(10*time.Second, &calls))
	if calls != 2 {
		t.Errorf("Expected loop to resume through the planner, got %d calls", calls)
	}
}
