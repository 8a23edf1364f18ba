package blob

import (
	"time"

	"github.com/lixenwraith/blobscape/vmath"
)

// Phase tracks the morph scheduler state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTransitioning
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTransitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}

// Target is one transition request
type Target struct {
	Options  Options
	Duration time.Duration
	Timing   string
}

// Planner computes the next transition from current state when one completes
type Planner func() Target

// Animator morphs between generated shapes in a closed loop
// Each completed transition asks the planner for the next target, in-flight transitions
// are never retimed. Not safe for concurrent use
type Animator struct {
	rng *vmath.Rand

	phase    Phase
	from, to Shape
	current  Shape
	hasShape bool

	start    time.Time
	duration time.Duration
	ease     Easing

	transitions int64
}

// NewAnimator creates an idle animator drawing shape randomness from the blob stream of seed
func NewAnimator(seed uint32) *Animator {
	return &Animator{rng: vmath.NewStream(seed, vmath.StreamBlob)}
}

// Reseed restarts the blob randomness sequence without disturbing the current shape
func (a *Animator) Reseed(seed uint32) {
	a.rng = vmath.NewStream(seed, vmath.StreamBlob)
}

// Phase returns the scheduler state
func (a *Animator) Phase() Phase {
	return a.phase
}

// Transitions returns the number of transitions started
func (a *Animator) Transitions() int64 {
	return a.transitions
}

// Deadline returns when the in-flight transition completes, zero when idle
func (a *Animator) Deadline() time.Time {
	if a.phase != PhaseTransitioning {
		return time.Time{}
	}
	return a.start.Add(a.duration)
}

// Advance moves the schedule to now
// Idle animators start a transition from plan; a transition whose deadline has passed
// settles on its target and immediately starts the next one from plan
func (a *Animator) Advance(now time.Time, plan Planner) {
	switch a.phase {
	case PhaseIdle:
		a.begin(now, plan())
	case PhaseTransitioning:
		elapsed := now.Sub(a.start)
		if elapsed >= a.duration {
			a.current = a.to
			a.phase = PhaseIdle
			a.begin(now, plan())
			return
		}
		t := float64(elapsed) / float64(a.duration)
		a.current = Interpolate(&a.from, &a.to, a.ease(t))
	}
}

// Interrupt abandons the in-flight transition and morphs from the current frame to tgt
// The loop resumes through the planner once tgt completes
func (a *Animator) Interrupt(now time.Time, tgt Target) {
	a.phase = PhaseIdle
	a.begin(now, tgt)
}

func (a *Animator) begin(now time.Time, tgt Target) {
	next := NewShape(a.rng, tgt.Options)
	if !a.hasShape {
		a.current = next
		a.hasShape = true
	}
	a.from = a.current
	a.to = next
	a.start = now
	a.duration = max(tgt.Duration, time.Millisecond)
	a.ease = LookupEasing(tgt.Timing)
	a.phase = PhaseTransitioning
	a.transitions++
}

// Shape returns the most recently computed frame, zero before the first Advance
func (a *Animator) Shape() Shape {
	return a.current
}
