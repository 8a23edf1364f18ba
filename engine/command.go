package engine

import (
	"log"
	"time"

	"github.com/lixenwraith/blobscape/blob"
	"github.com/lixenwraith/blobscape/parameter"
	"github.com/lixenwraith/blobscape/vmath"
)

// Command is one configuration input, applied on the engine goroutine at the start of a frame
type Command interface {
	// apply mutates the engine and reports whether persisted configuration changed
	apply(e *Engine, now time.Time) bool
}

// SetField assigns one configuration field by its share-token key
type SetField struct {
	Key   string
	Value any
}

// ToggleChannel flips one reactivity channel
type ToggleChannel struct {
	Name string
}

// SetChannel enables or disables one reactivity channel
type SetChannel struct {
	Name    string
	Enabled bool
}

// SetEnergy overrides the energy signal; a playing source overwrites it on the next sample
type SetEnergy struct {
	Value float64
}

// Reseed advances the seed, regenerating control points and the blob stream
type Reseed struct{}

// Randomize interrupts the current morph with a short transition to a fresh shape
type Randomize struct{}

// SelectSource replaces the audio source, resetting transport to stopped
type SelectSource struct {
	Ref string
}

// Play starts or resumes the selected source
type Play struct{}

// Pause holds the source at its current position
type Pause struct{}

// Stop pauses and rewinds the source
type Stop struct{}

// Resize changes the viewport in pixels
type Resize struct {
	W, H int
}

func (c SetField) apply(e *Engine, now time.Time) bool {
	prev, _ := e.st.Get(c.Key)
	if err := e.st.Set(c.Key, c.Value); err != nil {
		log.Printf("Set %s rejected: %v", c.Key, err)
		return false
	}
	if err := e.syncField(c.Key); err != nil {
		log.Printf("Set %s rejected: %v", c.Key, err)
		e.st.Set(c.Key, prev)
		return false
	}
	return true
}

func (c ToggleChannel) apply(e *Engine, now time.Time) bool {
	if _, err := e.st.ToggleChannel(c.Name); err != nil {
		log.Printf("Channel toggle rejected: %v", err)
		return false
	}
	return true
}

func (c SetChannel) apply(e *Engine, now time.Time) bool {
	if err := e.st.SetChannel(c.Name, c.Enabled); err != nil {
		log.Printf("Channel update rejected: %v", err)
		return false
	}
	return true
}

func (c SetEnergy) apply(e *Engine, now time.Time) bool {
	if !vmath.IsFinite(c.Value) {
		return false
	}
	e.extractor.Override(c.Value)
	e.st.Energy = e.extractor.Energy()
	return false
}

func (Reseed) apply(e *Engine, now time.Time) bool {
	e.st.Reseed()
	_ = e.syncField("seed")
	return true
}

func (Randomize) apply(e *Engine, now time.Time) bool {
	e.animator.Interrupt(now, blob.Target{
		Options:  e.options(),
		Duration: parameter.RandomizeDuration,
		Timing:   parameter.RandomizeTimingCurve,
	})
	return false
}

func (c SelectSource) apply(e *Engine, now time.Time) bool {
	return SetField{Key: "audioSource", Value: c.Ref}.apply(e, now)
}

func (Play) apply(e *Engine, now time.Time) bool {
	e.transport.Play()
	return false
}

func (Pause) apply(e *Engine, now time.Time) bool {
	e.transport.Pause()
	return false
}

func (Stop) apply(e *Engine, now time.Time) bool {
	e.transport.Stop()
	return false
}

func (c Resize) apply(e *Engine, now time.Time) bool {
	e.resize(c.W, c.H)
	return false
}
