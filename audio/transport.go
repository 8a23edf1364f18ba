package audio

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/blobscape/parameter"
)

// PlayState is the transport position state
type PlayState int

const (
	StateStopped PlayState = iota
	StatePlaying
	StatePaused
)

func (s PlayState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// pumpChunk is the headless pull size in samples
const pumpChunk = 512

// Transport owns the selected source and its play/pause/stop lifecycle
// Everything the source yields passes through the analyser tap
type Transport struct {
	mu       sync.Mutex
	cfg      *Config
	rate     beep.SampleRate
	analyser *Analyser

	src   *Source
	ctrl  *beep.Ctrl
	state PlayState
	ended atomic.Bool

	output  bool // speaker initialised
	scratch [][2]float64
}

// NewTransport creates a transport with no source
func NewTransport(cfg *Config, analyser *Analyser) *Transport {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Transport{
		cfg:      cfg,
		rate:     beep.SampleRate(cfg.SampleRate),
		analyser: analyser,
		scratch:  make([][2]float64, pumpChunk),
	}
}

// StartOutput initialises the speaker when enabled by config
// Failure leaves the transport headless, driven by Pump
func (t *Transport) StartOutput() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.cfg.Output || t.output {
		return nil
	}
	if err := speaker.Init(t.rate, t.rate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	t.output = true
	if t.ctrl != nil {
		speaker.Play(t.ctrl)
	}
	return nil
}

// Headless reports whether frames must Pump audio themselves
func (t *Transport) Headless() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.output
}

// Close stops playback and releases the source and speaker
func (t *Transport) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.detach()
	if t.output {
		speaker.Close()
		t.output = false
	}
}

// Select replaces the source; position resets and the transport is stopped
// The empty reference selects manual energy and is not an error
func (t *Transport) Select(ref string) error {
	// Opened before locking so a failed open leaves the current source in place
	var src *Source
	if ref != "" {
		var err error
		if src, err = Open(ref, t.rate); err != nil {
			return err
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.detach()
	t.state = StateStopped
	if t.analyser != nil {
		t.analyser.Reset()
	}
	if src != nil {
		t.attach(src)
	}
	return nil
}

// Ref returns the selected source reference, empty for manual
func (t *Transport) Ref() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.src == nil {
		return ""
	}
	return t.src.Ref
}

// Play starts or resumes playback, restarting a source that reached its end
// Returns false when there is nothing to play
func (t *Transport) Play() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.src == nil {
		return false
	}
	if t.ended.Load() {
		if err := t.rewind(); err != nil {
			log.Printf("audio: restart %s: %v", t.src.Ref, err)
			return false
		}
	}
	t.setPaused(false)
	t.state = StatePlaying
	return true
}

// Pause holds the current position
func (t *Transport) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.src == nil || t.state != StatePlaying {
		return
	}
	t.setPaused(true)
	t.state = StatePaused
}

// Stop pauses and rewinds to the start
func (t *Transport) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.src == nil {
		return
	}
	t.setPaused(true)
	t.state = StateStopped
	if err := t.rewind(); err != nil {
		log.Printf("audio: rewind %s: %v", t.src.Ref, err)
	}
}

// State returns the transport state, a finished source reads as stopped
func (t *Transport) State() PlayState {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ended.Load() {
		return StateStopped
	}
	return t.state
}

// Active reports whether energy sampling should read the analyser
func (t *Transport) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.src != nil && t.state == StatePlaying && !t.ended.Load()
}

// Pump pulls d worth of audio through the tap when no speaker drives the stream
// Returns the number of samples produced
func (t *Transport) Pump(d time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.output || t.ctrl == nil || t.state != StatePlaying {
		return 0
	}

	want := t.rate.N(d)
	total := 0
	for total < want && !t.ended.Load() {
		n, ok := t.ctrl.Stream(t.scratch[:min(pumpChunk, want-total)])
		total += n
		if !ok {
			break
		}
	}
	return total
}

// attach wires src through the tap and an end callback; caller holds mu
func (t *Transport) attach(src *Source) {
	t.src = src
	t.ended.Store(false)

	var s beep.Streamer = src.Streamer
	if t.analyser != nil {
		s = t.analyser.Tap(s)
	}
	ended := &t.ended
	t.ctrl = &beep.Ctrl{
		Streamer: beep.Seq(s, beep.Callback(func() { ended.Store(true) })),
		Paused:   true,
	}
	if t.output {
		speaker.Clear()
		speaker.Play(t.ctrl)
	}
}

// detach drops the current source; caller holds mu
func (t *Transport) detach() {
	if t.output {
		speaker.Clear()
	}
	if t.src != nil {
		if err := t.src.Close(); err != nil {
			log.Printf("audio: close %s: %v", t.src.Ref, err)
		}
	}
	t.src = nil
	t.ctrl = nil
	t.ended.Store(false)
}

// rewind reopens the current reference at position zero, keeping the pause state
func (t *Transport) rewind() error {
	if t.src == nil {
		return ErrNoSource
	}
	ref := t.src.Ref
	paused := true
	if t.ctrl != nil {
		paused = t.ctrl.Paused
	}

	t.detach()
	src, err := Open(ref, t.rate)
	if err != nil {
		if errors.Is(err, ErrNoSource) {
			return nil
		}
		return err
	}
	t.attach(src)
	t.setPaused(paused)
	return nil
}

// setPaused toggles the control under the speaker lock when output is live
func (t *Transport) setPaused(p bool) {
	if t.ctrl == nil {
		return
	}
	if t.output {
		speaker.Lock()
		t.ctrl.Paused = p
		speaker.Unlock()
		return
	}
	t.ctrl.Paused = p
}
