// Package engine runs the per-frame pipeline: commands, audio energy, reactivity,
// background, glow and blob, in that order, on a single goroutine
package engine

import (
	"image"
	"log"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/lixenwraith/blobscape/audio"
	"github.com/lixenwraith/blobscape/blob"
	"github.com/lixenwraith/blobscape/field"
	"github.com/lixenwraith/blobscape/parameter"
	"github.com/lixenwraith/blobscape/reactivity"
	"github.com/lixenwraith/blobscape/render"
	"github.com/lixenwraith/blobscape/state"
	"github.com/lixenwraith/blobscape/status"
)

// Options configures the collaborators of an Engine
type Options struct {
	Audio    *audio.Config    // nil uses audio.DefaultConfig
	Sink     state.Sink       // nil disables persistence
	Registry *status.Registry // nil creates a private registry
	Width    int
	Height   int
}

// Engine owns the configuration state and every per-frame component
// Frame and the accessors must be called from one goroutine; Submit is safe from any
type Engine struct {
	st       *state.State
	commands chan Command
	dropped  atomic.Int64

	points     field.Store
	compositor *render.Compositor
	blobs      *render.BlobRenderer
	animator   *blob.Animator
	plan       blob.Planner

	analyser  *audio.Analyser
	extractor *audio.Extractor
	transport *audio.Transport
	persister *state.Persister

	spring     harmonica.Spring
	posX, velX float64
	posY, velY float64
	posSet     bool

	out     reactivity.Outputs
	palette []render.RGB
	outline []render.Point

	frame *image.RGBA
	start time.Time
	last  time.Time

	reg   *status.Registry
	stats metrics
}

// metrics caches registry cells written every frame
type metrics struct {
	frames      *atomic.Int64
	frameMs     *status.AtomicFloat
	energy      *status.AtomicFloat
	raw         *status.AtomicFloat
	playState   *status.AtomicString
	source      *status.AtomicString
	style       *status.AtomicString
	seed        *atomic.Int64
	points      *atomic.Int64
	generations *atomic.Int64
	phase       *status.AtomicString
	transitions *atomic.Int64
	writes      *atomic.Int64
	errors      *atomic.Int64
	dropped     *atomic.Int64
}

func newMetrics(r *status.Registry) metrics {
	return metrics{
		frames:      r.Ints.Get(status.KeyFrames),
		frameMs:     r.Floats.Get(status.KeyFrameMs),
		energy:      r.Floats.Get(status.KeyEnergy),
		raw:         r.Floats.Get(status.KeyRawEnergy),
		playState:   r.Strings.Get(status.KeyPlayState),
		source:      r.Strings.Get(status.KeySource),
		style:       r.Strings.Get(status.KeyStyle),
		seed:        r.Ints.Get(status.KeySeed),
		points:      r.Ints.Get(status.KeyPoints),
		generations: r.Ints.Get(status.KeyGenerations),
		phase:       r.Strings.Get(status.KeyBlobPhase),
		transitions: r.Ints.Get(status.KeyTransitions),
		writes:      r.Ints.Get(status.KeyPersistWrites),
		errors:      r.Ints.Get(status.KeyPersistErrors),
		dropped:     r.Ints.Get(status.KeyDroppedCommands),
	}
}

// New creates an engine that takes ownership of st
func New(st *state.State, opts Options) *Engine {
	if st == nil {
		st = state.Default()
	}
	reg := opts.Registry
	if reg == nil {
		reg = status.NewRegistry()
	}

	analyser := audio.NewAnalyser(st.Smoothing)
	extractor := audio.NewExtractor(st.Sensitivity)
	extractor.Override(st.Energy)

	e := &Engine{
		st:         st,
		commands:   make(chan Command, parameter.CommandQueueSize),
		compositor: render.NewCompositor(),
		blobs:      render.NewBlobRenderer(),
		animator:   blob.NewAnimator(st.Seed),
		analyser:   analyser,
		extractor:  extractor,
		transport:  audio.NewTransport(opts.Audio, analyser),
		spring: harmonica.NewSpring(harmonica.FPS(parameter.PositionSpringFPS),
			parameter.PositionSpringFrequency, parameter.PositionSpringDamping),
		palette: make([]render.RGB, 0, parameter.BgPaletteMax),
		outline: make([]render.Point, 0, parameter.BlobSamples),
		reg:     reg,
		stats:   newMetrics(reg),
	}
	e.plan = e.nextTarget
	st.Energy = extractor.Energy()

	if opts.Sink != nil {
		e.persister = state.NewPersister(parameter.PersistDebounce, opts.Sink)
	}
	if err := e.syncField("audioSource"); err != nil {
		log.Printf("Audio source load failed: %v (continuing with manual energy)", err)
		st.AudioSource = ""
	}

	w, h := opts.Width, opts.Height
	if w == 0 && h == 0 {
		w, h = parameter.DefaultViewportWidth, parameter.DefaultViewportHeight
	}
	e.resize(w, h)
	return e
}

// StartAudio enables speaker output; on failure the engine keeps pulling audio headlessly
func (e *Engine) StartAudio() error {
	return e.transport.StartOutput()
}

// Close flushes a pending persist and releases audio
func (e *Engine) Close() {
	if e.persister != nil {
		e.persister.Flush()
	}
	e.transport.Close()
}

// Submit queues cmd for the next frame, returning false when the queue is full
func (e *Engine) Submit(cmd Command) bool {
	select {
	case e.commands <- cmd:
		return true
	default:
		e.dropped.Add(1)
		return false
	}
}

// Frame runs one iteration at time now and returns false when there is nothing to draw
func (e *Engine) Frame(now time.Time) bool {
	began := time.Now()
	if e.start.IsZero() {
		e.start = now
		e.last = now
	}

	if e.drain(now) && e.persister != nil {
		e.persister.Schedule(e.st)
	}
	e.sampleAudio(now)
	e.last = now

	e.out = reactivity.Distribute(e.st.Energy, reactivity.Config{
		Enabled: e.st.Reactivity,
		Amount:  e.st.ReactivityAmount,
	}, e.base())
	e.animator.Advance(now, e.plan)

	drawn := e.draw(now)
	e.publish(time.Since(began))
	return drawn
}

// drain applies every queued command, reporting whether persisted configuration changed
func (e *Engine) drain(now time.Time) bool {
	changed := false
	for {
		select {
		case cmd := <-e.commands:
			if cmd.apply(e, now) {
				changed = true
			}
		default:
			return changed
		}
	}
}

// sampleAudio pulls headless audio for the elapsed frame time and folds it into energy
func (e *Engine) sampleAudio(now time.Time) {
	if e.transport.Headless() {
		d := now.Sub(e.last)
		if d <= 0 {
			d = parameter.FrameUpdateInterval
		}
		e.transport.Pump(min(d, parameter.MaxPumpInterval))
	}
	if energy, ok := e.extractor.Sample(e.analyser, e.transport.Active()); ok {
		e.st.Energy = energy
	}
}

func (e *Engine) draw(now time.Time) bool {
	if e.frame == nil {
		return false
	}
	st := e.st
	w, h := e.frame.Rect.Dx(), e.frame.Rect.Dy()

	e.palette = e.palette[:0]
	for _, hex := range [...]string{st.BgColor1, st.BgColor2, st.BgColor3, st.BgColor4, st.BgColor5} {
		if hex != "" {
			e.palette = append(e.palette, render.MustHex(hex))
		}
	}
	set := e.points.Ensure(st.Seed, field.Count(st.BgStyle, st.BgComplexity), len(e.palette))

	ms := float64(now.Sub(e.start)) / float64(time.Millisecond)
	if !e.compositor.Render(e.frame, render.BackgroundParams{
		Style:     st.BgStyle,
		Palette:   e.palette,
		Angle:     st.BgAngle,
		Speed:     st.BgSpeed,
		Softness:  st.BgSoftness / 100,
		Edge:      st.BgEdge / 100,
		Flow:      st.BgFlow / 100,
		Grain:     st.BgGrain,
		GrainSeed: st.Seed,
	}, set.Points, ms) {
		return false
	}

	tx, ty := float64(w)*st.XPos/100, float64(h)*st.YPos/100
	if !e.posSet {
		e.posX, e.posY, e.velX, e.velY = tx, ty, 0, 0
		e.posSet = true
	}
	e.posX, e.velX = e.spring.Update(e.posX, e.velX, tx)
	e.posY, e.velY = e.spring.Update(e.posY, e.velY, ty)

	c1, c2, c3 := render.MustHex(st.Color1), render.MustHex(st.Color2), render.MustHex(st.Color3)
	render.RenderGlow(e.frame, render.GlowStyle{
		Inner:   c2,
		Mid:     c1,
		Outer:   c3,
		Opacity: e.out.GlowIntensity,
		Scale:   e.out.GlowScale,
		CenterX: e.posX,
		CenterY: e.posY,
		Radius:  st.Size * parameter.GlowRadiusFactor,
	})

	// Size applies immediately; the morph only carries the outline
	shape := e.animator.Shape()
	shape.Size = st.Size
	e.outline = shape.Outline(e.outline[:0])
	e.blobs.Render(e.frame, e.outline, render.BlobStyle{
		Stops:     e.out.Stops,
		EdgeBlur:  e.out.EdgeBlur,
		BlendMode: st.BlendMode,
		Scale:     e.out.Scale,
		CenterX:   e.posX,
		CenterY:   e.posY,
		Size:      st.Size,
	})
	return true
}

func (e *Engine) publish(elapsed time.Duration) {
	s := &e.stats
	s.frames.Add(1)
	s.frameMs.Set(float64(elapsed) / float64(time.Millisecond))
	s.energy.Set(e.st.Energy)
	s.raw.Set(e.extractor.Raw())
	s.playState.Store(e.transport.State().String())
	s.source.Store(e.st.AudioSource)
	s.style.Store(e.st.BgStyle)
	s.seed.Store(int64(e.st.Seed))
	if set := e.points.Load(); set != nil {
		s.points.Store(int64(len(set.Points)))
	}
	s.generations.Store(e.points.Generations())
	s.phase.Store(e.animator.Phase().String())
	s.transitions.Store(e.animator.Transitions())
	if e.persister != nil {
		s.writes.Store(e.persister.Writes())
		s.errors.Store(e.persister.Errors())
	}
	s.dropped.Store(e.dropped.Load())
}

// base gathers the unmodulated inputs of the reactivity table
func (e *Engine) base() reactivity.Base {
	st := e.st
	return reactivity.Base{
		ExtraPoints:   st.ExtraPoints,
		Randomness:    st.Randomness,
		Duration:      time.Duration(st.Duration * float64(time.Millisecond)),
		EdgeBlur:      st.EdgeBlur,
		GlowIntensity: st.GlowIntensity,
		Opacity:       st.Opacity,
		Colors: [3]render.RGB{
			render.MustHex(st.Color1),
			render.MustHex(st.Color2),
			render.MustHex(st.Color3),
		},
	}
}

// options are the current morph targets after reactivity
func (e *Engine) options() blob.Options {
	return blob.Options{
		ExtraPoints: e.out.ExtraPoints,
		Randomness:  e.out.Randomness,
		Size:        e.st.Size,
	}
}

// nextTarget is the closed-loop planner: every completed morph re-reads reactivity
func (e *Engine) nextTarget() blob.Target {
	return blob.Target{
		Options:  e.options(),
		Duration: e.out.Duration,
		Timing:   e.st.TimingFunction,
	}
}

// syncField pushes a changed field into the component that caches it
// Only a source that fails to open returns an error
func (e *Engine) syncField(key string) error {
	switch key {
	case "seed":
		e.animator.Reseed(e.st.Seed)
	case "sensitivity":
		e.extractor.SetSensitivity(e.st.Sensitivity)
	case "smoothing":
		e.analyser.SetSmoothing(e.st.Smoothing)
	case "audioSource":
		return e.transport.Select(e.st.AudioSource)
	}
	return nil
}

func (e *Engine) resize(w, h int) {
	if w <= 0 || h <= 0 {
		e.frame = nil
		return
	}
	if e.frame == nil || e.frame.Rect.Dx() != w || e.frame.Rect.Dy() != h {
		e.frame = image.NewRGBA(image.Rect(0, 0, w, h))
		e.posSet = false
	}
}

// Image returns the last rendered frame, nil for a zero viewport
func (e *Engine) Image() *image.RGBA {
	return e.frame
}

// State returns a copy of the current configuration
func (e *Engine) State() *state.State {
	return e.st.Clone()
}

// Token returns the share token for the current configuration
func (e *Engine) Token() string {
	return state.Serialize(e.st)
}

// Outputs returns the reactivity values used by the last frame
func (e *Engine) Outputs() reactivity.Outputs {
	return e.out
}

// Spectrum returns the smoothed magnitude spectrum of the selected source
func (e *Engine) Spectrum(dst []float64) []float64 {
	return e.analyser.Spectrum(dst)
}

// PlayState returns the transport state
func (e *Engine) PlayState() audio.PlayState {
	return e.transport.State()
}

// Registry returns the metrics registry the engine publishes to
func (e *Engine) Registry() *status.Registry {
	return e.reg
}
