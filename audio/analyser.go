package audio

import (
	"math/cmplx"
	"sync"

	"github.com/gopxl/beep"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"

	"github.com/lixenwraith/blobscape/parameter"
	"github.com/lixenwraith/blobscape/vmath"
)

// Analyser keeps the most recent fftSize mono samples of a tapped stream
// The audio goroutine writes under the lock, frame readers only try it and never wait
type Analyser struct {
	mu     sync.Mutex
	ring   [parameter.AnalyserFFTSize]float64
	pos    int // next write index
	filled int

	smoothing float64
	frame     [parameter.AnalyserFFTSize]float64
	window    []float64
	fft       *fourier.FFT
	coeff     []complex128
	spectrum  []float64
}

// NewAnalyser creates an analyser with the given spectrum smoothing constant in [0,1)
func NewAnalyser(smoothing float64) *Analyser {
	n := parameter.AnalyserFFTSize
	return &Analyser{
		smoothing: vmath.Clamp(smoothing, 0, parameter.SmoothingMax),
		window:    window.Blackman(onesN(n)),
		fft:       fourier.NewFFT(n),
		spectrum:  make([]float64, parameter.AnalyserBinCount),
	}
}

func onesN(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = 1
	}
	return s
}

// SetSmoothing updates the spectrum averaging constant
func (a *Analyser) SetSmoothing(v float64) {
	a.mu.Lock()
	a.smoothing = vmath.Clamp(v, 0, parameter.SmoothingMax)
	a.mu.Unlock()
}

// Reset clears the captured history
func (a *Analyser) Reset() {
	a.mu.Lock()
	clear(a.ring[:])
	clear(a.spectrum)
	a.pos, a.filled = 0, 0
	a.mu.Unlock()
}

// Write appends stereo samples as their mono mix
func (a *Analyser) Write(samples [][2]float64) {
	a.mu.Lock()
	for _, s := range samples {
		a.ring[a.pos] = (s[0] + s[1]) / 2
		a.pos = (a.pos + 1) % len(a.ring)
	}
	a.filled = min(a.filled+len(samples), len(a.ring))
	a.mu.Unlock()
}

// Tap returns a streamer that forwards s and records everything it yields
func (a *Analyser) Tap(s beep.Streamer) beep.Streamer {
	return &tap{s: s, a: a}
}

type tap struct {
	s beep.Streamer
	a *Analyser
}

func (t *tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.s.Stream(samples)
	if n > 0 {
		t.a.Write(samples[:n])
	}
	return n, ok
}

func (t *tap) Err() error { return t.s.Err() }

// copyLatest writes the newest len(dst) samples oldest-first; caller holds the lock
func (a *Analyser) copyLatest(dst []float64) {
	n := len(dst)
	start := (a.pos - n + len(a.ring)) % len(a.ring)
	for i := range dst {
		dst[i] = a.ring[(start+i)%len(a.ring)]
	}
}

// ByteTimeDomain fills dst with the newest samples quantised to bytes centred on 128
// Returns false without touching dst when the writer holds the lock
func (a *Analyser) ByteTimeDomain(dst []byte) bool {
	if !a.mu.TryLock() {
		return false
	}
	defer a.mu.Unlock()

	n := min(len(dst), len(a.ring))
	latest := a.frame[:n]
	a.copyLatest(latest)
	mid := float64(parameter.AnalyserMidpoint)
	for i, v := range latest {
		dst[i] = uint8(vmath.Clamp(mid*(1+v), 0, 255))
	}
	return true
}

// Spectrum updates and copies the smoothed magnitude spectrum into dst
// Each call folds the current frame into the running average: X = τ·X + (1-τ)·|FFT|/N
func (a *Analyser) Spectrum(dst []float64) []float64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := len(a.ring)
	a.copyLatest(a.frame[:])
	for i := range a.frame {
		a.frame[i] *= a.window[i]
	}
	a.coeff = a.fft.Coefficients(a.coeff, a.frame[:])

	tau := a.smoothing
	for k := range a.spectrum {
		mag := cmplx.Abs(a.coeff[k]) / float64(n)
		a.spectrum[k] = tau*a.spectrum[k] + (1-tau)*mag
	}
	return append(dst[:0], a.spectrum...)
}

// Filled reports how many samples have been captured, saturating at fftSize
func (a *Analyser) Filled() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filled
}
