package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/blobscape/parameter"
	"github.com/lixenwraith/blobscape/vmath"
)

var (
	// ErrNoSource is returned for the empty (manual energy) reference
	ErrNoSource = errors.New("no audio source")
	// ErrUnsupportedSource is returned for references no opener understands
	ErrUnsupportedSource = errors.New("unsupported audio source")
)

// Source reference forms
const (
	refSinePrefix = "sine:"
	refNoise      = "noise"
	refNoisePref  = "noise:"
)

// Source is an opened stream ready for the transport
type Source struct {
	Ref      string
	Streamer beep.Streamer
	closer   io.Closer
}

// Close releases any file handle behind the stream
func (s *Source) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

// ValidRef reports whether ref has a recognised form without opening it
func ValidRef(ref string) bool {
	switch {
	case ref == "", ref == refNoise:
		return true
	case strings.HasPrefix(ref, refSinePrefix):
		_, err := parseFreq(strings.TrimPrefix(ref, refSinePrefix))
		return err == nil
	case strings.HasPrefix(ref, refNoisePref):
		_, err := strconv.ParseUint(strings.TrimPrefix(ref, refNoisePref), 10, 32)
		return err == nil
	default:
		return strings.EqualFold(filepath.Ext(ref), ".wav")
	}
}

// Open resolves a reference into a stream at rate
// Supported: "sine:<hz>", "noise", "noise:<seed>", and paths to .wav files
func Open(ref string, rate beep.SampleRate) (*Source, error) {
	switch {
	case ref == "":
		return nil, ErrNoSource

	case strings.HasPrefix(ref, refSinePrefix):
		freq, err := parseFreq(strings.TrimPrefix(ref, refSinePrefix))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrUnsupportedSource, ref, err)
		}
		tone, err := NewSine(freq, parameter.SourceAmplitude, rate)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrUnsupportedSource, ref, err)
		}
		return &Source{Ref: ref, Streamer: tone}, nil

	case ref == refNoise:
		return &Source{Ref: ref, Streamer: NewNoise(0, parameter.SourceAmplitude)}, nil

	case strings.HasPrefix(ref, refNoisePref):
		seed, err := strconv.ParseUint(strings.TrimPrefix(ref, refNoisePref), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrUnsupportedSource, ref, err)
		}
		return &Source{Ref: ref, Streamer: NewNoise(uint32(seed), parameter.SourceAmplitude)}, nil

	case strings.EqualFold(filepath.Ext(ref), ".wav"):
		return openWav(ref, rate)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, ref)
}

func parseFreq(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if !vmath.IsFinite(f) || f < parameter.SourceFreqMin || f > parameter.SourceFreqMax {
		return 0, fmt.Errorf("frequency %v out of range", f)
	}
	return f, nil
}

func openWav(path string, rate beep.SampleRate) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	stream, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	var s beep.Streamer = stream
	if format.SampleRate != rate {
		s = beep.Resample(parameter.ResampleQuality, format.SampleRate, rate, stream)
	}
	return &Source{Ref: path, Streamer: s, closer: stream}, nil
}

// NewSine creates an endless sine tone streamer scaled to amp
func NewSine(freq, amp float64, rate beep.SampleRate) (beep.Streamer, error) {
	tone, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, err
	}
	if amp <= 0 {
		return &effects.Volume{Streamer: tone, Base: 2, Silent: true}, nil
	}
	return &effects.Volume{Streamer: tone, Base: 2, Volume: math.Log2(amp)}, nil
}

// noise is endless uniform white noise from a seeded generator
type noise struct {
	rng *vmath.Rand
	amp float64
}

// NewNoise creates a deterministic white noise streamer
func NewNoise(seed uint32, amp float64) beep.Streamer {
	return &noise{rng: vmath.NewRand(seed), amp: amp}
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := (n.rng.Float64()*2 - 1) * n.amp
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (n *noise) Err() error { return nil }
