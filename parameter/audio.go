package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond
)

// Analyser geometry
const (
	// AnalyserFFTSize is the analysis frame length in samples
	AnalyserFFTSize = 512

	// AnalyserBinCount is the time-domain snapshot length (half the FFT size)
	AnalyserBinCount = AnalyserFFTSize / 2

	// AnalyserMidpoint is the unsigned byte value representing silence
	AnalyserMidpoint = 128
)

// Energy smoothing
const (
	// EnergyHistoryWeight and EnergyRawWeight blend the running value with the new RMS sample
	EnergyHistoryWeight = 0.6
	EnergyRawWeight     = 0.4
)

// Manual energy presets
const (
	EnergyIdle     = 0.05
	EnergySpeaking = 0.5
	EnergyLoud     = 0.95
)

// Limits for audio tunables
const (
	SensitivityMin = 0.1
	SensitivityMax = 10.0
)

// Analyser spectrum smoothing
const (
	SmoothingMin = 0.0
	SmoothingMax = 0.99
)

// Synthetic sources
const (
	// SourceAmplitude is the peak level of generated test tones
	SourceAmplitude = 0.5

	// SourceFreqMin and SourceFreqMax bound "sine:<hz>" references
	SourceFreqMin = 20.0
	SourceFreqMax = 20000.0

	// ResampleQuality is the beep resampler quality for file sources
	ResampleQuality = 4
)
