package audio

import (
	"os"
	"strconv"

	"github.com/lixenwraith/blobscape/parameter"
)

// Config holds audio device settings
type Config struct {
	// Output plays the selected source through the speaker; off runs headless
	Output     bool
	SampleRate int
}

// DefaultConfig returns device settings with speaker output enabled
func DefaultConfig() *Config {
	return &Config{
		Output:     true,
		SampleRate: parameter.AudioSampleRate,
	}
}

// LoadConfig loads device settings from environment variables
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if output := os.Getenv("BLOBSCAPE_AUDIO_OUTPUT"); output != "" {
		if val, err := strconv.ParseBool(output); err == nil {
			cfg.Output = val
		}
	}

	if sampleRate := os.Getenv("BLOBSCAPE_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}
