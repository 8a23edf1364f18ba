package state

import (
	"encoding/json"
	"os"
)

// LoadEnv returns the default state with environment overrides applied
// Invalid values are ignored
func LoadEnv() *State {
	s := Default()

	if seed := os.Getenv("BLOBSCAPE_SEED"); seed != "" {
		_ = s.Set("seed", seed)
	}

	if style := os.Getenv("BLOBSCAPE_BG_STYLE"); style != "" {
		_ = s.Set("bgStyle", style)
	}

	if sens := os.Getenv("BLOBSCAPE_SENSITIVITY"); sens != "" {
		_ = s.Set("sensitivity", sens)
	}

	// Channel toggles from JSON, e.g. {"blur":true,"scale":false}
	if channels := os.Getenv("BLOBSCAPE_REACTIVITY"); channels != "" {
		var m map[string]bool
		if err := json.Unmarshal([]byte(channels), &m); err == nil {
			for name, on := range m {
				_ = s.SetChannel(name, on)
			}
		}
	}

	if amount := os.Getenv("BLOBSCAPE_REACTIVITY_AMOUNT"); amount != "" {
		_ = s.Set("reactivityAmount", amount)
	}

	if src := os.Getenv("BLOBSCAPE_AUDIO_SOURCE"); src != "" {
		_ = s.Set("audioSource", src)
	}

	return s
}
