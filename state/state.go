// Package state owns the configuration aggregate: defaults, validated setters, environment
// overrides, and the share-token encoding
package state

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/lixenwraith/blobscape/parameter"
)

var (
	// ErrUnknownField is returned by Set for keys that name no configuration field
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidValue is returned by Set when a value fails coercion or validation
	ErrInvalidValue = errors.New("invalid value")
)

// State is every tunable parameter; JSON names are the share-token keys
// Energy is a live signal and never serialized
type State struct {
	// Blob shape
	ExtraPoints int     `json:"extraPoints"`
	Randomness  int     `json:"randomness"`
	Size        float64 `json:"size"`

	// Blob animation
	Duration       float64 `json:"duration"` // milliseconds
	TimingFunction string  `json:"timingFunction"`

	// Blob appearance
	Color1        string  `json:"color1"`
	Color2        string  `json:"color2"`
	Color3        string  `json:"color3"`
	Opacity       float64 `json:"opacity"`
	EdgeBlur      float64 `json:"edgeBlur"`
	GlowIntensity float64 `json:"glowIntensity"`
	BlendMode     string  `json:"blendMode"`

	// Blob position, percent with 50 centred
	XPos float64 `json:"xPos"`
	YPos float64 `json:"yPos"`

	// Audio
	Energy      float64 `json:"-"`
	Sensitivity float64 `json:"sensitivity"`
	Smoothing   float64 `json:"smoothing"`
	AudioSource string  `json:"audioSource"`

	// Reactivity
	Reactivity       map[string]bool `json:"reactivity"`
	ReactivityAmount float64         `json:"reactivityAmount"`

	// Background
	Seed         uint32  `json:"seed"`
	BgStyle      string  `json:"bgStyle"`
	BgColor1     string  `json:"bgColor1"`
	BgColor2     string  `json:"bgColor2"`
	BgColor3     string  `json:"bgColor3"`
	BgColor4     string  `json:"bgColor4"` // optional
	BgColor5     string  `json:"bgColor5"` // optional
	BgAngle      float64 `json:"bgAngle"`
	BgSpeed      float64 `json:"bgSpeed"`
	BgComplexity int     `json:"bgComplexity"`
	BgGrain      float64 `json:"bgGrain"`
	BgSoftness   float64 `json:"bgSoftness"`
	BgEdge       float64 `json:"bgEdge"`
	BgFlow       float64 `json:"bgFlow"`
}

// Default returns a fresh state populated from parameter defaults
func Default() *State {
	s := &State{
		ExtraPoints:    parameter.DefaultExtraPoints,
		Randomness:     parameter.DefaultRandomness,
		Size:           parameter.DefaultBlobSize,
		Duration:       parameter.DefaultDurationMs,
		TimingFunction: parameter.DefaultTimingFunction,
		Color1:         parameter.DefaultColor1,
		Color2:         parameter.DefaultColor2,
		Color3:         parameter.DefaultColor3,
		Opacity:        parameter.DefaultOpacity,
		EdgeBlur:       parameter.DefaultEdgeBlur,
		GlowIntensity:  parameter.DefaultGlowIntensity,
		BlendMode:      parameter.DefaultBlendMode,
		XPos:           parameter.DefaultXPos,
		YPos:           parameter.DefaultYPos,

		Energy:      parameter.DefaultEnergy,
		Sensitivity: parameter.DefaultSensitivity,
		Smoothing:   parameter.DefaultSmoothing,

		Reactivity:       make(map[string]bool, len(parameter.Channels)),
		ReactivityAmount: parameter.DefaultReactivityAmount,

		Seed:         parameter.DefaultSeed,
		BgStyle:      parameter.DefaultBgStyle,
		BgColor1:     parameter.DefaultBgColor1,
		BgColor2:     parameter.DefaultBgColor2,
		BgColor3:     parameter.DefaultBgColor3,
		BgAngle:      parameter.DefaultBgAngle,
		BgSpeed:      parameter.DefaultBgSpeed,
		BgComplexity: parameter.DefaultBgDensity,
		BgGrain:      parameter.DefaultBgGrain,
		BgSoftness:   parameter.DefaultBgSoftness,
		BgEdge:       parameter.DefaultBgEdge,
		BgFlow:       parameter.DefaultBgFlow,
	}
	for _, ch := range parameter.Channels {
		s.Reactivity[ch] = parameter.DefaultReactivity[ch]
	}
	return s
}

// Clone returns a deep copy
func (s *State) Clone() *State {
	c := *s
	c.Reactivity = make(map[string]bool, len(s.Reactivity))
	for k, v := range s.Reactivity {
		c.Reactivity[k] = v
	}
	return &c
}

// Set assigns one field by its JSON key
// The value is coerced as in token restore; invalid values leave the field unchanged
func (s *State) Set(key string, value any) error {
	fv, ok := fieldByKey(s, key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	if key == keyReactivity {
		return s.setReactivity(value)
	}
	if !assign(key, fv, value) {
		return fmt.Errorf("%w: %s=%v", ErrInvalidValue, key, value)
	}
	return nil
}

// Get returns a field's value by JSON key
func (s *State) Get(key string) (any, bool) {
	fv, ok := fieldByKey(s, key)
	if !ok {
		return nil, false
	}
	return fv.Interface(), true
}

func (s *State) setReactivity(value any) error {
	m, ok := value.(map[string]any)
	if !ok {
		if mb, okb := value.(map[string]bool); okb {
			m = make(map[string]any, len(mb))
			for k, v := range mb {
				m[k] = v
			}
		} else {
			return fmt.Errorf("%w: reactivity=%v", ErrInvalidValue, value)
		}
	}
	// All entries are validated before any is applied
	staged := make(map[string]bool, len(m))
	for k, v := range m {
		if !isChannel(k) {
			return fmt.Errorf("%w: channel %q", ErrUnknownField, k)
		}
		b, ok := coerceBool(v)
		if !ok {
			return fmt.Errorf("%w: channel %s=%v", ErrInvalidValue, k, v)
		}
		staged[k] = b
	}
	for k, b := range staged {
		s.Reactivity[k] = b
	}
	return nil
}

// SetChannel enables or disables one reactivity channel
func (s *State) SetChannel(name string, value any) error {
	if !isChannel(name) {
		return fmt.Errorf("%w: channel %q", ErrUnknownField, name)
	}
	b, ok := coerceBool(value)
	if !ok {
		return fmt.Errorf("%w: channel %s=%v", ErrInvalidValue, name, value)
	}
	s.Reactivity[name] = b
	return nil
}

// ToggleChannel flips one reactivity channel and returns its new state
func (s *State) ToggleChannel(name string) (bool, error) {
	if !isChannel(name) {
		return false, fmt.Errorf("%w: channel %q", ErrUnknownField, name)
	}
	s.Reactivity[name] = !s.Reactivity[name]
	return s.Reactivity[name], nil
}

// Reseed advances the seed to the next variant
func (s *State) Reseed() uint32 {
	s.Seed++
	return s.Seed
}

// Keys returns every serializable field key in declaration order
func Keys() []string {
	t := reflect.TypeOf(State{})
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if k := jsonKey(t.Field(i)); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func isChannel(name string) bool {
	for _, ch := range parameter.Channels {
		if ch == name {
			return true
		}
	}
	return false
}
