package state

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
)

// CoercionError lists fields that fell back to the template during restore
// The restored state is still complete and valid
type CoercionError struct {
	Fields []string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("fields reset to defaults: %s", strings.Join(e.Fields, ", "))
}

func (e *CoercionError) Unwrap() error {
	return ErrInvalidValue
}

// Serialize encodes every configuration field as URL-safe base64 JSON
// The live energy signal is excluded
func Serialize(s *State) string {
	data, err := json.Marshal(s)
	if err != nil {
		// State holds only strings, numbers and a bool map; Marshal cannot fail
		panic(fmt.Sprintf("state: marshal: %v", err))
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

// Deserialize restores a token against the default template
func Deserialize(text string) (*State, error) {
	return DeserializeOver(Default(), text)
}

// DeserializeOver restores a token against template, which is not modified
// Undecodable payloads return a copy of template with the decode error. Fields with the
// wrong type or an invalid value keep the template value and are listed in a *CoercionError.
// Unknown keys are ignored
func DeserializeOver(template *State, text string) (*State, error) {
	out := template.Clone()

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(strings.TrimSpace(text), "="))
	if err != nil {
		return out, fmt.Errorf("decode token: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return out, fmt.Errorf("parse token: %w", err)
	}

	var rejected []string
	for key, value := range fields {
		if key == keyReactivity {
			rejected = append(rejected, mergeReactivity(out.Reactivity, value)...)
			continue
		}
		fv, ok := fieldByKey(out, key)
		if !ok {
			continue
		}
		if !assign(key, fv, value) {
			rejected = append(rejected, key)
		}
	}

	if len(rejected) > 0 {
		sort.Strings(rejected)
		return out, &CoercionError{Fields: rejected}
	}
	return out, nil
}

// Restore is DeserializeOver that logs failures as warnings and never fails
// An empty token returns a copy of template silently
func Restore(template *State, text string) *State {
	if strings.TrimSpace(text) == "" {
		return template.Clone()
	}
	s, err := DeserializeOver(template, text)
	if err != nil {
		log.Printf("WARNING: state restore: %v", err)
	}
	return s
}
