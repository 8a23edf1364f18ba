package state

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/lixenwraith/blobscape/audio"
	"github.com/lixenwraith/blobscape/blob"
	"github.com/lixenwraith/blobscape/parameter"
	"github.com/lixenwraith/blobscape/render"
	"github.com/lixenwraith/blobscape/vmath"
)

const keyReactivity = "reactivity"

// fieldIndex maps JSON keys to struct field indices
var fieldIndex = func() map[string]int {
	t := reflect.TypeOf(State{})
	m := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if k := jsonKey(t.Field(i)); k != "" {
			m[k] = i
		}
	}
	return m
}()

// numericBounds clamps numeric fields on assignment
var numericBounds = map[string][2]float64{
	"extraPoints":      {parameter.ExtraPointsMin, parameter.ExtraPointsMax},
	"randomness":       {parameter.RandomnessMin, parameter.RandomnessMax},
	"size":             {parameter.BlobSizeMin, parameter.BlobSizeMax},
	"duration":         {parameter.DurationMinMs, parameter.DurationMaxMs},
	"opacity":          {0, parameter.OpacityMax},
	"edgeBlur":         {0, parameter.EdgeBlurMax},
	"glowIntensity":    {0, parameter.GlowIntensityMax},
	"xPos":             {0, parameter.PositionMax},
	"yPos":             {0, parameter.PositionMax},
	"sensitivity":      {parameter.SensitivityMin, parameter.SensitivityMax},
	"smoothing":        {parameter.SmoothingMin, parameter.SmoothingMax},
	"reactivityAmount": {parameter.ReactivityAmountMin, parameter.ReactivityAmountMax},
	"bgAngle":          {0, parameter.AngleMax},
	"bgSpeed":          {0, parameter.SpeedMax},
	"bgComplexity":     {parameter.DensityMin, parameter.DensityMax},
	"bgGrain":          {0, parameter.GrainMax},
	"bgSoftness":       {0, parameter.ShapeControlMax},
	"bgEdge":           {0, parameter.ShapeControlMax},
	"bgFlow":           {0, parameter.ShapeControlMax},
}

// stringRules validates string fields; a field without a rule accepts any string
var stringRules = map[string]func(string) bool{
	"timingFunction": blob.IsTimingFunction,
	"color1":         isColor,
	"color2":         isColor,
	"color3":         isColor,
	"blendMode":      render.IsBlendMode,
	"audioSource":    audio.ValidRef,
	"bgStyle":        isStyle,
	"bgColor1":       isColor,
	"bgColor2":       isColor,
	"bgColor3":       isColor,
	"bgColor4":       isOptionalColor,
	"bgColor5":       isOptionalColor,
}

func jsonKey(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func fieldByKey(s *State, key string) (reflect.Value, bool) {
	i, ok := fieldIndex[key]
	if !ok {
		return reflect.Value{}, false
	}
	return reflect.ValueOf(s).Elem().Field(i), true
}

func isColor(v string) bool {
	_, ok := render.ParseHex(v)
	return ok
}

func isOptionalColor(v string) bool {
	return v == "" || isColor(v)
}

func isStyle(v string) bool {
	for _, s := range parameter.Styles {
		if s == v {
			return true
		}
	}
	return false
}

// parseNumber accepts numeric types, json.Number and numeric strings
func parseNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := strconv.ParseFloat(x.String(), 64)
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}

func coerceBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		b, err := strconv.ParseBool(x)
		return b, err == nil
	}
	return false, false
}

// assign coerces value into the field named key, returning false and leaving the field
// unchanged when the value does not fit
func assign(key string, fv reflect.Value, value any) bool {
	switch fv.Kind() {
	case reflect.String:
		str, ok := value.(string)
		if !ok {
			return false
		}
		if rule, ok := stringRules[key]; ok && !rule(str) {
			return false
		}
		fv.SetString(str)

	case reflect.Uint32:
		// Seeds accept any parsed number, non-finite included, and wrap into uint32
		f, ok := parseNumber(value)
		if !ok {
			return false
		}
		fv.SetUint(uint64(vmath.CoerceSeed(f)))

	case reflect.Int:
		f, ok := parseNumber(value)
		if !ok || !vmath.IsFinite(f) {
			return false
		}
		fv.SetInt(int64(clampField(key, math.Trunc(f))))

	case reflect.Float64:
		f, ok := parseNumber(value)
		if !ok || !vmath.IsFinite(f) {
			return false
		}
		fv.SetFloat(clampField(key, f))

	default:
		return false
	}
	return true
}

func clampField(key string, v float64) float64 {
	b, ok := numericBounds[key]
	if !ok {
		return v
	}
	return vmath.Clamp(v, b[0], b[1])
}

// mergeReactivity applies known channels with boolean values, reporting rejected keys
func mergeReactivity(dst map[string]bool, value any) (rejected []string) {
	m, ok := value.(map[string]any)
	if !ok {
		return []string{keyReactivity}
	}
	for k, v := range m {
		if !isChannel(k) {
			continue
		}
		b, ok := v.(bool)
		if !ok {
			rejected = append(rejected, keyReactivity+"."+k)
			continue
		}
		dst[k] = b
	}
	return rejected
}
