package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blobscape/audio"
	"github.com/lixenwraith/blobscape/engine"
	"github.com/lixenwraith/blobscape/parameter"
	"github.com/lixenwraith/blobscape/state"
)

// Action is a viewer-level effect of a key that is not an engine command
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionToggleStatus
	ActionShowToken
)

// channelKeys toggles reactivity channels
var channelKeys = map[rune]string{
	'm': parameter.ChannelMorphSpeed,
	'z': parameter.ChannelScale,
	'g': parameter.ChannelGlow,
	'b': parameter.ChannelBlur,
	'l': parameter.ChannelBrightness,
}

// presetKeys set manual energy
var presetKeys = map[rune]float64{
	'1': parameter.EnergyIdle,
	'2': parameter.EnergySpeaking,
	'3': parameter.EnergyLoud,
}

// MapKey translates a key press into at most one engine command or viewer action
// st and play are read to compute relative edits and must be current
func MapKey(ev *tcell.EventKey, st *state.State, play audio.PlayState) (engine.Command, Action) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return nil, ActionQuit
	case tcell.KeyLeft:
		return engine.SetField{Key: "xPos", Value: st.XPos - parameter.KeyPositionStep}, ActionNone
	case tcell.KeyRight:
		return engine.SetField{Key: "xPos", Value: st.XPos + parameter.KeyPositionStep}, ActionNone
	case tcell.KeyUp:
		return engine.SetField{Key: "yPos", Value: st.YPos - parameter.KeyPositionStep}, ActionNone
	case tcell.KeyDown:
		return engine.SetField{Key: "yPos", Value: st.YPos + parameter.KeyPositionStep}, ActionNone
	case tcell.KeyRune:
	default:
		return nil, ActionNone
	}

	r := ev.Rune()
	if ch, ok := channelKeys[r]; ok {
		return engine.ToggleChannel{Name: ch}, ActionNone
	}
	if v, ok := presetKeys[r]; ok {
		return engine.SetEnergy{Value: v}, ActionNone
	}

	switch r {
	case 'q':
		return nil, ActionQuit
	case 'h':
		return nil, ActionToggleStatus
	case 'y':
		return nil, ActionShowToken
	case 'r':
		return engine.Randomize{}, ActionNone
	case 'n':
		return engine.Reseed{}, ActionNone
	case 's':
		return engine.SetField{Key: "bgStyle", Value: next(parameter.Styles[:], st.BgStyle)}, ActionNone
	case 'e':
		return engine.SetField{Key: "blendMode", Value: next(parameter.BlendModes[:], st.BlendMode)}, ActionNone
	case 't':
		return engine.SetField{Key: "timingFunction", Value: next(parameter.TimingFunctions[:], st.TimingFunction)}, ActionNone
	case '+', '=':
		return engine.SetField{Key: "reactivityAmount", Value: st.ReactivityAmount + parameter.KeyAmountStep}, ActionNone
	case '-':
		return engine.SetField{Key: "reactivityAmount", Value: st.ReactivityAmount - parameter.KeyAmountStep}, ActionNone
	case ']':
		return engine.SetField{Key: "sensitivity", Value: st.Sensitivity + parameter.KeySensitivityStep}, ActionNone
	case '[':
		return engine.SetField{Key: "sensitivity", Value: st.Sensitivity - parameter.KeySensitivityStep}, ActionNone
	case '.':
		return engine.SetField{Key: "bgComplexity", Value: st.BgComplexity + parameter.KeyDensityStep}, ActionNone
	case ',':
		return engine.SetField{Key: "bgComplexity", Value: st.BgComplexity - parameter.KeyDensityStep}, ActionNone
	case ' ':
		if play == audio.StatePlaying {
			return engine.Pause{}, ActionNone
		}
		return engine.Play{}, ActionNone
	case 'x':
		return engine.Stop{}, ActionNone
	}
	return nil, ActionNone
}

// next returns the entry after cur, wrapping; unknown values restart at the first entry
func next(list []string, cur string) string {
	for i, v := range list {
		if v == cur {
			return list[(i+1)%len(list)]
		}
	}
	return list[0]
}
