package terminal

import (
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// ParseColorMode resolves a flag value; anything unrecognised detects from the environment
func ParseColorMode(s string) ColorMode {
	switch strings.ToLower(s) {
	case "256":
		return ColorMode256
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor
	default:
		return DetectColorMode()
	}
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	for _, v := range []string{
		"KITTY_WINDOW_ID", "KONSOLE_VERSION", "ITERM_SESSION_ID",
		"ALACRITTY_WINDOW_ID", "ALACRITTY_LOG", "WEZTERM_PANE",
	} {
		if os.Getenv(v) != "" {
			return ColorModeTrueColor
		}
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}

// Color cube levels for palette indices 16-231
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// cubeIndex maps 0-255 to the nearest cube level
var cubeIndex = func() (t [256]uint8) {
	for i := range t {
		best, bestDist := 0, 256
		for j, v := range cubeValues {
			if d := abs(i - int(v)); d < bestDist {
				best, bestDist = j, d
			}
		}
		t[i] = uint8(best)
	}
	return t
}()

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// index256 finds the nearest xterm-256 palette index, preferring the gray ramp for near-neutral colors
func index256(r, g, b uint8) uint8 {
	cr, cg, cb := cubeIndex[r], cubeIndex[g], cubeIndex[b]
	cube := 16 + 36*cr + 6*cg + cb

	gray := (int(r) + int(g) + int(b)) / 3
	if max(abs(int(r)-gray), abs(int(g)-gray), abs(int(b)-gray)) >= 10 {
		return cube
	}
	if gray < 4 {
		return 16
	}
	if gray > 243 {
		return 231
	}
	grayIdx := min(232+(gray-8)/10, 255)
	level := 8 + (grayIdx-232)*10
	grayDist := abs(int(r)-level) + abs(int(g)-level) + abs(int(b)-level)
	cubeDist := abs(int(r)-int(cubeValues[cr])) +
		abs(int(g)-int(cubeValues[cg])) +
		abs(int(b)-int(cubeValues[cb]))
	if grayDist < cubeDist {
		return uint8(grayIdx)
	}
	return cube
}

// cellColor converts a pixel to a tcell color for mode
func cellColor(mode ColorMode, r, g, b uint8) tcell.Color {
	if mode == ColorModeTrueColor {
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return tcell.PaletteColor(int(index256(r, g, b)))
}
