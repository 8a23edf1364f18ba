// Package terminal presents rendered frames in a tcell screen and maps keys to engine commands
package terminal

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blobscape/status"
)

// HalfBlock carries two vertically stacked pixels: foreground is the top, background the bottom
const HalfBlock = '▀'

// spectrumBands is the width of the status-line spectrum meter
const spectrumBands = 16

var barRunes = []rune("▁▂▃▄▅▆▇█")

// Viewer draws frames two pixel rows per cell row with an optional status line
type Viewer struct {
	screen tcell.Screen
	mode   ColorMode
	status bool
	token  string
	line   strings.Builder
}

// NewViewer creates a viewer over an initialised screen with the status line shown
func NewViewer(screen tcell.Screen, mode ColorMode) *Viewer {
	return &Viewer{screen: screen, mode: mode, status: true}
}

// PixelSize returns the frame size that fills the screen
func (v *Viewer) PixelSize() (w, h int) {
	cols, rows := v.screen.Size()
	if v.status {
		rows--
	}
	return max(cols, 0), max(rows, 0) * 2
}

// ToggleStatus shows or hides the status line, returning the new pixel size
func (v *Viewer) ToggleStatus() (w, h int) {
	v.status = !v.status
	return v.PixelSize()
}

// ShowToken replaces the metrics on the status line with a share token until cleared
func (v *Viewer) ShowToken(token string) {
	v.token = token
}

// Present draws img and the status line, then flushes the screen
func (v *Viewer) Present(img *image.RGBA, snap map[string]string, spectrum []float64) {
	cols, rows := v.screen.Size()
	if v.status {
		rows--
	}
	v.drawFrame(img, cols, rows)
	if v.status && rows >= 0 {
		v.drawStatus(rows, cols, snap, spectrum)
	}
	v.screen.Show()
}

func (v *Viewer) drawFrame(img *image.RGBA, cols, rows int) {
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			tr, tg, tb := pixel(img, cx, cy*2)
			br, bg, bb := pixel(img, cx, cy*2+1)
			style := tcell.StyleDefault.
				Foreground(cellColor(v.mode, tr, tg, tb)).
				Background(cellColor(v.mode, br, bg, bb))
			v.screen.SetContent(cx, cy, HalfBlock, nil, style)
		}
	}
}

// pixel reads one RGB triple, black outside img
func pixel(img *image.RGBA, x, y int) (r, g, b uint8) {
	if img == nil || !(image.Point{X: x, Y: y}.In(img.Rect)) {
		return 0, 0, 0
	}
	i := img.PixOffset(x, y)
	return img.Pix[i], img.Pix[i+1], img.Pix[i+2]
}

func (v *Viewer) drawStatus(row, cols int, snap map[string]string, spectrum []float64) {
	v.line.Reset()
	if v.token != "" {
		fmt.Fprintf(&v.line, " token %s", v.token)
	} else {
		fmt.Fprintf(&v.line, " %s #%s  energy %s  %s %s  morph %s  %sms ",
			snap[status.KeyStyle], snap[status.KeySeed], snap[status.KeyEnergy],
			snap[status.KeyPlayState], sourceLabel(snap[status.KeySource]),
			snap[status.KeyBlobPhase], snap[status.KeyFrameMs])
		writeSpectrum(&v.line, spectrum)
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	x := 0
	for _, r := range v.line.String() {
		if x >= cols {
			break
		}
		v.screen.SetContent(x, row, r, nil, style)
		x++
	}
	for ; x < cols; x++ {
		v.screen.SetContent(x, row, ' ', nil, style)
	}
}

func sourceLabel(ref string) string {
	if ref == "" {
		return "manual"
	}
	return ref
}

// writeSpectrum appends a bar meter, bins grouped into bands and mapped from -80..-10 dB
func writeSpectrum(sb *strings.Builder, spectrum []float64) {
	if len(spectrum) < spectrumBands {
		return
	}
	per := len(spectrum) / spectrumBands
	for band := 0; band < spectrumBands; band++ {
		peak := 0.0
		for _, m := range spectrum[band*per : (band+1)*per] {
			peak = math.Max(peak, m)
		}
		level := 0.0
		if peak > 0 {
			level = (20*math.Log10(peak) + 80) / 70
		}
		i := int(math.Round(level * float64(len(barRunes)-1)))
		sb.WriteRune(barRunes[min(max(i, 0), len(barRunes)-1)])
	}
}
