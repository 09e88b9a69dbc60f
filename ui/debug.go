package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"viewer2d/config"
)

var (
	colorPanel     = color.RGBA{40, 40, 40, 220}
	colorPanelText = color.RGBA{255, 200, 50, 255}
)

// DebugPanel shows the last load error in the bottom-right corner.
type DebugPanel struct {
	Error string
}

func (d *DebugPanel) SetError(err error) {
	if err == nil {
		d.Error = ""
		return
	}
	d.Error = err.Error()
}

func (d *DebugPanel) Clear() {
	d.Error = ""
}

// Draw renders the panel; nothing is drawn while there is no error.
func (d *DebugPanel) Draw(screen *ebiten.Image, face font.Face, drawText TextFunc) {
	if d == nil || d.Error == "" {
		return
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	pw, ph := float32(config.PanelWidth), float32(80)
	x := float32(w) - pw - config.ButtonMargin
	y := float32(h) - ph - config.ButtonMargin
	vector.DrawFilledRect(screen, x, y, pw, ph, colorPanel, false)
	if face != nil && drawText != nil {
		drawText(screen, face, wrap(d.Error, int(pw-16)/7), int(x)+8, int(y)+8, colorPanelText)
	}
}

// wrap breaks s into lines of at most width runes.
func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	var out []rune
	n := 0
	for _, r := range s {
		if r == '\n' {
			n = 0
		} else if n == width {
			out = append(out, '\n')
			n = 0
		}
		if r != '\n' {
			n++
		}
		out = append(out, r)
	}
	return string(out)
}
