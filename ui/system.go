// Package ui draws the on-screen controls of the viewer: zoom buttons,
// gesture toggles, a reset button and an error panel.
package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"

	"viewer2d/config"
)

// TextFunc draws s with its top-left corner at (x, y).
type TextFunc func(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color)

// Target is what the buttons act on.
type Target interface {
	OnWheelEvent(units int)
	Reset()
	Moveable() bool
	SetMoveable(bool)
	Spinnable() bool
	SetSpinnable(bool)
	Zoomable() bool
	SetZoomable(bool)
}

// UISystem lays out the buttons along the top-right edge and routes clicks.
type UISystem struct {
	buttons  []*Button
	face     font.Face
	drawText TextFunc
	Debug    *DebugPanel
}

func NewUISystem(t Target, face font.Face, drawText TextFunc) *UISystem {
	ui := &UISystem{
		face:     face,
		drawText: drawText,
		Debug:    &DebugPanel{},
	}
	ui.initButtons(t)
	return ui
}

// Buttons are listed right to left.
func (ui *UISystem) initButtons(t Target) {
	ui.buttons = []*Button{
		{Label: "+", OnClick: func() { t.OnWheelEvent(-1) }},
		{Label: "-", OnClick: func() { t.OnWheelEvent(1) }},
		{Label: "0", OnClick: t.Reset},
		{Label: "Z", OnClick: func() { t.SetZoomable(!t.Zoomable()) }, Active: t.Zoomable},
		{Label: "R", OnClick: func() { t.SetSpinnable(!t.Spinnable()) }, Active: t.Spinnable},
		{Label: "M", OnClick: func() { t.SetMoveable(!t.Moveable()) }, Active: t.Moveable},
	}
	for _, b := range ui.buttons {
		b.W, b.H = config.ButtonWidth, config.ButtonHeight
	}
}

// Layout places the buttons for a screen of the given width.
func (ui *UISystem) Layout(width int) {
	x := float32(width) - config.ButtonMargin
	for _, b := range ui.buttons {
		x -= b.W
		b.X, b.Y = x, config.ButtonMargin
		x -= config.ButtonPadding
	}
}

func (ui *UISystem) IsMouseOver(mx, my int) bool {
	for _, b := range ui.buttons {
		if b.IsMouseOver(mx, my) {
			return true
		}
	}
	return false
}

// Click fires the button under (mx, my) and reports whether one was hit.
func (ui *UISystem) Click(mx, my int) bool {
	for _, b := range ui.buttons {
		if b.IsMouseOver(mx, my) {
			if b.OnClick != nil {
				b.OnClick()
			}
			return true
		}
	}
	return false
}

func (ui *UISystem) Draw(screen *ebiten.Image) {
	ui.Layout(screen.Bounds().Dx())
	for _, b := range ui.buttons {
		b.Draw(screen, ui.face, ui.drawText)
	}
	ui.Debug.Draw(screen, ui.face, ui.drawText)
}

// Status formats the camera state shown in the corner of the window.
func Status(x, y, zoom, rotation float64, state fmt.Stringer) string {
	return fmt.Sprintf("center (%.2f, %.2f)\nzoom %.3f  rot %.1f°\n%s",
		x, y, zoom, rotation*180/math.Pi, state)
}
