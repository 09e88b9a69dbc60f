package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

var (
	colorButton       = color.RGBA{60, 60, 70, 200}
	colorButtonActive = color.RGBA{0, 120, 255, 220}
	colorButtonLabel  = color.White
)

// Button is a clickable square in screen space. Toggle buttons report their
// state through Active and are drawn highlighted while it returns true.
type Button struct {
	Label   string
	X, Y    float32
	W, H    float32
	OnClick func()
	Active  func() bool
}

func (b *Button) IsMouseOver(mx, my int) bool {
	return float32(mx) >= b.X && float32(mx) <= b.X+b.W &&
		float32(my) >= b.Y && float32(my) <= b.Y+b.H
}

func (b *Button) active() bool {
	return b.Active != nil && b.Active()
}

// Draw renders the button with its label centered-ish inside.
func (b *Button) Draw(screen *ebiten.Image, face font.Face, drawText TextFunc) {
	clr := colorButton
	if b.active() {
		clr = colorButtonActive
	}
	vector.DrawFilledRect(screen, b.X, b.Y, b.W, b.H, clr, false)
	if face == nil || drawText == nil {
		return
	}
	drawText(screen, face, b.Label, int(b.X)+10, int(b.Y)+8, colorButtonLabel)
}
