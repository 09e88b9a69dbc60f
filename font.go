package main

import (
	"image/color"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// fontPath is an optional TrueType face for the HUD and buttons.
const fontPath = "fonts/Roboto-Regular.ttf"

// LoadUIFont loads fontPath, falling back to basicfont.Face7x13.
func LoadUIFont(logger *log.Logger) font.Face {
	data, err := os.ReadFile(fontPath)
	if err != nil {
		logger.Debug("ui font not found, using basic font", "path", fontPath)
		return basicfont.Face7x13
	}
	f, err := opentype.Parse(data)
	if err != nil {
		logger.Warn("ui font parse error, using basic font", "path", fontPath, "err", err)
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 14, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		logger.Warn("ui font face error, using basic font", "err", err)
		return basicfont.Face7x13
	}
	return face
}

// DrawTextLines draws multiline text with its top-left corner at (x, y).
func DrawTextLines(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color) {
	if face == nil {
		face = basicfont.Face7x13
	}
	ascent, lineHeight := lineMetrics(face)
	// text.Draw takes the baseline
	baseY := y + ascent
	for i, line := range strings.Split(s, "\n") {
		text.Draw(screen, line, face, x, baseY+i*lineHeight, clr)
	}
}

func lineMetrics(face font.Face) (ascent, lineHeight int) {
	m := face.Metrics()
	ascent = m.Ascent.Ceil()
	lineHeight = ascent + m.Descent.Ceil()
	if lineHeight <= 0 {
		return 12, 16
	}
	return ascent, lineHeight
}
