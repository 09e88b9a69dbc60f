package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"viewer2d/config"
	"viewer2d/input"
	"viewer2d/viewer"
)

// pointerButtons are polled in this order; the first one pressed owns the gesture.
var pointerButtons = []ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonMiddle,
	ebiten.MouseButtonRight,
}

// mapButton translates ebiten buttons: left pans, middle rotates.
func mapButton(b ebiten.MouseButton) input.Button {
	switch b {
	case ebiten.MouseButtonLeft:
		return input.ButtonPrimary
	case ebiten.MouseButtonMiddle:
		return input.ButtonSecondary
	default:
		return input.ButtonOther
	}
}

// wheelAccumulator turns fractional wheel offsets (trackpads) into whole
// scroll units. ebiten reports scrolling away from the user as positive,
// which is a negative unit.
type wheelAccumulator struct {
	acc float64
}

func (w *wheelAccumulator) Add(dy float64) int {
	w.acc -= dy / config.WheelNotch
	units := int(w.acc)
	w.acc -= float64(units)
	return units
}

// InputSystem polls ebiten every tick and feeds the viewer discrete events.
type InputSystem struct {
	game *Game

	held       ebiten.MouseButton
	holding    bool
	lastMouseX int
	lastMouseY int

	wheel wheelAccumulator
}

func NewInputSystem(g *Game) *InputSystem {
	return &InputSystem{game: g}
}

func (is *InputSystem) Update() {
	mx, my := ebiten.CursorPosition()
	is.handleControlKeys()
	is.handleZoom()
	is.handlePointer(mx, my)
}

func (is *InputSystem) handleControlKeys() {
	g := is.game
	v := g.viewer
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		g.screenshotRequested = true
		g.Invalidate()
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		g.reloader.Force()
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		v.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		v.SetShowCentroids(!v.ShowCentroids())
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.showHUD = !g.showHUD
		g.Invalidate()
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		v.SetUnity(v.Unity() + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		v.SetUnity(v.Unity() - 1)
	}
}

func (is *InputSystem) handleZoom() {
	v := is.game.viewer
	_, dy := ebiten.Wheel()
	if units := is.wheel.Add(dy); units != 0 {
		v.OnWheelEvent(units)
	}

	// Keyboard zooming
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		v.OnWheelEvent(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		v.OnWheelEvent(1)
	}
}

func (is *InputSystem) handlePointer(mx, my int) {
	g := is.game
	for _, b := range pointerButtons {
		if !inpututil.IsMouseButtonJustPressed(b) {
			continue
		}
		if b == ebiten.MouseButtonLeft && g.ui.Click(mx, my) {
			g.Invalidate()
			return
		}
		is.held, is.holding = b, true
		is.lastMouseX, is.lastMouseY = mx, my
		g.viewer.OnPointerEvent(viewer.PointerEvent{Kind: viewer.PointerDown, X: mx, Y: my, Button: mapButton(b)})
		return
	}

	if !is.holding {
		return
	}
	if inpututil.IsMouseButtonJustReleased(is.held) || !ebiten.IsMouseButtonPressed(is.held) {
		is.holding = false
		g.viewer.OnPointerEvent(viewer.PointerEvent{Kind: viewer.PointerUp, X: mx, Y: my, Button: mapButton(is.held)})
		return
	}
	if mx != is.lastMouseX || my != is.lastMouseY {
		is.lastMouseX, is.lastMouseY = mx, my
		g.viewer.OnPointerEvent(viewer.PointerEvent{Kind: viewer.PointerDrag, X: mx, Y: my, Button: mapButton(is.held)})
	}
}
