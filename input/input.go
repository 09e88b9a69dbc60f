// Package input turns raw pointer events into camera motion.
package input

import (
	"math"

	"viewer2d/canvas"
	"viewer2d/transform"
)

// Button identifies the pointer button of a press, numbered the way hosts
// report them: 1 is the primary button, 2 the middle one.
type Button int

const (
	ButtonNone Button = iota
	// ButtonPrimary pans the camera.
	ButtonPrimary
	// ButtonSecondary rotates the camera. It is host button 2, the middle
	// button of a three-button mouse.
	ButtonSecondary
	ButtonOther
)

// State is the gesture in progress.
type State int

const (
	Idle State = iota
	Panning
	Rotating
)

func (s State) String() string {
	switch s {
	case Panning:
		return "panning"
	case Rotating:
		return "rotating"
	default:
		return "idle"
	}
}

// Camera is the part of the camera the controller drives.
type Camera interface {
	Rectangle() canvas.Rect
	ZoomFactor() float64
	AddTranslation(dx, dy float64)
	AddRotation(dtheta float64)
	AddZoom(dz float64)
}

// Host defines the callbacks the controller needs from the viewer.
type Host interface {
	ViewportSize() (width, height int)
	RequestRepaint()
}

// Gates enable or disable each kind of camera motion. They are checked when
// a gesture starts; changing them mid-drag does not stop that drag.
type Gates struct {
	Moveable  bool
	Spinnable bool
	Zoomable  bool
}

// Controller is the pointer state machine. It holds one gesture at a time.
type Controller struct {
	camera Camera
	host   Host
	Gates  Gates

	state   State
	button  Button
	anchorX int
	anchorY int

	// OnStateChange, if set, is called after every transition.
	OnStateChange func(from, to State)
}

// NewController returns an idle controller with every gate open.
func NewController(cam Camera, h Host) *Controller {
	return &Controller{
		camera: cam,
		host:   h,
		Gates:  Gates{Moveable: true, Spinnable: true, Zoomable: true},
	}
}

// SetCamera swaps the driven camera, dropping any gesture in progress.
func (c *Controller) SetCamera(cam Camera) {
	c.camera = cam
	c.reset()
}

// State returns the current gesture.
func (c *Controller) State() State {
	return c.state
}

// Button returns the button that started the current gesture.
func (c *Controller) Button() Button {
	return c.button
}

// Anchor returns the last pointer position seen by the current gesture.
func (c *Controller) Anchor() (int, int) {
	return c.anchorX, c.anchorY
}

// OnPointerDown starts a pan or a rotation, or leaves the controller idle
// when the button has no gesture or its gate is closed.
func (c *Controller) OnPointerDown(x, y int, b Button) {
	switch {
	case b == ButtonPrimary && c.Gates.Moveable:
		c.begin(Panning, b, x, y)
	case b == ButtonSecondary && c.Gates.Spinnable:
		c.begin(Rotating, b, x, y)
	default:
		c.reset()
	}
}

// OnPointerDrag applies the motion since the previous event. Drags with no
// gesture in progress are ignored.
func (c *Controller) OnPointerDrag(x, y int) {
	switch c.state {
	case Panning:
		c.pan(x, y)
	case Rotating:
		c.rotate(x, y)
	default:
		return
	}
	c.anchorX, c.anchorY = x, y
	c.host.RequestRepaint()
}

// OnPointerUp ends the gesture. Leaving a rotation asks for one more repaint
// so the rotation guide disappears.
func (c *Controller) OnPointerUp() {
	if c.state == Rotating {
		c.host.RequestRepaint()
	}
	c.reset()
}

// OnWheel zooms by a tenth of the current zoom per wheel unit. Positive units
// zoom out.
func (c *Controller) OnWheel(units int) {
	if !c.Gates.Zoomable || units == 0 {
		return
	}
	c.camera.AddZoom(-float64(units) * c.camera.ZoomFactor() / 10)
	c.host.RequestRepaint()
}

func (c *Controller) pan(x, y int) {
	w, h := c.host.ViewportSize()
	if w <= 0 || h <= 0 {
		return
	}
	rect := c.camera.Rectangle()
	dx := float64(c.anchorX-x) / float64(w) * rect.Width
	dy := float64(c.anchorY-y) / float64(h) * rect.Height
	// pixel rows grow downward, world y grows upward
	c.camera.AddTranslation(dx, -dy)
}

func (c *Controller) rotate(x, y int) {
	w, h := c.host.ViewportSize()
	center := transform.Point{X: float64(w / 2), Y: float64(h / 2)}
	or := transform.Point{X: float64(c.anchorX), Y: float64(c.anchorY)}.Sub(center)
	op := transform.Point{X: float64(x), Y: float64(y)}.Sub(center)
	if or.Len() == 0 || op.Len() == 0 {
		return
	}
	angle := op.Normalize().Angle() - or.Normalize().Angle()
	if math.IsNaN(angle) {
		return
	}
	c.camera.AddRotation(angle)
}

func (c *Controller) begin(s State, b Button, x, y int) {
	c.button = b
	c.anchorX, c.anchorY = x, y
	c.transition(s)
}

func (c *Controller) reset() {
	c.button = ButtonNone
	c.anchorX, c.anchorY = 0, 0
	c.transition(Idle)
}

func (c *Controller) transition(to State) {
	from := c.state
	c.state = to
	if c.OnStateChange != nil && from != to {
		c.OnStateChange(from, to)
	}
}
