package canvas

import "viewer2d/transform"

// Viewport is the device-pixel area the camera is rendered into.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// NewViewport returns a viewport at (x, y), clamping the size to at least 1x1.
func NewViewport(x, y, width, height int) *Viewport {
	v := &Viewport{X: x, Y: y}
	v.Resize(width, height)
	return v
}

// Resize stores the new size. Non-positive sizes are clamped to 1 so the
// screen matrix stays invertible.
func (v *Viewport) Resize(width, height int) {
	v.Width = max(1, width)
	v.Height = max(1, height)
}

// Aspect returns height / width.
func (v *Viewport) Aspect() float64 {
	return float64(v.Height) / float64(v.Width)
}

// Center returns the pixel center of the viewport.
func (v *Viewport) Center() transform.Point {
	return transform.Point{
		X: float64(v.X) + float64(v.Width)/2,
		Y: float64(v.Y) + float64(v.Height)/2,
	}
}

// ScreenMatrix maps normalized device space onto pixels. Normalized +Y is up,
// pixel rows grow downward.
func (v *Viewport) ScreenMatrix() transform.Matrix {
	hw := float64(v.Width) / 2
	hh := float64(v.Height) / 2
	return transform.Compose(
		transform.Translate(float64(v.X)+hw, float64(v.Y)+hh),
		transform.Scale(hw, -hh),
	)
}
