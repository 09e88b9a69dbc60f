package canvas

import (
	"math"

	"viewer2d/transform"
)

const (
	// BaseHalfWidth is the half-width of the camera rectangle at zoom 1, in world units.
	BaseHalfWidth = 5.0
	// MinZoom is the floor AddZoom clamps to. Zoom is magnification: the
	// rectangle shrinks as zoom grows.
	MinZoom = 1e-3
	// DefaultAspect matches the default 640x480 viewport.
	DefaultAspect = 0.75
)

// Rect is an axis-aligned box.
type Rect struct {
	X, Y          float64 // bottom-left corner
	Width, Height float64
}

// Corners returns bottom-left, bottom-right, top-right, top-left.
func (r Rect) Corners() [4]transform.Point {
	return [4]transform.Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y + r.Height},
		{X: r.X, Y: r.Y + r.Height},
	}
}

// Contains reports whether other lies inside r, edges included.
func (r Rect) Contains(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.X+other.Width <= r.X+r.Width &&
		other.Y+other.Height <= r.Y+r.Height
}

// Camera controls which part of the world is visible.
type Camera struct {
	Center   transform.Point // world position of the middle of the view
	zoom     float64 // see AddZoom
	Rotation float64 // radians, kept in (-pi, pi]
	Aspect   float64 // rectangle height / width
}

// NewCamera returns a camera at the origin with zoom 1 and no rotation.
func NewCamera() *Camera {
	return &Camera{zoom: 1, Aspect: DefaultAspect}
}

func (c *Camera) halfExtents() (float64, float64) {
	hw := BaseHalfWidth / c.zoom
	return hw, hw * c.Aspect
}

// Rectangle returns the unrotated camera box in the camera frame: centered on
// the camera center, which is the origin of that frame.
func (c *Camera) Rectangle() Rect {
	hw, hh := c.halfExtents()
	return Rect{X: -hw, Y: -hh, Width: 2 * hw, Height: 2 * hh}
}

// ViewMatrix maps world coordinates into the camera frame.
func (c *Camera) ViewMatrix() transform.Matrix {
	return transform.Compose(
		transform.Rotate(-c.Rotation),
		transform.Translate(-c.Center.X, -c.Center.Y),
	)
}

// ProjMatrix maps the camera rectangle onto [-1,1]x[-1,1].
func (c *Camera) ProjMatrix() transform.Matrix {
	hw, hh := c.halfExtents()
	return transform.Scale(1/hw, 1/hh)
}

// ZoomFactor returns the current magnification.
func (c *Camera) ZoomFactor() float64 {
	return c.zoom
}

// AddTranslation moves the center by (dx, dy) world units.
func (c *Camera) AddTranslation(dx, dy float64) {
	c.Center.X += dx
	c.Center.Y += dy
}

// AddRotation turns the camera by dtheta radians.
func (c *Camera) AddRotation(dtheta float64) {
	if math.IsNaN(dtheta) || math.IsInf(dtheta, 0) {
		return
	}
	c.Rotation = WrapAngle(c.Rotation + dtheta)
}

// AddZoom adds dz to the zoom factor, never letting it drop below MinZoom.
func (c *Camera) AddZoom(dz float64) {
	if math.IsNaN(dz) {
		return
	}
	c.zoom += dz
	if c.zoom < MinZoom {
		c.zoom = MinZoom
	}
}

// SetAspect keeps the rectangle proportional to the viewport.
func (c *Camera) SetAspect(heightOverWidth float64) {
	if heightOverWidth > 0 && !math.IsInf(heightOverWidth, 0) {
		c.Aspect = heightOverWidth
	}
}

// WrapAngle maps an angle into (-pi, pi].
func WrapAngle(a float64) float64 {
	a = math.Remainder(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
