// Package transform provides the 2D points and affine matrices used to chain
// model, world, camera and screen coordinate spaces.
package transform

import "math"

// Point is a position or a vector in some 2D coordinate space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

func (p Point) Scale(k float64) Point {
	return Point{p.X * k, p.Y * k}
}

// Len returns the euclidean norm.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Normalize returns the unit vector in the direction of p, or p itself if it
// has zero length.
func (p Point) Normalize() Point {
	l := p.Len()
	if l == 0 {
		return p
	}
	return Point{p.X / l, p.Y / l}
}

// Rotate rotates the vector counter-clockwise around the origin.
func (p Point) Rotate(radians float64) Point {
	sin, cos := math.Sincos(radians)
	return Point{cos*p.X - sin*p.Y, sin*p.X + cos*p.Y}
}

// Angle returns atan2(y, x).
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Near reports whether p and q are within eps on both axes.
func (p Point) Near(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) < eps && math.Abs(p.Y-q.Y) < eps
}
