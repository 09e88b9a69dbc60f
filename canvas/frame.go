package canvas

import (
	"image/color"
	"math"

	"viewer2d/transform"
)

const (
	// arrowBarbRatio is the barb length as a fraction of the arrow length.
	arrowBarbRatio = 0.10
	arrowBarbAngle = math.Pi / 8
	pointRadius    = 4.0
)

// Frame draws world-space geometry for one repaint. Every primitive in the
// frame goes through the same chained world-to-screen matrix.
type Frame struct {
	surface  Surface
	theme    Theme
	viewport Viewport

	chained  transform.Matrix
	inverse  transform.Matrix
	inverted bool
	invErr   error
}

// BeginFrame composes screen * proj * view for the current camera and viewport.
func BeginFrame(cam *Camera, vp *Viewport, s Surface, theme Theme) *Frame {
	return &Frame{
		surface:  s,
		theme:    theme,
		viewport: *vp,
		chained:  transform.Chain(vp.ScreenMatrix(), cam.ProjMatrix(), cam.ViewMatrix()),
	}
}

// Matrix returns the chained world-to-screen matrix.
func (f *Frame) Matrix() transform.Matrix {
	return f.chained
}

// Theme returns the colors the frame was started with.
func (f *Frame) Theme() Theme {
	return f.theme
}

// Project maps a world point to device pixels.
func (f *Frame) Project(p transform.Point) transform.Point {
	return f.chained.Transform(p)
}

// Unproject maps a device pixel back to the world. The inverse is computed
// once per frame.
func (f *Frame) Unproject(p transform.Point) (transform.Point, error) {
	if !f.inverted {
		f.inverse, f.invErr = f.chained.Invert()
		f.inverted = true
	}
	if f.invErr != nil {
		return transform.Point{}, f.invErr
	}
	return f.inverse.Transform(p), nil
}

// Clear paints the whole viewport with the background color.
func (f *Frame) Clear() {
	x0, y0 := float64(f.viewport.X), float64(f.viewport.Y)
	x1, y1 := x0+float64(f.viewport.Width), y0+float64(f.viewport.Height)
	f.surface.FillPolygon([]transform.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}, f.theme.Background)
}

// DrawLine draws a world-space segment.
func (f *Frame) DrawLine(a, b transform.Point, clr color.Color, width float64) {
	pa, pb := f.Project(a), f.Project(b)
	f.surface.DrawLine(pa.X, pa.Y, pb.X, pb.Y, clr, width)
}

// DrawPoint marks a world point with a small dot of fixed pixel size.
func (f *Frame) DrawPoint(p transform.Point, clr color.Color) {
	pp := f.Project(p)
	f.surface.FillOval(pp.X, pp.Y, pointRadius, pointRadius, clr)
}

// DrawArrow draws a shaft from -> to with two barbs at the tip.
func (f *Frame) DrawArrow(from, to transform.Point, clr color.Color, width float64) {
	f.DrawLine(from, to, clr, width)
	for _, barb := range ArrowBarbs(from, to) {
		f.DrawLine(to, barb, clr, width)
	}
}

// DrawArrowVector draws an arrow from origin along v.
func (f *Frame) DrawArrowVector(origin, v transform.Point, clr color.Color, width float64) {
	f.DrawArrow(origin, origin.Add(v), clr, width)
}

// ArrowBarbs returns the world-space ends of the two barbs of an arrow.
func ArrowBarbs(from, to transform.Point) [2]transform.Point {
	back := from.Sub(to).Scale(arrowBarbRatio)
	return [2]transform.Point{
		back.Rotate(arrowBarbAngle).Add(to),
		back.Rotate(-arrowBarbAngle).Add(to),
	}
}

// DrawBase draws a local frame as two arrows, always with the axis stroke.
func (f *Frame) DrawBase(origin, ox, oy transform.Point) {
	f.DrawArrowVector(origin, ox, f.theme.BaseX, f.theme.AxisWidth)
	f.DrawArrowVector(origin, oy, f.theme.BaseY, f.theme.AxisWidth)
}

// DrawShape fills the shape and strokes its outline when it has one.
func (f *Frame) DrawShape(s Shape) {
	local := s.Points()
	if len(local) == 0 {
		return
	}
	screen := f.projectAll(s.Pose(), local)
	f.surface.FillPolygon(screen, s.Fill())
	if st := s.Outline(); st != nil {
		f.surface.StrokePolygon(screen, f.theme.ShapeOutline, st.Width)
	}
}

// DrawShapeBase draws the local frame of the shape's pose.
func (f *Frame) DrawShapeBase(s Shape) {
	f.DrawBase(s.Pose().Basis())
}

func (f *Frame) projectAll(pose transform.Matrix, pts []transform.Point) []transform.Point {
	m := transform.Compose(f.chained, pose)
	out := make([]transform.Point, len(pts))
	for i, p := range pts {
		out[i] = m.Transform(p)
	}
	return out
}

// Centroid returns the world-space vertex average of the shape.
func Centroid(s Shape) transform.Point {
	pts := s.Points()
	if len(pts) == 0 {
		return s.Pose().Transform(transform.Point{})
	}
	var sum transform.Point
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return s.Pose().Transform(sum.Scale(1 / float64(len(pts))))
}
