package canvas

import (
	"image/color"

	"viewer2d/transform"
)

type lineCall struct {
	x1, y1, x2, y2 float64
	clr            color.Color
	width          float64
}

type polyCall struct {
	pts   []transform.Point
	clr   color.Color
	width float64
}

type ovalCall struct {
	cx, cy, rx, ry float64
	clr            color.Color
}

// recorder is a Surface that remembers every call.
type recorder struct {
	lines   []lineCall
	fills   []polyCall
	strokes []polyCall
	ovals   []ovalCall
}

func (r *recorder) DrawLine(x1, y1, x2, y2 float64, clr color.Color, width float64) {
	r.lines = append(r.lines, lineCall{x1, y1, x2, y2, clr, width})
}

func (r *recorder) FillPolygon(pts []transform.Point, clr color.Color) {
	r.fills = append(r.fills, polyCall{pts: append([]transform.Point(nil), pts...), clr: clr})
}

func (r *recorder) StrokePolygon(pts []transform.Point, clr color.Color, width float64) {
	r.strokes = append(r.strokes, polyCall{pts: append([]transform.Point(nil), pts...), clr: clr, width: width})
}

func (r *recorder) FillOval(cx, cy, rx, ry float64, clr color.Color) {
	r.ovals = append(r.ovals, ovalCall{cx, cy, rx, ry, clr})
}

// square is a minimal Shape.
type square struct {
	pose    transform.Matrix
	outline *Stroke
}

func (s square) Points() []transform.Point {
	return []transform.Point{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
}

func (s square) Fill() color.Color { return color.RGBA{200, 10, 10, 255} }
func (s square) Outline() *Stroke { return s.outline }
func (s square) Pose() transform.Matrix { return s.pose }
