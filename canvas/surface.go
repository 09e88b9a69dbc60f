package canvas

import (
	"image/color"

	"viewer2d/transform"
)

// Surface receives drawing calls in device pixels.
type Surface interface {
	DrawLine(x1, y1, x2, y2 float64, clr color.Color, width float64)
	FillPolygon(pts []transform.Point, clr color.Color)
	StrokePolygon(pts []transform.Point, clr color.Color, width float64)
	FillOval(cx, cy, rx, ry float64, clr color.Color)
}

// Stroke describes an outline.
type Stroke struct {
	Width float64
}

// Shape is a drawable polygon owned by the world store.
type Shape interface {
	// Points returns the outline in local coordinates.
	Points() []transform.Point
	Fill() color.Color
	// Outline returns nil when the shape is not stroked.
	Outline() *Stroke
	// Pose maps local coordinates to world coordinates.
	Pose() transform.Matrix
}

// Theme holds the colors and stroke widths used for a frame.
type Theme struct {
	Background    color.Color
	Grid          color.Color
	Axis          color.Color
	CanonicalBase color.Color
	ShapeOutline  color.Color
	BaseX         color.Color
	BaseY         color.Color
	RotationGuide color.Color
	Centroid      color.Color

	GridWidth float64
	AxisWidth float64
}

// DefaultTheme returns the classic look: white paper, gray grid, black axes.
func DefaultTheme() Theme {
	return Theme{
		Background:    color.White,
		Grid:          color.RGBA{128, 128, 128, 255},
		Axis:          color.Black,
		CanonicalBase: color.RGBA{255, 0, 0, 255},
		ShapeOutline:  color.Black,
		BaseX:         color.RGBA{0, 255, 0, 255},
		BaseY:         color.RGBA{0, 0, 255, 255},
		RotationGuide: color.RGBA{64, 64, 64, 255},
		Centroid:      color.Black,
		GridWidth:     1,
		AxisWidth:     3,
	}
}

// WithDefaults returns t with nil colors and non-positive widths taken from
// DefaultTheme.
func (t Theme) WithDefaults() Theme {
	d := DefaultTheme()
	for _, f := range []struct{ dst, src *color.Color }{
		{&t.Background, &d.Background},
		{&t.Grid, &d.Grid},
		{&t.Axis, &d.Axis},
		{&t.CanonicalBase, &d.CanonicalBase},
		{&t.ShapeOutline, &d.ShapeOutline},
		{&t.BaseX, &d.BaseX},
		{&t.BaseY, &d.BaseY},
		{&t.RotationGuide, &d.RotationGuide},
		{&t.Centroid, &d.Centroid},
	} {
		if *f.dst == nil {
			*f.dst = *f.src
		}
	}
	if !(t.GridWidth > 0) {
		t.GridWidth = d.GridWidth
	}
	if !(t.AxisWidth > 0) {
		t.AxisWidth = d.AxisWidth
	}
	return t
}
