package main

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"viewer2d/transform"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// ovalSegments is how many edges approximate a non-circular oval.
const ovalSegments = 32

// screenSurface draws viewer frames onto an ebiten image.
type screenSurface struct {
	dst *ebiten.Image
}

func (s screenSurface) DrawLine(x1, y1, x2, y2 float64, clr color.Color, width float64) {
	vector.StrokeLine(s.dst, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), clr, true)
}

func (s screenSurface) FillPolygon(pts []transform.Point, clr color.Color) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	setVertexColor(vs, clr)
	s.dst.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		FillRule:  ebiten.FillRuleNonZero,
	})
}

func (s screenSurface) StrokePolygon(pts []transform.Point, clr color.Color, width float64) {
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		s.DrawLine(p.X, p.Y, q.X, q.Y, clr, width)
	}
}

func (s screenSurface) FillOval(cx, cy, rx, ry float64, clr color.Color) {
	if rx == ry {
		vector.DrawFilledCircle(s.dst, float32(cx), float32(cy), float32(rx), clr, true)
		return
	}
	pts := make([]transform.Point, ovalSegments)
	for i := range pts {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / ovalSegments)
		pts[i] = transform.Pt(cx+rx*cos, cy+ry*sin)
	}
	s.FillPolygon(pts, clr)
}

func setVertexColor(vs []ebiten.Vertex, clr color.Color) {
	c := color.NRGBAModel.Convert(clr).(color.NRGBA)
	r, g, b, a := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255
	for i := range vs {
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = r, g, b, a
	}
}
