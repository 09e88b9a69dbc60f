// Package raster is an offscreen canvas.Surface backed by an RGBA image,
// used for headless snapshots.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/vector"

	"viewer2d/transform"
)

// ovalSegments is how many edges approximate an oval.
const ovalSegments = 32

// Canvas draws anti-aliased shapes into an RGBA image.
type Canvas struct {
	img *image.RGBA
	z   *vector.Rasterizer
}

// New returns a transparent canvas of the given size.
func New(width, height int) *Canvas {
	width, height = max(width, 1), max(height, 1)
	return &Canvas{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		z:   vector.NewRasterizer(width, height),
	}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// DrawLine strokes a segment as a quad of the given width. Widths below one
// pixel are drawn one pixel wide.
func (c *Canvas) DrawLine(x1, y1, x2, y2 float64, clr color.Color, width float64) {
	d := transform.Pt(x2-x1, y2-y1)
	if d.Len() == 0 {
		return
	}
	n := transform.Pt(-d.Y, d.X).Normalize().Scale(max(width, 1) / 2)
	c.fill(clr, []transform.Point{
		{X: x1 + n.X, Y: y1 + n.Y},
		{X: x2 + n.X, Y: y2 + n.Y},
		{X: x2 - n.X, Y: y2 - n.Y},
		{X: x1 - n.X, Y: y1 - n.Y},
	})
}

func (c *Canvas) FillPolygon(pts []transform.Point, clr color.Color) {
	c.fill(clr, pts)
}

func (c *Canvas) StrokePolygon(pts []transform.Point, clr color.Color, width float64) {
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		c.DrawLine(p.X, p.Y, q.X, q.Y, clr, width)
	}
}

func (c *Canvas) FillOval(cx, cy, rx, ry float64, clr color.Color) {
	pts := make([]transform.Point, ovalSegments)
	for i := range pts {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / ovalSegments)
		pts[i] = transform.Pt(cx+rx*cos, cy+ry*sin)
	}
	c.fill(clr, pts)
}

func (c *Canvas) fill(clr color.Color, pts []transform.Point) {
	b := c.img.Bounds()
	pts = clip(pts, float64(b.Dx()), float64(b.Dy()))
	if len(pts) < 3 {
		return
	}
	c.z.Reset(b.Dx(), b.Dy())
	c.z.DrawOp = draw.Over
	c.z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		c.z.LineTo(float32(p.X), float32(p.Y))
	}
	c.z.ClosePath()
	c.z.Draw(c.img, b, image.NewUniform(clr), image.Point{})
}

// clip cuts pts down to the rectangle [0,w]x[0,h] (Sutherland-Hodgman).
func clip(pts []transform.Point, w, h float64) []transform.Point {
	edges := []struct {
		inside func(transform.Point) bool
		cross  func(p, q transform.Point) transform.Point
	}{
		{func(p transform.Point) bool { return p.X >= 0 }, func(p, q transform.Point) transform.Point { return atX(p, q, 0) }},
		{func(p transform.Point) bool { return p.X <= w }, func(p, q transform.Point) transform.Point { return atX(p, q, w) }},
		{func(p transform.Point) bool { return p.Y >= 0 }, func(p, q transform.Point) transform.Point { return atY(p, q, 0) }},
		{func(p transform.Point) bool { return p.Y <= h }, func(p, q transform.Point) transform.Point { return atY(p, q, h) }},
	}
	for _, e := range edges {
		if len(pts) == 0 {
			return nil
		}
		in := pts
		pts = make([]transform.Point, 0, len(in)+2)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur) && !e.inside(prev):
				pts = append(pts, e.cross(prev, cur), cur)
			case e.inside(cur):
				pts = append(pts, cur)
			case e.inside(prev):
				pts = append(pts, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	return pts
}

func atX(p, q transform.Point, x float64) transform.Point {
	t := (x - p.X) / (q.X - p.X)
	return transform.Pt(x, p.Y+t*(q.Y-p.Y))
}

func atY(p, q transform.Point, y float64) transform.Point {
	t := (y - p.Y) / (q.Y - p.Y)
	return transform.Pt(p.X+t*(q.X-p.X), y)
}

// EncodePNG writes the image as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// SavePNG writes the image to a PNG file at path.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if err := c.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("save snapshot: %w", err)
	}
	return f.Close()
}
