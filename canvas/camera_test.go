package canvas

import (
	"math"
	"testing"

	"viewer2d/transform"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	if c.Center != (transform.Point{}) || c.zoom != 1 || c.Rotation != 0 {
		t.Fatalf("NewCamera = %+v, want identity defaults", c)
	}
	r := c.Rectangle()
	if r.Width != 10 || r.Height != 7.5 {
		t.Errorf("Rectangle = %vx%v, want 10x7.5", r.Width, r.Height)
	}
	if r.X != -5 || r.Y != -3.75 {
		t.Errorf("Rectangle origin = (%v, %v), want (-5, -3.75)", r.X, r.Y)
	}
}

func TestRectangleScalesWithZoom(t *testing.T) {
	c := NewCamera()
	c.AddZoom(1) // zoom 2
	r := c.Rectangle()
	if r.Width != 5 || r.Height != 3.75 {
		t.Errorf("Rectangle at zoom 2 = %vx%v, want 5x3.75", r.Width, r.Height)
	}
}

func TestZoomFloor(t *testing.T) {
	c := NewCamera()
	for i := 0; i < 100; i++ {
		c.AddZoom(-1e6)
		if c.zoom <= 0 {
			t.Fatalf("zoom reached %v after %d steps", c.zoom, i)
		}
	}
	if c.zoom != MinZoom {
		t.Errorf("Zoom = %v, want floor %v", c.zoom, MinZoom)
	}
	c.AddZoom(math.NaN())
	if c.zoom != MinZoom {
		t.Errorf("NaN delta changed zoom to %v", c.zoom)
	}
}

func TestRotationWrap(t *testing.T) {
	for _, start := range []float64{0, 0.3, -2.9, math.Pi} {
		c := NewCamera()
		c.AddRotation(start)
		before := c.Rotation
		for i := 0; i < 4; i++ {
			c.AddRotation(math.Pi / 2)
			if c.Rotation <= -math.Pi || c.Rotation > math.Pi {
				t.Fatalf("rotation %v escaped (-pi, pi]", c.Rotation)
			}
		}
		diff := WrapAngle(c.Rotation - before)
		if math.Abs(diff) > 1e-9 {
			t.Errorf("start %v: rotation %v after a full turn, want %v", start, c.Rotation, before)
		}
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-7.5 * math.Pi, math.Pi / 2},
	}
	for _, tt := range tests {
		if got := WrapAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestViewMatrixCentersCamera(t *testing.T) {
	c := NewCamera()
	c.AddTranslation(3, -2)
	c.AddRotation(math.Pi / 2)

	got := c.ViewMatrix().Transform(transform.Pt(3, -2))
	if !got.Near(transform.Point{}, 1e-9) {
		t.Errorf("center maps to %v, want origin", got)
	}
	// a point one unit above the center ends up to the right of it once the
	// camera has turned a quarter counter-clockwise
	got = c.ViewMatrix().Transform(transform.Pt(3, -1))
	if !got.Near(transform.Pt(1, 0), 1e-9) {
		t.Errorf("point above center maps to %v, want (1, 0)", got)
	}
}

func TestProjMatrixMapsRectangleToUnitSquare(t *testing.T) {
	c := NewCamera()
	c.AddZoom(0.5)
	r := c.Rectangle()
	corners := r.Corners()
	want := [4]transform.Point{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	for i, p := range corners {
		if got := c.ProjMatrix().Transform(p); !got.Near(want[i], 1e-9) {
			t.Errorf("corner %d maps to %v, want %v", i, got, want[i])
		}
	}
}

func TestSetAspectIgnoresInvalid(t *testing.T) {
	c := NewCamera()
	c.SetAspect(0)
	c.SetAspect(-1)
	c.SetAspect(math.Inf(1))
	if c.Aspect != DefaultAspect {
		t.Errorf("Aspect = %v, want %v", c.Aspect, DefaultAspect)
	}
	c.SetAspect(0.5)
	if c.Rectangle().Height != 5 {
		t.Errorf("Height = %v, want 5", c.Rectangle().Height)
	}
}
