package viewer

import (
	"image/color"
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"

	"viewer2d/canvas"
	"viewer2d/config"
	"viewer2d/input"
	"viewer2d/raster"
	"viewer2d/transform"
	"viewer2d/world"
)

type op struct {
	kind  string
	pts   []transform.Point
	clr   color.Color
	width float64
}

type recorder struct{ ops []op }

func (r *recorder) DrawLine(x1, y1, x2, y2 float64, clr color.Color, width float64) {
	r.ops = append(r.ops, op{"line", []transform.Point{{X: x1, Y: y1}, {X: x2, Y: y2}}, clr, width})
}

func (r *recorder) FillPolygon(pts []transform.Point, clr color.Color) {
	r.ops = append(r.ops, op{"fill", pts, clr, 0})
}

func (r *recorder) StrokePolygon(pts []transform.Point, clr color.Color, width float64) {
	r.ops = append(r.ops, op{"stroke", pts, clr, width})
}

func (r *recorder) FillOval(cx, cy, rx, ry float64, clr color.Color) {
	r.ops = append(r.ops, op{"oval", []transform.Point{{X: cx, Y: cy}}, clr, rx})
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, o := range r.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}

func newTestViewer(t *testing.T, m *world.Model) (*Viewer, *int) {
	t.Helper()
	opts := DefaultOptions()
	opts.Logger = log.New(io.Discard)
	v := New(m, opts)
	repaints := 0
	v.SetRepaintFunc(func() { repaints++ })
	t.Cleanup(v.Close)
	return v, &repaints
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestPanScenario(t *testing.T) {
	v, repaints := newTestViewer(t, nil)

	v.OnPointerEvent(PointerEvent{Kind: PointerDown, X: 320, Y: 240, Button: input.ButtonPrimary})
	v.OnPointerEvent(PointerEvent{Kind: PointerDrag, X: 310, Y: 240})
	if c := v.Camera().Center; !near(c.X, 0.15625) || !near(c.Y, 0) {
		t.Errorf("center = %v, want (0.15625, 0)", c)
	}
	if *repaints != 1 {
		t.Errorf("repaints = %d, want 1", *repaints)
	}
	v.OnPointerEvent(PointerEvent{Kind: PointerUp})
	if v.State() != input.Idle {
		t.Errorf("state = %v, want idle", v.State())
	}
}

func TestWheelScenario(t *testing.T) {
	v, repaints := newTestViewer(t, nil)
	v.Camera().AddZoom(1)

	v.OnWheelEvent(1)
	if z := v.Camera().ZoomFactor(); !near(z, 1.8) {
		t.Errorf("zoom = %v, want 1.8", z)
	}
	v.OnWheelEvent(0)
	if *repaints != 1 {
		t.Errorf("repaints = %d, want 1", *repaints)
	}
}

func TestResizeKeepsRectangleProportional(t *testing.T) {
	v, repaints := newTestViewer(t, nil)

	v.OnResizeEvent(800, 400)
	r := v.Camera().Rectangle()
	if !near(r.Width, 10) || !near(r.Height, 5) {
		t.Errorf("rectangle = %vx%v, want 10x5", r.Width, r.Height)
	}
	v.OnResizeEvent(800, 400)
	if *repaints != 1 {
		t.Errorf("repaints = %d, want 1 (same size is ignored)", *repaints)
	}

	v.OnResizeEvent(0, -5)
	if w, h := v.ViewportSize(); w != 1 || h != 1 {
		t.Errorf("size = %dx%d, want 1x1", w, h)
	}
}

func TestModelChangesRepaint(t *testing.T) {
	m := world.NewModel()
	v, repaints := newTestViewer(t, m)

	m.Add(world.NewPolygon("a", []transform.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, color.Black))
	m.Refresh()
	if *repaints != 2 {
		t.Errorf("repaints = %d, want 2", *repaints)
	}
	if v.Model() != m {
		t.Errorf("Model() is not the bound model")
	}
}

func TestSetModelFiresPropertyChange(t *testing.T) {
	first := world.NewModel()
	v, repaints := newTestViewer(t, first)

	var changes []PropertyChange
	cancel := v.OnPropertyChange(func(pc PropertyChange) { changes = append(changes, pc) })

	second := world.NewModel()
	v.SetModel(second)
	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(changes))
	}
	pc := changes[0]
	if pc.Name != ModelProperty || pc.Old != first || pc.New != second {
		t.Errorf("change = %+v", pc)
	}
	if first.Subscribers() != 0 || second.Subscribers() != 1 {
		t.Errorf("subscribers old=%d new=%d, want 0 and 1", first.Subscribers(), second.Subscribers())
	}

	before := *repaints
	first.Refresh()
	if *repaints != before {
		t.Errorf("old model still triggers repaints")
	}
	second.Refresh()
	if *repaints != before+1 {
		t.Errorf("new model does not trigger repaints")
	}

	v.SetModel(second)
	v.SetModel(nil)
	cancel()
	v.SetModel(first)
	if len(changes) != 1 {
		t.Errorf("got %d changes, want 1 (no-ops and cancelled listener)", len(changes))
	}
}

func TestGateSetters(t *testing.T) {
	v, _ := newTestViewer(t, nil)
	v.SetMoveable(false)
	v.SetSpinnable(false)
	v.SetZoomable(false)
	if v.Moveable() || v.Spinnable() || v.Zoomable() {
		t.Fatalf("gates still open")
	}

	v.OnPointerEvent(PointerEvent{Kind: PointerDown, X: 320, Y: 240, Button: input.ButtonPrimary})
	v.OnPointerEvent(PointerEvent{Kind: PointerDrag, X: 100, Y: 100})
	v.OnPointerEvent(PointerEvent{Kind: PointerDown, X: 400, Y: 240, Button: input.ButtonSecondary})
	v.OnPointerEvent(PointerEvent{Kind: PointerDrag, X: 320, Y: 100})
	v.OnWheelEvent(3)

	c := v.Camera()
	if c.Center != (transform.Point{}) || c.Rotation != 0 || c.ZoomFactor() != 1 {
		t.Errorf("camera moved with all gates closed: %+v", *c)
	}
}

func TestUnity(t *testing.T) {
	v, repaints := newTestViewer(t, nil)
	v.SetUnity(0)
	if v.Unity() != 1 {
		t.Errorf("Unity = %d, want 1", v.Unity())
	}
	v.SetUnity(4)
	if v.Unity() != 4 || *repaints != 2 {
		t.Errorf("Unity = %d repaints = %d", v.Unity(), *repaints)
	}
}

func TestReset(t *testing.T) {
	v, _ := newTestViewer(t, nil)
	v.OnResizeEvent(400, 400)
	old := v.Camera()
	v.OnPointerEvent(PointerEvent{Kind: PointerDown, X: 200, Y: 200, Button: input.ButtonPrimary})
	v.OnPointerEvent(PointerEvent{Kind: PointerDrag, X: 100, Y: 200})

	v.Reset()
	c := v.Camera()
	if c == old {
		t.Fatalf("Reset kept the old camera")
	}
	if c.Center != (transform.Point{}) || c.Aspect != 1 {
		t.Errorf("camera after reset = %+v", *c)
	}
	if v.State() != input.Idle {
		t.Errorf("state = %v, want idle", v.State())
	}

	// The controller drives the new camera.
	v.OnPointerEvent(PointerEvent{Kind: PointerDown, X: 200, Y: 200, Button: input.ButtonPrimary})
	v.OnPointerEvent(PointerEvent{Kind: PointerDrag, X: 100, Y: 200})
	if c.Center.X <= 0 {
		t.Errorf("new camera did not pan: %v", c.Center)
	}
}

func TestPaint(t *testing.T) {
	m := world.NewModel()
	m.Add(world.NewPolygon("tri", []transform.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 3}}, color.RGBA{255, 0, 0, 255}))
	v, _ := newTestViewer(t, m)
	theme := v.Theme()

	r := &recorder{}
	v.Paint(r)
	if r.ops[0].kind != "fill" || r.ops[0].clr != theme.Background {
		t.Errorf("first op = %+v, want background fill", r.ops[0])
	}
	// Background plus the shape.
	if got := r.count("fill"); got != 2 {
		t.Errorf("fills = %d, want 2", got)
	}
	if got := r.count("oval"); got != 0 {
		t.Errorf("ovals = %d without centroids", got)
	}

	v.SetShowCentroids(true)
	r = &recorder{}
	v.Paint(r)
	if got := r.count("oval"); got != 1 {
		t.Fatalf("ovals = %d, want 1", got)
	}
	for _, o := range r.ops {
		if o.kind == "oval" {
			// Centroid (1, 1) at zoom 1 on 640x480 is (384, 176).
			if p := o.pts[0]; !near(p.X, 384) || !near(p.Y, 176) {
				t.Errorf("centroid at %v, want (384, 176)", p)
			}
		}
	}
}

func TestPaintWithZeroOptions(t *testing.T) {
	v := New(nil, Options{})
	t.Cleanup(v.Close)
	if v.Theme() != canvas.DefaultTheme() {
		t.Errorf("Theme = %+v, want defaults", v.Theme())
	}

	v.OnResizeEvent(16, 12)
	c := raster.New(16, 12)
	v.Paint(c)
	if a := c.Image().RGBAAt(0, 0).A; a == 0 {
		t.Errorf("background not painted")
	}
}

func TestPaintRotationGuide(t *testing.T) {
	v, _ := newTestViewer(t, nil)
	v.OnPointerEvent(PointerEvent{Kind: PointerDown, X: 400, Y: 240, Button: input.ButtonSecondary})
	v.OnPointerEvent(PointerEvent{Kind: PointerDrag, X: 320, Y: 100})

	r := &recorder{}
	v.Paint(r)
	last := r.ops[len(r.ops)-1]
	if last.kind != "line" || last.clr != v.Theme().RotationGuide {
		t.Fatalf("last op = %+v, want rotation guide", last)
	}
	if last.pts[0] != (transform.Point{X: 320, Y: 240}) || last.pts[1] != (transform.Point{X: 320, Y: 100}) {
		t.Errorf("guide = %v", last.pts)
	}

	v.OnPointerEvent(PointerEvent{Kind: PointerUp})
	r = &recorder{}
	v.Paint(r)
	if last := r.ops[len(r.ops)-1]; last.clr == v.Theme().RotationGuide {
		t.Errorf("guide still drawn after release")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Unity = 3
	cfg.Zoomable = false
	opts, err := OptionsFromConfig(cfg, nil)
	if err != nil {
		t.Fatalf("OptionsFromConfig: %v", err)
	}
	v := New(nil, opts)
	defer v.Close()
	if v.Unity() != 3 || v.Zoomable() || !v.Moveable() {
		t.Errorf("viewer = unity %d zoomable %v", v.Unity(), v.Zoomable())
	}

	cfg.Theme.Grid = "nope"
	if _, err := OptionsFromConfig(cfg, nil); err == nil {
		t.Errorf("expected a theme error")
	}
}
