package canvas

import (
	"math"

	"viewer2d/transform"
)

// MaxLinesPerAxis bounds how many grid lines one direction may produce. When
// the visible region would need more, the spacing is doubled until it fits.
const MaxLinesPerAxis = 1000

// Grid draws the world-space reference grid and the canonical axes.
type Grid struct {
	unity int
}

// NewGrid returns a grid with lines every unity world units (at least 1).
func NewGrid(unity int) *Grid {
	g := &Grid{}
	g.SetUnity(unity)
	return g
}

// Unity returns the configured spacing.
func (g *Grid) Unity() int {
	return g.unity
}

// SetUnity changes the spacing, clamping to 1.
func (g *Grid) SetUnity(v int) {
	g.unity = max(1, v)
}

// GridBounds is the world-space box the grid covers, snapped to Step.
type GridBounds struct {
	MinX, MaxX int
	MinY, MaxY int
	Step       int
}

// GridLine is one grid segment in world coordinates.
type GridLine struct {
	From, To transform.Point
	Axis     bool // the line sits on world coordinate 0
}

// Bounds computes the snapped world box around the camera rectangle. The
// unrotated rectangle is mapped back through the view matrix, so a rotated
// camera is covered by the box around that proxy, not its true footprint.
func (g *Grid) Bounds(cam *Camera) (GridBounds, error) {
	inverseView, err := cam.ViewMatrix().Invert()
	if err != nil {
		return GridBounds{}, err
	}

	var corners [4]transform.Point
	for i, c := range cam.Rectangle().Corners() {
		corners[i] = inverseView.Transform(c)
	}

	step := g.unity
	b := snapBounds(corners, step)
	for b.lineCount() > MaxLinesPerAxis && step < math.MaxInt32 {
		step *= 2
		b = snapBounds(corners, step)
	}
	return b, nil
}

func snapBounds(corners [4]transform.Point, step int) GridBounds {
	s := float64(step)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	// A corner only widens a side it lies strictly outside of, so a corner
	// sitting exactly on an already snapped max adds no extra line.
	for _, p := range corners {
		if p.X < minX {
			minX = math.Floor(p.X/s) * s
		}
		if p.X > maxX {
			maxX = (math.Floor(p.X/s) + 1) * s
		}
		if p.Y < minY {
			minY = math.Floor(p.Y/s) * s
		}
		if p.Y > maxY {
			maxY = (math.Floor(p.Y/s) + 1) * s
		}
	}
	return GridBounds{
		MinX: int(minX), MaxX: int(maxX),
		MinY: int(minY), MaxY: int(maxY),
		Step: step,
	}
}

func (b GridBounds) lineCount() int {
	return max((b.MaxX-b.MinX)/b.Step, (b.MaxY-b.MinY)/b.Step) + 1
}

// Rect returns the bounds as a Rect.
func (b GridBounds) Rect() Rect {
	return Rect{
		X:      float64(b.MinX),
		Y:      float64(b.MinY),
		Width:  float64(b.MaxX - b.MinX),
		Height: float64(b.MaxY - b.MinY),
	}
}

// Lines returns the vertical lines followed by the horizontal ones.
func (b GridBounds) Lines() []GridLine {
	lines := make([]GridLine, 0, (b.MaxX-b.MinX)/b.Step+(b.MaxY-b.MinY)/b.Step+2)
	for x := b.MinX; x <= b.MaxX; x += b.Step {
		lines = append(lines, GridLine{
			From: transform.Point{X: float64(x), Y: float64(b.MinY)},
			To:   transform.Point{X: float64(x), Y: float64(b.MaxY)},
			Axis: x == 0,
		})
	}
	for y := b.MinY; y <= b.MaxY; y += b.Step {
		lines = append(lines, GridLine{
			From: transform.Point{X: float64(b.MinX), Y: float64(y)},
			To:   transform.Point{X: float64(b.MaxX), Y: float64(y)},
			Axis: y == 0,
		})
	}
	return lines
}

// Draw renders the grid and then the canonical basis on top of it. If the
// view matrix cannot be inverted the lines are skipped and the error returned.
func (g *Grid) Draw(f *Frame, cam *Camera) error {
	theme := f.Theme()
	b, err := g.Bounds(cam)
	if err == nil {
		for _, l := range b.Lines() {
			if l.Axis {
				f.DrawLine(l.From, l.To, theme.Axis, theme.AxisWidth)
			} else {
				f.DrawLine(l.From, l.To, theme.Grid, theme.GridWidth)
			}
		}
	}

	origin := transform.Point{}
	f.DrawArrow(origin, transform.Point{X: 1}, theme.CanonicalBase, theme.AxisWidth)
	f.DrawArrow(origin, transform.Point{Y: 1}, theme.CanonicalBase, theme.AxisWidth)
	return err
}
