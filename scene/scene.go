// Package scene builds world models from Starlark scene scripts.
//
// A script declares polygons with the polygon() builtin. Each polygon may name
// a parent; its pose is then relative to the parent's pose.
//
//	body = polygon("body", points=[(-2, -1), (2, -1), (2, 1), (-2, 1)], color="#4060c0")
//	polygon("flag", points=regular(3, 0.5), parent=body, x=2, y=1.5, angle=30)
package scene

import (
	"crypto/sha256"
	_ "embed"
	"fmt"
	"image/color"
	"math"

	"github.com/charmbracelet/log"
	starlarkmath "go.starlark.net/lib/math"
	"go.starlark.net/starlark"

	"viewer2d/canvas"
	"viewer2d/graph"
	"viewer2d/transform"
	"viewer2d/world"
)

//go:embed default.star
var defaultScript []byte

// DefaultName is the file name reported for the embedded demo scene.
const DefaultName = "default.star"

// Default returns the embedded demo scene source.
func Default() []byte {
	return defaultScript
}

// Hash returns a content hash of a script, used to skip reloading unchanged files.
func Hash(src []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(src))
}

// Entry is one polygon declared by a script.
type Entry struct {
	Name    string
	Parent  string
	Points  []transform.Point
	Color   color.RGBA
	Outline float64 // stroke width, 0 for none
	X, Y    float64
	Angle   float64 // degrees, counter-clockwise
	Scale   float64
}

// Local returns the pose of the entry relative to its parent.
func (e Entry) Local() transform.Matrix {
	return transform.Chain(
		transform.Translate(e.X, e.Y),
		transform.Rotate(e.Angle*math.Pi/180),
		transform.Scale(e.Scale, e.Scale),
	)
}

// Exec runs a scene script and returns the declared entries in declaration order.
// Messages printed by the script go to logger at info level.
func Exec(logger *log.Logger, filename string, src []byte) ([]Entry, error) {
	b := &builder{index: map[string]int{}}
	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			if logger != nil {
				logger.Info(msg, "script", filename)
			}
		},
	}
	predeclared := starlark.StringDict{
		"polygon": starlark.NewBuiltin("polygon", b.polygon),
		"regular": starlark.NewBuiltin("regular", regular),
		"math":    starlarkmath.Module,
	}
	if _, err := starlark.ExecFile(thread, filename, src, predeclared); err != nil {
		return nil, fmt.Errorf("scene %s: %w", filename, err)
	}
	return b.entries, nil
}

// Build resolves parented poses and returns one polygon per entry, in
// declaration order.
func Build(entries []Entry) ([]*world.Polygon, error) {
	ids := make([]string, len(entries))
	byName := make(map[string]Entry, len(entries))
	var edges []graph.Edge
	for i, e := range entries {
		ids[i] = e.Name
		byName[e.Name] = e
		if e.Parent != "" {
			edges = append(edges, graph.Edge{From: e.Parent, To: e.Name})
		}
	}
	order, err := graph.TopologicalSort(ids, edges)
	if err != nil {
		return nil, fmt.Errorf("resolve poses: %w", err)
	}

	poses := make(map[string]transform.Matrix, len(entries))
	for _, name := range order {
		e := byName[name]
		pose := e.Local()
		if e.Parent != "" {
			pose = transform.Compose(poses[e.Parent], pose)
		}
		poses[name] = pose
	}

	out := make([]*world.Polygon, len(entries))
	for i, e := range entries {
		p := world.NewPolygon(e.Name, e.Points, e.Color)
		p.Placement = poses[e.Name]
		if e.Outline > 0 {
			p.Stroke = &canvas.Stroke{Width: e.Outline}
		}
		out[i] = p
	}
	return out, nil
}

// Load runs a script and adds the resulting polygons to m. Nothing is added
// when the script fails.
func Load(logger *log.Logger, m *world.Model, filename string, src []byte) (int, error) {
	entries, err := Exec(logger, filename, src)
	if err != nil {
		return 0, err
	}
	polys, err := Build(entries)
	if err != nil {
		return 0, fmt.Errorf("scene %s: %w", filename, err)
	}
	for _, p := range polys {
		m.Add(p)
	}
	if logger != nil {
		logger.Debug("scene loaded", "file", filename, "shapes", len(polys))
	}
	return len(polys), nil
}

type builder struct {
	entries []Entry
	index   map[string]int
}

func (b *builder) polygon(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		name   string
		points starlark.Value
		clr    = "#808080"
		parent = ""
	)
	var outline, x, y, angle number
	scale := number(1)
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name,
		"points", &points,
		"color?", &clr,
		"outline?", &outline,
		"x?", &x,
		"y?", &y,
		"angle?", &angle,
		"scale?", &scale,
		"parent?", &parent,
	); err != nil {
		return nil, err
	}
	e := Entry{
		Outline: float64(outline),
		X:       float64(x),
		Y:       float64(y),
		Angle:   float64(angle),
		Scale:   float64(scale),
	}
	if name == "" {
		return nil, fmt.Errorf("%s: empty name", fn.Name())
	}
	if _, dup := b.index[name]; dup {
		return nil, fmt.Errorf("%s: duplicate name %q", fn.Name(), name)
	}
	if parent != "" {
		if _, ok := b.index[parent]; !ok {
			return nil, fmt.Errorf("%s %q: parent %q must be declared first", fn.Name(), name, parent)
		}
	}
	if !(e.Scale > 0) || math.IsInf(e.Scale, 0) {
		return nil, fmt.Errorf("%s %q: scale must be positive, got %g", fn.Name(), name, e.Scale)
	}
	if e.Outline < 0 {
		return nil, fmt.Errorf("%s %q: negative outline %g", fn.Name(), name, e.Outline)
	}
	pts, err := toPoints(points)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", fn.Name(), name, err)
	}
	if len(pts) < 3 {
		return nil, fmt.Errorf("%s %q: need at least 3 points, got %d", fn.Name(), name, len(pts))
	}
	c, err := canvas.ParseHexColor(clr)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", fn.Name(), name, err)
	}

	e.Name, e.Parent, e.Points, e.Color = name, parent, pts, c
	b.index[name] = len(b.entries)
	b.entries = append(b.entries, e)
	return starlark.String(name), nil
}

// regular(sides, radius=1) returns the vertices of a regular polygon centered
// at the origin with its first vertex on the +x axis.
func regular(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		sides  int
		radius = number(1)
	)
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "sides", &sides, "radius?", &radius); err != nil {
		return nil, err
	}
	if sides < 3 {
		return nil, fmt.Errorf("%s: need at least 3 sides, got %d", fn.Name(), sides)
	}
	elems := make([]starlark.Value, sides)
	for i := range sides {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(sides))
		r := float64(radius)
		elems[i] = starlark.Tuple{starlark.Float(r * cos), starlark.Float(r * sin)}
	}
	return starlark.NewList(elems), nil
}

// number accepts a Starlark int or float.
type number float64

func (n *number) Unpack(v starlark.Value) error {
	f, ok := starlark.AsFloat(v)
	if !ok {
		return fmt.Errorf("got %s, want number", v.Type())
	}
	*n = number(f)
	return nil
}

func toPoints(v starlark.Value) ([]transform.Point, error) {
	iter := starlark.Iterate(v)
	if iter == nil {
		return nil, fmt.Errorf("points: got %s, want a sequence of (x, y)", v.Type())
	}
	defer iter.Done()

	var pts []transform.Point
	var item starlark.Value
	for iter.Next(&item) {
		seq, ok := item.(starlark.Indexable)
		if !ok || seq.Len() != 2 {
			return nil, fmt.Errorf("point %d: got %s, want (x, y)", len(pts), item)
		}
		x, okx := starlark.AsFloat(seq.Index(0))
		y, oky := starlark.AsFloat(seq.Index(1))
		if !okx || !oky {
			return nil, fmt.Errorf("point %d: %s is not numeric", len(pts), item)
		}
		pts = append(pts, transform.Pt(x, y))
	}
	return pts, nil
}
