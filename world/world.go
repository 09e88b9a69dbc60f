// Package world is a small in-memory store of drawable polygons that tells
// subscribers when it changes.
package world

import (
	"image/color"
	"slices"

	"github.com/google/uuid"

	"viewer2d/canvas"
	"viewer2d/transform"
)

// Polygon is a filled outline placed in the world by its pose.
type Polygon struct {
	ID        string
	Name      string
	Local     []transform.Point
	Color     color.Color
	Stroke    *canvas.Stroke
	Placement transform.Matrix // local to world
}

// NewPolygon returns a polygon with a fresh id and an identity pose.
func NewPolygon(name string, pts []transform.Point, clr color.Color) *Polygon {
	return &Polygon{
		ID:        uuid.NewString(),
		Name:      name,
		Local:     pts,
		Color:     clr,
		Placement: transform.Identity(),
	}
}

func (p *Polygon) Points() []transform.Point { return p.Local }

func (p *Polygon) Fill() color.Color { return p.Color }

func (p *Polygon) Outline() *canvas.Stroke { return p.Stroke }

func (p *Polygon) Pose() transform.Matrix { return p.Placement }

// EventKind says what changed in the model.
type EventKind int

const (
	ShapeAdded EventKind = iota
	ShapeRemoved
	NeedsRefresh
)

func (k EventKind) String() string {
	switch k {
	case ShapeAdded:
		return "shape-added"
	case ShapeRemoved:
		return "shape-removed"
	default:
		return "needs-refresh"
	}
}

// Event is delivered to subscribers. Shape is nil for NeedsRefresh.
type Event struct {
	Kind  EventKind
	Shape *Polygon
}

type subscriber struct {
	id uint64
	fn func(Event)
}

// Model holds the shapes in draw order.
type Model struct {
	shapes []*Polygon
	subs   []subscriber
	nextID uint64
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{}
}

// Subscribe registers fn for every change. Calling cancel removes it.
func (m *Model) Subscribe(fn func(Event)) (cancel func()) {
	m.nextID++
	id := m.nextID
	m.subs = append(m.subs, subscriber{id: id, fn: fn})
	return func() {
		m.subs = slices.DeleteFunc(m.subs, func(s subscriber) bool { return s.id == id })
	}
}

// Subscribers returns how many callbacks are registered.
func (m *Model) Subscribers() int {
	return len(m.subs)
}

func (m *Model) emit(ev Event) {
	for _, s := range slices.Clone(m.subs) {
		s.fn(ev)
	}
}

// Add appends a shape on top of the others.
func (m *Model) Add(p *Polygon) {
	m.shapes = append(m.shapes, p)
	m.emit(Event{Kind: ShapeAdded, Shape: p})
}

// Remove deletes the shape with the given id and reports whether it existed.
func (m *Model) Remove(id string) bool {
	i := slices.IndexFunc(m.shapes, func(p *Polygon) bool { return p.ID == id })
	if i < 0 {
		return false
	}
	p := m.shapes[i]
	m.shapes = slices.Delete(m.shapes, i, i+1)
	m.emit(Event{Kind: ShapeRemoved, Shape: p})
	return true
}

// Get returns the shape with the given id.
func (m *Model) Get(id string) (*Polygon, bool) {
	i := slices.IndexFunc(m.shapes, func(p *Polygon) bool { return p.ID == id })
	if i < 0 {
		return nil, false
	}
	return m.shapes[i], true
}

// Update lets fn mutate a shape in place and then asks subscribers to redraw.
func (m *Model) Update(id string, fn func(*Polygon)) bool {
	p, ok := m.Get(id)
	if !ok {
		return false
	}
	fn(p)
	m.Refresh()
	return true
}

// Refresh asks subscribers to redraw without a structural change.
func (m *Model) Refresh() {
	m.emit(Event{Kind: NeedsRefresh})
}

// Shapes returns the shapes in draw order.
func (m *Model) Shapes() []canvas.Shape {
	out := make([]canvas.Shape, len(m.shapes))
	for i, p := range m.shapes {
		out[i] = p
	}
	return out
}

// Len returns the number of shapes.
func (m *Model) Len() int {
	return len(m.shapes)
}
