// Package viewer is the interactive 2D viewport: it owns the camera, the
// viewport and the input session, and paints a world model through them.
//
// A Viewer is not safe for concurrent use; the host calls its handlers from
// one goroutine.
package viewer

import (
	"slices"

	"github.com/charmbracelet/log"

	"viewer2d/canvas"
	"viewer2d/config"
	"viewer2d/input"
	"viewer2d/world"
)

// ModelProperty names the property change fired by SetModel.
const ModelProperty = "model"

// PointerKind distinguishes the three pointer events.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerDrag
	PointerUp
)

// PointerEvent is a raw pointer event in device pixels.
type PointerEvent struct {
	Kind   PointerKind
	X, Y   int
	Button input.Button
}

// PropertyChange is delivered to OnPropertyChange listeners.
type PropertyChange struct {
	Name string
	Old  *world.Model
	New  *world.Model
}

// Options configures a new Viewer.
type Options struct {
	Width, Height int
	Unity         int
	Moveable      bool
	Spinnable     bool
	Zoomable      bool
	ShowCentroids bool
	Theme         canvas.Theme
	Logger        *log.Logger
}

// DefaultOptions returns a 640x480 viewer with every gesture enabled.
func DefaultOptions() Options {
	return Options{
		Width:     config.DefaultWidth,
		Height:    config.DefaultHeight,
		Unity:     1,
		Moveable:  true,
		Spinnable: true,
		Zoomable:  true,
		Theme:     canvas.DefaultTheme(),
	}
}

// OptionsFromConfig converts loaded settings into viewer options.
func OptionsFromConfig(cfg config.Config, logger *log.Logger) (Options, error) {
	theme, err := cfg.Theme.Canvas()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Unity:         cfg.Unity,
		Moveable:      cfg.Moveable,
		Spinnable:     cfg.Spinnable,
		Zoomable:      cfg.Zoomable,
		ShowCentroids: cfg.ShowCentroids,
		Theme:         theme,
		Logger:        logger,
	}, nil
}

type listener struct {
	id uint64
	fn func(PropertyChange)
}

// Viewer owns the camera, viewport, input session and grid of one view.
type Viewer struct {
	model       *world.Model
	unsubscribe func()

	camera     *canvas.Camera
	viewport   *canvas.Viewport
	controller *input.Controller
	grid       *canvas.Grid

	theme         canvas.Theme
	showCentroids bool

	repaint    func()
	listeners  []listener
	nextListen uint64

	logger *log.Logger
}

// New returns a viewer over model. A nil model is replaced by an empty one.
func New(model *world.Model, opts Options) *Viewer {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	v := &Viewer{
		camera:        canvas.NewCamera(),
		viewport:      canvas.NewViewport(0, 0, opts.Width, opts.Height),
		grid:          canvas.NewGrid(opts.Unity),
		theme:         opts.Theme.WithDefaults(),
		showCentroids: opts.ShowCentroids,
		logger:        logger,
	}
	v.camera.SetAspect(v.viewport.Aspect())
	v.controller = input.NewController(v.camera, v)
	v.controller.Gates = input.Gates{Moveable: opts.Moveable, Spinnable: opts.Spinnable, Zoomable: opts.Zoomable}
	v.controller.OnStateChange = func(from, to input.State) {
		v.logger.Debug("gesture", "from", from, "to", to)
	}
	if model == nil {
		model = world.NewModel()
	}
	v.bind(model)
	return v
}

// SetRepaintFunc installs the host callback that schedules a repaint.
func (v *Viewer) SetRepaintFunc(fn func()) {
	v.repaint = fn
}

// ViewportSize reports the drawable size in device pixels.
func (v *Viewer) ViewportSize() (int, int) {
	return v.viewport.Width, v.viewport.Height
}

// RequestRepaint asks the host for a new frame. Requests are coalesced by the host.
func (v *Viewer) RequestRepaint() {
	if v.repaint != nil {
		v.repaint()
	}
}

// OnPointerEvent feeds a pointer event to the interaction state machine.
func (v *Viewer) OnPointerEvent(ev PointerEvent) {
	switch ev.Kind {
	case PointerDown:
		v.controller.OnPointerDown(ev.X, ev.Y, ev.Button)
	case PointerDrag:
		v.controller.OnPointerDrag(ev.X, ev.Y)
	case PointerUp:
		v.controller.OnPointerUp()
	}
}

// OnWheelEvent zooms by the given number of wheel units (positive rotates
// the wheel towards the user and zooms out).
func (v *Viewer) OnWheelEvent(units int) {
	v.controller.OnWheel(units)
}

// OnResizeEvent resizes the viewport and keeps the camera rectangle
// proportional to it.
func (v *Viewer) OnResizeEvent(width, height int) {
	if width == v.viewport.Width && height == v.viewport.Height {
		return
	}
	v.viewport.Resize(width, height)
	v.camera.SetAspect(v.viewport.Aspect())
	v.logger.Debug("resize", "width", v.viewport.Width, "height", v.viewport.Height)
	v.RequestRepaint()
}

// OnModelChanged is the model subscription: any change repaints.
func (v *Viewer) OnModelChanged(ev world.Event) {
	if ev.Shape != nil {
		v.logger.Debug("model changed", "event", ev.Kind, "shape", ev.Shape.Name)
	} else {
		v.logger.Debug("model changed", "event", ev.Kind)
	}
	v.RequestRepaint()
}

// Model returns the displayed model.
func (v *Viewer) Model() *world.Model {
	return v.model
}

// SetModel rebinds the viewer to m and notifies property listeners.
// Passing the current model or nil is a no-op.
func (v *Viewer) SetModel(m *world.Model) {
	if m == nil || m == v.model {
		return
	}
	old := v.model
	v.unsubscribe()
	v.bind(m)
	v.logger.Info("model replaced", "shapes", m.Len())
	v.firePropertyChange(PropertyChange{Name: ModelProperty, Old: old, New: m})
	v.RequestRepaint()
}

func (v *Viewer) bind(m *world.Model) {
	v.model = m
	v.unsubscribe = m.Subscribe(v.OnModelChanged)
}

// OnPropertyChange registers fn for property changes. Calling cancel removes it.
func (v *Viewer) OnPropertyChange(fn func(PropertyChange)) (cancel func()) {
	v.nextListen++
	id := v.nextListen
	v.listeners = append(v.listeners, listener{id: id, fn: fn})
	return func() {
		v.listeners = slices.DeleteFunc(v.listeners, func(l listener) bool { return l.id == id })
	}
}

func (v *Viewer) firePropertyChange(pc PropertyChange) {
	for _, l := range slices.Clone(v.listeners) {
		l.fn(pc)
	}
}

// Close detaches the viewer from its model.
func (v *Viewer) Close() {
	v.unsubscribe()
}

// Reset replaces the camera with a fresh one and drops any gesture in progress.
func (v *Viewer) Reset() {
	v.camera = canvas.NewCamera()
	v.camera.SetAspect(v.viewport.Aspect())
	v.controller.SetCamera(v.camera)
	v.logger.Debug("camera reset")
	v.RequestRepaint()
}

// Camera returns the live camera.
func (v *Viewer) Camera() *canvas.Camera {
	return v.camera
}

// Viewport returns the live viewport.
func (v *Viewer) Viewport() *canvas.Viewport {
	return v.viewport
}

// State returns the current gesture state.
func (v *Viewer) State() input.State {
	return v.controller.State()
}

// Unity returns the grid spacing in world units.
func (v *Viewer) Unity() int { return v.grid.Unity() }

// SetUnity sets the grid spacing in world units (at least 1).
func (v *Viewer) SetUnity(u int) {
	v.grid.SetUnity(u)
	v.logger.Debug("unity", "value", v.grid.Unity())
	v.RequestRepaint()
}

// Moveable reports whether dragging with the primary button pans.
func (v *Viewer) Moveable() bool { return v.controller.Gates.Moveable }

// SetMoveable enables or disables panning.
func (v *Viewer) SetMoveable(b bool) {
	v.controller.Gates.Moveable = b
	v.logger.Debug("gate", "moveable", b)
}

// Spinnable reports whether dragging with the middle button rotates.
func (v *Viewer) Spinnable() bool { return v.controller.Gates.Spinnable }

// SetSpinnable enables or disables rotation.
func (v *Viewer) SetSpinnable(b bool) {
	v.controller.Gates.Spinnable = b
	v.logger.Debug("gate", "spinnable", b)
}

// Zoomable reports whether the wheel zooms.
func (v *Viewer) Zoomable() bool { return v.controller.Gates.Zoomable }

// SetZoomable enables or disables wheel zoom.
func (v *Viewer) SetZoomable(b bool) {
	v.controller.Gates.Zoomable = b
	v.logger.Debug("gate", "zoomable", b)
}

// ShowCentroids reports whether shape centroids are drawn.
func (v *Viewer) ShowCentroids() bool { return v.showCentroids }

// SetShowCentroids toggles centroid markers and repaints.
func (v *Viewer) SetShowCentroids(b bool) {
	v.showCentroids = b
	v.RequestRepaint()
}

// Theme returns the drawing colors.
func (v *Viewer) Theme() canvas.Theme {
	return v.theme
}

// Paint draws one frame: background, grid, shapes with their local bases
// and, while rotating, the guide from the viewport center to the pointer.
func (v *Viewer) Paint(s canvas.Surface) {
	f := canvas.BeginFrame(v.camera, v.viewport, s, v.theme)
	f.Clear()
	if err := v.grid.Draw(f, v.camera); err != nil {
		v.logger.Error("grid skipped", "err", err)
	}
	for _, shape := range v.model.Shapes() {
		f.DrawShape(shape)
		f.DrawShapeBase(shape)
		if v.showCentroids {
			f.DrawPoint(canvas.Centroid(shape), v.theme.Centroid)
		}
	}
	if v.controller.State() == input.Rotating {
		c := v.viewport.Center()
		x, y := v.controller.Anchor()
		s.DrawLine(c.X, c.Y, float64(x), float64(y), v.theme.RotationGuide, 1)
	}
}
