package engine

import (
	"encoding/json"
	"sort"

	"github.com/inamate/vecdraw/internal/control"
	"github.com/inamate/vecdraw/internal/event"
	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/render"
	"github.com/inamate/vecdraw/internal/scene"
	"github.com/inamate/vecdraw/internal/selection"
)

// ControlsPane is the pane selection outlines and handles draw into.
const ControlsPane = "controls"

// Engine owns a scene, its selection and the controller that edits it.
// It turns pointer input and commands from the frontend into validated
// mutations and returns draw commands.
type Engine struct {
	cfg   control.Config
	scene *scene.Scene
	ctrl  *control.Controller
	sel   *selection.Selection

	// Active drag, nil when idle
	gesture *gesture

	// Panes that changed since the last DirtyPanes call
	dirty map[string]bool
	subs  []event.Subscription
}

// NewEngine creates an engine with an empty scene.
func NewEngine(cfg control.Config) *Engine {
	e := &Engine{
		cfg:   cfg,
		ctrl:  control.NewController(cfg),
		dirty: make(map[string]bool),
	}
	e.sel = selection.New(e.ctrl)
	e.sel.Events().On(event.ShapesSelected, e.selectionChanged)
	e.sel.Events().On(event.ShapesUnselected, e.selectionChanged)
	e.Reset()
	return e
}

// Scene returns the scene being edited.
func (e *Engine) Scene() *scene.Scene { return e.scene }

// Selection returns the selection.
func (e *Engine) Selection() *selection.Selection { return e.sel }

// Controller returns the controller.
func (e *Engine) Controller() *control.Controller { return e.ctrl }

// Reset replaces the scene with an empty one.
func (e *Engine) Reset() {
	e.CancelGesture()
	e.sel.Clear()
	for _, s := range e.subs {
		s.Cancel()
	}
	e.scene = scene.NewScene()
	e.subs = e.observe(e.scene.Events())
	e.markAllDirty()
}

// LoadSample replaces the scene with the built-in sample drawing.
func (e *Engine) LoadSample() error {
	e.Reset()
	return buildSample(e.scene)
}

// observe marks panes dirty whenever something under the scene changes.
func (e *Engine) observe(h *event.Hub) []event.Subscription {
	types := []event.Type{
		event.BoundsChanged,
		event.PropertyChanged,
		event.StyleChanged,
		event.ChildAdded,
		event.ChildRemoved,
		event.ZOrderChanged,
		event.PathChanged,
	}
	subs := make([]event.Subscription, 0, len(types))
	for _, t := range types {
		subs = append(subs, h.On(t, e.shapeChanged))
	}
	return subs
}

func (e *Engine) shapeChanged(ev *event.Event) {
	for _, v := range []interface{}{ev.Source, ev.Old, ev.New} {
		if s, ok := v.(scene.Shape); ok {
			e.markPaneDirty(s)
		}
	}
	if ev.Type == event.PropertyChanged && ev.Name == "pane" {
		if p, ok := ev.Old.(string); ok {
			e.dirty[p] = true
		}
	}
	if e.sel.Count() > 0 {
		e.dirty[ControlsPane] = true
	}
}

func (e *Engine) selectionChanged(*event.Event) {
	e.dirty[ControlsPane] = true
}

// markPaneDirty flags the panes of s and everything under it.
func (e *Engine) markPaneDirty(s scene.Shape) {
	scene.Walk(s, func(sh scene.Shape) bool {
		e.dirty[sh.Pane()] = true
		return true
	})
}

func (e *Engine) markAllDirty() {
	e.markPaneDirty(e.scene)
	e.dirty[ControlsPane] = true
}

// DirtyPanes returns the panes that need a repaint, sorted, and resets the
// set.
func (e *Engine) DirtyPanes() []string {
	panes := make([]string, 0, len(e.dirty))
	for p := range e.dirty {
		panes = append(panes, p)
	}
	sort.Strings(panes)
	e.dirty = make(map[string]bool)
	return panes
}

// --- Queries (frontend ← backend) ---

// Render draws the whole scene followed by the selection controls and
// returns the draw commands as JSON.
func (e *Engine) Render() string {
	rec := render.NewRecorder()
	scene.Render(rec, e.scene)
	e.drawControls(rec)
	result, _ := rec.JSON()
	return result
}

// RenderPane draws only the shapes in pane. The controls pane draws the
// selection handles.
func (e *Engine) RenderPane(pane string) string {
	rec := render.NewRecorder()
	if pane == ControlsPane {
		e.drawControls(rec)
	} else {
		scene.RenderPane(rec, e.scene, pane)
	}
	result, _ := rec.JSON()
	return result
}

func (e *Engine) drawControls(rec *render.Recorder) {
	for _, s := range e.sel.Shapes() {
		rec.Tag(s.ID())
		e.ctrl.DrawControls(rec, s)
	}
	rec.Tag("")
}

// HitTest returns the id of the topmost leaf shape under (x, y), or an empty
// string.
func (e *Engine) HitTest(x, y float64) string {
	if s := e.hitLeaf(e.scene, x, y); s != nil {
		return s.ID()
	}
	return ""
}

// hitLeaf tests children front to back, descending into groups.
func (e *Engine) hitLeaf(g scene.Container, x, y float64) scene.Shape {
	children := g.Children()
	for i := len(children) - 1; i >= 0; i-- {
		c := children[i]
		if !c.Visible() {
			continue
		}
		if sub, ok := c.(scene.Container); ok {
			if hit := e.hitLeaf(sub, x, y); hit != nil {
				return hit
			}
			continue
		}
		if e.ctrl.HitBody(c, x, y).Hit() {
			return c
		}
	}
	return nil
}

// hitTopLevel returns the topmost direct child of the scene under (x, y).
func (e *Engine) hitTopLevel(x, y float64) scene.Shape {
	children := e.scene.Children()
	for i := len(children) - 1; i >= 0; i-- {
		c := children[i]
		if !c.Visible() {
			continue
		}
		if sub, ok := c.(scene.Container); ok {
			if e.hitLeaf(sub, x, y) != nil {
				return c
			}
			continue
		}
		if e.ctrl.HitBody(c, x, y).Hit() {
			return c
		}
	}
	return nil
}

// GetSelectionBounds returns the scene-space box of the selection as JSON.
func (e *Engine) GetSelectionBounds() string {
	b, ok := e.sel.Bounds()
	if !ok {
		return RectToJSON(geom.Bounds{})
	}
	return RectToJSON(b)
}

// GetSelection returns the selected ids as JSON.
func (e *Engine) GetSelection() string {
	data, _ := json.Marshal(e.SelectionIDs())
	return string(data)
}

// SelectionIDs returns the selected ids in selection order.
func (e *Engine) SelectionIDs() []string {
	ids := make([]string, 0, e.sel.Count())
	for _, s := range e.sel.Shapes() {
		ids = append(ids, s.ID())
	}
	return ids
}

// GetScene returns the shape tree as JSON.
func (e *Engine) GetScene() string {
	data, _ := json.Marshal(Describe(e.scene))
	return string(data)
}

// RectToJSON serializes a box to JSON.
func RectToJSON(r geom.Bounds) string {
	data, _ := json.Marshal(map[string]float64{
		"x":      r.X,
		"y":      r.Y,
		"width":  r.Width,
		"height": r.Height,
	})
	return string(data)
}
