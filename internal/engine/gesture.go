package engine

import (
	"log/slog"

	"github.com/inamate/vecdraw/internal/control"
	"github.com/inamate/vecdraw/internal/scene"
)

// gesture is a drag in progress. Every move is replayed from the checkpoint
// taken at pointer down.
type gesture struct {
	hit          control.HitInfo
	downX, downY float64
	lastX, lastY float64
}

// PointerDown starts a gesture at (x, y) and returns the cursor to show.
//
// Handles of selected shapes are tested first, then shape bodies front to
// back. With additive set, a body hit toggles membership instead of
// replacing the selection. A miss clears the selection unless additive.
func (e *Engine) PointerDown(x, y float64, additive bool) string {
	e.CancelGesture()

	hit := e.hitSelectedHandle(x, y)
	if !hit.Hit() {
		target := e.hitTopLevel(x, y)
		if target == nil {
			if !additive {
				e.sel.Clear()
			}
			return control.HitNone.Cursor()
		}
		if additive {
			e.sel.Toggle(target)
			if !e.sel.Contains(target) {
				return control.HitNone.Cursor()
			}
		} else if !e.sel.Contains(target) {
			e.sel.Set(target)
		}
		hit = control.HitInfo{
			Shape:  target,
			Type:   control.HitMove,
			Index:  -1,
			Cursor: control.HitMove.Cursor(),
		}
	}

	e.sel.Checkpoint(hit)
	e.gesture = &gesture{hit: hit, downX: x, downY: y, lastX: x, lastY: y}
	slog.Debug("gesture started", "shape", hit.Shape.ID(), "hit", hit.Type.String())
	return hit.Cursor
}

// hitSelectedHandle tests the control points of selected shapes, front
// most first. Body hits are ignored here.
func (e *Engine) hitSelectedHandle(x, y float64) control.HitInfo {
	members := e.sel.Shapes()
	for i := len(members) - 1; i >= 0; i-- {
		hit := e.ctrl.HitInfo(members[i], x, y)
		if hit.Hit() && hit.Type != control.HitMove {
			return hit
		}
	}
	return control.HitInfo{Type: control.HitNone, Index: -1}
}

// PointerMove continues the gesture, or reports the hover cursor when idle.
func (e *Engine) PointerMove(x, y float64) string {
	if e.gesture == nil {
		return e.Hover(x, y)
	}
	g := e.gesture
	g.lastX, g.lastY = x, y
	e.sel.Apply(g.hit, g.downX, g.downY, x, y)
	return g.hit.Cursor
}

// PointerUp applies the final position and ends the gesture.
func (e *Engine) PointerUp(x, y float64) string {
	if e.gesture == nil {
		return e.Hover(x, y)
	}
	g := e.gesture
	if x != g.lastX || y != g.lastY {
		e.sel.Apply(g.hit, g.downX, g.downY, x, y)
	}
	e.gesture = nil
	slog.Debug("gesture ended", "shape", g.hit.Shape.ID())
	return e.Hover(x, y)
}

// CancelGesture abandons the drag in progress and rolls every selected shape
// back to its checkpoint. It reports whether a gesture was active.
func (e *Engine) CancelGesture() bool {
	if e.gesture == nil {
		return false
	}
	e.sel.Rollback()
	slog.Debug("gesture cancelled", "shape", e.gesture.hit.Shape.ID())
	e.gesture = nil
	return true
}

// Dragging reports whether a gesture is active.
func (e *Engine) Dragging() bool { return e.gesture != nil }

// Hover returns the cursor for (x, y) without changing anything.
func (e *Engine) Hover(x, y float64) string {
	if hit := e.hitSelectedHandle(x, y); hit.Hit() {
		return hit.Cursor
	}
	if e.hitTopLevel(x, y) != nil {
		return control.HitMove.Cursor()
	}
	return control.HitNone.Cursor()
}

// shapeByID finds a shape anywhere in the scene.
func (e *Engine) shapeByID(id string) (scene.Shape, error) {
	if s := scene.FindByID(e.scene, id); s != nil {
		return s, nil
	}
	return nil, ErrShapeNotFound
}
