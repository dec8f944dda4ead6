package control

import (
	"log/slog"
	"math"

	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/render"
	"github.com/inamate/vecdraw/internal/scene"
)

// Config holds hit-testing tolerances in scene units.
type Config struct {
	ControlRadius      float64
	RotateHandleOffset float64
}

// DefaultConfig matches the values the server uses when nothing is set.
func DefaultConfig() Config {
	return Config{ControlRadius: 6, RotateHandleOffset: 24}
}

type cachedPoints struct {
	stamp  uint64
	points []ControlPoint
}

// Controller hit-tests shapes and applies drag gestures to them. Control
// points are cached per shape and recomputed only when the shape's
// transformation stamp moves past the cached one.
type Controller struct {
	cfg   Config
	cache map[string]cachedPoints
}

// NewController creates a controller.
func NewController(cfg Config) *Controller {
	if cfg.ControlRadius <= 0 {
		cfg.ControlRadius = DefaultConfig().ControlRadius
	}
	return &Controller{
		cfg:   cfg,
		cache: make(map[string]cachedPoints),
	}
}

// Config returns the controller's tolerances.
func (c *Controller) Config() Config { return c.cfg }

// Forget drops cached control points for a shape id.
func (c *Controller) Forget(id string) { delete(c.cache, id) }

// ControlPoints returns the shape's handles in its own coordinate space:
// shape-specific points first, then the eight resize handles and the rotate
// handle.
func (c *Controller) ControlPoints(s scene.Shape) []ControlPoint {
	if e, ok := c.cache[s.ID()]; ok && e.stamp >= s.LastTransformed() {
		return e.points
	}

	var points []ControlPoint
	if r, ok := s.(Reshaper); ok {
		points = append(points, r.ControlPoints()...)
	}
	points = append(points, c.handles(s.BoundingBox(), len(points))...)

	c.cache[s.ID()] = cachedPoints{stamp: s.LastTransformed(), points: points}
	return points
}

func (c *Controller) handles(b geom.Bounds, first int) []ControlPoint {
	l, t, r, btm := b.Left(), b.Top(), b.Right(), b.Bottom()
	cx, cy := (l+r)/2, (t+btm)/2

	layout := []struct {
		x, y float64
		typ  HitType
	}{
		{cx, t, HitSizeN},
		{r, t, HitSizeNE},
		{r, cy, HitSizeE},
		{r, btm, HitSizeSE},
		{cx, btm, HitSizeS},
		{l, btm, HitSizeSW},
		{l, cy, HitSizeW},
		{l, t, HitSizeNW},
		{r + c.cfg.RotateHandleOffset, cy, HitRotate},
	}

	points := make([]ControlPoint, len(layout))
	for i, h := range layout {
		points[i] = ControlPoint{
			X:      h.x,
			Y:      h.y,
			Type:   h.typ,
			Index:  first + i,
			Cursor: h.typ.Cursor(),
		}
	}
	return points
}

// HitInfo tests the scene point (x, y) against s. Control points within the
// control radius win over the body; the body yields a MOVE hit.
func (c *Controller) HitInfo(s scene.Shape, x, y float64) HitInfo {
	local := s.GlobalTransform().Invert().Apply(geom.Pt(x, y))

	for _, cp := range c.ControlPoints(s) {
		if local.Distance(cp.Pos()) <= c.cfg.ControlRadius {
			cp := cp
			return HitInfo{Shape: s, Type: cp.Type, Index: cp.Index, Cursor: cp.Cursor, Point: &cp}
		}
	}
	return c.HitBody(s, x, y)
}

// HitBody tests only the shape's bounding box.
func (c *Controller) HitBody(s scene.Shape, x, y float64) HitInfo {
	local := s.GlobalTransform().Invert().Apply(geom.Pt(x, y))
	if s.BoundingBox().ContainsPoint(local) {
		return HitInfo{Shape: s, Type: HitMove, Index: -1, Cursor: HitMove.Cursor()}
	}
	return HitInfo{Type: HitNone, Index: -1, Cursor: HitNone.Cursor()}
}

// Snapshot captures s at gesture start. hit supplies the anchor for control
// point drags and may be the zero HitInfo.
func (c *Controller) Snapshot(s scene.Shape, hit HitInfo) *Snapshot {
	snap := &Snapshot{
		Bounds:   s.BoundingBox(),
		Angle:    s.Angle(),
		toParent: parentTransform(s).Invert(),
		toShape:  s.GlobalTransform().Invert(),
	}
	if hit.Point != nil {
		snap.Anchor = hit.Point.Pos()
	}
	if r, ok := s.(scene.Restorer); ok {
		snap.memento = r.Capture()
	}
	return snap
}

// Apply replays the drag from (downX, downY) to (x, y) onto s, starting from
// snap. It reports whether the shape accepted the change.
func (c *Controller) Apply(s scene.Shape, hit HitInfo, snap *Snapshot, downX, downY, x, y float64) bool {
	switch {
	case hit.Type == HitMove:
		from := snap.toParent.Apply(geom.Pt(downX, downY))
		to := snap.toParent.Apply(geom.Pt(x, y))
		d := to.Sub(from)
		return s.SetBounds(snap.Bounds.Move(d.X, d.Y))

	case hit.Type.IsSize():
		d := snap.toShape.Apply(geom.Pt(x, y)).Sub(snap.toShape.Apply(geom.Pt(downX, downY)))
		// Rescaling is lossy for paths and group children, so every move
		// starts again from the gesture-start geometry.
		restore(s, snap)
		return s.SetBounds(resize(snap.Bounds, hit.Type, d.X, d.Y))

	case hit.Type == HitRotate:
		pivot := snap.Bounds.Center()
		from := snap.toParent.Apply(geom.Pt(downX, downY)).Sub(pivot)
		to := snap.toParent.Apply(geom.Pt(x, y)).Sub(pivot)
		delta := math.Atan2(to.Y, to.X) - math.Atan2(from.Y, from.X)
		return s.SetAngle(snap.Angle + delta)

	case hit.Type == HitControl:
		r, ok := s.(Reshaper)
		if !ok || hit.Point == nil {
			return false
		}
		d := snap.toShape.Apply(geom.Pt(x, y)).Sub(snap.toShape.Apply(geom.Pt(downX, downY)))
		return r.MoveControlPoint(*hit.Point, snap.Anchor.Add(d))
	}

	slog.Debug("ignoring hit without an edit", "type", hit.Type.String())
	return false
}

// resize grows or shrinks b by the drag delta. Each direction touches only
// its own edges.
func resize(b geom.Bounds, h HitType, dx, dy float64) geom.Bounds {
	b = b.Norm()
	switch h {
	case HitSizeN:
		b.Y += dy
		b.Height -= dy
	case HitSizeNE:
		b.Y += dy
		b.Height -= dy
		b.Width += dx
	case HitSizeE:
		b.Width += dx
	case HitSizeSE:
		b.Width += dx
		b.Height += dy
	case HitSizeS:
		b.Height += dy
	case HitSizeSW:
		b.X += dx
		b.Width -= dx
		b.Height += dy
	case HitSizeW:
		b.X += dx
		b.Width -= dx
	case HitSizeNW:
		b.X += dx
		b.Width -= dx
		b.Y += dy
		b.Height -= dy
	}
	return b
}

// Rollback puts s back into its snapshotted state.
func (c *Controller) Rollback(s scene.Shape, snap *Snapshot) {
	if !restore(s, snap) {
		s.SetBounds(snap.Bounds)
	}
	s.SetAngle(snap.Angle)
}

// restore reinstates the captured kind-specific state, if there is any.
func restore(s scene.Shape, snap *Snapshot) bool {
	r, ok := s.(scene.Restorer)
	if !ok || snap.memento == nil {
		return false
	}
	r.Restore(snap.memento)
	return true
}

func parentTransform(s scene.Shape) geom.Matrix2D {
	if p := s.Parent(); p != nil {
		return p.ChildTransform()
	}
	return geom.Identity()
}

// DrawControls paints the shape's handles in scene space.
func (c *Controller) DrawControls(ctx render.Context, s scene.Shape) {
	r := c.cfg.ControlRadius
	ctx.Save()
	ctx.Transform(s.GlobalTransform())
	ctx.SetStrokeStyle(HandleColor)
	ctx.SetLineWidth(1)

	b := s.BoundingBox()
	ctx.StrokeRect(b.Left(), b.Top(), b.Right()-b.Left(), b.Bottom()-b.Top())

	for _, cp := range c.ControlPoints(s) {
		switch cp.Type {
		case HitRotate, HitControl:
			ctx.BeginPath()
			ctx.Arc(cp.X, cp.Y, r/2, 0, 2*math.Pi, false)
			ctx.Stroke()
		default:
			ctx.StrokeRect(cp.X-r/2, cp.Y-r/2, r, r)
		}
	}
	ctx.Restore()
}

// HandleColor is the stroke used for selection outlines and handles.
const HandleColor = "#0096ff"
