package scene

import (
	"log/slog"

	"github.com/inamate/vecdraw/internal/event"
	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/render"
	"github.com/inamate/vecdraw/internal/typeid"
)

// Group owns an ordered list of children; index order is paint order, so the
// last child is drawn on top. Children live in a local space offset by the
// group's origin.
type Group struct {
	Node
	children []Shape
	origin   geom.Point
	override *geom.Bounds
}

// NewGroup creates an empty group with its origin at (x, y).
func NewGroup(x, y float64) *Group {
	g := &Group{origin: geom.Pt(x, y)}
	g.Init(g, typeid.NewGroupID())
	return g
}

// Children returns the children in paint order. The slice must not be
// modified.
func (g *Group) Children() []Shape { return g.children }

// Len returns the number of children.
func (g *Group) Len() int { return len(g.children) }

// Child returns the child at index i.
func (g *Group) Child(i int) Shape { return g.children[i] }

// Origin returns the offset of the children's local space in the parent's
// space.
func (g *Group) Origin() geom.Point { return g.origin }

// IndexOf returns the paint index of child, or -1.
func (g *Group) IndexOf(child Shape) int {
	for i, c := range g.children {
		if c.Base() == child.Base() {
			return i
		}
	}
	return -1
}

// ChildTransform maps the children's local space into scene space.
func (g *Group) ChildTransform() geom.Matrix2D {
	return g.GlobalTransform().Multiply(geom.Translate(g.origin.X, g.origin.Y))
}

// SetBoundsOverride pins the group's bounding box regardless of its children.
func (g *Group) SetBoundsOverride(b geom.Bounds) {
	b = b.Norm()
	g.override = &b
	g.MarkTransformed()
}

// ClearBoundsOverride returns to deriving the box from the children.
func (g *Group) ClearBoundsOverride() {
	g.override = nil
	g.MarkTransformed()
}

// EvalBoundingBox is the union of the children's outer boxes shifted by the
// origin. An empty group is a zero-size box at its origin.
func (g *Group) EvalBoundingBox() geom.Bounds {
	if g.override != nil {
		return *g.override
	}
	if len(g.children) == 0 {
		return geom.Bounds{X: g.origin.X, Y: g.origin.Y}
	}
	b := g.children[0].OuterBounds()
	for _, c := range g.children[1:] {
		b = b.Union(c.OuterBounds())
	}
	return b.Move(g.origin.X, g.origin.Y)
}

// ReshapeBounds scales every child about the local origin and moves the
// origin so the union lands on `to`.
func (g *Group) ReshapeBounds(from, to geom.Bounds) {
	if g.override != nil {
		g.override = &to
		return
	}
	sx, sy := 1.0, 1.0
	if from.Width != 0 {
		sx = to.Width / from.Width
	}
	if from.Height != 0 {
		sy = to.Height / from.Height
	}
	g.origin = geom.Pt(
		to.X-(from.X-g.origin.X)*sx,
		to.Y-(from.Y-g.origin.Y)*sy,
	)
	if sx == 1 && sy == 1 {
		return
	}
	for _, c := range g.children {
		cb := c.BoundingBox()
		c.SetBounds(geom.Rect(cb.X*sx, cb.Y*sy, cb.Width*sx, cb.Height*sy))
	}
}

// ConstrainBounds accepts any box.
func (g *Group) ConstrainBounds(b geom.Bounds) geom.Bounds { return b }

// Draw is a no-op; a group has no geometry of its own.
func (g *Group) Draw(ctx render.Context) {}

// Add appends child on top of the paint order.
func (g *Group) Add(child Shape) error {
	return g.Insert(child, len(g.children))
}

// Insert places child at index, detaching it from its current parent first.
// Both the removal from the old parent and the addition here are validated
// before anything changes, so a veto leaves the graph untouched.
func (g *Group) Insert(child Shape, index int) error {
	if child == nil {
		return ErrNilShape
	}
	if _, ok := child.(*Scene); ok {
		return ErrSceneChild
	}
	if g.isDescendantOf(child) {
		return ErrCycle
	}

	old := child.Parent()
	if old == g {
		return g.moveChild(child, index)
	}

	removed := &event.Event{Source: old, Old: child}
	if old != nil && !old.events.ValidateBefore(event.ChildRemoved, removed) {
		return ErrVetoed
	}
	added := &event.Event{Source: g, New: child}
	if !g.events.ValidateBefore(event.ChildAdded, added) {
		return ErrVetoed
	}

	if old != nil {
		old.detach(child)
		old.events.TriggerOn(event.ChildRemoved, removed)
	}
	g.attach(child, index)
	g.events.TriggerOn(event.ChildAdded, added)
	slog.Debug("child added", "group", g.id, "child", child.ID(), "index", g.IndexOf(child))
	return nil
}

// Remove detaches child from the group.
func (g *Group) Remove(child Shape) error {
	if child == nil {
		return ErrNilShape
	}
	if child.Parent() != g {
		return ErrNotChild
	}
	e := &event.Event{Source: g, Old: child}
	if !g.events.ValidateBefore(event.ChildRemoved, e) {
		return ErrVetoed
	}
	g.detach(child)
	g.events.TriggerOn(event.ChildRemoved, e)
	return nil
}

// isDescendantOf reports whether g is s or sits somewhere below s.
func (g *Group) isDescendantOf(s Shape) bool {
	target := s.Base()
	for p := g; p != nil; p = p.parent {
		if &p.Node == target {
			return true
		}
	}
	return false
}

func (g *Group) attach(child Shape, index int) {
	index = clampIndex(index, len(g.children))
	g.children = append(g.children, nil)
	copy(g.children[index+1:], g.children[index:])
	g.children[index] = child

	n := child.Base()
	n.parent = g
	n.link = n.events.Chain(g.events)
	child.MarkTransformed()
}

func (g *Group) detach(child Shape) {
	i := g.IndexOf(child)
	if i < 0 {
		return
	}
	g.children = append(g.children[:i], g.children[i+1:]...)

	n := child.Base()
	n.link.Cancel()
	n.link = event.Subscription{}
	n.parent = nil
	n.MarkTransformed()
	g.MarkTransformed()
}

// moveChild changes the paint index of an existing child.
func (g *Group) moveChild(child Shape, index int) error {
	from := g.IndexOf(child)
	if from < 0 {
		return ErrNotChild
	}
	to := clampIndex(index, len(g.children)-1)
	if from == to {
		return nil
	}
	e := &event.Event{Source: child, Old: from, New: to}
	if !g.events.ValidateBefore(event.ZOrderChanged, e) {
		return ErrVetoed
	}
	g.children = append(g.children[:from], g.children[from+1:]...)
	g.children = append(g.children, nil)
	copy(g.children[to+1:], g.children[to:])
	g.children[to] = child
	g.events.TriggerOn(event.ZOrderChanged, e)
	return nil
}

func clampIndex(i, hi int) int {
	if i < 0 {
		return 0
	}
	if i > hi {
		return hi
	}
	return i
}

// AsGroup returns the group itself; it lets a Scene be handled as a Group.
func (g *Group) AsGroup() *Group { return g }
