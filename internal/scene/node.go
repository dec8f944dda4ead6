// Package scene holds the shape graph: a tree of shapes rooted at a Scene,
// where every mutation goes through the validate-then-commit protocol of the
// event package.
package scene

import (
	"errors"

	"github.com/inamate/vecdraw/internal/event"
	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/render"
)

var (
	ErrNilShape       = errors.New("shape is nil")
	ErrNegativeSize   = errors.New("width and height must not be negative")
	ErrNegativeRadius = errors.New("radius must not be negative")
	ErrCycle          = errors.New("a group cannot contain itself")
	ErrSceneChild     = errors.New("a scene cannot be added to a group")
	ErrNotChild       = errors.New("shape is not a child of this group")
	ErrVetoed         = errors.New("change vetoed by validator")
)

// DefaultPane is the rendering bucket new shapes draw into.
const DefaultPane = "main"

// Shape is implemented by every drawable kind. The shared state and the
// validate-then-commit setters live on the embedded Node; a kind supplies the
// four capability methods below.
type Shape interface {
	Base() *Node

	ID() string
	Parent() *Group
	Events() *event.Hub
	BoundingBox() geom.Bounds
	OuterBounds() geom.Bounds
	SetBounds(b geom.Bounds) bool
	MarkTransformed()
	LastTransformed() uint64
	Angle() float64
	SetAngle(radians float64) bool
	LocalTransform() geom.Matrix2D
	GlobalTransform() geom.Matrix2D
	Style() Style
	SetStyle(s Style) bool
	Pane() string
	Visible() bool

	// EvalBoundingBox derives the bounding box from kind-specific state.
	EvalBoundingBox() geom.Bounds
	// ReshapeBounds re-derives kind-specific state so that the bounding box
	// moves from `from` to `to`.
	ReshapeBounds(from, to geom.Bounds)
	// ConstrainBounds adjusts a requested bounding box to one the kind can
	// take, e.g. forcing equal sides.
	ConstrainBounds(b geom.Bounds) geom.Bounds
	// Draw issues the shape's path and paint calls in its own coordinate
	// space (the parent's space before the shape's rotation).
	Draw(ctx render.Context)
}

// Node is the state every shape shares: identity, ownership, metadata, the
// event hub and the lazily evaluated bounding box.
type Node struct {
	self   Shape
	id     string
	parent *Group
	link   event.Subscription
	events *event.Hub
	defs   map[string]interface{}

	bbox      geom.Bounds
	bboxValid bool
	// rotation holds the bare rotation; its stamp doubles as the shape's
	// transformation stamp.
	rotation *geom.Transform

	angle   float64
	style   Style
	pane    string
	visible bool
}

// Init wires the node to the shape that embeds it. Every constructor of a
// Shape kind must call it before the shape is used.
func (n *Node) Init(self Shape, id string) {
	n.self = self
	n.id = id
	n.events = event.NewHub()
	n.defs = make(map[string]interface{})
	n.style = DefaultStyle()
	n.pane = DefaultPane
	n.visible = true
	n.rotation = geom.NewTransform()
}

// Base returns n itself so kinds satisfy Shape through embedding.
func (n *Node) Base() *Node { return n }

// ID returns the shape's unique id.
func (n *Node) ID() string { return n.id }

// Parent returns the owning group, or nil when detached.
func (n *Node) Parent() *Group { return n.parent }

// Events returns the shape's hub. While attached it is chained to the
// parent's hub.
func (n *Node) Events() *event.Hub { return n.events }

// Defs returns the shape's metadata map.
func (n *Node) Defs() map[string]interface{} { return n.defs }

// BoundingBox returns the shape's box in its own coordinate space,
// re-deriving it if it was invalidated.
func (n *Node) BoundingBox() geom.Bounds {
	if !n.bboxValid {
		n.bbox = n.self.EvalBoundingBox()
		n.bboxValid = true
	}
	return n.bbox
}

// OuterBounds returns the axis-aligned box of the rotated shape in the
// parent's coordinate space.
func (n *Node) OuterBounds() geom.Bounds {
	b := n.BoundingBox()
	if n.angle == 0 {
		return b
	}
	return n.LocalTransform().TransformRect(b)
}

// GlobalBounds returns the axis-aligned box of the shape in scene space.
func (n *Node) GlobalBounds() geom.Bounds {
	return n.GlobalTransform().TransformRect(n.BoundingBox())
}

// MarkTransformed invalidates the cached bounding box and bumps the
// transformation stamp. Ancestors are invalidated too since their boxes
// aggregate this one.
func (n *Node) MarkTransformed() {
	n.bboxValid = false
	n.rotation.Touch()
	if n.parent != nil {
		n.parent.MarkTransformed()
	}
}

// LastTransformed returns the stamp of the last geometry change.
func (n *Node) LastTransformed() uint64 { return n.rotation.Stamp() }

// SetBounds resizes or moves the shape. The request is normalized and
// constrained by the kind, then validated; a vetoed request leaves the shape
// untouched and returns false.
func (n *Node) SetBounds(b geom.Bounds) bool {
	b = n.self.ConstrainBounds(b.Norm())
	old := n.BoundingBox()
	e := &event.Event{Source: n.self, Old: old, New: b}
	if !n.events.ValidateBefore(event.BoundsChanged, e) {
		return false
	}
	n.self.ReshapeBounds(old, b)
	n.MarkTransformed()
	n.events.TriggerOn(event.BoundsChanged, e)
	return true
}

// Angle returns the rotation in radians about the bounding box center.
func (n *Node) Angle() float64 { return n.angle }

// SetAngle sets the rotation about the bounding box center.
func (n *Node) SetAngle(radians float64) bool {
	if radians == n.angle {
		return true
	}
	e := &event.Event{Source: n.self, Name: "angle", Old: n.angle, New: radians}
	if !n.events.ValidateBefore(event.PropertyChanged, e) {
		return false
	}
	n.angle = radians
	n.rotation.Set(geom.Rotate(radians))
	n.MarkTransformed()
	n.events.TriggerOn(event.PropertyChanged, e)
	return true
}

// LocalTransform maps the shape's own space into its parent's space.
func (n *Node) LocalTransform() geom.Matrix2D {
	if n.angle == 0 {
		return geom.Identity()
	}
	return geom.About(n.BoundingBox().Center(), n.rotation.Matrix())
}

// ParentTransform maps the parent's space into scene space.
func (n *Node) ParentTransform() geom.Matrix2D {
	if n.parent == nil {
		return geom.Identity()
	}
	return n.parent.ChildTransform()
}

// GlobalTransform maps the shape's own space into scene space.
func (n *Node) GlobalTransform() geom.Matrix2D {
	return n.ParentTransform().Multiply(n.LocalTransform())
}

// Style returns the paint style.
func (n *Node) Style() Style { return n.style }

// SetStyle replaces the paint style.
func (n *Node) SetStyle(s Style) bool {
	e := &event.Event{Source: n.self, Name: "style", Old: n.style, New: s}
	if !n.events.ValidateBefore(event.StyleChanged, e) {
		return false
	}
	n.style = s
	n.events.TriggerOn(event.StyleChanged, e)
	return true
}

// Pane returns the rendering bucket tag.
func (n *Node) Pane() string { return n.pane }

// SetPane moves the shape to another rendering bucket.
func (n *Node) SetPane(pane string) bool {
	return n.setProperty("pane", n.pane, pane, func() { n.pane = pane })
}

// Visible reports whether the shape is drawn.
func (n *Node) Visible() bool { return n.visible }

// SetVisible shows or hides the shape.
func (n *Node) SetVisible(v bool) bool {
	return n.setProperty("visible", n.visible, v, func() { n.visible = v })
}

func (n *Node) setProperty(name string, old, next interface{}, apply func()) bool {
	if old == next {
		return true
	}
	e := &event.Event{Source: n.self, Name: name, Old: old, New: next}
	if !n.events.ValidateBefore(event.PropertyChanged, e) {
		return false
	}
	apply()
	n.events.TriggerOn(event.PropertyChanged, e)
	return true
}
