package scene

import (
	"github.com/inamate/vecdraw/internal/event"
	"github.com/inamate/vecdraw/internal/geom"
)

// Restorer is implemented by kinds whose geometry cannot be rebuilt from the
// bounding box alone, because rescaling them is lossy or because their state
// lives in descendants.
type Restorer interface {
	// Capture returns an opaque copy of the kind-specific state.
	Capture() interface{}
	// Restore reinstates a value returned by Capture without validation.
	Restore(memento interface{})
}

type childState struct {
	shape   Shape
	bounds  geom.Bounds
	angle   float64
	memento interface{}
}

type groupState struct {
	origin   geom.Point
	override *geom.Bounds
	children []childState
}

// Capture records the origin and the geometry of every descendant.
func (g *Group) Capture() interface{} {
	st := &groupState{origin: g.origin, children: make([]childState, len(g.children))}
	if g.override != nil {
		b := *g.override
		st.override = &b
	}
	for i, c := range g.children {
		cs := childState{shape: c, bounds: c.BoundingBox(), angle: c.Angle()}
		if r, ok := c.(Restorer); ok {
			cs.memento = r.Capture()
		}
		st.children[i] = cs
	}
	return st
}

// Restore puts the group and its descendants back to a captured state.
// Children that left the group since the capture are skipped.
func (g *Group) Restore(memento interface{}) {
	st, ok := memento.(*groupState)
	if !ok {
		return
	}
	old := g.BoundingBox()
	for _, cs := range st.children {
		if cs.shape.Parent() != g {
			continue
		}
		if r, ok := cs.shape.(Restorer); ok && cs.memento != nil {
			r.Restore(cs.memento)
		} else {
			cs.shape.SetBounds(cs.bounds)
		}
		cs.shape.SetAngle(cs.angle)
	}
	g.origin = st.origin
	g.override = nil
	if st.override != nil {
		b := *st.override
		g.override = &b
	}
	g.MarkTransformed()
	g.events.TriggerOn(event.BoundsChanged, &event.Event{Source: g, Name: "restore", Old: old, New: g.BoundingBox()})
}
