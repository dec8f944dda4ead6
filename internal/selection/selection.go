// Package selection tracks the set of selected shapes, their gesture
// snapshots, and the operations that act on all of them at once.
package selection

import (
	"github.com/inamate/vecdraw/internal/control"
	"github.com/inamate/vecdraw/internal/event"
	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/scene"
	"github.com/inamate/vecdraw/internal/typeid"
)

// Selection is an ordered set of shapes keyed by id, with one snapshot per
// member. Membership changes are validated through its hub.
type Selection struct {
	id        string
	ctrl      *control.Controller
	members   []scene.Shape
	snapshots map[string]*control.Snapshot
	events    *event.Hub
}

// New creates an empty selection that snapshots through ctrl.
func New(ctrl *control.Controller) *Selection {
	return &Selection{
		id:        typeid.NewSelectionID(),
		ctrl:      ctrl,
		snapshots: make(map[string]*control.Snapshot),
		events:    event.NewHub(),
	}
}

// ID returns the selection's id.
func (s *Selection) ID() string { return s.id }

// Events returns the hub that fires ShapesSelected and ShapesUnselected.
func (s *Selection) Events() *event.Hub { return s.events }

// Count returns the number of members.
func (s *Selection) Count() int { return len(s.members) }

// Get returns member i.
func (s *Selection) Get(i int) scene.Shape { return s.members[i] }

// Shapes returns a copy of the members.
func (s *Selection) Shapes() []scene.Shape {
	return append([]scene.Shape(nil), s.members...)
}

// Contains reports whether sh is selected.
func (s *Selection) Contains(sh scene.Shape) bool {
	return sh != nil && s.indexOf(sh.ID()) >= 0
}

func (s *Selection) indexOf(id string) int {
	for i, m := range s.members {
		if m.ID() == id {
			return i
		}
	}
	return -1
}

// Add selects sh. It reports false if a validator vetoed the change.
func (s *Selection) Add(sh scene.Shape) bool {
	if sh == nil {
		return false
	}
	if s.Contains(sh) {
		return true
	}
	e := &event.Event{Source: s, New: []scene.Shape{sh}}
	if !s.events.ValidateBefore(event.ShapesSelected, e) {
		return false
	}
	s.members = append(s.members, sh)
	s.snapshots[sh.ID()] = s.ctrl.Snapshot(sh, control.HitInfo{})
	s.events.TriggerOn(event.ShapesSelected, e)
	return true
}

// Remove unselects sh.
func (s *Selection) Remove(sh scene.Shape) bool {
	if sh == nil {
		return false
	}
	i := s.indexOf(sh.ID())
	if i < 0 {
		return true
	}
	e := &event.Event{Source: s, Old: []scene.Shape{sh}}
	if !s.events.ValidateBefore(event.ShapesUnselected, e) {
		return false
	}
	s.members = append(s.members[:i], s.members[i+1:]...)
	delete(s.snapshots, sh.ID())
	s.events.TriggerOn(event.ShapesUnselected, e)
	return true
}

// Toggle flips sh's membership.
func (s *Selection) Toggle(sh scene.Shape) bool {
	if s.Contains(sh) {
		return s.Remove(sh)
	}
	return s.Add(sh)
}

// Clear unselects every member in one validated change.
func (s *Selection) Clear() bool {
	if len(s.members) == 0 {
		return true
	}
	e := &event.Event{Source: s, Old: s.Shapes()}
	if !s.events.ValidateBefore(event.ShapesUnselected, e) {
		return false
	}
	s.members = nil
	s.snapshots = make(map[string]*control.Snapshot)
	s.events.TriggerOn(event.ShapesUnselected, e)
	return true
}

// Set replaces the selection with shapes.
func (s *Selection) Set(shapes ...scene.Shape) bool {
	if !s.Clear() {
		return false
	}
	ok := true
	for _, sh := range shapes {
		ok = s.Add(sh) && ok
	}
	return ok
}

// Checkpoint refreshes every member's snapshot. It is called once at gesture
// start; hit anchors the snapshot of the shape that was hit.
func (s *Selection) Checkpoint(hit control.HitInfo) {
	for _, m := range s.members {
		h := control.HitInfo{}
		if hit.Shape != nil && hit.Shape.ID() == m.ID() {
			h = hit
		}
		s.snapshots[m.ID()] = s.ctrl.Snapshot(m, h)
	}
}

// Snapshot returns the stored snapshot for a member id.
func (s *Selection) Snapshot(id string) *control.Snapshot {
	return s.snapshots[id]
}

// Apply replays a drag from the checkpoint. A move applies to every member;
// resize, rotate and control edits apply only to the shape that was hit.
func (s *Selection) Apply(hit control.HitInfo, downX, downY, x, y float64) {
	if hit.Type == control.HitMove {
		for _, m := range s.members {
			if snap := s.snapshots[m.ID()]; snap != nil {
				s.ctrl.Apply(m, hit, snap, downX, downY, x, y)
			}
		}
		return
	}
	if hit.Shape == nil {
		return
	}
	if snap := s.snapshots[hit.Shape.ID()]; snap != nil {
		s.ctrl.Apply(hit.Shape, hit, snap, downX, downY, x, y)
	}
}

// Rollback restores every member to its checkpoint.
func (s *Selection) Rollback() {
	for _, m := range s.members {
		if snap := s.snapshots[m.ID()]; snap != nil {
			s.ctrl.Rollback(m, snap)
		}
	}
}

// Bounds returns the union of the members' boxes in scene space. ok is false
// for an empty selection.
func (s *Selection) Bounds() (b geom.Bounds, ok bool) {
	for i, m := range s.members {
		mb := m.GlobalTransform().TransformRect(m.BoundingBox())
		if i == 0 {
			b = mb
		} else {
			b = b.Union(mb)
		}
	}
	return b, len(s.members) > 0
}
