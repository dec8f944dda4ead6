package selection

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/scene"
)

// partition is a run of selected siblings in paint order.
type partition struct {
	parent  *scene.Group
	members []scene.Shape
}

// partitions splits the members by parent, keeping each partition in its
// parent's paint order.
func (s *Selection) partitions() []partition {
	var parts []partition
	index := make(map[*scene.Group]int)
	for _, m := range s.members {
		p := m.Parent()
		if p == nil {
			continue
		}
		i, ok := index[p]
		if !ok {
			i = len(parts)
			index[p] = i
			parts = append(parts, partition{parent: p})
		}
		parts[i].members = append(parts[i].members, m)
	}
	for _, part := range parts {
		p := part.parent
		sort.SliceStable(part.members, func(a, b int) bool {
			return p.IndexOf(part.members[a]) < p.IndexOf(part.members[b])
		})
	}
	return parts
}

// Group wraps every set of two or more selected siblings in a new group
// placed where the topmost of them was. The new groups replace their members
// in the selection.
func (s *Selection) Group() ([]*scene.Group, error) {
	var groups []*scene.Group
	for _, part := range s.partitions() {
		if len(part.members) < 2 {
			continue
		}
		g, err := groupSiblings(part.parent, part.members)
		if err != nil {
			return groups, err
		}
		groups = append(groups, g)
		slog.Debug("grouped shapes", "group", g.ID(), "count", len(part.members))
		if err := s.replace(part.members, []scene.Shape{g}); err != nil {
			return groups, err
		}
	}
	return groups, nil
}

// replace swaps out for in within the selection. The scene edit has already
// happened, so a veto is reported but not undone.
func (s *Selection) replace(out, in []scene.Shape) error {
	var vetoed []string
	for _, sh := range out {
		if !s.Remove(sh) {
			vetoed = append(vetoed, sh.ID())
		}
	}
	for _, sh := range in {
		if !s.Add(sh) {
			vetoed = append(vetoed, sh.ID())
		}
	}
	if len(vetoed) > 0 {
		slog.Warn("selection update vetoed", "shapes", vetoed)
		return fmt.Errorf("update selection %v: %w", vetoed, scene.ErrVetoed)
	}
	return nil
}

type placement struct {
	shape  scene.Shape
	bounds geom.Bounds
	index  int
}

func groupSiblings(parent *scene.Group, members []scene.Shape) (*scene.Group, error) {
	union := members[0].OuterBounds()
	top := parent.IndexOf(members[0])
	for _, m := range members[1:] {
		union = union.Union(m.OuterBounds())
		if i := parent.IndexOf(m); i > top {
			top = i
		}
	}

	g := scene.NewGroup(union.X, union.Y)
	if err := parent.Insert(g, top+1); err != nil {
		return nil, fmt.Errorf("insert group: %w", err)
	}

	var moved []placement
	for _, m := range members {
		pl := placement{shape: m, bounds: m.BoundingBox(), index: parent.IndexOf(m)}
		if err := g.Add(m); err != nil {
			undoGroup(parent, g, moved)
			return nil, fmt.Errorf("move %s into group: %w", m.ID(), err)
		}
		moved = append(moved, pl)
		m.SetBounds(pl.bounds.Move(-union.X, -union.Y))
	}
	return g, nil
}

// undoGroup puts already moved members back and drops the group.
func undoGroup(parent, g *scene.Group, moved []placement) {
	for i := len(moved) - 1; i >= 0; i-- {
		pl := moved[i]
		if err := parent.Insert(pl.shape, pl.index); err != nil {
			slog.Warn("failed to restore shape after group error", "shape", pl.shape.ID(), "error", err)
			continue
		}
		pl.shape.SetBounds(pl.bounds)
	}
	if err := parent.Remove(g); err != nil {
		slog.Warn("failed to drop group after group error", "group", g.ID(), "error", err)
	}
}

// Ungroup dissolves every selected group into its parent. Children keep
// their scene position and are selected in place of the group.
func (s *Selection) Ungroup() ([]scene.Shape, error) {
	var released []scene.Shape
	for _, m := range s.Shapes() {
		g, ok := m.(*scene.Group)
		if !ok || g.Parent() == nil {
			continue
		}
		children, err := ungroup(g)
		if err != nil {
			return released, err
		}
		released = append(released, children...)
		if err := s.replace([]scene.Shape{g}, children); err != nil {
			return released, err
		}
	}
	return released, nil
}

func ungroup(g *scene.Group) ([]scene.Shape, error) {
	parent := g.Parent()
	at := parent.IndexOf(g)
	toParent := g.LocalTransform()
	origin := g.Origin()
	angle := g.Angle()

	children := append([]scene.Shape(nil), g.Children()...)
	for k, c := range children {
		b := c.BoundingBox()
		center := toParent.Apply(b.Center().Add(origin))
		if err := parent.Insert(c, at+k); err != nil {
			return children[:k], fmt.Errorf("move %s out of group: %w", c.ID(), err)
		}
		c.SetBounds(geom.Rect(center.X-b.Width/2, center.Y-b.Height/2, b.Width, b.Height))
		if angle != 0 {
			c.SetAngle(c.Angle() + angle)
		}
	}
	if err := parent.Remove(g); err != nil {
		return children, fmt.Errorf("remove group: %w", err)
	}
	return children, nil
}

// BringForward raises every member one step within its parent.
func (s *Selection) BringForward() { s.restack(true, scene.BringForward) }

// SendBackward lowers every member one step within its parent.
func (s *Selection) SendBackward() { s.restack(false, scene.SendBackward) }

// BringToFront moves every member to the top of its parent, keeping their
// relative order.
func (s *Selection) BringToFront() { s.restack(false, scene.BringToFront) }

// SendToBack moves every member to the bottom of its parent, keeping their
// relative order.
func (s *Selection) SendToBack() { s.restack(true, scene.SendToBack) }

// restack applies op to the members of each partition, topmost first when
// topFirst is set.
func (s *Selection) restack(topFirst bool, op func(scene.Shape) bool) {
	for _, part := range s.partitions() {
		members := part.members
		if topFirst {
			for i := len(members) - 1; i >= 0; i-- {
				op(members[i])
			}
			continue
		}
		for _, m := range members {
			op(m)
		}
	}
}
