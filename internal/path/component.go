package path

import (
	"github.com/inamate/vecdraw/internal/geom"
)

// Kind is the type of a path component.
type Kind int

const (
	KindMove Kind = iota
	KindLine
	KindQuad
	KindCubic
	KindArc
	KindClose
)

func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindLine:
		return "line"
	case KindQuad:
		return "quad"
	case KindCubic:
		return "cubic"
	case KindArc:
		return "arc"
	case KindClose:
		return "close"
	}
	return "unknown"
}

// Coords selects how builder coordinates are read: absolute, or relative to
// the path's current point.
type Coords int

const (
	Abs Coords = iota
	Rel
)

// component is one segment of the arena. Its start is the end of the
// component before it; pts holds the remaining points in absolute form,
// ending with the segment's end point (a close stores none).
type component struct {
	kind  Kind
	pts   []geom.Point
	rx    float64
	ry    float64
	phi   float64 // radians
	large bool
	sweep bool

	bbox  geom.Bounds
	stale bool
}

func (c component) clone() component {
	c.pts = append([]geom.Point(nil), c.pts...)
	return c
}

// Segment is a read-only view of a component.
type Segment struct {
	Kind     Kind         `json:"kind"`
	Points   []geom.Point `json:"points,omitempty"`
	RX       float64      `json:"rx,omitempty"`
	RY       float64      `json:"ry,omitempty"`
	Rotation float64      `json:"rotation,omitempty"`
	LargeArc bool         `json:"largeArc,omitempty"`
	Sweep    bool         `json:"sweep,omitempty"`
}

// Ref addresses one coordinate of one component. It is carried as the
// Extra of path control points.
type Ref struct {
	Component int
	Point     int
}
