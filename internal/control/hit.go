// Package control turns pointer coordinates into shape edits: it enumerates
// a shape's control points, hit-tests them, snapshots the shape at gesture
// start and applies drag deltas against that snapshot.
package control

import (
	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/scene"
)

// HitType identifies what part of a shape a pointer landed on.
type HitType int

const (
	HitNone HitType = iota
	HitMove
	HitSizeN
	HitSizeNE
	HitSizeE
	HitSizeSE
	HitSizeS
	HitSizeSW
	HitSizeW
	HitSizeNW
	HitRotate
	HitControl
)

var hitNames = map[HitType]string{
	HitNone:    "none",
	HitMove:    "move",
	HitSizeN:   "size-n",
	HitSizeNE:  "size-ne",
	HitSizeE:   "size-e",
	HitSizeSE:  "size-se",
	HitSizeS:   "size-s",
	HitSizeSW:  "size-sw",
	HitSizeW:   "size-w",
	HitSizeNW:  "size-nw",
	HitRotate:  "rotate",
	HitControl: "control",
}

func (h HitType) String() string {
	if s, ok := hitNames[h]; ok {
		return s
	}
	return "unknown"
}

// IsSize reports whether h is one of the eight resize directions.
func (h HitType) IsSize() bool {
	return h >= HitSizeN && h <= HitSizeNW
}

// Cursor returns the CSS cursor shown while hovering a hit of this type.
func (h HitType) Cursor() string {
	switch h {
	case HitMove:
		return "move"
	case HitSizeN:
		return "n-resize"
	case HitSizeNE:
		return "ne-resize"
	case HitSizeE:
		return "e-resize"
	case HitSizeSE:
		return "se-resize"
	case HitSizeS:
		return "s-resize"
	case HitSizeSW:
		return "sw-resize"
	case HitSizeW:
		return "w-resize"
	case HitSizeNW:
		return "nw-resize"
	case HitRotate:
		return "grab"
	case HitControl:
		return "crosshair"
	default:
		return "default"
	}
}

// ControlPoint is a draggable handle in the owning shape's coordinate space.
// Extra carries shape-specific routing data, e.g. which path component and
// coordinate the handle edits.
type ControlPoint struct {
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Type   HitType     `json:"type"`
	Index  int         `json:"index"`
	Cursor string      `json:"cursor"`
	Extra  interface{} `json:"-"`
}

// Pos returns the handle position.
func (cp ControlPoint) Pos() geom.Point { return geom.Pt(cp.X, cp.Y) }

// HitInfo identifies what was hit. Point is set for control point hits.
type HitInfo struct {
	Shape  scene.Shape
	Type   HitType
	Index  int
	Cursor string
	Point  *ControlPoint
}

// Hit reports whether anything was hit.
func (h HitInfo) Hit() bool { return h.Type != HitNone && h.Shape != nil }

// Reshaper is implemented by shapes that expose their own control points
// ahead of the generic resize and rotate handles.
type Reshaper interface {
	scene.Shape
	ControlPoints() []ControlPoint
	// MoveControlPoint moves the handle cp to `to` in shape space. It
	// reports whether the edit was applied.
	MoveControlPoint(cp ControlPoint, to geom.Point) bool
	scene.Restorer
}

// Snapshot holds a shape's state at gesture start. Deltas during a drag are
// always computed against it, never against the previous move.
type Snapshot struct {
	Bounds geom.Bounds
	Angle  float64

	// toParent maps scene coordinates into the shape's parent space and
	// toShape into the shape's own space, both as of gesture start.
	toParent geom.Matrix2D
	toShape  geom.Matrix2D

	// Anchor is the hit control point's position at gesture start.
	Anchor  geom.Point
	memento interface{}
}
