package engine

import (
	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/path"
	"github.com/inamate/vecdraw/internal/scene"
)

// NodeInfo is the JSON view of one shape and its subtree.
type NodeInfo struct {
	ID       string      `json:"id"`
	Kind     string      `json:"kind"`
	Bounds   geom.Bounds `json:"bounds"`
	Angle    float64     `json:"angle,omitempty"`
	Pane     string      `json:"pane"`
	Visible  bool        `json:"visible"`
	Style    scene.Style `json:"style"`
	Radius   float64     `json:"radius,omitempty"`
	D        string      `json:"d,omitempty"`
	Origin   *geom.Point `json:"origin,omitempty"`
	Children []NodeInfo  `json:"children,omitempty"`
}

// Describe returns the tree rooted at s.
func Describe(s scene.Shape) NodeInfo {
	info := NodeInfo{
		ID:      s.ID(),
		Kind:    kindOf(s),
		Bounds:  s.BoundingBox(),
		Angle:   s.Angle(),
		Pane:    s.Pane(),
		Visible: s.Visible(),
		Style:   s.Style(),
	}
	switch v := s.(type) {
	case *scene.Circle:
		info.Radius = v.Radius()
	case *path.Path:
		info.D = v.SVGData()
	case scene.Container:
		o := v.Origin()
		info.Origin = &o
		for _, c := range v.Children() {
			info.Children = append(info.Children, Describe(c))
		}
	}
	return info
}

func kindOf(s scene.Shape) string {
	switch s.(type) {
	case *scene.Scene:
		return "scene"
	case *scene.Group:
		return "group"
	case *scene.Rectangle:
		return "rect"
	case *scene.Circle:
		return "circle"
	case *path.Path:
		return "path"
	default:
		return "shape"
	}
}
