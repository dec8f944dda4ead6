package scene

import (
	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/typeid"
)

// Scene is the root group. It can never be added to another group.
type Scene struct {
	Group
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	s := &Scene{}
	s.Init(s, typeid.NewSceneID())
	return s
}

// Walk visits root and its descendants depth first in paint order. Returning
// false from fn skips the shape's children.
func Walk(root Shape, fn func(s Shape) bool) {
	if !fn(root) {
		return
	}
	if c, ok := root.(Container); ok {
		for _, child := range c.Children() {
			Walk(child, fn)
		}
	}
}

// FindByID returns the shape with the given id under root, or nil.
func FindByID(root Shape, id string) Shape {
	var found Shape
	Walk(root, func(s Shape) bool {
		if found != nil {
			return false
		}
		if s.ID() == id {
			found = s
			return false
		}
		return true
	})
	return found
}

// Container is implemented by shapes that own children.
type Container interface {
	Shape
	Children() []Shape
	Origin() geom.Point
	AsGroup() *Group
}
