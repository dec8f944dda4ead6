package scene

import (
	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/render"
)

// tagger is implemented by contexts that attribute commands to shapes, such
// as render.Recorder.
type tagger interface {
	Tag(objectID string)
}

// Render draws root and its descendants in painter's order.
func Render(ctx render.Context, root Shape) {
	renderShape(ctx, root, func(Shape) bool { return true })
}

// RenderPane draws only the shapes tagged with pane. Shapes in other panes
// still contribute their transforms to their descendants.
func RenderPane(ctx render.Context, root Shape, pane string) {
	renderShape(ctx, root, func(s Shape) bool { return s.Pane() == pane })
}

func renderShape(ctx render.Context, s Shape, include func(Shape) bool) {
	if !s.Visible() {
		return
	}
	ctx.Save()
	if lt := s.LocalTransform(); !lt.IsIdentity() {
		ctx.Transform(lt)
	}
	if include(s) {
		if t, ok := ctx.(tagger); ok {
			t.Tag(s.ID())
		}
		s.Draw(ctx)
	}
	if c, ok := s.(Container); ok && len(c.Children()) > 0 {
		o := c.Origin()
		ctx.Save()
		if o.X != 0 || o.Y != 0 {
			ctx.Transform(geom.Translate(o.X, o.Y))
		}
		for _, child := range c.Children() {
			renderShape(ctx, child, include)
		}
		ctx.Restore()
	}
	ctx.Restore()
}
