package scene

import (
	"math"

	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/render"
	"github.com/inamate/vecdraw/internal/typeid"
)

// Rectangle is an axis-aligned box that accepts any bounds.
type Rectangle struct {
	Node
	rect geom.Bounds
}

// NewRectangle creates a rectangle at (x, y) of size w by h.
func NewRectangle(x, y, w, h float64) (*Rectangle, error) {
	if w < 0 || h < 0 {
		return nil, ErrNegativeSize
	}
	r := &Rectangle{rect: geom.Rect(x, y, w, h)}
	r.Init(r, typeid.NewShapeID())
	return r, nil
}

func (r *Rectangle) EvalBoundingBox() geom.Bounds               { return r.rect }
func (r *Rectangle) ReshapeBounds(from, to geom.Bounds)        { r.rect = to }
func (r *Rectangle) ConstrainBounds(b geom.Bounds) geom.Bounds { return b }

func (r *Rectangle) Draw(ctx render.Context) {
	b := r.rect
	ctx.BeginPath()
	ctx.MoveTo(b.X, b.Y)
	ctx.LineTo(b.X+b.Width, b.Y)
	ctx.LineTo(b.X+b.Width, b.Y+b.Height)
	ctx.LineTo(b.X, b.Y+b.Height)
	ctx.ClosePath()
	r.style.Paint(ctx)
}

// Circle keeps equal sides: any requested bounds shrink to a square of the
// smaller side anchored at the requested top-left corner.
type Circle struct {
	Node
	center geom.Point
	radius float64
}

// NewCircle creates a circle centered at (cx, cy).
func NewCircle(cx, cy, r float64) (*Circle, error) {
	if r < 0 {
		return nil, ErrNegativeRadius
	}
	c := &Circle{center: geom.Pt(cx, cy), radius: r}
	c.Init(c, typeid.NewShapeID())
	return c, nil
}

// Center returns the circle's center.
func (c *Circle) Center() geom.Point { return c.center }

// Radius returns the circle's radius.
func (c *Circle) Radius() float64 { return c.radius }

// SetRadius resizes the circle about its center.
func (c *Circle) SetRadius(r float64) (bool, error) {
	if r < 0 {
		return false, ErrNegativeRadius
	}
	return c.SetBounds(geom.Rect(c.center.X-r, c.center.Y-r, 2*r, 2*r)), nil
}

func (c *Circle) EvalBoundingBox() geom.Bounds {
	return geom.Rect(c.center.X-c.radius, c.center.Y-c.radius, 2*c.radius, 2*c.radius)
}

func (c *Circle) ReshapeBounds(from, to geom.Bounds) {
	c.center = to.Center()
	c.radius = to.InnerRadius()
}

func (c *Circle) ConstrainBounds(b geom.Bounds) geom.Bounds {
	side := math.Min(b.Width, b.Height)
	return geom.Rect(b.X, b.Y, side, side)
}

func (c *Circle) Draw(ctx render.Context) {
	ctx.BeginPath()
	ctx.Arc(c.center.X, c.center.Y, c.radius, 0, 2*math.Pi, false)
	c.style.Paint(ctx)
}
