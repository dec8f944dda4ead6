package geom

import "math"

// Bounds is an axis-aligned rectangle. Width and Height may be negative while
// a rectangle is being dragged out; Left/Top/Right/Bottom always normalize.
type Bounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is shorthand for Bounds{x, y, w, h}.
func Rect(x, y, w, h float64) Bounds {
	return Bounds{X: x, Y: y, Width: w, Height: h}
}

// BoundsOfPoints returns the smallest bounds containing every point.
// It returns the zero Bounds when pts is empty.
func BoundsOfPoints(pts ...Point) Bounds {
	if len(pts) == 0 {
		return Bounds{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Bounds{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Left returns the smaller x edge.
func (b Bounds) Left() float64 { return math.Min(b.X, b.X+b.Width) }

// Top returns the smaller y edge.
func (b Bounds) Top() float64 { return math.Min(b.Y, b.Y+b.Height) }

// Right returns Left() + |Width|.
func (b Bounds) Right() float64 { return b.Left() + math.Abs(b.Width) }

// Bottom returns Top() + |Height|.
func (b Bounds) Bottom() float64 { return b.Top() + math.Abs(b.Height) }

// Norm returns b with non-negative width and height covering the same area.
func (b Bounds) Norm() Bounds {
	return Bounds{X: b.Left(), Y: b.Top(), Width: math.Abs(b.Width), Height: math.Abs(b.Height)}
}

// CenterX returns the horizontal center.
func (b Bounds) CenterX() float64 { return b.X + b.Width/2 }

// CenterY returns the vertical center.
func (b Bounds) CenterY() float64 { return b.Y + b.Height/2 }

// Center returns the center point of the rect.
func (b Bounds) Center() Point { return Point{X: b.CenterX(), Y: b.CenterY()} }

// InnerRadius returns the radius of the largest circle centered in b.
func (b Bounds) InnerRadius() float64 {
	return math.Min(math.Abs(b.Width), math.Abs(b.Height)) / 2
}

// Min returns the normalized top-left corner.
func (b Bounds) Min() Point { return Point{X: b.Left(), Y: b.Top()} }

// Max returns the normalized bottom-right corner.
func (b Bounds) Max() Point { return Point{X: b.Right(), Y: b.Bottom()} }

// IsEmpty checks if the rect has zero area.
func (b Bounds) IsEmpty() bool {
	return b.Width == 0 || b.Height == 0
}

// ContainsPoint reports whether p lies inside b, edges included.
func (b Bounds) ContainsPoint(p Point) bool {
	return p.X >= b.Left() && p.X <= b.Right() && p.Y >= b.Top() && p.Y <= b.Bottom()
}

// Contains checks if a point is inside the rect.
func (b Bounds) Contains(x, y float64) bool {
	return b.ContainsPoint(Point{X: x, Y: y})
}

// Move returns b offset by (dx, dy).
func (b Bounds) Move(dx, dy float64) Bounds {
	b.X += dx
	b.Y += dy
	return b
}

// Union returns the smallest rect containing both rects. Unlike an area
// union, a zero-sized operand still contributes its position, so the union of
// point-like bounds is the rectangle spanning them.
func (b Bounds) Union(other Bounds) Bounds {
	minX := math.Min(b.Left(), other.Left())
	minY := math.Min(b.Top(), other.Top())
	maxX := math.Max(b.Right(), other.Right())
	maxY := math.Max(b.Bottom(), other.Bottom())

	return Bounds{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Corners returns the four normalized corners clockwise from the top-left.
func (b Bounds) Corners() [4]Point {
	l, t, r, btm := b.Left(), b.Top(), b.Right(), b.Bottom()
	return [4]Point{{l, t}, {r, t}, {r, btm}, {l, btm}}
}

// Equal reports whether b and o match within eps on every field after
// normalization.
func (b Bounds) Equal(o Bounds, eps float64) bool {
	b, o = b.Norm(), o.Norm()
	return math.Abs(b.X-o.X) <= eps && math.Abs(b.Y-o.Y) <= eps &&
		math.Abs(b.Width-o.Width) <= eps && math.Abs(b.Height-o.Height) <= eps
}
