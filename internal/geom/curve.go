package geom

import "math"

const curveEpsilon = 1e-12

// CubicAt evaluates the cubic Bezier (p0, p1, p2, p3) at t.
func CubicAt(p0, p1, p2, p3 Point, t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// QuadAt evaluates the quadratic Bezier (p0, p1, p2) at t.
func QuadAt(p0, p1, p2 Point, t float64) Point {
	mt := 1 - t
	return Point{
		X: mt*mt*p0.X + 2*mt*t*p1.X + t*t*p2.X,
		Y: mt*mt*p0.Y + 2*mt*t*p1.Y + t*t*p2.Y,
	}
}

// ElevateQuad returns the two inner control points of the cubic that traces
// exactly the same curve as the quadratic (p0, p1, p2).
func ElevateQuad(p0, p1, p2 Point) (Point, Point) {
	c1 := p0.Add(p1.Sub(p0).Mul(2.0 / 3.0))
	c2 := p2.Add(p1.Sub(p2).Mul(2.0 / 3.0))
	return c1, c2
}

// BoundsOfCubicCurve returns the tight bounding box of a cubic Bezier.
//
// For each axis the derivative
//
//	3(1-t)²(P1-P0) + 6(1-t)t(P2-P1) + 3t²(P3-P2)
//
// is solved for t; roots strictly inside (0,1) are evaluated together with
// both endpoints.
func BoundsOfCubicCurve(p0, p1, p2, p3 Point) Bounds {
	pts := make([]Point, 0, 6)
	pts = append(pts, p0, p3)

	var roots [4]float64
	n := 0
	n += cubicExtrema(p0.X, p1.X, p2.X, p3.X, roots[n:])
	n += cubicExtrema(p0.Y, p1.Y, p2.Y, p3.Y, roots[n:])
	for _, t := range roots[:n] {
		pts = append(pts, CubicAt(p0, p1, p2, p3, t))
	}
	return BoundsOfPoints(pts...)
}

// BoundsOfQuadCurve returns the tight bounding box of a quadratic Bezier by
// degree-elevating it to the equivalent cubic.
func BoundsOfQuadCurve(p0, p1, p2 Point) Bounds {
	c1, c2 := ElevateQuad(p0, p1, p2)
	return BoundsOfCubicCurve(p0, c1, c2, p2)
}

// cubicExtrema writes the parameters in (0,1) where the derivative of the
// one-dimensional cubic (v0..v3) vanishes into out and returns how many it
// wrote (at most two).
func cubicExtrema(v0, v1, v2, v3 float64, out []float64) int {
	a0 := v1 - v0
	b0 := v2 - v1
	c0 := v3 - v2

	// (1-t)²a0 + 2(1-t)t b0 + t²c0 = a t² + b t + c
	a := a0 - 2*b0 + c0
	b := 2 * (b0 - a0)
	c := a0

	n := 0
	keep := func(t float64) {
		if t > 0 && t < 1 {
			out[n] = t
			n++
		}
	}

	if math.Abs(a) < curveEpsilon {
		if math.Abs(b) < curveEpsilon {
			return 0
		}
		keep(-c / b)
		return n
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0
	}
	sq := math.Sqrt(disc)
	keep((-b + sq) / (2 * a))
	if sq > 0 {
		keep((-b - sq) / (2 * a))
	}
	return n
}
