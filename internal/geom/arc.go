package geom

import "math"

// CenterArc is an elliptical arc in center parameterization. Theta is the
// start angle and DeltaTheta the signed sweep, both in radians and measured
// before the ellipse is rotated by Phi. A positive DeltaTheta runs in the
// positive-angle direction (clockwise on a y-down surface).
type CenterArc struct {
	Center     Point
	RX, RY     float64
	Phi        float64
	Theta      float64
	DeltaTheta float64

	// Degenerate marks a placeholder produced for zero radii or a zero-length
	// chord; the arc should be treated as the straight chord.
	Degenerate bool
}

// EndpointArc is an elliptical arc in SVG endpoint parameterization.
type EndpointArc struct {
	Start, End Point
	RX, RY     float64
	Phi        float64
	LargeArc   bool
	Sweep      bool
}

// ArcPoint returns the point of the ellipse (center, rx, ry, phi) at
// parametric angle theta.
func ArcPoint(center Point, rx, ry, phi, theta float64) Point {
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)
	cosT, sinT := math.Cos(theta), math.Sin(theta)
	return Point{
		X: center.X + rx*cosPhi*cosT - ry*sinPhi*sinT,
		Y: center.Y + rx*sinPhi*cosT + ry*cosPhi*sinT,
	}
}

// EndpointsToCenter converts an SVG arc from (x1, y1) to (x2, y2) into center
// parameterization following the SVG implementation notes (F.6.5/F.6.6).
// phi is the x-axis rotation in radians.
//
// Radii that are too small for the chord are scaled up uniformly. Zero radii
// or coincident endpoints yield a Degenerate placeholder: a quarter turn
// centered on the chord midpoint.
func EndpointsToCenter(x1, y1, rx, ry, phi float64, largeArc, sweep bool, x2, y2 float64) CenterArc {
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx < curveEpsilon || ry < curveEpsilon || (x1 == x2 && y1 == y2) {
		return degenerateArc(x1, y1, x2, y2, phi)
	}

	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)

	// Step 1: compute (x1', y1').
	dx2 := (x1 - x2) / 2
	dy2 := (y1 - y2) / 2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	// Correct out-of-range radii.
	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	// Step 2: compute (cx', cy').
	rx2, ry2 := rx*rx, ry*ry
	num := rx2*ry2 - rx2*y1p*y1p - ry2*x1p*x1p
	den := rx2*y1p*y1p + ry2*x1p*x1p
	sq := 0.0
	if den > 0 && num > 0 {
		sq = math.Sqrt(num / den)
	}
	sign := 1.0
	if largeArc == sweep {
		sign = -1
	}
	cxp := sign * sq * rx * y1p / ry
	cyp := sign * sq * -ry * x1p / rx

	// Step 3: compute (cx, cy) from (cx', cy').
	cx := cosPhi*cxp - sinPhi*cyp + (x1+x2)/2
	cy := sinPhi*cxp + cosPhi*cyp + (y1+y2)/2

	// Step 4: compute theta and delta.
	ux, uy := (x1p-cxp)/rx, (y1p-cyp)/ry
	vx, vy := (-x1p-cxp)/rx, (-y1p-cyp)/ry
	theta := vectorAngle(1, 0, ux, uy)
	delta := math.Mod(vectorAngle(ux, uy, vx, vy), 2*math.Pi)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	return CenterArc{
		Center:     Point{X: cx, Y: cy},
		RX:         rx,
		RY:         ry,
		Phi:        phi,
		Theta:      theta,
		DeltaTheta: delta,
	}
}

func degenerateArc(x1, y1, x2, y2, phi float64) CenterArc {
	half := math.Hypot(x2-x1, y2-y1) / 2
	return CenterArc{
		Center:     Point{X: (x1 + x2) / 2, Y: (y1 + y2) / 2},
		RX:         half,
		RY:         half,
		Phi:        phi,
		Theta:      0,
		DeltaTheta: math.Pi / 2,
		Degenerate: true,
	}
}

// vectorAngle returns the signed angle from u to v.
func vectorAngle(ux, uy, vx, vy float64) float64 {
	return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
}

// CenterToEndpoints converts a center-parameterized arc back into SVG
// endpoint form.
func CenterToEndpoints(a CenterArc) EndpointArc {
	return EndpointArc{
		Start:    ArcPoint(a.Center, a.RX, a.RY, a.Phi, a.Theta),
		End:      ArcPoint(a.Center, a.RX, a.RY, a.Phi, a.Theta+a.DeltaTheta),
		RX:       a.RX,
		RY:       a.RY,
		Phi:      a.Phi,
		LargeArc: math.Abs(a.DeltaTheta) > math.Pi,
		Sweep:    a.DeltaTheta > 0,
	}
}

// Start returns the first point of the arc.
func (a CenterArc) Start() Point {
	return ArcPoint(a.Center, a.RX, a.RY, a.Phi, a.Theta)
}

// End returns the last point of the arc.
func (a CenterArc) End() Point {
	return ArcPoint(a.Center, a.RX, a.RY, a.Phi, a.Theta+a.DeltaTheta)
}

// Contains reports whether the parametric angle t lies on the arc's span.
func (a CenterArc) Contains(t float64) bool {
	if math.Abs(a.DeltaTheta) >= 2*math.Pi {
		return true
	}
	var d float64
	if a.DeltaTheta >= 0 {
		d = normAngle(t - a.Theta)
		return d <= a.DeltaTheta
	}
	d = normAngle(a.Theta - t)
	return d <= -a.DeltaTheta
}

// Bounds returns the bounding box of the arc segment, not the full ellipse.
// The ellipse tangent is horizontal or vertical at four parametric angles;
// those that fall within the arc's span are added to the endpoints.
func (a CenterArc) Bounds() Bounds {
	start, end := a.Start(), a.End()
	if a.Degenerate {
		return BoundsOfPoints(start, end)
	}

	cosPhi, sinPhi := math.Cos(a.Phi), math.Sin(a.Phi)
	tx := math.Atan2(-a.RY*sinPhi, a.RX*cosPhi)
	ty := math.Atan2(a.RY*cosPhi, a.RX*sinPhi)

	pts := []Point{start, end}
	for _, t := range [4]float64{tx, tx + math.Pi, ty, ty + math.Pi} {
		if a.Contains(t) {
			pts = append(pts, ArcPoint(a.Center, a.RX, a.RY, a.Phi, t))
		}
	}
	return BoundsOfPoints(pts...)
}

// SVGArcBounds returns the bounding box of the SVG arc from (x1, y1) to
// (x2, y2). Degenerate arcs are bounded by their chord.
func SVGArcBounds(x1, y1, rx, ry, phi float64, largeArc, sweep bool, x2, y2 float64) Bounds {
	a := EndpointsToCenter(x1, y1, rx, ry, phi, largeArc, sweep, x2, y2)
	if a.Degenerate {
		return BoundsOfPoints(Point{X: x1, Y: y1}, Point{X: x2, Y: y2})
	}
	b := a.Bounds()
	// The endpoints are exact inputs; computed ones may drift by an ulp.
	return b.Union(BoundsOfPoints(Point{X: x1, Y: y1}, Point{X: x2, Y: y2}))
}

// normAngle maps a to [0, 2π).
func normAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
