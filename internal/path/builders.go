package path

import (
	"math"

	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/scene"
)

const fullTurn = 2 * math.Pi

func abs(v float64) float64 { return math.Abs(v) }

func radToDeg(r float64) float64 { return r * 180 / math.Pi }

func degToRad(d float64) float64 { return d * math.Pi / 180 }

// resolve turns builder coordinates into an absolute point.
func (p *Path) resolve(mode Coords, x, y float64) (geom.Point, error) {
	cur, ok := p.CurrentPoint()
	if !ok {
		return geom.Point{}, ErrNoCurrentPoint
	}
	if mode == Rel {
		return geom.Pt(cur.X+x, cur.Y+y), nil
	}
	return geom.Pt(x, y), nil
}

// MoveTo starts a new subpath. A relative move on an empty path is read as
// absolute.
func (p *Path) MoveTo(mode Coords, x, y float64) error {
	pt := geom.Pt(x, y)
	if cur, ok := p.CurrentPoint(); ok && mode == Rel {
		pt = cur.Add(pt)
	}
	return p.push(component{kind: KindMove, pts: []geom.Point{pt}})
}

// LineTo draws a straight line to (x, y).
func (p *Path) LineTo(mode Coords, x, y float64) error {
	pt, err := p.resolve(mode, x, y)
	if err != nil {
		return err
	}
	return p.push(component{kind: KindLine, pts: []geom.Point{pt}})
}

// HLineTo draws a horizontal line to x.
func (p *Path) HLineTo(mode Coords, x float64) error {
	cur, ok := p.CurrentPoint()
	if !ok {
		return ErrNoCurrentPoint
	}
	if mode == Rel {
		x += cur.X
	}
	return p.push(component{kind: KindLine, pts: []geom.Point{geom.Pt(x, cur.Y)}})
}

// VLineTo draws a vertical line to y.
func (p *Path) VLineTo(mode Coords, y float64) error {
	cur, ok := p.CurrentPoint()
	if !ok {
		return ErrNoCurrentPoint
	}
	if mode == Rel {
		y += cur.Y
	}
	return p.push(component{kind: KindLine, pts: []geom.Point{geom.Pt(cur.X, y)}})
}

// QuadCurveTo draws a quadratic Bezier with control point (cx, cy).
func (p *Path) QuadCurveTo(mode Coords, cx, cy, x, y float64) error {
	c, err := p.resolve(mode, cx, cy)
	if err != nil {
		return err
	}
	end, err := p.resolve(mode, x, y)
	if err != nil {
		return err
	}
	return p.push(component{kind: KindQuad, pts: []geom.Point{c, end}})
}

// SmoothQuadCurveTo draws a quadratic Bezier whose control point reflects
// the previous quadratic's control point about the current point.
func (p *Path) SmoothQuadCurveTo(mode Coords, x, y float64) error {
	if len(p.comps) == 0 {
		return ErrNoCurrentPoint
	}
	prev := p.comps[len(p.comps)-1]
	if prev.kind != KindQuad {
		return ErrNoQuadPredecessor
	}
	cur, _ := p.CurrentPoint()
	c := cur.Mul(2).Sub(prev.pts[0])
	end, err := p.resolve(mode, x, y)
	if err != nil {
		return err
	}
	return p.push(component{kind: KindQuad, pts: []geom.Point{c, end}})
}

// BezierCurveTo draws a cubic Bezier.
func (p *Path) BezierCurveTo(mode Coords, c1x, c1y, c2x, c2y, x, y float64) error {
	c1, err := p.resolve(mode, c1x, c1y)
	if err != nil {
		return err
	}
	c2, _ := p.resolve(mode, c2x, c2y)
	end, _ := p.resolve(mode, x, y)
	return p.push(component{kind: KindCubic, pts: []geom.Point{c1, c2, end}})
}

// SmoothBezierCurveTo draws a cubic Bezier whose first control point
// reflects the previous cubic's second control point.
func (p *Path) SmoothBezierCurveTo(mode Coords, c2x, c2y, x, y float64) error {
	if len(p.comps) == 0 {
		return ErrNoCurrentPoint
	}
	prev := p.comps[len(p.comps)-1]
	if prev.kind != KindCubic {
		return ErrNoCubicPredecessor
	}
	cur, _ := p.CurrentPoint()
	c1 := cur.Mul(2).Sub(prev.pts[1])
	c2, err := p.resolve(mode, c2x, c2y)
	if err != nil {
		return err
	}
	end, _ := p.resolve(mode, x, y)
	return p.push(component{kind: KindCubic, pts: []geom.Point{c1, c2, end}})
}

// SVGArcTo draws an elliptical arc in SVG endpoint form. rotation is the
// x-axis rotation in degrees. An arc ending at the current point is dropped.
func (p *Path) SVGArcTo(mode Coords, rx, ry, rotation float64, largeArc, sweep bool, x, y float64) error {
	if rx < 0 || ry < 0 {
		return scene.ErrNegativeRadius
	}
	end, err := p.resolve(mode, x, y)
	if err != nil {
		return err
	}
	if cur, _ := p.CurrentPoint(); cur == end {
		return nil
	}
	return p.pushArc(rx, ry, degToRad(rotation), largeArc, sweep, end)
}

func (p *Path) pushArc(rx, ry, phi float64, largeArc, sweep bool, end geom.Point) error {
	return p.push(component{
		kind:  KindArc,
		pts:   []geom.Point{end},
		rx:    rx,
		ry:    ry,
		phi:   phi,
		large: largeArc,
		sweep: sweep,
	})
}

// Arc adds a circular arc centered at (cx, cy) from angle start to end, the
// way a canvas context does: a line joins the current point to the arc
// start, and a sweep of a full turn or more draws the whole circle.
func (p *Path) Arc(cx, cy, r, start, end float64, counterclockwise bool) error {
	if r < 0 {
		return scene.ErrNegativeRadius
	}
	center := geom.Pt(cx, cy)
	from := geom.ArcPoint(center, r, r, 0, start)
	if err := p.joinTo(from); err != nil {
		return err
	}
	if r == 0 {
		return nil
	}

	delta := arcSweep(start, end, counterclockwise)
	if delta == 0 {
		return nil
	}
	// Endpoint arcs cannot express a full turn, so split into pieces of at
	// most half a turn each.
	n := int(math.Ceil(math.Abs(delta)/math.Pi - 1e-9))
	if n < 1 {
		n = 1
	}
	for k := 1; k <= n; k++ {
		to := geom.ArcPoint(center, r, r, 0, start+delta*float64(k)/float64(n))
		if err := p.pushArc(r, r, 0, false, delta > 0, to); err != nil {
			return err
		}
	}
	return nil
}

// arcSweep returns the signed sweep a canvas arc takes from start to end.
func arcSweep(start, end float64, ccw bool) float64 {
	if !ccw {
		if end-start >= fullTurn {
			return fullTurn
		}
		d := math.Mod(end-start, fullTurn)
		if d < 0 {
			d += fullTurn
		}
		return d
	}
	if start-end >= fullTurn {
		return -fullTurn
	}
	d := math.Mod(start-end, fullTurn)
	if d < 0 {
		d += fullTurn
	}
	return -d
}

// joinTo moves to pt on an empty path, otherwise draws a line to it unless
// the pen is already there.
func (p *Path) joinTo(pt geom.Point) error {
	cur, ok := p.CurrentPoint()
	if !ok {
		return p.MoveTo(Abs, pt.X, pt.Y)
	}
	if cur.Equal(pt, 1e-9) {
		return nil
	}
	return p.LineTo(Abs, pt.X, pt.Y)
}

// ArcTo adds an arc of radius r tangent to the line from the current point
// to (x1, y1) and to the line from (x1, y1) to (x2, y2). Collinear points or
// a zero radius reduce it to a line to (x1, y1).
func (p *Path) ArcTo(x1, y1, x2, y2, r float64) error {
	if r < 0 {
		return scene.ErrNegativeRadius
	}
	p0, ok := p.CurrentPoint()
	if !ok {
		return ErrNoCurrentPoint
	}
	p1, p2 := geom.Pt(x1, y1), geom.Pt(x2, y2)

	v1, v2 := p0.Sub(p1), p2.Sub(p1)
	l1, l2 := math.Hypot(v1.X, v1.Y), math.Hypot(v2.X, v2.Y)
	cross := v1.X*v2.Y - v1.Y*v2.X
	if r == 0 || l1 == 0 || l2 == 0 || math.Abs(cross) < 1e-12*l1*l2 {
		return p.LineTo(Abs, x1, y1)
	}
	u1, u2 := v1.Mul(1/l1), v2.Mul(1/l2)

	// Half the angle between the two legs decides how far from the corner
	// the arc touches them.
	cos := math.Max(-1, math.Min(1, u1.X*u2.X+u1.Y*u2.Y))
	half := math.Acos(cos) / 2
	d := r / math.Tan(half)
	t1, t2 := p1.Add(u1.Mul(d)), p1.Add(u2.Mul(d))

	if err := p.joinTo(t1); err != nil {
		return err
	}
	// The incoming direction is -u1; the arc turns the same way the legs do.
	turn := (-u1.X)*u2.Y - (-u1.Y)*u2.X
	return p.pushArc(r, r, 0, false, turn > 0, t2)
}

// ClosePath closes the current subpath back to its starting point.
func (p *Path) ClosePath() error {
	if len(p.comps) == 0 {
		return ErrNoCurrentPoint
	}
	return p.push(component{kind: KindClose})
}
