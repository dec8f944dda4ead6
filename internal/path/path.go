// Package path implements composite vector paths: an ordered arena of
// move, line, curve, arc and close components addressed by index.
package path

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/inamate/vecdraw/internal/control"
	"github.com/inamate/vecdraw/internal/event"
	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/render"
	"github.com/inamate/vecdraw/internal/scene"
	"github.com/inamate/vecdraw/internal/typeid"
)

var (
	ErrNoCurrentPoint     = errors.New("path has no current point")
	ErrNoCubicPredecessor = errors.New("smooth cubic curve needs a cubic predecessor")
	ErrNoQuadPredecessor  = errors.New("smooth quadratic curve needs a quadratic predecessor")
	ErrOutOfRange         = errors.New("component or point index out of range")
)

// Path is a shape made of components. Component i starts where component
// i-1 ends. Each component caches its own bounds; editing a coordinate of
// component i invalidates only i and i+1.
type Path struct {
	scene.Node
	comps []component
}

// New creates an empty path.
func New() *Path {
	p := &Path{}
	p.Init(p, typeid.NewPathID())
	return p
}

// Len returns the number of components.
func (p *Path) Len() int { return len(p.comps) }

// Kind returns the kind of component i.
func (p *Path) Kind(i int) Kind { return p.comps[i].kind }

// PointCount returns the number of editable coordinates of component i.
func (p *Path) PointCount(i int) int { return len(p.comps[i].pts) }

// ControlPoint returns coordinate j of component i.
func (p *Path) ControlPoint(i, j int) (geom.Point, error) {
	if !p.validRef(i, j) {
		return geom.Point{}, ErrOutOfRange
	}
	return p.comps[i].pts[j], nil
}

// Segments returns a copy of the components.
func (p *Path) Segments() []Segment {
	out := make([]Segment, len(p.comps))
	for i, c := range p.comps {
		out[i] = Segment{
			Kind:     c.kind,
			Points:   append([]geom.Point(nil), c.pts...),
			RX:       c.rx,
			RY:       c.ry,
			Rotation: c.phi,
			LargeArc: c.large,
			Sweep:    c.sweep,
		}
	}
	return out
}

// CurrentPoint returns the end of the last component.
func (p *Path) CurrentPoint() (geom.Point, bool) {
	if len(p.comps) == 0 {
		return geom.Point{}, false
	}
	return p.end(len(p.comps) - 1), true
}

func (p *Path) validRef(i, j int) bool {
	return i >= 0 && i < len(p.comps) && j >= 0 && j < len(p.comps[i].pts)
}

// end returns where component i leaves the pen.
func (p *Path) end(i int) geom.Point {
	c := p.comps[i]
	if c.kind == KindClose {
		return p.subpathStart(i)
	}
	return c.pts[len(c.pts)-1]
}

// start returns where component i begins.
func (p *Path) start(i int) geom.Point {
	if i == 0 {
		if len(p.comps[0].pts) > 0 {
			return p.comps[0].pts[0]
		}
		return geom.Point{}
	}
	return p.end(i - 1)
}

// subpathStart returns the point of the nearest move at or before i.
func (p *Path) subpathStart(i int) geom.Point {
	for k := i; k >= 0; k-- {
		if p.comps[k].kind == KindMove {
			return p.comps[k].pts[0]
		}
	}
	if len(p.comps) > 0 && len(p.comps[0].pts) > 0 {
		return p.comps[0].pts[0]
	}
	return geom.Point{}
}

// componentBounds returns the cached bounds of component i, re-deriving them
// when stale.
func (p *Path) componentBounds(i int) geom.Bounds {
	c := &p.comps[i]
	if !c.stale {
		return c.bbox
	}
	s := p.start(i)
	switch c.kind {
	case KindMove:
		c.bbox = geom.BoundsOfPoints(c.pts[0])
	case KindLine:
		c.bbox = geom.BoundsOfPoints(s, c.pts[0])
	case KindQuad:
		c.bbox = geom.BoundsOfQuadCurve(s, c.pts[0], c.pts[1])
	case KindCubic:
		c.bbox = geom.BoundsOfCubicCurve(s, c.pts[0], c.pts[1], c.pts[2])
	case KindArc:
		e := c.pts[0]
		c.bbox = geom.SVGArcBounds(s.X, s.Y, c.rx, c.ry, c.phi, c.large, c.sweep, e.X, e.Y)
	case KindClose:
		c.bbox = geom.BoundsOfPoints(s, p.subpathStart(i))
	}
	c.stale = false
	return c.bbox
}

// EvalBoundingBox is the union of every component's bounds.
func (p *Path) EvalBoundingBox() geom.Bounds {
	if len(p.comps) == 0 {
		return geom.Bounds{}
	}
	b := p.componentBounds(0)
	for i := 1; i < len(p.comps); i++ {
		b = b.Union(p.componentBounds(i))
	}
	return b
}

// ReshapeBounds re-projects every coordinate from the old box into the new
// one. Arc radii scale with the box.
func (p *Path) ReshapeBounds(from, to geom.Bounds) {
	sx, sy := 1.0, 1.0
	if from.Width != 0 {
		sx = to.Width / from.Width
	}
	if from.Height != 0 {
		sy = to.Height / from.Height
	}
	for i := range p.comps {
		c := &p.comps[i]
		for j, pt := range c.pts {
			c.pts[j] = geom.Pt(to.X+(pt.X-from.X)*sx, to.Y+(pt.Y-from.Y)*sy)
		}
		if c.kind == KindArc {
			c.rx *= abs(sx)
			c.ry *= abs(sy)
		}
		c.stale = true
	}
}

// ConstrainBounds accepts any box.
func (p *Path) ConstrainBounds(b geom.Bounds) geom.Bounds { return b }

// SetControlPoint moves coordinate j of component i to pt.
func (p *Path) SetControlPoint(i, j int, pt geom.Point) error {
	if !p.validRef(i, j) {
		return ErrOutOfRange
	}
	e := &event.Event{Source: p, Name: "point", Old: p.comps[i].pts[j], New: pt}
	if !p.Events().ValidateBefore(event.PathChanged, e) {
		return scene.ErrVetoed
	}
	p.comps[i].pts[j] = pt
	p.invalidate(i)
	p.Events().TriggerOn(event.PathChanged, e)
	return nil
}

// RemoveComponent drops component i; its successor now starts where i-1
// ended.
func (p *Path) RemoveComponent(i int) error {
	if i < 0 || i >= len(p.comps) {
		return ErrOutOfRange
	}
	e := &event.Event{Source: p, Name: "remove", Old: i}
	if !p.Events().ValidateBefore(event.PathChanged, e) {
		return scene.ErrVetoed
	}
	p.comps = append(p.comps[:i], p.comps[i+1:]...)
	if i < len(p.comps) {
		p.comps[i].stale = true
	}
	p.MarkTransformed()
	p.Events().TriggerOn(event.PathChanged, e)
	return nil
}

// invalidate marks component i and its immediate successor stale.
func (p *Path) invalidate(i int) {
	p.comps[i].stale = true
	if i+1 < len(p.comps) {
		p.comps[i+1].stale = true
	}
	p.MarkTransformed()
}

func (p *Path) push(c component) error {
	c.stale = true
	e := &event.Event{Source: p, Name: "append", New: c.kind}
	if !p.Events().ValidateBefore(event.PathChanged, e) {
		return scene.ErrVetoed
	}
	p.comps = append(p.comps, c)
	p.MarkTransformed()
	p.Events().TriggerOn(event.PathChanged, e)
	return nil
}

// Draw issues the path on ctx and paints it.
func (p *Path) Draw(ctx render.Context) {
	ctx.BeginPath()
	for i, c := range p.comps {
		switch c.kind {
		case KindMove:
			ctx.MoveTo(c.pts[0].X, c.pts[0].Y)
		case KindLine:
			ctx.LineTo(c.pts[0].X, c.pts[0].Y)
		case KindQuad:
			ctx.QuadraticCurveTo(c.pts[0].X, c.pts[0].Y, c.pts[1].X, c.pts[1].Y)
		case KindCubic:
			ctx.BezierCurveTo(c.pts[0].X, c.pts[0].Y, c.pts[1].X, c.pts[1].Y, c.pts[2].X, c.pts[2].Y)
		case KindArc:
			s, e := p.start(i), c.pts[0]
			a := geom.EndpointsToCenter(s.X, s.Y, c.rx, c.ry, c.phi, c.large, c.sweep, e.X, e.Y)
			if a.Degenerate {
				ctx.LineTo(e.X, e.Y)
				continue
			}
			ctx.Ellipse(a.Center.X, a.Center.Y, a.RX, a.RY, a.Phi, a.Theta, a.Theta+a.DeltaTheta, a.DeltaTheta < 0)
		case KindClose:
			ctx.ClosePath()
		}
	}
	p.Style().Paint(ctx)
}

// ControlPoints exposes one handle per component coordinate.
func (p *Path) ControlPoints() []control.ControlPoint {
	var points []control.ControlPoint
	for i, c := range p.comps {
		for j, pt := range c.pts {
			points = append(points, control.ControlPoint{
				X:      pt.X,
				Y:      pt.Y,
				Type:   control.HitControl,
				Index:  len(points),
				Cursor: control.HitControl.Cursor(),
				Extra:  Ref{Component: i, Point: j},
			})
		}
	}
	return points
}

// MoveControlPoint routes a handle drag to its component coordinate.
func (p *Path) MoveControlPoint(cp control.ControlPoint, to geom.Point) bool {
	ref, ok := cp.Extra.(Ref)
	if !ok {
		return false
	}
	return p.SetControlPoint(ref.Component, ref.Point, to) == nil
}

// Capture copies the component arena.
func (p *Path) Capture() interface{} {
	comps := make([]component, len(p.comps))
	for i, c := range p.comps {
		comps[i] = c.clone()
	}
	return comps
}

// Restore reinstates an arena returned by Capture.
func (p *Path) Restore(memento interface{}) {
	comps, ok := memento.([]component)
	if !ok {
		return
	}
	p.comps = make([]component, len(comps))
	for i, c := range comps {
		p.comps[i] = c.clone()
		p.comps[i].stale = true
	}
	p.MarkTransformed()
	p.Events().TriggerOn(event.PathChanged, &event.Event{Source: p, Name: "restore"})
}

// SVGData renders the components as SVG path data in absolute commands.
func (p *Path) SVGData() string {
	var sb strings.Builder
	num := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	pt := func(q geom.Point) string { return num(q.X) + " " + num(q.Y) }
	flag := func(b bool) string {
		if b {
			return "1"
		}
		return "0"
	}
	for i, c := range p.comps {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch c.kind {
		case KindMove:
			sb.WriteString("M" + pt(c.pts[0]))
		case KindLine:
			sb.WriteString("L" + pt(c.pts[0]))
		case KindQuad:
			sb.WriteString("Q" + pt(c.pts[0]) + " " + pt(c.pts[1]))
		case KindCubic:
			sb.WriteString("C" + pt(c.pts[0]) + " " + pt(c.pts[1]) + " " + pt(c.pts[2]))
		case KindArc:
			fmt.Fprintf(&sb, "A%s %s %s %s %s %s", num(c.rx), num(c.ry), num(radToDeg(c.phi)),
				flag(c.large), flag(c.sweep), pt(c.pts[0]))
		case KindClose:
			sb.WriteString("Z")
		}
	}
	return sb.String()
}
