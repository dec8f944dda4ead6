// Package render defines the drawing-surface boundary. Shapes only issue
// path-construction and paint calls against a Context; they never read pixels.
package render

import "github.com/inamate/vecdraw/internal/geom"

// Context is a canvas-like 2D drawing surface.
type Context interface {
	Save()
	Restore()
	Transform(m geom.Matrix2D)

	BeginPath()
	ClosePath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticCurveTo(cpx, cpy, x, y float64)
	BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64)
	Arc(x, y, radius, startAngle, endAngle float64, counterclockwise bool)
	Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64, counterclockwise bool)

	Fill()
	Stroke()
	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)
	DrawImage(src string, x, y, w, h float64)

	SetFillStyle(style string)
	SetStrokeStyle(style string)
	SetLineWidth(w float64)
	SetLineCap(lineCap string)
	SetLineJoin(join string)
	SetLineDash(segments []float64)
}
