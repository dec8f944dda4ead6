package scene

import "github.com/inamate/vecdraw/internal/render"

// Style holds a shape's paint properties. An empty Fill or Stroke disables
// that paint pass.
type Style struct {
	Fill      string    `json:"fill,omitempty"`
	Stroke    string    `json:"stroke,omitempty"`
	LineWidth float64   `json:"lineWidth,omitempty"`
	LineCap   string    `json:"lineCap,omitempty"`
	LineJoin  string    `json:"lineJoin,omitempty"`
	LineDash  []float64 `json:"lineDash,omitempty"`
}

// DefaultStyle is a black one pixel stroke with no fill.
func DefaultStyle() Style {
	return Style{Stroke: "#000000", LineWidth: 1}
}

// Paint fills and strokes the current path with the style.
func (s Style) Paint(ctx render.Context) {
	if s.Fill != "" {
		ctx.SetFillStyle(s.Fill)
		ctx.Fill()
	}
	if s.Stroke != "" {
		ctx.SetStrokeStyle(s.Stroke)
		ctx.SetLineWidth(s.LineWidth)
		if s.LineCap != "" {
			ctx.SetLineCap(s.LineCap)
		}
		if s.LineJoin != "" {
			ctx.SetLineJoin(s.LineJoin)
		}
		if len(s.LineDash) > 0 {
			ctx.SetLineDash(s.LineDash)
		}
		ctx.Stroke()
	}
}
