package engine

import (
	"math"

	"github.com/inamate/vecdraw/internal/path"
	"github.com/inamate/vecdraw/internal/scene"
)

// buildSample fills s with a small drawing that exercises every shape
// kind: a rectangle, a circle, a curved path and a group holding two
// children.
func buildSample(s *scene.Scene) error {
	rect, err := scene.NewRectangle(200, 200, 200, 150)
	if err != nil {
		return err
	}
	rect.SetStyle(scene.Style{Fill: "#e94560", Stroke: "#000000", LineWidth: 2})

	circle, err := scene.NewCircle(640, 360, 80)
	if err != nil {
		return err
	}
	circle.SetStyle(scene.Style{Fill: "#0f3460", Stroke: "#16213e", LineWidth: 2})

	wave := path.New()
	if err := BuildPath(wave, []PathOp{
		{Cmd: "M", Args: []float64{900, 350}},
		{Cmd: "L", Args: []float64{1000, 200}},
		{Cmd: "Q", Args: []float64{1050, 150, 1100, 200}},
		{Cmd: "C", Args: []float64{1150, 250, 1150, 300, 1100, 350}},
		{Cmd: "A", Args: []float64{100, 50, 0, 0, 1, 900, 350}},
		{Cmd: "Z"},
	}); err != nil {
		return err
	}
	wave.SetStyle(scene.Style{Fill: "#53d769", Stroke: "#2d6a4f", LineWidth: 2, LineJoin: "round"})

	badge := scene.NewGroup(470, 400)
	plate, err := scene.NewRectangle(0, 20, 60, 100)
	if err != nil {
		return err
	}
	plate.SetStyle(scene.Style{Fill: "#f5a623", Stroke: "#c78400", LineWidth: 2})

	dial := path.New()
	if err := dial.Arc(30, 20, 20, 0, 2*math.Pi, false); err != nil {
		return err
	}
	if err := dial.ClosePath(); err != nil {
		return err
	}
	dial.SetStyle(scene.Style{Fill: "#bd10e0", Stroke: "#8b0ba8", LineWidth: 2})

	for _, c := range []scene.Shape{plate, dial} {
		if err := badge.Add(c); err != nil {
			return err
		}
	}
	badge.SetAngle(math.Pi / 12)

	for _, c := range []scene.Shape{rect, circle, wave, badge} {
		if err := s.Add(c); err != nil {
			return err
		}
	}
	return nil
}
