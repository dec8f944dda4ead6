package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/vecdraw/internal/control"
	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/render"
	"github.com/inamate/vecdraw/internal/scene"
)

func addRect(t *testing.T, e *Engine, x, y, w, h float64) scene.Shape {
	t.Helper()
	b := geom.Rect(x, y, w, h)
	res, err := e.Execute(Command{Type: CmdAddRect, Bounds: &b})
	require.NoError(t, err)
	require.Len(t, res.IDs, 1)
	s, err := e.shapeByID(res.IDs[0])
	require.NoError(t, err)
	return s
}

func decode(t *testing.T, data string) []render.DrawCommand {
	t.Helper()
	var cmds []render.DrawCommand
	require.NoError(t, json.Unmarshal([]byte(data), &cmds))
	return cmds
}

func countOps(cmds []render.DrawCommand, op string) int {
	n := 0
	for _, c := range cmds {
		if c.Op == op {
			n++
		}
	}
	return n
}

func TestDragMovesSelectedShape(t *testing.T) {
	e := NewEngine(control.DefaultConfig())
	r := addRect(t, e, 0, 0, 100, 100)

	assert.Equal(t, "move", e.PointerDown(50, 50, false))
	assert.True(t, e.Dragging())
	assert.Equal(t, []string{r.ID()}, e.SelectionIDs())

	e.PointerMove(55, 60)
	assert.Equal(t, "move", e.PointerUp(60, 70))
	assert.False(t, e.Dragging())
	assert.Equal(t, geom.Rect(10, 20, 100, 100), r.BoundingBox())
}

func TestResizeHandleAndCancel(t *testing.T) {
	e := NewEngine(control.DefaultConfig())
	r := addRect(t, e, 0, 0, 100, 100)
	require.NoError(t, e.Select(r.ID()))

	assert.Equal(t, "se-resize", e.PointerDown(100, 100, false))
	e.PointerMove(150, 120)
	assert.Equal(t, geom.Rect(0, 0, 150, 120), r.BoundingBox())

	assert.True(t, e.CancelGesture())
	assert.False(t, e.CancelGesture())
	assert.Equal(t, geom.Rect(0, 0, 100, 100), r.BoundingBox())
}

func TestGroupResizeThroughZeroAndCancel(t *testing.T) {
	e := NewEngine(control.DefaultConfig())
	res, err := e.Execute(Command{Type: CmdAddCircle, Center: &geom.Point{X: 10, Y: 10}, Radius: 10})
	require.NoError(t, err)
	s, err := e.shapeByID(res.IDs[0])
	require.NoError(t, err)
	c := s.(*scene.Circle)
	r := addRect(t, e, 30, 0, 20, 20)

	require.NoError(t, e.Select(c.ID(), r.ID()))
	res, err = e.Execute(Command{Type: CmdGroup})
	require.NoError(t, err)
	require.Len(t, res.IDs, 1)
	g, err := e.shapeByID(res.IDs[0])
	require.NoError(t, err)
	require.Equal(t, geom.Rect(0, 0, 50, 20), g.BoundingBox())

	assert.Equal(t, "s-resize", e.PointerDown(25, 20, false))
	e.PointerMove(25, 10)
	e.PointerMove(25, 0)
	e.PointerMove(25, 20)
	assert.InDelta(t, 10, c.Radius(), 1e-9)

	e.PointerMove(25, 10)
	assert.InDelta(t, 5, c.Radius(), 1e-9)
	require.True(t, e.CancelGesture())

	assert.InDelta(t, 10, c.Radius(), 1e-9)
	assert.Equal(t, geom.Pt(10, 10), c.Center())
	assert.Equal(t, geom.Rect(30, 0, 20, 20), r.BoundingBox())
	assert.Equal(t, geom.Rect(0, 0, 50, 20), g.BoundingBox())
	assert.Equal(t, []string{g.ID()}, e.SelectionIDs())
}

func TestPointerDownSelection(t *testing.T) {
	e := NewEngine(control.DefaultConfig())
	a := addRect(t, e, 0, 0, 40, 40)
	b := addRect(t, e, 100, 0, 40, 40)

	e.PointerDown(20, 20, false)
	e.PointerUp(20, 20)
	e.PointerDown(120, 20, true)
	e.PointerUp(120, 20)
	assert.Equal(t, []string{a.ID(), b.ID()}, e.SelectionIDs())

	assert.Equal(t, "default", e.PointerDown(120, 20, true))
	assert.False(t, e.Dragging())
	assert.Equal(t, []string{a.ID()}, e.SelectionIDs())

	assert.Equal(t, "default", e.PointerDown(500, 500, false))
	assert.Empty(t, e.SelectionIDs())
	assert.Equal(t, "default", e.Hover(500, 500))
	assert.Equal(t, "move", e.Hover(20, 20))
}

func TestHitTestDescendsIntoGroups(t *testing.T) {
	e := NewEngine(control.DefaultConfig())
	a := addRect(t, e, 0, 0, 40, 40)
	b := addRect(t, e, 100, 0, 40, 40)
	require.NoError(t, e.Select(a.ID(), b.ID()))

	res, err := e.Execute(Command{Type: CmdGroup})
	require.NoError(t, err)
	require.Len(t, res.IDs, 1)
	groupID := res.IDs[0]

	assert.Equal(t, a.ID(), e.HitTest(20, 20))
	assert.Equal(t, "", e.HitTest(70, 20))

	e.PointerDown(120, 20, false)
	assert.Equal(t, []string{groupID}, e.SelectionIDs())
	e.PointerUp(120, 20)

	res, err = e.Execute(Command{Type: CmdUngroup})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID(), b.ID()}, res.IDs)
	assert.Equal(t, 2, e.Scene().Len())
}

func TestPathCommand(t *testing.T) {
	e := NewEngine(control.DefaultConfig())
	res, err := e.Execute(Command{
		Type: CmdAddPath,
		Path: []PathOp{
			{Cmd: "M", Args: []float64{5, 5}},
			{Cmd: "l", Args: []float64{10, 0}},
			{Cmd: "v", Args: []float64{10}},
			{Cmd: "H", Args: []float64{5}},
			{Cmd: "z"},
		},
	})
	require.NoError(t, err)

	info := Describe(e.Scene())
	require.Len(t, info.Children, 1)
	assert.Equal(t, res.IDs[0], info.Children[0].ID)
	assert.Equal(t, "path", info.Children[0].Kind)
	assert.Equal(t, "M5 5 L15 5 L15 15 L5 15 Z", info.Children[0].D)
	assert.Equal(t, geom.Rect(5, 5, 10, 10), info.Children[0].Bounds)

	_, err = e.Execute(Command{Type: CmdAddPath, Path: []PathOp{{Cmd: "L", Args: []float64{1, 1}}}})
	assert.Error(t, err)
	_, err = e.Execute(Command{Type: CmdAddPath, Path: []PathOp{{Cmd: "M", Args: []float64{1}}}})
	assert.ErrorIs(t, err, ErrInvalidPathOp)
	assert.Equal(t, 1, e.Scene().Len())
}

func TestPropertyCommands(t *testing.T) {
	e := NewEngine(control.DefaultConfig())
	r := addRect(t, e, 0, 0, 10, 10)

	b := geom.Rect(5, 5, 20, 30)
	_, err := e.Execute(Command{Type: CmdSetBounds, ObjectID: r.ID(), Bounds: &b})
	require.NoError(t, err)
	assert.Equal(t, b, r.BoundingBox())

	neg := geom.Rect(0, 0, -1, 5)
	_, err = e.Execute(Command{Type: CmdSetBounds, ObjectID: r.ID(), Bounds: &neg})
	assert.ErrorIs(t, err, scene.ErrNegativeSize)

	style := scene.Style{Fill: "#ff0000"}
	_, err = e.Execute(Command{Type: CmdSetStyle, ObjectID: r.ID(), Style: &style})
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", r.Style().Fill)

	hidden := false
	_, err = e.Execute(Command{Type: CmdSetVisible, ObjectID: r.ID(), Visible: &hidden})
	require.NoError(t, err)
	assert.False(t, r.Visible())
	assert.Equal(t, "", e.HitTest(10, 10))

	_, err = e.Execute(Command{Type: CmdSetStyle, ObjectID: "shape_missing", Style: &style})
	assert.ErrorIs(t, err, ErrShapeNotFound)

	_, err = e.Execute(Command{Type: "shape.explode"})
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestDirtyPanes(t *testing.T) {
	e := NewEngine(control.DefaultConfig())
	assert.Equal(t, []string{ControlsPane, scene.DefaultPane}, e.DirtyPanes())
	assert.Empty(t, e.DirtyPanes())

	b := geom.Rect(0, 0, 10, 10)
	res, err := e.Execute(Command{Type: CmdAddRect, Bounds: &b, Pane: "overlay"})
	require.NoError(t, err)
	dirty := e.DirtyPanes()
	assert.Contains(t, dirty, "overlay")
	assert.NotContains(t, dirty, ControlsPane)

	require.NoError(t, e.Select(res.IDs[0]))
	assert.Equal(t, []string{ControlsPane}, e.DirtyPanes())

	_, err = e.Execute(Command{Type: CmdSetPane, ObjectID: res.IDs[0], Pane: "top"})
	require.NoError(t, err)
	dirty = e.DirtyPanes()
	assert.Contains(t, dirty, "overlay")
	assert.Contains(t, dirty, "top")
	assert.Contains(t, dirty, ControlsPane)
}

func TestRenderIncludesControls(t *testing.T) {
	e := NewEngine(control.DefaultConfig())
	r := addRect(t, e, 0, 0, 100, 100)

	assert.Zero(t, countOps(decode(t, e.Render()), "strokeRect"))

	require.NoError(t, e.Select(r.ID()))
	cmds := decode(t, e.Render())
	assert.Equal(t, 9, countOps(cmds, "strokeRect"))
	tagged := 0
	for _, c := range cmds {
		if c.ObjectID == r.ID() {
			tagged++
		}
	}
	assert.Greater(t, tagged, 9)

	assert.Equal(t, 9, countOps(decode(t, e.RenderPane(ControlsPane)), "strokeRect"))
	main := decode(t, e.RenderPane(scene.DefaultPane))
	assert.Zero(t, countOps(main, "strokeRect"))
	assert.Equal(t, 3, countOps(main, "lineTo"))

	assert.JSONEq(t, `{"x":0,"y":0,"width":100,"height":100}`, e.GetSelectionBounds())
	assert.JSONEq(t, `["`+r.ID()+`"]`, e.GetSelection())
}

func TestDeleteDropsSelection(t *testing.T) {
	e := NewEngine(control.DefaultConfig())
	a := addRect(t, e, 0, 0, 10, 10)
	b := addRect(t, e, 20, 0, 10, 10)
	require.NoError(t, e.Select(a.ID(), b.ID()))

	_, err := e.Execute(Command{Type: CmdDelete, ObjectID: a.ID()})
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID()}, e.SelectionIDs())
	assert.Equal(t, 1, e.Scene().Len())

	_, err = e.Execute(Command{Type: CmdDeleteSelected})
	require.NoError(t, err)
	assert.Zero(t, e.Scene().Len())
	assert.Empty(t, e.SelectionIDs())

	assert.ErrorIs(t, e.Delete(a.ID()), ErrShapeNotFound)
	assert.ErrorIs(t, e.Delete(e.Scene().ID()), scene.ErrNotChild)
}

func TestLoadSample(t *testing.T) {
	e := NewEngine(control.DefaultConfig())
	addRect(t, e, 0, 0, 10, 10)

	_, err := e.Execute(Command{Type: CmdLoadSample})
	require.NoError(t, err)

	var info NodeInfo
	require.NoError(t, json.Unmarshal([]byte(e.GetScene()), &info))
	assert.Equal(t, "scene", info.Kind)
	require.Len(t, info.Children, 4)

	kinds := make([]string, 0, len(info.Children))
	for _, c := range info.Children {
		kinds = append(kinds, c.Kind)
	}
	assert.Equal(t, []string{"rect", "circle", "path", "group"}, kinds)
	assert.Len(t, info.Children[3].Children, 2)
	assert.Equal(t, 80.0, info.Children[1].Radius)

	_, err = e.Execute(Command{Type: CmdReset})
	require.NoError(t, err)
	assert.Zero(t, e.Scene().Len())
}

func TestZOrderCommands(t *testing.T) {
	e := NewEngine(control.DefaultConfig())
	a := addRect(t, e, 0, 0, 10, 10)
	b := addRect(t, e, 0, 0, 10, 10)
	c := addRect(t, e, 0, 0, 10, 10)

	order := func() []string {
		var ids []string
		for _, s := range e.Scene().Children() {
			ids = append(ids, s.ID())
		}
		return ids
	}

	_, err := e.Execute(Command{Type: CmdSelect, IDs: []string{a.ID()}})
	require.NoError(t, err)
	_, err = e.Execute(Command{Type: CmdBringToFront})
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID(), c.ID(), a.ID()}, order())
	assert.Equal(t, a.ID(), e.HitTest(5, 5))

	_, err = e.Execute(Command{Type: CmdSendBackward})
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID(), a.ID(), c.ID()}, order())
	assert.Equal(t, c.ID(), e.HitTest(5, 5))
}
