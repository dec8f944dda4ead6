package selection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/vecdraw/internal/control"
	"github.com/inamate/vecdraw/internal/event"
	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/scene"
)

type fixture struct {
	scene *scene.Scene
	sel   *Selection
	ctrl  *control.Controller
}

func newFixture() *fixture {
	ctrl := control.NewController(control.DefaultConfig())
	return &fixture{scene: scene.NewScene(), sel: New(ctrl), ctrl: ctrl}
}

func (f *fixture) rect(t *testing.T, x, y, w, h float64) *scene.Rectangle {
	t.Helper()
	r, err := scene.NewRectangle(x, y, w, h)
	require.NoError(t, err)
	require.NoError(t, f.scene.Add(r))
	return r
}

func globalBounds(s scene.Shape) geom.Bounds {
	return s.GlobalTransform().TransformRect(s.BoundingBox())
}

func TestMembershipEvents(t *testing.T) {
	f := newFixture()
	a := f.rect(t, 0, 0, 10, 10)
	b := f.rect(t, 20, 0, 10, 10)

	var selected, unselected int
	f.sel.Events().On(event.ShapesSelected, func(*event.Event) { selected++ })
	f.sel.Events().On(event.ShapesUnselected, func(*event.Event) { unselected++ })

	assert.True(t, f.sel.Add(a))
	assert.True(t, f.sel.Add(a))
	assert.True(t, f.sel.Toggle(b))
	assert.Equal(t, 2, f.sel.Count())
	assert.True(t, f.sel.Contains(b))
	assert.Same(t, a, f.sel.Get(0))
	assert.NotNil(t, f.sel.Snapshot(a.ID()))

	assert.True(t, f.sel.Toggle(a))
	assert.False(t, f.sel.Contains(a))
	assert.Nil(t, f.sel.Snapshot(a.ID()))

	assert.True(t, f.sel.Clear())
	assert.Equal(t, 0, f.sel.Count())
	assert.Equal(t, 2, selected)
	assert.Equal(t, 2, unselected)
}

func TestVetoedSelection(t *testing.T) {
	f := newFixture()
	a := f.rect(t, 0, 0, 10, 10)
	f.sel.Events().Before(event.ShapesSelected, func(*event.Event) bool { return false })

	assert.False(t, f.sel.Add(a))
	assert.Equal(t, 0, f.sel.Count())
}

func TestBoundsUnionsMembersInSceneSpace(t *testing.T) {
	f := newFixture()
	_, ok := f.sel.Bounds()
	assert.False(t, ok)

	g := scene.NewGroup(100, 100)
	require.NoError(t, f.scene.Add(g))
	inner, _ := scene.NewRectangle(0, 0, 10, 10)
	require.NoError(t, g.Add(inner))
	a := f.rect(t, 0, 0, 10, 10)

	f.sel.Set(a, inner)
	b, ok := f.sel.Bounds()
	require.True(t, ok)
	assert.Equal(t, geom.Rect(0, 0, 110, 110), b)
}

func TestMoveAppliesToAllMembers(t *testing.T) {
	f := newFixture()
	a := f.rect(t, 0, 0, 40, 40)
	b := f.rect(t, 50, 50, 10, 10)
	f.sel.Set(a, b)

	hit := f.ctrl.HitInfo(a, 20, 20)
	require.Equal(t, control.HitMove, hit.Type)
	f.sel.Checkpoint(hit)
	f.sel.Apply(hit, 20, 20, 30, 40)

	assert.Equal(t, geom.Rect(10, 20, 40, 40), a.BoundingBox())
	assert.Equal(t, geom.Rect(60, 70, 10, 10), b.BoundingBox())

	f.sel.Rollback()
	assert.Equal(t, geom.Rect(0, 0, 40, 40), a.BoundingBox())
	assert.Equal(t, geom.Rect(50, 50, 10, 10), b.BoundingBox())
}

func TestResizeAppliesOnlyToHitShape(t *testing.T) {
	f := newFixture()
	a := f.rect(t, 0, 0, 100, 100)
	b := f.rect(t, 200, 0, 100, 100)
	f.sel.Set(a, b)

	hit := f.ctrl.HitInfo(a, 100, 100)
	require.Equal(t, control.HitSizeSE, hit.Type)
	f.sel.Checkpoint(hit)
	f.sel.Apply(hit, 100, 100, 150, 120)

	assert.Equal(t, geom.Rect(0, 0, 150, 120), a.BoundingBox())
	assert.Equal(t, geom.Rect(200, 0, 100, 100), b.BoundingBox())
}

func TestGroupUngroupRoundTrip(t *testing.T) {
	f := newFixture()
	a := f.rect(t, 10, 20, 30, 40)
	b := f.rect(t, 100, 50, 20, 20)
	c, err := scene.NewCircle(70, 70, 15)
	require.NoError(t, err)
	require.NoError(t, f.scene.Add(c))
	require.True(t, b.SetAngle(math.Pi/6))

	before := map[string]geom.Bounds{
		a.ID(): globalBounds(a),
		b.ID(): globalBounds(b),
		c.ID(): globalBounds(c),
	}

	f.sel.Set(a, b, c)
	groups, err := f.sel.Group()
	require.NoError(t, err)
	require.Len(t, groups, 1)
	g := groups[0]

	assert.Same(t, &f.scene.Group, g.Parent())
	assert.Equal(t, 1, f.scene.Len())
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 1, f.sel.Count())
	assert.True(t, f.sel.Contains(g))
	for id, want := range before {
		s := scene.FindByID(f.scene, id)
		assert.True(t, globalBounds(s).Equal(want, 1e-9), "%s grouped: %+v != %+v", id, globalBounds(s), want)
	}

	released, err := f.sel.Ungroup()
	require.NoError(t, err)
	assert.Len(t, released, 3)
	assert.Equal(t, 3, f.scene.Len())
	assert.Nil(t, scene.FindByID(f.scene, g.ID()))
	assert.Equal(t, 3, f.sel.Count())

	for i, s := range []scene.Shape{a, b, c} {
		assert.Same(t, &f.scene.Group, s.Parent())
		assert.Equal(t, i, f.scene.IndexOf(s))
		assert.True(t, globalBounds(s).Equal(before[s.ID()], 1e-9), "%s ungrouped", s.ID())
	}
	assert.InDelta(t, math.Pi/6, b.Angle(), 1e-12)
}

func TestUngroupRotatedGroupKeepsPositions(t *testing.T) {
	f := newFixture()
	a := f.rect(t, 0, 0, 20, 10)
	b := f.rect(t, 40, 30, 10, 10)
	f.sel.Set(a, b)
	groups, err := f.sel.Group()
	require.NoError(t, err)
	g := groups[0]
	require.True(t, g.SetAngle(math.Pi/2))

	corner := func(s scene.Shape) geom.Point {
		return s.GlobalTransform().Apply(s.BoundingBox().Min())
	}
	wantA, wantB := corner(a), corner(b)

	_, err = f.sel.Ungroup()
	require.NoError(t, err)
	assert.True(t, corner(a).Equal(wantA, 1e-9), "a: %+v != %+v", corner(a), wantA)
	assert.True(t, corner(b).Equal(wantB, 1e-9), "b: %+v != %+v", corner(b), wantB)
	assert.InDelta(t, math.Pi/2, a.Angle(), 1e-12)
}

func TestGroupSkipsLoneShapes(t *testing.T) {
	f := newFixture()
	a := f.rect(t, 0, 0, 10, 10)
	f.sel.Set(a)
	groups, err := f.sel.Group()
	require.NoError(t, err)
	assert.Empty(t, groups)
	assert.Same(t, &f.scene.Group, a.Parent())
}

func TestGroupVetoRestoresScene(t *testing.T) {
	f := newFixture()
	a := f.rect(t, 0, 0, 10, 10)
	b := f.rect(t, 20, 20, 10, 10)
	c := f.rect(t, 40, 40, 10, 10)
	f.sel.Set(a, c)

	vetoed := false
	f.scene.Events().Before(event.ChildRemoved, func(e *event.Event) bool {
		if e.Old == scene.Shape(c) && !vetoed {
			vetoed = true
			return false
		}
		return true
	})

	_, err := f.sel.Group()
	require.ErrorIs(t, err, scene.ErrVetoed)
	assert.Equal(t, []scene.Shape{a, b, c}, f.scene.Children())
	assert.Equal(t, geom.Rect(0, 0, 10, 10), a.BoundingBox())
}

func TestGroupReportsSelectionVeto(t *testing.T) {
	f := newFixture()
	a := f.rect(t, 0, 0, 10, 10)
	b := f.rect(t, 20, 20, 10, 10)
	f.sel.Set(a, b)
	f.sel.Events().Before(event.ShapesSelected, func(*event.Event) bool { return false })

	groups, err := f.sel.Group()
	require.ErrorIs(t, err, scene.ErrVetoed)
	require.Len(t, groups, 1)
	assert.Same(t, groups[0], a.Parent())
	assert.Equal(t, 0, f.sel.Count())
}

func TestUngroupReportsSelectionVeto(t *testing.T) {
	f := newFixture()
	a := f.rect(t, 0, 0, 10, 10)
	b := f.rect(t, 20, 20, 10, 10)
	f.sel.Set(a, b)
	groups, err := f.sel.Group()
	require.NoError(t, err)
	require.Len(t, groups, 1)

	f.sel.Events().Before(event.ShapesUnselected, func(*event.Event) bool { return false })
	released, err := f.sel.Ungroup()
	require.ErrorIs(t, err, scene.ErrVetoed)
	assert.Len(t, released, 2)
	assert.Same(t, &f.scene.Group, a.Parent())
	assert.True(t, f.sel.Contains(groups[0]))
}

func TestZOrderKeepsRelativeOrder(t *testing.T) {
	f := newFixture()
	a := f.rect(t, 0, 0, 1, 1)
	b := f.rect(t, 0, 0, 1, 1)
	c := f.rect(t, 0, 0, 1, 1)
	d := f.rect(t, 0, 0, 1, 1)

	f.sel.Set(a, b)
	f.sel.BringToFront()
	assert.Equal(t, []scene.Shape{c, d, a, b}, f.scene.Children())

	f.sel.SendToBack()
	assert.Equal(t, []scene.Shape{a, b, c, d}, f.scene.Children())

	f.sel.BringForward()
	assert.Equal(t, []scene.Shape{c, a, b, d}, f.scene.Children())

	f.sel.SendBackward()
	assert.Equal(t, []scene.Shape{a, b, c, d}, f.scene.Children())
}
