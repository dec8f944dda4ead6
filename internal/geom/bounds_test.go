package geom

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundsNormalization(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		b := Rect(rng.Float64()*200-100, rng.Float64()*200-100, rng.Float64()*200-100, rng.Float64()*200-100)
		assert.LessOrEqual(t, b.Left(), b.Right())
		assert.LessOrEqual(t, b.Top(), b.Bottom())
		n := b.Norm()
		assert.InDelta(t, n.Width, b.Right()-b.Left(), 1e-9)
		assert.InDelta(t, n.Height, b.Bottom()-b.Top(), 1e-9)
	}
}

func TestBoundsAccessors(t *testing.T) {
	b := Rect(10, 20, -4, 6)
	assert.Equal(t, 6.0, b.Left())
	assert.Equal(t, 10.0, b.Right())
	assert.Equal(t, 20.0, b.Top())
	assert.Equal(t, 26.0, b.Bottom())
	assert.Equal(t, 8.0, b.CenterX())
	assert.Equal(t, 23.0, b.CenterY())
	assert.Equal(t, 2.0, b.InnerRadius())
	assert.True(t, b.ContainsPoint(Pt(7, 21)))
	assert.False(t, b.ContainsPoint(Pt(11, 21)))
}

func TestBoundsUnion(t *testing.T) {
	u := Rect(0, 0, 10, 10).Union(Rect(5, -5, 10, 10))
	assert.Equal(t, Rect(0, -5, 15, 15), u)

	// A zero-height box still contributes its extent.
	u = Rect(0, 0, 10, 0).Union(Rect(10, 0, 0, 10))
	assert.Equal(t, Rect(0, 0, 10, 10), u)
}

func TestBoundsMove(t *testing.T) {
	assert.Equal(t, Rect(3, 4, 10, 10), Rect(1, 1, 10, 10).Move(2, 3))
}

func TestBoundsOfPoints(t *testing.T) {
	assert.Equal(t, Bounds{}, BoundsOfPoints())
	assert.Equal(t, Rect(-1, 0, 4, 5), BoundsOfPoints(Pt(0, 0), Pt(3, 5), Pt(-1, 2)))
}
