package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixInvert(t *testing.T) {
	m := Translate(10, 5).Multiply(Rotate(math.Pi / 3)).Multiply(Scale(2, 0.5))
	p := Pt(3, -7)
	q := m.Invert().Apply(m.Apply(p))
	assert.True(t, p.Equal(q, 1e-9), "have %v, want %v", q, p)
}

func TestMatrixSingularInvert(t *testing.T) {
	assert.True(t, Scale(0, 1).Invert().IsIdentity())
}

func TestAbout(t *testing.T) {
	p := About(Pt(5, 5), Rotate(math.Pi/2)).Apply(Pt(10, 5))
	assert.True(t, p.Equal(Pt(5, 10), 1e-9), "have %v", p)
	assert.True(t, Pt(10, 5).Rotate(Pt(5, 5), math.Pi/2).Equal(p, 1e-9))
}

func TestTransformRect(t *testing.T) {
	r := Rotate(math.Pi / 2).TransformRect(Rect(0, 0, 10, 20))
	assert.True(t, r.Equal(Rect(-20, 0, 20, 10), 1e-9), "have %v", r)
}

func TestTransformStamp(t *testing.T) {
	tr := NewTransform()
	assert.True(t, tr.Matrix().IsIdentity())
	s0 := tr.Stamp()

	tr.Set(Rotate(math.Pi / 2))
	s1 := tr.Stamp()
	assert.Greater(t, s1, s0)
	assert.True(t, tr.Matrix().Apply(Pt(1, 0)).Equal(Pt(0, 1), 1e-9))

	tr.Touch()
	assert.Greater(t, tr.Stamp(), s1)
	assert.True(t, tr.Matrix().Apply(Pt(1, 0)).Equal(Pt(0, 1), 1e-9))
}

func TestPointScale(t *testing.T) {
	assert.Equal(t, Pt(20, 5), Pt(10, 5).Scale(Pt(0, 5), 2, 3))
}
