package geom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArcRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		// Keep |delta| away from 0, π and 2π where the flags are ambiguous.
		mag := 0.2 + rng.Float64()*(math.Pi-0.4)
		if rng.Intn(2) == 0 {
			mag += math.Pi
		}
		if rng.Intn(2) == 0 {
			mag = -mag
		}
		in := CenterArc{
			Center:     Pt(rng.Float64()*400-200, rng.Float64()*400-200),
			RX:         1 + rng.Float64()*99,
			RY:         1 + rng.Float64()*99,
			Phi:        rng.Float64() * 2 * math.Pi,
			Theta:      rng.Float64() * 2 * math.Pi,
			DeltaTheta: mag,
		}

		ep := CenterToEndpoints(in)
		out := EndpointsToCenter(ep.Start.X, ep.Start.Y, ep.RX, ep.RY, ep.Phi, ep.LargeArc, ep.Sweep, ep.End.X, ep.End.Y)

		require.False(t, out.Degenerate)
		assert.InDelta(t, in.Center.X, out.Center.X, 1e-6, "case %d", i)
		assert.InDelta(t, in.Center.Y, out.Center.Y, 1e-6, "case %d", i)
		assert.InDelta(t, in.DeltaTheta, out.DeltaTheta, 1e-6, "case %d", i)
		assert.Equal(t, in.DeltaTheta > 0, out.DeltaTheta > 0)
		assert.Equal(t, math.Abs(in.DeltaTheta) > math.Pi, math.Abs(out.DeltaTheta) > math.Pi)
	}
}

func TestEndpointsToCenterSweepDirection(t *testing.T) {
	// Half circle of radius 10 from (0,0) to (20,0).
	cw := EndpointsToCenter(0, 0, 10, 10, 0, false, true, 20, 0)
	ccw := EndpointsToCenter(0, 0, 10, 10, 0, false, false, 20, 0)
	assert.Greater(t, cw.DeltaTheta, 0.0)
	assert.Less(t, ccw.DeltaTheta, 0.0)
	assert.InDelta(t, 10, cw.Center.X, 1e-9)
	assert.InDelta(t, 0, cw.Center.Y, 1e-9)
}

func TestEndpointsToCenterScalesSmallRadii(t *testing.T) {
	a := EndpointsToCenter(0, 0, 1, 1, 0, false, true, 20, 0)
	assert.InDelta(t, 10, a.RX, 1e-9)
	assert.InDelta(t, 10, a.RY, 1e-9)
	assert.InDelta(t, 10, a.Center.X, 1e-9)
}

func TestEndpointsToCenterDegenerate(t *testing.T) {
	a := EndpointsToCenter(0, 0, 0, 5, 0, false, true, 10, 0)
	assert.True(t, a.Degenerate)
	assert.Equal(t, Pt(5, 0), a.Center)
	assert.Equal(t, math.Pi/2, a.DeltaTheta)

	a = EndpointsToCenter(3, 3, 5, 5, 0, false, true, 3, 3)
	assert.True(t, a.Degenerate)
}

func TestSVGArcBounds(t *testing.T) {
	// Upper half of a circle of radius 10 centered at (10,0), drawn
	// clockwise on a y-down surface: passes through (10,-10).
	b := SVGArcBounds(0, 0, 10, 10, 0, false, true, 20, 0)
	assert.True(t, b.Equal(Rect(0, -10, 20, 10), 1e-9), "have %v", b)

	// The other half bulges downward.
	b = SVGArcBounds(0, 0, 10, 10, 0, false, false, 20, 0)
	assert.True(t, b.Equal(Rect(0, 0, 20, 10), 1e-9), "have %v", b)

	// Quarter arc only spans its own quadrant, not the whole ellipse.
	b = SVGArcBounds(10, 0, 10, 10, 0, false, true, 0, 10)
	assert.True(t, b.Equal(Rect(0, 0, 10, 10), 1e-9), "have %v", b)
}

func TestSVGArcBoundsDegenerate(t *testing.T) {
	b := SVGArcBounds(0, 0, 0, 0, 0, false, true, 10, 5)
	assert.Equal(t, Rect(0, 0, 10, 5), b)
}

func TestCenterArcBoundsRotated(t *testing.T) {
	a := CenterArc{Center: Pt(0, 0), RX: 20, RY: 10, Phi: math.Pi / 2, Theta: 0, DeltaTheta: 2 * math.Pi}
	b := a.Bounds()
	assert.True(t, b.Equal(Rect(-10, -20, 20, 40), 1e-9), "have %v", b)
}
