package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAffineComposeApply(t *testing.T) {
	rot := Rotation(math.Pi / 2)
	trans := Translation(10, 5)

	// trans * rot: rotate first, then translate
	combined := trans.Compose(rot)
	got := combined.Apply(Point2D{X: 1, Y: 0})

	assert.InDelta(t, 10, got.X, 1e-9)
	assert.InDelta(t, 6, got.Y, 1e-9)
}

func TestAffineInverseRoundTrip(t *testing.T) {
	tr := Translation(3, -7).Compose(Rotation(0.37)).Compose(Mirror(true, false))
	inv, ok := tr.Inverse()
	require.True(t, ok)

	p := Point2D{X: 12.5, Y: -4.25}
	back := inv.Apply(tr.Apply(p))
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
}

func TestAffineInverseSingular(t *testing.T) {
	_, ok := AffineTransform{}.Inverse()
	assert.False(t, ok)
}

func TestMirror(t *testing.T) {
	p := Point2D{X: 2, Y: 3}
	assert.Equal(t, Point2D{X: -2, Y: 3}, Mirror(true, false).Apply(p))
	assert.Equal(t, Point2D{X: 2, Y: -3}, Mirror(false, true).Apply(p))
	assert.Equal(t, Point2D{X: -2, Y: -3}, Mirror(true, true).Apply(p))
}

func TestBoundingBox(t *testing.T) {
	pts := []Point2D{{1, 2}, {-3, 4}, {5, -6}}
	bb := BoundingBox(pts)
	assert.Equal(t, Rect{X: -3, Y: -6, Width: 8, Height: 10}, bb)

	assert.Equal(t, Rect{}, BoundingBox(nil))
}

func TestRectUnionCenter(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)
	u := a.Union(b)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 15, Height: 15}, u)
	assert.Equal(t, Point2D{X: 7.5, Y: 7.5}, u.Center())
}

func TestPointSegmentDistance(t *testing.T) {
	a := Point2D{X: 0, Y: 0}
	b := Point2D{X: 10, Y: 0}

	assert.InDelta(t, 5, PointSegmentDistance(Point2D{X: 5, Y: 5}, a, b), 1e-9)
	// Beyond the endpoint the closest point is the endpoint itself
	assert.InDelta(t, 5, PointSegmentDistance(Point2D{X: 15, Y: 0}, a, b), 1e-9)
	// Degenerate segment
	assert.InDelta(t, 5, PointSegmentDistance(Point2D{X: 3, Y: 4}, a, a), 1e-9)
}

func TestSegmentDistance(t *testing.T) {
	// Parallel horizontal segments 2 apart
	d := SegmentDistance(Point2D{0, 0}, Point2D{10, 0}, Point2D{0, 2}, Point2D{10, 2})
	assert.InDelta(t, 2, d, 1e-9)

	// Crossing segments
	d = SegmentDistance(Point2D{0, 0}, Point2D{10, 10}, Point2D{0, 10}, Point2D{10, 0})
	assert.Zero(t, d)
}
