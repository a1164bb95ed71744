package display

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gerberlens/pkg/geometry"
)

func TestFitRigidRecoversRotation(t *testing.T) {
	want := geometry.Translation(5, -3).Compose(geometry.Rotation(math.Pi / 6))

	src := []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	dst := make([]geometry.Point2D, len(src))
	for i, p := range src {
		dst[i] = want.Apply(p)
	}

	got, err := FitRigid(src, dst)
	require.NoError(t, err)
	assert.InDelta(t, want.A, got.A, 1e-9)
	assert.InDelta(t, want.C, got.C, 1e-9)
	assert.InDelta(t, want.TX, got.TX, 1e-9)
	assert.InDelta(t, want.TY, got.TY, 1e-9)
	assert.InDelta(t, 0, FitError(src, dst, got), 1e-9)
}

func TestFitRigidRejectsBadInput(t *testing.T) {
	_, err := FitRigid([]geometry.Point2D{{X: 0, Y: 0}}, []geometry.Point2D{{X: 1, Y: 1}})
	assert.Error(t, err)

	_, err = FitRigid([]geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 1}}, []geometry.Point2D{{X: 0, Y: 0}})
	assert.Error(t, err)
}

func TestFitAffineRecoversTransform(t *testing.T) {
	want := geometry.AffineTransform{A: 1.1, B: 0.05, TX: 4, C: -0.02, D: 0.95, TY: -7}

	src := []geometry.Point2D{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 100}, {X: 100, Y: 100}, {X: 50, Y: 25}}
	dst := make([]geometry.Point2D, len(src))
	for i, p := range src {
		dst[i] = want.Apply(p)
	}

	got, err := FitAffine(src, dst)
	require.NoError(t, err)
	assert.InDelta(t, want.A, got.A, 1e-9)
	assert.InDelta(t, want.B, got.B, 1e-9)
	assert.InDelta(t, want.TX, got.TX, 1e-9)
	assert.InDelta(t, want.D, got.D, 1e-9)
}

func TestFitAffineNeedsThreePairs(t *testing.T) {
	pts := []geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 1}}
	_, err := FitAffine(pts, pts)
	assert.Error(t, err)
}

func TestFitErrorEmptyInput(t *testing.T) {
	assert.True(t, math.IsInf(FitError(nil, nil, geometry.Identity()), 1))
}
