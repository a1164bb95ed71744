package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gerberlens/internal/units"
	"gerberlens/pkg/geometry"
)

func TestSnapDisabledReturnsInput(t *testing.T) {
	s := DefaultSettings()
	p := geometry.NewPoint2D(123456, -789)
	assert.Equal(t, p, Snap(p, s))
}

func TestSnapRoundsEachAxis(t *testing.T) {
	s := Settings{Spacing: units.FromMM(1), SnapEnabled: true}

	// 1 mm pitch = 1e6 nm; 0.4 mm rounds down, 0.6 mm rounds up
	p := geometry.NewPoint2D(0.4e6, 0.6e6)
	got := Snap(p, s)
	assert.Equal(t, geometry.NewPoint2D(0, 1e6), got)

	// Negative coordinates snap toward the nearest intersection too
	p = geometry.NewPoint2D(-0.4e6, -1.6e6)
	got = Snap(p, s)
	assert.Equal(t, geometry.NewPoint2D(0, -2e6), got)
}

func TestSnapIdempotent(t *testing.T) {
	settings := []Settings{
		{Spacing: units.FromMM(2.54), SnapEnabled: true},
		{Spacing: units.ToCanonical(5, units.Mils), SnapEnabled: true},
		{Spacing: units.FromMM(0.0254), SnapEnabled: true},
		{Spacing: 0, SnapEnabled: true},
		{Spacing: units.FromMM(1), SnapEnabled: false},
	}
	points := []geometry.Point2D{
		{X: 0, Y: 0},
		{X: 1234567, Y: -7654321},
		{X: 0.5e6, Y: 0.5e6},
		{X: -3, Y: 17},
	}

	for _, s := range settings {
		for _, p := range points {
			once := Snap(p, s)
			twice := Snap(once, s)
			assert.Equal(t, once, twice, "spacing=%d p=%v", s.Spacing, p)
		}
	}
}

func TestSnapZeroSpacingIsNoop(t *testing.T) {
	s := Settings{Spacing: 0, SnapEnabled: true}
	p := geometry.NewPoint2D(42, 43)
	assert.Equal(t, p, Snap(p, s))
}

func TestPresetSpacings(t *testing.T) {
	presets := PresetSpacings()
	assert.Len(t, presets, len(PresetSpacingsMils))
	// 100 mil preset is exactly 2.54 mm
	assert.Equal(t, units.FromMM(2.54), presets[0])
	// 1 mil preset is exactly 0.0254 mm
	assert.Equal(t, units.FromMM(0.0254), presets[len(presets)-1])
}
