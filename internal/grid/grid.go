// Package grid provides grid spacing settings and point snapping.
package grid

import (
	"math"

	"gerberlens/internal/units"
	"gerberlens/pkg/geometry"
)

// Settings holds the active grid configuration.
type Settings struct {
	Spacing     units.Canonical `json:"spacing"`      // Grid pitch in canonical units
	SnapEnabled bool            `json:"snap_enabled"` // Snap points to grid when true
	DotSize     float64         `json:"dot_size"`     // Grid dot radius in pixels, cosmetic only
}

// DefaultSettings returns a 1.27 mm (50 mil) grid with snapping off.
func DefaultSettings() Settings {
	return Settings{
		Spacing:     units.FromMM(1.27),
		SnapEnabled: false,
		DotSize:     1.5,
	}
}

// PresetSpacingsMils are the selectable grid pitches in mils.
var PresetSpacingsMils = []float64{100, 50, 25, 10, 5, 2, 1}

// PresetSpacings returns the selectable grid pitches in canonical units.
// The mm presets are the exact metric twins of the mil presets.
func PresetSpacings() []units.Canonical {
	out := make([]units.Canonical, len(PresetSpacingsMils))
	for i, mils := range PresetSpacingsMils {
		out[i] = units.ToCanonical(mils, units.Mils)
	}
	return out
}

// Snap quantizes a point to the nearest grid intersection. When snapping is
// disabled or the spacing is not positive, the point is returned unchanged.
// Snap is idempotent: Snap(Snap(p)) == Snap(p).
func Snap(p geometry.Point2D, s Settings) geometry.Point2D {
	if !s.SnapEnabled || s.Spacing <= 0 {
		return p
	}
	pitch := float64(s.Spacing)
	return geometry.Point2D{
		X: math.Round(p.X/pitch) * pitch,
		Y: math.Round(p.Y/pitch) * pitch,
	}
}
