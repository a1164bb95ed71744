// Package display owns the view transform state and the coordinate pipeline
// that maps canonical design coordinates to display coordinates.
//
// Every consumer of display coordinates (DRC markers, overlays, cursor and
// ruler readouts) goes through the same ToDisplay call, in the same fixed
// stage order: rotate, then mirror, then translate. Quadrant offsets are a
// per-layer translation applied to a copy of the geometry before that
// shared chain.
package display

import (
	"math"

	"gerberlens/internal/layer"
	"gerberlens/internal/units"
	"gerberlens/pkg/geometry"
)

// Mirroring holds the independent axis mirror flags.
type Mirroring struct {
	X bool `json:"x"`
	Y bool `json:"y"`
}

// ViewState is the active view transform: rotation in degrees (wraps mod
// 360), mirror flags, the custom origin (zero means unset), and the
// viewport-center mapping. Rotation is stored in degrees only; radians
// exist solely at the call boundary.
type ViewState struct {
	RotationDegrees float64
	Mirroring       Mirroring

	// DesignOffset is the user-chosen custom origin in canonical
	// coordinates. Zero means no custom origin is set.
	DesignOffset geometry.Point2D

	// CenterOffset maps the design origin to the viewport center.
	CenterOffset geometry.Point2D
}

// Manager owns the view state and quadrant-view settings, and implements
// the registry's positioning collaborator.
type Manager struct {
	View ViewState

	QuadrantViewEnabled     bool
	QuadrantOffsetMagnitude units.Canonical
}

// NewManager creates a manager with no rotation, no mirroring, and the
// default 50 mm quadrant spacing.
func NewManager() *Manager {
	return &Manager{
		QuadrantOffsetMagnitude: units.FromMM(50),
	}
}

// SetRotation sets the rotation angle, wrapped into [0, 360).
func (m *Manager) SetRotation(degrees float64) {
	m.View.RotationDegrees = math.Mod(math.Mod(degrees, 360)+360, 360)
}

// Rotate90 advances the rotation by 90 degrees.
func (m *Manager) Rotate90() {
	m.SetRotation(m.View.RotationDegrees + 90)
}

// SetCustomOrigin sets the custom origin in canonical coordinates.
func (m *Manager) SetCustomOrigin(p geometry.Point2D) {
	m.View.DesignOffset = p
}

// ResetOrigin clears the custom origin back to the viewport-center mapping.
func (m *Manager) ResetOrigin() {
	m.View.DesignOffset = geometry.Point2D{}
}

// HasCustomOrigin reports whether a custom origin is set.
func (m *Manager) HasCustomOrigin() bool {
	return !m.View.DesignOffset.IsZero()
}

// SetQuadrantOffsetMagnitude sets the quadrant spacing.
func (m *Manager) SetQuadrantOffsetMagnitude(c units.Canonical) {
	m.QuadrantOffsetMagnitude = c
}

// Transform composes the display pipeline as a single affine transform:
// rotate about the local origin, mirror, then translate by the effective
// origin (centerOffset - customOrigin).
func (m *Manager) Transform() geometry.AffineTransform {
	v := &m.View
	origin := v.CenterOffset.Sub(v.DesignOffset)
	t := geometry.Translation(origin.X, origin.Y)
	t = t.Compose(geometry.Mirror(v.Mirroring.X, v.Mirroring.Y))
	if v.RotationDegrees != 0 {
		t = t.Compose(geometry.Rotation(v.RotationDegrees * math.Pi / 180))
	}
	return t
}

// ToDisplay maps a canonical point to display coordinates.
func (m *Manager) ToDisplay(p geometry.Point2D) geometry.Point2D {
	return m.Transform().Apply(p)
}

// ToCanonical maps a display point back to canonical coordinates. It is the
// exact inverse of ToDisplay.
func (m *Manager) ToCanonical(p geometry.Point2D) geometry.Point2D {
	inv, ok := m.Transform().Inverse()
	if !ok {
		return p
	}
	return inv.Apply(p)
}

// QuadrantOffset returns the per-layer translation that separates layer
// copies into quadrants for comparison: top-side artwork to +X, bottom-side
// to -X, copper above the axis, non-copper below. The outline stays at the
// origin. Zero when quadrant view is disabled.
func (m *Manager) QuadrantOffset(role layer.Role) geometry.Point2D {
	if !m.QuadrantViewEnabled {
		return geometry.Point2D{}
	}
	mag := float64(m.QuadrantOffsetMagnitude)

	if role.Kind == layer.KindMechanicalOutline {
		return geometry.Point2D{}
	}

	x := mag
	if roleSide(role) == layer.SideBottom {
		x = -mag
	}
	y := mag
	if role.Kind != layer.KindCopper {
		y = -mag
	}
	return geometry.Point2D{X: x, Y: y}
}

// ToDisplayForLayer maps a canonical point belonging to a specific layer,
// applying that layer's quadrant offset before the shared pipeline.
func (m *Manager) ToDisplayForLayer(p geometry.Point2D, role layer.Role) geometry.Point2D {
	return m.ToDisplay(p.Add(m.QuadrantOffset(role)))
}

// UpdateLayerPositions recomputes each record's cached display offset from
// its canonical bounds. Invoked by the registry's freshness protocol; this
// is the positioning collaborator.
func (m *Manager) UpdateLayerPositions(reg *layer.Registry) {
	for _, role := range reg.Roles() {
		rec := reg.GetLayer(role)
		if rec == nil {
			continue
		}
		rec.DisplayOffset = m.ToDisplayForLayer(rec.Bounds.Center(), role)
	}
}

// roleSide maps a role to its board side. Inner and bottom copper count as
// bottom-side for quadrant placement.
func roleSide(role layer.Role) layer.Side {
	if role.Kind == layer.KindCopper {
		if role.Copper == layer.CopperTopIndex {
			return layer.SideTop
		}
		return layer.SideBottom
	}
	return role.Side
}
