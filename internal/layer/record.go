package layer

import (
	"image/color"

	"gerberlens/pkg/colorutil"
	"gerberlens/pkg/geometry"
)

// Geometry is the opaque handle supplied by the external gerber provider.
// The registry never parses manufacturing files itself; a bounding box in
// canonical coordinates is the only thing it requires.
type Geometry interface {
	BoundingBox() geometry.Rect
}

// Record owns all per-layer state for one role: the geometry handle,
// visibility and render settings, and cached display coordinates derived
// from the active view transform.
type Record struct {
	Gerber  Geometry
	Visible bool
	Color   color.RGBA
	Opacity float64

	// Cached canonical bounding box, filled by InitializeCoordinates.
	Bounds geometry.Rect

	// Cached display-space position of the layer origin, maintained by the
	// positioning collaborator through Registry.UpdateFromViewState.
	DisplayOffset geometry.Point2D
}

// NewRecord creates a visible record for the given geometry with the role's
// conventional render color.
func NewRecord(role Role, gerber Geometry) *Record {
	return &Record{
		Gerber:  gerber,
		Visible: true,
		Color:   defaultColor(role),
		Opacity: 1.0,
	}
}

// InitializeCoordinates recomputes the cached bounding box from the raw
// geometry and resets the display offset.
func (r *Record) InitializeCoordinates() {
	if r.Gerber != nil {
		r.Bounds = r.Gerber.BoundingBox()
	} else {
		r.Bounds = geometry.Rect{}
	}
	r.DisplayOffset = geometry.Point2D{}
}

// defaultColor returns the conventional render color for a role.
func defaultColor(role Role) color.RGBA {
	switch role.Kind {
	case KindCopper:
		if role.Copper == CopperBottomIndex {
			return colorutil.CopperBottom
		}
		return colorutil.Copper
	case KindSilkscreen:
		return colorutil.Silkscreen
	case KindSoldermask:
		return colorutil.Soldermask
	case KindPaste:
		return colorutil.Paste
	default:
		return colorutil.Outline
	}
}

// RenderColor returns the record's color with its opacity applied.
func (r *Record) RenderColor() color.RGBA {
	return colorutil.WithOpacity(r.Color, r.Opacity)
}

// UnassignedGerber holds imported geometry whose filename matched no known
// layer convention. Entries are kept until a role is assigned manually or
// the entry is explicitly discarded; they are never silently dropped.
type UnassignedGerber struct {
	ID       string
	Filename string
	Gerber   Geometry
}
