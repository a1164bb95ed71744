// Package units provides canonical-unit arithmetic for design coordinates.
//
// All geometry is stored in integer nanometers, the same internal precision
// model professional CAD tools use. Display values in millimeters, mils or
// micrometers are always derived from the canonical value, never stored.
package units

import (
	"fmt"
	"math"
	"strings"
)

// Canonical is a length in integer nanometers.
type Canonical int64

// Nanometers per display unit.
const (
	nmPerMM  = 1e6
	nmPerMil = 25400
	nmPerUM  = 1e3
)

// Unit identifies a display unit.
type Unit int

const (
	Millimeters Unit = iota
	Mils
	Micrometers
	Nanometers
)

func (u Unit) String() string {
	switch u {
	case Millimeters:
		return "mm"
	case Mils:
		return "mils"
	case Micrometers:
		return "um"
	case Nanometers:
		return "nm"
	default:
		return "unknown"
	}
}

// ParseUnit parses a unit name. Unrecognized names default to millimeters.
func ParseUnit(s string) Unit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mil", "mils", "thou":
		return Mils
	case "um", "µm", "micrometers", "microns":
		return Micrometers
	case "nm", "nanometers":
		return Nanometers
	default:
		return Millimeters
	}
}

func (u Unit) perNm() float64 {
	switch u {
	case Mils:
		return 1 / float64(nmPerMil)
	case Micrometers:
		return 1 / nmPerUM
	case Nanometers:
		return 1
	default:
		return 1 / nmPerMM
	}
}

// ToCanonical converts a display value to canonical nanometers.
// Values outside the representable range are clamped, not rejected.
func ToCanonical(value float64, u Unit) Canonical {
	nm := math.Round(value / u.perNm())
	if nm >= math.MaxInt64 {
		return Canonical(math.MaxInt64)
	}
	if nm <= math.MinInt64 {
		return Canonical(math.MinInt64)
	}
	if math.IsNaN(nm) {
		return 0
	}
	return Canonical(nm)
}

// FromCanonical converts a canonical value to the given display unit.
func FromCanonical(c Canonical, u Unit) float64 {
	return float64(c) * u.perNm()
}

// FromMM converts millimeters to canonical nanometers.
func FromMM(mm float64) Canonical {
	return ToCanonical(mm, Millimeters)
}

// MM returns the value in millimeters.
func (c Canonical) MM() float64 {
	return FromCanonical(c, Millimeters)
}

// Mils returns the value in mils (1/1000 inch).
func (c Canonical) Mils() float64 {
	return FromCanonical(c, Mils)
}

// Abs returns the absolute value.
func (c Canonical) Abs() Canonical {
	if c < 0 {
		return -c
	}
	return c
}

// Format renders the value in the given unit with its customary precision.
func Format(c Canonical, u Unit) string {
	switch u {
	case Mils:
		return fmt.Sprintf("%.2f mils", FromCanonical(c, Mils))
	case Micrometers:
		return fmt.Sprintf("%.1f um", FromCanonical(c, Micrometers))
	case Nanometers:
		return fmt.Sprintf("%d nm", int64(c))
	default:
		return fmt.Sprintf("%.3f mm", FromCanonical(c, Millimeters))
	}
}
