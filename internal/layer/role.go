// Package layer provides layer identity, role detection, and the layer
// registry that owns all per-layer state.
package layer

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the class of manufacturing artwork a layer holds.
type Kind int

const (
	KindCopper Kind = iota
	KindSilkscreen
	KindSoldermask
	KindPaste
	KindMechanicalOutline
)

func (k Kind) String() string {
	switch k {
	case KindCopper:
		return "Copper"
	case KindSilkscreen:
		return "Silkscreen"
	case KindSoldermask:
		return "Soldermask"
	case KindPaste:
		return "Paste"
	case KindMechanicalOutline:
		return "Mechanical Outline"
	default:
		return "Unknown"
	}
}

// Side indicates which side of the board a layer belongs to.
type Side int

const (
	SideTop Side = iota
	SideBottom
)

func (s Side) String() string {
	if s == SideBottom {
		return "Bottom"
	}
	return "Top"
}

// Copper layer indices follow the KiCad convention: 0 is the top (front)
// copper, 31 is the bottom (back) copper, 1-30 are inner layers.
const (
	CopperTopIndex    = 0
	CopperBottomIndex = 31
)

// Role is the discriminated identity of a layer. Copper roles carry a layer
// index; silkscreen, soldermask and paste carry a side. Role is comparable
// and is used directly as the registry map key.
type Role struct {
	Kind   Kind `json:"kind"`
	Copper int  `json:"copper,omitempty"` // copper layer index, KindCopper only
	Side   Side `json:"side,omitempty"`   // KindSilkscreen/KindSoldermask/KindPaste only
}

// Copper returns the role for the copper layer with the given index.
func Copper(index int) Role {
	return Role{Kind: KindCopper, Copper: index}
}

// TopCopper returns the top copper role.
func TopCopper() Role {
	return Copper(CopperTopIndex)
}

// BottomCopper returns the bottom copper role.
func BottomCopper() Role {
	return Copper(CopperBottomIndex)
}

// Silkscreen returns the silkscreen role for a side.
func Silkscreen(side Side) Role {
	return Role{Kind: KindSilkscreen, Side: side}
}

// Soldermask returns the soldermask role for a side.
func Soldermask(side Side) Role {
	return Role{Kind: KindSoldermask, Side: side}
}

// Paste returns the paste role for a side.
func Paste(side Side) Role {
	return Role{Kind: KindPaste, Side: side}
}

// MechanicalOutline returns the board outline role.
func MechanicalOutline() Role {
	return Role{Kind: KindMechanicalOutline}
}

func (r Role) String() string {
	switch r.Kind {
	case KindCopper:
		switch r.Copper {
		case CopperTopIndex:
			return "Top Copper"
		case CopperBottomIndex:
			return "Bottom Copper"
		default:
			return fmt.Sprintf("Inner Copper %d", r.Copper)
		}
	case KindMechanicalOutline:
		return "Mechanical Outline"
	default:
		return fmt.Sprintf("%s %s", r.Side, r.Kind)
	}
}

// Ordinal returns a stable sort key: copper layers top to bottom, then
// soldermask, silkscreen, paste (top before bottom), then the outline.
func (r Role) Ordinal() int {
	switch r.Kind {
	case KindCopper:
		return r.Copper
	case KindSoldermask:
		return 100 + int(r.Side)
	case KindSilkscreen:
		return 110 + int(r.Side)
	case KindPaste:
		return 120 + int(r.Side)
	default:
		return 200
	}
}

// MarshalText encodes the role as a stable slug, e.g. "copper-0",
// "silkscreen-top", "mechanical-outline". Used for JSON map keys.
func (r Role) MarshalText() ([]byte, error) {
	switch r.Kind {
	case KindCopper:
		return []byte("copper-" + strconv.Itoa(r.Copper)), nil
	case KindSilkscreen:
		return []byte("silkscreen-" + sideSlug(r.Side)), nil
	case KindSoldermask:
		return []byte("soldermask-" + sideSlug(r.Side)), nil
	case KindPaste:
		return []byte("paste-" + sideSlug(r.Side)), nil
	case KindMechanicalOutline:
		return []byte("mechanical-outline"), nil
	default:
		return nil, fmt.Errorf("unknown layer kind %d", r.Kind)
	}
}

// UnmarshalText decodes a role slug produced by MarshalText.
func (r *Role) UnmarshalText(text []byte) error {
	role, ok := ParseRole(string(text))
	if !ok {
		return fmt.Errorf("invalid layer role %q", string(text))
	}
	*r = role
	return nil
}

// ParseRole parses a role slug. Returns false for unrecognized input.
func ParseRole(s string) (Role, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "mechanical-outline" {
		return MechanicalOutline(), true
	}
	if num, ok := strings.CutPrefix(s, "copper-"); ok {
		n, err := strconv.Atoi(num)
		if err != nil || n < 0 {
			return Role{}, false
		}
		return Copper(n), true
	}

	kind, rest, found := strings.Cut(s, "-")
	if !found {
		return Role{}, false
	}
	var side Side
	switch rest {
	case "top":
		side = SideTop
	case "bottom":
		side = SideBottom
	default:
		return Role{}, false
	}
	switch kind {
	case "silkscreen":
		return Silkscreen(side), true
	case "soldermask":
		return Soldermask(side), true
	case "paste":
		return Paste(side), true
	}
	return Role{}, false
}

func sideSlug(s Side) string {
	if s == SideBottom {
		return "bottom"
	}
	return "top"
}
