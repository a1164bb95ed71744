package layer

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Detector classifies gerber filenames into layer roles using common naming
// conventions (KiCad suffixes, Protel extensions, descriptive keywords).
//
// Detection is deliberately conservative: a filename that matches no rule is
// reported as unmatched rather than guessed, because silently misclassifying
// a manufacturing layer is worse than asking the user.
type Detector struct{}

// NewDetector creates a layer detector.
func NewDetector() Detector {
	return Detector{}
}

// Protel/Altium style extensions.
var extensionRoles = map[string]Role{
	".gtl": TopCopper(),
	".gbl": BottomCopper(),
	".gto": Silkscreen(SideTop),
	".gbo": Silkscreen(SideBottom),
	".gts": Soldermask(SideTop),
	".gbs": Soldermask(SideBottom),
	".gtp": Paste(SideTop),
	".gbp": Paste(SideBottom),
	".gko": MechanicalOutline(),
	".gm1": MechanicalOutline(),
}

// KiCad style name fragments, checked against the basename with separators
// normalized to underscores.
var namedRoles = []struct {
	fragment string
	role     Role
}{
	{"f_cu", TopCopper()},
	{"b_cu", BottomCopper()},
	{"f_silkscreen", Silkscreen(SideTop)},
	{"b_silkscreen", Silkscreen(SideBottom)},
	{"f_silks", Silkscreen(SideTop)},
	{"b_silks", Silkscreen(SideBottom)},
	{"f_mask", Soldermask(SideTop)},
	{"b_mask", Soldermask(SideBottom)},
	{"f_paste", Paste(SideTop)},
	{"b_paste", Paste(SideBottom)},
	{"edge_cuts", MechanicalOutline()},
}

var (
	innerNameRe = regexp.MustCompile(`in(\d+)_cu`)
	innerExtRe  = regexp.MustCompile(`^\.g(\d+)$`)
)

// Detect classifies a filename into a layer role. The second return value is
// false when no convention matches; callers must route such files to the
// unassigned list.
func (Detector) Detect(filename string) (Role, bool) {
	base := strings.ToLower(filepath.Base(filename))
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	stem = strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(stem)

	if role, ok := extensionRoles[ext]; ok {
		return role, true
	}
	if m := innerExtRe.FindStringSubmatch(ext); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n >= 1 && n <= 30 {
			return Copper(n), true
		}
	}

	for _, nr := range namedRoles {
		if strings.Contains(stem, nr.fragment) {
			return nr.role, true
		}
	}
	if m := innerNameRe.FindStringSubmatch(stem); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n >= 1 && n <= 30 {
			return Copper(n), true
		}
	}

	return detectByKeywords(stem)
}

// detectByKeywords handles descriptive names like "board-top-copper.gbr".
func detectByKeywords(stem string) (Role, bool) {
	side, hasSide := SideTop, false
	switch {
	case strings.Contains(stem, "top") || strings.Contains(stem, "front"):
		side, hasSide = SideTop, true
	case strings.Contains(stem, "bottom") || strings.Contains(stem, "back"):
		side, hasSide = SideBottom, true
	}

	switch {
	case strings.Contains(stem, "outline") || strings.Contains(stem, "profile") ||
		strings.Contains(stem, "mechanical") || strings.Contains(stem, "dimension"):
		return MechanicalOutline(), true
	case !hasSide:
		return Role{}, false
	case strings.Contains(stem, "copper"):
		if side == SideBottom {
			return BottomCopper(), true
		}
		return TopCopper(), true
	case strings.Contains(stem, "silk"):
		return Silkscreen(side), true
	case strings.Contains(stem, "mask"):
		return Soldermask(side), true
	case strings.Contains(stem, "paste"):
		return Paste(side), true
	}
	return Role{}, false
}
