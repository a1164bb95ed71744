package drc

import (
	"sort"

	"github.com/google/uuid"

	"gerberlens/internal/design"
	"gerberlens/internal/layer"
	"gerberlens/internal/units"
	"gerberlens/pkg/geometry"
)

// Violation is one design-rule finding. Position is in raw canonical
// geometry space; mapping to display space is the caller's job, so a view
// change never requires re-running DRC.
type Violation struct {
	ID       string
	Rule     RuleKind
	Quality  TraceQuality
	Layer    layer.Role
	Position geometry.Point2D
	Measured units.Canonical
	Required units.Canonical
}

// Overlay is a polygon (at least 3 vertices) marking a DRC-relevant region,
// in raw canonical geometry space.
type Overlay struct {
	Rule     RuleKind
	Layer    layer.Role
	Vertices []geometry.Point2D
}

// Result holds a completed check: violations in stable order plus overlay
// shapes.
type Result struct {
	Violations []Violation
	Overlays   []Overlay
}

// Summary counts violations per quality grade.
func (r Result) Summary() map[TraceQuality]int {
	out := make(map[TraceQuality]int)
	for _, v := range r.Violations {
		out[v.Quality]++
	}
	return out
}

// Engine runs design-rule checks against registry geometry.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given rule thresholds.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Check evaluates every loaded copper layer whose geometry exposes
// measurable features, plus edge clearance against the mechanical outline.
// Identical geometry and thresholds always yield an identical, order-stable
// violation list.
func (e *Engine) Check(reg *layer.Registry) Result {
	var res Result

	outline, hasOutline := outlineBounds(reg)
	if hasOutline {
		res.Overlays = append(res.Overlays, cornerOverlays(outline)...)
	}

	for _, role := range reg.Roles() {
		if role.Kind != layer.KindCopper {
			continue
		}
		rec := reg.GetLayer(role)
		if rec == nil {
			continue
		}
		lg, ok := rec.Gerber.(*design.LayerGeometry)
		if !ok {
			continue
		}
		vs, os := e.CheckLayer(role, lg, outline, hasOutline)
		res.Violations = append(res.Violations, vs...)
		res.Overlays = append(res.Overlays, os...)
	}

	sortViolations(res.Violations)
	return res
}

// CheckLayer evaluates one copper layer's geometry.
func (e *Engine) CheckLayer(role layer.Role, lg *design.LayerGeometry, outline geometry.Rect, hasOutline bool) ([]Violation, []Overlay) {
	var violations []Violation
	var overlays []Overlay

	record := func(rule RuleKind, pos geometry.Point2D, measured units.Canonical) {
		th := e.cfg.Threshold(rule)
		quality := th.Classify(measured)
		if quality == QualityNominal {
			return
		}
		violations = append(violations, Violation{
			ID:       uuid.NewString(),
			Rule:     rule,
			Quality:  quality,
			Layer:    role,
			Position: pos,
			Measured: measured,
			Required: th.Nominal,
		})
		overlays = append(overlays, Overlay{
			Rule:     rule,
			Layer:    role,
			Vertices: diamond(pos, float64(th.Nominal)),
		})
	}

	// Trace width
	for _, t := range lg.Traces {
		record(RuleTraceWidth, geometry.SegmentMidpoint(t.Start, t.End), units.Canonical(t.Width))
	}

	// Trace-to-trace clearance; segments sharing an endpoint are connected,
	// not a clearance pair.
	for i := 0; i < len(lg.Traces); i++ {
		for j := i + 1; j < len(lg.Traces); j++ {
			a, b := lg.Traces[i], lg.Traces[j]
			if sharesEndpoint(a, b) {
				continue
			}
			gap := geometry.SegmentDistance(a.Start, a.End, b.Start, b.End) - a.Width/2 - b.Width/2
			if gap < 0 {
				gap = 0
			}
			pos := geometry.SegmentMidpoint(
				geometry.SegmentMidpoint(a.Start, a.End),
				geometry.SegmentMidpoint(b.Start, b.End),
			)
			record(RuleClearance, pos, units.Canonical(gap))
		}
	}

	// Pad-to-pad clearance
	for i := 0; i < len(lg.Pads); i++ {
		for j := i + 1; j < len(lg.Pads); j++ {
			a, b := lg.Pads[i], lg.Pads[j]
			gap := a.Center.Distance(b.Center) - a.Diameter/2 - b.Diameter/2
			if gap < 0 {
				gap = 0
			}
			record(RuleClearance, geometry.SegmentMidpoint(a.Center, b.Center), units.Canonical(gap))
		}
	}

	// Edge clearance against the board outline
	if hasOutline {
		for _, t := range lg.Traces {
			for _, p := range []geometry.Point2D{t.Start, t.End} {
				record(RuleEdgeClearance, p, units.Canonical(distanceToEdge(p, outline)-t.Width/2))
			}
		}
		for _, pad := range lg.Pads {
			record(RuleEdgeClearance, pad.Center, units.Canonical(distanceToEdge(pad.Center, outline)-pad.Diameter/2))
		}
	}

	return violations, overlays
}

// sortViolations orders by position (X then Y), then rule, then quality, so
// the output is assertable across runs.
func sortViolations(vs []Violation) {
	sort.SliceStable(vs, func(i, j int) bool {
		a, b := vs[i], vs[j]
		if a.Position.X != b.Position.X {
			return a.Position.X < b.Position.X
		}
		if a.Position.Y != b.Position.Y {
			return a.Position.Y < b.Position.Y
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return a.Quality < b.Quality
	})
}

func outlineBounds(reg *layer.Registry) (geometry.Rect, bool) {
	rec := reg.GetLayer(layer.MechanicalOutline())
	if rec == nil || rec.Gerber == nil {
		return geometry.Rect{}, false
	}
	return rec.Gerber.BoundingBox(), true
}

// distanceToEdge returns the distance from an interior point to the nearest
// outline edge. Points outside the outline are treated as zero distance.
func distanceToEdge(p geometry.Point2D, outline geometry.Rect) float64 {
	if !outline.Contains(p) {
		return 0
	}
	d := p.X - outline.X
	if right := outline.X + outline.Width - p.X; right < d {
		d = right
	}
	if bottom := p.Y - outline.Y; bottom < d {
		d = bottom
	}
	if top := outline.Y + outline.Height - p.Y; top < d {
		d = top
	}
	return d
}

// diamond builds a 4-vertex marker centered on p with the given radius.
func diamond(p geometry.Point2D, radius float64) []geometry.Point2D {
	return []geometry.Point2D{
		{X: p.X, Y: p.Y + radius},
		{X: p.X + radius, Y: p.Y},
		{X: p.X, Y: p.Y - radius},
		{X: p.X - radius, Y: p.Y},
	}
}

// cornerOverlays builds small L-shaped triangle markers at the four outline
// corners.
func cornerOverlays(outline geometry.Rect) []Overlay {
	arm := outline.Width * 0.05
	if h := outline.Height * 0.05; h < arm {
		arm = h
	}
	corners := []struct {
		p      geometry.Point2D
		dx, dy float64
	}{
		{geometry.Point2D{X: outline.X, Y: outline.Y}, 1, 1},
		{geometry.Point2D{X: outline.X + outline.Width, Y: outline.Y}, -1, 1},
		{geometry.Point2D{X: outline.X + outline.Width, Y: outline.Y + outline.Height}, -1, -1},
		{geometry.Point2D{X: outline.X, Y: outline.Y + outline.Height}, 1, -1},
	}

	out := make([]Overlay, 0, 4)
	for _, c := range corners {
		out = append(out, Overlay{
			Rule:  RuleEdgeClearance,
			Layer: layer.MechanicalOutline(),
			Vertices: []geometry.Point2D{
				c.p,
				{X: c.p.X + c.dx*arm, Y: c.p.Y},
				{X: c.p.X, Y: c.p.Y + c.dy*arm},
			},
		})
	}
	return out
}

func sharesEndpoint(a, b design.Trace) bool {
	return a.Start == b.Start || a.Start == b.End || a.End == b.Start || a.End == b.End
}
