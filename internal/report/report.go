// Package report exports design rule check results to PDF, XLSX and DXF
// files for review outside the inspection tool.
package report

import (
	"fmt"
	"sort"

	"gerberlens/internal/drc"
	"gerberlens/internal/units"
)

// Summary holds the header information shared by every export format.
type Summary struct {
	DesignName string
	LayerCount int
	RuleCounts map[drc.RuleKind]int
	Quality    map[drc.TraceQuality]int
}

// BuildSummary tallies a check result for the report header.
func BuildSummary(designName string, layerCount int, result drc.Result) Summary {
	s := Summary{
		DesignName: designName,
		LayerCount: layerCount,
		RuleCounts: make(map[drc.RuleKind]int),
		Quality:    result.Summary(),
	}
	for _, v := range result.Violations {
		s.RuleCounts[v.Rule]++
	}
	return s
}

// Total returns the number of violations across all rules.
func (s Summary) Total() int {
	n := 0
	for _, c := range s.RuleCounts {
		n += c
	}
	return n
}

// ruleKinds returns the rule kinds present in the summary in a stable order.
func (s Summary) ruleKinds() []drc.RuleKind {
	kinds := make([]drc.RuleKind, 0, len(s.RuleCounts))
	for k := range s.RuleCounts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// formatNM renders a canonical distance as millimeters for report cells.
func formatNM(c units.Canonical) string {
	return fmt.Sprintf("%.3f", c.MM())
}
