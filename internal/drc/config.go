// Package drc evaluates layer geometry against design rules and produces
// violations and overlay shapes in raw canonical coordinates.
package drc

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"gerberlens/internal/units"
)

// TraceQuality grades a measured value against a rule's thresholds.
type TraceQuality int

const (
	QualityNominal TraceQuality = iota
	QualityMarginal
	QualityFailing
)

func (q TraceQuality) String() string {
	switch q {
	case QualityNominal:
		return "Nominal"
	case QualityMarginal:
		return "Marginal"
	default:
		return "Failing"
	}
}

// RuleKind identifies a design rule.
type RuleKind int

const (
	RuleTraceWidth RuleKind = iota
	RuleClearance
	RuleEdgeClearance
)

func (k RuleKind) String() string {
	switch k {
	case RuleTraceWidth:
		return "Trace Width"
	case RuleClearance:
		return "Clearance"
	case RuleEdgeClearance:
		return "Edge Clearance"
	default:
		return "Unknown"
	}
}

// Threshold holds the nominal and marginal limits for one rule. A measured
// value at or above Nominal passes; between Marginal and Nominal it is
// marginal; below Marginal it fails.
type Threshold struct {
	Nominal  units.Canonical
	Marginal units.Canonical
}

// Classify grades a measured value against the threshold.
func (t Threshold) Classify(measured units.Canonical) TraceQuality {
	switch {
	case measured >= t.Nominal:
		return QualityNominal
	case measured >= t.Marginal:
		return QualityMarginal
	default:
		return QualityFailing
	}
}

// Config maps each rule to its thresholds. Thresholds are data, not code;
// the shipped defaults are a starting point, not a requirement.
type Config struct {
	Thresholds map[RuleKind]Threshold
}

// DefaultConfig returns conservative hobbyist-fab thresholds.
func DefaultConfig() Config {
	return Config{Thresholds: map[RuleKind]Threshold{
		RuleTraceWidth:    {Nominal: units.FromMM(0.15), Marginal: units.FromMM(0.10)},
		RuleClearance:     {Nominal: units.FromMM(0.20), Marginal: units.FromMM(0.15)},
		RuleEdgeClearance: {Nominal: units.FromMM(0.30), Marginal: units.FromMM(0.20)},
	}}
}

// Threshold returns the configured threshold for a rule, falling back to
// the defaults for rules the config does not mention.
func (c Config) Threshold(kind RuleKind) Threshold {
	if t, ok := c.Thresholds[kind]; ok {
		return t
	}
	return DefaultConfig().Thresholds[kind]
}

// fileConfig is the TOML schema. Values are millimeters.
type fileConfig struct {
	TraceWidth    *fileThreshold `toml:"trace_width"`
	Clearance     *fileThreshold `toml:"clearance"`
	EdgeClearance *fileThreshold `toml:"edge_clearance"`
}

type fileThreshold struct {
	NominalMM  float64 `toml:"nominal_mm"`
	MarginalMM float64 `toml:"marginal_mm"`
}

// LoadConfig reads rule thresholds from a TOML file. Rules absent from the
// file keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parse drc config: %w", err)
	}

	cfg := DefaultConfig()
	apply := func(kind RuleKind, ft *fileThreshold) {
		if ft == nil {
			return
		}
		cfg.Thresholds[kind] = Threshold{
			Nominal:  units.FromMM(ft.NominalMM),
			Marginal: units.FromMM(ft.MarginalMM),
		}
	}
	apply(RuleTraceWidth, fc.TraceWidth)
	apply(RuleClearance, fc.Clearance)
	apply(RuleEdgeClearance, fc.EdgeClearance)
	return cfg, nil
}
