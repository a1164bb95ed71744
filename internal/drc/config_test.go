package drc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gerberlens/internal/units"
)

func TestClassify(t *testing.T) {
	th := Threshold{Nominal: units.FromMM(0.20), Marginal: units.FromMM(0.15)}

	assert.Equal(t, QualityNominal, th.Classify(units.FromMM(0.25)))
	assert.Equal(t, QualityNominal, th.Classify(units.FromMM(0.20)))
	assert.Equal(t, QualityMarginal, th.Classify(units.FromMM(0.17)))
	assert.Equal(t, QualityMarginal, th.Classify(units.FromMM(0.15)))
	assert.Equal(t, QualityFailing, th.Classify(units.FromMM(0.1)))
	assert.Equal(t, QualityFailing, th.Classify(0))
}

func TestDefaultConfigCoversAllRules(t *testing.T) {
	cfg := DefaultConfig()
	for _, kind := range []RuleKind{RuleTraceWidth, RuleClearance, RuleEdgeClearance} {
		th := cfg.Threshold(kind)
		assert.Greater(t, th.Nominal, th.Marginal, kind.String())
		assert.Greater(t, th.Marginal, units.Canonical(0), kind.String())
	}
}

func TestThresholdFallback(t *testing.T) {
	cfg := Config{Thresholds: map[RuleKind]Threshold{}}
	assert.Equal(t, DefaultConfig().Thresholds[RuleClearance], cfg.Threshold(RuleClearance))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drc.toml")
	content := `
[trace_width]
nominal_mm = 0.25
marginal_mm = 0.18

[clearance]
nominal_mm = 0.30
marginal_mm = 0.22
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, units.FromMM(0.25), cfg.Threshold(RuleTraceWidth).Nominal)
	assert.Equal(t, units.FromMM(0.22), cfg.Threshold(RuleClearance).Marginal)
	// Rule absent from the file keeps its default
	assert.Equal(t, DefaultConfig().Thresholds[RuleEdgeClearance], cfg.Threshold(RuleEdgeClearance))
}

func TestLoadConfigBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drc.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0644))
	_, err := LoadConfig(path)
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "Nominal", QualityNominal.String())
	assert.Equal(t, "Marginal", QualityMarginal.String())
	assert.Equal(t, "Failing", QualityFailing.String())
	assert.Equal(t, "Trace Width", RuleTraceWidth.String())
	assert.Equal(t, "Clearance", RuleClearance.String())
	assert.Equal(t, "Edge Clearance", RuleEdgeClearance.String())
}
