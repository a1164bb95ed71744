package project

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gerberlens/internal/display"
	"gerberlens/internal/layer"
	"gerberlens/pkg/geometry"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	p := New("rev-a", "design.json")
	p.RulesPath = "rules.toml"
	p.View.RotationDegrees = 90
	p.View.MirrorX = true
	p.Layers.ActiveLayer = layer.BottomCopper()
	p.Layers.Assignments = map[string]layer.Role{
		"board.gtl": layer.TopCopper(),
	}

	path := filepath.Join(t.TempDir(), "rev-a"+Extension)
	require.NoError(t, p.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.True(t, loaded.Modified.After(loaded.Created) || loaded.Modified.Equal(loaded.Created))
	loaded.Created = p.Created
	loaded.Modified = p.Modified
	if diff := cmp.Diff(p, loaded); diff != "" {
		t.Errorf("project mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.glp"))
	assert.Error(t, err)
}

func TestResolvePaths(t *testing.T) {
	p := New("rev-a", "gerbers/design.json")
	p.RulesPath = "rules.toml"

	projPath := filepath.Join("work", "boards", "rev-a.glp")
	assert.Equal(t, filepath.Join("work", "boards", "gerbers", "design.json"), p.ResolveDesign(projPath))
	assert.Equal(t, filepath.Join("work", "boards", "rules.toml"), p.ResolveRules(projPath))

	p.RulesPath = ""
	assert.Equal(t, "", p.ResolveRules(projPath))
}

func TestViewRoundTrip(t *testing.T) {
	m := display.NewManager()
	m.SetRotation(180)
	m.View.Mirroring.Y = true
	m.SetCustomOrigin(geometry.NewPoint2D(100, 200))

	p := New("rev-a", "design.json")
	p.CaptureView(m)

	restored := display.NewManager()
	p.ApplyView(restored)
	assert.Equal(t, m.View, restored.View)
}
