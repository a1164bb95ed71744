package layer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRestore(t *testing.T) {
	reg := NewRegistry()
	reg.ImportGerber("F_Cu.gbr", testGerber())
	reg.SetActiveLayer(BottomCopper())
	reg.AssignLayer("weird.gbr", MechanicalOutline())

	state := reg.Snapshot()

	restored := NewRegistry()
	restored.ImportGerber("F_Cu.gbr", testGerber()) // transient state, must be reset
	restored.Restore(state)

	assert.Equal(t, BottomCopper(), restored.ActiveLayer())
	role, ok := restored.GetAssignment("weird.gbr")
	assert.True(t, ok)
	assert.Equal(t, MechanicalOutline(), role)

	// Geometry and unassigned entries are not persisted
	assert.Equal(t, 0, restored.LayerCount())
	assert.Equal(t, 0, restored.UnassignedCount())
	// Loading always marks dirty
	assert.True(t, restored.NeedsUpdate())
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layers.json")

	reg := NewRegistry()
	reg.SetActiveLayer(Soldermask(SideTop))
	reg.AssignLayer("a.gbr", TopCopper())
	reg.AssignLayer("b.gbr", Silkscreen(SideBottom))
	require.NoError(t, reg.SaveFile(path))

	loaded := NewRegistry()
	require.NoError(t, loaded.LoadFile(path))

	if diff := cmp.Diff(reg.Snapshot(), loaded.Snapshot()); diff != "" {
		t.Errorf("persisted state mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, loaded.NeedsUpdate())
}

func TestLoadPartialState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.json")
	// Legacy file with no assignment table
	require.NoError(t, os.WriteFile(path, []byte(`{"active_layer":"copper-31"}`), 0644))

	reg := NewRegistry()
	require.NoError(t, reg.LoadFile(path))
	assert.Equal(t, BottomCopper(), reg.ActiveLayer())
	assert.Equal(t, 0, reg.AssignmentCount())
	assert.True(t, reg.NeedsUpdate())
}

func TestLoadEmptyObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	reg := NewRegistry()
	reg.SetActiveLayer(Paste(SideBottom))
	require.NoError(t, reg.LoadFile(path))
	// Missing active layer defaults to top copper
	assert.Equal(t, TopCopper(), reg.ActiveLayer())
}

func TestLoadFileMissing(t *testing.T) {
	reg := NewRegistry()
	assert.Error(t, reg.LoadFile(filepath.Join(t.TempDir(), "nope.json")))
}
