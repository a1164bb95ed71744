package layer

import (
	"encoding/json"
	"os"
)

// PersistedState is the durable subset of the registry: the active role and
// the filename assignments. Geometry, unassigned entries, and freshness are
// transient and always rebuilt after load.
type PersistedState struct {
	ActiveLayer Role            `json:"active_layer"`
	Assignments map[string]Role `json:"layer_assignments"`
}

// Snapshot extracts the persisted subset of the registry.
func (reg *Registry) Snapshot() PersistedState {
	assignments := make(map[string]Role, len(reg.assignments))
	for f, r := range reg.assignments {
		assignments[f] = r
	}
	return PersistedState{
		ActiveLayer: reg.active,
		Assignments: assignments,
	}
}

// Restore applies a persisted subset to the registry. Missing fields fall
// back to defaults rather than failing; the loaded registry always starts
// dirty so coordinates are recomputed on the next frame.
func (reg *Registry) Restore(state PersistedState) {
	reg.active = state.ActiveLayer
	reg.assignments = make(map[string]Role)
	for f, r := range state.Assignments {
		reg.assignments[f] = r
	}
	reg.layers = make(map[Role]*Record)
	reg.unassigned = nil
	reg.MarkDirty()
}

// SaveFile writes the persisted subset to a JSON file.
func (reg *Registry) SaveFile(path string) error {
	state := reg.Snapshot()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFile reads a persisted subset from a JSON file and applies it. A
// partial or legacy file is tolerated: absent fields keep their defaults.
func (reg *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	state := PersistedState{ActiveLayer: TopCopper()}
	if err := json.Unmarshal(data, &state); err != nil {
		return err
	}
	reg.Restore(state)
	return nil
}
