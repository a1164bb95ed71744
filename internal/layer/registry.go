package layer

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"gerberlens/pkg/geometry"
)

// stalenessWindow is the safety-net age after which cached display
// coordinates are recomputed even without an explicit MarkDirty. Some view
// mutations happen in collaborator code that cannot reach the registry.
const stalenessWindow = 2 * time.Second

// Positioner recomputes each record's cached display coordinates from the
// active view state. The display manager implements it; the registry only
// ever invokes it through UpdateFromViewState.
type Positioner interface {
	UpdateLayerPositions(reg *Registry)
}

// Registry owns all per-layer state: records keyed by role, the active
// layer, the unassigned-gerber list, and manual filename assignments.
//
// The registry is owned by the application's single control thread and is
// not safe for concurrent use.
type Registry struct {
	layers      map[Role]*Record
	active      Role
	detector    Detector
	unassigned  []UnassignedGerber
	assignments map[string]Role

	dirty       bool
	lastUpdated time.Time

	// now is the monotonic clock source; tests substitute a fake.
	now func() time.Time
}

// NewRegistry creates an empty registry with top copper active.
func NewRegistry() *Registry {
	return &Registry{
		layers:      make(map[Role]*Record),
		active:      TopCopper(),
		detector:    NewDetector(),
		assignments: make(map[string]Role),
		now:         time.Now,
		lastUpdated: time.Now(),
	}
}

// AddLayer adds or replaces the record for a role.
func (reg *Registry) AddLayer(role Role, rec *Record) {
	reg.layers[role] = rec
}

// RemoveLayer removes and returns the record for a role, or nil.
func (reg *Registry) RemoveLayer(role Role) *Record {
	rec := reg.layers[role]
	delete(reg.layers, role)
	return rec
}

// GetLayer returns the record for a role, or nil if not loaded. The record
// is shared, not copied; callers may mutate it in place.
func (reg *Registry) GetLayer(role Role) *Record {
	return reg.layers[role]
}

// SetActiveLayer sets the active layer role.
func (reg *Registry) SetActiveLayer(role Role) {
	reg.active = role
}

// ActiveLayer returns the active layer role.
func (reg *Registry) ActiveLayer() Role {
	return reg.active
}

// ClearAll removes all records, unassigned gerbers, and assignments.
func (reg *Registry) ClearAll() {
	reg.layers = make(map[Role]*Record)
	reg.unassigned = nil
	reg.assignments = make(map[string]Role)
}

// Roles returns the loaded roles sorted top to bottom.
func (reg *Registry) Roles() []Role {
	roles := make([]Role, 0, len(reg.layers))
	for role := range reg.layers {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool {
		return roles[i].Ordinal() < roles[j].Ordinal()
	})
	return roles
}

// RoleRecord pairs a role with its record for iteration.
type RoleRecord struct {
	Role   Role
	Record *Record
}

// VisibleLayers returns all visible layers sorted top to bottom.
func (reg *Registry) VisibleLayers() []RoleRecord {
	var out []RoleRecord
	for _, role := range reg.Roles() {
		if rec := reg.layers[role]; rec != nil && rec.Visible {
			out = append(out, RoleRecord{Role: role, Record: rec})
		}
	}
	return out
}

// ToggleLayerVisibility flips a layer's visibility. No-op for absent roles.
func (reg *Registry) ToggleLayerVisibility(role Role) {
	if rec := reg.layers[role]; rec != nil {
		rec.Visible = !rec.Visible
	}
}

// SetLayerVisibility sets a layer's visibility. No-op for absent roles.
func (reg *Registry) SetLayerVisibility(role Role, visible bool) {
	if rec := reg.layers[role]; rec != nil {
		rec.Visible = visible
	}
}

// LayerCount returns the number of loaded layers.
func (reg *Registry) LayerCount() int {
	return len(reg.layers)
}

// AddUnassignedGerber appends geometry whose filename matched no convention.
func (reg *Registry) AddUnassignedGerber(filename string, gerber Geometry) {
	reg.unassigned = append(reg.unassigned, UnassignedGerber{
		ID:       uuid.NewString(),
		Filename: filename,
		Gerber:   gerber,
	})
}

// UnassignedGerbers returns the unassigned entries in import order.
func (reg *Registry) UnassignedGerbers() []UnassignedGerber {
	return reg.unassigned
}

// RemoveUnassignedGerber removes and returns the entry at index.
// Returns nil for out-of-range indices.
func (reg *Registry) RemoveUnassignedGerber(index int) *UnassignedGerber {
	if index < 0 || index >= len(reg.unassigned) {
		return nil
	}
	entry := reg.unassigned[index]
	reg.unassigned = append(reg.unassigned[:index], reg.unassigned[index+1:]...)
	return &entry
}

// UnassignedCount returns the number of unassigned gerbers.
func (reg *Registry) UnassignedCount() int {
	return len(reg.unassigned)
}

// AssignLayer records a manual filename assignment. A filename maps to at
// most one role; assigning again replaces the previous entry.
func (reg *Registry) AssignLayer(filename string, role Role) {
	reg.assignments[filename] = role
}

// RemoveAssignment removes the assignment for a filename, returning the
// role it mapped to.
func (reg *Registry) RemoveAssignment(filename string) (Role, bool) {
	role, ok := reg.assignments[filename]
	delete(reg.assignments, filename)
	return role, ok
}

// GetAssignment returns the assigned role for a filename, if any.
func (reg *Registry) GetAssignment(filename string) (Role, bool) {
	role, ok := reg.assignments[filename]
	return role, ok
}

// IsLayerAssigned reports whether any filename is assigned to the role.
func (reg *Registry) IsLayerAssigned(role Role) bool {
	for _, r := range reg.assignments {
		if r == role {
			return true
		}
	}
	return false
}

// AssignmentCount returns the number of filename assignments.
func (reg *Registry) AssignmentCount() int {
	return len(reg.assignments)
}

// DetectRole classifies a filename into a layer role.
func (reg *Registry) DetectRole(filename string) (Role, bool) {
	return reg.detector.Detect(filename)
}

// ImportGerber routes freshly imported geometry: a manual assignment wins,
// then filename detection; files matching neither are queued as unassigned.
// Returns the resolved role and true when a record was created.
func (reg *Registry) ImportGerber(filename string, gerber Geometry) (Role, bool) {
	role, ok := reg.GetAssignment(filename)
	if !ok {
		role, ok = reg.DetectRole(filename)
	}
	if !ok {
		reg.AddUnassignedGerber(filename, gerber)
		return Role{}, false
	}

	rec := NewRecord(role, gerber)
	rec.InitializeCoordinates()
	reg.AddLayer(role, rec)
	reg.MarkDirty()
	return role, true
}

// PromoteUnassigned assigns a role to the unassigned entry at index,
// creating its layer record and recording the filename assignment.
func (reg *Registry) PromoteUnassigned(index int, role Role) bool {
	entry := reg.RemoveUnassignedGerber(index)
	if entry == nil {
		return false
	}
	reg.AssignLayer(entry.Filename, role)
	rec := NewRecord(role, entry.Gerber)
	rec.InitializeCoordinates()
	reg.AddLayer(role, rec)
	reg.MarkDirty()
	return true
}

// Statistics is a snapshot of registry counts.
type Statistics struct {
	TotalLayers   int
	VisibleLayers int
	Unassigned    int
	Assignments   int
}

// GetStatistics returns a snapshot of the registry counts.
func (reg *Registry) GetStatistics() Statistics {
	return Statistics{
		TotalLayers:   reg.LayerCount(),
		VisibleLayers: len(reg.VisibleLayers()),
		Unassigned:    reg.UnassignedCount(),
		Assignments:   reg.AssignmentCount(),
	}
}

// MarkDirty flags cached display coordinates as stale. Idempotent.
func (reg *Registry) MarkDirty() {
	reg.dirty = true
}

// markUpdated clears the dirty flag and stamps the update time as one
// transition, so a reader never observes a cleared flag with a stale stamp.
func (reg *Registry) markUpdated() {
	reg.dirty = false
	reg.lastUpdated = reg.now()
}

// NeedsUpdate reports whether cached coordinates must be recomputed: either
// explicitly dirtied, or older than the staleness window.
func (reg *Registry) NeedsUpdate() bool {
	return reg.dirty || reg.now().Sub(reg.lastUpdated) > stalenessWindow
}

// UpdateFromViewState recomputes cached display coordinates through the
// positioning collaborator. No-op unless NeedsUpdate.
func (reg *Registry) UpdateFromViewState(pos Positioner) {
	if !reg.NeedsUpdate() {
		return
	}
	pos.UpdateLayerPositions(reg)
	reg.markUpdated()
}

// InitializeAllCoordinates recomputes every record's cached bounds from its
// raw geometry and unconditionally clears the dirty state. Called after
// import.
func (reg *Registry) InitializeAllCoordinates() {
	for _, rec := range reg.layers {
		rec.InitializeCoordinates()
	}
	reg.markUpdated()
}

// MechanicalOutlineCentroid returns the centroid of the outline layer's
// bounding box, used as the default custom origin.
func (reg *Registry) MechanicalOutlineCentroid() (geometry.Point2D, bool) {
	rec := reg.GetLayer(MechanicalOutline())
	if rec == nil || rec.Gerber == nil {
		return geometry.Point2D{}, false
	}
	return rec.Gerber.BoundingBox().Center(), true
}
