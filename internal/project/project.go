// Package project provides project file handling and persistence. A project
// file ties together the design snapshot, rule thresholds and saved view,
// grid and layer state, so an inspection session can be reopened where it
// was left off.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gerberlens/internal/display"
	"gerberlens/internal/grid"
	"gerberlens/internal/layer"
	"gerberlens/pkg/geometry"
)

// Extension is the conventional project file extension.
const Extension = ".glp"

// View is the persisted subset of the display view state.
type View struct {
	RotationDegrees float64          `json:"rotation_degrees"`
	MirrorX         bool             `json:"mirror_x"`
	MirrorY         bool             `json:"mirror_y"`
	DesignOffset    geometry.Point2D `json:"design_offset"`
	CenterOffset    geometry.Point2D `json:"center_offset"`
}

// File represents a gerberlens project file (.glp).
type File struct {
	Version  int       `json:"version"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	// Paths relative to the project file
	DesignPath string `json:"design,omitempty"`
	RulesPath  string `json:"rules,omitempty"`

	// Session state
	Units  string               `json:"units,omitempty"`
	Grid   grid.Settings        `json:"grid"`
	View   View                 `json:"view"`
	Layers layer.PersistedState `json:"layers"`
}

// New creates a new project file with default settings.
func New(name, designPath string) *File {
	now := time.Now()
	return &File{
		Version:    1,
		Name:       name,
		Created:    now,
		Modified:   now,
		DesignPath: designPath,
		Units:      "mm",
		Grid:       grid.DefaultSettings(),
		Layers: layer.PersistedState{
			ActiveLayer: layer.TopCopper(),
		},
	}
}

// Load loads a project from a .glp file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj File
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, fmt.Errorf("parse project file: %w", err)
	}
	if proj.Layers.Assignments == nil {
		proj.Layers.Assignments = make(map[string]layer.Role)
	}
	return &proj, nil
}

// Save writes the project to a file, stamping the modification time.
func (p *File) Save(path string) error {
	p.Modified = time.Now()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ResolveDesign returns the design snapshot path resolved against the
// project file's directory.
func (p *File) ResolveDesign(projectPath string) string {
	return resolve(projectPath, p.DesignPath)
}

// ResolveRules returns the rule threshold path resolved against the project
// file's directory, or empty if the project declares none.
func (p *File) ResolveRules(projectPath string) string {
	return resolve(projectPath, p.RulesPath)
}

func resolve(projectPath, rel string) string {
	if rel == "" || filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(filepath.Dir(projectPath), rel)
}

// ApplyView copies the persisted view into a display manager.
func (p *File) ApplyView(m *display.Manager) {
	m.View = display.ViewState{
		RotationDegrees: p.View.RotationDegrees,
		Mirroring:       display.Mirroring{X: p.View.MirrorX, Y: p.View.MirrorY},
		DesignOffset:    p.View.DesignOffset,
		CenterOffset:    p.View.CenterOffset,
	}
}

// CaptureView copies a display manager's view into the project.
func (p *File) CaptureView(m *display.Manager) {
	p.View = View{
		RotationDegrees: m.View.RotationDegrees,
		MirrorX:         m.View.Mirroring.X,
		MirrorY:         m.View.Mirroring.Y,
		DesignOffset:    m.View.DesignOffset,
		CenterOffset:    m.View.CenterOffset,
	}
}
