// Package design loads design geometry snapshots used as the gerber
// geometry provider. A snapshot is a JSON file mapping gerber filenames to
// their extracted geometry (traces, pads, outline); producing it from raw
// gerber text is an external concern.
package design

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"gerberlens/internal/units"
	"gerberlens/pkg/geometry"
)

// Trace is a straight copper segment with a width, in canonical units.
type Trace struct {
	Start geometry.Point2D `json:"start"`
	End   geometry.Point2D `json:"end"`
	Width float64          `json:"width"`
}

// Pad is a circular land, in canonical units.
type Pad struct {
	Center   geometry.Point2D `json:"center"`
	Diameter float64          `json:"diameter"`
}

// LayerGeometry holds one layer's geometry in canonical units. It satisfies
// the registry's opaque geometry contract.
type LayerGeometry struct {
	Traces  []Trace            `json:"traces,omitempty"`
	Pads    []Pad              `json:"pads,omitempty"`
	Outline []geometry.Point2D `json:"outline,omitempty"`
}

// BoundingBox returns the bounds of all geometry including trace and pad
// extents.
func (lg *LayerGeometry) BoundingBox() geometry.Rect {
	var pts []geometry.Point2D
	for _, t := range lg.Traces {
		half := t.Width / 2
		pts = append(pts,
			geometry.Point2D{X: t.Start.X - half, Y: t.Start.Y - half},
			geometry.Point2D{X: t.Start.X + half, Y: t.Start.Y + half},
			geometry.Point2D{X: t.End.X - half, Y: t.End.Y - half},
			geometry.Point2D{X: t.End.X + half, Y: t.End.Y + half},
		)
	}
	for _, p := range lg.Pads {
		r := p.Diameter / 2
		pts = append(pts,
			geometry.Point2D{X: p.Center.X - r, Y: p.Center.Y - r},
			geometry.Point2D{X: p.Center.X + r, Y: p.Center.Y + r},
		)
	}
	pts = append(pts, lg.Outline...)
	return geometry.BoundingBox(pts)
}

// Design is a loaded snapshot: layer geometry keyed by source filename.
type Design struct {
	Name   string
	Layers map[string]*LayerGeometry
}

// Layer returns the geometry for a source filename, or nil.
func (d *Design) Layer(filename string) *LayerGeometry {
	return d.Layers[filename]
}

// Filenames returns the snapshot's source filenames in sorted order.
func (d *Design) Filenames() []string {
	names := make([]string, 0, len(d.Layers))
	for name := range d.Layers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// file is the on-disk schema. Coordinates are stored in the declared display
// unit (default millimeters) and converted to canonical units on load.
type file struct {
	Version int                       `json:"version"`
	Name    string                    `json:"name"`
	Units   string                    `json:"units,omitempty"`
	Layers  map[string]*LayerGeometry `json:"layers"`
}

// Load reads a design snapshot, converting all coordinates to canonical
// units.
func Load(path string) (*Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse design snapshot: %w", err)
	}

	unit := units.ParseUnit(f.Units)
	d := &Design{
		Name:   f.Name,
		Layers: make(map[string]*LayerGeometry, len(f.Layers)),
	}
	for name, lg := range f.Layers {
		if lg == nil {
			lg = &LayerGeometry{}
		}
		d.Layers[name] = scaleLayer(lg, unit)
	}
	return d, nil
}

func scaleLayer(lg *LayerGeometry, unit units.Unit) *LayerGeometry {
	out := &LayerGeometry{}
	for _, t := range lg.Traces {
		out.Traces = append(out.Traces, Trace{
			Start: scalePoint(t.Start, unit),
			End:   scalePoint(t.End, unit),
			Width: scaleValue(t.Width, unit),
		})
	}
	for _, p := range lg.Pads {
		out.Pads = append(out.Pads, Pad{
			Center:   scalePoint(p.Center, unit),
			Diameter: scaleValue(p.Diameter, unit),
		})
	}
	for _, p := range lg.Outline {
		out.Outline = append(out.Outline, scalePoint(p, unit))
	}
	return out
}

func scalePoint(p geometry.Point2D, unit units.Unit) geometry.Point2D {
	return geometry.Point2D{X: scaleValue(p.X, unit), Y: scaleValue(p.Y, unit)}
}

func scaleValue(v float64, unit units.Unit) float64 {
	return float64(units.ToCanonical(v, unit))
}
