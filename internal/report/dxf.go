package report

import (
	"fmt"

	"github.com/yofu/dxf"
	dxfcolor "github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"gerberlens/internal/drc"
	"gerberlens/internal/units"
)

// Layer names used in the generated drawing.
const (
	dxfLayerFailing  = "DRC_FAILING"
	dxfLayerMarginal = "DRC_MARGINAL"
	dxfLayerOverlay  = "DRC_OVERLAY"
)

// WriteDXF exports violation markers and overlay outlines as a DXF drawing
// in millimeters, suitable for loading over the board in a CAD viewer.
// Failing and marginal violations land on separate layers so a viewer can
// toggle them independently.
func WriteDXF(path string, result drc.Result) error {
	d := dxf.NewDrawing()

	if _, err := d.AddLayer(dxfLayerFailing, dxfcolor.Red, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer: %w", err)
	}
	if _, err := d.AddLayer(dxfLayerMarginal, dxfcolor.Yellow, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer: %w", err)
	}
	if _, err := d.AddLayer(dxfLayerOverlay, dxfcolor.Cyan, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer: %w", err)
	}

	for _, v := range result.Violations {
		layer := dxfLayerMarginal
		if v.Quality == drc.QualityFailing {
			layer = dxfLayerFailing
		}
		if err := d.ChangeLayer(layer); err != nil {
			return err
		}
		drawCross(d, units.Canonical(v.Position.X).MM(), units.Canonical(v.Position.Y).MM())
	}

	if err := d.ChangeLayer(dxfLayerOverlay); err != nil {
		return err
	}
	for _, ov := range result.Overlays {
		drawClosedPolygon(d, ov)
	}

	return d.SaveAs(path)
}

// crossArm is the half length of a violation cross marker in mm.
const crossArm = 0.5

func drawCross(d *drawing.Drawing, x, y float64) {
	d.Line(x-crossArm, y-crossArm, 0, x+crossArm, y+crossArm, 0)
	d.Line(x-crossArm, y+crossArm, 0, x+crossArm, y-crossArm, 0)
}

func drawClosedPolygon(d *drawing.Drawing, ov drc.Overlay) {
	n := len(ov.Vertices)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		a := ov.Vertices[i]
		b := ov.Vertices[(i+1)%n]
		d.Line(units.Canonical(a.X).MM(), units.Canonical(a.Y).MM(), 0,
			units.Canonical(b.X).MM(), units.Canonical(b.Y).MM(), 0)
	}
}
