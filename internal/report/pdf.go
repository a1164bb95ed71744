package report

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"gerberlens/internal/drc"
	"gerberlens/internal/units"
)

// Page layout constants (A4 portrait in mm).
const (
	pdfPageWidth  = 210.0
	pdfPageHeight = 297.0
	pdfMargin     = 15.0
	pdfRowHeight  = 6.0
	pdfHeaderGap  = 4.0
)

// qualityColor maps a violation quality to a fill color for table rows.
func qualityColor(q drc.TraceQuality) (r, g, b int) {
	switch q {
	case drc.QualityFailing:
		return 255, 205, 205
	case drc.QualityMarginal:
		return 255, 240, 200
	default:
		return 255, 255, 255
	}
}

// WritePDF generates a violation report PDF. The first page carries the
// summary, followed by one table row per violation. Distances are shown
// in millimeters.
func WritePDF(path string, summary Summary, result drc.Result) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(pdfMargin, pdfMargin)
	pdf.CellFormat(pdfPageWidth-2*pdfMargin, 10, "Design Rule Check Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(pdfMargin)
	header := fmt.Sprintf("Design: %s | Layers: %d | Violations: %d (failing: %d, marginal: %d)",
		summary.DesignName, summary.LayerCount, summary.Total(),
		summary.Quality[drc.QualityFailing], summary.Quality[drc.QualityMarginal])
	pdf.CellFormat(pdfPageWidth-2*pdfMargin, 6, header, "", 1, "L", false, 0, "")

	for _, kind := range summary.ruleKinds() {
		pdf.SetX(pdfMargin)
		pdf.CellFormat(pdfPageWidth-2*pdfMargin, 5,
			fmt.Sprintf("  %s: %d", kind, summary.RuleCounts[kind]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(pdfHeaderGap)

	if len(result.Violations) == 0 {
		pdf.SetX(pdfMargin)
		pdf.CellFormat(pdfPageWidth-2*pdfMargin, 6, "No violations found.", "", 1, "L", false, 0, "")
		return pdf.OutputFileAndClose(path)
	}

	writeViolationTable(pdf, result)
	return pdf.OutputFileAndClose(path)
}

// violationColumns describes the table layout: label and width in mm.
var violationColumns = []struct {
	label string
	width float64
}{
	{"Rule", 32},
	{"Quality", 20},
	{"Layer", 34},
	{"X (mm)", 24},
	{"Y (mm)", 24},
	{"Measured", 23},
	{"Required", 23},
}

func writeViolationTable(pdf *fpdf.Fpdf, result drc.Result) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetX(pdfMargin)
	for _, col := range violationColumns {
		pdf.CellFormat(col.width, pdfRowHeight, col.label, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(pdfRowHeight)

	pdf.SetFont("Helvetica", "", 9)
	for _, v := range result.Violations {
		r, g, b := qualityColor(v.Quality)
		pdf.SetFillColor(r, g, b)
		pdf.SetX(pdfMargin)
		cells := []string{
			v.Rule.String(),
			v.Quality.String(),
			v.Layer.String(),
			fmt.Sprintf("%.3f", units.Canonical(v.Position.X).MM()),
			fmt.Sprintf("%.3f", units.Canonical(v.Position.Y).MM()),
			formatNM(v.Measured),
			formatNM(v.Required),
		}
		for i, col := range violationColumns {
			align := "L"
			if i >= 3 {
				align = "R"
			}
			pdf.CellFormat(col.width, pdfRowHeight, cells[i], "1", 0, align, true, 0, "")
		}
		pdf.Ln(pdfRowHeight)
	}
}
