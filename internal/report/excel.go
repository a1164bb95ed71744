package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"gerberlens/internal/drc"
	"gerberlens/internal/units"
)

const violationSheet = "Violations"

// WriteExcel generates an XLSX workbook with a summary sheet and one row
// per violation. Distances are written in millimeters as numbers so the
// result can be filtered and sorted in a spreadsheet.
func WriteExcel(path string, summary Summary, result drc.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, summary); err != nil {
		return err
	}
	if err := writeViolationSheet(f, result); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeSummarySheet(f *excelize.File, summary Summary) error {
	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, "Summary"); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Design", summary.DesignName},
		{"Layers", summary.LayerCount},
		{"Total violations", summary.Total()},
		{"Failing", summary.Quality[drc.QualityFailing]},
		{"Marginal", summary.Quality[drc.QualityMarginal]},
	}
	for _, kind := range summary.ruleKinds() {
		rows = append(rows, []interface{}{kind.String(), summary.RuleCounts[kind]})
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow("Summary", cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeViolationSheet(f *excelize.File, result drc.Result) error {
	if _, err := f.NewSheet(violationSheet); err != nil {
		return err
	}
	header := []interface{}{"Rule", "Quality", "Layer", "X (mm)", "Y (mm)", "Measured (mm)", "Required (mm)", "ID"}
	if err := f.SetSheetRow(violationSheet, "A1", &header); err != nil {
		return err
	}
	for i, v := range result.Violations {
		row := []interface{}{
			v.Rule.String(),
			v.Quality.String(),
			v.Layer.String(),
			units.Canonical(v.Position.X).MM(),
			units.Canonical(v.Position.Y).MM(),
			v.Measured.MM(),
			v.Required.MM(),
			v.ID,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(violationSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
