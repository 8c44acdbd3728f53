package export

import (
	"fmt"
	"sort"

	"github.com/piwi3910/blastplan/internal/engine"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the hole schedule workbook.
const (
	HolesSheet   = "Holes"
	SummarySheet = "Summary"
)

var holeScheduleHeader = []any{
	"Hole", "X (m)", "Y (m)", "Depth (m)", "Diameter (mm)", "Subdrilling (m)",
	"Stemming (m)", "Column (m)", "Explosive", "Charge (kg)",
}

// ExportHoleSchedule writes an XLSX workbook with one row per hole on the
// Holes sheet and every design value on the Summary sheet.
func ExportHoleSchedule(path string, r engine.Result) error {
	if r.Layout.Empty() {
		return fmt.Errorf("no holes to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", HolesSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetRow(HolesSheet, "A1", &holeScheduleHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(HolesSheet, "A1", "J1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, tag := range CollectHoleTags(r) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			tag.Number, tag.X, tag.Y, tag.Depth, tag.Diameter, r.Hole.Subdrilling,
			tag.Stemming, r.Charge.ColumnLength, tag.Explosive, tag.Charge,
		}
		if err := f.SetSheetRow(HolesSheet, cell, &row); err != nil {
			return fmt.Errorf("write hole %d: %w", tag.Number, err)
		}
	}
	if err := f.SetColWidth(HolesSheet, "A", "J", 14); err != nil {
		return err
	}

	if err := writeSummarySheet(f, r, headerStyle); err != nil {
		return err
	}

	return f.SaveAs(path)
}

// writeSummarySheet lists the snapshot values sorted by key.
func writeSummarySheet(f *excelize.File, r engine.Result, headerStyle int) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	header := []any{"Parameter", "Value"}
	if err := f.SetSheetRow(SummarySheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "B1", headerStyle); err != nil {
		return err
	}

	values := engine.Snapshot(r).Values
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, k := range keys {
		row := []any{k, values[k]}
		if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("write %s: %w", k, err)
		}
	}

	offset := len(keys) + 3
	for i, w := range r.Warnings {
		row := []any{"warning", w}
		if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", offset+i), &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(SummarySheet, "A", "B", 28)
}
