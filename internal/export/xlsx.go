package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/binpack2d/internal/model"
)

// Sheet names used by ExportExcel.
const (
	SheetSummary    = "Summary"
	SheetPlacements = "Placements"
	SheetUnplaced   = "Unplaced"
)

// ExportExcel writes a workbook with a per-bin summary, every placement and
// the unplaced items, one sheet each.
func ExportExcel(path string, result model.Result, settings model.Settings) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetPlacements, SheetUnplaced} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	summary := [][]interface{}{
		{"Algorithm", string(settings.Algorithm)},
		{"Rotation", settings.AllowRotate},
		{"Bins Used", len(result.Bins)},
		{"Items Placed", result.PlacedCount()},
		{"Unplaced Items", len(result.Unplaced)},
		{"Overall Efficiency %", round1(result.TotalEfficiency())},
		{},
		{"Bin", "Label", "Width", "Height", "Items", "Used Area", "Efficiency %"},
	}
	for _, br := range result.Bins {
		summary = append(summary, []interface{}{
			br.BinID + 1, br.Bin.Label, br.Bin.Width, br.Bin.Height,
			len(br.Placements), br.UsedArea(), round1(br.Efficiency()),
		})
	}

	placements := [][]interface{}{
		{"Bin", "Item ID", "Label", "Width", "Height", "X", "Y", "Rotated"},
	}
	for _, br := range result.Bins {
		for _, p := range br.Placements {
			placements = append(placements, []interface{}{
				br.BinID + 1, p.Item.ID, p.Item.Label, p.Item.Width, p.Item.Height, p.X, p.Y, p.Rotated,
			})
		}
	}

	unplaced := [][]interface{}{
		{"Item ID", "Label", "Width", "Height"},
	}
	for _, it := range result.Unplaced {
		unplaced = append(unplaced, []interface{}{it.ID, it.Label, it.Width, it.Height})
	}

	for name, rows := range map[string][][]interface{}{
		SheetSummary:    summary,
		SheetPlacements: placements,
		SheetUnplaced:   unplaced,
	} {
		if err := writeRows(f, name, rows); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to create cell reference: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
