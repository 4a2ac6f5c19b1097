package export

import (
	"fmt"

	"github.com/piwi3910/cabinetry/internal/model"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SheetCutList     = "Cut List"
	SheetPurchase    = "Purchase"
	SheetEdgeBanding = "Edge Banding"
	SheetHardware    = "Hardware"
)

// ExportExcel writes the cut list as a workbook with one sheet each for the
// parts, the sheet purchase estimate, edge banding and hardware.
func ExportExcel(path string, cl CutList, opts Options) error {
	if len(cl.Parts) == 0 {
		return fmt.Errorf("no parts to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetCutList); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetPurchase, SheetEdgeBanding, SheetHardware} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", name, err)
		}
	}

	var rows [][]interface{}
	rows = append(rows, []interface{}{"Cabinet", "Part", "Length", "Width", "Thickness", "Qty", "Material", "Grain", "Edge Banding"})
	for _, p := range cl.Parts {
		rows = append(rows, []interface{}{
			p.Cabinet, p.Label, p.Width, p.Height, p.Thickness, p.Quantity,
			p.Material, p.Grain.String(), p.EdgeBanding.String(),
		})
	}
	if err := writeRows(f, SheetCutList, rows); err != nil {
		return err
	}

	rows = [][]interface{}{{"Board", "Part Area (sq mm)", "Exact Sheets", "Min Sheets", "With Waste", "Cost"}}
	for _, est := range model.EstimateByBoard(cl.Parts, opts.Sheet, opts.KerfWidth, opts.WastePercent) {
		rows = append(rows, []interface{}{
			est.Group, est.TotalPartArea, est.SheetsNeededExact,
			est.SheetsNeededMin, est.SheetsWithWaste, est.EstimatedCost,
		})
	}
	if err := writeRows(f, SheetPurchase, rows); err != nil {
		return err
	}

	rows = [][]interface{}{{"Cabinet", "Part", "Tape", "Length", "Width", "Qty", "Edges", "Per Piece (mm)", "Total (mm)"}}
	for _, b := range model.CalculatePerPartEdgeBanding(cl.Parts) {
		rows = append(rows, []interface{}{
			b.Cabinet, b.Label, string(b.Group), b.Width, b.Height, b.Quantity, b.Edges, b.LengthPerUnit, b.TotalLength,
		})
	}
	summary := model.CalculateEdgeBanding(cl.Parts, opts.EdgeBandingWaste)
	rows = append(rows, []interface{}{}, []interface{}{"Tape", "Pieces", "Edges", "Net (m)", "With waste (m)"})
	for _, g := range summary.Groups {
		rows = append(rows, []interface{}{string(g.Group), g.Pieces, g.Edges, g.LengthMM / 1000.0, g.WithWasteMM / 1000.0})
	}
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Total (m)", summary.TotalLinearM},
		[]interface{}{fmt.Sprintf("With %.0f%% waste (m)", summary.WastePercent), summary.TotalWithWasteM},
	)
	if err := writeRows(f, SheetEdgeBanding, rows); err != nil {
		return err
	}

	rows = [][]interface{}{{"Cabinet", "Item", "Qty"}}
	for _, h := range cl.Hardware {
		rows = append(rows, []interface{}{h.Cabinet, h.Name, h.Quantity})
	}
	if err := writeRows(f, SheetHardware, rows); err != nil {
		return err
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
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
