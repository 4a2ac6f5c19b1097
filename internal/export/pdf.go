package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/cabinetry/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	rowHeight    = 6.0
)

var (
	partColWidths  = []float64{35, 40, 25, 25, 20, 15, 40, 27, 40}
	partColHeaders = []string{"Cabinet", "Part", "Length", "Width", "Thick", "Qty", "Material", "Grain", "Edge Banding"}
)

// ExportPDF writes the cut list as a table, one row per part line, followed
// by a summary page with sheet purchase estimates, edge banding and hardware.
func ExportPDF(path string, cl CutList, opts Options) error {
	if len(cl.Parts) == 0 {
		return fmt.Errorf("no parts to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	renderPartPages(pdf, cl, opts)

	pdf.AddPage()
	renderSummaryPage(pdf, cl, opts)

	return pdf.OutputFileAndClose(path)
}

// renderPartPages draws the part table, starting a new page with a repeated
// header whenever the current one is full.
func renderPartPages(pdf *fpdf.Fpdf, cl CutList, opts Options) {
	y := startPartPage(pdf, opts.Title, cl, 1)
	page := 1

	pdf.SetFont("Helvetica", "", 9)
	for i, p := range cl.Parts {
		if y+rowHeight > pageHeight-marginBottom-5 {
			page++
			y = startPartPage(pdf, opts.Title, cl, page)
			pdf.SetFont("Helvetica", "", 9)
		}

		row := []string{
			p.Cabinet,
			p.Label,
			fmt.Sprintf("%.1f", p.Width),
			fmt.Sprintf("%.1f", p.Height),
			fmt.Sprintf("%.0f", p.Thickness),
			fmt.Sprintf("%d", p.Quantity),
			p.Material,
			p.Grain.String(),
			p.EdgeBanding.String(),
		}

		// Alternate row background
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		x := marginLeft
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(partColWidths[j], rowHeight, cell, "1", 0, "C", true, 0, "")
			x += partColWidths[j]
		}
		y += rowHeight
	}
}

func startPartPage(pdf *fpdf.Fpdf, title string, cl CutList, page int) float64 {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, fmt.Sprintf("%s (page %d)", title, page), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Cabinets: %d | Part lines: %d | Pieces: %d",
		len(cl.Cabinets()), len(cl.Parts), cl.TotalPieces())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	y := marginTop + headerHeight + 8
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, header := range partColHeaders {
		pdf.SetXY(x, y)
		pdf.CellFormat(partColWidths[i], rowHeight, header, "1", 0, "C", true, 0, "")
		x += partColWidths[i]
	}
	return y + rowHeight
}

// renderSummaryPage draws the purchasing summary.
func renderSummaryPage(pdf *fpdf.Fpdf, cl CutList, opts Options) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Purchase Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, fmt.Sprintf("Sheets (%.0f x %.0f mm)", opts.Sheet.Width, opts.Sheet.Height), "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{60, 50, 40, 40, 40}
	headers := []string{"Board", "Part Area (sq m)", "Exact Sheets", "With Waste", "Cost"}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], rowHeight, h, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += rowHeight

	pdf.SetFont("Helvetica", "", 9)
	for _, est := range model.EstimateByBoard(cl.Parts, opts.Sheet, opts.KerfWidth, opts.WastePercent) {
		row := []string{
			est.Group,
			fmt.Sprintf("%.2f", est.TotalPartArea/1e6),
			fmt.Sprintf("%.2f", est.SheetsNeededExact),
			fmt.Sprintf("%d", est.SheetsWithWaste),
			fmt.Sprintf("%.2f", est.EstimatedCost),
		}
		x = marginLeft
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], rowHeight, cell, "1", 0, "C", false, 0, "")
			x += colWidths[j]
		}
		y += rowHeight
	}

	y += 8
	banding := model.CalculateEdgeBanding(cl.Parts, opts.EdgeBandingWaste)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Edge Banding", "", 0, "L", false, 0, "")
	y += 9

	items := []struct {
		label string
		value string
	}{
		{"Banded Pieces", fmt.Sprintf("%d", banding.PartCount)},
		{"Banded Edges", fmt.Sprintf("%d", banding.EdgeCount)},
		{"Net Length", fmt.Sprintf("%.2f m", banding.TotalLinearM)},
		{fmt.Sprintf("With %.0f%% Waste", banding.WastePercent), fmt.Sprintf("%.2f m", banding.TotalWithWasteM)},
	}
	for _, g := range banding.Groups {
		items = append(items, struct {
			label string
			value string
		}{bandingGroupTitle(g.Group), fmt.Sprintf("%.2f m (%d edges)", g.WithWasteMM/1000.0, g.Edges)})
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	if len(cl.Hardware) > 0 {
		y += 5
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(100, 7, "Hardware", "", 0, "L", false, 0, "")
		y += 9

		pdf.SetFont("Helvetica", "", 9)
		for _, h := range cl.Hardware {
			if y > pageHeight-marginBottom-10 {
				break
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, fmt.Sprintf("- %s: %s (qty: %d)", h.Cabinet, h.Name, h.Quantity), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by Cabinetry", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func bandingGroupTitle(g model.BandingGroup) string {
	if g == model.BandingFronts {
		return "Door & Drawer Fronts"
	}
	return "Carcass Edges"
}
