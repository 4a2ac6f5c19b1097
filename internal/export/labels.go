package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each piece label's QR code.
type LabelInfo struct {
	PartID    string  `json:"id"`
	Cabinet   string  `json:"cabinet"`
	PartLabel string  `json:"label"`
	Width     float64 `json:"width_mm"`
	Height    float64 `json:"height_mm"`
	Thickness float64 `json:"thickness_mm"`
	Material  string  `json:"material"`
	Edges     string  `json:"edges"`
	Grain     string  `json:"grain"`
	Piece     int     `json:"piece"` // 1-based piece number within the part line
	Of        int     `json:"of"`
}

// Label sheet layout on US Letter (Avery 5160 at 3 columns).
const (
	labelPageWidth  = 215.9
	labelPageHeight = 279.4
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelHeight     = 25.4
	labelRows       = 10
	qrSize          = 20.0
	labelPadding    = 2.0
)

// CollectLabelInfos expands every part line into one label per piece.
func CollectLabelInfos(cl CutList) []LabelInfo {
	var labels []LabelInfo
	for _, p := range cl.Parts {
		for i := 0; i < p.Quantity; i++ {
			labels = append(labels, LabelInfo{
				PartID:    p.ID,
				Cabinet:   p.Cabinet,
				PartLabel: p.Label,
				Width:     p.Width,
				Height:    p.Height,
				Thickness: p.Thickness,
				Material:  p.Material,
				Edges:     p.EdgeBanding.String(),
				Grain:     p.Grain.String(),
				Piece:     i + 1,
				Of:        p.Quantity,
			})
		}
	}
	return labels
}

// ExportLabels writes a PDF of QR-coded labels, one per piece to cut.
// The number of columns comes from opts.LabelsPerRow.
func ExportLabels(path string, cl CutList, opts Options) error {
	labels := CollectLabelInfos(cl)
	if len(labels) == 0 {
		return fmt.Errorf("no parts to generate labels for")
	}

	cols := opts.LabelsPerRow
	if cols < 1 {
		cols = 3
	}
	labelWidth := (labelPageWidth - 2*labelMarginLeft) / float64(cols)
	perPage := cols * labelRows

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%perPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % perPage
		col := posOnPage % cols
		row := posOnPage / cols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, labelWidth, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.PartLabel, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y, width float64, seq int, info LabelInfo) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, width, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", seq)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	size := qrSize
	if size > width/2 {
		size = width / 2
	}
	qrX := x + width - size - labelPadding
	qrY := y + (labelHeight-size)/2
	pdf.ImageOptions(imgName, qrX, qrY, size, size, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := width - size - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, truncate(pdf, info.Cabinet+" "+info.PartLabel, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.0f x %.0f x %.0f mm", info.Width, info.Height, info.Thickness)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, truncate(pdf, info.Material, textW), "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+12.5)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Edges: %s  Grain: %s", info.Edges, info.Grain), "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+16)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Piece %d of %d", info.Piece, info.Of), "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// truncate shortens s with an ellipsis until it fits in w.
func truncate(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}
