package export

import (
	"fmt"

	"github.com/piwi3910/cabinetry/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names.
const (
	LayerParts  = "PARTS"
	LayerLabels = "LABELS"
)

const (
	dxfSpacing    = 50.0 // mm between outlines
	dxfTextHeight = 20.0
)

// ExportDXF draws one rectangle per part line on the PARTS layer with its
// label on the LABELS layer. Each cabinet's parts sit on their own row.
func ExportDXF(path string, cl CutList) error {
	if len(cl.Parts) == 0 {
		return fmt.Errorf("no parts to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerParts, color.White, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerParts, err)
	}
	if _, err := d.AddLayer(LayerLabels, color.Red, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerLabels, err)
	}

	var y float64
	for _, cabinet := range cl.Cabinets() {
		var x, rowHeight float64
		for _, p := range cl.Parts {
			if p.Cabinet != cabinet {
				continue
			}
			if err := drawPart(d, p, x, y); err != nil {
				return err
			}
			x += p.Width + dxfSpacing
			if p.Height > rowHeight {
				rowHeight = p.Height
			}
		}
		y -= rowHeight + dxfSpacing + dxfTextHeight
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// drawPart draws the outline with its top-left corner at (x, y).
func drawPart(d *drawing.Drawing, p model.Part, x, y float64) error {
	if err := d.ChangeLayer(LayerParts); err != nil {
		return err
	}
	corners := [][2]float64{
		{x, y},
		{x + p.Width, y},
		{x + p.Width, y - p.Height},
		{x, y - p.Height},
	}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return fmt.Errorf("failed to draw %s: %w", p.Label, err)
		}
	}

	if err := d.ChangeLayer(LayerLabels); err != nil {
		return err
	}
	text := fmt.Sprintf("%s %s %.0fx%.0fx%.0f x%d", p.Cabinet, p.Label, p.Width, p.Height, p.Thickness, p.Quantity)
	if _, err := d.Text(text, x, y+dxfTextHeight/2, 0, dxfTextHeight); err != nil {
		return fmt.Errorf("failed to label %s: %w", p.Label, err)
	}
	return nil
}
