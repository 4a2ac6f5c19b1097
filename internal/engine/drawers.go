package engine

import (
	"github.com/piwi3910/cabinetry/internal/model"
)

// ResolveDrawers stacks one drawer per slot from the carcass bottom upward
// with no gaps: drawer i starts where drawer i-1 ends. Any change to any
// height moves every drawer above it, so callers always rebuild the full list.
func ResolveDrawers(d model.Dimensions, m model.Material, heights []float64) []model.Panel {
	width := d.Width - 2*m.PanelThickness
	drawers := make([]model.Panel, len(heights))
	var bottom float64
	for i, h := range heights {
		drawers[i] = model.Panel{
			Role: model.RoleDrawer, Index: i, Shape: model.ShapeBox,
			Width: width, Height: h, Depth: d.Depth,
			Position: model.Vec3{X: d.Width / 2, Y: bottom + h/2, Z: d.Depth / 2},
		}
		bottom += h
	}
	return drawers
}
