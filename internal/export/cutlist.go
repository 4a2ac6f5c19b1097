// Package export turns resolved cabinet assemblies into cut lists and
// writes them as PDF tables, QR labels, Excel workbooks and DXF outlines.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/piwi3910/cabinetry/internal/model"
)

// HardwareItem is a bought-in component that is not cut from board.
type HardwareItem struct {
	Cabinet  string `json:"cabinet"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// CutList is the board and hardware breakdown of one or more assemblies.
type CutList struct {
	Parts    []model.Part   `json:"parts"`
	Hardware []HardwareItem `json:"hardware"`
}

// TotalPieces returns the number of individual boards to cut.
func (cl CutList) TotalPieces() int {
	n := 0
	for _, p := range cl.Parts {
		n += p.Quantity
	}
	return n
}

// Cabinets returns the cabinet labels in first-seen order.
func (cl CutList) Cabinets() []string {
	var labels []string
	seen := map[string]bool{}
	for _, p := range cl.Parts {
		if !seen[p.Cabinet] {
			seen[p.Cabinet] = true
			labels = append(labels, p.Cabinet)
		}
	}
	return labels
}

// BuildCutList converts every board panel of the assemblies into cut-list
// parts. Identical parts of the same cabinet are merged into one line with
// a quantity; legs are listed as hardware.
func BuildCutList(assemblies []model.Assembly) CutList {
	cl := CutList{Parts: []model.Part{}, Hardware: []HardwareItem{}}
	type key struct {
		cabinet, label, material string
		w, h, t                  float64
		edges                    model.EdgeBanding
	}
	index := map[key]int{}

	for _, a := range assemblies {
		legs := 0
		var legSpec model.Panel
		for _, p := range a.Panels() {
			if p.Role == model.RoleLeg {
				legs++
				legSpec = p
				continue
			}
			part := PanelPart(a, p)
			k := key{part.Cabinet, part.Label, part.Material, part.Width, part.Height, part.Thickness, part.EdgeBanding}
			if i, ok := index[k]; ok {
				cl.Parts[i].Quantity++
				continue
			}
			index[k] = len(cl.Parts)
			cl.Parts = append(cl.Parts, part)
		}
		if legs > 0 {
			cl.Hardware = append(cl.Hardware, HardwareItem{
				Cabinet:  a.Label,
				Name:     fmt.Sprintf("Leg %.0fmm dia x %.0fmm", legSpec.Width, legSpec.Height),
				Quantity: legs,
			})
		}
	}
	return cl
}

// PanelPart returns the flat board for one panel. The two largest extents
// become the face (Width >= Height) and the smallest the thickness. Drawers
// are listed by their front, cut from the carcass board.
func PanelPart(a model.Assembly, p model.Panel) model.Part {
	ext := []float64{p.Width, p.Height, p.Depth}
	if p.Role == model.RoleDrawer {
		ext = []float64{p.Width, p.Height, a.Material.PanelThickness}
	}
	sorted := append([]float64{}, ext...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	part := model.NewPart(partLabel(p.Role), sorted[0], sorted[1], 1)
	part.Role = p.Role
	part.Cabinet = a.Label
	part.Thickness = sorted[2]
	part.Material = a.Material.Colour
	part.EdgeBanding = banding(p, part)
	part.Grain = grain(p, part)
	return part
}

func partLabel(r model.PanelRole) string {
	switch r {
	case model.RoleLeftEnd, model.RoleRightEnd:
		return "End"
	case model.RoleBack:
		return "Back"
	case model.RoleBottom:
		return "Bottom"
	case model.RoleTop:
		return "Top"
	case model.RoleShelf:
		return "Shelf"
	case model.RoleDoor:
		return "Door"
	case model.RoleDrawer:
		return "Drawer Front"
	default:
		return string(r)
	}
}

// banding tapes every edge of fronts and the exposed front edge of carcass
// boards. Backs are hidden and stay raw.
func banding(p model.Panel, part model.Part) model.EdgeBanding {
	var front float64
	switch p.Role {
	case model.RoleDoor, model.RoleDrawer:
		return model.AllEdges
	case model.RoleLeftEnd, model.RoleRightEnd:
		front = p.Height
	case model.RoleBottom, model.RoleTop, model.RoleShelf:
		front = p.Width
	default:
		return model.EdgeBanding{}
	}
	if front == part.Width {
		return model.EdgeBanding{Top: true}
	}
	return model.EdgeBanding{Left: true}
}

// grain runs vertically on every upright visible board.
func grain(p model.Panel, part model.Part) model.Grain {
	switch p.Role {
	case model.RoleLeftEnd, model.RoleRightEnd, model.RoleDoor, model.RoleBack:
		if p.Height == part.Width {
			return model.GrainHorizontal
		}
		return model.GrainVertical
	}
	return model.GrainNone
}

// ExportJSON writes the cut list as indented JSON.
func ExportJSON(path string, cl CutList) error {
	data, err := json.MarshalIndent(cl, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cut list: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
