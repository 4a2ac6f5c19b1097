package engine

import (
	"fmt"

	"github.com/piwi3910/cabinetry/internal/model"
)

// ShelfSpec is the shelf selection of a carcass. Spacing <= 0 spreads the
// shelves evenly over the available span.
type ShelfSpec struct {
	Count   int
	Spacing float64
}

// ValidateDimensions rejects a carcass whose panels would come out with zero
// or negative width or depth.
func ValidateDimensions(d model.Dimensions, thickness float64) error {
	if thickness <= 0 {
		return fmt.Errorf("%w: panel thickness %.1fmm must be positive", ErrInvalidDimensions, thickness)
	}
	min := 2 * thickness
	for _, dim := range []struct {
		name  string
		value float64
	}{
		{"width", d.Width},
		{"height", d.Height},
		{"depth", d.Depth},
	} {
		if dim.value <= min {
			return fmt.Errorf("%w: %s %.1fmm must exceed twice the panel thickness (%.1fmm)",
				ErrInvalidDimensions, dim.name, dim.value, min)
		}
	}
	return nil
}

// ValidateShelves rejects a shelf selection the carcass cannot hold: a
// negative count, or any shelves when the clearance zones above the bottom
// and below the top leave no span between them. It assumes d already
// passed ValidateDimensions.
func ValidateShelves(d model.Dimensions, thickness float64, spec ShelfSpec, s model.Settings) error {
	if spec.Count < 0 {
		return fmt.Errorf("%w: shelf count %d must not be negative", ErrInvalidCardinality, spec.Count)
	}
	if spec.Count == 0 {
		return nil
	}
	if shelfSpan(d, thickness, s) <= 0 {
		return fmt.Errorf("%w: carcass height %.1fmm leaves no room for shelves (needs more than %.1fmm)",
			ErrInvalidDimensions, d.Height, 2*(thickness+s.ShelfClearance))
	}
	return nil
}

func shelfSpan(d model.Dimensions, th float64, s model.Settings) float64 {
	return d.Height - 2*(th+s.ShelfClearance)
}

// ResolveCarcass derives every structural panel of a carcass. The origin is
// the back-left-bottom corner; positions are panel centres.
func ResolveCarcass(t model.CabinetType, d model.Dimensions, m model.Material, shelves ShelfSpec, s model.Settings) (model.Carcass, error) {
	if !t.Valid() {
		return model.Carcass{}, fmt.Errorf("%w: %q", ErrUnknownCabinetType, t)
	}
	th := m.PanelThickness
	if err := ValidateDimensions(d, th); err != nil {
		return model.Carcass{}, err
	}
	if err := ValidateShelves(d, th, shelves, s); err != nil {
		return model.Carcass{}, err
	}

	innerWidth := d.Width - 2*th
	innerDepth := d.Depth - th
	centreZ := th + innerDepth/2

	c := model.Carcass{
		LeftEnd: model.Panel{
			Role: model.RoleLeftEnd, Shape: model.ShapeBox,
			Width: th, Height: d.Height, Depth: d.Depth,
			Position: model.Vec3{X: th / 2, Y: d.Height / 2, Z: d.Depth / 2},
		},
		RightEnd: model.Panel{
			Role: model.RoleRightEnd, Shape: model.ShapeBox,
			Width: th, Height: d.Height, Depth: d.Depth,
			Position: model.Vec3{X: d.Width - th/2, Y: d.Height / 2, Z: d.Depth / 2},
		},
		Back: model.Panel{
			Role: model.RoleBack, Shape: model.ShapeBox,
			Width: innerWidth, Height: d.Height, Depth: m.BackThickness,
			Position: model.Vec3{X: d.Width / 2, Y: d.Height / 2, Z: m.BackThickness / 2},
		},
		Bottom: model.Panel{
			Role: model.RoleBottom, Shape: model.ShapeBox,
			Width: innerWidth, Height: th, Depth: innerDepth,
			Position: model.Vec3{X: d.Width / 2, Y: th / 2, Z: centreZ},
		},
		Top: model.Panel{
			Role: model.RoleTop, Shape: model.ShapeBox,
			Width: innerWidth, Height: th, Depth: innerDepth,
			Position: model.Vec3{X: d.Width / 2, Y: d.Height - th/2, Z: centreZ},
		},
		Shelves: []model.Panel{},
		Legs:    []model.Panel{},
	}
	if t == model.CabinetBase {
		c.BaseRailDepth = s.BaseRailDepth
	}

	c.Shelves = resolveShelves(d, th, shelves, s)
	if t.HasLegs() {
		c.Legs = resolveLegs(d, s)
	}
	return c, nil
}

// resolveShelves spaces shelves between the bottom and top clearance zones.
// The selection must have passed ValidateShelves.
func resolveShelves(d model.Dimensions, th float64, spec ShelfSpec, s model.Settings) []model.Panel {
	if spec.Count <= 0 {
		return []model.Panel{}
	}
	shelves := make([]model.Panel, 0, spec.Count)

	lower := th + s.ShelfClearance
	span := shelfSpan(d, th, s)
	spacing := span / float64(spec.Count+1)
	if spec.Spacing > 0 && spec.Spacing < spacing {
		spacing = spec.Spacing
	}

	innerDepth := d.Depth - th
	for i := 0; i < spec.Count; i++ {
		shelves = append(shelves, model.Panel{
			Role: model.RoleShelf, Index: i, Shape: model.ShapeBox,
			Width: d.Width - 2*th, Height: th, Depth: innerDepth,
			Position: model.Vec3{X: d.Width / 2, Y: lower + spacing*float64(i+1), Z: th + innerDepth/2},
		})
	}
	return shelves
}

// resolveLegs places four cylindrical legs under the carcass corners, front
// pair first. Leg tops sit flush with the carcass bottom.
func resolveLegs(d model.Dimensions, s model.Settings) []model.Panel {
	y := -s.KickerHeight / 2
	corners := []model.Vec3{
		{X: s.LegSideInset, Y: y, Z: d.Depth - s.LegSetback},
		{X: d.Width - s.LegSideInset, Y: y, Z: d.Depth - s.LegSetback},
		{X: s.LegSideInset, Y: y, Z: s.LegSetback},
		{X: d.Width - s.LegSideInset, Y: y, Z: s.LegSetback},
	}
	legs := make([]model.Panel, len(corners))
	for i, pos := range corners {
		legs[i] = model.Panel{
			Role: model.RoleLeg, Index: i, Shape: model.ShapeCylinder,
			Width: s.LegDiameter, Height: s.KickerHeight, Depth: s.LegDiameter,
			Position: pos,
		}
	}
	return legs
}

// GroupOffsetY is the vertical lift applied to a whole cabinet group:
// the kicker height for cabinets on legs, zero otherwise.
func GroupOffsetY(t model.CabinetType, s model.Settings) float64 {
	if t.HasLegs() {
		return s.KickerHeight
	}
	return 0
}
