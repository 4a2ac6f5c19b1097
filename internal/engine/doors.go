package engine

import (
	"fmt"

	"github.com/piwi3910/cabinetry/internal/model"
)

// DoorSpec is the door selection of a carcass.
type DoorSpec struct {
	Count     int
	Thickness float64
	Overhang  bool // Only honoured on top cabinets
}

// ResolveDoors lays out one or two doors in front of the carcass, inset by
// the door gap on every edge.
func ResolveDoors(t model.CabinetType, d model.Dimensions, spec DoorSpec, s model.Settings) ([]model.Panel, error) {
	if spec.Count != 1 && spec.Count != 2 {
		return nil, fmt.Errorf("%w: door count %d must be 1 or 2", ErrInvalidCardinality, spec.Count)
	}
	thickness := spec.Thickness
	if thickness <= 0 {
		thickness = s.DefaultDoorThickness
	}
	gap := s.DoorGap

	height := d.Height - 2*gap
	centreY := d.Height / 2
	if spec.Overhang && t == model.CabinetTop {
		height += s.DoorOverhang
		centreY += s.DoorOverhang
	}
	z := d.Depth + thickness/2 + s.DoorClearance

	if spec.Count == 1 {
		width := d.Width - 2*gap
		if width <= 0 || height <= 0 {
			return nil, fmt.Errorf("%w: door would be %.1f x %.1fmm", ErrInvalidDimensions, width, height)
		}
		return []model.Panel{{
			Role: model.RoleDoor, Shape: model.ShapeBox,
			Width: width, Height: height, Depth: thickness,
			Position: model.Vec3{X: d.Width / 2, Y: centreY, Z: z},
		}}, nil
	}

	width := d.Width/2 - gap
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: doors would be %.1f x %.1fmm", ErrInvalidDimensions, width, height)
	}
	left := model.Panel{
		Role: model.RoleDoor, Index: 0, Shape: model.ShapeBox,
		Width: width, Height: height, Depth: thickness,
		Position: model.Vec3{X: width / 2, Y: centreY, Z: z},
	}
	right := left
	right.Index = 1
	right.Position.X = d.Width - width/2
	return []model.Panel{left, right}, nil
}
