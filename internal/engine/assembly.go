package engine

import (
	"fmt"

	"github.com/piwi3910/cabinetry/internal/model"
)

// ResolveAssembly derives the complete geometry of one cabinet:
// carcass first, then doors and drawers from the carcass size.
// Drawer heights that do not fit the carcass are laid out from the
// optimal distribution instead; the cabinet itself is not modified.
func ResolveAssembly(c model.Cabinet, s model.Settings) (model.Assembly, error) {
	cfg := c.Config
	mat := cfg.Material
	mat.Normalize()

	carcass, err := ResolveCarcass(c.Type, c.Dimensions, mat, shelfSpec(cfg), s)
	if err != nil {
		return model.Assembly{}, fmt.Errorf("cabinet %s: %w", c.Label, err)
	}

	a := model.Assembly{
		CabinetID:    c.ID,
		Label:        c.Label,
		Type:         c.Type,
		Material:     mat,
		GroupOffsetY: GroupOffsetY(c.Type, s),
		Carcass:      carcass,
		Doors:        []model.Panel{},
		Drawers:      []model.Panel{},
	}

	if cfg.DoorEnabled {
		spec := DoorSpec{Count: cfg.DoorCount, Thickness: cfg.DoorThickness, Overhang: cfg.OverhangDoor}
		if a.Doors, err = ResolveDoors(c.Type, c.Dimensions, spec, s); err != nil {
			return model.Assembly{}, fmt.Errorf("cabinet %s: %w", c.Label, err)
		}
	}

	if cfg.DrawerEnabled {
		if err := ValidateDrawerQuantity(cfg.DrawerQuantity); err != nil {
			return model.Assembly{}, fmt.Errorf("cabinet %s: %w", c.Label, err)
		}
		heights := NormalizeDrawerHeights(cfg.DrawerHeights, cfg.DrawerQuantity, c.Dimensions.Height)
		a.Drawers = ResolveDrawers(c.Dimensions, mat, heights.Heights)
	}
	return a, nil
}
