// Package engine turns cabinet dimensions and feature selections into a
// consistent set of panel sizes and positions, keeps drawer heights in step
// with the carcass, and merges adjacent benchtops and kickers.
//
// The resolver functions are pure. Engine wraps them for callers that edit
// cabinets in place and want every silent fallback logged.
package engine

import (
	"fmt"

	"github.com/piwi3910/cabinetry/internal/model"
	"go.uber.org/zap"
)

// Engine applies edits to caller-owned cabinets and resolves their geometry.
type Engine struct {
	Settings model.Settings
	log      *zap.Logger
}

// New creates an Engine. A nil logger discards all output.
func New(settings model.Settings, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{Settings: settings, log: log.Named("engine")}
}

// Resolve repairs the cabinet's drawer heights if they no longer fit the
// carcass, then derives the full assembly.
func (e *Engine) Resolve(c *model.Cabinet) (model.Assembly, error) {
	e.normalizeDrawers(c)
	a, err := ResolveAssembly(*c, e.Settings)
	if err != nil {
		e.log.Debug("Resolve failed", zap.String("cabinet", c.ID), zap.Error(err))
		return model.Assembly{}, err
	}
	return a, nil
}

// ResolveRoom resolves every cabinet in the room in order.
func (e *Engine) ResolveRoom(r *model.Room) ([]model.Assembly, error) {
	assemblies := make([]model.Assembly, 0, len(r.Cabinets))
	for i := range r.Cabinets {
		a, err := e.Resolve(&r.Cabinets[i])
		if err != nil {
			return nil, err
		}
		assemblies = append(assemblies, a)
	}
	return assemblies, nil
}

// UpdateDrawerHeight edits one drawer slot and redistributes the others.
// The returned update tells whether the edit fell back to equal heights.
func (e *Engine) UpdateDrawerHeight(c *model.Cabinet, index int, height float64) HeightUpdate {
	state := HeightState{
		CarcassHeight: c.Dimensions.Height,
		Quantity:      c.Config.DrawerQuantity,
		Heights:       c.Config.DrawerHeights,
	}
	upd := UpdateHeight(state, index, height)
	if upd.WasReset {
		e.log.Warn("Drawer heights reset to equal distribution",
			zap.String("cabinet", c.ID),
			zap.Int("index", index),
			zap.Float64("requested", height),
			zap.String("reason", upd.Reason))
	}
	c.Config.DrawerHeights = upd.Heights
	return upd
}

// SetDrawerQuantity changes the number of drawers, keeping existing heights
// where the carcass total still allows it.
func (e *Engine) SetDrawerQuantity(c *model.Cabinet, quantity int) (HeightUpdate, error) {
	if err := ValidateDrawerQuantity(quantity); err != nil {
		return HeightUpdate{}, err
	}
	state := HeightState{
		CarcassHeight: c.Dimensions.Height,
		Quantity:      c.Config.DrawerQuantity,
		Heights:       c.Config.DrawerHeights,
	}
	upd := ChangeDrawerQuantity(state, quantity)
	if upd.WasReset {
		e.log.Warn("Drawer heights reset after quantity change",
			zap.String("cabinet", c.ID),
			zap.Int("from", c.Config.DrawerQuantity),
			zap.Int("to", quantity),
			zap.String("reason", upd.Reason))
	}
	c.Config.DrawerQuantity = quantity
	c.Config.DrawerHeights = upd.Heights
	return upd, nil
}

// ResizeCabinet replaces the cabinet dimensions, scales the drawer heights
// to the new carcass height and resolves the result. The cabinet is only
// updated when the resized carcass resolves; on error it is left untouched.
func (e *Engine) ResizeCabinet(c *model.Cabinet, d model.Dimensions) (model.Assembly, error) {
	th := c.Config.Material.PanelThickness
	if err := ValidateDimensions(d, th); err != nil {
		return model.Assembly{}, err
	}
	if err := ValidateShelves(d, th, shelfSpec(c.Config), e.Settings); err != nil {
		return model.Assembly{}, err
	}

	cp := *c
	cp.Config = c.Config.Clone()
	cp.Dimensions = d
	if cp.Config.DrawerEnabled && len(cp.Config.DrawerHeights) > 0 {
		constraints := make([]HeightConstraint, len(cp.Config.DrawerHeights))
		for i := range constraints {
			constraints[i] = HeightConstraint{Min: MinDrawerHeight}
		}
		res := ScaleHeightsProportionally(cp.Config.DrawerHeights, c.Dimensions.Height, d.Height, constraints)
		if res.Abandoned != 0 {
			e.log.Warn("Drawer rescale abandoned remainder",
				zap.String("cabinet", c.ID),
				zap.Float64("remainder", res.Abandoned),
				zap.Int("iterations", res.Iterations))
		} else if !res.Converged {
			e.log.Debug("Drawer rescale hit iteration cap",
				zap.String("cabinet", c.ID),
				zap.Int("iterations", res.Iterations))
		}
		cp.Config.DrawerHeights = res.Heights
	}
	return e.commit(c, cp)
}

// SetPanelThickness changes the carcass board thickness (and with it the
// back thickness) and resolves the result. On error the cabinet keeps its
// current material.
func (e *Engine) SetPanelThickness(c *model.Cabinet, thickness float64) (model.Assembly, error) {
	if err := ValidateDimensions(c.Dimensions, thickness); err != nil {
		return model.Assembly{}, err
	}
	cp := *c
	cp.Config = c.Config.Clone()
	cp.Config.Material.SetPanelThickness(thickness)
	return e.commit(c, cp)
}

// commit resolves the edited copy and stores it in c only on success.
func (e *Engine) commit(c *model.Cabinet, edited model.Cabinet) (model.Assembly, error) {
	a, err := e.Resolve(&edited)
	if err != nil {
		return model.Assembly{}, err
	}
	*c = edited
	return a, nil
}

func shelfSpec(cfg model.CarcassConfig) ShelfSpec {
	return ShelfSpec{Count: cfg.ShelfCount, Spacing: cfg.ShelfSpacing}
}

// SetKickerHeight changes the leg height used for base and tall cabinets.
// Existing assemblies only need their group offset refreshed.
func (e *Engine) SetKickerHeight(height float64) error {
	if height < 0 {
		return fmt.Errorf("%w: kicker height %.1fmm must not be negative", ErrInvalidDimensions, height)
	}
	e.log.Info("Kicker height changed",
		zap.Float64("from", e.Settings.KickerHeight),
		zap.Float64("to", height))
	e.Settings.KickerHeight = height
	return nil
}

// GroupOffsetY returns the current vertical lift for a cabinet type.
func (e *Engine) GroupOffsetY(t model.CabinetType) float64 {
	return GroupOffsetY(t, e.Settings)
}

// AnalyzeMerge returns the advisory warnings for a pending merge.
func (e *Engine) AnalyzeMerge(slabs []model.Slab) ([]model.MergeWarning, error) {
	return AnalyzeMerge(slabs)
}

// Merge synthesizes one slab from the given slabs. Fewer than two slabs is
// logged as a caller error and returns nil without an error.
func (e *Engine) Merge(slabs []model.Slab) (*model.MergeResult, error) {
	if len(slabs) < 2 {
		e.log.Error("Merge needs at least two slabs", zap.Int("count", len(slabs)))
		return nil, nil
	}
	res, err := MergeSlabs(slabs)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		e.log.Info("Merge warning",
			zap.String("type", string(w.Type)),
			zap.String("message", w.Message),
			zap.Ints("affected", w.Affected))
	}
	return res, nil
}

func (e *Engine) normalizeDrawers(c *model.Cabinet) {
	if !c.Config.DrawerEnabled || ValidateDrawerQuantity(c.Config.DrawerQuantity) != nil {
		return
	}
	upd := NormalizeDrawerHeights(c.Config.DrawerHeights, c.Config.DrawerQuantity, c.Dimensions.Height)
	if upd.WasReset {
		e.log.Warn("Drawer heights reset to equal distribution",
			zap.String("cabinet", c.ID),
			zap.String("reason", upd.Reason))
	}
	c.Config.DrawerHeights = upd.Heights
}
