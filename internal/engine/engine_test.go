package engine

import (
	"testing"

	"github.com/piwi3910/cabinetry/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedEngine(level zapcore.Level) (*Engine, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return New(model.DefaultSettings(), zap.New(core)), logs
}

func TestNew_NilLogger(t *testing.T) {
	e := New(model.DefaultSettings(), nil)
	require.NotNil(t, e)
	assert.NotPanics(t, func() { e.Merge(nil) })
}

func TestEngine_UpdateDrawerHeight(t *testing.T) {
	e, logs := newObservedEngine(zap.WarnLevel)
	c := drawerCabinet(240, 240, 240)

	upd := e.UpdateDrawerHeight(&c, 0, 300)
	assert.False(t, upd.WasReset)
	assert.Equal(t, []float64{300, 210, 210}, c.Config.DrawerHeights)
	assert.Zero(t, logs.Len())

	upd = e.UpdateDrawerHeight(&c, 1, 700)
	assert.True(t, upd.WasReset)
	assert.Equal(t, []float64{240, 240, 240}, c.Config.DrawerHeights)
	require.Equal(t, 1, logs.FilterMessage("Drawer heights reset to equal distribution").Len())
	entry := logs.All()[0]
	assert.Equal(t, "engine", entry.LoggerName)
	assert.Equal(t, c.ID, entry.ContextMap()["cabinet"])
}

func TestEngine_SetDrawerQuantity(t *testing.T) {
	e, logs := newObservedEngine(zap.WarnLevel)
	c := drawerCabinet(240, 240, 240)

	upd, err := e.SetDrawerQuantity(&c, 4)
	require.NoError(t, err)
	assert.True(t, upd.WasReset)
	assert.Equal(t, 4, c.Config.DrawerQuantity)
	assert.Equal(t, []float64{180, 180, 180, 180}, c.Config.DrawerHeights)
	assert.Equal(t, 1, logs.Len())

	_, err = e.SetDrawerQuantity(&c, 7)
	assert.ErrorIs(t, err, ErrInvalidCardinality)
	assert.Equal(t, 4, c.Config.DrawerQuantity, "rejected quantity leaves the cabinet alone")
}

func TestEngine_ResizeCabinetScalesDrawers(t *testing.T) {
	e, _ := newObservedEngine(zap.WarnLevel)
	c := drawerCabinet(300, 210, 210)

	a, err := e.ResizeCabinet(&c, model.Dimensions{Width: 600, Height: 900, Depth: 560})
	require.NoError(t, err)

	assert.Equal(t, []float64{375, 262.5, 262.5}, c.Config.DrawerHeights)
	require.Len(t, a.Drawers, 3)
	assert.InDelta(t, 900, a.Drawers[2].Max().Y, HeightTolerance)
}

func TestEngine_ResizeCabinetRejectsDegenerate(t *testing.T) {
	e, _ := newObservedEngine(zap.WarnLevel)
	c := drawerCabinet(360, 360)

	_, err := e.ResizeCabinet(&c, model.Dimensions{Width: 600, Height: 20, Depth: 560})
	assert.ErrorIs(t, err, ErrInvalidDimensions)
	assert.Equal(t, 720.0, c.Dimensions.Height)
	assert.Equal(t, []float64{360, 360}, c.Config.DrawerHeights)
}

func TestEngine_ResizeCabinetKeepsCabinetWhenShelvesDoNotFit(t *testing.T) {
	e, _ := newObservedEngine(zap.WarnLevel)
	cfg := model.DefaultCarcassConfig(e.Settings)
	cfg.ShelfCount = 1
	c := model.NewCabinet("B1", model.CabinetBase, 600, 720, 560, cfg)

	_, err := e.ResizeCabinet(&c, model.Dimensions{Width: 600, Height: 200, Depth: 560})
	assert.ErrorIs(t, err, ErrInvalidDimensions)
	assert.Equal(t, model.Dimensions{Width: 600, Height: 720, Depth: 560}, c.Dimensions)
}

func TestEngine_ResizeCabinetKeepsCabinetWhenResolveFails(t *testing.T) {
	e, _ := newObservedEngine(zap.WarnLevel)
	c := drawerCabinet(360, 360)
	c.Config.DoorEnabled = true
	c.Config.DoorCount = 3

	_, err := e.ResizeCabinet(&c, model.Dimensions{Width: 600, Height: 900, Depth: 560})
	assert.ErrorIs(t, err, ErrInvalidCardinality)
	assert.Equal(t, 720.0, c.Dimensions.Height)
	assert.Equal(t, []float64{360, 360}, c.Config.DrawerHeights)

	_, err = e.SetPanelThickness(&c, 25)
	assert.ErrorIs(t, err, ErrInvalidCardinality)
	assert.Equal(t, 18.0, c.Config.Material.PanelThickness)
}

func TestEngine_ResizeCabinetAbandonsRemainder(t *testing.T) {
	e, logs := newObservedEngine(zap.WarnLevel)
	c := drawerCabinet(240, 240, 240)

	// Three slots cannot shrink below 150mm in total.
	_, err := e.ResizeCabinet(&c, model.Dimensions{Width: 600, Height: 120, Depth: 560})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("Drawer rescale abandoned remainder").Len())
	assert.Equal(t, 1, logs.FilterMessage("Drawer heights reset to equal distribution").Len())
	assert.Equal(t, []float64{40, 40, 40}, c.Config.DrawerHeights)
}

func TestEngine_SetPanelThickness(t *testing.T) {
	e, _ := newObservedEngine(zap.WarnLevel)
	c := drawerCabinet(360, 360)

	a, err := e.SetPanelThickness(&c, 25)
	require.NoError(t, err)
	assert.Equal(t, 25.0, c.Config.Material.PanelThickness)
	assert.Equal(t, 25.0, c.Config.Material.BackThickness)
	assert.Equal(t, 550.0, a.Carcass.Back.Width)
	assert.Equal(t, 550.0, a.Drawers[0].Width)

	_, err = e.SetPanelThickness(&c, 400)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
	assert.Equal(t, 25.0, c.Config.Material.PanelThickness)
}

func TestEngine_SetKickerHeight(t *testing.T) {
	e, logs := newObservedEngine(zap.InfoLevel)

	require.NoError(t, e.SetKickerHeight(150))
	assert.Equal(t, 150.0, e.GroupOffsetY(model.CabinetBase))
	assert.Equal(t, 0.0, e.GroupOffsetY(model.CabinetTop))
	assert.Equal(t, 1, logs.FilterMessage("Kicker height changed").Len())

	c := drawerCabinet(360, 360)
	a, err := e.Resolve(&c)
	require.NoError(t, err)
	assert.Equal(t, 150.0, a.GroupOffsetY)
	assert.Equal(t, 150.0, a.Carcass.Legs[0].Height)

	assert.ErrorIs(t, e.SetKickerHeight(-1), ErrInvalidDimensions)
	assert.Equal(t, 150.0, e.Settings.KickerHeight)
}

func TestEngine_ResolveRepairsDrawers(t *testing.T) {
	e, logs := newObservedEngine(zap.WarnLevel)
	c := drawerCabinet(100, 100)

	_, err := e.Resolve(&c)
	require.NoError(t, err)
	assert.Equal(t, []float64{360, 360}, c.Config.DrawerHeights)
	assert.Equal(t, 1, logs.Len())
}

func TestEngine_ResolveRoom(t *testing.T) {
	e, _ := newObservedEngine(zap.WarnLevel)
	r := model.NewRoom("Kitchen")
	r.AddCabinet(drawerCabinet(360, 360))
	bad := drawerCabinet(360, 360)
	bad.Dimensions.Width = 10

	assemblies, err := e.ResolveRoom(&r)
	require.NoError(t, err)
	assert.Len(t, assemblies, 1)

	r.AddCabinet(bad)
	_, err = e.ResolveRoom(&r)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestEngine_Merge(t *testing.T) {
	e, logs := newObservedEngine(zap.InfoLevel)

	res, err := e.Merge([]model.Slab{benchtop(1, 0, 600)})
	assert.NoError(t, err)
	assert.Nil(t, res)
	assert.Equal(t, 1, logs.FilterMessage("Merge needs at least two slabs").Len())

	a, b := benchtop(1, 0, 600), benchtop(2, 600, 600)
	b.Material = "marble"
	res, err = e.Merge([]model.Slab{a, b})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 1, logs.FilterMessage("Merge warning").Len())

	warnings, err := e.AnalyzeMerge([]model.Slab{a, b})
	require.NoError(t, err)
	assert.Equal(t, res.Warnings, warnings)
}
