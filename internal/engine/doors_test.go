package engine

import (
	"testing"

	"github.com/piwi3910/cabinetry/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDoors_Pair(t *testing.T) {
	d := model.Dimensions{Width: 600, Height: 720, Depth: 560}
	doors, err := ResolveDoors(model.CabinetBase, d, DoorSpec{Count: 2, Thickness: 18}, model.DefaultSettings())
	require.NoError(t, err)
	require.Len(t, doors, 2)

	for _, door := range doors {
		assert.Equal(t, 298.0, door.Width)
		assert.Equal(t, 716.0, door.Height)
		assert.Equal(t, 360.0, door.Position.Y)
		assert.Equal(t, 571.0, door.Position.Z)
	}
	assert.Equal(t, 149.0, doors[0].Position.X)
	assert.Equal(t, 451.0, doors[1].Position.X)
	assert.Equal(t, "Door 2", doors[1].Name())
}

func TestResolveDoors_Single(t *testing.T) {
	d := model.Dimensions{Width: 450, Height: 720, Depth: 560}
	doors, err := ResolveDoors(model.CabinetBase, d, DoorSpec{Count: 1}, model.DefaultSettings())
	require.NoError(t, err)
	require.Len(t, doors, 1)

	assert.Equal(t, 446.0, doors[0].Width)
	assert.Equal(t, 225.0, doors[0].Position.X)
	assert.Equal(t, 18.0, doors[0].Depth, "zero thickness falls back to the default")
}

func TestResolveDoors_OverhangOnlyOnTopCabinets(t *testing.T) {
	s := model.DefaultSettings()
	d := model.Dimensions{Width: 600, Height: 700, Depth: 300}
	spec := DoorSpec{Count: 1, Thickness: 18, Overhang: true}

	top, err := ResolveDoors(model.CabinetTop, d, spec, s)
	require.NoError(t, err)
	assert.Equal(t, 716.0, top[0].Height)
	assert.Equal(t, 370.0, top[0].Position.Y)

	base, err := ResolveDoors(model.CabinetBase, d, spec, s)
	require.NoError(t, err)
	assert.Equal(t, 696.0, base[0].Height)
	assert.Equal(t, 350.0, base[0].Position.Y)
}

func TestResolveDoors_InFrontOfCarcass(t *testing.T) {
	d := model.Dimensions{Width: 600, Height: 720, Depth: 560}
	doors, err := ResolveDoors(model.CabinetBase, d, DoorSpec{Count: 2, Thickness: 22}, model.DefaultSettings())
	require.NoError(t, err)
	for _, door := range doors {
		assert.Greater(t, door.Min().Z, d.Depth)
	}
}

func TestResolveDoors_InvalidCount(t *testing.T) {
	d := model.Dimensions{Width: 600, Height: 720, Depth: 560}
	for _, n := range []int{0, 3, -1} {
		_, err := ResolveDoors(model.CabinetBase, d, DoorSpec{Count: n}, model.DefaultSettings())
		assert.ErrorIs(t, err, ErrInvalidCardinality, "count %d", n)
	}
}

func TestResolveDoors_TooNarrow(t *testing.T) {
	d := model.Dimensions{Width: 4, Height: 720, Depth: 560}
	_, err := ResolveDoors(model.CabinetBase, d, DoorSpec{Count: 2}, model.DefaultSettings())
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}
