package engine

import (
	"testing"

	"github.com/piwi3910/cabinetry/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDrawers_Stacked(t *testing.T) {
	d := model.Dimensions{Width: 600, Height: 720, Depth: 560}
	drawers := ResolveDrawers(d, testMaterial(), []float64{300, 210, 210})
	require.Len(t, drawers, 3)

	assert.Equal(t, 150.0, drawers[0].Position.Y)
	assert.Equal(t, 405.0, drawers[1].Position.Y)
	assert.Equal(t, 615.0, drawers[2].Position.Y)
	for i, dr := range drawers {
		assert.Equal(t, i, dr.Index)
		assert.Equal(t, 564.0, dr.Width)
		assert.Equal(t, 560.0, dr.Depth)
		assert.Equal(t, model.Vec3{X: 300, Y: dr.Position.Y, Z: 280}, dr.Position)
	}
}

func TestResolveDrawers_NoGaps(t *testing.T) {
	d := model.Dimensions{Width: 600, Height: 900, Depth: 560}
	drawers := ResolveDrawers(d, testMaterial(), CalculateOptimalHeights(900, 6))

	assert.Equal(t, 0.0, drawers[0].Min().Y)
	for i := 1; i < len(drawers); i++ {
		assert.InDelta(t, drawers[i-1].Max().Y, drawers[i].Min().Y, 1e-9)
	}
	assert.InDelta(t, 900, drawers[len(drawers)-1].Max().Y, HeightTolerance)
}

func TestResolveDrawers_Empty(t *testing.T) {
	d := model.Dimensions{Width: 600, Height: 720, Depth: 560}
	assert.Empty(t, ResolveDrawers(d, testMaterial(), nil))
}
