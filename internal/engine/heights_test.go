package engine

import (
	"math/rand"
	"testing"

	"github.com/piwi3910/cabinetry/internal/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateOptimalHeights_EqualSplit(t *testing.T) {
	assert.Equal(t, []float64{240.0, 240.0, 240.0}, CalculateOptimalHeights(720, 3))
}

func TestCalculateOptimalHeights_ZeroOrNegativeSlots(t *testing.T) {
	assert.Empty(t, CalculateOptimalHeights(720, 0))
	assert.Empty(t, CalculateOptimalHeights(720, -2))
	assert.NotNil(t, CalculateOptimalHeights(720, 0), "empty sequence, not nil")
}

func TestCalculateOptimalHeights_RoundingResidualOnLastSlot(t *testing.T) {
	h := CalculateOptimalHeights(1000, 6)
	require.Len(t, h, 6)
	for _, v := range h[:5] {
		assert.Equal(t, 166.7, v)
	}
	assert.InDelta(t, 166.5, h[5], 1e-9)
	assert.InDelta(t, 1000, units.Sum(h), HeightTolerance)
}

func TestCalculateOptimalHeights_SumInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		total := units.Round1(100 + rng.Float64()*2300)
		n := MinDrawerQuantity + rng.Intn(MaxDrawerQuantity)
		h := CalculateOptimalHeights(total, n)
		require.Len(t, h, n)
		assert.InDelta(t, total, units.Sum(h), HeightTolerance, "total=%.1f n=%d", total, n)
	}
}

func TestCalculateOptimalHeights_Idempotent(t *testing.T) {
	a := CalculateOptimalHeights(877.3, 4)
	b := CalculateOptimalHeights(877.3, 4)
	assert.Equal(t, a, b)
}

func TestUpdateHeight_RedistributesRemaining(t *testing.T) {
	state := HeightState{CarcassHeight: 720, Quantity: 3, Heights: []float64{240, 240, 240}}
	upd := UpdateHeight(state, 0, 300)

	assert.False(t, upd.WasReset)
	assert.Equal(t, []float64{300, 210.0, 210.0}, upd.Heights)
}

func TestUpdateHeight_EditLastSlot(t *testing.T) {
	state := HeightState{CarcassHeight: 720, Quantity: 3, Heights: []float64{240, 240, 240}}
	upd := UpdateHeight(state, 2, 120)

	assert.False(t, upd.WasReset)
	assert.Equal(t, []float64{300, 300, 120}, upd.Heights)
}

func TestUpdateHeight_ClampsBelowMinimum(t *testing.T) {
	state := HeightState{CarcassHeight: 720, Quantity: 2, Heights: []float64{360, 360}}
	upd := UpdateHeight(state, 0, 10)

	assert.False(t, upd.WasReset)
	assert.Equal(t, []float64{MinDrawerHeight, 670}, upd.Heights)
}

func TestUpdateHeight_ResetWhenOthersWouldBeTooSmall(t *testing.T) {
	state := HeightState{CarcassHeight: 720, Quantity: 3, Heights: []float64{240, 240, 240}}
	upd := UpdateHeight(state, 1, 650)

	assert.True(t, upd.WasReset)
	assert.NotEmpty(t, upd.Reason)
	assert.Equal(t, []float64{240, 240, 240}, upd.Heights)
}

func TestUpdateHeight_ResetWhenNothingRemains(t *testing.T) {
	state := HeightState{CarcassHeight: 720, Quantity: 3, Heights: []float64{240, 240, 240}}
	upd := UpdateHeight(state, 0, 5000)

	assert.True(t, upd.WasReset, "clamped to the full carcass leaves nothing for the others")
	assert.Equal(t, CalculateOptimalHeights(720, 3), upd.Heights)
}

func TestUpdateHeight_SingleDrawerAlwaysResets(t *testing.T) {
	state := HeightState{CarcassHeight: 720, Quantity: 1, Heights: []float64{720}}
	upd := UpdateHeight(state, 0, 300)

	assert.True(t, upd.WasReset)
	assert.Equal(t, []float64{720}, upd.Heights)
}

func TestUpdateHeight_BadIndexOrLengthResets(t *testing.T) {
	state := HeightState{CarcassHeight: 600, Quantity: 2, Heights: []float64{300, 300}}
	assert.True(t, UpdateHeight(state, 5, 200).WasReset)
	assert.True(t, UpdateHeight(state, -1, 200).WasReset)

	state.Heights = []float64{600}
	assert.True(t, UpdateHeight(state, 0, 200).WasReset)
}

func TestUpdateHeight_MinHeightOrReset(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		total := float64(200 + rng.Intn(2000))
		n := 1 + rng.Intn(MaxDrawerQuantity)
		state := HeightState{CarcassHeight: total, Quantity: n, Heights: CalculateOptimalHeights(total, n)}
		idx := rng.Intn(n)
		req := rng.Float64() * total * 1.2

		upd := UpdateHeight(state, idx, req)
		require.Len(t, upd.Heights, n)
		if upd.WasReset {
			assert.Equal(t, CalculateOptimalHeights(total, n), upd.Heights)
			continue
		}
		for _, h := range upd.Heights {
			assert.GreaterOrEqual(t, h, MinDrawerHeight)
		}
		assert.InDelta(t, total, units.Sum(upd.Heights), HeightTolerance+1e-6)
	}
}

func TestChangeDrawerQuantity_ShrinkResets(t *testing.T) {
	state := HeightState{CarcassHeight: 720, Quantity: 3, Heights: []float64{240, 240, 240}}
	upd := ChangeDrawerQuantity(state, 2)

	assert.True(t, upd.WasReset)
	assert.Equal(t, []float64{360, 360}, upd.Heights)
}

func TestChangeDrawerQuantity_GrowFromEmpty(t *testing.T) {
	state := HeightState{CarcassHeight: 720, Quantity: 0}
	upd := ChangeDrawerQuantity(state, 4)

	assert.False(t, upd.WasReset, "appending equal shares to nothing already fits")
	assert.Equal(t, []float64{180, 180, 180, 180}, upd.Heights)
}

func TestChangeDrawerQuantity_GrowResetsWhenOverfull(t *testing.T) {
	state := HeightState{CarcassHeight: 720, Quantity: 2, Heights: []float64{360, 360}}
	upd := ChangeDrawerQuantity(state, 3)

	assert.True(t, upd.WasReset)
	assert.Equal(t, []float64{240, 240, 240}, upd.Heights)
}

func TestChangeDrawerQuantity_SameQuantityKeepsHeights(t *testing.T) {
	state := HeightState{CarcassHeight: 720, Quantity: 3, Heights: []float64{300, 210, 210}}
	upd := ChangeDrawerQuantity(state, 3)

	assert.False(t, upd.WasReset)
	assert.Equal(t, []float64{300, 210, 210}, upd.Heights)
}

func TestNormalizeDrawerHeights(t *testing.T) {
	ok := NormalizeDrawerHeights([]float64{300, 420}, 2, 720)
	assert.False(t, ok.WasReset)
	assert.Equal(t, []float64{300, 420}, ok.Heights)

	bad := NormalizeDrawerHeights([]float64{300, 300}, 2, 720)
	assert.True(t, bad.WasReset)
	assert.Equal(t, []float64{360, 360}, bad.Heights)

	short := NormalizeDrawerHeights(nil, 3, 720)
	assert.True(t, short.WasReset)
	assert.Len(t, short.Heights, 3)
}

func TestScaleHeightsProportionally_Unconstrained(t *testing.T) {
	res := ScaleHeightsProportionally([]float64{240, 240, 240}, 720, 900, nil)

	assert.True(t, res.Converged)
	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, []float64{300, 300, 300}, res.Heights)
}

func TestScaleHeightsProportionally_ZeroOldTotal(t *testing.T) {
	in := []float64{100, 200}
	res := ScaleHeightsProportionally(in, 0, 900, nil)
	assert.Equal(t, in, res.Heights)

	res = ScaleHeightsProportionally(in, -5, 900, nil)
	assert.Equal(t, in, res.Heights)
}

func TestScaleHeightsProportionally_ClampAndRedistribute(t *testing.T) {
	// Shrinking 720 -> 360 halves each slot; the 100mm slot would drop to 50
	// but must stay at 80, so the other slots give up the difference.
	constraints := []HeightConstraint{{Min: 80}, {Min: 50}, {Min: 50}}
	res := ScaleHeightsProportionally([]float64{100, 310, 310}, 720, 360, constraints)

	assert.True(t, res.Converged)
	assert.Equal(t, 80.0, res.Heights[0])
	assert.InDelta(t, 360, units.Sum(res.Heights), 1e-6)
	assert.InDelta(t, res.Heights[1], res.Heights[2], 0.1+1e-9)
}

func TestScaleHeightsProportionally_MaxConstraint(t *testing.T) {
	constraints := []HeightConstraint{{Max: 250}, {}, {}}
	res := ScaleHeightsProportionally([]float64{240, 240, 240}, 720, 900, constraints)

	assert.Equal(t, 250.0, res.Heights[0])
	assert.InDelta(t, 900, units.Sum(res.Heights), 1e-6)
	assert.InDelta(t, 325, res.Heights[1], 0.1)
}

func TestScaleHeightsProportionally_AllLockedAbandons(t *testing.T) {
	constraints := []HeightConstraint{{Min: 300}, {Min: 300}}
	res := ScaleHeightsProportionally([]float64{360, 360}, 720, 400, constraints)

	assert.False(t, res.Converged)
	assert.Less(t, res.Abandoned, 0.0, "clamping up consumed height that nothing could give back")
	assert.Equal(t, []float64{300, 300}, res.Heights)
}

func TestScaleHeightsProportionally_ConvergesOrAbandonsWithinCap(t *testing.T) {
	rng := rand.New(rand.NewSource(1234))
	for i := 0; i < 500; i++ {
		n := 1 + rng.Intn(MaxDrawerQuantity)
		heights := make([]float64, n)
		constraints := make([]HeightConstraint, n)
		var oldTotal float64
		for j := range heights {
			heights[j] = float64(50 + rng.Intn(400))
			oldTotal += heights[j]
			constraints[j].Min = float64(rng.Intn(150))
			if rng.Intn(2) == 0 {
				constraints[j].Max = constraints[j].Min + float64(50+rng.Intn(500))
			}
		}
		newTotal := float64(100 + rng.Intn(2000))

		res := ScaleHeightsProportionally(heights, oldTotal, newTotal, constraints)
		require.Len(t, res.Heights, n)
		assert.LessOrEqual(t, res.Iterations, MaxScaleIterations)
		if res.Abandoned == 0 {
			assert.InDelta(t, newTotal, units.Sum(res.Heights), 1e-6, "case %d", i)
		}
	}
}

func TestValidateHeights(t *testing.T) {
	v := ValidateHeights(HeightState{CarcassHeight: 720, Quantity: 3, Heights: []float64{240, 240, 240}})
	assert.True(t, v.IsValid)
	assert.Empty(t, v.Errors)
	assert.Equal(t, 720.0, v.TotalHeight)
	assert.Equal(t, 0.0, v.RemainingHeight)

	v = ValidateHeights(HeightState{CarcassHeight: 720, Quantity: 3, Heights: []float64{700, 40}})
	assert.False(t, v.IsValid)
	assert.Len(t, v.Errors, 3, "count, total and minimum violations")
	assert.Equal(t, -20.0, v.RemainingHeight)
}

func TestValidateDrawerQuantity(t *testing.T) {
	for q := MinDrawerQuantity; q <= MaxDrawerQuantity; q++ {
		assert.NoError(t, ValidateDrawerQuantity(q))
	}
	assert.ErrorIs(t, ValidateDrawerQuantity(0), ErrInvalidCardinality)
	assert.ErrorIs(t, ValidateDrawerQuantity(7), ErrInvalidCardinality)
}
