package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/cabinetry/internal/units"
)

const (
	// MinDrawerHeight is the smallest drawer slot a user edit may leave.
	MinDrawerHeight = 50.0

	// HeightTolerance is the allowed gap between the drawer total and the
	// carcass height.
	HeightTolerance = 0.1

	// MaxScaleIterations caps the clamp-and-redistribute passes of
	// ScaleHeightsProportionally.
	MaxScaleIterations = 10

	MinDrawerQuantity = 1
	MaxDrawerQuantity = 6
)

// HeightState is the drawer slot layout of one carcass.
type HeightState struct {
	CarcassHeight float64
	Quantity      int
	Heights       []float64
}

// HeightUpdate is the outcome of a drawer height edit. WasReset is set when
// the edit could not be satisfied locally and every slot was re-equalized.
type HeightUpdate struct {
	Heights  []float64
	WasReset bool
	Reason   string
}

// HeightConstraint bounds a single slot. Max <= 0 means unbounded.
type HeightConstraint struct {
	Min float64
	Max float64
}

// ScaleResult reports how ScaleHeightsProportionally finished.
// Abandoned is the deficit (negative) or surplus (positive) that could not
// be placed because every slot hit a bound.
type ScaleResult struct {
	Heights    []float64
	Iterations int
	Converged  bool
	Abandoned  float64
}

// HeightValidation collects every violation found in a HeightState.
type HeightValidation struct {
	IsValid         bool
	TotalHeight     float64
	RemainingHeight float64
	Errors          []string
}

// CalculateOptimalHeights splits total into n equal slots rounded to 0.1mm.
// The last slot takes the rounding residual so the slots always add up to
// total.
func CalculateOptimalHeights(total float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	share := units.Round1(total / float64(n))
	heights := make([]float64, n)
	for i := 0; i < n-1; i++ {
		heights[i] = share
	}
	heights[n-1] = units.Round1(total - share*float64(n-1))
	return heights
}

// UpdateHeight sets one slot and spreads the remaining height equally over
// the other slots. When that is impossible (nothing left, the others would
// drop below MinDrawerHeight, or there are no other slots) every slot is
// reset to the optimal distribution instead.
func UpdateHeight(state HeightState, index int, newHeight float64) HeightUpdate {
	total := state.CarcassHeight
	n := state.Quantity

	if len(state.Heights) != n {
		return resetHeights(total, n, fmt.Sprintf("expected %d heights, got %d", n, len(state.Heights)))
	}
	if index < 0 || index >= n {
		return resetHeights(total, n, fmt.Sprintf("drawer index %d out of range", index))
	}

	h := units.Round1(units.Clamp(newHeight, MinDrawerHeight, total))
	remaining := units.Round1(total - h)
	if remaining <= 0 {
		return resetHeights(total, n, "no height left for the other drawers")
	}
	if n < 2 {
		return resetHeights(total, n, "a single drawer always fills the carcass")
	}

	others := n - 1
	share := units.Round1(remaining / float64(others))
	last := n - 1
	if index == last {
		last = n - 2
	}

	heights := make([]float64, n)
	heights[index] = h
	for i := range heights {
		if i == index {
			continue
		}
		v := share
		if i == last {
			v = units.Round1(remaining - share*float64(others-1))
		}
		heights[i] = math.Max(v, MinDrawerHeight)
	}

	if units.Sum(heights) > total+HeightTolerance {
		return resetHeights(total, n, "remaining drawers would fall below the minimum height")
	}
	return HeightUpdate{Heights: heights}
}

// ChangeDrawerQuantity grows or shrinks the slot list. New slots get an
// equal share of the carcass, removed slots are dropped from the end. If the
// result no longer adds up to the carcass height all slots are reset.
func ChangeDrawerQuantity(state HeightState, quantity int) HeightUpdate {
	total := state.CarcassHeight
	if quantity <= 0 {
		return HeightUpdate{Heights: []float64{}}
	}

	keep := len(state.Heights)
	if keep > quantity {
		keep = quantity
	}
	heights := make([]float64, 0, quantity)
	heights = append(heights, state.Heights[:keep]...)
	share := units.Round1(total / float64(quantity))
	for len(heights) < quantity {
		heights = append(heights, share)
	}

	if !units.ApproxEqual(units.Sum(heights), total, HeightTolerance) {
		return resetHeights(total, quantity, "drawer total no longer matches the carcass height")
	}
	return HeightUpdate{Heights: heights}
}

// NormalizeDrawerHeights returns heights unchanged when they match the
// quantity and add up to total, otherwise the optimal distribution.
func NormalizeDrawerHeights(heights []float64, quantity int, total float64) HeightUpdate {
	if quantity <= 0 {
		return HeightUpdate{Heights: []float64{}}
	}
	if len(heights) != quantity {
		return resetHeights(total, quantity, fmt.Sprintf("expected %d heights, got %d", quantity, len(heights)))
	}
	if !units.ApproxEqual(units.Sum(heights), total, HeightTolerance) {
		return resetHeights(total, quantity, "drawer total does not match the carcass height")
	}
	return HeightUpdate{Heights: append([]float64{}, heights...)}
}

// ScaleHeightsProportionally rescales the slots from oldTotal to newTotal.
// Slots pushed outside their constraint are clamped and locked, and the
// difference is spread over the unlocked slots in proportion to their size,
// for at most MaxScaleIterations passes. The largest slot then absorbs the
// rounding residual. If every slot locks first the remainder is abandoned
// and reported in the result.
func ScaleHeightsProportionally(heights []float64, oldTotal, newTotal float64, constraints []HeightConstraint) ScaleResult {
	out := append([]float64{}, heights...)
	if oldTotal <= 0 || len(out) == 0 {
		return ScaleResult{Heights: out, Converged: true}
	}

	ratio := newTotal / oldTotal
	for i := range out {
		out[i] *= ratio
	}

	res := ScaleResult{}
	locked := make([]bool, len(out))
	for res.Iterations < MaxScaleIterations {
		res.Iterations++

		// delta > 0: height freed by clamping down, to hand to other slots.
		// delta < 0: height taken by clamping up, to recover from other slots.
		var delta float64
		for i, h := range out {
			if locked[i] || i >= len(constraints) {
				continue
			}
			c := constraints[i]
			switch {
			case h < c.Min:
				delta -= c.Min - h
				out[i] = c.Min
				locked[i] = true
			case c.Max > 0 && h > c.Max:
				delta += h - c.Max
				out[i] = c.Max
				locked[i] = true
			}
		}

		if math.Abs(delta) < HeightTolerance {
			res.Converged = true
			break
		}

		var free float64
		for i, h := range out {
			if !locked[i] {
				free += h
			}
		}
		if free <= 0 {
			res.Abandoned = delta
			break
		}
		for i := range out {
			if !locked[i] {
				out[i] += delta * out[i] / free
			}
		}
	}

	for i := range out {
		out[i] = units.Round1(out[i])
	}
	if res.Abandoned == 0 {
		largest := 0
		for i, h := range out {
			if h > out[largest] {
				largest = i
			}
		}
		out[largest] = units.Round1(out[largest] + newTotal - units.Sum(out))
	}
	res.Heights = out
	return res
}

// ValidateHeights checks slot count, total and per-slot minimum. It never
// fails; every violation is returned as a message.
func ValidateHeights(state HeightState) HeightValidation {
	total := units.Sum(state.Heights)
	v := HeightValidation{
		TotalHeight:     units.Round1(total),
		RemainingHeight: units.Round1(state.CarcassHeight - total),
		Errors:          []string{},
	}

	if len(state.Heights) != state.Quantity {
		v.Errors = append(v.Errors, fmt.Sprintf("expected %d drawer heights, got %d", state.Quantity, len(state.Heights)))
	}
	if total > state.CarcassHeight+HeightTolerance {
		v.Errors = append(v.Errors, fmt.Sprintf("total drawer height %.1fmm exceeds carcass height %.1fmm", total, state.CarcassHeight))
	}
	for i, h := range state.Heights {
		if h < MinDrawerHeight {
			v.Errors = append(v.Errors, fmt.Sprintf("drawer %d height %.1fmm is below the %.0fmm minimum", i+1, h, MinDrawerHeight))
		}
	}

	v.IsValid = len(v.Errors) == 0
	return v
}

// ValidateDrawerQuantity rejects quantities outside [MinDrawerQuantity, MaxDrawerQuantity].
func ValidateDrawerQuantity(quantity int) error {
	if quantity < MinDrawerQuantity || quantity > MaxDrawerQuantity {
		return fmt.Errorf("%w: drawer quantity %d must be between %d and %d",
			ErrInvalidCardinality, quantity, MinDrawerQuantity, MaxDrawerQuantity)
	}
	return nil
}

func resetHeights(total float64, n int, reason string) HeightUpdate {
	return HeightUpdate{
		Heights:  CalculateOptimalHeights(total, n),
		WasReset: true,
		Reason:   reason,
	}
}
