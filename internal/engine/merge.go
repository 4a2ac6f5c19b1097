package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/piwi3910/cabinetry/internal/model"
)

// sameSize is the difference below which two slab dimensions count as equal.
const sameSize = 0.01

// AnalyzeMerge compares the slabs of a pending merge and returns advisory
// warnings for every dimension or material the merge will change. The
// caller decides whether to go ahead; the warnings never block MergeSlabs.
func AnalyzeMerge(slabs []model.Slab) ([]model.MergeWarning, error) {
	if len(slabs) < 2 {
		return nil, nil
	}
	if err := checkCategory(slabs); err != nil {
		return nil, err
	}
	noun := string(slabs[0].Category)

	var warnings []model.MergeWarning
	if w, ok := heightWarning(slabs, noun); ok {
		warnings = append(warnings, w)
	}

	lo, hi := unionBounds(slabs)
	mergedDepth, mergedThickness := extents(slabs[0].Category, lo, hi)

	maxDepth := maxOf(slabs, func(s model.Slab) float64 { return s.Depth })
	if shallower := idsWhere(slabs, func(s model.Slab) bool { return s.Depth < mergedDepth-sameSize }); len(shallower) > 0 {
		var msg string
		if mergedDepth > maxDepth+sameSize {
			msg = fmt.Sprintf("%s %s will be extended to the merged depth of %.1fmm covering their offset edges",
				noun, formatIDs(shallower), mergedDepth)
		} else {
			deepest := idsWhere(slabs, func(s model.Slab) bool { return s.Depth >= maxDepth-sameSize })
			msg = fmt.Sprintf("%s %s will be extended to the deepest depth of %.1fmm (%s)",
				noun, formatIDs(shallower), maxDepth, formatIDs(deepest))
		}
		warnings = append(warnings, model.MergeWarning{Type: model.WarnDepth, Message: msg, Affected: shallower})
	}

	maxThickness := maxOf(slabs, func(s model.Slab) float64 { return s.Thickness })
	if thinner := idsWhere(slabs, func(s model.Slab) bool { return s.Thickness < mergedThickness-sameSize }); len(thinner) > 0 {
		msg := fmt.Sprintf("%s %s will be raised to the maximum thickness of %.1fmm",
			noun, formatIDs(thinner), maxThickness)
		if mergedThickness > maxThickness+sameSize {
			msg = fmt.Sprintf("%s %s will be raised to the merged thickness of %.1fmm covering their offset faces",
				noun, formatIDs(thinner), mergedThickness)
		}
		warnings = append(warnings, model.MergeWarning{Type: model.WarnThickness, Message: msg, Affected: thinner})
	}

	ref := lowestID(slabs)
	if other := idsWhere(slabs, func(s model.Slab) bool { return s.Material != ref.Material }); len(other) > 0 {
		warnings = append(warnings, model.MergeWarning{
			Type: model.WarnMaterial,
			Message: fmt.Sprintf("%s %s will use material %q from #%d",
				noun, formatIDs(other), ref.Material, ref.ID),
			Affected: other,
		})
	}
	return warnings, nil
}

// MergeSlabs replaces the given slabs with one slab covering their bounding
// union. Thickness is the maximum source thickness when the slabs share a
// face, and grows to the union extent when their faces are offset. Product
// identity comes from the reference slab (the first benchtop, or the
// leftmost kicker); material comes from the slab with the lowest ID.
// Fewer than two slabs is a no-op and returns nil.
func MergeSlabs(slabs []model.Slab) (*model.MergeResult, error) {
	if len(slabs) < 2 {
		return nil, nil
	}
	warnings, err := AnalyzeMerge(slabs)
	if err != nil {
		return nil, err
	}

	lo, hi := unionBounds(slabs)

	category := slabs[0].Category
	ref := slabs[0]
	if category == model.SlabKicker {
		ref = leftmost(slabs)
	}

	merged := model.Slab{
		Category: category,
		Product:  ref.Product,
		Material: lowestID(slabs).Material,
		X:        lo.X,
		Y:        lo.Y,
		Z:        lo.Z,
		Width:    hi.X - lo.X,
	}
	merged.Depth, merged.Thickness = extents(category, lo, hi)

	sources := make([]int, len(slabs))
	for i, s := range slabs {
		sources[i] = s.ID
	}
	return &model.MergeResult{Slab: merged, Sources: sources, Warnings: warnings}, nil
}

// heightWarning flags slabs sitting at a different floor height. The group
// off the lowest level is flagged as taller, unless it outnumbers the lowest
// group, in which case the lowest group is flagged instead.
func heightWarning(slabs []model.Slab, noun string) (model.MergeWarning, bool) {
	minY := slabs[0].Y
	for _, s := range slabs[1:] {
		minY = math.Min(minY, s.Y)
	}
	lowest := idsWhere(slabs, func(s model.Slab) bool { return s.Y <= minY+sameSize })
	higher := idsWhere(slabs, func(s model.Slab) bool { return s.Y > minY+sameSize })
	if len(higher) == 0 {
		return model.MergeWarning{}, false
	}

	if len(higher) <= len(lowest) {
		return model.MergeWarning{
			Type:     model.WarnHeight,
			Message:  fmt.Sprintf("%s %s %s taller than others; the merged %s will start at %.1fmm", noun, formatIDs(higher), isAre(higher), noun, minY),
			Affected: higher,
		}, true
	}
	return model.MergeWarning{
		Type:     model.WarnHeight,
		Message:  fmt.Sprintf("%s %s %s lower than others; the merged %s will start at %.1fmm", noun, formatIDs(lowest), isAre(lowest), noun, minY),
		Affected: lowest,
	}, true
}

// unionBounds returns the min and max corners enclosing every slab.
func unionBounds(slabs []model.Slab) (lo, hi model.Vec3) {
	lo, hi = slabs[0].Bounds()
	for _, s := range slabs[1:] {
		min, max := s.Bounds()
		lo = model.Vec3{X: math.Min(lo.X, min.X), Y: math.Min(lo.Y, min.Y), Z: math.Min(lo.Z, min.Z)}
		hi = model.Vec3{X: math.Max(hi.X, max.X), Y: math.Max(hi.Y, max.Y), Z: math.Max(hi.Z, max.Z)}
	}
	return lo, hi
}

// extents maps a bounding box back to slab depth and thickness. Kickers
// stand upright, so their depth is vertical.
func extents(category model.SlabCategory, lo, hi model.Vec3) (depth, thickness float64) {
	if category == model.SlabKicker {
		return hi.Y - lo.Y, hi.Z - lo.Z
	}
	return hi.Z - lo.Z, hi.Y - lo.Y
}

func checkCategory(slabs []model.Slab) error {
	for _, s := range slabs[1:] {
		if s.Category != slabs[0].Category {
			return fmt.Errorf("%w: %s #%d and %s #%d", ErrMixedCategories,
				slabs[0].Category, slabs[0].ID, s.Category, s.ID)
		}
	}
	return nil
}

func maxOf(slabs []model.Slab, f func(model.Slab) float64) float64 {
	max := f(slabs[0])
	for _, s := range slabs[1:] {
		max = math.Max(max, f(s))
	}
	return max
}

// idsWhere returns the IDs of matching slabs in ascending order.
func idsWhere(slabs []model.Slab, match func(model.Slab) bool) []int {
	var ids []int
	for _, s := range slabs {
		if match(s) {
			ids = append(ids, s.ID)
		}
	}
	sort.Ints(ids)
	return ids
}

func lowestID(slabs []model.Slab) model.Slab {
	ref := slabs[0]
	for _, s := range slabs[1:] {
		if s.ID < ref.ID {
			ref = s
		}
	}
	return ref
}

// leftmost returns the slab with the smallest X, lowest ID on ties.
func leftmost(slabs []model.Slab) model.Slab {
	ref := slabs[0]
	for _, s := range slabs[1:] {
		if s.X < ref.X || (s.X == ref.X && s.ID < ref.ID) {
			ref = s
		}
	}
	return ref
}

func formatIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("#%d", id)
	}
	return strings.Join(parts, ", ")
}

func isAre(ids []int) string {
	if len(ids) == 1 {
		return "is"
	}
	return "are"
}
