package model

// SlabCategory distinguishes the two kinds of mergeable run slabs.
type SlabCategory string

const (
	SlabBenchtop SlabCategory = "benchtop"
	SlabKicker   SlabCategory = "kicker"
)

// Slab is a rectangular run component spanning one or more cabinets.
// X, Y, Z locate its min corner in room coordinates.
//
// Benchtops lie flat: Width runs along X, Depth along Z and Thickness is
// vertical. Kickers stand upright: Width runs along X, Depth is the
// vertical face height and Thickness runs along Z.
type Slab struct {
	ID        int          `json:"id" yaml:"id"`
	Category  SlabCategory `json:"category" yaml:"category"`
	Product   string       `json:"product" yaml:"product"`
	Material  string       `json:"material" yaml:"material"`
	X         float64      `json:"x" yaml:"x"`
	Y         float64      `json:"y" yaml:"y"`
	Z         float64      `json:"z" yaml:"z"`
	Width     float64      `json:"width" yaml:"width"`
	Depth     float64      `json:"depth" yaml:"depth"`
	Thickness float64      `json:"thickness" yaml:"thickness"`
}

// Right returns the X coordinate of the slab's right edge.
func (s Slab) Right() float64 {
	return s.X + s.Width
}

// Bounds returns the min and max corners of the slab in room space.
func (s Slab) Bounds() (min, max Vec3) {
	min = Vec3{X: s.X, Y: s.Y, Z: s.Z}
	if s.Category == SlabKicker {
		return min, Vec3{X: s.X + s.Width, Y: s.Y + s.Depth, Z: s.Z + s.Thickness}
	}
	return min, Vec3{X: s.X + s.Width, Y: s.Y + s.Thickness, Z: s.Z + s.Depth}
}

// WarningType classifies a merge conflict.
type WarningType string

const (
	WarnHeight    WarningType = "height"
	WarnDepth     WarningType = "depth"
	WarnThickness WarningType = "thickness"
	WarnMaterial  WarningType = "material"
)

// MergeWarning is an advisory conflict the caller should confirm before
// merging. Affected lists the slab IDs the message refers to.
type MergeWarning struct {
	Type     WarningType `json:"type"`
	Message  string      `json:"message"`
	Affected []int       `json:"affected"`
}

// MergeResult is the synthesized replacement for a set of merged slabs.
type MergeResult struct {
	Slab     Slab           `json:"slab"`
	Sources  []int          `json:"sources"` // IDs of the slabs to delete
	Warnings []MergeWarning `json:"warnings"`
}
