package engine

import "errors"

var (
	// ErrInvalidDimensions reports carcass or part dimensions that would
	// produce zero or negative panels.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrInvalidCardinality reports a door count, drawer quantity or shelf
	// count outside its supported range.
	ErrInvalidCardinality = errors.New("invalid cardinality")

	// ErrUnknownCabinetType reports a cabinet type the resolvers do not know.
	ErrUnknownCabinetType = errors.New("unknown cabinet type")

	// ErrMixedCategories reports a merge request mixing benchtops and kickers.
	ErrMixedCategories = errors.New("cannot merge slabs of different categories")
)
