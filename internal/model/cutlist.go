package model

import (
	"strings"

	"github.com/google/uuid"
)

// Grain represents the grain direction constraint for a part.
type Grain int

const (
	GrainNone       Grain = iota // No grain constraint, can rotate freely
	GrainHorizontal              // Grain runs along the width
	GrainVertical                // Grain runs along the height
)

func (g Grain) String() string {
	switch g {
	case GrainHorizontal:
		return "Horizontal"
	case GrainVertical:
		return "Vertical"
	default:
		return "None"
	}
}

// EdgeBanding marks which edges of a flat part receive banding tape.
type EdgeBanding struct {
	Top    bool `json:"top" yaml:"top"`
	Bottom bool `json:"bottom" yaml:"bottom"`
	Left   bool `json:"left" yaml:"left"`
	Right  bool `json:"right" yaml:"right"`
}

// AllEdges bands every edge, as used for doors and drawer fronts.
var AllEdges = EdgeBanding{Top: true, Bottom: true, Left: true, Right: true}

// HasAny reports whether at least one edge is banded.
func (e EdgeBanding) HasAny() bool {
	return e.Top || e.Bottom || e.Left || e.Right
}

// EdgeCount returns the number of banded edges.
func (e EdgeBanding) EdgeCount() int {
	n := 0
	for _, b := range []bool{e.Top, e.Bottom, e.Left, e.Right} {
		if b {
			n++
		}
	}
	return n
}

// LinearLength returns the banding length for one piece of size w x h.
// Top and bottom run along the width, left and right along the height.
func (e EdgeBanding) LinearLength(w, h float64) float64 {
	var total float64
	if e.Top {
		total += w
	}
	if e.Bottom {
		total += w
	}
	if e.Left {
		total += h
	}
	if e.Right {
		total += h
	}
	return total
}

func (e EdgeBanding) String() string {
	var edges []string
	if e.Top {
		edges = append(edges, "T")
	}
	if e.Bottom {
		edges = append(edges, "B")
	}
	if e.Left {
		edges = append(edges, "L")
	}
	if e.Right {
		edges = append(edges, "R")
	}
	if len(edges) == 0 {
		return "-"
	}
	return strings.Join(edges, "+")
}

// Part is one line of a cut list: a flat board to cut from stock sheets.
type Part struct {
	ID          string      `json:"id"`
	Label       string      `json:"label"`
	Role        PanelRole   `json:"role,omitempty"`
	Cabinet     string      `json:"cabinet"`   // Label of the owning cabinet
	Width       float64     `json:"width"`     // mm, longest face dimension
	Height      float64     `json:"height"`    // mm, shorter face dimension
	Thickness   float64     `json:"thickness"` // mm
	Quantity    int         `json:"quantity"`
	Grain       Grain       `json:"grain"`
	Material    string      `json:"material"`
	EdgeBanding EdgeBanding `json:"edge_banding"`
}

func NewPart(label string, w, h float64, qty int) Part {
	return Part{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Width:    w,
		Height:   h,
		Quantity: qty,
		Grain:    GrainNone,
	}
}

// Area returns the face area of a single piece in square mm.
func (p Part) Area() float64 {
	return p.Width * p.Height
}
