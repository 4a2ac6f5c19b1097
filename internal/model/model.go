package model

import (
	"fmt"

	"github.com/google/uuid"
)

// CabinetType selects which structural rules apply to a carcass.
type CabinetType string

const (
	CabinetTop  CabinetType = "top"  // Wall-hung, no legs, doors may overhang
	CabinetBase CabinetType = "base" // Floor-standing on legs, carries a base rail
	CabinetTall CabinetType = "tall" // Floor-standing on legs, full height
)

// CabinetTypes lists every supported cabinet type in display order.
var CabinetTypes = []CabinetType{CabinetBase, CabinetTop, CabinetTall}

func (t CabinetType) String() string {
	return string(t)
}

// Valid reports whether t is one of the known cabinet types.
func (t CabinetType) Valid() bool {
	switch t {
	case CabinetTop, CabinetBase, CabinetTall:
		return true
	}
	return false
}

// HasLegs reports whether the cabinet type stands on legs above a kicker.
func (t CabinetType) HasLegs() bool {
	return t == CabinetBase || t == CabinetTall
}

// ParseCabinetType converts a user supplied name into a CabinetType.
func ParseCabinetType(s string) (CabinetType, error) {
	t := CabinetType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown cabinet type %q", s)
	}
	return t, nil
}

// Vec3 is a point or offset in millimetres.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Add returns the component-wise sum of v and o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Dimensions is the outer bounding box of one carcass in mm.
// It is always replaced as a whole, never patched field by field.
type Dimensions struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	Depth  float64 `json:"depth" yaml:"depth"`
}

// Material describes the board a carcass is built from.
// BackThickness always mirrors PanelThickness; use the setters to change either.
type Material struct {
	PanelThickness float64 `json:"panelThickness" yaml:"panelThickness"`
	BackThickness  float64 `json:"backThickness" yaml:"backThickness"`
	Colour         string  `json:"colour" yaml:"colour"`
	Opacity        float64 `json:"opacity" yaml:"opacity"`
	Transparent    bool    `json:"transparent" yaml:"transparent"`
}

// NewMaterial returns an opaque material of the given thickness and colour.
func NewMaterial(thickness float64, colour string) Material {
	return Material{
		PanelThickness: thickness,
		BackThickness:  thickness,
		Colour:         colour,
		Opacity:        1,
	}
}

// SetPanelThickness updates the panel thickness and keeps the back in step.
func (m *Material) SetPanelThickness(t float64) {
	m.PanelThickness = t
	m.BackThickness = t
}

// SetBackThickness updates the back thickness and keeps the panels in step.
func (m *Material) SetBackThickness(t float64) {
	m.PanelThickness = t
	m.BackThickness = t
}

// Normalize repairs a material loaded from a document where the two
// thickness fields disagree. The panel thickness wins.
func (m *Material) Normalize() {
	if m.PanelThickness <= 0 && m.BackThickness > 0 {
		m.PanelThickness = m.BackThickness
	}
	m.BackThickness = m.PanelThickness
}

// Clone returns an independent copy for callers that need to diverge
// from the material owned by a config.
func (m Material) Clone() Material {
	return m
}

// CarcassConfig holds every user selection for one cabinet besides its size.
type CarcassConfig struct {
	Material       Material  `json:"material" yaml:"material"`
	ShelfCount     int       `json:"shelfCount" yaml:"shelfCount"`
	ShelfSpacing   float64   `json:"shelfSpacing" yaml:"shelfSpacing"`
	DoorEnabled    bool      `json:"doorEnabled" yaml:"doorEnabled"`
	DoorCount      int       `json:"doorCount" yaml:"doorCount"`
	DoorThickness  float64   `json:"doorThickness" yaml:"doorThickness"`
	OverhangDoor   bool      `json:"overhangDoor" yaml:"overhangDoor"`
	DrawerEnabled  bool      `json:"drawerEnabled" yaml:"drawerEnabled"`
	DrawerQuantity int       `json:"drawerQuantity" yaml:"drawerQuantity"`
	DrawerHeights  []float64 `json:"drawerHeights" yaml:"drawerHeights"`
}

// DefaultCarcassConfig returns a plain carcass: no shelves, doors or drawers.
func DefaultCarcassConfig(s Settings) CarcassConfig {
	return CarcassConfig{
		Material:      NewMaterial(s.DefaultPanelThickness, "white"),
		DoorCount:     1,
		DoorThickness: s.DefaultDoorThickness,
		DrawerHeights: []float64{},
	}
}

// Clone returns a deep copy of the config, including the drawer heights.
func (c CarcassConfig) Clone() CarcassConfig {
	cp := c
	cp.Material = c.Material.Clone()
	cp.DrawerHeights = append([]float64{}, c.DrawerHeights...)
	return cp
}

// Cabinet is one configured unit in a room.
type Cabinet struct {
	ID         string        `json:"id" yaml:"id"`
	Label      string        `json:"label" yaml:"label"`
	Type       CabinetType   `json:"type" yaml:"type"`
	Dimensions Dimensions    `json:"dimensions" yaml:"dimensions"`
	Config     CarcassConfig `json:"config" yaml:"config"`
	Position   Vec3          `json:"position" yaml:"position"` // Room position of the carcass back-left-bottom corner
}

func NewCabinet(label string, t CabinetType, w, h, d float64, cfg CarcassConfig) Cabinet {
	return Cabinet{
		ID:         uuid.New().String()[:8],
		Label:      label,
		Type:       t,
		Dimensions: Dimensions{Width: w, Height: h, Depth: d},
		Config:     cfg,
	}
}

// PanelRole names the structural purpose of a derived panel.
type PanelRole string

const (
	RoleLeftEnd  PanelRole = "left_end"
	RoleRightEnd PanelRole = "right_end"
	RoleBack     PanelRole = "back"
	RoleBottom   PanelRole = "bottom"
	RoleTop      PanelRole = "top"
	RoleShelf    PanelRole = "shelf"
	RoleLeg      PanelRole = "leg"
	RoleDoor     PanelRole = "door"
	RoleDrawer   PanelRole = "drawer"
)

// Shape is the primitive a renderer should build for a panel.
type Shape string

const (
	ShapeBox      Shape = "box"
	ShapeCylinder Shape = "cylinder"
)

// Panel is a derived part descriptor. Sizes are extents along X (Width),
// Y (Height) and Z (Depth); Position is the part centre in carcass-local
// coordinates with the origin at the back-left-bottom corner.
type Panel struct {
	Role     PanelRole `json:"role" yaml:"role"`
	Index    int       `json:"index" yaml:"index"` // Ordinal among panels of the same role
	Shape    Shape     `json:"shape" yaml:"shape"`
	Width    float64   `json:"width" yaml:"width"`
	Height   float64   `json:"height" yaml:"height"`
	Depth    float64   `json:"depth" yaml:"depth"`
	Position Vec3      `json:"position" yaml:"position"`
}

// Name returns a human-readable panel name, e.g. "Shelf 2".
func (p Panel) Name() string {
	switch p.Role {
	case RoleLeftEnd:
		return "Left End"
	case RoleRightEnd:
		return "Right End"
	case RoleBack:
		return "Back"
	case RoleBottom:
		return "Bottom"
	case RoleTop:
		return "Top"
	case RoleShelf:
		return fmt.Sprintf("Shelf %d", p.Index+1)
	case RoleLeg:
		return fmt.Sprintf("Leg %d", p.Index+1)
	case RoleDoor:
		return fmt.Sprintf("Door %d", p.Index+1)
	case RoleDrawer:
		return fmt.Sprintf("Drawer %d", p.Index+1)
	default:
		return string(p.Role)
	}
}

// Min returns the corner of the panel closest to the origin.
func (p Panel) Min() Vec3 {
	return Vec3{X: p.Position.X - p.Width/2, Y: p.Position.Y - p.Height/2, Z: p.Position.Z - p.Depth/2}
}

// Max returns the corner of the panel farthest from the origin.
func (p Panel) Max() Vec3 {
	return Vec3{X: p.Position.X + p.Width/2, Y: p.Position.Y + p.Height/2, Z: p.Position.Z + p.Depth/2}
}

// Carcass holds the structural panels of one cabinet.
type Carcass struct {
	LeftEnd       Panel   `json:"leftEnd" yaml:"leftEnd"`
	RightEnd      Panel   `json:"rightEnd" yaml:"rightEnd"`
	Back          Panel   `json:"back" yaml:"back"`
	Bottom        Panel   `json:"bottom" yaml:"bottom"`
	Top           Panel   `json:"top" yaml:"top"`
	BaseRailDepth float64 `json:"baseRailDepth" yaml:"baseRailDepth"` // Non-zero for base cabinets only
	Shelves       []Panel `json:"shelves" yaml:"shelves"`
	Legs          []Panel `json:"legs" yaml:"legs"`
}

// Assembly is the complete derived geometry of one cabinet.
type Assembly struct {
	CabinetID    string      `json:"cabinetId" yaml:"cabinetId"`
	Label        string      `json:"label" yaml:"label"`
	Type         CabinetType `json:"type" yaml:"type"`
	Material     Material    `json:"material" yaml:"material"`
	GroupOffsetY float64     `json:"groupOffsetY" yaml:"groupOffsetY"` // Vertical lift of the whole cabinet group
	Carcass      Carcass     `json:"carcass" yaml:"carcass"`
	Doors        []Panel     `json:"doors" yaml:"doors"`
	Drawers      []Panel     `json:"drawers" yaml:"drawers"`
}

// Panels flattens every part of the assembly in a stable order:
// ends, back, bottom, top, shelves, legs, doors, drawers.
func (a Assembly) Panels() []Panel {
	c := a.Carcass
	panels := []Panel{c.LeftEnd, c.RightEnd, c.Back, c.Bottom, c.Top}
	panels = append(panels, c.Shelves...)
	panels = append(panels, c.Legs...)
	panels = append(panels, a.Doors...)
	panels = append(panels, a.Drawers...)
	return panels
}
