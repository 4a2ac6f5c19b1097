package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/cabinetry/internal/model"
	"gopkg.in/yaml.v3"
)

// Document formats accepted for room files, chosen by file extension.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatForPath returns the document format for a room file path.
func FormatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported room file extension %q (use .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// SaveRoom writes a room document as JSON or YAML depending on the extension.
func SaveRoom(path string, r model.Room) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	var data []byte
	if format == FormatYAML {
		data, err = yaml.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create room directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write room file: %w", err)
	}
	return nil
}

// LoadRoom reads a room document and repairs anything an older or
// hand-written file may have left out.
func LoadRoom(path string) (model.Room, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return model.Room{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Room{}, fmt.Errorf("failed to read room file: %w", err)
	}

	// Keys the document leaves out keep their defaults.
	r := model.Room{Settings: model.DefaultSettings()}
	if format == FormatYAML {
		err = yaml.Unmarshal(data, &r)
	} else {
		err = json.Unmarshal(data, &r)
	}
	if err != nil {
		return model.Room{}, fmt.Errorf("failed to parse room file: %w", err)
	}

	if err := NormalizeRoom(&r); err != nil {
		return model.Room{}, fmt.Errorf("invalid room file %s: %w", path, err)
	}
	return r, nil
}

// NormalizeRoom fills nil collections, restores default settings when the
// room carries none at all, keeps panel and back thickness in step and repairs
// the slab ID counter. Unknown cabinet types and broken views are errors.
func NormalizeRoom(r *model.Room) error {
	if r.Settings == (model.Settings{}) {
		r.Settings = model.DefaultSettings()
	}
	if r.Cabinets == nil {
		r.Cabinets = []model.Cabinet{}
	}
	if r.Benchtops == nil {
		r.Benchtops = []model.Slab{}
	}
	if r.Kickers == nil {
		r.Kickers = []model.Slab{}
	}
	if r.Views.Views == nil {
		r.Views = model.NewViewSet()
	}

	for i := range r.Cabinets {
		c := &r.Cabinets[i]
		if !c.Type.Valid() {
			return fmt.Errorf("cabinet %q has unknown type %q", c.Label, c.Type)
		}
		c.Config.Material.Normalize()
		if c.Config.DrawerHeights == nil {
			c.Config.DrawerHeights = []float64{}
		}
	}

	maxID := 0
	for _, s := range append(append([]model.Slab{}, r.Benchtops...), r.Kickers...) {
		if s.ID > maxID {
			maxID = s.ID
		}
	}
	if r.NextSlabID <= maxID {
		r.NextSlabID = maxID + 1
	}

	return r.Views.Validate()
}
