package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/cabinetry/internal/model"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.0.0"

// BackupData bundles the user's template store with any rooms worth keeping
// into one portable file.
type BackupData struct {
	Version   string              `json:"version"`
	CreatedAt string              `json:"created_at"`
	Templates model.TemplateStore `json:"templates"`
	Rooms     []model.Room        `json:"rooms"`
}

// ExportAllData writes templates and rooms to a single JSON file.
func ExportAllData(exportPath string, templates model.TemplateStore, rooms []model.Room) error {
	if rooms == nil {
		rooms = []model.Room{}
	}
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Templates: templates,
		Rooms:     rooms,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup file. Every room is normalized the same way
// LoadRoom does; the caller decides where to store the result.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Templates.Templates == nil {
		backup.Templates = model.NewTemplateStore()
	}
	if backup.Rooms == nil {
		backup.Rooms = []model.Room{}
	}
	for i := range backup.Rooms {
		if err := NormalizeRoom(&backup.Rooms[i]); err != nil {
			return BackupData{}, fmt.Errorf("invalid room %q in backup: %w", backup.Rooms[i].Name, err)
		}
	}
	return backup, nil
}
