package model

import (
	"time"

	"github.com/google/uuid"
)

// CabinetTemplate is a reusable cabinet preset: type, size and feature
// selections, without an identity in any room.
type CabinetTemplate struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
	Type        CabinetType   `json:"type"`
	Dimensions  Dimensions    `json:"dimensions"`
	Config      CarcassConfig `json:"config"`
}

// NewCabinetTemplate captures a cabinet as a template. The config is deep
// copied so later edits to the cabinet do not leak into the template.
func NewCabinetTemplate(name, description string, c Cabinet) CabinetTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return CabinetTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Type:        c.Type,
		Dimensions:  c.Dimensions,
		Config:      c.Config.Clone(),
	}
}

// ToCabinet creates a new cabinet from this template with a fresh ID.
func (t CabinetTemplate) ToCabinet(label string) Cabinet {
	d := t.Dimensions
	return NewCabinet(label, t.Type, d.Width, d.Height, d.Depth, t.Config.Clone())
}

// TemplateStore holds a collection of cabinet templates.
type TemplateStore struct {
	Templates []CabinetTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []CabinetTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t CabinetTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *CabinetTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *CabinetTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns the template names in store order.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}
