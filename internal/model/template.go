package model

import (
	"time"

	"github.com/google/uuid"
)

// DesignTemplate is a named, reusable set of design inputs (a typical bench
// of a quarry, for instance). Results are never stored in a template.
type DesignTemplate struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
	Inputs      BlastDesignInputs `json:"inputs"`
}

// NewDesignTemplate creates a template from the given inputs.
func NewDesignTemplate(name, description string, inputs BlastDesignInputs) DesignTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return DesignTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Inputs:      inputs,
	}
}

// ToInputs returns the template inputs renamed for a new design.
func (t DesignTemplate) ToInputs(designName string) BlastDesignInputs {
	in := t.Inputs
	in.Name = designName
	return in
}

// TemplateStore holds a collection of design templates.
type TemplateStore struct {
	Templates []DesignTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []DesignTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t DesignTemplate) {
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
func (ts *TemplateStore) FindByID(id string) *DesignTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *DesignTemplate {
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
