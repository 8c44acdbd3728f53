package project

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/blastplan/internal/model"
)

func TestSaveAndLoadTemplates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.json")

	inputs := model.DefaultInputs()
	inputs.Geometry.BenchHeight = 15
	inputs.Pattern = model.PatternStaggered
	inputs.AutoPattern = false

	store := model.NewTemplateStore()
	store.Add(model.NewDesignTemplate("Limestone bench", "Typical 15m bench", inputs))

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates error: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates error: %v", err)
	}

	if len(loaded.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(loaded.Templates))
	}
	got := loaded.Templates[0]
	if got.Name != "Limestone bench" {
		t.Errorf("expected 'Limestone bench', got %q", got.Name)
	}
	if got.Inputs.Geometry.BenchHeight != 15 {
		t.Errorf("expected bench height 15, got %f", got.Inputs.Geometry.BenchHeight)
	}
	if got.Inputs.Pattern != model.PatternStaggered {
		t.Errorf("expected staggered pattern, got %v", got.Inputs.Pattern)
	}
}

func TestLoadTemplates_NotFound(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.json")

	store, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if len(store.Templates) != 0 {
		t.Errorf("expected empty store, got %d templates", len(store.Templates))
	}
}

func TestDefaultTemplatePath(t *testing.T) {
	if filepath.Base(DefaultTemplatePath()) != "templates.json" {
		t.Errorf("unexpected template path %s", DefaultTemplatePath())
	}
}
