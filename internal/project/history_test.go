package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/blastplan/internal/model"
)

func TestLoadRecentMissingFile(t *testing.T) {
	recent, err := LoadRecent(filepath.Join(t.TempDir(), "recent.json"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if recent.Len() != 0 {
		t.Errorf("expected empty list, got %d items", recent.Len())
	}
	if recent.MaxItems != 5 {
		t.Errorf("expected MaxItems=5, got %d", recent.MaxItems)
	}
}

func TestRecordDesignRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent.json")

	for i := 0; i < 7; i++ {
		in := model.DefaultInputs()
		in.Geometry.Length = float64(20 + i)
		label, err := RecordDesign(path, model.NewDesignSnapshot(in, map[string]any{"num_holes": i}))
		if err != nil {
			t.Fatalf("RecordDesign failed: %v", err)
		}
		if label != "Project 1" {
			t.Errorf("label = %q, want the newest entry, Project 1", label)
		}
	}

	recent, err := LoadRecent(path)
	if err != nil {
		t.Fatalf("LoadRecent failed: %v", err)
	}
	if recent.Len() != 5 {
		t.Fatalf("expected 5 items, got %d", recent.Len())
	}
	newest, _ := recent.Get(0)
	if newest.Inputs.Geometry.Length != 26 {
		t.Errorf("expected newest length 26, got %f", newest.Inputs.Geometry.Length)
	}
	oldest, _ := recent.Get(4)
	if oldest.Inputs.Geometry.Length != 22 {
		t.Errorf("expected oldest length 22, got %f", oldest.Inputs.Geometry.Length)
	}
}

func TestLoadRecentInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent.json")
	if err := os.WriteFile(path, []byte("[]x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRecent(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
