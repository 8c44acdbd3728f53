package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/blastplan/internal/engine"
)

func TestExportHoleTags_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tags.pdf")

	if err := ExportHoleTags(path, buildTestResult(t)); err != nil {
		t.Fatalf("ExportHoleTags returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
}

func TestExportHoleTags_EmptyLayout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty_tags.pdf")

	if err := ExportHoleTags(path, engine.Result{}); err == nil {
		t.Fatal("expected error for empty layout, got nil")
	}
}

func TestExportHoleTags_ManyHoles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "many_tags.pdf")

	r := buildLargeResult(t)
	if r.Layout.HoleCount() <= labelsPerPage {
		t.Fatalf("expected more than %d holes, got %d", labelsPerPage, r.Layout.HoleCount())
	}

	if err := ExportHoleTags(path, r); err != nil {
		t.Fatalf("ExportHoleTags returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
}

func TestCollectHoleTags(t *testing.T) {
	r := buildTestResult(t)
	tags := CollectHoleTags(r)

	if len(tags) != r.Layout.HoleCount() {
		t.Fatalf("expected %d tags, got %d", r.Layout.HoleCount(), len(tags))
	}
	for i, tag := range tags {
		if tag.Number != i+1 {
			t.Errorf("tag %d: number = %d, want %d", i, tag.Number, i+1)
		}
		if tag.X != r.Layout.Holes[i].X || tag.Y != r.Layout.Holes[i].Y {
			t.Errorf("tag %d: position mismatch", i)
		}
	}
	if tags[0].Design != "North Pit Bench 3" {
		t.Errorf("design = %q", tags[0].Design)
	}
	if tags[0].Explosive != r.Explosive.String() {
		t.Errorf("explosive = %q, want %q", tags[0].Explosive, r.Explosive)
	}
}

func TestHoleTag_JSONRoundTrip(t *testing.T) {
	tag := HoleTag{Design: "Bench 1", Number: 7, X: 2.5, Y: 8.1, Depth: 12.26, Diameter: 200, Charge: 176.4, Explosive: "ANFO"}

	data, err := json.Marshal(tag)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var decoded HoleTag
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if decoded != tag {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, tag)
	}
}
