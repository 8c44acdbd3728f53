package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/blastplan/internal/model"
)

func TestDefaultInventoryPath(t *testing.T) {
	path := DefaultInventoryPath()
	if filepath.Base(path) != "inventory.json" {
		t.Errorf("expected filename inventory.json, got %s", filepath.Base(path))
	}
	dir := filepath.Base(filepath.Dir(path))
	if dir != ".blastplan" {
		t.Errorf("expected parent dir .blastplan, got %s", dir)
	}
}

func TestSaveAndLoadInventory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test_inventory.json")

	inv := model.Inventory{
		Explosives: []model.ExplosiveProduct{
			model.NewExplosiveProduct("Site emulsion", model.Emulsion, 1.25, 2.4),
		},
		Bits: []model.DrillBit{
			model.NewDrillBit("127mm DTH", 127),
		},
	}

	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("inventory file was not created")
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}

	if len(loaded.Explosives) != 1 {
		t.Fatalf("expected 1 explosive, got %d", len(loaded.Explosives))
	}
	if loaded.Explosives[0].Type != model.Emulsion {
		t.Errorf("expected type Emulsion, got %v", loaded.Explosives[0].Type)
	}
	if loaded.Explosives[0].Density != 1.25 {
		t.Errorf("expected density 1.25, got %f", loaded.Explosives[0].Density)
	}
	if len(loaded.Bits) != 1 {
		t.Fatalf("expected 1 bit, got %d", len(loaded.Bits))
	}
	if loaded.Bits[0].DiameterMM != 127 {
		t.Errorf("expected diameter 127, got %f", loaded.Bits[0].DiameterMM)
	}
}

func TestLoadInventoryCreatesDefault(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "subdir", "inventory.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}

	defaults := model.DefaultInventory()
	if len(inv.Explosives) != len(defaults.Explosives) {
		t.Errorf("expected %d default explosives, got %d", len(defaults.Explosives), len(inv.Explosives))
	}
	if len(inv.Bits) != len(defaults.Bits) {
		t.Errorf("expected %d default bits, got %d", len(defaults.Bits), len(inv.Bits))
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("default inventory file was not created")
	}
}

func TestLoadInventoryInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{{{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadInventory(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestImportInventoryMergesWithoutDuplicates(t *testing.T) {
	tmpDir := t.TempDir()
	existing := model.DefaultInventory()

	imported := model.Inventory{
		Explosives: []model.ExplosiveProduct{
			existing.Explosives[0],
			model.NewExplosiveProduct("Packaged emulsion", model.Emulsion, 1.2, 3.1),
		},
		Bits: []model.DrillBit{
			existing.Bits[0],
			model.NewDrillBit("165mm DTH", 165),
		},
	}
	data, err := json.Marshal(imported)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(tmpDir, "shared.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	merged, err := ImportInventory(path, existing)
	if err != nil {
		t.Fatalf("ImportInventory failed: %v", err)
	}

	if len(merged.Explosives) != len(existing.Explosives)+1 {
		t.Errorf("expected %d explosives, got %d", len(existing.Explosives)+1, len(merged.Explosives))
	}
	if len(merged.Bits) != len(existing.Bits)+1 {
		t.Errorf("expected %d bits, got %d", len(existing.Bits)+1, len(merged.Bits))
	}
	if merged.FindExplosiveByName("Packaged emulsion") == nil {
		t.Error("imported explosive not found after merge")
	}
}

func TestImportInventoryMissingFile(t *testing.T) {
	existing := model.DefaultInventory()
	result, err := ImportInventory(filepath.Join(t.TempDir(), "none.json"), existing)
	if err == nil {
		t.Error("expected error for missing file")
	}
	if len(result.Explosives) != len(existing.Explosives) {
		t.Error("existing inventory should be returned unchanged on error")
	}
}
