package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/blastplan/internal/model"
)

// DefaultInventoryPath returns the default file path for the inventory file.
// This is located at ~/.blastplan/inventory.json.
func DefaultInventoryPath() string {
	return filepath.Join(DefaultConfigDir(), "inventory.json")
}

// SaveInventory writes the inventory to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveInventory(path string, inv model.Inventory) error {
	return writeJSON(path, inv)
}

// LoadInventory reads the inventory from the specified JSON file.
// If the file does not exist, it returns the default inventory and saves it.
func LoadInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			inv := model.DefaultInventory()
			if saveErr := SaveInventory(path, inv); saveErr != nil {
				return inv, saveErr
			}
			return inv, nil
		}
		return model.Inventory{}, err
	}
	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.Inventory{}, err
	}
	if inv.Explosives == nil {
		inv.Explosives = []model.ExplosiveProduct{}
	}
	if inv.Bits == nil {
		inv.Bits = []model.DrillBit{}
	}
	return inv, nil
}

// LoadOrCreateInventory loads the inventory from the default path.
// If the file does not exist, it creates one with default entries.
func LoadOrCreateInventory() (model.Inventory, string, error) {
	path := DefaultInventoryPath()
	inv, err := LoadInventory(path)
	return inv, path, err
}

// ExportInventory exports the inventory to a user-specified JSON file.
func ExportInventory(path string, inv model.Inventory) error {
	return SaveInventory(path, inv)
}

// ImportInventory imports an inventory from a user-specified JSON file,
// merging it with the existing inventory. Duplicate IDs are skipped.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.Inventory
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}

	explosiveIDs := make(map[string]bool, len(existing.Explosives))
	for _, p := range existing.Explosives {
		explosiveIDs[p.ID] = true
	}
	bitIDs := make(map[string]bool, len(existing.Bits))
	for _, b := range existing.Bits {
		bitIDs[b.ID] = true
	}

	for _, p := range imported.Explosives {
		if !explosiveIDs[p.ID] {
			existing.Explosives = append(existing.Explosives, p)
			explosiveIDs[p.ID] = true
		}
	}
	for _, b := range imported.Bits {
		if !bitIDs[b.ID] {
			existing.Bits = append(existing.Bits, b)
			bitIDs[b.ID] = true
		}
	}

	return existing, nil
}
