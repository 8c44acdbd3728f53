package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/blastplan/internal/model"
)

// DefaultHistoryPath returns the file holding the recent designs,
// ~/.blastplan/recent.json.
func DefaultHistoryPath() string {
	return filepath.Join(DefaultConfigDir(), "recent.json")
}

// SaveRecent writes the recent design list to a JSON file.
func SaveRecent(path string, recent *model.RecentConfigs) error {
	if err := writeJSON(path, recent); err != nil {
		return fmt.Errorf("saving recent designs: %w", err)
	}
	return nil
}

// LoadRecent reads the recent design list. A missing file yields an empty
// list holding the default number of entries.
func LoadRecent(path string) (*model.RecentConfigs, error) {
	recent := model.NewRecentConfigs()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return recent, nil
		}
		return nil, fmt.Errorf("reading recent designs: %w", err)
	}
	if err := json.Unmarshal(data, recent); err != nil {
		return nil, fmt.Errorf("parsing recent designs: %w", err)
	}
	if recent.Items == nil {
		recent.Items = []model.DesignSnapshot{}
	}
	return recent, nil
}

// RecordDesign loads the list at path, adds the snapshot and saves it again.
// It returns the display name of the stored configuration.
func RecordDesign(path string, s model.DesignSnapshot) (string, error) {
	recent, err := LoadRecent(path)
	if err != nil {
		return "", err
	}
	label := recent.Add(s)
	if err := SaveRecent(path, recent); err != nil {
		return "", err
	}
	return label, nil
}
