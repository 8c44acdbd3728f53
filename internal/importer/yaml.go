package importer

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/blastplan/internal/model"
)

// DesignFileName is the design file looked up in a project directory.
const DesignFileName = "blast.yaml"

// ParseDesign decodes a YAML design. Fields missing from the document keep
// the values of model.DefaultInputs, except that naming an explosive or a
// pattern without the matching auto key turns that recommendation off. The
// result is normalized; each adjustment is returned as a note.
func ParseDesign(data []byte) (model.BlastDesignInputs, []string, error) {
	in := model.DefaultInputs()
	if err := yaml.Unmarshal(data, &in); err != nil {
		return model.BlastDesignInputs{}, nil, fmt.Errorf("parsing design YAML: %w", err)
	}

	var keys explicitChoices
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return model.BlastDesignInputs{}, nil, fmt.Errorf("parsing design YAML: %w", err)
	}
	if keys.Explosive != nil && keys.AutoExplosive == nil {
		in.AutoExplosive = false
	}
	if keys.Pattern != nil && keys.AutoPattern == nil {
		in.AutoPattern = false
	}

	normalized, notes := in.Normalize()
	return normalized, notes, nil
}

// explicitChoices records which selection keys a design document sets.
type explicitChoices struct {
	AutoExplosive *bool      `yaml:"auto_explosive"`
	Explosive     *yaml.Node `yaml:"explosive"`
	AutoPattern   *bool      `yaml:"auto_pattern"`
	Pattern       *yaml.Node `yaml:"pattern"`
}

// LoadDesign reads a design from a YAML file, or from blast.yaml when path
// is a directory.
func LoadDesign(path string) (model.BlastDesignInputs, []string, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DesignFileName)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.BlastDesignInputs{}, nil, fmt.Errorf("reading design file: %w", err)
	}
	return ParseDesign(data)
}

// SaveDesign writes a design as YAML.
func SaveDesign(path string, in model.BlastDesignInputs) error {
	data, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding design YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing design file: %w", err)
	}
	return nil
}
