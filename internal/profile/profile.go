// Package profile loads the profile document and the optional writing feed
// it points at.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/seenimoa/folio/pkg/models"
)

// ErrNotFound is returned when the profile file does not exist.
var ErrNotFound = errors.New("profile not found")

// Load reads and parses the profile at path. The format follows the file
// extension: .yaml/.yml use YAML, anything else JSON.
func Load(path string) (*models.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	p, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes profile bytes. ext selects the format (".json", ".yaml", ".yml").
// Sections the site does not use are ignored in either format.
func Parse(data []byte, ext string) (*models.Profile, error) {
	var p models.Profile
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	}
	if strings.TrimSpace(p.PersonalInfo.Name) == "" {
		return nil, errors.New("personalInfo.name is required")
	}
	return &p, nil
}
