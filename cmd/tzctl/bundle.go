package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ngrash/go-tzrules/internal/zonedecode"
	"github.com/ngrash/go-tzrules/tzzone"
)

// bundleEntry names one zone in a YAML zone-bundle: an id plus the path
// to whichever on-disk form (TZif bytes, registry YAML, or textual codec)
// holds its rule data.
type bundleEntry struct {
	ID   string `yaml:"id"`
	File string `yaml:"file"`
}

type bundleFile struct {
	Zones []bundleEntry `yaml:"zones"`
}

// loadBundle reads a YAML zone-bundle manifest and decodes every listed
// zone in one pass, resolving File relative to the manifest's directory.
func loadBundle(path string) ([]*tzzone.Zone, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bundle %s: %w", path, err)
	}
	var bf bundleFile
	if err := yaml.Unmarshal(raw, &bf); err != nil {
		return nil, fmt.Errorf("parsing bundle %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	zones := make([]*tzzone.Zone, 0, len(bf.Zones))
	for _, e := range bf.Zones {
		if e.ID == "" || e.File == "" {
			return nil, fmt.Errorf("bundle entry missing id or file: %+v", e)
		}
		content, err := os.ReadFile(filepath.Join(dir, e.File))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.File, err)
		}
		z, err := zonedecode.Decode(e.ID, content)
		if err != nil {
			return nil, fmt.Errorf("decoding %s (%s): %w", e.ID, e.File, err)
		}
		zones = append(zones, z)
	}
	return zones, nil
}
