package taxonomy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CatalogueEntry names one skill or domain node the Resolver's exact-match
// tier should recognize directly, by id and any number of display-name
// aliases.
type CatalogueEntry struct {
	ID      string   `yaml:"id"`
	Aliases []string `yaml:"aliases"`
}

// catalogueFile is the on-disk shape LoadCatalogue parses, following the
// config package's own file-then-env precedence convention.
type catalogueFile struct {
	Skills  []CatalogueEntry `yaml:"skills"`
	Domains []CatalogueEntry `yaml:"domains"`
}

// LoadCatalogue reads path as YAML and flattens it into the lowercased
// alias/id -> canonical id map Resolver's exact-match tier consumes. An
// empty path returns an empty map rather than an error, since a fresh
// deployment may rely entirely on the GraphStore's synonym table and
// fuzzy matching until a catalogue is curated.
func LoadCatalogue(path string) (map[string]string, error) {
	known := make(map[string]string)
	if path == "" {
		return known, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: read catalogue %s: %w", path, err)
	}
	var file catalogueFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("taxonomy: parse catalogue %s: %w", path, err)
	}

	addEntries(known, file.Skills)
	addEntries(known, file.Domains)
	return known, nil
}

func addEntries(known map[string]string, entries []CatalogueEntry) {
	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		known[strings.ToLower(e.ID)] = e.ID
		for _, alias := range e.Aliases {
			known[strings.ToLower(alias)] = e.ID
		}
	}
}
