package pkg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hansbonini/quetzaltools/pkg/common"
)

// NatureCount is the size of the fixed nature table
const NatureCount = 25

// natureNames is the fixed nature table indexed by personality % 25
var natureNames = [NatureCount]string{
	"Hardy", "Lonely", "Brave", "Adamant", "Naughty",
	"Bold", "Docile", "Relaxed", "Impish", "Lax",
	"Timid", "Hasty", "Serious", "Jolly", "Naive",
	"Modest", "Mild", "Quiet", "Bashful", "Rash",
	"Calm", "Gentle", "Sassy", "Careful", "Quirky",
}

// NatureName returns the display name for a nature index
func NatureName(id uint8) string {
	if int(id) < len(natureNames) {
		return natureNames[id]
	}
	return fmt.Sprintf("Nature %d", id)
}

// MoveName formats a move ID for display; move 0 is an empty slot
func MoveName(id uint16) string {
	if id == 0 {
		return "---"
	}
	return fmt.Sprintf("Move %d", id)
}

// YAMLSpeciesTable is a SpeciesTable loaded from a YAML metadata file.
// Species IDs absent from the file simply report unknown; decoding
// never depends on the table being present or complete.
type YAMLSpeciesTable struct {
	entries map[uint16]SpeciesInfo
}

// LoadSpeciesTable reads species metadata from a YAML file mapping
// species IDs to name, gender threshold and ability pair.
func LoadSpeciesTable(path string) (*YAMLSpeciesTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.WrapError(common.ErrFailedToLoadSpeciesYAML, err)
	}

	entries := make(map[uint16]SpeciesInfo)
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, common.WrapError(common.ErrFailedToLoadSpeciesYAML, err)
	}

	common.LogInfo(common.InfoSpeciesTableLoaded, len(entries), path)
	return &YAMLSpeciesTable{entries: entries}, nil
}

// Species resolves one species ID from the loaded table
func (t *YAMLSpeciesTable) Species(id uint16) (SpeciesInfo, bool) {
	info, ok := t.entries[id]
	return info, ok
}

// SpeciesName resolves a species ID to a display name, falling back to
// a numeric placeholder when no table is loaded or the ID is unknown.
func SpeciesName(table SpeciesTable, id uint16) string {
	if table != nil {
		if info, ok := table.Species(id); ok && info.Name != "" {
			return info.Name
		}
	}
	return fmt.Sprintf("Species %d", id)
}
