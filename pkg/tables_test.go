package pkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNatureName(t *testing.T) {
	require.Equal(t, "Hardy", NatureName(0))
	require.Equal(t, "Adamant", NatureName(3))
	require.Equal(t, "Quirky", NatureName(24))
	require.Equal(t, "Nature 25", NatureName(25))
}

func TestNatureDerivation(t *testing.T) {
	record := &BoxRecord{Personality: 0xE4} // 228 % 25 = 3
	require.Equal(t, uint8(3), record.Nature())
	require.Equal(t, "Adamant", record.NatureName())
}

func TestMoveName(t *testing.T) {
	require.Equal(t, "---", MoveName(0))
	require.Equal(t, "Move 89", MoveName(89))
}

func TestLoadSpeciesTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "species.yaml")
	content := `208:
  name: Steelix
  gender_threshold: 127
  abilities: [69, 5]
252:
  name: Treecko
  gender_threshold: 31
  abilities: [65, 0]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := LoadSpeciesTable(path)
	require.NoError(t, err)

	info, ok := table.Species(208)
	require.True(t, ok)
	require.Equal(t, "Steelix", info.Name)
	require.Equal(t, uint8(127), info.GenderThreshold)
	require.Equal(t, [2]uint16{69, 5}, info.Abilities)

	_, ok = table.Species(1)
	require.False(t, ok)
}

func TestLoadSpeciesTableMissingFile(t *testing.T) {
	_, err := LoadSpeciesTable(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadSpeciesTableMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid: mapping"), 0o644))

	_, err := LoadSpeciesTable(path)
	require.Error(t, err)
}

func TestSpeciesNameFallback(t *testing.T) {
	require.Equal(t, "Species 208", SpeciesName(nil, 208))

	table := fakeSpeciesTable{208: {Name: "Steelix"}}
	require.Equal(t, "Steelix", SpeciesName(table, 208))
	require.Equal(t, "Species 1", SpeciesName(table, 1))
}
