package pkg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeSpeciesTable is an in-memory SpeciesTable for tests
type fakeSpeciesTable map[uint16]SpeciesInfo

func (t fakeSpeciesTable) Species(id uint16) (SpeciesInfo, bool) {
	info, ok := t[id]
	return info, ok
}

func TestFormatByName(t *testing.T) {
	format, err := FormatByName("quetzal")
	require.NoError(t, err)
	require.False(t, format.Shuffled)
	require.False(t, format.Ciphered)

	format, err = FormatByName("")
	require.NoError(t, err)
	require.Equal(t, FormatQuetzal, format)

	format, err = FormatByName("emerald")
	require.NoError(t, err)
	require.True(t, format.Shuffled)
	require.True(t, format.Ciphered)

	_, err = FormatByName("ruby")
	require.Error(t, err)
}

func TestDisplayOTID(t *testing.T) {
	record := &BoxRecord{OTID: 0x0001E240}
	require.Equal(t, "57920", record.DisplayOTID())

	record.OTID = 42
	require.Equal(t, "00042", record.DisplayOTID())
}

func TestGenderDerivation(t *testing.T) {
	table := fakeSpeciesTable{
		10: {GenderThreshold: 127},
		11: {GenderThreshold: GenderThresholdMale},
		12: {GenderThreshold: GenderThresholdFemale},
		13: {GenderThreshold: GenderThresholdGenderless},
	}

	record := &BoxRecord{Personality: 100}
	record.Growth.Species = 10
	gender, ok := record.Gender(table)
	require.True(t, ok)
	require.Equal(t, GenderFemale, gender)

	record.Personality = 200
	gender, ok = record.Gender(table)
	require.True(t, ok)
	require.Equal(t, GenderMale, gender)

	record.Growth.Species = 11
	gender, _ = record.Gender(table)
	require.Equal(t, GenderMale, gender)

	record.Growth.Species = 12
	gender, _ = record.Gender(table)
	require.Equal(t, GenderFemale, gender)

	record.Growth.Species = 13
	gender, _ = record.Gender(table)
	require.Equal(t, Genderless, gender)

	record.Growth.Species = 99
	_, ok = record.Gender(table)
	require.False(t, ok)

	_, ok = record.Gender(nil)
	require.False(t, ok)
}

func TestAbilityDerivation(t *testing.T) {
	table := fakeSpeciesTable{
		10: {Abilities: [2]uint16{65, 34}},
	}

	record := &BoxRecord{}
	record.Growth.Species = 10

	ability, ok := record.Ability(table)
	require.True(t, ok)
	require.Equal(t, uint16(65), ability)

	record.Misc.AbilityNum = 1
	ability, _ = record.Ability(table)
	require.Equal(t, uint16(34), ability)

	record.Growth.Species = 99
	_, ok = record.Ability(table)
	require.False(t, ok)

	_, ok = record.Ability(nil)
	require.False(t, ok)
}

func TestGenderString(t *testing.T) {
	require.Equal(t, "male", GenderMale.String())
	require.Equal(t, "female", GenderFemale.String())
	require.Equal(t, "genderless", Genderless.String())
}
