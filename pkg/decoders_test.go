package pkg

import (
	"testing"

	"github.com/hansbonini/quetzaltools/pkg/common"
	"github.com/stretchr/testify/require"
)

// makePartyFixture hand-builds a 104-byte party record in the given
// format's wire form with a valid substructure checksum. Every
// variant carries the same creature so field assertions are shared.
func makePartyFixture(t *testing.T, format Format) []byte {
	t.Helper()
	layout := format.Layout
	data := make([]byte, PartyRecordSize)

	common.PutUint32At(data, OffPersonality, 0xE4)
	common.PutUint32At(data, OffOTID, 0x0001E240)
	// "STEELIX"
	copy(data[OffNickname:], []byte{0xCD, 0xCE, 0xBF, 0xBF, 0xC6, 0xC3, 0xD2, 0xFF, 0xFF, 0xFF})
	data[OffLanguage] = 2 | 5<<3 // language 2, hidden nature 5
	data[OffFlags] = 0x02        // hasSpecies
	// "GOLD"
	copy(data[OffOTName:], []byte{0xC1, 0xC9, 0xC6, 0xBE, 0xFF, 0xFF, 0xFF})
	data[OffMarkings] = 0x05
	common.PutUint16At(data, OffHPLost, 7)

	if layout.HeaderPadLen > 0 {
		// unknown header bytes, skipping the in-header current HP word
		data[layout.HeaderPad] = 0xA1
		data[layout.HeaderPad+layout.HeaderPadLen-1] = 0xA2
	}

	logical := data[layout.SubstructBase : layout.SubstructBase+SubstructBlockSize]

	growth := logical[SubstructGrowth*SubstructSize:]
	common.PutUint16At(growth, 0, 208)
	common.PutUint16At(growth, 2, 0)
	common.PutUint32At(growth, 4, 87360)
	growth[9] = 70 // friendship
	growth[10] = 4 // pokeball

	attacks := logical[SubstructAttacks*SubstructSize:]
	moves := [4]uint16{89, 231, 157, 20}
	pp := [4]uint8{10, 15, 10, 30}
	for i := 0; i < 4; i++ {
		common.PutUint16At(attacks, i*2, moves[i])
		attacks[8+i] = pp[i]
	}

	condition := logical[SubstructCondition*SubstructSize:]
	copy(condition, []byte{10, 20, 30, 0, 5, 15})

	misc := logical[SubstructMisc*SubstructSize : (SubstructMisc+1)*SubstructSize]
	misc[1] = 33 // met location
	require.NoError(t, fdMetLevel.Write(misc, 25))
	require.NoError(t, fdMetGame.Write(misc, 3))
	require.NoError(t, fdOTGender.Write(misc, 1))
	ivs := [6]uint8{31, 30, 25, 20, 15, 10}
	for i, fd := range fdIVs {
		require.NoError(t, fd.Write(misc, uint32(ivs[i])))
	}
	require.NoError(t, fdAbilityNum.Write(misc, 1))
	require.NoError(t, fdRibbons.Write(misc, 0x7))
	require.NoError(t, fdFateful.Write(misc, 1))

	common.PutUint16At(data, OffChecksum, common.SubstructChecksum(logical))

	block := append([]byte(nil), logical...)
	if format.Shuffled {
		block = ShuffleSubstructs(block, 0xE4)
	}
	if format.Ciphered {
		block = ApplyCipher(block, 0xE4^0x0001E240)
	}
	copy(data[layout.SubstructBase:], block)

	data[layout.Level] = 44
	common.PutUint16At(data, layout.CurrentHP, 0)
	common.PutUint16At(data, layout.MaxHP, 131)
	common.PutUint16At(data, layout.Attack, 92)
	common.PutUint16At(data, layout.Defense, 188)
	common.PutUint16At(data, layout.Speed, 45)
	common.PutUint16At(data, layout.SpAttack, 67)
	common.PutUint16At(data, layout.SpDefense, 71)

	return data
}

func requireFixtureFields(t *testing.T, record *BoxRecord) {
	t.Helper()
	require.Equal(t, uint32(0xE4), record.Personality)
	require.Equal(t, uint32(0x0001E240), record.OTID)
	require.Equal(t, "STEELIX", record.NicknameString())
	require.Equal(t, "GOLD", record.OTNameString())
	require.Equal(t, uint8(2), record.Language)
	require.Equal(t, uint8(5), record.HiddenNature)
	require.True(t, record.HasSpecies)
	require.False(t, record.IsBadEgg)
	require.Equal(t, uint8(0x05), record.Markings)
	require.Equal(t, uint16(7), record.HPLost)
	require.True(t, record.ChecksumValid)

	require.Equal(t, uint16(208), record.Growth.Species)
	require.Equal(t, uint32(87360), record.Growth.Experience)
	require.Equal(t, uint8(70), record.Growth.Friendship)
	require.Equal(t, [4]uint16{89, 231, 157, 20}, record.Attacks.Moves)
	require.Equal(t, [4]uint8{10, 15, 10, 30}, record.Attacks.PP)
	require.Equal(t, [6]uint8{10, 20, 30, 0, 5, 15}, record.Condition.EVs)
	require.Equal(t, uint8(33), record.Misc.MetLocation)
	require.Equal(t, uint8(25), record.Misc.MetLevel)
	require.Equal(t, uint8(3), record.Misc.MetGame)
	require.Equal(t, uint8(1), record.Misc.OTGender)
	require.Equal(t, [6]uint8{31, 30, 25, 20, 15, 10}, record.Misc.IVs)
	require.Equal(t, uint8(1), record.Misc.AbilityNum)
	require.Equal(t, uint32(0x7), record.Misc.Ribbons)
	require.True(t, record.Misc.Fateful)
	require.False(t, record.Misc.IsEgg)
}

func TestDecodeBoxQuetzal(t *testing.T) {
	data := makePartyFixture(t, FormatQuetzal)
	record, err := NewRecordDecoder(FormatQuetzal).DecodeBox(data[:LayoutQuetzal.BoxSize])
	require.NoError(t, err)
	requireFixtureFields(t, record)
	require.Equal(t, uint8(0xA1), record.HeaderUnused[0])
	require.Equal(t, uint8(0xA2), record.HeaderUnused[7])
}

func TestDecodeBoxEmerald(t *testing.T) {
	data := makePartyFixture(t, FormatEmerald)
	record, err := NewRecordDecoder(FormatEmerald).DecodeBox(data[:LayoutVanilla.BoxSize])
	require.NoError(t, err)
	requireFixtureFields(t, record)
}

// TestDecodePartyQuetzalGeometry pins the quetzal layout to the
// widened record geometry: species at 0x28, level at 0x58, max HP at
// 0x5A and current HP inside the header at 0x23.
func TestDecodePartyQuetzalGeometry(t *testing.T) {
	data := make([]byte, PartyRecordSize)
	common.PutUint32At(data, 0x00, 0xE4) // personality
	common.PutUint16At(data, 0x23, 0)    // currentHp
	common.PutUint16At(data, 0x28, 208)  // speciesId
	common.PutUint16At(data, 0x34, 89)   // move1
	data[0x40] = 10                      // hpEV
	data[0x58] = 44                      // level
	common.PutUint16At(data, 0x5A, 131)  // maxHp
	common.PutUint16At(data, 0x5C, 92)   // attack
	block := data[0x28 : 0x28+SubstructBlockSize]
	common.PutUint16At(data, OffChecksum, common.SubstructChecksum(block))

	record, err := NewRecordDecoder(FormatQuetzal).DecodeParty(data)
	require.NoError(t, err)
	require.Equal(t, uint16(208), record.Growth.Species)
	require.Equal(t, uint16(89), record.Attacks.Moves[0])
	require.Equal(t, uint8(10), record.Condition.EVs[0])
	require.Equal(t, uint8(44), record.Level)
	require.Equal(t, uint16(0), record.CurrentHP)
	require.Equal(t, uint16(131), record.MaxHP)
	require.Equal(t, uint16(92), record.Attack)
	require.Equal(t, uint8(0xE4%25), record.Nature())
	require.True(t, record.ChecksumValid)
}

func TestDecodeBoxChecksumMismatch(t *testing.T) {
	data := makePartyFixture(t, FormatQuetzal)
	common.PutUint16At(data, OffChecksum, 0xDEAD)

	record, err := NewRecordDecoder(FormatQuetzal).DecodeBox(data[:LayoutQuetzal.BoxSize])
	require.NoError(t, err)
	require.False(t, record.ChecksumValid)
	// field decoding still completes on a bad checksum
	require.Equal(t, uint16(208), record.Growth.Species)
}

func TestDecodeBoxTruncated(t *testing.T) {
	_, err := NewRecordDecoder(FormatQuetzal).DecodeBox(make([]byte, LayoutQuetzal.BoxSize-1))
	var truncated *TruncatedRecordError
	require.ErrorAs(t, err, &truncated)
	require.Equal(t, LayoutQuetzal.BoxSize-1, truncated.Got)
	require.Equal(t, LayoutQuetzal.BoxSize, truncated.Want)
}

func TestDecodeParty(t *testing.T) {
	for _, format := range []Format{FormatQuetzal, FormatEmerald} {
		t.Run(format.Name, func(t *testing.T) {
			data := makePartyFixture(t, format)
			record, err := NewRecordDecoder(format).DecodeParty(data)
			require.NoError(t, err)

			requireFixtureFields(t, &record.BoxRecord)
			require.Equal(t, uint8(44), record.Level)
			require.Equal(t, uint16(0), record.CurrentHP)
			require.Equal(t, uint16(131), record.MaxHP)
			require.Equal(t, uint16(92), record.Attack)
			require.Equal(t, uint16(188), record.Defense)
			require.Equal(t, uint16(45), record.Speed)
			require.Equal(t, uint16(67), record.SpAttack)
			require.Equal(t, uint16(71), record.SpDefense)
		})
	}
}

func TestDecodePartyTruncated(t *testing.T) {
	_, err := NewRecordDecoder(FormatQuetzal).DecodeParty(make([]byte, PartyRecordSize-1))
	var truncated *TruncatedRecordError
	require.ErrorAs(t, err, &truncated)
	require.Equal(t, PartyRecordSize, truncated.Want)
}

func TestDecodePartyList(t *testing.T) {
	saveblock1 := make([]byte, PartyStartOffset+MaxPartySize*PartyRecordSize)
	fixture := makePartyFixture(t, FormatQuetzal)
	copy(saveblock1[PartyStartOffset:], fixture)
	copy(saveblock1[PartyStartOffset+PartyRecordSize:], fixture)
	// third slot stays species zero, ending the party

	party, err := NewRecordDecoder(FormatQuetzal).DecodePartyList(saveblock1)
	require.NoError(t, err)
	require.Len(t, party, 2)
	require.Equal(t, uint16(208), party[0].Growth.Species)
	require.Equal(t, uint16(208), party[1].Growth.Species)
}

func TestDecodePartyListEmpty(t *testing.T) {
	saveblock1 := make([]byte, PartyStartOffset+MaxPartySize*PartyRecordSize)
	party, err := NewRecordDecoder(FormatQuetzal).DecodePartyList(saveblock1)
	require.NoError(t, err)
	require.Empty(t, party)
}

func TestDecodePartyListShortBuffer(t *testing.T) {
	// a buffer ending mid-slot stops the walk instead of failing
	saveblock1 := make([]byte, PartyStartOffset+PartyRecordSize/2)
	party, err := NewRecordDecoder(FormatQuetzal).DecodePartyList(saveblock1)
	require.NoError(t, err)
	require.Empty(t, party)
}
