package pkg

import (
	"github.com/hansbonini/quetzaltools/pkg/common"
)

// Bit-packed header fields, as absolute bit offsets into a record
// buffer. One descriptor per field keeps each layout entry
// independently testable.
var (
	fdLanguage       = common.FieldDescriptor{Name: "language", BitOffset: OffLanguage * 8, Width: 3}
	fdHiddenNature   = common.FieldDescriptor{Name: "hiddenNature", BitOffset: OffLanguage*8 + 3, Width: 5}
	fdIsBadEgg       = common.FieldDescriptor{Name: "isBadEgg", BitOffset: OffFlags * 8, Width: 1}
	fdHasSpecies     = common.FieldDescriptor{Name: "hasSpecies", BitOffset: OffFlags*8 + 1, Width: 1}
	fdIsEggFlag      = common.FieldDescriptor{Name: "isEgg", BitOffset: OffFlags*8 + 2, Width: 1}
	fdFlagsUnused    = common.FieldDescriptor{Name: "flagsUnused", BitOffset: OffFlags*8 + 3, Width: 5}
	fdMarkings       = common.FieldDescriptor{Name: "markings", BitOffset: OffMarkings * 8, Width: 4}
	fdMarkingsUnused = common.FieldDescriptor{Name: "markingsUnused", BitOffset: OffMarkings*8 + 4, Width: 4}
)

// Bit-packed fields of the miscellaneous substructure, as bit offsets
// into its 12-byte slice. The two leading bytes (pokérus, met
// location) are plain byte reads.
var (
	fdMetLevel      = common.FieldDescriptor{Name: "metLevel", BitOffset: 16, Width: 7}
	fdMetGame       = common.FieldDescriptor{Name: "metGame", BitOffset: 23, Width: 4}
	fdOTGender      = common.FieldDescriptor{Name: "otGender", BitOffset: 27, Width: 1}
	fdOriginsUnused = common.FieldDescriptor{Name: "originsUnused", BitOffset: 28, Width: 4}
	fdIVs           = makeIVDescriptors()
	fdIsEgg         = common.FieldDescriptor{Name: "eggFlag", BitOffset: 62, Width: 1}
	fdAbilityNum    = common.FieldDescriptor{Name: "abilityNum", BitOffset: 63, Width: 1}
	fdRibbons       = common.FieldDescriptor{Name: "ribbons", BitOffset: 64, Width: 31}
	fdFateful       = common.FieldDescriptor{Name: "fateful", BitOffset: 95, Width: 1}
)

// ivFieldWidth is the width of one individual value quintet
const ivFieldWidth = 5

func makeIVDescriptors() [6]common.FieldDescriptor {
	names := [6]string{"hpIV", "atkIV", "defIV", "speIV", "spaIV", "spdIV"}
	var fields [6]common.FieldDescriptor
	for i := range fields {
		fields[i] = common.FieldDescriptor{
			Name:      names[i],
			BitOffset: 32 + uint(i)*ivFieldWidth,
			Width:     ivFieldWidth,
		}
	}
	return fields
}

// RecordDecoder implements the CreatureDecoder interface for one
// format variant.
type RecordDecoder struct {
	format Format
}

// NewRecordDecoder creates a decoder for the given format variant
func NewRecordDecoder(format Format) *RecordDecoder {
	return &RecordDecoder{format: format}
}

// DecodeBox decodes a box record in the decoder's layout. A checksum
// mismatch does not abort the decode; it only clears the record's
// ChecksumValid flag, so partially corrupted data remains readable.
func (d *RecordDecoder) DecodeBox(data []byte) (*BoxRecord, error) {
	layout := d.format.Layout
	if len(data) < layout.BoxSize {
		return nil, &TruncatedRecordError{Got: len(data), Want: layout.BoxSize}
	}

	record := &BoxRecord{
		Personality: common.Uint32At(data, OffPersonality),
		OTID:        common.Uint32At(data, OffOTID),
		Checksum:    common.Uint16At(data, OffChecksum),
		HPLost:      common.Uint16At(data, OffHPLost),
	}
	copy(record.Nickname[:], data[OffNickname:OffNickname+NicknameLength])
	copy(record.OTName[:], data[OffOTName:OffOTName+OTNameLength])
	copy(record.HeaderUnused[:], data[layout.HeaderPad:layout.HeaderPad+layout.HeaderPadLen])

	if err := d.decodeHeaderBits(data, record); err != nil {
		return nil, err
	}

	block := data[layout.SubstructBase : layout.SubstructBase+SubstructBlockSize]
	if d.format.Ciphered {
		block = ApplyCipher(block, record.Personality^record.OTID)
	}
	record.ChecksumValid = common.VerifySubstructChecksum(block, record.Checksum)

	logical := block
	if d.format.Shuffled {
		common.LogDebug(common.DebugSubstructPerm, record.Personality, SubstructOrder(record.Personality))
		logical = UnshuffleSubstructs(block, record.Personality)
	}
	if err := d.decodeSubstructs(logical, record); err != nil {
		return nil, err
	}

	return record, nil
}

// DecodeParty decodes a 104-byte party record: the box record prefix
// plus the battle-state fields at the layout's offsets.
func (d *RecordDecoder) DecodeParty(data []byte) (*PartyRecord, error) {
	layout := d.format.Layout
	if len(data) < PartyRecordSize {
		return nil, &TruncatedRecordError{Got: len(data), Want: PartyRecordSize}
	}

	box, err := d.DecodeBox(data[:layout.BoxSize])
	if err != nil {
		return nil, err
	}

	record := &PartyRecord{
		BoxRecord: *box,
		Level:     data[layout.Level],
		MailID:    data[layout.MailID],
		CurrentHP: common.Uint16At(data, layout.CurrentHP),
		MaxHP:     common.Uint16At(data, layout.MaxHP),
		Attack:    common.Uint16At(data, layout.Attack),
		Defense:   common.Uint16At(data, layout.Defense),
		Speed:     common.Uint16At(data, layout.Speed),
		SpAttack:  common.Uint16At(data, layout.SpAttack),
		SpDefense: common.Uint16At(data, layout.SpDefense),
	}
	if layout.Status >= 0 {
		record.Status = common.Uint32At(data, layout.Status)
	}
	copy(record.Unused[:], data[layout.Padding:layout.Padding+layout.PaddingLen])
	return record, nil
}

// DecodePartyList decodes the up-to-six party records stored in a
// SaveBlock1 buffer. The party ends at the first empty slot (species
// zero); a slot whose bytes run past the buffer ends the party too.
func (d *RecordDecoder) DecodePartyList(saveblock1 []byte) ([]*PartyRecord, error) {
	var party []*PartyRecord
	for slot := 0; slot < MaxPartySize; slot++ {
		offset := PartyStartOffset + slot*PartyRecordSize
		if offset+PartyRecordSize > len(saveblock1) {
			break
		}
		record, err := d.DecodeParty(saveblock1[offset : offset+PartyRecordSize])
		if err != nil {
			return nil, err
		}
		if record.Growth.Species == 0 {
			break
		}
		party = append(party, record)
	}
	return party, nil
}

func (d *RecordDecoder) decodeHeaderBits(data []byte, record *BoxRecord) error {
	language, err := fdLanguage.Read(data)
	if err != nil {
		return err
	}
	hiddenNature, err := fdHiddenNature.Read(data)
	if err != nil {
		return err
	}
	isBadEgg, err := fdIsBadEgg.Read(data)
	if err != nil {
		return err
	}
	hasSpecies, err := fdHasSpecies.Read(data)
	if err != nil {
		return err
	}
	isEgg, err := fdIsEggFlag.Read(data)
	if err != nil {
		return err
	}
	flagsUnused, err := fdFlagsUnused.Read(data)
	if err != nil {
		return err
	}
	markings, err := fdMarkings.Read(data)
	if err != nil {
		return err
	}
	markingsUnused, err := fdMarkingsUnused.Read(data)
	if err != nil {
		return err
	}

	record.Language = uint8(language)
	record.HiddenNature = uint8(hiddenNature)
	record.IsBadEgg = isBadEgg != 0
	record.HasSpecies = hasSpecies != 0
	record.IsEgg = isEgg != 0
	record.FlagsUnused = uint8(flagsUnused)
	record.Markings = uint8(markings)
	record.MarkingsUnused = uint8(markingsUnused)
	return nil
}

// decodeSubstructs maps the logical-ordered 48-byte block onto the
// four typed substructures.
func (d *RecordDecoder) decodeSubstructs(logical []byte, record *BoxRecord) error {
	growth := logical[SubstructGrowth*SubstructSize : (SubstructGrowth+1)*SubstructSize]
	record.Growth = Growth{
		Species:    common.Uint16At(growth, 0),
		HeldItem:   common.Uint16At(growth, 2),
		Experience: common.Uint32At(growth, 4),
		PPBonuses:  growth[8],
		Friendship: growth[9],
		Pokeball:   growth[10],
		Unused:     growth[11],
	}

	attacks := logical[SubstructAttacks*SubstructSize : (SubstructAttacks+1)*SubstructSize]
	for i := 0; i < 4; i++ {
		record.Attacks.Moves[i] = common.Uint16At(attacks, i*2)
		record.Attacks.PP[i] = attacks[8+i]
	}

	condition := logical[SubstructCondition*SubstructSize : (SubstructCondition+1)*SubstructSize]
	copy(record.Condition.EVs[:], condition[0:6])
	copy(record.Condition.Contest[:], condition[6:11])
	record.Condition.Unused = condition[11]

	misc := logical[SubstructMisc*SubstructSize : (SubstructMisc+1)*SubstructSize]
	record.Misc.Pokerus = misc[0]
	record.Misc.MetLocation = misc[1]

	metLevel, err := fdMetLevel.Read(misc)
	if err != nil {
		return err
	}
	metGame, err := fdMetGame.Read(misc)
	if err != nil {
		return err
	}
	otGender, err := fdOTGender.Read(misc)
	if err != nil {
		return err
	}
	originsUnused, err := fdOriginsUnused.Read(misc)
	if err != nil {
		return err
	}
	for i, fd := range fdIVs {
		iv, err := fd.Read(misc)
		if err != nil {
			return err
		}
		record.Misc.IVs[i] = uint8(iv)
	}
	isEgg, err := fdIsEgg.Read(misc)
	if err != nil {
		return err
	}
	abilityNum, err := fdAbilityNum.Read(misc)
	if err != nil {
		return err
	}
	ribbons, err := fdRibbons.Read(misc)
	if err != nil {
		return err
	}
	fateful, err := fdFateful.Read(misc)
	if err != nil {
		return err
	}

	record.Misc.MetLevel = uint8(metLevel)
	record.Misc.MetGame = uint8(metGame)
	record.Misc.OTGender = uint8(otGender)
	record.Misc.Unused = uint8(originsUnused)
	record.Misc.IsEgg = isEgg != 0
	record.Misc.AbilityNum = uint8(abilityNum)
	record.Misc.Ribbons = ribbons
	record.Misc.Fateful = fateful != 0
	return nil
}
