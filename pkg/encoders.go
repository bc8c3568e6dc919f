package pkg

import (
	"github.com/hansbonini/quetzaltools/pkg/common"
)

// RecordEncoder implements the CreatureEncoder interface for one
// format variant. Encoding is the exact inverse of decoding: any
// record that decoded cleanly encodes back to the same bytes.
type RecordEncoder struct {
	format Format
}

// NewRecordEncoder creates an encoder for the given format variant
func NewRecordEncoder(format Format) *RecordEncoder {
	return &RecordEncoder{format: format}
}

// EncodeBox encodes a box record to its wire form in the encoder's
// layout. The stored Checksum field is written verbatim so that
// corrupt records round trip unchanged; use UpdateChecksum to make a
// record consistent.
func (e *RecordEncoder) EncodeBox(record *BoxRecord) ([]byte, error) {
	layout := e.format.Layout
	data := make([]byte, layout.BoxSize)

	common.PutUint32At(data, OffPersonality, record.Personality)
	common.PutUint32At(data, OffOTID, record.OTID)
	copy(data[OffNickname:], record.Nickname[:])
	copy(data[OffOTName:], record.OTName[:])
	common.PutUint16At(data, OffChecksum, record.Checksum)
	common.PutUint16At(data, OffHPLost, record.HPLost)
	copy(data[layout.HeaderPad:layout.HeaderPad+layout.HeaderPadLen], record.HeaderUnused[:])

	if err := e.encodeHeaderBits(data, record); err != nil {
		return nil, err
	}

	logical, err := e.encodeSubstructs(record)
	if err != nil {
		return nil, err
	}

	block := logical
	if e.format.Shuffled {
		block = ShuffleSubstructs(logical, record.Personality)
	}
	if e.format.Ciphered {
		block = ApplyCipher(block, record.Personality^record.OTID)
	}
	copy(data[layout.SubstructBase:], block)

	return data, nil
}

// EncodeParty encodes a party record to its 104-byte wire form
func (e *RecordEncoder) EncodeParty(record *PartyRecord) ([]byte, error) {
	layout := e.format.Layout
	box, err := e.EncodeBox(&record.BoxRecord)
	if err != nil {
		return nil, err
	}

	data := make([]byte, PartyRecordSize)
	copy(data, box)
	if layout.Status >= 0 {
		common.PutUint32At(data, layout.Status, record.Status)
	}
	data[layout.Level] = record.Level
	data[layout.MailID] = record.MailID
	common.PutUint16At(data, layout.CurrentHP, record.CurrentHP)
	common.PutUint16At(data, layout.MaxHP, record.MaxHP)
	common.PutUint16At(data, layout.Attack, record.Attack)
	common.PutUint16At(data, layout.Defense, record.Defense)
	common.PutUint16At(data, layout.Speed, record.Speed)
	common.PutUint16At(data, layout.SpAttack, record.SpAttack)
	common.PutUint16At(data, layout.SpDefense, record.SpDefense)
	copy(data[layout.Padding:layout.Padding+layout.PaddingLen], record.Unused[:])

	return data, nil
}

// UpdateChecksum recomputes the substructure checksum from the
// record's current field values and stores it in the Checksum field.
func (e *RecordEncoder) UpdateChecksum(record *BoxRecord) error {
	logical, err := e.encodeSubstructs(record)
	if err != nil {
		return err
	}
	record.Checksum = common.SubstructChecksum(logical)
	record.ChecksumValid = true
	return nil
}

func (e *RecordEncoder) encodeHeaderBits(data []byte, record *BoxRecord) error {
	if err := fdLanguage.Write(data, uint32(record.Language)); err != nil {
		return err
	}
	if err := fdHiddenNature.Write(data, uint32(record.HiddenNature)); err != nil {
		return err
	}
	if err := fdIsBadEgg.Write(data, boolBit(record.IsBadEgg)); err != nil {
		return err
	}
	if err := fdHasSpecies.Write(data, boolBit(record.HasSpecies)); err != nil {
		return err
	}
	if err := fdIsEggFlag.Write(data, boolBit(record.IsEgg)); err != nil {
		return err
	}
	if err := fdFlagsUnused.Write(data, uint32(record.FlagsUnused)); err != nil {
		return err
	}
	if err := fdMarkings.Write(data, uint32(record.Markings)); err != nil {
		return err
	}
	return fdMarkingsUnused.Write(data, uint32(record.MarkingsUnused))
}

// encodeSubstructs renders the four substructures in logical order
func (e *RecordEncoder) encodeSubstructs(record *BoxRecord) ([]byte, error) {
	logical := make([]byte, SubstructBlockSize)

	growth := logical[SubstructGrowth*SubstructSize:]
	common.PutUint16At(growth, 0, record.Growth.Species)
	common.PutUint16At(growth, 2, record.Growth.HeldItem)
	common.PutUint32At(growth, 4, record.Growth.Experience)
	growth[8] = record.Growth.PPBonuses
	growth[9] = record.Growth.Friendship
	growth[10] = record.Growth.Pokeball
	growth[11] = record.Growth.Unused

	attacks := logical[SubstructAttacks*SubstructSize:]
	for i := 0; i < 4; i++ {
		common.PutUint16At(attacks, i*2, record.Attacks.Moves[i])
		attacks[8+i] = record.Attacks.PP[i]
	}

	condition := logical[SubstructCondition*SubstructSize:]
	copy(condition[0:6], record.Condition.EVs[:])
	copy(condition[6:11], record.Condition.Contest[:])
	condition[11] = record.Condition.Unused

	misc := logical[SubstructMisc*SubstructSize : (SubstructMisc+1)*SubstructSize]
	misc[0] = record.Misc.Pokerus
	misc[1] = record.Misc.MetLocation
	if err := fdMetLevel.Write(misc, uint32(record.Misc.MetLevel)); err != nil {
		return nil, err
	}
	if err := fdMetGame.Write(misc, uint32(record.Misc.MetGame)); err != nil {
		return nil, err
	}
	if err := fdOTGender.Write(misc, uint32(record.Misc.OTGender)); err != nil {
		return nil, err
	}
	if err := fdOriginsUnused.Write(misc, uint32(record.Misc.Unused)); err != nil {
		return nil, err
	}
	for i, fd := range fdIVs {
		if err := fd.Write(misc, uint32(record.Misc.IVs[i])); err != nil {
			return nil, err
		}
	}
	if err := fdIsEgg.Write(misc, boolBit(record.Misc.IsEgg)); err != nil {
		return nil, err
	}
	if err := fdAbilityNum.Write(misc, uint32(record.Misc.AbilityNum)); err != nil {
		return nil, err
	}
	if err := fdRibbons.Write(misc, record.Misc.Ribbons); err != nil {
		return nil, err
	}
	if err := fdFateful.Write(misc, boolBit(record.Misc.Fateful)); err != nil {
		return nil, err
	}

	return logical, nil
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
