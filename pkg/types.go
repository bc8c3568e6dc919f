package pkg

import (
	"fmt"
	"io"

	"github.com/hansbonini/quetzaltools/pkg/common"
)

// Record widths
const (
	PartyRecordSize = 104

	NicknameLength = 10
	OTNameLength   = 7
)

// Box record header offsets shared by both layout variants
const (
	OffPersonality = 0x00
	OffOTID        = 0x04
	OffNickname    = 0x08
	OffLanguage    = 0x12
	OffFlags       = 0x13
	OffOTName      = 0x14
	OffMarkings    = 0x1B
	OffChecksum    = 0x1C
	OffHPLost      = 0x1E
)

// Party layout within SaveBlock1
const (
	PartyStartOffset = 0x6A8
	MaxPartySize     = 6
)

// Layout fixes the byte geometry of one record variant: where the
// 48-byte substructure block sits and where each battle-state field
// lives. Offsets of fields a variant does not carry are -1.
type Layout struct {
	BoxSize       int
	SubstructBase int

	// Unknown header byte run between the shared header fields and
	// the substructure block; zero length when the variant has none.
	HeaderPad    int
	HeaderPadLen int

	Status     int
	Level      int
	MailID     int
	CurrentHP  int
	MaxHP      int
	Attack     int
	Defense    int
	Speed      int
	SpAttack   int
	SpDefense  int
	Padding    int
	PaddingLen int
}

// LayoutVanilla is the stock Emerald geometry: substructures directly
// after the 32-byte header, battle state from 0x50.
var LayoutVanilla = Layout{
	BoxSize:       80,
	SubstructBase: 0x20,
	Status:        0x50,
	Level:         0x54,
	MailID:        0x55,
	CurrentHP:     0x56,
	MaxHP:         0x58,
	Attack:        0x5A,
	Defense:       0x5C,
	Speed:         0x5E,
	SpAttack:      0x60,
	SpDefense:     0x62,
	Padding:       0x64,
	PaddingLen:    4,
}

// LayoutQuetzal is the widened pokeemerald-expansion geometry: the
// header grows to 0x28 and carries current HP at 0x23, substructures
// start at 0x28 and the level/stat fields sit at 0x58-0x65.
var LayoutQuetzal = Layout{
	BoxSize:       88,
	SubstructBase: 0x28,
	HeaderPad:     0x20,
	HeaderPadLen:  8,
	Status:        -1,
	Level:         0x58,
	MailID:        0x59,
	CurrentHP:     0x23,
	MaxHP:         0x5A,
	Attack:        0x5C,
	Defense:       0x5E,
	Speed:         0x60,
	SpAttack:      0x62,
	SpDefense:     0x64,
	Padding:       0x66,
	PaddingLen:    2,
}

// Format selects the layout variant a codec operates on. Shuffled and
// Ciphered each gate one transformation of the 48-byte substructure
// block; both run through the single shared decode path so the two
// variants cannot drift apart.
type Format struct {
	Name     string
	Shuffled bool
	Ciphered bool
	Layout   Layout
}

// Predefined format variants. Quetzal stores substructures in logical
// order with no cipher pass in its widened record geometry; the
// vanilla Emerald format it derives from permutes and enciphers them
// in the stock geometry.
var (
	FormatQuetzal = Format{Name: "quetzal", Shuffled: false, Ciphered: false, Layout: LayoutQuetzal}
	FormatEmerald = Format{Name: "emerald", Shuffled: true, Ciphered: true, Layout: LayoutVanilla}
)

// FormatByName resolves a format variant from its CLI name
func FormatByName(name string) (Format, error) {
	switch name {
	case FormatQuetzal.Name, "":
		return FormatQuetzal, nil
	case FormatEmerald.Name:
		return FormatEmerald, nil
	}
	return Format{}, fmt.Errorf("unknown save format %q", name)
}

// TruncatedRecordError indicates a record buffer shorter than the
// record width. The short buffer is never partially decoded.
type TruncatedRecordError struct {
	Got  int
	Want int
}

func (e *TruncatedRecordError) Error() string {
	return fmt.Sprintf("truncated record: got %d bytes, need %d", e.Got, e.Want)
}

// Growth is the species/experience substructure
type Growth struct {
	Species    uint16 `json:"species" yaml:"species"`
	HeldItem   uint16 `json:"held_item" yaml:"held_item"`
	Experience uint32 `json:"experience" yaml:"experience"`
	PPBonuses  uint8  `json:"pp_bonuses" yaml:"pp_bonuses"`
	Friendship uint8  `json:"friendship" yaml:"friendship"`
	Pokeball   uint8  `json:"pokeball" yaml:"pokeball"`
	Unused     uint8  `json:"-" yaml:"-"`
}

// Attacks is the move set substructure
type Attacks struct {
	Moves [4]uint16 `json:"moves" yaml:"moves"`
	PP    [4]uint8  `json:"pp" yaml:"pp"`
}

// Condition is the effort value and contest stat substructure
type Condition struct {
	EVs     [6]uint8 `json:"evs" yaml:"evs"`
	Contest [5]uint8 `json:"contest" yaml:"contest"`
	Unused  uint8    `json:"-" yaml:"-"`
}

// Misc is the bit-packed origin/IV/ribbon substructure
type Misc struct {
	Pokerus     uint8    `json:"pokerus" yaml:"pokerus"`
	MetLocation uint8    `json:"met_location" yaml:"met_location"`
	MetLevel    uint8    `json:"met_level" yaml:"met_level"`
	MetGame     uint8    `json:"met_game" yaml:"met_game"`
	OTGender    uint8    `json:"ot_gender" yaml:"ot_gender"`
	Unused      uint8    `json:"-" yaml:"-"`
	IVs         [6]uint8 `json:"ivs" yaml:"ivs"`
	IsEgg       bool     `json:"is_egg" yaml:"is_egg"`
	AbilityNum  uint8    `json:"ability_num" yaml:"ability_num"`
	Ribbons     uint32   `json:"ribbons" yaml:"ribbons"`
	Fateful     bool     `json:"fateful" yaml:"fateful"`
}

// BoxRecord is the trade-safe creature record stored in boxes. The
// party record embeds it by value as its byte prefix.
type BoxRecord struct {
	Personality  uint32
	OTID         uint32
	Nickname     [NicknameLength]byte
	Language     uint8
	HiddenNature uint8
	IsBadEgg     bool
	HasSpecies   bool
	IsEgg        bool
	OTName       [OTNameLength]byte
	Markings     uint8
	Checksum     uint16
	HPLost       uint16

	// Undecoded bits carried verbatim so round trips stay byte-exact:
	// the high bits of the flags and markings bytes, and the unknown
	// header byte run of layouts that have one.
	FlagsUnused    uint8
	MarkingsUnused uint8
	HeaderUnused   [8]byte

	Growth    Growth
	Attacks   Attacks
	Condition Condition
	Misc      Misc

	// ChecksumValid is false when the stored checksum does not match
	// the recomputed substructure checksum. Decoding still completes;
	// the flag lets callers surface possibly corrupted data instead
	// of dropping it.
	ChecksumValid bool
}

// PartyRecord is a box record plus volatile battle state
type PartyRecord struct {
	BoxRecord

	Status    uint32
	Level     uint8
	MailID    uint8
	CurrentHP uint16
	MaxHP     uint16
	Attack    uint16
	Defense   uint16
	Speed     uint16
	SpAttack  uint16
	SpDefense uint16
	Unused    [4]byte
}

// NicknameString decodes the raw nickname bytes via the game charmap
func (r *BoxRecord) NicknameString() string {
	return common.DecodeGameString(r.Nickname[:])
}

// OTNameString decodes the raw original trainer name bytes
func (r *BoxRecord) OTNameString() string {
	return common.DecodeGameString(r.OTName[:])
}

// DisplayOTID is the five-digit trainer ID shown in game
func (r *BoxRecord) DisplayOTID() string {
	return fmt.Sprintf("%05d", r.OTID&0xFFFF)
}

// Nature derives the nature index from the personality value
func (r *BoxRecord) Nature() uint8 {
	return uint8(r.Personality % NatureCount)
}

// NatureName resolves the derived nature index to its display name
func (r *BoxRecord) NatureName() string {
	return NatureName(r.Nature())
}

// Gender classifications derived from the personality low byte
type Gender uint8

const (
	GenderMale Gender = iota
	GenderFemale
	Genderless
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "genderless"
	}
}

// Species gender-threshold sentinels
const (
	GenderThresholdMale       = 0
	GenderThresholdFemale     = 254
	GenderThresholdGenderless = 255
)

// SpeciesInfo is the per-species metadata the codec needs for derived
// attributes. It comes from an external species database.
type SpeciesInfo struct {
	Name            string    `yaml:"name"`
	GenderThreshold uint8     `yaml:"gender_threshold"`
	Abilities       [2]uint16 `yaml:"abilities"`
}

// SpeciesTable resolves species IDs to metadata. Implementations are
// injected by the caller; decoding works without one, only the derived
// gender/ability attributes need it.
type SpeciesTable interface {
	Species(id uint16) (SpeciesInfo, bool)
}

// Gender derives the creature's gender from its personality low byte
// and the species gender threshold. The bool result is false when the
// species is unknown to the table.
func (r *BoxRecord) Gender(table SpeciesTable) (Gender, bool) {
	if table == nil {
		return Genderless, false
	}
	info, ok := table.Species(r.Growth.Species)
	if !ok {
		return Genderless, false
	}
	switch info.GenderThreshold {
	case GenderThresholdGenderless:
		return Genderless, true
	case GenderThresholdFemale:
		return GenderFemale, true
	case GenderThresholdMale:
		return GenderMale, true
	}
	if uint8(r.Personality&0xFF) < info.GenderThreshold {
		return GenderFemale, true
	}
	return GenderMale, true
}

// Ability resolves the ability-slot bit against the species' two-entry
// ability list. The bool result is false when the species is unknown.
func (r *BoxRecord) Ability(table SpeciesTable) (uint16, bool) {
	if table == nil {
		return 0, false
	}
	info, ok := table.Species(r.Growth.Species)
	if !ok {
		return 0, false
	}
	return info.Abilities[r.Misc.AbilityNum&1], true
}

// CreatureDecoder decodes creature records from raw save bytes
type CreatureDecoder interface {
	DecodeBox(data []byte) (*BoxRecord, error)
	DecodeParty(data []byte) (*PartyRecord, error)
	DecodePartyList(saveblock1 []byte) ([]*PartyRecord, error)
}

// CreatureEncoder encodes creature records back to raw save bytes
type CreatureEncoder interface {
	EncodeBox(record *BoxRecord) ([]byte, error)
	EncodeParty(record *PartyRecord) ([]byte, error)
}

// PartyExporter renders decoded party data for external consumers
type PartyExporter interface {
	ExportJSON(summary *SaveSummary, writer io.Writer) error
	ExportPartyYAML(summary *SaveSummary, path string) error
	DisplayParty(summary *SaveSummary, writer io.Writer)
}
