package pkg

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hansbonini/quetzaltools/pkg/common"
	"github.com/hansbonini/quetzaltools/pkg/gba"
)

// SaveSummary bundles everything decoded from one save image for the
// presentation layer.
type SaveSummary struct {
	Trainer     *gba.TrainerInfo
	ActiveSlot  int
	SlotCounter uint32
	SectorMap   map[uint16]int
	Party       []*PartyRecord
}

// RecordView is the flattened, display-ready projection of one party
// record. It carries derived attributes alongside the raw field values
// so JSON/YAML consumers need no game knowledge.
type RecordView struct {
	Slot          int       `json:"slot" yaml:"slot"`
	Personality   uint32    `json:"personality" yaml:"personality"`
	OTID          uint32    `json:"ot_id" yaml:"ot_id"`
	DisplayOTID   string    `json:"display_ot_id" yaml:"display_ot_id"`
	Nickname      string    `json:"nickname" yaml:"nickname"`
	OTName        string    `json:"ot_name" yaml:"ot_name"`
	Species       uint16    `json:"species" yaml:"species"`
	SpeciesName   string    `json:"species_name" yaml:"species_name"`
	Level         uint8     `json:"level" yaml:"level"`
	Nature        uint8     `json:"nature" yaml:"nature"`
	NatureName    string    `json:"nature_name" yaml:"nature_name"`
	Gender        string    `json:"gender,omitempty" yaml:"gender,omitempty"`
	Ability       uint16    `json:"ability,omitempty" yaml:"ability,omitempty"`
	HeldItem      uint16    `json:"held_item" yaml:"held_item"`
	Experience    uint32    `json:"experience" yaml:"experience"`
	Friendship    uint8     `json:"friendship" yaml:"friendship"`
	CurrentHP     uint16    `json:"current_hp" yaml:"current_hp"`
	MaxHP         uint16    `json:"max_hp" yaml:"max_hp"`
	Attack        uint16    `json:"attack" yaml:"attack"`
	Defense       uint16    `json:"defense" yaml:"defense"`
	Speed         uint16    `json:"speed" yaml:"speed"`
	SpAttack      uint16    `json:"sp_attack" yaml:"sp_attack"`
	SpDefense     uint16    `json:"sp_defense" yaml:"sp_defense"`
	Moves         [4]uint16 `json:"moves" yaml:"moves"`
	MoveNames     [4]string `json:"move_names" yaml:"move_names"`
	PP            [4]uint8  `json:"pp" yaml:"pp"`
	EVs           [6]uint8  `json:"evs" yaml:"evs"`
	IVs           [6]uint8  `json:"ivs" yaml:"ivs"`
	TotalEVs      int       `json:"total_evs" yaml:"total_evs"`
	TotalIVs      int       `json:"total_ivs" yaml:"total_ivs"`
	ChecksumValid bool      `json:"checksum_valid" yaml:"checksum_valid"`
}

// saveView is the serialized shape of a full save summary
type saveView struct {
	PlayerName  string         `json:"player_name" yaml:"player_name"`
	PlayTime    gba.PlayTime   `json:"play_time" yaml:"play_time"`
	ActiveSlot  int            `json:"active_slot" yaml:"active_slot"`
	SlotCounter uint32         `json:"slot_counter" yaml:"slot_counter"`
	SectorMap   map[uint16]int `json:"sector_map" yaml:"sector_map"`
	Party       []RecordView   `json:"party" yaml:"party"`
}

// SaveExporter implements the PartyExporter interface. The species
// table is optional; without it the derived gender/ability columns are
// omitted and species names fall back to numeric placeholders.
type SaveExporter struct {
	species SpeciesTable
}

// NewSaveExporter creates an exporter with an optional species table
func NewSaveExporter(species SpeciesTable) *SaveExporter {
	return &SaveExporter{species: species}
}

// View projects one party record into its display form
func (x *SaveExporter) View(slot int, record *PartyRecord) RecordView {
	view := RecordView{
		Slot:          slot,
		Personality:   record.Personality,
		OTID:          record.OTID,
		DisplayOTID:   record.DisplayOTID(),
		Nickname:      record.NicknameString(),
		OTName:        record.OTNameString(),
		Species:       record.Growth.Species,
		SpeciesName:   SpeciesName(x.species, record.Growth.Species),
		Level:         record.Level,
		Nature:        record.Nature(),
		NatureName:    record.NatureName(),
		HeldItem:      record.Growth.HeldItem,
		Experience:    record.Growth.Experience,
		Friendship:    record.Growth.Friendship,
		CurrentHP:     record.CurrentHP,
		MaxHP:         record.MaxHP,
		Attack:        record.Attack,
		Defense:       record.Defense,
		Speed:         record.Speed,
		SpAttack:      record.SpAttack,
		SpDefense:     record.SpDefense,
		Moves:         record.Attacks.Moves,
		PP:            record.Attacks.PP,
		EVs:           record.Condition.EVs,
		IVs:           record.Misc.IVs,
		ChecksumValid: record.ChecksumValid,
	}
	for i, move := range record.Attacks.Moves {
		view.MoveNames[i] = MoveName(move)
	}
	for _, ev := range record.Condition.EVs {
		view.TotalEVs += int(ev)
	}
	for _, iv := range record.Misc.IVs {
		view.TotalIVs += int(iv)
	}
	if gender, ok := record.Gender(x.species); ok {
		view.Gender = gender.String()
	}
	if ability, ok := record.Ability(x.species); ok {
		view.Ability = ability
	}
	return view
}

func (x *SaveExporter) buildView(summary *SaveSummary) saveView {
	view := saveView{
		ActiveSlot:  summary.ActiveSlot,
		SlotCounter: summary.SlotCounter,
		SectorMap:   summary.SectorMap,
		Party:       make([]RecordView, 0, len(summary.Party)),
	}
	if summary.Trainer != nil {
		view.PlayerName = summary.Trainer.PlayerName
		view.PlayTime = summary.Trainer.PlayTime
	}
	for i, record := range summary.Party {
		view.Party = append(view.Party, x.View(i+1, record))
	}
	return view
}

// ExportJSON writes the full save summary as JSON
func (x *SaveExporter) ExportJSON(summary *SaveSummary, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	if err := encoder.Encode(x.buildView(summary)); err != nil {
		return common.WrapError(common.ErrFailedToExportJSON, err)
	}
	return nil
}

// ExportPartyYAML writes the decoded party records to a YAML file
func (x *SaveExporter) ExportPartyYAML(summary *SaveSummary, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return common.WrapError(common.ErrFailedToCreateOutput, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	defer encoder.Close()
	if err := encoder.Encode(x.buildView(summary)); err != nil {
		return common.WrapError(common.ErrFailedToExportYAML, err)
	}

	common.LogInfo(common.InfoPartyExported, len(summary.Party), path)
	return nil
}

// DisplayParty prints the party summary table
func (x *SaveExporter) DisplayParty(summary *SaveSummary, writer io.Writer) {
	fmt.Fprintf(writer, "\n--- Party Summary ---\n")
	if len(summary.Party) == 0 {
		fmt.Fprintf(writer, "No creatures found in party.\n")
		return
	}

	fmt.Fprintf(writer, "%-5s%-8s%-12s%-4s%-10s%-12s%-6s%-6s%-6s%-6s%-6s%-10s%-7s\n",
		"Slot", "Dex", "Nickname", "Lv", "Nature", "HP", "Atk", "Def", "Spe", "SpA", "SpD", "OT Name", "IDNo")
	for i, record := range summary.Party {
		view := x.View(i+1, record)
		hp := fmt.Sprintf("%d/%d", view.CurrentHP, view.MaxHP)
		fmt.Fprintf(writer, "%-5d%-8d%-12s%-4d%-10s%-12s%-6d%-6d%-6d%-6d%-6d%-10s%-7s\n",
			view.Slot, view.Species, view.Nickname, view.Level, view.NatureName, hp,
			view.Attack, view.Defense, view.Speed, view.SpAttack, view.SpDefense,
			view.OTName, view.DisplayOTID)
		if !view.ChecksumValid {
			common.LogWarn(common.WarnRecordChecksum, view.Slot, view.Nickname)
		}
	}
}

// DisplaySaveInfo prints the trainer block and party table
func (x *SaveExporter) DisplaySaveInfo(summary *SaveSummary, writer io.Writer) {
	fmt.Fprintf(writer, "Active save slot: %d\n", summary.ActiveSlot)
	fmt.Fprintf(writer, "Slot counter: %08X\n", summary.SlotCounter)
	fmt.Fprintf(writer, "Valid sectors found: %d\n", len(summary.SectorMap))
	x.DisplayParty(summary, writer)
	if summary.Trainer != nil {
		fmt.Fprintf(writer, "\n--- Trainer Data ---\n")
		fmt.Fprintf(writer, "Player Name: %s\n", summary.Trainer.PlayerName)
		fmt.Fprintf(writer, "Play Time: %s\n", summary.Trainer.PlayTime)
	}
}

// DisplayRawParty prints each party record's raw bytes, re-encoded
// with the given encoder so the dump matches the on-image layout.
func (x *SaveExporter) DisplayRawParty(summary *SaveSummary, encoder *RecordEncoder, writer io.Writer) error {
	fmt.Fprintf(writer, "\n--- Party Raw Bytes ---\n")
	if len(summary.Party) == 0 {
		fmt.Fprintf(writer, "No creatures found in party.\n")
		return nil
	}
	for i, record := range summary.Party {
		data, err := encoder.EncodeParty(record)
		if err != nil {
			return common.WrapError(common.ErrFailedToEncodeRecord, err)
		}
		fmt.Fprintf(writer, "\n--- Slot %d: %s ---\n", i+1, record.NicknameString())
		for j, b := range data {
			if j > 0 {
				fmt.Fprintf(writer, " ")
			}
			fmt.Fprintf(writer, "%02x", b)
		}
		fmt.Fprintf(writer, "\n")
	}
	return nil
}
