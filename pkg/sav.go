package pkg

import (
	"os"

	"github.com/hansbonini/quetzaltools/pkg/common"
	"github.com/hansbonini/quetzaltools/pkg/gba"
)

// SaveProcessor runs the full reconstruct-and-decode pass over a flash
// image: sector reconstruction, trainer block decode and party decode.
type SaveProcessor struct {
	format  Format
	decoder *RecordDecoder
}

// NewSaveProcessor creates a processor for the given format variant
func NewSaveProcessor(format Format) *SaveProcessor {
	return &SaveProcessor{
		format:  format,
		decoder: NewRecordDecoder(format),
	}
}

// Decoder exposes the processor's record decoder
func (p *SaveProcessor) Decoder() *RecordDecoder {
	return p.decoder
}

// ParseImage reconstructs the active slot of a flash image and decodes
// trainer info and party records from it. Sector-level corruption never
// propagates past reconstruction; record-level corruption is flagged on
// the affected record and decoding continues.
func (p *SaveProcessor) ParseImage(image []byte, slot int) (*SaveSummary, error) {
	active, err := gba.Reconstruct(image, slot)
	if err != nil {
		return nil, common.WrapError(common.ErrFailedToReconstruct, err)
	}

	summary := &SaveSummary{
		ActiveSlot:  active.Slot(),
		SlotCounter: active.Counter(),
		SectorMap:   active.SectorMap(),
	}
	common.LogInfo(common.InfoValidSectors, len(summary.SectorMap))

	block2, err := active.SaveBlock2()
	if err != nil {
		return nil, common.WrapError(common.ErrFailedToDecodeTrainer, err)
	}
	trainer, err := gba.DecodeTrainerInfo(block2)
	if err != nil {
		return nil, common.WrapError(common.ErrFailedToDecodeTrainer, err)
	}
	summary.Trainer = trainer

	block1, err := active.SaveBlock1()
	if err != nil {
		return nil, common.WrapError(common.ErrFailedToDecodeParty, err)
	}
	party, err := p.decoder.DecodePartyList(block1)
	if err != nil {
		return nil, common.WrapError(common.ErrFailedToDecodeParty, err)
	}
	summary.Party = party
	common.LogInfo(common.InfoPartyDecoded, len(party))

	return summary, nil
}

// ParseFile loads a save file from disk and parses it
func (p *SaveProcessor) ParseFile(path string, slot int) (*SaveSummary, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return nil, common.WrapError(common.ErrFailedToLoadSave, err)
	}
	return p.ParseImage(image, slot)
}
