// Package gba reconstructs logical save data from GBA flash save images.
// The medium is partitioned into checksummed 4 KiB sectors rotated across
// two redundant save slots; this package locates the winning slot and
// reassembles its sector payloads into addressable logical blocks.
package gba

import (
	"github.com/hansbonini/quetzaltools/pkg/common"
)

// Flash save layout constants. Pokémon Quetzal keeps the vanilla sector
// geometry but widens each slot to 18 sectors, so the two slot ranges
// overlap in the middle of the 32-sector image.
const (
	SectorSize       = 4096
	SectorDataSize   = 3968
	SectorFooterSize = 12

	// SectorSignature marks an initialized sector footer
	SectorSignature = 0x08012025

	SectorsPerSlot = 18
	TotalSectors   = 32
	Slot2Start     = 14

	// Sector IDs 0 through 4 carry SaveBlock2 and the four SaveBlock1
	// chunks; a slot without all of them is unusable.
	RequiredSectorIDs = 5

	SaveBlock1Size = SectorDataSize * 4
	SaveBlock2Size = SectorDataSize
)

// Footer field offsets relative to the end-of-sector footer.
const (
	footerIDOffset        = 0
	footerChecksumOffset  = 2
	footerSignatureOffset = 4
	footerCounterOffset   = 8
)

// SectorInfo describes one physical sector of the image: its footer
// fields and whether signature and checksum verification passed.
type SectorInfo struct {
	Index     int
	ID        uint16
	Checksum  uint16
	Signature uint32
	Counter   uint32
	Valid     bool
}

// ParseSectorInfo reads and validates the footer of the sector at the
// given physical index. Sectors outside the image bounds, with a bad
// signature or with a payload checksum mismatch come back invalid;
// invalid sectors are excluded from reconstruction, never repaired.
func ParseSectorInfo(image []byte, index int) SectorInfo {
	info := SectorInfo{Index: index, ID: invalidSectorID}

	footerStart := index*SectorSize + SectorSize - SectorFooterSize
	if index < 0 || footerStart+SectorFooterSize > len(image) {
		return info
	}

	footer := image[footerStart : footerStart+SectorFooterSize]
	info.ID = common.Uint16At(footer, footerIDOffset)
	info.Checksum = common.Uint16At(footer, footerChecksumOffset)
	info.Signature = common.Uint32At(footer, footerSignatureOffset)
	info.Counter = common.Uint32At(footer, footerCounterOffset)

	if info.Signature != SectorSignature {
		return info
	}

	payload := image[index*SectorSize : index*SectorSize+SectorDataSize]
	info.Valid = common.VerifySectorChecksum(payload, info.Checksum)
	return info
}

// invalidSectorID tags sectors whose footer could not be read
const invalidSectorID = 0xFFFF

// ScanSectors parses every physical sector of the image
func ScanSectors(image []byte) []SectorInfo {
	sectors := make([]SectorInfo, 0, TotalSectors)
	for i := 0; i < TotalSectors; i++ {
		sectors = append(sectors, ParseSectorInfo(image, i))
	}
	return sectors
}

// sectorPayload returns the payload region of a physical sector
func sectorPayload(image []byte, index int) []byte {
	start := index * SectorSize
	return image[start : start+SectorDataSize]
}
