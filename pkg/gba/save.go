package gba

import (
	"fmt"

	"github.com/hansbonini/quetzaltools/pkg/common"
)

// Slot selection modes for Reconstruct
const (
	SlotAuto = 0
	Slot1    = 1
	Slot2    = 2
)

// ActiveSlot is the reconstructed view of the winning save slot. It
// exposes each logical block as a contiguous byte range sliced from the
// read-only flash image; nothing here mutates the image.
type ActiveSlot struct {
	image     []byte
	slot      int
	counter   uint32
	sectorMap map[uint16]int
}

// slotCandidate aggregates the valid sectors of one fixed slot range
type slotCandidate struct {
	slot       int
	start, end int
	counter    uint32
	validCount int
	sectorMap  map[uint16]int
	missing    []uint16
}

// slotRange returns the physical sector range [start, end) of a slot
func slotRange(slot int) (int, int) {
	if slot == Slot2 {
		return Slot2Start, TotalSectors
	}
	return 0, SectorsPerSlot
}

// collectSlot scans one slot's sector range and groups its valid
// sectors by logical block ID. When the same ID appears twice within
// the range the sector with the higher generation counter wins.
func collectSlot(image []byte, slot int) slotCandidate {
	start, end := slotRange(slot)
	candidate := slotCandidate{
		slot:      slot,
		start:     start,
		end:       end,
		sectorMap: make(map[uint16]int),
	}

	counters := make(map[uint16]uint32)
	for i := start; i < end; i++ {
		info := ParseSectorInfo(image, i)
		common.LogDebug(common.DebugSectorInfo, i, info.ID, info.Counter, info.Checksum, info.Valid)
		if !info.Valid {
			continue
		}
		candidate.validCount++
		if info.Counter > candidate.counter {
			candidate.counter = info.Counter
		}
		if prev, ok := counters[info.ID]; !ok || info.Counter > prev {
			counters[info.ID] = info.Counter
			candidate.sectorMap[info.ID] = i
		}
	}

	for id := uint16(0); id < RequiredSectorIDs; id++ {
		if _, ok := candidate.sectorMap[id]; !ok {
			candidate.missing = append(candidate.missing, id)
		}
	}
	return candidate
}

// complete reports whether every required logical block ID is present
func (c slotCandidate) complete() bool {
	return len(c.missing) == 0
}

// Reconstruct scans the flash image, validates every sector, resolves
// the two competing save slots by generation counter and returns the
// winning slot. slot selects SlotAuto for counter-based detection, or
// Slot1/Slot2 to force a range (missing required sectors are then
// recovered from the other range when possible).
func Reconstruct(image []byte, slot int) (*ActiveSlot, error) {
	if slot != SlotAuto && slot != Slot1 && slot != Slot2 {
		return nil, fmt.Errorf("invalid slot selector %d", slot)
	}

	if slot != SlotAuto {
		return reconstructForced(image, slot)
	}

	first := collectSlot(image, Slot1)
	second := collectSlot(image, Slot2)

	var winner slotCandidate
	switch {
	case first.complete() && second.complete():
		// Higher generation counter wins; slot 2 wins ties because it
		// holds the more recent write when the counters wrapped equal.
		if second.counter >= first.counter {
			winner = second
		} else {
			winner = first
		}
	case second.complete():
		winner = second
	case first.complete():
		winner = first
	default:
		common.LogWarn(common.WarnSlotIncomplete, Slot1, first.missing)
		common.LogWarn(common.WarnSlotIncomplete, Slot2, second.missing)
		return nil, &NoValidSaveSlotError{Slot1Valid: first.validCount, Slot2Valid: second.validCount}
	}

	common.LogDebug(common.DebugSlotSummary, Slot1, first.validCount, first.counter)
	common.LogDebug(common.DebugSlotSummary, Slot2, second.validCount, second.counter)
	common.LogDebug(common.DebugSlotDecision, winner.slot)

	return &ActiveSlot{
		image:     image,
		slot:      winner.slot,
		counter:   winner.counter,
		sectorMap: winner.sectorMap,
	}, nil
}

// reconstructForced builds the slot the caller asked for, recovering
// required sectors the range is missing from the opposite range.
func reconstructForced(image []byte, slot int) (*ActiveSlot, error) {
	primary := collectSlot(image, slot)
	if primary.validCount == 0 {
		other := collectSlot(image, otherSlot(slot))
		failure := &NoValidSaveSlotError{}
		if slot == Slot1 {
			failure.Slot2Valid = other.validCount
		} else {
			failure.Slot1Valid = other.validCount
		}
		return nil, failure
	}

	if !primary.complete() {
		other := collectSlot(image, otherSlot(slot))
		remaining := primary.missing[:0]
		for _, id := range primary.missing {
			if idx, ok := other.sectorMap[id]; ok {
				primary.sectorMap[id] = idx
				common.LogWarn(common.WarnRecoveredSector, id)
				continue
			}
			remaining = append(remaining, id)
		}
		primary.missing = remaining
		if !primary.complete() {
			common.LogWarn(common.WarnSlotIncomplete, slot, primary.missing)
		}
	}

	return &ActiveSlot{
		image:     image,
		slot:      slot,
		counter:   primary.counter,
		sectorMap: primary.sectorMap,
	}, nil
}

func otherSlot(slot int) int {
	if slot == Slot1 {
		return Slot2
	}
	return Slot1
}

// Slot returns which slot range won reconstruction (Slot1 or Slot2)
func (s *ActiveSlot) Slot() int {
	return s.slot
}

// Counter returns the slot's generation counter
func (s *ActiveSlot) Counter() uint32 {
	return s.counter
}

// SectorMap returns the logical block ID to physical sector index map
func (s *ActiveSlot) SectorMap() map[uint16]int {
	result := make(map[uint16]int, len(s.sectorMap))
	for id, idx := range s.sectorMap {
		result[id] = idx
	}
	return result
}

// Block returns the payload of the logical block with the given ID.
// A block ID absent from the reconstructed slot fails with
// MissingBlockError.
func (s *ActiveSlot) Block(id uint16) ([]byte, error) {
	idx, ok := s.sectorMap[id]
	if !ok {
		return nil, &MissingBlockError{ID: id}
	}
	payload := make([]byte, SectorDataSize)
	copy(payload, sectorPayload(s.image, idx))
	return payload, nil
}

// SaveBlock1 concatenates logical blocks 1 through 4 into the game's
// main state region (party, boxes, inventory). Chunks missing from a
// forced, incomplete slot are left zeroed.
func (s *ActiveSlot) SaveBlock1() ([]byte, error) {
	data := make([]byte, SaveBlock1Size)
	found := 0
	for id := uint16(1); id <= 4; id++ {
		idx, ok := s.sectorMap[id]
		if !ok {
			common.LogWarn(common.WarnMissingSector, id)
			continue
		}
		found++
		copy(data[int(id-1)*SectorDataSize:], sectorPayload(s.image, idx))
	}
	if found == 0 {
		return nil, &MissingBlockError{ID: 1}
	}
	return data, nil
}

// SaveBlock2 returns logical block 0, the trainer state region
// (player name, play time, options).
func (s *ActiveSlot) SaveBlock2() ([]byte, error) {
	return s.Block(0)
}
