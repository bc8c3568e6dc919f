package gba

import "fmt"

// NoValidSaveSlotError indicates that neither save slot has a complete,
// checksum-valid set of required sectors. Nothing can be decoded from
// such an image.
type NoValidSaveSlotError struct {
	Slot1Valid int
	Slot2Valid int
}

func (e *NoValidSaveSlotError) Error() string {
	return fmt.Sprintf("no valid save slot: slot 1 has %d valid sector(s), slot 2 has %d",
		e.Slot1Valid, e.Slot2Valid)
}

// MissingBlockError indicates that a requested logical block ID is not
// present in the reconstructed slot.
type MissingBlockError struct {
	ID uint16
}

func (e *MissingBlockError) Error() string {
	return fmt.Sprintf("logical block %d is missing from the active save slot", e.ID)
}
