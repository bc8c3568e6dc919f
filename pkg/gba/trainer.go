package gba

import (
	"fmt"

	"github.com/hansbonini/quetzaltools/pkg/common"
)

// SaveBlock2 trainer field layout
const (
	PlayerNameLength = 8

	playTimeHoursOffset   = 0x10
	playTimeMinutesOffset = 0x14
	playTimeSecondsOffset = 0x15

	trainerInfoMinSize = playTimeSecondsOffset + 1
)

// PlayTime is the accumulated play clock stored in SaveBlock2
type PlayTime struct {
	Hours   uint32 `json:"hours" yaml:"hours"`
	Minutes uint8  `json:"minutes" yaml:"minutes"`
	Seconds uint8  `json:"seconds" yaml:"seconds"`
}

func (t PlayTime) String() string {
	return fmt.Sprintf("%dh %dm %ds", t.Hours, t.Minutes, t.Seconds)
}

// TrainerInfo is the decoded trainer state from logical block 0
type TrainerInfo struct {
	PlayerName string   `json:"player_name" yaml:"player_name"`
	PlayTime   PlayTime `json:"play_time" yaml:"play_time"`
}

// DecodeTrainerInfo decodes the trainer fields from a SaveBlock2 buffer
func DecodeTrainerInfo(block []byte) (*TrainerInfo, error) {
	if len(block) < trainerInfoMinSize {
		return nil, fmt.Errorf("SaveBlock2 data too small: got %d bytes, need %d", len(block), trainerInfoMinSize)
	}

	return &TrainerInfo{
		PlayerName: common.DecodeGameString(block[:PlayerNameLength]),
		PlayTime: PlayTime{
			Hours:   common.Uint32At(block, playTimeHoursOffset),
			Minutes: block[playTimeMinutesOffset],
			Seconds: block[playTimeSecondsOffset],
		},
	}, nil
}
