package pkg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubstructOrderIsPermutation(t *testing.T) {
	for personality := uint32(0); personality < 24; personality++ {
		order := SubstructOrder(personality)
		seen := [SubstructCount]bool{}
		for _, slot := range order {
			require.GreaterOrEqual(t, slot, 0)
			require.Less(t, slot, SubstructCount)
			require.False(t, seen[slot], "personality %d reuses slot %d", personality, slot)
			seen[slot] = true
		}
	}
}

func TestSubstructOrderPeriod(t *testing.T) {
	require.Equal(t, SubstructOrder(7), SubstructOrder(7+24))
	require.Equal(t, SubstructOrder(0), SubstructOrder(0x12345678-0x12345678%24))
}

func TestApplyCipherInvolution(t *testing.T) {
	block := make([]byte, SubstructBlockSize)
	for i := range block {
		block[i] = byte(i * 7)
	}
	key := uint32(0xCAFEBABE)

	ciphered := ApplyCipher(block, key)
	require.False(t, bytes.Equal(block, ciphered))
	require.Equal(t, block, ApplyCipher(ciphered, key))
}

func TestApplyCipherZeroKey(t *testing.T) {
	block := []byte{0x01, 0x02, 0x03, 0x04}
	require.Equal(t, block, ApplyCipher(block, 0))
}

func TestApplyCipherDoesNotMutateInput(t *testing.T) {
	block := []byte{0x11, 0x22, 0x33, 0x44}
	original := append([]byte(nil), block...)
	ApplyCipher(block, 0xFFFFFFFF)
	require.Equal(t, original, block)
}

func TestShuffleUnshuffleInverse(t *testing.T) {
	logical := make([]byte, SubstructBlockSize)
	for i := range logical {
		// tag each byte with its substructure index so misplacement shows
		logical[i] = byte(i/SubstructSize<<4) | byte(i%SubstructSize)
	}

	for personality := uint32(0); personality < 24; personality++ {
		physical := ShuffleSubstructs(logical, personality)
		require.Equal(t, logical, UnshuffleSubstructs(physical, personality))
	}
}

func TestUnshufflePlacement(t *testing.T) {
	// personality 1 maps to permutation {0, 1, 3, 2}: logical condition
	// lives in physical slot 3 and logical misc in physical slot 2
	physical := make([]byte, SubstructBlockSize)
	for slot := 0; slot < SubstructCount; slot++ {
		for i := 0; i < SubstructSize; i++ {
			physical[slot*SubstructSize+i] = byte(slot)
		}
	}

	logical := UnshuffleSubstructs(physical, 1)
	require.Equal(t, byte(0), logical[SubstructGrowth*SubstructSize])
	require.Equal(t, byte(1), logical[SubstructAttacks*SubstructSize])
	require.Equal(t, byte(3), logical[SubstructCondition*SubstructSize])
	require.Equal(t, byte(2), logical[SubstructMisc*SubstructSize])
}
