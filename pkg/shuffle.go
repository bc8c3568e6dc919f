// Package pkg implements the creature record codec for Pokémon Quetzal
// save data: the 80/104-byte record layouts, the personality-keyed
// substructure permutation, the XOR stream cipher and the derived
// attribute lookups.
package pkg

// Substructure block geometry
const (
	SubstructSize      = 12
	SubstructCount     = 4
	SubstructBlockSize = SubstructSize * SubstructCount
)

// Logical substructure identities
const (
	SubstructGrowth = iota
	SubstructAttacks
	SubstructCondition
	SubstructMisc
)

// substructOrders is the fixed permutation table keyed by
// personality % 24. Entry i of a permutation is the physical slot that
// holds logical substructure i. This is a pure data table; no dispatch
// happens per personality residue.
var substructOrders = [24][SubstructCount]int{
	{0, 1, 2, 3}, {0, 1, 3, 2}, {0, 2, 1, 3}, {0, 2, 3, 1},
	{0, 3, 1, 2}, {0, 3, 2, 1}, {1, 0, 2, 3}, {1, 0, 3, 2},
	{1, 2, 0, 3}, {1, 2, 3, 0}, {1, 3, 0, 2}, {1, 3, 2, 0},
	{2, 0, 1, 3}, {2, 0, 3, 1}, {2, 1, 0, 3}, {2, 1, 3, 0},
	{2, 3, 0, 1}, {2, 3, 1, 0}, {3, 0, 1, 2}, {3, 0, 2, 1},
	{3, 1, 0, 2}, {3, 1, 2, 0}, {3, 2, 0, 1}, {3, 2, 1, 0},
}

// SubstructOrder returns the substructure permutation for a personality
// value: element i is the physical 12-byte slot holding logical
// substructure i. Total over all personality values, period 24.
func SubstructOrder(personality uint32) [SubstructCount]int {
	return substructOrders[personality%24]
}

// ApplyCipher XORs every little-endian 32-bit word of block with key
// and returns the result; the input is not modified. The operation is
// an involution, so the same call both enciphers and deciphers.
func ApplyCipher(block []byte, key uint32) []byte {
	out := make([]byte, len(block))
	copy(out, block)
	for i := 0; i+4 <= len(out); i += 4 {
		out[i] ^= byte(key)
		out[i+1] ^= byte(key >> 8)
		out[i+2] ^= byte(key >> 16)
		out[i+3] ^= byte(key >> 24)
	}
	return out
}

// UnshuffleSubstructs rearranges a raw 48-byte substructure block from
// physical order into logical growth/attacks/condition/misc order.
func UnshuffleSubstructs(block []byte, personality uint32) []byte {
	order := SubstructOrder(personality)
	logical := make([]byte, SubstructBlockSize)
	for i := 0; i < SubstructCount; i++ {
		physical := order[i]
		copy(logical[i*SubstructSize:(i+1)*SubstructSize],
			block[physical*SubstructSize:(physical+1)*SubstructSize])
	}
	return logical
}

// ShuffleSubstructs is the inverse of UnshuffleSubstructs: it places
// each logical substructure into its physical slot.
func ShuffleSubstructs(logical []byte, personality uint32) []byte {
	order := SubstructOrder(personality)
	physical := make([]byte, SubstructBlockSize)
	for i := 0; i < SubstructCount; i++ {
		copy(physical[order[i]*SubstructSize:(order[i]+1)*SubstructSize],
			logical[i*SubstructSize:(i+1)*SubstructSize])
	}
	return physical
}
