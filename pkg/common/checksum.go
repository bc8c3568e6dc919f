package common

import "encoding/binary"

// Checksum algorithm constants.
const (
	// ChecksumMask is the 16-bit mask used in checksum calculations
	ChecksumMask = 0xFFFF

	// SectorChecksumWordSize is the word size the sector checksum sums over
	SectorChecksumWordSize = 4

	// SubstructChecksumWordSize is the word size the record checksum sums over
	SubstructChecksumWordSize = 2
)

// SectorChecksum computes the 16-bit checksum stored in a sector footer.
// The game sums every little-endian 32-bit word of the payload and folds
// the result to 16 bits by adding the high halfword to the low halfword.
// Trailing bytes short of a full word are ignored, matching the game.
func SectorChecksum(data []byte) uint16 {
	var sum uint32
	for i := 0; i+SectorChecksumWordSize <= len(data); i += SectorChecksumWordSize {
		sum += binary.LittleEndian.Uint32(data[i : i+SectorChecksumWordSize])
	}
	return uint16((sum>>16 + sum&ChecksumMask) & ChecksumMask)
}

// VerifySectorChecksum reports whether data checksums to expected
func VerifySectorChecksum(data []byte, expected uint16) bool {
	return SectorChecksum(data) == expected
}

// SubstructChecksum computes the 16-bit checksum stored in a creature
// record header. It sums every little-endian 16-bit word of the 48-byte
// plaintext substructure block, truncating to 16 bits.
func SubstructChecksum(data []byte) uint16 {
	var sum uint16
	for i := 0; i+SubstructChecksumWordSize <= len(data); i += SubstructChecksumWordSize {
		sum += binary.LittleEndian.Uint16(data[i : i+SubstructChecksumWordSize])
	}
	return sum
}

// VerifySubstructChecksum reports whether data checksums to expected
func VerifySubstructChecksum(data []byte, expected uint16) bool {
	return SubstructChecksum(data) == expected
}
