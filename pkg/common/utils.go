package common

import (
	"encoding/binary"
)

// Uint16At reads a little-endian uint16 at a byte offset of a buffer
func Uint16At(data []byte, offset int) uint16 {
	return binary.LittleEndian.Uint16(data[offset : offset+2])
}

// Uint32At reads a little-endian uint32 at a byte offset of a buffer
func Uint32At(data []byte, offset int) uint32 {
	return binary.LittleEndian.Uint32(data[offset : offset+4])
}

// PutUint16At writes a little-endian uint16 at a byte offset of a buffer
func PutUint16At(data []byte, offset int, value uint16) {
	binary.LittleEndian.PutUint16(data[offset:offset+2], value)
}

// PutUint32At writes a little-endian uint32 at a byte offset of a buffer
func PutUint32At(data []byte, offset int, value uint32) {
	binary.LittleEndian.PutUint32(data[offset:offset+4], value)
}
