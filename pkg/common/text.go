package common

import "fmt"

// TextTerminator ends every in-game string; bytes past it are padding.
const TextTerminator = 0xFF

// decodeTable maps Generation III western character codes to runes.
// Codes that never appear in names are left unmapped and decode to '?'.
var decodeTable [256]rune

// encodeTable is the reverse of decodeTable
var encodeTable map[rune]byte

func init() {
	decodeTable[0x00] = ' '
	for i := 0; i < 10; i++ {
		decodeTable[0xA1+i] = rune('0' + i)
	}
	punctuation := map[byte]rune{
		0xAB: '!', 0xAC: '?', 0xAD: '.', 0xAE: '-',
		0xB0: '…', 0xB1: '“', 0xB2: '”', 0xB3: '‘', 0xB4: '’',
		0xB5: '♂', 0xB6: '♀', 0xB7: '$', 0xB8: ',', 0xB9: '×', 0xBA: '/',
		0xEF: '▶', 0xF0: ':',
		0xF1: 'Ä', 0xF2: 'Ö', 0xF3: 'Ü', 0xF4: 'ä', 0xF5: 'ö', 0xF6: 'ü',
	}
	for code, r := range punctuation {
		decodeTable[code] = r
	}
	for i := 0; i < 26; i++ {
		decodeTable[0xBB+i] = rune('A' + i)
		decodeTable[0xD5+i] = rune('a' + i)
	}

	encodeTable = make(map[rune]byte)
	for code, r := range decodeTable {
		if r != 0 {
			encodeTable[r] = byte(code)
		}
	}
}

// DecodeGameString converts a fixed-length name buffer to a Go string.
// Decoding stops at the first terminator byte; the terminator itself is
// not included. Unmapped codes decode to '?'.
func DecodeGameString(encoded []byte) string {
	result := make([]rune, 0, len(encoded))
	for _, b := range encoded {
		if b == TextTerminator {
			break
		}
		r := decodeTable[b]
		if r == 0 {
			r = '?'
		}
		result = append(result, r)
	}
	return string(result)
}

// EncodeGameString converts a Go string into a fixed-length name buffer.
// The string is terminated and the remainder padded with the terminator
// byte. Strings longer than length or containing characters outside the
// game's character set fail.
func EncodeGameString(s string, length int) ([]byte, error) {
	encoded := make([]byte, length)
	for i := range encoded {
		encoded[i] = TextTerminator
	}
	pos := 0
	for _, r := range s {
		if pos >= length {
			return nil, fmt.Errorf("string %q does not fit in %d bytes", s, length)
		}
		code, ok := encodeTable[r]
		if !ok {
			return nil, fmt.Errorf("character %q has no game character code", r)
		}
		encoded[pos] = code
		pos++
	}
	return encoded, nil
}
