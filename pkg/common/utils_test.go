package common

import (
	"testing"
)

func TestOffsetAccessors(t *testing.T) {
	data := make([]byte, 8)

	PutUint16At(data, 2, 0xBEEF)
	PutUint32At(data, 4, 0xDEADC0DE)

	if got := Uint16At(data, 2); got != 0xBEEF {
		t.Errorf("Uint16At() = 0x%04X, want 0xBEEF", got)
	}
	if got := Uint32At(data, 4); got != 0xDEADC0DE {
		t.Errorf("Uint32At() = 0x%08X, want 0xDEADC0DE", got)
	}
	if data[0] != 0 || data[1] != 0 {
		t.Error("writes touched bytes outside their field")
	}
}

func TestLittleEndianByteOrder(t *testing.T) {
	data := make([]byte, 4)
	PutUint32At(data, 0, 0x12345678)

	want := []byte{0x78, 0x56, 0x34, 0x12}
	for i, b := range want {
		if data[i] != b {
			t.Errorf("data[%d] = 0x%02X, want 0x%02X", i, data[i], b)
		}
	}
}
