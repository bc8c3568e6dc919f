package common

import "fmt"

// FieldError signals a field width, range or bounds violation while
// accessing a bit-packed field. It indicates a bug or an unsupported
// format variant and should never occur against a conformant image.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("bit field %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("bit field: %s", e.Reason)
}

// MaxBitFieldWidth is the widest field ReadBits/WriteBits support.
const MaxBitFieldWidth = 32

// ReadBits reads an unsigned integer of width bits starting at bitOffset.
// Bits are numbered from the least significant bit of byte 0 upward, so
// multi-byte fields come out little-endian. The call is stateless; the
// caller passes the absolute offset of every field.
func ReadBits(data []byte, bitOffset, width uint) (uint32, error) {
	if width == 0 || width > MaxBitFieldWidth {
		return 0, &FieldError{Reason: fmt.Sprintf("invalid bit width %d (1-%d)", width, MaxBitFieldWidth)}
	}
	if bitOffset+width > uint(len(data))*8 {
		return 0, &FieldError{Reason: fmt.Sprintf("bit range [%d,%d) exceeds buffer of %d bytes", bitOffset, bitOffset+width, len(data))}
	}

	var value uint32
	for i := uint(0); i < width; i++ {
		pos := bitOffset + i
		bit := (data[pos/8] >> (pos % 8)) & 1
		value |= uint32(bit) << i
	}
	return value, nil
}

// WriteBits writes an unsigned integer of width bits at bitOffset,
// clearing and merging only the bits owned by the field. Adjacent bits
// are left untouched. A value that does not fit in width bits fails.
func WriteBits(data []byte, bitOffset, width uint, value uint32) error {
	if width == 0 || width > MaxBitFieldWidth {
		return &FieldError{Reason: fmt.Sprintf("invalid bit width %d (1-%d)", width, MaxBitFieldWidth)}
	}
	if width < MaxBitFieldWidth && value >= 1<<width {
		return &FieldError{Reason: fmt.Sprintf("value %d does not fit in %d bits", value, width)}
	}
	if bitOffset+width > uint(len(data))*8 {
		return &FieldError{Reason: fmt.Sprintf("bit range [%d,%d) exceeds buffer of %d bytes", bitOffset, bitOffset+width, len(data))}
	}

	for i := uint(0); i < width; i++ {
		pos := bitOffset + i
		mask := byte(1) << (pos % 8)
		if value&(1<<i) != 0 {
			data[pos/8] |= mask
		} else {
			data[pos/8] &^= mask
		}
	}
	return nil
}

// FieldDescriptor names one bit-packed field so that layout offsets map
// one-to-one to descriptors instead of ad-hoc shifts in the codec.
type FieldDescriptor struct {
	Name      string
	BitOffset uint
	Width     uint
}

// Read extracts the descriptor's field from data
func (f FieldDescriptor) Read(data []byte) (uint32, error) {
	value, err := ReadBits(data, f.BitOffset, f.Width)
	if err != nil {
		if fe, ok := err.(*FieldError); ok {
			return 0, &FieldError{Field: f.Name, Reason: fe.Reason}
		}
		return 0, err
	}
	return value, nil
}

// Write stores value into the descriptor's field in data
func (f FieldDescriptor) Write(data []byte, value uint32) error {
	if err := WriteBits(data, f.BitOffset, f.Width, value); err != nil {
		if fe, ok := err.(*FieldError); ok {
			return &FieldError{Field: f.Name, Reason: fe.Reason}
		}
		return err
	}
	return nil
}
