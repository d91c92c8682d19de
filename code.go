package huffcode

import (
	"fmt"
	"strconv"
	"strings"
)

const codeWords = (maxBitsPerCode + 63) / 64

// Code represents the sequence of bits assigned to one Symbol.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  Bit i of the code is bit
	// (i % 64) of Bits[i / 64], so the least significant bit of Bits[0] is
	// the first bit on the wire.
	Bits [codeWords]uint64
}

// MakeCode is a convenience function that constructs a Code of up to 64 bits.
// The least significant bit of bits is the first bit.
func MakeCode(size byte, bits uint64) Code {
	if size > 64 {
		size = 64
	}
	var hc Code
	hc.Size = size
	if size < 64 {
		bits &= (uint64(1) << size) - 1
	}
	hc.Bits[0] = bits
	return hc
}

// ParseCode constructs a Code from a string of '0' and '1' characters, first
// bit first.
func ParseCode(str string) (Code, error) {
	if len(str) > maxBitsPerCode {
		return Code{}, fmt.Errorf("code %q is too long: got %d bits, max %d", str, len(str), maxBitsPerCode)
	}
	var hc Code
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case '0':
			hc = hc.Append(0)
		case '1':
			hc = hc.Append(1)
		default:
			return Code{}, fmt.Errorf("invalid character %q at index %d in code %q", str[i], i, str)
		}
	}
	return hc, nil
}

// Bit returns the i'th bit of this Code, 0 or 1.
func (hc Code) Bit(i int) uint {
	return uint(hc.Bits[i/64]>>(uint(i)%64)) & 1
}

// Append returns a copy of this Code with one more bit at the end.
func (hc Code) Append(bit uint) Code {
	i := uint(hc.Size)
	if bit != 0 {
		hc.Bits[i/64] |= uint64(1) << (i % 64)
	}
	hc.Size++
	return hc
}

// HasPrefix reports whether prefix is a prefix of this Code.  Every Code has
// itself and the empty Code as prefixes.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	for i := 0; i < int(prefix.Size); i++ {
		if hc.Bit(i) != prefix.Bit(i) {
			return false
		}
	}
	return true
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	var sb strings.Builder
	sb.Grow(int(hc.Size))
	for i := 0; i < int(hc.Size); i++ {
		sb.WriteByte('0' + byte(hc.Bit(i)))
	}
	return strconv.Quote(sb.String())
}

var _ fmt.Stringer = Code{}
