package huffcode

import (
	"fmt"

	"github.com/chronos-tachyon/assert"
)

// FixedWidth selects how wide a FixedLengthCodec's codes are.
type FixedWidth byte

const (
	// ByteWidth gives every symbol an 8-bit code, whatever the alphabet
	// size.
	ByteWidth FixedWidth = iota

	// MinimalWidth gives every symbol a ceil(log2(N))-bit code for an
	// alphabet of N symbols, with a minimum of 1 bit.
	MinimalWidth
)

var fixedWidthNames = [...]string{"byte", "minimal"}

// String returns "byte" or "minimal".
func (fw FixedWidth) String() string {
	if int(fw) < len(fixedWidthNames) {
		return fixedWidthNames[fw]
	}
	return fmt.Sprintf("FixedWidth(%d)", byte(fw))
}

// ParseFixedWidth is the inverse of FixedWidth.String.
func ParseFixedWidth(str string) (FixedWidth, error) {
	for index, name := range fixedWidthNames {
		if name == str {
			return FixedWidth(index), nil
		}
	}
	return 0, fmt.Errorf("unknown fixed width %q, expected one of %q", str, fixedWidthNames[:])
}

// FixedLengthCodec assigns every symbol of an alphabet a code of the same
// width, independent of frequency.  It is the baseline against which Huffman
// coding is compared.
type FixedLengthCodec struct {
	indexBySymbol [NumSymbols]int16
	symbols       []Symbol
	width         byte
}

// NewFixedLengthCodec builds the codec for the alphabet of ft.  Symbols are
// numbered in ascending order, and each symbol's code is its number written
// most significant bit first.
func NewFixedLengthCodec(ft *FrequencyTable, fw FixedWidth) (FixedLengthCodec, error) {
	numSymbols := ft.Len()
	if numSymbols == 0 {
		return FixedLengthCodec{}, ErrEmptyAlphabet
	}

	var width byte
	switch fw {
	case ByteWidth:
		width = 8
	case MinimalWidth:
		width = byte(ceilLog2(uint32(numSymbols)))
		if width == 0 {
			width = 1
		}
	default:
		return FixedLengthCodec{}, fmt.Errorf("unknown fixed width %d", byte(fw))
	}
	assert.Assertf(numSymbols <= 1<<width, "%d symbols do not fit in %d bits", numSymbols, width)

	fc := FixedLengthCodec{symbols: ft.Symbols(), width: width}
	for index := range fc.indexBySymbol {
		fc.indexBySymbol[index] = -1
	}
	for index, symbol := range fc.symbols {
		fc.indexBySymbol[symbol] = int16(index)
	}
	return fc, nil
}

// Width returns the number of bits in every code.
func (fc *FixedLengthCodec) Width() byte {
	return fc.width
}

// Len returns the number of symbols in the alphabet.
func (fc *FixedLengthCodec) Len() int {
	return len(fc.symbols)
}

// Lookup returns the Code for symbol, or false if symbol is not in the
// alphabet.
func (fc *FixedLengthCodec) Lookup(symbol Symbol) (Code, bool) {
	index := fc.indexBySymbol[symbol]
	if index < 0 {
		return Code{}, false
	}
	var bs BitString
	bs.AppendUint(uint64(index), uint(fc.width))
	return MakeCode(fc.width, bs.words[0]), true
}

// Encode writes each byte of data as its fixed-width code.  If some byte is
// not in the alphabet, Encode returns a *UnknownSymbolError and no bits.
func (fc *FixedLengthCodec) Encode(data []byte) (BitString, error) {
	var bs BitString
	bs.Grow(uint64(len(data)) * uint64(fc.width))
	for offset, b := range data {
		index := fc.indexBySymbol[b]
		if index < 0 {
			return BitString{}, &UnknownSymbolError{Symbol: Symbol(b), Offset: offset}
		}
		bs.AppendUint(uint64(index), uint(fc.width))
	}
	return bs, nil
}

// Decode is the inverse of Encode.  A trailing partial code, or a code that
// numbers no symbol, yields a *CorruptStreamError and no output.
func (fc *FixedLengthCodec) Decode(bits BitString) ([]byte, error) {
	width := uint64(fc.width)
	if rem := bits.Len() % width; rem != 0 {
		return nil, &CorruptStreamError{
			Offset: bits.Len() - rem,
			Reason: fmt.Sprintf("trailing %d bits do not form a %d-bit code", rem, width),
		}
	}

	out := make([]byte, 0, bits.Len()/width)
	for offset := uint64(0); offset < bits.Len(); offset += width {
		var index uint64
		for i := uint64(0); i < width; i++ {
			index = (index << 1) | uint64(bits.Bit(offset+i))
		}
		if index >= uint64(len(fc.symbols)) {
			return nil, &CorruptStreamError{
				Offset: offset,
				Reason: fmt.Sprintf("code %d is outside the %d-symbol alphabet", index, len(fc.symbols)),
			}
		}
		out = append(out, byte(fc.symbols[index]))
	}
	return out, nil
}

// EncodedBits returns the number of bits Encode would produce for input with
// the given frequencies.
func (fc *FixedLengthCodec) EncodedBits(ft *FrequencyTable) uint64 {
	return ft.Total() * uint64(fc.width)
}
