package huffcode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	mathbits "math/bits"

	"github.com/icza/bitio"
)

// BitString is an ordered sequence of bits, such as the output of an Encoder.
//
// Bit i is bit (i % 64) of word (i / 64).  The zero value is an empty
// BitString, ready to use.
type BitString struct {
	words []uint64
	size  uint64
}

// Len returns the number of bits.
func (bs *BitString) Len() uint64 {
	return bs.size
}

// PackedLen returns the number of bytes Pack will write.
func (bs *BitString) PackedLen() uint64 {
	return (bs.size + 7) / 8
}

// Bit returns the i'th bit, 0 or 1.
func (bs *BitString) Bit(i uint64) uint {
	return uint(bs.words[i/64]>>(i%64)) & 1
}

// Grow makes room for at least n more bits without reallocating.
func (bs *BitString) Grow(n uint64) {
	need := (bs.size + n + 63) / 64
	if need > uint64(cap(bs.words)) {
		words := make([]uint64, len(bs.words), need)
		copy(words, bs.words)
		bs.words = words
	}
}

// AppendBit appends one bit.
func (bs *BitString) AppendBit(bit uint) {
	shift := bs.size % 64
	if shift == 0 {
		bs.words = append(bs.words, 0)
	}
	if bit != 0 {
		bs.words[len(bs.words)-1] |= uint64(1) << shift
	}
	bs.size++
}

// AppendCode appends every bit of hc, first bit first.
func (bs *BitString) AppendCode(hc Code) {
	remaining := uint(hc.Size)
	for _, word := range hc.Bits {
		if remaining == 0 {
			break
		}
		n := remaining
		if n > 64 {
			n = 64
		}
		bs.appendWord(word, n)
		remaining -= n
	}
}

// AppendUint appends the low n bits of value, most significant first.
func (bs *BitString) AppendUint(value uint64, n uint) {
	if n == 0 {
		return
	}
	bs.appendWord(mathbits.Reverse64(value)>>(64-n), n)
}

// appendWord appends the low n bits of word, least significant first.
func (bs *BitString) appendWord(word uint64, n uint) {
	if n < 64 {
		word &= (uint64(1) << n) - 1
	}
	shift := uint(bs.size % 64)
	if shift == 0 {
		bs.words = append(bs.words, word)
	} else {
		bs.words[len(bs.words)-1] |= word << shift
		if shift+n > 64 {
			bs.words = append(bs.words, word>>(64-shift))
		}
	}
	bs.size += uint64(n)
}

// Truncate returns a copy holding only the first n bits.  If n is at least
// Len(), the copy holds every bit.
func (bs *BitString) Truncate(n uint64) BitString {
	if n > bs.size {
		n = bs.size
	}
	numWords := (n + 63) / 64
	out := BitString{words: make([]uint64, numWords), size: n}
	copy(out.words, bs.words[:numWords])
	if rem := n % 64; rem != 0 {
		out.words[numWords-1] &= (uint64(1) << rem) - 1
	}
	return out
}

// Equal reports whether both BitStrings hold the same bits.
func (bs *BitString) Equal(other *BitString) bool {
	if bs.size != other.size {
		return false
	}
	for i := range bs.words {
		if bs.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// String returns the bits as '0' and '1' characters, first bit first.
func (bs *BitString) String() string {
	out := make([]byte, bs.size)
	for i := uint64(0); i < bs.size; i++ {
		out[i] = '0' + byte(bs.Bit(i))
	}
	return string(out)
}

// ParseBitString is the inverse of String.  Any character other than '0' or
// '1' is rejected.
func ParseBitString(str string) (BitString, error) {
	var bs BitString
	bs.Grow(uint64(len(str)))
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case '0':
			bs.AppendBit(0)
		case '1':
			bs.AppendBit(1)
		default:
			return BitString{}, fmt.Errorf("invalid character %q at index %d in bit string", str[i], i)
		}
	}
	return bs, nil
}

// WriteText writes the textual representation, one '0' or '1' byte per bit.
func (bs *BitString) WriteText(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	for i := uint64(0); i < bs.size; i++ {
		if err := bw.WriteByte('0' + byte(bs.Bit(i))); err != nil {
			return int64(i), err
		}
	}
	if err := bw.Flush(); err != nil {
		return int64(bs.size) - int64(bw.Buffered()), err
	}
	return int64(bs.size), nil
}

// ReadText reads a textual representation written by WriteText.
func ReadText(r io.Reader) (BitString, error) {
	var bs BitString
	br := bufio.NewReader(r)
	for index := 0; ; index++ {
		ch, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			return bs, nil
		}
		if err != nil {
			return BitString{}, err
		}
		switch ch {
		case '0':
			bs.AppendBit(0)
		case '1':
			bs.AppendBit(1)
		default:
			return BitString{}, fmt.Errorf("invalid character %q at index %d in bit string", ch, index)
		}
	}
}

// Pack writes the bits to w, eight per byte, first bit in the most
// significant position, with the final byte padded with zeros.  The bit count
// is not written; callers must carry Len() alongside the packed bytes.
func (bs *BitString) Pack(w io.Writer) error {
	bw := bitio.NewWriter(w)
	remaining := bs.size
	for _, word := range bs.words {
		if remaining == 0 {
			break
		}
		n := remaining
		if n > 64 {
			n = 64
		}
		if err := bw.WriteBits(mathbits.Reverse64(word)>>(64-n), uint8(n)); err != nil {
			return err
		}
		remaining -= n
	}
	return bw.Close()
}

// Unpack reads nbits bits written by Pack.  Running out of input before
// nbits bits have been read is reported as ErrCorruptStream.
func Unpack(r io.Reader, nbits uint64) (BitString, error) {
	br := bitio.NewReader(r)
	bs := BitString{words: make([]uint64, 0, (nbits+63)/64)}
	for bs.size < nbits {
		n := nbits - bs.size
		if n > 64 {
			n = 64
		}
		value, err := br.ReadBits(uint8(n))
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return BitString{}, &CorruptStreamError{Offset: bs.size, Reason: fmt.Sprintf("packed input ends before %d bits", nbits)}
		}
		if err != nil {
			return BitString{}, err
		}
		bs.words = append(bs.words, mathbits.Reverse64(value<<(64-n)))
		bs.size += n
	}
	return bs, nil
}

var _ fmt.Stringer = (*BitString)(nil)
