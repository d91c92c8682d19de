package huffcode

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyAlphabet is returned when a Tree or FixedLengthCodec is
	// requested for a FrequencyTable with no symbols.
	ErrEmptyAlphabet = errors.New("empty alphabet")

	// ErrUnknownSymbol is matched by every *UnknownSymbolError.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrCorruptStream is matched by every *CorruptStreamError.
	ErrCorruptStream = errors.New("corrupt stream")
)

// UnknownSymbolError reports an input byte that has no code.
type UnknownSymbolError struct {
	Symbol Symbol
	Offset int
}

func (err *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol 0x%02x at offset %d", byte(err.Symbol), err.Offset)
}

// Is allows errors.Is(err, ErrUnknownSymbol).
func (err *UnknownSymbolError) Is(target error) bool {
	return target == ErrUnknownSymbol
}

// CorruptStreamError reports a bit sequence that does not decode.  Offset is
// the index of the offending bit, or the total bit count if the stream ended
// in the middle of a code.
type CorruptStreamError struct {
	Offset uint64
	Reason string
}

func (err *CorruptStreamError) Error() string {
	return fmt.Sprintf("corrupt stream at bit %d: %s", err.Offset, err.Reason)
}

// Is allows errors.Is(err, ErrCorruptStream).
func (err *CorruptStreamError) Is(target error) bool {
	return target == ErrCorruptStream
}

var (
	_ error = (*UnknownSymbolError)(nil)
	_ error = (*CorruptStreamError)(nil)
)
