package huffcode

import (
	"github.com/chronos-tachyon/assert"
)

// Encoder turns byte slices into BitStrings using a CodeBook.
type Encoder struct {
	book *CodeBook
}

// Init initializes this Encoder.  The CodeBook is not copied; it must not be
// modified while the Encoder is in use.
func (e *Encoder) Init(book *CodeBook) {
	assert.Assertf(book != nil, "Encoder.Init: code book is nil")
	*e = Encoder{book: book}
}

// CodeBook returns the CodeBook this Encoder was initialized with.
func (e Encoder) CodeBook() *CodeBook {
	return e.book
}

// EncodeSymbol returns the Code for one Symbol.
func (e Encoder) EncodeSymbol(symbol Symbol) (Code, bool) {
	return e.book.Lookup(symbol)
}

// Encode concatenates the code of each byte of data, in order.
//
// If some byte has no code, Encode returns a *UnknownSymbolError for the first
// such byte and no bits.
//
func (e Encoder) Encode(data []byte) (BitString, error) {
	assert.Assertf(e.book != nil, "Encoder.Encode: Encoder is not initialized")

	// A first pass both validates the input and sizes the output.
	var nbits uint64
	for offset, b := range data {
		hc, found := e.book.Lookup(Symbol(b))
		if !found {
			return BitString{}, &UnknownSymbolError{Symbol: Symbol(b), Offset: offset}
		}
		nbits += uint64(hc.Size)
	}

	var bs BitString
	bs.Grow(nbits)
	for _, b := range data {
		bs.AppendCode(e.book.codes[b])
	}
	return bs, nil
}

// Encode is a convenience function that encodes data with book.
func Encode(data []byte, book *CodeBook) (BitString, error) {
	var e Encoder
	e.Init(book)
	return e.Encode(data)
}
