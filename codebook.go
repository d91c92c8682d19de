package huffcode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// CodeBook maps each Symbol of a Tree to its Code.
type CodeBook struct {
	codes    [NumSymbols]Code
	numCodes int
	minSize  byte
	maxSize  byte
}

// NewCodeBook derives the CodeBook for t: descending to a left child appends
// a 0 bit, descending to a right child appends a 1 bit, and the path to each
// leaf is that leaf's code.
//
// If the root of t is a leaf, its symbol is assigned the one-bit code "0".
// The Decoder treats that leaf as having an implicit left edge, so both sides
// agree on one bit per occurrence.
//
func NewCodeBook(t *Tree) CodeBook {
	assert.Assertf(t != nil, "NewCodeBook: tree is nil")

	var cb CodeBook
	rootNode := t.nodes[t.root]
	if rootNode.isLeaf() {
		cb.set(rootNode.symbol, MakeCode(1, 0))
		return cb
	}

	// Walk the tree with an explicit stack.  The code in each stackItem is
	// the path to that node.
	//
	// We use stackItem.x to keep track of where we are in the tree walk:
	//   x=0 → We just arrived at stackItem for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children

	type stackItem struct {
		index int32
		code  Code
		x     byte
	}

	stack := make([]stackItem, 0, t.NumLeaves())

	processChild := func(child int32, code Code) {
		n := t.nodes[child]
		if n.isLeaf() {
			cb.set(n.symbol, code)
			return
		}
		stack = append(stack, stackItem{index: child, code: code})
	}

	stack = append(stack, stackItem{index: t.root})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		n := t.nodes[top.index]
		switch x {
		case 0:
			processChild(n.left, top.code.Append(0))
		case 1:
			processChild(n.right, top.code.Append(1))
		case 2:
			stack = stack[:len(stack)-1]
		}
	}
	return cb
}

func (cb *CodeBook) set(symbol Symbol, hc Code) {
	assert.Assertf(hc.Size != 0, "CodeBook: empty code for symbol %d", symbol)
	if cb.numCodes == 0 {
		cb.minSize = hc.Size
		cb.maxSize = hc.Size
	} else if cb.minSize > hc.Size {
		cb.minSize = hc.Size
	} else if cb.maxSize < hc.Size {
		cb.maxSize = hc.Size
	}
	cb.codes[symbol] = hc
	cb.numCodes++
}

// Lookup returns the Code for symbol, or false if symbol has no code.
func (cb *CodeBook) Lookup(symbol Symbol) (Code, bool) {
	hc := cb.codes[symbol]
	return hc, hc.Size != 0
}

// Len returns the number of symbols with a code.
func (cb *CodeBook) Len() int {
	return cb.numCodes
}

// MinSize is the bit length of the shortest code.
func (cb *CodeBook) MinSize() byte {
	return cb.minSize
}

// MaxSize is the bit length of the longest code.
func (cb *CodeBook) MaxSize() byte {
	return cb.maxSize
}

// SizeBySymbol returns an array containing the bit length for each Symbol,
// 0 for symbols without a code.
func (cb *CodeBook) SizeBySymbol() []byte {
	out := make([]byte, NumSymbols)
	for symbol := 0; symbol < NumSymbols; symbol++ {
		out[symbol] = cb.codes[symbol].Size
	}
	return out
}

// EncodedBits returns the number of bits that encoding input with the given
// frequencies would produce, without encoding it.  This is also the weighted
// code length that Huffman's algorithm minimizes.  Symbols of ft that have no
// code are ignored.
func (cb *CodeBook) EncodedBits(ft *FrequencyTable) uint64 {
	var sum uint64
	for _, symbol := range ft.Symbols() {
		sum += ft.Count(symbol) * uint64(cb.codes[symbol].Size)
	}
	return sum
}

// Dump writes a programmer-readable debugging dump of the CodeBook to the
// given writer.
func (cb *CodeBook) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeBook{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", cb.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", cb.maxSize)
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if hc := cb.codes[symbol]; hc.Size != 0 {
			fmt.Fprintf(&buf, "\tLookup(%d) = %s\n", symbol, hc)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// String returns a short human-readable description of the CodeBook.
func (cb *CodeBook) String() string {
	return fmt.Sprintf("(Huffman code book with %d symbols, with coded lengths of %d .. %d bits)", cb.numCodes, cb.minSize, cb.maxSize)
}

var _ fmt.Stringer = (*CodeBook)(nil)
