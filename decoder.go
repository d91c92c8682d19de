package huffcode

import (
	"fmt"

	"github.com/chronos-tachyon/assert"
)

// Decoder turns BitStrings back into byte slices by walking a Tree.
type Decoder struct {
	tree *Tree
}

// Init initializes this Decoder.  The Tree must be the one whose CodeBook
// produced the bits to be decoded.
func (d *Decoder) Init(t *Tree) {
	assert.Assertf(t != nil, "Decoder.Init: tree is nil")
	*d = Decoder{tree: t}
}

// Decode reproduces the bytes whose codes were concatenated into bits.
//
// Each bit moves a cursor from its current node to the left (0) or right (1)
// child.  Arriving at a leaf emits that leaf's symbol and returns the cursor
// to the root.  Decoding succeeds only if every bit is consumed and the cursor
// finishes at the root.
//
// If the tree's root is itself a leaf, it is treated as having only a left
// child, namely itself: each 0 bit emits the symbol and each 1 bit is an
// error.
//
// On failure, Decode returns a *CorruptStreamError and no output.
//
func (d Decoder) Decode(bits BitString) ([]byte, error) {
	assert.Assertf(d.tree != nil, "Decoder.Decode: Decoder is not initialized")

	out := make([]byte, 0, d.estimateLen(bits.Len()))
	c := d.newCursor()
	for i := uint64(0); i < bits.Len(); i++ {
		symbol, emitted, err := c.step(bits.Bit(i), i)
		if err != nil {
			return nil, err
		}
		if emitted {
			out = append(out, byte(symbol))
		}
	}
	if !c.atRoot() {
		return nil, &CorruptStreamError{Offset: bits.Len(), Reason: "stream ends in the middle of a code"}
	}
	return out, nil
}

// DecodeCount is like Decode, but additionally requires that exactly count
// symbols are produced.
func (d Decoder) DecodeCount(bits BitString, count uint64) ([]byte, error) {
	out, err := d.Decode(bits)
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) != count {
		return nil, &CorruptStreamError{
			Offset: bits.Len(),
			Reason: fmt.Sprintf("decoded %d symbols, expected %d", len(out), count),
		}
	}
	return out, nil
}

// Decode is a convenience function that decodes bits with t.
func Decode(bits BitString, t *Tree) ([]byte, error) {
	var d Decoder
	d.Init(t)
	return d.Decode(bits)
}

// estimateLen bounds the output length: every code is at least one bit long.
func (d Decoder) estimateLen(nbits uint64) uint64 {
	const maxEstimate = 1 << 24
	n := nbits
	if n > maxEstimate {
		n = maxEstimate
	}
	return n
}

// type cursor {{{

// cursor is the decoding automaton.  Its state is the index of the current
// node; it returns to the root only on reaching a leaf.
type cursor struct {
	nodes   []treeNode
	root    int32
	current int32
}

func (d Decoder) newCursor() cursor {
	return cursor{nodes: d.tree.nodes, root: d.tree.root, current: d.tree.root}
}

func (c *cursor) atRoot() bool {
	return c.current == c.root
}

// step consumes one bit found at the given offset.
func (c *cursor) step(bit uint, offset uint64) (Symbol, bool, error) {
	n := c.nodes[c.current]

	if n.isLeaf() {
		// Only reachable when the root is a leaf.
		if bit != 0 {
			return 0, false, &CorruptStreamError{Offset: offset, Reason: "single-symbol code has no right branch"}
		}
		return n.symbol, true, nil
	}

	next := n.left
	if bit != 0 {
		next = n.right
	}
	if next == noChild {
		return 0, false, &CorruptStreamError{Offset: offset, Reason: fmt.Sprintf("node #%d has no child for bit %d", c.current, bit)}
	}

	child := c.nodes[next]
	if child.isLeaf() {
		c.current = c.root
		return child.symbol, true, nil
	}
	c.current = next
	return 0, false, nil
}

// }}}
