package huffcode

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"
)

// Tree is a Huffman code tree.  Every internal node has exactly two
// children; every leaf holds one Symbol.
//
// Nodes live in a single slice and refer to their children by index.  Leaves
// occupy the first NumLeaves() slots in ascending Symbol order, and internal
// nodes follow in the order they were merged, so the index of a node is also
// its creation order.
type Tree struct {
	nodes []treeNode
	root  int32
}

type treeNode struct {
	freq   uint64
	left   int32
	right  int32
	symbol Symbol
}

const noChild = int32(-1)

func (n treeNode) isLeaf() bool {
	return n.left == noChild
}

// BuildTree constructs the Huffman tree for the given frequencies.
//
// The two lowest-frequency nodes are merged repeatedly until one remains; the
// first node extracted becomes the left child.  Ties on frequency go to the
// node created first, so the result depends only on the table's contents.
//
// A table with a single symbol yields a Tree whose root is a leaf.  An empty
// table yields ErrEmptyAlphabet.
//
func BuildTree(ft *FrequencyTable) (*Tree, error) {
	numLeaves := ft.Len()
	if numLeaves == 0 {
		return nil, ErrEmptyAlphabet
	}

	t := &Tree{nodes: make([]treeNode, 0, 2*numLeaves-1)}
	for _, symbol := range ft.Symbols() {
		t.nodes = append(t.nodes, treeNode{
			freq:   ft.Count(symbol),
			left:   noChild,
			right:  noChild,
			symbol: symbol,
		})
	}

	// Step 1: build a minheap over the leaves.

	h := nodeHeap{nodes: t.nodes, list: make([]int32, numLeaves, 2*numLeaves-1)}
	for index := range h.list {
		h.list[index] = int32(index)
	}
	h.Init()

	// Step 2: pop two, merge, push the merged node back.  Each merge adds
	// one node to the arena; h.nodes must track the arena as it grows.

	for h.Len() > 1 {
		a := heap.Pop(&h).(int32)
		b := heap.Pop(&h).(int32)

		merged := int32(len(t.nodes))
		t.nodes = append(t.nodes, treeNode{
			freq:  t.nodes[a].freq + t.nodes[b].freq,
			left:  a,
			right: b,
		})
		h.nodes = t.nodes
		heap.Push(&h, merged)
	}

	t.root = heap.Pop(&h).(int32)
	return t, nil
}

// NumLeaves returns the number of leaves, i.e. the size of the alphabet.
func (t *Tree) NumLeaves() int {
	return (len(t.nodes) + 1) / 2
}

// NumNodes returns the total number of nodes, leaves included.
func (t *Tree) NumNodes() int {
	return len(t.nodes)
}

// Weight returns the frequency of the root, i.e. the total symbol count.
func (t *Tree) Weight() uint64 {
	return t.nodes[t.root].freq
}

// Depth returns the depth of the leaf for symbol, or false if the symbol is
// not in the tree.  The root of a single-leaf tree has depth 0.
func (t *Tree) Depth(symbol Symbol) (int, bool) {
	type stackItem struct {
		index int32
		depth int
	}
	stack := []stackItem{{t.root, 0}}
	for len(stack) != 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[item.index]
		if n.isLeaf() {
			if n.symbol == symbol {
				return item.depth, true
			}
			continue
		}
		stack = append(stack, stackItem{n.right, item.depth + 1}, stackItem{n.left, item.depth + 1})
	}
	return 0, false
}

// Dump writes a programmer-readable debugging dump of the tree to the given
// writer, one node per line in pre-order, indented by depth.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tNumLeaves() = %d\n", t.NumLeaves())
	fmt.Fprintf(&buf, "\tWeight() = %d\n", t.Weight())
	t.dumpNode(&buf, t.root, 1)
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func (t *Tree) dumpNode(buf *bytes.Buffer, index int32, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteByte('\t')
	}
	n := t.nodes[index]
	if n.isLeaf() {
		fmt.Fprintf(buf, "leaf #%d: symbol=%d freq=%d\n", index, n.symbol, n.freq)
		return
	}
	fmt.Fprintf(buf, "node #%d: freq=%d\n", index, n.freq)
	t.dumpNode(buf, n.left, depth+1)
	t.dumpNode(buf, n.right, depth+1)
}

// type nodeHeap {{{

// nodeHeap orders arena indices by (frequency, index).
type nodeHeap struct {
	nodes []treeNode
	list  []int32
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	af, bf := h.nodes[a].freq, h.nodes[b].freq
	if af != bf {
		return af < bf
	}
	return a < b
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(int32))
}

func (h *nodeHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
