// Package huffcode implements static Huffman coding over bytes.  A
// FrequencyTable is turned into a Tree by the greedy merge algorithm, the Tree
// yields a prefix-free CodeBook, and an Encoder / Decoder pair converts between
// byte slices and BitStrings.  A FixedLengthCodec over the same alphabet
// provides a baseline for compression-ratio comparisons.
//
// Codes are not canonicalized; the tree shape itself defines them, and the
// Decoder must be given the same Tree that produced the CodeBook.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
//     Cormen et al., Introduction to Algorithms, Section 16.3
//
package huffcode
