package huffcode

// Symbol represents one byte of input.
type Symbol byte

// NumSymbols is the size of the byte alphabet.
const NumSymbols = 256

// maxBitsPerCode is the deepest leaf a tree over NumSymbols leaves can have.
const maxBitsPerCode = NumSymbols - 1
