package huffcode

// BitsPerSymbol is the size of one unencoded Symbol.
const BitsPerSymbol = 8

// OriginalBits returns the size in bits of the unencoded input counted by ft.
func OriginalBits(ft *FrequencyTable) uint64 {
	return ft.Total() * BitsPerSymbol
}

// Ratio returns original / encoded, or 0 if encoded is 0.  Both sizes are in
// bits.
func Ratio(original, encoded uint64) float64 {
	if encoded == 0 {
		return 0
	}
	return float64(original) / float64(encoded)
}

// AverageCodeLength returns the mean number of bits per input symbol when
// encoding input with frequencies ft using book.
func AverageCodeLength(book *CodeBook, ft *FrequencyTable) float64 {
	if ft.Total() == 0 {
		return 0
	}
	return float64(book.EncodedBits(ft)) / float64(ft.Total())
}
