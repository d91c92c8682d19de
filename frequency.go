package huffcode

import (
	"bytes"
	"fmt"
	"io"
)

// FrequencyTable counts the occurrences of each Symbol in some input.
//
// The zero value is an empty table, ready to use.
type FrequencyTable struct {
	counts   [NumSymbols]uint64
	distinct int
	total    uint64
}

// CountBytes returns the FrequencyTable for data.
func CountBytes(data []byte) FrequencyTable {
	var ft FrequencyTable
	ft.Write(data)
	return ft
}

// CountReader returns the FrequencyTable for everything read from r until
// EOF, along with the number of bytes read.
func CountReader(r io.Reader) (FrequencyTable, int64, error) {
	var ft FrequencyTable
	n, err := io.Copy(&ft, r)
	if err != nil {
		return FrequencyTable{}, n, err
	}
	return ft, n, nil
}

// Add records n more occurrences of symbol.
func (ft *FrequencyTable) Add(symbol Symbol, n uint64) {
	if n == 0 {
		return
	}
	if ft.counts[symbol] == 0 {
		ft.distinct++
	}
	ft.counts[symbol] += n
	ft.total += n
}

// Write counts every byte of p.  It never fails, which lets a FrequencyTable
// sit at the end of an io.Copy or an io.MultiWriter.
func (ft *FrequencyTable) Write(p []byte) (int, error) {
	for _, b := range p {
		ft.Add(Symbol(b), 1)
	}
	return len(p), nil
}

// Count returns the number of occurrences of symbol.
func (ft *FrequencyTable) Count(symbol Symbol) uint64 {
	return ft.counts[symbol]
}

// Len returns the number of distinct symbols with a non-zero count.
func (ft *FrequencyTable) Len() int {
	return ft.distinct
}

// Total returns the sum of all counts, i.e. the length of the counted input.
func (ft *FrequencyTable) Total() uint64 {
	return ft.total
}

// Symbols returns the symbols with a non-zero count, in ascending order.
func (ft *FrequencyTable) Symbols() []Symbol {
	out := make([]Symbol, 0, ft.distinct)
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if ft.counts[symbol] != 0 {
			out = append(out, Symbol(symbol))
		}
	}
	return out
}

// Dump writes a programmer-readable debugging dump of the table to the given
// writer.
func (ft *FrequencyTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	fmt.Fprintf(&buf, "\tLen() = %d\n", ft.distinct)
	fmt.Fprintf(&buf, "\tTotal() = %d\n", ft.total)
	for _, symbol := range ft.Symbols() {
		fmt.Fprintf(&buf, "\tCount(%d) = %d\n", symbol, ft.counts[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

var _ io.Writer = (*FrequencyTable)(nil)
