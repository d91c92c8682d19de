package huffcode

import (
	"bytes"
	"errors"
	"testing"
)

func TestFixedLengthCodec_Width(t *testing.T) {
	type testRow struct {
		numSymbols int
		fw         FixedWidth
		width      byte
	}

	testData := [...]testRow{
		{numSymbols: 1, fw: MinimalWidth, width: 1},
		{numSymbols: 2, fw: MinimalWidth, width: 1},
		{numSymbols: 3, fw: MinimalWidth, width: 2},
		{numSymbols: 4, fw: MinimalWidth, width: 2},
		{numSymbols: 5, fw: MinimalWidth, width: 3},
		{numSymbols: 129, fw: MinimalWidth, width: 8},
		{numSymbols: 256, fw: MinimalWidth, width: 8},
		{numSymbols: 1, fw: ByteWidth, width: 8},
		{numSymbols: 256, fw: ByteWidth, width: 8},
	}
	for _, row := range testData {
		var ft FrequencyTable
		for index := 0; index < row.numSymbols; index++ {
			ft.Add(Symbol(index), 1)
		}
		fc, err := NewFixedLengthCodec(&ft, row.fw)
		if err != nil {
			t.Fatalf("NewFixedLengthCodec(%d, %s) failed: %v", row.numSymbols, row.fw, err)
		}
		if fc.Width() != row.width {
			t.Errorf("NewFixedLengthCodec(%d, %s): expected width %d, got %d", row.numSymbols, row.fw, row.width, fc.Width())
		}
		if fc.Len() != row.numSymbols {
			t.Errorf("NewFixedLengthCodec(%d, %s): expected %d symbols, got %d", row.numSymbols, row.fw, row.numSymbols, fc.Len())
		}
	}
}

func TestFixedLengthCodec_Empty(t *testing.T) {
	var ft FrequencyTable
	if _, err := NewFixedLengthCodec(&ft, ByteWidth); !errors.Is(err, ErrEmptyAlphabet) {
		t.Errorf("expected ErrEmptyAlphabet, got %v", err)
	}
}

func TestFixedLengthCodec_RoundTrip(t *testing.T) {
	data := []byte("abracadabra")
	ft := CountBytes(data)

	for _, fw := range []FixedWidth{ByteWidth, MinimalWidth} {
		t.Run(fw.String(), func(t *testing.T) {
			fc, err := NewFixedLengthCodec(&ft, fw)
			if err != nil {
				t.Fatalf("NewFixedLengthCodec failed: %v", err)
			}
			bits, err := fc.Encode(data)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if bits.Len() != fc.EncodedBits(&ft) {
				t.Errorf("EncodedBits predicted %d bits, Encode produced %d", fc.EncodedBits(&ft), bits.Len())
			}
			out, err := fc.Decode(bits)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if !bytes.Equal(data, out) {
				t.Errorf("round trip mismatch: %q", out)
			}
		})
	}
}

func TestFixedLengthCodec_Lookup(t *testing.T) {
	ft := CountBytes([]byte("abc"))
	fc, _ := NewFixedLengthCodec(&ft, MinimalWidth)

	hc, found := fc.Lookup('c')
	if !found || hc.String() != "\"10\"" {
		t.Errorf("Lookup('c') = %s, %v", hc, found)
	}
	if _, found := fc.Lookup('d'); found {
		t.Errorf("Lookup('d') unexpectedly found")
	}
	if _, err := fc.Encode([]byte("abd")); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("expected ErrUnknownSymbol, got %v", err)
	}
}

func TestFixedLengthCodec_Corrupt(t *testing.T) {
	ft := CountBytes([]byte("abc"))
	fc, _ := NewFixedLengthCodec(&ft, MinimalWidth)

	for _, str := range []string{"0011", "000", "0001100"} {
		bits, _ := ParseBitString(str)
		if out, err := fc.Decode(bits); !errors.Is(err, ErrCorruptStream) {
			t.Errorf("Decode(%q) = %q, %v; expected ErrCorruptStream", str, out, err)
		}
	}
}

func TestFixedLengthCodec_NeverBeatsHuffman(t *testing.T) {
	inputs := []string{
		"a",
		"ab",
		"aaaaaaaab",
		"abracadabra",
		"the quick brown fox jumps over the lazy dog",
		string(allBytes()),
	}
	for _, input := range inputs {
		data := []byte(input)
		ft := CountBytes(data)
		tree, _ := BuildTree(&ft)
		cb := NewCodeBook(tree)
		fc, _ := NewFixedLengthCodec(&ft, MinimalWidth)
		if h, f := cb.EncodedBits(&ft), fc.EncodedBits(&ft); h > f {
			t.Errorf("%q: Huffman %d bits > fixed %d bits", input, h, f)
		}
	}
}

func TestParseFixedWidth(t *testing.T) {
	for _, fw := range []FixedWidth{ByteWidth, MinimalWidth} {
		parsed, err := ParseFixedWidth(fw.String())
		if err != nil || parsed != fw {
			t.Errorf("ParseFixedWidth(%q) = %v, %v", fw.String(), parsed, err)
		}
	}
	if _, err := ParseFixedWidth("nibble"); err == nil {
		t.Errorf("ParseFixedWidth accepted %q", "nibble")
	}
}
