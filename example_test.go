package huffcode_test

import (
	"bytes"
	"fmt"

	"github.com/chronos-tachyon/huffcode"
)

func Example() {
	data := []byte("abracadabra")

	ft := huffcode.CountBytes(data)
	tree, err := huffcode.BuildTree(&ft)
	if err != nil {
		panic(err)
	}
	book := huffcode.NewCodeBook(tree)

	bits, err := huffcode.Encode(data, &book)
	if err != nil {
		panic(err)
	}
	out, err := huffcode.Decode(bits, tree)
	if err != nil {
		panic(err)
	}

	fmt.Println(huffcode.OriginalBits(&ft), bits.Len())
	fmt.Println(bits.String())
	fmt.Println(string(out))

	// Output:
	// 88 23
	// 01101110100010101101110
	// abracadabra
}

func ExampleBitString_Pack() {
	bits, _ := huffcode.ParseBitString("101100001")

	var buf bytes.Buffer
	_ = bits.Pack(&buf)
	fmt.Printf("%d bits in %d bytes: % x\n", bits.Len(), buf.Len(), buf.Bytes())

	back, _ := huffcode.Unpack(&buf, bits.Len())
	fmt.Println(back.String())

	// Output:
	// 9 bits in 2 bytes: b0 80
	// 101100001
}

func ExampleFixedLengthCodec() {
	data := []byte("aaaaaaaab")
	ft := huffcode.CountBytes(data)

	fc, _ := huffcode.NewFixedLengthCodec(&ft, huffcode.ByteWidth)
	tree, _ := huffcode.BuildTree(&ft)
	book := huffcode.NewCodeBook(tree)

	original := huffcode.OriginalBits(&ft)
	fmt.Printf("fixed:   %d bits, ratio %.2f\n", fc.EncodedBits(&ft), huffcode.Ratio(original, fc.EncodedBits(&ft)))
	fmt.Printf("huffman: %d bits, ratio %.2f\n", book.EncodedBits(&ft), huffcode.Ratio(original, book.EncodedBits(&ft)))

	// Output:
	// fixed:   72 bits, ratio 1.00
	// huffman: 9 bits, ratio 8.00
}
