// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

// prefixEncoder is the write-side counterpart to prefixDecoder: given the
// same canonical code lengths, it looks up the (val, len) bit pattern for
// a symbol instead of decoding one from a bitstream. Canonical-code
// construction (RFC 7932 section 3.5's "next code" algorithm) is the
// Huffman-table-construction collaborator this package treats as
// external (spec.md section 1); this type only needs a correct canonical
// assignment to exist at all, not to be the fastest possible encode path.
type prefixEncoder struct {
	codes  []prefixCode // indexed by symbol
	minSym uint16
}

// Init builds the canonical code for each entry in codes from its len
// alone (any val already set in codes is ignored) and indexes the results
// by symbol for O(1) lookup. codes must be sorted by symbol
// ascending, as prefixDecoder.Init requires of its own input.
func (pe *prefixEncoder) Init(codes []prefixCode) {
	if len(codes) == 0 {
		*pe = prefixEncoder{}
		return
	}

	var bitCnts [maxPrefixBits + 1]uint
	var minBits, maxBits uint8 = 255, 0
	for _, c := range codes {
		if c.len == 0 {
			panic(ErrCorrupt)
		}
		if minBits > c.len {
			minBits = c.len
		}
		if maxBits < c.len {
			maxBits = c.len
		}
		bitCnts[c.len]++
	}

	var nextCodes [maxPrefixBits + 1]uint
	var code uint
	for i := minBits; i <= maxBits; i++ {
		code <<= 1
		nextCodes[i] = code
		code += bitCnts[i]
	}

	minSym, maxSym := codes[0].sym, codes[0].sym
	for _, c := range codes {
		if c.sym < minSym {
			minSym = c.sym
		}
		if c.sym > maxSym {
			maxSym = c.sym
		}
	}

	table := make([]prefixCode, int(maxSym-minSym)+1)
	for _, c := range codes {
		val := reverseBits(uint16(nextCodes[c.len]), uint(c.len))
		nextCodes[c.len]++
		table[c.sym-minSym] = prefixCode{sym: c.sym, val: val, len: c.len}
	}

	*pe = prefixEncoder{codes: table, minSym: minSym}
}

// Code returns the (val, len) bit pattern for sym. It panics if sym was
// not one of the symbols passed to Init, mirroring the decoder's
// panic-on-corrupt-input idiom.
func (pe *prefixEncoder) Code(sym uint16) (val uint16, length uint8) {
	idx := int(sym - pe.minSym)
	if idx < 0 || idx >= len(pe.codes) || pe.codes[idx].len == 0 {
		panic(ErrCorrupt)
	}
	c := pe.codes[idx]
	return c.val, c.len
}
