// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

import "testing"

func TestPrefixEncoderDecoderAgree(t *testing.T) {
	codes := []prefixCode{
		{sym: 0, len: 2},
		{sym: 1, len: 1},
		{sym: 2, len: 3},
		{sym: 3, len: 3},
	}

	var enc prefixEncoder
	enc.Init(codes)

	var dec prefixDecoder
	// The decoder's assignCodes path mutates a local copy per entry (as in
	// the reference), so hand it symbols/lengths and let it derive vals.
	dec.Init(codes, true)

	for _, c := range codes {
		val, length := enc.Code(c.sym)
		if length != c.len {
			t.Errorf("sym %d: Code length = %d, want %d", c.sym, length, c.len)
		}
		// All lengths here fit the decoder's first-level table, so the
		// encoder's bit pattern indexes straight to this symbol's entry.
		if got, want := dec.chunks[val], c.sym<<prefixCountBits|uint16(c.len); got != want {
			t.Errorf("sym %d: decoder entry for val %b = %d, want %d", c.sym, val, got, want)
		}
	}
}

func TestPrefixEncoderSingleSymbol(t *testing.T) {
	var enc prefixEncoder
	enc.Init([]prefixCode{{sym: 5, len: 1}})
	val, length := enc.Code(5)
	if length != 1 {
		t.Errorf("length = %d, want 1", length)
	}
	_ = val
}

func TestPrefixEncoderUnknownSymbolPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Code on an unknown symbol did not panic")
		}
	}()
	var enc prefixEncoder
	enc.Init([]prefixCode{{sym: 0, len: 1}, {sym: 1, len: 1}})
	enc.Code(99)
}
