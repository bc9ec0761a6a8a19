// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

// dictDecoder is the decoder's sliding output window, sized 2^windowBits
// (spec.md section 3.3). Beyond the teacher's original size/dict pair, it
// now tracks enough geometry to compute the "global position" used to
// stamp block-split boundaries in absolute stream coordinates across
// wrap-around:
//
//	globalPosition = pos + (rbRoundtrips << windowBits)
//
// This formula only holds while windowBits stays fixed for the whole
// stream; spec.md section 9 notes that large-window mode (where
// windowBits can change mid-stream) would need a directly tracked
// cumulative position instead, which is out of this package's scope.
type dictDecoder struct {
	size int    // Sliding window size
	dict []byte // Sliding window history, dynamically grown to match size

	windowBits   uint
	pos          int // current write offset into dict, mod size
	rbRoundtrips int // number of completed wrap-arounds
}

func (dd *dictDecoder) Init(wbits uint) {
	// Regardless of what size claims, start with a small dictionary to avoid
	// denial-of-service attacks with large memory allocation.
	dd.size = int(1 << wbits)
	if dd.dict == nil {
		dd.dict = make([]byte, 4096)
	}
	dd.dict = dd.dict[:0]

	dd.windowBits = wbits
	dd.pos = 0
	dd.rbRoundtrips = 0
}

// write appends p to the sliding window, growing dict on demand up to
// size and wrapping pos/rbRoundtrips as the window fills.
func (dd *dictDecoder) write(p []byte) {
	if cap(dd.dict) < dd.size {
		grown := make([]byte, dd.size)
		copy(grown, dd.dict)
		dd.dict = grown
	}
	dd.dict = dd.dict[:dd.size]

	for len(p) > 0 {
		n := copy(dd.dict[dd.pos:], p)
		p = p[n:]
		dd.pos += n
		if dd.pos == dd.size {
			dd.pos = 0
			dd.rbRoundtrips++
		}
	}
}

// globalPosition returns pos + (rbRoundtrips << windowBits), the absolute
// uncompressed-stream offset DecoderState uses to stamp block-split
// boundaries (spec.md section 3.3, section 9).
func (dd *dictDecoder) globalPosition() uint64 {
	return uint64(dd.pos) + uint64(dd.rbRoundtrips)<<dd.windowBits
}
