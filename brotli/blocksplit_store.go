// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

// initStoredBlockSplits is the initial capacity new block-split stores are
// created with. The reference implementation names this
// BROTLI_INIT_STORED_BLOCK_SPLITS; any value >= 1 is valid.
const initStoredBlockSplits = 32

// blockSplitStore is the decoder-captured record of the block-split
// structure observed for one histogram class (literals, or insert-copy
// commands) across the whole stream, in global uncompressed-stream
// coordinates. See spec.md section 3.1.
//
// types, positionsBegin, and positionsEnd are parallel arrays: block i
// spans [positionsBegin[i], positionsEnd[i]) and belongs to histogram
// class types[i]. They are kept as three parallel slices rather than one
// slice of structs because the decoder fills positionsBegin at metablock
// entry and positionsEnd at metablock exit, with a capacity-growth step in
// between (see metablockBegin/cleanupAfterMetablock in decoder_state.go);
// an array-of-structs would force a sentinel value for the not-yet-known
// end position.
type blockSplitStore struct {
	types          []uint8
	positionsBegin []uint32
	positionsEnd   []uint32

	numBlocks              int
	numTypes               int
	numTypesPrevMetablocks int

	typesAllocSize     int
	positionsAllocSize int
}

// init allocates the three backing arrays at their initial capacity. It is
// called twice per decoder (once for literals, once for insert-copy
// lengths) from DecoderState.Init, mirroring InitBlockSplitStored in
// original_source/c/dec/state.c.
func (s *blockSplitStore) init(a Allocator) bool {
	types, ok := allocTyped[uint8](a, initStoredBlockSplits)
	if !ok {
		return false
	}
	begin, ok := allocTyped[uint32](a, initStoredBlockSplits)
	if !ok {
		a.free(bufOf(types))
		return false
	}
	end, ok := allocTyped[uint32](a, initStoredBlockSplits)
	if !ok {
		a.free(bufOf(types))
		a.free(bufOf(begin))
		return false
	}
	*s = blockSplitStore{
		types:              types,
		positionsBegin:     begin,
		positionsEnd:       end,
		typesAllocSize:     initStoredBlockSplits,
		positionsAllocSize: initStoredBlockSplits,
	}
	return true
}

// free releases all three backing arrays through the allocator. Safe to
// call on a zero-value store.
func (s *blockSplitStore) free(a Allocator) {
	a.free(bufOf(s.types))
	a.free(bufOf(s.positionsBegin))
	a.free(bufOf(s.positionsEnd))
	*s = blockSplitStore{}
}

// ensureCapacity grows the store so that all three arrays can hold at
// least requested elements, per spec.md section 4.4. On success, it
// leaves numBlocks and every other committed field untouched; on failure
// the store is restored to exactly the state it had on entry (spec.md
// section 8: "on failure, {types, positions_begin, positions_end,
// *_alloc_size, num_blocks} are unchanged").
//
// Growth is geometric with a 2x headroom factor over the request, so that
// repeated +1 growth (the common case: one new block per metablock) is
// amortized rather than linear.
func (s *blockSplitStore) ensureCapacity(a Allocator, requested int) bool {
	if s.typesAllocSize >= requested && s.positionsAllocSize >= requested {
		return true
	}

	// A grown types array is only installed once the positions growth
	// (if any) has also succeeded, so a failure at any step leaves all
	// three arrays and both alloc sizes as they were on entry.
	var newTypes []uint8
	if s.typesAllocSize < requested {
		var ok bool
		if newTypes, ok = allocTyped[uint8](a, 2*requested); !ok {
			return false
		}
		copy(newTypes, s.types[:s.numBlocks])
	}

	if s.positionsAllocSize < requested {
		newBegin, ok := allocTyped[uint32](a, 2*requested)
		if !ok {
			a.free(bufOf(newTypes))
			return false
		}
		newEnd, ok := allocTyped[uint32](a, 2*requested)
		if !ok {
			// positions_begin and positions_end must grow in lockstep; if
			// either fails, the store keeps its previous, internally
			// consistent arrays (spec.md section 4.4). The spare buffers
			// were never installed, so they are freed rather than kept
			// around unreferenced.
			a.free(bufOf(newTypes))
			a.free(bufOf(newBegin))
			return false
		}
		copy(newBegin, s.positionsBegin[:s.numBlocks])
		copy(newEnd, s.positionsEnd[:s.numBlocks])
		a.free(bufOf(s.positionsBegin))
		a.free(bufOf(s.positionsEnd))
		s.positionsBegin = newBegin
		s.positionsEnd = newEnd
		s.positionsAllocSize = 2 * requested
	}

	if newTypes != nil {
		a.free(bufOf(s.types))
		s.types = newTypes
		s.typesAllocSize = 2 * requested
	}
	return true
}
