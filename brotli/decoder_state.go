// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

// Decoder lifecycle phases, mirroring BROTLI_STATE_* in
// original_source/c/dec/state.c. Only the phases this package's step
// machine (reader.go) actually transitions through are named; the
// reference enum's metablock-header substates live entirely inside the
// bit-reader/Huffman-table-construction collaborator this package treats
// as external (spec.md section 1).
type decoderPhase uint8

const (
	phaseUninited decoderPhase = iota
	phaseMetablockBegin
	phaseMetablockBody
	phaseMetablockDone
	phaseDone
)

// DecoderState is the decoder's per-stream working set: sliding-window
// position bookkeeping, the insert-and-copy distance ring buffer, current
// metablock block-type bookkeeping, and -- when save_info_for_recompression
// is set -- the two blockSplitStore instances that record exactly the
// block-split structure this decode observed, for later reconciliation by
// the encoder (spec.md section 3.3).
type DecoderState struct {
	alloc Allocator
	phase decoderPhase

	ring dictDecoder // sliding window + pos/rbRoundtrips/windowBits geometry

	// distRb is the implicit-distance ring buffer, seeded with the RFC's
	// four initial "recent distance" values and indexed mod 4 by distRbIdx.
	distRb    [4]int
	distRbIdx int

	// Per-metablock block-type bookkeeping (spec.md section 3.3), indexed
	// 0=literals, 1=insert-copy commands, 2=distances.
	blockLength   [3]uint32
	numBlockTypes [3]int
	blockTypeRb   [6]int

	metaBlockRemainingLen int

	// saveInfoForRecompression gates whether the two stores below are
	// initialized and maintained at all; when false, MetablockBegin and
	// CleanupAfterMetablock are no-ops with respect to them, matching the
	// reference's own save_info_for_recompression guard.
	saveInfoForRecompression bool

	literalsBlockSplits      blockSplitStore
	insertCopyBlockSplits    blockSplitStore
	savedPositionLiteralsBeg bool
	savedPositionLengthsBeg  bool
}

// Init prepares a fresh DecoderState for windowBits-sized decoding,
// mirroring BrotliDecoderStateInit. recompress enables the block-split
// capture side channel (spec.md section 3.3); it corresponds to the
// reference's save_info_for_recompression flag, which this package
// always knows up front rather than toggling mid-stream (spec.md section
// 7, Non-goals: "no support for changing allocator or recompression mode
// mid-stream").
func (s *DecoderState) Init(alloc Allocator, windowBits uint, recompress bool) error {
	alloc = alloc.withDefaults()
	*s = DecoderState{
		alloc:                    alloc,
		phase:                    phaseMetablockBegin,
		distRb:                   [4]int{16, 15, 11, 4},
		saveInfoForRecompression: recompress,
	}
	s.ring.Init(windowBits)

	if recompress {
		if !s.literalsBlockSplits.init(alloc) {
			return ErrOutOfMemory
		}
		if !s.insertCopyBlockSplits.init(alloc) {
			s.literalsBlockSplits.free(alloc)
			return ErrOutOfMemory
		}
	}
	return nil
}

// globalPosition returns the current absolute uncompressed-stream offset,
// per spec.md section 9's pos + (rb_roundtrips << window_bits) formula.
func (s *DecoderState) globalPosition() uint32 {
	return uint32(s.ring.globalPosition())
}

// MetablockBegin resets per-metablock bookkeeping and, when recompression
// capture is enabled, opens a new tentative slot in each block-split
// store: a types[] entry is stamped with a fresh type id equal to
// num_types_prev_metablocks (the type count as of the end of the previous
// metablock) and positionsBegin[] is stamped with the current global position. The slot
// is tentative -- it does not count toward numBlocks -- until
// CleanupAfterMetablock commits it. See spec.md sections 3.1 and 4.3.
func (s *DecoderState) MetablockBegin() error {
	s.metaBlockRemainingLen = 0
	s.blockLength = [3]uint32{1 << 24, 1 << 24, 1 << 24}
	s.numBlockTypes = [3]int{1, 1, 1}
	s.blockTypeRb = [6]int{1, 0, 1, 0, 1, 0}

	if !s.saveInfoForRecompression {
		s.phase = phaseMetablockBody
		return nil
	}

	pos := s.globalPosition()

	if err := openTentativeSlot(s.alloc, &s.literalsBlockSplits, pos); err != nil {
		return err
	}
	s.savedPositionLiteralsBeg = true

	if err := openTentativeSlot(s.alloc, &s.insertCopyBlockSplits, pos); err != nil {
		return err
	}
	s.savedPositionLengthsBeg = true

	s.phase = phaseMetablockBody
	return nil
}

// openTentativeSlot grows store to fit one more block, stamps the new
// slot's type and begin position, and widens numTypes to cover that type
// -- the per-store half of MetablockBegin's work, shared
// between the literals and insert-copy stores.
func openTentativeSlot(alloc Allocator, store *blockSplitStore, pos uint32) error {
	if !store.ensureCapacity(alloc, store.numBlocks+1) {
		return ErrOutOfMemory
	}
	store.types[store.numBlocks] = uint8(store.numTypesPrevMetablocks)
	store.positionsBegin[store.numBlocks] = pos
	if store.numTypesPrevMetablocks+1 > store.numTypes {
		store.numTypes = store.numTypesPrevMetablocks + 1
	}
	return nil
}

// CleanupAfterMetablock frees nothing: DecoderState does not hold the
// per-metablock Huffman tree groups or context maps. When a tentative slot
// was opened by MetablockBegin, it commits it: stamps positionsEnd with the current global
// position, increments numBlocks, and carries numTypes forward as
// numTypesPrevMetablocks for the next metablock. See spec.md sections 3.1
// and 4.3.
func (s *DecoderState) CleanupAfterMetablock() {
	if !s.saveInfoForRecompression {
		s.phase = phaseMetablockDone
		return
	}

	pos := s.globalPosition()

	if s.savedPositionLiteralsBeg {
		commitTentativeSlot(&s.literalsBlockSplits, pos)
		s.savedPositionLiteralsBeg = false
	}
	if s.savedPositionLengthsBeg {
		commitTentativeSlot(&s.insertCopyBlockSplits, pos)
		s.savedPositionLengthsBeg = false
	}
	s.phase = phaseMetablockDone
}

// commitTentativeSlot stamps positionsEnd[numBlocks] and advances
// numBlocks/numTypesPrevMetablocks, the per-store half of
// CleanupAfterMetablock's work.
func commitTentativeSlot(store *blockSplitStore, pos uint32) {
	store.positionsEnd[store.numBlocks] = pos
	store.numBlocks++
	store.numTypesPrevMetablocks = store.numTypes
}

// Cleanup releases every allocator-owned resource this state still holds,
// mirroring BrotliDecoderStateCleanup: it first finishes any in-flight
// metablock (in case decoding aborted mid-metablock) and then frees the
// two block-split stores.
func (s *DecoderState) Cleanup() {
	s.CleanupAfterMetablock()
	if s.saveInfoForRecompression {
		s.literalsBlockSplits.free(s.alloc)
		s.insertCopyBlockSplits.free(s.alloc)
	}
	s.phase = phaseDone
}

// LiteralBlockSplits and InsertCopyBlockSplits expose the captured
// block-split stores for the recompression side channel once decoding
// has finished (spec.md section 6.2, "exposed" interfaces): the encoder
// reads these to build the StoredLiteralSplit values it reconciles
// against during re-encoding.
func (s *DecoderState) LiteralBlockSplits() *blockSplitStore    { return &s.literalsBlockSplits }
func (s *DecoderState) InsertCopyBlockSplits() *blockSplitStore { return &s.insertCopyBlockSplits }
