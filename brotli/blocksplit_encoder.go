// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

// BlockSplit is the encoder-side partitioning of a symbol stream into
// contiguous blocks, each assigned a histogram/context type (spec.md
// section 3.2). Unlike the decoder's blockSplitStore, lengths are counts
// of symbols, not absolute stream positions: sum(Lengths) always equals
// the length of the array the split was computed over.
type BlockSplit struct {
	types   []uint8
	lengths []int

	numBlocks int
	numTypes  int
}

func (b *BlockSplit) Types() []uint8 { return b.types }
func (b *BlockSplit) Lengths() []int { return b.lengths }
func (b *BlockSplit) NumBlocks() int { return b.numBlocks }
func (b *BlockSplit) NumTypes() int  { return b.numTypes }

// StoredLiteralSplit is the reconciliation input for the literal pass: a
// block split captured by the decoder for one metablock, indexed by
// metablock number. It is the encoder-facing projection of a
// blockSplitStore slice (one literals_block_splits[current_metablock] in
// the reference C), expressed directly in length form since the encoder
// never needs absolute positions.
type StoredLiteralSplit struct {
	Types   []uint8
	Lengths []int
}

func (s *StoredLiteralSplit) numBlocks() int { return len(s.Lengths) }

func (s *StoredLiteralSplit) sum() int {
	var total int
	for _, l := range s.Lengths {
		total += l
	}
	return total
}

// countLiterals sums InsertLen across all commands, per spec.md section
// 4.5.1 step 1.
func countLiterals(cmds []Command) int {
	var total int
	for _, c := range cmds {
		total += c.InsertLen
	}
	return total
}

// copyLiteralsToByteArray materializes the literal bytes referenced by
// cmds into a contiguous array, walking the ring-buffered data window
// exactly as CopyLiteralsToByteArray does in
// original_source/c/enc/block_splitter.c (spec.md section 4.5.1 step 2).
func copyLiteralsToByteArray(cmds []Command, data []byte, offset, mask int) []byte {
	literals := make([]byte, countLiterals(cmds))
	pos := 0
	fromPos := offset & mask
	for i := range cmds {
		insertLen := cmds[i].InsertLen
		if fromPos+insertLen > mask {
			headSize := mask + 1 - fromPos
			copy(literals[pos:], data[fromPos:fromPos+headSize])
			fromPos = 0
			pos += headSize
			insertLen -= headSize
		}
		if insertLen > 0 {
			copy(literals[pos:pos+insertLen], data[fromPos:fromPos+insertLen])
			pos += insertLen
		}
		fromPos = (fromPos + insertLen + CommandCopyLen(&cmds[i])) & mask
	}
	return literals
}

// reconcileLiteralSplit grafts a decoder-captured literal split onto the
// freshly observed literal count, per spec.md section 4.5.1 step 4. It
// mutates a copy of stored's Lengths and returns the result as a
// BlockSplit whose numBlocks is the (possibly reduced) block count.
//
// literalsCount is the number of literal bytes this encoder pass actually
// produced; storedLiteralsCount is Σ stored.Lengths. The two can differ
// because the command stream being re-encoded was re-mined from decoded
// bytes rather than replayed verbatim.
func reconcileLiteralSplit(stored *StoredLiteralSplit, literalsCount int) (BlockSplit, error) {
	numBlocks := stored.numBlocks()
	lengths := append([]int(nil), stored.Lengths...)
	types := append([]uint8(nil), stored.Types...)
	storedLiteralsCount := stored.sum()

	switch {
	case literalsCount < storedLiteralsCount:
		toDelete := storedLiteralsCount - literalsCount
		for numBlocks > 0 && lengths[numBlocks-1] <= toDelete {
			if numBlocks == 1 {
				// The entire stored split would be consumed: spec.md
				// section 9 resolves the reference implementation's
				// "unreachable" diagnostic-print branch into an explicit
				// error instead of silently underflowing numBlocks to -1.
				return BlockSplit{}, ErrReconcileOverflow
			}
			numBlocks--
			toDelete -= lengths[numBlocks]
		}
		lengths[numBlocks-1] -= toDelete

	case literalsCount > storedLiteralsCount:
		lengths[numBlocks-1] += literalsCount - storedLiteralsCount
	}

	lengths = lengths[:numBlocks]
	types = types[:numBlocks]
	return BlockSplit{
		types:     types,
		lengths:   lengths,
		numBlocks: numBlocks,
		numTypes:  numTypesOf(types),
	}, nil
}

func numTypesOf(types []uint8) int {
	var maxType int
	for _, t := range types {
		if int(t)+1 > maxType {
			maxType = int(t) + 1
		}
	}
	return maxType
}

// SplitBlock computes the three BlockSplits (literals, insert-and-copy
// commands, distances) for one metablock's command stream, per spec.md
// section 4.5. storedLiteralSplits and currentMetablock implement the
// reconciliation branch described in section 4.5.1: when a non-empty
// stored split exists for *currentMetablock, it is grafted onto the
// freshly observed literal stream instead of re-running the generic
// splitter, and *currentMetablock is advanced.
func SplitBlock(
	cmds []Command,
	data []byte,
	pos, mask int,
	params Params,
	storedLiteralSplits []StoredLiteralSplit,
	currentMetablock *int,
) (literalSplit, cmdSplit, distSplit BlockSplit, err error) {
	literalSplit, err = splitLiterals(cmds, data, pos, mask, storedLiteralSplits, currentMetablock)
	if err != nil {
		return BlockSplit{}, BlockSplit{}, BlockSplit{}, err
	}

	cmdSplit = splitCommands(cmds)
	distSplit = splitDistances(cmds)
	return literalSplit, cmdSplit, distSplit, nil
}

// splitLiterals implements spec.md section 4.5.1 in full: materialize the
// literal stream, then either run the generic splitter (no usable stored
// split) or reconcile a stored split onto the observed literal count.
func splitLiterals(
	cmds []Command,
	data []byte,
	pos, mask int,
	storedLiteralSplits []StoredLiteralSplit,
	currentMetablock *int,
) (BlockSplit, error) {
	literalsCount := countLiterals(cmds)
	literals := copyLiteralsToByteArray(cmds, data, pos, mask)

	haveStored := len(storedLiteralSplits) > 0 &&
		*currentMetablock < len(storedLiteralSplits) &&
		storedLiteralSplits[*currentMetablock].numBlocks() > 0

	if !haveStored {
		return splitBytes(literals, splitterParams{
			symbolsPerHistogram: kSymbolsPerLiteralHistogram,
			maxHistograms:       kMaxLiteralHistograms,
			strideLength:        kLiteralStrideLength,
			blockSwitchCost:     kLiteralBlockSwitchCost,
		}), nil
	}

	split, err := reconcileLiteralSplit(&storedLiteralSplits[*currentMetablock], literalsCount)
	if err != nil {
		return BlockSplit{}, err
	}
	*currentMetablock++
	return split, nil
}

// splitCommands implements spec.md section 4.5.2. The command pass is
// never reconciled; it is always recomputed from cmd_prefix.
func splitCommands(cmds []Command) BlockSplit {
	prefixes := make([]uint16, len(cmds))
	for i := range cmds {
		prefixes[i] = cmds[i].CmdPrefix
	}
	return splitU16s(prefixes, splitterParams{
		symbolsPerHistogram: kSymbolsPerCommandHistogram,
		maxHistograms:       kMaxCommandHistograms,
		strideLength:        kCommandStrideLength,
		blockSwitchCost:     kCommandBlockSwitchCost,
	})
}

// splitDistances implements spec.md section 4.5.3: only commands with a
// nonzero copy length and cmd_prefix >= 128 carry a distance field.
func splitDistances(cmds []Command) BlockSplit {
	prefixes := make([]uint16, 0, len(cmds))
	for i := range cmds {
		cmd := &cmds[i]
		if CommandCopyLen(cmd) != 0 && cmd.CmdPrefix >= 128 {
			prefixes = append(prefixes, cmd.DistPrefix&0x3FF)
		}
	}
	return splitU16s(prefixes, splitterParams{
		symbolsPerHistogram: kSymbolsPerDistanceHistogram,
		maxHistograms:       kMaxCommandHistograms,
		strideLength:        kCommandStrideLength,
		blockSwitchCost:     kDistanceBlockSwitchCost,
	})
}
