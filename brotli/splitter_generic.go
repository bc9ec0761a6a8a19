// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

import "math"

// The generic splitter (sliding-window histogram clustering over uint8 or
// uint16 symbol streams) is listed under spec.md section 6.1 as a Consumed
// external interface: this package calls it through splitBytes/splitU16s
// but does not claim to reproduce the reference clustering algorithm
// bit-for-bit (spec.md's Non-goals explicitly exclude bit-for-bit
// compatibility). greedySplit below is a straightforward stand-in good
// enough to exercise the in-scope reconciliation path in
// blocksplit_encoder.go: it buckets the stream into fixed-size strides,
// assigns each stride to whichever histogram (existing or new, up to a
// cap) minimizes an entropy-estimate cost plus a fixed switch penalty, and
// coalesces adjacent same-type strides into blocks.

// symbol is the constraint satisfied by both literal bytes and the
// uint16-encoded command/distance prefixes.
type symbol interface {
	~uint8 | ~uint16
}

// splitterParams bundles the per-category tuning knobs BrotliSplitBlock
// passes to each of the three generic-splitter invocations.
type splitterParams struct {
	symbolsPerHistogram int
	maxHistograms       int
	strideLength        int
	blockSwitchCost     float64
}

// bitCost approximates the cost, in bits, of emitting count more symbols
// under a histogram, matching the reference BitCost helper.
func bitCost(count int) float64 {
	if count == 0 {
		return -2.0
	}
	return math.Log2(float64(count))
}

// greedySplit clusters syms into a BlockSplit using p's tuning
// parameters. It never returns more than p.maxHistograms distinct types.
func greedySplit[T symbol](syms []T, p splitterParams) BlockSplit {
	var out BlockSplit
	n := len(syms)
	if n == 0 {
		return out
	}

	stride := p.strideLength
	if stride <= 0 {
		stride = n
	}

	type histogram struct {
		counts map[T]int
		total  int
	}
	histograms := make([]histogram, 0, p.maxHistograms)

	costOf := func(h histogram, chunk map[T]int, chunkTotal int) float64 {
		var cost float64
		for sym, c := range chunk {
			cost += float64(c) * bitCost(h.counts[sym]+c)
		}
		_ = chunkTotal
		return cost
	}

	chunkType := make([]int, 0, (n+stride-1)/stride)
	for start := 0; start < n; start += stride {
		end := start + stride
		if end > n {
			end = n
		}
		chunk := make(map[T]int)
		for _, s := range syms[start:end] {
			chunk[s]++
		}
		chunkTotal := end - start

		bestType := -1
		bestCost := math.Inf(1)
		for i, h := range histograms {
			c := costOf(h, chunk, chunkTotal)
			if len(chunkType) > 0 && chunkType[len(chunkType)-1] != i {
				c += p.blockSwitchCost
			}
			if c < bestCost {
				bestCost = c
				bestType = i
			}
		}
		if len(histograms) < p.maxHistograms {
			// Cost of starting a fresh histogram: each symbol costs
			// log2(count-within-chunk), no switch penalty avoided since a
			// genuinely new type is itself a switch unless it's the first
			// chunk.
			freshCost := 0.0
			for _, c := range chunk {
				freshCost += float64(c) * bitCost(c)
			}
			if len(chunkType) > 0 {
				freshCost += p.blockSwitchCost
			}
			if bestType == -1 || freshCost < bestCost {
				bestType = len(histograms)
				bestCost = freshCost
				histograms = append(histograms, histogram{counts: make(map[T]int)})
			}
		}

		h := &histograms[bestType]
		for sym, c := range chunk {
			h.counts[sym] += c
		}
		h.total += chunkTotal
		chunkType = append(chunkType, bestType)
	}

	// Coalesce adjacent same-type chunks into blocks.
	out.numTypes = len(histograms)
	curType := chunkType[0]
	curLen := 0
	for i, t := range chunkType {
		start := i * stride
		end := start + stride
		if end > n {
			end = n
		}
		chunkLen := end - start
		if t != curType {
			out.types = append(out.types, uint8(curType))
			out.lengths = append(out.lengths, curLen)
			curType = t
			curLen = 0
		}
		curLen += chunkLen
	}
	out.types = append(out.types, uint8(curType))
	out.lengths = append(out.lengths, curLen)
	out.numBlocks = len(out.types)

	return out
}

func splitBytes(syms []byte, p splitterParams) BlockSplit {
	return greedySplit(syms, p)
}

func splitU16s(syms []uint16, p splitterParams) BlockSplit {
	return greedySplit(syms, p)
}
