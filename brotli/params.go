// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

// Params collects the encoder tuning knobs the block splitter and its
// generic-splitter collaborator consult. It corresponds to
// BrotliEncoderParams in original_source/c/enc/block_splitter.c, trimmed
// down to two fields. SplitBlock accepts a Params but reads neither field,
// so the zero value is as good as any other.
type Params struct {
	// Quality trades encode time for ratio, as in the reference encoder's
	// "quality" knob. Nothing in this package reads it.
	Quality int

	// LgWin is the base-2 log of the sliding window size, i.e. window_bits
	// elsewhere in this package.
	LgWin int
}

// Histogram-clustering tuning constants for the three generic-splitter
// invocations in BrotliSplitBlock (spec.md section 4.5), carried over
// verbatim from the active (non-commented-out) values in
// original_source/c/enc/block_splitter.c.
const (
	kSymbolsPerLiteralHistogram = 544
	kMaxLiteralHistograms       = 100
	kLiteralStrideLength        = 70
	kLiteralBlockSwitchCost     = 28.1

	kSymbolsPerCommandHistogram = 1024
	kMaxCommandHistograms       = 50
	kCommandStrideLength        = 700
	kCommandBlockSwitchCost     = 13.5

	kSymbolsPerDistanceHistogram = 1024
	kDistanceBlockSwitchCost     = 14.6
)
