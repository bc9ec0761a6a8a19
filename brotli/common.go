// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package brotli implements a Brotli decoder and encoder augmented with a
// recompression side channel: the decoder records the exact block-split
// structure it observes (see DecoderState), and the encoder's block
// splitter can graft that captured structure onto a freshly re-mined
// command stream instead of recomputing it from scratch (see SplitBlock).
package brotli

func initLUTs() {
	initContextLUTs()
	initDictLUTs()
	initPrefixLUTs()
}

func init() { initLUTs() }
