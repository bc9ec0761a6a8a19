// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

import "testing"

func TestDecoderStateInitSeedsDistanceRingBuffer(t *testing.T) {
	var s DecoderState
	if err := s.Init(Allocator{}, 16, false); err != nil {
		t.Fatalf("Init: %v", err)
	}
	want := [4]int{16, 15, 11, 4}
	if s.distRb != want {
		t.Errorf("distRb = %v, want %v", s.distRb, want)
	}
}

func TestDecoderStateWithoutRecompressionSkipsStores(t *testing.T) {
	var s DecoderState
	if err := s.Init(Allocator{}, 16, false); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := s.MetablockBegin(); err != nil {
		t.Fatalf("MetablockBegin: %v", err)
	}
	s.CleanupAfterMetablock()
	if s.literalsBlockSplits.numBlocks != 0 {
		t.Errorf("numBlocks = %d, want 0 when recompression capture is disabled", s.literalsBlockSplits.numBlocks)
	}
	s.Cleanup()
}

func TestDecoderStateCapturesOneMetablock(t *testing.T) {
	var s DecoderState
	if err := s.Init(Allocator{}, 16, true); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer s.Cleanup()

	if err := s.MetablockBegin(); err != nil {
		t.Fatalf("MetablockBegin: %v", err)
	}

	// Tentative slot opened, not yet committed.
	if s.literalsBlockSplits.numBlocks != 0 {
		t.Errorf("numBlocks = %d before CleanupAfterMetablock, want 0 (tentative)", s.literalsBlockSplits.numBlocks)
	}

	s.ring.write(make([]byte, 10))
	s.CleanupAfterMetablock()

	if s.literalsBlockSplits.numBlocks != 1 {
		t.Fatalf("numBlocks = %d after CleanupAfterMetablock, want 1", s.literalsBlockSplits.numBlocks)
	}
	if got, want := s.literalsBlockSplits.positionsBegin[0], uint32(0); got != want {
		t.Errorf("positionsBegin[0] = %d, want %d", got, want)
	}
	if got, want := s.literalsBlockSplits.positionsEnd[0], uint32(10); got != want {
		t.Errorf("positionsEnd[0] = %d, want %d", got, want)
	}
}

func TestDecoderStateGlobalPositionSurvivesWrap(t *testing.T) {
	var s DecoderState
	if err := s.Init(Allocator{}, 4, true); err != nil { // window size 16
		t.Fatalf("Init: %v", err)
	}
	defer s.Cleanup()

	s.ring.size = 16
	s.ring.write(make([]byte, 20)) // wraps once, pos ends at 4

	got := s.globalPosition()
	want := uint32(4 + 1<<4)
	if got != want {
		t.Errorf("globalPosition() = %d, want %d", got, want)
	}
}

func TestDecoderStateCleanupFreesStoresAfterAbortedMetablock(t *testing.T) {
	var s DecoderState
	if err := s.Init(Allocator{}, 16, true); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := s.MetablockBegin(); err != nil {
		t.Fatalf("MetablockBegin: %v", err)
	}
	// Simulate an aborted decode: Cleanup is called directly, without an
	// intervening CleanupAfterMetablock, mirroring BrotliDecoderStateCleanup
	// always finishing any in-flight metablock first.
	s.Cleanup()
	if s.literalsBlockSplits.numBlocks != 0 {
		t.Errorf("numBlocks = %d, want 0 (store was freed by Cleanup)", s.literalsBlockSplits.numBlocks)
	}
}
