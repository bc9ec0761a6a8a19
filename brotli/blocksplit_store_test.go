// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

import "testing"

func TestBlockSplitStoreInit(t *testing.T) {
	var s blockSplitStore
	var a Allocator
	a = a.withDefaults()

	if !s.init(a) {
		t.Fatalf("init failed unexpectedly")
	}
	defer s.free(a)

	if s.typesAllocSize != initStoredBlockSplits {
		t.Errorf("typesAllocSize = %d, want %d", s.typesAllocSize, initStoredBlockSplits)
	}
	if s.positionsAllocSize != initStoredBlockSplits {
		t.Errorf("positionsAllocSize = %d, want %d", s.positionsAllocSize, initStoredBlockSplits)
	}
	if len(s.types) != initStoredBlockSplits || len(s.positionsBegin) != initStoredBlockSplits || len(s.positionsEnd) != initStoredBlockSplits {
		t.Errorf("backing arrays not sized to initStoredBlockSplits")
	}
}

func TestBlockSplitStoreEnsureCapacityNoop(t *testing.T) {
	var s blockSplitStore
	var a Allocator
	a = a.withDefaults()
	s.init(a)
	defer s.free(a)

	typesBefore := s.types
	if !s.ensureCapacity(a, initStoredBlockSplits) {
		t.Fatalf("ensureCapacity failed unexpectedly")
	}
	if &s.types[0] != &typesBefore[0] {
		t.Errorf("ensureCapacity reallocated when the request already fit")
	}
}

func TestBlockSplitStoreEnsureCapacityGrows(t *testing.T) {
	var s blockSplitStore
	var a Allocator
	a = a.withDefaults()
	s.init(a)
	defer s.free(a)

	s.numBlocks = initStoredBlockSplits
	for i := range s.types {
		s.types[i] = uint8(i % 3)
		s.positionsBegin[i] = uint32(i)
		s.positionsEnd[i] = uint32(i + 1)
	}

	requested := initStoredBlockSplits + 1
	if !s.ensureCapacity(a, requested) {
		t.Fatalf("ensureCapacity failed unexpectedly")
	}
	if s.typesAllocSize < requested || s.positionsAllocSize < requested {
		t.Errorf("alloc sizes did not grow to cover %d: types=%d positions=%d",
			requested, s.typesAllocSize, s.positionsAllocSize)
	}
	// Existing entries up to numBlocks must survive the growth unchanged.
	for i := 0; i < initStoredBlockSplits; i++ {
		if s.types[i] != uint8(i%3) || s.positionsBegin[i] != uint32(i) || s.positionsEnd[i] != uint32(i+1) {
			t.Fatalf("entry %d corrupted by growth", i)
		}
	}
}

func TestBlockSplitStoreEnsureCapacityFailureLeavesStateUnchanged(t *testing.T) {
	var s blockSplitStore
	var a Allocator
	a = a.withDefaults()
	s.init(a)
	defer s.free(a)

	typesBefore, beginBefore, endBefore := s.types, s.positionsBegin, s.positionsEnd
	allocSizeBefore := s.typesAllocSize

	failing := Allocator{
		Alloc: func(interface{}, int) []byte { return nil },
		Free:  func(interface{}, []byte) {},
	}
	if s.ensureCapacity(failing, initStoredBlockSplits+1) {
		t.Fatalf("ensureCapacity succeeded against a failing allocator")
	}
	if &s.types[0] != &typesBefore[0] || &s.positionsBegin[0] != &beginBefore[0] || &s.positionsEnd[0] != &endBefore[0] {
		t.Errorf("failed ensureCapacity replaced a backing array")
	}
	if s.typesAllocSize != allocSizeBefore {
		t.Errorf("typesAllocSize changed on failure: got %d, want %d", s.typesAllocSize, allocSizeBefore)
	}
}
