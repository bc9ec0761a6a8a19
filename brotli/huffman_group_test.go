// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

import "testing"

func TestHuffmanTreeGroupInit(t *testing.T) {
	var a Allocator
	a = a.withDefaults()

	var group HuffmanTreeGroup
	if !huffmanTreeGroupInit(a, &group, 256, 256, 3) {
		t.Fatalf("huffmanTreeGroupInit failed unexpectedly")
	}
	defer group.free(a)

	if group.NumHtrees != 3 {
		t.Errorf("NumHtrees = %d, want 3", group.NumHtrees)
	}
	if len(group.Htrees) != 3 {
		t.Fatalf("len(Htrees) = %d, want 3", len(group.Htrees))
	}

	maxTableSize := maxHuffmanTableSize(256)
	if len(group.Codes) != 3*maxTableSize {
		t.Errorf("len(Codes) = %d, want %d", len(group.Codes), 3*maxTableSize)
	}

	// Each Htrees[i] must alias the start of the i-th code table slice.
	for i := 0; i < 3; i++ {
		if group.Htrees[i] != &group.Codes[i*maxTableSize] {
			t.Errorf("Htrees[%d] does not alias Codes[%d]", i, i*maxTableSize)
		}
	}

	// Writing through a code table must be visible through Htrees.
	group.Codes[1*maxTableSize].value = 42
	if group.Htrees[1].value != 42 {
		t.Errorf("Htrees[1].value = %d, want 42 (alias of Codes)", group.Htrees[1].value)
	}
}

func TestHuffmanTreeGroupInitFailurePropagates(t *testing.T) {
	a := Allocator{
		Alloc: func(interface{}, int) []byte { return nil },
		Free:  func(interface{}, []byte) {},
	}
	var group HuffmanTreeGroup
	if huffmanTreeGroupInit(a, &group, 256, 256, 3) {
		t.Errorf("huffmanTreeGroupInit succeeded against a failing allocator")
	}
}

func TestMaxHuffmanTableSizeClampsOutOfRange(t *testing.T) {
	small := maxHuffmanTableSize(1)
	huge := maxHuffmanTableSize(1 << 20)
	if small <= 0 {
		t.Errorf("maxHuffmanTableSize(1) = %d, want > 0", small)
	}
	if huge != int(kMaxHuffmanTableSize[len(kMaxHuffmanTableSize)-1]) {
		t.Errorf("maxHuffmanTableSize clamped to %d, want last table entry %d",
			huge, kMaxHuffmanTableSize[len(kMaxHuffmanTableSize)-1])
	}
}
