// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReconcileLiteralSplitDeficit(t *testing.T) {
	stored := &StoredLiteralSplit{
		Types:   []uint8{0, 1, 0},
		Lengths: []int{100, 50, 30},
	}
	got, err := reconcileLiteralSplit(stored, 177) // deficit of 3
	if err != nil {
		t.Fatalf("reconcileLiteralSplit: %v", err)
	}
	want := BlockSplit{
		types:     []uint8{0, 1, 0},
		lengths:   []int{100, 50, 27},
		numBlocks: 3,
		numTypes:  2,
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(BlockSplit{})); diff != "" {
		t.Errorf("reconcileLiteralSplit mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcileLiteralSplitDropsWholeBlock(t *testing.T) {
	stored := &StoredLiteralSplit{
		Types:   []uint8{0, 1, 0},
		Lengths: []int{100, 50, 30},
	}
	got, err := reconcileLiteralSplit(stored, 120) // drops the trailing 30-block entirely
	if err != nil {
		t.Fatalf("reconcileLiteralSplit: %v", err)
	}
	want := BlockSplit{
		types:     []uint8{0, 1},
		lengths:   []int{100, 20},
		numBlocks: 2,
		numTypes:  2,
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(BlockSplit{})); diff != "" {
		t.Errorf("reconcileLiteralSplit mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcileLiteralSplitSurplus(t *testing.T) {
	stored := &StoredLiteralSplit{
		Types:   []uint8{0, 1, 0},
		Lengths: []int{100, 50, 30},
	}
	got, err := reconcileLiteralSplit(stored, 185) // surplus of 5
	if err != nil {
		t.Fatalf("reconcileLiteralSplit: %v", err)
	}
	want := BlockSplit{
		types:     []uint8{0, 1, 0},
		lengths:   []int{100, 50, 35},
		numBlocks: 3,
		numTypes:  2,
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(BlockSplit{})); diff != "" {
		t.Errorf("reconcileLiteralSplit mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcileLiteralSplitOverflow(t *testing.T) {
	stored := &StoredLiteralSplit{
		Types:   []uint8{0},
		Lengths: []int{30},
	}
	if _, err := reconcileLiteralSplit(stored, 0); err != ErrReconcileOverflow { // deficit of 30 consumes the only block
		t.Errorf("reconcileLiteralSplit error = %v, want %v", err, ErrReconcileOverflow)
	}
}

func TestCountLiteralsAndCopyLiteralsToByteArray(t *testing.T) {
	data := []byte("abcdefghijklmnop")
	cmds := []Command{
		{InsertLen: 3, CopyLen: 2}, // literals "abc"
		{InsertLen: 2, CopyLen: 0}, // literals "fg" (after skipping copy of "de")
	}
	if n := countLiterals(cmds); n != 5 {
		t.Fatalf("countLiterals = %d, want 5", n)
	}

	mask := len(data) - 1 // 15: a ring-buffer mask is a power of two minus one
	_ = mask
	got := copyLiteralsToByteArray(cmds, data, 0, len(data)-1)
	// fromPos starts at 0: "abc" (3), advance by insert+copy=5 -> fromPos=5 ("f"),
	// then "fg" (2) literals from position 5.
	want := "abcfg"
	if string(got) != want {
		t.Errorf("copyLiteralsToByteArray = %q, want %q", got, want)
	}
}

func TestSplitLiteralsUsesReconciliationWhenStoredPresent(t *testing.T) {
	cmds := []Command{{InsertLen: 100, CopyLen: 1}, {InsertLen: 50, CopyLen: 0}}
	data := make([]byte, 256)
	stored := []StoredLiteralSplit{{
		Types:   []uint8{0, 1},
		Lengths: []int{100, 50},
	}}
	cur := 0
	split, err := splitLiterals(cmds, data, 0, len(data)-1, stored, &cur)
	if err != nil {
		t.Fatalf("splitLiterals: %v", err)
	}
	if split.NumBlocks() != 2 {
		t.Errorf("NumBlocks() = %d, want 2", split.NumBlocks())
	}
	if cur != 1 {
		t.Errorf("currentMetablock = %d, want 1 (advanced)", cur)
	}
}

func TestSplitLiteralsFallsBackWithoutStored(t *testing.T) {
	cmds := []Command{{InsertLen: 40, CopyLen: 0}}
	data := make([]byte, 64)
	cur := 0
	split, err := splitLiterals(cmds, data, 0, len(data)-1, nil, &cur)
	if err != nil {
		t.Fatalf("splitLiterals: %v", err)
	}
	if split.NumBlocks() == 0 {
		t.Errorf("NumBlocks() = 0, want at least 1 from the generic splitter fallback")
	}
	if cur != 0 {
		t.Errorf("currentMetablock advanced without a stored split: got %d, want 0", cur)
	}
}

func TestSplitDistancesFiltersZeroDistanceCommands(t *testing.T) {
	cmds := []Command{
		{InsertLen: 1, CopyLen: 4, CmdPrefix: 200, DistPrefix: 5},  // has a distance
		{InsertLen: 1, CopyLen: 4, CmdPrefix: 10, DistPrefix: 99},  // implicit zero distance (CmdPrefix < 128)
		{InsertLen: 1, CopyLen: 0, CmdPrefix: 200, DistPrefix: 7},  // CopyLen == 0, no distance
	}
	split := splitDistances(cmds)
	if got := split.Lengths(); len(got) == 0 || sum(got) != 1 {
		t.Errorf("splitDistances considered %d symbols, want 1", sum(got))
	}
}

func sum(xs []int) int {
	var total int
	for _, x := range xs {
		total += x
	}
	return total
}
