// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

import "testing"

func TestDictDecoderGlobalPositionBeforeWrap(t *testing.T) {
	var dd dictDecoder
	dd.Init(10) // window size 1024
	dd.size = 100
	dd.write([]byte("hello"))

	if dd.pos != 5 {
		t.Fatalf("pos = %d, want 5", dd.pos)
	}
	if dd.rbRoundtrips != 0 {
		t.Fatalf("rbRoundtrips = %d, want 0", dd.rbRoundtrips)
	}
	if got, want := dd.globalPosition(), uint64(5); got != want {
		t.Errorf("globalPosition() = %d, want %d", got, want)
	}
}

func TestDictDecoderGlobalPositionAfterWrap(t *testing.T) {
	var dd dictDecoder
	dd.Init(4)
	dd.size = 8
	dd.write(make([]byte, 20)) // 2 full wraps (16 bytes) + 4 more

	if dd.pos != 4 {
		t.Fatalf("pos = %d, want 4", dd.pos)
	}
	if dd.rbRoundtrips != 2 {
		t.Fatalf("rbRoundtrips = %d, want 2", dd.rbRoundtrips)
	}
	want := uint64(4) + uint64(2)<<4
	if got := dd.globalPosition(); got != want {
		t.Errorf("globalPosition() = %d, want %d", got, want)
	}
}
