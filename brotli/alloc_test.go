// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

import "testing"

func TestAllocDefault(t *testing.T) {
	var a Allocator
	a = a.withDefaults()

	buf, ok := a.alloc(16)
	if !ok {
		t.Fatalf("alloc(16) failed unexpectedly")
	}
	if len(buf) != 16 {
		t.Errorf("len(buf) = %d, want 16", len(buf))
	}
	a.free(buf) // must not panic
}

func TestAllocZero(t *testing.T) {
	var a Allocator
	a = a.withDefaults()

	buf, ok := a.alloc(0)
	if !ok || buf != nil {
		t.Errorf("alloc(0) = (%v, %v), want (nil, true)", buf, ok)
	}
}

func TestAllocTypedRoundTrip(t *testing.T) {
	var a Allocator
	a = a.withDefaults()

	vals, ok := allocTyped[uint32](a, 8)
	if !ok {
		t.Fatalf("allocTyped failed unexpectedly")
	}
	if len(vals) != 8 {
		t.Fatalf("len(vals) = %d, want 8", len(vals))
	}
	for i := range vals {
		vals[i] = uint32(i * i)
	}
	for i := range vals {
		if vals[i] != uint32(i*i) {
			t.Errorf("vals[%d] = %d, want %d", i, vals[i], i*i)
		}
	}
	a.free(bufOf(vals))
}

func TestAllocFailurePropagates(t *testing.T) {
	a := Allocator{
		Alloc: func(interface{}, int) []byte { return nil },
		Free:  func(interface{}, []byte) {},
	}

	if _, ok := a.alloc(4); ok {
		t.Errorf("alloc succeeded against a failing AllocFunc")
	}
	if _, ok := allocTyped[uint64](a, 4); ok {
		t.Errorf("allocTyped succeeded against a failing AllocFunc")
	}
}
