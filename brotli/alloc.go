// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

import "unsafe"

// AllocFunc requests nbytes of memory from the allocator, returning nil on
// failure. opaque is passed through unchanged from whatever the caller
// installed via Allocator.
type AllocFunc func(opaque interface{}, nbytes int) []byte

// FreeFunc releases a buffer previously returned by an AllocFunc. The
// default allocator's FreeFunc is a no-op; it exists so that embedders
// installing an arena or an instrumented allocator have a symmetrical
// hook.
type FreeFunc func(opaque interface{}, buf []byte)

// Allocator is the (alloc, free, opaque) triple every dynamically sized
// structure in this package goes through, per spec.md section 4.1. This
// lets an embedder install an arena or add instrumentation without the
// core needing to know about it.
type Allocator struct {
	Alloc  AllocFunc
	Free   FreeFunc
	Opaque interface{}
}

// defaultAlloc forwards to the platform heap. Opaque is unused.
func defaultAlloc(_ interface{}, nbytes int) []byte {
	return make([]byte, nbytes)
}

// defaultFree is a no-op; Go's garbage collector reclaims the buffer once
// it is no longer referenced.
func defaultFree(_ interface{}, _ []byte) {}

// withDefaults returns a copy of a in which, when Alloc is nil, Alloc, Free
// and Opaque are all replaced by the default heap-backed implementations,
// mirroring BrotliDecoderStateInit's "if (!alloc_func) install defaults"
// branch. A non-nil Alloc is kept together with whatever Free accompanies
// it; a nil Free is not replaced in that case.
func (a Allocator) withDefaults() Allocator {
	if a.Alloc == nil {
		a.Alloc = defaultAlloc
		a.Free = defaultFree
		a.Opaque = nil
	}
	return a
}

// alloc requests nbytes from the allocator and reports whether it
// succeeded. A nil or empty result from AllocFunc is treated as failure
// only when nbytes > 0; a zero-length request trivially succeeds with a
// nil buffer.
func (a Allocator) alloc(nbytes int) ([]byte, bool) {
	if nbytes == 0 {
		return nil, true
	}
	buf := a.Alloc(a.Opaque, nbytes)
	if len(buf) == 0 {
		return nil, false
	}
	return buf, true
}

func (a Allocator) free(buf []byte) {
	if buf != nil {
		a.Free(a.Opaque, buf)
	}
}

// allocTyped requests storage for n values of T through the allocator and
// reinterprets the returned byte buffer as a []T. This is the Go
// equivalent of the reference implementation's raw malloc-and-cast: every
// dynamically sized array in the decoder state (block-split arrays, the
// Huffman tree group code table) is logically a typed array backed by one
// byte allocation. huffmanTreeGroupInit allocates only its code table this
// way; its htree pointer slice is ordinary Go memory.
func allocTyped[T any](a Allocator, n int) ([]T, bool) {
	if n == 0 {
		return nil, true
	}
	var zero T
	buf, ok := a.alloc(n * int(unsafe.Sizeof(zero)))
	if !ok {
		return nil, false
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&buf[0])), n), true
}

// bufOf returns the raw byte buffer backing a typed slice allocated by
// allocTyped, so it can be passed to FreeFunc.
func bufOf[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}
