// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

import "runtime"

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return string(e) }

var (
	ErrCorrupt = Error("brotli: stream is corrupted")

	// ErrOutOfMemory is returned when the allocator shim returns nil.
	// Internal structures that were growing remain in their prior valid
	// state; see blockSplitStore.ensureCapacity and huffmanTreeGroupInit.
	ErrOutOfMemory = Error("brotli: allocator out of memory")

	// ErrReconcileOverflow is returned by the encoder's literal block
	// splitter when a reconciliation deficit (stored literal count minus
	// freshly observed literal count) consumes the entire stored split.
	// The reference C implementation treats this as unreachable and prints
	// a diagnostic; this port surfaces it to the caller instead, per the
	// open question in spec.md section 9.
	ErrReconcileOverflow = Error("brotli: reconciliation deficit exceeds stored block split")
)

func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}
