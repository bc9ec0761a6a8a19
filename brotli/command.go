// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

// Command is one insert-and-copy command as produced by the LZ77 matcher
// (an external collaborator per spec.md section 1; this package only
// consumes the fields it needs to drive the block splitter). It encodes
// InsertLen literal bytes followed by a back-reference of CopyLen bytes
// whose distance is coded by DistPrefix.
type Command struct {
	InsertLen int
	CopyLen   int

	// CmdPrefix is the combined insert/copy length prefix code, in [0, 704).
	// Values >= 128 are exactly the commands that carry an explicit
	// distance field (spec.md section 4.5.3).
	CmdPrefix uint16

	// DistPrefix is the distance short code; only meaningful when
	// CmdPrefix >= 128 and CopyLen > 0.
	DistPrefix uint16
}

// CommandCopyLen reports the number of bytes the command's back-reference
// copies, mirroring the C helper of the same name used throughout
// original_source/c/enc/block_splitter.c.
func CommandCopyLen(cmd *Command) int {
	return cmd.CopyLen
}
