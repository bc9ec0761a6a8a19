// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

// maxDictLen is the longest word held in the static dictionary, per RFC
// 7932 section 8 ("the length of the words varies from 0 to 24 bytes").
const maxDictLen = 24

// dictBitSizes, dictSizes, and dictOffsets describe the static
// dictionary's bucket layout: bucket i holds dictSizes[i] words of length
// i, starting at byte offset dictOffsets[i] in dictionary. The real RFC dictionary packs 13504 words
// across 122784 bytes; this package's copy is a compact stand-in (spec.md
// section 1 lists "static dictionary and transform providers" among the
// external collaborators this spec does not ask for new engineering on)
// sized only to exercise the decode path's plumbing, not to be
// RFC-compliant. dictBitSizes[i] is the number of bits needed to index
// dictSizes[i] words of length i.
var (
	dictBitSizes [maxDictLen + 1]uint8
	dictSizes    [maxDictLen + 1]uint8
	dictOffsets  [maxDictLen + 1]uint32

	dictionary []byte
)

func initDictLUTs() {
	// A handful of short, real English words per length bucket, long
	// enough to let transformWord and the context/window-wrap paths be
	// exercised in tests without shipping a 120KB table.
	words := [maxDictLen + 1][]string{
		1: {"a", "i"},
		2: {"an", "of", "to", "in"},
		3: {"the", "and", "for"},
		4: {"this", "that", "with"},
		5: {"which", "about"},
	}

	var offset uint32
	for n, ws := range words {
		dictSizes[n] = uint8(len(ws))
		bits := uint8(0)
		for (1 << bits) < len(ws) {
			bits++
		}
		dictBitSizes[n] = bits
		dictOffsets[n] = offset
		for _, w := range ws {
			dictionary = append(dictionary, w...)
			offset += uint32(len(w))
		}
	}
}

// dictionaryWord returns the word of the given length at the given index
// within its length bucket.
func dictionaryWord(length int, index uint32) []byte {
	if length < 0 || length > maxDictLen || dictSizes[length] == 0 {
		return nil
	}
	start := dictOffsets[length] + index*uint32(length)
	return dictionary[start : start+uint32(length)]
}
