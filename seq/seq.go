// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package seq implements a 4-bit packed representation of the 13-symbol
// alphabet used by aligned MAF/TAF rows: lowercase and uppercase
// a/c/g/t/n, a gap, a space, and an unknown-base sentinel.
package seq

// Alphabet codes. Values 0..4 are lowercase a c g t n, 5 is a gap ('-'),
// 6 is a space, 7..11 are uppercase A C G T N, and 12 is unknown.
const (
	CodeLowerA = iota
	CodeLowerC
	CodeLowerG
	CodeLowerT
	CodeLowerN
	CodeGap
	CodeSpace
	CodeUpperA
	CodeUpperC
	CodeUpperG
	CodeUpperT
	CodeUpperN
	CodeUnknown
)

// packedLookup maps an input ASCII byte to its 4-bit code. Built once in
// init so Encode never branches on the byte's identity, only indexes the
// table -- the same technique the pack's other codecs (e.g. the FASTQ
// 2-bit packer) use for their smaller alphabets.
var packedLookup [256]byte

// unpackTable is the inverse of packedLookup for the 13 defined codes.
var unpackTable = [13]byte{
	'a', 'c', 'g', 't', 'n',
	'-', ' ',
	'A', 'C', 'G', 'T', 'N',
	'?',
}

func init() {
	for i := range packedLookup {
		packedLookup[i] = CodeUnknown
	}
	packedLookup['a'] = CodeLowerA
	packedLookup['c'] = CodeLowerC
	packedLookup['g'] = CodeLowerG
	packedLookup['t'] = CodeLowerT
	packedLookup['n'] = CodeLowerN
	packedLookup['-'] = CodeGap
	packedLookup[' '] = CodeSpace
	packedLookup['A'] = CodeUpperA
	packedLookup['C'] = CodeUpperC
	packedLookup['G'] = CodeUpperG
	packedLookup['T'] = CodeUpperT
	packedLookup['N'] = CodeUpperN
}

// Seq is a 4-bit packed sequence. The zero value is an empty sequence.
type Seq struct {
	bytes  []byte
	length uint32
}

// Len returns the number of bases in s.
func (s Seq) Len() int { return int(s.length) }

// Encode packs ascii into a Seq. Every byte in ascii is mapped through the
// alphabet table; bytes outside the known alphabet become CodeUnknown.
// Encode never fails.
func Encode(ascii []byte) Seq {
	n := len(ascii)
	packed := make([]byte, (n+1)/2)
	for i, c := range ascii {
		code := packedLookup[c]
		if i%2 == 0 {
			packed[i/2] = code << 4
		} else {
			packed[i/2] |= code
		}
	}
	return Seq{bytes: packed, length: uint32(n)}
}

// codeAt returns the raw 4-bit code at position i, or CodeUnknown if i is
// out of range.
func (s Seq) codeAt(i int) byte {
	if i < 0 || i >= int(s.length) {
		return CodeUnknown
	}
	b := s.bytes[i/2]
	if i%2 == 0 {
		return b >> 4
	}
	return b & 0x0f
}

// CodeAt returns the raw 4-bit code at position i.
func (s Seq) CodeAt(i int) byte { return s.codeAt(i) }

// foldCode strips the uppercase offset from a code, mapping e.g. CodeUpperA
// to CodeLowerA. Codes without a case (gap, space, unknown) pass through.
func foldCode(c byte) byte {
	if c >= CodeUpperA && c <= CodeUpperN {
		return c - (CodeUpperA - CodeLowerA)
	}
	return c
}

// BaseAt returns the case-preserving character at position i, or the
// unknown-base character if i is out of range.
func (s Seq) BaseAt(i int) byte {
	return unpackTable[s.codeAt(i)]
}

// BaseAtLower returns the case-folded (lowercase) character at position i.
func (s Seq) BaseAtLower(i int) byte {
	return unpackTable[foldCode(s.codeAt(i))]
}

// IsGap reports whether position i holds a gap character.
func (s Seq) IsGap(i int) bool {
	return s.codeAt(i) == CodeGap
}

// IsSpace reports whether position i holds a space character.
func (s Seq) IsSpace(i int) bool {
	return s.codeAt(i) == CodeSpace
}

// Decode returns the ASCII bytes for s. It is the exact inverse of Encode
// for any input whose characters lie in the 13-symbol alphabet.
func (s Seq) Decode() []byte {
	out := make([]byte, s.length)
	for i := range out {
		out[i] = s.BaseAt(i)
	}
	return out
}
