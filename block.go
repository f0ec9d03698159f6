// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mafquery

import "github.com/gmod/mafquery/seq"

// Strand is the orientation of an aligned row relative to its source
// sequence.
type Strand int8

const (
	Forward Strand = 1
	Reverse Strand = -1
)

// Row is a single species' aligned sequence within a Block.
type Row struct {
	AssemblyName string
	Chr          string
	Start        uint32
	SrcSize      uint32
	Strand       Strand
	Seq          seq.Seq
}

// NonGap returns the number of non-gap positions in the row's sequence,
// i.e. the span of Chr the row consumes.
func (r Row) NonGap() int {
	n := r.Seq.Len()
	count := 0
	for i := 0; i < n; i++ {
		if !r.Seq.IsGap(i) {
			count++
		}
	}
	return count
}

// Block is one alignment block: a reference row's coordinates plus the
// per-assembly rows aligned against it. Rows is keyed by AssemblyName and
// preserves no particular iteration order on its own; callers that need
// the source file's row order should consult RowOrder.
type Block struct {
	RefName  string
	RefStart uint32
	RefEnd   uint32
	RefSeq   seq.Seq

	Rows map[string]Row

	// RowOrder records assembly names in the order they were first seen
	// in the source (TAF row-index order, or first-seen order for
	// BigMaf/MafTabix), so consumers that care about source ordering
	// (e.g. the rendering row list) do not have to re-derive it.
	RowOrder []string
}

// Region is a half-open genomic interval [Start, End) on RefName, with an
// optional AssemblyName used for reference-row resolution (see
// ResolveReference).
type Region struct {
	AssemblyName string
	RefName      string
	Start        uint32
	End          uint32
}

// Overlaps reports whether the block overlaps the region per the query
// filtering rule in the row-instruction reconstructor: refEnd > start &&
// refStart < end.
func (b Block) Overlaps(start, end uint32) bool {
	return b.RefEnd > start && b.RefStart < end
}
