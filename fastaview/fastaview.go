// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fastaview materializes the gapped, per-sample character matrix
// that a rendered alignment track displays: one output row per visible
// sample, one output column per genomic position in a query region.
package fastaview

import (
	"sort"

	"github.com/gmod/mafquery"
)

// Options selects which rows are materialized and whether reference
// insertion columns are spliced into the output.
type Options struct {
	// VisibleAssemblies lists the assembly names to include in the
	// output, in output order. A block missing a listed assembly
	// contributes a gap-filled column for that row.
	//
	// If Samples is non-empty, VisibleAssemblies is ignored: the
	// assembly list is derived from Samples instead.
	VisibleAssemblies []string

	// Samples is the richer form of the same selection, carrying the
	// optional Label/Color presentation hints from mafquery.Config, for
	// callers that configured samples as {id,label,color} records
	// rather than a plain ID list.
	Samples []mafquery.Sample

	// IncludeInsertions controls whether reference-gap columns
	// (insertions relative to the reference) are spliced into the
	// output at all. When true, an insertion is spliced in only if at
	// least one visible row has a base there: an insertion contributed
	// only by rows the caller did not ask to see must not expand the
	// visible output (see Assemble's doc).
	IncludeInsertions bool

	// ShowAllLetters controls how a non-gap column that aligns to a
	// non-gap reference base is rendered: when false (the default), a
	// base matching the reference at that column is collapsed to '.',
	// highlighting only mismatches; when true, the row's own base is
	// always written. Either way the written base is lowercase — only
	// a gap writes '-'. Insertion columns have no reference base to
	// match against, so they always write the lowercase base.
	ShowAllLetters bool
}

// visibleAssemblies returns the effective assembly list, preferring
// Samples over VisibleAssemblies when both are set.
func (o Options) visibleAssemblies() []string {
	if len(o.Samples) == 0 {
		return o.VisibleAssemblies
	}
	names := make([]string, len(o.Samples))
	for i, s := range o.Samples {
		names[i] = s.ID
	}
	return names
}

// Matrix is the assembled output: one gapped byte row per visible
// assembly, addressed by genomic position within the query region except
// where insertion columns have been spliced in.
type Matrix struct {
	Rows map[string][]byte
}

// insertionGroup is a contiguous run of reference-gap columns anchored at
// the reference position immediately following the run's preceding
// non-gap column (or the block's start, if the run opens the block).
type insertionGroup struct {
	pos            int
	width          int
	cols           map[string][]byte
	hasVisibleBase bool
}

// Assemble builds the gapped, per-sample character matrix for the region
// [rs, re) from blocks, which must be supplied in ascending RefStart order
// (as a mafquery.BlockIterator yields them).
//
// Each visible sample starts as a length-(re-rs) buffer prefilled with
// '-'. For each block, each selected row is walked in lockstep with the
// reference row: every non-gap reference column writes one character at
// the region-relative offset leftCoord+nonGapOffset-rs (clipped to the
// region, so a block's tail or head outside [rs, re) is simply not
// written), and any part of the region no block covers — before the
// first block, between non-adjacent blocks, after the last — is left as
// the prefilled gap. A block whose RefSeq is empty carries no reference
// coordinates to anchor a write against and is skipped entirely.
//
// A reference-gap run (an insertion) is spliced into the buffers only
// when Options.IncludeInsertions is set AND at least one visible row has
// a non-gap base somewhere in the run; otherwise it is dropped, so that
// insertions present only in samples the caller is not displaying never
// lengthen the rows the caller does display. Splicing happens right to
// left across all collected insertions so that inserting one does not
// invalidate the region-relative offsets recorded for the others.
func Assemble(rs, re int, blocks []mafquery.Block, opts Options) Matrix {
	visible := opts.visibleAssemblies()
	length := re - rs
	if length < 0 {
		length = 0
	}
	out := make(map[string][]byte, len(visible))
	for _, name := range visible {
		row := make([]byte, length)
		for i := range row {
			row[i] = '-'
		}
		out[name] = row
	}

	var insertions []insertionGroup
	for _, blk := range blocks {
		if blk.RefSeq.Len() == 0 {
			continue
		}
		insertions = append(insertions, appendBlock(out, blk, visible, rs, re, opts.ShowAllLetters)...)
	}

	if opts.IncludeInsertions {
		sort.Slice(insertions, func(i, j int) bool { return insertions[i].pos > insertions[j].pos })
		for _, g := range insertions {
			if !g.hasVisibleBase || g.pos < rs || g.pos > re {
				continue
			}
			offset := g.pos - rs
			for _, name := range visible {
				seg, ok := g.cols[name]
				if !ok {
					seg = make([]byte, g.width)
					for i := range seg {
						seg[i] = '-'
					}
				}
				buf := out[name]
				merged := make([]byte, 0, len(buf)+len(seg))
				merged = append(merged, buf[:offset]...)
				merged = append(merged, seg...)
				merged = append(merged, buf[offset:]...)
				out[name] = merged
			}
		}
	}

	return Matrix{Rows: out}
}

// appendBlock writes blk's non-gap reference columns into out at their
// region-relative offsets and returns the insertion groups (reference-gap
// runs) it collected along the way, leaving splicing to the caller.
func appendBlock(out map[string][]byte, blk mafquery.Block, visible []string, rs, re int, showAllLetters bool) []insertionGroup {
	var groups []insertionGroup
	var pending *insertionGroup
	flush := func() {
		if pending != nil {
			groups = append(groups, *pending)
			pending = nil
		}
	}

	leftCoord := int(blk.RefStart)
	nonGapOffset := 0
	cols := blk.RefSeq.Len()
	for i := 0; i < cols; i++ {
		if blk.RefSeq.IsGap(i) {
			if pending == nil {
				pending = &insertionGroup{pos: leftCoord + nonGapOffset, cols: map[string][]byte{}}
			}
			for _, name := range visible {
				row, ok := blk.Rows[name]
				ch := byte('-')
				if ok && i < row.Seq.Len() && !row.Seq.IsGap(i) {
					ch = row.Seq.BaseAtLower(i)
					pending.hasVisibleBase = true
				}
				pending.cols[name] = append(pending.cols[name], ch)
			}
			pending.width++
			continue
		}

		flush()

		pos := leftCoord + nonGapOffset
		if pos >= rs && pos < re {
			offset := pos - rs
			for _, name := range visible {
				row, ok := blk.Rows[name]
				var ch byte = '-'
				switch {
				case !ok || i >= row.Seq.Len():
				case row.Seq.IsGap(i):
				case !showAllLetters && row.Seq.BaseAtLower(i) == blk.RefSeq.BaseAtLower(i):
					ch = '.'
				default:
					ch = row.Seq.BaseAtLower(i)
				}
				WriteAt(out[name], offset, []byte{ch})
			}
		}
		nonGapOffset++
	}
	flush()
	return groups
}

// WriteAt copies src into dst starting at column offset, panicking if the
// write would run past the end of dst. This is a programmer error, not a
// runtime condition callers are expected to recover from: it means the
// caller mismeasured the region it asked fastaview to fill.
func WriteAt(dst []byte, offset int, src []byte) {
	if offset < 0 || offset+len(src) > len(dst) {
		panic("fastaview: write out of bounds")
	}
	copy(dst[offset:offset+len(src)], src)
}
