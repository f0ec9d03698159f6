// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package taf implements the TAF block reconstructor: a stateful fold
// over row-instruction lines that replays each block's row state forward
// from the previous block, transposes columns into per-row sequences,
// and yields alignment blocks lazily as lines are pushed in.
package taf

import (
	"strings"

	"github.com/gmod/mafquery"
	"github.com/gmod/mafquery/instr"
	"github.com/gmod/mafquery/seq"
)

// rowState is the transient per-row bookkeeping the reconstructor carries
// between blocks: everything about a row except its bases, which live
// only in the column accumulator until finalization.
type rowState struct {
	assemblyName string
	chr          string
	start        uint32
	strand       int8
	srcSize      uint32
	nonGapCount  int
}

// Options configures a Decoder.
type Options struct {
	// RunLengthEncoded selects the bases-token decoding scheme: when
	// true, a bases token is expanded as alternating (char, count)
	// pairs (see HasRunLengthEncodedBases).
	RunLengthEncoded bool

	// FirstLineIsIndexedResume marks that the first coordinate line the
	// Decoder sees begins mid-file at a .tai-indexed position, with no
	// true previous block. Its instruction list is filtered with
	// instr.RewriteForIndexedStart before use.
	FirstLineIsIndexedResume bool
}

// Decoder replays a TAF row-instruction stream into a sequence of
// mafquery.Block values. It is not safe for concurrent use.
type Decoder struct {
	opts Options

	prevRows []rowState

	curRows []rowState
	columns [][]byte
	pending bool

	consumedFirstCoordLine bool
}

// NewDecoder returns a Decoder configured by opts.
func NewDecoder(opts Options) *Decoder {
	return &Decoder{opts: opts}
}

// Push feeds one line (with trailing newline already stripped) into the
// decoder. Comment ('#') and blank lines are ignored. If line begins a
// new coordinate line and a prior block was in progress, that prior
// block is finalized and returned with ready=true.
func (d *Decoder) Push(line string) (blk *mafquery.Block, ready bool) {
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, false
	}

	const sentinel = " ; "
	idx := strings.Index(line, sentinel)
	if idx < 0 {
		if !d.pending {
			return nil, false
		}
		d.columns = append(d.columns, d.decodeBasesToken(stripTag(line)))
		return nil, false
	}

	left := stripTag(line[:idx])
	right := stripTag(line[idx+len(sentinel):])

	var finalized *mafquery.Block
	if d.pending && len(d.columns) > 0 {
		b := d.finalize()
		finalized = &b
	}
	if d.pending {
		d.prevRows = d.curRows
	}

	instructions := instr.Parse(right)
	if !d.consumedFirstCoordLine {
		if d.opts.FirstLineIsIndexedResume {
			instructions = instr.RewriteForIndexedStart(instructions)
		}
		d.consumedFirstCoordLine = true
	}

	d.curRows = advanceRows(d.prevRows, instructions)
	d.columns = [][]byte{d.decodeBasesToken(left)}
	d.pending = true

	return finalized, finalized != nil
}

// Finish flushes any in-progress block at end of input. Per the spec's
// EOF semantics, a block with at least one column is yielded; a block
// with zero columns (should not normally occur) is silently dropped.
func (d *Decoder) Finish() (blk *mafquery.Block, ready bool) {
	if d.pending && len(d.columns) > 0 {
		b := d.finalize()
		d.pending = false
		return &b, true
	}
	d.pending = false
	return nil, false
}

func stripTag(s string) string {
	if i := strings.Index(s, " @"); i >= 0 {
		return s[:i]
	}
	return s
}

func (d *Decoder) decodeBasesToken(tok string) []byte {
	if d.opts.RunLengthEncoded {
		return decodeRLE(tok)
	}
	return []byte(tok)
}

// advanceRows builds the new block's row list from the previous block's
// rows (with each row's start advanced by its consumed span) and then
// folds the instruction list over it by index. It never retains a
// reference into prevRows: every element is copied.
func advanceRows(prevRows []rowState, instructions []instr.Instruction) []rowState {
	rows := make([]rowState, len(prevRows))
	for i, r := range prevRows {
		rows[i] = rowState{
			assemblyName: r.assemblyName,
			chr:          r.chr,
			start:        r.start + uint32(r.nonGapCount),
			strand:       r.strand,
			srcSize:      r.srcSize,
		}
	}

	for _, ins := range instructions {
		switch ins.Op {
		case instr.OpInsert:
			row := rowState{
				assemblyName: ins.AssemblyName,
				chr:          ins.Chr,
				start:        ins.Start,
				strand:       ins.Strand,
				srcSize:      ins.SrcSize,
			}
			if ins.Row < 0 || ins.Row > len(rows) {
				continue
			}
			rows = append(rows, rowState{})
			copy(rows[ins.Row+1:], rows[ins.Row:])
			rows[ins.Row] = row
		case instr.OpSubstitute:
			if ins.Row < 0 || ins.Row >= len(rows) {
				continue
			}
			rows[ins.Row] = rowState{
				assemblyName: ins.AssemblyName,
				chr:          ins.Chr,
				start:        ins.Start,
				strand:       ins.Strand,
				srcSize:      ins.SrcSize,
			}
		case instr.OpDelete:
			if ins.Row < 0 || ins.Row >= len(rows) {
				continue
			}
			rows = append(rows[:ins.Row], rows[ins.Row+1:]...)
		case instr.OpGapLen, instr.OpGapSubstring:
			if ins.Row < 0 || ins.Row >= len(rows) {
				continue
			}
			rows[ins.Row].start += ins.Gap
		}
	}
	return rows
}

// finalize transposes the accumulated columns into per-row byte slices
// and encodes each row's sequence, producing a Block. A single C-byte
// scratch buffer is reused across rows to avoid the O(C^2) cost of
// building each row's bases by repeated append.
func (d *Decoder) finalize() mafquery.Block {
	rows := d.curRows
	columns := d.columns
	c := len(columns)

	rowMap := make(map[string]mafquery.Row, len(rows))
	order := make([]string, 0, len(rows))
	scratch := make([]byte, c)

	for r, rs := range rows {
		nonGap := 0
		for i, col := range columns {
			var ch byte = '-'
			if r < len(col) {
				ch = col[r]
			}
			if ch != '-' {
				nonGap++
			}
			scratch[i] = ch
		}
		row := mafquery.Row{
			AssemblyName: rs.assemblyName,
			Chr:          rs.chr,
			Start:        rs.start,
			SrcSize:      rs.srcSize,
			Strand:       mafquery.Strand(rs.strand),
			Seq:          seq.Encode(scratch),
		}
		rowMap[rs.assemblyName] = row
		order = append(order, rs.assemblyName)

		// nonGapCount feeds the *next* block's row-start advance; write
		// it back into curRows so a later Push sees it via prevRows.
		d.curRows[r].nonGapCount = nonGap
	}

	blk := mafquery.Block{
		Rows:     rowMap,
		RowOrder: order,
	}
	return blk
}
