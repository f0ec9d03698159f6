// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package taf

import (
	"bufio"
	"context"
	"io"
	"strconv"

	"github.com/gmod/mafquery"
)

// IteratorOptions configures a BlockIterator on top of the raw Decoder
// Options: the query window used for overlap filtering (spec section
// "Query-range filtering") and the reference-row resolution inputs.
type IteratorOptions struct {
	Decoder Options

	QueryStart, QueryEnd uint32
	RefAssemblyName      string
	QueryAssemblyName    string
	StatusEvery          int // report through Status every N lines; 0 or less selects 1000
	Status               mafquery.StatusCallback
}

// BlockIterator reads TAF text line by line, replays it through a
// Decoder, resolves each block's reference row, and yields only blocks
// overlapping the configured query window. It implements
// mafquery.BlockIterator.
type BlockIterator struct {
	sc   *bufio.Scanner
	dec  *Decoder
	opts IteratorOptions

	lineNum int
	cur     mafquery.Block
	err     error
	drained bool
}

// NewBlockIterator returns a BlockIterator reading from r. r must already
// be positioned at the first byte to replay (the caller, typically the
// query driver, is responsible for slicing to the .tai-resolved offset).
func NewBlockIterator(r io.Reader, opts IteratorOptions) *BlockIterator {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)
	if opts.StatusEvery <= 0 {
		opts.StatusEvery = 1000
	}
	return &BlockIterator{
		sc:   sc,
		dec:  NewDecoder(opts.Decoder),
		opts: opts,
	}
}

// Next advances to the next block overlapping the query window, or
// returns false when the input is exhausted, ctx is done, or an error
// occurred.
func (it *BlockIterator) Next(ctx context.Context) bool {
	if it.drained || it.err != nil {
		return false
	}
	for {
		select {
		case <-ctx.Done():
			it.err = mafquery.ErrCancelled
			return false
		default:
		}

		if !it.sc.Scan() {
			if err := it.sc.Err(); err != nil {
				it.err = err
				return false
			}
			blk, ready := it.dec.Finish()
			it.drained = true
			if ready && it.resolve(blk) {
				return true
			}
			return false
		}

		it.lineNum++
		if it.opts.Status != nil && it.opts.StatusEvery > 0 && it.lineNum%it.opts.StatusEvery == 0 {
			it.opts.Status("Processing line " + strconv.Itoa(it.lineNum))
		}

		blk, ready := it.dec.Push(it.sc.Text())
		if ready && it.resolve(blk) {
			return true
		}
	}
}

// resolve fills in reference-row derived fields on blk and, if it
// overlaps the configured query window, stores it as the current block
// and returns true.
func (it *BlockIterator) resolve(blk *mafquery.Block) bool {
	refRow, found := mafquery.ResolveReference(blk.Rows, blk.RowOrder, it.opts.RefAssemblyName, it.opts.QueryAssemblyName)
	if found {
		blk.RefName = refRow.Chr
		blk.RefStart = refRow.Start
		blk.RefEnd = refRow.Start + uint32(refRow.NonGap())
		blk.RefSeq = refRow.Seq
	} else if it.opts.Status != nil {
		it.opts.Status(mafquery.ErrReferenceNotFound.Error())
	}
	if !blk.Overlaps(it.opts.QueryStart, it.opts.QueryEnd) {
		return false
	}
	it.cur = *blk
	return true
}

// Block returns the most recently yielded block.
func (it *BlockIterator) Block() mafquery.Block { return it.cur }

// Error returns the first non-EOF error encountered.
func (it *BlockIterator) Error() error { return it.err }

// Close releases resources held by the iterator. It is a no-op beyond
// marking the iterator drained: the underlying reader's lifetime is
// owned by the caller.
func (it *BlockIterator) Close() error {
	it.drained = true
	return it.err
}
