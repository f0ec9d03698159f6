// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mafquery

import "context"

// StatusCallback receives coarse-grained progress markers, e.g.
// "Downloading index" or "Processing line 4000". A nil callback is a
// valid no-op.
type StatusCallback func(phase string)

// BigBedFeature is a single BigBed record as returned by a BigBedQuery:
// the record's own interval plus the raw extra column holding the
// MAF block text.
type BigBedFeature struct {
	Start, End int
	ExtraField string
}

// BigBedQuery is the external capability that resolves a genomic interval
// to an iterator of BigBed features. Implementations perform the R-tree
// lookup; this core only consumes the results.
type BigBedQuery interface {
	Query(ctx context.Context, refName string, start, end int) (BigBedFeatureIterator, error)
}

// BigBedFeatureIterator yields BigBedFeature values one at a time.
type BigBedFeatureIterator interface {
	Next() bool
	Feature() BigBedFeature
	Error() error
	Close() error
}

// TabixRow is a single BED-like row as returned by a TabixQuery: the
// record's own interval plus its raw tab-separated fields.
type TabixRow struct {
	Start, End int
	Fields     []string
}

// TabixQuery is the external capability that resolves a genomic interval
// to an iterator of Tabix rows. Implementations own the bgzf virtual-offset
// seeking and .tbi bin lookup; this core only consumes the resulting rows.
type TabixQuery interface {
	Query(ctx context.Context, refName string, start, end int) (TabixRowIterator, error)
}

// TabixRowIterator yields TabixRow values one at a time.
type TabixRowIterator interface {
	Next() bool
	Row() TabixRow
	Error() error
	Close() error
}

// CompressedFileReader is the external capability providing random-access
// reads of byte ranges over a bgzf file, returning already-decompressed
// bytes. offset/length address the compressed file; the returned slice is
// the decompressed content beginning at that compressed offset.
type CompressedFileReader interface {
	ReadRange(ctx context.Context, offset, length int64) ([]byte, error)
}

// BlockIterator is the lazy sequence of alignment blocks returned by a
// MafBlockSource query. Blocks are yielded refStart-ascending within one
// query. Next must be called before the first Block(); Close must be
// called exactly once and releases any held cache entries.
type BlockIterator interface {
	Next(ctx context.Context) bool
	Block() Block
	Error() error
	Close() error
}

// MafBlockSource is the single logical interface the core exposes,
// regardless of the underlying physical encoding.
type MafBlockSource interface {
	Query(ctx context.Context, region Region) (BlockIterator, error)
}
