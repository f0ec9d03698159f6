// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package query implements mafquery.MafBlockSource against each of the
// three physical adapters (TAF, BigMaf, MafTabix), dispatching on
// Config.Validate's result and hiding the differences behind a single
// streaming query contract.
package query

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gmod/mafquery"
	"github.com/gmod/mafquery/bigmaf"
	"github.com/gmod/mafquery/chunkcache"
	"github.com/gmod/mafquery/maftabix"
	"github.com/gmod/mafquery/tai"
	"github.com/gmod/mafquery/taf"
)

// bgzfMaxBlockSize pads a .tai-resolved read so the bgzf block spanning
// the range's end virtual offset decompresses in full even though only
// its start position is known in advance.
const bgzfMaxBlockSize = 65536

// Options bundles the external capabilities a Source needs beyond
// mafquery.Config: whichever of these matches Config.Validate's Kind is
// read, the rest are ignored.
type Options struct {
	// TAF adapter.
	TaiIndex *tai.Index
	Reader   mafquery.CompressedFileReader
	// CacheSize is the chunk cache's entry capacity. Zero or negative
	// selects the default of 50 entries.
	CacheSize        int
	RunLengthEncoded bool

	// BigMaf adapter.
	BigBed mafquery.BigBedQuery

	// MafTabix adapter.
	Tabix mafquery.TabixQuery
}

// Source implements mafquery.MafBlockSource. Construct one with New.
type Source struct {
	cfg  mafquery.Config
	kind mafquery.Kind
	opts Options

	cache *chunkcache.Cache
}

// New validates cfg, checks that opts supplies the capability its
// selected adapter needs, and returns a ready Source.
func New(cfg mafquery.Config, opts Options) (*Source, error) {
	kind, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	s := &Source{cfg: cfg, kind: kind, opts: opts}
	switch kind {
	case mafquery.KindTAF:
		if opts.TaiIndex == nil || opts.Reader == nil {
			return nil, fmt.Errorf("mafquery/query: TAF adapter requires TaiIndex and Reader")
		}
		size := opts.CacheSize
		if size <= 0 {
			size = 50
		}
		s.cache = chunkcache.New(size, func(ctx context.Context, key string) ([]byte, error) {
			var offset, length int64
			if _, err := fmt.Sscanf(key, "%d:%d", &offset, &length); err != nil {
				return nil, fmt.Errorf("mafquery/query: bad cache key %q: %w", key, err)
			}
			return opts.Reader.ReadRange(ctx, offset, length)
		})
	case mafquery.KindBigMaf:
		if opts.BigBed == nil {
			return nil, fmt.Errorf("mafquery/query: BigMaf adapter requires BigBed")
		}
	case mafquery.KindMafTabix:
		if opts.Tabix == nil {
			return nil, fmt.Errorf("mafquery/query: MafTabix adapter requires Tabix")
		}
	}
	return s, nil
}

// SetStatusCallback replaces the status callback a Source reports
// progress through, mirroring the teacher's plain-mutator style for
// runtime-adjustable fields (e.g. bam.Reader.Omit) rather than requiring
// the callback to be fixed at construction time.
func (s *Source) SetStatusCallback(cb mafquery.StatusCallback) {
	s.cfg.Status = cb
}

// Query dispatches to the configured adapter and returns a lazily
// decoded, query-window-filtered block iterator.
func (s *Source) Query(ctx context.Context, region mafquery.Region) (mafquery.BlockIterator, error) {
	if s.cfg.Status != nil {
		s.cfg.Status("Querying " + region.RefName)
	}
	switch s.kind {
	case mafquery.KindTAF:
		return s.queryTAF(ctx, region)
	case mafquery.KindBigMaf:
		return s.queryBigMaf(ctx, region)
	case mafquery.KindMafTabix:
		return s.queryMafTabix(ctx, region)
	default:
		return nil, fmt.Errorf("mafquery/query: unconfigured source")
	}
}

// queryTAF resolves region against the .tai index, fetches the covering
// compressed byte range (through the chunk cache) and decompresses it,
// then replays the resulting text through the TAF reconstructor.
//
// The very first coordinate line read is always treated as an indexed
// resume: a .tai entry never lands on a true "no previous block" start
// unless it happens to be the file's first line, in which case the
// rewrite is a no-op (there is no s/d/g instruction to rewrite).
func (s *Source) queryTAF(ctx context.Context, region mafquery.Region) (mafquery.BlockIterator, error) {
	first, next, ok := s.opts.TaiIndex.Lookup(region.RefName, region.Start, region.End)
	if !ok {
		// A reference absent from the .tai index has no blocks to
		// yield, not a query failure: the caller sees an empty result
		// exactly as it would for an indexed reference with no blocks
		// overlapping region.
		return &emptyBlockIterator{}, nil
	}

	readOffset := int64(first.BlockPos())
	readLen := int64(next.BlockPos()-first.BlockPos()) + bgzfMaxBlockSize
	key := fmt.Sprintf("%d:%d", readOffset, readLen)

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if int64(first.DataPos()) > int64(len(data)) {
		return nil, fmt.Errorf("mafquery/query: decompressed range shorter than indexed data offset")
	}
	body := data[first.DataPos():]

	it := taf.NewBlockIterator(bytes.NewReader(body), taf.IteratorOptions{
		Decoder: taf.Options{
			RunLengthEncoded:         s.opts.RunLengthEncoded,
			FirstLineIsIndexedResume: true,
		},
		QueryStart:        region.Start,
		QueryEnd:          region.End,
		RefAssemblyName:   s.cfg.RefAssemblyName,
		QueryAssemblyName: region.AssemblyName,
		Status:            s.cfg.Status,
	})
	return it, nil
}

// queryBigMaf resolves region via the BigBed R-tree query capability and
// decodes each feature's packed mafBlock extra field.
func (s *Source) queryBigMaf(ctx context.Context, region mafquery.Region) (mafquery.BlockIterator, error) {
	feats, err := s.opts.BigBed.Query(ctx, region.RefName, int(region.Start), int(region.End))
	if err != nil {
		return nil, err
	}
	return &bigMafIterator{feats: feats, cfg: s.cfg, region: region}, nil
}

// queryMafTabix resolves region via the tabix query capability and
// decodes each row's packed extra field.
func (s *Source) queryMafTabix(ctx context.Context, region mafquery.Region) (mafquery.BlockIterator, error) {
	rows, err := s.opts.Tabix.Query(ctx, region.RefName, int(region.Start), int(region.End))
	if err != nil {
		return nil, err
	}
	return &tabixIterator{rows: rows, cfg: s.cfg, region: region}, nil
}

// emptyBlockIterator yields no blocks. It backs queries against a region
// whose reference is entirely absent from the source's index, which the
// mafquery.MafBlockSource contract treats as zero overlapping blocks
// rather than an error.
type emptyBlockIterator struct{}

func (*emptyBlockIterator) Next(context.Context) bool { return false }
func (*emptyBlockIterator) Block() mafquery.Block     { return mafquery.Block{} }
func (*emptyBlockIterator) Error() error              { return nil }
func (*emptyBlockIterator) Close() error              { return nil }

type bigMafIterator struct {
	feats  mafquery.BigBedFeatureIterator
	cfg    mafquery.Config
	region mafquery.Region
	cur    mafquery.Block
}

func (it *bigMafIterator) Next(ctx context.Context) bool {
	for it.feats.Next() {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		f := it.feats.Feature()
		blk, found := bigmaf.Decode(f.ExtraField, it.cfg.RefAssemblyName, it.region.AssemblyName)
		if !found && it.cfg.Status != nil {
			it.cfg.Status(mafquery.ErrReferenceNotFound.Error())
		}
		if blk.Overlaps(it.region.Start, it.region.End) {
			it.cur = blk
			return true
		}
	}
	return false
}

func (it *bigMafIterator) Block() mafquery.Block { return it.cur }
func (it *bigMafIterator) Error() error          { return it.feats.Error() }
func (it *bigMafIterator) Close() error          { return it.feats.Close() }

type tabixIterator struct {
	rows   mafquery.TabixRowIterator
	cfg    mafquery.Config
	region mafquery.Region
	cur    mafquery.Block
}

// mafBlockField is the tabix column index (0-based) holding the packed
// MafTabix row tuples, following the BED+1 layout used by the MafTabix
// converter.
const mafBlockField = 3

func (it *tabixIterator) Next(ctx context.Context) bool {
	for it.rows.Next() {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		row := it.rows.Row()
		if len(row.Fields) <= mafBlockField {
			continue
		}
		blk, found := maftabix.Decode(row.Fields[mafBlockField], it.cfg.RefAssemblyName, it.region.AssemblyName)
		if !found && it.cfg.Status != nil {
			it.cfg.Status(mafquery.ErrReferenceNotFound.Error())
		}
		if blk.Overlaps(it.region.Start, it.region.End) {
			it.cur = blk
			return true
		}
	}
	return false
}

func (it *tabixIterator) Block() mafquery.Block { return it.cur }
func (it *tabixIterator) Error() error          { return it.rows.Error() }
func (it *tabixIterator) Close() error          { return it.rows.Close() }
