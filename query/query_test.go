// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"context"
	"strings"
	"testing"

	"github.com/gmod/mafquery"
	"github.com/gmod/mafquery/tai"
)

type fakeReader struct {
	data []byte
}

func (f *fakeReader) ReadRange(ctx context.Context, offset, length int64) ([]byte, error) {
	end := offset + length
	if end > int64(len(f.data)) {
		end = int64(len(f.data))
	}
	if offset > int64(len(f.data)) {
		offset = int64(len(f.data))
	}
	return f.data[offset:end], nil
}

func TestQueryTAFReturnsOverlappingBlocks(t *testing.T) {
	body := "ACGT ; i 0 hg38.chr1 100 + 1000 i 1 mm10.chr1 200 + 2000\nACGT\nACGT\n"
	idx, err := tai.ReadFrom(strings.NewReader("chr1\t100\t0\n"))
	if err != nil {
		t.Fatalf("tai.ReadFrom: %v", err)
	}

	cfg := mafquery.Config{TafGzLocation: "x.taf.gz", TaiLocation: "x.tai"}
	src, err := New(cfg, Options{TaiIndex: idx, Reader: &fakeReader{data: []byte(body)}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	it, err := src.Query(context.Background(), mafquery.Region{RefName: "chr1", AssemblyName: "hg38", Start: 100, End: 103})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	defer it.Close()

	if !it.Next(context.Background()) {
		t.Fatalf("expected a block, Error() = %v", it.Error())
	}
	blk := it.Block()
	if blk.RefName != "chr1" || blk.RefStart != 100 {
		t.Errorf("block = %+v, want RefName=chr1 RefStart=100", blk)
	}
}

func TestQueryTAFUnknownReference(t *testing.T) {
	idx, _ := tai.ReadFrom(strings.NewReader("chr1\t100\t0\n"))
	cfg := mafquery.Config{TafGzLocation: "x.taf.gz", TaiLocation: "x.tai"}
	src, err := New(cfg, Options{TaiIndex: idx, Reader: &fakeReader{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	it, err := src.Query(context.Background(), mafquery.Region{RefName: "chrZ", Start: 0, End: 10})
	if err != nil {
		t.Fatalf("Query: %v, want a working empty iterator", err)
	}
	defer it.Close()
	if it.Next(context.Background()) {
		t.Errorf("Next() = true, want no blocks for a reference absent from the index")
	}
	if it.Error() != nil {
		t.Errorf("Error() = %v, want nil", it.Error())
	}
}

type fakeBigBedIter struct {
	feats []mafquery.BigBedFeature
	i     int
}

func (f *fakeBigBedIter) Next() bool {
	if f.i >= len(f.feats) {
		return false
	}
	f.i++
	return true
}
func (f *fakeBigBedIter) Feature() mafquery.BigBedFeature { return f.feats[f.i-1] }
func (f *fakeBigBedIter) Error() error                    { return nil }
func (f *fakeBigBedIter) Close() error                    { return nil }

type fakeBigBedQuery struct{ feats []mafquery.BigBedFeature }

func (q *fakeBigBedQuery) Query(ctx context.Context, refName string, start, end int) (mafquery.BigBedFeatureIterator, error) {
	return &fakeBigBedIter{feats: q.feats}, nil
}

func TestQueryBigMaf(t *testing.T) {
	extra := "s hg38.chr1 100 10 + 1000 ACGTACGTAC; s mm10.chr1 200 10 + 2000 ACGTACGTAC;"
	q := &fakeBigBedQuery{feats: []mafquery.BigBedFeature{{Start: 100, End: 110, ExtraField: extra}}}
	cfg := mafquery.Config{BigBedLocation: "x.bb"}
	src, err := New(cfg, Options{BigBed: q})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	it, err := src.Query(context.Background(), mafquery.Region{RefName: "chr1", Start: 100, End: 110})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !it.Next(context.Background()) {
		t.Fatalf("expected a block, Error() = %v", it.Error())
	}
	if it.Block().RefName != "chr1" {
		t.Errorf("RefName = %q, want chr1", it.Block().RefName)
	}
}
