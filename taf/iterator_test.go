// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package taf

import (
	"context"
	"strings"
	"testing"

	"github.com/gmod/mafquery"
)

func TestIteratorFiltersToQueryWindow(t *testing.T) {
	body := strings.Join([]string{
		"ACGT ; i 0 hg38.chr1 100 + 1000 i 1 mm10.chr1 200 + 2000",
		"ACGT",
		"ACGT",
		"AC ; g 1 900",
		"AC",
		"AC ; g 1 900",
		"AC",
	}, "\n")

	it := NewBlockIterator(strings.NewReader(body), IteratorOptions{
		QueryStart:        0,
		QueryEnd:          102,
		QueryAssemblyName: "hg38",
	})
	ctx := context.Background()
	var count int
	for it.Next(ctx) {
		count++
		blk := it.Block()
		if blk.RefName != "chr1" {
			t.Errorf("RefName = %q, want chr1", blk.RefName)
		}
	}
	if err := it.Error(); err != nil {
		t.Fatalf("Error() = %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1 (only the first block overlaps [0,102))", count)
	}
}

func TestIteratorReferenceResolutionFallback(t *testing.T) {
	body := "ACGT ; i 0 hg38.chr1 100 + 1000 i 1 mm10.chr1 200 + 2000"
	it := NewBlockIterator(strings.NewReader(body), IteratorOptions{
		QueryStart: 0,
		QueryEnd:   1000,
	})
	ctx := context.Background()
	if !it.Next(ctx) {
		t.Fatalf("expected one block, Error() = %v", it.Error())
	}
	blk := it.Block()
	if blk.RefName != "chr1" {
		t.Errorf("fallback should pick the first-seen row (hg38); RefName = %q", blk.RefName)
	}
}

func TestIteratorCancellation(t *testing.T) {
	body := "ACGT ; i 0 a.chr1 0 + 100"
	it := NewBlockIterator(strings.NewReader(body), IteratorOptions{QueryStart: 0, QueryEnd: 100})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if it.Next(ctx) {
		t.Fatal("Next should return false on a cancelled context")
	}
	if it.Error() == nil {
		t.Error("expected a cancellation error")
	}
}

func TestIteratorReportsUnresolvedReferenceThroughStatus(t *testing.T) {
	// A coordinate line with no row instructions and no previous block
	// yields a block with zero rows, so reference resolution has nothing
	// to pick from.
	body := "ACGT ; "
	var statuses []string
	it := NewBlockIterator(strings.NewReader(body), IteratorOptions{
		QueryStart: 0,
		QueryEnd:   1000,
		Status:     func(phase string) { statuses = append(statuses, phase) },
	})
	it.Next(context.Background())

	var sawUnresolved bool
	for _, s := range statuses {
		if s == mafquery.ErrReferenceNotFound.Error() {
			sawUnresolved = true
		}
	}
	if !sawUnresolved {
		t.Errorf("statuses = %v, want a report of %q", statuses, mafquery.ErrReferenceNotFound)
	}
}

func TestIndexedResumeRewritesSubstituteToInsert(t *testing.T) {
	// Scenario S4: an indexed position lands mid-block with only d/s
	// instructions and no true previous block.
	body := "GG ; d 2 d 2 s 0 ce10.chrI 2272337 + 15072423 s 1 caeSp111.Scaffold80 35303 - 57550"
	it := NewBlockIterator(strings.NewReader(body), IteratorOptions{
		Decoder:    Options{FirstLineIsIndexedResume: true},
		QueryStart: 2272000,
		QueryEnd:   2273000,
	})
	if !it.Next(context.Background()) {
		t.Fatalf("expected a block, Error() = %v", it.Error())
	}
	blk := it.Block()
	if len(blk.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(blk.Rows))
	}
	ce10 := blk.Rows["ce10"]
	if ce10.Start != 2272337 || ce10.Strand != 1 {
		t.Errorf("ce10 row = %+v", ce10)
	}
	caeSp111 := blk.Rows["caeSp111"]
	if caeSp111.Start != 35303 || caeSp111.Strand != -1 {
		t.Errorf("caeSp111 row = %+v", caeSp111)
	}
}
