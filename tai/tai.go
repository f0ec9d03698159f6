// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tai implements the .tai index used to random-access a TAF file:
// a mapping from (refName, refStart) to a virtual bgzf offset.
package tai

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/mmap"
	"golang.org/x/exp/slices"
)

// Entry is one .tai row: the reference-coordinate start of the block and
// the virtual offset ((blockPos << 16) | dataPos) at which it begins.
type Entry struct {
	ChrStart uint32
	VOffset  uint64
}

// BlockPos returns the compressed bgzf block position component of the
// entry's virtual offset.
func (e Entry) BlockPos() uint64 { return e.VOffset >> 16 }

// DataPos returns the within-block decompressed data position component
// of the entry's virtual offset.
func (e Entry) DataPos() uint16 { return uint16(e.VOffset & 0xffff) }

// Index is a parsed .tai index: a map from reference name to its entries,
// sorted ascending by ChrStart.
type Index struct {
	refs map[string][]Entry
}

// New returns an empty Index.
func New() *Index {
	return &Index{refs: make(map[string][]Entry)}
}

// RefNames returns the reference names held by the index. The returned
// slice should not be altered.
func (idx *Index) RefNames() []string {
	names := make([]string, 0, len(idx.refs))
	for n := range idx.refs {
		names = append(names, n)
	}
	return names
}

// Stats returns the total number of entries and the number of distinct
// reference names in the index.
func (idx *Index) Stats() (entries, refs int) {
	refs = len(idx.refs)
	for _, e := range idx.refs {
		entries += len(e)
	}
	return entries, refs
}

// Open opens the .tai file at path via mmap and parses it. The mmapped
// file is closed before Open returns; only the parsed Index is retained,
// since .tai files are small plain-text sidecars, not something callers
// need to keep resident.
func Open(path string) (*Index, error) {
	f, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tai: %w", err)
	}
	defer f.Close()
	idx, err := ReadFrom(io.NewSectionReader(f, 0, int64(f.Len())))
	if err != nil {
		return nil, fmt.Errorf("tai: %w", err)
	}
	return idx, nil
}

// ReadFrom parses a .tai index from r. Each line is tab-separated
// (chr, chrStart, virtualOffset). A literal "*" in the chr column means
// the row's chrStart and virtualOffset are deltas relative to the
// previous line's absolute values.
func ReadFrom(r io.Reader) (*Index, error) {
	idx := New()

	var (
		prevChr      string
		prevChrStart uint32
		prevVOffset  uint64
		havePrev     bool
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			continue
		}

		var chr string
		var chrStart uint32
		var vOffset uint64

		if fields[0] == "*" {
			if !havePrev {
				return nil, errors.New("tai: relative row with no preceding absolute row")
			}
			dStart, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("tai: bad relative chrStart: %w", err)
			}
			dOff, err := strconv.ParseInt(fields[2], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("tai: bad relative virtualOffset: %w", err)
			}
			chr = prevChr
			chrStart = uint32(int64(prevChrStart) + dStart)
			vOffset = uint64(int64(prevVOffset) + dOff)
		} else {
			raw := fields[0]
			if i := strings.LastIndexByte(raw, '.'); i >= 0 {
				chr = raw[i+1:]
			} else {
				chr = raw
			}
			start, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("tai: bad chrStart: %w", err)
			}
			off, err := strconv.ParseUint(fields[2], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("tai: bad virtualOffset: %w", err)
			}
			chrStart = uint32(start)
			vOffset = off
		}

		idx.refs[chr] = append(idx.refs[chr], Entry{ChrStart: chrStart, VOffset: vOffset})
		prevChr, prevChrStart, prevVOffset, havePrev = chr, chrStart, vOffset, true
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("tai: %w", err)
	}
	return idx, nil
}

// Lookup returns the entry pair bracketing [qStart, qEnd) for refName, per
// the TAF random-access scheme: first is the entry just before the first
// entry whose ChrStart is at or after qStart (index 0 if there is none
// before it), and next is the entry just after the first entry whose
// ChrStart is at or after qEnd (clamped to the final entry). Lookup never
// fails on an out-of-range query: first and next may be equal, yielding a
// single-block read.
//
// ok is false only when refName is absent from the index.
func (idx *Index) Lookup(refName string, qStart, qEnd uint32) (first, next Entry, ok bool) {
	entries, present := idx.refs[refName]
	if !present || len(entries) == 0 {
		return Entry{}, Entry{}, false
	}

	i, _ := slices.BinarySearchFunc(entries, qStart, func(e Entry, target uint32) int {
		switch {
		case e.ChrStart < target:
			return -1
		case e.ChrStart > target:
			return 1
		default:
			return 0
		}
	})
	firstIdx := i - 1
	if firstIdx < 0 {
		firstIdx = 0
	}

	j, _ := slices.BinarySearchFunc(entries, qEnd, func(e Entry, target uint32) int {
		switch {
		case e.ChrStart < target:
			return -1
		case e.ChrStart > target:
			return 1
		default:
			return 0
		}
	})
	nextIdx := j + 1
	if nextIdx >= len(entries) {
		nextIdx = len(entries) - 1
	}

	return entries[firstIdx], entries[nextIdx], true
}
