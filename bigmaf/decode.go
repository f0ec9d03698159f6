// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bigmaf decodes the "mafBlock" extra column of a BigBed record:
// a semicolon-separated list of MAF "s" lines.
package bigmaf

import (
	"strconv"
	"strings"

	"github.com/gmod/mafquery"
	"github.com/gmod/mafquery/assembly"
	"github.com/gmod/mafquery/seq"
)

// Decode parses a BigMaf mafBlock string into a Block. The first "s" line
// encountered becomes the reference row (the BigMaf convention), unless
// refAssemblyName or queryAssemblyName resolve to a different row per
// mafquery.ResolveReference. The second return value is false when the
// block has no row resolution could pick as reference (mirroring
// mafquery.ErrReferenceNotFound); the block is still returned, with a
// zero-value RefSeq.
func Decode(mafBlock, refAssemblyName, queryAssemblyName string) (mafquery.Block, bool) {
	rows := make(map[string]mafquery.Row)
	var order []string

	for _, segment := range strings.Split(mafBlock, ";") {
		segment = strings.TrimSpace(segment)
		if !strings.HasPrefix(segment, "s ") && segment != "s" {
			continue
		}
		fields := strings.Fields(segment)
		if len(fields) < 7 {
			continue
		}
		start, err1 := strconv.ParseUint(fields[2], 10, 32)
		srcSize, err2 := strconv.ParseUint(fields[5], 10, 32)
		strand, err3 := parseStrand(fields[4])
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		asm, chr := assembly.SplitSimple(fields[1])
		row := mafquery.Row{
			AssemblyName: asm,
			Chr:          chr,
			Start:        uint32(start),
			SrcSize:      uint32(srcSize),
			Strand:       strand,
			Seq:          seq.Encode([]byte(fields[6])),
		}
		if _, exists := rows[asm]; !exists {
			order = append(order, asm)
		}
		rows[asm] = row
	}

	blk := mafquery.Block{Rows: rows, RowOrder: order}
	refRow, found := mafquery.ResolveReference(rows, order, refAssemblyName, queryAssemblyName)
	if found {
		blk.RefName = refRow.Chr
		blk.RefStart = refRow.Start
		blk.RefEnd = refRow.Start + uint32(refRow.NonGap())
		blk.RefSeq = refRow.Seq
	}
	return blk, found
}

func parseStrand(tok string) (mafquery.Strand, error) {
	switch tok {
	case "+":
		return mafquery.Forward, nil
	case "-":
		return mafquery.Reverse, nil
	default:
		return 0, strconv.ErrSyntax
	}
}
