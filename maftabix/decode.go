// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package maftabix decodes MAF blocks packed into the extra field of a
// tabix-indexed BED record: a comma-separated list of colon-delimited row
// tuples, "asm.chr:start:srcSize:strand:unknown:seq".
package maftabix

import (
	"strconv"
	"strings"

	"github.com/gmod/mafquery"
	"github.com/gmod/mafquery/assembly"
	"github.com/gmod/mafquery/seq"
)

// Decode parses the packed extra field of a MafTabix BED row into a Block.
// Row assembly/chr splitting uses assembly.SplitHeuristic, since MafTabix
// source names may carry a numeric assembly version between the assembly
// name and the chromosome, unlike the BigMaf and TAF names, which are split
// with assembly.SplitSimple. The
// second return value is false when reference-row resolution failed
// (mirroring mafquery.ErrReferenceNotFound); the block is still returned,
// with a zero-value RefSeq.
func Decode(packed, refAssemblyName, queryAssemblyName string) (mafquery.Block, bool) {
	rows := make(map[string]mafquery.Row)
	var order []string

	for _, tuple := range strings.Split(packed, ",") {
		tuple = strings.TrimSpace(tuple)
		if tuple == "" {
			continue
		}
		fields := strings.Split(tuple, ":")
		if len(fields) != 6 {
			continue
		}
		start, err1 := strconv.ParseUint(fields[1], 10, 32)
		srcSize, err2 := strconv.ParseUint(fields[2], 10, 32)
		strand, err3 := parseStrand(fields[3])
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		asm, chr := assembly.SplitHeuristic(fields[0])
		row := mafquery.Row{
			AssemblyName: asm,
			Chr:          chr,
			Start:        uint32(start),
			SrcSize:      uint32(srcSize),
			Strand:       strand,
			Seq:          seq.Encode([]byte(fields[5])),
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
