// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package instr tokenizes the TAF row-instruction stream (i/s/d/g/G) that
// accompanies each coordinate line, and implements the s->i rewrite used
// when resuming a query at an indexed position with no previous block.
package instr

import (
	"strconv"
	"strings"

	"github.com/gmod/mafquery/assembly"
)

// Op identifies one row-instruction opcode.
type Op byte

const (
	OpInsert       Op = 'i'
	OpSubstitute   Op = 's'
	OpDelete       Op = 'd'
	OpGapLen       Op = 'g'
	OpGapSubstring Op = 'G'
)

// Instruction is one parsed row instruction. Not every field is
// meaningful for every Op: Insert/Substitute populate AssemblyName
// through SrcSize; Delete populates only Row; GapLen populates Row and
// Gap; GapSubstring populates Row and GapString.
type Instruction struct {
	Op           Op
	Row          int
	AssemblyName string
	Chr          string
	Start        uint32
	Strand       int8
	SrcSize      uint32
	Gap          uint32
	GapString    string
}

// Parse tokenizes an instruction string (the right-hand side of the
// " ; " sentinel on a coordinate line) into a sequence of Instructions,
// preserving order. A malformed token is skipped and parsing resumes at
// the next token, so a single bad instruction cannot abort the whole
// line.
func Parse(s string) []Instruction {
	fields := strings.Fields(s)
	var out []Instruction
	for i := 0; i < len(fields); {
		switch fields[i] {
		case "i", "s":
			if i+5 >= len(fields) {
				i++
				continue
			}
			row, err1 := strconv.Atoi(fields[i+1])
			start, err2 := strconv.ParseUint(fields[i+3], 10, 32)
			strand, err3 := parseStrand(fields[i+4])
			srcSize, err4 := strconv.ParseUint(fields[i+5], 10, 32)
			if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
				i++
				continue
			}
			asm, chr := assembly.SplitSimple(fields[i+2])
			op := OpInsert
			if fields[i] == "s" {
				op = OpSubstitute
			}
			out = append(out, Instruction{
				Op:           op,
				Row:          row,
				AssemblyName: asm,
				Chr:          chr,
				Start:        uint32(start),
				Strand:       strand,
				SrcSize:      uint32(srcSize),
			})
			i += 6
		case "d":
			if i+1 >= len(fields) {
				i++
				continue
			}
			row, err := strconv.Atoi(fields[i+1])
			if err != nil {
				i++
				continue
			}
			out = append(out, Instruction{Op: OpDelete, Row: row})
			i += 2
		case "g":
			if i+2 >= len(fields) {
				i++
				continue
			}
			row, err1 := strconv.Atoi(fields[i+1])
			gap, err2 := strconv.ParseUint(fields[i+2], 10, 32)
			if err1 != nil || err2 != nil {
				i++
				continue
			}
			out = append(out, Instruction{Op: OpGapLen, Row: row, Gap: uint32(gap)})
			i += 3
		case "G":
			if i+2 >= len(fields) {
				i++
				continue
			}
			row, err := strconv.Atoi(fields[i+1])
			if err != nil {
				i++
				continue
			}
			gapStr := fields[i+2]
			out = append(out, Instruction{Op: OpGapSubstring, Row: row, GapString: gapStr, Gap: uint32(len(gapStr))})
			i += 3
		default:
			i++
		}
	}
	return out
}

func parseStrand(tok string) (int8, error) {
	switch tok {
	case "+":
		return 1, nil
	case "-":
		return -1, nil
	default:
		return 0, strconv.ErrSyntax
	}
}

// RewriteForIndexedStart filters instructions the way the reconstructor
// must when resuming at a .tai-indexed position with no previous block:
// Delete/GapLen/GapSubstring instructions reference nonexistent state and
// are dropped, and every Substitute becomes a structurally identical
// Insert.
func RewriteForIndexedStart(in []Instruction) []Instruction {
	out := make([]Instruction, 0, len(in))
	for _, ins := range in {
		switch ins.Op {
		case OpDelete, OpGapLen, OpGapSubstring:
			continue
		case OpSubstitute:
			ins.Op = OpInsert
			out = append(out, ins)
		default:
			out = append(out, ins)
		}
	}
	return out
}
