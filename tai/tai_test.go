// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tai

import (
	"strings"
	"testing"

	"gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func (s *S) TestReadFromAbsolute(c *check.C) {
	data := "hg38.chr1\t0\t65536\n" +
		"hg38.chr1\t1000\t131072\n"
	idx, err := ReadFrom(strings.NewReader(data))
	c.Assert(err, check.IsNil)
	entries, refs := idx.Stats()
	c.Check(entries, check.Equals, 2)
	c.Check(refs, check.Equals, 1)

	first, next, ok := idx.Lookup("chr1", 500, 900)
	c.Assert(ok, check.Equals, true)
	c.Check(first.ChrStart, check.Equals, uint32(0))
	c.Check(next.ChrStart, check.Equals, uint32(1000))
}

func (s *S) TestReadFromRelativeDeltas(c *check.C) {
	absolute := "hg38.chr1\t0\t65536\n" +
		"hg38.chr1\t1000\t131072\n" +
		"hg38.chr1\t2500\t262144\n"
	relative := "hg38.chr1\t0\t65536\n" +
		"*\t1000\t65536\n" +
		"*\t1500\t131072\n"

	absIdx, err := ReadFrom(strings.NewReader(absolute))
	c.Assert(err, check.IsNil)
	relIdx, err := ReadFrom(strings.NewReader(relative))
	c.Assert(err, check.IsNil)

	c.Check(relIdx.refs["chr1"], check.DeepEquals, absIdx.refs["chr1"])
}

func (s *S) TestLookupSingleEntry(c *check.C) {
	idx, err := ReadFrom(strings.NewReader("chr1\t0\t0\n"))
	c.Assert(err, check.IsNil)
	first, next, ok := idx.Lookup("chr1", 10, 20)
	c.Assert(ok, check.Equals, true)
	c.Check(first, check.Equals, next)
}

func (s *S) TestLookupOutOfRangeQuery(c *check.C) {
	idx, err := ReadFrom(strings.NewReader("chr1\t100\t0\nchr1\t200\t65536\n"))
	c.Assert(err, check.IsNil)

	first, next, ok := idx.Lookup("chr1", 0, 10)
	c.Assert(ok, check.Equals, true)
	c.Check(first.ChrStart, check.Equals, uint32(100))
	c.Check(next.ChrStart, check.Equals, uint32(200))

	first, next, ok = idx.Lookup("chr1", 1000, 2000)
	c.Assert(ok, check.Equals, true)
	c.Check(first.ChrStart, check.Equals, uint32(200))
	c.Check(next.ChrStart, check.Equals, uint32(200))
}

func (s *S) TestLookupMissingRefName(c *check.C) {
	idx, err := ReadFrom(strings.NewReader("chr1\t0\t0\n"))
	c.Assert(err, check.IsNil)
	_, _, ok := idx.Lookup("chr2", 0, 10)
	c.Check(ok, check.Equals, false)
}

func (s *S) TestVirtualOffsetLayout(c *check.C) {
	e := Entry{ChrStart: 0, VOffset: (12345 << 16) | 42}
	c.Check(e.BlockPos(), check.Equals, uint64(12345))
	c.Check(e.DataPos(), check.Equals, uint16(42))
}

func (s *S) TestFirstRowRelativeIsError(c *check.C) {
	_, err := ReadFrom(strings.NewReader("*\t10\t10\n"))
	c.Assert(err, check.NotNil)
}
