// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assembly

import "testing"

func TestSplitSimple(t *testing.T) {
	cases := []struct {
		in, asm, chr string
	}{
		{"hg38.chr1", "hg38", "chr1"},
		{"hg38.chr1.alt", "hg38", "chr1.alt"},
		{"noDot", "noDot", ""},
	}
	for _, c := range cases {
		asm, chr := SplitSimple(c.in)
		if asm != c.asm || chr != c.chr {
			t.Errorf("SplitSimple(%q) = (%q, %q), want (%q, %q)", c.in, asm, chr, c.asm, c.chr)
		}
	}
}

func TestSplitHeuristic(t *testing.T) {
	cases := []struct {
		in, asm, chr string
	}{
		{"hg38.chr1", "hg38", "chr1"},
		{"asm.2.chr1", "asm.2", "chr1"},
		{"asm.chr1", "asm", "chr1"},
		{"noDot", "noDot", ""},
		{"asm.2.2", "asm.2", "2"},
	}
	for _, c := range cases {
		asm, chr := SplitHeuristic(c.in)
		if asm != c.asm || chr != c.chr {
			t.Errorf("SplitHeuristic(%q) = (%q, %q), want (%q, %q)", c.in, asm, chr, c.asm, c.chr)
		}
	}
}
