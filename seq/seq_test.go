// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seq

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, s := range []string{
		"",
		"ACGT",
		"acgtn",
		"ACGTN",
		"A-C-G-T",
		"AC GT",
		"acgtACGTn N -  ",
	} {
		got := Encode([]byte(s)).Decode()
		if !bytes.Equal(got, []byte(s)) {
			t.Errorf("Decode(Encode(%q)) = %q, want %q", s, got, s)
		}
	}
}

func TestEncodeUnknownByte(t *testing.T) {
	s := Encode([]byte("AXZ"))
	if s.BaseAt(1) != '?' {
		t.Errorf("BaseAt(1) = %q, want '?'", s.BaseAt(1))
	}
}

func TestBaseAtLower(t *testing.T) {
	s := Encode([]byte("ACGTN-"))
	want := "acgtn-"
	for i := 0; i < s.Len(); i++ {
		if got := s.BaseAtLower(i); got != want[i] {
			t.Errorf("BaseAtLower(%d) = %q, want %q", i, got, want[i])
		}
	}
}

func TestIsGapIsSpace(t *testing.T) {
	s := Encode([]byte("A- G"))
	if s.IsGap(0) || !s.IsGap(1) || s.IsGap(2) {
		t.Errorf("IsGap mismatch for %q", "A- G")
	}
	if !s.IsSpace(2) {
		t.Error("expected position 2 to be a space")
	}
}

func TestOutOfRange(t *testing.T) {
	s := Encode([]byte("AC"))
	if s.CodeAt(-1) != CodeUnknown || s.CodeAt(2) != CodeUnknown {
		t.Error("out-of-range CodeAt should return CodeUnknown")
	}
	if s.BaseAt(5) != '?' {
		t.Error("out-of-range BaseAt should return the unknown character")
	}
}

func TestLenInvariant(t *testing.T) {
	for n := 0; n < 20; n++ {
		b := bytes.Repeat([]byte("A"), n)
		s := Encode(b)
		if s.Len() != n {
			t.Errorf("Len() = %d, want %d", s.Len(), n)
		}
	}
}
