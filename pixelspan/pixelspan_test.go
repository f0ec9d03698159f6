// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pixelspan

import (
	"testing"

	"github.com/gmod/mafquery/seq"
)

func TestEmitAtFullResolutionEmitsEveryBase(t *testing.T) {
	e := NewEmitter(1)
	var got []Span
	for i, b := range []byte("ACGT") {
		if sp, ok := e.Emit(i, b); ok {
			got = append(got, sp)
		}
	}
	if len(got) != 4 {
		t.Fatalf("len(got) = %d, want 4", len(got))
	}
}

func TestEmitDedupsWhenZoomedOut(t *testing.T) {
	e := NewEmitter(4) // 4 bases per pixel
	var got []Span
	for i, b := range []byte("ACGTACGT") {
		if sp, ok := e.Emit(i, b); ok {
			got = append(got, sp)
		}
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2 (8 bases at 4bp/px collapse to 2 pixels)", len(got))
	}
	if got[0].Base != 'A' || got[1].Base != 'A' {
		t.Errorf("got = %+v, want first base of each pixel run retained", got)
	}
}

func TestEmitRowSkipsGaps(t *testing.T) {
	s := seq.Encode([]byte("AC-GT"))
	spans := EmitRow(100, s)
	if len(spans) != 4 {
		t.Fatalf("len(spans) = %d, want 4 (gap position contributes no span)", len(spans))
	}
}

func TestResetClearsDedupAcrossRows(t *testing.T) {
	e := NewEmitter(4)
	row1 := seq.Encode([]byte("ACGT"))
	row2 := seq.Encode([]byte("ACGT"))
	spans1 := EmitRowAtScale(0, row1, e)
	spans2 := EmitRowAtScale(0, row2, e)
	if len(spans1) != 1 || len(spans2) != 1 {
		t.Errorf("spans1=%d spans2=%d, want 1 and 1 (Reset must clear dedup between rows)", len(spans1), len(spans2))
	}
}
