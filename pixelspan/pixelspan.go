// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pixelspan converts a run of alignment columns into the pixel
// spans a renderer draws, collapsing runs of columns that land on the
// same output pixel at the current zoom level.
package pixelspan

import "github.com/gmod/mafquery/seq"

// Span is one drawable unit: the half-open pixel range [X0, X1) and the
// base character to paint there. Multiple genomic columns collapse into
// one Span when they map to the same pixel.
type Span struct {
	X0, X1 int
	Base   byte
}

// Emitter converts a stream of (genomic position, base) pairs into Spans
// at a fixed bases-per-pixel scale. It is stateful: it must see positions
// in ascending order within one row.
type Emitter struct {
	bpPerPixel float64
	lastX      int // pixel column of the most recently emitted Span; -1 before the first
}

// NewEmitter returns an Emitter at the given bases-per-pixel scale.
// bpPerPixel must be positive.
func NewEmitter(bpPerPixel float64) *Emitter {
	return &Emitter{bpPerPixel: bpPerPixel, lastX: -1}
}

// pixelOf maps a genomic position to its pixel column at the emitter's
// current scale.
func (e *Emitter) pixelOf(pos int) int {
	return int(float64(pos) / e.bpPerPixel)
}

// Emit reports whether pos falls on a pixel column distinct from the one
// most recently emitted, and if so returns the Span for it. Once a pixel
// column has been emitted, every subsequent position mapping to that same
// column is dropped: this is the dedup gate that keeps a zoomed-out
// alignment from redrawing the same pixel once per base.
func (e *Emitter) Emit(pos int, base byte) (Span, bool) {
	x := e.pixelOf(pos)
	if x == e.lastX {
		return Span{}, false
	}
	e.lastX = x
	return Span{X0: x, X1: x + 1, Base: base}, true
}

// Reset clears the dedup state, starting a fresh run (e.g. at the
// beginning of a new row).
func (e *Emitter) Reset() { e.lastX = -1 }

// EmitRow runs Emit over every non-gap position of s, starting at
// genomic coordinate start, and returns the resulting deduplicated
// Spans. Gap positions are skipped entirely: they contribute no pixel.
func EmitRow(start uint32, s seq.Seq) []Span {
	e := NewEmitter(1)
	return EmitRowAtScale(start, s, e)
}

// EmitRowAtScale is EmitRow with an explicit, possibly-shared Emitter, so
// a caller rendering many rows at the same zoom level can reuse one
// Emitter's scale without reusing its dedup state (it calls Reset on e
// before walking s).
func EmitRowAtScale(start uint32, s seq.Seq, e *Emitter) []Span {
	e.Reset()
	var spans []Span
	for i := 0; i < s.Len(); i++ {
		if s.IsGap(i) {
			continue
		}
		if sp, ok := e.Emit(int(start)+i, s.BaseAt(i)); ok {
			spans = append(spans, sp)
		}
	}
	return spans
}
