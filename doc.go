// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mafquery implements a multi-format reader for indexed multiple
// sequence alignments (MAF). It presents BigMaf, MafTabix and TAF encodings
// behind a single MafBlockSource capability that yields alignment blocks
// for a genomic interval as a lazy, cancellable sequence.
package mafquery
