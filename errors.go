// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mafquery

import "errors"

// ErrCancelled is returned by the TAF BlockIterator's Error once Next has
// stopped on a cancelled context. It is distinct from an I/O error:
// cancellation is a signal, not a failure of the underlying data. The
// BigMaf and MafTabix iterators also stop on a cancelled context, but
// their Error does not report ErrCancelled.
var ErrCancelled = errors.New("mafquery: query cancelled")

// ErrReferenceNotFound indicates that reference-row resolution (see
// ResolveReference's fallback cascade) found no matching row in a block.
// It is not fatal: the block is still yielded with an empty RefSeq.
var ErrReferenceNotFound = errors.New("mafquery: reference row not found in block")
