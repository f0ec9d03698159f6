// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mafquery

// ResolveReference picks the reference row for a block out of rows/order
// using the fallback cascade in spec section "Reference-sequence
// resolution": an explicit configured name, then the query region's
// assembly name, then the first assembly observed in the block (order[0]).
// It reports false if none of the three candidates are present in rows,
// in which case the caller should still yield the block with an empty
// RefSeq rather than dropping it.
func ResolveReference(rows map[string]Row, order []string, refAssemblyName, queryAssemblyName string) (Row, bool) {
	for _, candidate := range []string{refAssemblyName, queryAssemblyName} {
		if candidate == "" {
			continue
		}
		if row, ok := rows[candidate]; ok {
			return row, true
		}
	}
	if len(order) > 0 {
		if row, ok := rows[order[0]]; ok {
			return row, true
		}
	}
	return Row{}, false
}
