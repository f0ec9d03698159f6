// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package taf

import "strings"

// HasRunLengthEncodedBases reports whether a TAF header's first line
// enables the run_length_encode_bases toggle (section "Run-length
// encoded bases" of the spec): the line must begin with "#taf" and
// contain the token "run_length_encode_bases:1".
func HasRunLengthEncodedBases(firstLine string) bool {
	if !strings.HasPrefix(firstLine, "#taf") {
		return false
	}
	for _, tok := range strings.Fields(firstLine) {
		if tok == "run_length_encode_bases:1" {
			return true
		}
	}
	return false
}
