// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package taf

// decodeRLE expands a run-length-encoded bases token: alternating
// (base-char, count) pairs. An empty token decodes to no bases; a count
// of 0 contributes no bases for that pair.
func decodeRLE(token string) []byte {
	if token == "" {
		return nil
	}
	var out []byte
	i := 0
	for i < len(token) {
		base := token[i]
		i++
		start := i
		for i < len(token) && token[i] >= '0' && token[i] <= '9' {
			i++
		}
		count := 1
		if i > start {
			count = 0
			for _, d := range token[start:i] {
				count = count*10 + int(d-'0')
			}
		}
		for n := 0; n < count; n++ {
			out = append(out, base)
		}
	}
	return out
}
