// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assembly splits the "assembly[.version].chr[.more]" tokens used
// to name rows across the three MAF encodings.
package assembly

import "strings"

// SplitSimple splits token on its first '.'. It is used by the BigMaf and
// TAF adapters, whose tokens never carry a numeric version suffix between
// the assembly name and the chromosome.
func SplitSimple(token string) (assemblyName, chr string) {
	i := strings.IndexByte(token, '.')
	if i < 0 {
		return token, ""
	}
	return token[:i], token[i+1:]
}

// SplitHeuristic splits token the way MafTabix rows are split: if the
// substring between the first two dots is entirely decimal digits, it is
// treated as an assembly version suffix and folded into assemblyName;
// otherwise the first dot is the separator, as in SplitSimple.
//
// This heuristic is preserved verbatim from the source implementation it
// was distilled from, including its known failure mode: an assembly name
// containing a numeric component immediately followed by a chromosome
// name with a leading digit (e.g. "asm.2.chr2" vs. "asm.2.2") can be
// misclassified.
func SplitHeuristic(token string) (assemblyName, chr string) {
	first := strings.IndexByte(token, '.')
	if first < 0 {
		return token, ""
	}
	rest := token[first+1:]
	second := strings.IndexByte(rest, '.')
	if second < 0 {
		return token[:first], rest
	}
	middle := rest[:second]
	if isAllDigits(middle) {
		return token[:first+1+second], rest[second+1:]
	}
	return token[:first], rest
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
