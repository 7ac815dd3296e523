// SPDX-License-Identifier: MIT

package records

import "strings"

// canonicalKey is the form identity keys are compared in.
func canonicalKey(s string) string { return strings.TrimSpace(s) }

// internKeys maps each key to a dense int code; two records share a code iff
// their canonical keys are equal. Codes follow first appearance.
func internKeys(keys []string) ([]int, int) {
	codes := make([]int, len(keys))
	seen := make(map[string]int, len(keys))
	for i, k := range keys {
		k = canonicalKey(k)
		c, ok := seen[k]
		if !ok {
			c = len(seen)
			seen[k] = c
		}
		codes[i] = c
	}

	return codes, len(seen)
}
