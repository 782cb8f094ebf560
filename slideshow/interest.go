// SPDX-License-Identifier: MIT

package slideshow

import mapset "github.com/deckarep/golang-set/v2"

// InterestScore returns min(|A∩B|, |A∖B|, |B∖A|).
// It is symmetric, integer-valued, and 0 whenever either set is empty
// (nil sets count as empty).
//
// Complexity: O(min(|A|, |B|)) set lookups, no allocations.
func InterestScore(a, b mapset.Set[string]) int {
	var na, nb int
	if a != nil {
		na = a.Cardinality()
	}
	if b != nil {
		nb = b.Cardinality()
	}
	if na == 0 || nb == 0 {
		return 0
	}

	// Probe the larger set with the members of the smaller one.
	small, large := a, b
	if nb < na {
		small, large = b, a
	}
	common := 0
	small.Each(func(tag string) bool {
		if large.Contains(tag) {
			common++
		}
		return false
	})

	return min(common, na-common, nb-common)
}
