// SPDX-License-Identifier: MIT

package slideshow

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// Catalog maps each slide key of an instance to its tag set.
// It is the lookup used to audit an emitted order independently of the
// solver's objective.
type Catalog map[Key]mapset.Set[string]

// NewCatalog indexes slides by key.
func NewCatalog(slides []Slide) Catalog {
	c := make(Catalog, len(slides))
	for _, s := range slides {
		c[s.Key()] = s.Tags
	}

	return c
}

// Score sums InterestScore over consecutive slides of order.
//
// The sum covers the open path only: the edge from the last slide back to
// the first is not counted, whereas the tour model maximizes the closed
// cycle. The two values therefore differ by the interest of that closing
// edge.
//
// Errors: ErrUnknownSlide when a slide key is not in the catalog.
//
// Complexity: O(Σ |tags|) over the order.
func (c Catalog) Score(order []Slide) (int, error) {
	var (
		total int
		prev  mapset.Set[string]
	)
	for i, s := range order {
		tags, ok := c[s.Key()]
		if !ok {
			return 0, fmt.Errorf("%w: position %d key %q", ErrUnknownSlide, i, s.Key())
		}
		if i > 0 {
			total += InterestScore(prev, tags)
		}
		prev = tags
	}

	return total, nil
}
