// SPDX-License-Identifier: MIT

package slideshow

import "slices"

// PairVerticals combines vertical photos two at a time.
//
// Verticals are stable-sorted by descending tag count; the last two of the
// remaining list (the two smallest tag sets) are repeatedly popped and
// combined, last element first. With an odd count the largest-tagged
// leftover is dropped. The input slice is not modified.
//
// The pairing order is fixed so that outputs are reproducible for a given
// input; it is not an optimal matching.
//
// Complexity: O(V log V) for the sort plus O(total tags) for the unions.
func PairVerticals(verticals []Photo) []Slide {
	stack := slices.Clone(verticals)
	slices.SortStableFunc(stack, func(a, b Photo) int {
		return cardinality(b) - cardinality(a)
	})

	out := make([]Slide, 0, len(stack)/2)
	for len(stack) > 1 {
		p1 := stack[len(stack)-1]
		p2 := stack[len(stack)-2]
		stack = stack[:len(stack)-2]
		out = append(out, NewSlide(p1, p2))
	}

	return out
}

// Assemble returns the unified slide list: horizontal slides in input order
// followed by the paired vertical slides in pairing order.
func Assemble(in Instance) []Slide {
	paired := PairVerticals(in.Vertical)
	slides := make([]Slide, 0, len(in.Horizontal)+len(paired))
	slides = append(slides, in.Horizontal...)

	return append(slides, paired...)
}

// Dropped reports how many vertical photos Assemble leaves out (0 or 1).
func (in Instance) Dropped() int { return len(in.Vertical) % 2 }

func cardinality(p Photo) int {
	if p.Tags == nil {
		return 0
	}

	return p.Tags.Cardinality()
}
