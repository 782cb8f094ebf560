// SPDX-License-Identifier: MIT

package slideshow_test

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/katalvlaran/slideshow/slideshow"
)

// tags builds a tag set literal.
func tags(ts ...string) mapset.Set[string] { return mapset.NewSet(ts...) }

// vertical builds a vertical photo with the given index and tags.
func vertical(index int, ts ...string) slideshow.Photo {
	return slideshow.Photo{Index: index, Orientation: slideshow.Vertical, Tags: tags(ts...)}
}

// slideOf builds a slide from explicit photo indices and tags.
func slideOf(photos []int, ts ...string) slideshow.Slide {
	return slideshow.Slide{Photos: photos, Tags: tags(ts...)}
}
