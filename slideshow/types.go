// SPDX-License-Identifier: MIT

package slideshow

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Orientation is the photo orientation as written in the input file.
type Orientation byte

const (
	// Horizontal photos become a slide on their own.
	Horizontal Orientation = 'H'
	// Vertical photos are shown two per slide.
	Vertical Orientation = 'V'
)

// String returns the single-letter input token.
func (o Orientation) String() string { return string(o) }

// ParseOrientation maps "H"/"V" to an Orientation.
func ParseOrientation(tok string) (Orientation, error) {
	o, ok := orientationOf(tok)
	if !ok {
		return 0, fmt.Errorf("%w: unknown orientation %q", ErrFormat, tok)
	}

	return o, nil
}

func orientationOf(tok string) (Orientation, bool) {
	switch tok {
	case "H":
		return Horizontal, true
	case "V":
		return Vertical, true
	default:
		return 0, false
	}
}

// Photo is one input record. Index is its 0-based position in the input.
type Photo struct {
	Index       int
	Orientation Orientation
	Tags        mapset.Set[string]
}

// Slide is one horizontal photo or a pair of vertical photos.
// Photos keeps construction order (pairing order for verticals);
// Tags is the union of the photos' tags.
type Slide struct {
	Photos []int
	Tags   mapset.Set[string]
}

// NewSlide combines photos into a slide, in the given order.
func NewSlide(photos ...Photo) Slide {
	s := Slide{
		Photos: make([]int, 0, len(photos)),
		Tags:   mapset.NewSet[string](),
	}
	for _, p := range photos {
		s.Photos = append(s.Photos, p.Index)
		if p.Tags == nil {
			continue
		}
		// Union requires both sets to share a thread-safety flavour.
		p.Tags.Each(func(tag string) bool {
			s.Tags.Add(tag)
			return false
		})
	}

	return s
}

// Sorted returns the slide's photo indices in ascending order.
func (s Slide) Sorted() []int {
	out := slices.Clone(s.Photos)
	slices.Sort(out)

	return out
}

// Normalized returns a copy of s whose Photos are sorted, the form in
// which slides are emitted.
func (s Slide) Normalized() Slide {
	return Slide{Photos: s.Sorted(), Tags: s.Tags}
}

// Key returns the slide identity.
func (s Slide) Key() Key { return KeyOf(s.Photos) }

// Interest is InterestScore between the tags of s and other.
func (s Slide) Interest(other Slide) int { return InterestScore(s.Tags, other.Tags) }

// Key is the sorted photo-index tuple of a slide rendered as
// space-separated decimal text, e.g. "2 3". It is the same text the
// output writer emits for that slide.
type Key string

// KeyOf builds the key of a photo-index tuple in any order.
func KeyOf(indices []int) Key {
	sorted := slices.Clone(indices)
	slices.Sort(sorted)

	return Key(joinInts(sorted))
}

func joinInts(xs []int) string {
	var sb strings.Builder
	for i, x := range xs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(x))
	}

	return sb.String()
}
