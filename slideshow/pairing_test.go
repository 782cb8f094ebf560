// SPDX-License-Identifier: MIT

package slideshow_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/slideshow/slideshow"
)

// TestPairVerticalsOrder pins the pairing sequence: stable sort by
// descending tag count, then pop the two smallest from the end.
func TestPairVerticalsOrder(t *testing.T) {
	vs := []slideshow.Photo{
		vertical(0, "a", "b", "c"),
		vertical(1, "d"),
		vertical(2, "e", "f"),
		vertical(3, "g"),
	}
	got := slideshow.PairVerticals(vs)
	require.Len(t, got, 2)

	assert.Equal(t, []int{3, 1}, got[0].Photos)
	assert.True(t, got[0].Tags.Equal(tags("d", "g")))
	assert.Equal(t, []int{2, 0}, got[1].Photos)
	assert.True(t, got[1].Tags.Equal(tags("a", "b", "c", "e", "f")))

	// Input is untouched.
	assert.Equal(t, 0, vs[0].Index)
	assert.Equal(t, 3, vs[3].Index)
}

func TestPairVerticalsCounts(t *testing.T) {
	for n := 0; n <= 7; n++ {
		vs := make([]slideshow.Photo, n)
		for i := range vs {
			// Photo i carries i+1 tags, so higher indices sort first.
			ts := make([]string, 0, i+1)
			for j := 0; j <= i; j++ {
				ts = append(ts, strings.Repeat("x", j+1))
			}
			vs[i] = vertical(i, ts...)
		}
		got := slideshow.PairVerticals(vs)
		require.Len(t, got, n/2, "vertical count %d", n)

		seen := map[int]bool{}
		for _, s := range got {
			require.Len(t, s.Photos, 2)
			for _, p := range s.Photos {
				require.False(t, seen[p], "photo %d paired twice", p)
				seen[p] = true
			}
		}
		assert.Len(t, seen, n-n%2)
		if n%2 == 1 {
			// The largest tag set sits at the bottom of the stack and is left over.
			assert.False(t, seen[n-1])
		}
	}
}

func TestPairVerticalsReproducible(t *testing.T) {
	vs := []slideshow.Photo{
		vertical(0, "a", "b"),
		vertical(1, "c", "d"),
		vertical(2, "e"),
		vertical(3, "f", "g"),
		vertical(4, "h"),
	}
	first := slideshow.PairVerticals(vs)
	for i := 0; i < 5; i++ {
		again := slideshow.PairVerticals(vs)
		require.Len(t, again, len(first))
		for k := range first {
			assert.Equal(t, first[k].Photos, again[k].Photos)
		}
	}
	// Ties keep input order: 4 and 2 (1 tag) pair first, then 3 and 1.
	assert.Equal(t, []int{4, 2}, first[0].Photos)
	assert.Equal(t, []int{3, 1}, first[1].Photos)
}

func TestAssemble(t *testing.T) {
	in, err := slideshow.Parse(strings.NewReader(fivePhotos))
	require.NoError(t, err)

	slides := slideshow.Assemble(in)
	require.Len(t, slides, 4)
	assert.Equal(t, []int{0}, slides[0].Photos)
	assert.Equal(t, []int{1}, slides[1].Photos)
	assert.Equal(t, []int{4}, slides[2].Photos)
	assert.Equal(t, []int{3, 2}, slides[3].Photos)
	assert.True(t, slides[3].Tags.Equal(tags("d", "e")))
	assert.Equal(t, slideshow.Key("2 3"), slides[3].Key())
	assert.Zero(t, in.Dropped())
}
