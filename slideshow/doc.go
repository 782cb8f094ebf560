// SPDX-License-Identifier: MIT

// Package slideshow models a tagged photo collection and the slides built
// from it.
//
// It covers every step of the pipeline that does not involve the solver:
//
//   - Parse / ReadFile: read "N" followed by N "<H|V> <tagCount> <tag>*" records.
//   - PairVerticals / Assemble: combine vertical photos two at a time.
//     Verticals are stable-sorted by descending tag count and the two
//     smallest remaining are popped together; an odd leftover is dropped.
//   - InterestScore: min(|A∩B|, |A∖B|, |B∖A|) between two tag sets.
//   - Catalog.Score: open-path score of an emitted order, looked up by
//     slide key (the sorted photo-index tuple).
//   - WriteOrder / WriteFile: "S" followed by one line of sorted photo
//     indices per slide. WriteFile never leaves a partial file behind.
//
// Tag sets are github.com/deckarep/golang-set/v2 sets. The package holds no
// global state, does not log and reports failures through the sentinels in
// errors.go.
package slideshow
