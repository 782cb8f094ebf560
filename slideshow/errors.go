// SPDX-License-Identifier: MIT

package slideshow

import "errors"

var (
	// ErrFormat is returned for malformed input: a bad photo count, a record
	// count that differs from the header, an unknown orientation, or a tag
	// count that does not match the tags listed. Wrapped with line context.
	ErrFormat = errors.New("slideshow: malformed input")

	// ErrUnknownSlide is returned by Catalog.Score when an emitted slide key
	// does not belong to the instance.
	ErrUnknownSlide = errors.New("slideshow: unknown slide")
)
