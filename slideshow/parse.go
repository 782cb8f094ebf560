// SPDX-License-Identifier: MIT

package slideshow

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// maxLineBytes bounds a single input record.
const maxLineBytes = 16 << 20

// Instance is a parsed input file.
type Instance struct {
	// Photos is the photo count N declared by the header.
	Photos int

	// Horizontal holds one singleton slide per horizontal photo, in input order.
	Horizontal []Slide

	// Vertical holds the vertical photos, in input order.
	Vertical []Photo
}

// ReadFile opens path and parses it. I/O failures carry the path.
func ReadFile(path string) (Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return Instance{}, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()

	in, err := Parse(f)
	if err != nil {
		return Instance{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return in, nil
}

// Parse reads the "N" header and N photo records of the form
// "<H|V> <tagCount> <tag>*".
//
// Contracts:
//   - The number of records must equal N; trailing blank lines are ignored.
//   - tagCount must equal the number of tag tokens on the line.
//   - Duplicate tags on one record collapse into one.
//
// Errors wrap ErrFormat with the 1-based line number.
//
// Complexity: O(total tokens).
func Parse(r io.Reader) (Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return Instance{}, err
	}
	// Trailing blank lines are not records.
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return Instance{}, fmt.Errorf("%w: missing photo count", ErrFormat)
	}

	n, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil || n < 0 {
		return Instance{}, fmt.Errorf("%w: line 1: invalid photo count %q", ErrFormat, lines[0])
	}
	records := lines[1:]
	if len(records) != n {
		return Instance{}, fmt.Errorf("%w: header declares %d photos, found %d records", ErrFormat, n, len(records))
	}

	in := Instance{Photos: n}
	var p Photo
	for i, line := range records {
		if p, err = parseRecord(i, line); err != nil {
			return Instance{}, fmt.Errorf("%w: line %d: %w", ErrFormat, i+2, err)
		}
		if p.Orientation == Horizontal {
			in.Horizontal = append(in.Horizontal, NewSlide(p))
		} else {
			in.Vertical = append(in.Vertical, p)
		}
	}

	return in, nil
}

// parseRecord parses one photo record; index is the photo's 0-based position.
func parseRecord(index int, line string) (Photo, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Photo{}, fmt.Errorf("expected orientation and tag count, got %d fields", len(fields))
	}
	o, ok := orientationOf(fields[0])
	if !ok {
		return Photo{}, fmt.Errorf("unknown orientation %q", fields[0])
	}
	count, err := strconv.Atoi(fields[1])
	if err != nil || count < 0 {
		return Photo{}, fmt.Errorf("invalid tag count %q", fields[1])
	}
	tags := fields[2:]
	if len(tags) != count {
		return Photo{}, fmt.Errorf("declared %d tags, found %d", count, len(tags))
	}

	return Photo{
		Index:       index,
		Orientation: o,
		Tags:        mapset.NewSet(tags...),
	}, nil
}
