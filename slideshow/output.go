// SPDX-License-Identifier: MIT

package slideshow

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultOutputName is the artifact written next to the working directory
// when no output path is configured.
const DefaultOutputName = "slideshow.sol"

// WriteOrder serializes order: the slide count, then one line per slide
// with its photo indices sorted ascending.
func WriteOrder(w io.Writer, order []Slide) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d\n", len(order)); err != nil {
		return err
	}
	for _, s := range order {
		if _, err := fmt.Fprintf(bw, "%s\n", s.Key()); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteFile writes order to path. The content goes to a temporary file in
// the same directory first and is renamed into place, so path either holds
// the complete order or is left untouched.
func WriteFile(path string, order []Slide) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = WriteOrder(tmp, order); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
