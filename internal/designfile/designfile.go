// Package designfile reads and writes layout files: one shape per line in the
// types line format, newline-delimited, no header. Lines that fail to parse are
// skipped and counted; a file is never rejected as a whole.
package designfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/furnish/pkg/furnish"
	"github.com/mesh-intelligence/furnish/pkg/types"
)

// DefaultName is the file name offered when none is given.
const DefaultName = "design.txt"

// Write encodes d to w, one line per shape in stored order.
func Write(w io.Writer, d types.Design) error {
	bw := bufio.NewWriter(w)
	for _, s := range d {
		if _, err := bw.WriteString(s.MarshalLine()); err != nil {
			return fmt.Errorf("writing shape: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing buffer: %w", err)
	}
	return nil
}

// Read decodes shapes from r in order. Malformed lines, including empty ones,
// are skipped; skipped reports how many. err is non-nil only for read failures.
func Read(r io.Reader) (d types.Design, skipped int, err error) {
	d = types.Design{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		s, perr := types.ParseLine(line)
		if perr != nil {
			skipped++
			furnish.Logger().Debug("skipping layout line", "line", lineNo, "reason", perr)
			continue
		}
		d = append(d, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("scanning layout: %w", err)
	}
	return d, skipped, nil
}

// Load reads the layout file at path.
func Load(path string) (d types.Design, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	d, skipped, err = Read(f)
	if err != nil {
		return nil, skipped, fmt.Errorf("reading %s: %w", path, err)
	}
	furnish.Logger().Debug("loaded layout", "path", path, "shapes", len(d), "skipped", skipped)
	return d, skipped, nil
}

// Save atomically writes d to path using the temp-file, fsync, rename pattern.
func Save(path string, d types.Design) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".design-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := Write(tmp, d); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	furnish.Logger().Info("saved layout", "path", path, "shapes", len(d))
	return nil
}
