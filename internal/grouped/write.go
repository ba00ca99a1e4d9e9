package grouped

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/papapumpkin/gramsort/internal/table"
)

// Render writes each section as a "## <label>" heading, a blank line, the
// section's pipe table and a blank line. Output depends only on sections, so
// rendering the same sections twice yields identical bytes.
func Render(w io.Writer, sections []Section) error {
	bw := bufio.NewWriter(w)
	for _, s := range sections {
		if _, err := fmt.Fprintf(bw, "## %s\n\n", s.Label); err != nil {
			return fmt.Errorf("writing heading %q: %w", s.Label, err)
		}
		if err := table.Render(bw, s.Table); err != nil {
			return fmt.Errorf("section %q: %w", s.Label, err)
		}
		if _, err := bw.WriteString("\n\n"); err != nil {
			return fmt.Errorf("section %q: %w", s.Label, err)
		}
	}
	return bw.Flush()
}

// WriteFile renders sections to path, replacing any existing file.
//
// The output is written to a temporary file in the same directory and
// renamed over path once complete, so a failed run never leaves a truncated
// file behind. On failure the temporary file is removed.
func WriteFile(path string, sections []Section) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	// Ensure cleanup on failure.
	success := false
	defer func() {
		if !success {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := Render(tmp, sections); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("setting mode on %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", path, err)
	}

	success = true
	return nil
}
