// Package ansi provides ANSI escape code constants for terminal output and
// strips them again when the destination is not a terminal.
// All colored/styled terminal output should reference these constants to avoid duplication.
package ansi

import (
	"io"
	"os"
	"regexp"

	"github.com/mattn/go-isatty"
)

// ANSI SGR (Select Graphic Rendition) codes.
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Yellow = "\033[33m"
	Green  = "\033[32m"
	Red    = "\033[31m"
	Cyan   = "\033[36m"
)

var sgr = regexp.MustCompile("\033\\[[0-9;]*m")

// Enabled reports whether styled output should be written to w: w must be a
// terminal and NO_COLOR must be unset.
func Enabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Strip removes SGR sequences from s.
func Strip(s string) string {
	return sgr.ReplaceAllString(s, "")
}

// Writer returns w unchanged when Enabled(w), otherwise a writer that strips
// SGR sequences before passing text on. Each Write must carry whole
// sequences.
func Writer(w io.Writer) io.Writer {
	if Enabled(w) {
		return w
	}
	return stripWriter{w}
}

type stripWriter struct {
	w io.Writer
}

func (s stripWriter) Write(p []byte) (int, error) {
	if _, err := s.w.Write(sgr.ReplaceAll(p, nil)); err != nil {
		return 0, err
	}
	return len(p), nil
}
