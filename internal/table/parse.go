package table

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineBytes bounds a single source line; grammar tables carry long
// example sentences, so the bufio default of 64 KiB is too small.
const maxLineBytes = 1 << 20

// Line is a source line kept by the line filter, with its 1-based position.
type Line struct {
	Num  int
	Text string
}

// ParseFile reads the Markdown file at path and parses its pipe table.
func ParseFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening table: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return t, nil
}

// Parse reads Markdown text and parses the pipe table it contains.
// It runs the two stages in order: FilterLines, then ParseLines.
func Parse(r io.Reader) (*Table, error) {
	lines, err := FilterLines(r)
	if err != nil {
		return nil, err
	}
	return ParseLines(lines)
}

// FilterLines is the first parse stage. It keeps the trimmed lines that start
// with a pipe and drops separator lines, i.e. lines made only of pipes,
// dashes, spaces and alignment colons (e.g. "|---|:--:|"). Accepting colons
// departs from a pipe/dash/space-only filter so that GFM alignment rows,
// including the ones grouped output writes, are never read as data.
//
// Every pipe line is kept regardless of blank lines or prose in between, so
// two tables in one file are read as one: the second header becomes a data
// row.
func FilterLines(r io.Reader) ([]Line, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var out []Line
	num := 0
	for sc.Scan() {
		num++
		text := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(text, "|") {
			continue
		}
		if isSeparator(text) {
			continue
		}
		out = append(out, Line{Num: num, Text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading lines: %w", err)
	}
	return out, nil
}

// ParseLines is the second parse stage. The first line is the header and
// the rest are data rows. Each line is split on unescaped pipes; a row whose
// field count differs from the header's is a fatal *ParseError.
//
// Columns whose data cells are all empty are dropped (these are the boundary
// columns created by leading and trailing pipes). With no data rows only
// columns with an empty header are dropped. Header names and cells are
// trimmed; an empty header on a kept column is named "Unnamed: <i>" and a
// repeated header gets a ".1", ".2", ... suffix.
func ParseLines(lines []Line) (*Table, error) {
	if len(lines) == 0 {
		return nil, ErrNoTable
	}

	header := splitFields(lines[0].Text)
	records := make([][]string, 0, len(lines)-1)
	for _, ln := range lines[1:] {
		fields := splitFields(ln.Text)
		if len(fields) != len(header) {
			return nil, &ParseError{Line: ln.Num, Want: len(header), Got: len(fields), Err: ErrRaggedRow}
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		records = append(records, fields)
	}

	keep := make([]bool, len(header))
	for i := range header {
		if len(records) == 0 {
			keep[i] = strings.TrimSpace(header[i]) != ""
			continue
		}
		for _, rec := range records {
			if rec[i] != "" {
				keep[i] = true
				break
			}
		}
	}

	names := columnNames(header, keep)
	t := &Table{Rows: make([]Row, 0, len(records))}
	for i, k := range keep {
		if k {
			t.Columns = append(t.Columns, names[i])
		}
	}
	for _, rec := range records {
		row := make(Row, len(t.Columns))
		for i, k := range keep {
			if k {
				row[names[i]] = rec[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// columnNames resolves the final name of every kept header field.
func columnNames(header []string, keep []bool) []string {
	names := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, raw := range header {
		if !keep[i] {
			continue
		}
		name := strings.TrimSpace(raw)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if used[name] {
			base := name
			for n := 1; used[name]; n++ {
				name = fmt.Sprintf("%s.%d", base, n)
			}
		}
		used[name] = true
		names[i] = name
	}
	return names
}

// splitFields splits a line on pipes that are not escaped with a backslash.
// Escaped pipes stay in the field as written.
func splitFields(line string) []string {
	var fields []string
	var cur strings.Builder
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '|':
			fields = append(fields, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	return append(fields, cur.String())
}

func isSeparator(line string) bool {
	for _, r := range line {
		switch r {
		case '|', '-', ' ', ':':
		default:
			return false
		}
	}
	return true
}
