package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/papapumpkin/gramsort/internal/ansi"
)

// Local aliases for brevity within this package.
const (
	reset  = ansi.Reset
	bold   = ansi.Bold
	dim    = ansi.Dim
	yellow = ansi.Yellow
	green  = ansi.Green
	red    = ansi.Red
	cyan   = ansi.Cyan
)

// Printer writes human-facing status lines. Output goes to stderr so the
// document commands print to stdout stays pipeable.
type Printer struct {
	w       io.Writer
	verbose bool
}

// NewWriter returns a Printer writing to w. Styling is dropped unless w is a
// terminal.
func NewWriter(w io.Writer, verbose bool) *Printer {
	return &Printer{w: ansi.Writer(w), verbose: verbose}
}

func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.w, red+bold+"error: "+reset+"%s\n", msg)
}

func (p *Printer) Warn(msg string) {
	fmt.Fprintf(p.w, yellow+bold+"⚠ "+reset+"%s\n", msg)
}

func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.w, dim+"%s"+reset+"\n", msg)
}

// Debug prints a formatted detail line when the printer is verbose.
func (p *Printer) Debug(format string, args ...any) {
	if !p.verbose {
		return
	}
	fmt.Fprintf(p.w, dim+"· "+format+reset+"\n", args...)
}

// SectionCount is one output heading and how many rows it holds.
type SectionCount struct {
	Label string
	Rows  int
}

// RunDone confirms a completed run and, in verbose mode, lists the row count
// under each heading.
func (p *Printer) RunDone(output string, rows int, sections []SectionCount, unclassified int) {
	fmt.Fprintf(p.w, green+bold+"✓ wrote %s"+reset+" — %d row(s) in %d categor%s\n",
		output, rows, len(sections), plural(len(sections), "y", "ies"))
	if unclassified > 0 {
		fmt.Fprintf(p.w, "  "+yellow+"%d row(s) unclassified"+reset+"\n", unclassified)
	}
	if !p.verbose {
		return
	}
	for _, s := range sections {
		fmt.Fprintf(p.w, "  %4d  %s\n", s.Rows, s.Label)
	}
}

// CategoryTable renders the active mapping as a bordered table: one line per
// label with its ID count and IDs.
func (p *Printer) CategoryTable(labels []string, ids [][]int, unclassified string) {
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00BFFF"))
	cell := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, len(labels))
	total := 0
	for i, label := range labels {
		rows[i] = []string{label, strconv.Itoa(len(ids[i])), joinInts(ids[i])}
		total += len(ids[i])
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#636363"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return cell
		}).
		Headers("CATEGORY", "N", "IDS").
		Rows(rows...)

	fmt.Fprintln(p.w, t.Render())
	fmt.Fprintf(p.w, dim+"%d categor%s, %d ID(s); unmapped IDs go to %q"+reset+"\n",
		len(labels), plural(len(labels), "y", "ies"), total, unclassified)
}

// Lookup prints the category resolved for one ID.
func (p *Printer) Lookup(id, label string, mapped bool) {
	if mapped {
		fmt.Fprintf(p.w, cyan+"%-6s"+reset+" %s\n", id, label)
		return
	}
	fmt.Fprintf(p.w, cyan+"%-6s"+reset+" "+dim+"%s"+reset+"\n", id, label)
}

// VerifyResult reports the outcome of checking a grouped document.
func (p *Printer) VerifyResult(path string, sections, rows int, problems []string) {
	if len(problems) == 0 {
		fmt.Fprintf(p.w, green+bold+"✓ %s"+reset+" — %d section(s), %d row(s), matches source\n", path, sections, rows)
		return
	}
	fmt.Fprintf(p.w, red+bold+"✗ %s"+reset+" — %d problem(s):\n", path, len(problems))
	for _, msg := range problems {
		fmt.Fprintf(p.w, "  "+red+"• "+reset+"%s\n", msg)
	}
}

// WatchStarted announces watch mode and the files being watched.
func (p *Printer) WatchStarted(files []string) {
	fmt.Fprintf(p.w, cyan+"◆ watching"+reset+" %s "+dim+"(ctrl-c to stop)"+reset+"\n", strings.Join(files, ", "))
}

// WatchChange reports a change that triggers a rerun.
func (p *Printer) WatchChange(file, kind string) {
	fmt.Fprintf(p.w, "\n"+cyan+"◆ %s"+reset+" %s\n", kind, file)
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
