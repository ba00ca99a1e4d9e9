package verify

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/papapumpkin/gramsort/internal/category"
	"github.com/papapumpkin/gramsort/internal/table"
)

// Problem is one way a grouped document disagrees with its source table.
type Problem struct {
	Section string // heading label, empty for document-level problems
	Msg     string
}

// String returns the problem prefixed with its section, if any.
func (p Problem) String() string {
	if p.Section == "" {
		return p.Msg
	}
	return fmt.Sprintf("%s: %s", p.Section, p.Msg)
}

// Check compares sections read from a grouped document with the source table
// it was produced from. Each source row is expected under
// idx.Lookup(row[idColumn]) with every source column except categoryColumn
// reproduced verbatim and in source order; a categoryColumn already present
// in the source is overwritten by sort and never reaches the output. The
// returned slice is empty when the document is a faithful regrouping.
func Check(sections []Section, src *table.Table, idx *category.Index, idColumn, categoryColumn string) []Problem {
	var problems []Problem

	if !src.Has(idColumn) {
		return []Problem{{Msg: fmt.Sprintf("source table has no %q column", idColumn)}}
	}
	if src.Has(categoryColumn) {
		src = src.Clone()
		src.DropColumn(categoryColumn)
	}

	for i := 1; i < len(sections); i++ {
		prev, cur := sections[i-1].Label, sections[i].Label
		if prev >= cur {
			problems = append(problems, Problem{
				Section: cur,
				Msg:     fmt.Sprintf("heading not in ascending order after %q", prev),
			})
		}
	}

	want := make(map[string][]string)
	for _, r := range src.Rows {
		label := idx.Lookup(r[idColumn])
		want[label] = append(want[label], rowKey(src.Values(r)))
	}

	got := make(map[string][]string)
	for _, s := range sections {
		if !slices.Equal(s.Columns, src.Columns) {
			problems = append(problems, Problem{
				Section: s.Label,
				Msg:     fmt.Sprintf("columns %q, want %q", s.Columns, src.Columns),
			})
			continue
		}
		for _, cells := range s.Rows {
			got[s.Label] = append(got[s.Label], rowKey(cells))
		}
	}

	labels := make([]string, 0, len(want)+len(got))
	for l := range want {
		labels = append(labels, l)
	}
	for l := range got {
		if _, ok := want[l]; !ok {
			labels = append(labels, l)
		}
	}
	sort.Strings(labels)

	for _, l := range labels {
		problems = append(problems, compareRows(l, want[l], got[l])...)
	}
	return problems
}

// compareRows reports missing, extra and reordered rows of one section.
func compareRows(label string, want, got []string) []Problem {
	if slices.Equal(want, got) {
		return nil
	}

	counts := make(map[string]int, len(want))
	for _, k := range want {
		counts[k]++
	}
	for _, k := range got {
		counts[k]--
	}

	var problems []Problem
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch n := counts[k]; {
		case n > 0:
			problems = append(problems, Problem{Section: label, Msg: fmt.Sprintf("missing row %s (x%d)", displayKey(k), n)})
		case n < 0:
			problems = append(problems, Problem{Section: label, Msg: fmt.Sprintf("unexpected row %s (x%d)", displayKey(k), -n)})
		}
	}
	if len(problems) == 0 {
		problems = append(problems, Problem{Section: label, Msg: "rows are not in source order"})
	}
	return problems
}

const keySep = "\x1f"

func rowKey(cells []string) string {
	return strings.Join(cells, keySep)
}

func displayKey(k string) string {
	return "[" + strings.ReplaceAll(k, keySep, " | ") + "]"
}
