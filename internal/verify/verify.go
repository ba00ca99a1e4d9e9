// Package verify re-reads a grouped Markdown document with a CommonMark/GFM
// parser and checks it against the source table: headings ascend, and every
// source row appears exactly once, in order, under the heading of its
// category with identical cells.
package verify

import (
	"bytes"
	"fmt"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Section is one "##" heading of a grouped document and the first table
// that follows it.
type Section struct {
	Label   string
	Columns []string
	Rows    [][]string
}

// ReadFile parses the grouped document at path.
func ReadFile(path string) ([]Section, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading grouped output: %w", err)
	}
	return Read(src), nil
}

// Read parses a grouped document. Tables that appear before the first
// level-2 heading, and any table after the first one in a section, are
// ignored.
func Read(src []byte) []Section {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(src))

	var sections []Section
	var cur *Section
	haveTable := false

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level != 2 {
				continue
			}
			sections = append(sections, Section{Label: rawText(node, src)})
			cur = &sections[len(sections)-1]
			haveTable = false
		case *extast.Table:
			if cur == nil || haveTable {
				continue
			}
			haveTable = true
			readTable(node, src, cur)
		}
	}
	return sections
}

func readTable(tbl *extast.Table, src []byte, s *Section) {
	for row := tbl.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, rawText(cell, src))
		}
		if _, ok := row.(*extast.TableHeader); ok {
			s.Columns = cells
			continue
		}
		s.Rows = append(s.Rows, cells)
	}
}

// rawText returns the source text of a block node as written, so inline
// markup and escapes in cells compare equal to the table they came from.
// Nodes without source lines fall back to their inline text.
func rawText(n ast.Node, src []byte) string {
	lines := n.Lines()
	if lines != nil && lines.Len() > 0 {
		var b bytes.Buffer
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(src))
		}
		return string(bytes.TrimSpace(b.Bytes()))
	}

	var b bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return string(bytes.TrimSpace(b.Bytes()))
}
