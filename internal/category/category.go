// Package category maps grammar entry IDs to category labels. A Mapping is
// ordered configuration (label → IDs); an Index is the reverse lookup built
// from it once and read-only afterwards.
package category

import (
	"strconv"
	"strings"
)

// DefaultUnclassified is the label given to IDs that no category lists.
const DefaultUnclassified = "未分类"

// Group is one category label and the entry IDs filed under it.
type Group struct {
	Label string `toml:"label"`
	IDs   []int  `toml:"ids"`
}

// Mapping is an ordered list of category groups.
type Mapping []Group

// Dedup merges groups that share a label. The merged group keeps the
// position of the first occurrence and the IDs of the last one.
func (m Mapping) Dedup() Mapping {
	pos := make(map[string]int, len(m))
	out := make(Mapping, 0, len(m))
	for _, g := range m {
		ids := make([]int, len(g.IDs))
		copy(ids, g.IDs)
		if i, ok := pos[g.Label]; ok {
			out[i].IDs = ids
			continue
		}
		pos[g.Label] = len(out)
		out = append(out, Group{Label: g.Label, IDs: ids})
	}
	return out
}

// Labels returns the group labels in mapping order.
func (m Mapping) Labels() []string {
	out := make([]string, len(m))
	for i, g := range m {
		out[i] = g.Label
	}
	return out
}

// Index resolves entry IDs to category labels.
type Index struct {
	byID         map[string]string
	labels       []string
	unclassified string
}

// NewIndex builds the reverse lookup for m. Each ID is keyed by its decimal
// string; when an ID is listed under several groups the last group wins.
// An empty unclassified label falls back to DefaultUnclassified.
func NewIndex(m Mapping, unclassified string) *Index {
	if unclassified == "" {
		unclassified = DefaultUnclassified
	}
	idx := &Index{
		byID:         make(map[string]string),
		labels:       m.Labels(),
		unclassified: unclassified,
	}
	for _, g := range m {
		for _, id := range g.IDs {
			idx.byID[strconv.Itoa(id)] = g.Label
		}
	}
	return idx
}

// Lookup returns the label for id, or the unclassified label when id is not
// mapped. Surrounding whitespace in id is ignored.
func (x *Index) Lookup(id string) string {
	if label, ok := x.byID[trimID(id)]; ok {
		return label
	}
	return x.unclassified
}

// Has reports whether id is mapped to a category.
func (x *Index) Has(id string) bool {
	_, ok := x.byID[trimID(id)]
	return ok
}

// Unclassified returns the fallback label.
func (x *Index) Unclassified() string { return x.unclassified }

// Labels returns the category labels in mapping order.
func (x *Index) Labels() []string {
	out := make([]string, len(x.labels))
	copy(out, x.labels)
	return out
}

// Len returns the number of distinct mapped IDs.
func (x *Index) Len() int { return len(x.byID) }

func trimID(id string) string {
	return strings.TrimSpace(id)
}
