package category

import (
	"reflect"
	"strconv"
	"testing"
)

func TestIndex_Lookup(t *testing.T) {
	t.Parallel()

	idx := NewIndex(Mapping{
		{Label: "A", IDs: []int{1, 2}},
		{Label: "B", IDs: []int{3}},
	}, "")

	tests := []struct {
		id   string
		want string
	}{
		{"1", "A"},
		{"2", "A"},
		{"3", "B"},
		{"4", DefaultUnclassified},
		{" 3 ", "B"},
		{"", DefaultUnclassified},
		{"03", DefaultUnclassified},
		{"abc", DefaultUnclassified},
	}
	for _, tt := range tests {
		t.Run(strconv.Quote(tt.id), func(t *testing.T) {
			t.Parallel()
			if got := idx.Lookup(tt.id); got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestIndex_LastWriteWins(t *testing.T) {
	t.Parallel()

	idx := NewIndex(Mapping{
		{Label: "first", IDs: []int{7, 8}},
		{Label: "second", IDs: []int{8}},
	}, "other")

	if got := idx.Lookup("8"); got != "second" {
		t.Errorf("Lookup(8) = %q, want %q", got, "second")
	}
	if got := idx.Lookup("7"); got != "first" {
		t.Errorf("Lookup(7) = %q, want %q", got, "first")
	}
	if got := idx.Lookup("9"); got != "other" {
		t.Errorf("Lookup(9) = %q, want custom unclassified label", got)
	}
	if idx.Len() != 2 {
		t.Errorf("Len() = %d, want 2 distinct IDs", idx.Len())
	}
}

func TestIndex_Has(t *testing.T) {
	t.Parallel()

	idx := NewIndex(Mapping{{Label: "A", IDs: []int{1}}}, "")
	if !idx.Has(" 1") {
		t.Error("Has(\" 1\") = false, want true")
	}
	if idx.Has("2") {
		t.Error("Has(\"2\") = true, want false")
	}
}

func TestIndex_LabelsAreCopied(t *testing.T) {
	t.Parallel()

	idx := NewIndex(Mapping{{Label: "A"}, {Label: "B"}}, "")
	labels := idx.Labels()
	labels[0] = "mutated"
	if got := idx.Labels(); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("Labels() = %q, want [A B]", got)
	}
}

func TestMapping_Dedup(t *testing.T) {
	t.Parallel()

	m := Mapping{
		{Label: "既然", IDs: []int{33, 34}},
		{Label: "越", IDs: []int{28}},
		{Label: "既然", IDs: []int{33, 34, 36}},
	}
	got := m.Dedup()
	want := Mapping{
		{Label: "既然", IDs: []int{33, 34, 36}},
		{Label: "越", IDs: []int{28}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Dedup() = %+v, want %+v", got, want)
	}

	got[0].IDs[0] = 0
	if m[2].IDs[0] != 33 {
		t.Error("Dedup must not share ID slices with the source mapping")
	}
}
