package category

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	f, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if f.Unclassified != DefaultUnclassified {
		t.Errorf("Unclassified = %q, want %q", f.Unclassified, DefaultUnclassified)
	}
	if len(f.Categories) != 73 {
		t.Errorf("len(Categories) = %d, want 73", len(f.Categories))
	}

	seen := make(map[string]bool)
	for _, g := range f.Categories {
		if seen[g.Label] {
			t.Errorf("label %q appears more than once", g.Label)
		}
		seen[g.Label] = true
		if !strings.HasPrefix(g.Label, "✅ ") {
			t.Errorf("label %q lacks the checkmark prefix", g.Label)
		}
	}

	idx := f.Index()
	if got := idx.Lookup("33"); got != "✅ 既然…就…" {
		t.Errorf("Lookup(33) = %q", got)
	}
	if got := idx.Lookup("185"); got != "✅ 因为__由于…（表示原因、理由、契机或根据）" {
		t.Errorf("Lookup(185) = %q", got)
	}
	if got := idx.Lookup("175"); got != DefaultUnclassified {
		t.Errorf("Lookup(175) = %q, want unclassified", got)
	}
}

func TestDefault_EveryListedIDResolvesToLastGroup(t *testing.T) {
	t.Parallel()

	f, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	want := make(map[int]string)
	for _, g := range f.Categories {
		for _, id := range g.IDs {
			want[id] = g.Label
		}
	}

	idx := f.Index()
	for id, label := range want {
		if got := idx.Lookup(strconv.Itoa(id)); got != label {
			t.Errorf("Lookup(%d) = %q, want %q", id, got, label)
		}
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("merges repeated labels", func(t *testing.T) {
		t.Parallel()
		data := `
[[category]]
label = " A "
ids = [1]

[[category]]
label = "B"
ids = [2]

[[category]]
label = "A"
ids = [1, 3]
`
		f, err := Parse([]byte(data))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		want := Mapping{{Label: "A", IDs: []int{1, 3}}, {Label: "B", IDs: []int{2}}}
		if !reflect.DeepEqual(f.Categories, want) {
			t.Errorf("Categories = %+v, want %+v", f.Categories, want)
		}
		if f.Unclassified != "" {
			t.Errorf("Unclassified = %q, want empty", f.Unclassified)
		}
		if got := f.Index().Lookup("9"); got != DefaultUnclassified {
			t.Errorf("Lookup(9) = %q, want default unclassified", got)
		}
	})

	t.Run("blank label", func(t *testing.T) {
		t.Parallel()
		_, err := Parse([]byte("[[category]]\nlabel = \"  \"\nids = [1]\n"))
		if !errors.Is(err, ErrEmptyLabel) {
			t.Fatalf("err = %v, want ErrEmptyLabel", err)
		}
	})

	t.Run("syntax error", func(t *testing.T) {
		t.Parallel()
		if _, err := Parse([]byte("[[category]\n")); err == nil {
			t.Fatal("expected error for malformed TOML")
		}
	})

	t.Run("ids must be integers", func(t *testing.T) {
		t.Parallel()
		if _, err := Parse([]byte("[[category]]\nlabel = \"A\"\nids = [\"1\"]\n")); err == nil {
			t.Fatal("expected error for string IDs")
		}
	})
}

func TestFile_MarshalRoundTrip(t *testing.T) {
	t.Parallel()

	orig, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	data, err := orig.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), "[[category]]") {
		t.Errorf("marshaled mapping should use [[category]] tables, got:\n%s", data)
	}

	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(back, orig) {
		t.Error("mapping changed after Marshal/Parse")
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses built-in mapping", func(t *testing.T) {
		t.Parallel()
		f, err := Load("")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if len(f.Categories) == 0 {
			t.Error("expected built-in categories")
		}
	})

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "categories.toml")
		data := "unclassified = \"其他\"\n\n[[category]]\nlabel = \"A\"\nids = [1]\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		f, err := Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got := f.Index().Lookup("2"); got != "其他" {
			t.Errorf("Lookup(2) = %q, want %q", got, "其他")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("err = %v, want fs.ErrNotExist", err)
		}
	})

	t.Run("bad file names the path", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte("[[category]]\nlabel = \"\"\n"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), "bad.toml") {
			t.Errorf("err = %v, want it to name bad.toml", err)
		}
	})
}
