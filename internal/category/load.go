package category

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

//go:embed default.toml
var defaultTOML []byte

// File is the on-disk form of a category mapping.
//
//	unclassified = "未分类"
//
//	[[category]]
//	label = "✅ 越…越…"
//	ids = [28, 30]
type File struct {
	Unclassified string  `toml:"unclassified,omitempty"`
	Categories   Mapping `toml:"category"`
}

// Index builds the reverse lookup for the file's mapping.
func (f File) Index() *Index {
	return NewIndex(f.Categories, f.Unclassified)
}

// Marshal serializes f as a mapping file.
func (f File) Marshal() ([]byte, error) {
	data, err := toml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("marshaling category mapping: %w", err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return data, nil
}

// Parse decodes a mapping file. Labels are trimmed and must not be blank;
// repeated labels are merged with Mapping.Dedup.
func Parse(data []byte) (File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parsing category mapping: %w", err)
	}
	for i := range f.Categories {
		label := strings.TrimSpace(f.Categories[i].Label)
		if label == "" {
			return File{}, fmt.Errorf("category #%d: %w", i+1, ErrEmptyLabel)
		}
		f.Categories[i].Label = label
	}
	f.Categories = f.Categories.Dedup()
	return f, nil
}

// LoadFile reads and parses the mapping file at path.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading category mapping: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Default returns the built-in mapping.
func Default() (File, error) {
	f, err := Parse(defaultTOML)
	if err != nil {
		return File{}, fmt.Errorf("built-in mapping: %w", err)
	}
	return f, nil
}

// Load returns the mapping at path, or the built-in mapping when path is
// empty.
func Load(path string) (File, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}
