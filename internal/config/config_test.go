package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Input", cfg.Input, "N2-grammar-furikana.md"},
		{"Output", cfg.Output, "sorted_my_markdown.md"},
		{"Categories", cfg.Categories, ""},
		{"IDColumn", cfg.IDColumn, "编号"},
		{"CategoryColumn", cfg.CategoryColumn, "分类"},
		{"Unclassified", cfg.Unclassified, ""},
		{"Telemetry", cfg.Telemetry, ""},
		{"Verbose", cfg.Verbose, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "input",
			envKey: "GRAMSORT_INPUT",
			envVal: "N1-grammar.md",
			field:  func(c Config) any { return c.Input },
			want:   "N1-grammar.md",
		},
		{
			name:   "output",
			envKey: "GRAMSORT_OUTPUT",
			envVal: "/tmp/sorted.md",
			field:  func(c Config) any { return c.Output },
			want:   "/tmp/sorted.md",
		},
		{
			name:   "categories",
			envKey: "GRAMSORT_CATEGORIES",
			envVal: "categories.toml",
			field:  func(c Config) any { return c.Categories },
			want:   "categories.toml",
		},
		{
			name:   "id_column",
			envKey: "GRAMSORT_ID_COLUMN",
			envVal: "No.",
			field:  func(c Config) any { return c.IDColumn },
			want:   "No.",
		},
		{
			name:   "unclassified",
			envKey: "GRAMSORT_UNCLASSIFIED",
			envVal: "其他",
			field:  func(c Config) any { return c.Unclassified },
			want:   "其他",
		},
		{
			name:   "verbose",
			envKey: "GRAMSORT_VERBOSE",
			envVal: "true",
			field:  func(c Config) any { return c.Verbose },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			// Set env prefix so GRAMSORT_* env vars map to config keys.
			viper.SetEnvPrefix("GRAMSORT")
			viper.AutomaticEnv()

			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	resetViper()

	path := filepath.Join(t.TempDir(), ".gramsort.yaml")
	data := "input: notes/N3.md\ncategories: n3.toml\ncategory_column: 类别\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Input != "notes/N3.md" {
		t.Errorf("Input = %q, want %q", cfg.Input, "notes/N3.md")
	}
	if cfg.Categories != "n3.toml" {
		t.Errorf("Categories = %q, want %q", cfg.Categories, "n3.toml")
	}
	if cfg.CategoryColumn != "类别" {
		t.Errorf("CategoryColumn = %q, want %q", cfg.CategoryColumn, "类别")
	}
	if cfg.Output != DefaultOutput {
		t.Errorf("Output = %q, want default %q", cfg.Output, DefaultOutput)
	}
}

func TestLoad_SameColumns(t *testing.T) {
	resetViper()
	viper.Set("category_column", " 编号 ")

	_, err := Load()
	if !errors.Is(err, ErrSameColumn) {
		t.Fatalf("Load() err = %v, want ErrSameColumn", err)
	}
}
