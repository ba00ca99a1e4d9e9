// Package config loads gramsort's runtime configuration through viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Built-in defaults. The input and output names are those of the N2 grammar
// notes the tool was first written for.
const (
	DefaultInput          = "N2-grammar-furikana.md"
	DefaultOutput         = "sorted_my_markdown.md"
	DefaultIDColumn       = "编号"
	DefaultCategoryColumn = "分类"
)

// ErrSameColumn indicates the ID and category columns share a name.
var ErrSameColumn = errors.New("id_column and category_column must differ")

// Config holds all runtime configuration for a gramsort run.
// Values are populated from .gramsort.yaml, GRAMSORT_* env vars, and CLI flags.
type Config struct {
	Input          string `mapstructure:"input"`
	Output         string `mapstructure:"output"`
	Categories     string `mapstructure:"categories"` // "" = built-in mapping
	IDColumn       string `mapstructure:"id_column"`
	CategoryColumn string `mapstructure:"category_column"`
	Unclassified   string `mapstructure:"unclassified"` // "" = mapping's own label
	Telemetry      string `mapstructure:"telemetry"`    // "" = no run journal
	Verbose        bool   `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("input", DefaultInput)
	viper.SetDefault("output", DefaultOutput)
	viper.SetDefault("categories", "")
	viper.SetDefault("id_column", DefaultIDColumn)
	viper.SetDefault("category_column", DefaultCategoryColumn)
	viper.SetDefault("unclassified", "")
	viper.SetDefault("telemetry", "")
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.IDColumn = strings.TrimSpace(cfg.IDColumn)
	cfg.CategoryColumn = strings.TrimSpace(cfg.CategoryColumn)
	if cfg.IDColumn == cfg.CategoryColumn {
		return Config{}, fmt.Errorf("%w: %q", ErrSameColumn, cfg.IDColumn)
	}
	return cfg, nil
}
