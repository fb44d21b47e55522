// Package config loads dirtab's YAML configuration. The embedded default
// file supplies every value; a user file overrides individual keys.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/dirtab/internal/format"
	"github.com/oakwood-commons/dirtab/internal/grid"
	"github.com/oakwood-commons/dirtab/internal/rowmodel"
	"github.com/oakwood-commons/dirtab/pkg/settings"
)

//go:embed default_config.yaml
var defaultConfigYAML []byte

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Table      TableConfig      `yaml:"table" json:"table"`
	Pagination PaginationConfig `yaml:"pagination" json:"pagination"`
	Search     SearchConfig     `yaml:"search" json:"search"`
	Format     FormatConfig     `yaml:"format" json:"format"`
	Data       DataConfig       `yaml:"data" json:"data"`
	Watch      WatchConfig      `yaml:"watch" json:"watch"`
	Theme      ThemeConfig      `yaml:"theme" json:"theme"`
}

type TableConfig struct {
	Columns         ColumnSizes `yaml:"columns" json:"columns"`
	CellScale       int         `yaml:"cell_scale" json:"cell_scale"`
	ResizeStep      int         `yaml:"resize_step" json:"resize_step"`
	ResizeShiftStep int         `yaml:"resize_shift_step" json:"resize_shift_step"`
	ScrollStep      int         `yaml:"scroll_step" json:"scroll_step"`
}

// ColumnSizes are in width units; see TableConfig.CellScale.
type ColumnSizes struct {
	Default int `yaml:"default" json:"default"`
	Min     int `yaml:"min" json:"min"`
	Max     int `yaml:"max" json:"max"`
}

type PaginationConfig struct {
	PageSizes []int `yaml:"page_sizes" json:"page_sizes"`
	Default   int   `yaml:"default" json:"default"`
}

type SearchConfig struct {
	Mode string `yaml:"mode" json:"mode"`
}

type FormatConfig struct {
	Locale   string `yaml:"locale" json:"locale"`
	Currency string `yaml:"currency" json:"currency"`
}

type DataConfig struct {
	Rows int    `yaml:"rows" json:"rows"`
	Seed uint64 `yaml:"seed" json:"seed"`
}

type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" json:"debounce_ms"`
}

// ThemeConfig colors are ANSI numbers ("62") or hex ("#5f5fd7").
type ThemeConfig struct {
	HeaderFG   string `yaml:"header_fg" json:"header_fg"`
	HeaderBG   string `yaml:"header_bg" json:"header_bg"`
	SelectedFG string `yaml:"selected_fg" json:"selected_fg"`
	SelectedBG string `yaml:"selected_bg" json:"selected_bg"`
	PinnedBG   string `yaml:"pinned_bg" json:"pinned_bg"`
	Accent     string `yaml:"accent" json:"accent"`
	Muted      string `yaml:"muted" json:"muted"`
}

// DefaultYAML returns a copy of the embedded default file.
func DefaultYAML() []byte {
	return slices.Clone(defaultConfigYAML)
}

// Default parses the embedded defaults.
func Default() (Config, error) {
	var cfg Config
	if len(defaultConfigYAML) == 0 {
		return cfg, fmt.Errorf("embedded default config is empty")
	}
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		return cfg, fmt.Errorf("decode default config: %w", err)
	}
	return cfg, nil
}

// Load returns the defaults with the file at path merged on top, then
// validates the result. An empty path loads the defaults only.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := Merge(&cfg, data); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Merge decodes data over cfg. Keys absent from data keep their value;
// lists are replaced whole.
func Merge(cfg *Config, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// Validate reports every inconsistent setting, each wrapped in ErrInvalid.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	cols := c.Table.Columns
	if cols.Min <= 0 || cols.Min > cols.Default || cols.Default > cols.Max {
		bad("table.columns needs 0 < min <= default <= max, got %d/%d/%d", cols.Min, cols.Default, cols.Max)
	}
	if c.Table.CellScale <= 0 {
		bad("table.cell_scale must be positive, got %d", c.Table.CellScale)
	}
	if c.Table.ResizeStep <= 0 || c.Table.ResizeShiftStep <= 0 {
		bad("table.resize_step and resize_shift_step must be positive")
	}
	if c.Table.ScrollStep <= 0 {
		bad("table.scroll_step must be positive, got %d", c.Table.ScrollStep)
	}

	sizes := c.Pagination.PageSizes
	switch {
	case len(sizes) == 0:
		bad("pagination.page_sizes is empty")
	case !increasing(sizes):
		bad("pagination.page_sizes must be strictly increasing, got %v", sizes)
	case sizes[0] <= 0:
		bad("pagination.page_sizes must be positive, got %v", sizes)
	case !slices.Contains(sizes, c.Pagination.Default):
		bad("pagination.default %d is not one of %v", c.Pagination.Default, sizes)
	}

	switch rowmodel.SearchMode(c.Search.Mode) {
	case rowmodel.SearchSubstring, rowmodel.SearchFuzzy:
	default:
		bad("search.mode must be substring or fuzzy, got %q", c.Search.Mode)
	}
	if c.Data.Rows < 0 {
		bad("data.rows must not be negative, got %d", c.Data.Rows)
	}
	if c.Watch.DebounceMs < 0 {
		bad("watch.debounce_ms must not be negative, got %d", c.Watch.DebounceMs)
	}
	return errors.Join(errs...)
}

func increasing(v []int) bool {
	for i := 1; i < len(v); i++ {
		if v[i] <= v[i-1] {
			return false
		}
	}
	return true
}

// GridOptions converts the table and pagination sections.
func (c Config) GridOptions() grid.Options {
	return grid.Options{
		DefaultSize:     c.Table.Columns.Default,
		MinSize:         c.Table.Columns.Min,
		MaxSize:         c.Table.Columns.Max,
		PageSizes:       slices.Clone(c.Pagination.PageSizes),
		DefaultPageSize: c.Pagination.Default,
	}
}

// Formatter converts the format section.
func (c Config) Formatter() format.Formatter {
	return format.Formatter{Locale: c.Format.Locale, Currency: c.Format.Currency}
}

// SearchMode converts the search section.
func (c Config) SearchMode() rowmodel.SearchMode {
	return rowmodel.SearchMode(c.Search.Mode)
}

// Debounce is the watch quiet period.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMs) * time.Millisecond
}

// ResolvePath returns explicit when set, otherwise the user config file
// under $XDG_CONFIG_HOME (or ~/.config) when it exists, otherwise "".
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidate := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// Marshal encodes cfg as yaml or json.
func Marshal(cfg Config, output string) ([]byte, error) {
	switch output {
	case "", "yaml", "yml":
		return yaml.Marshal(cfg)
	case "json":
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported config output %q (use yaml or json)", output)
	}
}
