package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/JPM1118/sheetcut/internal/slicer"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for sheetcut.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Smart   SmartConfig   `yaml:"smart"`
	Content ContentConfig `yaml:"content"`
	Output  OutputConfig  `yaml:"output"`
}

// GridConfig controls the fixed-layout extractor.
type GridConfig struct {
	Inputs    []string `yaml:"inputs"`
	OutputDir string   `yaml:"output_dir"`
	Layout    Grid     `yaml:"layout"`
	Tail      int      `yaml:"tail"`
}

// SmartConfig controls grid selection and the content-filtered extractor.
type SmartConfig struct {
	Inputs     []string `yaml:"inputs"`
	OutputDir  string   `yaml:"output_dir"`
	Candidates []Grid   `yaml:"candidates"`
	MinCell    int      `yaml:"min_cell"`
	Fallback   Grid     `yaml:"fallback"`
	Limit      int      `yaml:"limit"`
}

// ContentConfig holds the content-test heuristics.
type ContentConfig struct {
	AlphaThreshold     int   `yaml:"alpha_threshold"`
	DeviationThreshold int   `yaml:"deviation_threshold"`
	Background         Color `yaml:"background"`
}

// OutputConfig controls how sprite files are named.
type OutputConfig struct {
	Prefix string `yaml:"prefix"`
}

// Grid wraps slicer.Grid for YAML unmarshalling from strings like "8x4".
type Grid struct {
	slicer.Grid
}

func (g *Grid) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := slicer.ParseGrid(s)
	if err != nil {
		return err
	}
	g.Grid = parsed
	return nil
}

func (g Grid) MarshalYAML() (interface{}, error) {
	return g.Grid.String(), nil
}

// Color wraps color.NRGBA for YAML unmarshalling from "#rrggbb".
type Color struct {
	color.NRGBA
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := parseHexColor(s)
	if err != nil {
		return err
	}
	c.NRGBA = parsed
	return nil
}

func (c Color) MarshalYAML() (interface{}, error) {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), nil
}

func parseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Defaults returns a Config with the stock layouts, inputs and heuristics.
func Defaults() Config {
	candidates := make([]Grid, len(slicer.DefaultCandidates))
	for i, g := range slicer.DefaultCandidates {
		candidates[i] = Grid{g}
	}

	return Config{
		Grid: GridConfig{
			Inputs: []string{
				"Screenshot 2025-09-17 184034.png",
				"user_pokeball_sheet.png",
				"pokeball_sheet.png",
				"pokeballs.png",
				"sprite_sheet.png",
				"pokeball_spritesheet.png",
			},
			OutputDir: "final_pokeball_sprites",
			Layout:    Grid{slicer.DefaultGrid},
			Tail:      slicer.DefaultTail,
		},
		Smart: SmartConfig{
			Inputs: []string{
				"pokeball_spritesheet.png",
				"pokeballs.png",
				"sprite_sheet.png",
				"pokeball_sprites.png",
			},
			OutputDir:  "user_pokeball_sprites",
			Candidates: candidates,
			MinCell:    slicer.DefaultMinCell,
			Fallback:   Grid{slicer.DefaultGrid},
			Limit:      slicer.DefaultLimit,
		},
		Content: ContentConfig{
			AlphaThreshold:     slicer.DefaultAlphaThreshold,
			DeviationThreshold: slicer.DefaultDeviationThreshold,
			Background:         Color{slicer.DefaultBackground},
		},
		Output: OutputConfig{
			Prefix: slicer.DefaultPrefix,
		},
	}
}

// Load reads the config file and merges with defaults.
// Missing file is not an error; defaults are used silently.
func Load() (Config, error) {
	return LoadFrom(configPath())
}

// LoadFrom reads config from a specific path.
func LoadFrom(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Defaults(), fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	if len(c.Grid.Inputs) == 0 || len(c.Smart.Inputs) == 0 {
		return fmt.Errorf("inputs must list at least one file")
	}
	if c.Grid.OutputDir == "" || c.Smart.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}

	cols := c.Grid.Layout.Columns
	if c.Grid.Tail < 0 || c.Grid.Tail > cols {
		return fmt.Errorf("tail must be between 0 and the layout's %d columns, got %d", cols, c.Grid.Tail)
	}

	if len(c.Smart.Candidates) == 0 {
		return fmt.Errorf("candidates must list at least one grid")
	}
	if c.Smart.MinCell < 0 {
		return fmt.Errorf("min_cell must not be negative, got %d", c.Smart.MinCell)
	}
	if c.Smart.Limit < 1 {
		return fmt.Errorf("limit must be at least 1, got %d", c.Smart.Limit)
	}

	if a := c.Content.AlphaThreshold; a < 0 || a > 255 {
		return fmt.Errorf("alpha_threshold must be between 0 and 255, got %d", a)
	}
	if d := c.Content.DeviationThreshold; d < 0 || d > 3*255 {
		return fmt.Errorf("deviation_threshold must be between 0 and 765, got %d", d)
	}

	if strings.ContainsAny(c.Output.Prefix, `/\`) {
		return fmt.Errorf("prefix must not contain path separators: %q", c.Output.Prefix)
	}
	return nil
}

// FixedLayout returns the fixed extractor's layout.
func (c Config) FixedLayout() slicer.FixedLayout {
	return slicer.FixedLayout{Grid: c.Grid.Layout.Grid, Tail: c.Grid.Tail}
}

// Selector returns the grid selector described by the smart section.
func (c Config) Selector() slicer.Selector {
	candidates := make([]slicer.Grid, len(c.Smart.Candidates))
	for i, g := range c.Smart.Candidates {
		candidates[i] = g.Grid
	}
	return slicer.Selector{
		Candidates: candidates,
		MinCell:    c.Smart.MinCell,
		Fallback:   c.Smart.Fallback.Grid,
	}
}

// Thresholds returns the content-test thresholds.
func (c Config) Thresholds() slicer.Thresholds {
	return slicer.Thresholds{
		Alpha:      c.Content.AlphaThreshold,
		Deviation:  c.Content.DeviationThreshold,
		Background: c.Content.Background.NRGBA,
	}
}

func configPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "sheetcut", "config.yml")
}
