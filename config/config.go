// Package config loads viewer settings from YAML or TOML files with
// environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"viewer2d/canvas"
)

// EnvPrefix prefixes every environment override, e.g. VIEWER_UNITY=2.
const EnvPrefix = "VIEWER"

// ErrUnknownFormat is returned for config files that are neither YAML nor TOML.
var ErrUnknownFormat = errors.New("unknown config format")

// Config holds every user-tunable setting of the viewer.
type Config struct {
	Width         int    `yaml:"width" toml:"width" envconfig:"WIDTH"`
	Height        int    `yaml:"height" toml:"height" envconfig:"HEIGHT"`
	Unity         int    `yaml:"unity" toml:"unity" envconfig:"UNITY"`
	Moveable      bool   `yaml:"moveable" toml:"moveable" envconfig:"MOVEABLE"`
	Spinnable     bool   `yaml:"spinnable" toml:"spinnable" envconfig:"SPINNABLE"`
	Zoomable      bool   `yaml:"zoomable" toml:"zoomable" envconfig:"ZOOMABLE"`
	ShowCentroids bool   `yaml:"show_centroids" toml:"show_centroids" envconfig:"SHOW_CENTROIDS"`
	Scene         string `yaml:"scene,omitempty" toml:"scene,omitempty" envconfig:"SCENE"`
	Theme         Theme  `yaml:"theme" toml:"theme" envconfig:"THEME"`
}

// Theme is the serialized form of canvas.Theme. Colors are hex strings.
type Theme struct {
	Background    string  `yaml:"background" toml:"background" envconfig:"BACKGROUND"`
	Grid          string  `yaml:"grid" toml:"grid" envconfig:"GRID"`
	Axis          string  `yaml:"axis" toml:"axis" envconfig:"AXIS"`
	CanonicalBase string  `yaml:"canonical_base" toml:"canonical_base" envconfig:"CANONICAL_BASE"`
	ShapeOutline  string  `yaml:"shape_outline" toml:"shape_outline" envconfig:"SHAPE_OUTLINE"`
	BaseX         string  `yaml:"base_x" toml:"base_x" envconfig:"BASE_X"`
	BaseY         string  `yaml:"base_y" toml:"base_y" envconfig:"BASE_Y"`
	RotationGuide string  `yaml:"rotation_guide" toml:"rotation_guide" envconfig:"ROTATION_GUIDE"`
	Centroid      string  `yaml:"centroid" toml:"centroid" envconfig:"CENTROID"`
	GridWidth     float64 `yaml:"grid_width" toml:"grid_width" envconfig:"GRID_WIDTH"`
	AxisWidth     float64 `yaml:"axis_width" toml:"axis_width" envconfig:"AXIS_WIDTH"`
}

// Default returns the built-in settings: a 640x480 window, unity 1, every
// gesture enabled and the default theme.
func Default() Config {
	t := canvas.DefaultTheme()
	return Config{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Unity:     1,
		Moveable:  true,
		Spinnable: true,
		Zoomable:  true,
		Theme: Theme{
			Background:    canvas.HexColor(t.Background),
			Grid:          canvas.HexColor(t.Grid),
			Axis:          canvas.HexColor(t.Axis),
			CanonicalBase: canvas.HexColor(t.CanonicalBase),
			ShapeOutline:  canvas.HexColor(t.ShapeOutline),
			BaseX:         canvas.HexColor(t.BaseX),
			BaseY:         canvas.HexColor(t.BaseY),
			RotationGuide: canvas.HexColor(t.RotationGuide),
			Centroid:      canvas.HexColor(t.Centroid),
			GridWidth:     t.GridWidth,
			AxisWidth:     t.AxisWidth,
		},
	}
}

// Load starts from Default, applies the file at path (if any) and then the
// VIEWER_* environment, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := Decode(&cfg, filepath.Ext(path), data); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("config env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode overlays data onto cfg. ext picks the format (".yaml", ".yml" or
// ".toml"). Unknown keys are rejected.
func Decode(cfg *Config, ext string, data []byte) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
		return nil
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, ext)
	}
}

// Encode writes cfg to w in the format picked by ext.
func Encode(w io.Writer, ext string, cfg Config) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&cfg); err != nil {
			return err
		}
		return enc.Close()
	case ".toml":
		return toml.NewEncoder(w).Encode(cfg)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, ext)
	}
}

// Validate clamps out-of-range numbers and rejects malformed colors.
func (c *Config) Validate() error {
	c.Width = max(c.Width, 1)
	c.Height = max(c.Height, 1)
	c.Unity = max(c.Unity, 1)
	if !(c.Theme.GridWidth > 0) {
		c.Theme.GridWidth = 1
	}
	if !(c.Theme.AxisWidth > 0) {
		c.Theme.AxisWidth = 1
	}
	_, err := c.Theme.Canvas()
	return err
}

// Canvas converts the theme to its drawing form.
func (t Theme) Canvas() (canvas.Theme, error) {
	out := canvas.Theme{GridWidth: t.GridWidth, AxisWidth: t.AxisWidth}
	fields := []struct {
		name string
		hex  string
		dst  *color.Color
	}{
		{"background", t.Background, &out.Background},
		{"grid", t.Grid, &out.Grid},
		{"axis", t.Axis, &out.Axis},
		{"canonical_base", t.CanonicalBase, &out.CanonicalBase},
		{"shape_outline", t.ShapeOutline, &out.ShapeOutline},
		{"base_x", t.BaseX, &out.BaseX},
		{"base_y", t.BaseY, &out.BaseY},
		{"rotation_guide", t.RotationGuide, &out.RotationGuide},
		{"centroid", t.Centroid, &out.Centroid},
	}
	var errs []error
	for _, f := range fields {
		c, err := canvas.ParseHexColor(f.hex)
		if err != nil {
			errs = append(errs, fmt.Errorf("theme.%s: %w", f.name, err))
			continue
		}
		*f.dst = c
	}
	return out, errors.Join(errs...)
}
