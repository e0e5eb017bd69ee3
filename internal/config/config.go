// Package config holds the YAML configuration: output defaults, the
// font used in rendered charts, the watch-mode refresh schedule, and a
// fallback palette for activity keys no colour directive covers.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"daycircle/internal/model"
)

// Known output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Config is the top-level application configuration.
type Config struct {
	// OutputDir is where charts are written when no explicit output
	// path is given.
	OutputDir string `yaml:"output_dir"`

	// Format selects the chart image format: "svg" or "png".
	Format string `yaml:"format"`

	// Font is the font family substituted into rendered charts.
	Font string `yaml:"font"`

	// Refresh is a cron-style schedule (e.g. "*/15 * * * *") used by
	// watch mode to re-render the targets.
	Refresh string `yaml:"refresh"`

	// Colours is a fallback palette applied at render time for event
	// keys the input files leave uncoloured. Values are 6-hex-digit RGB.
	Colours map[string]string `yaml:"colours"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: ".",
		Format:    FormatSVG,
		Font:      "sans-serif",
		Refresh:   "*/15 * * * *",
		Colours:   map[string]string{},
	}
}

// Normalize fills in missing/zero values so partially-filled configs
// still behave correctly.
func (c *Config) Normalize() {
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	switch c.Format {
	case FormatSVG, FormatPNG:
		// ok
	default:
		c.Format = FormatSVG
	}
	if c.Font == "" {
		c.Font = "sans-serif"
	}
	if c.Refresh == "" {
		c.Refresh = "*/15 * * * *"
	}
	if c.Colours == nil {
		c.Colours = map[string]string{}
	}
}

// FallbackPalette converts the configured colour map into a Palette.
// Invalid values are reported, not silently dropped.
func (c *Config) FallbackPalette() (model.Palette, error) {
	palette := make(model.Palette, len(c.Colours))
	for key, value := range c.Colours {
		colour, err := model.ColourFromString(value)
		if err != nil {
			return nil, errors.New("config: colour for key " + key + ": " + err.Error())
		}
		palette[key] = colour
	}
	return palette, nil
}

// Load loads configuration from the given YAML path.
//
// If the file does not exist, a default config is written there (0600,
// parent directory created as needed) and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration atomically (temp file + rename) with
// 0600 permissions, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".daycircle-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
