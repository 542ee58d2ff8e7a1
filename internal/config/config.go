// Package config loads the editor configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"liteedit/internal/document"
	"liteedit/internal/interaction"
	"liteedit/internal/render"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

type CanvasConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	MinSize float64 `yaml:"min_size"`
}

// TerminalConfig is how many canvas units one terminal cell covers.
type TerminalConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

type StoreConfig struct {
	Backend string `yaml:"backend"`
	// Path defaults to a file in the data directory named after the backend.
	Path string `yaml:"path"`
}

type Config struct {
	Canvas        CanvasConfig   `yaml:"canvas"`
	Terminal      TerminalConfig `yaml:"terminal"`
	Store         StoreConfig    `yaml:"store"`
	ExportDir     string         `yaml:"export_dir"`
	DoubleClickMS int            `yaml:"double_click_ms"`
	// Confirmations asks before quitting and before overwriting an export.
	// nil means the default, on.
	Confirmations *bool `yaml:"confirmations"`

	DataDir string `yaml:"-"`
}

func DefaultConfig() Config {
	return Config{
		Canvas: CanvasConfig{
			Width:   document.DefaultCanvasWidth,
			Height:  document.DefaultCanvasHeight,
			MinSize: document.DefaultMinSize,
		},
		Terminal: TerminalConfig{
			CellWidth:  10,
			CellHeight: 20,
		},
		Store: StoreConfig{
			Backend: BackendJSON,
		},
		DoubleClickMS: 400,
	}
}

// Load reads configPath over the defaults. A missing file is not an error.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Canvas.Width == 0 {
		c.Canvas.Width = defaults.Canvas.Width
	}
	if c.Canvas.Height == 0 {
		c.Canvas.Height = defaults.Canvas.Height
	}
	if c.Canvas.MinSize == 0 {
		c.Canvas.MinSize = defaults.Canvas.MinSize
	}
	if c.Terminal.CellWidth == 0 {
		c.Terminal.CellWidth = defaults.Terminal.CellWidth
	}
	if c.Terminal.CellHeight == 0 {
		c.Terminal.CellHeight = defaults.Terminal.CellHeight
	}
	if c.Store.Backend == "" {
		c.Store.Backend = defaults.Store.Backend
	}
	c.Store.Backend = strings.ToLower(c.Store.Backend)
	if c.DoubleClickMS == 0 {
		c.DoubleClickMS = defaults.DoubleClickMS
	}
	c.Store.Path = expandHome(c.Store.Path)
	c.ExportDir = expandHome(c.ExportDir)
}

func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.Canvas.Width <= 0 {
		errs = errs.Append("canvas.width", fmt.Errorf("must be positive, got %g", c.Canvas.Width))
	}
	if c.Canvas.Height <= 0 {
		errs = errs.Append("canvas.height", fmt.Errorf("must be positive, got %g", c.Canvas.Height))
	}
	if c.Canvas.MinSize <= 0 {
		errs = errs.Append("canvas.min_size", fmt.Errorf("must be positive, got %g", c.Canvas.MinSize))
	} else if c.Canvas.Width > 0 && c.Canvas.Height > 0 &&
		(c.Canvas.MinSize > c.Canvas.Width || c.Canvas.MinSize > c.Canvas.Height) {
		errs = errs.Append("canvas.min_size", fmt.Errorf("%g does not fit a %gx%g canvas", c.Canvas.MinSize, c.Canvas.Width, c.Canvas.Height))
	}
	if c.Terminal.CellWidth <= 0 {
		errs = errs.Append("terminal.cell_width", fmt.Errorf("must be positive, got %g", c.Terminal.CellWidth))
	}
	if c.Terminal.CellHeight <= 0 {
		errs = errs.Append("terminal.cell_height", fmt.Errorf("must be positive, got %g", c.Terminal.CellHeight))
	}
	if c.DoubleClickMS < 0 {
		errs = errs.Append("double_click_ms", fmt.Errorf("cannot be negative"))
	}

	return criterio.ValidateStruct(
		errs.ToError(),
		criterio.Run("store.backend", c.Store.Backend, isBackend),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("export_dir", c.ExportDir, isDirectoryOrNotExist),
	)
}

func isBackend(name string) error {
	switch name {
	case BackendJSON, BackendSQLite:
		return nil
	}
	return fmt.Errorf("unknown backend %q, want %s or %s", name, BackendJSON, BackendSQLite)
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func (c *Config) Bounds() document.Bounds {
	return document.Bounds{
		Width:   c.Canvas.Width,
		Height:  c.Canvas.Height,
		MinSize: c.Canvas.MinSize,
	}
}

func (c *Config) Scale() render.Scale {
	return render.Scale{CellW: c.Terminal.CellWidth, CellH: c.Terminal.CellHeight}
}

// HandleReach covers exactly the terminal cell a corner handle is drawn in.
func (c *Config) HandleReach() interaction.Reach {
	return interaction.Reach{X: c.Terminal.CellWidth / 2, Y: c.Terminal.CellHeight / 2}
}

func (c *Config) DoubleClick() time.Duration {
	return time.Duration(c.DoubleClickMS) * time.Millisecond
}

func (c *Config) Confirm() bool {
	return c.Confirmations == nil || *c.Confirmations
}

// StorePath is where the document is persisted.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	if c.Store.Backend == BackendSQLite {
		return filepath.Join(c.DataDir, "liteedit.db")
	}
	return filepath.Join(c.DataDir, "liteedit.json")
}

// ExportPath places filename in the export directory, or the working
// directory when none is configured.
func (c *Config) ExportPath(filename string) string {
	if c.ExportDir == "" {
		return filename
	}
	return filepath.Join(c.ExportDir, filename)
}
