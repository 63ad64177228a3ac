package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/mdpad/internal/config/loader"
	"github.com/dshills/mdpad/internal/engine"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "MDPAD_"

// Config holds every mdpad setting.
type Config struct {
	Editor    EditorConfig    `toml:"editor"`
	View      ViewConfig      `toml:"view"`
	Highlight HighlightConfig `toml:"highlight"`
	Log       LogConfig       `toml:"log"`
}

// EditorConfig holds editing settings.
type EditorConfig struct {
	// IndentUnit is the text Indent adds per line: spaces or tabs.
	IndentUnit string `toml:"indent_unit"`
	// UndoCapacity bounds the undo history per document.
	UndoCapacity int `toml:"undo_capacity"`
	// ReadOnly opens documents without editing.
	ReadOnly bool `toml:"read_only"`
}

// ViewConfig holds display metrics. In the terminal host a line is one
// cell row and a character one cell column.
type ViewConfig struct {
	LineHeightPx float64 `toml:"line_height_px"`
	CharWidthPx  float64 `toml:"char_width_px"`
	Overscan     int     `toml:"overscan"`
}

// HighlightConfig holds syntax highlighting settings.
type HighlightConfig struct {
	// FenceLanguages enables token colouring inside fenced code blocks.
	FenceLanguages bool `toml:"fence_languages"`
	// Theme names a chroma style.
	Theme string `toml:"theme"`
}

// LogConfig holds diagnostics settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level"`
	// File receives log output. Empty disables logging.
	File string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			IndentUnit:   engine.DefaultIndentUnit,
			UndoCapacity: engine.DefaultUndoCapacity,
		},
		View: ViewConfig{
			LineHeightPx: 1,
			CharWidthPx:  1,
			Overscan:     engine.DefaultOverscan,
		},
		Highlight: HighlightConfig{
			FenceLanguages: true,
			Theme:          "monokai",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Keys returns every setting path.
func Keys() []string {
	return []string{
		"editor.indent_unit",
		"editor.undo_capacity",
		"editor.read_only",
		"view.line_height_px",
		"view.char_width_px",
		"view.overscan",
		"highlight.fence_languages",
		"highlight.theme",
		"log.level",
		"log.file",
	}
}

// DefaultPath returns the user config file location, or "" when the
// user config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mdpad", "config.toml")
}

// loadOptions configures Load.
type loadOptions struct {
	fs        loader.FileSystem
	envPrefix string
	env       bool
}

// Option configures Load.
type Option func(*loadOptions)

// WithFS reads the config file through fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *loadOptions) {
		o.fs = fsys
	}
}

// WithEnvPrefix changes the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(o *loadOptions) {
		o.envPrefix = prefix
	}
}

// WithoutEnv ignores environment overrides.
func WithoutEnv() Option {
	return func(o *loadOptions) {
		o.env = false
	}
}

// Load builds the configuration from the defaults, the TOML file at path
// and the environment, then validates it. An empty path or a missing file
// leaves the defaults in place.
func Load(path string, opts ...Option) (*Config, error) {
	o := loadOptions{fs: loader.DefaultFS(), envPrefix: EnvPrefix, env: true}
	for _, opt := range opts {
		opt(&o)
	}

	var layers []loader.Loader
	if path != "" {
		layers = append(layers, loader.NewTOMLLoaderWithFS(o.fs, path))
	}
	if o.env {
		env := loader.NewEnvLoader(o.envPrefix, Keys())
		env.AddMapping(o.envPrefix+"THEME", "highlight.theme")
		env.AddMapping(o.envPrefix+"READONLY", "editor.read_only")
		layers = append(layers, env)
	}

	merged := make(map[string]any)
	for _, l := range layers {
		m, err := l.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, m)
	}

	cfg := Default()
	if err := cfg.apply(merged); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes a TOML document over the defaults and validates it.
func Parse(data []byte) (*Config, error) {
	m, err := loader.Parse("<config>", data)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := cfg.apply(m); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply decodes settings over c. Settings absent from settings keep their
// current values.
func (c *Config) apply(settings map[string]any) error {
	if len(settings) == 0 {
		return nil
	}
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var missing *toml.StrictMissingError
		if errors.As(err, &missing) {
			return fmt.Errorf("%w: %s", ErrUnknownSetting, strings.TrimSpace(missing.String()))
		}
		return fmt.Errorf("%w: %w", ErrTypeMismatch, err)
	}
	return nil
}

// Validate checks every setting and reports all problems together.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(path, format string, args ...any) {
		errs = append(errs, &ValidationError{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if c.Editor.IndentUnit == "" || strings.Trim(c.Editor.IndentUnit, " \t") != "" {
		invalid("editor.indent_unit", "%q must be spaces or tabs", c.Editor.IndentUnit)
	}
	if c.Editor.UndoCapacity <= 0 {
		invalid("editor.undo_capacity", "%d must be positive", c.Editor.UndoCapacity)
	}
	if c.View.LineHeightPx <= 0 {
		invalid("view.line_height_px", "%v must be positive", c.View.LineHeightPx)
	}
	if c.View.CharWidthPx <= 0 {
		invalid("view.char_width_px", "%v must be positive", c.View.CharWidthPx)
	}
	if c.View.Overscan < 0 {
		invalid("view.overscan", "%d must not be negative", c.View.Overscan)
	}
	if _, ok := styles.Registry[c.Highlight.Theme]; !ok {
		invalid("highlight.theme", "unknown theme %q", c.Highlight.Theme)
	}
	if _, err := c.LogLevel(); err != nil {
		invalid("log.level", "%v", err)
	}
	return errors.Join(errs...)
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return zapcore.InfoLevel, err
	}
	if level > zapcore.ErrorLevel {
		return zapcore.InfoLevel, fmt.Errorf("level %q is above error", c.Log.Level)
	}
	return level, nil
}

// EngineOptions returns the engine options for these settings.
func (c *Config) EngineOptions() []engine.Option {
	opts := []engine.Option{
		engine.WithIndentUnit(c.Editor.IndentUnit),
		engine.WithUndoCapacity(c.Editor.UndoCapacity),
		engine.WithMetrics(c.View.LineHeightPx, c.View.CharWidthPx),
		engine.WithOverscan(c.View.Overscan),
		engine.WithFenceLanguages(c.Highlight.FenceLanguages),
	}
	if c.Editor.ReadOnly {
		opts = append(opts, engine.WithReadOnly())
	}
	return opts
}

// String returns the configuration as TOML.
func (c *Config) String() string {
	data, err := toml.Marshal(c)
	if err != nil {
		return err.Error()
	}
	return string(data)
}
