// Package config manages application configuration.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"go.uber.org/multierr"

	"github.com/roboco-io/html2vega/internal/handler"
	"github.com/roboco-io/html2vega/internal/layout"
	"github.com/roboco-io/html2vega/internal/vega"
)

// Registry presets.
const (
	RegistryDefault = "default"
	RegistryMinimal = "minimal"
)

// Measurer names.
const (
	MeasurerApprox = "approx"
	MeasurerFont   = "font"
)

// Environment variables that override the configuration file.
const (
	EnvFontSize   = "HTML2VEGA_FONT_SIZE"
	EnvMaxWidth   = "HTML2VEGA_MAX_WIDTH"
	EnvBackground = "HTML2VEGA_BACKGROUND"
	EnvMeasurer   = "HTML2VEGA_MEASURER"
	EnvRegistry   = "HTML2VEGA_REGISTRY"
	EnvStrict     = "HTML2VEGA_STRICT"
	EnvLogLevel   = "HTML2VEGA_LOG_LEVEL"
	EnvLogFile    = "HTML2VEGA_LOG_FILE"
)

// Config represents the application configuration.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Parser  ParserConfig  `yaml:"parser"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig contains layout and document options.
type RenderConfig struct {
	layout.Options `yaml:",inline"`

	Background string  `yaml:"background"`
	Width      float64 `yaml:"width,omitempty"`  // 0 = fit content
	Height     float64 `yaml:"height,omitempty"` // 0 = fit content
	Measurer   string  `yaml:"measurer"`
	Pretty     bool    `yaml:"pretty"`
}

// ParserConfig contains parsing options.
type ParserConfig struct {
	Registry string `yaml:"registry"`
	Strict   bool   `yaml:"strict"` // treat diagnostics as failures
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Options:    layout.DefaultOptions(),
			Background: vega.DefaultBackground,
			Measurer:   MeasurerApprox,
			Pretty:     true,
		},
		Parser: ParserConfig{
			Registry: RegistryDefault,
		},
		Logging: DefaultLoggingConfig(),
	}
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var err error

	r := c.Render
	if r.FontSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("render.font_size must be positive: %g", r.FontSize))
	}
	if r.LineHeight < 0 {
		err = multierr.Append(err, fmt.Errorf("render.line_height must not be negative: %g", r.LineHeight))
	}
	if r.MaxWidth <= 0 {
		err = multierr.Append(err, fmt.Errorf("render.max_width must be positive: %g", r.MaxWidth))
	}
	if r.Width < 0 || r.Height < 0 {
		err = multierr.Append(err, fmt.Errorf("render.width and render.height must not be negative"))
	}
	if !slices.Contains([]string{MeasurerApprox, MeasurerFont}, r.Measurer) {
		err = multierr.Append(err, fmt.Errorf("unknown render.measurer: %q", r.Measurer))
	}
	if !slices.Contains([]string{RegistryDefault, RegistryMinimal}, c.Parser.Registry) {
		err = multierr.Append(err, fmt.Errorf("unknown parser.registry: %q", c.Parser.Registry))
	}
	if _, lerr := c.Logging.level(); lerr != nil {
		err = multierr.Append(err, lerr)
	}

	return err
}

// ApplyEnv overrides configuration values from HTML2VEGA_* variables.
// Unparsable numbers are reported and leave the value unchanged.
func (c *Config) ApplyEnv() error {
	var err error

	if v := os.Getenv(EnvFontSize); v != "" {
		if f, perr := strconv.ParseFloat(v, 64); perr == nil {
			c.Render.FontSize = f
		} else {
			err = multierr.Append(err, fmt.Errorf("invalid %s: %w", EnvFontSize, perr))
		}
	}
	if v := os.Getenv(EnvMaxWidth); v != "" {
		if f, perr := strconv.ParseFloat(v, 64); perr == nil {
			c.Render.MaxWidth = f
		} else {
			err = multierr.Append(err, fmt.Errorf("invalid %s: %w", EnvMaxWidth, perr))
		}
	}
	c.Render.Background = envString(EnvBackground, c.Render.Background)
	c.Render.Measurer = envString(EnvMeasurer, c.Render.Measurer)
	c.Parser.Registry = envString(EnvRegistry, c.Parser.Registry)
	if strict, ok := envBool(EnvStrict); ok {
		c.Parser.Strict = strict
	}
	c.Logging.Level = envString(EnvLogLevel, c.Logging.Level)
	c.Logging.File = envString(EnvLogFile, c.Logging.File)

	return err
}

// Format returns the document-level options.
func (r RenderConfig) Format() vega.Format {
	return vega.Format{
		Background: r.Background,
		Width:      r.Width,
		Height:     r.Height,
	}
}

// NewMeasurer creates the configured text measurer.
func (r RenderConfig) NewMeasurer() (layout.Measurer, error) {
	switch r.Measurer {
	case "", MeasurerApprox:
		return layout.ApproxMeasurer{}, nil
	case MeasurerFont:
		m, err := layout.NewFontMeasurer()
		if err != nil {
			return nil, fmt.Errorf("failed to load fonts: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown measurer: %s", r.Measurer)
	}
}

// NewRegistry creates the configured handler registry.
func (p ParserConfig) NewRegistry() (*handler.Registry, error) {
	switch p.Registry {
	case "", RegistryDefault:
		return handler.NewDefaultRegistry(), nil
	case RegistryMinimal:
		return handler.NewMinimalRegistry(), nil
	default:
		return nil, fmt.Errorf("unknown registry: %s", p.Registry)
	}
}
