// Package convert runs the parse, layout and assemble stages as one call.
package convert

import (
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/roboco-io/html2vega/internal/handler"
	"github.com/roboco-io/html2vega/internal/ir"
	"github.com/roboco-io/html2vega/internal/layout"
	"github.com/roboco-io/html2vega/internal/parser"
	"github.com/roboco-io/html2vega/internal/vega"
)

// ErrInvalidInput is returned when the input is not UTF-8 text. It is the
// only condition that fails a conversion.
var ErrInvalidInput = errors.New("input must be valid UTF-8 text")

// Result is the outcome of one conversion.
type Result struct {
	Spec      *vega.Spec    `json:"spec"`
	Segments  []ir.Segment  `json:"segments"`
	Fragments []ir.Fragment `json:"fragments"`
	Bounds    ir.Bounds     `json:"bounds"`
	Errors    []string      `json:"errors,omitempty"`
}

// HasErrors returns true if any diagnostic was recorded.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Err combines all diagnostics into one error, nil when there are none.
func (r *Result) Err() error {
	return (&parser.Result{Errors: r.Errors}).Err()
}

// Converter turns markup into Vega-Lite documents. It keeps no per-call
// state and may be used from several goroutines; swapping the registry
// while conversions run is allowed.
type Converter struct {
	mu       sync.RWMutex
	registry *handler.Registry

	log      *zap.Logger
	layout   layout.Options
	measurer layout.Measurer
	format   vega.Format
}

// Option configures a Converter.
type Option func(*Converter)

// WithRegistry sets the tag handler registry.
func WithRegistry(r *handler.Registry) Option {
	return func(c *Converter) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Converter) {
		if log != nil {
			c.log = log
		}
	}
}

// WithLayout sets the instance layout defaults.
func WithLayout(opts layout.Options) Option {
	return func(c *Converter) { c.layout = opts }
}

// WithMeasurer sets the text measurer.
func WithMeasurer(m layout.Measurer) Option {
	return func(c *Converter) {
		if m != nil {
			c.measurer = m
		}
	}
}

// WithFormat sets the document-level defaults.
func WithFormat(f vega.Format) Option {
	return func(c *Converter) { c.format = f }
}

// WithBackground sets the default canvas color.
func WithBackground(color string) Option {
	return func(c *Converter) { c.format.Background = color }
}

// New creates a converter with the default handlers, approximate text
// measurement and default layout.
func New(opts ...Option) *Converter {
	c := &Converter{
		registry: handler.NewDefaultRegistry(),
		log:      zap.NewNop(),
		layout:   layout.DefaultOptions(),
		measurer: layout.ApproxMeasurer{},
		format:   vega.Format{Background: vega.DefaultBackground},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.Named("convert")
	return c
}

// Convert parses input, lays it out and builds the document. Diagnostics
// are returned in Result.Errors; the error is non-nil only for input that
// is not UTF-8.
func (c *Converter) Convert(input string, ov Overrides) (*Result, error) {
	parsed, err := c.Parse(input)
	if err != nil {
		return nil, err
	}

	segs := parsed.Segments
	if ov.FontSize != nil {
		segs = overrideSizes(segs, *ov.FontSize)
	}

	eng := layout.New(c.layout, c.measurer, c.log)
	eng.Update(ov.layoutOptions()...)
	laid := eng.Layout(segs)

	opts := eng.Options()
	layers := vega.Assemble(laid.Fragments, vega.TextDefaults{
		FontSize:   opts.FontSize,
		FontFamily: opts.FontFamily,
	})
	spec := vega.NewSpec(layers, laid.Bounds, ov.format(c.format))

	c.log.Debug("Converted markup",
		zap.Int("segments", len(segs)),
		zap.Int("fragments", len(laid.Fragments)),
		zap.Int("layers", len(layers)),
		zap.Int("errors", len(parsed.Errors)))

	return &Result{
		Spec:      spec,
		Segments:  segs,
		Fragments: laid.Fragments,
		Bounds:    laid.Bounds,
		Errors:    parsed.Errors,
	}, nil
}

// Parse runs only the parse stage.
func (c *Converter) Parse(input string) (*parser.Result, error) {
	if !utf8.ValidString(input) {
		return nil, fmt.Errorf("failed to convert: %w", ErrInvalidInput)
	}
	return parser.New(c.Registry(), c.log).Parse(input), nil
}

// Register adds a handler to the current registry.
func (c *Converter) Register(h handler.Handler) error {
	if err := c.Registry().Register(h); err != nil {
		return fmt.Errorf("failed to register handler: %w", err)
	}
	return nil
}

// Unregister removes the handler bound to name and all its other names.
func (c *Converter) Unregister(name string) bool {
	return c.Registry().Remove(name)
}

// SupportedTags lists the tag names of the current registry.
func (c *Converter) SupportedTags() []string {
	return c.Registry().SupportedTags()
}

// Registry returns the current registry.
func (c *Converter) Registry() *handler.Registry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.registry
}

// SetRegistry replaces the registry. Nil restores the default handlers.
func (c *Converter) SetRegistry(r *handler.Registry) {
	if r == nil {
		r = handler.NewDefaultRegistry()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.registry = r
}

// overrideSizes replaces sizes set by handlers. Runs without a size follow
// the layout default, which the same override also sets.
func overrideSizes(segs []ir.Segment, size float64) []ir.Segment {
	out := make([]ir.Segment, len(segs))
	for i, s := range segs {
		if s.Style.FontSize != nil {
			s.Style = s.Style.WithFontSize(size)
		}
		out[i] = s
	}
	return out
}
