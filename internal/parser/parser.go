// Package parser turns markup into a flat sequence of styled text segments.
package parser

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/roboco-io/html2vega/internal/handler"
	"github.com/roboco-io/html2vega/internal/ir"
)

// Result is the outcome of one parse: the segments produced and every
// diagnostic collected on the way. Diagnostics never stop parsing.
type Result struct {
	Segments []ir.Segment `json:"segments"`
	Errors   []string     `json:"errors,omitempty"`
}

// HasErrors returns true if any diagnostic was recorded.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Err combines all diagnostics into one error, nil when there are none.
func (r *Result) Err() error {
	var err error
	for _, msg := range r.Errors {
		err = multierr.Append(err, errors.New(msg))
	}
	return err
}

// Parser converts markup into segments using the handlers of a registry.
// A Parser keeps no state between calls to Parse.
type Parser struct {
	registry *handler.Registry
	log      *zap.Logger
}

// New creates a parser. A nil registry selects the default handler set.
func New(reg *handler.Registry, log *zap.Logger) *Parser {
	if reg == nil {
		reg = handler.NewDefaultRegistry()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{
		registry: reg,
		log:      log.Named("parser"),
	}
}

// Registry returns the registry the parser resolves tags with.
func (p *Parser) Registry() *handler.Registry {
	return p.registry
}

// Parse reads the markup and returns its segments. It never panics: an
// internal failure degrades to the whole input as one unstyled segment.
func (p *Parser) Parse(input string) (res *Result) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("Parse failed, falling back to plain text", zap.Any("panic", r))
			res = &Result{
				Segments: []ir.Segment{ir.NewSegment(input, ir.DefaultStyle())},
				Errors:   []string{fmt.Sprintf("Parser error: %v", r)},
			}
		}
	}()

	tokens := Lex(input)
	errs := ValidateStructure(tokens)

	st := newState(p.registry)
	st.errors = errs
	st.walk(tokens)

	res = &Result{
		Segments: refineSpacing(st.segments),
		Errors:   st.errors,
	}

	p.log.Debug("Parsed markup",
		zap.Int("bytes", len(input)),
		zap.Int("tokens", len(tokens)),
		zap.Int("segments", len(res.Segments)),
		zap.Int("errors", len(res.Errors)))
	return res
}
