package convert

import (
	"github.com/roboco-io/html2vega/internal/layout"
	"github.com/roboco-io/html2vega/internal/vega"
)

// Overrides holds per-call settings. Nil fields keep the instance value.
type Overrides struct {
	FontSize   *float64
	FontFamily *string
	StartX     *float64
	StartY     *float64
	LineHeight *float64
	MaxWidth   *float64
	Background *string
	Width      *float64
	Height     *float64
}

// Float returns a pointer to v, for filling Overrides.
func Float(v float64) *float64 {
	return &v
}

// String returns a pointer to v, for filling Overrides.
func String(v string) *string {
	return &v
}

func (o Overrides) layoutOptions() []layout.Option {
	var opts []layout.Option
	if o.FontSize != nil {
		opts = append(opts, layout.WithFontSize(*o.FontSize))
	}
	if o.FontFamily != nil {
		opts = append(opts, layout.WithFontFamily(*o.FontFamily))
	}
	if o.StartX != nil {
		opts = append(opts, layout.WithStartX(*o.StartX))
	}
	if o.StartY != nil {
		opts = append(opts, layout.WithStartY(*o.StartY))
	}
	if o.LineHeight != nil {
		opts = append(opts, layout.WithLineHeight(*o.LineHeight))
	}
	if o.MaxWidth != nil {
		opts = append(opts, layout.WithMaxWidth(*o.MaxWidth))
	}
	return opts
}

func (o Overrides) format(base vega.Format) vega.Format {
	if o.Background != nil {
		base.Background = *o.Background
	}
	if o.Width != nil {
		base.Width = *o.Width
	}
	if o.Height != nil {
		base.Height = *o.Height
	}
	return base
}
