// Package layout places styled segments on a 2D canvas.
package layout

// DefaultLineHeightFactor derives the line height from the font size when
// none is set.
const DefaultLineHeightFactor = 1.4

// Bounds padding added around the laid out content.
const (
	PadRight  = 20
	PadBottom = 10
)

// Options controls placement. Zero LineHeight means
// DefaultLineHeightFactor times FontSize.
type Options struct {
	FontSize   float64 `yaml:"font_size" json:"fontSize"`
	FontFamily string  `yaml:"font_family" json:"fontFamily"`
	StartX     float64 `yaml:"start_x" json:"startX"`
	StartY     float64 `yaml:"start_y" json:"startY"`
	LineHeight float64 `yaml:"line_height,omitempty" json:"lineHeight,omitempty"`
	MaxWidth   float64 `yaml:"max_width" json:"maxWidth"`

	// HeadingSpaceBefore is the gap, in line heights, added before a
	// heading that starts mid-line. HeadingSpaceAfter scales the advance
	// out of a heading line.
	HeadingSpaceBefore float64 `yaml:"heading_space_before" json:"headingSpaceBefore"`
	HeadingSpaceAfter  float64 `yaml:"heading_space_after" json:"headingSpaceAfter"`

	// Horizontal offset of fragments without any styling.
	PlainNudge float64 `yaml:"plain_nudge" json:"plainNudge"`
}

// DefaultOptions returns the default layout options.
func DefaultOptions() Options {
	return Options{
		FontSize:           14,
		FontFamily:         "Arial, sans-serif",
		StartX:             10,
		StartY:             20,
		MaxWidth:           400,
		HeadingSpaceBefore: 0.75,
		HeadingSpaceAfter:  1.2,
		PlainNudge:         2,
	}
}

// EffectiveLineHeight returns the line height in pixels.
func (o Options) EffectiveLineHeight() float64 {
	if o.LineHeight > 0 {
		return o.LineHeight
	}
	return DefaultLineHeightFactor * o.FontSize
}

// Option changes one layout setting in Engine.Update.
type Option func(*update)

type update struct {
	opts          Options
	lineHeightSet bool
}

// WithFontSize sets the default font size.
func WithFontSize(size float64) Option {
	return func(u *update) { u.opts.FontSize = size }
}

// WithFontFamily sets the font family reported to renderers.
func WithFontFamily(family string) Option {
	return func(u *update) { u.opts.FontFamily = family }
}

// WithStart sets the cursor origin.
func WithStart(x, y float64) Option {
	return func(u *update) {
		u.opts.StartX = x
		u.opts.StartY = y
	}
}

// WithStartX sets the horizontal cursor origin.
func WithStartX(x float64) Option {
	return func(u *update) { u.opts.StartX = x }
}

// WithStartY sets the vertical cursor origin.
func WithStartY(y float64) Option {
	return func(u *update) { u.opts.StartY = y }
}

// WithLineHeight pins the line height.
func WithLineHeight(h float64) Option {
	return func(u *update) {
		u.opts.LineHeight = h
		u.lineHeightSet = true
	}
}

// WithMaxWidth sets the wrap width.
func WithMaxWidth(w float64) Option {
	return func(u *update) { u.opts.MaxWidth = w }
}

// WithHeadingSpacing sets the heading spacing multipliers.
func WithHeadingSpacing(before, after float64) Option {
	return func(u *update) {
		u.opts.HeadingSpaceBefore = before
		u.opts.HeadingSpaceAfter = after
	}
}

// WithPlainNudge sets the offset applied to unstyled fragments.
func WithPlainNudge(px float64) Option {
	return func(u *update) { u.opts.PlainNudge = px }
}
