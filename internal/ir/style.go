package ir

import "fmt"

// FontWeight is the weight of a text run.
type FontWeight string

const (
	WeightNormal FontWeight = "normal"
	WeightBold   FontWeight = "bold"
)

// FontStyle is the slant of a text run.
type FontStyle string

const (
	StyleNormal FontStyle = "normal"
	StyleItalic FontStyle = "italic"
)

// TextDecoration is the line drawn with a text run.
type TextDecoration string

const (
	DecorationNone        TextDecoration = "none"
	DecorationUnderline   TextDecoration = "underline"
	DecorationLineThrough TextDecoration = "line-through"
)

// DefaultColor is the text color of unstyled runs.
const DefaultColor = "#000000"

// Style contains character-level appearance of a text run.
//
// Style is a value: handlers derive new styles through the With* helpers,
// which never share the pointer fields with the receiver.
type Style struct {
	FontWeight     FontWeight     `json:"font_weight"`
	FontStyle      FontStyle      `json:"font_style"`
	Color          string         `json:"color"`
	TextDecoration TextDecoration `json:"text_decoration"`
	FontSize       *float64       `json:"font_size,omitempty"` // nil = renderer default
	List           *ListContext   `json:"list,omitempty"`
}

// DefaultStyle returns the style every parse starts from.
func DefaultStyle() Style {
	return Style{
		FontWeight:     WeightNormal,
		FontStyle:      StyleNormal,
		Color:          DefaultColor,
		TextDecoration: DecorationNone,
	}
}

// WithFontSize returns a copy of s with the given font size.
func (s Style) WithFontSize(size float64) Style {
	s.FontSize = &size
	s.List = s.List.clone()
	return s
}

// WithList returns a copy of s with the given list context.
func (s Style) WithList(lc ListContext) Style {
	s.List = &lc
	s.FontSize = cloneSize(s.FontSize)
	return s
}

// Clone returns a deep copy of s.
func (s Style) Clone() Style {
	s.FontSize = cloneSize(s.FontSize)
	s.List = s.List.clone()
	return s
}

// Reset returns s with weight, slant, color and decoration forced back to
// their defaults. Size and list context are kept.
func (s Style) Reset() Style {
	d := DefaultStyle()
	d.FontSize = cloneSize(s.FontSize)
	d.List = s.List.clone()
	return d
}

// Size returns the font size, or fallback when none is set.
func (s Style) Size(fallback float64) float64 {
	if s.FontSize == nil {
		return fallback
	}
	return *s.FontSize
}

// IsPlain reports whether s carries no visual styling at all.
// The list context does not count as styling.
func (s Style) IsPlain() bool {
	return s.FontWeight == WeightNormal &&
		s.FontStyle == StyleNormal &&
		s.Color == DefaultColor &&
		s.TextDecoration == DecorationNone &&
		s.FontSize == nil
}

// IsDecorated reports whether s draws an underline or a line-through.
func (s Style) IsDecorated() bool {
	return s.TextDecoration == DecorationUnderline || s.TextDecoration == DecorationLineThrough
}

// Equal compares two styles field by field, following pointers.
func (s Style) Equal(o Style) bool {
	if s.FontWeight != o.FontWeight || s.FontStyle != o.FontStyle ||
		s.Color != o.Color || s.TextDecoration != o.TextDecoration {
		return false
	}
	if (s.FontSize == nil) != (o.FontSize == nil) {
		return false
	}
	if s.FontSize != nil && *s.FontSize != *o.FontSize {
		return false
	}
	if (s.List == nil) != (o.List == nil) {
		return false
	}
	return s.List == nil || *s.List == *o.List
}

// GroupKey identifies the visual style of s for layer grouping.
// Runs without an explicit size use defaultSize.
func (s Style) GroupKey(defaultSize float64) string {
	return fmt.Sprintf("%s|%s|%s|%s|%g",
		s.FontWeight, s.FontStyle, s.Color, s.TextDecoration, s.Size(defaultSize))
}

func cloneSize(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
