// Package ir defines the intermediate representation shared by the
// conversion stages. The parser produces Segments, layout turns them into
// Fragments, and the assembler groups Fragments into drawing layers.
package ir

import "strings"

// LineBreak is the text of a line-break marker segment.
const LineBreak = "\n"

// Segment is a run of text sharing one fully resolved style.
type Segment struct {
	Text       string `json:"text"`
	Style      Style  `json:"style"`
	ListPrefix bool   `json:"list_prefix,omitempty"` // bullet or number injected by the parser
}

// NewSegment creates a text segment with a copy of style.
func NewSegment(text string, style Style) Segment {
	return Segment{
		Text:  text,
		Style: style.Clone(),
	}
}

// NewLineBreak creates a line-break marker segment.
func NewLineBreak(style Style) Segment {
	return NewSegment(LineBreak, style)
}

// IsLineBreak returns true if the segment is a line-break marker.
func (s Segment) IsLineBreak() bool {
	return s.Text == LineBreak
}

// IsBlank returns true if the segment has no visible characters.
func (s Segment) IsBlank() bool {
	return strings.TrimSpace(s.Text) == ""
}

// Fragment is a segment, or a word-wrapped piece of one, placed on the
// canvas. Coordinates are pixels from the top-left corner.
type Fragment struct {
	Segment
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the fragment's right edge.
func (f Fragment) Right() float64 {
	return f.X + f.Width
}

// Bottom returns the y coordinate of the fragment's bottom edge.
func (f Fragment) Bottom() float64 {
	return f.Y + f.Height
}

// Bounds is the pixel size of laid out content.
type Bounds struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
