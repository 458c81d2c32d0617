package handler

import "github.com/roboco-io/html2vega/internal/ir"

// DefaultHeadingSize is used for heading names missing from HeadingSizes
// when no size is in effect.
const DefaultHeadingSize = 16

// HeadingSizes maps heading tags to their font size in pixels.
var HeadingSizes = map[string]float64{
	"h1": 32,
	"h2": 24,
	"h3": 18.72,
	"h4": 16,
	"h5": 13.28,
	"h6": 10.72,
}

// IsHeadingSize reports whether size belongs to a heading level.
func IsHeadingSize(size float64) bool {
	for _, s := range HeadingSizes {
		if s == size {
			return true
		}
	}
	return false
}

// HeadingHandler renders h1-h6 as bold blocks of decreasing size.
type HeadingHandler struct{}

func (*HeadingHandler) TagNames() []string {
	return []string{"h1", "h2", "h3", "h4", "h5", "h6"}
}

func (*HeadingHandler) IsLineBreakTag() bool { return true }

func (*HeadingHandler) ApplyStyle(current ir.Style, _ string, tagName string) ir.Style {
	size, ok := HeadingSizes[normalize(tagName)]
	if !ok {
		size = current.Size(DefaultHeadingSize)
	}
	s := current.WithFontSize(size)
	s.FontWeight = ir.WeightBold
	return s
}
