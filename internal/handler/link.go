package handler

import (
	"net/url"
	"strings"

	"github.com/roboco-io/html2vega/internal/ir"
)

// LinkColor is the text color of hyperlinks.
const LinkColor = "#0000ee"

// LinkHandler renders hyperlinks as colored, underlined text.
type LinkHandler struct{}

func (*LinkHandler) TagNames() []string { return []string{"a"} }

func (*LinkHandler) ApplyStyle(current ir.Style, _ string, _ string) ir.Style {
	s := current.Clone()
	s.Color = LinkColor
	s.TextDecoration = ir.DecorationUnderline
	return s
}

func (*LinkHandler) ValidateAttributes(rawAttrs string) Validation {
	href, ok := Attr(rawAttrs, "href")
	switch {
	case !ok:
		return InvalidResult("Missing href attribute on <a>")
	case strings.TrimSpace(href) == "":
		return InvalidResult("Invalid href attribute on <a>: href is empty")
	case strings.ContainsAny(strings.TrimSpace(href), " \t\r\n"):
		return InvalidResult("Invalid href attribute on <a>: " + href + " contains whitespace")
	}
	if _, err := url.Parse(strings.TrimSpace(href)); err != nil {
		return InvalidResult("Invalid href attribute on <a>: " + err.Error())
	}
	return ValidResult()
}
