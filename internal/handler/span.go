package handler

import (
	"fmt"

	"github.com/roboco-io/html2vega/internal/ir"
)

// SpanHandler applies the inline CSS found in a style attribute.
// Supported properties are color, font-weight, font-style and
// text-decoration; the first declaration of each property wins.
type SpanHandler struct{}

func (*SpanHandler) TagNames() []string { return []string{"span"} }

func (*SpanHandler) ApplyStyle(current ir.Style, rawAttrs string, _ string) ir.Style {
	s := current.Clone()
	style, ok := Attr(rawAttrs, "style")
	if !ok {
		return s
	}

	seen := make(map[string]bool)
	for _, d := range ParseDeclarations(style) {
		if d.Malformed || seen[d.Property] {
			continue
		}
		seen[d.Property] = true

		switch d.Property {
		case "color":
			if ValidColor(d.Value) {
				s.Color = d.Value
			}
		case "font-weight":
			if w, ok := parseFontWeight(d.Value); ok {
				s.FontWeight = w
			}
		case "font-style":
			if fs, ok := parseFontStyle(d.Value); ok {
				s.FontStyle = fs
			}
		case "text-decoration", "text-decoration-line":
			if td, ok := parseTextDecoration(d.Value); ok {
				s.TextDecoration = td
			}
		}
	}
	return s
}

func (*SpanHandler) ValidateAttributes(rawAttrs string) Validation {
	style, ok := Attr(rawAttrs, "style")
	if !ok {
		return ValidResult()
	}

	var errs []string
	for _, d := range ParseDeclarations(style) {
		if d.Malformed {
			errs = append(errs, fmt.Sprintf("Malformed CSS declaration: %q", d.Value))
			continue
		}
		switch d.Property {
		case "color":
			if !ValidColor(d.Value) {
				errs = append(errs, fmt.Sprintf("Invalid color value in style attribute: %q", d.Value))
			}
		case "font-weight":
			if _, ok := parseFontWeight(d.Value); !ok {
				errs = append(errs, fmt.Sprintf("Invalid font-weight value: %q", d.Value))
			}
		case "font-style":
			if _, ok := parseFontStyle(d.Value); !ok {
				errs = append(errs, fmt.Sprintf("Invalid font-style value: %q", d.Value))
			}
		case "text-decoration", "text-decoration-line":
			if _, ok := parseTextDecoration(d.Value); !ok {
				errs = append(errs, fmt.Sprintf("Invalid text-decoration value: %q", d.Value))
			}
		default:
			errs = append(errs, fmt.Sprintf("Unsupported CSS property: %s", d.Property))
		}
	}

	if len(errs) > 0 {
		return InvalidResult(errs...)
	}
	return ValidResult()
}
