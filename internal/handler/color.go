package handler

import (
	"fmt"
	"maps"
	"slices"

	"github.com/roboco-io/html2vega/internal/ir"
)

// ShortcutColors maps color shortcut tags to their hex value.
var ShortcutColors = map[string]string{
	"red":    "#ff0000",
	"green":  "#008000",
	"blue":   "#0000ff",
	"orange": "#ffa500",
	"purple": "#800080",
	"gray":   "#808080",
	"black":  "#000000",
}

// ColorHandler serves the color shortcut tags, e.g. <red>text</red>.
type ColorHandler struct {
	colors map[string]string
}

// NewColorHandler creates a handler for ShortcutColors.
func NewColorHandler() *ColorHandler {
	return &ColorHandler{colors: maps.Clone(ShortcutColors)}
}

func (h *ColorHandler) TagNames() []string {
	var names []string
	for k := range h.colors {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

func (h *ColorHandler) ApplyStyle(current ir.Style, _ string, tagName string) ir.Style {
	s := current.Clone()
	if c, ok := h.colors[normalize(tagName)]; ok {
		s.Color = c
	}
	return s
}

// FontHandler applies the color attribute of the legacy font tag.
type FontHandler struct{}

func (*FontHandler) TagNames() []string { return []string{"font"} }

func (*FontHandler) ApplyStyle(current ir.Style, rawAttrs string, _ string) ir.Style {
	s := current.Clone()
	if c, ok := Attr(rawAttrs, "color"); ok && ValidColor(c) {
		s.Color = c
	}
	return s
}

func (*FontHandler) ValidateAttributes(rawAttrs string) Validation {
	c, ok := Attr(rawAttrs, "color")
	if ok && !ValidColor(c) {
		return InvalidResult(fmt.Sprintf("Invalid color attribute on <font>: %q", c))
	}
	return ValidResult()
}
