package handler

import "github.com/roboco-io/html2vega/internal/ir"

// BoldHandler renders text in bold weight.
type BoldHandler struct{}

func (*BoldHandler) TagNames() []string { return []string{"b", "strong"} }

func (*BoldHandler) ApplyStyle(current ir.Style, _ string, _ string) ir.Style {
	s := current.Clone()
	s.FontWeight = ir.WeightBold
	return s
}

// ItalicHandler renders text slanted.
type ItalicHandler struct{}

func (*ItalicHandler) TagNames() []string { return []string{"i", "em"} }

func (*ItalicHandler) ApplyStyle(current ir.Style, _ string, _ string) ir.Style {
	s := current.Clone()
	s.FontStyle = ir.StyleItalic
	return s
}

// UnderlineHandler underlines text.
type UnderlineHandler struct{}

func (*UnderlineHandler) TagNames() []string { return []string{"u", "ins"} }

func (*UnderlineHandler) ApplyStyle(current ir.Style, _ string, _ string) ir.Style {
	s := current.Clone()
	s.TextDecoration = ir.DecorationUnderline
	return s
}

// StrikethroughHandler draws a line through text.
type StrikethroughHandler struct{}

func (*StrikethroughHandler) TagNames() []string { return []string{"s", "strike", "del"} }

func (*StrikethroughHandler) ApplyStyle(current ir.Style, _ string, _ string) ir.Style {
	s := current.Clone()
	s.TextDecoration = ir.DecorationLineThrough
	return s
}

// ParagraphHandler starts a block without changing the style.
type ParagraphHandler struct{}

func (*ParagraphHandler) TagNames() []string   { return []string{"p", "div"} }
func (*ParagraphHandler) IsLineBreakTag() bool { return true }

func (*ParagraphHandler) ApplyStyle(current ir.Style, _ string, _ string) ir.Style {
	return current.Clone()
}

// BreakHandler forces a line break.
type BreakHandler struct{}

func (*BreakHandler) TagNames() []string   { return []string{"br"} }
func (*BreakHandler) IsLineBreakTag() bool { return true }

func (*BreakHandler) ApplyStyle(current ir.Style, _ string, _ string) ir.Style {
	return current.Clone()
}

// Builtins returns a fresh instance of every built-in handler.
func Builtins() []Handler {
	return []Handler{
		&BoldHandler{},
		&ItalicHandler{},
		&UnderlineHandler{},
		&StrikethroughHandler{},
		&SpanHandler{},
		&LinkHandler{},
		&HeadingHandler{},
		&ParagraphHandler{},
		&BreakHandler{},
		&ListHandler{},
		&ListItemHandler{},
		NewColorHandler(),
		&FontHandler{},
	}
}

// NewDefaultRegistry creates a registry with every built-in handler.
func NewDefaultRegistry() *Registry {
	return newRegistryWith(Builtins())
}

// NewMinimalRegistry creates a registry with inline formatting only.
func NewMinimalRegistry() *Registry {
	return newRegistryWith([]Handler{
		&BoldHandler{},
		&ItalicHandler{},
		&UnderlineHandler{},
		&SpanHandler{},
	})
}

func newRegistryWith(handlers []Handler) *Registry {
	r := NewRegistry()
	for _, h := range handlers {
		// Built-ins always declare tag names.
		_ = r.Register(h)
	}
	return r
}
