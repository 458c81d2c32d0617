// Package handler provides the tag handler contract, the tag registry and
// the built-in handlers for the supported markup vocabulary.
package handler

import "github.com/roboco-io/html2vega/internal/ir"

// Handler is the interface that all tag handlers must implement.
type Handler interface {
	// ApplyStyle returns the style in effect inside the tag. It must not
	// modify current. tagName lets one handler serve several tags.
	ApplyStyle(current ir.Style, rawAttrs string, tagName string) ir.Style

	// TagNames returns the lowercase tag names this handler claims.
	TagNames() []string
}

// AttributeValidator is implemented by handlers that check their attributes.
type AttributeValidator interface {
	ValidateAttributes(rawAttrs string) Validation
}

// LineBreaker is implemented by handlers whose tags start a new line.
type LineBreaker interface {
	IsLineBreakTag() bool
}

// ListRole is the part a tag plays in list structure.
type ListRole int

const (
	NotInList ListRole = iota
	ListContainer
	ListItem
)

// ListMember is implemented by handlers whose tags open lists or list items.
type ListMember interface {
	ListRole() ListRole
}

// Validation is the result of an attribute check.
type Validation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidResult returns a successful validation.
func ValidResult() Validation {
	return Validation{Valid: true}
}

// InvalidResult returns a failed validation carrying errs.
func InvalidResult(errs ...string) Validation {
	return Validation{Valid: false, Errors: errs}
}

// Validate runs the attribute check of h. Handlers without one are always valid.
func Validate(h Handler, rawAttrs string) Validation {
	v, ok := h.(AttributeValidator)
	if !ok {
		return ValidResult()
	}
	return v.ValidateAttributes(rawAttrs)
}

// IsLineBreak reports whether tags handled by h start a new line.
func IsLineBreak(h Handler) bool {
	lb, ok := h.(LineBreaker)
	return ok && lb.IsLineBreakTag()
}

// RoleOf returns the list role of tags handled by h.
func RoleOf(h Handler) ListRole {
	if m, ok := h.(ListMember); ok {
		return m.ListRole()
	}
	return NotInList
}
