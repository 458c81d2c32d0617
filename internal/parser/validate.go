package parser

import (
	"fmt"
	"strings"
)

// voidTags never take a closing tag.
var voidTags = map[string]bool{
	"br":    true,
	"hr":    true,
	"img":   true,
	"input": true,
	"meta":  true,
	"link":  true,
}

// IsVoid reports whether name is a self-closing tag.
func IsVoid(name string) bool {
	return voidTags[strings.ToLower(name)]
}

// ValidateStructure checks that tags are balanced and properly nested.
// It never stops early: every problem found is returned.
func ValidateStructure(tokens []Token) []string {
	var (
		open []string
		errs []string
	)

	for _, tok := range tokens {
		switch tok.Kind {
		case TokenStartTag:
			if !IsVoid(tok.Name) {
				open = append(open, tok.Name)
			}

		case TokenEndTag:
			if IsVoid(tok.Name) {
				continue
			}
			if len(open) == 0 {
				errs = append(errs, fmt.Sprintf("Unexpected closing tag: </%s>", tok.Name))
				continue
			}
			top := open[len(open)-1]
			if top == tok.Name {
				open = open[:len(open)-1]
				continue
			}
			errs = append(errs, fmt.Sprintf("Mismatched closing tag: expected </%s> but found </%s>", top, tok.Name))
			// Recover by closing everything opened after the matching tag.
			if i := lastIndex(open, tok.Name); i >= 0 {
				open = open[:i]
			}
		}
	}

	if len(open) > 0 {
		errs = append(errs, "Unclosed tags: "+strings.Join(open, ", "))
	}
	return errs
}

func lastIndex(names []string, name string) int {
	for i := len(names) - 1; i >= 0; i-- {
		if names[i] == name {
			return i
		}
	}
	return -1
}
