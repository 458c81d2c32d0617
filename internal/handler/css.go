package handler

import (
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/image/colornames"

	"github.com/roboco-io/html2vega/internal/ir"
)

// Declaration is one `property: value` pair of an inline style. A
// malformed declaration keeps its source text in Value and has no property.
type Declaration struct {
	Property  string // lowercase
	Value     string
	Malformed bool
}

// ParseDeclarations parses the content of a style attribute. Parsing
// resumes after a malformed declaration.
func ParseDeclarations(style string) []Declaration {
	var decls []Declaration
	if strings.TrimSpace(style) == "" {
		return decls
	}

	p := css.NewParser(parse.NewInputString(style), true)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if !p.HasParseError() {
				return decls // end of input
			}
			if raw := joinValues(p.Values()); raw != "" {
				decls = append(decls, Declaration{Value: raw, Malformed: true})
			}
		case css.DeclarationGrammar:
			decls = append(decls, Declaration{
				Property: strings.ToLower(string(data)),
				Value:    joinValues(p.Values()),
			})
		case css.CustomPropertyGrammar:
			continue
		}
	}
}

func joinValues(tokens []css.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		if t.TokenType == css.SemicolonToken {
			continue
		}
		if t.TokenType == css.WhitespaceToken {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			continue
		}
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}

// ValidColor reports whether v is a hex color, a color function or a CSS
// color name.
func ValidColor(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return false
	}
	if hex, ok := strings.CutPrefix(v, "#"); ok {
		switch len(hex) {
		case 3, 4, 6, 8:
		default:
			return false
		}
		_, err := strconv.ParseUint(hex, 16, 64)
		return err == nil
	}
	for _, fn := range []string{"rgb(", "rgba(", "hsl(", "hsla("} {
		if strings.HasPrefix(v, fn) && strings.HasSuffix(v, ")") {
			return true
		}
	}
	if v == "transparent" || v == "currentcolor" {
		return true
	}
	_, ok := colornames.Map[v]
	return ok
}

// parseFontWeight maps a font-weight value onto the two supported weights.
func parseFontWeight(v string) (ir.FontWeight, bool) {
	switch v = strings.ToLower(strings.TrimSpace(v)); v {
	case "normal", "lighter":
		return ir.WeightNormal, true
	case "bold", "bolder":
		return ir.WeightBold, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 100 || n > 900 || n%100 != 0 {
		return "", false
	}
	if n >= 600 {
		return ir.WeightBold, true
	}
	return ir.WeightNormal, true
}

func parseFontStyle(v string) (ir.FontStyle, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "normal":
		return ir.StyleNormal, true
	case "italic", "oblique":
		return ir.StyleItalic, true
	}
	return "", false
}

// parseTextDecoration picks the line keyword out of a shorthand value
// such as `underline dotted red`.
func parseTextDecoration(v string) (ir.TextDecoration, bool) {
	for _, word := range strings.Fields(strings.ToLower(v)) {
		switch word {
		case "none":
			return ir.DecorationNone, true
		case "underline":
			return ir.DecorationUnderline, true
		case "line-through":
			return ir.DecorationLineThrough, true
		}
	}
	return "", false
}
