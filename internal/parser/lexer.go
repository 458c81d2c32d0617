package parser

import (
	"strings"

	"golang.org/x/net/html"
)

// TokenKind is the kind of a markup token.
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenStartTag
	TokenEndTag
	TokenSelfClosingTag
)

// String returns the string representation of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "text"
	case TokenStartTag:
		return "start"
	case TokenEndTag:
		return "end"
	case TokenSelfClosingTag:
		return "self-closing"
	default:
		return "unknown"
	}
}

// Token is one lexical unit of the input markup.
type Token struct {
	Kind     TokenKind
	Name     string // lowercase tag name, empty for text
	RawAttrs string // attribute source of a start tag
	Text     string // decoded text of a text token
}

// IsTag reports whether the token is any kind of tag.
func (t Token) IsTag() bool {
	return t.Kind != TokenText
}

// Lex splits markup into text and tag tokens. Comments and doctypes are
// dropped, entities in text are decoded.
func Lex(input string) []Token {
	var tokens []Token
	z := html.NewTokenizer(strings.NewReader(input))

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF: a strings.Reader fails no other way.
			return tokens

		case html.TextToken:
			tokens = append(tokens, Token{Kind: TokenText, Text: string(z.Text())})

		case html.StartTagToken, html.SelfClosingTagToken:
			// Markup inside style, script, title and the like is lexed
			// as tags too, so unknown wrappers still fail open.
			z.NextIsNotRawText()
			raw := string(z.Raw())
			name, _ := z.TagName()
			kind := TokenStartTag
			if tt == html.SelfClosingTagToken {
				kind = TokenSelfClosingTag
			}
			tokens = append(tokens, Token{
				Kind:     kind,
				Name:     string(name),
				RawAttrs: rawAttributes(raw),
			})

		case html.EndTagToken:
			name, _ := z.TagName()
			tokens = append(tokens, Token{Kind: TokenEndTag, Name: string(name)})
		}
	}
}

// rawAttributes strips the tag name and delimiters from a raw start tag.
func rawAttributes(raw string) string {
	s := strings.TrimPrefix(raw, "<")
	i := strings.IndexAny(s, " \t\n\r\f/>")
	if i < 0 {
		return ""
	}
	s = strings.TrimSuffix(s[i:], ">")
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "/")
	return strings.TrimSpace(s)
}
