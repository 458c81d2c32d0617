package handler

import (
	"strings"

	"golang.org/x/net/html"
)

// ParseAttributes splits a raw attribute string such as
// ` href="x" style='color: red'` into a map. Keys are lowercased, values
// have entities decoded. The first occurrence of a key wins.
func ParseAttributes(raw string) map[string]string {
	attrs := make(map[string]string)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return attrs
	}

	z := html.NewTokenizer(strings.NewReader("<x " + raw + ">"))
	if tt := z.Next(); tt != html.StartTagToken && tt != html.SelfClosingTagToken {
		return attrs
	}
	_, hasAttr := z.TagName()
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		k := string(key)
		if _, seen := attrs[k]; !seen {
			attrs[k] = string(val)
		}
	}
	return attrs
}

// Attr returns one attribute from a raw attribute string.
func Attr(raw, name string) (string, bool) {
	v, ok := ParseAttributes(raw)[strings.ToLower(name)]
	return v, ok
}
