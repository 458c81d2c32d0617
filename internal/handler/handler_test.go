package handler

import (
	"strings"
	"testing"

	"github.com/roboco-io/html2vega/internal/ir"
)

func TestHeadingHandler_SizeTable(t *testing.T) {
	tests := []struct {
		tag  string
		size float64
	}{
		{"h1", 32},
		{"h2", 24},
		{"h3", 18.72},
		{"h4", 16},
		{"h5", 13.28},
		{"h6", 10.72},
		{"H2", 24},
	}

	h := &HeadingHandler{}
	for _, tc := range tests {
		t.Run(tc.tag, func(t *testing.T) {
			s := h.ApplyStyle(ir.DefaultStyle(), "", tc.tag)
			if s.Size(0) != tc.size {
				t.Errorf("size for %s = %g, want %g", tc.tag, s.Size(0), tc.size)
			}
			if s.FontWeight != ir.WeightBold {
				t.Errorf("weight for %s = %s, want bold", tc.tag, s.FontWeight)
			}
		})
	}
}

func TestHeadingHandler_UnknownName(t *testing.T) {
	h := &HeadingHandler{}

	if got := h.ApplyStyle(ir.DefaultStyle(), "", "h7").Size(0); got != DefaultHeadingSize {
		t.Errorf("expected fallback size %d, got %g", DefaultHeadingSize, got)
	}
	if got := h.ApplyStyle(ir.DefaultStyle().WithFontSize(20), "", "h7").Size(0); got != 20 {
		t.Errorf("expected current size 20, got %g", got)
	}
}

func TestHandlers_DoNotMutateInput(t *testing.T) {
	in := ir.DefaultStyle().WithFontSize(12)
	before := in.Clone()

	for _, h := range Builtins() {
		for _, name := range h.TagNames() {
			_ = h.ApplyStyle(in, ` style="color: red; font-weight: bold" color="blue"`, name)
		}
	}

	if !in.Equal(before) {
		t.Errorf("input style mutated: got %+v, want %+v", in, before)
	}
}

func TestInlineHandlers(t *testing.T) {
	base := ir.DefaultStyle()

	if s := (&BoldHandler{}).ApplyStyle(base, "", "b"); s.FontWeight != ir.WeightBold {
		t.Error("expected bold weight")
	}
	if s := (&ItalicHandler{}).ApplyStyle(base, "", "em"); s.FontStyle != ir.StyleItalic {
		t.Error("expected italic style")
	}
	if s := (&UnderlineHandler{}).ApplyStyle(base, "", "u"); s.TextDecoration != ir.DecorationUnderline {
		t.Error("expected underline")
	}
	if s := (&StrikethroughHandler{}).ApplyStyle(base, "", "del"); s.TextDecoration != ir.DecorationLineThrough {
		t.Error("expected line-through")
	}
}

func TestLineBreakCapability(t *testing.T) {
	tests := []struct {
		h    Handler
		want bool
	}{
		{&BoldHandler{}, false},
		{&SpanHandler{}, false},
		{&BreakHandler{}, true},
		{&ParagraphHandler{}, true},
		{&HeadingHandler{}, true},
		{&ListHandler{}, true},
		{&ListItemHandler{}, true},
	}

	for _, tc := range tests {
		if got := IsLineBreak(tc.h); got != tc.want {
			t.Errorf("IsLineBreak(%T) = %v, want %v", tc.h, got, tc.want)
		}
	}
}

func TestListRoleCapability(t *testing.T) {
	tests := []struct {
		h    Handler
		want ListRole
	}{
		{&ListHandler{}, ListContainer},
		{&ListItemHandler{}, ListItem},
		{&ParagraphHandler{}, NotInList},
		{&BoldHandler{}, NotInList},
	}

	for _, tc := range tests {
		if got := RoleOf(tc.h); got != tc.want {
			t.Errorf("RoleOf(%T) = %v, want %v", tc.h, got, tc.want)
		}
	}
}

func TestSpanHandler_ApplyStyle(t *testing.T) {
	tests := []struct {
		name  string
		attrs string
		check func(ir.Style) bool
	}{
		{
			name:  "color",
			attrs: ` style="color: #ff0000"`,
			check: func(s ir.Style) bool { return s.Color == "#ff0000" },
		},
		{
			name:  "uppercase property",
			attrs: ` style="COLOR: blue"`,
			check: func(s ir.Style) bool { return s.Color == "blue" },
		},
		{
			name:  "numeric weight",
			attrs: ` style="font-weight: 700"`,
			check: func(s ir.Style) bool { return s.FontWeight == ir.WeightBold },
		},
		{
			name:  "light weight",
			attrs: ` style="font-weight: 300"`,
			check: func(s ir.Style) bool { return s.FontWeight == ir.WeightNormal },
		},
		{
			name:  "italic and line-through in any order",
			attrs: ` style="text-decoration: line-through; font-style: italic"`,
			check: func(s ir.Style) bool {
				return s.FontStyle == ir.StyleItalic && s.TextDecoration == ir.DecorationLineThrough
			},
		},
		{
			name:  "first declaration wins",
			attrs: ` style="color: green; color: red"`,
			check: func(s ir.Style) bool { return s.Color == "green" },
		},
		{
			name:  "unknown property does not block known ones",
			attrs: ` style="font-size: 20px; font-weight: bold"`,
			check: func(s ir.Style) bool { return s.FontWeight == ir.WeightBold && s.FontSize == nil },
		},
		{
			name:  "invalid color ignored",
			attrs: ` style="color: notacolor"`,
			check: func(s ir.Style) bool { return s.Color == ir.DefaultColor },
		},
		{
			name:  "malformed declaration does not block later ones",
			attrs: ` style="foo; color: red"`,
			check: func(s ir.Style) bool { return s.Color == "red" },
		},
		{
			name:  "missing colon does not block later ones",
			attrs: ` style="color red; font-weight: bold"`,
			check: func(s ir.Style) bool { return s.FontWeight == ir.WeightBold && s.Color == ir.DefaultColor },
		},
		{
			name:  "no style attribute",
			attrs: ` class="x"`,
			check: func(s ir.Style) bool { return s.IsPlain() },
		},
	}

	h := &SpanHandler{}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := h.ApplyStyle(ir.DefaultStyle(), tc.attrs, "span")
			if !tc.check(s) {
				t.Errorf("unexpected style for %s: %+v", tc.attrs, s)
			}
		})
	}
}

func TestSpanHandler_ValidateAttributes(t *testing.T) {
	tests := []struct {
		name    string
		attrs   string
		valid   bool
		mention string
	}{
		{"valid", ` style="color: red; font-weight: bold"`, true, ""},
		{"no style", ``, true, ""},
		{"unsupported property", ` style="font-size: 12px"`, false, "font-size"},
		{"invalid weight", ` style="font-weight: heavy"`, false, "font-weight"},
		{"invalid color", ` style="color: nope"`, false, "color"},
		{"invalid decoration", ` style="text-decoration: wavy"`, false, "text-decoration"},
		{"bare word", ` style="foo; color: red"`, false, `"foo"`},
		{"missing colon", ` style="color red; font-weight: bold"`, false, `"color red"`},
	}

	h := &SpanHandler{}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := h.ValidateAttributes(tc.attrs)
			if v.Valid != tc.valid {
				t.Fatalf("Valid = %v, want %v (errors: %v)", v.Valid, tc.valid, v.Errors)
			}
			if tc.mention != "" && !strings.Contains(strings.Join(v.Errors, "\n"), tc.mention) {
				t.Errorf("expected an error mentioning %q, got %v", tc.mention, v.Errors)
			}
		})
	}
}

func TestParseDeclarations_ResumesAfterError(t *testing.T) {
	got := ParseDeclarations("color red; font-weight: bold; font-style: italic")
	want := []Declaration{
		{Value: "color red", Malformed: true},
		{Property: "font-weight", Value: "bold"},
		{Property: "font-style", Value: "italic"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d declarations %+v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("declaration %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLinkHandler(t *testing.T) {
	h := &LinkHandler{}

	s := h.ApplyStyle(ir.DefaultStyle(), ` href="https://example.com"`, "a")
	if s.Color != LinkColor || s.TextDecoration != ir.DecorationUnderline {
		t.Errorf("expected colored underlined link, got %+v", s)
	}

	tests := []struct {
		attrs string
		valid bool
	}{
		{` href="https://example.com"`, true},
		{` href="/relative/path"`, true},
		{` href="mailto:a@b.c"`, true},
		{` href=""`, false},
		{` href="   "`, false},
		{` href="http://a b"`, false},
		{` href="http://[::1"`, false},
		{``, false},
	}

	for _, tc := range tests {
		v := h.ValidateAttributes(tc.attrs)
		if v.Valid != tc.valid {
			t.Errorf("ValidateAttributes(%q).Valid = %v, want %v", tc.attrs, v.Valid, tc.valid)
		}
		if !v.Valid && !strings.Contains(strings.Join(v.Errors, ""), "href") {
			t.Errorf("expected error mentioning href, got %v", v.Errors)
		}
	}
}

func TestListHandlers(t *testing.T) {
	list := &ListHandler{}
	item := &ListItemHandler{}

	outer := list.ApplyStyle(ir.DefaultStyle(), "", "ol")
	if outer.List == nil || outer.List.NestingLevel != 1 || !outer.List.Ordered() || outer.List.IsListItem {
		t.Fatalf("unexpected outer list context: %+v", outer.List)
	}

	li := item.ApplyStyle(outer, "", "li")
	if !li.List.IsListItem || li.List.NestingLevel != 1 || !li.List.Ordered() {
		t.Errorf("unexpected item context: %+v", li.List)
	}

	inner := list.ApplyStyle(li, "", "ul")
	if inner.List.NestingLevel != 2 || inner.List.Ordered() {
		t.Errorf("unexpected nested list context: %+v", inner.List)
	}

	orphan := item.ApplyStyle(ir.DefaultStyle(), "", "li")
	if orphan.List.NestingLevel != 1 || orphan.List.ListType != ir.ListUnordered {
		t.Errorf("unexpected context for item outside a list: %+v", orphan.List)
	}
}

func TestColorHandler(t *testing.T) {
	h := NewColorHandler()

	names := h.TagNames()
	if len(names) != len(ShortcutColors) {
		t.Fatalf("expected %d names, got %v", len(ShortcutColors), names)
	}
	for _, name := range names {
		s := h.ApplyStyle(ir.DefaultStyle(), "", name)
		if s.Color != ShortcutColors[name] {
			t.Errorf("color for <%s> = %s, want %s", name, s.Color, ShortcutColors[name])
		}
	}

	if s := h.ApplyStyle(ir.DefaultStyle(), "", "teal"); s.Color != ir.DefaultColor {
		t.Errorf("expected unmatched tag to keep color, got %s", s.Color)
	}
}

func TestFontHandler(t *testing.T) {
	h := &FontHandler{}

	if s := h.ApplyStyle(ir.DefaultStyle(), ` color="navy"`, "font"); s.Color != "navy" {
		t.Errorf("expected navy, got %s", s.Color)
	}
	if v := h.ValidateAttributes(` color="bogus"`); v.Valid {
		t.Error("expected invalid color to fail validation")
	}
}

func TestParseAttributes(t *testing.T) {
	attrs := ParseAttributes(` HREF="a&amp;b" title='t' disabled style="color:red"`)

	if attrs["href"] != "a&b" {
		t.Errorf("expected decoded lowercase href, got %q", attrs["href"])
	}
	if attrs["title"] != "t" {
		t.Errorf("expected single-quoted value, got %q", attrs["title"])
	}
	if v, ok := attrs["disabled"]; !ok || v != "" {
		t.Errorf("expected empty boolean attribute, got %q, %v", v, ok)
	}
	if attrs["style"] != "color:red" {
		t.Errorf("unexpected style %q", attrs["style"])
	}

	if len(ParseAttributes("   ")) != 0 {
		t.Error("expected no attributes for blank input")
	}
}

func TestValidColor(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"#fff", true},
		{"#A1B2C3", true},
		{"#12345", false},
		{"#ggg", false},
		{"rgb(1, 2, 3)", true},
		{"Red", true},
		{"darkslategray", true},
		{"transparent", true},
		{"notacolor", false},
		{"", false},
	}

	for _, tc := range tests {
		if got := ValidColor(tc.in); got != tc.want {
			t.Errorf("ValidColor(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
