package handler

import "github.com/roboco-io/html2vega/internal/ir"

// ListHandler opens bullet (ul) and numbered (ol) lists.
// Numbering itself is tracked by the parser for the duration of one parse.
type ListHandler struct{}

func (*ListHandler) TagNames() []string   { return []string{"ul", "ol"} }
func (*ListHandler) IsLineBreakTag() bool { return true }
func (*ListHandler) ListRole() ListRole    { return ListContainer }

func (*ListHandler) ApplyStyle(current ir.Style, _ string, tagName string) ir.Style {
	lt := ir.ListUnordered
	if normalize(tagName) == "ol" {
		lt = ir.ListOrdered
	}
	return current.WithList(ir.ListContext{
		IsListItem:   false,
		NestingLevel: current.List.Level() + 1,
		ListType:     lt,
	})
}

// ListItemHandler marks text as belonging to a list item.
type ListItemHandler struct{}

func (*ListItemHandler) TagNames() []string   { return []string{"li"} }
func (*ListItemHandler) IsLineBreakTag() bool { return true }
func (*ListItemHandler) ListRole() ListRole    { return ListItem }

func (*ListItemHandler) ApplyStyle(current ir.Style, _ string, _ string) ir.Style {
	lc := ir.ListContext{IsListItem: true, NestingLevel: 1, ListType: ir.ListUnordered}
	if current.List != nil {
		lc = *current.List
		lc.IsListItem = true
		if lc.NestingLevel == 0 {
			lc.NestingLevel = 1
		}
	}
	return current.WithList(lc)
}
