package ir

// ListType is the kind of list container an item belongs to.
type ListType string

const (
	ListUnordered ListType = "ul" // bullet list
	ListOrdered   ListType = "ol" // numbered list
)

// ListContext describes the list a run sits in.
type ListContext struct {
	IsListItem   bool     `json:"is_list_item"`
	NestingLevel int      `json:"nesting_level"` // 1 = top level
	ListType     ListType `json:"list_type"`
}

// Ordered reports whether the enclosing list is numbered.
func (lc *ListContext) Ordered() bool {
	return lc != nil && lc.ListType == ListOrdered
}

// Level returns the nesting level, 0 outside of any list.
func (lc *ListContext) Level() int {
	if lc == nil {
		return 0
	}
	return lc.NestingLevel
}

func (lc *ListContext) clone() *ListContext {
	if lc == nil {
		return nil
	}
	c := *lc
	return &c
}
