package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/roboco-io/html2vega/internal/handler"
	"github.com/roboco-io/html2vega/internal/ir"
)

// Whitespace runs that contain a line break or tab collapse to one space.
var reBreakingSpace = regexp.MustCompile(`[ \t\r\n\f]*[\t\r\n\f][ \t\r\n\f]*`)

const (
	bullet       = "• "
	prefixIndent = "  "
)

// frame is one entry of the style stack.
type frame struct {
	tag   string
	style ir.Style
	block bool // opened by a line-break handler
	list  bool // opened a list container
	item  bool // opened a list item
}

// listFrame tracks numbering for one open list container.
type listFrame struct {
	ordered bool
	counter int
}

// state is the per-call fold state. Nothing outlives one Parse call.
type state struct {
	registry *handler.Registry

	frames         []frame
	lists          []listFrame
	awaitingPrefix bool

	segments []ir.Segment
	errors   []string
}

func newState(reg *handler.Registry) *state {
	return &state{
		registry: reg,
		frames:   []frame{{style: ir.DefaultStyle()}},
	}
}

func (st *state) top() ir.Style {
	return st.frames[len(st.frames)-1].style
}

func (st *state) walk(tokens []Token) {
	ahead := textAhead(tokens)

	for i, tok := range tokens {
		switch tok.Kind {
		case TokenText:
			st.text(tok.Text)
		case TokenStartTag, TokenSelfClosingTag:
			st.open(tok)
		case TokenEndTag:
			st.close(tok.Name, ahead[i])
		}
	}
}

func (st *state) text(raw string) {
	text := reBreakingSpace.ReplaceAllString(raw, " ")
	if strings.TrimSpace(text) == "" {
		return
	}

	style := st.top()
	if st.awaitingPrefix {
		st.segments = append(st.segments, ir.Segment{
			Text:       st.listPrefix(style),
			Style:      style.Reset(),
			ListPrefix: true,
		})
		text = strings.TrimLeft(text, " ")
		st.awaitingPrefix = false
	}
	st.segments = append(st.segments, ir.NewSegment(text, style))
}

// listPrefix renders the bullet or number for the current list item,
// indented by nesting depth.
func (st *state) listPrefix(style ir.Style) string {
	indent := ""
	if level := style.List.Level(); level > 1 {
		indent = strings.Repeat(prefixIndent, level-1)
	}
	if len(st.lists) == 0 {
		return indent + bullet
	}
	lf := st.lists[len(st.lists)-1]
	if lf.ordered {
		return indent + strconv.Itoa(lf.counter) + ". "
	}
	return indent + bullet
}

func (st *state) open(tok Token) {
	h, ok := st.registry.Lookup(tok.Name)
	if !ok {
		st.errors = append(st.errors, fmt.Sprintf("Unsupported tag: <%s>", tok.Name))
		return
	}

	if v := handler.Validate(h, tok.RawAttrs); !v.Valid {
		st.errors = append(st.errors, v.Errors...)
	}

	selfClosing := tok.Kind == TokenSelfClosingTag || IsVoid(tok.Name)

	if !handler.IsLineBreak(h) {
		if selfClosing {
			return
		}
		st.push(frame{tag: tok.Name, style: h.ApplyStyle(st.top(), tok.RawAttrs, tok.Name)})
		return
	}

	if selfClosing {
		st.segments = append(st.segments, ir.NewLineBreak(st.top()))
		return
	}

	st.breakIfNeeded()

	style := h.ApplyStyle(st.top(), tok.RawAttrs, tok.Name)
	f := frame{tag: tok.Name, style: style, block: true}

	// Other blocks inside an item inherit its list context but are
	// neither items nor lists themselves.
	switch handler.RoleOf(h) {
	case handler.ListItem:
		f.item = true
		st.awaitingPrefix = true
		if len(st.lists) > 0 {
			st.lists[len(st.lists)-1].counter++
		}
	case handler.ListContainer:
		f.list = true
		st.lists = append(st.lists, listFrame{ordered: style.List.Ordered()})
	}
	st.push(f)
}

func (st *state) push(f frame) {
	st.frames = append(st.frames, f)
}

// close pops the innermost frame opened by name together with everything
// opened after it. A name with no open frame is ignored.
func (st *state) close(name string, more bool) {
	i := st.find(name)
	if i < 1 {
		return
	}

	f := st.frames[i]
	if f.block && !f.item && more && !st.lastIsBreak() {
		st.segments = append(st.segments, ir.NewLineBreak(st.frames[i-1].style))
	}

	for j := len(st.frames) - 1; j >= i; j-- {
		popped := st.frames[j]
		if popped.list && len(st.lists) > 0 {
			st.lists = st.lists[:len(st.lists)-1]
		}
		if popped.item {
			st.awaitingPrefix = false
		}
	}
	st.frames = st.frames[:i]
}

func (st *state) find(name string) int {
	for i := len(st.frames) - 1; i >= 1; i-- {
		if st.frames[i].tag == name {
			return i
		}
	}
	return -1
}

// breakIfNeeded starts a new line unless the output is empty or already
// ends with a break.
func (st *state) breakIfNeeded() {
	if len(st.segments) == 0 {
		return
	}
	if last := st.segments[len(st.segments)-1]; last.IsBlank() {
		return
	}
	st.segments = append(st.segments, ir.NewLineBreak(st.top()))
}

func (st *state) lastIsBreak() bool {
	return len(st.segments) > 0 && st.segments[len(st.segments)-1].IsLineBreak()
}

// textAhead reports, for each token, whether any later token carries
// visible text.
func textAhead(tokens []Token) []bool {
	ahead := make([]bool, len(tokens))
	seen := false
	for i := len(tokens) - 1; i >= 0; i-- {
		ahead[i] = seen
		if tokens[i].Kind == TokenText && strings.TrimSpace(tokens[i].Text) != "" {
			seen = true
		}
	}
	return ahead
}
