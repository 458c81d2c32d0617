package layout

import (
	"strings"

	"go.uber.org/zap"

	"github.com/roboco-io/html2vega/internal/handler"
	"github.com/roboco-io/html2vega/internal/ir"
)

// Result holds the placed fragments and the size of the content.
type Result struct {
	Fragments []ir.Fragment `json:"fragments"`
	Bounds    ir.Bounds     `json:"bounds"`
}

// Engine places segments line by line with greedy word wrap.
// Layout does not modify the engine; Update must not race with Layout.
type Engine struct {
	opts     Options
	measurer Measurer
	log      *zap.Logger
}

// New creates an engine. A nil measurer selects ApproxMeasurer.
func New(opts Options, m Measurer, log *zap.Logger) *Engine {
	if m == nil {
		m = ApproxMeasurer{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	opts.LineHeight = opts.EffectiveLineHeight()
	return &Engine{
		opts:     opts,
		measurer: m,
		log:      log.Named("layout"),
	}
}

// Options returns the current options with the line height resolved.
func (e *Engine) Options() Options {
	return e.opts
}

// Update applies opts. A font size change recomputes the line height
// unless the same update also sets it.
func (e *Engine) Update(opts ...Option) {
	u := update{opts: e.opts}
	for _, o := range opts {
		o(&u)
	}
	if u.opts.FontSize != e.opts.FontSize && !u.lineHeightSet {
		u.opts.LineHeight = DefaultLineHeightFactor * u.opts.FontSize
	}
	if u.opts.LineHeight <= 0 {
		u.opts.LineHeight = u.opts.EffectiveLineHeight()
	}
	e.opts = u.opts
}

// Layout positions segments and computes the content bounds.
func (e *Engine) Layout(segs []ir.Segment) Result {
	c := &cursor{
		e:    e,
		x:    e.opts.StartX,
		y:    e.opts.StartY,
		slot: e.opts.LineHeight,
	}

	for _, seg := range segs {
		c.add(seg)
	}

	res := Result{
		Fragments: c.frags,
		Bounds:    Measure(c.frags),
	}
	e.log.Debug("Laid out segments",
		zap.Int("segments", len(segs)),
		zap.Int("fragments", len(res.Fragments)),
		zap.Float64("width", res.Bounds.Width),
		zap.Float64("height", res.Bounds.Height))
	return res
}

// Measure returns the padded extent of frags, zero when there are none.
func Measure(frags []ir.Fragment) ir.Bounds {
	if len(frags) == 0 {
		return ir.Bounds{}
	}
	var right, bottom float64
	for _, f := range frags {
		right = max(right, f.Right())
		bottom = max(bottom, f.Bottom())
	}
	return ir.Bounds{
		Width:  right + PadRight,
		Height: bottom + PadBottom,
	}
}

// cursor is the mutable state of one Layout call.
type cursor struct {
	e     *Engine
	x, y  float64
	slot  float64 // tallest fragment line height on the current line
	title bool    // the last fragment placed belongs to a heading
	frags []ir.Fragment
}

func (c *cursor) opts() *Options {
	return &c.e.opts
}

func (c *cursor) measure(text string, style ir.Style) Size {
	return c.e.measurer.Measure(text, style, style.Size(c.opts().FontSize))
}

func (c *cursor) midLine() bool {
	return c.x > c.opts().StartX
}

// newline advances by the line slot, the tallest line height placed on
// the current line. Leaving a heading line scales that whole advance by
// HeadingSpaceAfter rather than adding a separate gap.
func (c *cursor) newline() {
	adv := c.slot
	if c.title {
		adv *= c.opts().HeadingSpaceAfter
	}
	c.y += adv
	c.x = c.opts().StartX
	c.slot = c.opts().LineHeight
	c.title = false
}

func (c *cursor) add(seg ir.Segment) {
	if seg.IsLineBreak() {
		c.newline()
		return
	}

	heading := isHeading(seg.Style)
	if heading && !c.title && c.midLine() {
		c.newline()
		c.y += c.opts().HeadingSpaceBefore * c.opts().LineHeight
	}

	m := c.measure(seg.Text, seg.Style)
	maxW := c.opts().MaxWidth

	if m.Width > maxW && strings.Contains(seg.Text, " ") {
		c.wrap(seg, heading)
		return
	}

	if c.x-c.opts().StartX+m.Width > maxW && c.midLine() {
		c.newline()
	}
	c.place(seg, seg.Text, m, heading)
}

// wrap places seg word by word, starting a new line whenever the next
// word does not fit. A single word wider than the line is placed alone.
func (c *cursor) wrap(seg ir.Segment, heading bool) {
	maxW := c.opts().MaxWidth
	var line string

	for _, word := range strings.Fields(seg.Text) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if c.x-c.opts().StartX+c.measure(candidate, seg.Style).Width <= maxW {
			line = candidate
			continue
		}

		if line != "" {
			c.place(seg, line, c.measure(line, seg.Style), heading)
			c.newline()
		} else if c.midLine() {
			c.newline()
		}
		line = word
	}

	if line != "" {
		c.place(seg, line, c.measure(line, seg.Style), heading)
	}
}

func (c *cursor) place(seg ir.Segment, text string, m Size, heading bool) {
	var nudge float64
	if seg.Style.IsPlain() {
		nudge = c.opts().PlainNudge
	}

	lh := max(c.opts().LineHeight, m.Height)
	c.slot = max(c.slot, lh)

	c.frags = append(c.frags, ir.Fragment{
		Segment: ir.Segment{
			Text:       text,
			Style:      seg.Style.Clone(),
			ListPrefix: seg.ListPrefix,
		},
		X:      c.x + nudge,
		Y:      c.y + (lh - m.Height),
		Width:  m.Width,
		Height: m.Height,
	})

	c.x += m.Width + c.measure(" ", seg.Style).Width
	c.title = heading
}

// isHeading reports whether style was set by a heading tag: bold with an
// explicit size from the heading table.
func isHeading(s ir.Style) bool {
	return s.FontWeight == ir.WeightBold && s.FontSize != nil && handler.IsHeadingSize(*s.FontSize)
}
