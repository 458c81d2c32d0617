package parser

import (
	"strings"

	"github.com/roboco-io/html2vega/internal/ir"
)

// refineSpacing normalizes whitespace at segment junctions. Layout puts a
// measured space between neighbouring fragments, so text segments lose
// spaces that touch another segment. List prefixes end in exactly one
// space, and segments left blank are dropped.
func refineSpacing(segs []ir.Segment) []ir.Segment {
	out := make([]ir.Segment, 0, len(segs))

	for i, seg := range segs {
		switch {
		case seg.IsLineBreak():
			out = append(out, seg)

		case seg.ListPrefix:
			seg.Text = strings.TrimRight(seg.Text, " ") + " "
			out = append(out, seg)

		default:
			if i > 0 {
				seg.Text = strings.TrimLeft(seg.Text, " ")
			}
			if i < len(segs)-1 {
				seg.Text = strings.TrimRight(seg.Text, " ")
			}
			if seg.IsBlank() {
				continue
			}
			out = append(out, seg)
		}
	}
	return out
}
