package vega

import (
	"github.com/roboco-io/html2vega/internal/ir"
)

// TextDefaults fills in what fragments leave unset.
type TextDefaults struct {
	FontSize   float64
	FontFamily string
}

type group struct {
	style ir.Style
	rows  []Datum
}

// Assemble groups fragments by visual style. Groups keep the order in
// which their first fragment appears. Each group becomes one text layer;
// underlined and struck through groups are followed by a rule layer.
// Row ids are the fragment positions in frags.
func Assemble(frags []ir.Fragment, d TextDefaults) []Layer {
	var groups []*group
	index := make(map[string]*group)

	for i, f := range frags {
		key := f.Style.GroupKey(d.FontSize)
		g, ok := index[key]
		if !ok {
			g = &group{style: f.Style}
			index[key] = g
			groups = append(groups, g)
		}
		w, h := f.Width, f.Height
		g.rows = append(g.rows, Datum{
			ID:     i,
			Text:   f.Text,
			X:      f.X,
			Y:      f.Y,
			Width:  &w,
			Height: &h,
		})
	}

	layers := make([]Layer, 0, len(groups))
	for _, g := range groups {
		layers = append(layers, textLayer(g, d))
		if g.style.IsDecorated() {
			layers = append(layers, ruleLayer(g))
		}
	}
	return layers
}

func textLayer(g *group, d TextDefaults) Layer {
	return Layer{
		Data: Data{Values: g.rows},
		Mark: Mark{
			Type:       MarkText,
			Font:       d.FontFamily,
			FontSize:   g.style.Size(d.FontSize),
			FontWeight: string(g.style.FontWeight),
			FontStyle:  string(g.style.FontStyle),
			Color:      g.style.Color,
			Align:      "left",
			Baseline:   "top",
		},
		Encoding: textEncoding(),
	}
}

// ruleLayer draws one line per row across its width: under the text for
// underline, through the middle for line-through.
func ruleLayer(g *group) Layer {
	rows := make([]Datum, len(g.rows))
	for i, r := range g.rows {
		y := r.Y + *r.Height
		if g.style.TextDecoration == ir.DecorationLineThrough {
			y = r.Y + *r.Height/2
		}
		x2 := r.X + *r.Width
		rows[i] = Datum{
			ID:   r.ID,
			Text: r.Text,
			X:    r.X,
			Y:    y,
			X2:   &x2,
		}
	}

	return Layer{
		Data: Data{Values: rows},
		Mark: Mark{
			Type:        MarkRule,
			Color:       g.style.Color,
			StrokeWidth: 1,
		},
		Encoding: ruleEncoding(),
	}
}
