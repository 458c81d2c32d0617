// Package vega groups laid out fragments into Vega-Lite layers and wraps
// them into a Vega-Lite document.
package vega

// Mark types.
const (
	MarkText = "text"
	MarkRule = "rule"
)

// Datum is one row of layer data.
type Datum struct {
	ID     int      `json:"id"`
	Text   string   `json:"text"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
	X2     *float64 `json:"x2,omitempty"`
}

// Data holds the inline rows of a layer.
type Data struct {
	Values []Datum `json:"values"`
}

// Mark describes how every row of a layer is drawn.
type Mark struct {
	Type        string  `json:"type"`
	Font        string  `json:"font,omitempty"`
	FontSize    float64 `json:"fontSize,omitempty"`
	FontWeight  string  `json:"fontWeight,omitempty"`
	FontStyle   string  `json:"fontStyle,omitempty"`
	Color       string  `json:"color,omitempty"`
	Align       string  `json:"align,omitempty"`
	Baseline    string  `json:"baseline,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
}

// PositionChannel binds a pixel coordinate. Scale and axis are always
// null so values are used as-is.
type PositionChannel struct {
	Field string    `json:"field"`
	Type  string    `json:"type"`
	Scale *struct{} `json:"scale"`
	Axis  *struct{} `json:"axis"`
}

// TextChannel binds the text of a text mark.
type TextChannel struct {
	Field string `json:"field"`
	Type  string `json:"type"`
}

// Encoding binds datum fields to mark channels.
type Encoding struct {
	X    *PositionChannel `json:"x"`
	Y    *PositionChannel `json:"y"`
	X2   *PositionChannel `json:"x2,omitempty"`
	Text *TextChannel     `json:"text,omitempty"`
}

// Layer is one style-homogeneous drawable unit.
type Layer struct {
	Data     Data     `json:"data"`
	Mark     Mark     `json:"mark"`
	Encoding Encoding `json:"encoding"`
}

// IsRule reports whether the layer draws decoration lines.
func (l Layer) IsRule() bool {
	return l.Mark.Type == MarkRule
}

func position(field string) *PositionChannel {
	return &PositionChannel{Field: field, Type: "quantitative"}
}

func textEncoding() Encoding {
	return Encoding{
		X:    position("x"),
		Y:    position("y"),
		Text: &TextChannel{Field: "text", Type: "nominal"},
	}
}

func ruleEncoding() Encoding {
	return Encoding{
		X:  position("x"),
		Y:  position("y"),
		X2: position("x2"),
	}
}
