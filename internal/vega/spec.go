package vega

import (
	"encoding/json"
	"fmt"

	"github.com/roboco-io/html2vega/internal/ir"
)

// SchemaURL identifies the Vega-Lite version of the produced documents.
const SchemaURL = "https://vega.github.io/schema/vega-lite/v5.json"

// DefaultBackground is the canvas color when none is configured.
const DefaultBackground = "white"

// Format holds document-level options. Zero Width or Height falls back to
// the content bounds.
type Format struct {
	Background string  `yaml:"background" json:"background"`
	Width      float64 `yaml:"width,omitempty" json:"width,omitempty"`
	Height     float64 `yaml:"height,omitempty" json:"height,omitempty"`
}

// ViewConfig is the view part of the document config.
type ViewConfig struct {
	Stroke *string `json:"stroke"`
}

// Config is the document config block.
type Config struct {
	View ViewConfig `json:"view"`
}

// Spec is a complete Vega-Lite document.
type Spec struct {
	Schema     string  `json:"$schema"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Background string  `json:"background"`
	Config     Config  `json:"config"`
	Layer      []Layer `json:"layer"`
}

// NewSpec wraps layers into a document sized to bounds unless f says
// otherwise.
func NewSpec(layers []Layer, bounds ir.Bounds, f Format) *Spec {
	if layers == nil {
		layers = []Layer{}
	}
	s := &Spec{
		Schema:     SchemaURL,
		Width:      bounds.Width,
		Height:     bounds.Height,
		Background: f.Background,
		Layer:      layers,
	}
	if f.Width > 0 {
		s.Width = f.Width
	}
	if f.Height > 0 {
		s.Height = f.Height
	}
	if s.Background == "" {
		s.Background = DefaultBackground
	}
	return s
}

// TextLayers returns the number of text layers.
func (s *Spec) TextLayers() int {
	n := 0
	for _, l := range s.Layer {
		if !l.IsRule() {
			n++
		}
	}
	return n
}

// JSON encodes the document, indented when pretty is set.
func (s *Spec) JSON(pretty bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(s, "", "  ")
	} else {
		data, err = json.Marshal(s)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode spec: %w", err)
	}
	return data, nil
}
