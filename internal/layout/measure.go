package layout

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/roboco-io/html2vega/internal/ir"
)

// Approximate metrics used when no font is available.
const (
	CharWidthFactor   = 0.6
	BoldWidthFactor   = 1.15
	ItalicWidthFactor = 1.05
)

// Size is a measured extent in pixels.
type Size struct {
	Width  float64
	Height float64
}

// Measurer reports the rendered size of text in a style.
type Measurer interface {
	Measure(text string, style ir.Style, size float64) Size
}

// ApproxMeasurer estimates widths from the rune count.
type ApproxMeasurer struct{}

func (ApproxMeasurer) Measure(text string, style ir.Style, size float64) Size {
	w := float64(utf8.RuneCountInString(text)) * size * CharWidthFactor
	if style.FontWeight == ir.WeightBold {
		w *= BoldWidthFactor
	}
	if style.FontStyle == ir.StyleItalic {
		w *= ItalicWidthFactor
	}
	return Size{Width: w, Height: size}
}

type variant int

const (
	regular variant = iota
	bold
	italic
	boldItalic
)

type faceKey struct {
	v    variant
	size float64
}

// FontMeasurer measures text with the Go font family. Faces are created
// lazily and cached per variant and size. It is safe for concurrent use.
type FontMeasurer struct {
	fonts map[variant]*opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// NewFontMeasurer parses the embedded Go fonts.
func NewFontMeasurer() (*FontMeasurer, error) {
	sources := map[variant][]byte{
		regular:    goregular.TTF,
		bold:       gobold.TTF,
		italic:     goitalic.TTF,
		boldItalic: gobolditalic.TTF,
	}

	fonts := make(map[variant]*opentype.Font, len(sources))
	for v, ttf := range sources {
		f, err := opentype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
		fonts[v] = f
	}

	return &FontMeasurer{
		fonts: fonts,
		faces: make(map[faceKey]font.Face),
	}, nil
}

func (m *FontMeasurer) Measure(text string, style ir.Style, size float64) Size {
	face, err := m.face(variantOf(style), size)
	if err != nil {
		return ApproxMeasurer{}.Measure(text, style, size)
	}
	adv := font.MeasureString(face, text)
	return Size{
		Width:  float64(adv) / 64,
		Height: size,
	}
}

func (m *FontMeasurer) face(v variant, size float64) (font.Face, error) {
	key := faceKey{v: v, size: size}

	m.mu.Lock()
	defer m.mu.Unlock()

	if f, ok := m.faces[key]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(m.fonts[v], &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}
	m.faces[key] = f
	return f, nil
}

// Close releases all cached faces.
func (m *FontMeasurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, f := range m.faces {
		_ = f.Close()
		delete(m.faces, k)
	}
	return nil
}

func variantOf(s ir.Style) variant {
	b := s.FontWeight == ir.WeightBold
	i := s.FontStyle == ir.StyleItalic
	switch {
	case b && i:
		return boldItalic
	case b:
		return bold
	case i:
		return italic
	default:
		return regular
	}
}
