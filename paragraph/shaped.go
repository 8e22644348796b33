package paragraph

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// ShapingMeasurer measures text with HarfBuzz shaping from
// go-text/typesetting, so ligatures, kerning and contextual forms are taken
// into account.
//
// ShapingMeasurer is safe for concurrent use. The parsed font is shared;
// faces and shapers are created per call or pooled.
type ShapingMeasurer struct {
	font *font.Font
	size float64
	lang language.Language

	shaperPool sync.Pool
}

// NewShapingMeasurer parses TrueType or OpenType data for shaping at size.
func NewShapingMeasurer(data []byte, size float64) (*ShapingMeasurer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("paragraph: failed to parse font: %w", err)
	}
	return &ShapingMeasurer{
		font: face.Font,
		size: size,
		lang: language.NewLanguage("en"),
		shaperPool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}, nil
}

// Size implements Measurer.
func (m *ShapingMeasurer) Size() float64 {
	return m.size
}

// Advance implements Measurer.
func (m *ShapingMeasurer) Advance(s string) float64 {
	if s == "" {
		return 0
	}
	runes := []rune(s)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(m.font),
		Size:      fixed.Int26_6(m.size * 64),
		Script:    scriptOf(runes),
		Language:  m.lang,
	}

	hb := m.shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	m.shaperPool.Put(hb)

	return fixedToFloat64(out.Advance)
}

// scriptOf returns the script of the first letter in runes.
func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\u00a0' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
