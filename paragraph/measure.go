package paragraph

import (
	"fmt"
	"sync"

	"github.com/gogpu/folio/internal/cache"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Measurer measures text in page units.
type Measurer interface {
	// Advance returns the horizontal advance of s.
	Advance(s string) float64

	// Size returns the font size the measurer was created for.
	Size() float64
}

// advanceCacheBytes bounds the memo of measured fragments.
const advanceCacheBytes = 256 << 10

// advance is a memoised measurement. Its footprint covers the key as well.
type advance struct {
	width float64
	key   int // length of the key in bytes
}

func (a advance) SizeBytes() int64 { return int64(a.key) + 24 }

// FontMeasurer measures text with glyph advances and pair kerning from an
// OpenType font parsed by golang.org/x/image.
//
// FontMeasurer is safe for concurrent use.
type FontMeasurer struct {
	font *opentype.Font
	size float64
	ppem fixed.Int26_6

	bufPool sync.Pool
	memo    *cache.Cache[string, advance]
}

// NewFontMeasurer parses TrueType or OpenType data for measuring at size.
func NewFontMeasurer(data []byte, size float64) (*FontMeasurer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("paragraph: failed to parse font: %w", err)
	}
	return &FontMeasurer{
		font: f,
		size: size,
		ppem: fixed.Int26_6(size * 64),
		bufPool: sync.Pool{
			New: func() any { return new(sfnt.Buffer) },
		},
		memo: cache.New[string, advance](advanceCacheBytes),
	}, nil
}

// Size implements Measurer.
func (m *FontMeasurer) Size() float64 {
	return m.size
}

// Advance implements Measurer.
func (m *FontMeasurer) Advance(s string) float64 {
	if s == "" {
		return 0
	}
	if a, ok := m.memo.Get(s); ok {
		return a.width
	}

	buf := m.bufPool.Get().(*sfnt.Buffer)
	defer m.bufPool.Put(buf)

	var (
		total fixed.Int26_6
		prev  sfnt.GlyphIndex
		first = true
	)
	for _, r := range s {
		idx, err := m.font.GlyphIndex(buf, r)
		if err != nil {
			continue
		}
		if !first {
			if k, err := m.font.Kern(buf, prev, idx, m.ppem, font.HintingNone); err == nil {
				total += k
			}
		}
		adv, err := m.font.GlyphAdvance(buf, idx, m.ppem, font.HintingNone)
		if err != nil {
			continue
		}
		total += adv
		prev = idx
		first = false
	}

	w := fixedToFloat64(total)
	m.memo.Set(s, advance{width: w, key: len(s)})
	return w
}

// MemoStats returns statistics of the measurement memo.
func (m *FontMeasurer) MemoStats() cache.Stats {
	return m.memo.Stats()
}

func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
