package linebreak

import "math"

// Kind identifies the variant of an Item.
type Kind uint8

const (
	// KindBox is an unbreakable glyph cluster.
	KindBox Kind = iota
	// KindGlue is elastic whitespace.
	KindGlue
	// KindPenalty is an optional breakpoint.
	KindPenalty
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindBox:
		return "Box"
	case KindGlue:
		return "Glue"
	case KindPenalty:
		return "Penalty"
	default:
		return "Unknown"
	}
}

// Penalty sentinels.
const (
	// Forbidden is the penalty at or above which a break is never taken.
	Forbidden = 10000.0

	// Forced is the penalty at or below which a break must be taken.
	Forced = -10000.0
)

// Item is one element of a paragraph.
//
// Only the fields relevant to Kind are meaningful: boxes use Width and
// WordIndex, glue uses Width, Stretch and Shrink, penalties use Width (the
// material inserted only when the break is taken, e.g. a hyphen), Penalty and
// Flagged.
type Item struct {
	Kind      Kind
	Width     float64
	Stretch   float64
	Shrink    float64
	Penalty   float64
	Flagged   bool
	WordIndex int
}

// Box returns a box item of the given width. word is an opaque index the
// caller uses to map the box back to its text.
func Box(width float64, word int) Item {
	return Item{Kind: KindBox, Width: width, WordIndex: word}
}

// Glue returns a glue item with natural width, stretchability and
// shrinkability.
func Glue(width, stretch, shrink float64) Item {
	return Item{Kind: KindGlue, Width: width, Stretch: stretch, Shrink: shrink}
}

// Penalty returns a penalty item. flagged marks breaks whose consecutive use
// costs extra demerits, typically hyphenation points.
func Penalty(width, penalty float64, flagged bool) Item {
	return Item{Kind: KindPenalty, Width: width, Penalty: penalty, Flagged: flagged}
}

// ForcedBreak returns the penalty that terminates a paragraph.
func ForcedBreak() Item {
	return Penalty(0, math.Inf(-1), false)
}

// IsForcedBreak reports whether the item is a penalty that must be taken.
func (it Item) IsForcedBreak() bool {
	return it.Kind == KindPenalty && it.Penalty <= Forced
}

// prefix holds cumulative width, stretch and shrink of items[0:i].
// Penalty widths are excluded; they count only on the line they end.
type prefix struct {
	width   []float64
	stretch []float64
	shrink  []float64
}

func newPrefix(items []Item) prefix {
	n := len(items)
	p := prefix{
		width:   make([]float64, n+1),
		stretch: make([]float64, n+1),
		shrink:  make([]float64, n+1),
	}
	for i, it := range items {
		p.width[i+1] = p.width[i]
		p.stretch[i+1] = p.stretch[i]
		p.shrink[i+1] = p.shrink[i]
		switch it.Kind {
		case KindBox:
			p.width[i+1] += it.Width
		case KindGlue:
			p.width[i+1] += it.Width
			p.stretch[i+1] += it.Stretch
			p.shrink[i+1] += it.Shrink
		}
	}
	return p
}

// skipGlue returns the first index at or after j that is not glue.
func skipGlue(items []Item, j int) int {
	for j < len(items) && items[j].Kind == KindGlue {
		j++
	}
	return j
}
