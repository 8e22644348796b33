package paragraph

import (
	"strings"
	"unicode"

	"github.com/go-text/typesetting/segmenter"
	"github.com/gogpu/folio/linebreak"
	"golang.org/x/text/unicode/norm"
)

const softHyphen = "\u00ad"

// Options controls how text is turned into items.
type Options struct {
	// HyphenPenalty is the penalty of breaking at a soft or explicit hyphen.
	HyphenPenalty float64

	// Hyphenate enables breaks at soft hyphens (U+00AD). Soft hyphens are
	// removed from the output either way.
	Hyphenate bool

	// FinishingStretch is the stretchability of the glue that fills the
	// last line of the paragraph and every line ended by a newline.
	FinishingStretch float64
}

// DefaultOptions returns the options used for body text.
func DefaultOptions() Options {
	return Options{
		HyphenPenalty:    linebreak.DefaultConfig().HyphenPenalty,
		Hyphenate:        true,
		FinishingStretch: 10000,
	}
}

// Fragment is the text of one box.
type Fragment struct {
	Text  string
	Width float64

	// Word is the index of the word the fragment belongs to; fragments of
	// a word split at soft hyphens share it.
	Word int
}

// Paragraph is measured text ready for line breaking.
type Paragraph struct {
	// Text is the NFC-normalised, trimmed input.
	Text string

	// Items is the line-breaking input. Box items carry the index of
	// their fragment in WordIndex.
	Items []linebreak.Item

	// Fragments holds the text of every box.
	Fragments []Fragment

	SpaceWidth  float64
	HyphenWidth float64
	FontSize    float64
}

// Build measures text with m and returns its item stream.
//
// Empty or all-space text yields a paragraph without items.
func Build(text string, m Measurer, opts Options) (*Paragraph, error) {
	if m == nil {
		return nil, ErrNoMeasurer
	}

	text = strings.TrimSpace(norm.NFC.String(text))
	p := &Paragraph{
		Text:        text,
		SpaceWidth:  m.Advance(" "),
		HyphenWidth: m.Advance("-"),
		FontSize:    m.Size(),
	}
	if text == "" {
		return p, nil
	}

	var seg segmenter.Segmenter
	seg.Init([]rune(text))
	var lines []segmenter.Line
	for it := seg.LineIterator(); it.Next(); {
		lines = append(lines, it.Line())
	}

	b := builder{p: p, m: m, opts: opts}
	for i, line := range lines {
		b.segment(line, i == len(lines)-1)
	}
	b.finish()
	return p, nil
}

// builder appends items for consecutive line-break segments.
type builder struct {
	p    *Paragraph
	m    Measurer
	opts Options
	word int
}

// segment handles the text up to one break opportunity.
func (b *builder) segment(line segmenter.Line, last bool) {
	raw := string(line.Text)
	word := strings.TrimRightFunc(raw, unicode.IsSpace)
	trailing := raw[len(word):]

	// The segmenter breaks after a soft hyphen; the word continues in the
	// next segment.
	soft := strings.HasSuffix(word, softHyphen)
	word = strings.TrimSuffix(word, softHyphen)

	if word != "" {
		b.addWord(word)
	}
	if !soft {
		b.word++
	}
	switch {
	case soft:
		if b.opts.Hyphenate && b.lastIsBox() && !last {
			b.p.Items = append(b.p.Items, linebreak.Penalty(b.p.HyphenWidth, b.opts.HyphenPenalty, true))
		}
	case line.IsMandatoryBreak && strings.ContainsAny(trailing, "\n\r\v\f\u0085\u2028\u2029"):
		b.forced()
	case trailing != "":
		b.space()
	case word != "" && !last:
		b.opportunity(word)
	}
}

// addWord appends the boxes of one word, split at any soft hyphens the
// segmenter left inside it.
func (b *builder) addWord(word string) {
	pieces := strings.Split(word, softHyphen)
	if !b.opts.Hyphenate {
		pieces = []string{strings.Join(pieces, "")}
	}

	for i, piece := range pieces {
		if piece == "" {
			continue
		}
		if i > 0 && b.lastIsBox() {
			b.p.Items = append(b.p.Items, linebreak.Penalty(b.p.HyphenWidth, b.opts.HyphenPenalty, true))
		}
		w := b.m.Advance(piece)
		b.p.Items = append(b.p.Items, linebreak.Box(w, len(b.p.Fragments)))
		b.p.Fragments = append(b.p.Fragments, Fragment{Text: piece, Width: w, Word: b.word})
	}
}

// space appends inter-word glue unless glue is already last.
func (b *builder) space() {
	if n := len(b.p.Items); n == 0 || b.p.Items[n-1].Kind != linebreak.KindBox {
		return
	}
	w := b.p.SpaceWidth
	b.p.Items = append(b.p.Items, linebreak.Glue(w, w/2, w/3))
}

// opportunity appends a break without a space, e.g. after a hyphen or a
// slash.
func (b *builder) opportunity(word string) {
	if !b.lastIsBox() {
		return
	}
	if isHyphen(word) {
		b.p.Items = append(b.p.Items, linebreak.Penalty(0, b.opts.HyphenPenalty, true))
		return
	}
	b.p.Items = append(b.p.Items, linebreak.Penalty(0, 0, false))
}

// forced ends the current line with finishing glue and a forced break.
func (b *builder) forced() {
	if n := len(b.p.Items); n > 0 && b.p.Items[n-1].Kind == linebreak.KindGlue {
		b.p.Items = b.p.Items[:n-1]
	}
	b.p.Items = append(b.p.Items,
		linebreak.Glue(0, b.opts.FinishingStretch, 0),
		linebreak.ForcedBreak(),
	)
}

// finish terminates the paragraph unless it already ends with a forced break.
func (b *builder) finish() {
	if n := len(b.p.Items); n > 0 && b.p.Items[n-1].IsForcedBreak() {
		return
	}
	b.forced()
}

func (b *builder) lastIsBox() bool {
	n := len(b.p.Items)
	return n > 0 && b.p.Items[n-1].Kind == linebreak.KindBox
}

func isHyphen(word string) bool {
	return strings.HasSuffix(word, "-") || strings.HasSuffix(word, "\u2010")
}
