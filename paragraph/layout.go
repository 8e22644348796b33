package paragraph

import (
	"unicode/utf8"

	"github.com/gogpu/folio"
	"github.com/gogpu/folio/linebreak"
)

// Placed is a word positioned on a line.
type Placed struct {
	Text string
	// X is the offset of the word from the start of the line.
	X     float64
	Width float64
}

// Line is one laid-out line of a paragraph.
type Line struct {
	Words []Placed

	// Width is the target width of the line.
	Width float64
	// Advance is the position after the last word, letter spacing included.
	Advance float64

	Ratio   float64
	Fitness linebreak.Fitness
	Spacing linebreak.Spacing

	// Hyphenated is true when the line ends at a hyphen break.
	Hyphenated bool
	// Emergency is true when the line may be overfull.
	Emergency bool
}

// Layout breaks p into lines of the given widths and positions every word.
//
// It uses linebreak.FindBreaksTiered and falls back to linebreak.FirstFit
// when the optimal breaker finds no breaks. The slack of each line is split
// between word and letter spacing with linebreak.ComputeBlendedSpacing.
func Layout(p *Paragraph, lineWidths []float64, cfg linebreak.Config) []Line {
	if p == nil || len(p.Items) == 0 || len(lineWidths) == 0 {
		return nil
	}

	res := linebreak.FindBreaksTiered(p.Items, lineWidths, cfg)
	switch {
	case len(res.Breaks) == 0:
		res = linebreak.FirstFit(p.Items, lineWidths)
		folio.Logger().Warn("paragraph: no feasible breaks, using first fit",
			"items", len(p.Items), "lines", len(res.Breaks))
	case !res.Optimal:
		folio.Logger().Debug("paragraph: emergency breaks used", "lines", len(res.Breaks))
	}

	spans := res.Lines(p.Items)
	lines := make([]Line, 0, len(spans))
	for k, span := range spans {
		width := lineWidths[min(k, len(lineWidths)-1)]
		lines = append(lines, p.place(span, res.Breaks[k], width, cfg))
	}
	return lines
}

// element is a word or a gap inside a line before positioning.
type element struct {
	word  Placed
	runes int
	gap   bool
	width float64
}

// place positions the material of one line.
func (p *Paragraph) place(span linebreak.Span, b linebreak.Breakpoint, width float64, cfg linebreak.Config) Line {
	ln := Line{
		Width:     width,
		Ratio:     b.Ratio,
		Fitness:   b.Fitness,
		Emergency: b.Emergency,
	}
	if span.End <= span.Start {
		return ln
	}

	end := span.End - 1 // the break item
	var (
		elems    []element
		gaps     int
		chars    int
		lastWord = -1
	)
	for j := span.Start; j < end; j++ {
		it := p.Items[j]
		switch it.Kind {
		case linebreak.KindBox:
			frag := p.Fragments[it.WordIndex]
			n := utf8.RuneCountInString(frag.Text)
			chars += n
			if k := len(elems) - 1; k >= 0 && !elems[k].gap && lastWord == frag.Word {
				// Soft-hyphen pieces of a word that was not broken.
				elems[k].word.Text += frag.Text
				elems[k].word.Width += frag.Width
				elems[k].runes += n
				continue
			}
			elems = append(elems, element{word: Placed{Text: frag.Text, Width: frag.Width}, runes: n})
			lastWord = frag.Word
		case linebreak.KindGlue:
			if it.Width > 0 {
				elems = append(elems, element{gap: true, width: it.Width})
				gaps++
			}
			lastWord = -1
		}
	}

	if brk := p.Items[end]; brk.Kind == linebreak.KindPenalty && brk.Flagged {
		ln.Hyphenated = true
		if brk.Width > 0 {
			if k := len(elems) - 1; k >= 0 && !elems[k].gap {
				elems[k].word.Text += "-"
				elems[k].word.Width += brk.Width
				elems[k].runes++
				chars++
			}
		}
	}

	ln.Spacing = linebreak.ComputeBlendedSpacing(b.Ratio, p.SpaceWidth, gaps, chars, p.FontSize, cfg)

	x := 0.0
	for _, e := range elems {
		if e.gap {
			x += e.width + ln.Spacing.Word
			continue
		}
		w := e.word
		w.X = x
		ln.Words = append(ln.Words, w)
		x += w.Width + ln.Spacing.Letter*float64(e.runes)
	}
	ln.Advance = x
	return ln
}
