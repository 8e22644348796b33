// Package paragraph turns plain text into line-breaking items and lays the
// result out as justified lines.
//
// Build normalises the text to NFC, finds line-break opportunities with the
// Unicode line breaking algorithm and measures every fragment with a
// Measurer. Inter-word spaces become glue that stretches by half and shrinks
// by a third of its width, soft hyphens and explicit hyphens become flagged
// penalties, and the paragraph ends with finishing glue and a forced break.
//
// Layout runs the tiered optimal breaker, falls back to first-fit when it
// finds nothing, and distributes each line's slack between word and letter
// spacing:
//
//	m, _ := paragraph.NewFontMeasurer(goregular.TTF, 11)
//	p, _ := paragraph.Build(text, m, paragraph.DefaultOptions())
//	lines := paragraph.Layout(p, []float64{320}, linebreak.DefaultConfig())
package paragraph
