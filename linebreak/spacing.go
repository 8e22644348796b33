package linebreak

import "math"

// Stretch and shrink of inter-word glue relative to its natural width,
// as assumed when slack is redistributed.
const (
	wordStretchRatio = 0.5
	wordShrinkRatio  = 0.33
)

// Spacing is the extra spacing applied to one justified line, in page units.
type Spacing struct {
	// Word is added to every inter-word gap.
	Word float64
	// Letter is added after every character.
	Letter float64
}

// ComputeBlendedSpacing distributes the slack of a line with adjustment ratio
// r between word spacing and letter spacing.
//
// Two thirds of the slack go to word gaps and one third to letters. The
// per-character share is clamped to
// [cfg.MinLetterSpacingFraction·fontSize, cfg.MaxLetterSpacingFraction·fontSize]
// and whatever the clamp removes is returned to the word gaps.
//
// A ratio with |r| < 1e-10, a non-finite ratio, or a line without word gaps
// yields zero spacing.
func ComputeBlendedSpacing(r, naturalWordGlueWidth float64, wordGapCount, charCount int, fontSize float64, cfg Config) Spacing {
	if math.Abs(r) < 1e-10 || math.IsInf(r, 0) || math.IsNaN(r) || wordGapCount <= 0 {
		return Spacing{}
	}

	gaps := float64(wordGapCount)
	var slack float64
	if r > 0 {
		slack = r * wordStretchRatio * naturalWordGlueWidth * gaps
	} else {
		slack = r * wordShrinkRatio * naturalWordGlueWidth * gaps
	}

	word := slack * 2 / 3
	letter := slack / 3

	var perChar float64
	if charCount > 0 {
		perChar = letter / float64(charCount)
		minLS := cfg.MinLetterSpacingFraction * fontSize
		maxLS := cfg.MaxLetterSpacingFraction * fontSize
		perChar = math.Max(minLS, math.Min(maxLS, perChar))
		word += letter - perChar*float64(charCount)
	} else {
		word += letter
	}

	return Spacing{
		Word:   word / gaps,
		Letter: perChar,
	}
}
