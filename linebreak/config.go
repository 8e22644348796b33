package linebreak

// Config holds the parameters of the line breaker.
type Config struct {
	// Tolerance is the largest |r| a non-forced break may have.
	Tolerance float64

	// LooseTolerance is the tolerance of the last tier tried by FindBreaksTiered.
	LooseTolerance float64

	// HyphenPenalty is the penalty callers attach to hyphenation points.
	// The breaker itself reads penalties from the items.
	HyphenPenalty float64

	// ConsecutiveHyphenDemerits is added when two consecutive lines end at
	// flagged penalties.
	ConsecutiveHyphenDemerits float64

	// FitnessDemerits is added when adjacent lines differ by more than one
	// fitness class.
	FitnessDemerits float64

	// EnableHyphenation allows breaks at flagged penalties. When false only
	// forced flagged penalties remain breakpoints.
	EnableHyphenation bool

	// MinLetterSpacingFraction and MaxLetterSpacingFraction bound the extra
	// letter spacing of ComputeBlendedSpacing, as fractions of the font size.
	MinLetterSpacingFraction float64
	MaxLetterSpacingFraction float64
}

// DefaultConfig returns the configuration used for body text.
func DefaultConfig() Config {
	return Config{
		Tolerance:                 1.0,
		LooseTolerance:            4.0,
		HyphenPenalty:             50,
		ConsecutiveHyphenDemerits: 3000,
		FitnessDemerits:           100,
		EnableHyphenation:         true,
		MinLetterSpacingFraction:  -0.02,
		MaxLetterSpacingFraction:  0.05,
	}
}
