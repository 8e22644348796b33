package linebreak

import "math"

// Fitness classifies how much a line had to stretch or shrink.
type Fitness uint8

const (
	// Tight lines shrink by more than half their shrinkability.
	Tight Fitness = iota
	// Normal lines have |r| ≤ 0.5.
	Normal
	// Loose lines stretch by up to their full stretchability.
	Loose
	// VeryLoose lines stretch beyond their stretchability.
	VeryLoose
)

// String returns the string representation of the fitness class.
func (f Fitness) String() string {
	switch f {
	case Tight:
		return "Tight"
	case Normal:
		return "Normal"
	case Loose:
		return "Loose"
	case VeryLoose:
		return "VeryLoose"
	default:
		return "Unknown"
	}
}

// Classify returns the fitness class of adjustment ratio r.
// +Inf, which only reaches the classifier for forced breaks on lines without
// stretch, is VeryLoose.
func Classify(r float64) Fitness {
	switch {
	case r < -0.5:
		return Tight
	case r <= 0.5:
		return Normal
	case r <= 1.0:
		return Loose
	default:
		return VeryLoose
	}
}

// fitnessGap returns the distance between two fitness classes.
func fitnessGap(a, b Fitness) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

// AdjustmentRatio returns how much the glue of a line must stretch (r > 0) or
// shrink (r < 0) to turn its natural width into the target width.
// shortfall is target minus natural width.
func AdjustmentRatio(shortfall, stretch, shrink float64) float64 {
	switch {
	case math.Abs(shortfall) < ratioEpsilon:
		return 0
	case shortfall > 0:
		if stretch > 0 {
			return shortfall / stretch
		}
		return math.Inf(1)
	default:
		if shrink > 0 {
			return shortfall / shrink
		}
		return math.Inf(-1)
	}
}

// Badness returns 100·|r|³. Infinite ratios have badness infBad.
func Badness(r float64) float64 {
	if math.IsInf(r, 0) {
		return infBad
	}
	a := math.Abs(r)
	return 100 * a * a * a
}
