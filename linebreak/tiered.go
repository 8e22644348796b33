package linebreak

// tolerance tiers tried by FindBreaksTiered before the configured loose
// tolerance.
var tieredTolerances = [...]float64{1.0, 2.0}

// FindBreaksTiered runs FindBreaks with growing tolerances: 1.0, then 2.0,
// then base.LooseTolerance. The first two tiers only count when they produce
// an optimal result; the loose tier accepts any non-empty result. When every
// tier fails the result is empty and non-optimal, and the caller is expected
// to fall back to FirstFit.
func FindBreaksTiered(items []Item, lineWidths []float64, base Config) Result {
	for _, tol := range tieredTolerances {
		cfg := base
		cfg.Tolerance = tol
		if res := FindBreaks(items, lineWidths, cfg); len(res.Breaks) > 0 && res.Optimal {
			return res
		}
	}

	cfg := base
	cfg.Tolerance = base.LooseTolerance
	if res := FindBreaks(items, lineWidths, cfg); len(res.Breaks) > 0 {
		return res
	}
	return Result{}
}
