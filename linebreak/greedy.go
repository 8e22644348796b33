package linebreak

// FirstFit breaks the paragraph greedily: every line takes as much material
// as fits at its natural width, breaking at the last legal breakpoint before
// the overflow. A box wider than the line is placed alone on an overfull line.
//
// The result is never marked optimal. Demerits are accumulated with
// DefaultConfig so that they can be compared with FindBreaks results.
func FirstFit(items []Item, lineWidths []float64) Result {
	if len(items) == 0 || len(lineWidths) == 0 {
		return Result{}
	}

	cfg := DefaultConfig()
	sums := newPrefix(items)
	lineWidth := func(line int) float64 {
		return lineWidths[min(line, len(lineWidths)-1)]
	}

	var breaks []Breakpoint
	start := skipGlue(items, 0)
	lastBreak := -1
	prevBox := false
	prevFit := Normal
	prevFlagged := false
	total := 0.0

	natural := func(i int) float64 {
		w := sums.width[i] - sums.width[start]
		if items[i].Kind == KindPenalty {
			w += items[i].Width
		}
		return w
	}

	// emit closes the line at break item i; the line's material ends before
	// index end.
	emit := func(i, end int) {
		w := sums.width[end] - sums.width[start]
		if end == i && items[i].Kind == KindPenalty {
			w += items[i].Width
		}
		target := lineWidth(len(breaks))
		r := AdjustmentRatio(target-w,
			sums.stretch[end]-sums.stretch[start],
			sums.shrink[end]-sums.shrink[start])
		if r < -1 {
			r = -1
		}
		total += Demerits(r, items[i], prevFlagged, prevFit, cfg)
		fit := Classify(r)
		breaks = append(breaks, Breakpoint{
			ItemIndex:     i + 1,
			Ratio:         r,
			Fitness:       fit,
			TotalDemerits: total,
		})
		prevFit = fit
		prevFlagged = items[i].Kind == KindPenalty && items[i].Flagged
		start = skipGlue(items, i+1)
		lastBreak = -1
	}

	for i, it := range items {
		legal := false
		switch it.Kind {
		case KindBox:
			prevBox = true
		case KindGlue:
			legal = prevBox
			prevBox = false
		case KindPenalty:
			legal = it.Penalty < Forbidden
		}
		if !legal || start > i {
			continue
		}

		if natural(i) > lineWidth(len(breaks)) && lastBreak >= start {
			emit(lastBreak, lastBreak)
		}
		if start > i {
			continue
		}

		switch {
		case it.IsForcedBreak():
			emit(i, i)
		case natural(i) <= lineWidth(len(breaks)):
			lastBreak = i
		default:
			// Nothing fits: the material since start is a single unbreakable run.
			emit(i, i)
		}
	}

	if start < len(items) {
		// Unterminated stream: close the last line at the final item.
		emit(len(items)-1, len(items))
	}
	return Result{Breaks: breaks}
}
