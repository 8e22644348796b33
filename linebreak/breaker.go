package linebreak

import (
	"math"
	"sort"
)

const (
	// infBad is the badness of a line whose ratio is infinite.
	infBad = 10000.0

	// emergencyDemerits is added to every emergency break so that any
	// feasible solution dominates it.
	emergencyDemerits = 1e10

	// ratioEpsilon is the shortfall treated as an exact fit.
	ratioEpsilon = 1e-9
)

// Breakpoint is the end of one line.
type Breakpoint struct {
	// ItemIndex is the exclusive end of the line: one past the break item.
	ItemIndex int

	// Ratio is the adjustment ratio of the line, in [-1, +Inf).
	Ratio float64

	// Fitness is the fitness class of the line.
	Fitness Fitness

	// TotalDemerits is the cumulative demerits of the paragraph up to and
	// including this line.
	TotalDemerits float64

	// Emergency is true when the break was synthesised because no feasible
	// break existed; the line may be overfull.
	Emergency bool
}

// Result is the outcome of a line-breaking run.
type Result struct {
	// Breaks holds one breakpoint per line, in order.
	Breaks []Breakpoint

	// Optimal is false when an emergency break was needed, the stream could
	// not be broken at all, or the greedy fallback produced the breaks.
	Optimal bool
}

// Span is the half-open item range [Start, End) of one line.
type Span struct {
	Start int
	End   int
}

// Lines returns the item range of every line with leading glue suppressed.
// items must be the slice the result was computed from.
func (r Result) Lines(items []Item) []Span {
	spans := make([]Span, 0, len(r.Breaks))
	start := skipGlue(items, 0)
	for _, b := range r.Breaks {
		end := min(b.ItemIndex, len(items))
		spans = append(spans, Span{Start: min(start, end), End: end})
		start = skipGlue(items, end)
	}
	return spans
}

// Demerits returns the demerits of a single line with adjustment ratio r that
// ends at item it, following a line of fitness prevFit that ended at a
// flagged penalty when prevFlagged is true.
func Demerits(r float64, it Item, prevFlagged bool, prevFit Fitness, cfg Config) float64 {
	bad := Badness(r)
	p := 0.0
	if it.Kind == KindPenalty {
		p = it.Penalty
	}

	var d float64
	switch {
	case p >= 0:
		d = (1 + bad + p) * (1 + bad + p)
	case p > Forced:
		d = (1+bad)*(1+bad) - p*p
	default:
		d = (1 + bad) * (1 + bad)
	}

	if it.Kind == KindPenalty && it.Flagged && prevFlagged {
		d += cfg.ConsecutiveHyphenDemerits
	}
	if fitnessGap(Classify(r), prevFit) > 1 {
		d += cfg.FitnessDemerits
	}
	return d
}

// node is a feasible breakpoint in the total-fit graph.
type node struct {
	index   int // ItemIndex of the break; 0 for the paragraph start
	start   int // first item of the next line after leading glue
	line    int // number of lines ended at this node
	fitness Fitness
	ratio   float64
	flagged bool

	totalWidth    float64
	totalStretch  float64
	totalShrink   float64
	totalDemerits float64

	emergency bool
	prev      *node
}

// candidateKey groups candidates that are interchangeable for the rest of the
// paragraph: same fitness class and same width for every following line.
type candidateKey struct {
	lineClass int
	fitness   Fitness
}

type candidate struct {
	prev     *node
	ratio    float64
	demerits float64
}

type breaker struct {
	items  []Item
	widths []float64
	cfg    Config
	sums   prefix
}

// FindBreaks returns the breakpoints that minimise the total demerits of the
// paragraph with every line's adjustment ratio within cfg.Tolerance.
//
// lineWidths[i] is the target width of line i; the last entry applies to all
// following lines. When no feasible sequence exists the breaker synthesises
// emergency breaks and clears Result.Optimal. Empty items or lineWidths yield
// an empty, non-optimal result.
func FindBreaks(items []Item, lineWidths []float64, cfg Config) Result {
	if len(items) == 0 || len(lineWidths) == 0 {
		return Result{}
	}
	b := &breaker{
		items:  items,
		widths: lineWidths,
		cfg:    cfg,
		sums:   newPrefix(items),
	}
	return b.run()
}

// lineWidth returns the target width of the zero-based line.
func (b *breaker) lineWidth(line int) float64 {
	if line >= len(b.widths) {
		return b.widths[len(b.widths)-1]
	}
	return b.widths[line]
}

// lineClass maps a line count to the index of the width of the next line.
func (b *breaker) lineClass(line int) int {
	return min(line, len(b.widths)-1)
}

// legal reports whether item i is a breakpoint.
func (b *breaker) legal(i int, prevBox bool) bool {
	it := b.items[i]
	switch it.Kind {
	case KindGlue:
		return prevBox
	case KindPenalty:
		if it.Penalty >= Forbidden {
			return false
		}
		return !it.Flagged || b.cfg.EnableHyphenation || it.Penalty <= Forced
	default:
		return false
	}
}

// ratio computes the adjustment ratio of the line from a to item i.
func (b *breaker) ratio(a *node, i int) float64 {
	width := b.sums.width[i] - a.totalWidth
	stretch := b.sums.stretch[i] - a.totalStretch
	shrink := b.sums.shrink[i] - a.totalShrink
	if it := b.items[i]; it.Kind == KindPenalty {
		width += it.Width
	}
	return AdjustmentRatio(b.lineWidth(a.line)-width, stretch, shrink)
}

// newNode creates the node for a break at item i.
func (b *breaker) newNode(i int, prev *node, r float64, demerits float64) *node {
	start := skipGlue(b.items, i+1)
	it := b.items[i]
	return &node{
		index:         i + 1,
		start:         start,
		line:          prev.line + 1,
		fitness:       Classify(r),
		ratio:         r,
		flagged:       it.Kind == KindPenalty && it.Flagged,
		totalWidth:    b.sums.width[start],
		totalStretch:  b.sums.stretch[start],
		totalShrink:   b.sums.shrink[start],
		totalDemerits: demerits,
		prev:          prev,
	}
}

func (b *breaker) run() Result {
	seed := &node{
		start:   skipGlue(b.items, 0),
		fitness: Normal,
	}
	seed.totalWidth = b.sums.width[seed.start]
	seed.totalStretch = b.sums.stretch[seed.start]
	seed.totalShrink = b.sums.shrink[seed.start]

	active := []*node{seed}
	optimal := true
	prevBox := false

	for i, it := range b.items {
		isLegal := b.legal(i, prevBox)
		switch it.Kind {
		case KindBox:
			prevBox = true
		case KindGlue:
			prevBox = false
		}
		if !isLegal {
			continue
		}

		forced := it.IsForcedBreak()
		candidates := make(map[candidateKey]candidate, 4)
		kept := make([]*node, 0, len(active))
		var removed []*node

		for _, a := range active {
			if a.start > i {
				// The next line of a starts past this item.
				kept = append(kept, a)
				continue
			}
			r := b.ratio(a, i)
			if r < -1 {
				removed = append(removed, a)
				continue
			}
			if forced {
				removed = append(removed, a)
			} else {
				kept = append(kept, a)
			}
			if math.IsInf(r, 1) && !forced {
				continue
			}
			if !math.IsInf(r, 0) && math.Abs(r) > b.cfg.Tolerance {
				continue
			}

			total := a.totalDemerits + Demerits(r, it, a.flagged, a.fitness, b.cfg)
			key := candidateKey{lineClass: b.lineClass(a.line + 1), fitness: Classify(r)}
			if c, ok := candidates[key]; !ok || total < c.demerits {
				candidates[key] = candidate{prev: a, ratio: r, demerits: total}
			}
		}

		active = kept
		for _, key := range sortedKeys(candidates) {
			c := candidates[key]
			active = append(active, b.newNode(i, c.prev, c.ratio, c.demerits))
		}

		if len(active) == 0 {
			pred := bestNode(removed)
			if pred == nil {
				return Result{}
			}
			r := b.ratio(pred, i)
			if r < -1 {
				r = -1
			}
			n := b.newNode(i, pred, r, pred.totalDemerits+emergencyDemerits)
			n.emergency = true
			active = append(active, n)
			optimal = false
		}
	}

	last := b.finalNode(active)
	if last == nil || last == seed {
		return Result{}
	}
	if last.index != len(b.items) {
		optimal = false
	}
	return Result{Breaks: trace(last), Optimal: optimal}
}

// finalNode picks the lowest-demerits node among those that reach furthest
// into the paragraph.
func (b *breaker) finalNode(active []*node) *node {
	var best *node
	for _, n := range active {
		switch {
		case best == nil:
			best = n
		case n.index > best.index:
			best = n
		case n.index == best.index && n.totalDemerits < best.totalDemerits:
			best = n
		}
	}
	return best
}

// bestNode returns the node with the lowest total demerits; ties keep the
// earlier node.
func bestNode(nodes []*node) *node {
	var best *node
	for _, n := range nodes {
		if best == nil || n.totalDemerits < best.totalDemerits {
			best = n
		}
	}
	return best
}

func sortedKeys(m map[candidateKey]candidate) []candidateKey {
	keys := make([]candidateKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].lineClass != keys[j].lineClass {
			return keys[i].lineClass < keys[j].lineClass
		}
		return keys[i].fitness < keys[j].fitness
	})
	return keys
}

// trace walks prev pointers back to the paragraph start.
func trace(last *node) []Breakpoint {
	var breaks []Breakpoint
	for n := last; n.prev != nil; n = n.prev {
		breaks = append(breaks, Breakpoint{
			ItemIndex:     n.index,
			Ratio:         n.ratio,
			Fitness:       n.fitness,
			TotalDemerits: n.totalDemerits,
			Emergency:     n.emergency,
		})
	}
	for i, j := 0, len(breaks)-1; i < j; i, j = i+1, j-1 {
		breaks[i], breaks[j] = breaks[j], breaks[i]
	}
	return breaks
}
