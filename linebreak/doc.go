// Package linebreak chooses line breaks for a paragraph with the Knuth–Plass
// total-fit algorithm.
//
// A paragraph is a sequence of [Item]s: boxes (glyph clusters), glue (elastic
// whitespace) and penalties (optional breakpoints). [FindBreaks] returns the
// breakpoints that minimise the total demerits of the paragraph subject to a
// tolerance on every line's adjustment ratio. [FindBreaksTiered] retries with
// growing tolerances, and [FirstFit] is the greedy fallback for the rare
// paragraph no tier can set.
//
// # Input stream
//
// The caller guarantees that:
//   - the first item is a box or a penalty,
//   - glue is never adjacent to glue,
//   - the stream ends with a forced break ([ForcedBreak]).
//
// # Output
//
// Breakpoint k ends line k. Line k covers items[Breaks[k-1].ItemIndex :
// Breaks[k].ItemIndex], which includes the break item itself; glue at the
// start of a line is suppressed and glue at the end of a line is not drawn.
// [Result.Lines] performs that bookkeeping.
//
// # Spacing
//
// [ComputeBlendedSpacing] distributes a line's slack between word spacing and
// letter spacing once the breaks are known.
//
// All functions in this package are pure and safe for concurrent use.
package linebreak
