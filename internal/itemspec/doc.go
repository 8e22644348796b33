// Package itemspec parses a small text format for line-breaking input.
//
// Each line holds one statement:
//
//	# a comment
//	width 120 100        line widths; the last one repeats
//	box 30 word 0        a box of width 30 belonging to word 0
//	glue 6 3 2           width, stretch, shrink
//	penalty 5 50 flagged width, penalty, optional hyphen flag
//	penalty 0 -inf       penalties may be inf or -inf
//	forced               shorthand for penalty 0 -inf
//
// A box without an explicit word index gets the number of boxes before it.
package itemspec
