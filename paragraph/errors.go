package paragraph

import "errors"

var (
	// ErrEmptyFontData is returned when a measurer is created from no data.
	ErrEmptyFontData = errors.New("paragraph: empty font data")

	// ErrNoMeasurer is returned by Build when the measurer is nil.
	ErrNoMeasurer = errors.New("paragraph: nil measurer")
)
