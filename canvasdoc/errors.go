package canvasdoc

import "errors"

var (
	// ErrNoPages is returned when a document would have no pages.
	ErrNoPages = errors.New("canvasdoc: document has no pages")

	// ErrFontLoad is returned when font data cannot be loaded.
	ErrFontLoad = errors.New("canvasdoc: cannot load font")
)
