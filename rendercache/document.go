package rendercache

import "github.com/gogpu/folio"

// Document is a source of page rasters.
//
// All methods are called with the cache's document lock held, so calls on a
// single Document are serialised. RenderPage may block for as long as it
// needs; a nil result means the render failed.
type Document interface {
	// NumPages returns the number of pages.
	NumPages() int

	// PageSize returns the native size of page in points.
	PageSize(page int) (width, height float64)

	// RenderPage renders page at the given resolution in dots per inch into
	// a raster of width×height physical pixels.
	RenderPage(page int, xres, yres float64, width, height int) *folio.Pixmap
}
