package canvasdoc

import (
	"fmt"
	"io"

	"github.com/gogpu/folio"
	"github.com/gogpu/folio/rendercache"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"
)

// ptPerMM converts canvas millimetres to points.
const ptPerMM = 72 / 25.4

var _ rendercache.Document = (*Document)(nil)

// Document is an immutable sequence of canvas pages.
//
// RenderPage may be called from the render cache worker while the owner
// holds the Document; pages are never modified after New.
type Document struct {
	pages []*canvas.Canvas
}

// New creates a document from pages.
func New(pages []*canvas.Canvas) (*Document, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	return &Document{pages: append([]*canvas.Canvas(nil), pages...)}, nil
}

// NumPages returns the number of pages.
func (d *Document) NumPages() int {
	return len(d.pages)
}

// PageSize returns the size of page in points, or zero for a page out of range.
func (d *Document) PageSize(page int) (width, height float64) {
	if page < 0 || page >= len(d.pages) {
		return 0, 0
	}
	c := d.pages[page]
	return c.W * ptPerMM, c.H * ptPerMM
}

// RenderPage rasterizes page at xres dots per inch and resamples the result
// to exactly width×height pixels. It returns nil for a page out of range or
// an empty target.
func (d *Document) RenderPage(page int, xres, yres float64, width, height int) (pm *folio.Pixmap) {
	if page < 0 || page >= len(d.pages) || width <= 0 || height <= 0 || xres <= 0 {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			slogger().Warn("canvasdoc: rasterizer failed", "page", page, "error", r)
			pm = nil
		}
	}()

	img := rasterizer.Draw(d.pages[page], canvas.DPI(xres), canvas.DefaultColorSpace)
	pm = folio.FromImage(img)
	if pm.Width() != width || pm.Height() != height {
		slogger().Debug("canvasdoc: resampling page",
			"page", page, "from", fmt.Sprintf("%dx%d", pm.Width(), pm.Height()),
			"to", fmt.Sprintf("%dx%d", width, height), "yres", yres)
		pm = pm.Scaled(width, height)
	}
	return pm
}

// WritePDF writes every page to w as a PDF document.
func (d *Document) WritePDF(w io.Writer, title string) error {
	first := d.pages[0]
	writer := pdf.New(w, first.W, first.H, nil)
	writer.SetInfo(title, "", "", "", "folio")
	for i, c := range d.pages {
		if i > 0 {
			writer.NewPage(c.W, c.H)
		}
		c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("canvasdoc: write pdf: %w", err)
	}
	return nil
}
