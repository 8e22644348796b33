// Package folio is the document-rendering engine behind a paginated
// Markdown reader.
//
// # Overview
//
// The engine is split into two independent pipeline stages:
//
//   - Reflow: [github.com/gogpu/folio/linebreak] chooses line breaks for a
//     paragraph with the Knuth–Plass total-fit algorithm, and
//     [github.com/gogpu/folio/paragraph] turns text into the box/glue/penalty
//     stream the breaker consumes and justifies the resulting lines.
//   - Display: [github.com/gogpu/folio/rendercache] rasterises pages of a
//     document on a background worker, coalesces requests per page, and keeps
//     the rasters in a memory-bounded LRU cache.
//
// [github.com/gogpu/folio/canvasdoc] joins the two: it composes laid-out
// paragraphs onto pages and serves them to the render cache as a document.
//
// The two stages share no state. The root package holds the raster type they
// exchange with their callers ([Pixmap]) and the logger used by all
// sub-packages.
//
// # Quick Start
//
//	cache := rendercache.New(rendercache.WithListener(func(page int) {
//	    // repaint page
//	}))
//	defer cache.Close()
//
//	_ = cache.SetDocument(doc)
//	if pm, ok := cache.RequestPixmap(rendercache.Request{Page: 0, Width: 600, Height: 800, DevicePixelRatio: 2}); ok {
//	    _ = pm.SavePNG("page0.png")
//	}
//
// # Logging
//
// folio is silent by default. Call [SetLogger] to route diagnostics to a
// [log/slog] logger.
package folio

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
