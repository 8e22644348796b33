// Package rendercache provides an asynchronous, memory-bounded cache of page
// rasters for paginated documents.
//
// A Cache owns one worker goroutine that renders pages from the installed
// Document, one delivery goroutine that inserts finished rasters and notifies
// the listener, and a byte-bounded LRU table keyed by (page, width, height).
//
// # Requests
//
// RequestPixmap never blocks on rendering. A cache hit returns the raster
// immediately; a miss records the request as the pending entry for its page
// and wakes the worker. Only the latest pending request per page is kept, so
// a burst of requests at different sizes during zoom renders just the last
// one. Callers re-check CachedPixmap when the listener fires.
//
// # Document swaps
//
// SetDocument clears the pending queue, waits until no render is executing
// on the previous document, installs the new one and bumps the generation.
// Results tagged with an older generation are discarded, so once SetDocument
// returns the previous document may be freed and the listener never reports
// a page rendered from it.
//
// # Locks
//
// The document lock is held for the whole render call. The queue and table
// locks are short. The document lock and the table lock are never held at
// the same time.
//
// # Listener
//
// The listener runs on the delivery goroutine, one call at a time, after the
// raster has been inserted and eviction has run. It may call any read or
// request method but must not call SetDocument or Close synchronously.
package rendercache
