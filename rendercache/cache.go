package rendercache

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/folio"
	"github.com/gogpu/folio/internal/cache"
)

// Cache renders document pages in the background and keeps the results in a
// byte-bounded LRU table.
//
// Cache is safe for concurrent use. Close must be called to stop its
// goroutines.
type Cache struct {
	cfg config

	// docMu guards doc and serialises every call into it.
	docMu      sync.Mutex
	doc        Document
	generation atomic.Uint64 // written with docMu held

	queue *pendingQueue
	table *cache.Cache[Key, *folio.Pixmap]

	// deliverMu is held while a result is checked, inserted and announced.
	// SetDocument takes it as a barrier after bumping the generation.
	deliverMu sync.Mutex
	listener  func(page int)

	wake    chan struct{}
	results chan result
	done    chan struct{}
	wg      sync.WaitGroup
	closed  atomic.Bool

	renders    atomic.Uint64
	failed     atomic.Uint64
	dropped    atomic.Uint64
	superseded atomic.Uint64
}

// result is a finished render on its way to the table.
type result struct {
	key        Key
	pixmap     *folio.Pixmap
	generation uint64
}

// Stats contains cache statistics.
type Stats struct {
	// Entries is the number of cached rasters.
	Entries int
	// MemoryUsage is the summed byte size of the cached rasters.
	MemoryUsage int64
	// MemoryLimit is the byte budget; 0 means unlimited.
	MemoryLimit int64
	// Pending is the number of pages waiting for the worker.
	Pending int
	// Hits and Misses count lookups through RequestPixmap and CachedPixmap.
	Hits   uint64
	Misses uint64
	// Renders is the number of RenderPage calls.
	Renders uint64
	// Failed is the number of renders that returned no raster.
	Failed uint64
	// Dropped is the number of rasters discarded because the document
	// changed while they were rendered.
	Dropped uint64
	// Superseded is the number of pending requests replaced by a newer
	// request for the same page.
	Superseded uint64
	// Evictions is the number of rasters removed to honor the memory limit.
	Evictions uint64
	// Generation is the current document generation.
	Generation uint64
}

// New creates a cache and starts its worker and delivery goroutines.
func New(opts ...Option) *Cache {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Cache{
		cfg:      cfg,
		queue:    newPendingQueue(cfg.priority),
		table:    cache.New[Key, *folio.Pixmap](cfg.memoryLimit),
		listener: cfg.listener,
		wake:     make(chan struct{}, 1),
		results:  make(chan result, cfg.resultQueue),
		done:     make(chan struct{}),
	}

	c.wg.Add(2)
	go c.worker()
	go c.deliverLoop()
	return c
}

// SetDocument installs doc as the page source; nil uninstalls the current
// one. Pending requests and cached rasters are dropped.
//
// SetDocument blocks until no render is executing on the previous document
// and no delivery of a raster rendered from it is in progress. After it
// returns the previous document is never touched again and the listener
// never fires for rasters rendered from it.
func (c *Cache) SetDocument(doc Document) error {
	if c.closed.Load() {
		return ErrClosed
	}

	dropped := c.queue.clear()

	c.docMu.Lock()
	c.doc = doc
	gen := c.generation.Add(1)
	pages := 0
	if doc != nil {
		pages = doc.NumPages()
	}
	c.docMu.Unlock()

	c.deliverMu.Lock()
	c.table.Clear()
	c.deliverMu.Unlock()

	slogger().Info("rendercache: document installed",
		"generation", gen, "pages", pages, "pending_dropped", dropped)
	return nil
}

// RequestPixmap returns the cached raster for req if present. Otherwise it
// records req as the pending request for its page, replacing any older one,
// wakes the worker and returns false. It never blocks on rendering.
//
// A request for (page, w, h) may be superseded before it is rendered; callers
// check CachedPixmap again when the listener fires for the page.
func (c *Cache) RequestPixmap(req Request) (*folio.Pixmap, bool) {
	if pm, ok := c.table.Get(req.Key()); ok {
		return pm, true
	}
	if !req.valid() || c.closed.Load() {
		return nil, false
	}

	if c.queue.put(req) {
		c.superseded.Add(1)
	}
	c.signal()
	return nil, false
}

// CachedPixmap returns the cached raster for (page, width, height) and marks
// it most recently used.
//
// The returned Pixmap must be treated as read-only. It stays valid after the
// entry is evicted.
func (c *Cache) CachedPixmap(page, width, height int) (*folio.Pixmap, bool) {
	return c.table.Get(Key{Page: page, Width: width, Height: height})
}

// InvalidatePage drops every cached raster of page.
func (c *Cache) InvalidatePage(page int) {
	n := c.table.DeleteFunc(func(k Key) bool { return k.Page == page })
	if n > 0 {
		slogger().Debug("rendercache: page invalidated", "page", page, "entries", n)
	}
}

// InvalidateAll drops every cached raster.
func (c *Cache) InvalidateAll() {
	c.table.Clear()
}

// SetMemoryLimit changes the byte budget and immediately evicts least
// recently used rasters until the table fits. A value of 0 disables
// eviction.
func (c *Cache) SetMemoryLimit(bytes int64) {
	if n := c.table.SetLimit(bytes); n > 0 {
		slogger().Debug("rendercache: evicted after limit change",
			"limit", bytes, "evicted", n, "usage", c.table.Size())
	}
}

// MemoryLimit returns the byte budget.
func (c *Cache) MemoryLimit() int64 {
	return c.table.Limit()
}

// MemoryUsage returns the summed byte size of the cached rasters.
func (c *Cache) MemoryUsage() int64 {
	return c.table.Size()
}

// Len returns the number of cached rasters.
func (c *Cache) Len() int {
	return c.table.Len()
}

// Generation returns the number of SetDocument calls so far.
func (c *Cache) Generation() uint64 {
	return c.generation.Load()
}

// SetFocusPage sets the page PriorityNearest renders around, typically the
// page in the middle of the viewport. It has no effect with PriorityFIFO.
func (c *Cache) SetFocusPage(page int) {
	c.queue.setFocus(page)
}

// Stats returns cache statistics.
func (c *Cache) Stats() Stats {
	ts := c.table.Stats()
	return Stats{
		Entries:     ts.Len,
		MemoryUsage: ts.Size,
		MemoryLimit: ts.Limit,
		Pending:     c.queue.len(),
		Hits:        ts.Hits,
		Misses:      ts.Misses,
		Renders:     c.renders.Load(),
		Failed:      c.failed.Load(),
		Dropped:     c.dropped.Load(),
		Superseded:  c.superseded.Load(),
		Evictions:   ts.Evictions,
		Generation:  c.generation.Load(),
	}
}

// Close stops the worker and delivery goroutines and waits for them,
// including a render in progress. Rasters finished but not yet delivered are
// discarded. The installed document is released.
// Close is safe to call multiple times.
func (c *Cache) Close() {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}

	close(c.done)
	c.wg.Wait()

	c.queue.clear()
	c.docMu.Lock()
	c.doc = nil
	c.docMu.Unlock()

	slogger().Info("rendercache: closed", "renders", c.renders.Load())
}

// deliverLoop inserts finished rasters on a single goroutine so that the
// listener always runs in the same context.
func (c *Cache) deliverLoop() {
	defer c.wg.Done()

	for {
		select {
		case <-c.done:
			return
		case res := <-c.results:
			c.deliver(res)
		}
	}
}

// deliver checks, inserts and announces one finished render.
func (c *Cache) deliver(res result) {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	if res.pixmap == nil {
		c.failed.Add(1)
		slogger().Warn("rendercache: render failed", "page", res.key.Page,
			"width", res.key.Width, "height", res.key.Height)
		return
	}
	if res.generation != c.generation.Load() {
		c.dropped.Add(1)
		slogger().Debug("rendercache: stale render dropped", "page", res.key.Page,
			"generation", res.generation)
		return
	}

	if n := c.table.Set(res.key, res.pixmap); n > 0 {
		slogger().Debug("rendercache: evicted", "entries", n, "usage", c.table.Size())
	}
	if c.listener != nil {
		c.listener(res.key.Page)
	}
}
