package rendercache

import "time"

// signal wakes the worker without blocking. The wake channel has one slot,
// so any number of signals before the worker runs collapse into one.
func (c *Cache) signal() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// worker renders one pending request per wake-up. When requests remain after
// a dispatch it signals itself instead of looping, so requests that arrive
// meanwhile can still replace pending ones.
func (c *Cache) worker() {
	defer c.wg.Done()

	for {
		select {
		case <-c.done:
			return
		case <-c.wake:
		}

		c.dispatch()
		if c.queue.len() > 0 {
			c.signal()
		}
	}
}

// dispatch takes one request from the queue and renders it with the
// document lock held.
func (c *Cache) dispatch() {
	req, ok := c.queue.take()
	if !ok {
		return
	}

	res, ok := c.render(req)
	if !ok {
		return
	}

	select {
	case c.results <- res:
	case <-c.done:
	}
}

// render calls into the document. The document lock is released before the
// result is handed to the delivery goroutine.
func (c *Cache) render(req Request) (result, bool) {
	c.docMu.Lock()
	defer c.docMu.Unlock()

	doc := c.doc
	gen := c.generation.Load()
	if doc == nil {
		return result{}, false
	}
	if req.Page >= doc.NumPages() {
		slogger().Debug("rendercache: page out of range", "page", req.Page)
		return result{}, false
	}
	pageW, pageH := doc.PageSize(req.Page)
	if pageW <= 0 || pageH <= 0 {
		slogger().Warn("rendercache: page has no size", "page", req.Page)
		return result{}, false
	}

	xres, yres := req.Resolution(pageW, pageH)
	width, height := req.PhysicalSize()

	start := time.Now()
	pm := doc.RenderPage(req.Page, xres, yres, width, height)
	c.renders.Add(1)
	if pm != nil {
		pm.SetDevicePixelRatio(req.dpr())
	}

	slogger().Debug("rendercache: page rendered", "page", req.Page,
		"width", width, "height", height, "dpr", req.dpr(),
		"generation", gen, "elapsed", time.Since(start))
	return result{key: req.Key(), pixmap: pm, generation: gen}, true
}
