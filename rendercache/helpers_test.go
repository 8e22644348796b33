package rendercache

import (
	"image/color"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gogpu/folio"
	"github.com/stretchr/testify/require"
)

// renderCall records the arguments of one RenderPage call.
type renderCall struct {
	page          int
	xres, yres    float64
	width, height int
}

// fakeDoc is a Document that paints every page in one color and records
// its calls.
type fakeDoc struct {
	pages  int
	pageW  float64
	pageH  float64
	fill   color.RGBA
	failOn map[int]bool

	// gate, when set, blocks RenderPage until it is closed; started receives
	// the page number when a render begins.
	gate    chan struct{}
	started chan int
	delay   time.Duration

	mu    sync.Mutex
	calls []renderCall

	destroyed    atomic.Bool
	afterDestroy atomic.Int32
	inRender     atomic.Int32
	overlapping  atomic.Int32
}

func newFakeDoc(pages int, fill color.RGBA) *fakeDoc {
	return &fakeDoc{
		pages: pages,
		pageW: 612,
		pageH: 792,
		fill:  fill,
	}
}

func (d *fakeDoc) NumPages() int {
	d.touch()
	return d.pages
}

func (d *fakeDoc) PageSize(int) (float64, float64) {
	d.touch()
	return d.pageW, d.pageH
}

func (d *fakeDoc) RenderPage(page int, xres, yres float64, width, height int) *folio.Pixmap {
	d.touch()
	if d.inRender.Add(1) > 1 {
		d.overlapping.Add(1)
	}
	defer d.inRender.Add(-1)

	d.mu.Lock()
	d.calls = append(d.calls, renderCall{page: page, xres: xres, yres: yres, width: width, height: height})
	d.mu.Unlock()

	if d.started != nil {
		d.started <- page
	}
	if d.gate != nil {
		<-d.gate
	}
	if d.delay > 0 {
		time.Sleep(d.delay)
	}
	if d.failOn[page] {
		return nil
	}

	pm := folio.NewPixmap(width, height)
	pm.Clear(d.fill)
	return pm
}

// touch records any call that arrives after the owner destroyed the document.
func (d *fakeDoc) touch() {
	if d.destroyed.Load() {
		d.afterDestroy.Add(1)
	}
}

func (d *fakeDoc) renderCalls() []renderCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]renderCall(nil), d.calls...)
}

// notifications collects listener calls.
type notifications struct {
	ch chan int
}

func newNotifications() *notifications {
	return &notifications{ch: make(chan int, 256)}
}

func (n *notifications) listener(page int) {
	n.ch <- page
}

// drain discards notifications already delivered.
func (n *notifications) drain() {
	for {
		select {
		case <-n.ch:
		default:
			return
		}
	}
}

// waitFor blocks until the listener fired for page.
func (n *notifications) waitFor(t *testing.T, page int) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case p := <-n.ch:
			if p == page {
				return
			}
		case <-timeout:
			t.Fatalf("no notification for page %d", page)
		}
	}
}

// newTestCache creates a cache that is closed when the test ends.
func newTestCache(t *testing.T, opts ...Option) *Cache {
	t.Helper()
	c := New(opts...)
	t.Cleanup(c.Close)
	return c
}

// blockWorker occupies the worker with a gated render of page so that
// further requests pile up in the pending queue. The returned function
// releases the gate.
func blockWorker(t *testing.T, c *Cache, doc *fakeDoc, page int) func() {
	t.Helper()
	doc.gate = make(chan struct{})
	doc.started = make(chan int, 64)
	_, ok := c.RequestPixmap(Request{Page: page, Width: 10, Height: 10})
	require.False(t, ok)

	select {
	case p := <-doc.started:
		require.Equal(t, page, p)
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not start rendering")
	}
	var once sync.Once
	return func() { once.Do(func() { close(doc.gate) }) }
}
