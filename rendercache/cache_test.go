package rendercache

import (
	"image/color"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

func TestRequestPixmapRendersAndCaches(t *testing.T) {
	n := newNotifications()
	c := newTestCache(t, WithListener(n.listener))
	doc := newFakeDoc(3, red)
	require.NoError(t, c.SetDocument(doc))

	req := Request{Page: 1, Width: 306, Height: 396, DevicePixelRatio: 2}
	pm, ok := c.RequestPixmap(req)
	assert.False(t, ok)
	assert.Nil(t, pm)

	n.waitFor(t, 1)

	pm, ok = c.CachedPixmap(1, 306, 396)
	require.True(t, ok)
	assert.Equal(t, 612, pm.Width())
	assert.Equal(t, 792, pm.Height())
	assert.Equal(t, 2.0, pm.DevicePixelRatio())

	hit, ok := c.RequestPixmap(req)
	assert.True(t, ok)
	assert.Same(t, pm, hit)

	calls := doc.renderCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, 1, calls[0].page)
	assert.InDelta(t, 72.0, calls[0].xres, 1e-9)
	assert.InDelta(t, 72.0, calls[0].yres, 1e-9)
	assert.Equal(t, 612, calls[0].width)
	assert.Equal(t, 792, calls[0].height)
}

func TestRequestPixmapCoalescesLatestWins(t *testing.T) {
	n := newNotifications()
	c := newTestCache(t, WithListener(n.listener))
	doc := newFakeDoc(4, red)
	require.NoError(t, c.SetDocument(doc))

	release := blockWorker(t, c, doc, 3)
	defer release()

	for _, size := range []int{100, 200, 300} {
		_, ok := c.RequestPixmap(Request{Page: 0, Width: size, Height: size})
		require.False(t, ok)
	}
	assert.Equal(t, uint64(2), c.Stats().Superseded)
	release()

	n.waitFor(t, 0)

	var page0 []renderCall
	for _, call := range doc.renderCalls() {
		if call.page == 0 {
			page0 = append(page0, call)
		}
	}
	require.Len(t, page0, 1)
	assert.Equal(t, 300, page0[0].width)
	assert.Equal(t, 300, page0[0].height)

	_, ok := c.CachedPixmap(0, 100, 100)
	assert.False(t, ok, "superseded size must not be cached")
	_, ok = c.CachedPixmap(0, 300, 300)
	assert.True(t, ok)
}

func TestSetDocumentGenerationSafety(t *testing.T) {
	var (
		swapped  atomic.Bool
		stale    atomic.Int32
		notified = newNotifications()
	)
	listener := func(page int) {
		if swapped.Load() {
			// Only page 3 is requested from the new document.
			if page != 3 {
				stale.Add(1)
			}
		}
		notified.listener(page)
	}

	c := newTestCache(t, WithListener(listener))
	docA := newFakeDoc(10, red)
	docA.delay = time.Millisecond
	docB := newFakeDoc(10, blue)

	require.NoError(t, c.SetDocument(docA))
	for p := range 10 {
		c.RequestPixmap(Request{Page: p, Width: 20, Height: 20})
	}

	require.NoError(t, c.SetDocument(docB))
	swapped.Store(true)
	docA.destroyed.Store(true)

	assert.Equal(t, 0, c.Len(), "rasters of the old document must be gone")
	assert.Equal(t, uint64(2), c.Generation())
	notified.drain()

	c.RequestPixmap(Request{Page: 3, Width: 20, Height: 20})
	notified.waitFor(t, 3)

	// Give stragglers from document A a chance to show up.
	time.Sleep(20 * time.Millisecond)

	assert.Zero(t, docA.afterDestroy.Load(), "old document used after SetDocument returned")
	assert.Zero(t, stale.Load(), "listener fired for a page of the old document")
	assert.Equal(t, 1, c.Len())

	pm, ok := c.CachedPixmap(3, 20, 20)
	require.True(t, ok)
	r, g, b, _ := pm.At(0, 0).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0xffff}, [3]uint32{r, g, b})
}

func TestSetDocumentWaitsForRender(t *testing.T) {
	c := newTestCache(t)
	doc := newFakeDoc(2, red)
	require.NoError(t, c.SetDocument(doc))
	release := blockWorker(t, c, doc, 0)
	defer release()

	swapped := make(chan struct{})
	go func() {
		_ = c.SetDocument(nil)
		close(swapped)
	}()

	select {
	case <-swapped:
		t.Fatal("SetDocument returned while a render was executing")
	case <-time.After(30 * time.Millisecond):
	}

	release()
	select {
	case <-swapped:
	case <-time.After(5 * time.Second):
		t.Fatal("SetDocument did not return after the render finished")
	}
	assert.Equal(t, 0, c.Len())
}

func TestLRUEviction(t *testing.T) {
	n := newNotifications()
	c := newTestCache(t, WithListener(n.listener))
	require.NoError(t, c.SetDocument(newFakeDoc(4, red)))

	const entrySize = 10 * 10 * 4
	c.SetMemoryLimit(3 * entrySize)

	insert := func(page int) {
		t.Helper()
		c.RequestPixmap(Request{Page: page, Width: 10, Height: 10})
		n.waitFor(t, page)
	}
	insert(0)
	insert(1)
	insert(2)
	_, ok := c.CachedPixmap(1, 10, 10)
	require.True(t, ok)
	insert(3)

	for page, want := range []bool{false, true, true, true} {
		_, ok := c.CachedPixmap(page, 10, 10)
		assert.Equal(t, want, ok, "page %d cached", page)
	}
	assert.Equal(t, int64(3*entrySize), c.MemoryUsage())
	assert.Equal(t, uint64(1), c.Stats().Evictions)
}

func TestMemoryAccounting(t *testing.T) {
	n := newNotifications()
	c := newTestCache(t, WithListener(n.listener))
	require.NoError(t, c.SetDocument(newFakeDoc(3, red)))

	sizes := []struct{ page, w, h int }{{0, 10, 10}, {1, 20, 5}, {0, 30, 30}, {2, 7, 3}}
	var want int64
	for _, s := range sizes {
		c.RequestPixmap(Request{Page: s.page, Width: s.w, Height: s.h})
		n.waitFor(t, s.page)
		want += int64(s.w * s.h * 4)
	}
	assert.Equal(t, want, c.MemoryUsage())
	assert.Equal(t, 4, c.Len())

	c.InvalidatePage(0)
	assert.Equal(t, want-10*10*4-30*30*4, c.MemoryUsage())
	assert.Equal(t, 2, c.Len())

	c.InvalidateAll()
	assert.Zero(t, c.MemoryUsage())
	assert.Zero(t, c.Len())
}

func TestSetMemoryLimitEvictsImmediately(t *testing.T) {
	n := newNotifications()
	c := newTestCache(t, WithListener(n.listener))
	require.NoError(t, c.SetDocument(newFakeDoc(5, red)))

	for p := range 5 {
		c.RequestPixmap(Request{Page: p, Width: 10, Height: 10})
		n.waitFor(t, p)
	}
	c.SetMemoryLimit(2 * 400)

	assert.Equal(t, int64(800), c.MemoryLimit())
	assert.Equal(t, int64(800), c.MemoryUsage())
	assert.Equal(t, 2, c.Len())
	for _, p := range []int{3, 4} {
		_, ok := c.CachedPixmap(p, 10, 10)
		assert.True(t, ok, "page %d should survive", p)
	}
}

func TestOversizedRasterIsNotKept(t *testing.T) {
	n := newNotifications()
	c := newTestCache(t, WithListener(n.listener), WithMemoryLimit(100))
	require.NoError(t, c.SetDocument(newFakeDoc(1, red)))

	c.RequestPixmap(Request{Page: 0, Width: 10, Height: 10})
	n.waitFor(t, 0)
	assert.Zero(t, c.Len())
	assert.Zero(t, c.MemoryUsage())
}

func TestRenderFailureIsDropped(t *testing.T) {
	var failedNotified atomic.Bool
	n := newNotifications()
	listener := func(page int) {
		if page == 1 {
			failedNotified.Store(true)
		}
		n.listener(page)
	}
	c := newTestCache(t, WithListener(listener))
	doc := newFakeDoc(3, red)
	doc.failOn = map[int]bool{1: true}
	require.NoError(t, c.SetDocument(doc))

	c.RequestPixmap(Request{Page: 1, Width: 10, Height: 10})
	c.RequestPixmap(Request{Page: 0, Width: 10, Height: 10})
	n.waitFor(t, 0)

	require.Eventually(t, func() bool { return c.Stats().Failed == 1 }, 5*time.Second, time.Millisecond)
	assert.False(t, failedNotified.Load())
	_, ok := c.CachedPixmap(1, 10, 10)
	assert.False(t, ok)
}

func TestRequestWithoutDocument(t *testing.T) {
	c := newTestCache(t)
	_, ok := c.RequestPixmap(Request{Page: 0, Width: 10, Height: 10})
	assert.False(t, ok)

	require.Eventually(t, func() bool { return c.Stats().Pending == 0 }, 5*time.Second, time.Millisecond)
	assert.Zero(t, c.Stats().Renders)
}

func TestRequestOutOfRangeAndInvalid(t *testing.T) {
	c := newTestCache(t)
	doc := newFakeDoc(2, red)
	require.NoError(t, c.SetDocument(doc))

	c.RequestPixmap(Request{Page: 5, Width: 10, Height: 10})
	c.RequestPixmap(Request{Page: 0, Width: 0, Height: 10})
	c.RequestPixmap(Request{Page: -1, Width: 10, Height: 10})

	require.Eventually(t, func() bool { return c.Stats().Pending == 0 }, 5*time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	assert.Empty(t, doc.renderCalls())
}

func TestRendersAreSerialised(t *testing.T) {
	n := newNotifications()
	c := newTestCache(t, WithListener(n.listener))
	doc := newFakeDoc(21, red)
	require.NoError(t, c.SetDocument(doc))

	var wg sync.WaitGroup
	for g := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range 20 {
				c.RequestPixmap(Request{Page: p, Width: 8 + g, Height: 8})
			}
		}()
	}
	wg.Wait()

	// Page 20 is requested last, so in FIFO order its notification follows
	// every other delivery.
	c.RequestPixmap(Request{Page: 20, Width: 8, Height: 8})
	n.waitFor(t, 20)

	s := c.Stats()
	assert.Zero(t, s.Pending)
	assert.Equal(t, s.Renders, uint64(s.Entries))
	assert.Zero(t, doc.overlapping.Load(), "RenderPage calls overlapped")

	// Key uniqueness and exact accounting.
	var sum int64
	for p := range 21 {
		for w := 8; w < 12; w++ {
			if pm, ok := c.CachedPixmap(p, w, 8); ok {
				sum += pm.SizeBytes()
			}
		}
	}
	assert.Equal(t, c.MemoryUsage(), sum)
}

func TestPriorityNearest(t *testing.T) {
	n := newNotifications()
	c := newTestCache(t, WithListener(n.listener), WithPriority(PriorityNearest))
	doc := newFakeDoc(60, red)
	require.NoError(t, c.SetDocument(doc))

	release := blockWorker(t, c, doc, 50)
	defer release()

	c.SetFocusPage(10)
	for _, p := range []int{0, 30, 12, 9} {
		c.RequestPixmap(Request{Page: p, Width: 10, Height: 10})
	}
	release()
	n.waitFor(t, 30)

	var order []int
	for _, call := range doc.renderCalls()[1:] {
		order = append(order, call.page)
	}
	assert.Equal(t, []int{9, 12, 0, 30}, order)
}

func TestPriorityFIFO(t *testing.T) {
	n := newNotifications()
	c := newTestCache(t, WithListener(n.listener))
	doc := newFakeDoc(60, red)
	require.NoError(t, c.SetDocument(doc))

	release := blockWorker(t, c, doc, 50)
	defer release()

	for _, p := range []int{0, 30, 12, 9} {
		c.RequestPixmap(Request{Page: p, Width: 10, Height: 10})
	}
	// A newer request keeps the page's place in line.
	c.RequestPixmap(Request{Page: 0, Width: 20, Height: 20})
	release()
	n.waitFor(t, 9)

	var order []int
	for _, call := range doc.renderCalls()[1:] {
		order = append(order, call.page)
	}
	assert.Equal(t, []int{0, 30, 12, 9}, order)
}

func TestCloseJoinsRender(t *testing.T) {
	c := New()
	doc := newFakeDoc(1, red)
	require.NoError(t, c.SetDocument(doc))
	release := blockWorker(t, c, doc, 0)
	defer release()

	closed := make(chan struct{})
	go func() {
		c.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("Close returned while a render was executing")
	case <-time.After(30 * time.Millisecond):
	}
	release()
	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return")
	}
}

func TestCloseIdempotent(t *testing.T) {
	c := New()
	require.NoError(t, c.SetDocument(newFakeDoc(1, red)))
	c.Close()
	c.Close()

	assert.ErrorIs(t, c.SetDocument(newFakeDoc(1, red)), ErrClosed)
	_, ok := c.RequestPixmap(Request{Page: 0, Width: 10, Height: 10})
	assert.False(t, ok)
	assert.Zero(t, c.Stats().Pending)
}

func TestDefaultConfig(t *testing.T) {
	c := newTestCache(t)
	assert.Equal(t, DefaultMemoryLimit, c.MemoryLimit())
	assert.Equal(t, int64(100<<20), DefaultMemoryLimit)
}

func TestRequestGeometry(t *testing.T) {
	tests := []struct {
		req          Request
		wantW, wantH int
		wantX, wantY float64
		pageW, pageH float64
	}{
		{Request{Width: 612, Height: 792}, 612, 792, 72, 72, 612, 792},
		{Request{Width: 306, Height: 396, DevicePixelRatio: 2}, 612, 792, 72, 72, 612, 792},
		{Request{Width: 100, Height: 50, DevicePixelRatio: 1.5}, 150, 75, 216, 108, 50, 50},
		{Request{Width: 10, Height: 10, DevicePixelRatio: -3}, 10, 10, 72, 72, 10, 10},
	}
	for _, tt := range tests {
		w, h := tt.req.PhysicalSize()
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("%+v.PhysicalSize() = %d×%d, want %d×%d", tt.req, w, h, tt.wantW, tt.wantH)
		}
		x, y := tt.req.Resolution(tt.pageW, tt.pageH)
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("%+v.Resolution() = %v, %v, want %v, %v", tt.req, x, y, tt.wantX, tt.wantY)
		}
	}
}
