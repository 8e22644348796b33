package rendercache

import "sync"

// pendingRequest is the latest outstanding request for one page.
type pendingRequest struct {
	req Request
	seq uint64 // order in which the page was first requested
}

// pendingQueue holds at most one request per page. A newer request for a
// page replaces the older one but keeps its place in line.
type pendingQueue struct {
	mu       sync.Mutex
	pending  map[int]pendingRequest
	seq      uint64
	priority Priority
	focus    int
}

func newPendingQueue(p Priority) *pendingQueue {
	return &pendingQueue{
		pending:  make(map[int]pendingRequest),
		priority: p,
	}
}

// put records req as the pending request for its page.
// Returns true if an older request was superseded.
func (q *pendingQueue) put(req Request) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if old, ok := q.pending[req.Page]; ok {
		q.pending[req.Page] = pendingRequest{req: req, seq: old.seq}
		return true
	}
	q.seq++
	q.pending[req.Page] = pendingRequest{req: req, seq: q.seq}
	return false
}

// take removes and returns the next request to render.
func (q *pendingQueue) take() (Request, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var (
		best  pendingRequest
		found bool
	)
	for _, p := range q.pending {
		if !found || q.before(p, best) {
			best = p
			found = true
		}
	}
	if !found {
		return Request{}, false
	}
	delete(q.pending, best.req.Page)
	return best.req, true
}

// before reports whether a should be rendered before b.
// Caller must hold q.mu.
func (q *pendingQueue) before(a, b pendingRequest) bool {
	if q.priority == PriorityNearest {
		da, db := distance(a.req.Page, q.focus), distance(b.req.Page, q.focus)
		if da != db {
			return da < db
		}
	}
	return a.seq < b.seq
}

func (q *pendingQueue) setFocus(page int) {
	q.mu.Lock()
	q.focus = page
	q.mu.Unlock()
}

// clear drops every pending request and returns how many were dropped.
func (q *pendingQueue) clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.pending)
	clear(q.pending)
	return n
}

func (q *pendingQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pending)
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
