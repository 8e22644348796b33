package rendercache

// DefaultMemoryLimit is the default byte budget of the raster table.
const DefaultMemoryLimit int64 = 100 << 20

// Priority selects the order in which pending pages are rendered.
type Priority uint8

const (
	// PriorityFIFO renders pages in the order they were first requested.
	PriorityFIFO Priority = iota
	// PriorityNearest renders the pending page closest to the focus page
	// first. See Cache.SetFocusPage.
	PriorityNearest
)

// String returns the string representation of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityFIFO:
		return "FIFO"
	case PriorityNearest:
		return "Nearest"
	default:
		return "Unknown"
	}
}

// Option configures a Cache.
type Option func(*config)

// config holds configuration for a Cache.
type config struct {
	memoryLimit int64
	listener    func(page int)
	priority    Priority
	resultQueue int
}

// defaultConfig returns the default cache configuration.
func defaultConfig() config {
	return config{
		memoryLimit: DefaultMemoryLimit,
		priority:    PriorityFIFO,
		resultQueue: 16,
	}
}

// WithMemoryLimit sets the byte budget of the raster table.
// A value of 0 disables eviction.
func WithMemoryLimit(bytes int64) Option {
	return func(c *config) {
		c.memoryLimit = bytes
	}
}

// WithListener sets the function called with the page number after a
// raster has been rendered and inserted.
func WithListener(fn func(page int)) Option {
	return func(c *config) {
		c.listener = fn
	}
}

// WithPriority sets the order in which pending pages are rendered.
// The default is PriorityFIFO.
func WithPriority(p Priority) Option {
	return func(c *config) {
		c.priority = p
	}
}

// WithQueueCapacity sets how many finished renders may wait for delivery
// before the worker blocks. Values below 1 are raised to 1.
func WithQueueCapacity(n int) Option {
	return func(c *config) {
		c.resultQueue = max(n, 1)
	}
}
