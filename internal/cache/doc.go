// Package cache provides a byte-bounded LRU cache.
//
// Values report their own footprint through the Sized interface. The cache
// keeps the exact sum of the sizes of its live entries and, after every
// insertion or limit change, evicts entries in order of their last access
// until the sum fits the limit or the cache is empty.
//
//	c := cache.New[Key, *folio.Pixmap](100 << 20)
//	c.Set(key, pixmap)
//	pm, ok := c.Get(key)
//
// # Access ticks
//
// Every Get and Set assigns the entry a fresh value of a monotonic counter.
// The entry with the smallest tick is always evicted first.
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
