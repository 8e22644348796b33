package rendercache

import "math"

// Key identifies a cache entry.
type Key struct {
	Page   int
	Width  int
	Height int
}

// Request asks for page at Width×Height logical pixels.
// DevicePixelRatio scales the physical raster; it is not part of the key.
type Request struct {
	Page             int
	Width            int
	Height           int
	DevicePixelRatio float64
}

// Key returns the cache key of the request.
func (r Request) Key() Key {
	return Key{Page: r.Page, Width: r.Width, Height: r.Height}
}

// dpr returns the device pixel ratio, defaulting to 1 for unset or invalid
// values.
func (r Request) dpr() float64 {
	d := r.DevicePixelRatio
	if d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return 1
	}
	return d
}

// PhysicalSize returns the raster size in device pixels.
func (r Request) PhysicalSize() (width, height int) {
	d := r.dpr()
	return int(math.Round(float64(r.Width) * d)), int(math.Round(float64(r.Height) * d))
}

// Resolution returns the horizontal and vertical render resolution in dots
// per inch for a page whose native size is pageW×pageH points.
func (r Request) Resolution(pageW, pageH float64) (xres, yres float64) {
	d := r.dpr()
	return 72 * float64(r.Width) / pageW * d, 72 * float64(r.Height) / pageH * d
}

func (r Request) valid() bool {
	return r.Page >= 0 && r.Width > 0 && r.Height > 0
}
