package folio

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/draw"
)

// Pixmap is a rectangular buffer of premultiplied RGBA pixels, 4 bytes per
// pixel, with no row padding.
//
// A Pixmap carries the device pixel ratio it was rendered for, so a 600×800
// logical page rendered at ratio 2 is a 1200×1600 Pixmap with
// DevicePixelRatio() == 2.
//
// Pixmaps handed out by the render cache are shared: once published they must
// be treated as read-only. Eviction from the cache never invalidates a Pixmap
// the caller already holds.
type Pixmap struct {
	width  int
	height int
	dpr    float64
	data   []uint8
}

// NewPixmap creates a transparent pixmap with the given dimensions.
// Negative dimensions are treated as zero.
func NewPixmap(width, height int) *Pixmap {
	width = max(width, 0)
	height = max(height, 0)
	return &Pixmap{
		width:  width,
		height: height,
		dpr:    1,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap in device pixels.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap in device pixels.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (premultiplied RGBA).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SizeBytes returns the number of bytes held by the pixel buffer.
// The render cache accounts memory with this value.
func (p *Pixmap) SizeBytes() int64 {
	if p == nil {
		return 0
	}
	return int64(len(p.data))
}

// DevicePixelRatio returns the ratio between device and logical pixels.
func (p *Pixmap) DevicePixelRatio() float64 {
	return p.dpr
}

// SetDevicePixelRatio tags the pixmap with the ratio it was rendered for.
// Values that are not positive reset the ratio to 1. Call this before the
// pixmap is shared.
func (p *Pixmap) SetDevicePixelRatio(dpr float64) {
	if dpr <= 0 || math.IsNaN(dpr) || math.IsInf(dpr, 0) {
		dpr = 1
	}
	p.dpr = dpr
}

// LogicalSize returns the size of the pixmap in logical pixels.
func (p *Pixmap) LogicalSize() (width, height float64) {
	return float64(p.width) / p.dpr, float64(p.height) / p.dpr
}

// SetPixel sets the color of a single pixel. Out-of-bounds writes are ignored.
func (p *Pixmap) SetPixel(x, y int, c color.Color) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	r, g, b, a := c.RGBA()
	i := (y*p.width + x) * 4
	p.data[i+0] = uint8(r >> 8)
	p.data[i+1] = uint8(g >> 8)
	p.data[i+2] = uint8(b >> 8)
	p.data[i+3] = uint8(a >> 8)
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c color.Color) {
	r, g, b, a := c.RGBA()
	r8, g8, b8, a8 := uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8)
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r8
		p.data[i+1] = g8
		p.data[i+2] = b8
		p.data[i+3] = a8
	}
}

// ToImage converts the pixmap to an image.RGBA. The pixel data is copied.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// rgbaView wraps the pixel data as an image.RGBA without copying.
func (p *Pixmap) rgbaView() *image.RGBA {
	return &image.RGBA{
		Pix:    p.data,
		Stride: p.width * 4,
		Rect:   image.Rect(0, 0, p.width, p.height),
	}
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	pm := NewPixmap(bounds.Dx(), bounds.Dy())
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == bounds.Dx()*4 && rgba.Rect.Min == (image.Point{}) {
		copy(pm.data, rgba.Pix)
		return pm
	}
	draw.Draw(pm.rgbaView(), pm.Bounds(), img, bounds.Min, draw.Src)
	return pm
}

// Scaled returns a copy of the pixmap resampled to width×height device pixels.
// The device pixel ratio is carried over unchanged.
func (p *Pixmap) Scaled(width, height int) *Pixmap {
	out := NewPixmap(width, height)
	out.dpr = p.dpr
	if p.width == 0 || p.height == 0 || width <= 0 || height <= 0 {
		return out
	}
	if width == p.width && height == p.height {
		copy(out.data, p.data)
		return out
	}
	draw.ApproxBiLinear.Scale(out.rgbaView(), out.Bounds(), p.rgbaView(), p.Bounds(), draw.Src, nil)
	return out
}

// Logical returns the pixmap resampled to its logical size, with a device
// pixel ratio of 1. Used by hosts that cannot draw high-density rasters.
func (p *Pixmap) Logical() *Pixmap {
	if p.dpr == 1 {
		return p.Scaled(p.width, p.height)
	}
	w, h := p.LogicalSize()
	out := p.Scaled(int(math.Round(w)), int(math.Round(h)))
	out.dpr = 1
	return out
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, p.ToImage())
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.RGBA{}
	}
	i := (y*p.width + x) * 4
	return color.RGBA{R: p.data[i+0], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}
