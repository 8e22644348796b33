package canvasdoc

import (
	"fmt"
	"image/color"

	"github.com/gogpu/folio/paragraph"
	"github.com/tdewolff/canvas"
)

// mmPerPt converts points to canvas millimetres.
const mmPerPt = 25.4 / 72

// Font is a canvas face together with its size.
type Font struct {
	Face   *canvas.FontFace
	SizePt float64
}

// LoadFont loads a TrueType or OpenType font and returns a regular face of
// sizePt points painted with col. A nil col paints black.
func LoadFont(data []byte, sizePt float64, col color.Color) (Font, error) {
	if len(data) == 0 {
		return Font{}, fmt.Errorf("%w: empty font data", ErrFontLoad)
	}
	if sizePt <= 0 {
		return Font{}, fmt.Errorf("%w: size %v", ErrFontLoad, sizePt)
	}
	family := canvas.NewFontFamily("folio")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return Font{}, fmt.Errorf("%w: %v", ErrFontLoad, err)
	}
	if col == nil {
		col = color.Black
	}
	fill := color.RGBAModel.Convert(col).(color.RGBA)
	face := family.Face(sizePt, fill, canvas.FontRegular, canvas.FontNormal)
	return Font{Face: face, SizePt: sizePt}, nil
}

var _ paragraph.Measurer = (*Measurer)(nil)

// Measurer measures text with a canvas face. Widths are in millimetres.
type Measurer struct {
	face *canvas.FontFace
	size float64
}

// NewMeasurer returns a measurer for f.
func NewMeasurer(f Font) *Measurer {
	return &Measurer{face: f.Face, size: f.SizePt * mmPerPt}
}

// Advance returns the width of s in millimetres.
func (m *Measurer) Advance(s string) float64 {
	if s == "" {
		return 0
	}
	return m.face.TextWidth(s)
}

// Size returns the font size in millimetres.
func (m *Measurer) Size() float64 {
	return m.size
}
