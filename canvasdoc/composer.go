package canvasdoc

import (
	"fmt"
	"image/color"

	"github.com/gogpu/folio/linebreak"
	"github.com/gogpu/folio/paragraph"
	"github.com/tdewolff/canvas"
)

// PageSize is a page size in millimetres.
type PageSize struct {
	Width, Height float64
}

// A-series page sizes.
var (
	A3 = PageSize{Width: 297, Height: 420}
	A4 = PageSize{Width: 210, Height: 297}
	A5 = PageSize{Width: 148, Height: 210}
	A6 = PageSize{Width: 105, Height: 148}
)

// Option configures a Composer.
type Option func(*config)

type config struct {
	margin         float64
	leading        float64
	paragraphSpace float64
	background     color.Color
	paragraph      paragraph.Options
	linebreak      linebreak.Config
}

func defaultConfig() config {
	return config{
		margin:         15,
		leading:        1.3,
		paragraphSpace: 0.5,
		background:     color.White,
		paragraph:      paragraph.DefaultOptions(),
		linebreak:      linebreak.DefaultConfig(),
	}
}

// WithMargin sets the page margin in millimetres on all four sides.
func WithMargin(mm float64) Option {
	return func(c *config) {
		if mm >= 0 {
			c.margin = mm
		}
	}
}

// WithLeading sets the baseline distance as a multiple of the font line height.
func WithLeading(factor float64) Option {
	return func(c *config) {
		if factor > 0 {
			c.leading = factor
		}
	}
}

// WithParagraphSpacing sets the space after a paragraph as a multiple of the
// line advance.
func WithParagraphSpacing(lines float64) Option {
	return func(c *config) {
		if lines >= 0 {
			c.paragraphSpace = lines
		}
	}
}

// WithBackground sets the page color. Nil leaves pages transparent.
func WithBackground(col color.Color) Option {
	return func(c *config) {
		c.background = col
	}
}

// WithParagraphOptions sets the options used to build item streams.
func WithParagraphOptions(opts paragraph.Options) Option {
	return func(c *config) {
		c.paragraph = opts
	}
}

// WithLinebreakConfig sets the line breaking parameters.
func WithLinebreakConfig(cfg linebreak.Config) Option {
	return func(c *config) {
		c.linebreak = cfg
	}
}

// Composer lays out paragraphs and draws them onto pages, starting a new
// page when the current one is full.
//
// Composer is not safe for concurrent use.
type Composer struct {
	font     Font
	measurer *Measurer
	size     PageSize
	cfg      config

	pages []*canvas.Canvas
	ctx   *canvas.Context
	y     float64 // top of the next line on the current page

	lines int
}

// NewComposer creates a composer that draws with font on pages of the given size.
func NewComposer(font Font, size PageSize, opts ...Option) *Composer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Composer{
		font:     font,
		measurer: NewMeasurer(font),
		size:     size,
		cfg:      cfg,
	}
}

// LineWidth returns the width available to a line in millimetres.
func (c *Composer) LineWidth() float64 {
	return c.size.Width - 2*c.cfg.margin
}

// lineAdvance returns the distance between consecutive baselines.
func (c *Composer) lineAdvance() float64 {
	return c.font.Face.Metrics().LineHeight * c.cfg.leading
}

// AddParagraph lays out text and draws it below the previous paragraph.
// Empty text adds nothing.
func (c *Composer) AddParagraph(text string) error {
	if c.LineWidth() <= 0 {
		return fmt.Errorf("canvasdoc: margins %v leave no room on a %vmm page", c.cfg.margin, c.size.Width)
	}
	p, err := paragraph.Build(text, c.measurer, c.cfg.paragraph)
	if err != nil {
		return err
	}
	lines := paragraph.Layout(p, []float64{c.LineWidth()}, c.cfg.linebreak)
	if len(lines) == 0 {
		return nil
	}

	advance := c.lineAdvance()
	ascent := c.font.Face.Metrics().Ascent
	for _, ln := range lines {
		if c.ctx == nil || c.y+advance > c.size.Height-c.cfg.margin {
			c.newPage()
		}
		baseline := c.y + ascent
		for _, w := range ln.Words {
			// Letter spacing only shifts word origins; glyphs inside a word
			// keep their shaped positions.
			c.ctx.DrawText(c.cfg.margin+w.X, baseline, canvas.NewTextLine(c.font.Face, w.Text, canvas.Left))
		}
		c.y += advance
		c.lines++
	}
	c.y += advance * c.cfg.paragraphSpace
	slogger().Debug("canvasdoc: paragraph composed", "lines", len(lines), "pages", len(c.pages))
	return nil
}

// newPage starts a fresh page.
func (c *Composer) newPage() {
	page := canvas.New(c.size.Width, c.size.Height)
	ctx := canvas.NewContext(page)
	ctx.SetCoordSystem(canvas.CartesianIV)
	if c.cfg.background != nil {
		ctx.SetFillColor(c.cfg.background)
		ctx.DrawPath(0, 0, canvas.Rectangle(c.size.Width, c.size.Height))
	}
	c.pages = append(c.pages, page)
	c.ctx = ctx
	c.y = c.cfg.margin
}

// NumPages returns the number of pages started so far.
func (c *Composer) NumPages() int {
	return len(c.pages)
}

// NumLines returns the number of lines drawn so far.
func (c *Composer) NumLines() int {
	return c.lines
}

// Document returns the composed pages as a Document. Paragraphs added
// afterwards start on a new page, so the returned pages are never drawn on
// again.
func (c *Composer) Document() (*Document, error) {
	doc, err := New(c.pages)
	if err != nil {
		return nil, err
	}
	c.ctx = nil
	return doc, nil
}
