// Command folio breaks paragraphs into lines and renders them to pages.
//
// In item mode it reads an item stream and prints the chosen breakpoints:
//
//	folio -items paragraph.items -width 120
//
// In text mode it typesets a text file, renders the first page through the
// render cache and saves it as PNG:
//
//	folio -text chapter.txt -page a5 -dpr 2 -output page.png
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gogpu/folio"
	"github.com/gogpu/folio/canvasdoc"
	"github.com/gogpu/folio/internal/itemspec"
	"github.com/gogpu/folio/linebreak"
	"github.com/gogpu/folio/rendercache"
	"golang.org/x/image/font/gofont/goregular"
)

const sampleText = `The line breaker looks at a whole paragraph at once and chooses the set of breakpoints with the fewest total demerits. Loose and tight lines next to each other cost extra, and so do consecutive hyphenated lines.

When no arrangement fits, the tolerance is raised in steps; as a last resort an overfull line is accepted so that the text is never lost.`

var pageSizes = map[string]canvasdoc.PageSize{
	"a3": canvasdoc.A3,
	"a4": canvasdoc.A4,
	"a5": canvasdoc.A5,
	"a6": canvasdoc.A6,
}

func main() {
	var (
		textPath  = flag.String("text", "", "text file to typeset (default: built-in sample)")
		itemsPath = flag.String("items", "", "item stream to break instead of text")
		width     = flag.Float64("width", 0, "line width in item mode; overrides width statements")
		page      = flag.String("page", "a5", "page size: a3, a4, a5 or a6")
		pixels    = flag.Int("pixels", 600, "logical width of the rendered page in pixels")
		dpr       = flag.Float64("dpr", 1, "device pixel ratio of the rendered page")
		fontPath  = flag.String("font", "", "TrueType font (default: Go Regular)")
		fontSize  = flag.Float64("size", 11, "font size in points")
		output    = flag.String("output", "page.png", "output PNG file")
		pdfPath   = flag.String("pdf", "", "also write all pages to this PDF file")
		verbose   = flag.Bool("v", false, "log debug output")
	)
	flag.Parse()

	if *verbose {
		folio.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var err error
	if *itemsPath != "" {
		err = breakItems(*itemsPath, *width)
	} else {
		err = renderText(textOptions{
			textPath: *textPath,
			page:     *page,
			pixels:   *pixels,
			dpr:      *dpr,
			fontPath: *fontPath,
			fontSize: *fontSize,
			output:   *output,
			pdfPath:  *pdfPath,
		})
	}
	if err != nil {
		log.Fatal(err)
	}
}

// breakItems prints the breakpoints of an item stream.
func breakItems(path string, width float64) error {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer f.Close()

	spec, err := itemspec.Parse(path, f)
	if err != nil {
		return err
	}
	widths := spec.Widths
	if width > 0 {
		widths = []float64{width}
	}
	if len(widths) == 0 {
		return errors.New("no line width: pass -width or add a width statement")
	}

	res := linebreak.FindBreaksTiered(spec.Items, widths, linebreak.DefaultConfig())
	fmt.Printf("%d lines, optimal=%v\n", len(res.Breaks), res.Optimal)
	for k, b := range res.Breaks {
		fmt.Printf("%3d  item %-5d ratio %8.3f  %-10s demerits %.0f%s\n",
			k+1, b.ItemIndex, b.Ratio, b.Fitness, b.TotalDemerits, emergencyMark(b))
	}
	return nil
}

func emergencyMark(b linebreak.Breakpoint) string {
	if b.Emergency {
		return "  (emergency)"
	}
	return ""
}

type textOptions struct {
	textPath string
	page     string
	pixels   int
	dpr      float64
	fontPath string
	fontSize float64
	output   string
	pdfPath  string
}

// renderText typesets text, renders page 0 through the render cache and
// saves it.
func renderText(opts textOptions) error {
	size, ok := pageSizes[strings.ToLower(opts.page)]
	if !ok {
		return fmt.Errorf("unknown page size %q", opts.page)
	}

	text := sampleText
	if opts.textPath != "" {
		data, err := os.ReadFile(opts.textPath)
		if err != nil {
			return err
		}
		text = string(data)
	}

	fontData := goregular.TTF
	if opts.fontPath != "" {
		data, err := os.ReadFile(opts.fontPath)
		if err != nil {
			return err
		}
		fontData = data
	}
	font, err := canvasdoc.LoadFont(fontData, opts.fontSize, color.Black)
	if err != nil {
		return err
	}

	comp := canvasdoc.NewComposer(font, size)
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if err := comp.AddParagraph(para); err != nil {
			return err
		}
	}
	doc, err := comp.Document()
	if err != nil {
		return err
	}
	log.Printf("Composed %d lines on %d pages", comp.NumLines(), doc.NumPages())

	if opts.pdfPath != "" {
		if err := writePDF(doc, opts.pdfPath); err != nil {
			return err
		}
	}

	ready := make(chan int, 1)
	cache := rendercache.New(rendercache.WithListener(func(page int) {
		select {
		case ready <- page:
		default:
		}
	}))
	defer cache.Close()
	if err := cache.SetDocument(doc); err != nil {
		return err
	}

	req := rendercache.Request{
		Page:             0,
		Width:            opts.pixels,
		Height:           int(float64(opts.pixels) * size.Height / size.Width),
		DevicePixelRatio: opts.dpr,
	}
	pm, ok := cache.RequestPixmap(req)
	if !ok {
		select {
		case <-ready:
		case <-time.After(30 * time.Second):
			return errors.New("timed out waiting for the page render")
		}
		if pm, ok = cache.CachedPixmap(req.Page, req.Width, req.Height); !ok {
			return errors.New("page render failed")
		}
	}

	if err := pm.SavePNG(opts.output); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	log.Printf("Page saved to %s (%dx%d)", opts.output, pm.Width(), pm.Height())
	return nil
}

func writePDF(doc *canvasdoc.Document, path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := doc.WritePDF(f, "folio"); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
