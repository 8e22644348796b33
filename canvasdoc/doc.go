// Package canvasdoc provides documents drawn with github.com/tdewolff/canvas.
//
// A Composer lays out paragraphs with the paragraph package and draws them
// onto pages. The resulting Document implements rendercache.Document:
//
//	font, _ := canvasdoc.LoadFont(goregular.TTF, 11, color.Black)
//	comp := canvasdoc.NewComposer(font, canvasdoc.A5)
//	comp.AddParagraph(text)
//	doc, _ := comp.Document()
//
//	c := rendercache.New()
//	c.SetDocument(doc)
//
// Canvas coordinates are millimetres with the origin at the top left. Page
// sizes reported to the render cache are in points.
package canvasdoc
