// Package pagination lays out lines of plain text onto fixed-geometry pages.
//
// The layout assumes a fixed line height and never measures glyph widths.
// Callers that need wrapping must split long lines before calling Paginate.
package pagination

import (
	"math"
	"strings"
)

// Geometry describes a page in points. Vertical positions are measured
// upward from the bottom edge of the page.
type Geometry struct {
	LeftMargin   float64
	TopMargin    float64
	BottomMargin float64
	LineHeight   float64
	PageHeight   float64
}

// Letter is US Letter with 50pt margins and 11pt text at 1.2 leading.
var Letter = Geometry{
	LeftMargin:   50,
	TopMargin:    50,
	BottomMargin: 50,
	LineHeight:   13.2,
	PageHeight:   792,
}

// Top returns the cursor position of a freshly opened page.
func (g Geometry) Top() float64 {
	return g.PageHeight - g.TopMargin
}

// cursorAfter returns the cursor position once n lines sit on a page. It is
// computed from the top each time so rounding does not accumulate.
func (g Geometry) cursorAfter(n int) float64 {
	return g.Top() - float64(n)*g.LineHeight
}

// full reports whether a page holding n lines has reached the bottom margin.
// A cursor within rounding distance of the margin counts as reached.
func (g Geometry) full(n int) bool {
	return g.cursorAfter(n)-g.BottomMargin <= 1e-9*math.Max(math.Abs(g.LineHeight), math.Abs(g.PageHeight))
}

// Page is a sealed page of lines.
type Page struct {
	lines  []string
	cursor float64
}

// Lines returns a copy of the lines on the page.
func (p Page) Lines() []string {
	return append([]string(nil), p.lines...)
}

// Len returns the number of lines on the page.
func (p Page) Len() int {
	return len(p.lines)
}

// Cursor returns the vertical position after the last line was placed.
func (p Page) Cursor() float64 {
	return p.cursor
}

// Document is an ordered sequence of sealed pages.
type Document struct {
	Geometry Geometry
	pages    []Page
}

// Pages returns a copy of the pages in order.
func (d Document) Pages() []Page {
	return append([]Page(nil), d.pages...)
}

// PageCount returns the number of pages.
func (d Document) PageCount() int {
	return len(d.pages)
}

// LineCount returns the total number of lines across all pages.
func (d Document) LineCount() int {
	n := 0
	for _, p := range d.pages {
		n += p.Len()
	}
	return n
}

// Paginate places lines onto pages in order. A new page is opened before a
// line whenever the cursor has reached the bottom margin. The result always
// holds at least one page.
func Paginate(lines []string, g Geometry) Document {
	doc := Document{Geometry: g}
	cur := Page{cursor: g.Top()}

	for _, line := range lines {
		if len(cur.lines) > 0 && g.full(len(cur.lines)) {
			doc.pages = append(doc.pages, cur)
			cur = Page{cursor: g.Top()}
		}
		cur.lines = append(cur.lines, line)
		cur.cursor = g.cursorAfter(len(cur.lines))
	}

	doc.pages = append(doc.pages, cur)
	return doc
}

// PaginateText splits text into lines and paginates them.
func PaginateText(text string, g Geometry) Document {
	return Paginate(SplitLines(text), g)
}

// SplitLines splits text on \n, \r\n and \r. A trailing line break does not
// produce an empty final line, and empty text yields no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
