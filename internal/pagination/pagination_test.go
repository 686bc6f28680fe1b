package pagination

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoLines fits exactly two lines per page: 100 - 20 - 20 = 2 * 30.
var twoLines = Geometry{LeftMargin: 10, TopMargin: 20, BottomMargin: 20, LineHeight: 30, PageHeight: 100}

func numbered(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return lines
}

func flatten(doc Document) []string {
	var out []string
	for _, p := range doc.Pages() {
		out = append(out, p.Lines()...)
	}
	return out
}

func TestPaginateOverflow(t *testing.T) {
	lines := numbered(5)
	doc := Paginate(lines, twoLines)

	require.Len(t, doc.Pages(), 3)
	assert.Equal(t, 2, doc.Pages()[0].Len())
	assert.Equal(t, 2, doc.Pages()[1].Len())
	assert.Equal(t, 1, doc.Pages()[2].Len())
	assert.Equal(t, lines, flatten(doc))
	assert.Equal(t, 5, doc.LineCount())
	assert.Equal(t, 3, doc.PageCount())
}

func pageLens(doc Document) []int {
	var lens []int
	for _, p := range doc.Pages() {
		lens = append(lens, p.Len())
	}
	return lens
}

// the bottom margin lands on a line boundary that float64 cannot represent exactly
func TestPaginateOverflowFractional(t *testing.T) {
	tests := []struct {
		lineHeight float64
		margin     float64
	}{
		{1.1, 0.1},
		{0.1, 0.1},
		{14.4, 50},
		{9.9, 30.3},
		{11.3, 30.3},
		{13.2, 50},
		{0.3, 0.7},
		{12.1, 72.5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("lh=%v m=%v", tt.lineHeight, tt.margin), func(t *testing.T) {
			g := Geometry{
				TopMargin:    tt.margin,
				BottomMargin: tt.margin,
				LineHeight:   tt.lineHeight,
				PageHeight:   2*tt.lineHeight + 2*tt.margin,
			}
			doc := Paginate(numbered(5), g)

			assert.Equal(t, []int{2, 2, 1}, pageLens(doc))
			assert.InDelta(t, g.BottomMargin, doc.Pages()[0].Cursor(), 1e-9)
		})
	}
}

func TestPaginateNoRoomStillPlacesLines(t *testing.T) {
	g := Geometry{TopMargin: 60, BottomMargin: 60, LineHeight: 10, PageHeight: 100}
	doc := Paginate(numbered(2), g)

	assert.Equal(t, []int{1, 1}, pageLens(doc))
}

func TestDocumentPagesIsACopy(t *testing.T) {
	doc := Paginate(numbered(3), twoLines)

	pages := doc.Pages()
	pages[0] = Page{}

	assert.Equal(t, []string{"line 1", "line 2"}, doc.Pages()[0].Lines())
}

func TestPaginateSinglePage(t *testing.T) {
	lines := numbered(53)
	doc := Paginate(lines, Letter)

	require.Len(t, doc.Pages(), 1)
	assert.Equal(t, lines, doc.Pages()[0].Lines())
}

func TestPaginateLetterSpillsOver(t *testing.T) {
	doc := Paginate(numbered(54), Letter)

	require.Len(t, doc.Pages(), 2)
	assert.Equal(t, 53, doc.Pages()[0].Len())
	assert.Equal(t, []string{"line 54"}, doc.Pages()[1].Lines())
}

func TestPaginateEmpty(t *testing.T) {
	for _, lines := range [][]string{nil, {}} {
		doc := Paginate(lines, twoLines)
		require.Len(t, doc.Pages(), 1)
		assert.Zero(t, doc.Pages()[0].Len())
		assert.Equal(t, twoLines.Top(), doc.Pages()[0].Cursor())
	}
}

func TestPaginateExactFill(t *testing.T) {
	doc := Paginate(numbered(4), twoLines)

	require.Len(t, doc.Pages(), 2)
	assert.Equal(t, 2, doc.Pages()[1].Len())
}

func TestPaginateCursor(t *testing.T) {
	doc := Paginate(numbered(3), twoLines)

	require.Len(t, doc.Pages(), 2)
	assert.Equal(t, 20.0, doc.Pages()[0].Cursor())
	assert.Equal(t, 50.0, doc.Pages()[1].Cursor())
}

func TestPaginateKeepsOddContent(t *testing.T) {
	lines := []string{"", "\x00\x07bell", "  indented", "", "tab\tseparated"}
	doc := Paginate(lines, twoLines)

	assert.Equal(t, lines, flatten(doc))
}

func TestPageLinesIsACopy(t *testing.T) {
	doc := Paginate([]string{"a", "b"}, twoLines)
	got := doc.Pages()[0].Lines()
	got[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, doc.Pages()[0].Lines())
}

func TestPaginateDoesNotAliasInput(t *testing.T) {
	lines := []string{"a", "b", "c"}
	doc := Paginate(lines, twoLines)
	lines[0] = "mutated"

	assert.Equal(t, "a", doc.Pages()[0].Lines()[0])
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single", "hello", []string{"hello"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"crlf", "a\r\nb", []string{"a", "b"}},
		{"bare cr", "a\rb", []string{"a", "b"}},
		{"blank lines kept", "a\n\nb", []string{"a", "", "b"}},
		{"only newline", "\n", []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.in))
		})
	}
}

func TestPaginateText(t *testing.T) {
	doc := PaginateText("one\ntwo\nthree\nfour\nfive\n", twoLines)

	require.Len(t, doc.Pages(), 3)
	assert.Equal(t, []string{"one", "two"}, doc.Pages()[0].Lines())
	assert.Equal(t, []string{"five"}, doc.Pages()[2].Lines())

	empty := PaginateText("", twoLines)
	require.Len(t, empty.Pages(), 1)
	assert.Zero(t, empty.Pages()[0].Len())
}
