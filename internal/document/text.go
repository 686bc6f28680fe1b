package document

import (
	"bufio"
	"io"

	"github.com/rtzll/ytbrief/internal/pagination"
)

// Text writes one line per row and separates pages with a form feed.
type Text struct{}

func (Text) Encode(doc pagination.Document, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, page := range doc.Pages() {
		if i > 0 {
			bw.WriteString("\f")
		}
		for _, line := range page.Lines() {
			bw.WriteString(line)
			bw.WriteString("\n")
		}
	}
	return bw.Flush()
}
