package document

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gomutex/godocx"

	"github.com/rtzll/ytbrief/internal/pagination"
)

// DOCX writes one paragraph per line. Word reflows pages on its own, so page
// boundaries only fix the order of lines.
type DOCX struct {
	opts Options
}

// NewDOCX creates a DOCX encoder
func NewDOCX(opts Options) *DOCX {
	if opts.Font == "" {
		opts.Font = DefaultOptions.Font
	}
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultOptions.FontSize
	}
	return &DOCX{opts: opts}
}

func (d *DOCX) Encode(doc pagination.Document, w io.Writer) error {
	rd, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("creating docx: %w", err)
	}

	size := uint64(d.opts.FontSize)
	if d.opts.Title != "" {
		rd.AddParagraph("").AddText(xmlSafe(d.opts.Title)).Font(d.opts.Font).Size(size + 5).Bold(true)
	}

	for _, page := range doc.Pages() {
		for _, line := range page.Lines() {
			p := rd.AddParagraph("")
			if text := xmlSafe(line); text != "" {
				p.AddText(text).Font(d.opts.Font).Size(size).Color("000000")
			}
		}
	}

	// godocx only saves to a path
	tmp, err := os.CreateTemp("", "ytbrief-*.docx")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := rd.SaveTo(tmpPath); err != nil {
		return fmt.Errorf("writing docx: %w", err)
	}

	f, err := os.Open(tmpPath)
	if err != nil {
		return fmt.Errorf("reading docx: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copying docx: %w", err)
	}
	return nil
}

// xmlSafe drops characters that are not allowed in XML 1.0 documents.
func xmlSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return r
		case r < 0x20, r == 0xFFFE, r == 0xFFFF:
			return -1
		case r >= 0xD800 && r <= 0xDFFF:
			return -1
		}
		return r
	}, s)
}
