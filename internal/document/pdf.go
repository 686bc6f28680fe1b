package document

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/rtzll/ytbrief/internal/pagination"
)

// pageSizes holds portrait page dimensions in points
var pageSizes = map[string][2]float64{
	"letter": {612, 792},
	"a4":     {595.28, 841.89},
	"legal":  {612, 1008},
}

// PageSize returns the width and height in points of a named page size.
func PageSize(name string) (float64, float64, error) {
	size, ok := pageSizes[strings.ToLower(name)]
	if !ok {
		return 0, 0, fmt.Errorf("unsupported page size: %q (supported: Letter, A4, Legal)", name)
	}
	return size[0], size[1], nil
}

// PDF draws each line at the left margin on its cursor baseline using a core font.
type PDF struct {
	opts Options
}

// NewPDF creates a PDF encoder
func NewPDF(opts Options) *PDF {
	if opts.Font == "" {
		opts.Font = DefaultOptions.Font
	}
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultOptions.FontSize
	}
	if opts.PageSize == "" {
		opts.PageSize = DefaultOptions.PageSize
	}
	return &PDF{opts: opts}
}

// newFpdf starts a document on the configured page size. A positive height
// replaces the height of that size.
func (p *PDF) newFpdf(height float64) (*fpdf.Fpdf, error) {
	width, named, err := PageSize(p.opts.PageSize)
	if err != nil {
		return nil, err
	}
	if height <= 0 {
		height = named
	}
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("ytbrief", true)
	if p.opts.Title != "" {
		pdf.SetTitle(p.opts.Title, true)
	}
	return pdf, nil
}

// Wrap splits lines wider than width using the font metrics of the encoder.
// Empty lines are kept as they are, and lines are returned unchanged when
// the page size is unknown.
func (p *PDF) Wrap(lines []string, width float64) []string {
	pdf, err := p.newFpdf(0)
	if err != nil {
		return lines
	}
	pdf.AddPage()
	pdf.SetFont(p.opts.Font, "", p.opts.FontSize)

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			out = append(out, line)
			continue
		}
		parts := pdf.SplitText(line, width)
		if len(parts) == 0 {
			out = append(out, line)
			continue
		}
		out = append(out, parts...)
	}
	return out
}

// Encode writes doc as a PDF. Text is translated from UTF-8 to cp1252, the
// encoding of the core fonts. Pages take their width from the page size and
// their height from the document geometry, so baselines match the layout.
func (p *PDF) Encode(doc pagination.Document, w io.Writer) error {
	if doc.Geometry.PageHeight <= 0 {
		return fmt.Errorf("invalid page height %v", doc.Geometry.PageHeight)
	}
	pdf, err := p.newFpdf(doc.Geometry.PageHeight)
	if err != nil {
		return err
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	g := doc.Geometry

	for _, page := range doc.Pages() {
		pdf.AddPage()
		pdf.SetFont(p.opts.Font, "", p.opts.FontSize)

		// fpdf measures y from the top edge
		y := g.Top()
		for _, line := range page.Lines() {
			pdf.Text(g.LeftMargin, g.PageHeight-y, tr(line))
			y -= g.LineHeight
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}
