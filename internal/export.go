package internal

import (
	"fmt"
	"io"
	"os"

	"github.com/rtzll/ytbrief/internal/document"
	"github.com/rtzll/ytbrief/internal/pagination"
)

// ExportSettings controls how text is laid out for export
type ExportSettings struct {
	Format   document.Format
	Geometry pagination.Geometry
	Options  document.Options
	// Wrap splits lines wider than the printable width using the PDF font
	// metrics. Word documents are never wrapped since Word reflows them.
	Wrap bool
}

// ExportText paginates text and encodes it to w
func ExportText(w io.Writer, text string, settings ExportSettings) (pagination.Document, error) {
	lines := pagination.SplitLines(text)

	if settings.Wrap && settings.Format != document.FormatDOCX {
		width, _, err := document.PageSize(settings.Options.PageSize)
		if err != nil {
			return pagination.Document{}, err
		}
		lines = document.NewPDF(settings.Options).Wrap(lines, width-2*settings.Geometry.LeftMargin)
	}

	doc := pagination.Paginate(lines, settings.Geometry)

	enc, err := document.NewEncoder(settings.Format, settings.Options)
	if err != nil {
		return pagination.Document{}, err
	}
	if err := enc.Encode(doc, w); err != nil {
		return pagination.Document{}, fmt.Errorf("encoding %s: %w", settings.Format, err)
	}
	return doc, nil
}

// ExportSummary writes summary to path. An empty format is inferred from the
// file extension.
func ExportSummary(summary, path, format string, settings ExportSettings) (pagination.Document, error) {
	f, err := resolveFormat(path, format)
	if err != nil {
		return pagination.Document{}, err
	}
	settings.Format = f

	out, err := os.Create(path)
	if err != nil {
		return pagination.Document{}, fmt.Errorf("creating export file: %w", err)
	}

	doc, err := ExportText(out, summary, settings)
	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("closing export file: %w", closeErr)
	}
	if err != nil {
		_ = os.Remove(path)
		return pagination.Document{}, err
	}
	return doc, nil
}

func resolveFormat(path, format string) (document.Format, error) {
	if format != "" {
		return document.ParseFormat(format)
	}
	return document.FormatFromPath(path)
}
