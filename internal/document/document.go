// Package document encodes paginated text into downloadable files.
package document

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rtzll/ytbrief/internal/pagination"
)

// Encoder serializes a paginated document.
type Encoder interface {
	Encode(doc pagination.Document, w io.Writer) error
}

// Format identifies an output file format
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "txt"
)

// Formats lists the supported formats
var Formats = []Format{FormatPDF, FormatDOCX, FormatText}

// ParseFormat converts a user supplied format name
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "pdf":
		return FormatPDF, nil
	case "docx":
		return FormatDOCX, nil
	case "txt", "text":
		return FormatText, nil
	}
	return "", fmt.Errorf("unsupported export format: %q (supported: pdf, docx, txt)", s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("cannot infer export format from %q, use --format", path)
	}
	return ParseFormat(ext)
}

// Options configures the encoders
type Options struct {
	Title    string
	Font     string
	FontSize float64
	PageSize string
}

// DefaultOptions matches the Letter geometry in package pagination.
var DefaultOptions = Options{
	Font:     "Helvetica",
	FontSize: 11,
	PageSize: "Letter",
}

// NewEncoder returns the encoder for format
func NewEncoder(format Format, opts Options) (Encoder, error) {
	switch format {
	case FormatPDF:
		return NewPDF(opts), nil
	case FormatDOCX:
		return NewDOCX(opts), nil
	case FormatText:
		return Text{}, nil
	}
	return nil, fmt.Errorf("unsupported export format: %q", format)
}
