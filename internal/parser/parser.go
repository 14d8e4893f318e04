// Package parser turns raw document bytes into a built index. It owns all
// format concerns (markdown, HTML, PDF, DOCX, CSV, plain text) and all
// file I/O failures; the index core never sees anything but sections.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"docindex/internal/index"
)

// Parser converts raw document bytes into an Index.
type Parser interface {
	Parse(r io.Reader, docID, filename string) (*index.Index, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// stripExt removes the extension for use as a fallback section title.
func stripExt(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
