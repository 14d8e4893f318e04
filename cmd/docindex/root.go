package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"docindex/internal/index"
	"docindex/internal/parser"
)

var docID string

var rootCmd = &cobra.Command{
	Use:   "docindex",
	Short: "Navigate heading-structured documents by section",
	Long: `docindex converts a heading-structured document into an addressable
tree of sections and answers structural queries over it: the outline, a
single section, a section's children, or the full tree as JSON.

Section identifiers are dot-separated positions (e.g. 2.3.1); the outline
lists them all.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&docID, "doc-id", "", "document identifier (defaults to the filename without extension)")
}

// loadIndex parses the given file into an index.
func loadIndex(path string) (*index.Index, error) {
	id := docID
	if id == "" {
		base := filepath.Base(path)
		id = strings.TrimSuffix(base, filepath.Ext(base))
	}

	p, err := parser.ForFile(path)
	if err != nil {
		return nil, err
	}
	if pdf, ok := p.(*parser.PDFParser); ok {
		pdf.FallbackPdftotext = true
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ix, err := p.Parse(f, id, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if ix.Empty() {
		fmt.Fprintf(os.Stderr, "warning: %s has no headings; the index is empty\n", path)
	}
	return ix, nil
}
