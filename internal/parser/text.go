package parser

import (
	"io"
	"strings"

	"docindex/internal/index"
)

// TextParser handles plain text files. Plain text carries no heading
// structure, so the whole file becomes a single section titled by the
// filename; otherwise the document would have no addressable nodes.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, docID, filename string) (*index.Index, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	body := strings.TrimSpace(string(src))
	if body == "" {
		return index.FromSections(docID, nil)
	}

	return index.FromSections(docID, []index.Section{
		{Level: 1, Title: stripExt(filename), Body: body},
	})
}
