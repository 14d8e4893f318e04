package parser

import (
	"bytes"
	"io"
	"strings"

	"docindex/internal/index"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Going through the
// AST instead of raw lines means a '#' inside a fenced code block is never
// mistaken for a heading.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, docID, filename string) (*index.Index, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var sections []index.Section
	var currentText bytes.Buffer

	flushText := func() {
		if len(sections) == 0 {
			// Content before the first heading belongs to no section.
			currentText.Reset()
			return
		}
		t := strings.TrimSpace(currentText.String())
		if t != "" {
			body := &sections[len(sections)-1].Body
			if *body != "" {
				*body += "\n\n" + t
			} else {
				*body = t
			}
		}
		currentText.Reset()
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			flushText()
			sections = append(sections, index.Section{
				Level: node.Level,
				Title: string(node.Text(src)),
			})
		default:
			t := extractText(n, src)
			if t != "" {
				if currentText.Len() > 0 {
					currentText.WriteString("\n\n")
				}
				currentText.WriteString(t)
			}
		}
	}
	flushText()

	return index.FromSections(docID, sections)
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	// Also handle inline children.
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			// Recurse for nested inlines.
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
