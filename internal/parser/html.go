package parser

import (
	"fmt"
	"io"
	"strings"

	"docindex/internal/index"

	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. Sections come from h1-h6 tags; text from
// content elements between them.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, docID, filename string) (*index.Index, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var sections []index.Section
	var currentText strings.Builder
	var preamble strings.Builder

	flushText := func() {
		t := strings.TrimSpace(currentText.String())
		if t != "" {
			if len(sections) == 0 {
				preamble.WriteString(t)
			} else {
				body := &sections[len(sections)-1].Body
				if *body != "" {
					*body += "\n\n" + t
				} else {
					*body = t
				}
			}
		}
		currentText.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			level := headingLevel(n.Data)
			if level > 0 {
				flushText()
				sections = append(sections, index.Section{
					Level: level,
					Title: textContent(n),
				})
				return // Heading text already extracted.
			}

			// Skip non-content elements.
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "p", "li", "td", "blockquote", "pre":
				t := textContent(n)
				if t != "" {
					if currentText.Len() > 0 {
						currentText.WriteString("\n\n")
					}
					currentText.WriteString(t)
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	body := findBody(doc)
	if body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	flushText()

	// No heading tags at all: fall back to one section so the document
	// stays addressable, titled from <title> or the filename.
	if len(sections) == 0 && preamble.Len() > 0 {
		title := findTitle(doc)
		if title == "" {
			title = stripExt(filename)
		}
		sections = []index.Section{{Level: 1, Title: title, Body: preamble.String()}}
	}

	return index.FromSections(docID, sections)
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
