package index

import (
	"errors"
	"strconv"
	"strings"
)

// Section is one pre-segmented slice of a document: a heading level, the
// heading text, and the body that followed it. Format front-ends (HTML,
// DOCX, PDF, ...) produce these; FromSections folds them into an Index
// with the same identifier scheme the markdown builder uses.
type Section struct {
	Level int    // Heading level as it appeared in the source (1-based).
	Title string
	Body  string
}

// New builds an Index from heading-structured text. Lines starting with a
// run of '#' markers open a new section; everything else is body text for
// whichever section is currently open. Text before the first heading is
// discarded. Any input is legal; a document with no headings builds a
// valid zero-node index.
func New(docID, text string) (*Index, error) {
	return FromSections(docID, scan(text))
}

// FromSections builds an Index from an already-segmented document.
// Identifiers are assigned from tree nesting, not from the raw levels: a
// jump from level 1 to level 3 nests one step, so the tree never has gaps.
// The raw level is kept on each node as its depth.
func FromSections(docID string, sections []Section) (*Index, error) {
	if docID == "" {
		return nil, errors.New("document id is required")
	}

	ix := &Index{
		docID: docID,
		byID:  make(map[string]int, len(sections)),
	}

	// Stack of open ancestors, one per active nesting level, plus a
	// sibling counter per nesting level.
	var stack []int // arena offsets of open nodes
	var counters []int

	for _, sec := range sections {
		// Close ancestors at the same or a deeper raw level. Whatever
		// remains on top is the parent, and the new node nests one step
		// below it.
		for len(stack) > 0 && ix.nodes[stack[len(stack)-1]].depth >= sec.Level {
			stack = stack[:len(stack)-1]
		}
		nesting := len(stack) + 1

		if len(counters) < nesting {
			counters = append(counters, 0)
		}
		counters = counters[:nesting]
		counters[nesting-1]++

		id := strconv.Itoa(counters[nesting-1])
		if len(stack) > 0 {
			id = ix.nodes[stack[len(stack)-1]].id + "." + id
		}

		off := len(ix.nodes)
		ix.nodes = append(ix.nodes, node{
			id:    id,
			title: sec.Title,
			depth: sec.Level,
			text:  strings.TrimSpace(sec.Body),
		})
		ix.byID[id] = off

		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			ix.nodes[parent].children = append(ix.nodes[parent].children, off)
		} else {
			ix.roots = append(ix.roots, off)
		}
		stack = append(stack, off)

		if ix.title == "" && sec.Level == 1 {
			ix.title = sec.Title
		}
	}

	return ix, nil
}

// scan splits heading-structured text into sections. Each line is either
// a heading (marker count + title) or content; content before the first
// heading belongs to no section and is dropped. The text arrives fully in
// memory, so lines can be arbitrarily long.
func scan(text string) []Section {
	var sections []Section
	var body []string
	open := false
	var level int
	var title string

	flush := func() {
		if open {
			sections = append(sections, Section{
				Level: level,
				Title: title,
				Body:  strings.Join(body, "\n"),
			})
		}
	}

	for rest := text; rest != ""; {
		var line string
		line, rest, _ = strings.Cut(rest, "\n")
		line = strings.TrimSuffix(line, "\r")
		if lvl, t, ok := parseHeading(line); ok {
			flush()
			level, title = lvl, t
			body = body[:0]
			open = true
		} else if open {
			body = append(body, line)
		}
	}
	flush()

	return sections
}

// parseHeading classifies a line. A heading is a run of '#' markers
// followed by a non-empty title; a marker run with nothing after it is
// ordinary content.
func parseHeading(line string) (level int, title string, ok bool) {
	if !strings.HasPrefix(line, "#") {
		return 0, "", false
	}
	for level < len(line) && line[level] == '#' {
		level++
	}
	title = strings.TrimSpace(line[level:])
	if title == "" {
		return 0, "", false
	}
	return level, title, true
}
