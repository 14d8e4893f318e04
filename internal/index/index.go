// Package index converts a heading-structured document into an immutable,
// addressable tree of sections. Each section gets a dot-separated
// positional identifier (e.g. "2.3.1") that encodes its ancestry, and the
// index answers structural queries over the frozen tree: outline, single
// node lookup, children listing, subtree text merge, and a lossless JSON
// projection. Once built, an Index never mutates and is safe for
// concurrent reads.
package index

import "strings"

// node is the arena representation of one section. Children are arena
// offsets, so the tree has no pointer cycles and no parent links; ancestry
// is recovered from the identifier itself.
type node struct {
	id       string
	title    string
	depth    int // raw heading level from the source
	text     string
	children []int
}

// Index is a frozen document tree plus a direct-access lookup keyed by
// identifier. All methods are pure reads.
type Index struct {
	docID string
	title string
	nodes []node // arena, in document (pre-order) insertion order
	roots []int
	byID  map[string]int
}

// Node is the record returned by lookup operations.
type Node struct {
	ID         string   `json:"node_id"`
	Title      string   `json:"title"`
	Text       string   `json:"text"`
	Depth      int      `json:"depth"`
	Breadcrumb []string `json:"breadcrumb"`
}

// NodeRef is an (identifier, title) pair, as returned by GetChildren.
type NodeRef struct {
	ID    string `json:"node_id"`
	Title string `json:"title"`
}

// DocID returns the caller-supplied document identifier.
func (ix *Index) DocID() string { return ix.docID }

// Title returns the title of the first top-level heading in document
// order, or "" if the document has none.
func (ix *Index) Title() string { return ix.title }

// Len returns the number of addressable nodes.
func (ix *Index) Len() int { return len(ix.nodes) }

// Empty reports whether the document produced no nodes at all.
func (ix *Index) Empty() bool { return len(ix.nodes) == 0 }

// Outline renders the whole tree as one line per node: the bracketed
// identifier and title, indented two spaces per nesting level. This is
// the compact signal an agent reads before drilling into nodes:
//
//	[1] Introduction
//	  [1.1] Background
//	  [1.2] Goals
//	[2] Methods
func (ix *Index) Outline() string {
	var sb strings.Builder
	for _, root := range ix.roots {
		ix.outlineNode(&sb, root)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (ix *Index) outlineNode(sb *strings.Builder, off int) {
	n := &ix.nodes[off]
	indent := strings.Count(n.id, ".")
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString("[")
	sb.WriteString(n.id)
	sb.WriteString("] ")
	sb.WriteString(n.title)
	sb.WriteString("\n")
	for _, c := range n.children {
		ix.outlineNode(sb, c)
	}
}

// NodeIDs returns every identifier in pre-order: parents before
// descendants, siblings in document order.
func (ix *Index) NodeIDs() []string {
	ids := make([]string, 0, len(ix.nodes))
	for _, root := range ix.roots {
		ids = ix.appendIDs(ids, root)
	}
	return ids
}

func (ix *Index) appendIDs(ids []string, off int) []string {
	ids = append(ids, ix.nodes[off].id)
	for _, c := range ix.nodes[off].children {
		ids = ix.appendIDs(ids, c)
	}
	return ids
}

// GetNode returns the node matching id exactly. The breadcrumb holds the
// titles of every ancestor followed by the node's own title, in
// root-to-leaf order.
func (ix *Index) GetNode(id string) (Node, error) {
	off, ok := ix.byID[id]
	if !ok {
		return Node{}, &NotFoundError{ID: id}
	}
	n := &ix.nodes[off]
	return Node{
		ID:         n.id,
		Title:      n.title,
		Text:       n.text,
		Depth:      n.depth,
		Breadcrumb: ix.breadcrumb(id),
	}, nil
}

// GetChildren returns (identifier, title) pairs for the direct children
// of id, in document order. A leaf yields an empty slice, not an error.
func (ix *Index) GetChildren(id string) ([]NodeRef, error) {
	off, ok := ix.byID[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	refs := make([]NodeRef, 0, len(ix.nodes[off].children))
	for _, c := range ix.nodes[off].children {
		refs = append(refs, NodeRef{ID: ix.nodes[c].id, Title: ix.nodes[c].title})
	}
	return refs, nil
}

// GetNodeWithChildren returns the node with its text replaced by the
// merged body text of the whole subtree: the node's own text followed by
// every descendant's in pre-order, empty bodies skipped, joined with one
// blank line. Title, depth, and breadcrumb are those of the target node.
func (ix *Index) GetNodeWithChildren(id string) (Node, error) {
	off, ok := ix.byID[id]
	if !ok {
		return Node{}, &NotFoundError{ID: id}
	}
	n := &ix.nodes[off]
	var parts []string
	parts = ix.appendTexts(parts, off)
	return Node{
		ID:         n.id,
		Title:      n.title,
		Text:       strings.Join(parts, "\n\n"),
		Depth:      n.depth,
		Breadcrumb: ix.breadcrumb(id),
	}, nil
}

func (ix *Index) appendTexts(parts []string, off int) []string {
	if t := ix.nodes[off].text; t != "" {
		parts = append(parts, t)
	}
	for _, c := range ix.nodes[off].children {
		parts = ix.appendTexts(parts, c)
	}
	return parts
}

// breadcrumb resolves each identifier prefix through the lookup map.
// Every prefix of a valid identifier is itself a valid identifier, so all
// lookups hit.
func (ix *Index) breadcrumb(id string) []string {
	parts := strings.Split(id, ".")
	crumbs := make([]string, 0, len(parts))
	for i := range parts {
		prefix := strings.Join(parts[:i+1], ".")
		if off, ok := ix.byID[prefix]; ok {
			crumbs = append(crumbs, ix.nodes[off].title)
		}
	}
	return crumbs
}
