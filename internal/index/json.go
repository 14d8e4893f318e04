package index

import (
	"encoding/json"
	"errors"
	"fmt"
)

// treeJSON is the wire shape of a full index projection.
type treeJSON struct {
	DocID    string     `json:"doc_id"`
	Title    string     `json:"title"`
	Sections []nodeJSON `json:"sections"`
}

type nodeJSON struct {
	ID       string     `json:"node_id"`
	Title    string     `json:"title"`
	Depth    int        `json:"depth"`
	Text     string     `json:"text"`
	Children []nodeJSON `json:"children,omitempty"`
}

// MarshalJSON serializes the full tree in document order. The projection
// round-trips through FromJSON without losing identifiers, titles,
// depths, body texts, or ordering.
func (ix *Index) MarshalJSON() ([]byte, error) {
	out := treeJSON{
		DocID:    ix.docID,
		Title:    ix.title,
		Sections: make([]nodeJSON, 0, len(ix.roots)),
	}
	for _, root := range ix.roots {
		out.Sections = append(out.Sections, ix.projectNode(root))
	}
	return json.Marshal(out)
}

func (ix *Index) projectNode(off int) nodeJSON {
	n := &ix.nodes[off]
	out := nodeJSON{
		ID:    n.id,
		Title: n.title,
		Depth: n.depth,
		Text:  n.text,
	}
	for _, c := range n.children {
		out.Children = append(out.Children, ix.projectNode(c))
	}
	return out
}

// ToJSON returns the indented projection, suitable for handing to an
// agent or persisting outside the core.
func (ix *Index) ToJSON() ([]byte, error) {
	return json.MarshalIndent(ix, "", "  ")
}

// FromJSON reconstructs an Index from a projection produced by
// MarshalJSON. Identifiers are taken as stored, not recomputed, so a
// serialized tree comes back exactly as it went out.
func FromJSON(data []byte) (*Index, error) {
	var in treeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}
	if in.DocID == "" {
		return nil, errors.New("decode index: missing doc_id")
	}

	ix := &Index{
		docID: in.DocID,
		title: in.Title,
		byID:  make(map[string]int),
	}
	for _, sec := range in.Sections {
		off, err := ix.restoreNode(sec)
		if err != nil {
			return nil, err
		}
		ix.roots = append(ix.roots, off)
	}
	return ix, nil
}

func (ix *Index) restoreNode(in nodeJSON) (int, error) {
	if in.ID == "" {
		return 0, errors.New("decode index: node with empty node_id")
	}
	if _, dup := ix.byID[in.ID]; dup {
		return 0, fmt.Errorf("decode index: duplicate node_id %q", in.ID)
	}

	off := len(ix.nodes)
	ix.nodes = append(ix.nodes, node{
		id:    in.ID,
		title: in.Title,
		depth: in.Depth,
		text:  in.Text,
	})
	ix.byID[in.ID] = off

	for _, c := range in.Children {
		child, err := ix.restoreNode(c)
		if err != nil {
			return 0, err
		}
		ix.nodes[off].children = append(ix.nodes[off].children, child)
	}
	return off, nil
}
