package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"docindex/internal/index"

	"github.com/go-chi/chi/v5"
)

// lookupIndex resolves the docID route param against the store, writing a
// 404 and returning nil when the document is not held.
func (s *Server) lookupIndex(w http.ResponseWriter, r *http.Request) *index.Index {
	docID := chi.URLParam(r, "docID")
	ix := s.docs.Get(docID)
	if ix == nil {
		jsonError(w, fmt.Sprintf("document not found: %s", docID), http.StatusNotFound)
		return nil
	}
	return ix
}

// handleOutline returns the whole tree as the compact, line-oriented
// outline an agent reads before requesting nodes.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	ix := s.lookupIndex(w, r)
	if ix == nil {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, ix.Outline())
}

// handleNodeIDs returns every identifier in pre-order.
func (s *Server) handleNodeIDs(w http.ResponseWriter, r *http.Request) {
	ix := s.lookupIndex(w, r)
	if ix == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":   ix.DocID(),
		"node_ids": ix.NodeIDs(),
	})
}

// handleGetNode returns one node record. With ?with_children=true the
// text field holds the merged body text of the whole subtree.
func (s *Server) handleGetNode(w http.ResponseWriter, r *http.Request) {
	ix := s.lookupIndex(w, r)
	if ix == nil {
		return
	}
	nodeID := chi.URLParam(r, "nodeID")

	var (
		node index.Node
		err  error
	)
	if r.URL.Query().Get("with_children") == "true" {
		node, err = ix.GetNodeWithChildren(nodeID)
	} else {
		node, err = ix.GetNode(nodeID)
	}
	if err != nil {
		s.nodeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(node)
}

// handleGetChildren returns (identifier, title) pairs for direct children.
func (s *Server) handleGetChildren(w http.ResponseWriter, r *http.Request) {
	ix := s.lookupIndex(w, r)
	if ix == nil {
		return
	}
	nodeID := chi.URLParam(r, "nodeID")

	children, err := ix.GetChildren(nodeID)
	if err != nil {
		s.nodeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"children": children})
}

// handleTree returns the full JSON projection of the index.
func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	ix := s.lookupIndex(w, r)
	if ix == nil {
		return
	}
	out, err := ix.ToJSON()
	if err != nil {
		jsonError(w, "serialize tree: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(out)
}

func (s *Server) nodeError(w http.ResponseWriter, err error) {
	if index.IsNotFound(err) {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	jsonError(w, err.Error(), http.StatusInternalServerError)
}
