package api

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"docindex/internal/index"
	"docindex/internal/parser"

	"github.com/go-chi/chi/v5"
)

// handleCreateDocument builds and stores an index. The request is either
// a multipart upload (field "file", any supported format) or a JSON body
// {"doc_id": ..., "text": ...} with heading-structured text.
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		s.createFromUpload(w, r)
		return
	}
	s.createFromText(w, r)
}

func (s *Server) createFromText(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req struct {
		DocID      string `json:"doc_id"`
		Text       string `json:"text"`
		AllowEmpty bool   `json:"allow_empty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.DocID == "" {
		req.DocID = contentHashHex([]byte(req.Text))[:16]
	}

	ix, err := index.New(req.DocID, req.Text)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.finishCreate(w, ix, req.AllowEmpty)
}

func (s *Server) createFromUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size, with slack for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	docID := r.FormValue("doc_id")
	if docID == "" {
		docID = contentHashHex(data)[:16]
	}

	p, err := parser.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if pdf, ok := p.(*parser.PDFParser); ok {
		pdf.FallbackPdftotext = s.cfg.PDFFallbackPdftotext
	}

	ix, err := p.Parse(bytes.NewReader(data), docID, filename)
	if err != nil {
		jsonError(w, "parse failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.finishCreate(w, ix, r.FormValue("allow_empty") == "true")
}

func (s *Server) finishCreate(w http.ResponseWriter, ix *index.Index, allowEmpty bool) {
	if ix.Empty() && !allowEmpty {
		jsonError(w, index.ErrEmptyDocument.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.docs.Put(ix)
	s.log.Info("document indexed", "doc_id", ix.DocID(), "title", ix.Title(), "nodes", ix.Len())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":     ix.DocID(),
		"title":      ix.Title(),
		"node_count": ix.Len(),
	})
}

// handleListDocuments lists all stored documents.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": s.docs.List()})
}

// handleDeleteDocument removes a document from the store.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if !s.docs.Delete(docID) {
		jsonError(w, fmt.Sprintf("document not found: %s", docID), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}

// contentHashHex computes SHA-256 of content and returns a hex string.
func contentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
