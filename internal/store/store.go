// Package store is a thread-safe in-memory registry of built indexes.
// Documents live for a retrieval session: a TTL sweep evicts entries that
// have not been read recently.
package store

import (
	"sort"
	"sync"
	"time"

	"docindex/internal/index"
)

// Info is a read-only summary of a stored document.
type Info struct {
	DocID     string    `json:"doc_id"`
	Title     string    `json:"title"`
	NodeCount int       `json:"node_count"`
	AddedAt   time.Time `json:"added_at"`
}

type entry struct {
	ix       *index.Index
	addedAt  time.Time
	lastUsed time.Time
}

// Store holds indexes keyed by document identifier. Stored indexes are
// immutable, so Get hands back the same instance to every caller.
type Store struct {
	mu   sync.Mutex
	docs map[string]*entry
	ttl  time.Duration
}

// New creates a store. A non-positive ttl disables eviction.
func New(ttl time.Duration) *Store {
	return &Store{
		docs: make(map[string]*entry),
		ttl:  ttl,
	}
}

// Put registers an index under its document identifier, replacing any
// previous index for the same document.
func (s *Store) Put(ix *index.Index) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.docs[ix.DocID()] = &entry{ix: ix, addedAt: now, lastUsed: now}
}

// Get returns the index for docID, or nil if none is stored. A hit
// refreshes the entry's eviction clock.
func (s *Store) Get(docID string) *index.Index {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.docs[docID]
	if !ok {
		return nil
	}
	e.lastUsed = time.Now()
	return e.ix
}

// Delete removes a document. It reports whether anything was removed.
func (s *Store) Delete(docID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[docID]; !ok {
		return false
	}
	delete(s.docs, docID)
	return true
}

// List returns summaries of all stored documents, most recent first.
func (s *Store) List() []Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	infos := make([]Info, 0, len(s.docs))
	for _, e := range s.docs {
		infos = append(infos, Info{
			DocID:     e.ix.DocID(),
			Title:     e.ix.Title(),
			NodeCount: e.ix.Len(),
			AddedAt:   e.addedAt,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].AddedAt.After(infos[j].AddedAt)
	})
	return infos
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

// Cleanup evicts documents idle for longer than the TTL.
func (s *Store) Cleanup() {
	if s.ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, e := range s.docs {
		if now.Sub(e.lastUsed) > s.ttl {
			delete(s.docs, id)
		}
	}
}
