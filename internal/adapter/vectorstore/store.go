package vectorstore

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"faqrag/internal/domain"
)

// Store is an in-memory document collection with exact nearest-neighbor
// search. Documents are kept in insertion order; the embedding dimension
// is fixed by the first successful Add (or Replace) and enforced
// thereafter. All methods are safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	docs []domain.Document
	byID map[string]int
	dim  int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		byID: make(map[string]int),
	}
}

// Add stores the given documents and returns them as stored, ids
// assigned where missing. The whole batch is validated first: on any
// error nothing is stored. Documents must already carry an embedding;
// re-adding a known id fails with ErrDuplicateID.
func (s *Store) Add(docs []domain.Document) ([]domain.Document, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dim := s.dim
	prepared := make([]domain.Document, 0, len(docs))
	seen := make(map[string]struct{}, len(docs))

	for i, doc := range docs {
		if len(doc.Embedding) == 0 {
			return nil, fmt.Errorf("document %d has no embedding: %w", i, ErrInvalidArgument)
		}
		if dim == 0 {
			dim = len(doc.Embedding)
		}
		if len(doc.Embedding) != dim {
			return nil, fmt.Errorf("document %d has dimension %d, collection has %d: %w",
				i, len(doc.Embedding), dim, ErrDimensionMismatch)
		}

		c := doc.Clone()
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if _, ok := s.byID[c.ID]; ok {
			return nil, fmt.Errorf("id %s: %w", c.ID, ErrDuplicateID)
		}
		if _, ok := seen[c.ID]; ok {
			return nil, fmt.Errorf("id %s: %w", c.ID, ErrDuplicateID)
		}
		seen[c.ID] = struct{}{}
		prepared = append(prepared, c)
	}

	for _, doc := range prepared {
		s.byID[doc.ID] = len(s.docs)
		s.docs = append(s.docs, doc)
	}
	s.dim = dim

	out := make([]domain.Document, len(prepared))
	for i, doc := range prepared {
		out[i] = doc.Clone()
	}
	return out, nil
}

// Get returns a copy of the document with the given id.
func (s *Store) Get(id string) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return domain.Document{}, fmt.Errorf("id %s: %w", id, ErrNotFound)
	}
	return s.docs[idx].Clone(), nil
}

// All returns a snapshot of every document in insertion order.
func (s *Store) All() []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Document, len(s.docs))
	for i, doc := range s.docs {
		out[i] = doc.Clone()
	}
	return out
}

// Count returns the number of stored documents.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Dimension returns the established embedding dimension, 0 while empty.
func (s *Store) Dimension() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dim
}

// Search ranks all stored documents against the query vector and
// returns at most topK results scoring at least threshold.
func (s *Store) Search(query []float32, topK int, threshold float64) ([]domain.ScoredDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.dim != 0 && len(query) != s.dim {
		return nil, fmt.Errorf("query has dimension %d, collection has %d: %w",
			len(query), s.dim, ErrDimensionMismatch)
	}

	results, err := Rank(s.docs, query, topK, threshold)
	if err != nil {
		return nil, err
	}
	for i := range results {
		results[i].Document = results[i].Document.Clone()
	}
	return results, nil
}

// Replace installs the given documents as the whole collection,
// discarding any previous state. Used to restore a loaded snapshot.
func (s *Store) Replace(docs []domain.Document) error {
	byID := make(map[string]int, len(docs))
	installed := make([]domain.Document, 0, len(docs))
	dim := 0

	for i, doc := range docs {
		if len(doc.Embedding) == 0 {
			return fmt.Errorf("document %d has no embedding: %w", i, ErrInvalidArgument)
		}
		if dim == 0 {
			dim = len(doc.Embedding)
		}
		if len(doc.Embedding) != dim {
			return fmt.Errorf("document %d has dimension %d, collection has %d: %w",
				i, len(doc.Embedding), dim, ErrDimensionMismatch)
		}
		if doc.ID == "" {
			return fmt.Errorf("document %d has no id: %w", i, ErrInvalidArgument)
		}
		if _, ok := byID[doc.ID]; ok {
			return fmt.Errorf("id %s: %w", doc.ID, ErrDuplicateID)
		}
		byID[doc.ID] = i
		installed = append(installed, doc.Clone())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = installed
	s.byID = byID
	s.dim = dim
	return nil
}
