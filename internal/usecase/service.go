package usecase

import (
	"fmt"

	"faqrag/internal/adapter/faq"
	"faqrag/internal/adapter/vectorstore"
	"faqrag/internal/domain"
	"faqrag/internal/port"
)

// collection pairs an in-memory store with its snapshot backend and
// the FAQ source it is built from when no snapshot exists yet.
type collection struct {
	store    *vectorstore.Store
	snapshot port.SnapshotStore
	source   string
}

// Service is the retrieval facade: it composes splitter, embedder and
// per-collection document stores. Everything above it (HTTP, CLI) only
// talks to this type.
type Service struct {
	embedder    port.Embedder
	splitter    port.Splitter
	collections map[string]*collection
	names       []string
}

// NewService creates a facade with no collections registered.
func NewService(embedder port.Embedder, splitter port.Splitter) *Service {
	return &Service{
		embedder:    embedder,
		splitter:    splitter,
		collections: make(map[string]*collection),
	}
}

// AddCollection registers a named collection. source may be empty for
// collections populated only through Ingest.
func (s *Service) AddCollection(name, source string, snapshot port.SnapshotStore) error {
	if name == "" {
		return fmt.Errorf("collection name must not be empty: %w", vectorstore.ErrInvalidArgument)
	}
	if _, ok := s.collections[name]; ok {
		return fmt.Errorf("collection %q already registered", name)
	}
	s.collections[name] = &collection{
		store:    vectorstore.NewStore(),
		snapshot: snapshot,
		source:   source,
	}
	s.names = append(s.names, name)
	return nil
}

// Collections returns the registered collection names in registration
// order.
func (s *Service) Collections() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *Service) collection(name string) (*collection, error) {
	col, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("unknown collection: %q", name)
	}
	return col, nil
}

// Ingest splits the fragments, embeds all resulting chunks in a single
// batched provider call and adds them to the named collection. The
// embedding call happens before the store is touched, so a slow
// provider never blocks concurrent readers.
func (s *Service) Ingest(name string, fragments []domain.Fragment) ([]domain.Document, error) {
	col, err := s.collection(name)
	if err != nil {
		return nil, err
	}

	var chunks []domain.Fragment
	for _, fragment := range fragments {
		chunks = append(chunks, s.splitter.Split(fragment)...)
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	embeddings, err := s.embedder.Embed(texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed fragments: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(embeddings), len(chunks))
	}

	docs := make([]domain.Document, len(chunks))
	for i, chunk := range chunks {
		docs[i] = domain.Document{
			Content:   chunk.Content,
			Metadata:  chunk.Metadata,
			Embedding: embeddings[i],
		}
	}
	return col.store.Add(docs)
}

// Query embeds the query text and ranks the named collection against
// it. An empty result means nothing scored above the threshold; errors
// are never masked as empty results.
func (s *Service) Query(name, text string, topK int, threshold float64) ([]domain.ScoredDocument, error) {
	col, err := s.collection(name)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, fmt.Errorf("query must not be empty: %w", vectorstore.ErrInvalidArgument)
	}

	embeddings, err := s.embedder.Embed([]string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for one query", len(embeddings))
	}

	return col.store.Search(embeddings[0], topK, threshold)
}

// Get returns a stored document by id from the named collection.
func (s *Service) Get(name, id string) (domain.Document, error) {
	col, err := s.collection(name)
	if err != nil {
		return domain.Document{}, err
	}
	return col.store.Get(id)
}

// Count returns the number of documents in the named collection.
func (s *Service) Count(name string) (int, error) {
	col, err := s.collection(name)
	if err != nil {
		return 0, err
	}
	return col.store.Count(), nil
}

// Save persists the named collection to its snapshot store.
func (s *Service) Save(name string) error {
	col, err := s.collection(name)
	if err != nil {
		return err
	}
	if col.snapshot == nil {
		return nil
	}
	if err := col.snapshot.Save(col.store.All()); err != nil {
		return fmt.Errorf("failed to save collection %q: %w", name, err)
	}
	return nil
}

// SaveAll persists every registered collection.
func (s *Service) SaveAll() error {
	for _, name := range s.names {
		if err := s.Save(name); err != nil {
			return err
		}
	}
	return nil
}

// LoadSnapshots restores every collection whose snapshot exists and
// leaves the rest empty. Used by ingestion, which brings its own source
// files and must not trigger a rebuild from the configured sources.
func (s *Service) LoadSnapshots() error {
	for _, name := range s.names {
		col := s.collections[name]
		if col.snapshot == nil {
			continue
		}
		exists, err := col.snapshot.Exists()
		if err != nil {
			return fmt.Errorf("failed to check snapshot for %q: %w", name, err)
		}
		if !exists {
			continue
		}
		docs, err := col.snapshot.Load()
		if err != nil {
			return fmt.Errorf("failed to load collection %q: %w", name, err)
		}
		if err := col.store.Replace(docs); err != nil {
			return fmt.Errorf("failed to install collection %q: %w", name, err)
		}
	}
	return nil
}

// BootstrapResult summarizes what Bootstrap did per collection.
type BootstrapResult struct {
	Loaded    []string
	Built     []string
	Documents int
}

// Bootstrap initializes every collection: a collection whose snapshot
// exists is loaded from it, skipping re-embedding; otherwise its FAQ
// source file is parsed, ingested and the result saved. Rebuilding only
// ever happens when no snapshot is present.
func (s *Service) Bootstrap() (*BootstrapResult, error) {
	result := &BootstrapResult{}

	for _, name := range s.names {
		col := s.collections[name]

		if col.snapshot != nil {
			exists, err := col.snapshot.Exists()
			if err != nil {
				return nil, fmt.Errorf("failed to check snapshot for %q: %w", name, err)
			}
			if exists {
				docs, err := col.snapshot.Load()
				if err != nil {
					return nil, fmt.Errorf("failed to load collection %q: %w", name, err)
				}
				if err := col.store.Replace(docs); err != nil {
					return nil, fmt.Errorf("failed to install collection %q: %w", name, err)
				}
				result.Loaded = append(result.Loaded, name)
				result.Documents += len(docs)
				continue
			}
		}

		if col.source == "" {
			continue
		}

		items, err := faq.ParseFile(col.source)
		if err != nil {
			return nil, fmt.Errorf("failed to read source for %q: %w", name, err)
		}
		fragments := make([]domain.Fragment, len(items))
		for i, item := range items {
			fragments[i] = faq.Fragment(item, col.source)
		}

		docs, err := s.Ingest(name, fragments)
		if err != nil {
			return nil, fmt.Errorf("failed to build collection %q: %w", name, err)
		}
		if err := s.Save(name); err != nil {
			return nil, err
		}
		result.Built = append(result.Built, name)
		result.Documents += len(docs)
	}

	return result, nil
}
