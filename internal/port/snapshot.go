package port

import "faqrag/internal/domain"

// SnapshotStore persists a whole collection and restores it, so startup
// can skip re-embedding when a snapshot already exists.
type SnapshotStore interface {
	// Save writes the documents as one snapshot, replacing any
	// previous one. The write is atomic with respect to crashes.
	Save(docs []domain.Document) error

	// Load reads the snapshot back in document order. It fails with
	// vectorstore.ErrCorruptSnapshot when the data cannot be fully
	// parsed or the embedding dimensions disagree.
	Load() ([]domain.Document, error)

	// Exists reports whether a snapshot is present.
	Exists() (bool, error)
}
