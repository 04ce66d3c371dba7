package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"faqrag/internal/adapter/vectorstore"
	"faqrag/internal/domain"
)

// snapshotFile is the on-disk layout: the declared dimension plus every
// document in insertion order. JSON keeps it human-inspectable.
type snapshotFile struct {
	Dimension int               `json:"dimension"`
	Documents []domain.Document `json:"documents"`
}

// FileStore persists a collection as a single JSON file. Saves write to
// a temporary file in the same directory and rename it into place, so a
// crash mid-write never leaves a truncated snapshot behind.
type FileStore struct {
	path string
}

// NewFileStore creates a snapshot store writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the snapshot file location.
func (f *FileStore) Path() string {
	return f.path
}

// Save writes the documents as one snapshot, replacing any previous one.
func (f *FileStore) Save(docs []domain.Document) error {
	dim := 0
	if len(docs) > 0 {
		dim = len(docs[0].Embedding)
	}

	data, err := json.MarshalIndent(snapshotFile{
		Dimension: dim,
		Documents: docs,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}

	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move snapshot into place: %w", err)
	}
	return nil
}

// Load reads the snapshot back in document order.
func (f *FileStore) Load() ([]domain.Document, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", f.path, err, vectorstore.ErrCorruptSnapshot)
	}

	if err := validate(file.Dimension, file.Documents); err != nil {
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}
	return file.Documents, nil
}

// Exists reports whether a snapshot file is present.
func (f *FileStore) Exists() (bool, error) {
	_, err := os.Stat(f.path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// validate checks snapshot consistency: non-empty unique ids and one
// embedding dimension across every document.
func validate(dim int, docs []domain.Document) error {
	seen := make(map[string]struct{}, len(docs))
	for i, doc := range docs {
		if doc.ID == "" {
			return fmt.Errorf("document %d has no id: %w", i, vectorstore.ErrCorruptSnapshot)
		}
		if _, ok := seen[doc.ID]; ok {
			return fmt.Errorf("duplicate id %s: %w", doc.ID, vectorstore.ErrCorruptSnapshot)
		}
		seen[doc.ID] = struct{}{}

		if dim == 0 {
			dim = len(doc.Embedding)
		}
		if len(doc.Embedding) == 0 || len(doc.Embedding) != dim {
			return fmt.Errorf("document %s has dimension %d, snapshot declares %d: %w",
				doc.ID, len(doc.Embedding), dim, vectorstore.ErrCorruptSnapshot)
		}
	}
	return nil
}
