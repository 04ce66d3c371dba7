package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"faqrag/internal/adapter/vectorstore"
	"faqrag/internal/domain"
)

func sampleDocs() []domain.Document {
	return []domain.Document{
		{
			ID:        "d1",
			Content:   "Question: What is X?\nAnswer: X is Y.",
			Metadata:  map[string]string{"question": "What is X?", "category": "General"},
			Embedding: []float32{0.25, -0.5, 1},
		},
		{
			ID:        "d2",
			Content:   "Question: What is Z?\nAnswer: Z is W.",
			Metadata:  map[string]string{"question": "What is Z?"},
			Embedding: []float32{0, 0.75, -1},
		},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "vectorstore.json"))
	docs := sampleDocs()

	if err := store.Save(docs); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loaded, docs) {
		t.Errorf("round trip changed the documents:\n%v\nvs\n%v", loaded, docs)
	}

	// Loading twice yields equal collections.
	again, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(again, loaded) {
		t.Error("loading the same snapshot twice gave different results")
	}
}

func TestFileStoreExists(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "vectorstore.json"))

	exists, err := store.Exists()
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("expected Exists to be false before first save")
	}

	if err := store.Save(sampleDocs()); err != nil {
		t.Fatal(err)
	}

	exists, err = store.Exists()
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("expected Exists to be true after save")
	}
}

func TestFileStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "vectorstore.json"))

	if err := store.Save(sampleDocs()); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(sampleDocs()); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "vectorstore.json" {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("expected only the snapshot file, found %s", strings.Join(names, ", "))
	}
}

func TestFileStoreLoadCorruptJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectorstore.json")
	if err := os.WriteFile(path, []byte(`{"dimension": 3, "documents": [truncated`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileStore(path).Load()
	if !errors.Is(err, vectorstore.ErrCorruptSnapshot) {
		t.Fatalf("expected ErrCorruptSnapshot, got %v", err)
	}
}

func TestFileStoreLoadDimensionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectorstore.json")
	content := `{
  "dimension": 3,
  "documents": [
    {"id": "d1", "content": "a", "embedding": [1, 0, 0]},
    {"id": "d2", "content": "b", "embedding": [1, 0]}
  ]
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileStore(path).Load()
	if !errors.Is(err, vectorstore.ErrCorruptSnapshot) {
		t.Fatalf("expected ErrCorruptSnapshot, got %v", err)
	}
}

func TestFileStoreLoadDuplicateIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectorstore.json")
	content := `{
  "dimension": 2,
  "documents": [
    {"id": "dup", "content": "a", "embedding": [1, 0]},
    {"id": "dup", "content": "b", "embedding": [0, 1]}
  ]
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileStore(path).Load()
	if !errors.Is(err, vectorstore.ErrCorruptSnapshot) {
		t.Fatalf("expected ErrCorruptSnapshot, got %v", err)
	}
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := store.Load(); err == nil {
		t.Error("expected error when loading a missing snapshot")
	}
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "nested", "data", "vectorstore.json"))

	if err := store.Save(sampleDocs()); err != nil {
		t.Fatal(err)
	}
	exists, err := store.Exists()
	if err != nil || !exists {
		t.Errorf("expected snapshot in nested directory, exists=%v err=%v", exists, err)
	}
}
