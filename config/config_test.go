package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Search.TopK != 5 || cfg.Search.AskTopK != 3 {
		t.Errorf("unexpected default topK: %+v", cfg.Search)
	}
	if cfg.Search.SimilarityThreshold != 0.7 {
		t.Errorf("expected default threshold 0.7, got %f", cfg.Search.SimilarityThreshold)
	}
	if cfg.Splitter.ChunkTokens != 1000 {
		t.Errorf("expected default chunk size 1000, got %d", cfg.Splitter.ChunkTokens)
	}
	if len(cfg.Collections) != 2 {
		t.Fatalf("expected 2 default collections, got %d", len(cfg.Collections))
	}
	if cfg.Collections[0].Name != "faq" || cfg.Collections[1].Name != "olympic" {
		t.Errorf("unexpected default collections: %v", cfg.Collections)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "faqrag.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faqrag.yaml")
	content := `
server:
  port: 9090
search:
  top_k: 10
store:
  backend: bolt
  dir: /tmp/faqrag
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Search.TopK != 10 {
		t.Errorf("expected topK 10, got %d", cfg.Search.TopK)
	}
	if cfg.Store.Backend != "bolt" {
		t.Errorf("expected bolt backend, got %q", cfg.Store.Backend)
	}
	// Untouched sections keep their defaults.
	if cfg.Search.SimilarityThreshold != 0.7 {
		t.Errorf("expected default threshold to survive, got %f", cfg.Search.SimilarityThreshold)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faqrag.yaml")
	if err := os.WriteFile(path, []byte("server: [not a mapping"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faqrag.yaml")

	cfg := DefaultConfig()
	cfg.Server.Port = 9999
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Server.Port != 9999 {
		t.Errorf("expected saved port 9999, got %d", loaded.Server.Port)
	}
}

func TestCollectionLookup(t *testing.T) {
	cfg := DefaultConfig()

	col, ok := cfg.Collection("")
	if !ok || col.Name != "faq" {
		t.Errorf("expected empty name to select the first collection, got %v ok=%v", col, ok)
	}

	col, ok = cfg.Collection("olympic")
	if !ok || col.Source != "docs/olympic-faq.txt" {
		t.Errorf("unexpected olympic collection: %v ok=%v", col, ok)
	}

	if _, ok := cfg.Collection("nope"); ok {
		t.Error("expected lookup of unknown collection to fail")
	}
}

func TestSnapshotPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Store.Dir = "data"

	col, _ := cfg.Collection("faq")
	if got := cfg.SnapshotPath(col); got != filepath.Join("data", "vectorstore.json") {
		t.Errorf("unexpected snapshot path %q", got)
	}
	if got := cfg.BoltDBPath(); got != filepath.Join("data", "vectorstore.db") {
		t.Errorf("unexpected bolt path %q", got)
	}
}
