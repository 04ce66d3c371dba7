package cli

import (
	"fmt"
	"os"

	"faqrag/config"
	"faqrag/internal/adapter/embedding"
	"faqrag/internal/adapter/snapshot"
	"faqrag/internal/adapter/splitter"
	"faqrag/internal/port"
	"faqrag/internal/usecase"
)

// newEmbedder creates the configured embedding provider.
func newEmbedder(cfg config.EmbeddingConfig) (port.Embedder, error) {
	switch cfg.Provider {
	case "openai":
		return embedding.NewOpenAIEmbedder(cfg.APIKeyEnv, cfg.Model)
	case "ollama":
		return embedding.NewOllamaEmbedder(cfg.Model, cfg.BaseURL)
	case "mock":
		return embedding.NewMockEmbedder(cfg.Dimension), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}

// buildService wires the retrieval facade from configuration: embedder,
// splitter and one store plus snapshot backend per declared collection.
// The returned closer releases the snapshot backend.
func buildService(cfg *config.Config) (*usecase.Service, func(), error) {
	embedder, err := newEmbedder(cfg.Embedding)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	svc := usecase.NewService(embedder, splitter.NewTokenSplitter(cfg.Splitter.ChunkTokens))
	closer := func() {}

	switch cfg.Store.Backend {
	case "bolt":
		if err := os.MkdirAll(cfg.Store.Dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create store directory: %w", err)
		}
		db, err := snapshot.OpenBolt(cfg.BoltDBPath())
		if err != nil {
			return nil, nil, err
		}
		closer = func() { db.Close() }
		for _, col := range cfg.Collections {
			if err := svc.AddCollection(col.Name, col.Source, snapshot.NewBoltStore(db, col.Name)); err != nil {
				closer()
				return nil, nil, err
			}
		}
	case "json", "":
		for _, col := range cfg.Collections {
			if err := svc.AddCollection(col.Name, col.Source, snapshot.NewFileStore(cfg.SnapshotPath(col))); err != nil {
				return nil, nil, err
			}
		}
	default:
		return nil, nil, fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend)
	}

	return svc, closer, nil
}
