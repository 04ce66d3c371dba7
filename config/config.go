package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the FAQ retrieval service.
type Config struct {
	Server      ServerConfig       `yaml:"server"`
	Embedding   EmbeddingConfig    `yaml:"embedding"`
	LLM         LLMConfig          `yaml:"llm"`
	Splitter    SplitterConfig     `yaml:"splitter"`
	Search      SearchConfig       `yaml:"search"`
	Store       StoreConfig        `yaml:"store"`
	Collections []CollectionConfig `yaml:"collections"`
	Ingest      IngestConfig       `yaml:"ingest"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// EmbeddingConfig holds embedding provider configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`    // "openai", "ollama", "mock"
	Model     string `yaml:"model"`       // e.g., "nomic-embed-text"
	APIKeyEnv string `yaml:"api_key_env"` // environment variable for API key
	BaseURL   string `yaml:"base_url"`
	Dimension int    `yaml:"dimension"` // used by the mock provider
}

// LLMConfig holds chat model configuration for answer generation.
type LLMConfig struct {
	Host        string  `yaml:"host"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
}

// SplitterConfig holds text splitting configuration.
type SplitterConfig struct {
	ChunkTokens int `yaml:"chunk_tokens"`
}

// SearchConfig holds similarity search configuration.
type SearchConfig struct {
	TopK                int     `yaml:"top_k"`
	AskTopK             int     `yaml:"ask_top_k"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
}

// StoreConfig holds snapshot persistence configuration.
type StoreConfig struct {
	Backend string `yaml:"backend"` // "json" or "bolt"
	Dir     string `yaml:"dir"`
}

// CollectionConfig declares one named collection: the FAQ source it is
// built from and the snapshot it is persisted to.
type CollectionConfig struct {
	Name     string `yaml:"name"`
	Source   string `yaml:"source"`
	Snapshot string `yaml:"snapshot"`
}

// IngestConfig holds source discovery patterns for bulk ingestion.
type IngestConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Embedding: EmbeddingConfig{
			Provider:  "ollama",
			Model:     "nomic-embed-text",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 768,
		},
		LLM: LLMConfig{
			Host:        "http://localhost:11434",
			Model:       "llama3.2",
			Temperature: 1.0,
		},
		Splitter: SplitterConfig{
			ChunkTokens: 1000,
		},
		Search: SearchConfig{
			TopK:                5,
			AskTopK:             3,
			SimilarityThreshold: 0.7,
		},
		Store: StoreConfig{
			Backend: "json",
			Dir:     "data",
		},
		Collections: []CollectionConfig{
			{Name: "faq", Source: "docs/faq.txt", Snapshot: "vectorstore.json"},
			{Name: "olympic", Source: "docs/olympic-faq.txt", Snapshot: "olympic-vectorstore.json"},
		},
		Ingest: IngestConfig{
			Includes: []string{"**/*.txt"},
			Excludes: []string{"**/node_modules/**", "**/.git/**"},
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults
// when the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for faqrag.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "faqrag.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}
	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Collection returns the configuration for the named collection. An
// empty name selects the first configured collection.
func (c *Config) Collection(name string) (CollectionConfig, bool) {
	if name == "" && len(c.Collections) > 0 {
		return c.Collections[0], true
	}
	for _, col := range c.Collections {
		if col.Name == name {
			return col, true
		}
	}
	return CollectionConfig{}, false
}

// SnapshotPath returns the on-disk location of a collection snapshot.
func (c *Config) SnapshotPath(col CollectionConfig) string {
	return filepath.Join(c.Store.Dir, col.Snapshot)
}

// BoltDBPath returns the shared bolt database location for the bolt
// snapshot backend.
func (c *Config) BoltDBPath() string {
	return filepath.Join(c.Store.Dir, "vectorstore.db")
}
