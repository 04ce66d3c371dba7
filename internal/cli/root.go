package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"faqrag/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "faqrag",
	Short: "FAQ retrieval service backed by an embedded vector store",
	Long: `faqrag ingests FAQ text files into named vector collections, persists
them as snapshots so restarts skip re-embedding, and answers semantic
search and RAG-style questions over them.

Example usage:
  faqrag ingest docs/               # Ingest FAQ files into a collection
  faqrag query -q "refund policy"   # Search the default collection
  faqrag ask -q "how do I refund?"  # Ask with an LLM-generated answer
  faqrag serve                      # Start the HTTP API`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./faqrag.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
