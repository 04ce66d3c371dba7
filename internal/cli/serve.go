package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"faqrag/internal/adapter/llm"
	"faqrag/internal/api"
	"faqrag/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Initialize every configured collection (loading snapshots where they
exist, building and saving them otherwise) and serve the FAQ API.

Endpoints:
  GET /health
  GET /api/faq/search?query=...&topK=5&collection=faq
  GET /api/faq/ask?query=...&topK=3&collection=faq`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	svc, closer, err := buildService(cfg)
	if err != nil {
		return err
	}
	defer closer()

	result, err := svc.Bootstrap()
	if err != nil {
		return err
	}
	if len(result.Loaded) > 0 {
		fmt.Printf("Loaded collections from snapshots: %s\n", strings.Join(result.Loaded, ", "))
	}
	if len(result.Built) > 0 {
		fmt.Printf("Built collections from sources: %s\n", strings.Join(result.Built, ", "))
	}
	fmt.Printf("Serving %d documents across %d collections\n", result.Documents, len(svc.Collections()))

	asker, err := usecase.NewAsker(svc, llm.NewOllamaClient(cfg.LLM))
	if err != nil {
		return err
	}

	return api.NewServer(cfg, svc, asker).Run()
}
