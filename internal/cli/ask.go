package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"faqrag/internal/adapter/llm"
	"faqrag/internal/usecase"
)

var (
	askText       string
	askTopK       int
	askCollection string
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask a question answered by the chat model over retrieved FAQs",
	Long: `Retrieve relevant FAQ items and generate an answer with the configured
chat model.

Examples:
  faqrag ask -q "How do I get a refund?"
  faqrag ask -q "When is the opening ceremony?" -c olympic`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askText, "query", "q", "", "question (required)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of FAQ items used as context (default from config)")
	askCmd.Flags().StringVarP(&askCollection, "collection", "c", "", "collection to search (default is the first configured)")
	askCmd.MarkFlagRequired("query")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	col, ok := cfg.Collection(askCollection)
	if !ok {
		return fmt.Errorf("unknown collection: %q", askCollection)
	}

	topK := cfg.Search.AskTopK
	if askTopK > 0 {
		topK = askTopK
	}

	svc, closer, err := buildService(cfg)
	if err != nil {
		return err
	}
	defer closer()

	if _, err := svc.Bootstrap(); err != nil {
		return err
	}

	asker, err := usecase.NewAsker(svc, llm.NewOllamaClient(cfg.LLM))
	if err != nil {
		return err
	}

	answer, err := asker.Ask(col.Name, askText, topK, cfg.Search.SimilarityThreshold)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	fmt.Println(answer.Answer)
	if len(answer.RelevantFAQs) > 0 {
		fmt.Printf("\nBased on %d FAQ items:\n", len(answer.RelevantFAQs))
		for i, item := range answer.RelevantFAQs {
			fmt.Printf("  [%d] %s\n", i+1, item.Question)
		}
	}
	return nil
}
