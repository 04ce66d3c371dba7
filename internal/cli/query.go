package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"faqrag/internal/adapter/faq"
)

var (
	queryText       string
	queryTopK       int
	queryThreshold  float64
	queryCollection string
	queryJSON       bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Search a collection by semantic similarity",
	Long: `Search the vector store for FAQ items similar to the query.

Examples:
  faqrag query -q "refund policy"
  faqrag query -q "opening ceremony" -c olympic --top-k 10 --json`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "search query (required)")
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of results (default from config)")
	queryCmd.Flags().Float64VarP(&queryThreshold, "threshold", "t", 0, "minimum similarity score (default from config)")
	queryCmd.Flags().StringVarP(&queryCollection, "collection", "c", "", "collection to search (default is the first configured)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.MarkFlagRequired("query")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	col, ok := cfg.Collection(queryCollection)
	if !ok {
		return fmt.Errorf("unknown collection: %q", queryCollection)
	}

	topK := cfg.Search.TopK
	if queryTopK > 0 {
		topK = queryTopK
	}
	threshold := cfg.Search.SimilarityThreshold
	if cmd.Flags().Changed("threshold") {
		threshold = queryThreshold
	}

	svc, closer, err := buildService(cfg)
	if err != nil {
		return err
	}
	defer closer()

	if _, err := svc.Bootstrap(); err != nil {
		return err
	}

	results, err := svc.Query(col.Name, queryText, topK, threshold)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if queryJSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d results for: %s\n\n", len(results), queryText)
	for i, r := range results {
		item := faq.ItemFromDocument(r.Document)
		fmt.Printf("--- [%d] score %.3f (%s) ---\n", i+1, r.Score, item.Category)
		fmt.Printf("Q: %s\n", item.Question)
		fmt.Printf("A: %s\n\n", item.Answer)
	}
	return nil
}
