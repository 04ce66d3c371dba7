package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"faqrag/internal/adapter/faq"
	"faqrag/internal/adapter/fs"
	"faqrag/internal/domain"
)

var ingestCollection string

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Ingest FAQ files into a collection",
	Long: `Ingest FAQ text files into a named collection and persist the result.
A single file is ingested directly; a directory is scanned with the
configured include/exclude glob patterns.

Examples:
  faqrag ingest docs/faq.txt
  faqrag ingest docs/ --collection olympic`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringVarP(&ingestCollection, "collection", "c", "", "target collection (default is the first configured)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}

	col, ok := cfg.Collection(ingestCollection)
	if !ok {
		return fmt.Errorf("unknown collection: %q", ingestCollection)
	}

	svc, closer, err := buildService(cfg)
	if err != nil {
		return err
	}
	defer closer()

	// Load existing snapshots first so new documents append.
	if err := svc.LoadSnapshots(); err != nil {
		return err
	}

	var files []string
	if info.IsDir() {
		walker := fs.NewWalker(cfg.Ingest.Includes, cfg.Ingest.Excludes)
		files, err = walker.Walk(path)
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", path, err)
		}
	} else {
		files = []string{path}
	}
	if len(files) == 0 {
		fmt.Println("No FAQ files found.")
		return nil
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Embedding[reset]"),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	itemsParsed := 0
	docsStored := 0
	for i, file := range files {
		items, err := faq.ParseFile(file)
		if err != nil {
			return err
		}
		itemsParsed += len(items)

		fragments := make([]domain.Fragment, len(items))
		for j, item := range items {
			fragments[j] = faq.Fragment(item, filepath.Base(file))
		}

		docs, err := svc.Ingest(col.Name, fragments)
		if err != nil {
			return fmt.Errorf("failed to ingest %s: %w", file, err)
		}
		docsStored += len(docs)
		bar.Set(i + 1)
	}

	if err := svc.Save(col.Name); err != nil {
		return err
	}

	total, _ := svc.Count(col.Name)
	fmt.Printf("\nIngest complete:\n")
	fmt.Printf("  Files read:       %d\n", len(files))
	fmt.Printf("  FAQ items parsed: %d\n", itemsParsed)
	fmt.Printf("  Documents stored: %d\n", docsStored)
	fmt.Printf("  Collection %q now holds %d documents\n", col.Name, total)
	return nil
}
