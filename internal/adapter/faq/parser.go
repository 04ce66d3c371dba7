// Package faq reads line-oriented FAQ files of the form
//
//	Q: question text | A: answer text | Category: category name
//
// Blank and malformed lines are skipped; a missing category defaults to
// "General".
package faq

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"faqrag/internal/domain"
)

const defaultCategory = "General"

// ParseLine parses one FAQ line. The second return value is false for
// blank lines or lines without at least a question and an answer part.
func ParseLine(line string) (domain.FAQItem, bool) {
	if strings.TrimSpace(line) == "" {
		return domain.FAQItem{}, false
	}

	parts := strings.Split(line, "|")
	if len(parts) < 2 {
		return domain.FAQItem{}, false
	}

	item := domain.FAQItem{
		Question: extractValue(parts[0], "Q:"),
		Answer:   extractValue(parts[1], "A:"),
		Category: defaultCategory,
	}
	if len(parts) > 2 {
		item.Category = extractValue(parts[2], "Category:")
	}

	if item.Question == "" {
		return domain.FAQItem{}, false
	}
	return item, true
}

// ParseFile reads every FAQ item from the given file.
func ParseFile(path string) ([]domain.FAQItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FAQ file: %w", err)
	}
	defer f.Close()

	var items []domain.FAQItem
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if item, ok := ParseLine(scanner.Text()); ok {
			items = append(items, item)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read FAQ file: %w", err)
	}
	return items, nil
}

// Fragment converts an item into an ingestible fragment, carrying the
// question, answer, category and source file as metadata.
func Fragment(item domain.FAQItem, source string) domain.Fragment {
	return domain.Fragment{
		Content: item.Content(),
		Metadata: map[string]string{
			domain.MetaQuestion: item.Question,
			domain.MetaAnswer:   item.Answer,
			domain.MetaCategory: item.Category,
			domain.MetaSource:   source,
		},
	}
}

// ItemFromDocument rebuilds an FAQ item from a stored document's
// metadata. Documents ingested outside the FAQ pipeline yield zero
// values for the missing fields.
func ItemFromDocument(doc domain.Document) domain.FAQItem {
	return domain.FAQItem{
		Question: doc.Metadata[domain.MetaQuestion],
		Answer:   doc.Metadata[domain.MetaAnswer],
		Category: doc.Metadata[domain.MetaCategory],
	}
}

func extractValue(text, prefix string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, prefix) {
		return strings.TrimSpace(trimmed[len(prefix):])
	}
	return trimmed
}
