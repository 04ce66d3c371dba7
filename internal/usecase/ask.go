package usecase

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"faqrag/internal/adapter/faq"
	"faqrag/internal/domain"
	"faqrag/internal/port"
)

//go:embed templates/faq_prompt.txt
var promptTemplates embed.FS

// NoAnswerText is returned when retrieval finds nothing relevant; the
// LLM is not called in that case.
const NoAnswerText = "I couldn't find relevant information in our FAQ database."

// Asker answers free-form questions by retrieving relevant FAQ items
// and handing them to a chat model as context.
type Asker struct {
	service *Service
	llm     port.LLM
	tmpl    *template.Template
}

// Answer is the result of one Ask call.
type Answer struct {
	Answer       string           `json:"answer"`
	RelevantFAQs []domain.FAQItem `json:"relevantFaqs"`
	Query        string           `json:"query"`
}

// NewAsker creates an Asker over the given facade and chat model.
func NewAsker(service *Service, llm port.LLM) (*Asker, error) {
	tmpl, err := template.New("faq_prompt.txt").
		Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
		ParseFS(promptTemplates, "templates/faq_prompt.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template: %w", err)
	}
	return &Asker{
		service: service,
		llm:     llm,
		tmpl:    tmpl,
	}, nil
}

// Ask retrieves topK relevant FAQ items from the named collection and
// generates an answer grounded in them.
func (a *Asker) Ask(collection, query string, topK int, threshold float64) (*Answer, error) {
	results, err := a.service.Query(collection, query, topK, threshold)
	if err != nil {
		return nil, err
	}

	items := make([]domain.FAQItem, 0, len(results))
	for _, result := range results {
		items = append(items, faq.ItemFromDocument(result.Document))
	}

	if len(items) == 0 {
		return &Answer{
			Answer:       NoAnswerText,
			RelevantFAQs: []domain.FAQItem{},
			Query:        query,
		}, nil
	}

	var buf bytes.Buffer
	err = a.tmpl.Execute(&buf, struct {
		Items    []domain.FAQItem
		Question string
	}{Items: items, Question: query})
	if err != nil {
		return nil, fmt.Errorf("failed to render prompt: %w", err)
	}

	answer, err := a.llm.Generate(buf.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	return &Answer{
		Answer:       answer,
		RelevantFAQs: items,
		Query:        query,
	}, nil
}
