package splitter

import (
	"strings"
	"unicode"

	"faqrag/internal/domain"
)

// DefaultChunkTokens bounds fragment size when no limit is configured.
const DefaultChunkTokens = 1000

// TokenSplitter breaks a fragment into pieces of at most maxTokens
// whitespace-delimited words. The word count is a deterministic
// approximation of model tokens; exact provider tokenization is not
// required for bounding chunk size. Splits happen only at whitespace,
// so joining the outputs reproduces the input up to boundary
// whitespace. Metadata is copied onto every output fragment unchanged.
type TokenSplitter struct {
	maxTokens int
}

// NewTokenSplitter creates a splitter with the given token limit.
func NewTokenSplitter(maxTokens int) *TokenSplitter {
	if maxTokens <= 0 {
		maxTokens = DefaultChunkTokens
	}
	return &TokenSplitter{maxTokens: maxTokens}
}

type span struct {
	start, end int
}

// Split implements port.Splitter. Empty content yields no fragments;
// content within the limit yields the input fragment itself.
func (s *TokenSplitter) Split(fragment domain.Fragment) []domain.Fragment {
	if strings.TrimSpace(fragment.Content) == "" {
		return nil
	}

	words := wordSpans(fragment.Content)
	if len(words) <= s.maxTokens {
		return []domain.Fragment{{
			Content:  fragment.Content,
			Metadata: copyMetadata(fragment.Metadata),
		}}
	}

	var out []domain.Fragment
	for start := 0; start < len(words); start += s.maxTokens {
		end := start + s.maxTokens
		if end > len(words) {
			end = len(words)
		}
		out = append(out, domain.Fragment{
			Content:  fragment.Content[words[start].start:words[end-1].end],
			Metadata: copyMetadata(fragment.Metadata),
		})
	}
	return out
}

// wordSpans returns the byte ranges of whitespace-delimited words.
func wordSpans(text string) []span {
	var spans []span
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				spans = append(spans, span{start, i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, span{start, len(text)})
	}
	return spans
}

func copyMetadata(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
