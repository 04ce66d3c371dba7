package splitter

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"faqrag/internal/domain"
)

func TestSplitEmptyContent(t *testing.T) {
	s := NewTokenSplitter(10)

	if out := s.Split(domain.Fragment{Content: ""}); len(out) != 0 {
		t.Errorf("expected no fragments for empty content, got %d", len(out))
	}
	if out := s.Split(domain.Fragment{Content: "   \n\t  "}); len(out) != 0 {
		t.Errorf("expected no fragments for whitespace-only content, got %d", len(out))
	}
}

func TestSplitShortContent(t *testing.T) {
	s := NewTokenSplitter(10)
	fragment := domain.Fragment{
		Content:  "a short piece of text",
		Metadata: map[string]string{"source": "faq.txt"},
	}

	out := s.Split(fragment)
	if len(out) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(out))
	}
	if out[0].Content != fragment.Content {
		t.Errorf("short content must pass through unchanged, got %q", out[0].Content)
	}
	if !reflect.DeepEqual(out[0].Metadata, fragment.Metadata) {
		t.Errorf("metadata not carried over: %v", out[0].Metadata)
	}

	// The output metadata must be a copy, not the caller's map.
	out[0].Metadata["source"] = "changed"
	if fragment.Metadata["source"] != "faq.txt" {
		t.Error("splitter aliased the input metadata map")
	}
}

func TestSplitBoundsFragmentSize(t *testing.T) {
	s := NewTokenSplitter(5)

	var words []string
	for i := 0; i < 23; i++ {
		words = append(words, fmt.Sprintf("word%d", i))
	}
	fragment := domain.Fragment{Content: strings.Join(words, " ")}

	out := s.Split(fragment)
	if len(out) != 5 {
		t.Fatalf("expected 5 fragments for 23 words at limit 5, got %d", len(out))
	}
	for i, f := range out {
		if n := len(strings.Fields(f.Content)); n > 5 {
			t.Errorf("fragment %d has %d words, limit is 5", i, n)
		}
	}
}

func TestSplitReconstruction(t *testing.T) {
	s := NewTokenSplitter(4)
	content := "The quick brown fox\njumps over the lazy dog,\nthen naps in the afternoon sun."
	fragment := domain.Fragment{Content: content}

	out := s.Split(fragment)
	if len(out) < 2 {
		t.Fatalf("expected multiple fragments, got %d", len(out))
	}

	var parts []string
	for _, f := range out {
		if !strings.Contains(content, f.Content) {
			t.Errorf("fragment %q is not a substring of the input", f.Content)
		}
		parts = append(parts, f.Content)
	}

	joined := strings.Join(parts, " ")
	if !reflect.DeepEqual(strings.Fields(joined), strings.Fields(content)) {
		t.Errorf("concatenated fragments do not reconstruct the input:\n%q\nvs\n%q", joined, content)
	}
}

func TestSplitDeterministic(t *testing.T) {
	s := NewTokenSplitter(3)
	fragment := domain.Fragment{Content: "one two three four five six seven eight"}

	first := s.Split(fragment)
	second := s.Split(fragment)
	if !reflect.DeepEqual(first, second) {
		t.Error("splitting the same input twice produced different fragments")
	}
}

func TestSplitMetadataOnEveryFragment(t *testing.T) {
	s := NewTokenSplitter(2)
	fragment := domain.Fragment{
		Content:  "one two three four five six",
		Metadata: map[string]string{"category": "General", "source": "faq.txt"},
	}

	out := s.Split(fragment)
	if len(out) != 3 {
		t.Fatalf("expected 3 fragments, got %d", len(out))
	}
	for i, f := range out {
		if !reflect.DeepEqual(f.Metadata, fragment.Metadata) {
			t.Errorf("fragment %d metadata differs: %v", i, f.Metadata)
		}
	}
}

func TestSplitDefaultLimit(t *testing.T) {
	s := NewTokenSplitter(0)
	if s.maxTokens != DefaultChunkTokens {
		t.Errorf("expected default limit %d, got %d", DefaultChunkTokens, s.maxTokens)
	}
}
