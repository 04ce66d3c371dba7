package domain

// Metadata keys attached to FAQ documents.
const (
	MetaSource   = "source"
	MetaQuestion = "question"
	MetaAnswer   = "answer"
	MetaCategory = "category"
)

// Fragment is a piece of text with its metadata, before embedding.
type Fragment struct {
	Content  string
	Metadata map[string]string
}

// Document is the atomic stored unit of a collection: an embedded fragment
// with a unique id.
type Document struct {
	ID        string            `json:"id"`
	Content   string            `json:"content"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Embedding []float32         `json:"embedding"`
}

// Clone returns a deep copy so callers never alias store-internal state.
func (d Document) Clone() Document {
	c := Document{
		ID:      d.ID,
		Content: d.Content,
	}
	if d.Metadata != nil {
		c.Metadata = make(map[string]string, len(d.Metadata))
		for k, v := range d.Metadata {
			c.Metadata[k] = v
		}
	}
	if d.Embedding != nil {
		c.Embedding = make([]float32, len(d.Embedding))
		copy(c.Embedding, d.Embedding)
	}
	return c
}

// ScoredDocument is a search result with its cosine similarity score.
type ScoredDocument struct {
	Document Document `json:"document"`
	Score    float64  `json:"score"`
}

// FAQItem is one parsed question/answer pair.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// Content renders the text that gets embedded for this item.
func (f FAQItem) Content() string {
	return "Question: " + f.Question + "\nAnswer: " + f.Answer
}
