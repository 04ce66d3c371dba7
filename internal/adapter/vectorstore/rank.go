package vectorstore

import (
	"fmt"
	"math"
	"sort"

	"faqrag/internal/domain"
)

// Rank scores every document against the query vector by cosine
// similarity, keeps those scoring at least threshold, sorts them by
// score descending and truncates to topK. Documents with identical
// scores keep their input order. This is an exact linear scan, O(n*d).
func Rank(docs []domain.Document, query []float32, topK int, threshold float64) ([]domain.ScoredDocument, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive, got %d: %w", topK, ErrInvalidArgument)
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("threshold must be in [0,1], got %g: %w", threshold, ErrInvalidArgument)
	}

	scored := make([]domain.ScoredDocument, 0, len(docs))
	for _, doc := range docs {
		score := CosineSimilarity(doc.Embedding, query)
		if score < threshold {
			continue
		}
		scored = append(scored, domain.ScoredDocument{
			Document: doc,
			Score:    score,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topK < len(scored) {
		scored = scored[:topK]
	}
	return scored, nil
}

// CosineSimilarity calculates the cosine similarity between two vectors.
// Mismatched lengths and zero-magnitude vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
