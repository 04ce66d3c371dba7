package port

import "faqrag/internal/domain"

// Splitter breaks a fragment into smaller fragments bounded by an
// approximate token count. Metadata is carried over unchanged.
type Splitter interface {
	Split(fragment domain.Fragment) []domain.Fragment
}
