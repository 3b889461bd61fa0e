package models

// SearchResult is the unified, per-kind result of a cross-entity search.
// Total is always the sum of the three slice lengths.
type SearchResult struct {
	Articles          []Article          `json:"articles"`
	TimelineEvents    []TimelineEvent    `json:"timelineEvents"`
	EvidenceDocuments []EvidenceDocument `json:"evidenceDocuments"`
	Total             int                `json:"total"`
}

// SearchFilter narrows a store-backed search. Limit caps each kind independently.
type SearchFilter struct {
	Category string
	Limit    int
}
