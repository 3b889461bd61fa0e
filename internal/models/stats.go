package models

// ContentStats counts the records a content source currently serves
type ContentStats struct {
	Source     string `json:"source"`
	Categories int    `json:"categories"`
	Articles   int    `json:"articles"`
	Timeline   int    `json:"timelineEvents"`
	Evidence   int    `json:"evidenceDocuments"`
}

// SyncReport summarizes one content tree to store synchronization
type SyncReport struct {
	Categories int   `json:"categories"`
	Articles   int   `json:"articles"`
	Timeline   int   `json:"timelineEvents"`
	Evidence   int   `json:"evidenceDocuments"`
	DurationMs int64 `json:"durationMs"`
}
