package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Importance bounds for timeline events
const (
	MinImportance = 1
	MaxImportance = 5
)

// TimelineEvent represents a dated point on the chronological timeline
type TimelineEvent struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"`
	Category    string    `json:"category" db:"category"`
	Importance  int       `json:"importance" db:"importance"` // 1-5
	Sources     []string  `json:"sources" db:"-"`             // Stored as JSON string in DB
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// TimelineEventWithCategory is a timeline event with its resolved category snapshot
type TimelineEventWithCategory struct {
	TimelineEvent
	CategoryRef *Category `json:"categoryRef"`
}

// TimelineFilter narrows timeline listings
type TimelineFilter struct {
	Category string
	Limit    int
}

// MarshalJSON keeps dates before 1 BCE encodable; time.Time rejects years
// outside [0,9999].
func (e TimelineEvent) MarshalJSON() ([]byte, error) {
	type plain TimelineEvent
	return json.Marshal(struct {
		plain
		Date string `json:"date"`
	}{plain(e), FormatDate(e.Date)})
}

// MarshalJSON is declared again so the promoted TimelineEvent encoder does not
// drop CategoryRef.
func (e TimelineEventWithCategory) MarshalJSON() ([]byte, error) {
	type plain TimelineEvent
	return json.Marshal(struct {
		plain
		Date        string    `json:"date"`
		CategoryRef *Category `json:"categoryRef"`
	}{plain(e.TimelineEvent), FormatDate(e.Date), e.CategoryRef})
}

// FormatDate renders t as RFC 3339, using the ISO 8601 expanded year form
// (e.g. "-0585-01-01T00:00:00Z") when the year has no four-digit encoding.
func FormatDate(t time.Time) string {
	if y := t.Year(); y < 0 || y > 9999 {
		return fmt.Sprintf("%+05d", y) + t.Format("-01-02T15:04:05.999999999Z07:00")
	}
	return t.Format(time.RFC3339Nano)
}
