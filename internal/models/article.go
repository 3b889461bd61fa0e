package models

import (
	"time"
)

// Article represents a long-form historical article
type Article struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Slug        string    `json:"slug" db:"slug"`
	Content     string    `json:"content" db:"content"`
	Excerpt     string    `json:"excerpt" db:"excerpt"`
	Category    string    `json:"category" db:"category"` // Category slug, weak reference
	Tags        []string  `json:"tags" db:"-"`            // Stored as JSON string in DB
	PublishedAt time.Time `json:"publishedAt" db:"published_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
	Featured    bool      `json:"featured" db:"featured"`
	ReadTime    int       `json:"readTime" db:"read_time"` // Minutes
}

// ArticleWithCategory is an article with its resolved category snapshot.
// CategoryRef is nil when the category slug does not resolve.
type ArticleWithCategory struct {
	Article
	CategoryRef *Category `json:"categoryRef"`
}

// ArticleFilter narrows article listings
type ArticleFilter struct {
	Category string
	Featured *bool
	Limit    int // 0 means no limit
}
