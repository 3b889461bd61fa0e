// Package search answers substring queries over materialized content
// collections, for contexts without a live store.
package search

import (
	"fmt"
	"strings"

	"github.com/olive-branch-content-api/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
)

// Source supplies collections the caller did not pass in
type Source interface {
	LoadArticles() ([]models.Article, error)
	LoadTimeline() ([]models.TimelineEvent, error)
	LoadEvidence() ([]models.EvidenceDocument, error)
}

// Collections are the pre-loaded inputs of a search. A nil slice means the
// collection was omitted and is fetched from the engine's Source; an empty
// non-nil slice is searched as-is.
type Collections struct {
	Articles []models.Article
	Timeline []models.TimelineEvent
	Evidence []models.EvidenceDocument
}

// Engine scans content collections for a query
type Engine struct {
	source Source
	log    zerolog.Logger
}

// NewEngine creates a search engine backed by source for omitted collections
func NewEngine(source Source, log zerolog.Logger) *Engine {
	return &Engine{
		source: source,
		log:    log.With().Str("component", "search").Logger(),
	}
}

// Search keeps every record with at least one designated field containing
// the case-folded query. Result order within each kind is the input order.
func (e *Engine) Search(query string, c Collections) (*models.SearchResult, error) {
	if err := e.fill(&c); err != nil {
		return nil, err
	}

	m := newMatcher(query)
	result := &models.SearchResult{
		Articles:          []models.Article{},
		TimelineEvents:    []models.TimelineEvent{},
		EvidenceDocuments: []models.EvidenceDocument{},
	}

	for _, a := range c.Articles {
		if m.any(a.Title, a.Content, a.Excerpt) || m.anyOf(a.Tags) {
			result.Articles = append(result.Articles, a)
		}
	}
	for _, ev := range c.Timeline {
		if m.any(ev.Title, ev.Description) {
			result.TimelineEvents = append(result.TimelineEvents, ev)
		}
	}
	for _, doc := range c.Evidence {
		if m.any(doc.Title, doc.Description, doc.Content) || m.anyOf(doc.Tags) {
			result.EvidenceDocuments = append(result.EvidenceDocuments, doc)
		}
	}

	result.Total = len(result.Articles) + len(result.TimelineEvents) + len(result.EvidenceDocuments)

	e.log.Debug().
		Str("query", query).
		Int("articles", len(result.Articles)).
		Int("timeline", len(result.TimelineEvents)).
		Int("evidence", len(result.EvidenceDocuments)).
		Msg("Static search completed")

	return result, nil
}

func (e *Engine) fill(c *Collections) error {
	if c.Articles != nil && c.Timeline != nil && c.Evidence != nil {
		return nil
	}
	if e.source == nil {
		return fmt.Errorf("search: collection omitted and no content source configured")
	}

	var err error
	if c.Articles == nil {
		if c.Articles, err = e.source.LoadArticles(); err != nil {
			return fmt.Errorf("load articles: %w", err)
		}
	}
	if c.Timeline == nil {
		if c.Timeline, err = e.source.LoadTimeline(); err != nil {
			return fmt.Errorf("load timeline: %w", err)
		}
	}
	if c.Evidence == nil {
		if c.Evidence, err = e.source.LoadEvidence(); err != nil {
			return fmt.Errorf("load evidence: %w", err)
		}
	}
	return nil
}

// matcher holds the folded query. A cases.Caser is stateful, so each search
// gets its own.
type matcher struct {
	fold  cases.Caser
	query string
}

func newMatcher(query string) *matcher {
	fold := cases.Fold()
	return &matcher{fold: fold, query: fold.String(query)}
}

func (m *matcher) contains(field string) bool {
	if m.query == "" {
		return true
	}
	return strings.Contains(m.fold.String(field), m.query)
}

func (m *matcher) any(fields ...string) bool {
	for _, f := range fields {
		if m.contains(f) {
			return true
		}
	}
	return false
}

// anyOf matches each element separately so a query never spans two tags
func (m *matcher) anyOf(values []string) bool {
	return m.any(values...)
}
