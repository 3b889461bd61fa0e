package repository

import (
	"context"
	"time"

	"github.com/olive-branch-content-api/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type articleSearcher interface {
	search(ctx context.Context, q string, filter models.SearchFilter) ([]models.Article, error)
}

type timelineSearcher interface {
	search(ctx context.Context, q string, filter models.SearchFilter) ([]models.TimelineEvent, error)
}

type evidenceSearcher interface {
	search(ctx context.Context, q string, filter models.SearchFilter) ([]models.EvidenceDocument, error)
}

// searcher fans a query out to the three content tables
type searcher struct {
	articles articleSearcher
	timeline timelineSearcher
	evidence evidenceSearcher
	log      zerolog.Logger
}

func newSearcher(a articleSearcher, t timelineSearcher, e evidenceSearcher, log zerolog.Logger) *searcher {
	return &searcher{
		articles: a,
		timeline: t,
		evidence: e,
		log:      log.With().Str("component", "store-search").Logger(),
	}
}

// Search runs the three sub-queries concurrently. Any failure fails the
// whole call; no partial result is returned. An empty query matches everything.
func (s *searcher) Search(ctx context.Context, query string, filter models.SearchFilter) (*models.SearchResult, error) {
	start := time.Now()

	var (
		articles []models.Article
		events   []models.TimelineEvent
		docs     []models.EvidenceDocument
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		articles, err = s.articles.search(gctx, query, filter)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = s.timeline.search(gctx, query, filter)
		return err
	})
	g.Go(func() error {
		var err error
		docs, err = s.evidence.search(gctx, query, filter)
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Str("query", query).Msg("Store search failed")
		return nil, err
	}

	result := &models.SearchResult{
		Articles:          articles,
		TimelineEvents:    events,
		EvidenceDocuments: docs,
		Total:             len(articles) + len(events) + len(docs),
	}

	s.log.Debug().
		Str("query", query).
		Int("total", result.Total).
		Dur("duration", time.Since(start)).
		Msg("Store search completed")

	return result, nil
}
