package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/olive-branch-content-api/internal/database"
	"github.com/olive-branch-content-api/internal/models"
	"github.com/olive-branch-content-api/internal/repository"
	"github.com/rs/zerolog"
)

// syncService implements SyncService
type syncService struct {
	db     *database.DB
	repos  *repository.Repositories
	loader ContentLoader
	log    zerolog.Logger
}

// NewSyncService creates a new sync service
func NewSyncService(db *database.DB, repos *repository.Repositories, loader ContentLoader, log zerolog.Logger) SyncService {
	return &syncService{
		db:     db,
		repos:  repos,
		loader: loader,
		log:    log.With().Str("service", "sync").Logger(),
	}
}

// Sync loads the whole content tree and upserts it in one transaction.
// Records removed from the tree stay in the store.
func (s *syncService) Sync(ctx context.Context) (*models.SyncReport, error) {
	start := time.Now()

	categories, err := s.loader.LoadCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	articles, err := s.loader.LoadArticles()
	if err != nil {
		return nil, fmt.Errorf("failed to load articles: %w", err)
	}
	events, err := s.loader.LoadTimeline()
	if err != nil {
		return nil, fmt.Errorf("failed to load timeline: %w", err)
	}
	docs, err := s.loader.LoadEvidence()
	if err != nil {
		return nil, fmt.Errorf("failed to load evidence: %w", err)
	}

	err = s.db.WithTx(ctx, func(tx *sql.Tx) error {
		for i := range categories {
			if err := s.repos.Category.Upsert(ctx, tx, &categories[i]); err != nil {
				return fmt.Errorf("category %s: %w", categories[i].Slug, err)
			}
		}
		for i := range articles {
			if err := s.repos.Article.Upsert(ctx, tx, &articles[i]); err != nil {
				return fmt.Errorf("article %s: %w", articles[i].Slug, err)
			}
		}
		for i := range events {
			if err := s.repos.Timeline.Upsert(ctx, tx, &events[i]); err != nil {
				return fmt.Errorf("timeline event %s: %w", events[i].ID, err)
			}
		}
		for i := range docs {
			if err := s.repos.Evidence.Upsert(ctx, tx, &docs[i]); err != nil {
				return fmt.Errorf("evidence document %s: %w", docs[i].ID, err)
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Msg("Sync failed")
		return nil, err
	}

	report := &models.SyncReport{
		Categories: len(categories),
		Articles:   len(articles),
		Timeline:   len(events),
		Evidence:   len(docs),
		DurationMs: time.Since(start).Milliseconds(),
	}

	s.log.Info().
		Int("categories", report.Categories).
		Int("articles", report.Articles).
		Int("timeline_events", report.Timeline).
		Int("evidence_documents", report.Evidence).
		Int64("duration_ms", report.DurationMs).
		Msg("Sync completed")

	return report, nil
}

// Run syncs once, then again on every tick until ctx is done.
// Failed runs are logged and retried on the next tick.
func (s *syncService) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("sync interval must be positive, got %s", interval)
	}

	s.log.Info().Dur("interval", interval).Msg("Sync loop started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.Sync(ctx); err != nil && ctx.Err() == nil {
			s.log.Warn().Err(err).Msg("Sync run failed, retrying on next tick")
		}

		select {
		case <-ctx.Done():
			s.log.Info().Msg("Sync loop stopping")
			return nil
		case <-ticker.C:
		}
	}
}
