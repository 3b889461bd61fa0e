package service

import (
	"context"

	"github.com/olive-branch-content-api/internal/config"
	"github.com/olive-branch-content-api/internal/models"
	"github.com/olive-branch-content-api/internal/repository"
)

// storeContentService serves content straight from the repositories
type storeContentService struct {
	repos *repository.Repositories
}

// NewStoreContentService creates a ContentService over the store
func NewStoreContentService(repos *repository.Repositories) ContentService {
	return &storeContentService{repos: repos}
}

func (s *storeContentService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.repos.Category.List(ctx)
}

func (s *storeContentService) Articles(ctx context.Context, filter models.ArticleFilter) ([]models.ArticleWithCategory, error) {
	return s.repos.Article.List(ctx, filter)
}

func (s *storeContentService) ArticleBySlug(ctx context.Context, slug string) (*models.ArticleWithCategory, error) {
	return s.repos.Article.GetBySlug(ctx, slug)
}

func (s *storeContentService) Timeline(ctx context.Context, filter models.TimelineFilter) ([]models.TimelineEventWithCategory, error) {
	return s.repos.Timeline.List(ctx, filter)
}

func (s *storeContentService) Evidence(ctx context.Context, filter models.EvidenceFilter) ([]models.EvidenceDocumentWithCategory, error) {
	return s.repos.Evidence.List(ctx, filter)
}

func (s *storeContentService) Search(ctx context.Context, query string, filter models.SearchFilter) (*models.SearchResult, error) {
	return s.repos.Search.Search(ctx, query, filter)
}

// Stats counts every table; the first failing count fails the call
func (s *storeContentService) Stats(ctx context.Context) (*models.ContentStats, error) {
	stats := &models.ContentStats{Source: config.SourceStore}

	counts := []struct {
		dst   *int
		count func(context.Context) (int, error)
	}{
		{&stats.Categories, s.repos.Category.Count},
		{&stats.Articles, s.repos.Article.Count},
		{&stats.Timeline, s.repos.Timeline.Count},
		{&stats.Evidence, s.repos.Evidence.Count},
	}
	for _, c := range counts {
		n, err := c.count(ctx)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}
	return stats, nil
}
