package service

import (
	"context"

	"github.com/olive-branch-content-api/internal/config"
	"github.com/olive-branch-content-api/internal/models"
	"github.com/olive-branch-content-api/internal/search"
	"github.com/rs/zerolog"
)

// staticContentService serves content from the content tree. Filters are
// applied in memory and the file loader's orderings are kept, so timeline
// events come back by date only.
type staticContentService struct {
	loader ContentLoader
	engine *search.Engine
}

// NewStaticContentService creates a ContentService over a content loader
func NewStaticContentService(loader ContentLoader, log zerolog.Logger) ContentService {
	return &staticContentService{
		loader: loader,
		engine: search.NewEngine(loader, log),
	}
}

func (s *staticContentService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.loader.LoadCategories()
}

func (s *staticContentService) Articles(ctx context.Context, filter models.ArticleFilter) ([]models.ArticleWithCategory, error) {
	articles, err := s.loader.LoadArticles()
	if err != nil {
		return nil, err
	}
	refs, err := s.categoryIndex()
	if err != nil {
		return nil, err
	}

	result := []models.ArticleWithCategory{}
	for _, a := range articles {
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		if filter.Featured != nil && a.Featured != *filter.Featured {
			continue
		}
		result = append(result, models.ArticleWithCategory{Article: a, CategoryRef: refs.lookup(a.Category)})
		if filter.Limit > 0 && len(result) == filter.Limit {
			break
		}
	}
	return result, nil
}

func (s *staticContentService) ArticleBySlug(ctx context.Context, slug string) (*models.ArticleWithCategory, error) {
	articles, err := s.loader.LoadArticles()
	if err != nil {
		return nil, err
	}
	for _, a := range articles {
		if a.Slug != slug {
			continue
		}
		refs, err := s.categoryIndex()
		if err != nil {
			return nil, err
		}
		return &models.ArticleWithCategory{Article: a, CategoryRef: refs.lookup(a.Category)}, nil
	}
	return nil, nil
}

func (s *staticContentService) Timeline(ctx context.Context, filter models.TimelineFilter) ([]models.TimelineEventWithCategory, error) {
	events, err := s.loader.LoadTimeline()
	if err != nil {
		return nil, err
	}
	refs, err := s.categoryIndex()
	if err != nil {
		return nil, err
	}

	result := []models.TimelineEventWithCategory{}
	for _, e := range events {
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		result = append(result, models.TimelineEventWithCategory{TimelineEvent: e, CategoryRef: refs.lookup(e.Category)})
		if filter.Limit > 0 && len(result) == filter.Limit {
			break
		}
	}
	return result, nil
}

func (s *staticContentService) Evidence(ctx context.Context, filter models.EvidenceFilter) ([]models.EvidenceDocumentWithCategory, error) {
	docs, err := s.loader.LoadEvidence()
	if err != nil {
		return nil, err
	}
	refs, err := s.categoryIndex()
	if err != nil {
		return nil, err
	}

	result := []models.EvidenceDocumentWithCategory{}
	for _, d := range docs {
		if filter.Category != "" && d.Category != filter.Category {
			continue
		}
		if filter.DocumentType != "" && d.DocumentType != filter.DocumentType {
			continue
		}
		if filter.VerificationStatus != "" && d.VerificationStatus != filter.VerificationStatus {
			continue
		}
		result = append(result, models.EvidenceDocumentWithCategory{EvidenceDocument: d, CategoryRef: refs.lookup(d.Category)})
		if filter.Limit > 0 && len(result) == filter.Limit {
			break
		}
	}
	return result, nil
}

// Search narrows each collection by category, scans it with the engine,
// then caps every kind at filter.Limit
func (s *staticContentService) Search(ctx context.Context, query string, filter models.SearchFilter) (*models.SearchResult, error) {
	articles, err := s.loader.LoadArticles()
	if err != nil {
		return nil, err
	}
	events, err := s.loader.LoadTimeline()
	if err != nil {
		return nil, err
	}
	docs, err := s.loader.LoadEvidence()
	if err != nil {
		return nil, err
	}

	result, err := s.engine.Search(query, search.Collections{
		Articles: inCategory(articles, filter.Category, func(a models.Article) string { return a.Category }),
		Timeline: inCategory(events, filter.Category, func(e models.TimelineEvent) string { return e.Category }),
		Evidence: inCategory(docs, filter.Category, func(d models.EvidenceDocument) string { return d.Category }),
	})
	if err != nil {
		return nil, err
	}

	result.Articles = capped(result.Articles, filter.Limit)
	result.TimelineEvents = capped(result.TimelineEvents, filter.Limit)
	result.EvidenceDocuments = capped(result.EvidenceDocuments, filter.Limit)
	result.Total = len(result.Articles) + len(result.TimelineEvents) + len(result.EvidenceDocuments)
	return result, nil
}

func (s *staticContentService) Stats(ctx context.Context) (*models.ContentStats, error) {
	categories, err := s.loader.LoadCategories()
	if err != nil {
		return nil, err
	}
	articles, err := s.loader.LoadArticles()
	if err != nil {
		return nil, err
	}
	events, err := s.loader.LoadTimeline()
	if err != nil {
		return nil, err
	}
	docs, err := s.loader.LoadEvidence()
	if err != nil {
		return nil, err
	}
	return &models.ContentStats{
		Source:     config.SourceFiles,
		Categories: len(categories),
		Articles:   len(articles),
		Timeline:   len(events),
		Evidence:   len(docs),
	}, nil
}

// categoryIndex resolves category slugs; unknown slugs resolve to nil
type categoryIndex map[string]models.Category

func (s *staticContentService) categoryIndex() (categoryIndex, error) {
	categories, err := s.loader.LoadCategories()
	if err != nil {
		return nil, err
	}
	idx := make(categoryIndex, len(categories))
	for _, c := range categories {
		idx[c.Slug] = c
	}
	return idx, nil
}

func (idx categoryIndex) lookup(slug string) *models.Category {
	c, ok := idx[slug]
	if !ok {
		return nil
	}
	return &c
}

// inCategory returns items whose category is slug; an empty slug keeps all.
// The result is never nil so the engine does not reload it.
func inCategory[T any](items []T, slug string, category func(T) string) []T {
	if slug == "" {
		if items == nil {
			return []T{}
		}
		return items
	}
	out := []T{}
	for _, item := range items {
		if category(item) == slug {
			out = append(out, item)
		}
	}
	return out
}

func capped[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
