package mocks

import (
	"context"

	"github.com/olive-branch-content-api/internal/models"
	"github.com/olive-branch-content-api/internal/service"
)

// MockContentService is a mock implementation of ContentService
type MockContentService struct {
	CategoriesList []models.Category
	ArticlesList   []models.ArticleWithCategory
	TimelineList   []models.TimelineEventWithCategory
	EvidenceList   []models.EvidenceDocumentWithCategory
	SearchResult   *models.SearchResult
	StatsResult    *models.ContentStats
	Err            error

	// ArticleBySlugFunc overrides the default slug lookup
	ArticleBySlugFunc func(ctx context.Context, slug string) (*models.ArticleWithCategory, error)

	LastArticleFilter  models.ArticleFilter
	LastTimelineFilter models.TimelineFilter
	LastEvidenceFilter models.EvidenceFilter
	LastQuery          string
	LastSearchFilter   models.SearchFilter
}

// Verify interface compliance
var _ service.ContentService = (*MockContentService)(nil)

func NewMockContentService() *MockContentService {
	return &MockContentService{
		CategoriesList: make([]models.Category, 0),
		ArticlesList:   make([]models.ArticleWithCategory, 0),
		TimelineList:   make([]models.TimelineEventWithCategory, 0),
		EvidenceList:   make([]models.EvidenceDocumentWithCategory, 0),
	}
}

func (m *MockContentService) Categories(ctx context.Context) ([]models.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.CategoriesList, nil
}

func (m *MockContentService) Articles(ctx context.Context, filter models.ArticleFilter) ([]models.ArticleWithCategory, error) {
	m.LastArticleFilter = filter
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ArticlesList, nil
}

func (m *MockContentService) ArticleBySlug(ctx context.Context, slug string) (*models.ArticleWithCategory, error) {
	if m.ArticleBySlugFunc != nil {
		return m.ArticleBySlugFunc(ctx, slug)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.ArticlesList {
		if m.ArticlesList[i].Slug == slug {
			return &m.ArticlesList[i], nil
		}
	}
	return nil, nil
}

func (m *MockContentService) Timeline(ctx context.Context, filter models.TimelineFilter) ([]models.TimelineEventWithCategory, error) {
	m.LastTimelineFilter = filter
	if m.Err != nil {
		return nil, m.Err
	}
	return m.TimelineList, nil
}

func (m *MockContentService) Evidence(ctx context.Context, filter models.EvidenceFilter) ([]models.EvidenceDocumentWithCategory, error) {
	m.LastEvidenceFilter = filter
	if m.Err != nil {
		return nil, m.Err
	}
	return m.EvidenceList, nil
}

func (m *MockContentService) Search(ctx context.Context, query string, filter models.SearchFilter) (*models.SearchResult, error) {
	m.LastQuery, m.LastSearchFilter = query, filter
	if m.Err != nil {
		return nil, m.Err
	}
	if m.SearchResult != nil {
		return m.SearchResult, nil
	}
	return &models.SearchResult{
		Articles:          []models.Article{},
		TimelineEvents:    []models.TimelineEvent{},
		EvidenceDocuments: []models.EvidenceDocument{},
	}, nil
}

func (m *MockContentService) Stats(ctx context.Context) (*models.ContentStats, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.StatsResult != nil {
		return m.StatsResult, nil
	}
	return &models.ContentStats{
		Source:     "mock",
		Categories: len(m.CategoriesList),
		Articles:   len(m.ArticlesList),
		Timeline:   len(m.TimelineList),
		Evidence:   len(m.EvidenceList),
	}, nil
}

// MockContentLoader is a mock implementation of ContentLoader
type MockContentLoader struct {
	Articles   []models.Article
	Timeline   []models.TimelineEvent
	Evidence   []models.EvidenceDocument
	Categories []models.Category
	Err        error
	Loads      int
}

// Verify interface compliance
var _ service.ContentLoader = (*MockContentLoader)(nil)

func (m *MockContentLoader) LoadArticles() ([]models.Article, error) {
	m.Loads++
	return m.Articles, m.Err
}

func (m *MockContentLoader) LoadTimeline() ([]models.TimelineEvent, error) {
	m.Loads++
	return m.Timeline, m.Err
}

func (m *MockContentLoader) LoadEvidence() ([]models.EvidenceDocument, error) {
	m.Loads++
	return m.Evidence, m.Err
}

func (m *MockContentLoader) LoadCategories() ([]models.Category, error) {
	m.Loads++
	return m.Categories, m.Err
}
