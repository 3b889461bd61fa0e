package mocks

import (
	"context"

	"github.com/olive-branch-content-api/internal/models"
	"github.com/olive-branch-content-api/internal/repository"
)

// Verify interface compliance
var (
	_ repository.CategoryRepository = (*MockCategoryRepository)(nil)
	_ repository.ArticleRepository  = (*MockArticleRepository)(nil)
	_ repository.TimelineRepository = (*MockTimelineRepository)(nil)
	_ repository.EvidenceRepository = (*MockEvidenceRepository)(nil)
	_ repository.Searcher           = (*MockSearcher)(nil)
)

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	Categories []models.Category
	Err        error
	Upserted   []models.Category
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: make([]models.Category, 0)}
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Categories, nil
}

func (m *MockCategoryRepository) Upsert(ctx context.Context, exec repository.Execer, category *models.Category) error {
	if m.Err != nil {
		return m.Err
	}
	m.Upserted = append(m.Upserted, *category)
	return nil
}

func (m *MockCategoryRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Categories), nil
}

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	Articles   []models.ArticleWithCategory
	Err        error
	LastFilter models.ArticleFilter
	Upserted   []models.Article
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{Articles: make([]models.ArticleWithCategory, 0)}
}

func (m *MockArticleRepository) List(ctx context.Context, filter models.ArticleFilter) ([]models.ArticleWithCategory, error) {
	m.LastFilter = filter
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Articles, nil
}

func (m *MockArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.ArticleWithCategory, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Articles {
		if m.Articles[i].Slug == slug {
			return &m.Articles[i], nil
		}
	}
	return nil, nil
}

func (m *MockArticleRepository) Upsert(ctx context.Context, exec repository.Execer, article *models.Article) error {
	if m.Err != nil {
		return m.Err
	}
	m.Upserted = append(m.Upserted, *article)
	return nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Articles), nil
}

// MockTimelineRepository is a mock implementation of TimelineRepository
type MockTimelineRepository struct {
	Events     []models.TimelineEventWithCategory
	Err        error
	LastFilter models.TimelineFilter
	Upserted   []models.TimelineEvent
}

func NewMockTimelineRepository() *MockTimelineRepository {
	return &MockTimelineRepository{Events: make([]models.TimelineEventWithCategory, 0)}
}

func (m *MockTimelineRepository) List(ctx context.Context, filter models.TimelineFilter) ([]models.TimelineEventWithCategory, error) {
	m.LastFilter = filter
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Events, nil
}

func (m *MockTimelineRepository) Upsert(ctx context.Context, exec repository.Execer, event *models.TimelineEvent) error {
	if m.Err != nil {
		return m.Err
	}
	m.Upserted = append(m.Upserted, *event)
	return nil
}

func (m *MockTimelineRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Events), nil
}

// MockEvidenceRepository is a mock implementation of EvidenceRepository
type MockEvidenceRepository struct {
	Documents  []models.EvidenceDocumentWithCategory
	Err        error
	LastFilter models.EvidenceFilter
	Upserted   []models.EvidenceDocument
}

func NewMockEvidenceRepository() *MockEvidenceRepository {
	return &MockEvidenceRepository{Documents: make([]models.EvidenceDocumentWithCategory, 0)}
}

func (m *MockEvidenceRepository) List(ctx context.Context, filter models.EvidenceFilter) ([]models.EvidenceDocumentWithCategory, error) {
	m.LastFilter = filter
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Documents, nil
}

func (m *MockEvidenceRepository) Upsert(ctx context.Context, exec repository.Execer, doc *models.EvidenceDocument) error {
	if m.Err != nil {
		return m.Err
	}
	m.Upserted = append(m.Upserted, *doc)
	return nil
}

func (m *MockEvidenceRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Documents), nil
}

// MockSearcher is a mock implementation of Searcher
type MockSearcher struct {
	Result     *models.SearchResult
	Err        error
	LastQuery  string
	LastFilter models.SearchFilter
}

func (m *MockSearcher) Search(ctx context.Context, query string, filter models.SearchFilter) (*models.SearchResult, error) {
	m.LastQuery, m.LastFilter = query, filter
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result == nil {
		return &models.SearchResult{
			Articles:          []models.Article{},
			TimelineEvents:    []models.TimelineEvent{},
			EvidenceDocuments: []models.EvidenceDocument{},
		}, nil
	}
	return m.Result, nil
}

// MockStore groups one mock per repository
type MockStore struct {
	Category *MockCategoryRepository
	Article  *MockArticleRepository
	Timeline *MockTimelineRepository
	Evidence *MockEvidenceRepository
	Search   *MockSearcher
}

func NewMockStore() *MockStore {
	return &MockStore{
		Category: NewMockCategoryRepository(),
		Article:  NewMockArticleRepository(),
		Timeline: NewMockTimelineRepository(),
		Evidence: NewMockEvidenceRepository(),
		Search:   &MockSearcher{},
	}
}

// Repositories exposes the mocks as a repository set
func (m *MockStore) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Category: m.Category,
		Article:  m.Article,
		Timeline: m.Timeline,
		Evidence: m.Evidence,
		Search:   m.Search,
	}
}
