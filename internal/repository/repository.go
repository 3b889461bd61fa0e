package repository

import (
	"context"

	"github.com/olive-branch-content-api/internal/database"
	"github.com/olive-branch-content-api/internal/models"
	"github.com/rs/zerolog"
)

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	Upsert(ctx context.Context, exec Execer, category *models.Category) error
	Count(ctx context.Context) (int, error)
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	List(ctx context.Context, filter models.ArticleFilter) ([]models.ArticleWithCategory, error)
	GetBySlug(ctx context.Context, slug string) (*models.ArticleWithCategory, error)
	Upsert(ctx context.Context, exec Execer, article *models.Article) error
	Count(ctx context.Context) (int, error)
}

// TimelineRepository defines the interface for timeline event data operations
type TimelineRepository interface {
	List(ctx context.Context, filter models.TimelineFilter) ([]models.TimelineEventWithCategory, error)
	Upsert(ctx context.Context, exec Execer, event *models.TimelineEvent) error
	Count(ctx context.Context) (int, error)
}

// EvidenceRepository defines the interface for evidence document data operations
type EvidenceRepository interface {
	List(ctx context.Context, filter models.EvidenceFilter) ([]models.EvidenceDocumentWithCategory, error)
	Upsert(ctx context.Context, exec Execer, doc *models.EvidenceDocument) error
	Count(ctx context.Context) (int, error)
}

// Searcher runs a query across all three content kinds
type Searcher interface {
	Search(ctx context.Context, query string, filter models.SearchFilter) (*models.SearchResult, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Category CategoryRepository
	Article  ArticleRepository
	Timeline TimelineRepository
	Evidence EvidenceRepository
	Search   Searcher
}

// New creates all repositories with the given database connection
func New(db *database.DB, log zerolog.Logger) *Repositories {
	articles := &articleRepo{db: db}
	timeline := &timelineRepo{db: db}
	evidence := &evidenceRepo{db: db}

	return &Repositories{
		Category: NewCategoryRepo(db),
		Article:  articles,
		Timeline: timeline,
		Evidence: evidence,
		Search:   newSearcher(articles, timeline, evidence, log),
	}
}
