package service

import (
	"context"
	"time"

	"github.com/olive-branch-content-api/internal/models"
)

// ContentService is the content provider capability shared by the
// store-backed and the static (file-backed) implementations
type ContentService interface {
	Categories(ctx context.Context) ([]models.Category, error)
	Articles(ctx context.Context, filter models.ArticleFilter) ([]models.ArticleWithCategory, error)
	ArticleBySlug(ctx context.Context, slug string) (*models.ArticleWithCategory, error)
	Timeline(ctx context.Context, filter models.TimelineFilter) ([]models.TimelineEventWithCategory, error)
	Evidence(ctx context.Context, filter models.EvidenceFilter) ([]models.EvidenceDocumentWithCategory, error)
	Search(ctx context.Context, query string, filter models.SearchFilter) (*models.SearchResult, error)
	Stats(ctx context.Context) (*models.ContentStats, error)
}

// SyncService copies the content tree into the store
type SyncService interface {
	Sync(ctx context.Context) (*models.SyncReport, error)
	Run(ctx context.Context, interval time.Duration) error
}

// Services holds all service interfaces
type Services struct {
	Content ContentService
	Sync    SyncService // nil when no store is configured
}

// ContentLoader is the file-source surface the static service and sync read from
type ContentLoader interface {
	LoadArticles() ([]models.Article, error)
	LoadTimeline() ([]models.TimelineEvent, error)
	LoadEvidence() ([]models.EvidenceDocument, error)
	LoadCategories() ([]models.Category, error)
}
