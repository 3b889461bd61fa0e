package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/olive-branch-content-api/internal/config"
	"github.com/olive-branch-content-api/internal/database"
	"github.com/olive-branch-content-api/internal/mocks"
	"github.com/olive-branch-content-api/internal/models"
	"github.com/olive-branch-content-api/internal/repository"
	"github.com/olive-branch-content-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixtureLoader() *mocks.MockContentLoader {
	return &mocks.MockContentLoader{
		Categories: []models.Category{
			{ID: "c1", Name: "تاريخ", Slug: "history", Order: 1},
			{ID: "c2", Name: "ثقافة", Slug: "culture", Order: 2},
		},
		Articles: []models.Article{
			{ID: "a1", Title: "Olive harvest", Slug: "olives", Content: "تاريخ الزيتون", Category: "culture", Featured: true, PublishedAt: day(2024, 3, 1)},
			{ID: "a2", Title: "تاريخ القدس", Slug: "jerusalem", Category: "history", PublishedAt: day(2024, 2, 1)},
			{ID: "a3", Title: "Orphan", Slug: "orphan", Category: "gone", PublishedAt: day(2024, 1, 1)},
		},
		Timeline: []models.TimelineEvent{
			{ID: "t1", Title: "تاريخ", Category: "history", Date: day(2000, 1, 1), Importance: 3},
			{ID: "t2", Title: "Festival", Category: "culture", Date: day(1990, 1, 1), Importance: 5},
		},
		Evidence: []models.EvidenceDocument{
			{ID: "e1", Title: "Report", Category: "history", DocumentType: models.DocumentTypeReport, VerificationStatus: models.VerificationVerified},
			{ID: "e2", Title: "Testimony", Description: "تاريخ", Category: "rights", DocumentType: models.DocumentTypeTestimony, VerificationStatus: models.VerificationPending},
		},
	}
}

func TestStaticContentService_Articles(t *testing.T) {
	svc := service.NewStaticContentService(fixtureLoader(), zerolog.Nop())
	ctx := context.Background()

	articles, err := svc.Articles(ctx, models.ArticleFilter{})
	require.NoError(t, err)
	require.Len(t, articles, 3)
	assert.Equal(t, "culture", articles[0].CategoryRef.Slug)
	assert.Nil(t, articles[2].CategoryRef, "dangling category should resolve to nil")

	featured := true
	articles, err = svc.Articles(ctx, models.ArticleFilter{Featured: &featured})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "olives", articles[0].Slug)

	articles, err = svc.Articles(ctx, models.ArticleFilter{Category: "history"})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "jerusalem", articles[0].Slug)

	articles, err = svc.Articles(ctx, models.ArticleFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, articles, 2)

	articles, err = svc.Articles(ctx, models.ArticleFilter{Category: "none"})
	require.NoError(t, err)
	assert.NotNil(t, articles)
	assert.Empty(t, articles)
}

func TestStaticContentService_ArticleBySlug(t *testing.T) {
	svc := service.NewStaticContentService(fixtureLoader(), zerolog.Nop())

	article, err := svc.ArticleBySlug(context.Background(), "jerusalem")
	require.NoError(t, err)
	require.NotNil(t, article)
	assert.Equal(t, "a2", article.ID)
	assert.Equal(t, "history", article.CategoryRef.Slug)

	article, err = svc.ArticleBySlug(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, article)
}

func TestStaticContentService_TimelineAndEvidence(t *testing.T) {
	svc := service.NewStaticContentService(fixtureLoader(), zerolog.Nop())
	ctx := context.Background()

	events, err := svc.Timeline(ctx, models.TimelineFilter{Category: "culture"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "t2", events[0].ID)

	docs, err := svc.Evidence(ctx, models.EvidenceFilter{VerificationStatus: models.VerificationPending})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "e2", docs[0].ID)
	assert.Nil(t, docs[0].CategoryRef)

	docs, err = svc.Evidence(ctx, models.EvidenceFilter{DocumentType: models.DocumentTypeReport})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "history", docs[0].CategoryRef.Slug)
}

func TestStaticContentService_Search(t *testing.T) {
	svc := service.NewStaticContentService(fixtureLoader(), zerolog.Nop())
	ctx := context.Background()

	result, err := svc.Search(ctx, "تاريخ", models.SearchFilter{})
	require.NoError(t, err)
	assert.Len(t, result.Articles, 2)
	assert.Len(t, result.TimelineEvents, 1)
	assert.Len(t, result.EvidenceDocuments, 1)
	assert.Equal(t, 4, result.Total)

	result, err = svc.Search(ctx, "تاريخ", models.SearchFilter{Category: "history"})
	require.NoError(t, err)
	assert.Len(t, result.Articles, 1)
	assert.Equal(t, "a2", result.Articles[0].ID)
	assert.Empty(t, result.EvidenceDocuments)
	assert.Equal(t, 2, result.Total)

	result, err = svc.Search(ctx, "", models.SearchFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, result.Articles, 1)
	assert.Len(t, result.TimelineEvents, 1)
	assert.Len(t, result.EvidenceDocuments, 1)
	assert.Equal(t, 3, result.Total)
}

func TestStaticContentService_Stats(t *testing.T) {
	svc := service.NewStaticContentService(fixtureLoader(), zerolog.Nop())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.ContentStats{Source: config.SourceFiles, Categories: 2, Articles: 3, Timeline: 2, Evidence: 2}, stats)
}

func TestStaticContentService_LoaderError(t *testing.T) {
	loader := fixtureLoader()
	loader.Err = errors.New("disk gone")
	svc := service.NewStaticContentService(loader, zerolog.Nop())

	_, err := svc.Articles(context.Background(), models.ArticleFilter{})
	assert.Error(t, err)
	_, err = svc.Search(context.Background(), "x", models.SearchFilter{})
	assert.Error(t, err)
}

func TestStoreContentService_Delegates(t *testing.T) {
	store := mocks.NewMockStore()
	store.Article.Articles = []models.ArticleWithCategory{{Article: models.Article{ID: "a1", Slug: "olives"}}}
	store.Category.Categories = []models.Category{{Slug: "history"}}
	svc := service.NewStoreContentService(store.Repositories())
	ctx := context.Background()

	featured := true
	filter := models.ArticleFilter{Category: "history", Featured: &featured, Limit: 4}
	articles, err := svc.Articles(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, articles, 1)
	assert.Equal(t, filter, store.Article.LastFilter)

	article, err := svc.ArticleBySlug(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, article)

	_, err = svc.Search(ctx, "قدس", models.SearchFilter{Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, "قدس", store.Search.LastQuery)
	assert.Equal(t, 3, store.Search.LastFilter.Limit)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, config.SourceStore, stats.Source)
	assert.Equal(t, 1, stats.Categories)
	assert.Equal(t, 1, stats.Articles)
	assert.Equal(t, 0, stats.Timeline)
}

func TestStoreContentService_StoreUnavailable(t *testing.T) {
	store := mocks.NewMockStore()
	store.Timeline.Err = &repository.StoreError{Op: "timeline.count", Err: errors.New("connection refused"), Unavailable: true}
	svc := service.NewStoreContentService(store.Repositories())

	_, err := svc.Stats(context.Background())
	assert.ErrorIs(t, err, repository.ErrStoreUnavailable)
}

func newSyncFixture(t *testing.T) (sqlmock.Sqlmock, *mocks.MockStore, *mocks.MockContentLoader, service.SyncService) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db := database.Wrap(sqlDB, "postgres", zerolog.Nop())
	store := mocks.NewMockStore()
	loader := fixtureLoader()
	return mock, store, loader, service.NewSyncService(db, store.Repositories(), loader, zerolog.Nop())
}

func TestSyncService_Sync(t *testing.T) {
	mock, store, _, svc := newSyncFixture(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	report, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Categories)
	assert.Equal(t, 3, report.Articles)
	assert.Equal(t, 2, report.Timeline)
	assert.Equal(t, 2, report.Evidence)

	assert.Len(t, store.Category.Upserted, 2)
	assert.Len(t, store.Article.Upserted, 3)
	assert.Len(t, store.Timeline.Upserted, 2)
	assert.Len(t, store.Evidence.Upserted, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncService_UpsertFailureRollsBack(t *testing.T) {
	mock, store, _, svc := newSyncFixture(t)
	store.Article.Err = errors.New("constraint violated")
	mock.ExpectBegin()
	mock.ExpectRollback()

	report, err := svc.Sync(context.Background())
	assert.Nil(t, report)
	assert.ErrorContains(t, err, "article olives")
	assert.Empty(t, store.Timeline.Upserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncService_LoadFailureSkipsStore(t *testing.T) {
	mock, _, loader, svc := newSyncFixture(t)
	loader.Err = errors.New("permission denied")

	_, err := svc.Sync(context.Background())
	assert.ErrorContains(t, err, "failed to load categories")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncService_RunStopsOnCancel(t *testing.T) {
	mock, _, _, svc := newSyncFixture(t)
	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 10; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx, 20*time.Millisecond) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestSyncService_RunRejectsInterval(t *testing.T) {
	_, _, _, svc := newSyncFixture(t)
	assert.Error(t, svc.Run(context.Background(), 0))
}
