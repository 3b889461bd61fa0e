package repository

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/olive-branch-content-api/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeArticles struct {
	result []models.Article
	err    error
	calls  atomic.Int32
	filter models.SearchFilter
}

func (f *fakeArticles) search(_ context.Context, _ string, filter models.SearchFilter) ([]models.Article, error) {
	f.calls.Add(1)
	f.filter = filter
	return f.result, f.err
}

type fakeTimeline struct {
	result []models.TimelineEvent
	err    error
}

func (f *fakeTimeline) search(context.Context, string, models.SearchFilter) ([]models.TimelineEvent, error) {
	return f.result, f.err
}

type fakeEvidence struct {
	result []models.EvidenceDocument
	err    error
}

func (f *fakeEvidence) search(context.Context, string, models.SearchFilter) ([]models.EvidenceDocument, error) {
	return f.result, f.err
}

func TestSearch_MergesAllKinds(t *testing.T) {
	articles := &fakeArticles{result: []models.Article{{ID: "a1"}, {ID: "a2"}}}
	s := newSearcher(
		articles,
		&fakeTimeline{result: []models.TimelineEvent{{ID: "t1"}}},
		&fakeEvidence{result: []models.EvidenceDocument{}},
		zerolog.Nop(),
	)

	filter := models.SearchFilter{Category: "history", Limit: 5}
	result, err := s.Search(context.Background(), "تاريخ", filter)
	require.NoError(t, err)

	assert.Len(t, result.Articles, 2)
	assert.Len(t, result.TimelineEvents, 1)
	assert.Empty(t, result.EvidenceDocuments)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, int32(1), articles.calls.Load())
	assert.Equal(t, filter, articles.filter)
}

func TestSearch_OneSubQueryFailsWholeCall(t *testing.T) {
	cause := &StoreError{Op: "evidence.search", Err: errors.New("timeout"), Unavailable: true}
	s := newSearcher(
		&fakeArticles{result: []models.Article{{ID: "a1"}}},
		&fakeTimeline{result: []models.TimelineEvent{{ID: "t1"}}},
		&fakeEvidence{err: cause},
		zerolog.Nop(),
	)

	result, err := s.Search(context.Background(), "x", models.SearchFilter{})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, cause)
}
