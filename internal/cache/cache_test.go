package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/olive-branch-content-api/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	loads atomic.Int32
	fail  atomic.Bool
	delay time.Duration
}

func (l *countingLoader) LoadArticles() ([]models.Article, error) {
	l.loads.Add(1)
	time.Sleep(l.delay)
	if l.fail.Load() {
		return nil, errors.New("read failed")
	}
	return []models.Article{{ID: "a1"}}, nil
}

func (l *countingLoader) LoadTimeline() ([]models.TimelineEvent, error) {
	l.loads.Add(1)
	return []models.TimelineEvent{{ID: "t1"}}, nil
}

func (l *countingLoader) LoadEvidence() ([]models.EvidenceDocument, error) {
	l.loads.Add(1)
	return []models.EvidenceDocument{}, nil
}

func (l *countingLoader) LoadCategories() ([]models.Category, error) {
	l.loads.Add(1)
	return []models.Category{{Slug: "history"}}, nil
}

func TestCachedLoader_HitsCache(t *testing.T) {
	next := &countingLoader{}
	c := NewCachedLoader(next, time.Minute, zerolog.Nop())

	for i := 0; i < 3; i++ {
		articles, err := c.LoadArticles()
		require.NoError(t, err)
		assert.Equal(t, "a1", articles[0].ID)
	}
	assert.Equal(t, int32(1), next.loads.Load())

	_, err := c.LoadCategories()
	require.NoError(t, err)
	assert.Equal(t, int32(2), next.loads.Load())

	c.Invalidate()
	_, err = c.LoadArticles()
	require.NoError(t, err)
	assert.Equal(t, int32(3), next.loads.Load())
}

func TestCachedLoader_Expires(t *testing.T) {
	next := &countingLoader{}
	c := NewCachedLoader(next, 20*time.Millisecond, zerolog.Nop())

	_, err := c.LoadTimeline()
	require.NoError(t, err)
	time.Sleep(40 * time.Millisecond)
	_, err = c.LoadTimeline()
	require.NoError(t, err)

	assert.Equal(t, int32(2), next.loads.Load())
}

func TestCachedLoader_ErrorsNotCached(t *testing.T) {
	next := &countingLoader{}
	next.fail.Store(true)
	c := NewCachedLoader(next, time.Minute, zerolog.Nop())

	_, err := c.LoadArticles()
	assert.Error(t, err)

	next.fail.Store(false)
	articles, err := c.LoadArticles()
	require.NoError(t, err)
	assert.Len(t, articles, 1)
	assert.Equal(t, int32(2), next.loads.Load())
}

func TestCachedLoader_ConcurrentMissesShareLoad(t *testing.T) {
	next := &countingLoader{delay: 50 * time.Millisecond}
	c := NewCachedLoader(next, time.Minute, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.LoadArticles()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), next.loads.Load())
}
