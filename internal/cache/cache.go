// Package cache keeps loaded content collections in memory for a TTL.
// The loader itself never caches; this is the caller-side layer.
package cache

import (
	"time"

	"github.com/olive-branch-content-api/internal/models"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Loader is the file-source surface being cached
type Loader interface {
	LoadArticles() ([]models.Article, error)
	LoadTimeline() ([]models.TimelineEvent, error)
	LoadEvidence() ([]models.EvidenceDocument, error)
	LoadCategories() ([]models.Category, error)
}

const (
	keyArticles   = "articles"
	keyTimeline   = "timeline"
	keyEvidence   = "evidence"
	keyCategories = "categories"
)

// CachedLoader memoizes each collection of the wrapped loader.
// Concurrent misses for the same collection share one load.
type CachedLoader struct {
	next  Loader
	cache *gocache.Cache
	group singleflight.Group
	log   zerolog.Logger
}

// NewCachedLoader wraps next with a ttl cache
func NewCachedLoader(next Loader, ttl time.Duration, log zerolog.Logger) *CachedLoader {
	return &CachedLoader{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
		log:   log.With().Str("component", "content-cache").Logger(),
	}
}

func (c *CachedLoader) LoadArticles() ([]models.Article, error) {
	return load(c, keyArticles, c.next.LoadArticles)
}

func (c *CachedLoader) LoadTimeline() ([]models.TimelineEvent, error) {
	return load(c, keyTimeline, c.next.LoadTimeline)
}

func (c *CachedLoader) LoadEvidence() ([]models.EvidenceDocument, error) {
	return load(c, keyEvidence, c.next.LoadEvidence)
}

func (c *CachedLoader) LoadCategories() ([]models.Category, error) {
	return load(c, keyCategories, c.next.LoadCategories)
}

// Invalidate drops every cached collection
func (c *CachedLoader) Invalidate() {
	c.cache.Flush()
	c.log.Debug().Msg("Content cache flushed")
}

// load returns the cached collection or fills it. Failed loads are not cached.
func load[T any](c *CachedLoader, key string, fn func() ([]T, error)) ([]T, error) {
	if v, found := c.cache.Get(key); found {
		return v.([]T), nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		items, err := fn()
		if err != nil {
			return nil, err
		}
		c.cache.SetDefault(key, items)
		c.log.Debug().Str("collection", key).Int("count", len(items)).Msg("Content collection cached")
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]T), nil
}
