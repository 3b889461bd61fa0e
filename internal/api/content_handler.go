package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olive-branch-content-api/internal/config"
	"github.com/olive-branch-content-api/internal/models"
	"github.com/olive-branch-content-api/internal/repository"
	"github.com/olive-branch-content-api/internal/service"
	"github.com/rs/zerolog"
)

// ContentHandler handles the read-only content endpoints
type ContentHandler struct {
	content      service.ContentService
	queryTimeout time.Duration
	searchLimit  int
	log          zerolog.Logger
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(content service.ContentService, cfg *config.Config, log zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		content:      content,
		queryTimeout: cfg.Database.QueryTimeout,
		searchLimit:  cfg.Content.SearchDefaultLimit,
		log:          log.With().Str("handler", "content").Logger(),
	}
}

// ListCategories handles GET /v1/categories
func (h *ContentHandler) ListCategories(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, h.queryTimeout)
	defer cancel()

	categories, err := h.content.Categories(ctx)
	if err != nil {
		h.fail(c, "categories", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories, "count": len(categories)})
}

// ListArticles handles GET /v1/articles?category&featured&limit
func (h *ContentHandler) ListArticles(c *gin.Context) {
	limit, err := parseLimit(c, 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter := models.ArticleFilter{Category: c.Query("category"), Limit: limit}

	if raw := c.Query("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "featured must be true or false"})
			return
		}
		filter.Featured = &featured
	}

	ctx, cancel := contextWithTimeout(c, h.queryTimeout)
	defer cancel()

	articles, err := h.content.Articles(ctx, filter)
	if err != nil {
		h.fail(c, "articles", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles, "count": len(articles)})
}

// GetArticle handles GET /v1/articles/:slug
func (h *ContentHandler) GetArticle(c *gin.Context) {
	slug := c.Param("slug")

	ctx, cancel := contextWithTimeout(c, h.queryTimeout)
	defer cancel()

	article, err := h.content.ArticleBySlug(ctx, slug)
	if err != nil {
		h.fail(c, "article", err)
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	c.JSON(http.StatusOK, article)
}

// ListTimeline handles GET /v1/timeline?category&limit
func (h *ContentHandler) ListTimeline(c *gin.Context) {
	limit, err := parseLimit(c, 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := contextWithTimeout(c, h.queryTimeout)
	defer cancel()

	events, err := h.content.Timeline(ctx, models.TimelineFilter{Category: c.Query("category"), Limit: limit})
	if err != nil {
		h.fail(c, "timeline", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"timelineEvents": events, "count": len(events)})
}

// ListEvidence handles GET /v1/evidence?category&documentType&verificationStatus&limit
func (h *ContentHandler) ListEvidence(c *gin.Context) {
	limit, err := parseLimit(c, 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter := models.EvidenceFilter{
		Category:           c.Query("category"),
		DocumentType:       models.DocumentType(c.Query("documentType")),
		VerificationStatus: models.VerificationStatus(c.Query("verificationStatus")),
		Limit:              limit,
	}
	if filter.DocumentType != "" && !models.ValidDocumentTypes[filter.DocumentType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "documentType must be one of: report, document, testimony, media, other"})
		return
	}
	if filter.VerificationStatus != "" && !models.ValidVerificationStatuses[filter.VerificationStatus] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "verificationStatus must be one of: verified, pending, disputed"})
		return
	}

	ctx, cancel := contextWithTimeout(c, h.queryTimeout)
	defer cancel()

	docs, err := h.content.Evidence(ctx, filter)
	if err != nil {
		h.fail(c, "evidence", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"evidenceDocuments": docs, "count": len(docs)})
}

// Search handles GET /v1/search?q&category&limit
func (h *ContentHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q parameter is required"})
		return
	}
	limit, err := parseLimit(c, h.searchLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := contextWithTimeout(c, h.queryTimeout)
	defer cancel()

	result, err := h.content.Search(ctx, query, models.SearchFilter{Category: c.Query("category"), Limit: limit})
	if err != nil {
		h.fail(c, "search", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Metrics handles GET /metrics
func (h *ContentHandler) Metrics(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, h.queryTimeout)
	defer cancel()

	stats, err := h.content.Stats(ctx)
	if err != nil {
		h.fail(c, "metrics", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"content":   stats,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// fail maps a service error to a response. Store details stay in the log.
func (h *ContentHandler) fail(c *gin.Context, op string, err error) {
	if errors.Is(err, repository.ErrStoreUnavailable) {
		h.log.Error().Err(err).Str("op", op).Msg("Content store unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Content store unavailable"})
		return
	}
	h.log.Error().Err(err).Str("op", op).Msg("Content request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load content"})
}

// parseLimit reads the limit query parameter, falling back to def when absent
func parseLimit(c *gin.Context, def int) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return def, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, fmt.Errorf("limit must be a non-negative integer")
	}
	return limit, nil
}
