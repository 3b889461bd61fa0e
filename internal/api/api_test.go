package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olive-branch-content-api/internal/api"
	"github.com/olive-branch-content-api/internal/config"
	"github.com/olive-branch-content-api/internal/mocks"
	"github.com/olive-branch-content-api/internal/models"
	"github.com/olive-branch-content-api/internal/repository"
	"github.com/olive-branch-content-api/internal/service"
	"github.com/rs/zerolog"
)

type stubStore struct{ err error }

func (s stubStore) HealthCheck(ctx context.Context) error { return s.err }

func setupTestRouter(store api.HealthChecker) (*gin.Engine, *mocks.MockContentService) {
	gin.SetMode(gin.TestMode)

	mockContent := mocks.NewMockContentService()
	services := &service.Services{Content: mockContent}

	cfg := &config.Config{
		Server:   config.ServerConfig{Port: "8080"},
		Database: config.DatabaseConfig{QueryTimeout: time.Second},
		Content:  config.ContentConfig{SearchDefaultLimit: 20},
	}

	router := api.NewRouter(services, cfg, store, zerolog.Nop())
	return router, mockContent
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter(nil)

	w := get(router, "/health")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
}

func TestHealthEndpoint_StoreDown(t *testing.T) {
	router, _ := setupTestRouter(stubStore{err: errors.New("connection refused")})

	w := get(router, "/health")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, mockContent := setupTestRouter(nil)
	mockContent.StatsResult = &models.ContentStats{Source: "store", Articles: 12, Timeline: 4}

	w := get(router, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		Content models.ContentStats `json:"content"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response.Content.Articles != 12 {
		t.Errorf("Expected 12 articles, got %d", response.Content.Articles)
	}
	if response.Content.Source != "store" {
		t.Errorf("Expected source 'store', got %q", response.Content.Source)
	}
}

func TestListArticles_Filters(t *testing.T) {
	router, mockContent := setupTestRouter(nil)
	mockContent.ArticlesList = []models.ArticleWithCategory{
		{Article: models.Article{ID: "a1", Slug: "jerusalem", Title: "تاريخ القدس"}},
	}

	w := get(router, "/v1/articles?category=history&featured=true&limit=5")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	filter := mockContent.LastArticleFilter
	if filter.Category != "history" {
		t.Errorf("Expected category 'history', got %q", filter.Category)
	}
	if filter.Featured == nil || !*filter.Featured {
		t.Error("Expected featured filter to be true")
	}
	if filter.Limit != 5 {
		t.Errorf("Expected limit 5, got %d", filter.Limit)
	}

	var response struct {
		Articles []models.ArticleWithCategory `json:"articles"`
		Count    int                          `json:"count"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response.Count != 1 || response.Articles[0].Title != "تاريخ القدس" {
		t.Errorf("Unexpected response body: %s", w.Body.String())
	}
}

func TestListArticles_BadParams(t *testing.T) {
	router, _ := setupTestRouter(nil)

	tests := []string{
		"/v1/articles?limit=-1",
		"/v1/articles?limit=ten",
		"/v1/articles?featured=maybe",
		"/v1/timeline?limit=x",
		"/v1/evidence?documentType=rumor",
		"/v1/evidence?verificationStatus=unknown",
		"/v1/search",
		"/v1/search?q=%20",
		"/v1/search?q=x&limit=-3",
	}

	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			w := get(router, path)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", w.Code)
			}
		})
	}
}

func TestGetArticle(t *testing.T) {
	router, mockContent := setupTestRouter(nil)
	mockContent.ArticlesList = []models.ArticleWithCategory{
		{
			Article:     models.Article{ID: "a1", Slug: "jerusalem", Category: "history"},
			CategoryRef: &models.Category{Slug: "history", Name: "تاريخ"},
		},
	}

	w := get(router, "/v1/articles/jerusalem")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var article models.ArticleWithCategory
	json.Unmarshal(w.Body.Bytes(), &article)
	if article.CategoryRef == nil || article.CategoryRef.Name != "تاريخ" {
		t.Errorf("Expected resolved category, got %+v", article.CategoryRef)
	}

	w = get(router, "/v1/articles/missing")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestListEvidence_Filters(t *testing.T) {
	router, mockContent := setupTestRouter(nil)

	w := get(router, "/v1/evidence?documentType=testimony&verificationStatus=verified&category=rights")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	filter := mockContent.LastEvidenceFilter
	if filter.DocumentType != models.DocumentTypeTestimony {
		t.Errorf("Expected documentType testimony, got %q", filter.DocumentType)
	}
	if filter.VerificationStatus != models.VerificationVerified {
		t.Errorf("Expected status verified, got %q", filter.VerificationStatus)
	}
	if filter.Category != "rights" {
		t.Errorf("Expected category rights, got %q", filter.Category)
	}
}

func TestSearch_DefaultLimit(t *testing.T) {
	router, mockContent := setupTestRouter(nil)
	mockContent.SearchResult = &models.SearchResult{
		Articles:          []models.Article{{ID: "a1"}},
		TimelineEvents:    []models.TimelineEvent{},
		EvidenceDocuments: []models.EvidenceDocument{{ID: "e1"}},
		Total:             2,
	}

	w := get(router, "/v1/search?q=%D8%AA%D8%A7%D8%B1%D9%8A%D8%AE&category=history")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if mockContent.LastQuery != "تاريخ" {
		t.Errorf("Expected decoded Arabic query, got %q", mockContent.LastQuery)
	}
	if mockContent.LastSearchFilter.Limit != 20 {
		t.Errorf("Expected default limit 20, got %d", mockContent.LastSearchFilter.Limit)
	}
	if mockContent.LastSearchFilter.Category != "history" {
		t.Errorf("Expected category history, got %q", mockContent.LastSearchFilter.Category)
	}

	var result models.SearchResult
	json.Unmarshal(w.Body.Bytes(), &result)
	if result.Total != 2 {
		t.Errorf("Expected total 2, got %d", result.Total)
	}

	get(router, "/v1/search?q=x&limit=3")
	if mockContent.LastSearchFilter.Limit != 3 {
		t.Errorf("Expected explicit limit 3, got %d", mockContent.LastSearchFilter.Limit)
	}
}

func TestStoreUnavailable(t *testing.T) {
	router, mockContent := setupTestRouter(nil)
	mockContent.Err = &repository.StoreError{Op: "articles.list", Err: errors.New("dial tcp: connection refused"), Unavailable: true}

	for _, path := range []string{"/v1/articles", "/v1/categories", "/v1/search?q=x", "/v1/articles/a"} {
		w := get(router, path)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: expected status 503, got %d", path, w.Code)
		}
		if body := w.Body.String(); body != `{"error":"Content store unavailable"}` {
			t.Errorf("%s: store details leaked: %s", path, body)
		}
	}
}

func TestStoreConstraintFailure(t *testing.T) {
	router, mockContent := setupTestRouter(nil)
	mockContent.Err = &repository.StoreError{Op: "articles.list", Err: errors.New("UNIQUE constraint failed: articles.id")}

	w := get(router, "/v1/articles")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"error":"Failed to load content"}` {
		t.Errorf("Expected generic error body, got %s", body)
	}
}

func TestInternalError(t *testing.T) {
	router, mockContent := setupTestRouter(nil)
	mockContent.Err = errors.New("boom")

	w := get(router, "/v1/timeline")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	router, _ := setupTestRouter(nil)

	req := httptest.NewRequest("OPTIONS", "/v1/articles", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS header")
	}
}
