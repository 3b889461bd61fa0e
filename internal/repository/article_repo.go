package repository

import (
	"context"
	"database/sql"

	"github.com/olive-branch-content-api/internal/database"
	"github.com/olive-branch-content-api/internal/models"
)

const articleColumns = `a.id, a.title, a.slug, a.content, a.excerpt, a.category, a.tags,
		a.published_at, a.updated_at, a.featured, a.read_time`

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// List returns articles newest first, narrowed by filter
func (r *articleRepo) List(ctx context.Context, filter models.ArticleFilter) ([]models.ArticleWithCategory, error) {
	var where whereBuilder
	if filter.Category != "" {
		where.add("a.category = %s", filter.Category)
	}
	if filter.Featured != nil {
		where.add("a.featured = %s", *filter.Featured)
	}

	query := `
		SELECT ` + articleColumns + `, ` + categoryRefColumns + `
		FROM articles a
		LEFT JOIN categories c ON c.slug = a.category
		` + where.String() + `
		ORDER BY a.published_at DESC, a.id ASC
		` + where.limit(filter.Limit)

	return r.query(ctx, "articles.list", query, where.args...)
}

// GetBySlug retrieves an article with its category; nil when absent
func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.ArticleWithCategory, error) {
	query := `
		SELECT ` + articleColumns + `, ` + categoryRefColumns + `
		FROM articles a
		LEFT JOIN categories c ON c.slug = a.category
		WHERE a.slug = $1
	`
	article, err := scanArticle(r.db.QueryRowContext(ctx, query, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("articles.get", err)
	}
	return article, nil
}

// search matches title, content or excerpt; ordered like List
func (r *articleRepo) search(ctx context.Context, q string, filter models.SearchFilter) ([]models.Article, error) {
	var where whereBuilder
	where.add(containsCond("a.title", "a.content", "a.excerpt"), escapeLike(q))
	if filter.Category != "" {
		where.add("a.category = %s", filter.Category)
	}

	query := `
		SELECT ` + articleColumns + `, ` + categoryRefColumns + `
		FROM articles a
		LEFT JOIN categories c ON c.slug = a.category
		` + where.String() + `
		ORDER BY a.published_at DESC, a.id ASC
		` + where.limit(filter.Limit)

	rows, err := r.query(ctx, "articles.search", query, where.args...)
	if err != nil {
		return nil, err
	}
	articles := make([]models.Article, len(rows))
	for i := range rows {
		articles[i] = rows[i].Article
	}
	return articles, nil
}

// Upsert inserts or updates an article by slug
func (r *articleRepo) Upsert(ctx context.Context, exec Execer, a *models.Article) error {
	query := `
		INSERT INTO articles (id, title, slug, content, excerpt, category, tags, published_at, updated_at, featured, read_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (slug) DO UPDATE SET
			id = EXCLUDED.id,
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			excerpt = EXCLUDED.excerpt,
			category = EXCLUDED.category,
			tags = EXCLUDED.tags,
			published_at = EXCLUDED.published_at,
			updated_at = EXCLUDED.updated_at,
			featured = EXCLUDED.featured,
			read_time = EXCLUDED.read_time
	`
	_, err := exec.ExecContext(ctx, query,
		a.ID, a.Title, a.Slug, a.Content, a.Excerpt, a.Category, encodeList(a.Tags),
		a.PublishedAt, a.UpdatedAt, a.Featured, a.ReadTime,
	)
	return storeErr("articles.upsert", err)
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, storeErr("articles.count", err)
}

func (r *articleRepo) query(ctx context.Context, op, query string, args ...any) ([]models.ArticleWithCategory, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	articles := []models.ArticleWithCategory{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}
		articles = append(articles, *article)
	}
	return articles, storeErr(op, rows.Err())
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*models.ArticleWithCategory, error) {
	var a models.ArticleWithCategory
	var tags string
	var ref categoryRef

	dest := []any{
		&a.ID, &a.Title, &a.Slug, &a.Content, &a.Excerpt, &a.Category, &tags,
		&a.PublishedAt, &a.UpdatedAt, &a.Featured, &a.ReadTime,
	}
	if err := row.Scan(append(dest, ref.dest()...)...); err != nil {
		return nil, err
	}

	a.Tags = decodeList(tags)
	a.CategoryRef = ref.category()
	return &a, nil
}
