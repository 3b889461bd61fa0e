package repository

import (
	"context"

	"github.com/olive-branch-content-api/internal/config"
	"github.com/olive-branch-content-api/internal/database"
	"github.com/olive-branch-content-api/internal/models"
)

// categoryRepo is the concrete implementation of CategoryRepository
type categoryRepo struct {
	db *database.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *database.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

// List returns every category by display order. Equal orders keep insertion order.
func (r *categoryRepo) List(ctx context.Context) ([]models.Category, error) {
	// Ties keep insertion order: rowid on sqlite3, the per-row created_at clock on postgres
	tieBreak := "created_at ASC, id ASC"
	if r.db.Dialect() == config.DriverSQLite {
		tieBreak = "rowid ASC"
	}
	query := `
		SELECT id, name, slug, description, color, icon, sort_order
		FROM categories
		ORDER BY sort_order ASC, ` + tieBreak
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeErr("categories.list", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color, &c.Icon, &c.Order); err != nil {
			return nil, storeErr("categories.list", err)
		}
		categories = append(categories, c)
	}
	return categories, storeErr("categories.list", rows.Err())
}

// Upsert inserts or updates a category by slug
func (r *categoryRepo) Upsert(ctx context.Context, exec Execer, c *models.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, description, color, icon, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			color = EXCLUDED.color,
			icon = EXCLUDED.icon,
			sort_order = EXCLUDED.sort_order
	`
	_, err := exec.ExecContext(ctx, query, c.ID, c.Name, c.Slug, c.Description, c.Color, c.Icon, c.Order)
	return storeErr("categories.upsert", err)
}

// Count returns the total number of categories
func (r *categoryRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count)
	return count, storeErr("categories.count", err)
}
