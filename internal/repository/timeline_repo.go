package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/olive-branch-content-api/internal/config"
	"github.com/olive-branch-content-api/internal/database"
	"github.com/olive-branch-content-api/internal/models"
)

const timelineColumns = `t.id, t.title, t.description, t.date, t.category, t.importance, t.sources,
		t.created_at, t.updated_at`

// timelineOrder puts importance first, unlike the file loader's date-only order
const timelineOrder = `ORDER BY t.importance DESC, t.date DESC, t.id ASC`

// timelineRepo is the concrete implementation of TimelineRepository
type timelineRepo struct {
	db *database.DB
}

// NewTimelineRepo creates a new timeline repository
func NewTimelineRepo(db *database.DB) TimelineRepository {
	return &timelineRepo{db: db}
}

// List returns timeline events by importance, then date, both descending
func (r *timelineRepo) List(ctx context.Context, filter models.TimelineFilter) ([]models.TimelineEventWithCategory, error) {
	var where whereBuilder
	if filter.Category != "" {
		where.add("t.category = %s", filter.Category)
	}

	query := `
		SELECT ` + timelineColumns + `, ` + categoryRefColumns + `
		FROM timeline_events t
		LEFT JOIN categories c ON c.slug = t.category
		` + where.String() + `
		` + timelineOrder + `
		` + where.limit(filter.Limit)

	return r.query(ctx, "timeline.list", query, where.args...)
}

// search matches title or description; ordered like List
func (r *timelineRepo) search(ctx context.Context, q string, filter models.SearchFilter) ([]models.TimelineEvent, error) {
	var where whereBuilder
	where.add(containsCond("t.title", "t.description"), escapeLike(q))
	if filter.Category != "" {
		where.add("t.category = %s", filter.Category)
	}

	query := `
		SELECT ` + timelineColumns + `, ` + categoryRefColumns + `
		FROM timeline_events t
		LEFT JOIN categories c ON c.slug = t.category
		` + where.String() + `
		` + timelineOrder + `
		` + where.limit(filter.Limit)

	rows, err := r.query(ctx, "timeline.search", query, where.args...)
	if err != nil {
		return nil, err
	}
	events := make([]models.TimelineEvent, len(rows))
	for i := range rows {
		events[i] = rows[i].TimelineEvent
	}
	return events, nil
}

// Upsert inserts or updates a timeline event by id
func (r *timelineRepo) Upsert(ctx context.Context, exec Execer, e *models.TimelineEvent) error {
	query := `
		INSERT INTO timeline_events (id, title, description, date, category, importance, sources, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			date = EXCLUDED.date,
			category = EXCLUDED.category,
			importance = EXCLUDED.importance,
			sources = EXCLUDED.sources,
			updated_at = EXCLUDED.updated_at
	`
	_, err := exec.ExecContext(ctx, query,
		e.ID, e.Title, e.Description, r.dateArg(e.Date), e.Category,
		clampImportance(e.Importance), encodeList(e.Sources), e.CreatedAt, e.UpdatedAt,
	)
	return storeErr("timeline.upsert", err)
}

// Count returns the total number of timeline events
func (r *timelineRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM timeline_events").Scan(&count)
	return count, storeErr("timeline.count", err)
}

func (r *timelineRepo) query(ctx context.Context, op, query string, args ...any) ([]models.TimelineEventWithCategory, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	events := []models.TimelineEventWithCategory{}
	for rows.Next() {
		var e models.TimelineEventWithCategory
		var sources string
		var ref categoryRef

		dest := []any{
			&e.ID, &e.Title, &e.Description, eventDate{&e.Date}, &e.Category, &e.Importance, &sources,
			&e.CreatedAt, &e.UpdatedAt,
		}
		if err := rows.Scan(append(dest, ref.dest()...)...); err != nil {
			return nil, storeErr(op, err)
		}

		e.Importance = clampImportance(e.Importance)
		e.Sources = decodeList(sources)
		e.CategoryRef = ref.category()
		events = append(events, e)
	}
	return events, storeErr(op, rows.Err())
}

func clampImportance(v int) int {
	return min(max(v, models.MinImportance), models.MaxImportance)
}

// dateArg encodes an event date for the date column. sqlite stores unix
// seconds so BCE dates survive and still sort.
func (r *timelineRepo) dateArg(t time.Time) any {
	if r.db.Dialect() == config.DriverSQLite {
		return t.Unix()
	}
	return t
}

// eventDate scans either encoding of the date column
type eventDate struct {
	t *time.Time
}

func (d eventDate) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*d.t = time.Unix(v, 0).UTC()
	case time.Time:
		*d.t = v.UTC()
	default:
		return fmt.Errorf("unsupported event date type %T", src)
	}
	return nil
}
