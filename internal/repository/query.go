package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/olive-branch-content-api/internal/models"
)

// Execer is satisfied by *sql.Tx and *database.DB
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// categoryRefColumns selects the joined category of a content row
const categoryRefColumns = `c.id, c.name, c.slug, c.description, c.color, c.icon, c.sort_order`

// whereBuilder accumulates AND-ed conditions with numbered placeholders.
// Placeholders are numbered in order of first use, which both postgres and
// sqlite3 bind correctly.
type whereBuilder struct {
	conds []string
	args  []any
}

// add appends cond, replacing each %s with the placeholder of value
func (w *whereBuilder) add(cond string, value any) {
	ph := w.arg(value)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "%s", ph))
}

func (w *whereBuilder) arg(value any) string {
	w.args = append(w.args, value)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conds, " AND ")
}

// limit renders a LIMIT clause; n <= 0 means unbounded
func (w *whereBuilder) limit(n int) string {
	if n <= 0 {
		return ""
	}
	return "LIMIT " + w.arg(n)
}

// containsCond matches any of columns containing the placeholder value,
// case-insensitively
func containsCond(columns ...string) string {
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf(`LOWER(%s) LIKE '%%' || LOWER(%%s) || '%%' ESCAPE '\'`, col)
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// categoryRef scans the nullable columns of a LEFT JOINed category
type categoryRef struct {
	id, name, slug, description, color, icon sql.NullString
	order                                    sql.NullInt64
}

func (c *categoryRef) dest() []any {
	return []any{&c.id, &c.name, &c.slug, &c.description, &c.color, &c.icon, &c.order}
}

// category returns nil when the reference did not resolve
func (c *categoryRef) category() *models.Category {
	if !c.id.Valid {
		return nil
	}
	return &models.Category{
		ID:          c.id.String,
		Name:        c.name.String,
		Slug:        c.slug.String,
		Description: c.description.String,
		Color:       c.color.String,
		Icon:        c.icon.String,
		Order:       int(c.order.Int64),
	}
}

// encodeList stores a string collection as JSON text
func encodeList(list []string) string {
	if list == nil {
		return "[]"
	}
	data, _ := json.Marshal(list)
	return string(data)
}

// decodeList materializes a stored collection, accepting JSON arrays as well
// as legacy comma-delimited text
func decodeList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "[") {
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err == nil && list != nil {
			return list
		}
		return []string{}
	}
	if list := models.SplitList(raw); list != nil {
		return list
	}
	return []string{}
}
