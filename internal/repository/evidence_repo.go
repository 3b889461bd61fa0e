package repository

import (
	"context"
	"database/sql"

	"github.com/olive-branch-content-api/internal/database"
	"github.com/olive-branch-content-api/internal/models"
)

const evidenceColumns = `e.id, e.title, e.description, e.document_type, e.source, e.source_url,
		e.verification_status, e.tags, e.content, e.published_at, e.created_at, e.updated_at, e.category`

// evidenceRepo is the concrete implementation of EvidenceRepository
type evidenceRepo struct {
	db *database.DB
}

// NewEvidenceRepo creates a new evidence repository
func NewEvidenceRepo(db *database.DB) EvidenceRepository {
	return &evidenceRepo{db: db}
}

// List returns evidence documents newest first, narrowed by filter
func (r *evidenceRepo) List(ctx context.Context, filter models.EvidenceFilter) ([]models.EvidenceDocumentWithCategory, error) {
	var where whereBuilder
	if filter.Category != "" {
		where.add("e.category = %s", filter.Category)
	}
	if filter.DocumentType != "" {
		where.add("e.document_type = %s", string(filter.DocumentType))
	}
	if filter.VerificationStatus != "" {
		where.add("e.verification_status = %s", string(filter.VerificationStatus))
	}

	query := `
		SELECT ` + evidenceColumns + `, ` + categoryRefColumns + `
		FROM evidence_documents e
		LEFT JOIN categories c ON c.slug = e.category
		` + where.String() + `
		ORDER BY e.published_at DESC, e.id ASC
		` + where.limit(filter.Limit)

	return r.query(ctx, "evidence.list", query, where.args...)
}

// search matches title, description or content; ordered like List
func (r *evidenceRepo) search(ctx context.Context, q string, filter models.SearchFilter) ([]models.EvidenceDocument, error) {
	var where whereBuilder
	where.add(containsCond("e.title", "e.description", "e.content"), escapeLike(q))
	if filter.Category != "" {
		where.add("e.category = %s", filter.Category)
	}

	query := `
		SELECT ` + evidenceColumns + `, ` + categoryRefColumns + `
		FROM evidence_documents e
		LEFT JOIN categories c ON c.slug = e.category
		` + where.String() + `
		ORDER BY e.published_at DESC, e.id ASC
		` + where.limit(filter.Limit)

	rows, err := r.query(ctx, "evidence.search", query, where.args...)
	if err != nil {
		return nil, err
	}
	docs := make([]models.EvidenceDocument, len(rows))
	for i := range rows {
		docs[i] = rows[i].EvidenceDocument
	}
	return docs, nil
}

// Upsert inserts or updates an evidence document by id
func (r *evidenceRepo) Upsert(ctx context.Context, exec Execer, d *models.EvidenceDocument) error {
	query := `
		INSERT INTO evidence_documents (id, title, description, document_type, source, source_url,
			verification_status, tags, content, published_at, created_at, updated_at, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			document_type = EXCLUDED.document_type,
			source = EXCLUDED.source,
			source_url = EXCLUDED.source_url,
			verification_status = EXCLUDED.verification_status,
			tags = EXCLUDED.tags,
			content = EXCLUDED.content,
			published_at = EXCLUDED.published_at,
			updated_at = EXCLUDED.updated_at,
			category = EXCLUDED.category
	`
	sourceURL := sql.NullString{String: d.SourceURL, Valid: d.SourceURL != ""}
	status := d.VerificationStatus
	if status == "" {
		status = models.VerificationPending
	}

	_, err := exec.ExecContext(ctx, query,
		d.ID, d.Title, d.Description, string(d.DocumentType), d.Source, sourceURL,
		string(status), encodeList(d.Tags), d.Content, d.PublishedAt, d.CreatedAt, d.UpdatedAt, d.Category,
	)
	return storeErr("evidence.upsert", err)
}

// Count returns the total number of evidence documents
func (r *evidenceRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM evidence_documents").Scan(&count)
	return count, storeErr("evidence.count", err)
}

func (r *evidenceRepo) query(ctx context.Context, op, query string, args ...any) ([]models.EvidenceDocumentWithCategory, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	docs := []models.EvidenceDocumentWithCategory{}
	for rows.Next() {
		var d models.EvidenceDocumentWithCategory
		var docType, status, tags string
		var sourceURL sql.NullString
		var ref categoryRef

		dest := []any{
			&d.ID, &d.Title, &d.Description, &docType, &d.Source, &sourceURL,
			&status, &tags, &d.Content, &d.PublishedAt, &d.CreatedAt, &d.UpdatedAt, &d.Category,
		}
		if err := rows.Scan(append(dest, ref.dest()...)...); err != nil {
			return nil, storeErr(op, err)
		}

		d.DocumentType = models.DocumentType(docType)
		d.VerificationStatus = models.VerificationStatus(status)
		if d.VerificationStatus == "" {
			d.VerificationStatus = models.VerificationPending
		}
		d.SourceURL = sourceURL.String
		d.Tags = decodeList(tags)
		d.CategoryRef = ref.category()
		docs = append(docs, d)
	}
	return docs, storeErr(op, rows.Err())
}
