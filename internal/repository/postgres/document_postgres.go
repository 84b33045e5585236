package postgres

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"lattesdocs/internal/model"
	"lattesdocs/internal/repository"
)

var documentColumns = []string{
	"id", "request_id", "doc_type", "description",
	"storage_key", "original_filename", "size", "content_type", "uploaded_at",
}

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// DocumentPostgres implements repository.DocumentRepository.
type DocumentPostgres struct {
	db *sql.DB
}

func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

func scanDocument(row rowScanner) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.RequestID,
		&d.DocType,
		&d.Description,
		&d.File.StorageKey,
		&d.File.OriginalFilename,
		&d.File.Size,
		&d.File.ContentType,
		&d.UploadedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	q, args, err := psql().
		Insert("lattes_documents").
		Columns(documentColumns...).
		Values(
			doc.ID,
			doc.RequestID,
			doc.DocType,
			doc.Description,
			doc.File.StorageKey,
			doc.File.OriginalFilename,
			doc.File.Size,
			doc.File.ContentType,
			doc.UploadedAt,
		).
		Suffix("RETURNING " + strings.Join(documentColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanDocument(r.db.QueryRowContext(ctx, q, args...))
}

func (r *DocumentPostgres) ListByRequest(ctx context.Context, requestID string, order repository.SortOrder) ([]model.Document, error) {
	dir := "ASC"
	if order == repository.NewestFirst {
		dir = "DESC"
	}

	q, args, err := psql().
		Select(documentColumns...).
		From("lattes_documents").
		Where(sq.Eq{"request_id": requestID}).
		OrderBy("uploaded_at "+dir, "id "+dir).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}
