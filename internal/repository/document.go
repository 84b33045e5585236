package repository

import (
	"context"

	"lattesdocs/internal/model"
)

// SortOrder orders documents by upload time.
type SortOrder int

const (
	OldestFirst SortOrder = iota
	NewestFirst
)

// DocumentRepository persists uploaded documents. Rows are append-only.
type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// ListByRequest returns every document of the request, ordered by upload time.
	ListByRequest(ctx context.Context, requestID string, order SortOrder) ([]model.Document, error)
}
