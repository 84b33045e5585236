// Package repository declares the persistence contracts of the request store.
// Implementations live in subpackages; lookups that match nothing return
// sql.ErrNoRows so callers can tell absence from failure.
package repository

import (
	"context"
	"errors"
	"time"

	"lattesdocs/internal/model"
)

// ErrDuplicatePublicID is returned by Create when the public id is already taken.
var ErrDuplicatePublicID = errors.New("public id already taken")

// RequestRepository persists requests.
type RequestRepository interface {
	// Create inserts req and returns the stored row with database defaults applied.
	Create(ctx context.Context, req *model.Request) (*model.Request, error)

	// ExistsPublicID reports whether any request already uses publicID.
	ExistsPublicID(ctx context.Context, publicID string) (bool, error)

	FindByPublicID(ctx context.Context, publicID string) (*model.Request, error)

	// FindByPublicIDAndEmail matches the public id exactly and the email case-insensitively.
	FindByPublicIDAndEmail(ctx context.Context, publicID, email string) (*model.Request, error)

	UpdateStatus(ctx context.Context, id string, status model.Status) error

	// MarkFinalized records when the finalize notifications went out.
	MarkFinalized(ctx context.Context, id string, at time.Time) error

	// Delete removes the request; its documents go with it.
	Delete(ctx context.Context, id string) error
}
