package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lattesdocs/internal/model"
	"lattesdocs/internal/repository"
)

var requestRowColumns = []string{
	"id", "public_id", "full_name", "email", "phone", "goal", "deadline",
	"notes", "status", "finalized_at", "created_at", "updated_at",
}

func newRequestRepo(t *testing.T) (*RequestPostgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRequestPostgres(db), mock
}

func TestRequestPostgres_Create(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	deadline := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	req := &model.Request{
		ID:        "req-uuid",
		PublicID:  "RPM-ABCD2345",
		FullName:  "Ana Souza",
		Email:     "ana@example.com",
		Phone:     "+55 11 99999-0000",
		Goal:      "Master's application",
		Deadline:  &deadline,
		Status:    model.StatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}

	t.Run("success", func(t *testing.T) {
		repo, mock := newRequestRepo(t)

		rows := sqlmock.NewRows(requestRowColumns).
			AddRow(req.ID, req.PublicID, req.FullName, req.Email, req.Phone, req.Goal, deadline, "", "NEW", nil, now, now)

		mock.ExpectQuery("INSERT INTO lattes_requests").
			WithArgs(req.ID, req.PublicID, req.FullName, req.Email, req.Phone, req.Goal, deadline, "", "NEW", now, now).
			WillReturnRows(rows)

		got, err := repo.Create(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "RPM-ABCD2345", got.PublicID)
		require.NotNil(t, got.Deadline)
		assert.True(t, deadline.Equal(*got.Deadline))
		assert.Nil(t, got.FinalizedAt)
		assert.Equal(t, model.StatusNew, got.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate public id", func(t *testing.T) {
		repo, mock := newRequestRepo(t)

		mock.ExpectQuery("INSERT INTO lattes_requests").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "lattes_requests_public_id_key"})

		got, err := repo.Create(context.Background(), req)
		assert.ErrorIs(t, err, repository.ErrDuplicatePublicID)
		assert.Nil(t, got)
	})

	t.Run("other database error", func(t *testing.T) {
		repo, mock := newRequestRepo(t)

		mock.ExpectQuery("INSERT INTO lattes_requests").
			WillReturnError(&pgconn.PgError{Code: "23514"})

		_, err := repo.Create(context.Background(), req)
		require.Error(t, err)
		assert.NotErrorIs(t, err, repository.ErrDuplicatePublicID)
	})
}

func TestRequestPostgres_ExistsPublicID(t *testing.T) {
	repo, mock := newRequestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM lattes_requests WHERE public_id = $1)")).
		WithArgs("RPM-ABCD2345").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.ExistsPublicID(context.Background(), "RPM-ABCD2345")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestPostgres_FindByPublicIDAndEmail(t *testing.T) {
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		repo, mock := newRequestRepo(t)

		rows := sqlmock.NewRows(requestRowColumns).
			AddRow("req-uuid", "RPM-ABCD2345", "Ana", "Ana@Example.com", "", "", nil, "", "IN_PROGRESS", now, now, now)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE public_id = $1 AND lower(email) = lower($2)")).
			WithArgs("RPM-ABCD2345", "ana@example.com").
			WillReturnRows(rows)

		got, err := repo.FindByPublicIDAndEmail(context.Background(), "RPM-ABCD2345", "ana@example.com")
		require.NoError(t, err)
		assert.Equal(t, model.StatusInProgress, got.Status)
		assert.Nil(t, got.Deadline)
		assert.True(t, got.Finalized())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRequestRepo(t)

		mock.ExpectQuery("FROM lattes_requests WHERE public_id").
			WillReturnRows(sqlmock.NewRows(requestRowColumns))

		got, err := repo.FindByPublicIDAndEmail(context.Background(), "RPM-ABCD2345", "who@example.com")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, got)
	})
}

func TestRequestPostgres_FindByPublicID(t *testing.T) {
	repo, mock := newRequestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM lattes_requests WHERE public_id = $1")).
		WithArgs("RPM-ZZZZZZZZ").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FindByPublicID(context.Background(), "RPM-ZZZZZZZZ")
	assert.EqualError(t, err, "connection reset")
}

func TestRequestPostgres_Updates(t *testing.T) {
	at := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	t.Run("update status", func(t *testing.T) {
		repo, mock := newRequestRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE lattes_requests SET status = $2")).
			WithArgs("req-uuid", "DONE").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateStatus(context.Background(), "req-uuid", model.StatusDone))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mark finalized keeps the first timestamp", func(t *testing.T) {
		repo, mock := newRequestRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("SET finalized_at = COALESCE(finalized_at, $2)")).
			WithArgs("req-uuid", at).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.MarkFinalized(context.Background(), "req-uuid", at))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock := newRequestRepo(t)
		mock.ExpectExec("DELETE FROM lattes_requests").
			WithArgs("gone").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), "gone"), sql.ErrNoRows)
	})

	t.Run("delete", func(t *testing.T) {
		repo, mock := newRequestRepo(t)
		mock.ExpectExec("DELETE FROM lattes_requests").
			WithArgs("req-uuid").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), "req-uuid"))
	})
}
