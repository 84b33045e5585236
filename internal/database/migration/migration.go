// Package migration creates the request store schema on first boot.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// SentinelTable is checked before running; its presence means the schema exists.
const SentinelTable = "lattes_requests"

type step struct {
	Name string
	SQL  string
}

var steps = []step{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_lattes_requests",
		SQL: `CREATE TABLE IF NOT EXISTS lattes_requests (
  id           UUID         PRIMARY KEY DEFAULT uuid_generate_v4(),
  public_id    VARCHAR(32)  NOT NULL UNIQUE,
  full_name    VARCHAR(120) NOT NULL,
  email        TEXT         NOT NULL,
  phone        VARCHAR(30)  NOT NULL DEFAULT '',
  goal         VARCHAR(200) NOT NULL DEFAULT '',
  deadline     DATE         NULL,
  notes        TEXT         NOT NULL DEFAULT '',
  status       VARCHAR(20)  NOT NULL DEFAULT 'NEW' CHECK (status IN ('NEW', 'IN_PROGRESS', 'DONE')),
  finalized_at TIMESTAMPTZ  NULL,
  created_at   TIMESTAMPTZ  NOT NULL DEFAULT now(),
  updated_at   TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_lattes_requests_email",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_lattes_requests_email ON lattes_requests (lower(email));`,
	},
	{
		Name: "create_index_lattes_requests_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_lattes_requests_created_at ON lattes_requests (created_at DESC);`,
	},
	{
		Name: "create_table_lattes_documents",
		SQL: `CREATE TABLE IF NOT EXISTS lattes_documents (
  id                UUID         PRIMARY KEY DEFAULT uuid_generate_v4(),
  request_id        UUID         NOT NULL REFERENCES lattes_requests (id) ON DELETE CASCADE,
  doc_type          VARCHAR(30)  NOT NULL,
  description       VARCHAR(200) NOT NULL DEFAULT '',
  storage_key       TEXT         NOT NULL DEFAULT '',
  original_filename TEXT         NOT NULL DEFAULT '',
  size              BIGINT       NOT NULL DEFAULT 0 CHECK (size >= 0),
  content_type      TEXT         NOT NULL DEFAULT '',
  uploaded_at       TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_lattes_documents_request_uploaded",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_lattes_documents_request_uploaded ON lattes_documents (request_id, uploaded_at);`,
	},
}

// EnsureMigrated runs every step unless the sentinel table is already there.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *logrus.Logger, dbHost string) error {
	start := time.Now()
	log := logger.WithFields(logrus.Fields{
		"component": "database",
		"db_host":   dbHost,
	})

	log.WithField("event", "db_migration_check").Info("checking schema")

	var exists bool
	query := fmt.Sprintf("SELECT to_regclass('public.%s') IS NOT NULL", SentinelTable)
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.WithError(err).
			WithField("event", "db_migration_failed").
			WithField("duration_ms", time.Since(start).Milliseconds()).
			Error("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.WithField("event", "db_migration_skip").
			WithField("duration_ms", time.Since(start).Milliseconds()).
			Info("schema already exists, skipping migration")
		return nil
	}

	for _, s := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, s.SQL); err != nil {
			log.WithError(err).WithFields(logrus.Fields{
				"event":            "db_migration_failed",
				"migration_step":   s.Name,
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			}).Error("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", s.Name, err)
		}

		log.WithFields(logrus.Fields{
			"event":            "db_migration_step",
			"migration_step":   s.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		}).Debug("migration step applied")
	}

	log.WithField("event", "db_migration_success").
		WithField("duration_ms", time.Since(start).Milliseconds()).
		Infof("applied %d migration steps", len(steps))

	return nil
}
