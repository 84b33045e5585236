package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"lattesdocs/internal/config"
	"lattesdocs/internal/database"
	"lattesdocs/internal/database/migration"
	"lattesdocs/internal/logging"
	"lattesdocs/internal/publicid"
	"lattesdocs/internal/repository/postgres"
	"lattesdocs/internal/service"
	"lattesdocs/internal/storage"
)

// deps holds what every command that touches data needs.
type deps struct {
	cfg       *config.AppConfig
	logger    *logrus.Logger
	db        *sql.DB
	store     storage.Storage
	requests  *postgres.RequestPostgres
	documents *postgres.DocumentPostgres
	service   service.RequestService
}

func newLogger(cfg *config.AppConfig) *logrus.Logger {
	return logging.New(os.Stdout, cfg.LogLevel, cfg.Location())
}

func openDatabase(ctx context.Context, cfg *config.AppConfig, logger *logrus.Logger) (*sql.DB, error) {
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// bootstrap connects the database and object storage and builds the request service.
func bootstrap(ctx context.Context) (*deps, error) {
	cfg := config.Load()
	logger := newLogger(cfg)

	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	rt := &deps{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		store:     store,
		requests:  postgres.NewRequestPostgres(db),
		documents: postgres.NewDocumentPostgres(db),
	}
	rt.service = service.NewRequestService(
		rt.requests,
		rt.documents,
		store,
		publicid.NewGenerator(cfg.PublicIDPrefix),
		cfg.Upload,
		logger,
	)
	return rt, nil
}

func (rt *deps) Close() {
	if err := rt.db.Close(); err != nil {
		rt.logger.WithError(err).Warn("close database")
	}
}

// publicIDArg normalizes a code given on the command line and rejects malformed
// ones before any connection is opened.
func publicIDArg(arg string) (string, error) {
	code := publicid.Normalize(arg)
	if !publicid.NewGenerator(config.Load().PublicIDPrefix).Valid(code) {
		return "", cli.Exit(fmt.Sprintf("malformed public id %q", arg), 2)
	}
	return code, nil
}
