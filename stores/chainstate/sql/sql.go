// Package sql stores the chain state in a postgres or sqlite "state" table.
package sql

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bitcoin-sv/headerchain/settings"
	"github.com/bitcoin-sv/headerchain/ulogger"
	"github.com/bitcoin-sv/headerchain/util"
	"github.com/bitcoin-sv/headerchain/util/usql"
)

type SQL struct {
	db     *usql.DB
	engine util.SQLEngine
	logger ulogger.Logger
}

func New(logger ulogger.Logger, storeURL *url.URL, tSettings *settings.Settings) (*SQL, error) {
	logger = logger.New("csql")

	db, err := util.InitSQLDB(logger, storeURL, tSettings)
	if err != nil {
		return nil, err
	}

	engine := util.SQLEngine(storeURL.Scheme)

	switch engine {
	case util.Postgres:
		err = createPostgresSchema(db)
	case util.Sqlite, util.SqliteMemory:
		err = createSqliteSchema(db)
	default:
		err = errors.NewConfigurationError("unknown database engine: %s", storeURL.Scheme)
	}

	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQL{
		db:     db,
		engine: engine,
		logger: logger,
	}, nil
}

func (s *SQL) Health(ctx context.Context, _ bool) (int, string, error) {
	var num int

	if err := s.db.QueryRowContext(ctx, "SELECT 1").Scan(&num); err != nil {
		return http.StatusServiceUnavailable, "Database connection error", errors.NewStorageUnavailableError("chain state database is unreachable", err)
	}

	return http.StatusOK, "OK", nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}

func createPostgresSchema(db *usql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS state (
		 key            VARCHAR(32) PRIMARY KEY
		,data           BYTEA NOT NULL
		,inserted_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		,updated_at     TIMESTAMPTZ NULL
		);
	`); err != nil {
		return errors.NewStorageError("could not create state table", err)
	}

	return nil
}

func createSqliteSchema(db *usql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS state (
		 key            VARCHAR(32) PRIMARY KEY
		,data           BLOB NOT NULL
		,inserted_at    TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		,updated_at     TEXT NULL
		);
	`); err != nil {
		return errors.NewStorageError("could not create state table", err)
	}

	return nil
}
