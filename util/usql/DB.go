// Package usql wraps database/sql so that every statement is timed in gocore stats.
package usql

import (
	"context"
	"database/sql"
	"time"

	"github.com/ordishs/gocore"
)

var (
	stat = gocore.NewStat("SQL")
)

type DB struct {
	*sql.DB
}

func Open(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

func observe(query string, start time.Time) {
	stat.NewStat(query).AddTime(start)
}

func (db *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	defer observe(query, time.Now())

	return db.DB.QueryRowContext(ctx, query, args...)
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	defer observe(query, time.Now())

	return db.DB.QueryContext(ctx, query, args...)
}

func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	defer observe(query, time.Now())

	return db.DB.Exec(query, args...)
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer observe(query, time.Now())

	return db.DB.ExecContext(ctx, query, args...)
}
