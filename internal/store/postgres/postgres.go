// Package postgres implements the frontier's store contract on top of
// PostgreSQL, using row-level locking (SELECT ... FOR UPDATE SKIP
// LOCKED) in place of the atomic range-update primitive the design
// assumes a document database provides natively.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver

	"github.com/crawlfrontier/frontier/internal/store"
)

// Connection pool defaults, matched to a worker-fleet-sized frontier
// daemon rather than a single application server.
const (
	DefaultMaxOpenConns    = 25
	DefaultMaxIdleConns    = 5
	DefaultConnMaxLifetime = 5 * time.Minute
	DefaultPingTimeout     = 5 * time.Second
)

// Config holds the connection parameters for Open.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Open connects to PostgreSQL, verifies the connection, and applies the
// pool defaults above.
func Open(cfg Config) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), DefaultPingTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		return nil, fmt.Errorf("failed to ping database: %w", pingErr)
	}

	return db, nil
}

// Store bundles the three table-scoped repositories behind the
// store.Store interface.
type Store struct {
	jobs  *JobStore
	sites *SiteStore
	pages *PageStore
}

// New wraps db with the frontier's three repositories.
func New(db *sqlx.DB) *Store {
	return &Store{
		jobs:  &JobStore{db: db},
		sites: &SiteStore{db: db},
		pages: &PageStore{db: db},
	}
}

func (s *Store) Jobs() store.JobStore   { return s.jobs }
func (s *Store) Sites() store.SiteStore { return s.sites }
func (s *Store) Pages() store.PageStore { return s.pages }

// execReplaced turns an ExecContext result from a replace-by-id into a
// store.Result: n affected rows are reported as Replaced=n, and zero
// affected rows as Unchanged=1.
func execReplaced(result interface{ RowsAffected() (int64, error) }, err error) (store.Result, error) {
	if err != nil {
		return store.Result{}, err
	}
	n, affectedErr := result.RowsAffected()
	if affectedErr != nil {
		return store.Result{}, affectedErr
	}
	if n == 0 {
		return store.Result{Unchanged: 1}, nil
	}
	return store.Result{Replaced: int(n)}, nil
}
