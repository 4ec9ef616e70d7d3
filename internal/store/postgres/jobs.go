package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/crawlfrontier/frontier/internal/domain"
	"github.com/crawlfrontier/frontier/internal/store"
)

const jobColumns = `id, conf, status, started, finished`

// JobStore is the jobs table's postgres.Store implementation.
type JobStore struct {
	db *sqlx.DB
}

// Insert writes a new job row, assigning job.ID when it is empty.
func (s *JobStore) Insert(ctx context.Context, job *domain.Job) (store.Result, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	query := `INSERT INTO jobs (` + jobColumns + `) VALUES ($1, $2, $3, $4, $5)`
	_, err := s.db.ExecContext(ctx, query, job.ID, job.Conf, job.Status, job.Started, job.Finished)
	if err != nil {
		return store.Result{}, fmt.Errorf("insert job %s: %w", job.ID, err)
	}

	return store.Result{Inserted: 1, GeneratedKeys: []string{job.ID}}, nil
}

// Replace overwrites every column of an existing job row.
func (s *JobStore) Replace(ctx context.Context, job *domain.Job) (store.Result, error) {
	query := `UPDATE jobs SET conf = $1, status = $2, started = $3, finished = $4 WHERE id = $5`
	result, err := s.db.ExecContext(ctx, query, job.Conf, job.Status, job.Started, job.Finished, job.ID)
	return execReplaced(result, err)
}

// Get fetches a job by id, returning nil, nil if no such job exists.
func (s *JobStore) Get(ctx context.Context, id string) (*domain.Job, error) {
	var job domain.Job
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	err := s.db.GetContext(ctx, &job, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}
	return &job, nil
}
