package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/crawlfrontier/frontier/internal/domain"
	"github.com/crawlfrontier/frontier/internal/store"
	"github.com/crawlfrontier/frontier/internal/store/postgres"
)

var siteColumns = []string{
	"id", "job_id", "seed", "scope", "proxy", "ignore_robots", "enable_warcprox_features",
	"extra_headers", "time_limit", "reached_limit", "status", "claimed", "last_claimed_by",
	"start_time", "last_disclaimed", "claim_expiry",
}

func newSiteStore(t *testing.T) (store.SiteStore, sqlmock.Sqlmock, func()) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	db := sqlx.NewDb(mockDB, "postgres")
	st := postgres.New(db)

	return st.Sites(), mock, func() { mockDB.Close() }
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSiteStoreClaimNextSuccess(t *testing.T) {
	sites, mock, cleanup := newSiteStore(t)
	defer cleanup()

	ctx := context.Background()

	rows := sqlmock.NewRows(siteColumns).AddRow(
		"site-1", "job-1", "http://example.com/", []byte(`{"surt":"http://(com,example,)/"}`),
		"", false, false, []byte(`{}`), nil, nil, domain.SiteStatusActive, false, "",
		0.0, 0.0, 0.0,
	)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM sites").WillReturnRows(rows)
	mock.ExpectExec("UPDATE sites SET claimed = true").WithArgs("worker-1", "site-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	before, after, err := sites.ClaimNext(ctx, "worker-1")
	if err != nil {
		t.Fatalf("ClaimNext() error = %v", err)
	}
	if before.Claimed {
		t.Error("before snapshot should be unclaimed")
	}
	if !after.Claimed || after.LastClaimedBy != "worker-1" {
		t.Errorf("after snapshot = %+v, want claimed by worker-1", after)
	}

	expectationsMet(t, mock)
}

func TestSiteStoreClaimNextNothingToClaim(t *testing.T) {
	sites, mock, cleanup := newSiteStore(t)
	defer cleanup()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM sites").WillReturnRows(sqlmock.NewRows(siteColumns))
	mock.ExpectRollback()

	_, _, err := sites.ClaimNext(ctx, "worker-1")
	if !errors.Is(err, store.ErrNothingToClaim) {
		t.Fatalf("ClaimNext() error = %v, want ErrNothingToClaim", err)
	}

	expectationsMet(t, mock)
}
