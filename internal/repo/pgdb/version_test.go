package pgdb

import (
	"database/sql"
	"regexp"
	"tender-service/internal/repo/repoerrs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockVersionStore(t *testing.T, table, fkColumn string, hasServiceType bool) (versionStore, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	builder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	return newVersionStore(table, fkColumn, hasServiceType, builder), db, mock
}

// The insert computes the next version number inside the statement itself, so
// a single round trip both numbers and stores the row.
func TestVersionStore_AppendNumbersFromMax(t *testing.T) {
	store, db, mock := newMockVersionStore(t, "bid_version", "bid_id", false)
	bidId := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO bid_version (bid_id,version,name,description) " +
			"VALUES ($1,(select coalesce(max(version), 0) + 1 from bid_version where bid_id = $2),$3,$4) " +
			"RETURNING version")).
		WithArgs(bidId, bidId, "Bid", "pitch").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(4))

	version, err := store.append(db, bidId, versionContent{Name: "Bid", Description: "pitch"})
	require.NoError(t, err)
	assert.Equal(t, 4, version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVersionStore_AppendIncludesServiceType(t *testing.T) {
	store, db, mock := newMockVersionStore(t, "tender_version", "tender_id", true)
	tenderId := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO tender_version (tender_id,version,name,description,service_type)")).
		WithArgs(tenderId, tenderId, "T", "d", sql.NullString{String: "Delivery", Valid: true}).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))

	version, err := store.append(db, tenderId, versionContent{
		Name:        "T",
		Description: "d",
		ServiceType: sql.NullString{String: "Delivery", Valid: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVersionStore_GetMissingVersion(t *testing.T) {
	store, db, mock := newMockVersionStore(t, "bid_version", "bid_id", false)
	bidId := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT name, description FROM bid_version WHERE bid_id = $1 AND version = $2")).
		WithArgs(bidId, 7).
		WillReturnError(sql.ErrNoRows)

	_, err := store.get(db, bidId, 7)
	assert.ErrorIs(t, err, repoerrs.ErrNotFound)
}

func TestVersionStore_MaxVersionZeroWhenEmpty(t *testing.T) {
	store, db, mock := newMockVersionStore(t, "tender_version", "tender_id", true)
	tenderId := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT coalesce(max(version), 0) FROM tender_version WHERE tender_id = $1")).
		WithArgs(tenderId).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))

	max, err := store.maxVersion(db, tenderId)
	require.NoError(t, err)
	assert.Zero(t, max)
}
