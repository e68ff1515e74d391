// AngelaMos | 2026
// service_tx_test.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/estately/internal/core"
	"github.com/carterperez-dev/estately/internal/property"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(mockDB, "postgres")
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, mock
}

// newTxService wires the real repositories over a mocked connection so the
// flag-and-purge transaction runs end to end.
func newTxService(db *sqlx.DB) *Service {
	return NewService(NewRepository(db), property.NewRepository(db), db)
}

func flaggedUserRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "name", "role", "fraud",
		"token_version", "created_at", "updated_at",
	}).AddRow(
		"u-1", "agent@example.com", "hash", "Shady Agent", RoleUser, true,
		2, now, now,
	)
}

func TestMarkFraudFlagsAndPurgesInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newTxService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE users SET fraud = TRUE`).
		WithArgs("u-1").
		WillReturnRows(flaggedUserRows())
	mock.ExpectExec(`DELETE FROM properties WHERE agent_email = \$1`).
		WithArgs("agent@example.com").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	flagged, removed, err := svc.MarkFraud(context.Background(), "u-1")
	require.NoError(t, err)
	assert.True(t, flagged.Fraud)
	assert.Equal(t, RoleUser, flagged.Role)
	assert.EqualValues(t, 3, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkFraudRollsBackFlagWhenPurgeFails(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newTxService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE users SET fraud = TRUE`).
		WithArgs("u-1").
		WillReturnRows(flaggedUserRows())
	mock.ExpectExec(`DELETE FROM properties WHERE agent_email = \$1`).
		WithArgs("agent@example.com").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, _, err := svc.MarkFraud(context.Background(), "u-1")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet(),
		"the fraud flag must roll back with the failed purge, not commit alone")
}

func TestMarkFraudUnknownUserAbortsBeforePurge(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newTxService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE users SET fraud = TRUE`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, _, err := svc.MarkFraud(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
