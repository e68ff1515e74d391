// AngelaMos | 2026
// service_tx_test.go

package offer

import (
	"context"
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

// newTxService wires the real offer repository and property cascade over a
// mocked connection so the accept and confirm-payment transactions run end
// to end.
func newTxService(db *sqlx.DB) *Service {
	listings := property.NewService(property.NewRepository(db), nil)
	return NewService(NewRepository(db), listings, nil, "usd", db)
}

var offerColumnList = []string{
	"id", "property_id", "property_title", "property_location", "agent_email",
	"buyer_email", "buyer_name", "amount", "status", "transaction_id",
	"paid_at", "created_at", "updated_at",
}

func offerRow(status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(offerColumnList).AddRow(
		"o-1", "p-1", "Downtown Loft", "Austin", "agent@example.com",
		"buyer@example.com", "Buyer", 120000, status, nil, nil, now, now,
	)
}

func boughtOfferRow(transactionID string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(offerColumnList).AddRow(
		"o-1", "p-1", "Downtown Loft", "Austin", "agent@example.com",
		"buyer@example.com", "Buyer", 120000, StatusBought, transactionID,
		now, now, now,
	)
}

func TestAcceptCommitsOfferAndListingTogether(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newTxService(db)

	mock.ExpectQuery(`SELECT .+ FROM offers WHERE id = \$1`).
		WithArgs("o-1").
		WillReturnRows(offerRow(StatusPending))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE offers SET status = 'accepted'`).
		WithArgs("o-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE properties SET status = 'sold'`).
		WithArgs("p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT .+ FROM offers WHERE id = \$1`).
		WithArgs("o-1").
		WillReturnRows(offerRow(StatusAccepted))

	o, err := svc.Accept(context.Background(), "agent@example.com", "o-1")
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, o.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptLosesRaceToConcurrentAccept(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newTxService(db)

	mock.ExpectQuery(`SELECT .+ FROM offers WHERE id = \$1`).
		WithArgs("o-1").
		WillReturnRows(offerRow(StatusPending))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE offers SET status = 'accepted'`).
		WithArgs("o-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT status FROM offers WHERE id = \$1`).
		WithArgs("o-1").
		WillReturnRows(
			sqlmock.NewRows([]string{"status"}).AddRow(StatusAccepted),
		)
	mock.ExpectRollback()

	_, err := svc.Accept(context.Background(), "agent@example.com", "o-1")
	assert.ErrorIs(t, err, core.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptRollsBackWhenListingNoLongerOpen(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newTxService(db)

	mock.ExpectQuery(`SELECT .+ FROM offers WHERE id = \$1`).
		WithArgs("o-1").
		WillReturnRows(offerRow(StatusPending))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE offers SET status = 'accepted'`).
		WithArgs("o-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE properties SET status = 'sold'`).
		WithArgs("p-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT status FROM properties WHERE id = \$1`).
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("sold"))
	mock.ExpectRollback()

	_, err := svc.Accept(context.Background(), "agent@example.com", "o-1")
	assert.ErrorIs(t, err, core.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet(),
		"the offer update must roll back with the failed listing cascade")
}

func TestConfirmPaymentCommitsOfferAndListingTogether(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newTxService(db)

	mock.ExpectQuery(`SELECT .+ FROM offers WHERE id = \$1`).
		WithArgs("o-1").
		WillReturnRows(offerRow(StatusAccepted))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE offers SET status = 'bought'`).
		WithArgs("o-1", "txn_123").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE properties SET status = 'bought'`).
		WithArgs("p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT .+ FROM offers WHERE id = \$1`).
		WithArgs("o-1").
		WillReturnRows(boughtOfferRow("txn_123"))

	o, err := svc.ConfirmPayment(
		context.Background(),
		"buyer@example.com",
		"o-1",
		"txn_123",
	)
	require.NoError(t, err)
	assert.Equal(t, StatusBought, o.Status)
	require.NotNil(t, o.TransactionID)
	assert.Equal(t, "txn_123", *o.TransactionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPaymentRollsBackWhenListingCascadeFails(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newTxService(db)

	mock.ExpectQuery(`SELECT .+ FROM offers WHERE id = \$1`).
		WithArgs("o-1").
		WillReturnRows(offerRow(StatusAccepted))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE offers SET status = 'bought'`).
		WithArgs("o-1", "txn_123").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE properties SET status = 'bought'`).
		WithArgs("p-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT status FROM properties WHERE id = \$1`).
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("verified"))
	mock.ExpectRollback()

	_, err := svc.ConfirmPayment(
		context.Background(),
		"buyer@example.com",
		"o-1",
		"txn_123",
	)
	assert.ErrorIs(t, err, core.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet(),
		"neither the offer nor the listing update may commit alone")
}
