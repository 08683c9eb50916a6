package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"rental-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRepository_WithTx_Commit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock, zap.NewNop())
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET payment_status = $2")).
		WithArgs(id, "paid").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err = repo.WithTx(context.Background(), func(tx *Repository) error {
		return tx.Booking.UpdatePaymentStatus(context.Background(), id, entity.PaymentStatePaid)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_WithTx_RollbackOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err = repo.WithTx(context.Background(), func(tx *Repository) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_WithTx_WithoutPool(t *testing.T) {
	repo := &Repository{}
	called := false

	err := repo.WithTx(context.Background(), func(tx *Repository) error {
		called = true
		assert.Same(t, repo, tx)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestBookingType_TableFor(t *testing.T) {
	assert.Equal(t, "baggage_booking", BookingTypeBaggage.TableFor())
	assert.Equal(t, "airport_transfer", BookingTypeTransfer.TableFor())
	assert.Equal(t, "handling_bookings", BookingTypeHandling.TableFor())
	assert.Equal(t, "bookings", BookingType("").TableFor())
	assert.Equal(t, "bookings", BookingType("bookings; DROP TABLE users").TableFor())
}
