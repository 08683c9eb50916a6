package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"rental-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var paymentCols = []string{
	"id", "booking_id", "user_id", "amount", "payment_method", "bank_name", "status",
	"is_partial_payment", "transaction_id", "idempotency_key", "created_at", "updated_at",
}

func TestPaymentRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentRepository(mock, zap.NewNop())
	key := "idem-1"
	p := &entity.Payment{
		BaseNoDelete:   entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		BookingID:      uuid.New(),
		Amount:         decimal.NewFromInt(400000),
		PaymentMethod:  entity.PaymentMethodCash,
		Status:         entity.PaymentStatusCompleted,
		IdempotencyKey: &key,
	}

	t.Run("inserted", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payments")).
			WithArgs(p.ID, p.BookingID, p.UserID, p.Amount, "Cash", p.BankName, "completed",
				false, p.TransactionID, p.IdempotencyKey, p.CreatedAt, p.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		created, err := repo.Create(context.Background(), p)
		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("duplicate idempotency key", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (idempotency_key) DO NOTHING")).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 0))

		created, err := repo.Create(context.Background(), p)
		require.NoError(t, err)
		assert.False(t, created)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_SumCompletedByBookingID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentRepository(mock, zap.NewNop())
	bookingID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount), 0) FROM payments WHERE booking_id = $1 AND status = 'completed'")).
		WithArgs(bookingID).
		WillReturnRows(mock.NewRows([]string{"coalesce"}).AddRow(decimal.NewFromInt(1000000)))

	total, err := repo.SumCompletedByBookingID(context.Background(), bookingID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(1000000)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_FindByBookingID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentRepository(mock, zap.NewNop())
	bookingID := uuid.New()
	now := time.Now()

	rows := mock.NewRows(paymentCols).
		AddRow(uuid.New(), bookingID, (*uuid.UUID)(nil), decimal.NewFromInt(600000), entity.PaymentMethodGoPay,
			(*string)(nil), entity.PaymentStatusCompleted, false, (*string)(nil), (*string)(nil), now, now).
		AddRow(uuid.New(), bookingID, (*uuid.UUID)(nil), decimal.NewFromInt(400000), entity.PaymentMethodCash,
			(*string)(nil), entity.PaymentStatusCompleted, true, (*string)(nil), (*string)(nil), now.Add(-time.Hour), now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE booking_id = $1 ORDER BY created_at DESC")).
		WithArgs(bookingID).
		WillReturnRows(rows)

	payments, err := repo.FindByBookingID(context.Background(), bookingID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, entity.PaymentMethodGoPay, payments[0].PaymentMethod)
	assert.True(t, payments[1].IsPartialPayment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_FindByIdempotencyKey_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentRepository(mock, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE idempotency_key = $1")).
		WithArgs("missing").
		WillReturnRows(mock.NewRows(paymentCols))

	payment, err := repo.FindByIdempotencyKey(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, payment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_UpdateStatus_SkipsCompleted(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentRepository(mock, zap.NewNop())
	id := uuid.New()
	txID := "PL-123"

	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $1 AND status <> 'completed'")).
		WithArgs(id, "failed", &txID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	updated, err := repo.UpdateStatus(context.Background(), id, entity.PaymentStatusFailed, &txID)
	require.NoError(t, err)
	assert.False(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}
