package usecase

import (
	"context"
	"errors"
	"testing"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/dto/request"
	"rental-booking/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLedgerFixture() (*memStore, *recordingPublisher, PaymentLedger) {
	store := newMemStore()
	pub := &recordingPublisher{}
	return store, pub, NewPaymentLedger(store.repository(), pub, zap.NewNop())
}

func rp(id uuid.UUID, amount int64, method entity.PaymentMethod) RecordPaymentInput {
	return RecordPaymentInput{BookingID: id, Amount: decimal.NewFromInt(amount), Method: method}
}

func TestRecordPayment_PartialThenPaidThenOverpaid(t *testing.T) {
	store, pub, ledger := newLedgerFixture()
	ctx := context.Background()
	b := store.addBooking(1000000, entity.BookingStatusPending)

	// 400.000 tunai -> partial, sisa 600.000
	p, err := ledger.RecordPayment(ctx, rp(b.ID, 400000, entity.PaymentMethodCash))
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusCompleted, p.Status)
	assert.True(t, p.IsPartialPayment)
	assert.Equal(t, entity.PaymentStatePartial, store.booking(b.ID).PaymentStatus)

	remaining, err := ledger.RemainingBalance(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, remaining.Equal(decimal.NewFromInt(600000)), remaining.String())

	// 600.000 GoPay -> paid, sisa 0
	p, err = ledger.RecordPayment(ctx, rp(b.ID, 600000, entity.PaymentMethodGoPay))
	require.NoError(t, err)
	assert.False(t, p.IsPartialPayment)
	assert.Equal(t, entity.PaymentStatePaid, store.booking(b.ID).PaymentStatus)

	remaining, err = ledger.RemainingBalance(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, remaining.IsZero())

	// lebih bayar 50.000 tetap paid, tidak error
	_, err = ledger.RecordPayment(ctx, rp(b.ID, 50000, entity.PaymentMethodCash))
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatePaid, store.booking(b.ID).PaymentStatus)

	total, err := ledger.TotalPaid(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(1050000)), total.String())

	remaining, err = ledger.RemainingBalance(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, remaining.IsZero())

	// total_amount tidak pernah berubah
	assert.True(t, store.booking(b.ID).TotalAmount.Equal(decimal.NewFromInt(1000000)))

	assert.Equal(t, 3, pub.count(EventPaymentRecorded))
	assert.Equal(t, 2, pub.count(EventPaymentStatusChanged))
}

func TestRecordPayment_InvalidAmount(t *testing.T) {
	store, _, ledger := newLedgerFixture()
	b := store.addBooking(1000000, entity.BookingStatusPending)

	for _, amount := range []int64{0, -1000} {
		_, err := ledger.RecordPayment(context.Background(), rp(b.ID, amount, entity.PaymentMethodCash))
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrInvalidAmount))
		assert.True(t, apperr.IsValidation(err))
	}
	assert.Equal(t, 0, store.paymentCount())
	assert.Equal(t, entity.PaymentStateUnpaid, store.booking(b.ID).PaymentStatus)
}

func TestRecordPayment_UnsupportedMethod(t *testing.T) {
	store, _, ledger := newLedgerFixture()
	b := store.addBooking(1000000, entity.BookingStatusPending)

	_, err := ledger.RecordPayment(context.Background(), rp(b.ID, 1000, entity.PaymentMethod("Bitcoin")))
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, 0, store.paymentCount())
}

func TestRecordPayment_BookingNotFound(t *testing.T) {
	store, _, ledger := newLedgerFixture()

	_, err := ledger.RecordPayment(context.Background(), rp(uuid.New(), 1000, entity.PaymentMethodCash))
	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, 0, store.paymentCount())
}

func TestRecordPayment_StoreFailureSurfaces(t *testing.T) {
	store, pub, ledger := newLedgerFixture()
	b := store.addBooking(1000000, entity.BookingStatusPending)
	store.sumErr = errors.New("connection reset")

	_, err := ledger.RecordPayment(context.Background(), rp(b.ID, 1000, entity.PaymentMethodCash))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, 0, pub.count(EventPaymentRecorded))
}

func TestRecordPayment_IdempotencyKey(t *testing.T) {
	store, pub, ledger := newLedgerFixture()
	b := store.addBooking(1000000, entity.BookingStatusPending)
	key := "checkout-42"

	in := rp(b.ID, 400000, entity.PaymentMethodBankTransfer)
	in.IdempotencyKey = &key

	first, err := ledger.RecordPayment(context.Background(), in)
	require.NoError(t, err)
	second, err := ledger.RecordPayment(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, store.paymentCount())
	assert.Equal(t, 1, pub.count(EventPaymentRecorded))

	other := store.addBooking(500000, entity.BookingStatusPending)
	in.BookingID = other.ID
	_, err = ledger.RecordPayment(context.Background(), in)
	assert.True(t, apperr.IsConflict(err))
}

func TestGetPaymentsForBooking_NewestFirst(t *testing.T) {
	store, _, ledger := newLedgerFixture()
	b := store.addBooking(1000000, entity.BookingStatusPending)

	_, err := ledger.RecordPayment(context.Background(), rp(b.ID, 100000, entity.PaymentMethodCash))
	require.NoError(t, err)
	_, err = ledger.RecordPayment(context.Background(), rp(b.ID, 200000, entity.PaymentMethodGoPay))
	require.NoError(t, err)

	payments, err := ledger.GetPaymentsForBooking(context.Background(), b.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, entity.PaymentMethodGoPay, payments[0].PaymentMethod)
	assert.Equal(t, entity.PaymentMethodCash, payments[1].PaymentMethod)
}

func TestProcessPayment(t *testing.T) {
	bank := "BCA"

	t.Run("guest booking", func(t *testing.T) {
		store, _, ledger := newLedgerFixture()
		b := store.addBooking(1000000, entity.BookingStatusPending)

		resp, err := ledger.ProcessPayment(context.Background(), nil, &request.ProcessPaymentRequest{
			BookingID:      b.ID.String(),
			Amount:         decimal.NewFromInt(400000),
			PaymentMethod:  "Bank Transfer",
			BankName:       &bank,
			IsGuestBooking: true,
		})
		require.NoError(t, err)
		assert.True(t, resp.IsGuestBooking)
		assert.True(t, resp.TotalPaid.Equal(decimal.NewFromInt(400000)))
		assert.Equal(t, entity.PaymentStatePartial, resp.Booking.PaymentStatus)
		assert.Equal(t, &bank, resp.Payment.BankName)
		assert.Nil(t, resp.Payment.UserID)
	})

	t.Run("session user wins over body", func(t *testing.T) {
		store, _, ledger := newLedgerFixture()
		b := store.addBooking(300000, entity.BookingStatusPending)
		sessionUser := uuid.New()
		bodyUser := uuid.NewString()

		resp, err := ledger.ProcessPayment(context.Background(), &sessionUser, &request.ProcessPaymentRequest{
			UserID:        &bodyUser,
			BookingID:     b.ID.String(),
			Amount:        decimal.NewFromInt(300000),
			PaymentMethod: "Cash",
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Payment.UserID)
		assert.Equal(t, sessionUser.String(), *resp.Payment.UserID)
		assert.Equal(t, entity.PaymentStatePaid, resp.Booking.PaymentStatus)
	})

	t.Run("anonymous without guest flag", func(t *testing.T) {
		store, _, ledger := newLedgerFixture()
		b := store.addBooking(300000, entity.BookingStatusPending)

		_, err := ledger.ProcessPayment(context.Background(), nil, &request.ProcessPaymentRequest{
			BookingID:     b.ID.String(),
			Amount:        decimal.NewFromInt(1000),
			PaymentMethod: "Cash",
		})
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("zero amount", func(t *testing.T) {
		store, _, ledger := newLedgerFixture()
		b := store.addBooking(300000, entity.BookingStatusPending)

		_, err := ledger.ProcessPayment(context.Background(), nil, &request.ProcessPaymentRequest{
			BookingID:      b.ID.String(),
			Amount:         decimal.Zero,
			PaymentMethod:  "Cash",
			IsGuestBooking: true,
		})
		assert.True(t, errors.Is(err, apperr.ErrInvalidAmount))
	})
}
