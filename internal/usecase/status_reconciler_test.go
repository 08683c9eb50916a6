package usecase

import (
	"context"
	"testing"

	"rental-booking/internal/data/entity"
	"rental-booking/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newReconcilerFixture() (*memStore, *recordingPublisher, StatusReconciler, PaymentLedger) {
	store := newMemStore()
	pub := &recordingPublisher{}
	repo := store.repository()
	return store, pub, NewStatusReconciler(repo, pub, zap.NewNop()), NewPaymentLedger(repo, nil, zap.NewNop())
}

func TestRecomputePaymentStatus_NoPaymentsIsUnpaid(t *testing.T) {
	store, _, reconciler, _ := newReconcilerFixture()

	for _, total := range []int64{1000000, 0} {
		b := store.addBooking(total, entity.BookingStatusPending)
		state, err := reconciler.RecomputePaymentStatus(context.Background(), b.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.PaymentStateUnpaid, state)
	}
}

func TestRecomputePaymentStatus_Idempotent(t *testing.T) {
	store, pub, reconciler, ledger := newReconcilerFixture()
	b := store.addBooking(1000000, entity.BookingStatusPending)

	_, err := ledger.RecordPayment(context.Background(), rp(b.ID, 400000, entity.PaymentMethodCash))
	require.NoError(t, err)
	writes := store.paymentStatusWrites

	for i := 0; i < 3; i++ {
		state, err := reconciler.RecomputePaymentStatus(context.Background(), b.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.PaymentStatePartial, state)
	}
	assert.Equal(t, writes, store.paymentStatusWrites)
	assert.Equal(t, 0, pub.count(EventPaymentStatusChanged))
}

func TestRecomputePaymentStatus_RepairsStaleStatus(t *testing.T) {
	store, pub, reconciler, ledger := newReconcilerFixture()
	b := store.addBooking(500000, entity.BookingStatusPending)

	_, err := ledger.RecordPayment(context.Background(), rp(b.ID, 500000, entity.PaymentMethodCash))
	require.NoError(t, err)

	// simulasi status basi
	store.bookings[b.ID].PaymentStatus = entity.PaymentStateUnpaid

	state, err := reconciler.RecomputePaymentStatus(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatePaid, state)
	assert.Equal(t, 1, pub.count(EventPaymentStatusChanged))
}

func TestRecomputePaymentStatus_NotFound(t *testing.T) {
	_, _, reconciler, _ := newReconcilerFixture()

	_, err := reconciler.RecomputePaymentStatus(context.Background(), uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}

func TestBookingLifecycle_FullRide(t *testing.T) {
	store, pub, reconciler, _ := newReconcilerFixture()
	ctx := context.Background()

	b := store.addBooking(1000000, entity.BookingStatusPending)
	v := store.addVehicle(entity.VehicleStatusBooked)
	d := store.addDriver(entity.DriverStatusBusy, 0)
	store.bookings[b.ID].VehicleID = &v.ID
	store.bookings[b.ID].DriverID = &d.ID

	resp, err := reconciler.Approve(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)

	resp, err = reconciler.ProcessPickup(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusOnRide, resp.Status)
	assert.NotNil(t, resp.PickupTime)
	assert.Equal(t, entity.VehicleStatusOnRide, store.vehicle(v.ID).Status)
	assert.Equal(t, entity.DriverStatusOnRide, store.driver(d.ID).Status)

	resp, err = reconciler.ProcessReturn(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCompleted, resp.Status)
	assert.NotNil(t, resp.ReturnTime)
	assert.Equal(t, entity.VehicleStatusAvailable, store.vehicle(v.ID).Status)
	assert.Equal(t, entity.DriverStatusStandby, store.driver(d.ID).Status)

	// completed terminal
	_, err = reconciler.Cancel(ctx, b.ID)
	assert.True(t, apperr.IsConflict(err))
	assert.Equal(t, entity.BookingStatusCompleted, store.booking(b.ID).Status)

	assert.Equal(t, 3, pub.count(EventBookingStatusChanged))
}

func TestBookingLifecycle_RejectsSkippedSteps(t *testing.T) {
	store, _, reconciler, _ := newReconcilerFixture()
	ctx := context.Background()

	b := store.addBooking(1000000, entity.BookingStatusPending)

	_, err := reconciler.ProcessPickup(ctx, b.ID)
	assert.True(t, apperr.IsConflict(err))
	_, err = reconciler.ProcessReturn(ctx, b.ID)
	assert.True(t, apperr.IsConflict(err))
	assert.Equal(t, entity.BookingStatusPending, store.booking(b.ID).Status)

	booked := store.addBooking(1000000, entity.BookingStatusBooked)
	resp, err := reconciler.Approve(ctx, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)

	_, err = reconciler.Approve(ctx, booked.ID)
	assert.True(t, apperr.IsConflict(err))
}

func TestCancel_ReleasesVehicleAndDriver(t *testing.T) {
	store, _, reconciler, _ := newReconcilerFixture()

	b := store.addBooking(1000000, entity.BookingStatusConfirmed)
	v := store.addVehicle(entity.VehicleStatusBooked)
	d := store.addDriver(entity.DriverStatusBusy, 0)
	store.bookings[b.ID].VehicleID = &v.ID
	store.bookings[b.ID].DriverID = &d.ID

	resp, err := reconciler.Cancel(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
	assert.Equal(t, entity.VehicleStatusAvailable, store.vehicle(v.ID).Status)
	assert.Equal(t, entity.DriverStatusStandby, store.driver(d.ID).Status)

	_, err = reconciler.Approve(context.Background(), b.ID)
	assert.True(t, apperr.IsConflict(err))
}

func TestCancel_LeavesMaintenanceVehicleAlone(t *testing.T) {
	store, _, reconciler, _ := newReconcilerFixture()

	b := store.addBooking(1000000, entity.BookingStatusPending)
	v := store.addVehicle(entity.VehicleStatusMaintenance)
	store.bookings[b.ID].VehicleID = &v.ID

	_, err := reconciler.Cancel(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.VehicleStatusMaintenance, store.vehicle(v.ID).Status)
}

func TestTransition_NotFound(t *testing.T) {
	_, _, reconciler, _ := newReconcilerFixture()

	_, err := reconciler.Approve(context.Background(), uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}
