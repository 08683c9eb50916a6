package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusBooked    BookingStatus = "booked"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusOnRide    BookingStatus = "onride"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// bookingTransitions lists the forward moves of the rental lifecycle.
// Cancellation is reachable from every non-terminal status.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusBooked:    {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusOnRide, BookingStatusCancelled},
	BookingStatusOnRide:    {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCompleted: {},
	BookingStatusCancelled: {},
}

func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// CanTransitionTo reports whether target is an allowed next status.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, next := range bookingTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

type PaymentState string

const (
	PaymentStateUnpaid  PaymentState = "unpaid"
	PaymentStatePartial PaymentState = "partial"
	PaymentStatePaid    PaymentState = "paid"
)

// DerivePaymentState maps the sum of completed payments onto the booking's
// payment_status. Nothing paid is always unpaid, even for a zero total.
func DerivePaymentState(totalPaid, totalAmount decimal.Decimal) PaymentState {
	switch {
	case !totalPaid.IsPositive():
		return PaymentStateUnpaid
	case totalPaid.GreaterThanOrEqual(totalAmount):
		return PaymentStatePaid
	default:
		return PaymentStatePartial
	}
}

// RemainingBalance never goes below zero; overpayment simply accrues.
func RemainingBalance(totalAmount, totalPaid decimal.Decimal) decimal.Decimal {
	remaining := totalAmount.Sub(totalPaid)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

type Booking struct {
	BaseNoDelete
	CodeBooking   string          `db:"code_booking"`
	UserID        *uuid.UUID      `db:"user_id"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	PaymentStatus PaymentState    `db:"payment_status"`
	Status        BookingStatus   `db:"status"`
	StartDate     time.Time       `db:"start_date"`
	EndDate       time.Time       `db:"end_date"`
	PickupTime    *time.Time      `db:"pickup_time"`
	ReturnTime    *time.Time      `db:"return_time"`
	DriverID      *uuid.UUID      `db:"driver_id"`
	VehicleID     *uuid.UUID      `db:"vehicle_id"`
}

// IsGuest is true for bookings made without an account.
func (b *Booking) IsGuest() bool {
	return b.UserID == nil
}
