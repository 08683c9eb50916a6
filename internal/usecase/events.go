package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Routing keys on the bookings exchange.
const (
	EventBookingStatusChanged   = "booking.status_changed"
	EventPaymentStatusChanged   = "booking.payment_status_changed"
	EventPaymentRecorded        = "payment.recorded"
	EventTransferDriverAssigned = "transfer.driver_assigned"
	EventDriverBalanceChanged   = "driver.balance_changed"
)

// EventPublisher is satisfied by *rabbitmq.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, any) error { return nil }

// NewNopPublisher is used when no broker is configured.
func NewNopPublisher() EventPublisher { return nopPublisher{} }

type BookingStatusChanged struct {
	BookingID string    `json:"booking_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	At        time.Time `json:"at"`
}

type PaymentStatusChanged struct {
	BookingID string          `json:"booking_id"`
	Table     string          `json:"table"`
	From      string          `json:"from,omitempty"`
	To        string          `json:"to"`
	TotalPaid decimal.Decimal `json:"total_paid"`
	At        time.Time       `json:"at"`
}

type PaymentRecorded struct {
	PaymentID string          `json:"payment_id"`
	BookingID string          `json:"booking_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	At        time.Time       `json:"at"`
}

type DriverAssigned struct {
	TransferID string    `json:"transfer_id"`
	DriverID   string    `json:"driver_id"`
	At         time.Time `json:"at"`
}

type DriverBalanceChanged struct {
	DriverID   string          `json:"driver_id"`
	Nominal    decimal.Decimal `json:"nominal"`
	SaldoAwal  decimal.Decimal `json:"saldo_awal"`
	SaldoAkhir decimal.Decimal `json:"saldo_akhir"`
	At         time.Time       `json:"at"`
}

// publishEvent runs after the write has committed. Events are advisory, so a
// broker failure is only logged.
func publishEvent(ctx context.Context, pub EventPublisher, log *zap.Logger, key string, payload any) {
	if err := pub.Publish(ctx, key, payload); err != nil {
		log.Warn("Failed to publish event", zap.String("routing_key", key), zap.Error(err))
	}
}
