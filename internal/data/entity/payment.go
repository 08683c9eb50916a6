package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "Cash"
	PaymentMethodBankTransfer PaymentMethod = "Bank Transfer"
	PaymentMethodCard         PaymentMethod = "Credit/Debit Card"
	PaymentMethodGoPay        PaymentMethod = "GoPay"
	PaymentMethodSaldo        PaymentMethod = "Saldo"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCard, PaymentMethodGoPay, PaymentMethodSaldo:
		return true
	}
	return false
}

// Payment rows are append-only. Once completed, amount and method are frozen.
type Payment struct {
	BaseNoDelete
	BookingID        uuid.UUID       `db:"booking_id"`
	UserID           *uuid.UUID      `db:"user_id"`
	Amount           decimal.Decimal `db:"amount"`
	PaymentMethod    PaymentMethod   `db:"payment_method"`
	BankName         *string         `db:"bank_name"`
	Status           PaymentStatus   `db:"status"`
	IsPartialPayment bool            `db:"is_partial_payment"`
	TransactionID    *string         `db:"transaction_id"`
	IdempotencyKey   *string         `db:"idempotency_key"`
}

func (p *Payment) IsCompleted() bool {
	return p.Status == PaymentStatusCompleted
}
