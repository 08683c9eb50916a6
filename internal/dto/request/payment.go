package request

import "github.com/shopspring/decimal"

// ProcessPaymentRequest is the body of POST /api/payments. Field names follow
// the booking UI contract.
type ProcessPaymentRequest struct {
	UserID           *string         `json:"userId,omitempty" validate:"omitempty,uuid"`
	BookingID        string          `json:"bookingId" validate:"required,uuid"`
	Amount           decimal.Decimal `json:"amount" validate:"gt=0"`
	PaymentMethod    string          `json:"paymentMethod" validate:"required,max=30"`
	BankName         *string         `json:"bankName,omitempty" validate:"omitempty,max=80"`
	IsPartialPayment bool            `json:"isPartialPayment"`
	IsGuestBooking   bool            `json:"isGuestBooking"`
	IdempotencyKey   *string         `json:"idempotencyKey,omitempty" validate:"omitempty,max=100"`
}

// PaylabsNotificationRequest is the payment gateway callback body.
type PaylabsNotificationRequest struct {
	TransactionID string          `json:"transaction_id" validate:"required,max=100"`
	Status        string          `json:"status" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	BookingType   string          `json:"booking_type"`
	PaymentMethod string          `json:"payment_method,omitempty"`
}
