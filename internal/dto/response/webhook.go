package response

import "rental-booking/internal/data/entity"

type WebhookResponse struct {
	TransactionID  string               `json:"transaction_id"`
	Status         string               `json:"status"`
	PaymentStatus  entity.PaymentStatus `json:"payment_status,omitempty"`
	PaymentUpdated bool                 `json:"payment_updated"`
	BookingUpdated bool                 `json:"booking_updated"`
	AmountMismatch bool                 `json:"amount_mismatch,omitempty"`
}
