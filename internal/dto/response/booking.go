package response

import (
	"time"

	"rental-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingResponse struct {
	ID            string               `json:"id"`
	CodeBooking   string               `json:"code_booking"`
	UserID        *string              `json:"user_id,omitempty"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
	PaymentStatus entity.PaymentState  `json:"payment_status"`
	Status        entity.BookingStatus `json:"status"`
	StartDate     time.Time            `json:"start_date"`
	EndDate       time.Time            `json:"end_date"`
	PickupTime    *time.Time           `json:"pickup_time,omitempty"`
	ReturnTime    *time.Time           `json:"return_time,omitempty"`
	DriverID      *string              `json:"driver_id,omitempty"`
	VehicleID     *string              `json:"vehicle_id,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type PaymentResponse struct {
	ID               string               `json:"id"`
	BookingID        string               `json:"booking_id"`
	UserID           *string              `json:"user_id,omitempty"`
	Amount           decimal.Decimal      `json:"amount"`
	PaymentMethod    entity.PaymentMethod `json:"payment_method"`
	BankName         *string              `json:"bank_name,omitempty"`
	Status           entity.PaymentStatus `json:"status"`
	IsPartialPayment bool                 `json:"is_partial_payment"`
	TransactionID    *string              `json:"transaction_id,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
}

type BookingDetailResponse struct {
	BookingResponse
	Payments         []PaymentResponse `json:"payments"`
	TotalPaid        decimal.Decimal   `json:"total_paid"`
	RemainingBalance decimal.Decimal   `json:"remaining_balance"`
}

// ProcessPaymentResponse is the data envelope of POST /api/payments.
type ProcessPaymentResponse struct {
	Payment        PaymentResponse `json:"payment"`
	Booking        BookingResponse `json:"booking"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	IsGuestBooking bool            `json:"isGuestBooking"`
}

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// Helper converters
func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID.String(),
		CodeBooking:   b.CodeBooking,
		UserID:        uuidPtrString(b.UserID),
		TotalAmount:   b.TotalAmount,
		PaymentStatus: b.PaymentStatus,
		Status:        b.Status,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		PickupTime:    b.PickupTime,
		ReturnTime:    b.ReturnTime,
		DriverID:      uuidPtrString(b.DriverID),
		VehicleID:     uuidPtrString(b.VehicleID),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func PaymentToResponse(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:               p.ID.String(),
		BookingID:        p.BookingID.String(),
		UserID:           uuidPtrString(p.UserID),
		Amount:           p.Amount,
		PaymentMethod:    p.PaymentMethod,
		BankName:         p.BankName,
		Status:           p.Status,
		IsPartialPayment: p.IsPartialPayment,
		TransactionID:    p.TransactionID,
		CreatedAt:        p.CreatedAt,
	}
}

func PaymentsToResponse(payments []*entity.Payment) []PaymentResponse {
	resp := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, PaymentToResponse(p))
	}
	return resp
}
