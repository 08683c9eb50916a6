package response

import (
	"time"

	"rental-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

type AssignDriverResponse struct {
	TransferID          string                `json:"transfer_id"`
	DriverID            string                `json:"driver_id"`
	TransferStatus      entity.TransferStatus `json:"transfer_status"`
	DriverStatus        entity.DriverStatus   `json:"driver_status"`
	NotificationCreated bool                  `json:"notification_created"`
	NotificationError   string                `json:"notification_error,omitempty"`
}

// PartialFailure is true when the assignment committed but the driver was
// not notified.
func (r AssignDriverResponse) PartialFailure() bool {
	return r.NotificationError != ""
}

type TransactionHistoryResponse struct {
	ID             string                   `json:"id"`
	DriverID       *string                  `json:"driver_id,omitempty"`
	UserID         *string                  `json:"user_id,omitempty"`
	Nominal        decimal.Decimal          `json:"nominal"`
	SaldoAwal      decimal.Decimal          `json:"saldo_awal"`
	SaldoAkhir     decimal.Decimal          `json:"saldo_akhir"`
	Keterangan     string                   `json:"keterangan"`
	JenisTransaksi entity.TransactionKind   `json:"jenis_transaksi"`
	Status         entity.TransactionStatus `json:"status"`
	CreatedAt      time.Time                `json:"created_at"`
}

func TransactionHistoryToResponse(h *entity.TransactionHistory) TransactionHistoryResponse {
	return TransactionHistoryResponse{
		ID:             h.ID.String(),
		DriverID:       uuidPtrString(h.DriverID),
		UserID:         uuidPtrString(h.UserID),
		Nominal:        h.Nominal,
		SaldoAwal:      h.SaldoAwal,
		SaldoAkhir:     h.SaldoAkhir,
		Keterangan:     h.Keterangan,
		JenisTransaksi: h.JenisTransaksi,
		Status:         h.Status,
		CreatedAt:      h.CreatedAt,
	}
}
