package request

import "github.com/shopspring/decimal"

type AdjustBalanceRequest struct {
	Nominal        decimal.Decimal `json:"nominal"`
	JenisTransaksi string          `json:"jenis_transaksi" validate:"required,oneof=topup adjustment payment refund"`
	Keterangan     string          `json:"keterangan" validate:"max=255"`
}
