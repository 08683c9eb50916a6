package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TransactionKindTopUp      TransactionKind = "topup"
	TransactionKindAdjustment TransactionKind = "adjustment"
	TransactionKindPayment    TransactionKind = "payment"
	TransactionKindRefund     TransactionKind = "refund"
)

type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// TransactionHistory is a row of histori_transaksi. SaldoAkhir is always
// SaldoAwal + Nominal at write time.
type TransactionHistory struct {
	BaseSimple
	DriverID       *uuid.UUID        `db:"driver_id"`
	UserID         *uuid.UUID        `db:"user_id"`
	Nominal        decimal.Decimal   `db:"nominal"`
	SaldoAwal      decimal.Decimal   `db:"saldo_awal"`
	SaldoAkhir     decimal.Decimal   `db:"saldo_akhir"`
	Keterangan     string            `db:"keterangan"`
	JenisTransaksi TransactionKind   `db:"jenis_transaksi"`
	Status         TransactionStatus `db:"status"`
}
