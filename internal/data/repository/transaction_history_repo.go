package repository

import (
	"context"
	"fmt"

	"rental-booking/internal/data/entity"
	"rental-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransactionHistoryRepository interface {
	Create(ctx context.Context, h *entity.TransactionHistory) error
	FindByDriverID(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]*entity.TransactionHistory, error)
	CountByDriverID(ctx context.Context, driverID uuid.UUID) (int64, error)
}

type transactionHistoryRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewTransactionHistoryRepository(db database.DBTX, log *zap.Logger) TransactionHistoryRepository {
	return &transactionHistoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "histori_transaksi")),
	}
}

func (r *transactionHistoryRepository) Create(ctx context.Context, h *entity.TransactionHistory) error {
	query := `
		INSERT INTO histori_transaksi (id, driver_id, user_id, nominal, saldo_awal, saldo_akhir,
		                               keterangan, jenis_transaksi, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		h.ID,
		h.DriverID,
		h.UserID,
		h.Nominal,
		h.SaldoAwal,
		h.SaldoAkhir,
		h.Keterangan,
		string(h.JenisTransaksi),
		string(h.Status),
		h.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create transaction history",
			zap.Error(err),
			zap.String("nominal", h.Nominal.String()),
			zap.String("jenis_transaksi", string(h.JenisTransaksi)),
		)
		return fmt.Errorf("create transaction history: %w", err)
	}

	return nil
}

func (r *transactionHistoryRepository) FindByDriverID(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]*entity.TransactionHistory, error) {
	query := `
		SELECT id, driver_id, user_id, nominal, saldo_awal, saldo_akhir, keterangan,
		       jenis_transaksi, status, created_at
		FROM histori_transaksi
		WHERE driver_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, driverID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find transaction history",
			zap.Error(err),
			zap.String("driver_id", driverID.String()),
		)
		return nil, fmt.Errorf("find history for driver %s: %w", driverID.String(), err)
	}
	defer rows.Close()

	var history []*entity.TransactionHistory
	for rows.Next() {
		var h entity.TransactionHistory
		err := rows.Scan(
			&h.ID,
			&h.DriverID,
			&h.UserID,
			&h.Nominal,
			&h.SaldoAwal,
			&h.SaldoAkhir,
			&h.Keterangan,
			&h.JenisTransaksi,
			&h.Status,
			&h.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		history = append(history, &h)
	}

	return history, rows.Err()
}

func (r *transactionHistoryRepository) CountByDriverID(ctx context.Context, driverID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM histori_transaksi WHERE driver_id = $1`, driverID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count transaction history", zap.Error(err))
		return 0, fmt.Errorf("count history for driver %s: %w", driverID.String(), err)
	}
	return count, nil
}
