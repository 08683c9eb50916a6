package repository

import (
	"context"
	"errors"
	"fmt"

	"rental-booking/internal/data/entity"
	"rental-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TransferRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transfer, error)
	FindByDriverID(ctx context.Context, driverID uuid.UUID) ([]*entity.Transfer, error)

	// AssignDriver binds the driver and resets the transfer to pending in a
	// single write.
	AssignDriver(ctx context.Context, id, driverID uuid.UUID) error
}

type transferRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewTransferRepository(db database.DBTX, log *zap.Logger) TransferRepository {
	return &transferRepository{
		db:  db,
		log: log.With(zap.String("repository", "transfer")),
	}
}

const transferColumns = `id, code_booking, customer_name, pickup_location, dropoff_location, pickup_time,
		price, payment_status, status, driver_id, vehicle_id, created_at, updated_at`

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	err := row.Scan(
		&t.ID,
		&t.CodeBooking,
		&t.CustomerName,
		&t.PickupLocation,
		&t.DropoffLocation,
		&t.PickupTime,
		&t.Price,
		&t.PaymentStatus,
		&t.Status,
		&t.DriverID,
		&t.VehicleID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transferRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM airport_transfer WHERE id = $1`

	transfer, err := scanTransfer(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find transfer", zap.Error(err), zap.String("transfer_id", id.String()))
		return nil, fmt.Errorf("find transfer %s: %w", id.String(), err)
	}

	return transfer, nil
}

func (r *transferRepository) FindByDriverID(ctx context.Context, driverID uuid.UUID) ([]*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM airport_transfer WHERE driver_id = $1 ORDER BY pickup_time DESC`

	rows, err := r.db.Query(ctx, query, driverID)
	if err != nil {
		r.log.Error("Failed to find transfers by driver",
			zap.Error(err),
			zap.String("driver_id", driverID.String()),
		)
		return nil, fmt.Errorf("find transfers for driver %s: %w", driverID.String(), err)
	}
	defer rows.Close()

	var transfers []*entity.Transfer
	for rows.Next() {
		transfer, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer row: %w", err)
		}
		transfers = append(transfers, transfer)
	}

	return transfers, rows.Err()
}

func (r *transferRepository) AssignDriver(ctx context.Context, id, driverID uuid.UUID) error {
	query := `
		UPDATE airport_transfer
		SET driver_id = $2, status = 'pending', updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, driverID)
	if err != nil {
		r.log.Error("Failed to assign driver to transfer",
			zap.Error(err),
			zap.String("transfer_id", id.String()),
			zap.String("driver_id", driverID.String()),
		)
		return fmt.Errorf("assign driver %s to transfer %s: %w", driverID.String(), id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("transfer %s not found", id.String())
	}

	return nil
}
