package repository

import (
	"context"
	"errors"
	"fmt"

	"rental-booking/internal/data/entity"
	"rental-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type DriverRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Driver, error)
	FindAll(ctx context.Context, status entity.DriverStatus) ([]*entity.Driver, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.DriverStatus) error

	// AdjustSaldo adds nominal (which may be negative) to the driver's saldo
	// in one statement and returns the balance before and after. found is
	// false when the driver does not exist.
	AdjustSaldo(ctx context.Context, id uuid.UUID, nominal decimal.Decimal) (before, after decimal.Decimal, found bool, err error)
}

type driverRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewDriverRepository(db database.DBTX, log *zap.Logger) DriverRepository {
	return &driverRepository{
		db:  db,
		log: log.With(zap.String("repository", "driver")),
	}
}

func scanDriver(row pgx.Row) (*entity.Driver, error) {
	var d entity.Driver
	if err := row.Scan(&d.ID, &d.Name, &d.Phone, &d.Status, &d.Saldo, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *driverRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Driver, error) {
	query := `SELECT id, name, phone, status, saldo, created_at, updated_at FROM drivers WHERE id = $1`

	driver, err := scanDriver(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find driver", zap.Error(err), zap.String("driver_id", id.String()))
		return nil, fmt.Errorf("find driver %s: %w", id.String(), err)
	}

	return driver, nil
}

func (r *driverRepository) FindAll(ctx context.Context, status entity.DriverStatus) ([]*entity.Driver, error) {
	query := `
		SELECT id, name, phone, status, saldo, created_at, updated_at
		FROM drivers
		WHERE ($1::text = '' OR status = $1)
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, string(status))
	if err != nil {
		r.log.Error("Failed to list drivers", zap.Error(err))
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()

	var drivers []*entity.Driver
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("scan driver row: %w", err)
		}
		drivers = append(drivers, driver)
	}

	return drivers, rows.Err()
}

func (r *driverRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.DriverStatus) error {
	query := `UPDATE drivers SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, string(status))
	if err != nil {
		r.log.Error("Failed to update driver status",
			zap.Error(err),
			zap.String("driver_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update driver %s status: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("driver %s not found", id.String())
	}

	return nil
}

func (r *driverRepository) AdjustSaldo(ctx context.Context, id uuid.UUID, nominal decimal.Decimal) (decimal.Decimal, decimal.Decimal, bool, error) {
	query := `
		UPDATE drivers
		SET saldo = saldo + $2::numeric, updated_at = NOW()
		WHERE id = $1
		RETURNING saldo - $2::numeric, saldo
	`

	var before, after decimal.Decimal
	err := r.db.QueryRow(ctx, query, id, nominal).Scan(&before, &after)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, decimal.Zero, false, nil
	}
	if err != nil {
		r.log.Error("Failed to adjust driver saldo",
			zap.Error(err),
			zap.String("driver_id", id.String()),
			zap.String("nominal", nominal.String()),
		)
		return decimal.Zero, decimal.Zero, false, fmt.Errorf("adjust saldo for driver %s: %w", id.String(), err)
	}

	return before, after, true, nil
}
