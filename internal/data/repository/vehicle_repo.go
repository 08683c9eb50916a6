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

type VehicleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error)
	FindAll(ctx context.Context, status entity.VehicleStatus) ([]*entity.Vehicle, error)

	// UpdateStatusIf moves the vehicle to status only when it currently
	// holds one of from. Returns false when no row matched.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, status entity.VehicleStatus, from ...entity.VehicleStatus) (bool, error)
}

type vehicleRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewVehicleRepository(db database.DBTX, log *zap.Logger) VehicleRepository {
	return &vehicleRepository{
		db:  db,
		log: log.With(zap.String("repository", "vehicle")),
	}
}

func scanVehicle(row pgx.Row) (*entity.Vehicle, error) {
	var v entity.Vehicle
	if err := row.Scan(&v.ID, &v.Make, &v.Model, &v.LicensePlate, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	query := `SELECT id, make, model, license_plate, status, created_at, updated_at FROM vehicles WHERE id = $1`

	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vehicle", zap.Error(err), zap.String("vehicle_id", id.String()))
		return nil, fmt.Errorf("find vehicle %s: %w", id.String(), err)
	}

	return vehicle, nil
}

func (r *vehicleRepository) FindAll(ctx context.Context, status entity.VehicleStatus) ([]*entity.Vehicle, error) {
	query := `
		SELECT id, make, model, license_plate, status, created_at, updated_at
		FROM vehicles
		WHERE ($1::text = '' OR status = $1)
		ORDER BY make, model
	`

	rows, err := r.db.Query(ctx, query, string(status))
	if err != nil {
		r.log.Error("Failed to list vehicles", zap.Error(err))
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*entity.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, rows.Err()
}

func (r *vehicleRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, status entity.VehicleStatus, from ...entity.VehicleStatus) (bool, error) {
	allowed := make([]string, 0, len(from))
	for _, s := range from {
		allowed = append(allowed, string(s))
	}

	query := `UPDATE vehicles SET status = $2, updated_at = NOW() WHERE id = $1 AND status = ANY($3)`

	result, err := r.db.Exec(ctx, query, id, string(status), allowed)
	if err != nil {
		r.log.Error("Failed to update vehicle status",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
			zap.String("status", string(status)),
		)
		return false, fmt.Errorf("update vehicle %s status: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}
