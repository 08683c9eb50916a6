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

type StaffRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error)
	Upsert(ctx context.Context, staff *entity.Staff) error
}

type staffRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewStaffRepository(db database.DBTX, log *zap.Logger) StaffRepository {
	return &staffRepository{
		db:  db,
		log: log.With(zap.String("repository", "staff")),
	}
}

func (r *staffRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	query := `
		SELECT id, department, position, employee_number, ktp_number, address, created_at, updated_at
		FROM staff
		WHERE id = $1
	`

	var s entity.Staff
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Department,
		&s.Position,
		&s.EmployeeNumber,
		&s.KTPNumber,
		&s.Address,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find staff", zap.Error(err), zap.String("staff_id", id.String()))
		return nil, fmt.Errorf("find staff %s: %w", id.String(), err)
	}

	return &s, nil
}

func (r *staffRepository) Upsert(ctx context.Context, staff *entity.Staff) error {
	query := `
		INSERT INTO staff (id, department, position, employee_number, ktp_number, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET department = EXCLUDED.department,
		    position = EXCLUDED.position,
		    employee_number = EXCLUDED.employee_number,
		    ktp_number = EXCLUDED.ktp_number,
		    address = EXCLUDED.address,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		staff.ID,
		staff.Department,
		staff.Position,
		staff.EmployeeNumber,
		staff.KTPNumber,
		staff.Address,
		staff.CreatedAt,
		staff.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to upsert staff",
			zap.Error(err),
			zap.String("staff_id", staff.ID.String()),
		)
		return fmt.Errorf("upsert staff %s: %w", staff.ID.String(), err)
	}

	return nil
}
