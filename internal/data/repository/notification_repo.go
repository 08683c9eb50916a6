package repository

import (
	"context"
	"fmt"

	"rental-booking/internal/data/entity"
	"rental-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationRepository interface {
	Exists(ctx context.Context, transferID, driverID uuid.UUID) (bool, error)

	// Create stores the notification unless one already exists for the same
	// transfer and driver. created reports whether a row was written.
	Create(ctx context.Context, n *entity.DriverNotification) (created bool, err error)
	FindUnreadByDriverID(ctx context.Context, driverID uuid.UUID) ([]*entity.DriverNotification, error)
}

type notificationRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewNotificationRepository(db database.DBTX, log *zap.Logger) NotificationRepository {
	return &notificationRepository{
		db:  db,
		log: log.With(zap.String("repository", "driver_notification")),
	}
}

func (r *notificationRepository) Exists(ctx context.Context, transferID, driverID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM driver_notifications WHERE transfer_id = $1 AND driver_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, transferID, driverID).Scan(&exists); err != nil {
		r.log.Error("Failed to check driver notification",
			zap.Error(err),
			zap.String("transfer_id", transferID.String()),
			zap.String("driver_id", driverID.String()),
		)
		return false, fmt.Errorf("check notification for transfer %s: %w", transferID.String(), err)
	}

	return exists, nil
}

func (r *notificationRepository) Create(ctx context.Context, n *entity.DriverNotification) (bool, error) {
	query := `
		INSERT INTO driver_notifications (id, transfer_id, driver_id, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (transfer_id, driver_id) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query,
		n.ID,
		n.TransferID,
		n.DriverID,
		n.Message,
		string(n.Status),
		n.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create driver notification",
			zap.Error(err),
			zap.String("transfer_id", n.TransferID.String()),
			zap.String("driver_id", n.DriverID.String()),
		)
		return false, fmt.Errorf("create notification for transfer %s: %w", n.TransferID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *notificationRepository) FindUnreadByDriverID(ctx context.Context, driverID uuid.UUID) ([]*entity.DriverNotification, error) {
	query := `
		SELECT id, transfer_id, driver_id, message, status, created_at
		FROM driver_notifications
		WHERE driver_id = $1 AND status = 'unread'
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, driverID)
	if err != nil {
		r.log.Error("Failed to find driver notifications",
			zap.Error(err),
			zap.String("driver_id", driverID.String()),
		)
		return nil, fmt.Errorf("find notifications for driver %s: %w", driverID.String(), err)
	}
	defer rows.Close()

	var notifications []*entity.DriverNotification
	for rows.Next() {
		var n entity.DriverNotification
		if err := rows.Scan(&n.ID, &n.TransferID, &n.DriverID, &n.Message, &n.Status, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification row: %w", err)
		}
		notifications = append(notifications, &n)
	}

	return notifications, rows.Err()
}
