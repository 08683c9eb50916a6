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

type PaymentRepository interface {
	// Create inserts a payment row. With an idempotency key already on file it
	// inserts nothing and reports created=false.
	Create(ctx context.Context, payment *entity.Payment) (created bool, err error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*entity.Payment, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error)

	// Business queries
	SumCompletedByBookingID(ctx context.Context, bookingID uuid.UUID) (decimal.Decimal, error)
	UpdateStatus(ctx context.Context, paymentID uuid.UUID, status entity.PaymentStatus, transactionID *string) (bool, error)
}

type paymentRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewPaymentRepository(db database.DBTX, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `id, booking_id, user_id, amount, payment_method, bank_name, status,
		is_partial_payment, transaction_id, idempotency_key, created_at, updated_at`

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.UserID,
		&p.Amount,
		&p.PaymentMethod,
		&p.BankName,
		&p.Status,
		&p.IsPartialPayment,
		&p.TransactionID,
		&p.IdempotencyKey,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) (bool, error) {
	query := `
		INSERT INTO payments (id, booking_id, user_id, amount, payment_method, bank_name, status,
		                      is_partial_payment, transaction_id, idempotency_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (idempotency_key) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.UserID,
		payment.Amount,
		string(payment.PaymentMethod),
		payment.BankName,
		string(payment.Status),
		payment.IsPartialPayment,
		payment.TransactionID,
		payment.IdempotencyKey,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("booking_id", payment.BookingID.String()),
			zap.String("payment_method", string(payment.PaymentMethod)),
		)
		return false, fmt.Errorf("create payment for booking %s: %w", payment.BookingID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *paymentRepository) findOne(ctx context.Context, query string, arg any) (*entity.Payment, error) {
	payment, err := scanPayment(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment", zap.Error(err), zap.Any("key", arg))
		return nil, fmt.Errorf("find payment %v: %w", arg, err)
	}
	return payment, nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	return r.findOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
}

func (r *paymentRepository) FindByIdempotencyKey(ctx context.Context, key string) (*entity.Payment, error) {
	return r.findOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE idempotency_key = $1`, key)
}

func (r *paymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error) {
	return r.findOne(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE transaction_id = $1 ORDER BY created_at DESC LIMIT 1`,
		transactionID,
	)
}

// FindByBookingID returns every payment of a booking, newest first.
func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find payments by booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payments for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	payments := make([]*entity.Payment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			r.log.Error("Failed to scan payment row", zap.Error(err))
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}

func (r *paymentRepository) SumCompletedByBookingID(ctx context.Context, bookingID uuid.UUID) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE booking_id = $1 AND status = 'completed'`

	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, query, bookingID).Scan(&total); err != nil {
		r.log.Error("Failed to sum completed payments",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return decimal.Zero, fmt.Errorf("sum payments for booking %s: %w", bookingID.String(), err)
	}

	return total, nil
}

// UpdateStatus never touches a payment that is already completed. Returns
// false when nothing was updated.
func (r *paymentRepository) UpdateStatus(ctx context.Context, paymentID uuid.UUID, status entity.PaymentStatus, transactionID *string) (bool, error) {
	query := `
		UPDATE payments
		SET status = $2, transaction_id = COALESCE($3, transaction_id), updated_at = NOW()
		WHERE id = $1 AND status <> 'completed'
	`

	result, err := r.db.Exec(ctx, query, paymentID, string(status), transactionID)
	if err != nil {
		r.log.Error("Failed to update payment status",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
			zap.String("status", string(status)),
		)
		return false, fmt.Errorf("update payment %s status to %s: %w", paymentID.String(), status, err)
	}

	return result.RowsAffected() > 0, nil
}
