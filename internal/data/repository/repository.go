package repository

import (
	"context"

	"rental-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	db  database.PgxIface
	log *zap.Logger

	User               UserRepository
	Staff              StaffRepository
	Session            SessionRepository
	Booking            BookingRepository
	BookingTable       BookingTableRepository
	Payment            PaymentRepository
	Driver             DriverRepository
	Vehicle            VehicleRepository
	Transfer           TransferRepository
	Notification       NotificationRepository
	TransactionHistory TransactionHistoryRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepositorySet(db, log)
	repo.db = db
	return repo
}

func newRepositorySet(q database.DBTX, log *zap.Logger) *Repository {
	return &Repository{
		log:                log,
		User:               NewUserRepository(q, log),
		Staff:              NewStaffRepository(q, log),
		Session:            NewSessionRepository(q, log),
		Booking:            NewBookingRepository(q, log),
		BookingTable:       NewBookingTableRepository(q, log),
		Payment:            NewPaymentRepository(q, log),
		Driver:             NewDriverRepository(q, log),
		Vehicle:            NewVehicleRepository(q, log),
		Transfer:           NewTransferRepository(q, log),
		Notification:       NewNotificationRepository(q, log),
		TransactionHistory: NewTransactionHistoryRepository(q, log),
	}
}

// WithTx runs fn against repositories bound to a single transaction. A
// Repository without a pool (already inside a transaction, or assembled by
// hand in tests) runs fn directly on itself.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return database.RunInTx(ctx, r.db, func(tx pgx.Tx) error {
		return fn(newRepositorySet(tx, r.log))
	})
}
