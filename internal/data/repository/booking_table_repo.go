package repository

import (
	"context"
	"fmt"

	"rental-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingType picks the order table a gateway notification refers to.
type BookingType string

const (
	BookingTypeRental   BookingType = "rental"
	BookingTypeBaggage  BookingType = "baggage"
	BookingTypeTransfer BookingType = "airport_transfer"
	BookingTypeHandling BookingType = "handling"
)

// Table names come from this map only, never from request input.
var bookingTables = map[BookingType]string{
	BookingTypeRental:   "bookings",
	BookingTypeBaggage:  "baggage_booking",
	BookingTypeTransfer: "airport_transfer",
	BookingTypeHandling: "handling_bookings",
}

// TableFor falls back to bookings for unknown or empty types.
func (t BookingType) TableFor() string {
	if table, ok := bookingTables[t]; ok {
		return table
	}
	return bookingTables[BookingTypeRental]
}

type BookingTableRepository interface {
	// MarkPaid sets payment_status=paid on the row of the table chosen by
	// bookingType and confirms it if it has not moved past confirmation yet.
	// Returns false when no row matched.
	MarkPaid(ctx context.Context, bookingType BookingType, id uuid.UUID) (bool, error)
}

type bookingTableRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewBookingTableRepository(db database.DBTX, log *zap.Logger) BookingTableRepository {
	return &bookingTableRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_table")),
	}
}

func (r *bookingTableRepository) MarkPaid(ctx context.Context, bookingType BookingType, id uuid.UUID) (bool, error) {
	table := bookingType.TableFor()
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = CASE WHEN status IN ('pending', 'booked') THEN 'confirmed' ELSE status END,
		    payment_status = 'paid',
		    updated_at = NOW()
		WHERE id = $1
	`, table)

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark booking paid",
			zap.Error(err),
			zap.String("table", table),
			zap.String("id", id.String()),
		)
		return false, fmt.Errorf("mark %s %s paid: %w", table, id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}
