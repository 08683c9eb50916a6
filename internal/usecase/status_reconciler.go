package usecase

import (
	"context"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/response"
	"rental-booking/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type StatusReconciler interface {
	// RecomputePaymentStatus rewrites payment_status from the completed
	// payments on file. Calling it again without new payments is a no-op.
	RecomputePaymentStatus(ctx context.Context, bookingID uuid.UUID) (entity.PaymentState, error)

	Approve(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error)
	ProcessPickup(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error)
	ProcessReturn(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error)
	Cancel(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error)
}

type statusReconciler struct {
	repo      *repository.Repository
	publisher EventPublisher
	log       *zap.Logger
}

func NewStatusReconciler(repo *repository.Repository, publisher EventPublisher, log *zap.Logger) StatusReconciler {
	if publisher == nil {
		publisher = NewNopPublisher()
	}
	return &statusReconciler{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "status_reconciler")),
	}
}

// paymentReconciliation is the outcome of recomputing one booking.
type paymentReconciliation struct {
	previous  entity.PaymentState
	current   entity.PaymentState
	totalPaid decimal.Decimal
}

func (r paymentReconciliation) changed() bool { return r.previous != r.current }

// reconcilePayment derives payment_status for booking from the repositories
// in repo and writes it back only when it differs. booking.PaymentStatus is
// updated in place.
func reconcilePayment(ctx context.Context, repo *repository.Repository, booking *entity.Booking) (paymentReconciliation, error) {
	totalPaid, err := repo.Payment.SumCompletedByBookingID(ctx, booking.ID)
	if err != nil {
		return paymentReconciliation{}, apperr.Remote("sum payments", err)
	}

	result := paymentReconciliation{
		previous:  booking.PaymentStatus,
		current:   entity.DerivePaymentState(totalPaid, booking.TotalAmount),
		totalPaid: totalPaid,
	}

	if result.changed() {
		if err := repo.Booking.UpdatePaymentStatus(ctx, booking.ID, result.current); err != nil {
			return paymentReconciliation{}, apperr.Remote("update payment status", err)
		}
		booking.PaymentStatus = result.current
	}

	return result, nil
}

func (s *statusReconciler) RecomputePaymentStatus(ctx context.Context, bookingID uuid.UUID) (entity.PaymentState, error) {
	var result paymentReconciliation

	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		booking, err := tx.Booking.FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return apperr.Remote("find booking", err)
		}
		if booking == nil {
			return apperr.NotFound("booking", bookingID.String())
		}

		result, err = reconcilePayment(ctx, tx, booking)
		return err
	})
	if err != nil {
		return "", err
	}

	if result.changed() {
		s.log.Info("Payment status recomputed",
			zap.String("booking_id", bookingID.String()),
			zap.String("from", string(result.previous)),
			zap.String("to", string(result.current)),
		)
		publishEvent(ctx, s.publisher, s.log, EventPaymentStatusChanged, PaymentStatusChanged{
			BookingID: bookingID.String(),
			Table:     "bookings",
			From:      string(result.previous),
			To:        string(result.current),
			TotalPaid: result.totalPaid,
			At:        time.Now(),
		})
	}

	return result.current, nil
}

func (s *statusReconciler) Approve(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error) {
	return s.transition(ctx, bookingID, entity.BookingStatusConfirmed, nil)
}

// ProcessPickup hands the car over: vehicle and driver go on ride.
func (s *statusReconciler) ProcessPickup(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error) {
	return s.transition(ctx, bookingID, entity.BookingStatusOnRide, func(ctx context.Context, tx *repository.Repository, b *entity.Booking) error {
		if b.VehicleID != nil {
			if err := s.setVehicle(ctx, tx, *b.VehicleID, entity.VehicleStatusOnRide,
				entity.VehicleStatusBooked, entity.VehicleStatusAvailable); err != nil {
				return err
			}
		}
		if b.DriverID != nil {
			if err := tx.Driver.UpdateStatus(ctx, *b.DriverID, entity.DriverStatusOnRide); err != nil {
				return apperr.Remote("update driver status", err)
			}
		}
		return nil
	})
}

func (s *statusReconciler) ProcessReturn(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error) {
	return s.transition(ctx, bookingID, entity.BookingStatusCompleted, s.releaseResources)
}

func (s *statusReconciler) Cancel(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error) {
	return s.transition(ctx, bookingID, entity.BookingStatusCancelled, s.releaseResources)
}

func (s *statusReconciler) releaseResources(ctx context.Context, tx *repository.Repository, b *entity.Booking) error {
	if b.VehicleID != nil {
		if err := s.setVehicle(ctx, tx, *b.VehicleID, entity.VehicleStatusAvailable,
			entity.VehicleStatusBooked, entity.VehicleStatusOnRide); err != nil {
			return err
		}
	}
	if b.DriverID != nil {
		if err := tx.Driver.UpdateStatus(ctx, *b.DriverID, entity.DriverStatusStandby); err != nil {
			return apperr.Remote("release driver", err)
		}
	}
	return nil
}

// setVehicle moves the vehicle only from the expected statuses. A vehicle in
// any other status (maintenance, reassigned) is left alone.
func (s *statusReconciler) setVehicle(ctx context.Context, tx *repository.Repository, id uuid.UUID, to entity.VehicleStatus, from ...entity.VehicleStatus) error {
	updated, err := tx.Vehicle.UpdateStatusIf(ctx, id, to, from...)
	if err != nil {
		return apperr.Remote("update vehicle status", err)
	}
	if !updated {
		s.log.Warn("Vehicle not in expected status, left unchanged",
			zap.String("vehicle_id", id.String()),
			zap.String("target", string(to)),
		)
	}
	return nil
}

// transition validates the move against the lifecycle table and applies it
// with a conditional update, so a booking changed by someone else in the
// meantime yields a conflict instead of a lost update.
func (s *statusReconciler) transition(
	ctx context.Context,
	bookingID uuid.UUID,
	target entity.BookingStatus,
	after func(ctx context.Context, tx *repository.Repository, b *entity.Booking) error,
) (*response.BookingResponse, error) {
	var (
		from    entity.BookingStatus
		updated *entity.Booking
	)

	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		booking, err := tx.Booking.FindByID(ctx, bookingID)
		if err != nil {
			return apperr.Remote("find booking", err)
		}
		if booking == nil {
			return apperr.NotFound("booking", bookingID.String())
		}

		from = booking.Status
		if !from.CanTransitionTo(target) {
			return apperr.Conflict("booking %s cannot move from %s to %s", booking.CodeBooking, from, target)
		}

		updated, err = tx.Booking.TransitionStatus(ctx, bookingID, from, target)
		if err != nil {
			return apperr.Remote("update booking status", err)
		}
		if updated == nil {
			return apperr.Conflict("booking %s was modified concurrently", booking.CodeBooking)
		}

		if after != nil {
			return after(ctx, tx, updated)
		}
		return nil
	})
	if err != nil {
		if !apperr.IsConflict(err) && !apperr.IsNotFound(err) {
			s.log.Error("Booking transition failed",
				zap.Error(err),
				zap.String("booking_id", bookingID.String()),
				zap.String("target", string(target)),
			)
		}
		return nil, err
	}

	s.log.Info("Booking status changed",
		zap.String("booking_id", bookingID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(target)),
	)
	publishEvent(ctx, s.publisher, s.log, EventBookingStatusChanged, BookingStatusChanged{
		BookingID: bookingID.String(),
		From:      string(from),
		To:        string(target),
		At:        time.Now(),
	})

	resp := response.BookingToResponse(updated)
	return &resp, nil
}
