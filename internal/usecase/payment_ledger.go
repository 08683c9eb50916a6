package usecase

import (
	"context"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/request"
	"rental-booking/internal/dto/response"
	"rental-booking/pkg/apperr"
	"rental-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RecordPaymentInput carries one payment to append to a booking's ledger.
type RecordPaymentInput struct {
	BookingID        uuid.UUID
	UserID           *uuid.UUID
	Amount           decimal.Decimal
	Method           entity.PaymentMethod
	BankName         *string
	IsPartialPayment bool
	IdempotencyKey   *string
}

type PaymentLedger interface {
	RecordPayment(ctx context.Context, in RecordPaymentInput) (*entity.Payment, error)
	GetPaymentsForBooking(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error)
	TotalPaid(ctx context.Context, bookingID uuid.UUID) (decimal.Decimal, error)
	RemainingBalance(ctx context.Context, bookingID uuid.UUID) (decimal.Decimal, error)

	// ProcessPayment is the POST /api/payments flow. sessionUserID is nil for
	// unauthenticated guest checkouts.
	ProcessPayment(ctx context.Context, sessionUserID *uuid.UUID, req *request.ProcessPaymentRequest) (*response.ProcessPaymentResponse, error)
}

type paymentLedger struct {
	repo      *repository.Repository
	publisher EventPublisher
	log       *zap.Logger
}

func NewPaymentLedger(repo *repository.Repository, publisher EventPublisher, log *zap.Logger) PaymentLedger {
	if publisher == nil {
		publisher = NewNopPublisher()
	}
	return &paymentLedger{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "payment_ledger")),
	}
}

type recordResult struct {
	payment  *entity.Payment
	booking  *entity.Booking
	status   paymentReconciliation
	replayed bool
}

func (s *paymentLedger) RecordPayment(ctx context.Context, in RecordPaymentInput) (*entity.Payment, error) {
	result, err := s.record(ctx, in)
	if err != nil {
		return nil, err
	}
	return result.payment, nil
}

// record appends the payment and recomputes payment_status inside one
// transaction. The booking row is locked first so concurrent payments on the
// same booking reconcile one after the other.
func (s *paymentLedger) record(ctx context.Context, in RecordPaymentInput) (*recordResult, error) {
	if !in.Amount.IsPositive() {
		return nil, apperr.InvalidAmount("amount")
	}
	if !in.Method.IsValid() {
		return nil, apperr.Validation("payment_method", "unsupported payment method "+string(in.Method))
	}

	result := &recordResult{}
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		booking, err := tx.Booking.FindByIDForUpdate(ctx, in.BookingID)
		if err != nil {
			return apperr.Remote("find booking", err)
		}
		if booking == nil {
			return apperr.NotFound("booking", in.BookingID.String())
		}
		result.booking = booking

		if in.IdempotencyKey != nil {
			existing, err := tx.Payment.FindByIdempotencyKey(ctx, *in.IdempotencyKey)
			if err != nil {
				return apperr.Remote("find payment by idempotency key", err)
			}
			if existing != nil {
				if existing.BookingID != in.BookingID {
					return apperr.Conflict("idempotency key %s belongs to another booking", *in.IdempotencyKey)
				}
				result.payment = existing
				result.replayed = true
				result.status, err = reconcilePayment(ctx, tx, booking)
				return err
			}
		}

		paidSoFar, err := tx.Payment.SumCompletedByBookingID(ctx, booking.ID)
		if err != nil {
			return apperr.Remote("sum payments", err)
		}
		remaining := entity.RemainingBalance(booking.TotalAmount, paidSoFar)

		now := time.Now()
		payment := &entity.Payment{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			BookingID:        booking.ID,
			UserID:           in.UserID,
			Amount:           in.Amount,
			PaymentMethod:    in.Method,
			BankName:         in.BankName,
			Status:           entity.PaymentStatusCompleted,
			IsPartialPayment: in.IsPartialPayment || in.Amount.LessThan(remaining),
			IdempotencyKey:   in.IdempotencyKey,
		}

		created, err := tx.Payment.Create(ctx, payment)
		if err != nil {
			return apperr.Remote("insert payment", err)
		}
		if !created && in.IdempotencyKey != nil {
			// lost the race on the idempotency key
			existing, err := tx.Payment.FindByIdempotencyKey(ctx, *in.IdempotencyKey)
			if err != nil {
				return apperr.Remote("find payment by idempotency key", err)
			}
			payment = existing
			result.replayed = true
		}
		result.payment = payment

		result.status, err = reconcilePayment(ctx, tx, booking)
		return err
	})
	if err != nil {
		if apperr.IsValidation(err) || apperr.IsNotFound(err) || apperr.IsConflict(err) {
			s.log.Warn("Payment rejected", zap.Error(err), zap.String("booking_id", in.BookingID.String()))
		} else {
			s.log.Error("Failed to record payment", zap.Error(err), zap.String("booking_id", in.BookingID.String()))
		}
		return nil, err
	}

	if result.replayed {
		s.log.Info("Idempotent payment replay",
			zap.String("payment_id", result.payment.ID.String()),
			zap.String("booking_id", in.BookingID.String()),
		)
	} else {
		s.log.Info("Payment recorded",
			zap.String("payment_id", result.payment.ID.String()),
			zap.String("booking_id", in.BookingID.String()),
			zap.String("amount", in.Amount.String()),
			zap.String("payment_status", string(result.status.current)),
		)
		publishEvent(ctx, s.publisher, s.log, EventPaymentRecorded, PaymentRecorded{
			PaymentID: result.payment.ID.String(),
			BookingID: in.BookingID.String(),
			Amount:    in.Amount,
			Method:    string(in.Method),
			At:        result.payment.CreatedAt,
		})
	}

	if result.status.changed() {
		publishEvent(ctx, s.publisher, s.log, EventPaymentStatusChanged, PaymentStatusChanged{
			BookingID: in.BookingID.String(),
			Table:     "bookings",
			From:      string(result.status.previous),
			To:        string(result.status.current),
			TotalPaid: result.status.totalPaid,
			At:        time.Now(),
		})
	}

	return result, nil
}

func (s *paymentLedger) GetPaymentsForBooking(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error) {
	payments, err := s.repo.Payment.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, apperr.Remote("list payments", err)
	}
	return payments, nil
}

func (s *paymentLedger) TotalPaid(ctx context.Context, bookingID uuid.UUID) (decimal.Decimal, error) {
	total, err := s.repo.Payment.SumCompletedByBookingID(ctx, bookingID)
	if err != nil {
		return decimal.Zero, apperr.Remote("sum payments", err)
	}
	return total, nil
}

func (s *paymentLedger) RemainingBalance(ctx context.Context, bookingID uuid.UUID) (decimal.Decimal, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return decimal.Zero, apperr.Remote("find booking", err)
	}
	if booking == nil {
		return decimal.Zero, apperr.NotFound("booking", bookingID.String())
	}

	total, err := s.TotalPaid(ctx, bookingID)
	if err != nil {
		return decimal.Zero, err
	}

	return entity.RemainingBalance(booking.TotalAmount, total), nil
}

func (s *paymentLedger) ProcessPayment(ctx context.Context, sessionUserID *uuid.UUID, req *request.ProcessPaymentRequest) (*response.ProcessPaymentResponse, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Process payment validation failed", zap.Any("errors", errs))
		if _, ok := errs["Amount"]; ok {
			return nil, apperr.InvalidAmount("amount")
		}
		return nil, apperr.Validation("", utils.FormatValidationErrors(errs))
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, apperr.Validation("bookingId", "invalid booking ID format")
	}

	// 2. Tentukan pembayar: session dulu, lalu body
	userID := sessionUserID
	if userID == nil && req.UserID != nil {
		parsed, err := uuid.Parse(*req.UserID)
		if err != nil {
			return nil, apperr.Validation("userId", "invalid user ID format")
		}
		userID = &parsed
	}
	if userID == nil && !req.IsGuestBooking {
		return nil, apperr.Validation("userId", "required unless isGuestBooking is set")
	}

	// 3. Catat pembayaran + recompute status
	result, err := s.record(ctx, RecordPaymentInput{
		BookingID:        bookingID,
		UserID:           userID,
		Amount:           req.Amount,
		Method:           entity.PaymentMethod(req.PaymentMethod),
		BankName:         req.BankName,
		IsPartialPayment: req.IsPartialPayment,
		IdempotencyKey:   req.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	return &response.ProcessPaymentResponse{
		Payment:        response.PaymentToResponse(result.payment),
		Booking:        response.BookingToResponse(result.booking),
		TotalPaid:      result.status.totalPaid,
		IsGuestBooking: req.IsGuestBooking || result.booking.IsGuest(),
	}, nil
}
