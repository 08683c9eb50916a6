package usecase

import (
	"context"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/request"
	"rental-booking/internal/dto/response"
	"rental-booking/pkg/apperr"
	"rental-booking/pkg/receipt"
	"rental-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Admin endpoints
	ListBookings(ctx context.Context, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingDetail(ctx context.Context, bookingID uuid.UUID) (*response.BookingDetailResponse, error)
	GetBookingByCode(ctx context.Context, code string) (*response.BookingDetailResponse, error)
	Receipt(ctx context.Context, bookingID uuid.UUID) ([]byte, string, error)
}

type bookingService struct {
	repo   *repository.Repository
	ledger PaymentLedger
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, ledger PaymentLedger, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		ledger: ledger,
		log:    log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) ListBookings(ctx context.Context, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("List bookings validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("", utils.FormatValidationErrors(errs))
	}

	from, err := utils.ParseDate(req.From)
	if err != nil {
		return nil, apperr.Validation("from", "invalid date")
	}
	to, err := utils.ParseDate(req.To)
	if err != nil {
		return nil, apperr.Validation("to", "invalid date")
	}
	if to != nil {
		// tanggal akhir inklusif
		end := to.Add(24 * time.Hour)
		to = &end
	}

	filter := repository.BookingFilter{
		Status: entity.BookingStatus(req.Status),
		From:   from,
		To:     to,
		Search: req.Search,
	}

	bookings, err := s.repo.Booking.List(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, apperr.Remote("list bookings", err)
	}

	total, err := s.repo.Booking.Count(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, apperr.Remote("count bookings", err)
	}

	data := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		data = append(data, response.BookingToResponse(b))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

// loadLedger reads the booking with its payments and running totals.
func (s *bookingService) loadLedger(ctx context.Context, bookingID uuid.UUID) (*receipt.Data, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return nil, apperr.Remote("find booking", err)
	}
	if booking == nil {
		return nil, apperr.NotFound("booking", bookingID.String())
	}

	payments, err := s.ledger.GetPaymentsForBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	totalPaid, err := s.ledger.TotalPaid(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	return &receipt.Data{
		Booking:   booking,
		Payments:  payments,
		TotalPaid: totalPaid,
		Remaining: entity.RemainingBalance(booking.TotalAmount, totalPaid),
	}, nil
}

func (s *bookingService) GetBookingDetail(ctx context.Context, bookingID uuid.UUID) (*response.BookingDetailResponse, error) {
	data, err := s.loadLedger(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	return &response.BookingDetailResponse{
		BookingResponse:  response.BookingToResponse(data.Booking),
		Payments:         response.PaymentsToResponse(data.Payments),
		TotalPaid:        data.TotalPaid,
		RemainingBalance: data.Remaining,
	}, nil
}

func (s *bookingService) Receipt(ctx context.Context, bookingID uuid.UUID) ([]byte, string, error) {
	data, err := s.loadLedger(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	data.IssuedAt = time.Now()

	pdf, filename, err := receipt.Build(*data)
	if err != nil {
		s.log.Error("Failed to render receipt", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return nil, "", err
	}

	return pdf, filename, nil
}

// GetBookingByCode resolves the customer facing booking code, e.g. from a
// support ticket, into the same detail view as GetBookingDetail.
func (s *bookingService) GetBookingByCode(ctx context.Context, code string) (*response.BookingDetailResponse, error) {
	if code == "" {
		return nil, apperr.Validation("code", "is required")
	}

	booking, err := s.repo.Booking.FindByCode(ctx, code)
	if err != nil {
		s.log.Error("Failed to find booking by code", zap.Error(err), zap.String("code", code))
		return nil, apperr.Remote("find booking", err)
	}
	if booking == nil {
		return nil, apperr.NotFound("booking", code)
	}

	return s.GetBookingDetail(ctx, booking.ID)
}
