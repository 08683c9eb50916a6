package usecase

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/request"
	"rental-booking/internal/dto/response"
	"rental-booking/pkg/apperr"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

// Internal taxonomy for gateway callbacks.
const (
	GatewayStatusPaid    = "paid"
	GatewayStatusPending = "pending"
	GatewayStatusFailed  = "failed"
)

// MapGatewayStatus folds the Paylabs status vocabulary into paid, pending
// or failed. Unknown values are failed.
func MapGatewayStatus(external string) string {
	switch strings.ToUpper(strings.TrimSpace(external)) {
	case "SUCCESS", "PAID", "SETTLEMENT", "02":
		return GatewayStatusPaid
	case "PENDING", "WAITING", "01":
		return GatewayStatusPending
	default:
		return GatewayStatusFailed
	}
}

func paymentStatusFor(gatewayStatus string) entity.PaymentStatus {
	switch gatewayStatus {
	case GatewayStatusPaid:
		return entity.PaymentStatusCompleted
	case GatewayStatusPending:
		return entity.PaymentStatusPending
	default:
		return entity.PaymentStatusFailed
	}
}

type WebhookService interface {
	// VerifyToken checks the shared callback token. With no token
	// configured every request passes.
	VerifyToken(token string) bool
	HandlePaylabsNotification(ctx context.Context, req *request.PaylabsNotificationRequest) (*response.WebhookResponse, error)
}

type webhookService struct {
	repo      *repository.Repository
	config    *utils.Config
	publisher EventPublisher
	log       *zap.Logger
}

func NewWebhookService(repo *repository.Repository, config *utils.Config, publisher EventPublisher, log *zap.Logger) WebhookService {
	if publisher == nil {
		publisher = NewNopPublisher()
	}
	return &webhookService{
		repo:      repo,
		config:    config,
		publisher: publisher,
		log:       log.With(zap.String("service", "webhook")),
	}
}

func (s *webhookService) VerifyToken(token string) bool {
	expected := s.config.Webhook.PaylabsToken
	if expected == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(token)) == 1
}

func (s *webhookService) HandlePaylabsNotification(ctx context.Context, req *request.PaylabsNotificationRequest) (*response.WebhookResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Paylabs notification validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("", utils.FormatValidationErrors(errs))
	}

	gatewayStatus := MapGatewayStatus(req.Status)
	target := paymentStatusFor(gatewayStatus)
	bookingType := repository.BookingType(strings.ToLower(strings.TrimSpace(req.BookingType)))

	resp := &response.WebhookResponse{
		TransactionID: req.TransactionID,
		Status:        gatewayStatus,
	}

	var (
		reconciled *paymentReconciliation
		bookingRef string
	)
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		payment, err := tx.Payment.FindByTransactionID(ctx, req.TransactionID)
		if err != nil {
			return apperr.Remote("find payment", err)
		}
		if payment == nil {
			return apperr.NotFound("payment", req.TransactionID)
		}
		bookingRef = payment.BookingID.String()

		// amount kosong berarti gateway tidak mengirimkannya
		if !req.Amount.IsZero() && !req.Amount.Equal(payment.Amount) {
			s.log.Warn("Gateway amount differs from recorded payment",
				zap.String("transaction_id", req.TransactionID),
				zap.String("gateway_amount", req.Amount.String()),
				zap.String("recorded_amount", payment.Amount.String()),
			)
			resp.AmountMismatch = true
		}

		if payment.IsCompleted() {
			// completed rows are frozen; a late duplicate callback is a no-op
			resp.PaymentStatus = payment.Status
		} else {
			updated, err := tx.Payment.UpdateStatus(ctx, payment.ID, target, &req.TransactionID)
			if err != nil {
				return apperr.Remote("update payment status", err)
			}
			resp.PaymentUpdated = updated
			resp.PaymentStatus = target
		}

		if gatewayStatus != GatewayStatusPaid {
			return nil
		}

		if bookingType.TableFor() == repository.BookingTypeRental.TableFor() {
			booking, err := tx.Booking.FindByIDForUpdate(ctx, payment.BookingID)
			if err != nil {
				return apperr.Remote("find booking", err)
			}
			if booking == nil {
				return apperr.NotFound("booking", payment.BookingID.String())
			}
			result, err := reconcilePayment(ctx, tx, booking)
			if err != nil {
				return err
			}
			reconciled = &result
			if result.current != entity.PaymentStatePaid {
				return nil
			}
		}

		marked, err := tx.BookingTable.MarkPaid(ctx, bookingType, payment.BookingID)
		if err != nil {
			return apperr.Remote("cascade booking status", err)
		}
		resp.BookingUpdated = marked
		return nil
	})
	if err != nil {
		s.log.Warn("Paylabs notification not applied",
			zap.Error(err),
			zap.String("transaction_id", req.TransactionID),
			zap.String("status", req.Status),
		)
		return nil, err
	}

	s.log.Info("Paylabs notification applied",
		zap.String("transaction_id", req.TransactionID),
		zap.String("gateway_status", gatewayStatus),
		zap.String("booking_type", string(bookingType)),
		zap.Bool("payment_updated", resp.PaymentUpdated),
		zap.Bool("booking_updated", resp.BookingUpdated),
	)

	if resp.BookingUpdated || (reconciled != nil && reconciled.changed()) {
		event := PaymentStatusChanged{
			BookingID: bookingRef,
			Table:     bookingType.TableFor(),
			To:        string(entity.PaymentStatePaid),
			At:        time.Now(),
		}
		if reconciled != nil {
			event.From = string(reconciled.previous)
			event.To = string(reconciled.current)
			event.TotalPaid = reconciled.totalPaid
		}
		publishEvent(ctx, s.publisher, s.log, EventPaymentStatusChanged, event)
	}

	return resp, nil
}
