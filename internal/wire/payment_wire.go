package wire

import (
	"rental-booking/internal/adaptor"
	"rental-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	webhookHandler *adaptor.WebhookHandler,
	sessions middleware.SessionValidator,
	log *zap.Logger,
) {
	// ==================== PUBLIC / OPTIONAL AUTH ====================
	// POST /api/payments - session opsional, guest checkout pakai isGuestBooking
	r.With(middleware.OptionalSession(sessions, log)).Post("/api/payments", paymentHandler.ProcessPayment)

	// ==================== GATEWAY CALLBACK ====================
	// POST /api/webhooks/paylabs - dicek lewat X-Callback-Token
	r.Post("/api/webhooks/paylabs", webhookHandler.Paylabs)
}
