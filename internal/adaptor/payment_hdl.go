package adaptor

import (
	"encoding/json"
	"net/http"

	"rental-booking/internal/dto/request"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/apperr"
	"rental-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	ledger usecase.PaymentLedger
	log    *zap.Logger
}

func NewPaymentHandler(ledger usecase.PaymentLedger, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		ledger: ledger,
		log:    log.With(zap.String("handler", "payment")),
	}
}

// ProcessPayment handles POST /api/payments. Every failure answers 400 with
// {success:false, message}; the booking UI reads only the message.
func (h *PaymentHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req request.ProcessPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// session opsional: guest checkout tidak punya token
	var sessionUserID *uuid.UUID
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		sessionUserID = &userID
	}

	result, err := h.ledger.ProcessPayment(r.Context(), sessionUserID, &req)
	if err != nil {
		if apperr.IsValidation(err) || apperr.IsNotFound(err) || apperr.IsConflict(err) {
			h.log.Warn("process payment rejected", zap.Error(err))
			utils.ResponseBadRequest(w, err.Error(), nil)
			return
		}
		h.log.Error("Failed to process payment", zap.Error(err))
		utils.ResponseBadRequest(w, "Failed to process payment", nil)
		return
	}

	utils.ResponseSuccess(w, "Payment processed successfully", result)
}
