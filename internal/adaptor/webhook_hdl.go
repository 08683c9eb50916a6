package adaptor

import (
	"encoding/json"
	"net/http"

	"rental-booking/internal/dto/request"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

// CallbackTokenHeader carries the shared secret configured at Paylabs.
const CallbackTokenHeader = "X-Callback-Token"

type WebhookHandler struct {
	service usecase.WebhookService
	log     *zap.Logger
}

func NewWebhookHandler(service usecase.WebhookService, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		log:     log.With(zap.String("handler", "webhook")),
	}
}

// Paylabs handles POST /api/webhooks/paylabs
func (h *WebhookHandler) Paylabs(w http.ResponseWriter, r *http.Request) {
	if !h.service.VerifyToken(r.Header.Get(CallbackTokenHeader)) {
		h.log.Warn("Paylabs callback rejected - bad token", zap.String("ip", r.RemoteAddr))
		utils.ResponseUnauthorized(w, "Invalid callback token")
		return
	}

	var req request.PaylabsNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.HandlePaylabsNotification(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "handle paylabs notification")
		return
	}

	utils.ResponseSuccess(w, "Notification processed", result)
}
