package adaptor

import (
	"net/http"

	"rental-booking/internal/usecase"
	"rental-booking/pkg/apperr"
	"rental-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Booking    *BookingHandler
	Payment    *PaymentHandler
	Assignment *AssignmentHandler
	Driver     *DriverHandler
	Webhook    *WebhookHandler
	Staff      *StaffHandler
	Fleet      *FleetHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(service.Auth, log),
		User:       NewUserHandler(service.User, log),
		Booking:    NewBookingHandler(service.Booking, service.Reconciler, log),
		Payment:    NewPaymentHandler(service.Ledger, log),
		Assignment: NewAssignmentHandler(service.Assignment, log),
		Driver:     NewDriverHandler(service.DriverBalance, service.Assignment, log),
		Webhook:    NewWebhookHandler(service.Webhook, log),
		Staff:      NewStaffHandler(service.Staff, log),
		Fleet:      NewFleetHandler(service.Fleet, log),
	}
}

// handleServiceError maps the apperr kinds onto HTTP status codes.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case apperr.IsNotFound(err):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case apperr.IsValidation(err):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case apperr.IsConflict(err):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// uuidParam reads a chi path parameter as a UUID. On failure the 400 response
// is already written.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid "+name+" format", nil)
		return uuid.Nil, false
	}
	return id, true
}

func paginationFromQuery(r *http.Request) (page, perPage int) {
	query := r.URL.Query()
	page = utils.ParseInt(query.Get("page"), 1)
	perPage = utils.ParseInt(query.Get("per_page"), 10)
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}
