package adaptor

import (
	"encoding/json"
	"net/http"

	"rental-booking/internal/dto/request"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AssignmentHandler struct {
	service usecase.AssignmentService
	log     *zap.Logger
}

func NewAssignmentHandler(service usecase.AssignmentService, log *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service: service,
		log:     log.With(zap.String("handler", "assignment")),
	}
}

// AssignDriver handles POST /api/admin/transfers/{id}/assign-driver
func (h *AssignmentHandler) AssignDriver(w http.ResponseWriter, r *http.Request) {
	transferID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req request.AssignDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.AssignDriver(r.Context(), transferID, uuid.MustParse(req.DriverID))
	if err != nil {
		handleServiceError(w, h.log, err, "assign driver")
		return
	}

	message := "Driver assigned"
	if result.PartialFailure() {
		message = "Driver assigned, notification failed"
	}
	utils.ResponseSuccess(w, message, result)
}

// AssignVehicle handles PUT /api/admin/bookings/{id}/vehicle
func (h *AssignmentHandler) AssignVehicle(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req request.AssignVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.AssignVehicle(r.Context(), bookingID, uuid.MustParse(req.VehicleID))
	if err != nil {
		handleServiceError(w, h.log, err, "assign vehicle")
		return
	}

	utils.ResponseSuccess(w, "Vehicle assigned", booking)
}
