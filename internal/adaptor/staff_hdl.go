package adaptor

import (
	"encoding/json"
	"net/http"

	"rental-booking/internal/dto/request"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

type StaffHandler struct {
	service usecase.StaffService
	log     *zap.Logger
}

func NewStaffHandler(service usecase.StaffService, log *zap.Logger) *StaffHandler {
	return &StaffHandler{
		service: service,
		log:     log.With(zap.String("handler", "staff")),
	}
}

// Provision handles POST /api/admin/staff
func (h *StaffHandler) Provision(w http.ResponseWriter, r *http.Request) {
	var req request.StaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	staff, err := h.service.Provision(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "provision staff")
		return
	}

	if staff.Created {
		utils.ResponseCreated(w, "Staff created", staff)
		return
	}
	utils.ResponseSuccess(w, "Staff updated", staff)
}
